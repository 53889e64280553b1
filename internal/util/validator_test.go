package util

import (
	"testing"
)

// TestValidateAmount_Positive checks valid amounts pass.
func TestValidateAmount_Positive(t *testing.T) {
	testCases := []int64{1, 100, 16068, 99999999}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err != nil {
			t.Errorf("ValidateAmount(%d) error = %v, want nil", amount, err)
		}
	}
}

// TestValidateAmount_Zero checks zero is rejected.
func TestValidateAmount_Zero(t *testing.T) {
	err := ValidateAmount(0)

	if err == nil {
		t.Error("ValidateAmount(0) error = nil, want error")
	}
}

// TestValidateAmount_Negative checks negatives are rejected.
func TestValidateAmount_Negative(t *testing.T) {
	testCases := []int64{-1, -100, -9999}

	for _, amount := range testCases {
		err := ValidateAmount(amount)
		if err == nil {
			t.Errorf("ValidateAmount(%d) error = nil, want error", amount)
		}
	}
}

// TestValidateAmount_TooLarge checks the upper cap.
func TestValidateAmount_TooLarge(t *testing.T) {
	err := ValidateAmount(100000000)

	if err == nil {
		t.Error("ValidateAmount(100000000) error = nil, want error")
	}
}

// TestParseDate_Valid checks accepted formats.
func TestParseDate_Valid(t *testing.T) {
	testCases := []string{
		"2026-01-01",
		"2026-12-31",
		"2026-06-15T00:00:00Z",
		"2026-06-15T10:30:00+03:00",
	}

	for _, date := range testCases {
		if _, err := ParseDate(date); err != nil {
			t.Errorf("ParseDate(%q) error = %v, want nil", date, err)
		}
	}
}

// TestParseDate_Invalid checks malformed dates are rejected.
func TestParseDate_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"2026/01/01",
		"01-01-2026",
		"2026-1-1",
		"not-a-date",
		"2026-13-01", // bad month
		"2026-01-32", // bad day
	}

	for _, date := range testCases {
		if _, err := ParseDate(date); err == nil {
			t.Errorf("ParseDate(%q) error = nil, want error", date)
		}
	}
}

package util

import (
	"fmt"
	"time"
)

// ValidateAmount checks a whole-ETB amount is positive and below the cap.
func ValidateAmount(amountEtb int64) error {
	if amountEtb <= 0 {
		return fmt.Errorf("amount must be positive, got %d", amountEtb)
	}
	if amountEtb >= 100000000 { // cap at 100M ETB
		return fmt.Errorf("amount too large, got %d", amountEtb)
	}
	return nil
}

// ParseDate parses a date in YYYY-MM-DD or RFC3339 form.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", dateStr)
}

// ValidateDate checks a date string is parseable.
func ValidateDate(dateStr string) error {
	_, err := ParseDate(dateStr)
	return err
}

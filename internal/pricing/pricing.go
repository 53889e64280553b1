// Package pricing derives a unit's monthly rent from its base price,
// floor and amenity/view attributes. The result is computed once at
// lease creation and stored on the lease; it is never recalculated.
package pricing

import (
	"errors"
	"math"

	"rental-manager/internal/models"
)

var (
	ErrNegativeBasePrice = errors.New("pricing: base price must be non-negative")
	ErrNegativeFloor     = errors.New("pricing: floor must be non-negative")
)

// floorMultiplier bands, inclusive on the upper bound:
// floor <= 1 carries a premium, middle floors are neutral, and the
// highest floors are slightly cheaper.
func floorMultiplier(floor int) float64 {
	switch {
	case floor <= 1:
		return 1.20
	case floor <= 5:
		return 1.00
	case floor <= 10:
		return 0.95
	default:
		return 0.90
	}
}

// amenityMultiplier adds +2% per amenity, uncapped.
func amenityMultiplier(amenities []string) float64 {
	return 1 + 0.02*float64(len(amenities))
}

// viewMultiplier adds +3% per view attribute, uncapped.
func viewMultiplier(views []string) float64 {
	return 1 + 0.03*float64(len(views))
}

// MonthlyRent computes the monthly rent in whole ETB for a unit
// snapshot. Pure and deterministic: the same input always yields the
// same output. The multipliers compound (each applies to the running
// total, not the original base). Rounding is half-up via math.Round.
func MonthlyRent(u *models.Unit) (int64, error) {
	if u.BasePriceEtb < 0 {
		return 0, ErrNegativeBasePrice
	}
	if u.Floor < 0 {
		return 0, ErrNegativeFloor
	}

	price := float64(u.BasePriceEtb) *
		floorMultiplier(u.Floor) *
		amenityMultiplier(u.Amenities) *
		viewMultiplier(u.ViewAttributes)

	return int64(math.Round(price)), nil
}

package food

import (
	"fmt"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

// Conversion factors to grams. Cups are a dry-food proxy measured against an
// average kibble density.
const (
	gramsPerKilogram = 1000.0
	gramsPerPound    = 453.592
	gramsPerOunce    = 28.3495
	gramsPerCup      = 120.0
)

// ToGrams converts a quantity in the given unit to grams. Units are
// validated upstream; an unknown unit here is a programming error.
func ToGrams(value float64, unit models.WeightUnit) float64 {
	switch unit {
	case models.UnitGrams:
		return value
	case models.UnitKilograms:
		return value * gramsPerKilogram
	case models.UnitPounds:
		return value * gramsPerPound
	case models.UnitOunces:
		return value * gramsPerOunce
	case models.UnitCups:
		return value * gramsPerCup
	default:
		panic(fmt.Sprintf("unsupported weight unit %q", unit))
	}
}

// FromGrams converts grams back into the target unit.
func FromGrams(grams float64, unit models.WeightUnit) float64 {
	switch unit {
	case models.UnitGrams:
		return grams
	case models.UnitKilograms:
		return grams / gramsPerKilogram
	case models.UnitPounds:
		return grams / gramsPerPound
	case models.UnitOunces:
		return grams / gramsPerOunce
	case models.UnitCups:
		return grams / gramsPerCup
	default:
		panic(fmt.Sprintf("unsupported weight unit %q", unit))
	}
}

package supply

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/petcare/internal/domain/food"
	"github.com/mamadbah2/petcare/internal/domain/models"
)

const (
	dateLayout    = "2006-01-02"
	maxNameLength = 100

	// Sanity ceilings, not physical limits: nobody buys a 50kg+ bag for a
	// pet, and a 2kg+ daily ration is a typo.
	maxTotalGrams   = 50 * 1000.0
	maxDailyGrams   = 2000.0
	maxWetUnitCount = 1000

	defaultFinishedLimit = 5
	maxFinishedLimit     = 100
)

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", models.ErrValidation, fmt.Sprintf(format, args...))
}

// validateRecordID checks the opaque-ID shape before any lookup so a
// malformed identifier never turns into a misleading not-found.
func validateRecordID(field, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return validationErr("%s is not a valid identifier", field)
	}
	return nil
}

// parsePastDate parses a calendar date and rejects dates after today,
// compared at end-of-day granularity.
func parsePastDate(field, value string, now time.Time) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, validationErr("%s must be a date in %s format", field, dateLayout)
	}
	if parsed.After(food.DateOnly(now)) {
		return time.Time{}, validationErr("%s must not be in the future", field)
	}
	return parsed, nil
}

func validateName(field, value string) error {
	if len(value) > maxNameLength {
		return validationErr("%s must be at most %d characters", field, maxNameLength)
	}
	return nil
}

func validUnit(unit models.WeightUnit, allowed ...models.WeightUnit) bool {
	for _, u := range allowed {
		if unit == u {
			return true
		}
	}
	return false
}

// validateCreate checks the category-dependent required fields and ranges
// of a create request and materializes the matching detail struct.
func validateCreate(req models.CreateSupplyRequest) (*models.DrySupplyDetails, *models.WetSupplyDetails, error) {
	if err := validateName("brandName", req.BrandName); err != nil {
		return nil, nil, err
	}
	if err := validateName("productName", req.ProductName); err != nil {
		return nil, nil, err
	}

	switch req.Category {
	case models.CategoryDry:
		dry, err := validateDryCreate(req)
		return dry, nil, err
	case models.CategoryWet:
		wet, err := validateWetCreate(req)
		return nil, wet, err
	default:
		return nil, nil, validationErr("category must be %q or %q", models.CategoryDry, models.CategoryWet)
	}
}

func validateDryCreate(req models.CreateSupplyRequest) (*models.DrySupplyDetails, error) {
	if req.TotalQuantity == nil || req.TotalQuantityUnit == nil {
		return nil, validationErr("dry food requires totalQuantity and totalQuantityUnit")
	}
	if req.DailyAmount == nil || req.DailyAmountUnit == nil {
		return nil, validationErr("dry food requires dailyAmount and dailyAmountUnit")
	}
	if !validUnit(*req.TotalQuantityUnit, models.UnitKilograms, models.UnitPounds) {
		return nil, validationErr("totalQuantityUnit must be %q or %q", models.UnitKilograms, models.UnitPounds)
	}
	if !validUnit(*req.DailyAmountUnit, models.UnitGrams, models.UnitCups) {
		return nil, validationErr("dailyAmountUnit must be %q or %q for dry food", models.UnitGrams, models.UnitCups)
	}
	if err := validateDryRanges(*req.TotalQuantity, *req.TotalQuantityUnit, *req.DailyAmount, *req.DailyAmountUnit); err != nil {
		return nil, err
	}

	return &models.DrySupplyDetails{
		TotalQuantity:     *req.TotalQuantity,
		TotalQuantityUnit: *req.TotalQuantityUnit,
		DailyAmount:       *req.DailyAmount,
		DailyAmountUnit:   *req.DailyAmountUnit,
	}, nil
}

func validateWetCreate(req models.CreateSupplyRequest) (*models.WetSupplyDetails, error) {
	if req.UnitCount == nil || req.QuantityPerUnit == nil || req.QuantityPerUnitUnit == nil {
		return nil, validationErr("wet food requires unitCount, quantityPerUnit and quantityPerUnitUnit")
	}
	if req.DailyAmount == nil || req.DailyAmountUnit == nil {
		return nil, validationErr("wet food requires dailyAmount and dailyAmountUnit")
	}
	if !validUnit(*req.QuantityPerUnitUnit, models.UnitGrams, models.UnitOunces) {
		return nil, validationErr("quantityPerUnitUnit must be %q or %q", models.UnitGrams, models.UnitOunces)
	}
	if !validUnit(*req.DailyAmountUnit, models.UnitGrams, models.UnitOunces) {
		return nil, validationErr("dailyAmountUnit must be %q or %q for wet food", models.UnitGrams, models.UnitOunces)
	}
	if err := validateWetRanges(*req.UnitCount, *req.QuantityPerUnit, *req.QuantityPerUnitUnit, *req.DailyAmount, *req.DailyAmountUnit); err != nil {
		return nil, err
	}

	return &models.WetSupplyDetails{
		UnitCount:           *req.UnitCount,
		QuantityPerUnit:     *req.QuantityPerUnit,
		QuantityPerUnitUnit: *req.QuantityPerUnitUnit,
		DailyAmount:         *req.DailyAmount,
		DailyAmountUnit:     *req.DailyAmountUnit,
	}, nil
}

func validateDryRanges(total float64, totalUnit models.WeightUnit, daily float64, dailyUnit models.WeightUnit) error {
	if total <= 0 {
		return validationErr("totalQuantity must be positive")
	}
	if food.ToGrams(total, totalUnit) > maxTotalGrams {
		return validationErr("totalQuantity exceeds the %.0fkg limit", maxTotalGrams/1000)
	}
	return validateDailyRange(daily, dailyUnit)
}

func validateWetRanges(count int, perUnit float64, perUnitUnit models.WeightUnit, daily float64, dailyUnit models.WeightUnit) error {
	if count <= 0 {
		return validationErr("unitCount must be a positive integer")
	}
	if count > maxWetUnitCount {
		return validationErr("unitCount exceeds the %d unit limit", maxWetUnitCount)
	}
	if perUnit <= 0 {
		return validationErr("quantityPerUnit must be positive")
	}
	if float64(count)*food.ToGrams(perUnit, perUnitUnit) > maxTotalGrams {
		return validationErr("total wet quantity exceeds the %.0fkg limit", maxTotalGrams/1000)
	}
	return validateDailyRange(daily, dailyUnit)
}

func validateDailyRange(daily float64, dailyUnit models.WeightUnit) error {
	if daily <= 0 {
		return validationErr("dailyAmount must be positive")
	}
	if food.ToGrams(daily, dailyUnit) > maxDailyGrams {
		return validationErr("dailyAmount exceeds the %.0fg limit", maxDailyGrams)
	}
	return nil
}

// validateUpdate checks a partial update against the record it targets.
// Only the fields present are validated; range checks use the effective
// value/unit pairs after the update would apply.
func validateUpdate(current *models.FoodSupply, upd models.SupplyUpdate) error {
	if upd.Empty() {
		return validationErr("update requires at least one field")
	}

	if upd.BrandName != nil {
		if err := validateName("brandName", *upd.BrandName); err != nil {
			return err
		}
	}
	if upd.ProductName != nil {
		if err := validateName("productName", *upd.ProductName); err != nil {
			return err
		}
	}

	switch current.Category {
	case models.CategoryDry:
		return validateDryUpdate(current.Dry, upd)
	case models.CategoryWet:
		return validateWetUpdate(current.Wet, upd)
	default:
		return validationErr("record has unknown category %q", current.Category)
	}
}

func validateDryUpdate(dry *models.DrySupplyDetails, upd models.SupplyUpdate) error {
	if upd.UnitCount != nil || upd.QuantityPerUnit != nil || upd.QuantityPerUnitUnit != nil {
		return validationErr("wet food fields are not valid on a dry food record")
	}

	total, totalUnit := dry.TotalQuantity, dry.TotalQuantityUnit
	daily, dailyUnit := dry.DailyAmount, dry.DailyAmountUnit
	if upd.TotalQuantity != nil {
		total = *upd.TotalQuantity
	}
	if upd.TotalQuantityUnit != nil {
		totalUnit = *upd.TotalQuantityUnit
	}
	if upd.DailyAmount != nil {
		daily = *upd.DailyAmount
	}
	if upd.DailyAmountUnit != nil {
		dailyUnit = *upd.DailyAmountUnit
	}

	if !validUnit(totalUnit, models.UnitKilograms, models.UnitPounds) {
		return validationErr("totalQuantityUnit must be %q or %q", models.UnitKilograms, models.UnitPounds)
	}
	if !validUnit(dailyUnit, models.UnitGrams, models.UnitCups) {
		return validationErr("dailyAmountUnit must be %q or %q for dry food", models.UnitGrams, models.UnitCups)
	}
	return validateDryRanges(total, totalUnit, daily, dailyUnit)
}

func validateWetUpdate(wet *models.WetSupplyDetails, upd models.SupplyUpdate) error {
	if upd.TotalQuantity != nil || upd.TotalQuantityUnit != nil {
		return validationErr("dry food fields are not valid on a wet food record")
	}

	count := wet.UnitCount
	perUnit, perUnitUnit := wet.QuantityPerUnit, wet.QuantityPerUnitUnit
	daily, dailyUnit := wet.DailyAmount, wet.DailyAmountUnit
	if upd.UnitCount != nil {
		count = *upd.UnitCount
	}
	if upd.QuantityPerUnit != nil {
		perUnit = *upd.QuantityPerUnit
	}
	if upd.QuantityPerUnitUnit != nil {
		perUnitUnit = *upd.QuantityPerUnitUnit
	}
	if upd.DailyAmount != nil {
		daily = *upd.DailyAmount
	}
	if upd.DailyAmountUnit != nil {
		dailyUnit = *upd.DailyAmountUnit
	}

	if !validUnit(perUnitUnit, models.UnitGrams, models.UnitOunces) {
		return validationErr("quantityPerUnitUnit must be %q or %q", models.UnitGrams, models.UnitOunces)
	}
	if !validUnit(dailyUnit, models.UnitGrams, models.UnitOunces) {
		return validationErr("dailyAmountUnit must be %q or %q for wet food", models.UnitGrams, models.UnitOunces)
	}
	return validateWetRanges(count, perUnit, perUnitUnit, daily, dailyUnit)
}

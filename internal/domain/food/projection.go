package food

import (
	"math"
	"time"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

// TotalGrams returns the full purchased quantity of the supply in grams.
func TotalGrams(s models.FoodSupply) float64 {
	switch {
	case s.Category == models.CategoryDry && s.Dry != nil:
		return ToGrams(s.Dry.TotalQuantity, s.Dry.TotalQuantityUnit)
	case s.Category == models.CategoryWet && s.Wet != nil:
		return float64(s.Wet.UnitCount) * ToGrams(s.Wet.QuantityPerUnit, s.Wet.QuantityPerUnitUnit)
	default:
		return 0
	}
}

// DailyGrams returns the declared daily consumption rate in grams.
func DailyGrams(s models.FoodSupply) float64 {
	switch {
	case s.Category == models.CategoryDry && s.Dry != nil:
		return ToGrams(s.Dry.DailyAmount, s.Dry.DailyAmountUnit)
	case s.Category == models.CategoryWet && s.Wet != nil:
		return ToGrams(s.Wet.DailyAmount, s.Wet.DailyAmountUnit)
	default:
		return 0
	}
}

// nativeQuantityUnit is the unit the remaining weight is reported in.
func nativeQuantityUnit(s models.FoodSupply) models.WeightUnit {
	switch {
	case s.Category == models.CategoryDry && s.Dry != nil:
		return s.Dry.TotalQuantityUnit
	case s.Category == models.CategoryWet && s.Wet != nil:
		return s.Wet.QuantityPerUnitUnit
	default:
		return models.UnitGrams
	}
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole days from one calendar date to another, flooring
// at 1: the start date itself always counts as a day of consumption.
func daysBetween(start, end time.Time) int {
	days := int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Project computes the remaining supply of a record as of now. It is pure
// and ignores the record's active flag; finished records get the same
// display projection as active ones.
func Project(s models.FoodSupply, now time.Time) models.SupplyProjection {
	totalGrams := TotalGrams(s)
	dailyGrams := DailyGrams(s)

	proj := models.SupplyProjection{RemainingWeightUnit: nativeQuantityUnit(s)}

	if dailyGrams <= 0 {
		// No consumption assumed; the supply never depletes.
		proj.RemainingWeight = FromGrams(totalGrams, proj.RemainingWeightUnit)
		return proj
	}

	elapsed := daysBetween(s.DateStarted, now)
	consumedGrams := float64(elapsed) * dailyGrams
	remainingGrams := math.Max(0, totalGrams-consumedGrams)

	proj.RemainingWeight = FromGrams(remainingGrams, proj.RemainingWeightUnit)
	proj.RemainingDays = int(math.Floor(remainingGrams / dailyGrams))

	if proj.RemainingDays > 0 {
		proj.DepletionDate = DateOnly(now).AddDate(0, 0, proj.RemainingDays)
	} else {
		// Already exhausted by schedule: report the stable date the supply
		// should have run out rather than one that drifts with now.
		scheduledDays := int(math.Ceil(totalGrams / dailyGrams))
		proj.DepletionDate = DateOnly(s.DateStarted).AddDate(0, 0, scheduledDays)
	}

	return proj
}

package food

import (
	"fmt"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

// varianceNormalBand is the tolerance, in percent, within which realized
// consumption counts as on-schedule.
const varianceNormalBand = 5.0

// Reconcile compares the realized daily consumption of a finished supply
// against its declared rate. Calling it on a record without a finish date
// is a caller contract violation and fails with a validation error.
func Reconcile(s models.FoodSupply) (models.FeedingReport, error) {
	if s.DateFinished == nil {
		return models.FeedingReport{}, fmt.Errorf("%w: supply has no finish date", models.ErrValidation)
	}

	expected := DailyGrams(s)
	if expected <= 0 {
		return models.FeedingReport{}, fmt.Errorf("%w: supply has no daily amount", models.ErrValidation)
	}

	elapsed := daysBetween(s.DateStarted, *s.DateFinished)
	actual := TotalGrams(s) / float64(elapsed)
	variance := (actual - expected) / expected * 100

	return models.FeedingReport{
		DateFinished:             *s.DateFinished,
		ActualDaysElapsed:        elapsed,
		ActualDailyConsumption:   actual,
		ExpectedDailyConsumption: expected,
		VariancePercentage:       variance,
		FeedingStatus:            classify(variance),
	}, nil
}

func classify(variance float64) models.FeedingStatus {
	switch {
	case variance > varianceNormalBand:
		return models.StatusOverfeeding
	case variance < -varianceNormalBand:
		return models.StatusUnderfeeding
	default:
		return models.StatusNormal
	}
}

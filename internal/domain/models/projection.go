package models

import "time"

// SupplyProjection is the forward-looking view of a supply record: how much
// is left at the declared daily rate and when it runs out.
type SupplyProjection struct {
	RemainingDays       int        `json:"remainingDays"`
	RemainingWeight     float64    `json:"remainingWeight"`
	RemainingWeightUnit WeightUnit `json:"remainingWeightUnit"`
	DepletionDate       time.Time  `json:"depletionDate"`
}

// FeedingStatus classifies realized consumption against the declared rate.
type FeedingStatus string

const (
	StatusOverfeeding  FeedingStatus = "overfeeding"
	StatusNormal       FeedingStatus = "normal"
	StatusUnderfeeding FeedingStatus = "underfeeding"
)

// FeedingReport is the backward-looking view of a finished supply record:
// what was actually consumed per day versus what was planned.
type FeedingReport struct {
	DateFinished             time.Time     `json:"dateFinished"`
	ActualDaysElapsed        int           `json:"actualDaysElapsed"`
	ActualDailyConsumption   float64       `json:"actualDailyConsumption"`
	ExpectedDailyConsumption float64       `json:"expectedDailyConsumption"`
	VariancePercentage       float64       `json:"variancePercentage"`
	FeedingStatus            FeedingStatus `json:"feedingStatus"`
}

// EnrichedSupply is the read-path return shape: the persisted record plus
// either a projection (active/all reads) or a feeding report (finished reads).
type EnrichedSupply struct {
	FoodSupply
	Projection *SupplyProjection `json:"projection,omitempty"`
	Report     *FeedingReport    `json:"feedingReport,omitempty"`
}

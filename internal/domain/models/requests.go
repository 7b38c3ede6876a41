package models

// CreateSupplyRequest is the payload for opening a new supply record. Only
// category and dateStarted are structurally required; the remaining fields
// are category-dependent and checked by the service validator.
type CreateSupplyRequest struct {
	Category    FoodCategory `json:"category" binding:"required"`
	DateStarted string       `json:"dateStarted" binding:"required"`

	// dry fields
	TotalQuantity     *float64    `json:"totalQuantity,omitempty"`
	TotalQuantityUnit *WeightUnit `json:"totalQuantityUnit,omitempty"`

	// wet fields
	UnitCount           *int        `json:"unitCount,omitempty"`
	QuantityPerUnit     *float64    `json:"quantityPerUnit,omitempty"`
	QuantityPerUnitUnit *WeightUnit `json:"quantityPerUnitUnit,omitempty"`

	// shared
	DailyAmount     *float64    `json:"dailyAmount,omitempty"`
	DailyAmountUnit *WeightUnit `json:"dailyAmountUnit,omitempty"`
	BrandName       string      `json:"brandName"`
	ProductName     string      `json:"productName"`
}

// SupplyUpdate is a partial update of an active supply record. Nil fields
// are left untouched; only fields matching the record's category may be set.
type SupplyUpdate struct {
	TotalQuantity     *float64    `json:"totalQuantity,omitempty"`
	TotalQuantityUnit *WeightUnit `json:"totalQuantityUnit,omitempty"`

	UnitCount           *int        `json:"unitCount,omitempty"`
	QuantityPerUnit     *float64    `json:"quantityPerUnit,omitempty"`
	QuantityPerUnitUnit *WeightUnit `json:"quantityPerUnitUnit,omitempty"`

	DailyAmount     *float64    `json:"dailyAmount,omitempty"`
	DailyAmountUnit *WeightUnit `json:"dailyAmountUnit,omitempty"`
	BrandName       *string     `json:"brandName,omitempty"`
	ProductName     *string     `json:"productName,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (u SupplyUpdate) Empty() bool {
	return u.TotalQuantity == nil && u.TotalQuantityUnit == nil &&
		u.UnitCount == nil && u.QuantityPerUnit == nil && u.QuantityPerUnitUnit == nil &&
		u.DailyAmount == nil && u.DailyAmountUnit == nil &&
		u.BrandName == nil && u.ProductName == nil
}

// UpdateFinishDateRequest corrects the finish date on an already finished
// supply record.
type UpdateFinishDateRequest struct {
	DateFinished string `json:"dateFinished" binding:"required"`
}

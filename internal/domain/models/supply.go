package models

import "time"

// FoodCategory distinguishes the two tracked kinds of pet food.
type FoodCategory string

const (
	CategoryDry FoodCategory = "dry"
	CategoryWet FoodCategory = "wet"
)

// WeightUnit enumerates the quantity units accepted on supply records.
type WeightUnit string

const (
	UnitGrams     WeightUnit = "grams"
	UnitKilograms WeightUnit = "kg"
	UnitPounds    WeightUnit = "pounds"
	UnitOunces    WeightUnit = "oz"
	UnitCups      WeightUnit = "cups"
)

// DrySupplyDetails holds the fields that only exist on dry food records:
// one bag with a total weight, consumed at a daily amount.
type DrySupplyDetails struct {
	TotalQuantity     float64    `bson:"total_quantity" json:"totalQuantity"`
	TotalQuantityUnit WeightUnit `bson:"total_quantity_unit" json:"totalQuantityUnit"`
	DailyAmount       float64    `bson:"daily_amount" json:"dailyAmount"`
	DailyAmountUnit   WeightUnit `bson:"daily_amount_unit" json:"dailyAmountUnit"`
}

// WetSupplyDetails holds the fields that only exist on wet food records:
// a case of identical cans/pouches, consumed at a daily amount.
type WetSupplyDetails struct {
	UnitCount           int        `bson:"unit_count" json:"unitCount"`
	QuantityPerUnit     float64    `bson:"quantity_per_unit" json:"quantityPerUnit"`
	QuantityPerUnitUnit WeightUnit `bson:"quantity_per_unit_unit" json:"quantityPerUnitUnit"`
	DailyAmount         float64    `bson:"daily_amount" json:"dailyAmount"`
	DailyAmountUnit     WeightUnit `bson:"daily_amount_unit" json:"dailyAmountUnit"`
}

// FoodSupply represents one purchased batch of food for a pet. Exactly one
// of Dry or Wet is populated, matching Category; the other stays nil.
type FoodSupply struct {
	ID           string            `bson:"_id" json:"id"`
	PetID        string            `bson:"pet_id" json:"petId"`
	Category     FoodCategory      `bson:"category" json:"category"`
	Dry          *DrySupplyDetails `bson:"dry,omitempty" json:"dry,omitempty"`
	Wet          *WetSupplyDetails `bson:"wet,omitempty" json:"wet,omitempty"`
	BrandName    *string           `bson:"brand_name" json:"brandName"`
	ProductName  *string           `bson:"product_name" json:"productName"`
	DateStarted  time.Time         `bson:"date_started" json:"dateStarted"`
	DateFinished *time.Time        `bson:"date_finished" json:"dateFinished"`
	IsActive     bool              `bson:"is_active" json:"isActive"`
	// ArchivedAt stamps when the record's feeding report was exported to
	// the archive sheet. Internal bookkeeping, never serialized to clients.
	ArchivedAt *time.Time `bson:"archived_at,omitempty" json:"-"`
	CreatedAt    time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updatedAt"`
}

// Finished reports whether the record has completed its consumption period.
func (s *FoodSupply) Finished() bool {
	return !s.IsActive && s.DateFinished != nil
}

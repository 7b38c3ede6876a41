package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

// SupplyRepository defines the persistence operations for supply records.
type SupplyRepository interface {
	Insert(ctx context.Context, supply models.FoodSupply) error
	FindByID(ctx context.Context, id string) (*models.FoodSupply, error)
	FindByPet(ctx context.Context, petID string, active *bool, limit int64) ([]models.FoodSupply, error)
	FindFinishedUnarchived(ctx context.Context) ([]models.FoodSupply, error)
	MarkArchived(ctx context.Context, ids []string, now time.Time) error
	UpdateFields(ctx context.Context, id string, category models.FoodCategory, upd models.SupplyUpdate, now time.Time) (*models.FoodSupply, error)
	MarkFinished(ctx context.Context, id string, finishedAt time.Time, now time.Time) (*models.FoodSupply, error)
	UpdateFinishDate(ctx context.Context, id string, finishedAt time.Time, now time.Time) (*models.FoodSupply, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Insert stores a new supply record. A duplicate-key error from the partial
// unique index means an active record of the same category already exists
// and is surfaced as a conflict.
func (r *MongoDBRepository) Insert(ctx context.Context, supply models.FoodSupply) error {
	if _, err := r.supplies().InsertOne(ctx, supply); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: active supply already exists", models.ErrConflict)
		}
		return fmt.Errorf("failed to insert supply: %w", err)
	}
	return nil
}

// FindByID fetches one supply record by its identifier.
func (r *MongoDBRepository) FindByID(ctx context.Context, id string) (*models.FoodSupply, error) {
	var supply models.FoodSupply
	err := r.supplies().FindOne(ctx, bson.M{"_id": id}).Decode(&supply)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find supply %s: %w", id, err)
	}
	return &supply, nil
}

// FindByPet lists a pet's supply records. A nil active filter returns all;
// finished records sort by finish date descending, the rest by start date.
func (r *MongoDBRepository) FindByPet(ctx context.Context, petID string, active *bool, limit int64) ([]models.FoodSupply, error) {
	filter := bson.M{"pet_id": petID}
	sort := bson.D{{Key: "date_started", Value: -1}}
	if active != nil {
		filter["is_active"] = *active
		if !*active {
			sort = bson.D{{Key: "date_finished", Value: -1}}
		}
	}

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.supplies().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplies for pet %s: %w", petID, err)
	}

	var supplies []models.FoodSupply
	if err := cursor.All(ctx, &supplies); err != nil {
		return nil, fmt.Errorf("failed to decode supplies for pet %s: %w", petID, err)
	}
	return supplies, nil
}

// FindFinishedUnarchived lists finished records whose feeding report has
// not been exported yet, oldest finish first so the archive sheet stays
// chronological. Used by the archive scheduler.
func (r *MongoDBRepository) FindFinishedUnarchived(ctx context.Context) ([]models.FoodSupply, error) {
	filter := bson.M{
		"is_active":   false,
		"archived_at": nil,
	}
	opts := options.Find().SetSort(bson.D{{Key: "date_finished", Value: 1}})

	cursor, err := r.supplies().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list finished supplies: %w", err)
	}

	var supplies []models.FoodSupply
	if err := cursor.All(ctx, &supplies); err != nil {
		return nil, fmt.Errorf("failed to decode finished supplies: %w", err)
	}
	return supplies, nil
}

// MarkArchived stamps the given records as exported so the next archive run
// does not pick them up again.
func (r *MongoDBRepository) MarkArchived(ctx context.Context, ids []string, now time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{"archived_at": now}}
	if _, err := r.supplies().UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark supplies archived: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update atomically and returns the updated
// record. The is_active guard in the filter keeps finished records
// immutable even when a finish transition races the update. Keys target
// the sub-document of the record's category so the other category's
// fields stay null.
func (r *MongoDBRepository) UpdateFields(ctx context.Context, id string, category models.FoodCategory, upd models.SupplyUpdate, now time.Time) (*models.FoodSupply, error) {
	set := bson.M{"updated_at": now}

	prefix := "dry."
	if category == models.CategoryWet {
		prefix = "wet."
	}

	if upd.TotalQuantity != nil {
		set["dry.total_quantity"] = *upd.TotalQuantity
	}
	if upd.TotalQuantityUnit != nil {
		set["dry.total_quantity_unit"] = *upd.TotalQuantityUnit
	}
	if upd.UnitCount != nil {
		set["wet.unit_count"] = *upd.UnitCount
	}
	if upd.QuantityPerUnit != nil {
		set["wet.quantity_per_unit"] = *upd.QuantityPerUnit
	}
	if upd.QuantityPerUnitUnit != nil {
		set["wet.quantity_per_unit_unit"] = *upd.QuantityPerUnitUnit
	}
	if upd.DailyAmount != nil {
		set[prefix+"daily_amount"] = *upd.DailyAmount
	}
	if upd.DailyAmountUnit != nil {
		set[prefix+"daily_amount_unit"] = *upd.DailyAmountUnit
	}
	if upd.BrandName != nil {
		set["brand_name"] = normalizeOptional(*upd.BrandName)
	}
	if upd.ProductName != nil {
		set["product_name"] = normalizeOptional(*upd.ProductName)
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": id, "is_active": true}, bson.M{"$set": set})
}

// MarkFinished flips an active record to finished. The is_active guard in
// the filter makes concurrent transitions yield exactly one success.
func (r *MongoDBRepository) MarkFinished(ctx context.Context, id string, finishedAt time.Time, now time.Time) (*models.FoodSupply, error) {
	filter := bson.M{"_id": id, "is_active": true}
	update := bson.M{"$set": bson.M{
		"is_active":     false,
		"date_finished": finishedAt,
		"updated_at":    now,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// UpdateFinishDate corrects the finish date of an already finished record.
func (r *MongoDBRepository) UpdateFinishDate(ctx context.Context, id string, finishedAt time.Time, now time.Time) (*models.FoodSupply, error) {
	filter := bson.M{"_id": id, "is_active": false}
	update := bson.M{"$set": bson.M{
		"date_finished": finishedAt,
		"updated_at":    now,
	}}
	return r.findOneAndUpdate(ctx, filter, update)
}

// Delete removes a supply record and reports whether anything was deleted.
func (r *MongoDBRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.supplies().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete supply %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoDBRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.FoodSupply, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var supply models.FoodSupply
	err := r.supplies().FindOneAndUpdate(ctx, filter, update, opts).Decode(&supply)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supply: %w", err)
	}
	return &supply, nil
}

func normalizeOptional(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

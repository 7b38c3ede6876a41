package supply

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/domain/food"
	"github.com/mamadbah2/petcare/internal/domain/models"
	repo "github.com/mamadbah2/petcare/internal/repository/mongodb"
)

// FoodService describes the supply operations the HTTP layer can perform.
type FoodService interface {
	Create(ctx context.Context, callerID, petID string, req models.CreateSupplyRequest) (*models.FoodSupply, error)
	GetByID(ctx context.Context, callerID, id string) (*models.EnrichedSupply, error)
	ListActive(ctx context.Context, callerID, petID string) ([]models.EnrichedSupply, error)
	ListFinished(ctx context.Context, callerID, petID string, limit int) ([]models.EnrichedSupply, error)
	ListAll(ctx context.Context, callerID, petID string) ([]models.EnrichedSupply, error)
	Update(ctx context.Context, callerID, id string, upd models.SupplyUpdate) (*models.FoodSupply, error)
	MarkFinished(ctx context.Context, callerID, id string) (*models.FoodSupply, error)
	UpdateFinishDate(ctx context.Context, callerID, id string, req models.UpdateFinishDateRequest) (*models.FoodSupply, error)
	Delete(ctx context.Context, callerID, id string) error
}

// Service orchestrates supply record lifecycle: validation, ownership,
// persistence and read-path enrichment.
type Service struct {
	supplies repo.SupplyRepository
	pets     repo.PetRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new food supply service instance.
func NewService(supplies repo.SupplyRepository, pets repo.PetRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		supplies: supplies,
		pets:     pets,
		logger:   logger,
		now:      time.Now,
	}
}

// Create opens a new supply record for the pet. The partial unique index in
// storage guarantees the check-then-insert is atomic: two concurrent creates
// for the same (pet, category) yield exactly one success.
func (s *Service) Create(ctx context.Context, callerID, petID string, req models.CreateSupplyRequest) (*models.FoodSupply, error) {
	if err := validateRecordID("petId", petID); err != nil {
		return nil, err
	}

	dry, wet, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	started, err := parsePastDate("dateStarted", req.DateStarted, now)
	if err != nil {
		return nil, err
	}

	if err := s.pets.VerifyOwnership(ctx, petID, callerID); err != nil {
		return nil, err
	}

	record := models.FoodSupply{
		ID:          uuid.NewString(),
		PetID:       petID,
		Category:    req.Category,
		Dry:         dry,
		Wet:         wet,
		BrandName:   optionalString(req.BrandName),
		ProductName: optionalString(req.ProductName),
		DateStarted: started,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.supplies.Insert(ctx, record); err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, duplicateActiveError(req.Category)
		}
		return nil, err
	}

	s.logger.Info("supply created",
		zap.String("supply_id", record.ID),
		zap.String("pet_id", petID),
		zap.String("category", string(record.Category)))

	return &record, nil
}

// GetByID fetches one owned supply record enriched with its projection.
func (s *Service) GetByID(ctx context.Context, callerID, id string) (*models.EnrichedSupply, error) {
	record, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	enriched := s.withProjection(*record)
	return &enriched, nil
}

// ListActive lists the pet's active supplies with projections.
func (s *Service) ListActive(ctx context.Context, callerID, petID string) ([]models.EnrichedSupply, error) {
	active := true
	return s.listProjected(ctx, callerID, petID, &active)
}

// ListAll lists every supply of the pet, active and finished, with
// projections.
func (s *Service) ListAll(ctx context.Context, callerID, petID string) ([]models.EnrichedSupply, error) {
	return s.listProjected(ctx, callerID, petID, nil)
}

// ListFinished lists the pet's most recently finished supplies, newest
// first, enriched with feeding reports. History is never pruned from
// storage; only this read path is bounded.
func (s *Service) ListFinished(ctx context.Context, callerID, petID string, limit int) ([]models.EnrichedSupply, error) {
	if limit == 0 {
		limit = defaultFinishedLimit
	}
	if limit < 1 || limit > maxFinishedLimit {
		return nil, validationErr("limit must be between 1 and %d", maxFinishedLimit)
	}

	if err := validateRecordID("petId", petID); err != nil {
		return nil, err
	}
	if err := s.pets.VerifyOwnership(ctx, petID, callerID); err != nil {
		return nil, err
	}

	finished := false
	records, err := s.supplies.FindByPet(ctx, petID, &finished, int64(limit))
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedSupply, 0, len(records))
	for _, record := range records {
		item := models.EnrichedSupply{FoodSupply: record}
		report, err := food.Reconcile(record)
		if err == nil {
			item.Report = &report
		} else {
			s.logger.Warn("skipping feeding report for finished supply",
				zap.String("supply_id", record.ID), zap.Error(err))
		}
		enriched = append(enriched, item)
	}
	return enriched, nil
}

// Update applies a partial update to an owned active supply record. At
// least one field is required and only fields matching the record's
// category pass. Finished records are immutable; their only correction
// path is UpdateFinishDate.
func (s *Service) Update(ctx context.Context, callerID, id string, upd models.SupplyUpdate) (*models.FoodSupply, error) {
	record, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if !record.IsActive {
		return nil, fmt.Errorf("%w: supply is already finished", models.ErrConflict)
	}

	if err := validateUpdate(record, upd); err != nil {
		return nil, err
	}

	updated, err := s.supplies.UpdateFields(ctx, id, record.Category, upd, s.now().UTC())
	if errors.Is(err, models.ErrNotFound) {
		// Lost the race against a concurrent finish call.
		return nil, fmt.Errorf("%w: supply is already finished", models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("supply updated", zap.String("supply_id", id))
	return updated, nil
}

// MarkFinished transitions an active record to its terminal finished state,
// stamping today as the finish date. The conditional write in storage makes
// concurrent transitions yield exactly one success.
func (s *Service) MarkFinished(ctx context.Context, callerID, id string) (*models.FoodSupply, error) {
	record, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if !record.IsActive {
		return nil, fmt.Errorf("%w: supply is already finished", models.ErrConflict)
	}

	now := s.now().UTC()
	finished, err := s.supplies.MarkFinished(ctx, id, food.DateOnly(now), now)
	if errors.Is(err, models.ErrNotFound) {
		// Lost the race against another finish call.
		return nil, fmt.Errorf("%w: supply is already finished", models.ErrConflict)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("supply finished",
		zap.String("supply_id", id),
		zap.String("pet_id", finished.PetID),
		zap.Time("date_finished", *finished.DateFinished))

	return finished, nil
}

// UpdateFinishDate corrects the finish date of a finished record, bounded
// by [dateStarted, today].
func (s *Service) UpdateFinishDate(ctx context.Context, callerID, id string, req models.UpdateFinishDateRequest) (*models.FoodSupply, error) {
	record, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if record.IsActive {
		return nil, fmt.Errorf("%w: supply is still active", models.ErrConflict)
	}

	now := s.now().UTC()
	newDate, err := parsePastDate("dateFinished", req.DateFinished, now)
	if err != nil {
		return nil, err
	}
	if newDate.Before(food.DateOnly(record.DateStarted)) {
		return nil, validationErr("dateFinished must not be before dateStarted")
	}

	updated, err := s.supplies.UpdateFinishDate(ctx, id, newDate, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("supply finish date corrected",
		zap.String("supply_id", id), zap.Time("date_finished", newDate))

	return updated, nil
}

// Delete removes a supply record in any state. A second delete of the same
// record reports not found.
func (s *Service) Delete(ctx context.Context, callerID, id string) error {
	record, err := s.getOwned(ctx, callerID, id)
	if err != nil {
		return err
	}

	deleted, err := s.supplies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.ErrNotFound
	}

	s.logger.Info("supply deleted",
		zap.String("supply_id", id), zap.String("pet_id", record.PetID))
	return nil
}

func (s *Service) listProjected(ctx context.Context, callerID, petID string, active *bool) ([]models.EnrichedSupply, error) {
	if err := validateRecordID("petId", petID); err != nil {
		return nil, err
	}
	if err := s.pets.VerifyOwnership(ctx, petID, callerID); err != nil {
		return nil, err
	}

	records, err := s.supplies.FindByPet(ctx, petID, active, 0)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.EnrichedSupply, 0, len(records))
	for _, record := range records {
		enriched = append(enriched, s.withProjection(record))
	}
	return enriched, nil
}

// getOwned resolves an id to a record the caller owns. Ownership mismatch
// and true absence both surface as not found.
func (s *Service) getOwned(ctx context.Context, callerID, id string) (*models.FoodSupply, error) {
	if err := validateRecordID("id", id); err != nil {
		return nil, err
	}

	record, err := s.supplies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.pets.VerifyOwnership(ctx, record.PetID, callerID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) withProjection(record models.FoodSupply) models.EnrichedSupply {
	projection := food.Project(record, s.now().UTC())
	return models.EnrichedSupply{FoodSupply: record, Projection: &projection}
}

func duplicateActiveError(category models.FoodCategory) error {
	if category == models.CategoryWet {
		return fmt.Errorf("%w: an active wet food entry already exists for this pet", models.ErrConflict)
	}
	return fmt.Errorf("%w: an active dry food entry already exists for this pet", models.ErrConflict)
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

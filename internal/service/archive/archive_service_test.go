package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/petcare/internal/domain/models"
)

type stubSupplyRepo struct {
	finished []models.FoodSupply
}

func (s *stubSupplyRepo) FindFinishedUnarchived(context.Context) ([]models.FoodSupply, error) {
	var out []models.FoodSupply
	for _, record := range s.finished {
		if record.ArchivedAt == nil {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *stubSupplyRepo) MarkArchived(_ context.Context, ids []string, now time.Time) error {
	for _, id := range ids {
		for i := range s.finished {
			if s.finished[i].ID == id {
				stamped := now
				s.finished[i].ArchivedAt = &stamped
			}
		}
	}
	return nil
}

func (s *stubSupplyRepo) Insert(context.Context, models.FoodSupply) error { return nil }

func (s *stubSupplyRepo) FindByID(context.Context, string) (*models.FoodSupply, error) {
	return nil, models.ErrNotFound
}

func (s *stubSupplyRepo) FindByPet(context.Context, string, *bool, int64) ([]models.FoodSupply, error) {
	return nil, nil
}

func (s *stubSupplyRepo) UpdateFields(context.Context, string, models.FoodCategory, models.SupplyUpdate, time.Time) (*models.FoodSupply, error) {
	return nil, models.ErrNotFound
}

func (s *stubSupplyRepo) MarkFinished(context.Context, string, time.Time, time.Time) (*models.FoodSupply, error) {
	return nil, models.ErrNotFound
}

func (s *stubSupplyRepo) UpdateFinishDate(context.Context, string, time.Time, time.Time) (*models.FoodSupply, error) {
	return nil, models.ErrNotFound
}

func (s *stubSupplyRepo) Delete(context.Context, string) (bool, error) { return false, nil }

type captureExporter struct {
	rows [][]interface{}
}

func (c *captureExporter) AppendReportRows(_ context.Context, rows [][]interface{}) error {
	c.rows = append(c.rows, rows...)
	return nil
}

func finishedDrySupply(id string, started time.Time, days int) models.FoodSupply {
	finishedAt := started.AddDate(0, 0, days)
	return models.FoodSupply{
		ID:           id,
		PetID:        "pet-1",
		Category:     models.CategoryDry,
		DateStarted:  started,
		DateFinished: &finishedAt,
		Dry: &models.DrySupplyDetails{
			TotalQuantity:     2,
			TotalQuantityUnit: models.UnitKilograms,
			DailyAmount:       100,
			DailyAmountUnit:   models.UnitGrams,
		},
	}
}

func TestExportPending(t *testing.T) {
	started := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubSupplyRepo{finished: []models.FoodSupply{
		finishedDrySupply("supply-1", started, 20),
		finishedDrySupply("supply-2", started, 15),
	}}
	exporter := &captureExporter{}
	svc := NewService(repo, exporter, nil)

	count, err := svc.ExportPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, exporter.rows, 2)

	// On-schedule supply archives as normal, the fast one as overfeeding.
	assert.Contains(t, exporter.rows[0], string(models.StatusNormal))
	assert.Contains(t, exporter.rows[1], string(models.StatusOverfeeding))

	for _, record := range repo.finished {
		assert.NotNil(t, record.ArchivedAt)
	}
}

func TestExportPendingNeverExportsTwice(t *testing.T) {
	started := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubSupplyRepo{finished: []models.FoodSupply{
		finishedDrySupply("supply-1", started, 20),
	}}
	exporter := &captureExporter{}
	svc := NewService(repo, exporter, nil)

	count, err := svc.ExportPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The next scheduled run finds nothing left to export.
	count, err = svc.ExportPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, exporter.rows, 1)

	// A supply finished between runs exports exactly once as well.
	repo.finished = append(repo.finished, finishedDrySupply("supply-2", started, 15))
	count, err = svc.ExportPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, exporter.rows, 2)
}

func TestExportSkipsUnreconcilableRecords(t *testing.T) {
	record := finishedDrySupply("supply-1", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), 20)
	record.DateFinished = nil

	repo := &stubSupplyRepo{finished: []models.FoodSupply{record}}
	exporter := &captureExporter{}
	svc := NewService(repo, exporter, nil)

	count, err := svc.ExportPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, exporter.rows)

	// Stamped regardless so the broken record is not retried every run.
	assert.NotNil(t, repo.finished[0].ArchivedAt)
}

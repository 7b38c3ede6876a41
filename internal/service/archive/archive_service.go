package archive

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/domain/food"
	"github.com/mamadbah2/petcare/internal/domain/models"
	repo "github.com/mamadbah2/petcare/internal/repository/mongodb"
	"github.com/mamadbah2/petcare/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// Service exports feeding reports of finished supplies to the archive sheet.
type Service struct {
	supplies repo.SupplyRepository
	exporter sheets.Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new archive service instance.
func NewService(supplies repo.SupplyRepository, exporter sheets.Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{supplies: supplies, exporter: exporter, logger: logger, now: time.Now}
}

// ExportPending reconciles every finished supply not yet exported, appends
// the feeding reports to the archive sheet and stamps the records archived.
// The stamp makes each record export exactly once across runs; a failed run
// leaves everything unstamped and the next run retries. Returns the number
// of exported rows.
func (s *Service) ExportPending(ctx context.Context) (int, error) {
	records, err := s.supplies.FindFinishedUnarchived(ctx)
	if err != nil {
		return 0, fmt.Errorf("load finished supplies: %w", err)
	}

	rows := make([][]interface{}, 0, len(records))
	processed := make([]string, 0, len(records))
	for _, record := range records {
		report, err := food.Reconcile(record)
		if err != nil {
			// Stamped anyway: a finished record without a finish date can
			// never become reconcilable, retrying it is pure noise.
			s.logger.Warn("skip finished supply without a reconcilable report",
				zap.String("supply_id", record.ID), zap.Error(err))
			processed = append(processed, record.ID)
			continue
		}
		rows = append(rows, reportRow(record, report))
		processed = append(processed, record.ID)
	}

	if len(rows) > 0 {
		if err := s.exporter.AppendReportRows(ctx, rows); err != nil {
			return 0, fmt.Errorf("export feeding reports: %w", err)
		}
	}

	if err := s.supplies.MarkArchived(ctx, processed, s.now().UTC()); err != nil {
		// Rows are already on the sheet; reruns may duplicate them until
		// the stamp lands. Surface the error so the scheduler logs it.
		return len(rows), fmt.Errorf("mark supplies archived: %w", err)
	}

	return len(rows), nil
}

func reportRow(record models.FoodSupply, report models.FeedingReport) []interface{} {
	brand := ""
	if record.BrandName != nil {
		brand = *record.BrandName
	}
	product := ""
	if record.ProductName != nil {
		product = *record.ProductName
	}

	return []interface{}{
		record.PetID,
		record.ID,
		string(record.Category),
		brand,
		product,
		record.DateStarted.Format(dateLayout),
		report.DateFinished.Format(dateLayout),
		report.ActualDaysElapsed,
		fmt.Sprintf("%.1f", report.ActualDailyConsumption),
		fmt.Sprintf("%.1f", report.VariancePercentage),
		string(report.FeedingStatus),
	}
}

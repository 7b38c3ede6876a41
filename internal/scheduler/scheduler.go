package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/petcare/internal/config"
	"github.com/mamadbah2/petcare/internal/service/archive"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	archiveSvc *archive.Service
	cfg        config.ArchiveConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.ArchiveConfig, archiveSvc *archive.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow). Jobs run in the configured timezone.
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}
	c := cron.New(cron.WithLocation(location))

	return &Scheduler{
		cron:       c,
		archiveSvc: archiveSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.CronSchedule, s.archiveFinishedSupplies)
	if err != nil {
		s.logger.Error("failed to schedule feeding log archive", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) archiveFinishedSupplies() {
	s.logger.Info("archiving finished supplies")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	count, err := s.archiveSvc.ExportPending(ctx)
	if err != nil {
		s.logger.Error("failed to archive finished supplies", zap.Error(err))
		return
	}

	s.logger.Info("feeding log archive updated", zap.Int("rows", count))
}

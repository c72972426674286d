package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesrep/internal/config"
	"github.com/mamadbah2/salesrep/internal/domain/models"
	"github.com/mamadbah2/salesrep/internal/service/reporting"
	"github.com/mamadbah2/salesrep/internal/service/tally"
	"github.com/mamadbah2/salesrep/pkg/clients/whatsapp"
)

const (
	reportTimeout    = 2 * time.Minute
	reconcileTimeout = 10 * time.Minute
)

// Reporter produces the daily visit report.
type Reporter interface {
	BuildDailyReport(ctx context.Context, day time.Time) (models.DailyVisitReport, error)
	ExportDay(ctx context.Context, day time.Time) (models.DailyVisitReport, error)
}

// Reconciler refreshes stale totals on open visits.
type Reconciler interface {
	ReconcileOpen(ctx context.Context) (tally.SweepResult, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	reporter   Reporter
	reconciler Reconciler
	sender     whatsapp.Sender
	cfg        config.ReportingConfig
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. sender may be nil when
// summary delivery is not configured.
func NewScheduler(cfg config.ReportingConfig, loc *time.Location, reporter Reporter, reconciler Reconciler, sender whatsapp.Sender, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		reporter:   reporter,
		reconciler: reconciler,
		sender:     sender,
		cfg:        cfg,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Start registers the jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("report_schedule", s.cfg.CronSchedule),
		zap.String("reconcile_schedule", s.cfg.ReconcileCronSchedule),
		zap.String("timezone", s.loc.String()),
	)

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailyReport); err != nil {
		return fmt.Errorf("schedule daily report: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.ReconcileCronSchedule, s.runReconcile); err != nil {
		return fmt.Errorf("schedule reconciliation: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	day := s.now().In(s.loc)
	s.logger.Info("generating daily report", zap.String("date", day.Format(models.VisitDateLayout)))

	report, err := s.reporter.ExportDay(ctx, day)
	switch {
	case errors.Is(err, reporting.ErrExportDisabled):
		report, err = s.reporter.BuildDailyReport(ctx, day)
		if err != nil {
			s.logger.Error("failed to build daily report", zap.Error(err))
			return
		}
	case err != nil:
		s.logger.Error("failed to export daily report", zap.Error(err))
		return
	}

	if s.sender == nil || s.cfg.Recipient == "" {
		return
	}

	id, err := s.sender.SendText(ctx, s.cfg.Recipient, reporting.FormatSummary(report))
	if err != nil {
		s.logger.Error("failed to send daily report", zap.Error(err))
		return
	}
	s.logger.Info("daily report sent", zap.String("message_id", id))
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	res, err := s.reconciler.ReconcileOpen(ctx)
	if err != nil {
		s.logger.Error("reconciliation sweep failed", zap.Error(err))
		return
	}
	s.logger.Info("nightly reconciliation completed",
		zap.Int64("checked", res.Checked),
		zap.Int64("updated", res.Updated),
		zap.Int64("stale", res.Stale),
		zap.Int64("failed", res.Failed),
	)
}

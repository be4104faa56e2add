package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/config"
	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// TriggerScheduled marks reports produced by the cron job.
const TriggerScheduled = "scheduled"

// Runner produces a validation report for a date.
type Runner interface {
	Run(ctx context.Context, date time.Time, trigger string) (*models.ValidationReport, error)
}

// Scheduler runs the nightly validation of upcoming demand.
type Scheduler struct {
	cron     *cron.Cron
	runner   Runner
	cfg      config.ValidationConfig
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. The cron expression is
// evaluated in the configured timezone.
func NewScheduler(cfg config.ValidationConfig, runner Runner, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		runner:   runner,
		cfg:      cfg,
		location: loc,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the validation job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runValidation); err != nil {
		return fmt.Errorf("schedule validation %q: %w", s.cfg.CronSchedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.String("timezone", s.location.String()),
		zap.Int("days_ahead", s.cfg.DaysAhead))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// targetDate is the calendar day DaysAhead after today in the scheduler timezone.
func (s *Scheduler) targetDate() time.Time {
	today := s.now().In(s.location)
	y, m, d := today.AddDate(0, 0, s.cfg.DaysAhead).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Scheduler) runValidation() {
	date := s.targetDate()
	logger := s.logger.With(zap.String("date", models.FormatDate(date)))
	logger.Info("running scheduled validation")

	timeout := s.cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := s.runner.Run(ctx, date, TriggerScheduled)
	if err != nil {
		logger.Error("scheduled validation failed", zap.Error(err))
		return
	}

	if report.OK() {
		logger.Info("scheduled validation passed", zap.String("report_id", report.ID))
		return
	}
	logger.Warn("scheduled validation found violations",
		zap.String("report_id", report.ID),
		zap.Int("violations", len(report.Violations)))
}

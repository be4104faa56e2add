// Package reporting runs complete validation passes for a date and delivers
// the resulting report to the configured sinks: the MongoDB archive, a Google
// Sheet of violations and the alert webhook.
package reporting

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/service/feasibility"
	"github.com/mamadbah2/frostbyte/pkg/clients/webhook"
)

// Sink names used for logging and metrics.
const (
	SinkArchive = "archive"
	SinkSheet   = "sheet"
	SinkAlert   = "alert"
)

// Validator runs the feasibility checks.
type Validator interface {
	CheckTemperatureFeasibility(ctx context.Context, date time.Time) (*feasibility.TemperatureResult, error)
	ValidateNetwork(ctx context.Context, date time.Time) (*feasibility.NetworkResult, error)
}

// Archive persists and lists validation reports.
type Archive interface {
	SaveReport(ctx context.Context, report models.ValidationReport) error
	ListReports(ctx context.Context, date string) ([]models.ValidationReport, error)
}

// RowAppender exports tabular rows.
type RowAppender interface {
	AppendRows(ctx context.Context, rows [][]interface{}) error
}

// SinkErrorRecorder counts delivery failures.
type SinkErrorRecorder interface {
	RecordSinkError(sink string)
}

// Sinks groups the optional report destinations. Nil members are skipped.
type Sinks struct {
	Archive  Archive
	Sheet    RowAppender
	Notifier webhook.Client
	Metrics  SinkErrorRecorder
}

// Service produces and distributes validation reports.
type Service struct {
	validator Validator
	sinks     Sinks
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires a new reporting service instance.
func NewService(validator Validator, sinks Sinks, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validator: validator,
		sinks:     sinks,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Run executes both checks for date concurrently, builds the report and hands
// it to the sinks. Sink failures are logged and counted but do not fail the
// run; a store failure fails it and nothing is delivered.
func (s *Service) Run(ctx context.Context, date time.Time, trigger string) (*models.ValidationReport, error) {
	var (
		temps   *feasibility.TemperatureResult
		network *feasibility.NetworkResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		temps, err = s.validator.CheckTemperatureFeasibility(gctx, date)
		return err
	})
	g.Go(func() (err error) {
		network, err = s.validator.ValidateNetwork(gctx, date)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run validation for %s: %w", models.FormatDate(date), err)
	}

	violations := make([]models.Violation, 0, len(temps.Violations)+len(network.Violations))
	violations = append(violations, temps.Violations...)
	violations = append(violations, network.Violations...)

	report := models.ValidationReport{
		ID:                s.newID(),
		Date:              models.FormatDate(date),
		TemperatureValid:  temps.Valid,
		NetworkFeasible:   network.Feasible,
		TemperatureIssues: temps.Issues,
		NetworkIssues:     network.Issues,
		Violations:        violations,
		Trigger:           trigger,
		CreatedAt:         s.now().UTC(),
	}

	s.logger.Info("validation report generated",
		zap.String("report_id", report.ID),
		zap.String("date", report.Date),
		zap.String("trigger", trigger),
		zap.Bool("temperature_valid", report.TemperatureValid),
		zap.Bool("network_feasible", report.NetworkFeasible),
		zap.Int("violations", len(violations)))

	s.deliver(ctx, report)
	return &report, nil
}

// History lists archived reports for a date. Without an archive it is empty.
func (s *Service) History(ctx context.Context, date time.Time) ([]models.ValidationReport, error) {
	if s.sinks.Archive == nil {
		return []models.ValidationReport{}, nil
	}
	reports, err := s.sinks.Archive.ListReports(ctx, models.FormatDate(date))
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *Service) deliver(ctx context.Context, report models.ValidationReport) {
	if s.sinks.Archive != nil {
		s.sinkResult(SinkArchive, report.ID, s.sinks.Archive.SaveReport(ctx, report))
	}

	if s.sinks.Sheet != nil && len(report.Violations) > 0 {
		s.sinkResult(SinkSheet, report.ID, s.sinks.Sheet.AppendRows(ctx, violationRows(report)))
	}

	if s.sinks.Notifier != nil && !report.OK() {
		issues := append(append([]string{}, report.TemperatureIssues...), report.NetworkIssues...)
		alert := webhook.Alert{
			Text:     fmt.Sprintf("Cold-chain validation failed for %s: %d issue(s)", report.Date, len(issues)),
			Date:     report.Date,
			ReportID: report.ID,
			Issues:   issues,
		}
		s.sinkResult(SinkAlert, report.ID, s.sinks.Notifier.Send(ctx, alert))
	}
}

func (s *Service) sinkResult(sink, reportID string, err error) {
	if err == nil {
		s.logger.Debug("report delivered", zap.String("sink", sink), zap.String("report_id", reportID))
		return
	}
	s.logger.Error("report delivery failed", zap.String("sink", sink), zap.String("report_id", reportID), zap.Error(err))
	if s.sinks.Metrics != nil {
		s.sinks.Metrics.RecordSinkError(sink)
	}
}

// violationRows renders one sheet row per violation:
// date, report id, code, location id, route id, message.
func violationRows(report models.ValidationReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Violations))
	for _, v := range report.Violations {
		rows = append(rows, []interface{}{
			report.Date,
			report.ID,
			string(v.Code),
			optionalID(v.LocationID),
			optionalID(v.RouteID),
			v.Message,
		})
	}
	return rows
}

func optionalID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/service/feasibility"
)

// TriggerManual marks reports requested over HTTP.
const TriggerManual = "manual"

// Reporter runs and lists validation reports.
type Reporter interface {
	Run(ctx context.Context, date time.Time, trigger string) (*models.ValidationReport, error)
	History(ctx context.Context, date time.Time) ([]models.ValidationReport, error)
}

// ReportHandler exposes validation reports.
type ReportHandler struct {
	svc    Reporter
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc Reporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Create handles POST /reports.
func (h *ReportHandler) Create(c *gin.Context) {
	date, err := bindDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dateError(err))
		return
	}

	report, err := h.svc.Run(c.Request.Context(), date, TriggerManual)
	if err != nil {
		h.logger.Error("report run failed", zap.String("date", models.FormatDate(date)), zap.Error(err))
		msg := "failed to generate report"
		if errors.Is(err, feasibility.ErrStoreUnavailable) {
			msg = "entity store unavailable"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusCreated, report)
}

// List handles GET /reports?date=YYYY-MM-DD.
func (h *ReportHandler) List(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dateError(err))
		return
	}

	reports, err := h.svc.History(c.Request.Context(), date)
	if err != nil {
		h.logger.Error("failed listing reports", zap.String("date", models.FormatDate(date)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

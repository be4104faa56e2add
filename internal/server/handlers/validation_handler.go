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

// Validator runs the feasibility checks behind the validation endpoints.
type Validator interface {
	CheckTemperatureFeasibility(ctx context.Context, date time.Time) (*feasibility.TemperatureResult, error)
	ValidateNetwork(ctx context.Context, date time.Time) (*feasibility.NetworkResult, error)
}

// ValidationHandler exposes the temperature and network checks over HTTP.
type ValidationHandler struct {
	svc    Validator
	logger *zap.Logger
}

// NewValidationHandler constructs the HTTP handler adapter.
func NewValidationHandler(svc Validator, logger *zap.Logger) *ValidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationHandler{svc: svc, logger: logger}
}

// ValidateTemperatures handles POST /temps/validate.
func (h *ValidationHandler) ValidateTemperatures(c *gin.Context) {
	date, err := bindDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dateError(err))
		return
	}

	result, err := h.svc.CheckTemperatureFeasibility(c.Request.Context(), date)
	if err != nil {
		h.failed(c, "temperature validation", date, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ValidateNetwork handles POST /network/validate.
func (h *ValidationHandler) ValidateNetwork(c *gin.Context) {
	date, err := bindDate(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dateError(err))
		return
	}

	result, err := h.svc.ValidateNetwork(c.Request.Context(), date)
	if err != nil {
		h.failed(c, "network validation", date, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ValidationHandler) failed(c *gin.Context, op string, date time.Time, err error) {
	h.logger.Error(op+" failed", zap.String("date", models.FormatDate(date)), zap.Error(err))
	if errors.Is(err, feasibility.ErrStoreUnavailable) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "entity store unavailable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
}

// Package feasibility decides whether the cold-chain network can serve the
// demand of a date. Both checks are read-only passes over the entity store and
// are safe to run concurrently and to retry.
package feasibility

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// Check names reported to observers.
const (
	CheckTemperature = "temperature"
	CheckNetwork     = "network"
)

// Store is the read surface of the entity store consumed by the checks.
type Store interface {
	DemandsByDate(ctx context.Context, date time.Time) ([]models.DemandRequirement, error)
	StorageUnitsByLocation(ctx context.Context, locationID int64) ([]models.StorageUnit, error)
	RoutesByDestination(ctx context.Context, locationID int64) ([]models.Route, error)
	SumMaxQuantityByLocation(ctx context.Context, date time.Time) ([]models.LocationTotal, error)
	SumCapacityByLocation(ctx context.Context, locationID int64) (int64, error)
}

// Observer receives the outcome of every completed check.
type Observer interface {
	ObserveValidation(check string, ok bool, violations []models.Violation, elapsed time.Duration)
}

// TemperatureResult is the outcome of CheckTemperatureFeasibility.
type TemperatureResult struct {
	Valid      bool               `json:"valid"`
	Issues     []string           `json:"issues"`
	Violations []models.Violation `json:"violations"`
}

// NetworkResult is the outcome of ValidateNetwork.
type NetworkResult struct {
	Feasible   bool               `json:"feasible"`
	Issues     []string           `json:"issues"`
	Violations []models.Violation `json:"violations"`
}

// Service runs the feasibility checks.
type Service struct {
	store    Store
	observer Observer
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a feasibility service. observer may be nil.
func NewService(store Store, observer Observer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		observer: observer,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) observe(check string, ok bool, violations []models.Violation, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveValidation(check, ok, violations, s.now().Sub(start))
}

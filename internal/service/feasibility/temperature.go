package feasibility

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// CheckTemperatureFeasibility reports, for every demand of date, whether a
// storage unit at the demand's location covers the product's temperature band.
// Issues follow the store's demand order.
func (s *Service) CheckTemperatureFeasibility(ctx context.Context, date time.Time) (*TemperatureResult, error) {
	start := s.now()

	demands, err := s.store.DemandsByDate(ctx, date)
	if err != nil {
		return nil, storeError("load demands by date", err)
	}

	// Units are loaded once per location rather than once per demand.
	unitsByLocation := make(map[int64][]models.StorageUnit)
	violations := make([]models.Violation, 0)

	for _, d := range demands {
		units, ok := unitsByLocation[d.LocationID]
		if !ok {
			units, err = s.store.StorageUnitsByLocation(ctx, d.LocationID)
			if err != nil {
				return nil, storeError("load storage units by location", err)
			}
			unitsByLocation[d.LocationID] = units
		}

		if !anySupports(units, d.Band()) {
			violations = append(violations, temperatureViolation(d))
		}
	}

	result := &TemperatureResult{
		Valid:      len(violations) == 0,
		Issues:     models.Messages(violations),
		Violations: violations,
	}

	s.observe(CheckTemperature, result.Valid, violations, start)
	s.logger.Debug("temperature feasibility checked",
		zap.String("date", models.FormatDate(date)),
		zap.Int("demands", len(demands)),
		zap.Bool("valid", result.Valid),
		zap.Int("issues", len(result.Issues)))

	return result, nil
}

func anySupports(units []models.StorageUnit, band models.TemperatureBand) bool {
	for _, u := range units {
		if u.Supports(band) {
			return true
		}
	}
	return false
}

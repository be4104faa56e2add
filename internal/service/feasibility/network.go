package feasibility

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

// ValidateNetwork checks that the storage and route capacities of the network
// can absorb the maximum demand of date.
//
// For each location with demand, in ascending location order, three
// constraint classes are evaluated independently and every violation is kept:
//
//  1. storage capacity: the location's own storage must hold its total demand.
//     Checked when the location owns storage units or has no inbound route.
//  2. supplier capacity: the inbound routes, bounded by the storage of the
//     locations they come from, must deliver the total demand.
//  3. minimum shipment: no inbound route may require shipping more than the
//     total demand.
func (s *Service) ValidateNetwork(ctx context.Context, date time.Time) (*NetworkResult, error) {
	start := s.now()

	totals, err := s.store.SumMaxQuantityByLocation(ctx, date)
	if err != nil {
		return nil, storeError("sum max quantity by location", err)
	}

	violations := make([]models.Violation, 0)
	supplierStorage := make(map[int64]int64)

	for _, total := range totals {
		found, err := s.checkLocation(ctx, total, supplierStorage)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}

	result := &NetworkResult{
		Feasible:   len(violations) == 0,
		Issues:     models.Messages(violations),
		Violations: violations,
	}

	s.observe(CheckNetwork, result.Feasible, violations, start)
	s.logger.Debug("network feasibility validated",
		zap.String("date", models.FormatDate(date)),
		zap.Int("locations", len(totals)),
		zap.Bool("feasible", result.Feasible),
		zap.Int("issues", len(result.Issues)))

	return result, nil
}

func (s *Service) checkLocation(ctx context.Context, total models.LocationTotal, supplierStorage map[int64]int64) ([]models.Violation, error) {
	units, err := s.store.StorageUnitsByLocation(ctx, total.LocationID)
	if err != nil {
		return nil, storeError("load storage units by location", err)
	}

	routes, err := s.store.RoutesByDestination(ctx, total.LocationID)
	if err != nil {
		return nil, storeError("load routes by destination", err)
	}
	sort.SliceStable(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })

	var violations []models.Violation

	if len(units) > 0 || len(routes) == 0 {
		var storageCapacity int64
		for _, u := range units {
			storageCapacity += u.Capacity
		}
		if total.Total > storageCapacity {
			violations = append(violations, maxCapacityViolation(total.LocationID, total.Total, storageCapacity))
		}
	}

	if len(routes) == 0 {
		return violations, nil
	}

	var routeCapacity, supplierCapacity int64
	seen := make(map[int64]bool)
	for _, r := range routes {
		routeCapacity += r.Capacity
		if seen[r.FromLocationID] {
			continue
		}
		seen[r.FromLocationID] = true

		capacity, ok := supplierStorage[r.FromLocationID]
		if !ok {
			capacity, err = s.store.SumCapacityByLocation(ctx, r.FromLocationID)
			if err != nil {
				return nil, storeError("sum capacity by location", err)
			}
			supplierStorage[r.FromLocationID] = capacity
		}
		supplierCapacity += capacity
	}

	if total.Total > min(supplierCapacity, routeCapacity) {
		violations = append(violations, supplierCapacityViolation(total.LocationID, total.Total, supplierCapacity, routeCapacity))
	}

	for _, r := range routes {
		if r.MinShipment > total.Total {
			violations = append(violations, minShipmentViolation(r, total.Total))
		}
	}

	return violations, nil
}

// Package memory provides an in-process entity store. It backs the memory
// store driver and doubles as the fixture for service level tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/repository"
)

// Store keeps every entity collection in memory. Entities are kept in
// insertion order, which is also ascending id order.
type Store struct {
	mu sync.RWMutex

	nextID       int64
	locations    []models.Location
	products     []models.Product
	storageUnits []models.StorageUnit
	routes       []models.Route
	demands      []models.Demand
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) allocateID() int64 {
	s.nextID++
	return s.nextID
}

// CreateLocation inserts a location and returns it with its id.
func (s *Store) CreateLocation(_ context.Context, loc models.Location) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loc.ID = s.allocateID()
	s.locations = append(s.locations, loc)
	return &loc, nil
}

// CreateProduct inserts a product and returns it with its id.
func (s *Store) CreateProduct(_ context.Context, p models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.allocateID()
	s.products = append(s.products, p)
	return &p, nil
}

// CreateStorageUnit inserts a storage unit. The location must exist.
func (s *Store) CreateStorageUnit(_ context.Context, u models.StorageUnit) (*models.StorageUnit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocation(u.LocationID); !ok {
		return nil, fmt.Errorf("storage unit location %d: %w", u.LocationID, repository.ErrNotFound)
	}
	u.ID = s.allocateID()
	s.storageUnits = append(s.storageUnits, u)
	return &u, nil
}

// CreateRoute inserts a route. Both endpoints must exist.
func (s *Store) CreateRoute(_ context.Context, r models.Route) (*models.Route, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range []int64{r.FromLocationID, r.ToLocationID} {
		if _, ok := s.findLocation(id); !ok {
			return nil, fmt.Errorf("route location %d: %w", id, repository.ErrNotFound)
		}
	}
	r.ID = s.allocateID()
	s.routes = append(s.routes, r)
	return &r, nil
}

// CreateDemand inserts a demand. Location and product must exist.
func (s *Store) CreateDemand(_ context.Context, d models.Demand) (*models.Demand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocation(d.LocationID); !ok {
		return nil, fmt.Errorf("demand location %d: %w", d.LocationID, repository.ErrNotFound)
	}
	if _, ok := s.findProduct(d.ProductID); !ok {
		return nil, fmt.Errorf("demand product %d: %w", d.ProductID, repository.ErrNotFound)
	}
	d.ID = s.allocateID()
	d.Date = models.NormalizeDate(d.Date)
	s.demands = append(s.demands, d)
	return &d, nil
}

// GetLocation returns the location with the given id.
func (s *Store) GetLocation(_ context.Context, id int64) (*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loc, ok := s.findLocation(id)
	if !ok {
		return nil, fmt.Errorf("location %d: %w", id, repository.ErrNotFound)
	}
	return &loc, nil
}

// GetProduct returns the product with the given id.
func (s *Store) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.findProduct(id)
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}
	return &p, nil
}

// ListLocations returns every location.
func (s *Store) ListLocations(context.Context) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Location{}, s.locations...), nil
}

// ListProducts returns every product.
func (s *Store) ListProducts(context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product{}, s.products...), nil
}

// ListStorageUnits returns every storage unit.
func (s *Store) ListStorageUnits(context.Context) ([]models.StorageUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StorageUnit{}, s.storageUnits...), nil
}

// ListRoutes returns every route.
func (s *Store) ListRoutes(context.Context) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Route{}, s.routes...), nil
}

// ListDemands returns every demand.
func (s *Store) ListDemands(context.Context) ([]models.Demand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Demand{}, s.demands...), nil
}

// DemandsByDate returns the demands of date joined with their product band.
func (s *Store) DemandsByDate(_ context.Context, date time.Time) ([]models.DemandRequirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.DemandRequirement
	for _, d := range s.demands {
		if !models.SameDate(d.Date, date) {
			continue
		}
		p, ok := s.findProduct(d.ProductID)
		if !ok {
			continue
		}
		out = append(out, models.DemandRequirement{
			DemandID:       d.ID,
			LocationID:     d.LocationID,
			ProductID:      p.ID,
			ProductName:    p.Name,
			MinTemperature: p.MinTemperature,
			MaxTemperature: p.MaxTemperature,
		})
	}
	return out, nil
}

// StorageUnitsByLocation returns the storage units attached to a location.
func (s *Store) StorageUnitsByLocation(_ context.Context, locationID int64) ([]models.StorageUnit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.StorageUnit
	for _, u := range s.storageUnits {
		if u.LocationID == locationID {
			out = append(out, u)
		}
	}
	return out, nil
}

// RoutesByDestination returns the routes delivering into a location.
func (s *Store) RoutesByDestination(_ context.Context, locationID int64) ([]models.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Route
	for _, r := range s.routes {
		if r.ToLocationID == locationID {
			out = append(out, r)
		}
	}
	return out, nil
}

// SumMaxQuantityByLocation totals demand max quantities per location for a
// date, ordered by location id.
func (s *Store) SumMaxQuantityByLocation(_ context.Context, date time.Time) ([]models.LocationTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[int64]int64)
	for _, d := range s.demands {
		if models.SameDate(d.Date, date) {
			totals[d.LocationID] += d.MaxQuantity
		}
	}

	out := make([]models.LocationTotal, 0, len(totals))
	for id, total := range totals {
		out = append(out, models.LocationTotal{LocationID: id, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationID < out[j].LocationID })
	return out, nil
}

// SumCapacityByLocation totals the storage capacity of a location.
func (s *Store) SumCapacityByLocation(_ context.Context, locationID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int64
	for _, u := range s.storageUnits {
		if u.LocationID == locationID {
			total += u.Capacity
		}
	}
	return total, nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) findLocation(id int64) (models.Location, bool) {
	for _, loc := range s.locations {
		if loc.ID == id {
			return loc, true
		}
	}
	return models.Location{}, false
}

func (s *Store) findProduct(id int64) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

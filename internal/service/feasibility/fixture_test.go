package feasibility

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
	"github.com/mamadbah2/frostbyte/internal/repository/memory"
)

var dayD = time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

// network builds entity snapshots on top of the in-memory store.
type network struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
}

func newNetwork(t *testing.T) *network {
	t.Helper()
	return &network{t: t, ctx: context.Background(), store: memory.NewStore()}
}

func (n *network) location(name string, typ models.LocationType) int64 {
	n.t.Helper()
	loc, err := n.store.CreateLocation(n.ctx, models.Location{Name: name, Type: typ, City: "Reykjavik"})
	require.NoError(n.t, err)
	return loc.ID
}

func (n *network) product(name, minTemp, maxTemp string) int64 {
	n.t.Helper()
	p, err := n.store.CreateProduct(n.ctx, models.Product{
		Name:           name,
		MinTemperature: decimal.RequireFromString(minTemp),
		MaxTemperature: decimal.RequireFromString(maxTemp),
	})
	require.NoError(n.t, err)
	return p.ID
}

func (n *network) storage(locationID int64, minTemp, maxTemp string, capacity int64) int64 {
	n.t.Helper()
	u, err := n.store.CreateStorageUnit(n.ctx, models.StorageUnit{
		LocationID:     locationID,
		MinTemperature: decimal.RequireFromString(minTemp),
		MaxTemperature: decimal.RequireFromString(maxTemp),
		Capacity:       capacity,
	})
	require.NoError(n.t, err)
	return u.ID
}

func (n *network) route(from, to, capacity, minShipment int64) int64 {
	n.t.Helper()
	r, err := n.store.CreateRoute(n.ctx, models.Route{
		FromLocationID: from,
		ToLocationID:   to,
		Capacity:       capacity,
		MinShipment:    minShipment,
	})
	require.NoError(n.t, err)
	return r.ID
}

func (n *network) demand(locationID, productID int64, date time.Time, minQty, maxQty int64) int64 {
	n.t.Helper()
	d, err := n.store.CreateDemand(n.ctx, models.Demand{
		LocationID:  locationID,
		ProductID:   productID,
		Date:        date,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
	})
	require.NoError(n.t, err)
	return d.ID
}

func (n *network) service() *Service {
	return NewService(n.store, nil, nil)
}

// failingStore fails the named read and delegates everything else.
type failingStore struct {
	Store
	failOn string
}

var errConnectionLost = errors.New("connection lost")

func (f failingStore) fail(op string) error {
	if f.failOn == op {
		return errConnectionLost
	}
	return nil
}

func (f failingStore) DemandsByDate(ctx context.Context, date time.Time) ([]models.DemandRequirement, error) {
	if err := f.fail("DemandsByDate"); err != nil {
		return nil, err
	}
	return f.Store.DemandsByDate(ctx, date)
}

func (f failingStore) StorageUnitsByLocation(ctx context.Context, id int64) ([]models.StorageUnit, error) {
	if err := f.fail("StorageUnitsByLocation"); err != nil {
		return nil, err
	}
	return f.Store.StorageUnitsByLocation(ctx, id)
}

func (f failingStore) RoutesByDestination(ctx context.Context, id int64) ([]models.Route, error) {
	if err := f.fail("RoutesByDestination"); err != nil {
		return nil, err
	}
	return f.Store.RoutesByDestination(ctx, id)
}

func (f failingStore) SumMaxQuantityByLocation(ctx context.Context, date time.Time) ([]models.LocationTotal, error) {
	if err := f.fail("SumMaxQuantityByLocation"); err != nil {
		return nil, err
	}
	return f.Store.SumMaxQuantityByLocation(ctx, date)
}

func (f failingStore) SumCapacityByLocation(ctx context.Context, id int64) (int64, error) {
	if err := f.fail("SumCapacityByLocation"); err != nil {
		return 0, err
	}
	return f.Store.SumCapacityByLocation(ctx, id)
}

type recordedObservation struct {
	check      string
	ok         bool
	violations int
}

type recordingObserver struct {
	calls []recordedObservation
}

func (r *recordingObserver) ObserveValidation(check string, ok bool, violations []models.Violation, _ time.Duration) {
	r.calls = append(r.calls, recordedObservation{check: check, ok: ok, violations: len(violations)})
}

func codes(violations []models.Violation) []models.ViolationCode {
	out := make([]models.ViolationCode, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Code)
	}
	return out
}

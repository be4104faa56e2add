package feasibility

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

func TestCheckTemperatureFeasibility_NoDemandIsValid(t *testing.T) {
	n := newNetwork(t)

	result, err := n.service().CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
}

func TestCheckTemperatureFeasibility_CoveredBands(t *testing.T) {
	n := newNetwork(t)
	w := n.location("W", models.LocationWarehouse)
	n.storage(w, "-25", "-15", 10)
	n.storage(w, "0", "10", 10)
	milk := n.product("Milk", "2", "5")
	fish := n.product("Fish", "-20", "-18")
	edge := n.product("Edge", "0", "10")
	n.demand(w, milk, dayD, 1, 5)
	n.demand(w, fish, dayD, 1, 5)
	n.demand(w, edge, dayD, 1, 5)

	result, err := n.service().CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.True(t, result.Valid)
	assert.Empty(t, result.Issues)
}

func TestCheckTemperatureFeasibility_ScenarioD_Mismatch(t *testing.T) {
	n := newNetwork(t)
	w := n.location("W", models.LocationWarehouse)
	n.storage(w, "0", "10", 100)
	tropical := n.product("Bananas", "12", "15")
	demandID := n.demand(w, tropical, dayD, 1, 5)

	result, err := n.service().CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.False(t, result.Valid)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "Product Bananas requires temp 12-15 but no suitable storage found at location.", result.Issues[0])

	v := result.Violations[0]
	assert.Equal(t, models.ViolationTemperature, v.Code)
	assert.Equal(t, tropical, v.ProductID)
	assert.Equal(t, demandID, v.DemandID)
	assert.Equal(t, "12-15", v.RequiredBand)
}

func TestCheckTemperatureFeasibility_PartialOverlapIsNotSupport(t *testing.T) {
	n := newNetwork(t)
	w := n.location("W", models.LocationWarehouse)
	n.storage(w, "0", "4", 10)
	n.storage(w, "4", "8", 10)
	milk := n.product("Milk", "2", "5")
	n.demand(w, milk, dayD, 1, 5)

	result, err := n.service().CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.False(t, result.Valid)
}

func TestCheckTemperatureFeasibility_StorageMustBeAtDemandLocation(t *testing.T) {
	n := newNetwork(t)
	w := n.location("W", models.LocationWarehouse)
	r := n.location("R", models.LocationRetailer)
	n.storage(w, "0", "10", 100)
	n.route(w, r, 100, 0)
	milk := n.product("Milk", "2.5", "5")
	ice := n.product("Ice", "-30", "-20")
	n.demand(r, milk, dayD, 1, 5)
	n.demand(w, ice, dayD, 1, 5)

	result, err := n.service().CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Product Milk requires temp 2.5-5 but no suitable storage found at location.",
		"Product Ice requires temp -30--20 but no suitable storage found at location.",
	}, result.Issues)
}

func TestCheckTemperatureFeasibility_StoreFailureAborts(t *testing.T) {
	for _, op := range []string{"DemandsByDate", "StorageUnitsByLocation"} {
		t.Run(op, func(t *testing.T) {
			n := newNetwork(t)
			w := n.location("W", models.LocationWarehouse)
			milk := n.product("Milk", "2", "5")
			n.demand(w, milk, dayD, 1, 5)

			svc := NewService(failingStore{Store: n.store, failOn: op}, nil, nil)
			result, err := svc.CheckTemperatureFeasibility(context.Background(), dayD)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, ErrStoreUnavailable)
		})
	}
}

func TestCheckTemperatureFeasibility_NotifiesObserver(t *testing.T) {
	n := newNetwork(t)
	w := n.location("W", models.LocationWarehouse)
	n.storage(w, "0", "10", 100)
	milk := n.product("Milk", "2", "5")
	n.demand(w, milk, dayD, 1, 5)

	obs := &recordingObserver{}
	_, err := NewService(n.store, obs, nil).CheckTemperatureFeasibility(context.Background(), dayD)
	require.NoError(t, err)

	assert.Equal(t, []recordedObservation{{check: CheckTemperature, ok: true}}, obs.calls)
}

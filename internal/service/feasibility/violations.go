package feasibility

import (
	"fmt"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

func temperatureViolation(d models.DemandRequirement) models.Violation {
	band := d.Band().String()
	return models.Violation{
		Code:         models.ViolationTemperature,
		LocationID:   d.LocationID,
		ProductID:    d.ProductID,
		DemandID:     d.DemandID,
		RequiredBand: band,
		Message:      fmt.Sprintf("Product %s requires temp %s but no suitable storage found at location.", d.ProductName, band),
	}
}

func maxCapacityViolation(locationID, needed, available int64) models.Violation {
	return models.Violation{
		Code:       models.ViolationMaxCapacity,
		LocationID: locationID,
		Required:   needed,
		Available:  available,
		Message: fmt.Sprintf("%s: Location %d needs %d capacity but only has %d",
			models.ViolationMaxCapacity, locationID, needed, available),
	}
}

// supplierCapacityViolation reports demand that the supplying locations cannot
// deliver: inbound is the smaller of their storage and the route capacity.
func supplierCapacityViolation(locationID, needed, supplierStorage, routeCapacity int64) models.Violation {
	inbound := min(supplierStorage, routeCapacity)
	return models.Violation{
		Code:       models.ViolationSupplierCapacity,
		LocationID: locationID,
		Required:   needed,
		Available:  inbound,
		Message: fmt.Sprintf("%s: Location %d demand %d exceeds storage capacity of suppliers (deliverable %d: supplier storage %d, route capacity %d)",
			models.ViolationSupplierCapacity, locationID, needed, inbound, supplierStorage, routeCapacity),
	}
}

func minShipmentViolation(route models.Route, needed int64) models.Violation {
	return models.Violation{
		Code:       models.ViolationMinCapacity,
		LocationID: route.ToLocationID,
		RouteID:    route.ID,
		Required:   route.MinShipment,
		Available:  needed,
		Message: fmt.Sprintf("%s: Route %d into location %d requires a minimum shipment of %d but total demand is only %d",
			models.ViolationMinCapacity, route.ID, route.ToLocationID, route.MinShipment, needed),
	}
}

package models

import "strings"

// LocationType classifies a node of the logistics network.
type LocationType string

const (
	LocationWarehouse LocationType = "WAREHOUSE"
	LocationRetailer  LocationType = "RETAILER"
	LocationSupplier  LocationType = "SUPPLIER"
)

// ParseLocationType normalizes free-form input into a LocationType.
func ParseLocationType(value string) LocationType {
	return LocationType(strings.ToUpper(strings.TrimSpace(value)))
}

// CanHoldStorage reports whether storage units may be attached to the location type.
func (t LocationType) CanHoldStorage() bool {
	return t == LocationWarehouse
}

// Location is a warehouse, retailer or supplier site.
type Location struct {
	ID   int64        `json:"id" bson:"id"`
	Name string       `json:"name" bson:"name"`
	Type LocationType `json:"type" bson:"type"`
	City string       `json:"city" bson:"city"`
}

package models

import "github.com/shopspring/decimal"

// StorageUnit is a temperature controlled storage area inside a warehouse.
type StorageUnit struct {
	ID             int64           `json:"id"`
	LocationID     int64           `json:"locationId"`
	MinTemperature decimal.Decimal `json:"minTemperature"`
	MaxTemperature decimal.Decimal `json:"maxTemperature"`
	Capacity       int64           `json:"capacity"`
}

// Band returns the temperature band the unit can hold.
func (u StorageUnit) Band() TemperatureBand {
	return TemperatureBand{Min: u.MinTemperature, Max: u.MaxTemperature}
}

// Supports reports whether the unit can store a product with the given band.
func (u StorageUnit) Supports(product TemperatureBand) bool {
	return u.Band().Contains(product)
}

package models

import "github.com/shopspring/decimal"

// CreateLocationRequest is the payload accepted by POST /locations.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type string `json:"type" validate:"required,location_type"`
	City string `json:"city" validate:"required,max=255"`
}

// CreateProductRequest is the payload accepted by POST /products.
type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,max=255"`
	MinTemperature *decimal.Decimal `json:"minTemperature" validate:"required"`
	MaxTemperature *decimal.Decimal `json:"maxTemperature" validate:"required"`
}

// CreateStorageUnitRequest is the payload accepted by POST /storage-units.
type CreateStorageUnitRequest struct {
	LocationID     int64            `json:"locationId" validate:"required,gt=0"`
	MinTemperature *decimal.Decimal `json:"minTemperature" validate:"required"`
	MaxTemperature *decimal.Decimal `json:"maxTemperature" validate:"required"`
	Capacity       int64            `json:"capacity" validate:"gte=0"`
}

// CreateRouteRequest is the payload accepted by POST /routes.
type CreateRouteRequest struct {
	FromLocationID int64 `json:"fromLocationId" validate:"required,gt=0"`
	ToLocationID   int64 `json:"toLocationId" validate:"required,gt=0"`
	Capacity       int64 `json:"capacity" validate:"gte=0"`
	MinShipment    int64 `json:"minShipment" validate:"gte=0,ltefield=Capacity"`
}

// CreateDemandRequest is the payload accepted by POST /demands.
type CreateDemandRequest struct {
	LocationID  int64  `json:"locationId" validate:"required,gt=0"`
	ProductID   int64  `json:"productId" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	MinQuantity int64  `json:"minQuantity" validate:"gte=0"`
	MaxQuantity int64  `json:"maxQuantity" validate:"gte=0,gtefield=MinQuantity"`
}

// DateRequest is the payload of the validation endpoints.
type DateRequest struct {
	Date string `json:"date"`
}

// NetworkSummary is a full dump of the entity store.
type NetworkSummary struct {
	Locations    []Location    `json:"locations"`
	Products     []Product     `json:"products"`
	StorageUnits []StorageUnit `json:"storageUnits"`
	Routes       []Route       `json:"routes"`
	Demands      []Demand      `json:"demands"`
}

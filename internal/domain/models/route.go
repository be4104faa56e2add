package models

// Route is a transport lane between two locations with per period limits.
type Route struct {
	ID             int64 `json:"id"`
	FromLocationID int64 `json:"fromLocationId"`
	ToLocationID   int64 `json:"toLocationId"`
	Capacity       int64 `json:"capacity"`
	MinShipment    int64 `json:"minShipment"`
}

package models

// ViolationCode is the stable tag carried by every feasibility violation.
// The token values are part of the external contract.
type ViolationCode string

const (
	ViolationMaxCapacity      ViolationCode = "MAX_CAPACITY_VIOLATION"
	ViolationMinCapacity      ViolationCode = "MIN_CAPACITY_VIOLATION"
	ViolationSupplierCapacity ViolationCode = "SUPPLIER_CAPACITY_VIOLATION"
	ViolationTemperature      ViolationCode = "TEMPERATURE_VIOLATION"
)

// Violation describes one broken feasibility constraint.
type Violation struct {
	Code       ViolationCode `json:"code" bson:"code"`
	LocationID int64         `json:"locationId,omitempty" bson:"location_id,omitempty"`
	RouteID    int64         `json:"routeId,omitempty" bson:"route_id,omitempty"`
	ProductID  int64         `json:"productId,omitempty" bson:"product_id,omitempty"`
	DemandID   int64         `json:"demandId,omitempty" bson:"demand_id,omitempty"`
	// Required is the quantity the network must absorb; Available is what the
	// constraint allows.
	Required     int64  `json:"required" bson:"required"`
	Available    int64  `json:"available" bson:"available"`
	RequiredBand string `json:"requiredBand,omitempty" bson:"required_band,omitempty"`
	Message      string `json:"message" bson:"message"`
}

// Messages returns the rendered message of every violation, preserving order.
func Messages(violations []Violation) []string {
	issues := make([]string, 0, len(violations))
	for _, v := range violations {
		issues = append(issues, v.Message)
	}
	return issues
}

// CountByCode tallies violations per code.
func CountByCode(violations []Violation) map[ViolationCode]int {
	counts := make(map[ViolationCode]int)
	for _, v := range violations {
		counts[v.Code]++
	}
	return counts
}

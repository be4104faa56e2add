package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Demand is the quantity range a location requests for a product on a date.
type Demand struct {
	ID          int64     `json:"id"`
	LocationID  int64     `json:"locationId"`
	ProductID   int64     `json:"productId"`
	Date        time.Time `json:"-"`
	MinQuantity int64     `json:"minQuantity"`
	MaxQuantity int64     `json:"maxQuantity"`
}

// demandJSON mirrors Demand with the date rendered as YYYY-MM-DD.
type demandJSON struct {
	ID          int64  `json:"id"`
	LocationID  int64  `json:"locationId"`
	ProductID   int64  `json:"productId"`
	Date        string `json:"date"`
	MinQuantity int64  `json:"minQuantity"`
	MaxQuantity int64  `json:"maxQuantity"`
}

// MarshalJSON renders the demand date without a time component.
func (d Demand) MarshalJSON() ([]byte, error) {
	return json.Marshal(demandJSON{
		ID:          d.ID,
		LocationID:  d.LocationID,
		ProductID:   d.ProductID,
		Date:        FormatDate(d.Date),
		MinQuantity: d.MinQuantity,
		MaxQuantity: d.MaxQuantity,
	})
}

// DemandRequirement is a demand joined with its product's temperature band.
type DemandRequirement struct {
	DemandID       int64
	LocationID     int64
	ProductID      int64
	ProductName    string
	MinTemperature decimal.Decimal
	MaxTemperature decimal.Decimal
}

// Band returns the temperature band required by the demanded product.
func (r DemandRequirement) Band() TemperatureBand {
	return TemperatureBand{Min: r.MinTemperature, Max: r.MaxTemperature}
}

// LocationTotal is an aggregate quantity for one location.
type LocationTotal struct {
	LocationID int64 `json:"locationId"`
	Total      int64 `json:"total"`
}

// ParseDate parses a YYYY-MM-DD date. RFC3339 timestamps are accepted and
// reduced to their calendar date; anything else is rejected.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if d, err := time.Parse(DateLayout, value); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: expected %s", value, DateLayout)
	}
	return NormalizeDate(ts), nil
}

// NormalizeDate drops the time component and location of t.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

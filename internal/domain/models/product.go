package models

import "github.com/shopspring/decimal"

func init() {
	// Temperatures are exchanged as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a good with a required storage temperature band.
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	MinTemperature decimal.Decimal `json:"minTemperature"`
	MaxTemperature decimal.Decimal `json:"maxTemperature"`
}

// TemperatureBand is an inclusive temperature range.
type TemperatureBand struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// Contains reports whether the band fully covers other.
func (b TemperatureBand) Contains(other TemperatureBand) bool {
	return b.Min.LessThanOrEqual(other.Min) && b.Max.GreaterThanOrEqual(other.Max)
}

// String renders the band as "<min>-<max>".
func (b TemperatureBand) String() string {
	return b.Min.String() + "-" + b.Max.String()
}

// Band returns the product's required temperature band.
func (p Product) Band() TemperatureBand {
	return TemperatureBand{Min: p.MinTemperature, Max: p.MaxTemperature}
}

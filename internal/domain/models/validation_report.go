package models

import "time"

// ValidationReport is the archived outcome of a full validation run for a date.
type ValidationReport struct {
	ID                string      `bson:"_id" json:"id"`
	Date              string      `bson:"date" json:"date"`
	TemperatureValid  bool        `bson:"temperature_valid" json:"temperatureValid"`
	NetworkFeasible   bool        `bson:"network_feasible" json:"networkFeasible"`
	TemperatureIssues []string    `bson:"temperature_issues" json:"temperatureIssues"`
	NetworkIssues     []string    `bson:"network_issues" json:"networkIssues"`
	Violations        []Violation `bson:"violations" json:"violations"`
	Trigger           string      `bson:"trigger" json:"trigger"`
	CreatedAt         time.Time   `bson:"created_at" json:"createdAt"`
}

// OK reports whether both checks passed.
func (r ValidationReport) OK() bool {
	return r.TemperatureValid && r.NetworkFeasible
}

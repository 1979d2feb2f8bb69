package model

// Scenario selects which optional mechanisms are active in a projection run.
type Scenario string

const (
	StatusQuo           Scenario = "status_quo"
	ExpansionOnly       Scenario = "expansion_only"
	ExpansionWithAnchor Scenario = "expansion_with_anchor"
)

// Scenarios lists every scenario in display order.
func Scenarios() []Scenario {
	return []Scenario{StatusQuo, ExpansionOnly, ExpansionWithAnchor}
}

// HasExpansion reports whether the hydro expansion (capacity step and debt
// service) is active in this scenario.
func (s Scenario) HasExpansion() bool {
	return s == ExpansionOnly || s == ExpansionWithAnchor
}

// HasAnchor reports whether the anchor customer (load and revenue) is active.
func (s Scenario) HasAnchor() bool {
	return s == ExpansionWithAnchor
}

// Valid reports whether s is one of the three known scenarios.
func (s Scenario) Valid() bool {
	switch s {
	case StatusQuo, ExpansionOnly, ExpansionWithAnchor:
		return true
	}
	return false
}

// ScenarioInfo holds the display name for a scenario.
type ScenarioInfo struct {
	Name string
}

// ScenarioCatalog maps every scenario to its display name.
var ScenarioCatalog = map[Scenario]ScenarioInfo{
	StatusQuo:           {Name: "Status Quo"},
	ExpansionOnly:       {Name: "Expansion Only"},
	ExpansionWithAnchor: {Name: "Expansion + Anchor"},
}

// YearRange is an inclusive range of calendar years. Start doubles as the
// base year from which load growth and diesel escalation compound.
type YearRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// DefaultYearRange is the standard projection horizon.
var DefaultYearRange = YearRange{Start: 2023, End: 2035}

// Valid reports whether the range covers at least one year.
func (yr YearRange) Valid() bool {
	return yr.End >= yr.Start
}

// Years returns the number of years in the inclusive range.
func (yr YearRange) Years() int {
	if !yr.Valid() {
		return 0
	}
	return yr.End - yr.Start + 1
}

// Contains reports whether year falls inside the range.
func (yr YearRange) Contains(year int) bool {
	return year >= yr.Start && year <= yr.End
}

// YearRecord is one year of a scenario projection. Energy quantities are
// MWh, money is dollars, and the retail rate is $/kWh.
type YearRecord struct {
	Year          int     `json:"year"`
	CommunityMWh  float64 `json:"community_mwh"`
	AnchorMWh     float64 `json:"anchor_mwh"`
	TotalMWh      float64 `json:"total_mwh"`
	HydroCapMWh   float64 `json:"hydro_cap_mwh"`
	HydroMWh      float64 `json:"hydro_mwh"`
	DieselMWh     float64 `json:"diesel_mwh"`
	DieselRate    float64 `json:"diesel_rate"` // $/MWh this year
	HydroCost     float64 `json:"hydro_cost"`
	DieselCost    float64 `json:"diesel_cost"`
	DebtService   float64 `json:"debt_service"`
	AnchorRevenue float64 `json:"anchor_revenue"`
	TotalCost     float64 `json:"total_cost"`
	CommunityCost float64 `json:"community_cost"`
	RateKWh       float64 `json:"rate_kwh"`
}

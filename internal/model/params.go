package model

import (
	"fmt"
	"strings"
)

// Params is the full set of user-adjustable model inputs. A bundle is built
// once per computation and never mutated afterwards; every field is a plain
// scalar so bundles compare by value and can key a memoization cache.
type Params struct {
	// Community load
	BaseLoadMWh   float64 `json:"base_load_mwh" yaml:"base_load_mwh"`
	Phase1Growth  float64 `json:"phase1_growth" yaml:"phase1_growth"`
	Phase1EndYear int     `json:"phase1_end_year" yaml:"phase1_end_year"`
	Phase2Growth  float64 `json:"phase2_growth" yaml:"phase2_growth"`

	// Hydro supply
	HydroCapMWh   float64 `json:"hydro_cap_mwh" yaml:"hydro_cap_mwh"`
	WholesaleRate float64 `json:"wholesale_rate" yaml:"wholesale_rate"` // $/MWh
	ExpansionYear int     `json:"expansion_year" yaml:"expansion_year"`
	ExpansionMWh  float64 `json:"expansion_mwh" yaml:"expansion_mwh"`

	// Diesel backup
	DieselFloorMWh   float64 `json:"diesel_floor_mwh" yaml:"diesel_floor_mwh"`
	DieselBaseCost   float64 `json:"diesel_base_cost" yaml:"diesel_base_cost"` // $/MWh at the base year
	DieselEscalation float64 `json:"diesel_escalation" yaml:"diesel_escalation"`

	// Utility overhead
	FixedCost float64 `json:"fixed_cost" yaml:"fixed_cost"` // $/yr

	// Expansion financing
	CapEx         float64 `json:"capex" yaml:"capex"`
	DebtShare     float64 `json:"debt_share" yaml:"debt_share"`
	FinancingRate float64 `json:"financing_rate" yaml:"financing_rate"`
	BondTermYears int     `json:"bond_term_years" yaml:"bond_term_years"`

	// Anchor customer
	AnchorMW             float64 `json:"anchor_mw" yaml:"anchor_mw"`
	AnchorCapacityFactor float64 `json:"anchor_capacity_factor" yaml:"anchor_capacity_factor"`
	AnchorTariffKWh      float64 `json:"anchor_tariff_kwh" yaml:"anchor_tariff_kwh"` // $/kWh

	// Community baseline (display inputs; never read by the engine's dispatch math)
	BaseRateKWh    float64 `json:"base_rate_kwh" yaml:"base_rate_kwh"`
	Households     int     `json:"households" yaml:"households"`
	HouseholdKWh   float64 `json:"household_kwh" yaml:"household_kwh"`
	EconMultiplier float64 `json:"econ_multiplier" yaml:"econ_multiplier"`
	JobsPerMW      float64 `json:"jobs_per_mw" yaml:"jobs_per_mw"`
}

// ParamInfo documents one parameter: display name, unit and the sane
// engineering range its value must fall within.
type ParamInfo struct {
	Name    string  `json:"name"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// ParamCatalog maps every parameter slug to its documented range and default.
// Defaults are calibrated from the 2023 EIA-861 filing for the community plus
// public hydro-authority sources; the wholesale rate and hydro cap are
// back-calculated from observed sales and diesel usage.
var ParamCatalog = map[string]ParamInfo{
	"base_load_mwh":          {Name: "Baseline community load", Unit: "MWh/yr", Min: 20_000, Max: 80_000, Default: 40_708},
	"phase1_growth":          {Name: "Adoption-phase load growth", Unit: "fraction/yr", Min: 0.01, Max: 0.10, Default: 0.05},
	"phase1_end_year":        {Name: "Adoption phase ends", Unit: "year", Min: 2024, Max: 2032, Default: 2027},
	"phase2_growth":          {Name: "Steady-state load growth", Unit: "fraction/yr", Min: 0.005, Max: 0.05, Default: 0.02},
	"hydro_cap_mwh":          {Name: "Hydro energy cap", Unit: "MWh/yr", Min: 20_000, Max: 60_000, Default: 40_200},
	"wholesale_rate":         {Name: "Wholesale hydro rate", Unit: "$/MWh", Min: 50, Max: 150, Default: 93},
	"expansion_year":         {Name: "Expansion online", Unit: "year", Min: 2024, Max: 2032, Default: 2027},
	"expansion_mwh":          {Name: "New hydro energy from expansion", Unit: "MWh/yr", Min: 10_000, Max: 60_000, Default: 37_000},
	"diesel_floor_mwh":       {Name: "Diesel operational floor", Unit: "MWh/yr", Min: 0, Max: 2_000, Default: 200},
	"diesel_base_cost":       {Name: "Diesel all-in cost", Unit: "$/MWh", Min: 80, Max: 300, Default: 150},
	"diesel_escalation":      {Name: "Diesel cost escalation", Unit: "fraction/yr", Min: 0, Max: 0.06, Default: 0.03},
	"fixed_cost":             {Name: "Utility fixed costs", Unit: "$/yr", Min: 500_000, Max: 5_000_000, Default: 1_200_000},
	"capex":                  {Name: "Expansion capex", Unit: "$", Min: 10_000_000, Max: 50_000_000, Default: 20_000_000},
	"debt_share":             {Name: "Community share of expansion debt", Unit: "fraction", Min: 0.20, Max: 0.60, Default: 0.40},
	"financing_rate":         {Name: "Financing rate", Unit: "fraction", Min: 0, Max: 0.08, Default: 0.05},
	"bond_term_years":        {Name: "Bond term", Unit: "years", Min: 1, Max: 40, Default: 25},
	"anchor_mw":              {Name: "Anchor nameplate load", Unit: "MW", Min: 0.5, Max: 5.0, Default: 2.0},
	"anchor_capacity_factor": {Name: "Anchor capacity factor", Unit: "fraction", Min: 0.70, Max: 0.99, Default: 0.90},
	"anchor_tariff_kwh":      {Name: "Anchor tariff", Unit: "$/kWh", Min: 0.07, Max: 0.20, Default: 0.12},
	"base_rate_kwh":          {Name: "Observed base-year retail rate", Unit: "$/kWh", Min: 0.08, Max: 0.20, Default: 0.1232},
	"households":             {Name: "Residential accounts", Unit: "count", Min: 500, Max: 3_000, Default: 1_174},
	"household_kwh":          {Name: "Average household usage", Unit: "kWh/yr", Min: 3_000, Max: 20_000, Default: 9_000},
	"econ_multiplier":        {Name: "Local spending multiplier", Unit: "x", Min: 1.0, Max: 2.5, Default: 1.7},
	"jobs_per_mw":            {Name: "Operating jobs per anchor MW", Unit: "jobs/MW", Min: 0.5, Max: 5.0, Default: 1.5},
}

// DefaultParams returns a bundle populated from the catalog defaults.
func DefaultParams() Params {
	return Params{
		BaseLoadMWh:          ParamCatalog["base_load_mwh"].Default,
		Phase1Growth:         ParamCatalog["phase1_growth"].Default,
		Phase1EndYear:        int(ParamCatalog["phase1_end_year"].Default),
		Phase2Growth:         ParamCatalog["phase2_growth"].Default,
		HydroCapMWh:          ParamCatalog["hydro_cap_mwh"].Default,
		WholesaleRate:        ParamCatalog["wholesale_rate"].Default,
		ExpansionYear:        int(ParamCatalog["expansion_year"].Default),
		ExpansionMWh:         ParamCatalog["expansion_mwh"].Default,
		DieselFloorMWh:       ParamCatalog["diesel_floor_mwh"].Default,
		DieselBaseCost:       ParamCatalog["diesel_base_cost"].Default,
		DieselEscalation:     ParamCatalog["diesel_escalation"].Default,
		FixedCost:            ParamCatalog["fixed_cost"].Default,
		CapEx:                ParamCatalog["capex"].Default,
		DebtShare:            ParamCatalog["debt_share"].Default,
		FinancingRate:        ParamCatalog["financing_rate"].Default,
		BondTermYears:        int(ParamCatalog["bond_term_years"].Default),
		AnchorMW:             ParamCatalog["anchor_mw"].Default,
		AnchorCapacityFactor: ParamCatalog["anchor_capacity_factor"].Default,
		AnchorTariffKWh:      ParamCatalog["anchor_tariff_kwh"].Default,
		BaseRateKWh:          ParamCatalog["base_rate_kwh"].Default,
		Households:           int(ParamCatalog["households"].Default),
		HouseholdKWh:         ParamCatalog["household_kwh"].Default,
		EconMultiplier:       ParamCatalog["econ_multiplier"].Default,
		JobsPerMW:            ParamCatalog["jobs_per_mw"].Default,
	}
}

// ValidationError reports every parameter problem found in a bundle. The
// whole bundle is checked before any computation starts, so callers see the
// complete list in one failure.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid parameters: " + strings.Join(e.Problems, "; ")
}

// fieldValue pairs a catalog slug with the bundle's current value for it.
type fieldValue struct {
	slug  string
	value float64
}

func (p Params) fieldValues() []fieldValue {
	return []fieldValue{
		{"base_load_mwh", p.BaseLoadMWh},
		{"phase1_growth", p.Phase1Growth},
		{"phase1_end_year", float64(p.Phase1EndYear)},
		{"phase2_growth", p.Phase2Growth},
		{"hydro_cap_mwh", p.HydroCapMWh},
		{"wholesale_rate", p.WholesaleRate},
		{"expansion_year", float64(p.ExpansionYear)},
		{"expansion_mwh", p.ExpansionMWh},
		{"diesel_floor_mwh", p.DieselFloorMWh},
		{"diesel_base_cost", p.DieselBaseCost},
		{"diesel_escalation", p.DieselEscalation},
		{"fixed_cost", p.FixedCost},
		{"capex", p.CapEx},
		{"debt_share", p.DebtShare},
		{"financing_rate", p.FinancingRate},
		{"bond_term_years", float64(p.BondTermYears)},
		{"anchor_mw", p.AnchorMW},
		{"anchor_capacity_factor", p.AnchorCapacityFactor},
		{"anchor_tariff_kwh", p.AnchorTariffKWh},
		{"base_rate_kwh", p.BaseRateKWh},
		{"households", float64(p.Households)},
		{"household_kwh", p.HouseholdKWh},
		{"econ_multiplier", p.EconMultiplier},
		{"jobs_per_mw", p.JobsPerMW},
	}
}

// Validate checks every field against its catalog range plus the structural
// constraints that depend on the projection horizon. A nil return means the
// bundle is safe to run.
func (p Params) Validate(years YearRange) error {
	var problems []string

	for _, fv := range p.fieldValues() {
		info := ParamCatalog[fv.slug]
		if fv.value < info.Min || fv.value > info.Max {
			problems = append(problems, fmt.Sprintf("%s=%g outside [%g, %g]",
				fv.slug, fv.value, info.Min, info.Max))
		}
	}

	if !years.Valid() {
		problems = append(problems, fmt.Sprintf("year range %d-%d is not ascending", years.Start, years.End))
	} else {
		if p.Phase1EndYear < years.Start {
			problems = append(problems, fmt.Sprintf("phase1_end_year=%d before base year %d", p.Phase1EndYear, years.Start))
		}
	}
	if p.BondTermYears <= 0 {
		problems = append(problems, fmt.Sprintf("bond_term_years=%d must be positive", p.BondTermYears))
	}
	if p.FinancingRate < 0 {
		problems = append(problems, fmt.Sprintf("financing_rate=%g must be non-negative", p.FinancingRate))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

package scenario

import (
	"fmt"
	"math"

	"rate_planner/internal/model"
)

// Environmental proxies for avoided diesel generation.
const (
	co2TonnesPerMWh = 0.7     // tonnes CO2 per MWh of diesel generation
	mwhPerBarrel    = 0.01709 // MWh of electricity per barrel of diesel
)

// MismatchError reports comparison inputs that do not line up.
type MismatchError struct {
	Reason string
}

func (e *MismatchError) Error() string {
	return "sequence mismatch: " + e.Reason
}

// YearDelta is the per-year difference between two scenario sequences.
type YearDelta struct {
	Year             int     `json:"year"`
	RateDeltaKWh     float64 `json:"rate_delta_kwh"`     // baseline minus comparison, $/kWh
	DieselAvoidedMWh float64 `json:"diesel_avoided_mwh"` // baseline minus comparison
}

// Comparison aggregates two completed scenario runs over a sub-range of
// their shared horizon (typically the post-expansion years).
type Comparison struct {
	Window model.YearRange `json:"window"`
	Deltas []YearDelta     `json:"deltas"`

	DieselAvoidedMWh  float64 `json:"diesel_avoided_mwh"`
	DieselCostSavings float64 `json:"diesel_cost_savings"`
	CO2AvoidedTonnes  float64 `json:"co2_avoided_tonnes"`
	BarrelsAvoided    float64 `json:"barrels_avoided"`

	HouseholdSavings float64 `json:"household_savings"` // cumulative $ per household
	CommunitySavings float64 `json:"community_savings"` // scaled by account count
}

// Compare derives comparative metrics from a baseline and a comparison
// sequence. Both sequences must cover the identical year range; the window
// restricts the cumulative sums to a sub-range and must intersect the
// shared horizon. Per-year deltas are reported for every shared year.
func Compare(baseline, comparison []model.YearRecord, window model.YearRange, households int, householdKWh float64) (Comparison, error) {
	if len(baseline) == 0 || len(comparison) == 0 {
		return Comparison{}, &MismatchError{Reason: "empty sequence"}
	}
	if len(baseline) != len(comparison) {
		return Comparison{}, &MismatchError{Reason: fmt.Sprintf("baseline has %d years, comparison has %d", len(baseline), len(comparison))}
	}
	for i := range baseline {
		if baseline[i].Year != comparison[i].Year {
			return Comparison{}, &MismatchError{Reason: fmt.Sprintf("year %d vs %d at position %d", baseline[i].Year, comparison[i].Year, i)}
		}
	}

	shared := model.YearRange{Start: baseline[0].Year, End: baseline[len(baseline)-1].Year}
	if !window.Valid() || window.Start > shared.End || window.End < shared.Start {
		return Comparison{}, &MismatchError{Reason: fmt.Sprintf("window %d-%d outside shared range %d-%d", window.Start, window.End, shared.Start, shared.End)}
	}

	c := Comparison{Window: window}
	for i := range baseline {
		d := YearDelta{
			Year:             baseline[i].Year,
			RateDeltaKWh:     baseline[i].RateKWh - comparison[i].RateKWh,
			DieselAvoidedMWh: baseline[i].DieselMWh - comparison[i].DieselMWh,
		}
		c.Deltas = append(c.Deltas, d)

		if !window.Contains(d.Year) {
			continue
		}
		c.DieselAvoidedMWh += d.DieselAvoidedMWh
		c.DieselCostSavings += baseline[i].DieselCost - comparison[i].DieselCost
		c.HouseholdSavings += d.RateDeltaKWh * householdKWh
	}

	c.CO2AvoidedTonnes = c.DieselAvoidedMWh * co2TonnesPerMWh
	c.BarrelsAvoided = c.DieselAvoidedMWh / mwhPerBarrel
	c.CommunitySavings = c.HouseholdSavings * float64(households)

	return c, nil
}

// Viability summarizes whether the anchor customer's above-cost margin
// carries the expansion debt.
type Viability struct {
	DebtService     float64 `json:"debt_service"`
	AnchorMWh       float64 `json:"anchor_mwh"`
	AnchorRevenue   float64 `json:"anchor_revenue"`  // gross tariff revenue $/yr
	WholesaleCost   float64 `json:"wholesale_cost"`  // cost to serve the anchor $/yr
	MarginPerYear   float64 `json:"margin_per_year"` // revenue above wholesale cost
	Coverage        float64 `json:"coverage"`        // margin / debt service, unclamped
	ResidualPerYear float64 `json:"residual_per_year"`
}

// AssessViability computes the anchor margin and the fraction of annual
// debt service it covers. Coverage is 0 when there is no debt to cover.
func AssessViability(p model.Params) Viability {
	v := Viability{
		DebtService: DebtService(p),
		AnchorMWh:   AnchorLoadMWh(p),
	}
	tariffMWh := p.AnchorTariffKWh * 1000
	v.AnchorRevenue = v.AnchorMWh * tariffMWh
	v.WholesaleCost = v.AnchorMWh * p.WholesaleRate
	v.MarginPerYear = v.AnchorMWh * (tariffMWh - p.WholesaleRate)
	if v.DebtService > 0 {
		v.Coverage = v.MarginPerYear / v.DebtService
	}
	v.ResidualPerYear = math.Max(0, v.DebtService-v.MarginPerYear)
	return v
}

// Impact estimates the anchor customer's local economic footprint. Display
// metrics only; none of this feeds back into rates or dispatch.
type Impact struct {
	ConstructionJobs    float64 `json:"construction_jobs"`
	OperatingJobs       float64 `json:"operating_jobs"`
	ConstructionPayroll float64 `json:"construction_payroll"`
	OperatingPayroll    float64 `json:"operating_payroll"`
	LocalActivity       float64 `json:"local_activity"` // payroll scaled by spending multiplier
	AnchorRevenue       float64 `json:"anchor_revenue"`
	AnchorMargin        float64 `json:"anchor_margin"`
}

const (
	constructionJobsPerMW = 6.0
	constructionSalary    = 65_000.0
	operatingSalary       = 75_000.0
)

// EstimateImpact derives the jobs/payroll/spending block from the anchor
// sizing parameters.
func EstimateImpact(p model.Params) Impact {
	im := Impact{
		ConstructionJobs: p.AnchorMW * constructionJobsPerMW,
		OperatingJobs:    p.AnchorMW * p.JobsPerMW,
	}
	im.ConstructionPayroll = im.ConstructionJobs * constructionSalary
	im.OperatingPayroll = im.OperatingJobs * operatingSalary
	im.LocalActivity = (im.ConstructionPayroll + im.OperatingPayroll) * p.EconMultiplier

	anchorMWh := AnchorLoadMWh(p)
	tariffMWh := p.AnchorTariffKWh * 1000
	im.AnchorRevenue = anchorMWh * tariffMWh
	im.AnchorMargin = anchorMWh * (tariffMWh - p.WholesaleRate)
	return im
}

package scenario

import (
	"fmt"
	"math"

	"rate_planner/internal/model"
)

// HoursPerYear converts nameplate MW at a capacity factor into annual MWh.
const HoursPerYear = 8760

// MinRateKWh is the regulatory floor on the computed retail rate.
const MinRateKWh = 0.05

// DomainError reports a pathological but range-valid input combination that
// makes the math undefined at a specific year. The run fails atomically: no
// partial sequence is returned.
type DomainError struct {
	Year   int
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("year %d: %s", e.Year, e.Reason)
}

// Run projects one scenario over the inclusive year range and returns one
// record per year, ascending. It is a pure function: identical inputs yield
// identical outputs, and nothing carries across calls.
func Run(p model.Params, sc model.Scenario, years model.YearRange) ([]model.YearRecord, error) {
	if !sc.Valid() {
		return nil, &model.ValidationError{Problems: []string{fmt.Sprintf("unknown scenario %q", sc)}}
	}
	if err := p.Validate(years); err != nil {
		return nil, err
	}

	// Quantities that are constant across the run.
	debtService := DebtService(p)
	anchorMWh := AnchorLoadMWh(p)

	records := make([]model.YearRecord, 0, years.Years())
	for year := years.Start; year <= years.End; year++ {
		rec, err := computeYear(p, sc, year, years.Start, debtService, anchorMWh)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// computeYear evaluates a single projection year. Only the base year feeds
// the growth formulas; no prior record is consulted.
func computeYear(p model.Params, sc model.Scenario, year, baseYear int, debtService, anchorMWh float64) (model.YearRecord, error) {
	expansionLive := sc.HasExpansion() && year >= p.ExpansionYear
	anchorLive := sc.HasAnchor() && year >= p.ExpansionYear

	commMWh := communityLoad(p, year, baseYear)

	cap := p.HydroCapMWh
	if expansionLive {
		cap += p.ExpansionMWh
	}

	anchor := 0.0
	if anchorLive {
		anchor = anchorMWh
	}

	totalMWh := commMWh + anchor

	// Merit-order dispatch: hydro first, diesel covers the residual, never
	// below the operational floor. hydro + diesel == totalMWh always.
	dieselMWh := math.Max(p.DieselFloorMWh, totalMWh-cap)
	hydroMWh := totalMWh - dieselMWh

	dieselRate := p.DieselBaseCost * math.Pow(1+p.DieselEscalation, float64(year-baseYear))

	hydroCost := p.WholesaleRate * hydroMWh
	dieselCost := dieselRate * dieselMWh

	debt := 0.0
	if expansionLive {
		debt = debtService
	}

	// Tariff is quoted per kWh; revenue math runs per MWh.
	anchorRevenue := anchor * p.AnchorTariffKWh * 1000

	totalCost := p.FixedCost + hydroCost + dieselCost + debt

	// Anchor revenue offsets total cost; the remainder is borne by the
	// community. Deliberately unclamped: a negative community cost signals
	// over-coverage and must be surfaced.
	communityCost := totalCost - anchorRevenue

	if commMWh <= 0 {
		return model.YearRecord{}, &DomainError{Year: year, Reason: fmt.Sprintf("community load %g MWh, cannot derive a retail rate", commMWh)}
	}
	rateKWh := math.Max(MinRateKWh, communityCost/(commMWh*1000))

	return model.YearRecord{
		Year:          year,
		CommunityMWh:  commMWh,
		AnchorMWh:     anchor,
		TotalMWh:      totalMWh,
		HydroCapMWh:   cap,
		HydroMWh:      hydroMWh,
		DieselMWh:     dieselMWh,
		DieselRate:    dieselRate,
		HydroCost:     hydroCost,
		DieselCost:    dieselCost,
		DebtService:   debt,
		AnchorRevenue: anchorRevenue,
		TotalCost:     totalCost,
		CommunityCost: communityCost,
		RateKWh:       rateKWh,
	}, nil
}

// communityLoad models two-phase compound growth: a fast adoption phase up
// to Phase1EndYear, then steady-state growth anchored at the phase-1
// terminal value so the curve is continuous at the boundary.
func communityLoad(p model.Params, year, baseYear int) float64 {
	if year <= p.Phase1EndYear {
		return p.BaseLoadMWh * math.Pow(1+p.Phase1Growth, float64(year-baseYear))
	}
	terminal := p.BaseLoadMWh * math.Pow(1+p.Phase1Growth, float64(p.Phase1EndYear-baseYear))
	return terminal * math.Pow(1+p.Phase2Growth, float64(year-p.Phase1EndYear))
}

// Annuity returns the constant annual payment that amortizes principal over
// term years at the given rate. A zero rate degenerates to straight-line
// repayment.
func Annuity(principal, rate float64, term int) float64 {
	if term <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(term)
	}
	f := math.Pow(1+rate, float64(term))
	return principal * rate * f / (f - 1)
}

// DebtService returns the community's constant annual payment on its share
// of the expansion capex.
func DebtService(p model.Params) float64 {
	return Annuity(p.CapEx*p.DebtShare, p.FinancingRate, p.BondTermYears)
}

// AnchorLoadMWh returns the anchor customer's annual energy demand. The
// anchor runs flat: nameplate times capacity factor, no growth.
func AnchorLoadMWh(p model.Params) float64 {
	return p.AnchorMW * p.AnchorCapacityFactor * HoursPerYear
}

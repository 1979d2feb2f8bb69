package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rate_planner/internal/model"
)

func defaultRuns(t *testing.T) (baseline, anchor []model.YearRecord, p model.Params) {
	t.Helper()
	p = model.DefaultParams()
	var err error
	baseline, err = Run(p, model.StatusQuo, defaultYears)
	require.NoError(t, err)
	anchor, err = Run(p, model.ExpansionWithAnchor, defaultYears)
	require.NoError(t, err)
	return baseline, anchor, p
}

func TestCompare_SelfIsZero(t *testing.T) {
	baseline, _, p := defaultRuns(t)

	cmp, err := Compare(baseline, baseline, defaultYears, p.Households, p.HouseholdKWh)
	require.NoError(t, err)

	assert.Zero(t, cmp.DieselAvoidedMWh)
	assert.Zero(t, cmp.DieselCostSavings)
	assert.Zero(t, cmp.CO2AvoidedTonnes)
	assert.Zero(t, cmp.BarrelsAvoided)
	assert.Zero(t, cmp.HouseholdSavings)
	assert.Zero(t, cmp.CommunitySavings)
	for _, d := range cmp.Deltas {
		assert.Zero(t, d.RateDeltaKWh, "year %d", d.Year)
		assert.Zero(t, d.DieselAvoidedMWh, "year %d", d.Year)
	}
}

func TestCompare_PostExpansionWindow(t *testing.T) {
	baseline, anchor, p := defaultRuns(t)
	window := model.YearRange{Start: p.ExpansionYear, End: defaultYears.End}

	cmp, err := Compare(baseline, anchor, window, p.Households, p.HouseholdKWh)
	require.NoError(t, err)

	// The expansion wipes out the growing diesel gap; only the floor runs.
	var wantAvoided, wantCostSavings, wantHousehold float64
	for i := range baseline {
		if !window.Contains(baseline[i].Year) {
			continue
		}
		wantAvoided += baseline[i].DieselMWh - anchor[i].DieselMWh
		wantCostSavings += baseline[i].DieselCost - anchor[i].DieselCost
		wantHousehold += (baseline[i].RateKWh - anchor[i].RateKWh) * p.HouseholdKWh
	}
	require.Positive(t, wantAvoided)

	assert.InDelta(t, wantAvoided, cmp.DieselAvoidedMWh, 1e-6)
	assert.InDelta(t, wantCostSavings, cmp.DieselCostSavings, 1e-6)
	assert.InDelta(t, wantAvoided*0.7, cmp.CO2AvoidedTonnes, 1e-6)
	assert.InDelta(t, wantAvoided/0.01709, cmp.BarrelsAvoided, 1e-3)
	assert.InDelta(t, wantHousehold, cmp.HouseholdSavings, 1e-9)
	assert.InDelta(t, wantHousehold*float64(p.Households), cmp.CommunitySavings, 1e-6)

	// Deltas cover the full shared range, not just the window.
	assert.Len(t, cmp.Deltas, len(baseline))
}

func TestCompare_LengthMismatch(t *testing.T) {
	baseline, _, p := defaultRuns(t)

	_, err := Compare(baseline, baseline[:5], defaultYears, p.Households, p.HouseholdKWh)
	var merr *MismatchError
	require.ErrorAs(t, err, &merr)
}

func TestCompare_YearMismatch(t *testing.T) {
	baseline, _, p := defaultRuns(t)

	shifted, err := Run(p, model.StatusQuo, model.YearRange{Start: 2024, End: 2036})
	require.NoError(t, err)

	_, err = Compare(baseline, shifted, defaultYears, p.Households, p.HouseholdKWh)
	var merr *MismatchError
	require.ErrorAs(t, err, &merr)
}

func TestCompare_EmptySequence(t *testing.T) {
	_, err := Compare(nil, nil, defaultYears, 1000, 9000)
	var merr *MismatchError
	require.ErrorAs(t, err, &merr)
}

func TestCompare_WindowOutsideRange(t *testing.T) {
	baseline, anchor, p := defaultRuns(t)

	_, err := Compare(baseline, anchor, model.YearRange{Start: 2050, End: 2060}, p.Households, p.HouseholdKWh)
	var merr *MismatchError
	require.ErrorAs(t, err, &merr)
}

func TestAssessViability_Defaults(t *testing.T) {
	p := model.DefaultParams()
	v := AssessViability(p)

	// 2 MW at 0.90 CF: 15,768 MWh/yr; margin at $120 tariff over $93
	// wholesale is $27/MWh.
	assert.InDelta(t, 15_768, v.AnchorMWh, 0.01)
	assert.InDelta(t, 425_736, v.MarginPerYear, 1)
	assert.InDelta(t, 15_768*120, v.AnchorRevenue, 1)
	assert.InDelta(t, 15_768*93, v.WholesaleCost, 1)
	assert.InDelta(t, 425_736/567_616.0, v.Coverage, 0.001)
	assert.InDelta(t, v.DebtService-v.MarginPerYear, v.ResidualPerYear, 1e-6)
}

func TestAssessViability_NoDebt(t *testing.T) {
	// Coverage is defined as 0 when there is nothing to cover.
	p := model.DefaultParams()
	p.BondTermYears = 0
	v := AssessViability(p)
	assert.Zero(t, v.DebtService)
	assert.Zero(t, v.Coverage)
	assert.Zero(t, v.ResidualPerYear)
}

func TestAssessViability_OverCoverage(t *testing.T) {
	p := model.DefaultParams()
	p.AnchorMW = 5.0
	p.AnchorTariffKWh = 0.20
	v := AssessViability(p)

	assert.Greater(t, v.Coverage, 1.0)
	assert.Zero(t, v.ResidualPerYear)
}

func TestEstimateImpact(t *testing.T) {
	p := model.DefaultParams()
	im := EstimateImpact(p)

	assert.InDelta(t, 12, im.ConstructionJobs, 1e-9) // 2 MW x 6
	assert.InDelta(t, 3, im.OperatingJobs, 1e-9)     // 2 MW x 1.5
	assert.InDelta(t, 12*65_000, im.ConstructionPayroll, 1e-6)
	assert.InDelta(t, 3*75_000, im.OperatingPayroll, 1e-6)
	assert.InDelta(t, (12*65_000+3*75_000)*1.7, im.LocalActivity, 1e-6)
	assert.InDelta(t, 425_736, im.AnchorMargin, 1)
}

package ingest

import (
	"fmt"
	"sort"

	"rate_planner/internal/model"
)

// Calibration holds parameter defaults derived from historical sales data.
// The hydro cap and wholesale rate are back-calculations, not published
// figures: cap = sales minus observed diesel, and rate = (revenue - fixed
// costs - diesel cost) / hydro MWh.
type Calibration struct {
	BaseYear      int
	BaseLoadMWh   float64
	HydroCapMWh   float64
	BaseRateKWh   float64
	WholesaleRate float64 // $/MWh
	Households    int
}

// Calibrate derives defaults from the most recent reported year. fixedCost
// and dieselCost ($/MWh) come from the caller because the filings do not
// break them out.
func Calibrate(records []SalesRecord, fixedCost, dieselCost float64) (Calibration, error) {
	if len(records) == 0 {
		return Calibration{}, fmt.Errorf("no sales records to calibrate from")
	}

	sorted := make([]SalesRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })
	latest := sorted[len(sorted)-1]

	if latest.SalesMWh <= 0 {
		return Calibration{}, fmt.Errorf("year %d: sales %g MWh, cannot calibrate", latest.Year, latest.SalesMWh)
	}
	hydroMWh := latest.SalesMWh - latest.DieselMWh
	if hydroMWh <= 0 {
		return Calibration{}, fmt.Errorf("year %d: diesel %g MWh exceeds sales %g MWh", latest.Year, latest.DieselMWh, latest.SalesMWh)
	}

	return Calibration{
		BaseYear:      latest.Year,
		BaseLoadMWh:   latest.SalesMWh,
		HydroCapMWh:   hydroMWh,
		BaseRateKWh:   latest.RevenueUSD / (latest.SalesMWh * 1000),
		WholesaleRate: (latest.RevenueUSD - fixedCost - dieselCost*latest.DieselMWh) / hydroMWh,
		Households:    latest.Customers,
	}, nil
}

// Apply overlays the calibration onto a parameter bundle, leaving every
// field the calibration does not cover untouched.
func (c Calibration) Apply(p model.Params) model.Params {
	p.BaseLoadMWh = c.BaseLoadMWh
	p.HydroCapMWh = c.HydroCapMWh
	p.BaseRateKWh = c.BaseRateKWh
	p.WholesaleRate = c.WholesaleRate
	p.Households = c.Households
	return p
}

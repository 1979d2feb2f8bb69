// Command project computes the scenario trajectories in batch and prints
// them as a table or CSV, for quick what-if runs without the web UI.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"rate_planner/internal/config"
	"rate_planner/internal/model"
	"rate_planner/internal/scenario"
)

func main() {
	defaultsPath := flag.String("defaults", "", "YAML defaults file (optional)")
	startYear := flag.Int("start", 0, "first projection year (defaults file or built-in otherwise)")
	endYear := flag.Int("end", 0, "last projection year (defaults file or built-in otherwise)")
	format := flag.String("format", "table", "output format: table or csv")
	anchorMW := flag.Float64("anchor-mw", 0, "override anchor nameplate MW")
	anchorTariff := flag.Float64("anchor-tariff", 0, "override anchor tariff ($/kWh)")
	expansionYear := flag.Int("expansion-year", 0, "override expansion online year")
	flag.Parse()

	params := model.DefaultParams()
	years := model.DefaultYearRange
	if *defaultsPath != "" {
		var err error
		params, years, err = config.Load(*defaultsPath)
		if err != nil {
			log.Fatalf("Failed to load defaults: %v", err)
		}
	}
	if *startYear != 0 {
		years.Start = *startYear
	}
	if *endYear != 0 {
		years.End = *endYear
	}

	if *anchorMW > 0 {
		params.AnchorMW = *anchorMW
	}
	if *anchorTariff > 0 {
		params.AnchorTariffKWh = *anchorTariff
	}
	if *expansionYear > 0 {
		params.ExpansionYear = *expansionYear
	}

	runs := make(map[model.Scenario][]model.YearRecord, 3)
	for _, sc := range model.Scenarios() {
		records, err := scenario.Run(params, sc, years)
		if err != nil {
			log.Fatalf("Scenario %s: %v", sc, err)
		}
		runs[sc] = records
	}

	switch *format {
	case "table":
		printTables(runs, params, years)
	case "csv":
		if err := writeCSV(os.Stdout, runs); err != nil {
			log.Fatalf("Writing CSV: %v", err)
		}
	default:
		log.Fatalf("Unknown format %q (want table or csv)", *format)
	}
}

func printTables(runs map[model.Scenario][]model.YearRecord, params model.Params, years model.YearRange) {
	for _, sc := range model.Scenarios() {
		fmt.Printf("\n%s\n", model.ScenarioCatalog[sc].Name)
		fmt.Printf(" %4s │ %12s │ %10s │ %10s │ %10s │ %12s │ %9s\n",
			"Year", "Community", "Hydro", "Diesel", "Debt svc", "Comm. cost", "Rate")
		fmt.Printf("──────┼──────────────┼────────────┼────────────┼────────────┼──────────────┼──────────\n")
		for _, r := range runs[sc] {
			fmt.Printf(" %4d │ %9.0f MWh │ %6.0f MWh │ %6.0f MWh │ $%9.0f │ $%11.0f │ $%.4f\n",
				r.Year, r.CommunityMWh, r.HydroMWh, r.DieselMWh, r.DebtService, r.CommunityCost, r.RateKWh)
		}
	}

	window := model.YearRange{Start: params.ExpansionYear, End: years.End}
	if window.Start < years.Start {
		window.Start = years.Start
	}
	cmp, err := scenario.Compare(runs[model.StatusQuo], runs[model.ExpansionWithAnchor], window, params.Households, params.HouseholdKWh)
	if err != nil {
		log.Fatalf("Comparison: %v", err)
	}
	via := scenario.AssessViability(params)

	fmt.Printf("\nExpansion + Anchor vs Status Quo (%d-%d)\n", window.Start, window.End)
	fmt.Printf("  Diesel avoided:      %10.0f MWh\n", cmp.DieselAvoidedMWh)
	fmt.Printf("  Diesel cost savings: $%10.0f\n", cmp.DieselCostSavings)
	fmt.Printf("  CO2 avoided:         %10.0f t\n", cmp.CO2AvoidedTonnes)
	fmt.Printf("  Barrels avoided:     %10.0f bbl\n", cmp.BarrelsAvoided)
	fmt.Printf("  Household savings:   $%10.0f (community-wide $%.0f)\n", cmp.HouseholdSavings, cmp.CommunitySavings)
	fmt.Printf("\nAnchor viability\n")
	fmt.Printf("  Debt service:  $%10.0f/yr\n", via.DebtService)
	fmt.Printf("  Anchor margin: $%10.0f/yr (%.0f%% coverage)\n", via.MarginPerYear, via.Coverage*100)
	fmt.Printf("  Residual:      $%10.0f/yr on ratepayers\n", via.ResidualPerYear)
}

func writeCSV(f *os.File, runs map[model.Scenario][]model.YearRecord) error {
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"scenario", "year", "community_mwh", "anchor_mwh", "total_mwh", "hydro_mwh",
		"diesel_mwh", "diesel_rate", "hydro_cost", "diesel_cost", "debt_service",
		"anchor_revenue", "total_cost", "community_cost", "rate_kwh"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, sc := range model.Scenarios() {
		for _, r := range runs[sc] {
			row := []string{
				string(sc),
				strconv.Itoa(r.Year),
				formatFloat(r.CommunityMWh),
				formatFloat(r.AnchorMWh),
				formatFloat(r.TotalMWh),
				formatFloat(r.HydroMWh),
				formatFloat(r.DieselMWh),
				formatFloat(r.DieselRate),
				formatFloat(r.HydroCost),
				formatFloat(r.DieselCost),
				formatFloat(r.DebtService),
				formatFloat(r.AnchorRevenue),
				formatFloat(r.TotalCost),
				formatFloat(r.CommunityCost),
				formatFloat(r.RateKWh),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

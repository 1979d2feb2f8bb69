// Command calibrate derives parameter defaults from historical sales CSVs
// and emits them as a defaults YAML file. Run once when new filings land;
// the engine never reads historical data at run time.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"rate_planner/internal/config"
	"rate_planner/internal/ingest"
	"rate_planner/internal/model"
)

func main() {
	input := flag.String("input", "", "annual sales CSV (year,sales_mwh,revenue_usd,customers,diesel_mwh)")
	fixedCost := flag.Float64("fixed-cost", model.ParamCatalog["fixed_cost"].Default, "assumed utility fixed costs ($/yr)")
	dieselCost := flag.Float64("diesel-cost", model.ParamCatalog["diesel_base_cost"].Default, "assumed diesel all-in cost ($/MWh)")
	out := flag.String("out", "", "output defaults YAML path (stdout when empty)")
	flag.Parse()

	if *input == "" {
		log.Fatal("missing -input")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("Opening %s: %v", *input, err)
	}
	parser := &ingest.SalesParser{}
	records, err := parser.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Parsing %s: %v", *input, err)
	}
	log.Printf("Loaded %d sales years from %s", len(records), *input)

	cal, err := ingest.Calibrate(records, *fixedCost, *dieselCost)
	if err != nil {
		log.Fatalf("Calibration: %v", err)
	}
	log.Printf("Calibrated from %d: load %.0f MWh, hydro cap %.0f MWh, wholesale $%.1f/MWh, base rate $%.4f/kWh",
		cal.BaseYear, cal.BaseLoadMWh, cal.HydroCapMWh, cal.WholesaleRate, cal.BaseRateKWh)

	params := cal.Apply(model.DefaultParams())
	years := model.YearRange{Start: cal.BaseYear, End: cal.BaseYear + model.DefaultYearRange.End - model.DefaultYearRange.Start}

	if err := params.Validate(years); err != nil {
		log.Fatalf("Calibrated defaults do not validate: %v", err)
	}

	if *out == "" {
		data, err := config.Marshal(params, years)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(string(data))
		return
	}
	if err := config.Save(*out, params, years); err != nil {
		log.Fatal(err)
	}
	log.Printf("Defaults written to %s", *out)
}

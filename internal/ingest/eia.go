// Package ingest reads historical utility sales data and derives calibrated
// parameter defaults from it. This happens at configuration-authoring time;
// the scenario engine never touches it at run time.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SalesRecord is one reported year of utility sales data, in the shape of an
// EIA-861 short-form extract plus observed diesel generation.
type SalesRecord struct {
	Year       int
	SalesMWh   float64
	RevenueUSD float64
	Customers  int
	DieselMWh  float64
}

// SalesParser parses annual sales CSV extracts.
//
// Expected format:
//
//	year,sales_mwh,revenue_usd,customers,diesel_mwh
//	2023,40708,5010000,1174,508
type SalesParser struct{}

var salesHeader = []string{"year", "sales_mwh", "revenue_usd", "customers", "diesel_mwh"}

func (p *SalesParser) Parse(r io.Reader) ([]SalesRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if err := validateSalesHeader(header); err != nil {
		return nil, err
	}

	var records []SalesRecord
	lineNum := 1 // header was line 1

	for {
		lineNum++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}

		rec, err := parseSalesRow(row, lineNum)
		if err != nil {
			// Skip unparseable rows (e.g. withheld or "NA" entries)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func validateSalesHeader(header []string) error {
	if len(header) < len(salesHeader) {
		return fmt.Errorf("expected at least %d columns, got %d", len(salesHeader), len(header))
	}
	for i, col := range salesHeader {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("expected column %d to be %q, got %q", i, col, header[i])
		}
	}
	return nil
}

func parseSalesRow(row []string, lineNum int) (SalesRecord, error) {
	if len(row) < len(salesHeader) {
		return SalesRecord{}, fmt.Errorf("line %d: expected %d fields, got %d", lineNum, len(salesHeader), len(row))
	}

	year, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return SalesRecord{}, fmt.Errorf("line %d: parsing year %q: %w", lineNum, row[0], err)
	}

	fields := make([]float64, 4)
	for i := range fields {
		fields[i], err = strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return SalesRecord{}, fmt.Errorf("line %d: parsing %s %q: %w", lineNum, salesHeader[i+1], row[i+1], err)
		}
	}

	return SalesRecord{
		Year:       year,
		SalesMWh:   fields[0],
		RevenueUSD: fields[1],
		Customers:  int(fields[2]),
		DieselMWh:  fields[3],
	}, nil
}

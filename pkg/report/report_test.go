package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/solarninja/solarninja/pkg/estimate"
)

func testResult() *estimate.Result {
	res := &estimate.Result{
		Params: estimate.Params{
			Latitude:      50.45,
			Longitude:     30.52,
			SystemPowerKW: 10,
			PanelTilt:     45,
		},
		Config:            estimate.DefaultConfig(),
		AnnualEnergyKWh:   14250.5,
		AnnualOptimalTilt: 38,
	}
	for m := time.January; m <= time.December; m++ {
		res.Monthly = append(res.Monthly, estimate.MonthlyEnergy{
			Month:     m,
			EnergyKWh: 500 + 100*float64(m),
		})
		res.MonthlyBestTilt = append(res.MonthlyBestTilt, estimate.MonthlyTilt{
			Month:    m,
			BestTilt: 30 + int(m),
		})
	}
	return res
}

func TestMonthlyChartPNG(t *testing.T) {
	png, err := MonthlyChartPNG(testResult())
	if err != nil {
		t.Fatalf("MonthlyChartPNG failed: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if len(png) < 8 || !bytes.HasPrefix(png, pngMagic) {
		t.Errorf("chart output is not a PNG (%d bytes)", len(png))
	}
}

func TestGenerate(t *testing.T) {
	pdf, err := Generate(testResult())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Errorf("report output does not start with a PDF header")
	}
	if len(pdf) < 1000 {
		t.Errorf("report implausibly small: %d bytes", len(pdf))
	}
	// Two logical pages: summary/tables and the chart.
	if n := bytes.Count(pdf, []byte("/Type /Page")); n < 2 {
		t.Errorf("expected at least 2 pages in report, found %d page markers", n)
	}
}

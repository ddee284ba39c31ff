package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/solarninja/solarninja/pkg/estimate"
	"github.com/solarninja/solarninja/pkg/report"
)

func main() {
	var (
		latitude  = flag.Float64("lat", 50.45, "Site latitude in degrees, [-90, 90]")
		longitude = flag.Float64("lon", 30.52, "Site longitude in degrees, [-180, 180]")
		powerKW   = flag.Float64("power", 10.0, "Rated system power in kW")
		tilt      = flag.Float64("tilt", 45.0, "Panel tilt in degrees from horizontal")
		year      = flag.Int("year", 0, "Reference year (default: model default)")
		losses    = flag.Float64("losses", -1, "System loss fraction (default: model default)")
		pdfOut    = flag.String("pdf", "", "Write a PDF report to this path")
	)
	flag.Parse()

	cfg := estimate.DefaultConfig()
	if *year != 0 {
		cfg.ReferenceYear = *year
	}
	if *losses >= 0 {
		cfg.SystemLosses = *losses
	}

	params := estimate.Params{
		Latitude:      *latitude,
		Longitude:     *longitude,
		SystemPowerKW: *powerKW,
		PanelTilt:     *tilt,
	}

	res, err := estimate.Run(cfg, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Solar estimate for lat=%.4f lon=%.4f (%d, clear sky)\n", params.Latitude, params.Longitude, cfg.ReferenceYear)
	fmt.Printf("  System power:        %.2f kW\n", params.SystemPowerKW)
	fmt.Printf("  Panel tilt:          %.1f°\n", params.PanelTilt)
	fmt.Printf("  Annual energy:       %.0f kWh\n", res.AnnualEnergyKWh)
	fmt.Printf("  Annual optimal tilt: %d°\n", res.AnnualOptimalTilt)
	fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Month\tEnergy (kWh)\tBest Tilt (°)")
	for i, m := range res.Monthly {
		fmt.Fprintf(tw, "%s\t%.2f\t%d\n", m.Month, m.EnergyKWh, res.MonthlyBestTilt[i].BestTilt)
	}
	tw.Flush()

	if *pdfOut != "" {
		pdfBytes, err := report.Generate(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfOut, pdfBytes, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *pdfOut)
	}
}

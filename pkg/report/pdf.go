package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/solarninja/solarninja/pkg/estimate"
)

// Generate renders the full PDF report for an estimate: a summary and
// the monthly tables on page one, the energy chart on page two. The
// returned bytes are the complete document; no temporary files are used.
func Generate(res *estimate.Result) ([]byte, error) {
	chart, err := MonthlyChartPNG(res)
	if err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle("Solar Ninja Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Solar Ninja — Energy Estimate", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	summary := []string{
		fmt.Sprintf("Location: lat=%.4f, lon=%.4f", res.Params.Latitude, res.Params.Longitude),
		fmt.Sprintf("System power: %.2f kW", res.Params.SystemPowerKW),
		fmt.Sprintf("Panel tilt: %.1f deg", res.Params.PanelTilt),
		fmt.Sprintf("Annual optimal tilt: %d deg", res.AnnualOptimalTilt),
		fmt.Sprintf("Annual energy (user tilt): %.0f kWh", res.AnnualEnergyKWh),
	}
	for _, line := range summary {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	writeMonthlyEnergyTable(pdf, res)
	pdf.Ln(4)
	writeMonthlyTiltTable(pdf, res)

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Monthly Energy Chart", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("monthly-chart", opts, bytes.NewReader(chart))
	pdf.ImageOptions("monthly-chart", 15, pdf.GetY(), 180, 0, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report generation failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMonthlyEnergyTable(pdf *fpdf.Fpdf, res *estimate.Result) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Monthly Energy (user tilt)", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(229, 229, 229)
	pdf.CellFormat(40, 6, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, "Energy (kWh)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range res.Monthly {
		pdf.CellFormat(40, 6, m.Month.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", m.EnergyKWh), "1", 1, "R", false, 0, "")
	}
}

func writeMonthlyTiltTable(pdf *fpdf.Fpdf, res *estimate.Result) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Monthly Optimal Tilts (analytic)", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(229, 229, 229)
	pdf.CellFormat(40, 6, "Month", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 6, "Best Tilt (deg)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range res.MonthlyBestTilt {
		pdf.CellFormat(40, 6, m.Month.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%d", m.BestTilt), "1", 1, "R", false, 0, "")
	}
}

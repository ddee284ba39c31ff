// Package report renders the numeric estimate result into presentation
// artifacts: a monthly energy bar chart (PNG) and a paginated PDF report
// suitable for direct download.
package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/solarninja/solarninja/pkg/estimate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// MonthlyChartPNG renders the monthly energy table as a bar chart and
// returns the encoded PNG bytes.
func MonthlyChartPNG(res *estimate.Result) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Monthly Energy Output (Tilt = %.1f°)", res.Params.PanelTilt)
	p.X.Label.Text = "Month"
	p.Y.Label.Text = "Energy (kWh)"

	values := make(plotter.Values, len(res.Monthly))
	labels := make([]string, len(res.Monthly))
	for i, m := range res.Monthly {
		values[i] = m.EnergyKWh
		labels[i] = m.Month.String()[:3]
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("creating bar chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	bars.LineStyle.Width = 0

	p.Add(bars)
	p.NominalX(labels...)

	w, err := p.WriterTo(7*vg.Inch, 3.5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing chart: %w", err)
	}
	return buf.Bytes(), nil
}

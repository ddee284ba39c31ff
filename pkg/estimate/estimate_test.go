package estimate

import (
	"math"
	"testing"
)

// kyivParams is the reference scenario used throughout: Kyiv, 10 kW
// system at 45° tilt.
func kyivParams() Params {
	return Params{
		Latitude:      50.45,
		Longitude:     30.52,
		SystemPowerKW: 10.0,
		PanelTilt:     45.0,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:    "valid",
			params:  kyivParams(),
			wantErr: nil,
		},
		{
			name:    "latitude too high",
			params:  Params{Latitude: 91, Longitude: 0, SystemPowerKW: 1, PanelTilt: 30},
			wantErr: ErrInvalidLatitude,
		},
		{
			name:    "latitude too low",
			params:  Params{Latitude: -90.1, Longitude: 0, SystemPowerKW: 1, PanelTilt: 30},
			wantErr: ErrInvalidLatitude,
		},
		{
			name:    "longitude too high",
			params:  Params{Latitude: 0, Longitude: 180.5, SystemPowerKW: 1, PanelTilt: 30},
			wantErr: ErrInvalidLongitude,
		},
		{
			name:    "longitude too low",
			params:  Params{Latitude: 0, Longitude: -181, SystemPowerKW: 1, PanelTilt: 30},
			wantErr: ErrInvalidLongitude,
		},
		{
			name:    "zero power",
			params:  Params{Latitude: 0, Longitude: 0, SystemPowerKW: 0, PanelTilt: 30},
			wantErr: ErrInvalidPower,
		},
		{
			name:    "negative power",
			params:  Params{Latitude: 0, Longitude: 0, SystemPowerKW: -5, PanelTilt: 30},
			wantErr: ErrInvalidPower,
		},
		{
			name:    "NaN latitude",
			params:  Params{Latitude: math.NaN(), Longitude: 0, SystemPowerKW: 1, PanelTilt: 30},
			wantErr: ErrInvalidLatitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	cfg := DefaultConfig()
	_, err := Run(cfg, Params{Latitude: 200, Longitude: 0, SystemPowerKW: 1, PanelTilt: 30})
	if err != ErrInvalidLatitude {
		t.Fatalf("expected ErrInvalidLatitude, got %v", err)
	}
}

// The incidence-cosine factor must be bounded in [0,1] for every hour at
// every tilt candidate.
func TestCosAOIBounded(t *testing.T) {
	cfg := DefaultConfig()
	tab := buildTable(cfg, 50.45, 30.52)

	for tilt := minTilt; tilt <= maxTilt; tilt++ {
		for i := range tab.times {
			f := cosAOI(tab.positions[i], float64(tilt), cfg.PanelAzimuth)
			if f < 0 || f > 1 {
				t.Fatalf("cosAOI out of [0,1] at tilt=%d hour=%d: %v", tilt, i, f)
			}
		}
	}
}

// Annual energy must equal the sum of the 12 monthly totals.
func TestAnnualEqualsMonthlySum(t *testing.T) {
	res, err := Run(DefaultConfig(), kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Monthly) != 12 {
		t.Fatalf("expected 12 monthly rows, got %d", len(res.Monthly))
	}

	sum := 0.0
	for _, m := range res.Monthly {
		sum += m.EnergyKWh
	}

	if relDiff(sum, res.AnnualEnergyKWh) > 1e-6 {
		t.Errorf("monthly sum %v != annual %v", sum, res.AnnualEnergyKWh)
	}
	if res.AnnualEnergyKWh <= 0 {
		t.Errorf("annual energy should be positive, got %v", res.AnnualEnergyKWh)
	}
}

// Re-running the sweep with identical inputs must yield identical output.
func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()
	first, err := Run(cfg, kyivParams())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(cfg, kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	if first.AnnualOptimalTilt != second.AnnualOptimalTilt {
		t.Errorf("optimal tilt differs between runs: %d vs %d", first.AnnualOptimalTilt, second.AnnualOptimalTilt)
	}
	if first.AnnualEnergyKWh != second.AnnualEnergyKWh {
		t.Errorf("annual energy differs between runs: %v vs %v", first.AnnualEnergyKWh, second.AnnualEnergyKWh)
	}
	for i := range first.Monthly {
		if first.Monthly[i] != second.Monthly[i] {
			t.Errorf("monthly row %d differs between runs", i)
		}
	}
}

// Energy is linear in rated power: scaling power by k scales every
// output by exactly k.
func TestPowerLinearity(t *testing.T) {
	cfg := DefaultConfig()
	base, err := Run(cfg, kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	const k = 3.5
	scaled := kyivParams()
	scaled.SystemPowerKW *= k
	res, err := Run(cfg, scaled)
	if err != nil {
		t.Fatal(err)
	}

	if relDiff(res.AnnualEnergyKWh, k*base.AnnualEnergyKWh) > 1e-9 {
		t.Errorf("annual energy not linear in power: %v vs %v", res.AnnualEnergyKWh, k*base.AnnualEnergyKWh)
	}
	for i := range base.Monthly {
		if relDiff(res.Monthly[i].EnergyKWh, k*base.Monthly[i].EnergyKWh) > 1e-9 {
			t.Errorf("month %v not linear in power", base.Monthly[i].Month)
		}
	}

	// The optimal tilt is power-independent.
	if res.AnnualOptimalTilt != base.AnnualOptimalTilt {
		t.Errorf("optimal tilt changed with power: %d vs %d", res.AnnualOptimalTilt, base.AnnualOptimalTilt)
	}
}

// Energy scales linearly with (1 - loss fraction); raising losses from
// zero strictly decreases every positive value.
func TestLossScaling(t *testing.T) {
	lossless := DefaultConfig()
	lossless.SystemLosses = 0

	lossy := DefaultConfig()
	lossy.SystemLosses = 0.4

	base, err := Run(lossless, kyivParams())
	if err != nil {
		t.Fatal(err)
	}
	res, err := Run(lossy, kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	if relDiff(res.AnnualEnergyKWh, 0.6*base.AnnualEnergyKWh) > 1e-9 {
		t.Errorf("annual energy not linear in (1-losses): %v vs %v", res.AnnualEnergyKWh, 0.6*base.AnnualEnergyKWh)
	}
	for i := range base.Monthly {
		if base.Monthly[i].EnergyKWh > 0 && res.Monthly[i].EnergyKWh >= base.Monthly[i].EnergyKWh {
			t.Errorf("month %v did not decrease with losses", base.Monthly[i].Month)
		}
	}
}

// A vertical panel at the equator must collect strictly less annual
// energy than a flat one; the sun passes near the zenith year-round.
func TestVerticalPanelAtEquator(t *testing.T) {
	cfg := DefaultConfig()

	flat := Params{Latitude: 0, Longitude: 0, SystemPowerKW: 10, PanelTilt: 0}
	vertical := Params{Latitude: 0, Longitude: 0, SystemPowerKW: 10, PanelTilt: 90}

	flatRes, err := Run(cfg, flat)
	if err != nil {
		t.Fatal(err)
	}
	vertRes, err := Run(cfg, vertical)
	if err != nil {
		t.Fatal(err)
	}

	if vertRes.AnnualEnergyKWh >= flatRes.AnnualEnergyKWh {
		t.Errorf("vertical panel (%v kWh) should yield less than flat (%v kWh) at the equator",
			vertRes.AnnualEnergyKWh, flatRes.AnnualEnergyKWh)
	}
}

// At the equator the annual optimal tilt should be near horizontal.
func TestOptimalTiltNearZeroAtEquator(t *testing.T) {
	cfg := DefaultConfig()
	res, err := Run(cfg, Params{Latitude: 0, Longitude: 0, SystemPowerKW: 10, PanelTilt: 0})
	if err != nil {
		t.Fatal(err)
	}

	const tolerance = 10 // degrees
	if res.AnnualOptimalTilt > tolerance {
		t.Errorf("expected optimal tilt near 0° at the equator, got %d°", res.AnnualOptimalTilt)
	}
}

// The annual optimal tilt at mid northern latitudes lands between
// horizontal and vertical, closer to the latitude.
func TestOptimalTiltMidLatitude(t *testing.T) {
	res, err := Run(DefaultConfig(), kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	if res.AnnualOptimalTilt <= 10 || res.AnnualOptimalTilt >= 80 {
		t.Errorf("implausible optimal tilt %d° for latitude 50.45", res.AnnualOptimalTilt)
	}
}

func TestMonthlyBestTiltTable(t *testing.T) {
	res, err := Run(DefaultConfig(), kyivParams())
	if err != nil {
		t.Fatal(err)
	}

	if len(res.MonthlyBestTilt) != 12 {
		t.Fatalf("expected 12 monthly best-tilt rows, got %d", len(res.MonthlyBestTilt))
	}
	for _, m := range res.MonthlyBestTilt {
		if m.BestTilt < minTilt || m.BestTilt > maxTilt {
			t.Errorf("best tilt for %v out of range: %d", m.Month, m.BestTilt)
		}
	}

	// In the northern hemisphere the winter best tilt is steeper than
	// the summer best tilt.
	december := res.MonthlyBestTilt[11].BestTilt
	june := res.MonthlyBestTilt[5].BestTilt
	if december <= june {
		t.Errorf("expected December best tilt (%d°) steeper than June (%d°) at latitude 50.45", december, june)
	}
}

func relDiff(a, b float64) float64 {
	if a == b {
		return 0
	}
	den := math.Max(math.Abs(a), math.Abs(b))
	if den == 0 {
		return 0
	}
	return math.Abs(a-b) / den
}

// Package estimate implements the solar energy estimation kernel: a
// tilt-angle sweep over a full reference year of hourly clear-sky
// irradiance, producing monthly and annual energy totals plus optimal
// tilt selections. The kernel is pure computation with no rendering or
// storage dependencies.
package estimate

import (
	"errors"
	"math"
	"time"

	"github.com/solarninja/solarninja/pkg/solar"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Tilt candidates are integer degrees 0..90 inclusive.
const (
	minTilt = 0
	maxTilt = 90
)

// Validation errors returned before any computation begins.
var (
	ErrInvalidLatitude  = errors.New("latitude out of range [-90, 90]")
	ErrInvalidLongitude = errors.New("longitude out of range [-180, 180]")
	ErrInvalidPower     = errors.New("system power must be positive")
)

// Config holds the fixed modeling parameters for an estimator. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	// ReferenceYear is the calendar year the hourly series covers.
	ReferenceYear int

	// SystemLosses is the fraction of generated energy lost to wiring,
	// inverter conversion, soiling, etc. 0.20 means 20% losses.
	SystemLosses float64

	// PanelAzimuth is the compass bearing the panels face, in degrees.
	// 180 is equator-facing in this model's convention.
	PanelAzimuth float64

	// Altitude is the site elevation in meters above sea level, used by
	// the clear-sky model.
	Altitude float64

	// Turbidity is the Linke turbidity factor for the clear-sky model.
	Turbidity float64
}

// DefaultConfig returns the standard modeling parameters.
func DefaultConfig() Config {
	return Config{
		ReferenceYear: 2025,
		SystemLosses:  0.20,
		PanelAzimuth:  180.0,
		Altitude:      0.0,
		Turbidity:     solar.DefaultTurbidity,
	}
}

// Params holds the per-request inputs to an estimate.
type Params struct {
	Latitude      float64 // degrees, [-90, 90]
	Longitude     float64 // degrees, [-180, 180]
	SystemPowerKW float64 // rated system power, > 0
	PanelTilt     float64 // panel inclination from horizontal, degrees
}

// Validate rejects out-of-range coordinates and non-positive power.
func (p Params) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 || math.IsNaN(p.Latitude) {
		return ErrInvalidLatitude
	}
	if p.Longitude < -180 || p.Longitude > 180 || math.IsNaN(p.Longitude) {
		return ErrInvalidLongitude
	}
	if p.SystemPowerKW <= 0 || math.IsNaN(p.SystemPowerKW) {
		return ErrInvalidPower
	}
	return nil
}

// MonthlyEnergy is one row of the monthly energy table.
type MonthlyEnergy struct {
	Month     time.Month
	EnergyKWh float64
}

// MonthlyTilt is one row of the monthly best-tilt table.
type MonthlyTilt struct {
	Month    time.Month
	BestTilt int // degrees
}

// Result is the numeric result bundle for one estimate.
type Result struct {
	Params Params
	Config Config

	// Monthly holds the 12 calendar-month energy sums at the user tilt,
	// January through December.
	Monthly []MonthlyEnergy

	// MonthlyBestTilt holds, per calendar month, the tilt with the
	// highest mean incidence-cosine factor over that month. This is a
	// pure geometry optimization and can legitimately disagree with
	// AnnualOptimalTilt, which maximizes energy.
	MonthlyBestTilt []MonthlyTilt

	// AnnualEnergyKWh is the user-tilt energy summed over the year.
	AnnualEnergyKWh float64

	// AnnualOptimalTilt is the integer tilt in 0..90 maximizing annual
	// energy. Ties keep the lowest tilt.
	AnnualOptimalTilt int
}

// hourlyTable holds the per-hour solar inputs derived once per estimate
// and shared by every tilt candidate.
type hourlyTable struct {
	times      []time.Time
	positions  []solar.Position
	ghiKW      []float64 // clear-sky GHI in kW/m², clipped at zero
	monthHours [12][]int // hour indices grouped by calendar month (UTC)
}

func buildTable(cfg Config, lat, lon float64) *hourlyTable {
	times := solar.HourlyYear(cfg.ReferenceYear)
	tab := &hourlyTable{
		times:     times,
		positions: make([]solar.Position, len(times)),
		ghiKW:     make([]float64, len(times)),
	}
	for i, t := range times {
		tab.positions[i] = solar.SolarPosition(t, lat, lon)
		ghi := solar.ClearSkyGHI(t, lat, lon, cfg.Altitude, cfg.Turbidity)
		if ghi < 0 {
			ghi = 0
		}
		tab.ghiKW[i] = ghi / 1000.0
		m := int(t.Month()) - 1
		tab.monthHours[m] = append(tab.monthHours[m], i)
	}
	return tab
}

// cosAOI returns the cosine of the angle of incidence between the sun and
// the panel's surface normal, clamped to [0,1]. Zero covers both
// self-shading (sun behind the panel) and night (sun below the horizon).
func cosAOI(pos solar.Position, tiltDeg, surfaceAzimuth float64) float64 {
	if pos.ApparentZenith >= 90 {
		return 0
	}
	zenRad := degToRad(pos.ApparentZenith)
	tiltRad := degToRad(tiltDeg)
	c := math.Cos(zenRad)*math.Cos(tiltRad) +
		math.Sin(zenRad)*math.Sin(tiltRad)*math.Cos(degToRad(pos.Azimuth-surfaceAzimuth))
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// hourlyEnergy fills dst with the per-hour generated energy (kWh) at the
// given tilt: GHI (kW/m²) × cosAOI × (1 − losses) × rated power (kW).
func (tab *hourlyTable) hourlyEnergy(dst []float64, cfg Config, tiltDeg, powerKW float64) {
	lossFactor := 1.0 - cfg.SystemLosses
	for i := range tab.times {
		f := cosAOI(tab.positions[i], tiltDeg, cfg.PanelAzimuth)
		dst[i] = tab.ghiKW[i] * f * lossFactor * powerKW
	}
}

// monthlyBestTilts implements the geometry-only monthly optimization:
// per month, the tilt with the highest mean incidence-cosine factor.
func (tab *hourlyTable) monthlyBestTilts(cfg Config) []MonthlyTilt {
	cos := make([]float64, len(tab.times))
	var bestMean [12]float64
	var bestTilt [12]int
	for m := range bestMean {
		bestMean[m] = -1
	}

	for tilt := minTilt; tilt <= maxTilt; tilt++ {
		for i := range tab.times {
			cos[i] = cosAOI(tab.positions[i], float64(tilt), cfg.PanelAzimuth)
		}
		for m := 0; m < 12; m++ {
			hours := tab.monthHours[m]
			monthCos := make([]float64, len(hours))
			for j, i := range hours {
				monthCos[j] = cos[i]
			}
			// Strict > keeps the lowest tilt on ties.
			if mean := stat.Mean(monthCos, nil); mean > bestMean[m] {
				bestMean[m] = mean
				bestTilt[m] = tilt
			}
		}
	}

	out := make([]MonthlyTilt, 12)
	for m := 0; m < 12; m++ {
		out[m] = MonthlyTilt{Month: time.Month(m + 1), BestTilt: bestTilt[m]}
	}
	return out
}

// annualOptimalTilt sweeps tilts 0..90 in ascending order and returns the
// first tilt whose annual energy strictly exceeds the running best.
func (tab *hourlyTable) annualOptimalTilt(cfg Config, powerKW float64) int {
	hourly := make([]float64, len(tab.times))
	bestTilt := minTilt
	bestEnergy := -1.0
	for tilt := minTilt; tilt <= maxTilt; tilt++ {
		tab.hourlyEnergy(hourly, cfg, float64(tilt), powerKW)
		if annual := floats.Sum(hourly); annual > bestEnergy {
			bestEnergy = annual
			bestTilt = tilt
		}
	}
	return bestTilt
}

// userTiltEnergy evaluates the energy series at the caller-supplied tilt
// and aggregates it into calendar-month and annual sums. The annual sum
// is computed as the sum of the monthly sums so the partition invariant
// holds exactly.
func (tab *hourlyTable) userTiltEnergy(cfg Config, tiltDeg, powerKW float64) ([]MonthlyEnergy, float64) {
	hourly := make([]float64, len(tab.times))
	tab.hourlyEnergy(hourly, cfg, tiltDeg, powerKW)

	monthly := make([]MonthlyEnergy, 12)
	annual := 0.0
	for m := 0; m < 12; m++ {
		sum := 0.0
		for _, i := range tab.monthHours[m] {
			sum += hourly[i]
		}
		monthly[m] = MonthlyEnergy{Month: time.Month(m + 1), EnergyKWh: sum}
		annual += sum
	}
	return monthly, annual
}

// Run validates the parameters and performs the full estimate: the
// monthly geometry optimization, the annual energy-based tilt sweep, and
// the user-tilt energy series. The computation is deterministic and
// retains no state between invocations.
func Run(cfg Config, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	tab := buildTable(cfg, p.Latitude, p.Longitude)

	monthly, annual := tab.userTiltEnergy(cfg, p.PanelTilt, p.SystemPowerKW)

	return &Result{
		Params:            p,
		Config:            cfg,
		Monthly:           monthly,
		MonthlyBestTilt:   tab.monthlyBestTilts(cfg),
		AnnualEnergyKWh:   annual,
		AnnualOptimalTilt: tab.annualOptimalTilt(cfg, p.SystemPowerKW),
	}, nil
}

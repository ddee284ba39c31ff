package solar

import (
	"math"
	"time"
)

const (
	// solarConstant is the average solar energy at the top of Earth's
	// atmosphere, in W/m².
	solarConstant = 1361.0

	// DefaultTurbidity is a Linke turbidity factor typical for clear
	// skies (usable range roughly 2-6).
	DefaultTurbidity = 2.0
)

// ClearSkyGHI computes Global Horizontal Irradiance (W/m²) for a UTC
// instant using the Ineichen-Perez clear-sky model. Altitude is meters
// above sea level; turbidity is the Linke turbidity factor. Returns zero
// when the sun is below the horizon.
func ClearSkyGHI(t time.Time, latitude, longitude, altitude, turbidity float64) float64 {
	pos := SolarPosition(t, latitude, longitude)
	thetaZ := pos.ApparentZenith
	if thetaZ >= 90.0 {
		return 0.0
	}

	// Extraterrestrial radiation, adjusted for Earth-Sun distance
	// variation over the year.
	N := t.YearDay()
	G0 := solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(float64(N)-3)/365.0)))

	// Air mass via the Kasten-Young formula.
	AM := 1.0 / (math.Cos(degToRad(thetaZ)) + 0.50572*math.Pow(96.07995-thetaZ, -1.6364))

	const (
		c = 0.7   // normalization constant for DNI
		a = 0.027 // atmospheric extinction coefficient
	)

	// Direct beam, attenuated by air mass, turbidity and altitude.
	DNI := G0 * c * math.Exp(-a*AM*turbidity*math.Exp(-altitude/8000.0))

	// Diffuse component with a seasonal adjustment.
	fh := 0.1 + 0.05*math.Sin(math.Pi*float64(N-100)/365.0)
	DHI := fh * G0 * math.Sin(degToRad(thetaZ))

	ghi := DNI*math.Cos(degToRad(thetaZ)) + DHI
	if ghi < 0 {
		return 0.0
	}
	return ghi
}

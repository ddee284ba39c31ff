// Package solar provides solar geometry and clear-sky irradiance
// calculations: apparent solar position (zenith and azimuth) from NOAA
// solar equations, and Global Horizontal Irradiance under cloudless
// conditions from the Ineichen-Perez clear-sky model.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Position holds the apparent solar position for a single instant,
// as seen from a point on the Earth's surface.
type Position struct {
	ApparentZenith float64 // degrees from local vertical, refraction-corrected
	Azimuth        float64 // degrees clockwise from true north
}

// atmosphericRefraction is the standard correction for refraction at the
// horizon, in degrees of elevation.
const atmosphericRefraction = 0.5667

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// fixAngle normalizes an angle to the range [0, 360) degrees
func fixAngle(a float64) float64 { return a - 360.0*math.Floor(a/360.0) }

// solarCoordinates returns the Sun's apparent declination (radians), the
// eccentricity of Earth's orbit, and the mean longitude and mean anomaly
// (degrees) for Julian centuries T since J2000.0.
func solarCoordinates(T float64) (declRad, e, L0, M float64) {
	L0 = fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M = fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e = 0.016708634 - T*(0.000042037+T*0.0000001267)

	// Equation of center and apparent ecliptic longitude
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	eps0 := meanObliquity(T)
	declRad = math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(lambda)))
	return declRad, e, L0, M
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees.
func meanObliquity(T float64) float64 {
	return 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
}

// EquationOfTime returns the difference between apparent and mean solar
// time in minutes for the given UTC instant.
func EquationOfTime(t time.Time) float64 {
	T := julianCenturies(t)
	_, e, L0, M := solarCoordinates(T)
	eps0 := meanObliquity(T)

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4 // 4 min per degree
}

// julianCenturies converts a UTC time to Julian centuries since J2000.0.
func julianCenturies(t time.Time) float64 {
	return (julian.TimeToJD(t.UTC()) - 2451545.0) / 36525.0
}

// SolarPosition computes the Sun's apparent zenith and azimuth angles for
// a UTC instant at the given geographic coordinates.
func SolarPosition(t time.Time, latitude, longitude float64) Position {
	T := julianCenturies(t)
	declRad, _, _, _ := solarCoordinates(T)

	// Hour angle from true solar time: 4 minutes per degree of longitude
	// plus the equation of time correction.
	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + 4*longitude + EquationOfTime(t)
	ha := tst/4 - 180
	haRad := degToRad(ha)

	latRad := degToRad(latitude)
	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zenRad := math.Acos(cosZen)
	zenDeg := radToDeg(zenRad)

	// Refraction only matters when the sun is visible
	apparentZen := zenDeg
	if zenDeg < 90 {
		apparentZen = zenDeg - atmosphericRefraction
		if apparentZen < 0 {
			apparentZen = 0
		}
	}

	azDeg := 180.0 // degenerate case directly at the poles
	azDen := math.Cos(latRad) * math.Sin(zenRad)
	if azDen != 0 {
		azNum := math.Sin(declRad) - math.Sin(latRad)*cosZen
		azCos := math.Max(-1, math.Min(1, azNum/azDen))
		azDeg = radToDeg(math.Acos(azCos))
		if ha > 0 {
			azDeg = 360 - azDeg
		}
	}

	return Position{
		ApparentZenith: apparentZen,
		Azimuth:        azDeg,
	}
}

package solar

import "time"

// HourlyYear returns the ordered hourly UTC instants covering the given
// calendar year, from January 1 00:00 through December 31 23:00. A
// regular year yields 8760 instants, a leap year 8784.
func HourlyYear(year int) []time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	times := make([]time.Time, 0, 8784)
	for t := start; t.Before(end); t = t.Add(time.Hour) {
		times = append(times, t)
	}
	return times
}

package aggregate

import "math"

// Decimal places used in the payload.
const (
	ratePlaces  = 2
	sharePlaces = 1
)

// round rounds half away from zero to the given number of decimals.
func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// percent returns n/total*100, or 0 when total is 0.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

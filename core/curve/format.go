package curve

import (
	"math"

	"github.com/shopspring/decimal"
)

// Undefined is shown for values that could not be computed
const Undefined = "undefined"

// FormatActivity renders an activity with 2 decimals
func FormatActivity(v float64) string {
	return FormatDecimal(v, 2)
}

// FormatPercentage renders a share with 1 decimal, or Undefined for NaN
func FormatPercentage(p float64) string {
	return FormatDecimal(p, 1)
}

// FormatDecimal rounds half away from zero to places decimals.
// Values are only rounded here, computations keep full precision.
func FormatDecimal(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Round returns v rounded to places decimals, NaN stays NaN
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	rounded, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return rounded
}

package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

// Epsilon is the smallest amount treated as non-negligible: one minor currency unit.
// Balances within [-Epsilon, Epsilon] are settled.
const Epsilon = 0.01

// Round2 rounds x to two decimal places, half away from zero.
//
// Rounding is done on the shortest decimal representation of x, so 1.005 rounds to
// 1.01 even though its binary value is slightly below 1.005.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	rounded, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return rounded
}

package utils

import (
	"math"
	"math/big"
	"strconv"
)

// RoundTo rounds x to the given number of decimal places. Exact halfway cases of the
// binary value round away from zero, so RoundTo(0.0625, 3) is 0.063. NaN and
// infinities are returned unchanged.
func RoundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || places < 0 {
		return x
	}
	abs := new(big.Float).SetPrec(256).SetFloat64(math.Abs(x))
	scale := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil))
	abs.Mul(abs, scale)

	n, _ := abs.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(abs, new(big.Float).SetPrec(256).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	r, err := strconv.ParseFloat(n.String()+"e-"+strconv.Itoa(places), 64)
	if err != nil {
		return x
	}
	if x < 0 {
		return -r
	}
	return r
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

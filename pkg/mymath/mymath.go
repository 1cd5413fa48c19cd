// Package mymath is the reference arithmetic library the checker runs
// against when no other implementation is supplied.
package mymath

import (
	"math"
	"math/big"
)

// Add returns the sum of a and b.
func Add(a, b float64) float64 {
	return a + b
}

// Subtract returns the difference of a and b.
func Subtract(a, b float64) float64 {
	return a - b
}

// maxExactBits bounds the exact integer path of Power. Larger results
// overflow float64 anyway.
const maxExactBits = 1100

// Power returns base raised to exp. For an integral base and a non-negative
// integral exponent the result is the exact power rounded once to the nearest
// float64, so it agrees with float64(IntPower(base, exp)) wherever IntPower
// does not overflow.
func Power(base, exp float64) float64 {
	if res, ok := exactPower(base, exp); ok {
		return res
	}
	return math.Pow(base, exp)
}

func exactPower(base, exp float64) (float64, bool) {
	if exp < 0 || exp != math.Trunc(exp) || base != math.Trunc(base) ||
		math.Abs(base) >= 1<<63 || exp >= 1<<31 {
		return 0, false
	}
	b := big.NewInt(int64(base))
	if b.BitLen()*int(exp) > maxExactBits {
		return 0, false
	}
	x := new(big.Int).Exp(b, big.NewInt(int64(exp)), nil)
	res, _ := new(big.Float).SetInt(x).Float64()
	if res == 0 && math.Signbit(base) && int64(exp)%2 == 1 {
		return math.Copysign(0, -1), true
	}
	return res, true
}

// IntPower returns base raised to exp using integer arithmetic only. Results
// wrap on overflow like any other int64 arithmetic. For a negative exponent
// the truncated integer result is returned, which is 0 unless |base| == 1.
func IntPower(base, exp int64) int64 {
	if exp < 0 {
		switch base {
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		default:
			return 0
		}
	}
	var res int64 = 1
	for exp > 0 {
		if exp&1 == 1 {
			res *= base
		}
		base *= base
		exp >>= 1
	}
	return res
}

// Increment returns a + 1.
func Increment(a float64) float64 {
	return a + 1
}

// Decrement returns a - 1.
func Decrement(a float64) float64 {
	return a - 1
}

// Library exposes the package functions as a value, so it can be handed to
// anything that takes a checker.Arithmetic.
type Library struct{}

func (Library) Add(a, b float64) float64      { return Add(a, b) }
func (Library) Subtract(a, b float64) float64 { return Subtract(a, b) }
func (Library) Power(a, b float64) float64    { return Power(a, b) }
func (Library) IntPower(a, b int64) int64     { return IntPower(a, b) }
func (Library) Increment(a float64) float64   { return Increment(a) }
func (Library) Decrement(a float64) float64   { return Decrement(a) }

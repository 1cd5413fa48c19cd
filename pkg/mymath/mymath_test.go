package mymath

import (
	"math"
	"testing"
)

func TestIntPower(t *testing.T) {
	if IntPower(10, 0) != 1 ||
		IntPower(10, 1) != 10 ||
		IntPower(10, 2) != 100 ||
		IntPower(10, 9) != 1000000000 {
		t.Errorf("Wrong IntPower result with basis 10.")
	}
	if IntPower(2, 0) != 1 ||
		IntPower(2, 15) != 32768 ||
		IntPower(2, 16) != 65536 ||
		IntPower(2, 62) != 1<<62 {
		t.Errorf("Wrong IntPower result with basis 2.")
	}
	if IntPower(0, 0) != 1 ||
		IntPower(0, 1) != 0 ||
		IntPower(0, 7) != 0 {
		t.Errorf("Wrong IntPower result with basis 0.")
	}
	if IntPower(-3, 3) != -27 ||
		IntPower(-3, 4) != 81 {
		t.Errorf("Wrong IntPower result with negative basis.")
	}
	if got := IntPower(5, 3); got != 125 {
		t.Errorf("IntPower(5, 3) = %d, want 125", got)
	}
	if got := IntPower(123, 5); got != 28153056843 {
		t.Errorf("IntPower(123, 5) = %d, want 28153056843", got)
	}
}

func TestIntPowerNegativeExponent(t *testing.T) {
	tests := []struct {
		base, exp, want int64
	}{
		{1, -5, 1},
		{-1, -2, 1},
		{-1, -3, -1},
		{2, -1, 0},
		{0, -1, 0},
		{-7, -2, 0},
	}
	for _, c := range tests {
		if got := IntPower(c.base, c.exp); got != c.want {
			t.Errorf("IntPower(%d, %d) = %d, want %d", c.base, c.exp, got, c.want)
		}
	}
}

// bruteForce multiplies exp copies of base.
func bruteForce(base, exp int64) int64 {
	acc := int64(1)
	for i := int64(0); i < exp; i++ {
		acc *= base
	}
	return acc
}

func TestIntPowerMatchesRepeatedMultiplication(t *testing.T) {
	for base := int64(-6); base <= 6; base++ {
		for exp := int64(0); exp < 12; exp++ {
			if x, e := IntPower(base, exp), bruteForce(base, exp); x != e {
				t.Errorf("%d^%d == %d != %d", base, exp, x, e)
			}
		}
	}
}

func TestPowerAgreesWithIntPower(t *testing.T) {
	for base := int64(-9); base <= 9; base++ {
		for exp := int64(0); exp < 10; exp++ {
			if p := Power(float64(base), float64(exp)); p != float64(IntPower(base, exp)) {
				t.Errorf("Power(%d, %d) = %v, IntPower gives %d", base, exp, p, IntPower(base, exp))
			}
		}
	}
	if got := Power(2, 0.5); got != math.Sqrt2 {
		t.Errorf("Power(2, 0.5) = %v, want %v", got, math.Sqrt2)
	}
}

// overflows reports whether base^exp leaves the int64 range, given that
// base^(exp-1) == prev did not.
func overflows(prev, base int64) bool {
	next := prev * base
	return base != 0 && next/base != prev
}

func TestPowerExactAboveFloatMantissa(t *testing.T) {
	if got, want := Power(13, 17), float64(IntPower(13, 17)); got != want {
		t.Errorf("Power(13, 17) = %v, want %v", got, want)
	}
	for base := int64(-40); base <= 40; base++ {
		if base >= -1 && base <= 1 {
			continue
		}
		prev := int64(1)
		for exp := int64(1); !overflows(prev, base); exp++ {
			prev = IntPower(base, exp)
			if p := Power(float64(base), float64(exp)); p != float64(prev) {
				t.Errorf("Power(%d, %d) = %v, IntPower gives %d", base, exp, p, prev)
			}
		}
	}
}

func TestPowerFallsBackOutsideExactRange(t *testing.T) {
	if got := Power(10, 400); !math.IsInf(got, 1) {
		t.Errorf("Power(10, 400) = %v, want +Inf", got)
	}
	if got := Power(2, -1); got != 0.5 {
		t.Errorf("Power(2, -1) = %v, want 0.5", got)
	}
	if got := Power(-1, 1e12); got != 1 {
		t.Errorf("Power(-1, 1e12) = %v, want 1", got)
	}
	if got := Power(math.NaN(), 2); !math.IsNaN(got) {
		t.Errorf("Power(NaN, 2) = %v, want NaN", got)
	}
}

func TestUnary(t *testing.T) {
	if got := Increment(5); got != 6 {
		t.Errorf("Increment(5) = %v, want 6", got)
	}
	if got := Decrement(5); got != 4 {
		t.Errorf("Decrement(5) = %v, want 4", got)
	}
	if got := Increment(Decrement(-0.5)); got != -0.5 {
		t.Errorf("Increment(Decrement(-0.5)) = %v, want -0.5", got)
	}
}

func TestLibraryDelegates(t *testing.T) {
	var l Library
	if l.Add(3, 4) != 7 || l.Subtract(3, 4) != -1 || l.Power(4, 3) != 64 ||
		l.IntPower(5, 3) != 125 || l.Increment(5) != 6 || l.Decrement(5) != 4 {
		t.Errorf("Library does not match package functions")
	}
}

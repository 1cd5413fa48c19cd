package checker_test

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arangodb/mathcheck/pkg/checker"
	"github.com/arangodb/mathcheck/pkg/mymath"
)

// brokenLib gets power and decrement wrong.
type brokenLib struct {
	mymath.Library
}

func (brokenLib) Power(a, b float64) float64 { return a * b }
func (brokenLib) Decrement(a float64) float64 { return a - 2 }

func TestLiteralChecks(t *testing.T) {
	c := checker.New(mymath.Library{})

	require.NoError(t, c.CheckAdd(3, 4, 7))
	require.NoError(t, c.CheckSubtract(3, 4, -1))
	require.NoError(t, c.CheckPower(4, 3, 64))
	require.NoError(t, c.CheckIntPower(5, 3, 125))
	require.NoError(t, c.CheckIncrement(5, 6))
	require.NoError(t, c.CheckDecrement(5, 4))
}

func TestRoundTrips(t *testing.T) {
	c := checker.New(mymath.Library{})

	assert.True(t, c.RoundTripAddSub(4, 2))
	assert.True(t, c.RoundTripAddSub(4324, 25345))
	assert.True(t, c.ComparePowerConsistency(3, 2))
	assert.True(t, c.ComparePowerConsistency(123, 5))
	assert.True(t, c.RoundTripIncDec(4))
	assert.True(t, c.RoundTripIncDec(234))
}

func TestZeroExponent(t *testing.T) {
	c := checker.New(mymath.Library{})
	for _, base := range []int64{-5, 0, 1, 2, 123} {
		assert.NoError(t, c.CheckPower(float64(base), 0, 1))
		assert.NoError(t, c.CheckIntPower(base, 0, 1))
		assert.True(t, c.ComparePowerConsistency(base, 0))
	}
}

func TestRoundTripProperties(t *testing.T) {
	c := checker.New(mymath.Library{})
	for a := int64(-50); a <= 50; a += 7 {
		assert.True(t, c.RoundTripIncDec(float64(a)), "incdec(%d)", a)
		for b := int64(-40); b <= 40; b += 9 {
			assert.True(t, c.RoundTripAddSub(float64(a), float64(b)), "addsub(%d, %d)", a, b)
		}
		for b := int64(0); b <= 8; b++ {
			assert.True(t, c.ComparePowerConsistency(a, b), "comparePower(%d, %d)", a, b)
		}
	}
}

func TestPowerConsistencyBeyondFloatMantissa(t *testing.T) {
	c := checker.New(mymath.Library{})
	assert.True(t, c.ComparePowerConsistency(13, 17))
	assert.NoError(t, c.CheckPowerConsistency(13, 17))
	for base := int64(2); base <= 40; base++ {
		for exp := int64(0); ; exp++ {
			x := new(big.Int).Exp(big.NewInt(base), big.NewInt(exp), nil)
			if !x.IsInt64() {
				break
			}
			assert.True(t, c.ComparePowerConsistency(base, exp), "comparePower(%d, %d)", base, exp)
		}
	}
}

func TestPowerLiteralDiscrepancy(t *testing.T) {
	// 4^3 is 64; a literal of 48 must be reported, not accepted.
	c := checker.New(mymath.Library{})
	err := c.CheckPower(4, 3, 48)
	require.Error(t, err)
	assert.True(t, checker.IsAssertionError(err))
	assert.Equal(t, "power(4, 3) = 64, want 48", err.Error())
}

func TestFailuresCarryOperands(t *testing.T) {
	c := checker.New(brokenLib{})

	err := c.CheckPower(4, 3, 64)
	ae := checker.AsAssertionError(err)
	require.NotNil(t, ae)
	assert.Equal(t, "power", ae.Op)
	assert.Equal(t, []string{"4", "3"}, ae.Args)
	assert.Equal(t, "12", ae.Got)
	assert.Equal(t, "64", ae.Want)

	assert.False(t, c.ComparePowerConsistency(3, 2))
	err = c.CheckPowerConsistency(3, 2)
	require.Error(t, err)
	assert.Equal(t, "comparePower(3, 2) = false, want true", err.Error())

	assert.False(t, c.RoundTripIncDec(4))
	assert.Error(t, c.CheckRoundTripIncDec(4))
	assert.Error(t, c.CheckDecrement(5, 4))

	// Unaffected operations still pass.
	assert.NoError(t, c.CheckRoundTripAddSub(4, 2))
	assert.NoError(t, c.CheckIncrement(5, 6))
}

func TestIsAssertionErrorThroughWrapping(t *testing.T) {
	c := checker.New(mymath.Library{})
	err := errors.Wrap(c.CheckAdd(3, 4, 8), "line 3")
	assert.True(t, checker.IsAssertionError(err))
	assert.Equal(t, "line 3: add(3, 4) = 7, want 8", err.Error())

	assert.False(t, checker.IsAssertionError(errors.New("plain")))
	assert.Nil(t, checker.AsAssertionError(nil))
}

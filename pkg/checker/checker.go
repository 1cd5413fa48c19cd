// Package checker asserts literal results and round-trip identities of an
// arithmetic library.
package checker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Arithmetic is the library under check. Implementations must be pure.
type Arithmetic interface {
	Add(a, b float64) float64
	Subtract(a, b float64) float64
	Power(base, exp float64) float64
	IntPower(base, exp int64) int64
	Increment(a float64) float64
	Decrement(a float64) float64
}

// AssertionError reports a single failed comparison.
type AssertionError struct {
	Op   string
	Args []string
	Got  string
	Want string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s(%s) = %s, want %s", e.Op, strings.Join(e.Args, ", "), e.Got, e.Want)
}

// IsAssertionError reports whether the cause of err is an AssertionError.
func IsAssertionError(err error) bool {
	_, ok := errors.Cause(err).(*AssertionError)
	return ok
}

// AsAssertionError returns the AssertionError at the cause of err, or nil.
func AsAssertionError(err error) *AssertionError {
	ae, _ := errors.Cause(err).(*AssertionError)
	return ae
}

func num(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func nums(fs ...float64) []string {
	res := make([]string, 0, len(fs))
	for _, f := range fs {
		res = append(res, num(f))
	}
	return res
}

func ints(is ...int64) []string {
	res := make([]string, 0, len(is))
	for _, i := range is {
		res = append(res, strconv.FormatInt(i, 10))
	}
	return res
}

// Checker runs assertions against one Arithmetic implementation.
type Checker struct {
	lib Arithmetic
}

func New(lib Arithmetic) *Checker {
	return &Checker{lib: lib}
}

func (c *Checker) CheckAdd(a, b, expected float64) error {
	if got := c.lib.Add(a, b); got != expected {
		return &AssertionError{Op: "add", Args: nums(a, b), Got: num(got), Want: num(expected)}
	}
	return nil
}

func (c *Checker) CheckSubtract(a, b, expected float64) error {
	if got := c.lib.Subtract(a, b); got != expected {
		return &AssertionError{Op: "subtract", Args: nums(a, b), Got: num(got), Want: num(expected)}
	}
	return nil
}

func (c *Checker) CheckPower(a, b, expected float64) error {
	if got := c.lib.Power(a, b); got != expected {
		return &AssertionError{Op: "power", Args: nums(a, b), Got: num(got), Want: num(expected)}
	}
	return nil
}

func (c *Checker) CheckIntPower(a, b, expected int64) error {
	if got := c.lib.IntPower(a, b); got != expected {
		return &AssertionError{Op: "intPower", Args: ints(a, b),
			Got: strconv.FormatInt(got, 10), Want: strconv.FormatInt(expected, 10)}
	}
	return nil
}

func (c *Checker) CheckIncrement(a, expected float64) error {
	if got := c.lib.Increment(a); got != expected {
		return &AssertionError{Op: "increment", Args: nums(a), Got: num(got), Want: num(expected)}
	}
	return nil
}

func (c *Checker) CheckDecrement(a, expected float64) error {
	if got := c.lib.Decrement(a); got != expected {
		return &AssertionError{Op: "decrement", Args: nums(a), Got: num(got), Want: num(expected)}
	}
	return nil
}

// RoundTripAddSub reports whether subtract(add(a, b), b) == a.
func (c *Checker) RoundTripAddSub(a, b float64) bool {
	return c.lib.Subtract(c.lib.Add(a, b), b) == a
}

// ComparePowerConsistency reports whether power(a, b) == intPower(a, b).
func (c *Checker) ComparePowerConsistency(a, b int64) bool {
	return c.lib.Power(float64(a), float64(b)) == float64(c.lib.IntPower(a, b))
}

// RoundTripIncDec reports whether increment(decrement(a)) == a.
func (c *Checker) RoundTripIncDec(a float64) bool {
	return c.lib.Increment(c.lib.Decrement(a)) == a
}

func (c *Checker) CheckRoundTripAddSub(a, b float64) error {
	if !c.RoundTripAddSub(a, b) {
		return &AssertionError{Op: "addsub", Args: nums(a, b), Got: "false", Want: "true"}
	}
	return nil
}

func (c *Checker) CheckPowerConsistency(a, b int64) error {
	if !c.ComparePowerConsistency(a, b) {
		return &AssertionError{Op: "comparePower", Args: ints(a, b), Got: "false", Want: "true"}
	}
	return nil
}

func (c *Checker) CheckRoundTripIncDec(a float64) error {
	if !c.RoundTripIncDec(a) {
		return &AssertionError{Op: "incdec", Args: nums(a), Got: "false", Want: "true"}
	}
	return nil
}

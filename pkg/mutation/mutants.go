// Package mutation measures how well a check program detects defects in an
// arithmetic library. Every mutant replaces one operation of the base
// library by a subtly wrong one; a mutant is killed when some check fails
// against it.
package mutation

import "github.com/arangodb/mathcheck/pkg/checker"

type Kind string

const (
	// BinaryOperatorReplacement swaps the operator of an operation.
	BinaryOperatorReplacement Kind = "operator"
	// ConstantReplacement changes a numeric constant inside an operation.
	ConstantReplacement Kind = "constant"
	// ComparisonOperatorReplacement swaps a comparison inside an operation.
	ComparisonOperatorReplacement Kind = "comparison"
)

type Mutant struct {
	Name        string
	Op          string
	Kind        Kind
	Description string
	Lib         checker.Arithmetic
}

// overlay is base with some operations replaced.
type overlay struct {
	base      checker.Arithmetic
	add       func(a, b float64) float64
	subtract  func(a, b float64) float64
	power     func(a, b float64) float64
	intPower  func(a, b int64) int64
	increment func(a float64) float64
	decrement func(a float64) float64
}

var _ checker.Arithmetic = (*overlay)(nil)

func (o *overlay) Add(a, b float64) float64 {
	if o.add != nil {
		return o.add(a, b)
	}
	return o.base.Add(a, b)
}

func (o *overlay) Subtract(a, b float64) float64 {
	if o.subtract != nil {
		return o.subtract(a, b)
	}
	return o.base.Subtract(a, b)
}

func (o *overlay) Power(a, b float64) float64 {
	if o.power != nil {
		return o.power(a, b)
	}
	return o.base.Power(a, b)
}

func (o *overlay) IntPower(a, b int64) int64 {
	if o.intPower != nil {
		return o.intPower(a, b)
	}
	return o.base.IntPower(a, b)
}

func (o *overlay) Increment(a float64) float64 {
	if o.increment != nil {
		return o.increment(a)
	}
	return o.base.Increment(a)
}

func (o *overlay) Decrement(a float64) float64 {
	if o.decrement != nil {
		return o.decrement(a)
	}
	return o.base.Decrement(a)
}

// intPowerLoop is integer exponentiation by repeated multiplication with a
// configurable accumulator start value and loop condition.
func intPowerLoop(acc int64, more func(exp int64) bool) func(base, exp int64) int64 {
	return func(base, exp int64) int64 {
		res := acc
		for ; more(exp); exp-- {
			res *= base
		}
		return res
	}
}

func positive(exp int64) bool    { return exp > 0 }
func nonNegative(exp int64) bool { return exp >= 0 }

// Mutants returns the mutant catalogue for base, in a fixed order.
func Mutants(base checker.Arithmetic) []Mutant {
	m := func(name, op string, kind Kind, desc string, o *overlay) Mutant {
		o.base = base
		return Mutant{Name: name, Op: op, Kind: kind, Description: desc, Lib: o}
	}
	return []Mutant{
		m("add-minus", "add", BinaryOperatorReplacement, "a + b -> a - b",
			&overlay{add: func(a, b float64) float64 { return a - b }}),
		m("add-times", "add", BinaryOperatorReplacement, "a + b -> a * b",
			&overlay{add: func(a, b float64) float64 { return a * b }}),
		m("subtract-plus", "subtract", BinaryOperatorReplacement, "a - b -> a + b",
			&overlay{subtract: func(a, b float64) float64 { return a + b }}),
		m("subtract-divide", "subtract", BinaryOperatorReplacement, "a - b -> a / b",
			&overlay{subtract: func(a, b float64) float64 { return a / b }}),
		m("power-times", "power", BinaryOperatorReplacement, "a ** b -> a * b",
			&overlay{power: func(a, b float64) float64 { return a * b }}),
		m("intPower-times", "intPower", BinaryOperatorReplacement, "a ** b -> a * b",
			&overlay{intPower: func(a, b int64) int64 { return a * b }}),
		m("intPower-acc-zero", "intPower", ConstantReplacement, "accumulator 1 -> 0",
			&overlay{intPower: intPowerLoop(0, positive)}),
		m("intPower-loop-ge", "intPower", ComparisonOperatorReplacement, "exp > 0 -> exp >= 0",
			&overlay{intPower: intPowerLoop(1, nonNegative)}),
		m("increment-minus", "increment", BinaryOperatorReplacement, "a + 1 -> a - 1",
			&overlay{increment: func(a float64) float64 { return a - 1 }}),
		m("increment-two", "increment", ConstantReplacement, "a + 1 -> a + 2",
			&overlay{increment: func(a float64) float64 { return a + 2 }}),
		m("decrement-plus", "decrement", BinaryOperatorReplacement, "a - 1 -> a + 1",
			&overlay{decrement: func(a float64) float64 { return a + 1 }}),
		m("decrement-zero", "decrement", ConstantReplacement, "a - 1 -> a - 0",
			&overlay{decrement: func(a float64) float64 { return a - 0 }}),
	}
}

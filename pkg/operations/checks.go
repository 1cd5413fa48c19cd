package operations

import (
	_ "embed"
	"fmt"

	"github.com/arangodb/mathcheck/pkg/checker"
	"github.com/arangodb/mathcheck/pkg/checklang"
	"github.com/arangodb/mathcheck/pkg/logger"
	"github.com/arangodb/mathcheck/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultScript runs every check once on the inputs of the math_simple
// suite.
//
//go:embed math_simple.check
var DefaultScript string

// CheckProg is a single check from one line of a script.
type CheckProg struct {
	Op   string
	Args []string
	run  func(c *checker.Checker) error
	checklang.ProgMeta
}

func (p *CheckProg) Lines() (int, int) {
	return p.StartLine, p.EndLine
}

func (p *CheckProg) Len() int {
	return 1
}

func (p *CheckProg) String() string {
	return fmt.Sprintf("%s %v (line %d of script)", p.Op, p.Args, p.StartLine)
}

func (p *CheckProg) Execute(c *checker.Checker) error {
	metrics.ChecksExecuted.WithLabelValues(p.Op).Inc()
	err := p.run(c)
	if err != nil {
		metrics.ChecksFailed.WithLabelValues(p.Op).Inc()
		logger.L().Debug("check failed", zap.String("op", p.Op), zap.Int("line", p.StartLine), zap.Error(err))
		return errors.Wrapf(err, "line %d", p.StartLine)
	}
	logger.L().Debug("check passed", zap.String("op", p.Op), zap.Int("line", p.StartLine), zap.Strings("args", p.Args))
	return nil
}

func newCheckProg(op string, args []string, line int, run func(c *checker.Checker) error) *CheckProg {
	return &CheckProg{
		Op:       op,
		Args:     args,
		run:      run,
		ProgMeta: checklang.ProgMeta{StartLine: line, EndLine: line, Type: op},
	}
}

func makers() map[string]checklang.Maker {
	return map[string]checklang.Maker{
		"add": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a", "b", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("add", args, line, func(c *checker.Checker) error {
				return c.CheckAdd(v[0], v[1], v[2])
			}), nil
		},
		"subtract": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a", "b", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("subtract", args, line, func(c *checker.Checker) error {
				return c.CheckSubtract(v[0], v[1], v[2])
			}), nil
		},
		"power": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "base", "exp", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("power", args, line, func(c *checker.Checker) error {
				return c.CheckPower(v[0], v[1], v[2])
			}), nil
		},
		"intPower": func(args []string, line int) (checklang.Program, error) {
			v, err := parseInts(args, "base", "exp", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("intPower", args, line, func(c *checker.Checker) error {
				return c.CheckIntPower(v[0], v[1], v[2])
			}), nil
		},
		"increment": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("increment", args, line, func(c *checker.Checker) error {
				return c.CheckIncrement(v[0], v[1])
			}), nil
		},
		"decrement": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a", "expected")
			if err != nil {
				return nil, err
			}
			return newCheckProg("decrement", args, line, func(c *checker.Checker) error {
				return c.CheckDecrement(v[0], v[1])
			}), nil
		},
		"addsub": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a", "b")
			if err != nil {
				return nil, err
			}
			return newCheckProg("addsub", args, line, func(c *checker.Checker) error {
				return c.CheckRoundTripAddSub(v[0], v[1])
			}), nil
		},
		"comparePower": func(args []string, line int) (checklang.Program, error) {
			v, err := parseInts(args, "base", "exp")
			if err != nil {
				return nil, err
			}
			if v[1] < 0 {
				return nil, fmt.Errorf("exponent must not be negative, got %d", v[1])
			}
			return newCheckProg("comparePower", args, line, func(c *checker.Checker) error {
				return c.CheckPowerConsistency(v[0], v[1])
			}), nil
		},
		"incdec": func(args []string, line int) (checklang.Program, error) {
			v, err := parseFloats(args, "a")
			if err != nil {
				return nil, err
			}
			return newCheckProg("incdec", args, line, func(c *checker.Checker) error {
				return c.CheckRoundTripIncDec(v[0])
			}), nil
		},
	}
}

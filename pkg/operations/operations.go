package operations

import (
	"fmt"
	"strconv"

	"github.com/arangodb/mathcheck/pkg/checklang"
)

// Init sets up the various checks and links them to checklang
func Init() {
	if checklang.Atoms == nil {
		checklang.Atoms = make(map[string]checklang.Maker, 16)
	}
	for name, maker := range makers() {
		checklang.Atoms[name] = maker
	}
}

// CheckInt64Parameter is used to work on user input from the program and
// extract an integer parameter value.
func CheckInt64Parameter(value *int64, name string, input string) error {
	i, e := strconv.ParseInt(input, 10, 64)
	if e != nil {
		return fmt.Errorf("could not parse %s argument to integer: %s", name, input)
	}
	*value = i
	return nil
}

// CheckFloat64Parameter is the float counterpart of CheckInt64Parameter.
func CheckFloat64Parameter(value *float64, name string, input string) error {
	f, e := strconv.ParseFloat(input, 64)
	if e != nil {
		return fmt.Errorf("could not parse %s argument to number: %s", name, input)
	}
	*value = f
	return nil
}

func checkArgCount(args []string, names []string) error {
	if len(args) != len(names) {
		return fmt.Errorf("expecting %d arguments %v, got %d", len(names), names, len(args))
	}
	return nil
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	if err := checkArgCount(args, names); err != nil {
		return nil, err
	}
	res := make([]float64, len(args))
	for i := range args {
		if err := CheckFloat64Parameter(&res[i], names[i], args[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func parseInts(args []string, names ...string) ([]int64, error) {
	if err := checkArgCount(args, names); err != nil {
		return nil, err
	}
	res := make([]int64, len(args))
	for i := range args {
		if err := CheckInt64Parameter(&res[i], names[i], args[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

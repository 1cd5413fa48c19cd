package checklang

import (
	"fmt"
	"strings"

	"github.com/arangodb/mathcheck/pkg/checker"
	"github.com/pkg/errors"
)

type ProgMeta struct {
	StartLine int
	EndLine   int
	Type      string
}

// Program is a parsed check script. Programs hold no run state, so one
// parsed program can be executed against many checkers, also concurrently.
type Program interface {
	Execute(c *checker.Checker) error // Runs the program, stops at first failure
	Lines() (int, int)                // Returns the input lines of the program
	Len() int                         // Number of atoms in the program
}

type Maker func(args []string, line int) (Program, error)

var Atoms map[string]Maker

type Sequential struct {
	Steps []Program
	ProgMeta
}

func (s *Sequential) Lines() (int, int) {
	return s.StartLine, s.EndLine
}

func (s *Sequential) Len() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Len()
	}
	return n
}

func (s *Sequential) Execute(c *checker.Checker) error {
	for _, step := range s.Steps {
		if err := step.Execute(c); err != nil {
			return err
		}
	}
	return nil
}

func getLine(lines []string, pos *int) (string, error) {
	// Trim line and ignore empty and comment lines:
	var line string
	for *pos < len(lines) {
		line = strings.TrimSpace(lines[*pos])
		if len(line) > 0 && line[0] != '#' {
			return line, nil
		}
		*pos += 1
	}
	return "", fmt.Errorf("unexpected end of input in line %d", *pos+1)
}

// parserRecursion parses one Program starting at pos in lines and
// returns it if this is possible. pos is advanced.
func parserRecursion(lines []string, pos *int, depth int) (Program, error) {
	line, err := getLine(lines, pos)
	if err != nil {
		return nil, err
	}
	if line == "[" {
		// Open new sequential subprogram
		startLine := *pos + 1
		*pos += 1
		seq := Sequential{Steps: make([]Program, 0, 16)}
		for {
			line, err := getLine(lines, pos)
			if err != nil {
				return nil, errors.WithMessagef(err, "unclosed '[' from line %d", startLine)
			}
			if line == "]" {
				break
			}
			prog, err := parserRecursion(lines, pos, depth+1)
			if err != nil {
				return nil, err
			}
			seq.Steps = append(seq.Steps, prog)
		}
		seq.StartLine = startLine
		seq.EndLine = *pos + 1
		seq.Type = "sequential"
		*pos += 1 // consume ]
		return &seq, nil
	} else if line == "]" {
		return nil, fmt.Errorf("unexpected ']' in line %d of input in depth %d", *pos+1, depth)
	}
	args := strings.Fields(line)
	cmd := args[0]
	args = args[1:]
	maker, ok := Atoms[cmd]
	if !ok {
		return nil, fmt.Errorf("no check named %s in line %d of input in depth %d", cmd, *pos+1, depth)
	}
	prog, err := maker(args, *pos+1)
	if err != nil {
		return nil, errors.Wrapf(err, "bad check %s with args %v in line %d of input", cmd, args, *pos+1)
	}
	*pos += 1
	return prog, nil
}

// Parse parses exactly one program from lines; trailing blank and comment
// lines are allowed.
func Parse(lines []string) (Program, error) {
	var pos int = 0
	prog, err := parserRecursion(lines, &pos, 0)
	if err != nil {
		return nil, err
	}
	if _, err := getLine(lines, &pos); err == nil {
		return nil, fmt.Errorf("parsing ended before end of lines in line %d (out of %d lines)", pos+1, len(lines))
	}
	return prog, nil
}

// ParseString splits text into lines and parses it.
func ParseString(text string) (Program, error) {
	return Parse(strings.Split(text, "\n"))
}

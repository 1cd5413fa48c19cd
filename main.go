package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/arangodb/mathcheck/pkg/checker"
	"github.com/arangodb/mathcheck/pkg/checklang"
	"github.com/arangodb/mathcheck/pkg/cli"
	"github.com/arangodb/mathcheck/pkg/config"
	"github.com/arangodb/mathcheck/pkg/logger"
	"github.com/arangodb/mathcheck/pkg/mutation"
	"github.com/arangodb/mathcheck/pkg/mymath"
	"github.com/arangodb/mathcheck/pkg/operations"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	Version = "0.1.0"
)

// Exit codes of the process.
const (
	exitOK = iota
	exitOpen
	exitRead
	exitParse
	exitAssertion
	exitScore
	exitConfig
)

var (
	cmd = &cobra.Command{
		Use:               "mathcheck",
		Short:             "The 'mathcheck' tool asserts results and identities of an arithmetic library.",
		RunE:              mainExecute,
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	mutateCmd = &cobra.Command{
		Use:   "mutate",
		Short: "Run the checks against deliberately broken variants of the library.",
		RunE:  mutateExecute,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version.",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mathcheck version %s\n", Version)
		},
	}
	ConfigFile string

	metricsListener net.Listener
)

func init() {
	flags := cmd.PersistentFlags()
	flags.StringVar(&ConfigFile, "config", "", "YAML file with defaults for all flags.")
	flags.StringVar(&config.ProgName, "execute", "", "Filename of check script to execute (built-in checks if empty).")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&config.NoColor, "noColor", false, "Disable colored output")
	flags.StringVar(&config.LogFormat, "logFormat", "console", "Log format (console, json)")
	flags.IntVar(&config.MetricsPort, "metricsPort", 0, "Metrics port (0 for no metrics)")

	mflags := mutateCmd.Flags()
	mflags.IntVar(&config.Parallelism, "parallelism", 4, "Number of mutants checked concurrently")
	mflags.Float64Var(&config.MinScore, "minScore", 0, "Fail if fewer than this fraction of mutants is killed")

	cmd.AddCommand(mutateCmd, versionCmd)
}

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Cause() error  { return e.err }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

// serveMetrics serves mux on l until the listener is closed.
func serveMetrics(l net.Listener, mux http.Handler) {
	err := http.Serve(l, mux)
	if err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		logger.L().Warn("metrics server stopped", zap.Error(err))
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if ConfigFile != "" {
		cfg, err := config.LoadFile(ConfigFile)
		if err != nil {
			return withCode(exitConfig, err)
		}
		cfg.Apply(cmd.Flags().Changed)
	}
	if err := config.Validate(); err != nil {
		return withCode(exitConfig, err)
	}
	if err := logger.Init(config.Verbose, config.LogFormat); err != nil {
		return withCode(exitConfig, err)
	}
	if config.NoColor {
		color.NoColor = true
	}

	// Expose metrics:
	if config.MetricsPort != 0 && metricsListener == nil {
		l, err := net.Listen("tcp", ":"+strconv.Itoa(config.MetricsPort))
		if err != nil {
			return withCode(exitConfig, errors.Wrapf(err, "could not listen on metrics port %d", config.MetricsPort))
		}
		metricsListener = l
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.L().Info("exposing Prometheus metrics", zap.Int("port", config.MetricsPort), zap.String("path", "/metrics"))
		go serveMetrics(l, mux)
	}
	return nil
}

// readScript returns the lines of the check script, the built-in one if no
// file is configured.
func readScript() ([]string, error) {
	if config.ProgName == "" {
		return strings.Split(operations.DefaultScript, "\n"), nil
	}
	file, err := os.Open(config.ProgName)
	if err != nil {
		return nil, withCode(exitOpen, errors.Wrapf(err, "could not open file %s to execute checks", config.ProgName))
	}
	defer file.Close()

	inputLines := make([]string, 0, 100)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		inputLines = append(inputLines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, withCode(exitRead, errors.Wrapf(err, "could not read file %s to execute checks", config.ProgName))
	}
	return inputLines, nil
}

func loadProgram() (checklang.Program, error) {
	lines, err := readScript()
	if err != nil {
		return nil, err
	}
	operations.Init() // set up checks for the parser

	prog, err := checklang.Parse(lines)
	if err != nil {
		return nil, withCode(exitParse, errors.WithMessage(err, "error in parse"))
	}
	return prog, nil
}

func scriptName() string {
	if config.ProgName == "" {
		return "built-in checks"
	}
	return config.ProgName
}

func mainExecute(cmd *cobra.Command, _ []string) error {
	prog, err := loadProgram()
	if err != nil {
		return err
	}
	logger.L().Debug("running checks", zap.String("script", scriptName()), zap.Int("checks", prog.Len()))

	out := cmd.OutOrStdout()
	if err := prog.Execute(checker.New(mymath.Library{})); err != nil {
		printLocked(out, color.New(color.FgRed, color.Bold), "FAIL %v\n", err)
		if checker.IsAssertionError(err) {
			return withCode(exitAssertion, err)
		}
		return err
	}
	if config.Verbose {
		printLocked(out, color.New(color.FgGreen), "PASS %d checks (%s)\n", prog.Len(), scriptName())
	}
	return nil
}

func mutateExecute(cmd *cobra.Command, _ []string) error {
	prog, err := loadProgram()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	base := mymath.Library{}
	report, err := mutation.Run(ctx, prog, base, mutation.Mutants(base), config.Parallelism)
	out := cmd.OutOrStdout()
	if err != nil {
		printLocked(out, color.New(color.FgRed, color.Bold), "FAIL %v\n", err)
		if checker.IsAssertionError(err) {
			return withCode(exitAssertion, err)
		}
		return err
	}

	printReport(out, report)
	if report.Score() < config.MinScore {
		return withCode(exitScore, errors.Errorf("mutation score %.2f below minimum %.2f", report.Score(), config.MinScore))
	}
	return nil
}

func printReport(out io.Writer, report *mutation.Report) {
	killed := color.New(color.FgGreen)
	survived := color.New(color.FgYellow, color.Bold)
	config.OutputMutex.Lock()
	defer config.OutputMutex.Unlock()
	for _, r := range report.Results {
		if r.Killed {
			killed.Fprintf(out, "killed   %-18s %-16s by %v\n", r.Mutant.Name, r.Mutant.Description, r.Err)
		} else {
			survived.Fprintf(out, "survived %-18s %-16s\n", r.Mutant.Name, r.Mutant.Description)
		}
	}
	fmt.Fprintf(out, "\nmutation score: %d/%d killed (%.1f%%)\n",
		len(report.Killed()), len(report.Results), 100*report.Score())
}

func printLocked(out io.Writer, c *color.Color, format string, args ...interface{}) {
	config.OutputMutex.Lock()
	defer config.OutputMutex.Unlock()
	c.Fprintf(out, format, args...)
}

func main() {
	err := cli.RunCommandWithProfile(cmd)
	logger.Sync()
	if err != nil {
		// Failed assertions have been reported as FAIL already.
		if exitCode(err) != exitAssertion {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

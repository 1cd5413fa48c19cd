package cli

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/arangodb/mathcheck/pkg/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	cpuProfileEnv    = "PPROF_CPU_FILENAME"
	memoryProfileEnv = "PPROF_MEMORY_FILENAME"
)

// RunCommandWithProfile executes cmd, with a CPU profile around it and a heap
// profile after it when the corresponding environment variables name files.
// Profiling problems are logged and never hide the command's own error.
func RunCommandWithProfile(cmd *cobra.Command) error {
	if filename := os.Getenv(cpuProfileEnv); len(filename) > 0 {
		stop, err := startCPUProfile(filename)
		if err != nil {
			logger.L().Warn("CPU profiling disabled", zap.Error(err))
		} else {
			defer stop()
		}
	}

	errExecute := cmd.Execute()

	if err := writeHeapProfile(os.Getenv(memoryProfileEnv)); err != nil {
		logger.L().Warn("heap profile failed", zap.Error(err))
		if errExecute == nil {
			return err
		}
	}
	return errExecute
}

// createProfile opens the output file for a profile of the given kind.
func createProfile(kind, filename string) (*os.File, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, errors.WithMessagef(err, "could not create %s profile %s", kind, filename)
	}
	return f, nil
}

func startCPUProfile(filename string) (func(), error) {
	f, err := createProfile("CPU", filename)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.WithMessage(err, "could not start CPU profile")
	}
	return func() {
		pprof.StopCPUProfile()
		if err := f.Close(); err != nil {
			logger.L().Warn("could not close CPU profile", zap.String("file", filename), zap.Error(err))
		}
	}, nil
}

// writeHeapProfile writes the live heap after a collection to filename. An
// empty filename disables it.
func writeHeapProfile(filename string) (err error) {
	if filename == "" {
		return nil
	}
	f, err := createProfile("heap", filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WithMessagef(cerr, "could not close heap profile %s", filename)
		}
	}()

	runtime.GC()
	if err := pprof.Lookup("heap").WriteTo(f, 0); err != nil {
		return errors.WithMessagef(err, "could not write heap profile %s", filename)
	}
	return nil
}

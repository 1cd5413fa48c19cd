package mutation

import (
	"context"
	"sync"

	"github.com/arangodb/mathcheck/pkg/checker"
	"github.com/arangodb/mathcheck/pkg/checklang"
	"github.com/arangodb/mathcheck/pkg/logger"
	"github.com/arangodb/mathcheck/pkg/metrics"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Result is the outcome of running a program against one mutant. Err is the
// first failing check for a killed mutant.
type Result struct {
	Mutant Mutant
	Killed bool
	Err    error
}

type Report struct {
	Results []Result
}

func (r *Report) Killed() []Result {
	return r.filter(true)
}

func (r *Report) Survived() []Result {
	return r.filter(false)
}

func (r *Report) filter(killed bool) []Result {
	res := make([]Result, 0, len(r.Results))
	for _, x := range r.Results {
		if x.Killed == killed {
			res = append(res, x)
		}
	}
	return res
}

// Score is the fraction of killed mutants, 0 if there are none.
func (r *Report) Score() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(len(r.Killed())) / float64(len(r.Results))
}

// Run executes prog against base and then against every mutant. A failing
// baseline is returned as error, no mutants are run in that case.
func Run(ctx context.Context, prog checklang.Program, base checker.Arithmetic,
	mutants []Mutant, parallelism int) (*Report, error) {
	if err := prog.Execute(checker.New(base)); err != nil {
		return nil, errors.WithMessage(err, "checks fail against the unmutated library")
	}

	report := &Report{Results: make([]Result, len(mutants))}
	err := RunParallel(ctx, parallelism, len(mutants), func(i int) {
		m := mutants[i]
		err := prog.Execute(checker.New(m.Lib))
		report.Results[i] = Result{Mutant: m, Killed: err != nil, Err: err}
		if err != nil {
			metrics.MutantsKilled.Inc()
			logger.L().Debug("mutant killed", zap.String("mutant", m.Name), zap.Error(err))
		} else {
			metrics.MutantsSurvived.Inc()
			logger.L().Debug("mutant survived", zap.String("mutant", m.Name))
		}
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// RunParallel calls action for every job index in [0, jobs) on at most
// parallelism goroutines. Once ctx is done no further jobs are started and
// ctx.Err() is returned after the running ones finish.
func RunParallel(ctx context.Context, parallelism int, jobs int, action func(i int)) error {
	if parallelism < 1 {
		parallelism = 1
	}
	work := make(chan int)
	wg := sync.WaitGroup{}
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func(wg *sync.WaitGroup) {
			defer wg.Done()
			for i := range work {
				action(i)
			}
		}(&wg)
	}

	var err error
schedule:
	for i := 0; i < jobs; i++ {
		if ctx.Err() != nil {
			err = ctx.Err()
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break schedule
		case work <- i:
		}
	}
	close(work)
	wg.Wait()
	return err
}

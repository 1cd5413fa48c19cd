package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChecksExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathcheck_checks_executed_total",
		Help: "The total number of checks executed.",
	}, []string{"op"})
	ChecksFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathcheck_checks_failed_total",
		Help: "The total number of checks whose assertion failed.",
	}, []string{"op"})
	MutantsKilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathcheck_mutants_killed_total",
		Help: "The total number of mutants detected by a failing check.",
	})
	MutantsSurvived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathcheck_mutants_survived_total",
		Help: "The total number of mutants no check detected.",
	})
)

// Package metrics wires the restart-loop engine to Prometheus (SPEC_FULL.md §4.8).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nightshift-health/shiftplan/internal/scheduling"
)

// GenerationObserver implements scheduling.Observer, recording per-attempt
// and per-run telemetry as Prometheus series.
type GenerationObserver struct {
	attemptsTotal   prometheus.Counter
	attemptScore    prometheus.Histogram
	runsTotal       prometheus.Counter
	runScore        prometheus.Histogram
	runAttemptsUsed prometheus.Histogram
}

// NewGenerationObserver registers the generation metrics against reg and
// returns an Observer ready to pass to scheduling.Generate.
func NewGenerationObserver(reg prometheus.Registerer) *GenerationObserver {
	factory := promauto.With(reg)
	return &GenerationObserver{
		attemptsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shiftplan",
			Subsystem: "generation",
			Name:      "attempts_total",
			Help:      "Number of restart-loop attempts run across all generations.",
		}),
		attemptScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shiftplan",
			Subsystem: "generation",
			Name:      "attempt_score",
			Help:      "Overall score of a single restart-loop attempt.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "shiftplan",
			Subsystem: "generation",
			Name:      "runs_total",
			Help:      "Number of completed Generate runs.",
		}),
		runScore: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shiftplan",
			Subsystem: "generation",
			Name:      "run_score",
			Help:      "Best-of-K score returned by a completed Generate run.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		runAttemptsUsed: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "shiftplan",
			Subsystem: "generation",
			Name:      "run_attempts_used",
			Help:      "Number of restart attempts a completed Generate run consumed.",
			Buckets:   prometheus.LinearBuckets(1, 1, 20),
		}),
	}
}

// ObserveAttempt records one restart-loop attempt's score.
func (o *GenerationObserver) ObserveAttempt(attempt int, score float64) {
	o.attemptsTotal.Inc()
	o.attemptScore.Observe(score)
}

// ObserveResult records a completed run's best-of-K outcome.
func (o *GenerationObserver) ObserveResult(result scheduling.GenerateResult) {
	o.runsTotal.Inc()
	o.runScore.Observe(result.Score)
	o.runAttemptsUsed.Observe(float64(result.AttemptsUsed))
}

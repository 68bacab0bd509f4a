package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightshift-health/shiftplan/internal/metrics"
	"github.com/nightshift-health/shiftplan/internal/scheduling"
)

func TestGenerationObserver_ObserveAttempt_IncrementsAttemptsTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer := metrics.NewGenerationObserver(reg)

	observer.ObserveAttempt(1, 87.5)
	observer.ObserveAttempt(2, 91.0)

	count, err := promtestutil.GatherAndCount(reg, "shiftplan_generation_attempts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(2), findCounterValue(t, families, "shiftplan_generation_attempts_total"))
}

func TestGenerationObserver_ObserveResult_RecordsRunMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observer := metrics.NewGenerationObserver(reg)

	observer.ObserveResult(scheduling.GenerateResult{Score: 93.2, AttemptsUsed: 4})

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Equal(t, float64(1), findCounterValue(t, families, "shiftplan_generation_runs_total"))
}

func findCounterValue(t *testing.T, families []*dto.MetricFamily, name string) float64 {
	t.Helper()
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		return family.Metric[0].GetCounter().GetValue()
	}
	t.Fatalf("metric family %s not found", name)
	return 0
}

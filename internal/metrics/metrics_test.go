package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	before := testutil.ToFloat64(AnalysisRuns.WithLabelValues("success"))
	beforeErr := testutil.ToFloat64(AnalysisRuns.WithLabelValues("error"))

	ObserveRun(10*time.Millisecond, nil)
	ObserveRun(time.Millisecond, errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(AnalysisRuns.WithLabelValues("success")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(AnalysisRuns.WithLabelValues("error")))
}

func TestRecordReport(t *testing.T) {
	RecordReport(3, map[string]int{"beta": 2, "sharpe": 0})

	assert.Equal(t, 3.0, testutil.ToFloat64(AssetsAssessed))
	assert.Equal(t, 2.0, testutil.ToFloat64(UnavailableMetrics.WithLabelValues("beta")))
	assert.Equal(t, 0.0, testutil.ToFloat64(UnavailableMetrics.WithLabelValues("sharpe")))
}

func TestObserveExport(t *testing.T) {
	before := testutil.ToFloat64(ReportExports.WithLabelValues("success"))
	ObserveExport(nil)
	assert.Equal(t, before+1, testutil.ToFloat64(ReportExports.WithLabelValues("success")))
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })

	AnalysisRuns.WithLabelValues("success").Inc()
	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "riskdesk_analysis_runs_total")
	assert.Contains(t, names, "riskdesk_analysis_duration_seconds")

	InitMetrics()
	assert.NotPanics(t, InitMetrics)
}

// Package metrics exposes Prometheus collectors for analysis runs and exports.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "riskdesk"

var (
	// AnalysisRuns counts analysis runs by outcome (success or error).
	AnalysisRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_runs_total",
		Help:      "Risk analysis runs by outcome.",
	}, []string{"outcome"})

	// AnalysisDuration observes how long each analysis run takes.
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of risk analysis runs in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
	})

	// AssetsAssessed is the number of holdings in the latest report.
	AssetsAssessed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "assets_assessed",
		Help:      "Number of holdings in the latest report.",
	})

	// UnavailableMetrics counts N/A cells in the latest report per metric.
	UnavailableMetrics = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unavailable_metrics",
		Help:      "Unavailable metric cells in the latest report by metric.",
	}, []string{"metric"})

	// ReportExports counts report uploads by outcome.
	ReportExports = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_exports_total",
		Help:      "Report exports by outcome.",
	}, []string{"outcome"})
)

var registerOnce sync.Once

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(AnalysisRuns, AnalysisDuration, AssetsAssessed, UnavailableMetrics, ReportExports)
}

// InitMetrics registers the collectors with the default registry once.
func InitMetrics() {
	registerOnce.Do(func() {
		Register(prometheus.DefaultRegisterer)
	})
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveRun records one analysis run.
func ObserveRun(duration time.Duration, err error) {
	AnalysisRuns.WithLabelValues(outcome(err)).Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

// RecordReport publishes the shape of the latest report.
func RecordReport(assets int, unavailable map[string]int) {
	AssetsAssessed.Set(float64(assets))
	for metric, n := range unavailable {
		UnavailableMetrics.WithLabelValues(metric).Set(float64(n))
	}
}

// ObserveExport records one export attempt.
func ObserveExport(err error) {
	ReportExports.WithLabelValues(outcome(err)).Inc()
}

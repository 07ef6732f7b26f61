// Package formulas implements the return engine and the risk metric library.
//
// Every metric function is pure and reports insufficient or degenerate input
// through an unavailable Metric instead of 0 or NaN.
package formulas

import (
	"fmt"
	"math"
)

// Reason explains why a metric could not be computed.
type Reason string

const (
	// ReasonInsufficientData means the series was too short for the metric.
	ReasonInsufficientData Reason = "insufficient_data"
	// ReasonMissingSymbol means the holding had no price history at all.
	ReasonMissingSymbol Reason = "missing_symbol"
	// ReasonMissingBenchmark means the benchmark series was absent.
	ReasonMissingBenchmark Reason = "missing_benchmark"
	// ReasonDegenerateInput means a denominator was zero (flat benchmark, zero volatility).
	ReasonDegenerateInput Reason = "degenerate_input"
)

// NotAvailable is how unavailable metrics are rendered.
const NotAvailable = "N/A"

// zeroTolerance treats dispersion below this as zero; float rounding leaves
// residues around 1e-18 for constant series.
const zeroTolerance = 1e-12

// Metric is either an available float value or an unavailable marker with a reason.
// The zero Metric is unavailable with insufficient data.
type Metric struct {
	value     float64
	available bool
	reason    Reason
}

// Available wraps a computed value. Non-finite values are reported as degenerate.
func Available(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable(ReasonDegenerateInput)
	}
	return Metric{value: v, available: true}
}

// Unavailable builds a metric that carries no value.
func Unavailable(reason Reason) Metric {
	if reason == "" {
		reason = ReasonInsufficientData
	}
	return Metric{reason: reason}
}

// Value returns the value and whether it is available.
func (m Metric) Value() (float64, bool) {
	return m.value, m.available
}

// IsAvailable reports whether the metric carries a value.
func (m Metric) IsAvailable() bool {
	return m.available
}

// Reason returns why the metric is unavailable, or "" when it is available.
func (m Metric) Reason() Reason {
	if m.available {
		return ""
	}
	if m.reason == "" {
		return ReasonInsufficientData
	}
	return m.reason
}

// Ptr returns a pointer to the value, or nil when unavailable.
func (m Metric) Ptr() *float64 {
	if !m.available {
		return nil
	}
	v := m.value
	return &v
}

// String renders the value with four decimals or "N/A".
func (m Metric) String() string {
	if !m.available {
		return NotAvailable
	}
	return fmt.Sprintf("%.4f", m.value)
}

package risk

import (
	"fmt"
	"strings"
)

// MetricName identifies one of the five per-asset metrics.
type MetricName string

const (
	MetricVolatility  MetricName = "volatility"
	MetricBeta        MetricName = "beta"
	MetricVaR         MetricName = "var"
	MetricSharpe      MetricName = "sharpe"
	MetricMaxDrawdown MetricName = "max_drawdown"
)

// AllMetrics lists every metric in report order.
var AllMetrics = []MetricName{MetricVolatility, MetricBeta, MetricVaR, MetricSharpe, MetricMaxDrawdown}

// ParseMetricName accepts the canonical names plus a few aliases.
func ParseMetricName(s string) (MetricName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "volatility", "vol":
		return MetricVolatility, nil
	case "beta":
		return MetricBeta, nil
	case "var", "value_at_risk":
		return MetricVaR, nil
	case "sharpe", "sharpe_ratio":
		return MetricSharpe, nil
	case "max_drawdown", "max-drawdown", "drawdown":
		return MetricMaxDrawdown, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// HigherIsBetter reports whether larger values are more desirable. Only the
// Sharpe ratio is; the rest measure risk.
func (m MetricName) HigherIsBetter() bool {
	return m == MetricSharpe
}

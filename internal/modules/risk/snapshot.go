package risk

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aristath/riskdesk/pkg/formulas"
	"github.com/vmihailenco/msgpack/v5"
)

// MetricValue is the wire form of a formulas.Metric. Value is nil when unavailable.
type MetricValue struct {
	Value   *float64 `json:"value" msgpack:"value"`
	Display string   `json:"display" msgpack:"display"`
	Reason  string   `json:"reason,omitempty" msgpack:"reason,omitempty"`
}

// AssetSnapshot is the wire form of an AssetRiskProfile with its labels.
type AssetSnapshot struct {
	Symbol                string                     `json:"symbol" msgpack:"symbol"`
	Quantity              string                     `json:"quantity" msgpack:"quantity"`
	CurrentValue          string                     `json:"current_value" msgpack:"current_value"`
	Weight                float64                    `json:"weight" msgpack:"weight"`
	Observations          int                        `json:"observations" msgpack:"observations"`
	BenchmarkObservations int                        `json:"benchmark_observations" msgpack:"benchmark_observations"`
	Missing               bool                       `json:"missing" msgpack:"missing"`
	Metrics               map[MetricName]MetricValue `json:"metrics" msgpack:"metrics"`
	Labels                AssetLabels                `json:"labels" msgpack:"labels"`
}

// PortfolioSnapshot is the wire form of PortfolioRisk.
type PortfolioSnapshot struct {
	Weights               map[string]float64         `json:"weights" msgpack:"weights"`
	Observations          int                        `json:"observations" msgpack:"observations"`
	BenchmarkObservations int                        `json:"benchmark_observations" msgpack:"benchmark_observations"`
	Metrics               map[MetricName]MetricValue `json:"metrics" msgpack:"metrics"`
}

// ReportSnapshot is the serialisable form of a RiskReport.
type ReportSnapshot struct {
	RunID       string                  `json:"run_id" msgpack:"run_id"`
	GeneratedAt time.Time               `json:"generated_at" msgpack:"generated_at"`
	Config      Config                  `json:"config" msgpack:"config"`
	Assets      []AssetSnapshot         `json:"assets" msgpack:"assets"`
	Rankings    map[MetricName][]string `json:"rankings" msgpack:"rankings"`
	Highlights  Highlights              `json:"highlights" msgpack:"highlights"`
	Portfolio   *PortfolioSnapshot      `json:"portfolio,omitempty" msgpack:"portfolio,omitempty"`
}

// NewMetricValue converts a metric to its wire form.
func NewMetricValue(m formulas.Metric) MetricValue {
	return MetricValue{
		Value:   m.Ptr(),
		Display: m.String(),
		Reason:  string(m.Reason()),
	}
}

func metricValues(get func(MetricName) formulas.Metric) map[MetricName]MetricValue {
	out := make(map[MetricName]MetricValue, len(AllMetrics))
	for _, name := range AllMetrics {
		out[name] = NewMetricValue(get(name))
	}
	return out
}

// NewProfileSnapshot converts a profile assessed outside a report.
func NewProfileSnapshot(p AssetRiskProfile) AssetSnapshot {
	return AssetSnapshot{
		Symbol:                p.Symbol,
		Weight:                p.Weight,
		Observations:          p.Observations,
		BenchmarkObservations: p.BenchmarkObservations,
		Missing:               p.Missing,
		Metrics:               metricValues(p.Metric),
		Labels:                Classify(p),
	}
}

// NewAssetSnapshot converts one profile.
func (r *RiskReport) NewAssetSnapshot(i int) AssetSnapshot {
	p := r.Profiles[i]
	snap := NewProfileSnapshot(p)
	snap.Labels = r.Labels[p.Symbol]
	if i < len(r.Holdings) {
		snap.Quantity = r.Holdings[i].Quantity.String()
		snap.CurrentValue = r.Holdings[i].CurrentValue.String()
	}
	return snap
}

// Snapshot converts the report to its wire form.
func (r *RiskReport) Snapshot() ReportSnapshot {
	snap := ReportSnapshot{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Config:      r.Config,
		Assets:      make([]AssetSnapshot, len(r.Profiles)),
		Rankings:    make(map[MetricName][]string, len(r.Rankings)),
		Highlights:  r.Highlights,
	}
	for i := range r.Profiles {
		snap.Assets[i] = r.NewAssetSnapshot(i)
	}
	for _, name := range AllMetrics {
		ranked := r.Rankings[name]
		if ranked == nil {
			ranked = []string{}
		}
		snap.Rankings[name] = ranked
	}
	if r.Portfolio != nil {
		snap.Portfolio = &PortfolioSnapshot{
			Weights:               r.Portfolio.Weights,
			Observations:          r.Portfolio.Observations,
			BenchmarkObservations: r.Portfolio.BenchmarkObservations,
			Metrics:               metricValues(r.Portfolio.Metric),
		}
	}
	return snap
}

// Format is a report encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts "json" or "msgpack"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "msgpack", "messagepack":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatMsgpack {
		return "application/msgpack"
	}
	return "application/json"
}

// Extension returns the file extension of the format without a dot.
func (f Format) Extension() string {
	if f == FormatMsgpack {
		return "msgpack"
	}
	return "json"
}

// Encode writes v in the given format.
func Encode(w io.Writer, v interface{}, format Format) error {
	switch format {
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(v)
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// DecodeSnapshot reads a snapshot in the given format.
func DecodeSnapshot(r io.Reader, format Format) (ReportSnapshot, error) {
	var snap ReportSnapshot
	var err error
	switch format {
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&snap)
	default:
		err = json.NewDecoder(r).Decode(&snap)
	}
	return snap, err
}

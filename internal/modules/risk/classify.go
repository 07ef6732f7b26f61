package risk

import (
	"sort"

	"github.com/aristath/riskdesk/pkg/formulas"
)

// Level is the band a metric value falls in.
type Level string

// Risk levels, used by volatility and beta.
const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
	LevelNone     Level = ""
)

// Quality levels, used by Sharpe where higher is better.
const (
	LevelNegative  Level = "Negative"
	LevelPoor      Level = "Poor"
	LevelGood      Level = "Good"
	LevelExcellent Level = "Excellent"
)

var (
	riskLevels    = []Level{LevelLow, LevelMedium, LevelHigh, LevelVeryHigh}
	qualityLevels = []Level{LevelNegative, LevelPoor, LevelGood, LevelExcellent}
)

// Classification is the categorical label of one metric value.
type Classification struct {
	Level Level  `json:"level,omitempty" msgpack:"level,omitempty"`
	Label string `json:"label" msgpack:"label"`
}

// Available reports whether the value was classified.
func (c Classification) Available() bool {
	return c.Level != LevelNone
}

// Scale maps values to bands using sorted lower bounds. bounds[i] is the
// inclusive lower bound of band i+1; band 0 is everything below bounds[0].
type Scale struct {
	bounds []float64
	bands  []Classification
}

func newScale(bounds []float64, levels []Level, labels ...string) Scale {
	if len(labels) != len(bounds)+1 || len(labels) > len(levels) {
		panic("risk: scale needs one more label than bounds")
	}
	if !sort.Float64sAreSorted(bounds) {
		panic("risk: scale bounds must be sorted")
	}
	bands := make([]Classification, len(labels))
	for i, l := range labels {
		bands[i] = Classification{Level: levels[i], Label: l}
	}
	return Scale{bounds: bounds, bands: bands}
}

// Classify returns the band containing v.
func (s Scale) Classify(v float64) Classification {
	i := sort.Search(len(s.bounds), func(i int) bool { return s.bounds[i] > v })
	return s.bands[i]
}

// ClassifyMetric classifies an available metric or labels it N/A.
func (s Scale) ClassifyMetric(m formulas.Metric) Classification {
	v, ok := m.Value()
	if !ok {
		return Classification{Label: formulas.NotAvailable}
	}
	return s.Classify(v)
}

var (
	// VolatilityScale bands annualised volatility at 15%, 25% and 40%.
	VolatilityScale = newScale([]float64{0.15, 0.25, 0.40}, riskLevels,
		"Low", "Medium", "High", "Very High")
	// BetaScale bands market sensitivity at 0.5, 1.0 and 1.5.
	BetaScale = newScale([]float64{0.5, 1.0, 1.5}, riskLevels,
		"Low sensitivity", "Below avg sensitivity", "Average sensitivity", "High sensitivity")
	// SharpeScale bands risk-adjusted return at 0, 0.5 and 1.0.
	SharpeScale = newScale([]float64{0, 0.5, 1.0}, qualityLevels,
		"Negative", "Poor", "Good", "Excellent")
)

// AssetLabels are the categorical labels of one asset.
type AssetLabels struct {
	Volatility Classification `json:"volatility" msgpack:"volatility"`
	Beta       Classification `json:"beta" msgpack:"beta"`
	Sharpe     Classification `json:"sharpe" msgpack:"sharpe"`
}

// Classify labels a profile.
func Classify(p AssetRiskProfile) AssetLabels {
	return AssetLabels{
		Volatility: VolatilityScale.ClassifyMetric(p.Volatility),
		Beta:       BetaScale.ClassifyMetric(p.Beta),
		Sharpe:     SharpeScale.ClassifyMetric(p.Sharpe),
	}
}

// ClassifyAll labels every profile, keyed by symbol.
func ClassifyAll(profiles []AssetRiskProfile) map[string]AssetLabels {
	out := make(map[string]AssetLabels, len(profiles))
	for _, p := range profiles {
		out[p.Symbol] = Classify(p)
	}
	return out
}

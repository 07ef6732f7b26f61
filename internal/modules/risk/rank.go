package risk

import (
	"sort"
)

// Rank orders symbols by one metric, least risky (or best Sharpe) first.
// Profiles without the metric are left out. Ties are broken by symbol.
func Rank(profiles []AssetRiskProfile, metric MetricName) []string {
	type entry struct {
		symbol string
		value  float64
	}

	entries := make([]entry, 0, len(profiles))
	for _, p := range profiles {
		if v, ok := p.Metric(metric).Value(); ok {
			entries = append(entries, entry{symbol: p.Symbol, value: v})
		}
	}

	desc := metric.HigherIsBetter()
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.value != b.value {
			if desc {
				return a.value > b.value
			}
			return a.value < b.value
		}
		return a.symbol < b.symbol
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.symbol
	}
	return out
}

// RankAll ranks every metric.
func RankAll(profiles []AssetRiskProfile) map[MetricName][]string {
	out := make(map[MetricName][]string, len(AllMetrics))
	for _, m := range AllMetrics {
		out[m] = Rank(profiles, m)
	}
	return out
}

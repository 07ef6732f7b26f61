package domain

// ReturnSeries is a dated sequence of simple period returns.
type ReturnSeries struct {
	dates  []Date
	values []float64
}

// NewReturnSeries pairs dates with values. Extra entries on either side are dropped.
func NewReturnSeries(dates []Date, values []float64) ReturnSeries {
	n := len(dates)
	if len(values) < n {
		n = len(values)
	}
	rs := ReturnSeries{dates: make([]Date, n), values: make([]float64, n)}
	copy(rs.dates, dates[:n])
	copy(rs.values, values[:n])
	return rs
}

// Len returns the number of returns.
func (r ReturnSeries) Len() int {
	return len(r.values)
}

// Values returns a copy of the return values.
func (r ReturnSeries) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Dates returns a copy of the return dates.
func (r ReturnSeries) Dates() []Date {
	out := make([]Date, len(r.dates))
	copy(out, r.dates)
	return out
}

// AlignReturns restricts two series to their common dates, preserving order.
func AlignReturns(a, b ReturnSeries) (ReturnSeries, ReturnSeries) {
	var outA, outB ReturnSeries
	i, j := 0, 0
	for i < len(a.dates) && j < len(b.dates) {
		switch {
		case a.dates[i] == b.dates[j]:
			outA.dates = append(outA.dates, a.dates[i])
			outA.values = append(outA.values, a.values[i])
			outB.dates = append(outB.dates, b.dates[j])
			outB.values = append(outB.values, b.values[j])
			i++
			j++
		case a.dates[i].Before(b.dates[j]):
			i++
		default:
			j++
		}
	}
	return outA, outB
}

// AlignAll restricts every series to the dates present in all of them.
func AlignAll(series ...ReturnSeries) []ReturnSeries {
	if len(series) == 0 {
		return nil
	}

	counts := make(map[Date]int)
	for _, s := range series {
		for _, d := range s.dates {
			counts[d]++
		}
	}

	out := make([]ReturnSeries, len(series))
	for k, s := range series {
		for i, d := range s.dates {
			if counts[d] == len(series) {
				out[k].dates = append(out[k].dates, d)
				out[k].values = append(out[k].values, s.values[i])
			}
		}
	}
	return out
}

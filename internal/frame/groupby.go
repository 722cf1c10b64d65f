package frame

import (
	"fmt"
	"math"
)

// Aggregation selects how a column is collapsed when grouping.
type Aggregation int

const (
	// AggFirst keeps the first value in each group. Used for identifying
	// columns that are constant per farm-year.
	AggFirst Aggregation = iota
	// AggSum adds the group's values, skipping NaN. An all-NaN group sums
	// to zero.
	AggSum
	// AggMean averages the group's values, skipping NaN. An all-NaN group
	// stays NaN.
	AggMean
)

func (a Aggregation) String() string {
	switch a {
	case AggFirst:
		return "first"
	case AggSum:
		return "sum"
	case AggMean:
		return "mean"
	default:
		return fmt.Sprintf("Aggregation(%d)", int(a))
	}
}

// AggRule binds one column to an aggregation.
type AggRule struct {
	Column string
	Agg    Aggregation
}

// Rules builds an AggRule list by applying one aggregation to several
// columns, keeping group-by call sites readable.
func Rules(agg Aggregation, columns ...string) []AggRule {
	rules := make([]AggRule, len(columns))
	for i, c := range columns {
		rules[i] = AggRule{Column: c, Agg: agg}
	}
	return rules
}

type groupAcc struct {
	first    float64
	hasFirst bool
	sum      float64
	n        int
}

// add folds one cell into the accumulator. NaN cells are skipped, matching
// how the raw files leave unreported figures empty.
func (a *groupAcc) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if !a.hasFirst {
		a.first = v
		a.hasFirst = true
	}
	a.sum += v
	a.n++
}

func (a *groupAcc) result(agg Aggregation) float64 {
	switch agg {
	case AggFirst:
		if !a.hasFirst {
			return math.NaN()
		}
		return a.first
	case AggSum:
		return a.sum
	default: // AggMean
		if a.n == 0 {
			return math.NaN()
		}
		return a.sum / float64(a.n)
	}
}

// GroupBy collapses rows sharing the same values in the by columns into one
// row each, applying the given rule per column. Columns without a rule are
// dropped. Output columns are the by columns followed by the ruled columns in
// rule order; groups appear in first-appearance order.
func (f *Frame) GroupBy(by []string, rules []AggRule) (*Frame, error) {
	byIdx := make([]int, len(by))
	for i, c := range by {
		idx, ok := f.index[c]
		if !ok {
			return nil, fmt.Errorf("group by %q: no such column", c)
		}
		byIdx[i] = idx
	}
	ruleIdx := make([]int, len(rules))
	for i, rule := range rules {
		idx, ok := f.index[rule.Column]
		if !ok {
			return nil, fmt.Errorf("aggregate %q: no such column", rule.Column)
		}
		ruleIdx[i] = idx
	}

	var order []string
	groups := make(map[string][]*groupAcc)
	keyCells := make(map[string][]float64)

	for _, row := range f.rows {
		k := mergeKey(row, byIdx)
		accs, seen := groups[k]
		if !seen {
			accs = make([]*groupAcc, len(rules))
			for i := range accs {
				accs[i] = &groupAcc{}
			}
			groups[k] = accs
			order = append(order, k)
			key := make([]float64, len(byIdx))
			for i, idx := range byIdx {
				key[i] = row[idx]
			}
			keyCells[k] = key
		}
		for i, idx := range ruleIdx {
			accs[i].add(row[idx])
		}
	}

	columns := make([]string, 0, len(by)+len(rules))
	columns = append(columns, by...)
	for _, rule := range rules {
		columns = append(columns, rule.Column)
	}
	out, err := New(columns...)
	if err != nil {
		return nil, err
	}
	for _, k := range order {
		cells := append([]float64(nil), keyCells[k]...)
		for i, rule := range rules {
			cells = append(cells, groups[k][i].result(rule.Agg))
		}
		out.rows = append(out.rows, cells)
	}
	return out, nil
}

package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InnerMerge joins two frames on every column name they share, keeping only
// rows whose key values match in both frames (inner join). Rows present in
// just one frame are silently discarded, so a merge over disjoint farm-years
// yields an empty frame rather than an error.
//
// Result columns are the left frame's columns followed by the right frame's
// remaining ones. Row order follows the left frame; multiple right-side
// matches fan out in right-frame order.
func (f *Frame) InnerMerge(other *Frame) (*Frame, error) {
	var shared []string
	for _, c := range f.columns {
		if other.HasColumn(c) {
			shared = append(shared, c)
		}
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("inner merge: no shared columns between %v and %v", f.columns, other.columns)
	}

	var rightOnly []string
	for _, c := range other.columns {
		if !f.HasColumn(c) {
			rightOnly = append(rightOnly, c)
		}
	}

	leftKey := make([]int, len(shared))
	rightKey := make([]int, len(shared))
	for i, c := range shared {
		leftKey[i] = f.index[c]
		rightKey[i] = other.index[c]
	}
	rightExtra := make([]int, len(rightOnly))
	for i, c := range rightOnly {
		rightExtra[i] = other.index[c]
	}

	byKey := make(map[string][]int, other.Len())
	for r, row := range other.rows {
		k := mergeKey(row, rightKey)
		byKey[k] = append(byKey[k], r)
	}

	out, err := New(append(f.Columns(), rightOnly...)...)
	if err != nil {
		return nil, err
	}
	for _, row := range f.rows {
		for _, r := range byKey[mergeKey(row, leftKey)] {
			cells := make([]float64, 0, len(row)+len(rightExtra))
			cells = append(cells, row...)
			for _, i := range rightExtra {
				cells = append(cells, other.rows[r][i])
			}
			out.rows = append(out.rows, cells)
		}
	}
	return out, nil
}

// mergeKey builds a hash key from the cells at the given positions. NaN cells
// get a marker so unreported keys match each other but never a real number.
func mergeKey(row []float64, at []int) string {
	var b strings.Builder
	for _, i := range at {
		if math.IsNaN(row[i]) {
			b.WriteString("NaN")
		} else {
			b.WriteString(strconv.FormatFloat(row[i], 'g', -1, 64))
		}
		b.WriteByte('|')
	}
	return b.String()
}

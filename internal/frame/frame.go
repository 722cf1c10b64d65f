package frame

import (
	"fmt"
	"math"
)

// Frame is an ordered-column table of float64 cells. Cells that were empty in
// the source file are NaN.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]float64
}

// Row is a read-only view of one frame row, used by predicates and derived
// column functions.
type Row struct {
	frame *Frame
	cells []float64
}

// Value returns the cell in the named column. Unknown columns return NaN,
// which lets predicates over optional columns stay total.
func (r Row) Value(column string) float64 {
	i, ok := r.frame.index[column]
	if !ok {
		return math.NaN()
	}
	return r.cells[i]
}

// New creates an empty frame with the given column order. Column names must
// be unique.
func New(columns ...string) (*Frame, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		index[c] = i
	}
	return &Frame{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// MustNew is New for statically known column lists, used mainly in tests.
func MustNew(columns ...string) *Frame {
	f, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return f
}

// AppendRow adds one row. The cell count must match the column count.
func (f *Frame) AppendRow(cells ...float64) error {
	if len(cells) != len(f.columns) {
		return fmt.Errorf("row has %d cells, frame has %d columns", len(cells), len(f.columns))
	}
	f.rows = append(f.rows, append([]float64(nil), cells...))
	return nil
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

// HasColumn reports whether the named column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Value returns the cell at (row, column). It panics on an unknown column or
// an out-of-range row, like indexing a slice would.
func (f *Frame) Value(row int, column string) float64 {
	i, ok := f.index[column]
	if !ok {
		panic(fmt.Sprintf("frame: no column %q", column))
	}
	return f.rows[row][i]
}

// Column returns a copy of the named column's cells.
func (f *Frame) Column(name string) ([]float64, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(f.rows))
	for r, row := range f.rows {
		out[r] = row[i]
	}
	return out, true
}

// Row returns a read-only view of the row at the given position.
func (f *Frame) Row(i int) Row {
	return Row{frame: f, cells: f.rows[i]}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := MustNew(f.columns...)
	out.rows = make([][]float64, len(f.rows))
	for i, row := range f.rows {
		out.rows[i] = append([]float64(nil), row...)
	}
	return out
}

// DropColumns removes the named columns. Dropping a column that does not
// exist is an error; the pipeline only drops columns its schema guarantees.
func (f *Frame) DropColumns(names ...string) (*Frame, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !f.HasColumn(n) {
			return nil, fmt.Errorf("drop column %q: no such column", n)
		}
		drop[n] = true
	}
	keep := make([]string, 0, len(f.columns)-len(names))
	for _, c := range f.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return f.Select(keep...), nil
}

// Select returns a frame with the listed columns, in the listed order.
// Names with no matching column are silently skipped.
func (f *Frame) Select(columns ...string) *Frame {
	keep := make([]int, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		if i, ok := f.index[c]; ok {
			keep = append(keep, i)
			names = append(names, c)
		}
	}
	out := MustNew(names...)
	out.rows = make([][]float64, len(f.rows))
	for r, row := range f.rows {
		cells := make([]float64, len(keep))
		for j, i := range keep {
			cells[j] = row[i]
		}
		out.rows[r] = cells
	}
	return out
}

// FilterRows returns a frame with the rows the predicate accepts, in order.
func (f *Frame) FilterRows(pred func(Row) bool) *Frame {
	out := MustNew(f.columns...)
	for _, row := range f.rows {
		if pred(Row{frame: f, cells: row}) {
			out.rows = append(out.rows, append([]float64(nil), row...))
		}
	}
	return out
}

// Derive appends a column computed from each row.
func (f *Frame) Derive(name string, fn func(Row) float64) (*Frame, error) {
	if f.HasColumn(name) {
		return nil, fmt.Errorf("derive column %q: column already exists", name)
	}
	out, err := New(append(f.Columns(), name)...)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]float64, len(f.rows))
	for r, row := range f.rows {
		cells := make([]float64, len(row)+1)
		copy(cells, row)
		cells[len(row)] = fn(Row{frame: f, cells: row})
		out.rows[r] = cells
	}
	return out, nil
}

// PartitionBy splits the frame into one frame per distinct value of the named
// column. Partitions are returned in first-appearance order, keys aligned
// with frames. Rows whose key is NaN are dropped: an unreported value
// identifies no partition.
func (f *Frame) PartitionBy(column string) ([]float64, []*Frame, error) {
	i, ok := f.index[column]
	if !ok {
		return nil, nil, fmt.Errorf("partition by %q: no such column", column)
	}
	var keys []float64
	var parts []*Frame
	byKey := make(map[float64]*Frame)
	for _, row := range f.rows {
		k := row[i]
		if math.IsNaN(k) {
			continue
		}
		part, seen := byKey[k]
		if !seen {
			part = MustNew(f.columns...)
			byKey[k] = part
			keys = append(keys, k)
			parts = append(parts, part)
		}
		part.rows = append(part.rows, append([]float64(nil), row...))
	}
	return keys, parts, nil
}

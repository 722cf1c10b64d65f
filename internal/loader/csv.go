package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"

	"kornmo/internal/frame"
)

// CSVLoader reads a raw table from a CSV cache file. The first record is the
// header; every data cell must be numeric or empty, and empty cells load as
// NaN.
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a loader over the given file path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load implements Loader. A missing file is reported as ErrNotFound so the
// caller can fall back to fetching.
func (l *CSVLoader) Load(ctx context.Context) (*frame.Frame, error) {
	file, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", l.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header of %s: %w", l.path, err)
	}

	f, err := frame.New(header...)
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header of %s: %w", l.path, err)
	}

	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row of %s: %w", l.path, err)
		}
		cells, err := parseCells(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, line, err)
		}
		if err := f.AppendRow(cells...); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", l.path, line, err)
		}
	}
	return f, nil
}

func parseCells(record []string) ([]float64, error) {
	cells := make([]float64, len(record))
	for i, s := range record {
		if s == "" {
			cells[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %q is not numeric", i+1, s)
		}
		cells[i] = v
	}
	return cells, nil
}

package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xuri/excelize/v2"

	"kornmo/internal/frame"
)

// ExcelLoader reads a raw table from one worksheet of an xlsx workbook. Some
// grant tables are only published as workbooks, so a Dataset can be pointed
// at one directly instead of a CSV cache.
type ExcelLoader struct {
	path  string
	sheet string
}

// NewExcelLoader creates a loader over the given workbook and sheet. An empty
// sheet name selects the workbook's first sheet.
func NewExcelLoader(path, sheet string) *ExcelLoader {
	return &ExcelLoader{path: path, sheet: sheet}
}

// Load implements Loader. The first row is the header; fully blank rows are
// skipped and short rows are padded with NaN, the way the directorate's
// workbooks leave trailing cells empty. Rows wider than the header are an
// error, like a malformed record in the CSV path.
func (l *ExcelLoader) Load(ctx context.Context) (*frame.Frame, error) {
	wb, err := excelize.OpenFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to open workbook %s: %w", l.path, err)
	}
	defer wb.Close()

	sheet := l.sheet
	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, l.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q of %s has no header row", sheet, l.path)
	}

	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = strings.TrimSpace(c)
	}
	f, err := frame.New(header...)
	if err != nil {
		return nil, fmt.Errorf("invalid header in sheet %q of %s: %w", sheet, l.path, err)
	}

	for line, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) {
			return nil, fmt.Errorf("%s sheet %q row %d: row has %d cells, header has %d columns",
				l.path, sheet, line+2, len(row), len(header))
		}
		padded := make([]string, len(header))
		copy(padded, row)
		cells, err := parseCells(padded)
		if err != nil {
			return nil, fmt.Errorf("%s sheet %q row %d: %w", l.path, sheet, line+2, err)
		}
		if err := f.AppendRow(cells...); err != nil {
			return nil, fmt.Errorf("%s sheet %q row %d: %w", l.path, sheet, line+2, err)
		}
	}
	return f, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Package validation checks loaded tables for data-quality problems before
// they enter the pipeline. Findings are reported, never fatal: the raw files
// are known to contain oddities (duplicate municipality codes per farm-year
// among them) and the pipeline's aggregation rules absorb them.
package validation

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-playground/validator/v10"

	"kornmo/internal/frame"
	"kornmo/pkg/contracts/domain"
)

// Finding describes one data-quality problem in a loaded table.
type Finding struct {
	Row     int
	Message string
}

// FrameValidator validates raw tables after loading.
type FrameValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewFrameValidator creates a new frame validator
func NewFrameValidator(logger *slog.Logger) *FrameValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FrameValidator{
		logger:   logger,
		validate: validator.New(),
	}
}

// ValidateKeys checks that the table carries the (year, orgnr) key columns
// and that each row's key passes the domain validation rules. Rows with NaN
// keys are reported as missing.
func (v *FrameValidator) ValidateKeys(name string, f *frame.Frame) []Finding {
	var findings []Finding
	for _, col := range []string{domain.ColYear, domain.ColOrgnr} {
		if !f.HasColumn(col) {
			findings = append(findings, Finding{
				Row:     -1,
				Message: fmt.Sprintf("missing key column %q", col),
			})
		}
	}
	if len(findings) > 0 {
		v.log(name, findings)
		return findings
	}

	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		year := row.Value(domain.ColYear)
		orgnr := row.Value(domain.ColOrgnr)
		if math.IsNaN(year) || math.IsNaN(orgnr) {
			findings = append(findings, Finding{
				Row:     i,
				Message: "row has empty year or orgnr",
			})
			continue
		}
		key := domain.FarmYearKey{Year: int(year), Orgnr: int64(orgnr)}
		if err := v.validate.Struct(key); err != nil {
			findings = append(findings, Finding{
				Row:     i,
				Message: fmt.Sprintf("invalid farm-year key: %v", err),
			})
		}
	}

	v.log(name, findings)
	return findings
}

func (v *FrameValidator) log(name string, findings []Finding) {
	if len(findings) == 0 {
		return
	}
	v.logger.Warn("table has data-quality findings",
		slog.String("table", name),
		slog.Int("findings", len(findings)),
		slog.String("first", findings[0].Message))
}

package dataset

import (
	"regexp"

	"kornmo/internal/frame"
	"kornmo/pkg/contracts/domain"
)

// cropColumnRe matches every per-crop column: "<crop>_sum" or "<crop>_areal".
var cropColumnRe = regexp.MustCompile(`^.*_(sum|areal)$`)

// FilterCrops removes every crop column whose base name is not in crops.
// Columns that do not look like crop columns are always retained. A nil crops
// slice selects domain.DefaultCrops; an empty non-nil slice keeps no crop
// columns at all. Requested crops with no matching column are silently
// skipped.
func FilterCrops(f *frame.Frame, crops []string) *frame.Frame {
	if crops == nil {
		crops = domain.DefaultCrops
	}
	wanted := make(map[string]bool, len(crops)*2)
	for _, crop := range crops {
		wanted[domain.SumColumn(crop)] = true
		wanted[domain.ArealColumn(crop)] = true
	}

	columns := f.Columns()
	keep := columns[:0]
	for _, col := range columns {
		if cropColumnRe.MatchString(col) && !wanted[col] {
			continue
		}
		keep = append(keep, col)
	}
	return f.Select(keep...)
}

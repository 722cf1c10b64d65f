package dataset

import (
	"math"
	"strings"

	"kornmo/internal/frame"
	"kornmo/pkg/contracts/domain"
)

// FarmYears converts an aggregated deliveries frame into typed records, for
// consumers that prefer one struct per farm-year over a column view. Crop
// columns are folded into the Crops map by base name; columns absent from the
// frame leave their field zero-valued.
func FarmYears(f *frame.Frame) []domain.FarmYear {
	records := make([]domain.FarmYear, 0, f.Len())
	cropCols := cropColumns(f)

	for i := 0; i < f.Len(); i++ {
		row := f.Row(i)
		rec := domain.FarmYear{
			Year:            asInt(row.Value(domain.ColYear)),
			Orgnr:           int64(nanToZero(row.Value(domain.ColOrgnr))),
			Kommunenr:       asInt(row.Value(domain.ColKommunenr)),
			Gaardsnummer:    asInt(row.Value(domain.ColGaardsnummer)),
			Bruksnummer:     asInt(row.Value(domain.ColBruksnummer)),
			Festenummer:     asInt(row.Value(domain.ColFestenummer)),
			Fulldyrket:      nanToZero(row.Value(domain.ColFulldyrket)),
			Overflatedyrket: nanToZero(row.Value(domain.ColOverflatedyrket)),
			TilskuddDyr:     nanToZero(row.Value(domain.ColTilskuddDyr)),
			Crops:           make(map[string]domain.CropDelivery, len(cropCols)),
		}
		for crop, cols := range cropCols {
			delivery := rec.Crops[crop]
			if cols.sum != "" {
				delivery.Sum = nanToZero(row.Value(cols.sum))
			}
			if cols.areal != "" {
				delivery.Areal = nanToZero(row.Value(cols.areal))
			}
			rec.Crops[crop] = delivery
		}
		records = append(records, rec)
	}
	return records
}

type cropColumnPair struct {
	sum   string
	areal string
}

// cropColumns indexes the frame's crop columns by base name.
func cropColumns(f *frame.Frame) map[string]cropColumnPair {
	pairs := make(map[string]cropColumnPair)
	for _, col := range f.Columns() {
		if !cropColumnRe.MatchString(col) {
			continue
		}
		switch {
		case strings.HasSuffix(col, "_sum"):
			crop := strings.TrimSuffix(col, "_sum")
			pair := pairs[crop]
			pair.sum = col
			pairs[crop] = pair
		case strings.HasSuffix(col, "_areal"):
			crop := strings.TrimSuffix(col, "_areal")
			pair := pairs[crop]
			pair.areal = col
			pairs[crop] = pair
		}
	}
	return pairs
}

func asInt(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(v)
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

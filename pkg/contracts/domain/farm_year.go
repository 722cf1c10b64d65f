package domain

// FarmYearKey identifies one farm in one season. Every row of every table in
// the pipeline carries this pair, and the aggregated views guarantee it is
// unique per output row.
type FarmYearKey struct {
	Year  int   `json:"year" validate:"required,gte=1900,lte=2100"`
	Orgnr int64 `json:"orgnr" validate:"required,gt=0"`
}

// CropDelivery holds the aggregated delivery figures for a single crop:
// delivered quantity in kilos and reported cultivated area in decares. Legacy
// data has no area figures, in which case Areal is zero-valued.
type CropDelivery struct {
	Sum   float64 `json:"sum"`
	Areal float64 `json:"areal"`
}

// FarmYear is a typed view of one aggregated deliveries row. It mirrors the
// frame returned by Dataset.GetDeliveries for consumers that prefer records
// over columns.
type FarmYear struct {
	Year         int   `json:"year" validate:"required,gte=1900,lte=2100"`
	Orgnr        int64 `json:"orgnr" validate:"required,gt=0"`
	Kommunenr    int   `json:"kommunenr"`
	Gaardsnummer int   `json:"gaardsnummer"`
	Bruksnummer  int   `json:"bruksnummer"`
	Festenummer  int   `json:"festenummer"`

	// Cultivation-area fractions and the per-animal subsidy from the grant
	// table, averaged over the merged rows.
	Fulldyrket      float64 `json:"fulldyrket"`
	Overflatedyrket float64 `json:"overflatedyrket"`
	TilskuddDyr     float64 `json:"tilskudd_dyr"`

	// Crops maps crop base name to its aggregated delivery figures. Only the
	// crops kept by the caller's crop filter are present.
	Crops map[string]CropDelivery `json:"crops"`
}

// Key returns the farm-year identity of the record.
func (f FarmYear) Key() FarmYearKey {
	return FarmYearKey{Year: f.Year, Orgnr: f.Orgnr}
}

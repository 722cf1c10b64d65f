package domain

// Column names shared by the delivery and grant tables. These are the exact
// headers used by the raw cache files from Landbruksdirektoratet, so they are
// kept in Norwegian throughout the pipeline.
const (
	ColYear         = "year"
	ColOrgnr        = "orgnr"
	ColKomnr        = "komnr"
	ColKommunenr    = "kommunenr"
	ColGaardsnummer = "gaardsnummer"
	ColBruksnummer  = "bruksnummer"
	ColFestenummer  = "festenummer"
)

// Grant table columns. The modern grant schema carries cultivation-area
// fractions and the per-animal subsidy; the legacy schema instead carries two
// subsidy totals.
const (
	ColFulldyrket      = "fulldyrket"
	ColOverflatedyrket = "overflatedyrket"
	ColTilskuddDyr     = "tilskudd_dyr"
	ColArealTilskudd   = "areal_tilskudd"
	ColHusdyrTilskudd  = "husdyr_tilskudd"
)

// Crop base names. Wheat and rye were reclassified between schema versions:
// spring and winter wheat ("vårhvete", "høsthvete") collapse into "hvete",
// and rye plus triticale ("rug", "rughvete") collapse into "rug_og_rughvete".
const (
	CropBygg          = "bygg"
	CropErter         = "erter"
	CropHavre         = "havre"
	CropHvete         = "hvete"
	CropOljefro       = "oljefro"
	CropRug           = "rug"
	CropRughvete      = "rughvete"
	CropVaarhvete     = "vårhvete"
	CropHoesthvete    = "høsthvete"
	CropRugOgRughvete = "rug_og_rughvete"
)

// DefaultCrops is the crop subset returned by Dataset.GetDeliveries when the
// caller does not ask for a specific one.
var DefaultCrops = []string{CropHavre, CropHvete, CropBygg, CropRugOgRughvete}

// SumColumn returns the delivered-quantity column for a crop, e.g. "havre_sum".
func SumColumn(crop string) string {
	return crop + "_sum"
}

// ArealColumn returns the cultivated-area column for a crop, e.g. "havre_areal".
func ArealColumn(crop string) string {
	return crop + "_areal"
}

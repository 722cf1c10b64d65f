package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"kornmo/internal/config"
	"kornmo/internal/frame"
	"kornmo/internal/infrastructure"
	"kornmo/internal/loader"
	"kornmo/internal/validation"
	"kornmo/pkg/contracts/domain"
)

// Fetchers holds the external fetch collaborators, one per raw table. Each is
// used only when the table's cache file is absent; a nil fetcher makes a
// cache miss fatal.
type Fetchers struct {
	Deliveries   loader.Loader
	Grants       loader.Loader
	LegacyGrants loader.Loader
}

// DeliveryOptions controls GetDeliveries.
type DeliveryOptions struct {
	// Crops selects which crop columns survive in the output. Nil selects
	// domain.DefaultCrops; an empty non-nil slice drops every crop column.
	Crops []string
	// ExcludeWinterWheat keeps only rows with no reported winter-wheat
	// area, used to avoid double-counting wheat in certain analyses.
	ExcludeWinterWheat bool
}

// Dataset lazily loads the raw delivery and grant tables and exposes the
// aggregated farm-year views. Not safe for concurrent use.
type Dataset struct {
	logger    *slog.Logger
	validator *validation.FrameValidator

	deliveriesLoader   loader.Loader
	grantsLoader       loader.Loader
	legacyGrantsLoader loader.Loader

	deliveries   *frame.Frame
	grants       *frame.Frame
	legacyGrants *frame.Frame
}

// New creates a Dataset over the configured cache files with the given fetch
// collaborators as fallback.
func New(paths *config.Paths, logger *slog.Logger, fetchers Fetchers) *Dataset {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "dataset")
	return &Dataset{
		logger:    logger,
		validator: validation.NewFrameValidator(logger),
		deliveriesLoader: loader.FileWithFallback("deliveries",
			loader.NewCSVLoader(paths.DeliveriesCSV), fetchers.Deliveries, logger),
		grantsLoader: loader.FileWithFallback("grants",
			loader.NewCSVLoader(paths.GrantsCSV), fetchers.Grants, logger),
		legacyGrantsLoader: loader.FileWithFallback("legacy_grants",
			loader.NewCSVLoader(paths.LegacyGrantsCSV), fetchers.LegacyGrants, logger),
	}
}

// NewWithLoaders creates a Dataset over arbitrary table loaders. Used by
// consumers that already hold their tables somewhere other than the
// configured cache files, and by tests.
func NewWithLoaders(logger *slog.Logger, deliveries, grants, legacyGrants loader.Loader) *Dataset {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = infrastructure.WithComponent(logger, "dataset")
	return &Dataset{
		logger:             logger,
		validator:          validation.NewFrameValidator(logger),
		deliveriesLoader:   deliveries,
		grantsLoader:       grants,
		legacyGrantsLoader: legacyGrants,
	}
}

// GetDeliveries returns one row per (year, orgnr) pair that had at least one
// matching grant record. Crop categories are reclassified before
// aggregation: spring and winter wheat areas collapse into hvete_areal, and
// the rug and rughvete sums into rug_og_rughvete_sum.
//
// The merge with grants is an inner join: farms present in only one of the
// two tables are silently discarded.
func (d *Dataset) GetDeliveries(ctx context.Context, opts DeliveryOptions) (*frame.Frame, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if err := d.loadDeliveries(ctx); err != nil {
		return nil, err
	}
	// komnr duplicates kommunenr in the raw delivery file.
	deliveries, err := d.deliveries.DropColumns(domain.ColKomnr)
	if err != nil {
		return nil, fmt.Errorf("deliveries: %w", err)
	}

	if opts.ExcludeWinterWheat {
		arealCol := domain.ArealColumn(domain.CropHoesthvete)
		deliveries = deliveries.FilterRows(func(r frame.Row) bool {
			return r.Value(arealCol) == 0
		})
	}

	if err := d.loadGrants(ctx); err != nil {
		return nil, err
	}
	data, err := deliveries.InnerMerge(d.grants)
	if err != nil {
		return nil, fmt.Errorf("merge deliveries with grants: %w", err)
	}

	// Combine 'vårhvete' and 'høsthvete', and 'rug' and 'rughvete',
	// then remove the old categories.
	data, err = data.Derive(domain.ArealColumn(domain.CropHvete), func(r frame.Row) float64 {
		return r.Value(domain.ArealColumn(domain.CropVaarhvete)) + r.Value(domain.ArealColumn(domain.CropHoesthvete))
	})
	if err != nil {
		return nil, err
	}
	data, err = data.Derive(domain.SumColumn(domain.CropRugOgRughvete), func(r frame.Row) float64 {
		return r.Value(domain.SumColumn(domain.CropRug)) + r.Value(domain.SumColumn(domain.CropRughvete))
	})
	if err != nil {
		return nil, err
	}
	data, err = data.DropColumns(
		domain.ArealColumn(domain.CropVaarhvete),
		domain.ArealColumn(domain.CropHoesthvete),
		domain.SumColumn(domain.CropRug),
		domain.SumColumn(domain.CropRughvete),
	)
	if err != nil {
		return nil, err
	}

	// Aggregate deliveries per farm per year.
	data, err = data.GroupBy(
		[]string{domain.ColYear, domain.ColOrgnr},
		deliveryAggRules(),
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate deliveries: %w", err)
	}

	d.logger.InfoContext(ctx, "aggregated deliveries",
		slog.Int("farm_years", data.Len()))
	return FilterCrops(data, opts.Crops), nil
}

// deliveryAggRules is the per-column aggregation policy for the modern
// schema. Identifying columns are constant per farm-year and take the first
// value; delivered quantities are summed; areas and grant fractions are
// averaged across the merged rows.
func deliveryAggRules() []frame.AggRule {
	rules := frame.Rules(frame.AggFirst,
		domain.ColKommunenr,
		domain.ColGaardsnummer,
		domain.ColBruksnummer,
		domain.ColFestenummer,
	)
	rules = append(rules, frame.Rules(frame.AggSum,
		domain.SumColumn(domain.CropBygg),
		domain.SumColumn(domain.CropErter),
		domain.SumColumn(domain.CropHavre),
		domain.SumColumn(domain.CropHvete),
		domain.SumColumn(domain.CropOljefro),
		domain.SumColumn(domain.CropRugOgRughvete),
	)...)
	rules = append(rules, frame.Rules(frame.AggMean,
		domain.ColFulldyrket,
		domain.ColOverflatedyrket,
		domain.ColTilskuddDyr,
		domain.ArealColumn(domain.CropBygg),
		domain.ArealColumn(domain.CropHavre),
		domain.ArealColumn(domain.CropRugOgRughvete),
		domain.ArealColumn(domain.CropHvete),
	)...)
	return rules
}

// GetLegacyData returns the aggregated farm-year view over the legacy grant
// schema. The legacy files carry no per-crop area columns, so only the rug
// and rughvete sums are combined. komnr is aggregated by mean: the legacy
// rows carry duplicate and occasionally differing municipality codes per
// farm-year, and the mean is the documented tie-break for that data-quality
// wrinkle, not a hard invariant.
func (d *Dataset) GetLegacyData(ctx context.Context) (*frame.Frame, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	if err := d.loadDeliveries(ctx); err != nil {
		return nil, err
	}
	deliveries, err := d.deliveries.DropColumns(domain.ColKomnr)
	if err != nil {
		return nil, fmt.Errorf("deliveries: %w", err)
	}

	if err := d.loadLegacyGrants(ctx); err != nil {
		return nil, err
	}
	data, err := deliveries.InnerMerge(d.legacyGrants)
	if err != nil {
		return nil, fmt.Errorf("merge deliveries with legacy grants: %w", err)
	}

	data, err = data.Derive(domain.SumColumn(domain.CropRugOgRughvete), func(r frame.Row) float64 {
		return r.Value(domain.SumColumn(domain.CropRug)) + r.Value(domain.SumColumn(domain.CropRughvete))
	})
	if err != nil {
		return nil, err
	}
	data, err = data.DropColumns(
		domain.SumColumn(domain.CropRug),
		domain.SumColumn(domain.CropRughvete),
	)
	if err != nil {
		return nil, err
	}

	// Aggregate deliveries per farm per year.
	rules := []frame.AggRule{{Column: domain.ColKomnr, Agg: frame.AggMean}}
	rules = append(rules, frame.Rules(frame.AggSum,
		domain.SumColumn(domain.CropBygg),
		domain.SumColumn(domain.CropErter),
		domain.SumColumn(domain.CropHavre),
		domain.SumColumn(domain.CropHvete),
		domain.SumColumn(domain.CropRugOgRughvete),
		domain.SumColumn(domain.CropOljefro),
		domain.ColArealTilskudd,
		domain.ColHusdyrTilskudd,
	)...)
	data, err = data.GroupBy([]string{domain.ColOrgnr, domain.ColYear}, rules)
	if err != nil {
		return nil, fmt.Errorf("aggregate legacy deliveries: %w", err)
	}

	d.logger.InfoContext(ctx, "aggregated legacy deliveries",
		slog.Int("farm_years", data.Len()))
	return data, nil
}

// GetHistoricalDeliveriesByYear partitions the legacy view into one table per
// year, keeping only the farm-year key and the four grain sums. Iteration
// order over the returned map is not defined; callers that need sorted years
// must sort the keys themselves.
func (d *Dataset) GetHistoricalDeliveriesByYear(ctx context.Context) (map[int]*frame.Frame, error) {
	legacy, err := d.GetLegacyData(ctx)
	if err != nil {
		return nil, err
	}
	legacy, err = legacy.DropColumns(
		domain.ColKomnr,
		domain.ColArealTilskudd,
		domain.ColHusdyrTilskudd,
	)
	if err != nil {
		return nil, err
	}
	legacy = legacy.Select(
		domain.ColYear,
		domain.ColOrgnr,
		domain.SumColumn(domain.CropBygg),
		domain.SumColumn(domain.CropHvete),
		domain.SumColumn(domain.CropHavre),
		domain.SumColumn(domain.CropRugOgRughvete),
	)

	years, parts, err := legacy.PartitionBy(domain.ColYear)
	if err != nil {
		return nil, err
	}
	byYear := make(map[int]*frame.Frame, len(years))
	for i, y := range years {
		byYear[int(y)] = parts[i]
	}
	return byYear, nil
}

func (d *Dataset) loadDeliveries(ctx context.Context) error {
	if d.deliveries != nil {
		return nil
	}
	d.logger.InfoContext(ctx, "loading deliveries")
	f, err := d.deliveriesLoader.Load(ctx)
	if err != nil {
		infrastructure.WithError(d.logger, err).ErrorContext(ctx, "deliveries load failed")
		return fmt.Errorf("load deliveries: %w", err)
	}
	d.validator.ValidateKeys("deliveries", f)
	d.deliveries = f
	d.logger.InfoContext(ctx, "deliveries loaded", slog.Int("rows", f.Len()))
	return nil
}

func (d *Dataset) loadGrants(ctx context.Context) error {
	if d.grants != nil {
		return nil
	}
	f, err := d.grantsLoader.Load(ctx)
	if err != nil {
		infrastructure.WithError(d.logger, err).ErrorContext(ctx, "grants load failed")
		return fmt.Errorf("load grants: %w", err)
	}
	d.validator.ValidateKeys("grants", f)
	d.grants = f
	return nil
}

func (d *Dataset) loadLegacyGrants(ctx context.Context) error {
	if d.legacyGrants != nil {
		return nil
	}
	d.logger.InfoContext(ctx, "loading historical grants data")
	f, err := d.legacyGrantsLoader.Load(ctx)
	if err != nil {
		infrastructure.WithError(d.logger, err).ErrorContext(ctx, "legacy grants load failed")
		return fmt.Errorf("load legacy grants: %w", err)
	}
	d.validator.ValidateKeys("legacy_grants", f)
	d.legacyGrants = f

	if minYear, maxYear, ok := yearRange(f); ok {
		d.logger.InfoContext(ctx, "historical data loaded",
			slog.Int("from_year", minYear),
			slog.Int("to_year", maxYear))
	}
	return nil
}

// yearRange reports the min and max year present in a table.
func yearRange(f *frame.Frame) (int, int, bool) {
	years, ok := f.Column(domain.ColYear)
	if !ok || len(years) == 0 {
		return 0, 0, false
	}
	minYear, maxYear := math.Inf(1), math.Inf(-1)
	for _, y := range years {
		if math.IsNaN(y) {
			continue
		}
		minYear = math.Min(minYear, y)
		maxYear = math.Max(maxYear, y)
	}
	if math.IsInf(minYear, 1) {
		return 0, 0, false
	}
	return int(minYear), int(maxYear), true
}

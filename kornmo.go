// Package kornmo loads Norwegian grain-delivery and farm-subsidy records and
// aggregates them into per-farm per-year tables.
//
// The package is a facade over the internal pipeline: consumers build a
// Dataset, either from the process configuration with Open or over explicit
// table loaders with NewDataset, and read the aggregated views from it.
package kornmo

import (
	"context"
	"fmt"
	"log/slog"

	"kornmo/internal/config"
	"kornmo/internal/dataset"
	"kornmo/internal/frame"
	"kornmo/internal/infrastructure"
	"kornmo/internal/loader"
	"kornmo/pkg/contracts/domain"
)

// Re-exported pipeline types. Frame is the in-memory table every view
// returns; Dataset is the entry point to the aggregated views.
type (
	Frame           = frame.Frame
	Row             = frame.Row
	Dataset         = dataset.Dataset
	DeliveryOptions = dataset.DeliveryOptions
	Fetchers        = dataset.Fetchers
	Loader          = loader.Loader
	LoadFunc        = loader.LoadFunc
	CSVLoader       = loader.CSVLoader
	ExcelLoader     = loader.ExcelLoader
)

// ErrNotFound reports that a loader's source does not exist. A Dataset built
// by Open falls through to the table's fetch collaborator on this error.
var ErrNotFound = loader.ErrNotFound

// Open builds a Dataset from the process configuration: environment
// variables with the KORNMO prefix, merged over an optional kornmo.yaml. It
// initializes the module's logger, so every pipeline log line carries the
// run ID of the invocation it belongs to. Tables whose cache file is absent
// are fetched through the given collaborators on first use.
func Open(fetchers Fetchers) (*Dataset, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	paths := cfg.ResolvePaths()
	paths.LogPathResolution()
	for table, path := range map[string]string{
		"deliveries":    paths.DeliveriesCSV,
		"grants":        paths.GrantsCSV,
		"legacy_grants": paths.LegacyGrantsCSV,
	} {
		if !config.FileExists(path) {
			logger.Warn("cache file not present, table will be fetched on first use",
				slog.String("table", table),
				slog.String("path", path))
		}
	}

	return dataset.New(paths, logger, fetchers), nil
}

// NewFrame creates an empty table with the given column order. Fetch
// collaborators use it to hand their rows to the pipeline.
func NewFrame(columns ...string) (*Frame, error) {
	return frame.New(columns...)
}

// NewDataset builds a Dataset over explicit table loaders, bypassing the
// configuration layer. A nil logger selects the module logger.
func NewDataset(logger *slog.Logger, deliveries, grants, legacyGrants Loader) *Dataset {
	return dataset.NewWithLoaders(logger, deliveries, grants, legacyGrants)
}

// NewCSVLoader creates a loader over a CSV cache file.
func NewCSVLoader(path string) *CSVLoader {
	return loader.NewCSVLoader(path)
}

// NewExcelLoader creates a loader over one worksheet of an xlsx workbook. An
// empty sheet name selects the workbook's first sheet.
func NewExcelLoader(path, sheet string) *ExcelLoader {
	return loader.NewExcelLoader(path, sheet)
}

// FilterCrops returns a view of an aggregated table keeping only the key and
// grant columns plus the listed crops' sum and area columns. A nil slice
// keeps the default grain crops.
func FilterCrops(f *Frame, crops []string) *Frame {
	return dataset.FilterCrops(f, crops)
}

// FarmYears converts an aggregated table into typed per-farm-year records.
func FarmYears(f *Frame) []domain.FarmYear {
	return dataset.FarmYears(f)
}

// WithRunID stamps a run ID onto the context. Dataset operations generate
// one when the context carries none.
func WithRunID(ctx context.Context, runID string) context.Context {
	return infrastructure.WithRunID(ctx, runID)
}

// RunID returns the run ID carried by the context, or "".
func RunID(ctx context.Context) string {
	return infrastructure.GetRunID(ctx)
}

// Logger returns the module logger, annotated with the context's run ID.
func Logger(ctx context.Context) *slog.Logger {
	return infrastructure.LoggerWithContext(ctx)
}

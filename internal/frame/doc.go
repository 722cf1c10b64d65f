// Package frame implements the in-memory tables the kornmo pipeline is built
// on. A Frame is a small column-oriented table of float64 cells; every column
// in the raw delivery and grant files is numeric (years, organization
// numbers, municipality and cadastral numbers, kilo sums, decare areas,
// subsidy amounts), so a single cell type keeps the engine simple.
//
// The package provides the three shaping operations the pipeline needs:
//
// 1. InnerMerge: inner join of two frames on all shared column names
// 2. GroupBy: per-column aggregation (first / sum / mean) over key columns
// 3. Column algebra: Select, DropColumns, Derive, FilterRows, PartitionBy
//
// Missing cells are NaN. Sum and mean aggregation skip NaN cells, matching
// how the raw files treat unreported figures.
//
// All operations return new frames; a Frame is never mutated after
// construction, so derived views can be handed to callers without copying.
// Frames are not safe for concurrent mutation during construction.
package frame

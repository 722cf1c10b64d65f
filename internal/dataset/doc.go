// Package dataset assembles the per-farm-per-year delivery views.
//
// A Dataset lazily loads three raw tables (deliveries, grants, legacy grants)
// and derives three views from them:
//
// 1. GetDeliveries: deliveries merged with modern grants, reclassified crop
// categories, aggregated to one row per farm-year, filtered to a crop subset
// 2. GetLegacyData: the same shape over the legacy grant schema
// 3. GetHistoricalDeliveriesByYear: the legacy view partitioned per year
//
// Each raw table is loaded at most once per Dataset and kept in memory for
// the lifetime of the instance. Loading uses a check-then-act pattern with no
// locking, so a Dataset is not safe for concurrent use without external
// synchronization.
package dataset

// Package config provides centralized configuration management for the
// kornmo pipeline. It handles loading configuration from multiple sources,
// validation, and resolves the locations of the three raw cache files.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file (kornmo.yaml, or KORNMO_CONFIG_FILE)
//  3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern KORNMO_* for namespacing:
//
//	KORNMO_LOGGING_LEVEL=debug
//	KORNMO_PATHS_DATA_DIR=/srv/kornmo/data
//	KORNMO_PATHS_RAW_DIR=landbruksdir/raw
//	KORNMO_PATHS_DELIVERIES_FILE=farmer_deliveries.csv
//
// # Path Management
//
// The Paths type is the single source of truth for file locations; components
// never build cache-file paths themselves:
//
//	paths := cfg.ResolvePaths()
//	ds := dataset.New(paths, logger, fetchers)
//
// # Usage
//
// Load configuration before building the first Dataset:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config

package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved locations of every file the pipeline reads.
// This is the single source of truth for the raw cache-file paths.
type Paths struct {
	DataDir string
	RawDir  string

	// Raw cache files
	DeliveriesCSV   string
	GrantsCSV       string
	LegacyGrantsCSV string
}

// ResolvePaths resolves the configured path fragments into concrete file
// locations. RawDir is taken relative to DataDir, and each cache file
// relative to RawDir, unless the fragment is absolute.
func (c *Config) ResolvePaths() *Paths {
	rawDir := c.Paths.RawDir
	if !filepath.IsAbs(rawDir) {
		rawDir = filepath.Join(c.Paths.DataDir, rawDir)
	}
	return &Paths{
		DataDir:         c.Paths.DataDir,
		RawDir:          rawDir,
		DeliveriesCSV:   resolveFile(rawDir, c.Paths.DeliveriesFile),
		GrantsCSV:       resolveFile(rawDir, c.Paths.GrantsFile),
		LegacyGrantsCSV: resolveFile(rawDir, c.Paths.LegacyGrantsFile),
	}
}

func resolveFile(dir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	logger.Debug("Resolved data paths",
		slog.String("data_dir", p.DataDir),
		slog.String("raw_dir", p.RawDir),
		slog.String("deliveries_csv", p.DeliveriesCSV),
		slog.String("grants_csv", p.GrantsCSV),
		slog.String("legacy_grants_csv", p.LegacyGrantsCSV))
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

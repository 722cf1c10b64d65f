package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kornmo/internal/config"
	"kornmo/internal/frame"
	"kornmo/internal/loader"
)

// writeDeliveriesCSV renders the full delivery schema for a couple of farms.
func writeDeliveriesCSV(t *testing.T, dir string) {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(deliveryColumns, ","))
	b.WriteByte('\n')
	for _, row := range []map[string]float64{
		{"year": 2020, "orgnr": 1, "kommunenr": 301, "bygg_sum": 10},
		{"year": 2020, "orgnr": 1, "kommunenr": 301, "bygg_sum": 20},
	} {
		cells := make([]string, len(deliveryColumns))
		for i, col := range deliveryColumns {
			cells[i] = strconv.FormatFloat(row[col], 'g', -1, 64)
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "farmer_deliveries.csv"), []byte(b.String()), 0644))
}

func TestDatasetLoadsCacheFilesAndFallsBackToFetchers(t *testing.T) {
	dataDir := t.TempDir()
	rawDir := filepath.Join(dataDir, "landbruksdir", "raw")
	require.NoError(t, os.MkdirAll(rawDir, 0755))

	// Deliveries come from the cache file; grants have no cache file and
	// must come from the fetch collaborator.
	writeDeliveriesCSV(t, rawDir)

	cfg := config.Config{
		Paths: config.PathsConfig{
			DataDir:          dataDir,
			RawDir:           "landbruksdir/raw",
			DeliveriesFile:   "farmer_deliveries.csv",
			GrantsFile:       "farmer_grants.csv",
			LegacyGrantsFile: "legacy_grants.csv",
		},
	}

	grantsFetched := false
	ds := New(cfg.ResolvePaths(), nil, Fetchers{
		Grants: loader.LoadFunc(func(context.Context) (*frame.Frame, error) {
			grantsFetched = true
			return buildFrame(t, grantColumns, []map[string]float64{
				{"year": 2020, "orgnr": 1, "fulldyrket": 0.5},
			}), nil
		}),
	})

	got, err := ds.GetDeliveries(context.Background(), DeliveryOptions{})
	require.NoError(t, err)

	assert.True(t, grantsFetched, "missing cache file falls back to the fetcher")
	require.Equal(t, 1, got.Len())
	assert.Equal(t, 30.0, got.Value(0, "bygg_sum"))
	assert.InDelta(t, 0.5, got.Value(0, "fulldyrket"), 1e-9)
}

func TestDatasetMissingCacheWithoutFetcherIsFatal(t *testing.T) {
	cfg := config.Config{
		Paths: config.PathsConfig{
			DataDir:          t.TempDir(),
			RawDir:           "landbruksdir/raw",
			DeliveriesFile:   "farmer_deliveries.csv",
			GrantsFile:       "farmer_grants.csv",
			LegacyGrantsFile: "legacy_grants.csv",
		},
	}

	ds := New(cfg.ResolvePaths(), nil, Fetchers{})

	_, err := ds.GetDeliveries(context.Background(), DeliveryOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrNotFound)
}

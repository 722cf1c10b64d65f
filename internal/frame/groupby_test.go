package frame

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBy(t *testing.T) {
	f := MustNew("year", "orgnr", "kommunenr", "bygg_sum", "fulldyrket")
	require.NoError(t, f.AppendRow(2020, 1, 301, 10, 0.4))
	require.NoError(t, f.AppendRow(2020, 1, 301, 20, 0.6))
	require.NoError(t, f.AppendRow(2020, 2, 502, 5, 1.0))

	got, err := f.GroupBy([]string{"year", "orgnr"}, []AggRule{
		{Column: "kommunenr", Agg: AggFirst},
		{Column: "bygg_sum", Agg: AggSum},
		{Column: "fulldyrket", Agg: AggMean},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"year", "orgnr", "kommunenr", "bygg_sum", "fulldyrket"}, got.Columns())
	require.Equal(t, 2, got.Len())

	assert.Equal(t, 301.0, got.Value(0, "kommunenr"))
	assert.Equal(t, 30.0, got.Value(0, "bygg_sum"))
	assert.InDelta(t, 0.5, got.Value(0, "fulldyrket"), 1e-9)

	assert.Equal(t, 5.0, got.Value(1, "bygg_sum"))
	assert.Equal(t, 1.0, got.Value(1, "fulldyrket"))
}

func TestGroupByDropsUnruledColumns(t *testing.T) {
	f := MustNew("year", "orgnr", "noise")
	require.NoError(t, f.AppendRow(2020, 1, 99))

	got, err := f.GroupBy([]string{"year", "orgnr"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "orgnr"}, got.Columns())
}

func TestGroupByNaNHandling(t *testing.T) {
	nan := math.NaN()
	f := MustNew("orgnr", "bygg_sum", "fulldyrket", "tilskudd_dyr")
	require.NoError(t, f.AppendRow(1, nan, nan, nan))
	require.NoError(t, f.AppendRow(1, 10, 0.5, nan))

	got, err := f.GroupBy([]string{"orgnr"}, []AggRule{
		{Column: "bygg_sum", Agg: AggSum},
		{Column: "fulldyrket", Agg: AggMean},
		{Column: "tilskudd_dyr", Agg: AggMean},
	})
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	assert.Equal(t, 10.0, got.Value(0, "bygg_sum"), "sum skips empty cells")
	assert.Equal(t, 0.5, got.Value(0, "fulldyrket"), "mean skips empty cells")
	assert.True(t, math.IsNaN(got.Value(0, "tilskudd_dyr")), "all-empty group has no mean")
}

func TestGroupByFirstAppearanceOrder(t *testing.T) {
	f := MustNew("year", "orgnr", "bygg_sum")
	require.NoError(t, f.AppendRow(2021, 5, 1))
	require.NoError(t, f.AppendRow(2019, 3, 2))
	require.NoError(t, f.AppendRow(2021, 5, 3))

	got, err := f.GroupBy([]string{"year", "orgnr"}, []AggRule{
		{Column: "bygg_sum", Agg: AggSum},
	})
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, 2021.0, got.Value(0, "year"))
	assert.Equal(t, 2019.0, got.Value(1, "year"))
	assert.Equal(t, 4.0, got.Value(0, "bygg_sum"))
}

func TestGroupByUnknownColumns(t *testing.T) {
	f := MustNew("year")

	_, err := f.GroupBy([]string{"orgnr"}, nil)
	assert.Error(t, err)

	_, err = f.GroupBy([]string{"year"}, []AggRule{{Column: "missing", Agg: AggSum}})
	assert.Error(t, err)
}

func TestAggregationString(t *testing.T) {
	assert.Equal(t, "first", AggFirst.String())
	assert.Equal(t, "sum", AggSum.String())
	assert.Equal(t, "mean", AggMean.String())
}

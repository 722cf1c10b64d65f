package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kornmo/internal/frame"
)

func TestValidateKeysCleanTable(t *testing.T) {
	f := frame.MustNew("year", "orgnr", "bygg_sum")
	require.NoError(t, f.AppendRow(2020, 976543210, 10))
	require.NoError(t, f.AppendRow(2021, 976543210, 20))

	findings := NewFrameValidator(nil).ValidateKeys("deliveries", f)
	assert.Empty(t, findings)
}

func TestValidateKeysMissingColumn(t *testing.T) {
	f := frame.MustNew("year", "bygg_sum")

	findings := NewFrameValidator(nil).ValidateKeys("deliveries", f)
	require.Len(t, findings, 1)
	assert.Equal(t, -1, findings[0].Row)
	assert.Contains(t, findings[0].Message, "orgnr")
}

func TestValidateKeysBadRows(t *testing.T) {
	nan := math.NaN()
	f := frame.MustNew("year", "orgnr")
	require.NoError(t, f.AppendRow(2020, 976543210)) // fine
	require.NoError(t, f.AppendRow(nan, 1))          // empty year
	require.NoError(t, f.AppendRow(1850, 1))         // year out of range
	require.NoError(t, f.AppendRow(2020, 0))         // missing orgnr

	findings := NewFrameValidator(nil).ValidateKeys("grants", f)
	require.Len(t, findings, 3)
	assert.Equal(t, 1, findings[0].Row)
	assert.Equal(t, 2, findings[1].Row)
	assert.Equal(t, 3, findings[2].Row)
}

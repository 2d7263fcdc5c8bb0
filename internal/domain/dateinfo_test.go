package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateInfo(t *testing.T) {
	info, err := ParseDateInfo("/data/inbox/202409181200.KNHC")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 9, 18, 12, 0, 0, 0, time.UTC), info.Cycle)
	assert.Equal(t, "24", info.YearShort())
	assert.Equal(t, "09", info.Month())
	assert.Equal(t, "18", info.Day())
	assert.Equal(t, "240918.", info.YYMMDD())
	assert.Equal(t, "1200", info.HHMM())
}

func TestParseDateInfo_NoStationSuffix(t *testing.T) {
	info, err := ParseDateInfo("202501020304")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC), info.Cycle)
}

func TestParseDateInfo_Invalid(t *testing.T) {
	for _, path := range []string{"drop.KNHC", "2024091812.KNHC", "20240918120000.KNHC", "202413181200.KNHC"} {
		_, err := ParseDateInfo(path)
		assert.Error(t, err, "path %q", path)
	}
}

package advect

import (
	"testing"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateTimes(t *testing.T) {
	date, err := domain.ParseDateInfo("/data/inbox/202309041512.msg")
	require.NoError(t, err)

	p := driftProfile()
	require.NoError(t, Drift(p, driftLocations(), 90))
	require.NoError(t, UpdateTimes(p, date))

	t.Run("offsets align with the position grid", func(t *testing.T) {
		require.Len(t, p.OffsetSeconds, len(p.Lat))
		assert.Zero(t, p.OffsetSeconds[0])
		for i, off := range p.OffsetSeconds[1:] {
			assert.Greater(t, off, 0.0, "segment %d", i)
		}
	})

	t.Run("timestamps align with the position grid", func(t *testing.T) {
		require.Len(t, p.YYMMDD, len(p.Lat))
		require.Len(t, p.HHMM, len(p.Lat))
	})

	t.Run("cycle time anchors the sequence", func(t *testing.T) {
		// Chop reverses the base-prepended sequence and drops its first
		// entry, so the cycle timestamp lands at the end.
		last := len(p.YYMMDD) - 1
		assert.Equal(t, "230904.", p.YYMMDD[last])
		assert.Equal(t, "1512", p.HHMM[last])
	})

	t.Run("formats", func(t *testing.T) {
		for _, d := range p.YYMMDD {
			assert.Regexp(t, `^\d{6}\.$`, d)
		}
		for _, tm := range p.HHMM {
			assert.Regexp(t, `^\d{4}$`, tm)
		}
	})
}

func TestUpdateTimes_RequiresDrift(t *testing.T) {
	date, err := domain.ParseDateInfo("/data/inbox/202309041512.msg")
	require.NoError(t, err)

	p := driftProfile()
	assert.Error(t, UpdateTimes(p, date))
}

func TestUpdateTimes_ZeroVelocity(t *testing.T) {
	date, err := domain.ParseDateInfo("/data/inbox/202309041512.msg")
	require.NoError(t, err)

	p := driftProfile()
	require.NoError(t, Drift(p, driftLocations(), 90))
	p.Uwnd[1] = 0
	p.Vwnd[1] = 0

	err = UpdateTimes(p, date)
	assert.ErrorIs(t, err, domain.ErrZeroVelocity)
}

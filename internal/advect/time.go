package advect

import (
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
	"github.com/couchcryptid/tempdrop-etl/internal/sonde"
)

// UpdateTimes reconstructs per-level timestamps from the corrected positions.
// Each consecutive position pair contributes an elapsed-seconds offset equal
// to the great-circle distance divided by the wind-speed proxy at the earlier
// level; the first offset is zero. The cumulative offsets are rendered
// against the cycle timestamp as HSA date ("%y%m%d.") and time ("%H%M")
// strings, base-dated and chop-aligned to the position grid.
//
// Requires Drift to have populated the corrected positions.
func UpdateTimes(p *domain.Profile, date domain.DateInfo) error {
	if len(p.Lat) == 0 {
		return fmt.Errorf("time reconstruction requires drift-corrected positions")
	}

	offsets := make([]float64, 1, len(p.Lat))
	offsets[0] = 0
	for i := 1; i < len(p.Lat); i++ {
		a := domain.Point{Lat: p.Lat[i-1], Lon: p.Lon[i-1]}
		b := domain.Point{Lat: p.Lat[i], Lon: p.Lon[i]}

		// Velocity proxy at the earlier level; the position grid leads the
		// wind grid by the release entry.
		j := i - 1
		if j >= len(p.Uwnd) {
			j = len(p.Uwnd) - 1
		}
		velo := math.Hypot(p.Uwnd[j], p.Vwnd[j])
		if velo == 0 || math.IsNaN(velo) {
			return fmt.Errorf("levels %d-%d: %w", i-1, i, domain.ErrZeroVelocity)
		}
		offsets = append(offsets, Haversine(a, b)/velo)
	}
	p.OffsetSeconds = offsets

	// Cumulative offsets: entry i is the elapsed time before reaching
	// position i.
	cumulative := make([]float64, len(offsets))
	var sum float64
	for i, off := range offsets {
		cumulative[i] = sum
		sum += off
	}

	yymmdd := make([]string, 0, len(cumulative)+1)
	hhmm := make([]string, 0, len(cumulative)+1)
	yymmdd = append(yymmdd, date.YYMMDD())
	hhmm = append(hhmm, date.HHMM())
	for _, dt := range cumulative {
		at := date.Cycle.Add(time.Duration(dt * float64(time.Second)))
		yymmdd = append(yymmdd, at.Format("060102")+".")
		hhmm = append(hhmm, at.Format("1504"))
	}

	p.YYMMDD = sonde.Chop(yymmdd)
	p.HHMM = sonde.Chop(hhmm)
	return nil
}

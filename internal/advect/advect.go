package advect

import (
	"fmt"
	"math"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
)

// Drift computes the advected position for every profile level. It derives a
// heading and travel distance per level from the interpolated winds and fall
// rate, integrates a trajectory forward from the release fix, and normalizes
// the result onto the release-splash span. Requires both REL and SPG fixes.
//
// The heading convention is offsetDeg + atan2(u, v) in degrees; the
// historical HSA offset is 90.
func Drift(p *domain.Profile, locs domain.Locations, offsetDeg float64) error {
	if locs.Rel == nil || locs.Spg == nil {
		return domain.ErrMissingEndpoints
	}

	n := p.Levels()
	p.Heading = make([]float64, n)
	p.Dist = make([]float64, n)
	for i := 0; i < n; i++ {
		p.Heading[i] = offsetDeg + degrees(math.Atan2(p.Uwnd[i], p.Vwnd[i]))
		p.Dist[i] = math.Hypot(p.Uwnd[i], p.Vwnd[i]) * p.Fallrate[i]
	}

	xlat, xlon := integrate(*locs.Rel, p.Dist, p.Heading)

	lat, err := normalize(xlat, locs.Rel.Lat, locs.Spg.Lat)
	if err != nil {
		return fmt.Errorf("normalize latitude: %w", err)
	}
	lon, err := normalize(xlon, locs.Rel.Lon, locs.Spg.Lon)
	if err != nil {
		return fmt.Errorf("normalize longitude: %w", err)
	}

	p.Lat = lat
	p.Lon = lon
	return nil
}

// integrate folds a bearing-and-distance displacement over the levels in
// order, starting at the release point. Level i's position depends on level
// i-1's; the recurrence is inherently sequential.
func integrate(rel domain.Point, dist, heading []float64) (xlat, xlon []float64) {
	xlat = make([]float64, 0, len(dist)+1)
	xlon = make([]float64, 0, len(dist)+1)
	xlat = append(xlat, rel.Lat)
	xlon = append(xlon, rel.Lon)

	pos := rel
	for i := range dist {
		pos = BearingGeoloc(pos, dist[i], heading[i])
		xlat = append(xlat, pos.Lat)
		xlon = append(xlon, pos.Lon)
	}
	return xlat, xlon
}

// normalize linearly rescales vals so its min/max span coincides with the
// span between the two endpoint coordinates, correcting systematic
// integration drift while preserving the relative shape of the trajectory.
// A degenerate span (all positions identical) is a data-quality error, not a
// NaN to propagate.
func normalize(vals []float64, endA, endB float64) ([]float64, error) {
	lo := math.Min(endA, endB)
	hi := math.Max(endA, endB)

	vmin, vmax := vals[0], vals[0]
	for _, v := range vals[1:] {
		vmin = math.Min(vmin, v)
		vmax = math.Max(vmax, v)
	}
	if vmax == vmin {
		return nil, domain.ErrDegenerateSpan
	}

	out := make([]float64, len(vals))
	scale := (hi - lo) / (vmax - vmin)
	for i, v := range vals {
		out[i] = lo + (v-vmin)*scale
	}
	return out, nil
}

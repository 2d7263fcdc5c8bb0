// Package advect corrects dropsonde profile positions and timestamps for the
// horizontal drift the sonde undergoes while falling through the storm's wind
// field. Positions are integrated level by level from the release point and
// normalized against the known release/splash endpoints; timestamps are
// reconstructed from the implied horizontal velocity.
package advect

import (
	"math"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
)

// earthRadius is the mean Earth radius in meters.
const earthRadius = 6371000.0

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }
func degrees(rad float64) float64 { return rad * 180.0 / math.Pi }

// BearingGeoloc projects a point along a great circle by dist meters on the
// given heading (degrees clockwise from north).
func BearingGeoloc(loc domain.Point, dist, heading float64) domain.Point {
	lat1 := radians(loc.Lat)
	lon1 := radians(loc.Lon)
	brng := radians(heading)
	delta := dist / earthRadius

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(
		math.Sin(brng)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Point{Lat: degrees(lat2), Lon: degrees(lon2)}
}

// Haversine returns the great-circle distance between two points in meters.
func Haversine(a, b domain.Point) float64 {
	dlat := radians(b.Lat - a.Lat)
	dlon := radians(b.Lon - a.Lon)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dlon/2)*math.Sin(dlon/2)

	return 2 * earthRadius * math.Asin(math.Sqrt(h))
}

package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Marker names scraped from a TEMPDROP message, in scan order.
const (
	MarkerRel = "rel"
	MarkerSpg = "spg"
	MarkerSpl = "spl"
)

var markerNames = []string{MarkerRel, MarkerSpg, MarkerSpl}

// nonDigit strips the hemisphere letters out of a location token so the two
// numeric groups can be split, e.g. "2134N07212W" -> "2134 07212".
var nonDigit = regexp.MustCompile(`[a-zA-Z]`)

// ParseObsLocation decodes a TEMPDROP location token into decimal degrees.
// The token carries two numeric groups in degrees x 100, e.g. "2134N07212W"
// is 21.34N 72.12W. Southern latitudes are negated. When eastNegative is set
// (the historical HSA convention) eastern longitudes are negated; otherwise
// western longitudes are.
func ParseObsLocation(locstr string, eastNegative bool) (Point, error) {
	latScale, lonScale := 1.0, 1.0
	lower := strings.ToLower(locstr)
	if strings.Contains(lower, "s") {
		latScale = -1.0
	}
	if eastNegative {
		if strings.Contains(lower, "e") {
			lonScale = -1.0
		}
	} else if strings.Contains(lower, "w") {
		lonScale = -1.0
	}

	groups := strings.Fields(nonDigit.ReplaceAllString(locstr, " "))
	if len(groups) < 2 {
		return Point{}, fmt.Errorf("location token %q: need two numeric groups", locstr)
	}
	lat, err := strconv.ParseFloat(groups[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("location token %q: %w", locstr, err)
	}
	lon, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("location token %q: %w", locstr, err)
	}

	return Point{Lat: latScale * lat / 100.0, Lon: lonScale * lon / 100.0}, nil
}

// ExtractLocations scans the raw message lines for the REL/SPG/SPL markers
// and decodes the location token that follows each. A marker must be followed
// by a location token and a time token on the same line. Missing or
// unparseable markers are tolerated: the fix stays nil and the marker name is
// returned so the caller can log a warning.
func ExtractLocations(lines []string, eastNegative bool) (Locations, []string) {
	var locs Locations
	var missing []string

	for _, marker := range markerNames {
		fix := findMarker(lines, marker, eastNegative)
		if fix == nil {
			missing = append(missing, marker)
			continue
		}
		switch marker {
		case MarkerRel:
			locs.Rel = fix
		case MarkerSpg:
			locs.Spg = fix
		case MarkerSpl:
			locs.Spl = fix
		}
	}

	return locs, missing
}

// findMarker returns the first well-formed fix for marker across the message
// lines, or nil. Lines are scanned in order, so repeated markers resolve
// deterministically to the earliest parseable occurrence.
func findMarker(lines []string, marker string, eastNegative bool) *Point {
	for _, line := range lines {
		tokens := strings.Fields(strings.ToLower(line))
		for i, tok := range tokens {
			if !strings.Contains(tok, marker) {
				continue
			}
			// Need a location token and a time token after the marker.
			if i+2 >= len(tokens) {
				continue
			}
			fix, err := ParseObsLocation(tokens[i+1], eastNegative)
			if err != nil {
				continue
			}
			return &fix
		}
	}
	return nil
}

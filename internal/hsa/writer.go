// Package hsa renders a completed sounding into the fixed-width HRD Spline
// Analysis file format, one line per vertical level.
package hsa

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
)

// lineFormat is the historical fixed-width HSA level record layout. The
// leading field is a constant record type, the date is a yymmdd float and
// the time an hhmm integer.
const lineFormat = "%2d %7.1f %4d %7.3f %7.3f %7.1f %7.1f %7.1f %8.1f %6.1f %6.1f %s\n"

const recordType = 1

// OutputPath returns the HSA file path for a message file path.
func OutputPath(msgPath string) string {
	return msgPath + ".hsa"
}

// Encode writes one HSA record per profile level. Levels carry their
// drift-corrected position and reconstructed timestamp when present, and
// otherwise fall back to the release fix and the message cycle time.
func Encode(w io.Writer, s *domain.Sounding) error {
	p := s.Profile
	drifted := len(p.Lat) > 0

	for i := 0; i < p.Levels(); i++ {
		lat, lon := 0.0, 0.0
		if drifted {
			lat, lon = p.Lat[i], p.Lon[i]
		} else if s.Locations.Rel != nil {
			lat, lon = s.Locations.Rel.Lat, s.Locations.Rel.Lon
		}

		dateStr := s.Date.YYMMDD()
		timeStr := s.Date.HHMM()
		if len(p.YYMMDD) > i {
			dateStr = p.YYMMDD[i]
		}
		if len(p.HHMM) > i {
			timeStr = p.HHMM[i]
		}

		date, err := strconv.ParseFloat(dateStr, 64)
		if err != nil {
			return fmt.Errorf("level %d: parse date %q: %w", i, dateStr, err)
		}
		hhmm, err := strconv.Atoi(timeStr)
		if err != nil {
			return fmt.Errorf("level %d: parse time %q: %w", i, timeStr, err)
		}

		_, err = fmt.Fprintf(w, lineFormat,
			recordType,
			date,
			hhmm,
			lat,
			lon,
			p.Pres[i],
			p.Temp[i],
			p.RH[i],
			p.Hgt[i],
			p.Uwnd[i],
			p.Vwnd[i],
			p.Flag[i],
		)
		if err != nil {
			return fmt.Errorf("level %d: %w", i, err)
		}
	}
	return nil
}

// WriteFile encodes the sounding next to its source message file and records
// the output path on the sounding.
func WriteFile(s *domain.Sounding) (string, error) {
	path := OutputPath(s.Path)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create hsa file: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close hsa file: %w", err)
	}
	s.OutputPath = path
	return path, nil
}

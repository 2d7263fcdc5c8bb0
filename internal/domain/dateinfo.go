package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// cycleLayout is the timestamp prefix of a TEMPDROP message file name,
// e.g. 202409181200.KNHC.
const cycleLayout = "200601021504"

// DateInfo carries the message cycle timestamp parsed from the source file
// name and the derived components the decoder and HSA formatting need.
type DateInfo struct {
	Cycle time.Time
}

// ParseDateInfo derives the cycle timestamp from the base name of a message
// file path. The base name must start with %Y%m%d%H%M, optionally followed by
// a station suffix after a dot (202409181200.KNHC).
func ParseDateInfo(path string) (DateInfo, error) {
	base := filepath.Base(path)
	prefix, _, _ := strings.Cut(base, ".")
	cycle, err := time.ParseInLocation(cycleLayout, prefix, time.UTC)
	if err != nil {
		return DateInfo{}, fmt.Errorf("parse cycle timestamp from %q: %w", base, err)
	}
	return DateInfo{Cycle: cycle}, nil
}

// YearShort returns the two-digit year, zero padded.
func (d DateInfo) YearShort() string { return d.Cycle.Format("06") }

// Month returns the two-digit month, zero padded.
func (d DateInfo) Month() string { return d.Cycle.Format("01") }

// Day returns the two-digit day of month, zero padded.
func (d DateInfo) Day() string { return d.Cycle.Format("02") }

// YYMMDD returns the HSA date string for the cycle, including the trailing
// period the fixed-width format expects (e.g. "240918.").
func (d DateInfo) YYMMDD() string { return d.Cycle.Format("060102") + "." }

// HHMM returns the HSA time string for the cycle (e.g. "1200").
func (d DateInfo) HHMM() string { return d.Cycle.Format("1504") }

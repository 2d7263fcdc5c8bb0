package domain

import "time"

// Level is one decoded vertical level of a TEMPDROP message, mapped from the
// external decoder's column order via the level-record schema. Missing
// measurements carry NaN.
type Level struct {
	Hgt  float64
	Pres float64
	RH   float64
	Temp float64
	Uwnd float64
	Vwnd float64
	Flag string
}

// Profile holds the interpolated working level set: only levels whose flag is
// a recognized level type and whose pressure lies below the surface sentinel.
// All slices are the same length and index-aligned with Pres.
type Profile struct {
	Pres []float64
	Temp []float64
	RH   []float64
	Hgt  []float64
	Uwnd []float64
	Vwnd []float64
	Flag []string

	// Psfc is the surface pressure inferred from the surface-flag level,
	// falling back to the maximum level pressure.
	Psfc float64

	// Drift/advection results. Fallrate, Heading and Dist are level-aligned;
	// Lat/Lon carry the release point at index 0 and are therefore one entry
	// longer than Pres.
	Fallrate []float64
	Heading  []float64
	Dist     []float64
	Lat      []float64
	Lon      []float64

	// Time reconstruction results, aligned with Lat/Lon.
	OffsetSeconds []float64
	YYMMDD        []string
	HHMM          []string
}

// Levels returns the number of retained vertical levels.
func (p *Profile) Levels() int {
	return len(p.Pres)
}

// LayerSet holds inter-level means and the per-layer theoretical fall rate.
// Each slice has one fewer entry than the profile level count.
type LayerSet struct {
	AvgP     []float64
	AvgT     []float64
	AvgU     []float64
	AvgV     []float64
	Fallrate []float64
}

// Point is a decimal-degree coordinate pair. The TEMPDROP convention negates
// southern latitudes and, by default, eastern longitudes.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Locations holds the release and splash fixes scraped from the message.
// A nil entry means the marker was absent or unparseable, which is non-fatal.
type Locations struct {
	Rel *Point
	Spg *Point
	Spl *Point
}

// Sounding is the observation context threaded through the pipeline. It is
// owned exclusively by one pipeline run, grows additively stage by stage, and
// is discarded after the output writer completes.
type Sounding struct {
	Path     string
	RawLines []string

	Date      DateInfo
	Locations Locations

	// Decoded holds one whitespace-delimited line per vertical level, as
	// produced by the external decode routine.
	Decoded []string

	Levels  []Level
	Profile *Profile
	Layers  *LayerSet

	OutputPath  string
	ProcessedAt time.Time
}

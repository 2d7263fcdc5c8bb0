package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"
)

// ProfileLevel is one vertical level of a published profile event, carrying
// the same fields as an HSA output line.
type ProfileLevel struct {
	Date string  `json:"date"`
	Time string  `json:"time"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Pres float64 `json:"pres"`
	Temp float64 `json:"temp"`
	RH   float64 `json:"rh"`
	Hgt  float64 `json:"hgt"`
	Uwnd float64 `json:"uwnd"`
	Vwnd float64 `json:"vwnd"`
	Flag string  `json:"flag"`
}

// ProfileEvent is the serialized form of a decoded sounding destined for the
// sink topic.
type ProfileEvent struct {
	ID             string         `json:"id"`
	Cycle          time.Time      `json:"cycle"`
	Source         string         `json:"source"`
	Release        *Point         `json:"release,omitempty"`
	Splash         *Point         `json:"splash,omitempty"`
	SurfacePres    float64        `json:"surface_pres"`
	DriftCorrected bool           `json:"drift_corrected"`
	Levels         []ProfileLevel `json:"levels"`
	ProcessedAt    time.Time      `json:"processed_at"`
}

// NewProfileEvent flattens a completed sounding into its event form.
// The drift-corrected flag reflects whether per-level positions exist.
func NewProfileEvent(s *Sounding) ProfileEvent {
	p := s.Profile
	drifted := len(p.Lat) > 0

	levels := make([]ProfileLevel, p.Levels())
	for i := range levels {
		lvl := ProfileLevel{
			Date: s.Date.YYMMDD(),
			Time: s.Date.HHMM(),
			Pres: p.Pres[i],
			Temp: p.Temp[i],
			RH:   p.RH[i],
			Hgt:  p.Hgt[i],
			Uwnd: p.Uwnd[i],
			Vwnd: p.Vwnd[i],
			Flag: p.Flag[i],
		}
		if drifted {
			lvl.Lat = p.Lat[i]
			lvl.Lon = p.Lon[i]
		} else if s.Locations.Rel != nil {
			lvl.Lat = s.Locations.Rel.Lat
			lvl.Lon = s.Locations.Rel.Lon
		}
		if len(p.YYMMDD) > i {
			lvl.Date = p.YYMMDD[i]
		}
		if len(p.HHMM) > i {
			lvl.Time = p.HHMM[i]
		}
		levels[i] = lvl
	}

	return ProfileEvent{
		ID:             generateID(s.Path, s.Date.Cycle),
		Cycle:          s.Date.Cycle,
		Source:         filepath.Base(s.Path),
		Release:        s.Locations.Rel,
		Splash:         s.Locations.Spg,
		SurfacePres:    p.Psfc,
		DriftCorrected: drifted,
		Levels:         levels,
		ProcessedAt:    s.ProcessedAt,
	}
}

// generateID produces a deterministic ID from the message identity, so
// reprocessing the same file yields the same event ID downstream.
func generateID(path string, cycle time.Time) string {
	input := fmt.Sprintf("%s|%s", filepath.Base(path), cycle.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return "sonde-" + hex.EncodeToString(hash[:8])
}

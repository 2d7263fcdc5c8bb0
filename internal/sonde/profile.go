package sonde

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
	"github.com/couchcryptid/tempdrop-etl/internal/schema"
)

// BuildLevels maps each decoded line onto a typed level record per the
// level-record schema, replacing the missing-data sentinel with NaN.
// Level order is preserved.
func BuildLevels(decoded []string, sch *schema.Schema, missing float64) ([]domain.Level, error) {
	levels := make([]domain.Level, 0, len(decoded))
	for i, line := range decoded {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := sch.Record(line)
		if err != nil {
			return nil, fmt.Errorf("decoded level %d: %w", i, err)
		}

		var lvl domain.Level
		for _, f := range []struct {
			name string
			dst  *float64
		}{
			{"hgt", &lvl.Hgt},
			{"pres", &lvl.Pres},
			{"rh", &lvl.RH},
			{"temp", &lvl.Temp},
			{"uwnd", &lvl.Uwnd},
			{"vwnd", &lvl.Vwnd},
		} {
			v, err := rec.Float(f.name)
			if err != nil {
				return nil, fmt.Errorf("decoded level %d: %w", i, err)
			}
			if v == missing {
				v = math.NaN()
			}
			*f.dst = v
		}

		flag, err := rec.String("flag")
		if err != nil {
			return nil, fmt.Errorf("decoded level %d: %w", i, err)
		}
		lvl.Flag = flag
		levels = append(levels, lvl)
	}
	return levels, nil
}

// SurfacePressure infers the surface pressure from the full level set: the
// surface is flagged by a level whose pressure equals the sentinel exactly,
// and its reported height field carries the measured surface pressure. When
// no such level exists, fall back to the maximum level pressure.
func SurfacePressure(levels []domain.Level, sentinel float64) float64 {
	for _, lvl := range levels {
		if lvl.Pres == sentinel {
			return lvl.Hgt
		}
	}

	psfc := math.NaN()
	for _, lvl := range levels {
		if math.IsNaN(lvl.Pres) {
			continue
		}
		if math.IsNaN(psfc) || lvl.Pres > psfc {
			psfc = lvl.Pres
		}
	}
	return psfc
}

// BuildProfile selects the working level set, keeping levels whose flag is a
// recognized level type and whose pressure is strictly below the surface
// sentinel, and fills measurement gaps per variable by interpolation over
// pressure. The surface pressure is derived from the full level set before
// filtering.
func BuildProfile(levels []domain.Level, validFlags []string, sentinel float64) *domain.Profile {
	valid := make(map[string]bool, len(validFlags))
	for _, f := range validFlags {
		valid[strings.ToLower(f)] = true
	}

	p := &domain.Profile{Psfc: SurfacePressure(levels, sentinel)}
	for _, lvl := range levels {
		if !valid[strings.ToLower(lvl.Flag)] || !(lvl.Pres < sentinel) {
			continue
		}
		p.Pres = append(p.Pres, lvl.Pres)
		p.Temp = append(p.Temp, lvl.Temp)
		p.RH = append(p.RH, lvl.RH)
		p.Hgt = append(p.Hgt, lvl.Hgt)
		p.Uwnd = append(p.Uwnd, lvl.Uwnd)
		p.Vwnd = append(p.Vwnd, lvl.Vwnd)
		p.Flag = append(p.Flag, lvl.Flag)
	}

	zarr := p.Pres
	p.Hgt = InterpMissing(p.Hgt, zarr)
	p.RH = InterpMissing(p.RH, zarr)
	p.Temp = InterpMissing(p.Temp, zarr)
	p.Uwnd = InterpMissing(p.Uwnd, zarr)
	p.Vwnd = InterpMissing(p.Vwnd, zarr)
	p.Pres = InterpMissing(p.Pres, zarr)

	return p
}

// BuildLayers computes the inter-level means for pressure, temperature and
// both wind components, applies the HSA chop convention, and evaluates the
// per-layer fall rate, re-interpolated onto the full level-pressure grid so
// it aligns index-for-index with the profile arrays.
func BuildLayers(p *domain.Profile, fn FallRateFunc) (*domain.LayerSet, error) {
	layers := &domain.LayerSet{
		AvgP: Chop(LayerMean(p.Pres)),
		AvgT: Chop(LayerMean(p.Temp)),
		AvgU: Chop(LayerMean(p.Uwnd)),
		AvgV: Chop(LayerMean(p.Vwnd)),
	}

	rates, err := FallRates(layers.AvgP, layers.AvgT, p.Psfc, fn)
	if err != nil {
		return nil, err
	}
	layers.Fallrate = rates

	p.Fallrate = InterpOnto(layers.AvgP, layers.Fallrate, p.Pres)
	return layers, nil
}

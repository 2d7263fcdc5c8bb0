package sonde

import (
	"fmt"
	"math"
)

// FallRateFunc computes the theoretical descent rate of a sonde through one
// layer, in mb/s. pres is the layer mean pressure (hPa), temp the layer mean
// temperature (degrees C), and sfcp the surface pressure. The derivation of
// the rate is domain physics supplied from outside the pipeline; the default
// is GSNDFall and tests substitute fixed-rate stands-ins.
type FallRateFunc func(pres, temp, sfcp float64) (float64, error)

// Sonde descent constants: package mass, drag coefficient and cross-section
// of the expendable, dry-air gas constant, standard gravity.
const (
	sondeMass = 0.435   // kg
	sondeDrag = 0.61    // dimensionless
	sondeArea = 0.0676  // m^2
	dryAirR   = 287.05  // J/(kg K)
	gravity   = 9.80665 // m/s^2
)

// GSNDFall estimates the terminal descent rate of a dropsonde at the given
// layer, balancing package weight against aerodynamic drag in air of
// hydrostatic density, then converting the vertical speed to a pressure
// tendency in mb/s. Layers reported below the surface are clamped to the
// surface pressure.
func GSNDFall(pres, temp, sfcp float64) (float64, error) {
	tk := temp + 273.15
	if pres <= 0 || tk <= 0 {
		return 0, fmt.Errorf("fall rate undefined for pres=%.1f hPa temp=%.1f C", pres, temp)
	}
	if sfcp > 0 && pres > sfcp {
		pres = sfcp
	}

	rho := (pres * 100.0) / (dryAirR * tk)
	w := math.Sqrt(2.0 * sondeMass * gravity / (sondeDrag * sondeArea * rho))
	return rho * gravity * w / 100.0, nil
}

// FallRates evaluates fn for each layer, returning one descent rate per layer
// mean, scaled by the HSA convention factor of 100. Layers with a NaN mean
// (unrepairable gaps) yield NaN rather than an error.
func FallRates(avgp, avgt []float64, psfc float64, fn FallRateFunc) ([]float64, error) {
	rates := make([]float64, len(avgp))
	for i := range avgp {
		if math.IsNaN(avgp[i]) || math.IsNaN(avgt[i]) {
			rates[i] = math.NaN()
			continue
		}
		r, err := fn(avgp[i], avgt[i], psfc)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		rates[i] = r / 100.0
	}
	return rates, nil
}

// Package pipeline orchestrates the TEMPDROP processing stages for a single
// message file: read, locate, decode, profile, layer statistics, optional
// drift and time correction, and HSA output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/tempdrop-etl/internal/advect"
	"github.com/couchcryptid/tempdrop-etl/internal/decoder"
	"github.com/couchcryptid/tempdrop-etl/internal/domain"
	"github.com/couchcryptid/tempdrop-etl/internal/hsa"
	"github.com/couchcryptid/tempdrop-etl/internal/observability"
	"github.com/couchcryptid/tempdrop-etl/internal/schema"
	"github.com/couchcryptid/tempdrop-etl/internal/sonde"
)

// ProfileSink receives the event form of each completed sounding.
type ProfileSink interface {
	Publish(ctx context.Context, event domain.ProfileEvent) error
}

// Options carries the processing knobs that shape a pipeline run.
type Options struct {
	CorrectDrift     bool
	CorrectTime      bool
	SurfacePressure  float64
	MissingValue     float64
	ValidLevelFlags  []string
	HeadingOffsetDeg float64
	EastNegative     bool
}

// Processor runs the full message-to-HSA pipeline. A single Processor is
// safe for concurrent use; each Process call owns its Sounding exclusively.
type Processor struct {
	dec      decoder.Decoder
	sch      *schema.Schema
	sink     ProfileSink
	fallrate sonde.FallRateFunc
	opts     Options
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Processor. The sink may be nil, in which case events are not
// published. A nil fallrate selects the standard sonde fall-rate model.
func New(dec decoder.Decoder, sch *schema.Schema, sink ProfileSink, fallrate sonde.FallRateFunc, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Processor {
	if fallrate == nil {
		fallrate = sonde.GSNDFall
	}
	return &Processor{
		dec:      dec,
		sch:      sch,
		sink:     sink,
		fallrate: fallrate,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once the processor has completed at least one
// message.
func (p *Processor) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no messages processed yet")
	}
	return nil
}

// Process runs every pipeline stage for one message file and returns the
// completed sounding. The HSA file is written next to the source message.
func (p *Processor) Process(ctx context.Context, path string) (*domain.Sounding, error) {
	start := time.Now()

	s, err := p.process(ctx, path)
	if err != nil {
		p.metrics.MessagesFailed.Inc()
		return nil, fmt.Errorf("process %s: %w", path, err)
	}

	p.metrics.MessagesProcessed.Inc()
	p.metrics.ProcessingDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)

	p.logger.Info("message processed",
		"path", path,
		"levels", s.Profile.Levels(),
		"psfc", s.Profile.Psfc,
		"drift_corrected", len(s.Profile.Lat) > 0,
		"output", s.OutputPath,
	)
	return s, nil
}

func (p *Processor) process(ctx context.Context, path string) (*domain.Sounding, error) {
	s, err := p.load(path)
	if err != nil {
		return nil, err
	}

	s.Decoded, err = p.dec.Decode(ctx, s.RawLines, s.Date)
	if err != nil {
		p.metrics.DecodeErrors.Inc()
		return nil, err
	}

	s.Levels, err = sonde.BuildLevels(s.Decoded, p.sch, p.opts.MissingValue)
	if err != nil {
		return nil, err
	}
	p.metrics.LevelsPerMessage.Observe(float64(len(s.Levels)))

	s.Profile = sonde.BuildProfile(s.Levels, p.opts.ValidLevelFlags, p.opts.SurfacePressure)
	if s.Profile.Levels() == 0 {
		return nil, fmt.Errorf("no valid levels in %d decoded records", len(s.Levels))
	}

	s.Layers, err = sonde.BuildLayers(s.Profile, p.fallrate)
	if err != nil {
		return nil, err
	}

	if p.opts.CorrectDrift {
		if err := p.correctDrift(s); err != nil {
			return nil, err
		}
	}

	s.ProcessedAt = domain.Now()
	if _, err := hsa.WriteFile(s); err != nil {
		return nil, err
	}

	if p.sink != nil {
		if err := p.sink.Publish(ctx, domain.NewProfileEvent(s)); err != nil {
			return nil, fmt.Errorf("publish profile event: %w", err)
		}
		p.metrics.ProfilesPublished.Inc()
	}
	return s, nil
}

// load reads the message file and derives its cycle timestamp and the
// release/splash fixes. Missing location markers are tolerated here; the
// drift stage decides whether they are fatal.
func (p *Processor) load(path string) (*domain.Sounding, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read message: %w", err)
	}

	s := &domain.Sounding{
		Path:     path,
		RawLines: strings.Split(string(raw), "\n"),
	}

	s.Date, err = domain.ParseDateInfo(path)
	if err != nil {
		return nil, err
	}

	var missing []string
	s.Locations, missing = domain.ExtractLocations(s.RawLines, p.opts.EastNegative)
	for _, marker := range missing {
		p.metrics.LocationWarnings.Inc()
		p.logger.Warn("location marker missing or unparseable",
			"path", path, "marker", marker)
	}
	return s, nil
}

// correctDrift advects the profile positions and, when enabled, reconstructs
// per-level timestamps. Drift was requested, so a message without both the
// release and splash fixes is an error rather than a silent fallback to
// uncorrected positions.
func (p *Processor) correctDrift(s *domain.Sounding) error {
	if err := advect.Drift(s.Profile, s.Locations, p.opts.HeadingOffsetDeg); err != nil {
		return fmt.Errorf("drift correction: %w", err)
	}
	p.metrics.DriftCorrected.Inc()

	if !p.opts.CorrectTime {
		return nil
	}
	if err := advect.UpdateTimes(s.Profile, s.Date); err != nil {
		return fmt.Errorf("time reconstruction: %w", err)
	}
	return nil
}

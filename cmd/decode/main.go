// Command decode runs the TEMPDROP pipeline over a batch of message files
// from the command line, without the watch service or Kafka. Processing
// options come from the same environment variables the service uses.
//
// Usage:
//
//	go run ./cmd/decode 202409181200.KNHC 202409181800.KNHC
//	go run ./cmd/decode --dir /data/inbox
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"

	"github.com/couchcryptid/tempdrop-etl/internal/config"
	"github.com/couchcryptid/tempdrop-etl/internal/decoder"
	"github.com/couchcryptid/tempdrop-etl/internal/observability"
	"github.com/couchcryptid/tempdrop-etl/internal/pipeline"
	"github.com/couchcryptid/tempdrop-etl/internal/schema"
)

type args struct {
	Files   []string `arg:"positional" help:"TEMPDROP message files to process"`
	Dir     string   `arg:"--dir" help:"process every message file in a directory"`
	Verbose bool     `arg:"-v,--verbose" help:"log each pipeline stage"`
}

func main() {
	var cli args
	arg.MustParse(&cli)

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cli args) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	files, err := collectFiles(cli)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no message files to process")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = observability.NewLogger(cfg)
	}

	sch, err := schema.Load(cfg.SchemaPath)
	if err != nil {
		return err
	}

	dec := decoder.NewExecDecoder(cfg.DecoderCmd, cfg.DecodeFlags, cfg.DecodeTimeout, cfg.MissingValue, logger)
	proc := pipeline.New(dec, sch, nil, nil, pipeline.Options{
		CorrectDrift:     cfg.CorrectDrift,
		CorrectTime:      cfg.CorrectTime,
		SurfacePressure:  cfg.SurfacePressure,
		MissingValue:     cfg.MissingValue,
		ValidLevelFlags:  cfg.ValidLevelFlags,
		HeadingOffsetDeg: cfg.HeadingOffsetDeg,
		EastNegative:     cfg.EastNegative,
	}, logger, observability.NewMetricsForTesting())

	bar := newBar(len(files), "decoding messages")
	var failed int
	for _, path := range files {
		if _, err := proc.Process(context.Background(), path); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "\n%s: %v\n", path, err)
		}
		_ = bar.Add(1)
	}

	fmt.Printf("processed %d message(s), %d failed\n", len(files)-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d messages failed", failed, len(files))
	}
	return nil
}

// collectFiles merges the positional files with a directory sweep, skipping
// HSA outputs and hidden files.
func collectFiles(cli args) ([]string, error) {
	files := append([]string(nil), cli.Files...)

	if cli.Dir != "" {
		entries, err := os.ReadDir(cli.Dir)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasSuffix(name, ".hsa") || strings.HasPrefix(name, ".") {
				continue
			}
			files = append(files, filepath.Join(cli.Dir, name))
		}
	}

	sort.Strings(files)
	return files, nil
}

func newBar(size int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(size,
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

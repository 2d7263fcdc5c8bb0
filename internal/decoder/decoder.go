// Package decoder shells out to the external TEMPDROP decoder executable and
// captures its HSA-formatted level records. The decoder is a separate binary
// with a file-based contract: it reads the raw sonde message lines from an
// input file and appends decoded records to an output file, once per decode
// flag.
package decoder

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
)

// Decoder turns raw TEMPDROP message lines into decoded level records.
type Decoder interface {
	Decode(ctx context.Context, lines []string, date domain.DateInfo) ([]string, error)
}

// ExecDecoder runs an external decoder command. Each invocation receives the
// message file, the output file, one decode flag, the cycle date components
// and the missing-value sentinel as positional arguments, and appends its
// records to the output file.
type ExecDecoder struct {
	Command string
	Flags   []int
	Timeout time.Duration
	Missing float64
	Log     *slog.Logger
}

// NewExecDecoder builds an ExecDecoder from the service configuration.
func NewExecDecoder(command string, flags []int, timeout time.Duration, missing float64, log *slog.Logger) *ExecDecoder {
	return &ExecDecoder{
		Command: command,
		Flags:   flags,
		Timeout: timeout,
		Missing: missing,
		Log:     log,
	}
}

// Decode writes the sonde message lines to a scratch directory, runs the
// decoder once per configured flag, and returns the accumulated output
// records. Only lines carrying the "XX" sonde marker are passed through;
// a message with no such lines, or a decoder run that produces no records,
// yields ErrNoDecodeOutput.
func (d *ExecDecoder) Decode(ctx context.Context, lines []string, date domain.DateInfo) ([]string, error) {
	msg := sondeLines(lines)
	if len(msg) == 0 {
		return nil, fmt.Errorf("message has no sonde lines: %w", domain.ErrNoDecodeOutput)
	}

	dir, err := os.MkdirTemp("", "tempdrop-decode-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	msgPath := filepath.Join(dir, "message.txt")
	outPath := filepath.Join(dir, "decoded.txt")
	if err := os.WriteFile(msgPath, []byte(strings.Join(msg, "\n")+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("write message file: %w", err)
	}
	if err := os.WriteFile(outPath, nil, 0o644); err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	for _, flag := range d.Flags {
		if err := d.run(ctx, msgPath, outPath, flag, date); err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read decoder output: %w", err)
	}
	records := splitRecords(raw)
	if len(records) == 0 {
		return nil, fmt.Errorf("decoder %s produced no records: %w", d.Command, domain.ErrNoDecodeOutput)
	}

	if d.Log != nil {
		d.Log.Debug("decoded sonde message",
			"cycle", date.Cycle,
			"input_lines", len(msg),
			"records", len(records))
	}
	return records, nil
}

func (d *ExecDecoder) run(ctx context.Context, msgPath, outPath string, flag int, date domain.DateInfo) error {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	args := []string{
		msgPath,
		outPath,
		strconv.Itoa(flag),
		date.YearShort(),
		date.Month(),
		date.Day(),
		strconv.FormatFloat(d.Missing, 'f', 1, 64),
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.Command, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("decoder %s (flag %d): %w: %s", d.Command, flag, err, msg)
		}
		return fmt.Errorf("decoder %s (flag %d): %w", d.Command, flag, err)
	}
	return nil
}

// sondeLines keeps the message lines that carry sonde data. The decoder only
// understands lines with the "XX" observation marker.
func sondeLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "xx") {
			out = append(out, line)
		}
	}
	return out
}

func splitRecords(raw []byte) []string {
	var records []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		records = append(records, line)
	}
	return records
}

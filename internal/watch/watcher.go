// Package watch polls an inbox directory for new TEMPDROP message files and
// feeds them through the pipeline.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/tempdrop-etl/internal/domain"
)

// MessageProcessor runs the full pipeline for one message file.
type MessageProcessor interface {
	Process(ctx context.Context, path string) (*domain.Sounding, error)
}

// Watcher polls a directory on a fixed interval and processes each message
// file exactly once per service lifetime. Output files and already-seen
// messages are skipped; a failed message is not retried, since the same
// input deterministically fails the same way.
type Watcher struct {
	dir      string
	interval time.Duration
	proc     MessageProcessor
	clock    clockwork.Clock
	logger   *slog.Logger
	seen     map[string]bool
}

// New creates a Watcher. A nil clock selects the real clock.
func New(dir string, interval time.Duration, proc MessageProcessor, logger *slog.Logger, clock clockwork.Clock) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Watcher{
		dir:      dir,
		interval: interval,
		proc:     proc,
		clock:    clock,
		logger:   logger,
		seen:     make(map[string]bool),
	}
}

// Run sweeps the inbox immediately, then on every tick until the context is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started", "dir", w.dir, "interval", w.interval)

	w.sweep(ctx)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			w.sweep(ctx)
		}
	}
}

// sweep processes every unseen message file in name order, so messages from
// the same cycle land in timestamp order.
func (w *Watcher) sweep(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Error("read inbox failed", "dir", w.dir, "error", err)
		return
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !w.wanted(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if ctx.Err() != nil {
			return
		}
		w.seen[name] = true
		path := filepath.Join(w.dir, name)
		if _, err := w.proc.Process(ctx, path); err != nil {
			w.logger.Error("message failed", "path", path, "error", err)
		}
	}
}

func (w *Watcher) wanted(name string) bool {
	if w.seen[name] {
		return false
	}
	if strings.HasSuffix(name, ".hsa") {
		return false
	}
	return !strings.HasPrefix(name, ".")
}

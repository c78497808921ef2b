// Package daemon runs the reconciliation loop on a fixed interval with
// flock-based locking to prevent multiple watchers on one data directory.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"entrain/internal/logging"
	"entrain/internal/playback"
)

// DefaultInterval is the cycle spacing when none is configured.
const DefaultInterval = 5 * time.Second

// ErrAlreadyRunning reports that another instance holds the lock.
var ErrAlreadyRunning = errors.New("another entrain instance is already running")

// Reader produces one reconciled playback state per call. Cycles run
// strictly one at a time.
type Reader interface {
	Read(ctx context.Context) (playback.State, error)
}

// StateFunc receives each cycle's reconciled state.
type StateFunc func(playback.State)

// Daemon owns the watch loop and the single-instance lock.
type Daemon struct {
	reader   Reader
	interval time.Duration
	logger   *slog.Logger
	onState  StateFunc

	lockPath string
	lock     *flock.Flock
}

// New constructs a daemon. The lock file lives under lockDir, which is
// created if absent.
func New(reader Reader, lockDir string, interval time.Duration, logger *slog.Logger, onState StateFunc) (*Daemon, error) {
	if reader == nil {
		return nil, errors.New("daemon requires a reader")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, "entrain.lock")
	return &Daemon{
		reader:   reader,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		onState:  onState,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the lock file location.
func (d *Daemon) LockPath() string { return d.lockPath }

// Run acquires the lock and cycles until the context is done. The first
// cycle runs immediately rather than waiting one interval.
func (d *Daemon) Run(ctx context.Context) error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrAlreadyRunning
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release lock", logging.Error(err))
		}
	}()

	runLogger := d.logger.With(logging.String(logging.FieldRunID, uuid.NewString()))
	runLogger.Info("watch loop started",
		logging.String("lock", d.lockPath),
		slog.Duration("interval", d.interval))

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.cycle(ctx, runLogger)
	for {
		select {
		case <-ctx.Done():
			runLogger.Info("watch loop stopped")
			return nil
		case <-ticker.C:
			d.cycle(ctx, runLogger)
		}
	}
}

func (d *Daemon) cycle(ctx context.Context, logger *slog.Logger) {
	state, err := d.reader.Read(ctx)
	if err != nil {
		logger.Warn("cycle failed", logging.Error(err))
		return
	}
	logger.Debug("cycle complete",
		logging.Bool("playing", state.IsPlaying),
		logging.String(logging.FieldTrack, state.TrackName))
	if d.onState != nil {
		d.onState(state)
	}
}

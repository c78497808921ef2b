// Package mediasession reads the OS now-playing session through the
// media-control helper and filters it down to the Brain.fm app.
package mediasession

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"entrain/internal/logging"
	"entrain/internal/probes"
)

// NowPlaying is the subset of the media-control payload the reconciler
// consumes.
type NowPlaying struct {
	BundleID        string  `json:"bundleIdentifier"`
	Playing         bool    `json:"playing"`
	Title           string  `json:"title"`
	ElapsedSeconds  float64 `json:"elapsedTime"`
	DurationSeconds float64 `json:"duration"`
}

// Probe queries the system media session. It is advisory: any failure
// reads as "no session" rather than an error, since the helper may be
// absent or another app may own the session.
type Probe struct {
	runner   probes.Runner
	command  string
	bundleID string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewProbe builds a media-session probe bound to one app bundle id. An
// empty command defaults to "media-control".
func NewProbe(runner probes.Runner, command, bundleID string, timeout time.Duration, logger *slog.Logger) *Probe {
	if runner == nil {
		runner = probes.ExecRunner{}
	}
	if command == "" {
		command = "media-control"
	}
	if timeout <= 0 {
		timeout = probes.DefaultTimeout
	}
	return &Probe{
		runner:   runner,
		command:  command,
		bundleID: bundleID,
		timeout:  timeout,
		logger:   logging.NewComponentLogger(logger, "mediasession"),
	}
}

// Read returns the current session and true when the session belongs to
// the configured bundle. It returns false when the helper fails, emits
// unparsable output, or another app owns the session.
func (p *Probe) Read(ctx context.Context) (NowPlaying, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Output(ctx, p.command, "get")
	if err != nil {
		p.logger.Debug("media session probe failed", logging.Error(err))
		return NowPlaying{}, false
	}

	var session NowPlaying
	if err := json.Unmarshal(out, &session); err != nil {
		p.logger.Debug("media session payload unparsable", logging.Error(err))
		return NowPlaying{}, false
	}
	if session.BundleID != p.bundleID {
		return NowPlaying{}, false
	}
	return session, true
}

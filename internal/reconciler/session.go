// Package reconciler merges every playback signal into one state per
// cycle. Sources in priority order: persisted local state (baseline,
// possibly stale), structured metadata from the disk cache and the API,
// live open-segment detection, and the OS media session as fallback.
package reconciler

import (
	"context"
	"errors"
	"log/slog"

	"entrain/internal/heuristic"
	"entrain/internal/liveprobe"
	"entrain/internal/logging"
	"entrain/internal/mediasession"
	"entrain/internal/playback"
	"entrain/internal/services"
	"entrain/internal/trackcache"
)

// DefaultRefreshCycles is how many cycles may pass before incomplete
// metadata justifies another authenticated refresh.
const DefaultRefreshCycles = 6

// BaselineSource yields the low-priority persisted state.
type BaselineSource interface {
	Baseline(parser *heuristic.Parser) playback.State
}

// ProcessProbe answers whether the app is running.
type ProcessProbe interface {
	Running(ctx context.Context, name string) bool
}

// LiveDetector inspects the disk cache for live playback evidence.
type LiveDetector interface {
	Detect(ctx context.Context, cache *trackcache.Cache) (playback.State, string, error)
	ReadDiskCache() *trackcache.Cache
}

// MediaProbe queries the OS media session.
type MediaProbe interface {
	Read(ctx context.Context) (mediasession.NowPlaying, bool)
}

// MetadataFetcher fetches structured metadata from the API. A (nil, nil)
// result means "no data available", not failure.
type MetadataFetcher interface {
	FetchRecent(ctx context.Context) (*trackcache.Cache, error)
}

// Options wires a session's collaborators.
type Options struct {
	Baseline BaselineSource
	Process  ProcessProbe
	Detector LiveDetector
	Media    MediaProbe
	API      MetadataFetcher
	Parser   *heuristic.Parser
	Logger   *slog.Logger

	ProcessName string

	// RefreshCycles overrides DefaultRefreshCycles when positive.
	RefreshCycles int
}

// Session carries reconciliation state across cycles: the metadata cache
// accumulated from API responses, a refresh counter, and the identity of
// the track that triggered the last refresh. It is not safe for
// concurrent use; callers run one cycle at a time.
type Session struct {
	baseline BaselineSource
	process  ProcessProbe
	detector LiveDetector
	media    MediaProbe
	api      MetadataFetcher
	parser   *heuristic.Parser
	logger   *slog.Logger

	processName      string
	refreshThreshold int

	memory             *trackcache.Cache
	cyclesSinceRefresh int
	lastRefreshTrack   string
}

// NewSession builds a session from its collaborators.
func NewSession(opts Options) *Session {
	parser := opts.Parser
	if parser == nil {
		parser = heuristic.NewParser()
	}
	threshold := opts.RefreshCycles
	if threshold <= 0 {
		threshold = DefaultRefreshCycles
	}
	return &Session{
		baseline:         opts.Baseline,
		process:          opts.Process,
		detector:         opts.Detector,
		media:            opts.Media,
		api:              opts.API,
		parser:           parser,
		logger:           logging.NewComponentLogger(opts.Logger, "reconciler"),
		processName:      opts.ProcessName,
		refreshThreshold: threshold,
		memory:           trackcache.New(),
	}
}

// Read runs one reconciliation cycle. It always produces a state; a
// collaborator failure degrades that one source and the cycle continues
// with the remaining ones.
func (s *Session) Read(ctx context.Context) (playback.State, error) {
	if !s.process.Running(ctx, s.processName) {
		return playback.State{}, nil
	}

	base := s.baseline.Baseline(s.parser)

	if state, ok := s.fastPath(ctx, base); ok {
		return state, nil
	}

	working := s.memory.Clone()
	working.Merge(s.detector.ReadDiskCache())

	current, currentURL := s.detect(ctx, working)

	if !current.IsPlaying {
		current = s.mediaFallback(ctx, working, current)
	}

	if !current.IsPlaying {
		s.cyclesSinceRefresh++
		return playback.Reduce(base, current), nil
	}

	s.maybeRefresh(ctx, working, current, currentURL)

	// Re-run enrichment so metadata fetched this cycle reaches the
	// state immediately.
	if meta, ok := lookupCurrent(working, current, currentURL); ok {
		current = playback.Merge(current, liveprobe.StateFromMetadata(meta))
	}

	return playback.Reduce(base, current), nil
}

// fastPath skips filesystem probing when the media session shows the same
// track as the last refresh and its cached metadata is already complete.
func (s *Session) fastPath(ctx context.Context, base playback.State) (playback.State, bool) {
	if s.memory.Empty() || s.media == nil || s.lastRefreshTrack == "" {
		return playback.State{}, false
	}
	session, ok := s.media.Read(ctx)
	if !ok {
		return playback.State{}, false
	}

	if session.Playing && session.Title == s.lastRefreshTrack {
		if meta, found := s.memory.LookupByName(session.Title); found && meta.Complete() {
			s.cyclesSinceRefresh++
			s.logger.Debug("fast path, track unchanged", logging.String(logging.FieldTrack, session.Title))
			return playback.Reduce(base, liveprobe.StateFromMetadata(meta)), true
		}
		return playback.State{}, false
	}
	if !session.Playing && session.Title == s.lastRefreshTrack {
		s.cyclesSinceRefresh++
		return playback.Reduce(base, playback.State{}), true
	}
	return playback.State{}, false
}

// detect runs the live probe. Failures degrade to an empty state so the
// media-session fallback still gets its chance.
func (s *Session) detect(ctx context.Context, cache *trackcache.Cache) (playback.State, string) {
	state, url, err := s.detector.Detect(ctx, cache)
	switch {
	case err == nil:
		return state, url
	case errors.Is(err, services.ErrNotFound):
		s.logger.Debug("live probe found nothing", logging.Error(err))
	default:
		s.logger.Warn("live probe failed", logging.Error(err))
	}
	return playback.State{}, ""
}

// mediaFallback consults the OS media session when the open-segment scan
// saw no playback. A cache hit on the reported title yields full
// metadata; otherwise the raw title is better than nothing.
func (s *Session) mediaFallback(ctx context.Context, cache *trackcache.Cache, current playback.State) playback.State {
	if s.media == nil {
		return current
	}
	session, ok := s.media.Read(ctx)
	if !ok || !session.Playing {
		return current
	}

	current.IsPlaying = true
	if session.Title == "" {
		return current
	}
	if meta, found := cache.LookupByName(session.Title); found {
		s.logger.Debug("media session cache hit", logging.String(logging.FieldTrack, session.Title))
		return playback.Merge(current, liveprobe.StateFromMetadata(meta))
	}
	current.TrackName = session.Title
	return current
}

// maybeRefresh decides whether this cycle earns an authenticated fetch:
// always on a track change, otherwise only when the counter reached the
// threshold and the current metadata is still incomplete.
func (s *Session) maybeRefresh(ctx context.Context, working *trackcache.Cache, current playback.State, currentURL string) {
	identity := current.TrackName
	if identity == "" {
		identity = currentURL
	}

	trackChanged := identity != "" && identity != s.lastRefreshTrack
	incomplete := current.NeuralEffect == "" ||
		current.NeuralEffect == trackcache.EffectPlaceholder ||
		current.ImageURL == ""
	due := trackChanged || (s.cyclesSinceRefresh >= s.refreshThreshold && incomplete)

	if !due || s.api == nil {
		s.cyclesSinceRefresh++
		return
	}

	fetched, err := s.api.FetchRecent(ctx)
	switch {
	case err != nil:
		s.logger.Warn("metadata refresh failed", logging.Error(err))
		s.cyclesSinceRefresh++
	case fetched == nil || fetched.Empty():
		s.logger.Debug("metadata refresh returned nothing")
		s.cyclesSinceRefresh++
	default:
		s.logger.Debug("metadata refreshed",
			logging.Int("tracks", fetched.Len()),
			logging.String(logging.FieldTrack, identity))
		working.Merge(fetched)
		s.memory.Merge(fetched)
		s.cyclesSinceRefresh = 0
		s.lastRefreshTrack = identity
	}
}

func lookupCurrent(cache *trackcache.Cache, current playback.State, currentURL string) (trackcache.Metadata, bool) {
	if currentURL != "" {
		if meta, ok := cache.LookupByURL(currentURL); ok {
			return meta, true
		}
	}
	if current.TrackName != "" {
		if meta, ok := cache.LookupByName(current.TrackName); ok {
			return meta, true
		}
	}
	return trackcache.Metadata{}, false
}

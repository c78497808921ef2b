// Package liveprobe determines what the app is playing right now by
// watching which disk-cache segments it holds open. The open/closed
// transition on segment file handles is the authoritative play/pause
// signal: the app releases every Cache_Data handle when paused.
package liveprobe

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"entrain/internal/heuristic"
	"entrain/internal/logging"
	"entrain/internal/playback"
	"entrain/internal/services"
	"entrain/internal/trackcache"
)

// atimeFallbackLimit caps how many segments the access-time fallback scan
// reads when the open-handle scan found no URL.
const atimeFallbackLimit = 100

var audioURLRE = regexp.MustCompile(`(https?://audio\d*\.brain\.fm/[^\s\x00"'<>]+\.mp3)`)

// FileLister reports the open file handles of a named process.
type FileLister interface {
	OpenFiles(ctx context.Context, name string) ([]string, error)
}

// Detector inspects the app's disk cache for live playback evidence.
type Detector struct {
	dataDir     string
	processName string
	files       FileLister
	parser      *heuristic.Parser
	logger      *slog.Logger
}

// NewDetector builds a detector rooted at the app's data directory.
func NewDetector(dataDir, processName string, files FileLister, parser *heuristic.Parser, logger *slog.Logger) *Detector {
	if parser == nil {
		parser = heuristic.NewParser()
	}
	return &Detector{
		dataDir:     dataDir,
		processName: processName,
		files:       files,
		parser:      parser,
		logger:      logging.NewComponentLogger(logger, "liveprobe"),
	}
}

func (d *Detector) segmentDir() string {
	return filepath.Join(d.dataDir, "Cache", "Cache_Data")
}

// Detect returns the current playback state and, when playing, the audio
// URL it was derived from. A missing cache directory reads as
// services.ErrNotFound; callers treat it as "nothing to report".
func (d *Detector) Detect(ctx context.Context, cache *trackcache.Cache) (playback.State, string, error) {
	dir := d.segmentDir()
	if _, err := os.Stat(dir); err != nil {
		return playback.State{}, "", services.Wrap(services.ErrNotFound, "liveprobe", "cache directory", err)
	}

	lines, err := d.files.OpenFiles(ctx, d.processName)
	if err != nil {
		return playback.State{}, "", services.Wrap(services.ErrTransient, "liveprobe", "open files", err)
	}

	anyOpen := false
	for _, line := range lines {
		if !strings.Contains(line, "Cache_Data") {
			continue
		}
		anyOpen = true
		if !strings.Contains(line, "_0") {
			continue
		}
		name := segmentName(line)
		if name == "" {
			continue
		}
		if url := scanSegment(filepath.Join(dir, name)); url != "" {
			return d.enrich(url, cache), url, nil
		}
	}

	if anyOpen {
		// A segment is open but no URL surfaced from the handle scan.
		// Access times are less reliable (kernel caching), hence fallback.
		if url := d.scanByAccessTime(dir); url != "" {
			return d.enrich(url, cache), url, nil
		}
	}

	return playback.State{}, "", nil
}

// ReadDiskCache scans every metadata segment for cached servings API
// responses and builds a metadata lookup table from them. It never fails:
// unreadable or unparsable segments are skipped and an empty cache is
// returned when nothing matches.
func (d *Detector) ReadDiskCache() *trackcache.Cache {
	out := trackcache.New()

	dir := d.segmentDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		d.logger.Debug("cache directory unreadable", logging.String(logging.FieldPath, dir), logging.Error(err))
		return out
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_0") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		header := data
		if len(header) > headerProbeSize {
			header = header[:headerProbeSize]
		}
		if !servingsEndpointRE.Match(header) {
			continue
		}

		payload, ok := ExtractPayload(data)
		if !ok {
			d.logger.Debug("segment payload not extractable", logging.String(logging.FieldPath, path))
			continue
		}
		parsed, err := trackcache.ParseServings(payload)
		if err != nil {
			d.logger.Debug("segment payload unparsable", logging.String(logging.FieldPath, path), logging.Error(err))
			continue
		}
		out.Merge(parsed)
	}

	return out
}

var servingsEndpointRE = regexp.MustCompile(`api\.brain\.fm/v3/users/[^/]+/servings/(recent|favorites)`)

// StateFromMetadata builds a playing state from a structured cache record.
func StateFromMetadata(meta trackcache.Metadata) playback.State {
	return playback.State{
		IsPlaying:         true,
		TrackName:         meta.Name,
		Genre:             meta.Genre,
		NeuralEffect:      meta.NeuralEffect,
		NeuralEffectLevel: meta.NeuralEffectLevel,
		Mode:              meta.DisplayMode(),
		Activity:          meta.Activity,
		ImageURL:          meta.ImageURL,
	}
}

func (d *Detector) enrich(url string, cache *trackcache.Cache) playback.State {
	if cache != nil {
		if meta, ok := cache.LookupByURL(url); ok {
			d.logger.Debug("structured cache hit", logging.String(logging.FieldTrack, meta.Name))
			return StateFromMetadata(meta)
		}
		d.logger.Debug("structured cache miss, parsing filename")
	}
	return d.parser.Parse(url)
}

// segmentName extracts the segment filename from an lsof output line.
// Lines end with the absolute path of the open file.
func segmentName(line string) string {
	idx := strings.LastIndex(line, "/")
	if idx < 0 {
		return ""
	}
	name := line[idx+1:]
	if !strings.HasSuffix(name, "_0") {
		return ""
	}
	return name
}

// scanSegment reads a segment and returns the first audio URL within its
// leading scan window, or "" when none matches.
func scanSegment(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	if len(data) > scanWindow {
		data = data[:scanWindow]
	}
	if m := audioURLRE.Find(data); m != nil {
		return string(m)
	}
	return ""
}

// scanByAccessTime scans metadata segments in most-recently-accessed
// order. Only _0 segments are considered since stream segments can carry
// misleading access times.
func (d *Detector) scanByAccessTime(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	type candidate struct {
		path     string
		accessed time.Time
	}
	candidates := make([]candidate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "_0") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		accessed, ok := accessTime(path)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{path: path, accessed: accessed})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].accessed.After(candidates[j].accessed)
	})
	if len(candidates) > atimeFallbackLimit {
		candidates = candidates[:atimeFallbackLimit]
	}

	for _, c := range candidates {
		if url := scanSegment(c.path); url != "" {
			return url
		}
	}
	return ""
}

func accessTime(path string) (time.Time, bool) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return time.Time{}, false
	}
	return time.Unix(st.Atim.Unix()), true
}

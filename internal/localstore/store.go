package localstore

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"entrain/internal/logging"
)

// minRunLength is the shortest run of printable bytes worth keeping,
// matching the strings(1) default.
const minRunLength = 4

// Store reads raw text content from the app's local storage directory.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New returns a store rooted at the app data directory (the directory
// containing "Local Storage/leveldb").
func New(dir string, logger *slog.Logger) *Store {
	return &Store{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "localstore"),
	}
}

// ReadStrings extracts all printable text from the storage files.
// Best-effort by contract: a missing directory or unreadable file yields
// an empty result, never an error the caller must handle.
func (s *Store) ReadStrings() string {
	dir := filepath.Join(s.dir, "Local Storage", "leveldb")

	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("local storage unavailable", logging.String("path", dir), logging.Error(err))
		return ""
	}

	var out strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".ldb", ".log":
		default:
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		extractPrintable(data, &out)
	}
	return out.String()
}

// extractPrintable appends runs of >= minRunLength printable ASCII bytes
// to out, one run per line.
func extractPrintable(data []byte, out *strings.Builder) {
	start := -1
	flush := func(end int) {
		if start >= 0 && end-start >= minRunLength {
			out.Write(data[start:end])
			out.WriteByte('\n')
		}
		start = -1
	}
	for i, b := range data {
		printable := b >= 0x20 && b <= 0x7e
		if printable && start < 0 {
			start = i
		} else if !printable {
			flush(i)
		}
	}
	flush(len(data))
}

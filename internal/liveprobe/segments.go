package liveprobe

import (
	"bytes"
	"compress/gzip"
	"io"
)

// headerProbeSize bounds how much of a segment is inspected when deciding
// whether it caches a servings API response.
const headerProbeSize = 512

// scanWindow bounds how much of a segment is scanned for an audio URL.
const scanWindow = 32 * 1024

// ExtractPayload pulls the JSON body out of a Chromium disk-cache segment.
// Segments hold HTTP response metadata followed by the body, which is
// usually gzip-compressed. It first scans for the gzip magic bytes and
// decompresses from there, then falls back to locating a raw `{"result"`
// object and balancing braces. Brace counting ignores string context,
// which is accepted for this payload shape.
func ExtractPayload(data []byte) ([]byte, bool) {
	if pos := gzipStart(data); pos >= 0 {
		if body, err := gunzip(data[pos:]); err == nil {
			return body, true
		}
	}

	if start := bytes.Index(data, []byte(`{"result"`)); start >= 0 {
		if end := jsonEnd(data[start:]); end > 0 {
			return data[start : start+end], true
		}
	}

	return nil, false
}

func gzipStart(data []byte) int {
	for i := 0; i+1 < len(data); i++ {
		if data[i] == 0x1F && data[i+1] == 0x8B {
			return i
		}
	}
	return -1
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	// Cache segments carry trailing bookkeeping bytes after the body.
	r.Multistream(false)
	defer r.Close()
	return io.ReadAll(r)
}

func jsonEnd(data []byte) int {
	depth := 0
	for i, b := range data {
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

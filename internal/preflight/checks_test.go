package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDataDir(t *testing.T) {
	dir := t.TempDir()
	if r := CheckDataDir(dir); !r.Passed {
		t.Fatalf("existing dir failed: %+v", r)
	}
	if r := CheckDataDir(filepath.Join(dir, "missing")); r.Passed {
		t.Fatal("missing dir passed")
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckDataDir(file); r.Passed {
		t.Fatal("regular file passed")
	}
}

func TestCheckSegmentDir(t *testing.T) {
	dataDir := t.TempDir()
	if r := CheckSegmentDir(dataDir); r.Passed {
		t.Fatal("absent segment dir passed")
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "Cache", "Cache_Data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if r := CheckSegmentDir(dataDir); !r.Passed {
		t.Fatalf("segment dir failed: %+v", r)
	}
}

func TestCheckLocalStorage(t *testing.T) {
	dataDir := t.TempDir()
	if r := CheckLocalStorage(dataDir); r.Passed {
		t.Fatal("absent local storage passed")
	}
	if err := os.MkdirAll(filepath.Join(dataDir, "Local Storage", "leveldb"), 0o755); err != nil {
		t.Fatal(err)
	}
	if r := CheckLocalStorage(dataDir); !r.Passed {
		t.Fatalf("local storage failed: %+v", r)
	}
}

func TestCheckBinary(t *testing.T) {
	if r := CheckBinary("sh", "sh", "test"); !r.Passed {
		t.Fatalf("sh not found: %+v", r)
	}
	r := CheckBinary("nope", "definitely-not-a-real-binary", "test")
	if r.Passed {
		t.Fatal("missing binary passed")
	}
	if !strings.Contains(r.Detail, "not found") {
		t.Fatalf("detail = %q", r.Detail)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	if r := CheckDiskSpace(t.TempDir()); !r.Passed {
		t.Fatalf("disk space check failed: %+v", r)
	}
	// A missing leaf climbs to the nearest existing parent.
	if r := CheckDiskSpace(filepath.Join(t.TempDir(), "a", "b", "c")); !r.Passed {
		t.Fatalf("missing leaf failed: %+v", r)
	}
}

func TestPassed(t *testing.T) {
	all := []Result{{Passed: true}, {Passed: true}}
	if !Passed(all) {
		t.Fatal("expected pass")
	}
	if Passed(append(all, Result{})) {
		t.Fatal("expected failure")
	}
}

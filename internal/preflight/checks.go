// Package preflight verifies the environment before a watch loop starts:
// the app's data directory, the external probe binaries, and free disk
// space for logs. The doctor command renders its results.
package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/sys/unix"

	"entrain/internal/config"
)

// Result is one named check outcome.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run evaluates every check for the given configuration.
func Run(cfg *config.Config) []Result {
	results := []Result{
		CheckDataDir(cfg.Paths.DataDir),
		CheckSegmentDir(cfg.Paths.DataDir),
		CheckLocalStorage(cfg.Paths.DataDir),
	}
	for _, bin := range []struct{ name, command, purpose string }{
		{"pgrep", "pgrep", "process liveness probe"},
		{"lsof", "lsof", "open-segment probe"},
		{cfg.Probes.MediaSessionCommand, cfg.Probes.MediaSessionCommand, "media session query"},
	} {
		results = append(results, CheckBinary(bin.name, bin.command, bin.purpose))
	}
	results = append(results, CheckDiskSpace(cfg.Paths.LogDir))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// CheckDataDir verifies the app's data directory exists and is readable.
func CheckDataDir(dataDir string) Result {
	const name = "Data directory"
	info, err := os.Stat(dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (does not exist, is the app installed?)", dataDir)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (stat: %v)", dataDir, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (not a directory)", dataDir)}
	}
	if err := unix.Access(dataDir, unix.R_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (insufficient permissions: %v)", dataDir, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", dataDir)}
}

// CheckSegmentDir reports whether the disk cache has been populated yet.
// A missing segment directory is normal on a fresh install, so the detail
// says so instead of demanding action.
func CheckSegmentDir(dataDir string) Result {
	const name = "Cache segments"
	dir := filepath.Join(dataDir, "Cache", "Cache_Data")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (absent; appears after first playback)", dir)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// CheckLocalStorage reports whether the persisted local storage exists,
// which credentials and baseline state are scavenged from.
func CheckLocalStorage(dataDir string) Result {
	const name = "Local storage"
	dir := filepath.Join(dataDir, "Local Storage", "leveldb")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (absent; appears after first sign-in)", dir)}
	}
	return Result{Name: name, Passed: true, Detail: dir}
}

// CheckBinary verifies an external helper is on PATH.
func CheckBinary(name, command, purpose string) Result {
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("not found on PATH (%s)", purpose)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDiskSpace verifies the log directory's filesystem has free space.
func CheckDiskSpace(logDir string) Result {
	const name = "Disk space"

	probe := logDir
	for probe != "" {
		if _, err := os.Stat(probe); err == nil {
			break
		}
		parent := filepath.Dir(probe)
		if parent == probe {
			break
		}
		probe = parent
	}

	var stat unix.Statfs_t
	if err := unix.Statfs(probe, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (statfs: %v)", probe, err)}
	}
	freeMiB := stat.Bavail * uint64(stat.Bsize) / (1 << 20)
	if freeMiB < 64 {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%d MiB free)", probe, freeMiB)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", probe, freeMiB)}
}

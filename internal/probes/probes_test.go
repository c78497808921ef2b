package probes

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

type fakeRunner struct {
	out  []byte
	err  error
	name string
	args []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.out, f.err
}

func TestRunningTrueOnMatch(t *testing.T) {
	runner := &fakeRunner{out: []byte("1234\n")}
	p := NewProcess(runner, time.Second, nil)

	if !p.Running(context.Background(), "Brain.fm") {
		t.Fatal("expected running")
	}
	if runner.name != "pgrep" {
		t.Fatalf("command = %q, want pgrep", runner.name)
	}
	if len(runner.args) != 2 || runner.args[0] != "-x" || runner.args[1] != "Brain.fm" {
		t.Fatalf("unexpected args %v", runner.args)
	}
}

func TestRunningFalseWhenNoMatch(t *testing.T) {
	runner := &fakeRunner{err: &exec.ExitError{}}
	p := NewProcess(runner, time.Second, nil)

	if p.Running(context.Background(), "Brain.fm") {
		t.Fatal("expected not running")
	}
}

func TestRunningFalseOnProbeFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("timeout")}
	p := NewProcess(runner, time.Second, nil)

	if p.Running(context.Background(), "Brain.fm") {
		t.Fatal("probe failure should read as not running")
	}
}

func TestOpenFilesSplitsLines(t *testing.T) {
	runner := &fakeRunner{out: []byte("COMMAND PID\nBrain.fm 42 /tmp/a\nBrain.fm 42 /tmp/b\n")}
	p := NewProcess(runner, time.Second, nil)

	lines, err := p.OpenFiles(context.Background(), "Brain.fm")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if runner.name != "lsof" || runner.args[0] != "-c" {
		t.Fatalf("unexpected command %s %v", runner.name, runner.args)
	}
}

func TestOpenFilesEmptyOutput(t *testing.T) {
	runner := &fakeRunner{out: nil}
	p := NewProcess(runner, time.Second, nil)

	lines, err := p.OpenFiles(context.Background(), "Brain.fm")
	if err != nil {
		t.Fatal(err)
	}
	if lines != nil {
		t.Fatalf("expected no lines, got %v", lines)
	}
}

func TestOpenFilesPropagatesError(t *testing.T) {
	probeErr := errors.New("lsof missing")
	p := NewProcess(&fakeRunner{err: probeErr}, time.Second, nil)

	if _, err := p.OpenFiles(context.Background(), "Brain.fm"); !errors.Is(err, probeErr) {
		t.Fatalf("err = %v, want %v", err, probeErr)
	}
}

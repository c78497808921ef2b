package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"entrain/internal/playback"
)

type countingReader struct {
	calls atomic.Int64
	state playback.State
	err   error
}

func (r *countingReader) Read(context.Context) (playback.State, error) {
	r.calls.Add(1)
	return r.state, r.err
}

func TestRunFirstCycleImmediate(t *testing.T) {
	reader := &countingReader{state: playback.State{IsPlaying: true, TrackName: "Blooming"}}
	var got atomic.Int64
	d, err := New(reader, t.TempDir(), time.Hour, nil, func(playback.State) { got.Add(1) })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for got.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first cycle never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if reader.calls.Load() != 1 {
		t.Fatalf("reader calls = %d, want exactly the immediate cycle", reader.calls.Load())
	}
}

func TestRunSecondInstanceRejected(t *testing.T) {
	dir := t.TempDir()
	reader := &countingReader{}

	first, err := New(reader, dir, time.Hour, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- first.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for reader.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("first instance never started")
		case <-time.After(10 * time.Millisecond):
		}
	}

	second, err := New(&countingReader{}, dir, time.Hour, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("err = %v, want ErrAlreadyRunning", err)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestRunCycleFailureDoesNotStopLoop(t *testing.T) {
	reader := &countingReader{err: errors.New("probe failed")}
	called := false
	d, err := New(reader, t.TempDir(), 20*time.Millisecond, nil, func(playback.State) { called = true })
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if reader.calls.Load() < 2 {
		t.Fatalf("reader calls = %d, want repeated cycles despite failures", reader.calls.Load())
	}
	if called {
		t.Fatal("callback must not fire on failed cycles")
	}
}

func TestLockReleasedAfterRun(t *testing.T) {
	dir := t.TempDir()
	d, err := New(&countingReader{}, dir, time.Hour, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatal(err)
	}

	next, err := New(&countingReader{}, dir, time.Hour, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx2, cancel2 := context.WithCancel(context.Background())
	cancel2()
	if err := next.Run(ctx2); err != nil {
		t.Fatalf("lock not released: %v", err)
	}
}

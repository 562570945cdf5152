package sweep

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSweeper struct {
	removed int
	err     error
	calls   int
}

func (f *fakeSweeper) Sweep(context.Context) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.removed, nil
}

func TestRunOnce(t *testing.T) {
	sweeper := &fakeSweeper{removed: 2}
	job := New(sweeper, time.Minute, nil)

	if err := job.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("sweeper calls = %d, want 1", sweeper.calls)
	}
}

func TestRunOnceWrapsSweepError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("store unavailable")}
	job := New(sweeper, time.Minute, nil)

	if err := job.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error from failing sweeper")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	sweeper := &fakeSweeper{}
	job := New(sweeper, time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Run(ctx)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("job did not stop after cancel")
	}
	if sweeper.calls == 0 {
		t.Fatalf("job never ticked")
	}
}

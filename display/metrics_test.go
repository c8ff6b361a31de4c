package display

import (
	"bytes"
	"image"
	"log"
	"strings"
	"testing"
	"time"
)

type countingObserver struct {
	calls  int
	queued int
}

func (o *countingObserver) ObservePresent(queued int, duration time.Duration) {
	o.calls++
	o.queued = queued
}

func TestObserverSeesEveryPresent(t *testing.T) {
	driver := &fakeDriver{w: 16, h: 8}
	s, err := NewFrameScheduler(driver, time.Second)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	obs := &countingObserver{}
	s.SetObserver(obs)

	frame := image.NewRGBA(image.Rect(0, 0, 16, 8))
	s.Present(frame)
	s.Present(frame)

	if obs.calls != 2 {
		t.Fatalf("expected 2 observations, got %d", obs.calls)
	}
	if obs.queued != 0 {
		t.Fatalf("expected empty queue in observation, got %d", obs.queued)
	}
}

func TestPresentLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	obs := NewPresentLogger(log.New(&buf, "", 0))

	obs.ObservePresent(3, 5*time.Millisecond)

	got := buf.String()
	if !strings.Contains(got, "queued=3") {
		t.Fatalf("missing queue depth in %q", got)
	}
}

func TestStatsLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStatsLogger(log.New(&buf, "", 0))

	obs.ObserveStats(ScrollingStats{UpdatesDeferred: 4, FramesPresented: 9})

	got := buf.String()
	if !strings.Contains(got, "deferred=4") || !strings.Contains(got, "presented=9") {
		t.Fatalf("missing counters in %q", got)
	}
}

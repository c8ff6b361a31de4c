package display

import (
	"log"
	"time"
)

// PresentObserver records presentation metrics for instrumentation.
type PresentObserver interface {
	ObservePresent(queued int, duration time.Duration)
}

// PresentLogger logs present metrics to the provided logger.
type PresentLogger struct {
	logger *log.Logger
}

// NewPresentLogger creates a present observer that logs metrics.
func NewPresentLogger(l *log.Logger) *PresentLogger {
	if l == nil {
		l = log.Default()
	}
	return &PresentLogger{logger: l}
}

func (p *PresentLogger) ObservePresent(queued int, duration time.Duration) {
	if p == nil || p.logger == nil {
		return
	}
	p.logger.Printf("present queued=%d duration=%s", queued, duration)
}

// StatsObserver records scheduler counter snapshots.
type StatsObserver interface {
	ObserveStats(stats ScrollingStats)
}

// StatsLogger logs scheduler stats.
type StatsLogger struct {
	logger *log.Logger
}

// NewStatsLogger returns an observer that logs counter snapshots.
func NewStatsLogger(l *log.Logger) *StatsLogger {
	if l == nil {
		l = log.Default()
	}
	return &StatsLogger{logger: l}
}

func (s *StatsLogger) ObserveStats(stats ScrollingStats) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("stats deferred=%d processed=%d presented=%d failures=%d",
		stats.UpdatesDeferred, stats.UpdatesProcessed, stats.FramesPresented, stats.PresentFailures)
}

// Copyright © 2026 Marquee contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: display/publisher.go
// Summary: Throttled snapshot side channel for out-of-process frame preview.

package display

import (
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPublishInterval is the minimum spacing between snapshot writes.
const DefaultPublishInterval = 200 * time.Millisecond

// SnapshotPublisher exposes the last presented frame at a well-known path
// for an external observer such as a web preview. Presentation is never
// throttled, only this side channel: MaybePublish is a no-op until the
// minimum interval has elapsed since the previous publish.
//
// Writes go to a temp file in the same directory and are renamed into
// place, so a concurrent reader never observes a partial frame.
type SnapshotPublisher struct {
	path        string
	minInterval time.Duration

	mu   sync.Mutex
	last time.Time

	now func() time.Time
}

func NewSnapshotPublisher(path string, minInterval time.Duration) *SnapshotPublisher {
	if minInterval <= 0 {
		minInterval = DefaultPublishInterval
	}
	return &SnapshotPublisher{path: path, minInterval: minInterval, now: time.Now}
}

// Path returns the published snapshot location.
func (p *SnapshotPublisher) Path() string {
	return p.path
}

// MaybePublish writes the frame as PNG if the throttle window has elapsed.
// Failures are logged and swallowed; they must never reach the presentation
// path. The caller keeps ownership of the frame and must not mutate it while
// the encode runs; the scheduler hands over a private copy for that reason.
func (p *SnapshotPublisher) MaybePublish(frame *image.RGBA) {
	if p == nil || frame == nil {
		return
	}
	if !p.claim() {
		return
	}
	p.publish(frame)
}

// claim reserves the next publish slot. It reports false while the throttle
// window from the previous claim is still open.
func (p *SnapshotPublisher) claim() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if !p.last.IsZero() && now.Sub(p.last) < p.minInterval {
		return false
	}
	p.last = now
	return true
}

func (p *SnapshotPublisher) publish(frame *image.RGBA) {
	if err := p.write(frame); err != nil {
		log.Printf("Publisher: snapshot write failed: %v", err)
	}
}

func (p *SnapshotPublisher) write(frame *image.RGBA) error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.png")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, frame); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// The preview runs under another user; keep the frame world-readable.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

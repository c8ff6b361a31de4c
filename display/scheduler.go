package display

import (
	"errors"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"
)

var ErrBadCanvasSize = errors.New("display: canvas dimensions must be positive")

// DefaultInactivityTimeout is how long after the last MarkScrollActive the
// scheduler still counts a scroll as live.
const DefaultInactivityTimeout = 750 * time.Millisecond

// Disposition reports whether a requested update ran inline or was queued.
type Disposition int

const (
	Executed Disposition = iota
	Deferred
)

func (d Disposition) String() string {
	if d == Deferred {
		return "deferred"
	}
	return "executed"
}

// FrameScheduler owns the canonical canvas and is the only component
// permitted to mutate it. Every producer funnels its writes through one
// scheduler instance: scroll frames go straight to Present, everything else
// goes through RequestUpdate so an active scroll is never interrupted.
//
// The canvas is double buffered. Present composes into the off-screen buffer
// and swaps it into the visible slot, so a partial frame is never shown and
// the swap itself is O(1) beyond the pixel copy.
type FrameScheduler struct {
	mu         sync.Mutex
	driver     Driver
	front      *image.RGBA
	back       *image.RGBA
	queue      updateQueue
	seq        uint64
	lastScroll time.Time
	inactivity time.Duration
	draining   bool
	stats      ScrollingStats
	observer   PresentObserver
	publisher  *SnapshotPublisher

	now func() time.Time
}

func NewFrameScheduler(driver Driver, inactivity time.Duration) (*FrameScheduler, error) {
	w, h := driver.Size()
	if w <= 0 || h <= 0 {
		return nil, ErrBadCanvasSize
	}
	if inactivity <= 0 {
		inactivity = DefaultInactivityTimeout
	}
	return &FrameScheduler{
		driver:     driver,
		front:      image.NewRGBA(image.Rect(0, 0, w, h)),
		back:       image.NewRGBA(image.Rect(0, 0, w, h)),
		inactivity: inactivity,
		now:        time.Now,
	}, nil
}

// SetObserver registers an optional metrics observer invoked after each present.
func (s *FrameScheduler) SetObserver(observer PresentObserver) {
	s.mu.Lock()
	s.observer = observer
	s.mu.Unlock()
}

// SetPublisher attaches the snapshot side channel fed after each present.
func (s *FrameScheduler) SetPublisher(publisher *SnapshotPublisher) {
	s.mu.Lock()
	s.publisher = publisher
	s.mu.Unlock()
}

// Size returns the canvas dimensions.
func (s *FrameScheduler) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.front.Bounds()
	return b.Dx(), b.Dy()
}

// MarkScrollActive records that a ticker is mid-scroll. Engines call this at
// the start of every tick; the flag decays on its own after the inactivity
// timeout, no background timer involved.
func (s *FrameScheduler) MarkScrollActive() {
	s.mu.Lock()
	s.lastScroll = s.now()
	s.stats.LastScrollAt = s.lastScroll
	s.mu.Unlock()
}

// IsScrollingNow reports whether a scroll has been marked active within the
// inactivity timeout.
func (s *FrameScheduler) IsScrollingNow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scrollingLocked()
}

func (s *FrameScheduler) scrollingLocked() bool {
	if s.lastScroll.IsZero() {
		return false
	}
	return s.now().Sub(s.lastScroll) <= s.inactivity
}

// Present composes the frame into the back buffer, swaps it visible and
// pushes it to the driver. Scroll frames bypass the deferred queue; they are
// the active content. A driver failure is logged and swallowed: the next
// tick retries naturally and the canvas keeps the last good frame.
//
// The snapshot copy is taken while the lock is held. The buffers belong to
// the scheduler alone; handing s.front to the publisher would let png.Encode
// read pixels a concurrent Present is already drawing over.
func (s *FrameScheduler) Present(frame *image.RGBA) {
	start := time.Now()

	s.mu.Lock()
	draw.Draw(s.back, s.back.Bounds(), frame, frame.Bounds().Min, draw.Src)
	s.front, s.back = s.back, s.front
	s.stats.FramesPresented++

	err := s.driver.Swap(s.front)
	if err != nil {
		s.stats.PresentFailures++
	}
	var snap *image.RGBA
	if s.publisher != nil && s.publisher.claim() {
		snap = image.NewRGBA(s.front.Bounds())
		copy(snap.Pix, s.front.Pix)
	}
	publisher := s.publisher
	observer := s.observer
	queued := len(s.queue)
	s.mu.Unlock()

	if err != nil {
		log.Printf("Display: present failed: %v", err)
	}
	if snap != nil {
		publisher.publish(snap)
	}
	if observer != nil {
		observer.ObservePresent(queued, time.Since(start))
	}
}

// Clear blanks the canvas immediately, whatever the scheduler state. Mode
// switches must never show stale content, so this is the one write that is
// never deferred. Callers re-zero their own scroll offsets afterward.
func (s *FrameScheduler) Clear() {
	s.mu.Lock()
	draw.Draw(s.back, s.back.Bounds(), image.Black, image.Point{}, draw.Src)
	s.front, s.back = s.back, s.front
	err := s.driver.Swap(s.front)
	s.mu.Unlock()

	if err != nil {
		log.Printf("Display: clear failed: %v", err)
	}
}

// RequestUpdate runs fn immediately when no scroll is active, otherwise it
// queues fn for the next drain. Priority is ascending urgency (lower runs
// first); ties execute in enqueue order.
func (s *FrameScheduler) RequestUpdate(priority int, fn func()) Disposition {
	s.mu.Lock()
	if s.scrollingLocked() {
		s.seq++
		s.queue.push(deferredUpdate{priority: priority, seq: s.seq, fn: fn})
		s.stats.UpdatesDeferred++
		s.mu.Unlock()
		return Deferred
	}
	s.mu.Unlock()

	fn()

	s.mu.Lock()
	s.stats.UpdatesProcessed++
	s.mu.Unlock()
	return Executed
}

// DrainDeferred executes queued updates in priority order until the queue is
// empty or a scroll becomes active again, in which case the remainder stays
// queued for the next drain. It is idempotent and meant to be called from
// the owner's idle loop. A scheduler that never stops scrolling never drains
// its queue.
func (s *FrameScheduler) DrainDeferred() int {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		return 0
	}
	s.draining = true

	processed := 0
	for {
		if s.scrollingLocked() {
			break
		}
		u, ok := s.queue.pop()
		if !ok {
			break
		}
		s.mu.Unlock()
		u.fn()
		s.mu.Lock()
		s.stats.UpdatesProcessed++
		processed++
	}

	s.draining = false
	s.mu.Unlock()
	return processed
}

// PendingUpdates reports how many deferred updates are waiting.
func (s *FrameScheduler) PendingUpdates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Stats returns a read-only snapshot of the scheduler counters.
func (s *FrameScheduler) Stats() ScrollingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// ResetStats zeroes the counters. Queued updates are untouched.
func (s *FrameScheduler) ResetStats() {
	s.mu.Lock()
	s.stats = ScrollingStats{}
	s.mu.Unlock()
}

// Reset ends the scheduling session: queued updates are dropped, the scroll
// marker decays immediately and the counters start over. The canvas is left
// as-is; callers that want it blank follow up with Clear.
func (s *FrameScheduler) Reset() {
	s.mu.Lock()
	s.queue = nil
	s.seq = 0
	s.lastScroll = time.Time{}
	s.stats = ScrollingStats{}
	s.mu.Unlock()
}

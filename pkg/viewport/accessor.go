package viewport

import (
	"sync"
	"sync/atomic"
)

// Accessor provides the live viewport width and resize notifications.
type Accessor interface {
	// Width returns the current viewport width in pixels. ok is false when
	// no live viewport exists, e.g. during server-side rendering.
	Width() (width int, ok bool)

	// OnResize registers fn to be called with the new width after every
	// resize. The returned function removes the listener; calling it more
	// than once is safe.
	OnResize(fn func(width int)) (remove func())
}

// Simulated is an in-memory Accessor. Resizes are delivered synchronously
// to listeners in registration order. It is safe for concurrent use;
// listeners are called without the lock held, so they may add or remove
// listeners themselves.
type Simulated struct {
	mu        sync.Mutex
	width     int
	live      bool
	listeners []*listener
}

type listener struct {
	fn      func(int)
	removed atomic.Bool
}

// NewSimulated creates a live viewport of the given width.
func NewSimulated(width int) *Simulated {
	return &Simulated{width: width, live: true}
}

// NewDetached creates a viewport with no live width, as on a server.
func NewDetached() *Simulated {
	return &Simulated{}
}

// Width returns the current width and whether the viewport is live.
func (s *Simulated) Width() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.live
}

// OnResize registers fn and returns its remover.
func (s *Simulated) OnResize(fn func(int)) func() {
	l := &listener{fn: fn}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()

	return func() {
		if l.removed.Swap(true) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, other := range s.listeners {
			if other == l {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// Resize sets the width and notifies every listener. A detached viewport
// records the width without notifying.
func (s *Simulated) Resize(width int) {
	s.mu.Lock()
	s.width = width
	if !s.live {
		s.mu.Unlock()
		return
	}
	snapshot := append([]*listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range snapshot {
		if !l.removed.Load() {
			l.fn(width)
		}
	}
}

// ResizeBatch applies a sequence of resizes in one call, as a burst of
// browser resize events would.
func (s *Simulated) ResizeBatch(widths ...int) {
	for _, w := range widths {
		s.Resize(w)
	}
}

// Attach makes the viewport live at width and notifies listeners.
func (s *Simulated) Attach(width int) {
	s.mu.Lock()
	s.live = true
	s.mu.Unlock()
	s.Resize(width)
}

// Detach drops the live viewport. Width reports ok=false until Attach.
// Listeners are not notified: subscribers keep the breakpoint they last
// received while Tracker.Current reports base, and the next Attach delivers
// the breakpoint of its width if it differs.
func (s *Simulated) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
}

// Listeners returns the number of registered listeners.
func (s *Simulated) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

var _ Accessor = (*Simulated)(nil)

// Package viewport tracks the viewport width and the breakpoint it maps to,
// and notifies subscribers when that breakpoint changes.
//
// A [Tracker] reads widths from an [Accessor]. Without an accessor, or while
// the accessor has no live viewport, the current breakpoint is always Base so
// that server and client render the same first frame.
//
//	vp := viewport.NewSimulated(900)
//	tr := viewport.New(breakpoint.Default(), vp)
//
//	sub := tr.Subscribe(func(bp breakpoint.Name) {
//	    fmt.Println("now at", bp)
//	})
//	defer sub.Close()
//
//	vp.Resize(1600) // prints "now at 2xl"
//
// Every subscriber owns exactly one resize listener, removed by
// [Subscription.Close]. Updates are delivered synchronously on the goroutine
// that reported the resize, in subscription order, and only when the
// breakpoint actually changes.
package viewport

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/observability"
	"github.com/xui-kit/xui/pkg/responsive"
)

// Tracker maps viewport widths to breakpoints.
type Tracker struct {
	table  *breakpoint.Table
	acc    Accessor
	logger *log.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for breakpoint change debug output.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a tracker. A nil table uses [breakpoint.Default]; a nil
// accessor means no live viewport exists.
func New(table *breakpoint.Table, acc Accessor, opts ...Option) *Tracker {
	if table == nil {
		table = breakpoint.Default()
	}
	t := &Tracker{
		table:  table,
		acc:    acc,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Table returns the tracker's breakpoint table.
func (t *Tracker) Table() *breakpoint.Table { return t.table }

// Current computes the breakpoint for the live viewport width, or Base when
// there is no live viewport.
func (t *Tracker) Current() breakpoint.Name {
	if t.acc == nil {
		return t.table.Smallest()
	}
	w, ok := t.acc.Width()
	if !ok {
		return t.table.Smallest()
	}
	return t.table.Current(w)
}

// Subscription is a live subscription to breakpoint changes.
type Subscription struct {
	mu      sync.Mutex
	last    breakpoint.Name
	started bool
	closed  bool
	remove  func()
	stop    func() bool
}

// Current returns the breakpoint last delivered to the subscriber.
func (s *Subscription) Current() breakpoint.Name {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Close removes the subscriber's resize listener. It is safe to call more
// than once and from within the subscriber's own callback.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	remove, stop := s.remove, s.stop
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	if remove != nil {
		remove()
	}
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Subscribe calls fn with the current breakpoint immediately, then again
// each time a resize moves the viewport to a different breakpoint.
// Call Close on the returned subscription to stop observing.
func (t *Tracker) Subscribe(fn func(breakpoint.Name)) *Subscription {
	if fn == nil {
		fn = func(breakpoint.Name) {}
	}
	sub := &Subscription{}

	if t.acc != nil {
		sub.remove = t.acc.OnResize(func(width int) {
			t.deliver(sub, width, fn)
		})
	}

	// The width is read under the subscription lock, after the listener is
	// registered: a resize that deliver dropped because the subscription
	// had not started has already updated the width read here, and a later
	// one is compared against it. So the subscription always ends on the
	// breakpoint of the last resize. Under concurrent resizes the initial
	// call may reach fn after the first change; Subscription.Current is
	// authoritative.
	sub.mu.Lock()
	initial := t.Current()
	sub.last = initial
	sub.started = true
	sub.mu.Unlock()

	fn(initial)
	return sub
}

// SubscribeContext is like Subscribe but also closes the subscription when
// ctx is done.
func (t *Tracker) SubscribeContext(ctx context.Context, fn func(breakpoint.Name)) *Subscription {
	sub := t.Subscribe(fn)
	stop := context.AfterFunc(ctx, sub.Close)

	sub.mu.Lock()
	closed := sub.closed
	if !closed {
		sub.stop = stop
	}
	sub.mu.Unlock()
	if closed {
		stop()
	}
	return sub
}

// deliver recomputes the breakpoint for width and notifies the subscriber
// if it changed. The width carried by the event is used rather than
// re-reading the accessor, so a burst of resizes ends on the breakpoint of
// the last width.
func (t *Tracker) deliver(sub *Subscription, width int, fn func(breakpoint.Name)) {
	bp := t.table.Current(width)

	sub.mu.Lock()
	if sub.closed || !sub.started || bp == sub.last {
		sub.mu.Unlock()
		return
	}
	prev := sub.last
	sub.last = bp
	sub.mu.Unlock()

	t.logger.Debug("breakpoint changed", "from", prev, "to", bp, "width", width)
	observability.Viewport().OnBreakpointChange(string(prev), string(bp), width)
	fn(bp)
}

// Bind subscribes to the value of v resolved at the current breakpoint.
// fn receives the resolved value (and whether any entry applied) on
// subscribe and after every breakpoint change.
func Bind[T any](t *Tracker, v responsive.Value[T], fn func(T, bool)) *Subscription {
	return t.Subscribe(func(bp breakpoint.Name) {
		val, ok := responsive.Resolve(t.table, v, bp)
		fn(val, ok)
	})
}

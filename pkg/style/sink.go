package style

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// Sink is the style sheet generated rules are appended to.
//
// Available reports whether a live style sheet exists. Server-side renderers
// have none; the registry then skips injection and keeps the class name, so
// that a later [Registry.Hydrate] on the client completes it.
type Sink interface {
	Available() bool
	Append(rule string)
}

// =============================================================================
// Stylesheet
// =============================================================================

// Stylesheet is an in-memory, append-only style sheet.
// It is safe for concurrent use.
type Stylesheet struct {
	mu    sync.RWMutex
	rules []string
}

// NewStylesheet creates an empty style sheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{}
}

// Available always returns true.
func (s *Stylesheet) Available() bool { return true }

// Append adds a rule at the end of the sheet.
func (s *Stylesheet) Append(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = append(s.rules, rule)
}

// Rules returns a copy of the rules in insertion order.
func (s *Stylesheet) Rules() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules)
}

// Len returns the number of rules, i.e. the number of mutations so far.
func (s *Stylesheet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}

// String returns the sheet as CSS text, one rule per line.
func (s *Stylesheet) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.rules) == 0 {
		return ""
	}
	return strings.Join(s.rules, "\n") + "\n"
}

// WriteTo writes the sheet as CSS text to w.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// =============================================================================
// NullSink
// =============================================================================

// NullSink is a sink with no live style sheet, as in server-side rendering.
type NullSink struct{}

// Available always returns false.
func (NullSink) Available() bool { return false }

// Append does nothing.
func (NullSink) Append(string) {}

// =============================================================================
// WriterSink
// =============================================================================

// WriterSink streams rules to an io.Writer, one per line.
// After the first write error the sink reports itself unavailable.
type WriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	n   int
	err error
}

// NewWriterSink creates a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Available reports whether no write has failed yet.
func (s *WriterSink) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err == nil
}

// Append writes rule followed by a newline.
func (s *WriterSink) Append(rule string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	if _, err := fmt.Fprintln(s.w, rule); err != nil {
		s.err = err
		return
	}
	s.n++
}

// Written returns the number of rules written.
func (s *WriterSink) Written() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

// Err returns the first write error.
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// =============================================================================
// HydratingSink
// =============================================================================

// HydratingSink starts without a style sheet and forwards to one once
// attached, modelling a server-rendered page that hydrates on the client.
type HydratingSink struct {
	mu     sync.RWMutex
	target Sink
}

// NewHydratingSink creates a detached sink.
func NewHydratingSink() *HydratingSink {
	return &HydratingSink{}
}

// Attach mounts the target style sheet.
func (s *HydratingSink) Attach(target Sink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
}

// Available reports whether an available target is attached.
func (s *HydratingSink) Available() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target != nil && s.target.Available()
}

// Append forwards rule to the target, if any.
func (s *HydratingSink) Append(rule string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.target != nil {
		s.target.Append(rule)
	}
}

// Ensure sinks implement Sink.
var (
	_ Sink = (*Stylesheet)(nil)
	_ Sink = NullSink{}
	_ Sink = (*WriterSink)(nil)
	_ Sink = (*HydratingSink)(nil)
)

package style

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
	"github.com/xui-kit/xui/pkg/observability"
	"github.com/xui-kit/xui/pkg/responsive"
)

// Registry materializes responsive values as breakpoint-conditional CSS
// rules and writes each rule set to its sink at most once.
//
// A Registry is owned by the application root (one per page, document or
// process) rather than being a global. It is safe for concurrent use: the
// injected-record check, the append to the sink and the record insert happen
// under one lock.
type Registry struct {
	table  *breakpoint.Table
	sink   Sink
	prefix string
	logger *log.Logger

	mu       sync.Mutex
	injected map[string]struct{}
	pending  []ruleSet
	parked   map[string]struct{}
}

// ruleSet is a registration waiting for the sink to become available.
type ruleSet struct {
	key   string
	class string
	prop  string
	rules []Rule
}

// Option configures a Registry.
type Option func(*Registry)

// WithPrefix sets the prefix of derived class names (default "xui").
func WithPrefix(prefix string) Option {
	return func(r *Registry) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithLogger sets the logger used for debug output and warnings.
func WithLogger(l *log.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates a registry writing rules for table t to sink.
// A nil table uses [breakpoint.Default]; a nil sink behaves like [NullSink].
func NewRegistry(t *breakpoint.Table, sink Sink, opts ...Option) *Registry {
	if t == nil {
		t = breakpoint.Default()
	}
	if sink == nil {
		sink = NullSink{}
	}
	r := &Registry{
		table:    t,
		sink:     sink,
		prefix:   DefaultPrefix,
		logger:   log.New(io.Discard),
		injected: make(map[string]struct{}),
		parked:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Table returns the breakpoint table rules are generated for.
func (r *Registry) Table() *breakpoint.Table { return r.table }

// Sink returns the sink rules are written to.
func (r *Registry) Sink() Sink { return r.sink }

// Register formats every entry of v with format and registers the result
// under property. It returns the class name to apply to the element.
//
// When seed is empty the class name is derived from the content (see
// [ClassName]). An explicit seed must itself be a deterministic function of
// the value: two different values registered with the same seed and
// property share one rule set, and the first registration wins.
//
// A nil format uses fmt.Sprint.
func Register[T any](r *Registry, seed, property string, v responsive.Value[T], format func(T) string) string {
	if format == nil {
		format = func(x T) string { return fmt.Sprint(x) }
	}
	if unknown := v.Unknown(r.table); len(unknown) > 0 {
		r.logger.Debug("skipping unknown breakpoints", "property", property, "breakpoints", unknown)
	}
	entries := make(map[breakpoint.Name]string, v.Len())
	for _, e := range v.Entries(r.table) {
		entries[e.Breakpoint] = format(e.Value)
	}
	return r.RegisterFormatted(seed, property, entries)
}

// RegisterFormatted registers already formatted values. See [Register].
//
// Registration never fails. Invalid values are dropped with a warning;
// with an invalid property nothing is injected but the class name is still
// returned. If the sink is unavailable the rule set is parked until
// [Registry.Hydrate].
func (r *Registry) RegisterFormatted(seed, property string, entries map[breakpoint.Name]string) string {
	valid := make(map[breakpoint.Name]string, len(entries))
	for bp, value := range entries {
		if err := errors.ValidateValue(value); err != nil {
			r.logger.Warn("dropping invalid value", "property", property, "breakpoint", bp, "err", errors.UserMessage(err))
			continue
		}
		valid[bp] = value
	}

	class := sanitizeClass(seed)
	if class == "" {
		class = ClassName(r.prefix, r.table, property, valid)
	}

	if err := errors.ValidateProperty(property); err != nil {
		r.logger.Warn("not injecting rules", "class", class, "err", errors.UserMessage(err))
		return class
	}

	rules := Rules(r.table, class, property, valid)
	if len(rules) == 0 {
		return class
	}
	key := recordKey(class, property)

	r.mu.Lock()
	defer r.mu.Unlock()

	available := r.sink.Available()
	if available {
		// Parked sets were registered first and must win over this one.
		r.hydrateLocked()
	}

	if _, ok := r.injected[key]; ok {
		r.logger.Debug("rules already injected", "class", class, "property", property)
		observability.Registry().OnDuplicate(class, property)
		return class
	}

	if !available {
		if _, ok := r.parked[key]; !ok {
			r.parked[key] = struct{}{}
			r.pending = append(r.pending, ruleSet{key: key, class: class, prop: property, rules: rules})
			r.logger.Debug("no style sheet, deferring injection", "class", class, "property", property)
			observability.Registry().OnDeferred(class, property)
		}
		return class
	}

	r.inject(key, class, property, rules)
	return class
}

// inject writes rules and records key. Must be called with r.mu held.
func (r *Registry) inject(key, class, property string, rules []Rule) {
	for _, rule := range rules {
		r.sink.Append(rule.CSS())
	}
	r.injected[key] = struct{}{}
	r.logger.Debug("injected rules", "class", class, "property", property, "rules", len(rules))
	observability.Registry().OnInject(class, property, len(rules))
}

// Hydrate injects rule sets parked while the sink was unavailable, in their
// original registration order. It returns the number of rule sets injected,
// which is 0 if the sink is still unavailable.
//
// A registration that finds the sink available flushes parked sets before
// its own, so Hydrate may find nothing left to do.
func (r *Registry) Hydrate() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sink.Available() {
		return 0
	}
	return r.hydrateLocked()
}

// hydrateLocked flushes pending sets. Must be called with r.mu held and an
// available sink.
func (r *Registry) hydrateLocked() int {
	n := 0
	for _, set := range r.pending {
		delete(r.parked, set.key)
		if _, ok := r.injected[set.key]; ok {
			continue
		}
		r.inject(set.key, set.class, set.prop, set.rules)
		n++
	}
	r.pending = nil
	return n
}

// Injected reports whether rules for class and property have been written.
func (r *Registry) Injected(class, property string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.injected[recordKey(class, property)]
	return ok
}

// Len returns the number of injected rule sets.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.injected)
}

// Pending returns the number of rule sets waiting for [Registry.Hydrate].
func (r *Registry) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Reset forgets every injected and parked rule set. The sink is not
// touched. It exists for tests that reuse a registry across cases.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.injected = make(map[string]struct{})
	r.parked = make(map[string]struct{})
	r.pending = nil
}

func recordKey(class, property string) string {
	return class + "\x00" + property
}

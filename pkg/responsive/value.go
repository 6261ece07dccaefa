// Package responsive resolves per-breakpoint values using mobile-first
// override semantics.
//
// A [Value] is either a static literal or a sparse map from breakpoint name
// to value. The two shapes are built with distinct constructors, so a literal
// whose own fields happen to look like breakpoint names is never mistaken for
// a responsive map:
//
//	cols := responsive.Of(map[breakpoint.Name]int{
//	    breakpoint.Base: 1,
//	    breakpoint.SM:   2,
//	    breakpoint.LG:   4,
//	})
//	n, _ := responsive.ResolveWidth(breakpoint.Default(), cols, 900) // 2
//
//	gap := responsive.Static("1rem") // same value at every breakpoint
//
// # Resolution
//
// [Resolve] walks the table from the current breakpoint down to Base and
// returns the first defined entry. A value set at a smaller breakpoint stays
// in effect at every larger breakpoint until an entry at or below the current
// breakpoint overrides it. Entries above the current breakpoint are never
// consulted.
package responsive

import (
	"maps"

	"github.com/xui-kit/xui/pkg/breakpoint"
)

// Value is a value that is either the same at every breakpoint (static) or
// varies per breakpoint (responsive). The zero Value is a responsive value
// with no entries; it resolves to nothing.
type Value[T any] struct {
	static   T
	isStatic bool
	entries  map[breakpoint.Name]T
}

// Entry is one breakpoint override of a responsive value.
type Entry[T any] struct {
	Breakpoint breakpoint.Name
	Value      T
}

// Static returns a value that resolves to v at every breakpoint.
func Static[T any](v T) Value[T] {
	return Value[T]{static: v, isStatic: true}
}

// Of returns a responsive value from a sparse breakpoint map.
// The map is copied.
func Of[T any](m map[breakpoint.Name]T) Value[T] {
	return Value[T]{entries: maps.Clone(m)}
}

// Responsive returns a responsive value from a list of entries.
// Later entries for the same breakpoint replace earlier ones.
func Responsive[T any](entries ...Entry[T]) Value[T] {
	m := make(map[breakpoint.Name]T, len(entries))
	for _, e := range entries {
		m[e.Breakpoint] = e.Value
	}
	return Value[T]{entries: m}
}

// At is shorthand for building an [Entry].
func At[T any](bp breakpoint.Name, v T) Entry[T] {
	return Entry[T]{Breakpoint: bp, Value: v}
}

// IsResponsive reports whether v varies per breakpoint.
func (v Value[T]) IsResponsive() bool {
	return !v.isStatic
}

// Static returns the literal of a static value.
func (v Value[T]) Static() (T, bool) {
	return v.static, v.isStatic
}

// Get returns the entry set for exactly bp, without fallback.
// For a static value it returns the literal for every bp.
func (v Value[T]) Get(bp breakpoint.Name) (T, bool) {
	if v.isStatic {
		return v.static, true
	}
	val, ok := v.entries[bp]
	return val, ok
}

// Len returns the number of breakpoint entries (1 for a static value).
func (v Value[T]) Len() int {
	if v.isStatic {
		return 1
	}
	return len(v.entries)
}

// IsEmpty reports whether v can never resolve to anything.
func (v Value[T]) IsEmpty() bool {
	return v.Len() == 0
}

// Entries returns the defined entries in ascending table order.
// A static value yields a single Base entry. Names that are not part of the
// table are dropped.
func (v Value[T]) Entries(t *breakpoint.Table) []Entry[T] {
	if v.isStatic {
		return []Entry[T]{{Breakpoint: breakpoint.Base, Value: v.static}}
	}
	out := make([]Entry[T], 0, len(v.entries))
	for _, name := range t.Names() {
		if val, ok := v.entries[name]; ok {
			out = append(out, Entry[T]{Breakpoint: name, Value: val})
		}
	}
	return out
}

// Unknown returns entry names that are not in the table.
func (v Value[T]) Unknown(t *breakpoint.Table) []breakpoint.Name {
	var out []breakpoint.Name
	for name := range v.entries {
		if !t.Contains(name) {
			out = append(out, name)
		}
	}
	return out
}

// Map converts every entry of v with fn, preserving its shape.
func Map[T, U any](v Value[T], fn func(T) U) Value[U] {
	if v.isStatic {
		return Static(fn(v.static))
	}
	out := make(map[breakpoint.Name]U, len(v.entries))
	for name, val := range v.entries {
		out[name] = fn(val)
	}
	return Value[U]{entries: out}
}

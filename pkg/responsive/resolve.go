package responsive

import "github.com/xui-kit/xui/pkg/breakpoint"

// Resolve returns the value of v that applies at the current breakpoint.
//
// Static values are returned unchanged. For responsive values the table is
// walked from current down to Base and the first defined entry wins. If no
// entry at or below current is defined, ok is false.
//
// An unknown current name resolves as Base.
func Resolve[T any](t *breakpoint.Table, v Value[T], current breakpoint.Name) (T, bool) {
	if v.isStatic {
		return v.static, true
	}

	idx, known := t.Index(current)
	if !known {
		idx = 0
	}
	for i := idx; i >= 0; i-- {
		if val, ok := v.entries[t.At(i).Name]; ok {
			return val, true
		}
	}

	var zero T
	return zero, false
}

// ResolveWidth resolves v at the breakpoint current for a viewport width.
func ResolveWidth[T any](t *breakpoint.Table, v Value[T], width int) (T, bool) {
	return Resolve(t, v, t.Current(width))
}

// ResolveOr is like [Resolve] but returns def when nothing matches.
func ResolveOr[T any](t *breakpoint.Table, v Value[T], current breakpoint.Name, def T) T {
	if val, ok := Resolve(t, v, current); ok {
		return val
	}
	return def
}

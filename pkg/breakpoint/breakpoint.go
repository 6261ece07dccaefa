// Package breakpoint defines the ordered table of named viewport-width
// thresholds used by the responsive resolver and the style registry.
//
// A [Table] is built once at startup and never mutated afterwards. It holds
// an implicit zeroth breakpoint, [Base], with no minimum width, followed by
// named breakpoints in strictly increasing minimum-width order. Styles are
// mobile-first: a breakpoint applies from its threshold upward.
//
// The documented defaults match Tailwind CSS:
//
//	sm  ≥ 640px
//	md  ≥ 768px
//	lg  ≥ 1024px
//	xl  ≥ 1280px
//	2xl ≥ 1536px
//
// Usage:
//
//	t := breakpoint.Default()
//	t.Current(900) // "md"
//	t.Current(320) // "base"
package breakpoint

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/xui-kit/xui/pkg/errors"
)

// Name identifies a breakpoint.
type Name string

// Predeclared breakpoint names.
const (
	Base Name = "base"
	SM   Name = "sm"
	MD   Name = "md"
	LG   Name = "lg"
	XL   Name = "xl"
	XXL  Name = "2xl"
)

// String returns the breakpoint name.
func (n Name) String() string { return string(n) }

// Breakpoint is a named minimum viewport width in pixels.
type Breakpoint struct {
	Name     Name
	MinWidth int
}

// Table is an immutable, ordered breakpoint table.
// The zero value is not usable; construct tables with [New] or [Default].
type Table struct {
	points []Breakpoint // index 0 is always Base
	index  map[Name]int
}

// New builds a table from the given breakpoints, which must be listed in
// strictly increasing MinWidth order. The implicit Base breakpoint is
// prepended and must not be passed explicitly.
//
// Validation happens here, at configuration time, so that per-call
// resolution never needs to check the table again.
func New(points ...Breakpoint) (*Table, error) {
	if len(points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "table needs at least one breakpoint")
	}

	t := &Table{
		points: make([]Breakpoint, 0, len(points)+1),
		index:  make(map[Name]int, len(points)+1),
	}
	t.points = append(t.points, Breakpoint{Name: Base})
	t.index[Base] = 0

	prev := 0
	for _, p := range points {
		switch {
		case p.Name == "":
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "breakpoint name cannot be empty")
		case p.Name == Base:
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "%q is implicit and cannot be redefined", Base)
		case strings.ContainsAny(string(p.Name), " \t\n:{}"):
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "invalid breakpoint name: %q", p.Name)
		case p.MinWidth <= 0:
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "breakpoint %q: min width must be positive, got %d", p.Name, p.MinWidth)
		case p.MinWidth <= prev:
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "breakpoint %q: min width %d must be greater than %d", p.Name, p.MinWidth, prev)
		}
		if _, dup := t.index[p.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "duplicate breakpoint name: %q", p.Name)
		}
		t.index[p.Name] = len(t.points)
		t.points = append(t.points, p)
		prev = p.MinWidth
	}
	return t, nil
}

// MustNew is like [New] but panics on an invalid table.
// It is meant for package-level variables and tests.
func MustNew(points ...Breakpoint) *Table {
	t, err := New(points...)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTable = MustNew(
	Breakpoint{Name: SM, MinWidth: 640},
	Breakpoint{Name: MD, MinWidth: 768},
	Breakpoint{Name: LG, MinWidth: 1024},
	Breakpoint{Name: XL, MinWidth: 1280},
	Breakpoint{Name: XXL, MinWidth: 1536},
)

// Default returns the standard table (sm=640, md=768, lg=1024, xl=1280, 2xl=1536).
func Default() *Table {
	return defaultTable
}

// FromMap builds a table from a name→threshold map, as found in
// configuration files. Entries are ordered by threshold; a "base" entry is
// accepted only with a threshold of 0 and is otherwise ignored.
func FromMap(m map[string]int) (*Table, error) {
	points := make([]Breakpoint, 0, len(m))
	for name, w := range m {
		if Name(name) == Base {
			if w != 0 {
				return nil, errors.New(errors.ErrCodeInvalidBreakpoints, "%q must have min width 0, got %d", Base, w)
			}
			continue
		}
		points = append(points, Breakpoint{Name: Name(name), MinWidth: w})
	}
	slices.SortFunc(points, func(a, b Breakpoint) int {
		if c := cmp.Compare(a.MinWidth, b.MinWidth); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return New(points...)
}

// Current returns the breakpoint active at the given viewport width: the
// largest breakpoint whose MinWidth is ≤ width, or Base if none qualifies.
func (t *Table) Current(width int) Name {
	for i := len(t.points) - 1; i > 0; i-- {
		if width >= t.points[i].MinWidth {
			return t.points[i].Name
		}
	}
	return Base
}

// Index returns the position of name in the table (Base is 0).
func (t *Table) Index(name Name) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Contains reports whether name is Base or a breakpoint of the table.
func (t *Table) Contains(name Name) bool {
	_, ok := t.index[name]
	return ok
}

// MinWidth returns the threshold of name. Base has threshold 0.
func (t *Table) MinWidth(name Name) (int, bool) {
	i, ok := t.index[name]
	if !ok {
		return 0, false
	}
	return t.points[i].MinWidth, true
}

// At returns the breakpoint at index i.
func (t *Table) At(i int) Breakpoint {
	return t.points[i]
}

// Len returns the number of breakpoints including Base.
func (t *Table) Len() int {
	return len(t.points)
}

// Names returns all breakpoint names in ascending order, Base first.
func (t *Table) Names() []Name {
	names := make([]Name, len(t.points))
	for i, p := range t.points {
		names[i] = p.Name
	}
	return names
}

// Points returns a copy of the breakpoints in ascending order, Base first.
func (t *Table) Points() []Breakpoint {
	return slices.Clone(t.points)
}

// Smallest returns the breakpoint used when no viewport is available.
func (t *Table) Smallest() Name {
	return Base
}

// Fingerprint returns a stable textual form of the table,
// e.g. "base:0,sm:640,md:768". Content hashes include it so that the same
// value map under different tables never shares a class name.
func (t *Table) Fingerprint() string {
	var b strings.Builder
	for i, p := range t.points {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", p.Name, p.MinWidth)
	}
	return b.String()
}

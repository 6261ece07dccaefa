// Package grid builds class lists for responsive CSS grid containers and
// columns on top of a style registry.
//
//	reg := style.NewRegistry(breakpoint.Default(), sheet)
//
//	g := grid.Grid{
//	    Columns: responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.SM: 2, breakpoint.LG: 4}),
//	    Gap:     responsive.Static("1rem"),
//	}
//	class := g.Classes(reg) // "xui-grid xui-… xui-…"
//
//	c := grid.Col{Span: responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.MD: 2})}
//	class = c.Classes(reg)
package grid

import (
	"strconv"
	"strings"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/responsive"
	"github.com/xui-kit/xui/pkg/style"
)

// Static class names carried by every grid container and column.
const (
	GridClass = "xui-grid"
	ColClass  = "xui-col"
)

// Grid describes a grid container. Unset fields emit no rules.
type Grid struct {
	Columns responsive.Value[int]    // equal-width column count
	Rows    responsive.Value[int]    // equal-height row count
	Gap     responsive.Value[string] // gap between tracks, e.g. "1rem"
	Align   responsive.Value[string] // align-items
}

// Col describes a grid item.
type Col struct {
	Span  responsive.Value[int] // number of columns spanned
	Start responsive.Value[int] // starting column line
	Order responsive.Value[int] // visual order
}

// Classes registers the container's rules and returns its class list.
func (g Grid) Classes(r *style.Registry) string {
	style.Register(r, GridClass, "display", responsive.Static("grid"), style.Raw)
	classes := []string{GridClass}
	classes = add(classes, r, "grid-template-columns", g.Columns, style.Columns)
	classes = add(classes, r, "grid-template-rows", g.Rows, style.Columns)
	classes = add(classes, r, "gap", g.Gap, style.Raw)
	classes = add(classes, r, "align-items", g.Align, style.Raw)
	return strings.Join(classes, " ")
}

// Classes registers the column's rules and returns its class list.
func (c Col) Classes(r *style.Registry) string {
	style.Register(r, ColClass, "min-width", responsive.Static("0"), style.Raw)
	classes := []string{ColClass}
	classes = add(classes, r, "grid-column", c.Span, style.Span)
	classes = add(classes, r, "grid-column-start", c.Start, strconv.Itoa)
	classes = add(classes, r, "order", c.Order, strconv.Itoa)
	return strings.Join(classes, " ")
}

// ColumnsAt resolves the column count at a viewport width, for layout
// decisions made in code rather than CSS. It returns 1 when no entry
// applies.
func ColumnsAt(t *breakpoint.Table, columns responsive.Value[int], width int) int {
	n, ok := responsive.ResolveWidth(t, columns, width)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func add[T any](classes []string, r *style.Registry, property string, v responsive.Value[T], format func(T) string) []string {
	if v.IsEmpty() {
		return classes
	}
	return append(classes, style.Register(r, "", property, v, format))
}


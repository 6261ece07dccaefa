package grid

import (
	"strings"
	"testing"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/responsive"
	"github.com/xui-kit/xui/pkg/style"
)

func TestGridClasses(t *testing.T) {
	sheet := style.NewStylesheet()
	reg := style.NewRegistry(breakpoint.Default(), sheet)

	g := Grid{
		Columns: responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.SM: 2, breakpoint.LG: 4}),
		Gap:     responsive.Static("1rem"),
	}
	classes := strings.Fields(g.Classes(reg))

	if len(classes) != 3 {
		t.Fatalf("Classes() = %v, want 3 classes", classes)
	}
	if classes[0] != GridClass {
		t.Errorf("first class = %q, want %q", classes[0], GridClass)
	}

	css := sheet.String()
	for _, want := range []string{
		".xui-grid { display: grid }",
		"." + classes[1] + " { grid-template-columns: repeat(1, minmax(0, 1fr)) }",
		"@media (min-width: 640px) { ." + classes[1] + " { grid-template-columns: repeat(2, minmax(0, 1fr)) } }",
		"@media (min-width: 1024px) { ." + classes[1] + " { grid-template-columns: repeat(4, minmax(0, 1fr)) } }",
		"." + classes[2] + " { gap: 1rem }",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q\n%s", want, css)
		}
	}
}

func TestGridClassesIdempotent(t *testing.T) {
	sheet := style.NewStylesheet()
	reg := style.NewRegistry(breakpoint.Default(), sheet)

	g := Grid{Columns: responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.MD: 3})}
	first := g.Classes(reg)
	n := sheet.Len()
	second := g.Classes(reg)

	if first != second {
		t.Errorf("Classes() changed between calls: %q != %q", first, second)
	}
	if sheet.Len() != n {
		t.Errorf("second render appended rules: %d, want %d", sheet.Len(), n)
	}
}

func TestEmptyGridHasOnlyBaseClass(t *testing.T) {
	reg := style.NewRegistry(breakpoint.Default(), style.NewStylesheet())
	if got := (Grid{}).Classes(reg); got != GridClass {
		t.Errorf("Classes() = %q, want %q", got, GridClass)
	}
}

func TestColClasses(t *testing.T) {
	sheet := style.NewStylesheet()
	reg := style.NewRegistry(breakpoint.Default(), sheet)

	c := Col{
		Span:  responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.MD: 2}),
		Order: responsive.Static(3),
	}
	classes := strings.Fields(c.Classes(reg))
	if len(classes) != 3 || classes[0] != ColClass {
		t.Fatalf("Classes() = %v", classes)
	}

	css := sheet.String()
	for _, want := range []string{
		".xui-col { min-width: 0 }",
		"." + classes[1] + " { grid-column: span 1 / span 1 }",
		"@media (min-width: 768px) { ." + classes[1] + " { grid-column: span 2 / span 2 } }",
		"." + classes[2] + " { order: 3 }",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("stylesheet missing %q\n%s", want, css)
		}
	}
}

func TestServerRenderDefersGridRules(t *testing.T) {
	sink := style.NewHydratingSink()
	reg := style.NewRegistry(breakpoint.Default(), sink)

	g := Grid{Columns: responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.LG: 2})}
	server := g.Classes(reg)

	sheet := style.NewStylesheet()
	sink.Attach(sheet)
	if n := reg.Hydrate(); n != 2 {
		t.Errorf("Hydrate() = %d, want 2 (display and columns)", n)
	}
	if client := g.Classes(reg); client != server {
		t.Errorf("client classes %q differ from server classes %q", client, server)
	}
	if sheet.Len() != 3 {
		t.Errorf("sheet has %d rules, want 3\n%s", sheet.Len(), sheet.String())
	}
}

func TestColumnsAt(t *testing.T) {
	table := breakpoint.Default()
	columns := responsive.Of(map[breakpoint.Name]int{breakpoint.Base: 1, breakpoint.SM: 2, breakpoint.LG: 4})

	tests := []struct {
		width int
		want  int
	}{
		{0, 1},
		{639, 1},
		{640, 2},
		{900, 2},
		{1024, 4},
		{4000, 4},
	}

	for _, tt := range tests {
		if got := ColumnsAt(table, columns, tt.width); got != tt.want {
			t.Errorf("ColumnsAt(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}

	sparse := responsive.Of(map[breakpoint.Name]int{breakpoint.LG: 3})
	if got := ColumnsAt(table, sparse, 500); got != 1 {
		t.Errorf("ColumnsAt with no applicable entry = %d, want 1", got)
	}
}

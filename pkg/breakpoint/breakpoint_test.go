package breakpoint

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xui-kit/xui/pkg/errors"
)

func TestDefault(t *testing.T) {
	tbl := Default()

	want := []Name{Base, SM, MD, LG, XL, XXL}
	if diff := cmp.Diff(want, tbl.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	widths := map[Name]int{Base: 0, SM: 640, MD: 768, LG: 1024, XL: 1280, XXL: 1536}
	for name, w := range widths {
		got, ok := tbl.MinWidth(name)
		if !ok || got != w {
			t.Errorf("MinWidth(%s) = %d, %v, want %d, true", name, got, ok, w)
		}
	}

	if got := tbl.Fingerprint(); got != "base:0,sm:640,md:768,lg:1024,xl:1280,2xl:1536" {
		t.Errorf("Fingerprint() = %q", got)
	}
}

func TestCurrent(t *testing.T) {
	tbl := Default()

	tests := []struct {
		width int
		want  Name
	}{
		{-1, Base},
		{0, Base},
		{320, Base},
		{639, Base},
		{640, SM},
		{767, SM},
		{768, MD},
		{900, MD},
		{1023, MD},
		{1024, LG},
		{1279, LG},
		{1280, XL},
		{1535, XL},
		{1536, XXL},
		{1600, XXL},
		{10000, XXL},
	}

	for _, tt := range tests {
		if got := tbl.Current(tt.width); got != tt.want {
			t.Errorf("Current(%d) = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		points []Breakpoint
	}{
		{"empty", nil},
		{"empty name", []Breakpoint{{Name: "", MinWidth: 10}}},
		{"explicit base", []Breakpoint{{Name: Base, MinWidth: 10}}},
		{"zero width", []Breakpoint{{Name: SM, MinWidth: 0}}},
		{"negative width", []Breakpoint{{Name: SM, MinWidth: -5}}},
		{"equal widths", []Breakpoint{{Name: SM, MinWidth: 640}, {Name: MD, MinWidth: 640}}},
		{"decreasing", []Breakpoint{{Name: MD, MinWidth: 768}, {Name: SM, MinWidth: 640}}},
		{"duplicate name", []Breakpoint{{Name: SM, MinWidth: 640}, {Name: SM, MinWidth: 700}}},
		{"name with space", []Breakpoint{{Name: "s m", MinWidth: 640}}},
		{"name with colon", []Breakpoint{{Name: "sm:", MinWidth: 640}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.points...)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidBreakpoints) {
				t.Errorf("New() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidBreakpoints)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew() should panic on invalid table")
		}
	}()
	MustNew()
}

func TestFromMap(t *testing.T) {
	tbl, err := FromMap(map[string]int{"tablet": 700, "phone": 400, "desktop": 1200, "base": 0})
	if err != nil {
		t.Fatalf("FromMap() error: %v", err)
	}

	want := []Name{Base, "phone", "tablet", "desktop"}
	if diff := cmp.Diff(want, tbl.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if got := tbl.Current(800); got != "tablet" {
		t.Errorf("Current(800) = %s, want tablet", got)
	}

	if _, err := FromMap(map[string]int{"base": 10, "sm": 640}); err == nil {
		t.Error("FromMap() with non-zero base should fail")
	}
	if _, err := FromMap(map[string]int{"a": 500, "b": 500}); err == nil {
		t.Error("FromMap() with equal thresholds should fail")
	}
	if _, err := FromMap(nil); err == nil {
		t.Error("FromMap(nil) should fail")
	}
}

func TestPointsIsCopy(t *testing.T) {
	tbl := Default()
	pts := tbl.Points()
	pts[1].MinWidth = 1

	if got, _ := tbl.MinWidth(SM); got != 640 {
		t.Errorf("mutating Points() changed the table: sm = %d", got)
	}
}

func TestIndex(t *testing.T) {
	tbl := Default()

	for i, name := range tbl.Names() {
		got, ok := tbl.Index(name)
		if !ok || got != i {
			t.Errorf("Index(%s) = %d, %v, want %d, true", name, got, ok, i)
		}
		if tbl.At(i).Name != name {
			t.Errorf("At(%d).Name = %s, want %s", i, tbl.At(i).Name, name)
		}
	}
	if _, ok := tbl.Index("3xl"); ok {
		t.Error("Index(3xl) should not be found")
	}
	if tbl.Contains("3xl") {
		t.Error("Contains(3xl) = true, want false")
	}
	if tbl.Len() != 6 {
		t.Errorf("Len() = %d, want 6", tbl.Len())
	}
}

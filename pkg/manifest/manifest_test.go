package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
	"github.com/xui-kit/xui/pkg/style"
)

const sampleTOML = `
prefix = "app"

[breakpoints]
sm = 600
md = 900

[[style]]
name     = "cards"
property = "grid-template-columns"
format   = "columns"
values   = { base = 1, sm = 2, md = 3 }

[[style]]
name     = "gutter"
property = "gap"
value    = "1rem"

[[style]]
name     = "hero"
class    = "hero-pad"
property = "padding"
format   = "rem"
values   = { md = 2.5 }
`

const sampleYAML = `
prefix: app
breakpoints:
  sm: 600
  md: 900
styles:
  - name: cards
    property: grid-template-columns
    format: columns
    values: {base: 1, sm: 2, md: 3}
  - name: gutter
    property: gap
    value: 1rem
  - name: hero
    class: hero-pad
    property: padding
    format: rem
    values:
      md: 2.5
`

func TestParseFormats(t *testing.T) {
	want := []Declaration{
		{Name: "cards", Property: "grid-template-columns", Format: "columns", Values: map[string]Scalar{"base": "1", "sm": "2", "md": "3"}},
		{Name: "gutter", Property: "gap", Value: "1rem"},
		{Name: "hero", Class: "hero-pad", Property: "padding", Format: "rem", Values: map[string]Scalar{"md": "2.5"}},
	}

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", sampleTOML, FormatTOML},
		{"yaml", sampleYAML, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if m.Prefix != "app" {
				t.Errorf("Prefix = %q, want app", m.Prefix)
			}
			if diff := cmp.Diff(want, m.Styles); diff != "" {
				t.Errorf("styles mismatch (-want +got):\n%s", diff)
			}

			table, err := m.Table()
			if err != nil {
				t.Fatalf("Table() error: %v", err)
			}
			if got := table.Fingerprint(); got != "base:0,sm:600,md:900" {
				t.Errorf("Fingerprint() = %q", got)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
		msg  string
	}{
		{
			name: "unknown breakpoint",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\nvalues = { huge = \"1px\" }\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  `unknown breakpoint "huge"`,
		},
		{
			name: "duplicate name",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\nvalue = \"1px\"\n[[style]]\nname = \"a\"\nproperty = \"gap\"\nvalue = \"2px\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "duplicate name",
		},
		{
			name: "missing name",
			data: "[[style]]\nproperty = \"gap\"\nvalue = \"1px\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "name is required",
		},
		{
			name: "bad property",
			data: "[[style]]\nname = \"a\"\nproperty = \"Gap!\"\nvalue = \"1px\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "invalid CSS property name",
		},
		{
			name: "value and values",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\nvalue = \"1px\"\nvalues = { sm = \"2px\" }\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "not both",
		},
		{
			name: "no value",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "no value",
		},
		{
			name: "unknown format",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\nformat = \"em\"\nvalue = \"1\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  `unknown format "em"`,
		},
		{
			name: "injection attempt",
			data: "[[style]]\nname = \"a\"\nproperty = \"gap\"\nvalue = \"1px } body { display: none\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "invalid sequence",
		},
		{
			name: "bad prefix",
			data: "prefix = \"9lives\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "invalid class name",
		},
		{
			name: "duplicate thresholds",
			data: "[breakpoints]\nsm = 600\nmd = 600\n",
			code: errors.ErrCodeInvalidBreakpoints,
		},
		{
			name: "unknown key",
			data: "colour = \"red\"\n",
			code: errors.ErrCodeInvalidManifest,
			msg:  "unknown key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatTOML)
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
			if tt.msg != "" && !strings.Contains(errors.UserMessage(err), tt.msg) {
				t.Errorf("message %q does not contain %q", errors.UserMessage(err), tt.msg)
			}
		})
	}
}

func TestParseYAMLUnknownField(t *testing.T) {
	_, err := Parse([]byte("styles:\n  - name: a\n    property: gap\n    colour: red\n"), FormatYAML)
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("error = %v, want INVALID_MANIFEST", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		m, err := Parse(nil, format)
		if err != nil {
			t.Fatalf("Parse(%s) empty error: %v", format, err)
		}
		table, _ := m.Table()
		if table != breakpoint.Default() {
			t.Errorf("%s: empty manifest should use the default table", format)
		}
	}

	if _, err := Parse(nil, "ini"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestApply(t *testing.T) {
	m, err := Parse([]byte(sampleTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	sheet := style.NewStylesheet()
	reg, err := m.Registry(sheet)
	if err != nil {
		t.Fatal(err)
	}
	applied := m.Apply(reg)

	if len(applied) != 3 {
		t.Fatalf("Apply() returned %d entries, want 3", len(applied))
	}
	for _, a := range applied[:2] {
		if !strings.HasPrefix(a.Class, "app-") {
			t.Errorf("%s: class %q should use the manifest prefix", a.Name, a.Class)
		}
	}
	if applied[2].Class != "hero-pad" {
		t.Errorf("explicit class = %q, want hero-pad", applied[2].Class)
	}

	cards := applied[0].Class
	want := []string{
		"." + cards + " { grid-template-columns: repeat(1, minmax(0, 1fr)) }",
		"@media (min-width: 600px) { ." + cards + " { grid-template-columns: repeat(2, minmax(0, 1fr)) } }",
		"@media (min-width: 900px) { ." + cards + " { grid-template-columns: repeat(3, minmax(0, 1fr)) } }",
		"." + applied[1].Class + " { gap: 1rem }",
		"@media (min-width: 900px) { .hero-pad { padding: 2.5rem } }",
	}
	if diff := cmp.Diff(want, sheet.Rules()); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}

	// Applying again is a no-op.
	again := m.Apply(reg)
	if diff := cmp.Diff(applied, again); diff != "" {
		t.Errorf("second Apply() mismatch (-want +got):\n%s", diff)
	}
	if sheet.Len() != len(want) {
		t.Errorf("second Apply() appended rules: %d", sheet.Len())
	}
}

func TestResolveAt(t *testing.T) {
	m, err := Parse([]byte(sampleYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	table, _ := m.Table()

	got := m.ResolveAt(table, 700)
	want := []Resolved{
		{Name: "cards", Property: "grid-template-columns", Breakpoint: breakpoint.SM, Value: "repeat(2, minmax(0, 1fr))", OK: true},
		{Name: "gutter", Property: "gap", Breakpoint: breakpoint.SM, Value: "1rem", OK: true},
		{Name: "hero", Property: "padding", Breakpoint: breakpoint.SM},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ResolveAt(700) mismatch (-want +got):\n%s", diff)
	}

	got = m.ResolveAt(table, 1200)
	if got[0].Value != "repeat(3, minmax(0, 1fr))" || got[2].Value != "2.5rem" {
		t.Errorf("ResolveAt(1200) = %+v", got)
	}
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "styles.toml", sampleTOML)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Path != path {
		t.Errorf("Path = %q, want %q", m.Path, path)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
	if _, err := Load(writeFile(t, dir, "styles.json", "{}")); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("bad extension error = %v, want INVALID_MANIFEST", err)
	}

	bad := writeFile(t, dir, "bad.yml", "styles:\n  - property: gap\n    value: 1px\n")
	_, err = Load(bad)
	if !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Fatalf("invalid manifest error = %v", err)
	}
	if !strings.HasPrefix(errors.UserMessage(err), bad+": ") {
		t.Errorf("message %q should start with the path", errors.UserMessage(err))
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.toml", "b.yaml", "c.yml", "d.toml"} {
		data := sampleTOML
		if !strings.HasSuffix(name, ".toml") {
			data = sampleYAML
		}
		paths = append(paths, writeFile(t, dir, name, data))
	}

	ms, err := LoadAll(context.Background(), paths...)
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	for i, m := range ms {
		if m.Path != paths[i] {
			t.Errorf("result %d has path %q, want %q", i, m.Path, paths[i])
		}
	}

	_, err = LoadAll(context.Background(), paths[0], filepath.Join(dir, "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadAll() with missing file error = %v", err)
	}
}

package manifest

import (
	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
	"github.com/xui-kit/xui/pkg/responsive"
	"github.com/xui-kit/xui/pkg/style"
)

// Applied is the class registered for one declaration.
type Applied struct {
	Name     string
	Property string
	Class    string
}

// Resolved is one declaration's value at a viewport width.
type Resolved struct {
	Name       string          `json:"name"`
	Property   string          `json:"property"`
	Breakpoint breakpoint.Name `json:"breakpoint"`
	Value      string          `json:"value,omitempty"`
	OK         bool            `json:"ok"` // false when no entry applies
}

// Validate checks the breakpoint table, the prefix and every declaration.
func (m *Manifest) Validate() error {
	t, err := m.Table()
	if err != nil {
		return err
	}
	if m.Prefix != "" {
		if err := errors.ValidateClass(m.Prefix); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "prefix")
		}
	}

	seen := make(map[string]bool, len(m.Styles))
	for i, d := range m.Styles {
		if d.Name == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "style #%d: name is required", i+1)
		}
		if seen[d.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "style %q: duplicate name", d.Name)
		}
		seen[d.Name] = true

		if err := d.validate(t); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidManifest, err, "style %q", d.Name)
		}
	}
	return nil
}

func (d Declaration) validate(t *breakpoint.Table) error {
	if err := errors.ValidateProperty(d.Property); err != nil {
		return err
	}
	if d.Class != "" {
		if err := errors.ValidateClass(d.Class); err != nil {
			return err
		}
	}
	format, ok := style.Formatter(d.Format)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want one of %v)", d.Format, style.FormatterNames())
	}

	switch {
	case d.Value != "" && d.Responsive():
		return errors.New(errors.ErrCodeInvalidInput, "set either value or values, not both")
	case d.Value == "" && !d.Responsive():
		return errors.New(errors.ErrCodeInvalidInput, "no value")
	case d.Value != "":
		return errors.ValidateValue(format(string(d.Value)))
	}

	for name, v := range d.Values {
		if !t.Contains(breakpoint.Name(name)) {
			return errors.New(errors.ErrCodeInvalidBreakpoints, "unknown breakpoint %q", name)
		}
		if err := errors.ValidateValue(format(string(v))); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "breakpoint %q", name)
		}
	}
	return nil
}

// Table returns the manifest's breakpoint table, or the default table when
// none is declared.
func (m *Manifest) Table() (*breakpoint.Table, error) {
	if len(m.Breakpoints) == 0 {
		return breakpoint.Default(), nil
	}
	return breakpoint.FromMap(m.Breakpoints)
}

// ResponsiveValue returns the declaration as an unformatted responsive value.
func (d Declaration) ResponsiveValue() responsive.Value[string] {
	if !d.Responsive() {
		return responsive.Static(string(d.Value))
	}
	entries := make(map[breakpoint.Name]string, len(d.Values))
	for name, v := range d.Values {
		entries[breakpoint.Name(name)] = string(v)
	}
	return responsive.Of(entries)
}

// formatter returns the declaration's named formatter. Declarations are
// validated on parse, so an unknown name only occurs for manifests built in
// code; those fall back to raw values.
func (d Declaration) formatter() func(string) string {
	if f, ok := style.Formatter(d.Format); ok {
		return f
	}
	return style.Raw
}

// Registry creates a registry for the manifest's table and prefix.
func (m *Manifest) Registry(sink style.Sink, opts ...style.Option) (*style.Registry, error) {
	t, err := m.Table()
	if err != nil {
		return nil, err
	}
	if m.Prefix != "" {
		opts = append(opts[:len(opts):len(opts)], style.WithPrefix(m.Prefix))
	}
	return style.NewRegistry(t, sink, opts...), nil
}

// Apply registers every declaration with r in file order.
func (m *Manifest) Apply(r *style.Registry) []Applied {
	out := make([]Applied, 0, len(m.Styles))
	for _, d := range m.Styles {
		class := style.Register(r, d.Class, d.Property, d.ResponsiveValue(), d.formatter())
		out = append(out, Applied{Name: d.Name, Property: d.Property, Class: class})
	}
	return out
}

// ResolveAt resolves every declaration at a viewport width using table t.
func (m *Manifest) ResolveAt(t *breakpoint.Table, width int) []Resolved {
	bp := t.Current(width)
	out := make([]Resolved, 0, len(m.Styles))
	for _, d := range m.Styles {
		v, ok := responsive.Resolve(t, d.ResponsiveValue(), bp)
		res := Resolved{Name: d.Name, Property: d.Property, Breakpoint: bp, OK: ok}
		if ok {
			res.Value = d.formatter()(v)
		}
		out = append(out, res)
	}
	return out
}

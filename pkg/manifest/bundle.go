package manifest

import (
	"fmt"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
	"github.com/xui-kit/xui/pkg/style"
)

// Bundle is a set of manifests compiled into a single stylesheet.
type Bundle struct {
	Table     *breakpoint.Table
	Sheet     *style.Stylesheet
	Manifests []*Manifest
	Applied   []Applied
}

// Compile applies every manifest, in order, to one stylesheet. All
// manifests must declare the same breakpoint table; each keeps its own class
// prefix. Declarations repeated across manifests are injected once.
func Compile(ms []*Manifest, opts ...style.Option) (*Bundle, error) {
	b := &Bundle{
		Table:     breakpoint.Default(),
		Sheet:     style.NewStylesheet(),
		Manifests: ms,
	}

	// Manifests with the same prefix share a registry, so identical
	// declarations in different files do not duplicate rules.
	regs := make(map[string]*style.Registry)
	for i, m := range ms {
		t, err := m.Table()
		if err != nil {
			return nil, err
		}
		if i == 0 {
			b.Table = t
		} else if t.Fingerprint() != b.Table.Fingerprint() {
			return nil, errors.New(errors.ErrCodeInvalidBreakpoints,
				"%s: breakpoints %s differ from %s", name(m, i), t.Fingerprint(), b.Table.Fingerprint())
		}

		reg, ok := regs[m.Prefix]
		if !ok {
			reg = style.NewRegistry(b.Table, b.Sheet, append(opts[:len(opts):len(opts)], style.WithPrefix(m.Prefix))...)
			regs[m.Prefix] = reg
		}
		b.Applied = append(b.Applied, m.Apply(reg)...)
	}
	return b, nil
}

// ResolveAt resolves every declaration of every manifest at width.
func (b *Bundle) ResolveAt(width int) []Resolved {
	var out []Resolved
	for _, m := range b.Manifests {
		out = append(out, m.ResolveAt(b.Table, width)...)
	}
	return out
}

// CSS returns the compiled stylesheet text.
func (b *Bundle) CSS() string { return b.Sheet.String() }

func name(m *Manifest, i int) string {
	if m.Path != "" {
		return m.Path
	}
	return fmt.Sprintf("manifest #%d", i+1)
}

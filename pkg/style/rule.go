package style

import (
	"fmt"

	"github.com/xui-kit/xui/pkg/breakpoint"
)

// Rule is one breakpoint-conditional CSS declaration for a class.
type Rule struct {
	Breakpoint breakpoint.Name
	MinWidth   int // 0 for Base
	Class      string
	Property   string
	Value      string
}

// Conditional reports whether the rule is gated by a min-width media query.
func (r Rule) Conditional() bool {
	return r.Breakpoint != breakpoint.Base
}

// CSS returns the rule text. Base rules are unconditional:
//
//	.xui-a1 { grid-template-columns: 1fr }
//
// every other breakpoint is wrapped in a min-width media query:
//
//	@media (min-width: 768px) { .xui-a1 { grid-template-columns: 2fr } }
func (r Rule) CSS() string {
	decl := fmt.Sprintf(".%s { %s: %s }", r.Class, r.Property, r.Value)
	if !r.Conditional() {
		return decl
	}
	return fmt.Sprintf("@media (min-width: %dpx) { %s }", r.MinWidth, decl)
}

// Rules generates one rule per entry, in ascending threshold order: Base
// first, then increasing min-widths. Later same-specificity rules win in the
// cascade, so this order is what lets larger breakpoints override smaller
// ones. Entries whose breakpoint is not in the table are skipped.
func Rules(t *breakpoint.Table, class, property string, entries map[breakpoint.Name]string) []Rule {
	rules := make([]Rule, 0, len(entries))
	for _, p := range t.Points() {
		value, ok := entries[p.Name]
		if !ok {
			continue
		}
		rules = append(rules, Rule{
			Breakpoint: p.Name,
			MinWidth:   p.MinWidth,
			Class:      class,
			Property:   property,
			Value:      value,
		})
	}
	return rules
}

// CSS joins the text of rules, one per line.
func CSS(rules []Rule) string {
	var out []byte
	for _, r := range rules {
		out = append(out, r.CSS()...)
		out = append(out, '\n')
	}
	return string(out)
}

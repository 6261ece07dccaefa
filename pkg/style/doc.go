// Package style turns responsive values into breakpoint-conditional CSS
// rules and injects them into a style sheet exactly once.
//
// # Overview
//
// A [Registry] takes a CSS property and a [responsive.Value], generates one
// rule per defined breakpoint and appends the rules to a [Sink] under a
// class name. The element then carries that class and the browser's own
// media-query cascade selects the active value on resize; no code runs at
// resize time.
//
//	sheet := style.NewStylesheet()
//	reg := style.NewRegistry(breakpoint.Default(), sheet)
//
//	cols := responsive.Of(map[breakpoint.Name]string{
//	    breakpoint.Base: "1fr",
//	    breakpoint.MD:   "2fr",
//	    breakpoint.LG:   "3fr",
//	})
//	class := style.Register(reg, "", "grid-template-columns", cols, style.Raw)
//
// sheet now holds, in this order:
//
//	.xui-3f9c0e1a2b { grid-template-columns: 1fr }
//	@media (min-width: 768px) { .xui-3f9c0e1a2b { grid-template-columns: 2fr } }
//	@media (min-width: 1024px) { .xui-3f9c0e1a2b { grid-template-columns: 3fr } }
//
// # Ordering
//
// Rules are emitted Base first, then by increasing min-width. Later rules of
// equal specificity win, so this order is required for larger breakpoints
// to override smaller ones.
//
// # Deduplication
//
// The registry keeps a write-once record keyed by class name and property.
// A second registration with the same key is skipped and returns the same
// class name. Records are never removed; the sheet is append-only for the
// registry's lifetime.
//
// # Sinks
//
//   - [Stylesheet]: in-memory append-only sheet
//   - [WriterSink]: streams rules to an io.Writer
//   - [NullSink]: no live sheet, as in server-side rendering
//   - [HydratingSink]: detached until a sheet is attached on the client
//
// When the sink is unavailable, registration still returns the class name
// and parks the rule set; [Registry.Hydrate] injects parked sets once the
// sink becomes available.
//
// [responsive.Value]: github.com/xui-kit/xui/pkg/responsive.Value
package style

package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Typed formatters turn a value into CSS value text.

// Px formats a pixel length.
func Px(v int) string { return strconv.Itoa(v) + "px" }

// Rem formats a rem length.
func Rem(v float64) string { return formatFloat(v) + "rem" }

// Percent formats a percentage.
func Percent(v float64) string { return formatFloat(v) + "%" }

// Fr formats a flexible grid track size.
func Fr(v int) string { return strconv.Itoa(v) + "fr" }

// Columns formats an equal-width grid track list with n columns.
func Columns(n int) string {
	return fmt.Sprintf("repeat(%d, minmax(0, 1fr))", n)
}

// Span formats a grid-column or grid-row span of n tracks.
func Span(n int) string {
	return fmt.Sprintf("span %d / span %d", n, n)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// =============================================================================
// Named formatters
// =============================================================================

// Named formatters work on textual values, as found in configuration files.
// Numeric text is converted; anything else ("auto", "1 / -1") passes
// through unchanged so keywords still work.
var namedFormatters = map[string]func(string) string{
	"raw":     Raw,
	"px":      numeric(func(f float64) string { return formatFloat(f) + "px" }),
	"rem":     numeric(Rem),
	"percent": numeric(Percent),
	"fr":      numeric(func(f float64) string { return formatFloat(f) + "fr" }),
	"columns": integer(Columns),
	"span":    spanText,
}

// Raw returns s trimmed of surrounding whitespace.
func Raw(s string) string { return strings.TrimSpace(s) }

// Formatter returns the named textual formatter.
// The empty name is an alias for "raw".
func Formatter(name string) (func(string) string, bool) {
	if name == "" {
		name = "raw"
	}
	f, ok := namedFormatters[name]
	return f, ok
}

// FormatterNames lists the named formatters in sorted order.
func FormatterNames() []string {
	names := make([]string, 0, len(namedFormatters))
	for name := range namedFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func numeric(fn func(float64) string) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return s
		}
		return fn(f)
	}
}

func integer(fn func(int) string) func(string) string {
	return func(s string) string {
		s = strings.TrimSpace(s)
		n, err := strconv.Atoi(s)
		if err != nil {
			return s
		}
		return fn(n)
	}
}

// spanText maps "full" to a track-spanning line range and integers to spans.
func spanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "full" {
		return "1 / -1"
	}
	return integer(Span)(s)
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// propertyRegex matches standard CSS property names ("grid-template-columns",
// "-webkit-box-flex") and custom properties ("--xui-gap").
var propertyRegex = regexp.MustCompile(`^(--[A-Za-z0-9_-]+|-?[a-z][a-z0-9]*(-[a-z0-9]+)*)$`)

// classRegex matches class names that can be used unescaped in a selector.
var classRegex = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateProperty validates a CSS property name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Lowercase words joined by single hyphens, optional vendor prefix
//   - Custom properties must start with "--"
func ValidateProperty(name string) error {
	if name == "" {
		return New(ErrCodeInvalidProperty, "property name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidProperty, "property name too long (max 128 characters)")
	}
	if !propertyRegex.MatchString(name) {
		return New(ErrCodeInvalidProperty, "invalid CSS property name: %q", name)
	}
	return nil
}

// ValidateClass validates a class name or class prefix.
func ValidateClass(name string) error {
	if name == "" {
		return New(ErrCodeInvalidClass, "class name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidClass, "class name too long (max 128 characters)")
	}
	if !classRegex.MatchString(name) {
		return New(ErrCodeInvalidClass, "invalid class name: %q", name)
	}
	return nil
}

// ValidateValue validates a formatted CSS value.
// Values may not break out of the declaration block they are written into.
func ValidateValue(value string) error {
	if strings.TrimSpace(value) == "" {
		return New(ErrCodeInvalidInput, "CSS value cannot be empty")
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "CSS value contains control characters")
		}
	}
	for _, pattern := range []string{"{", "}", ";", "</"} {
		if strings.Contains(value, pattern) {
			return New(ErrCodeInvalidInput, "CSS value contains invalid sequence: %q", pattern)
		}
	}
	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename with a supported extension.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	switch {
	case strings.HasSuffix(filename, ".toml"),
		strings.HasSuffix(filename, ".yaml"),
		strings.HasSuffix(filename, ".yml"):
		return nil
	}
	return New(ErrCodeInvalidManifest, "unsupported manifest extension: %q (want .toml, .yaml or .yml)", filename)
}

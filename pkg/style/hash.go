package style

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
)

// hashLen is the number of hex characters of the content hash kept in
// derived class names (40 bits).
const hashLen = 10

// DefaultPrefix is the class prefix used for derived class names.
const DefaultPrefix = "xui"

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ClassName derives a content-addressed class name for a property and its
// formatted per-breakpoint values. The same inputs always produce the same
// name; the table fingerprint is part of the hash so that different tables
// never collide on identical value maps.
//
// The result has the form "<prefix>-<10 hex chars>".
func ClassName(prefix string, t *breakpoint.Table, property string, entries map[breakpoint.Name]string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	// encoding/json writes map keys in sorted order, which makes the
	// payload canonical.
	data, _ := json.Marshal([]any{property, t.Fingerprint(), entries})
	return prefix + "-" + Hash(data)[:hashLen]
}

// sanitizeClass turns a caller-provided seed into a class name usable
// unescaped in a selector. Invalid characters become '-', and a name that
// would still not start an identifier (a leading digit, or '-' followed by
// a digit, another '-' or nothing) gets a '_' prefix. It returns "" if no
// valid name can be made, in which case the caller derives one.
func sanitizeClass(seed string) string {
	if seed == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(seed) + 1)
	for _, r := range seed {
		valid := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if valid {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	class := b.String()
	if errors.ValidateClass(class) == nil {
		return class
	}
	if class = "_" + class; errors.ValidateClass(class) == nil {
		return class
	}
	return ""
}

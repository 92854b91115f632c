// Package sanitize normalizes decoded JSON request bodies before any handler
// sees them. It has two jobs: dropping object keys that could smuggle
// operators into a document-query layer, and HTML-escaping string values so
// stored input can never execute as markup.
package sanitize

import "strings"

// escaper rewrites the characters the original API escapes. Order matters for
// none of these; strings.Replacer applies them in a single pass.
var escaper = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// String escapes markup-significant characters and trims surrounding
// whitespace from a single value.
func String(s string) string {
	return strings.TrimSpace(escaper.Replace(s))
}

// unsafeKey reports whether a map key must be stripped: anything starting
// with '$' or containing '.' can address fields or operators in a
// document store.
func unsafeKey(key string) bool {
	return strings.HasPrefix(key, "$") || strings.Contains(key, ".")
}

// Body sanitizes a decoded JSON value and returns a new value; the input is
// never mutated. It recurses through maps and slices, drops unsafe keys, and
// escapes every string. Scalars other than strings pass through unchanged.
func Body(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, inner := range val {
			if unsafeKey(key) {
				continue
			}
			out[key] = Body(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = Body(inner)
		}
		return out
	case string:
		return String(val)
	default:
		// numbers, booleans, null
		return v
	}
}

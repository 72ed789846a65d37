package core

import "strings"

// NormalizeName canonicalizes a hierarchical logger name: surrounding
// whitespace is trimmed, leading and trailing separators are stripped
// and repeated separators collapse into one. The empty string after
// normalization denotes the root logger. Arbitrary input never fails;
// a malformed name only affects where the logger lands in the
// hierarchy.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	parts := strings.Split(name, ".")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ".")
}

// ParentName returns the name of the nearest ancestor, obtained by
// truncating at the last separator. The parent of a top-level name is
// the root logger "". ok is false when name is already the root.
func ParentName(name string) (parent string, ok bool) {
	if name == "" {
		return "", false
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i], true
	}
	return "", true
}

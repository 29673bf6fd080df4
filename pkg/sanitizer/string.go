package sanitizer

import (
	"strings"
	"unicode"
)

// Text normalizes free text coming from clients: trims surrounding
// whitespace, collapses internal whitespace runs to a single space and
// strips control characters. Used for booking notes and room names,
// locations and descriptions before validation.
func Text(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := false
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimSpace(b.String())
}

// TextSlice applies Text to every element and drops entries that become
// empty.
func TextSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if cleaned := Text(s); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

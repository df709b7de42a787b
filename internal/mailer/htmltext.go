package mailer

import (
	"html"
	"strings"
)

// stripTags derives the plain-text alternative from a rendered HTML body.
// Block-ish tags become newlines so the text keeps its paragraph shape.
func stripTags(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inTag := false
	var tag strings.Builder
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
			tag.Reset()
		case r == '>' && inTag:
			inTag = false
			name := strings.TrimPrefix(tag.String(), "/")
			if i := strings.IndexAny(name, " \t\n/"); i >= 0 {
				name = name[:i]
			}
			switch strings.ToLower(name) {
			case "p", "br", "div", "li", "tr":
				sb.WriteByte('\n')
			}
		case inTag:
			tag.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	out := html.UnescapeString(sb.String())
	lines := strings.Split(out, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if t := strings.TrimSpace(l); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, "\n")
}

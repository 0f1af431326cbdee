package infradocs

import "strings"

// FormatResults formats search results as plain text, one block per
// document with an indented line per match.
func FormatResults(results []*SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.Title + " (" + string(r.Source) + ") " + r.Href + "\n")
		for _, m := range r.Matches {
			b.WriteString("  - ")
			if m.Section != nil {
				b.WriteString("[" + *m.Section + "] ")
			}
			b.WriteString(m.Text)
			if m.Anchor != nil {
				b.WriteString(" " + r.Href + "#" + *m.Anchor)
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FormatStructure formats a documentation tree as an indented outline.
// Files show their route slug; directories end with a slash.
func FormatStructure(s *DocsStructure) string {
	var b strings.Builder
	b.WriteString(string(s.Package) + "\n")
	formatItems(&b, s.Items, 1)
	return b.String()
}

func formatItems(b *strings.Builder, items []*DocItem, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		if item.IsDir() {
			b.WriteString(indent + item.Title + "/\n")
			formatItems(b, item.Children, depth+1)
			continue
		}
		b.WriteString(indent + item.Title + "  " + item.Slug + "\n")
	}
}

package infradocs

import (
	"regexp"
	"strings"
)

// Heading is a table-of-contents entry.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	ID    string `json:"id"`
}

var (
	tocHeadingRe = regexp.MustCompile(`(?m)^(#{1,3})\s+(.+)$`)
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```|~~~.*?~~~")

	closingHashesRe = regexp.MustCompile(`(^|\s+)#+$`)
)

// HeadingText returns the text of an ATX heading line after its opening
// hashes: surrounding whitespace and any closing hash sequence are removed.
// Search anchors, TOC ids and rendered heading ids all slugify this text.
func HeadingText(raw string) string {
	s := strings.TrimSpace(raw)
	s = closingHashesRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// ExtractHeadings parses markdown and returns its H1-H3 headings in order.
// IDs are generated with Slugify so they match rendered heading ids.
func ExtractHeadings(markdown string) []Heading {
	if markdown == "" {
		return nil
	}

	// Remove code blocks to avoid matching # in code
	cleaned := codeBlockRe.ReplaceAllString(markdown, "")

	matches := tocHeadingRe.FindAllStringSubmatch(cleaned, -1)
	if len(matches) == 0 {
		return nil
	}

	headings := make([]Heading, 0, len(matches))
	for _, match := range matches {
		title := HeadingText(match[2])
		headings = append(headings, Heading{
			Level: len(match[1]),
			Title: title,
			ID:    Slugify(title),
		})
	}
	return headings
}

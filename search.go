package infradocs

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Search defaults.
const (
	// MinQueryLength is the shortest query that is searched at all.
	MinQueryLength = 2

	DefaultMaxMatches       = 5
	DefaultContextLines     = 1
	DefaultSnippetLength    = 150
	DefaultMinSnippetLength = 10
	DefaultDedupPrefix      = 50
)

// CodeMarker replaces fenced code blocks in snippets.
const CodeMarker = "[code]"

// SearchMatch is one located occurrence inside a document.
type SearchMatch struct {
	Text    string  `json:"text"`
	Section *string `json:"section"`
	Anchor  *string `json:"anchor"`
}

// SearchResult groups the matches found in one document.
type SearchResult struct {
	Title   string         `json:"title"`
	Source  Package        `json:"source"`
	Href    string         `json:"href"`
	Matches []*SearchMatch `json:"matches"`
}

// SearchService answers free-text queries across all documentation.
type SearchService interface {
	// Search returns results ordered by descending match count. Queries
	// shorter than MinQueryLength return no results without fetching.
	Search(ctx context.Context, query string) ([]*SearchResult, error)
}

// SearchOptions tunes per-document match extraction.
// Zero fields take the package defaults.
type SearchOptions struct {
	MaxMatches       int
	// ContextLines is the number of lines joined on each side of a match.
	// Zero takes DefaultContextLines; a negative value disables context.
	ContextLines     int
	SnippetLength    int
	MinSnippetLength int
	DedupPrefix      int
}

func (o SearchOptions) withDefaults() SearchOptions {
	if o.MaxMatches <= 0 {
		o.MaxMatches = DefaultMaxMatches
	}
	if o.ContextLines < 0 {
		o.ContextLines = 0
	} else if o.ContextLines == 0 {
		o.ContextLines = DefaultContextLines
	}
	if o.SnippetLength <= 0 {
		o.SnippetLength = DefaultSnippetLength
	}
	if o.MinSnippetLength <= 0 {
		o.MinSnippetLength = DefaultMinSnippetLength
	}
	if o.DedupPrefix <= 0 {
		o.DedupPrefix = DefaultDedupPrefix
	}
	return o
}

// QueryTooShort reports whether a query is below MinQueryLength.
func QueryTooShort(query string) bool {
	return utf8.RuneCountInString(query) < MinQueryLength
}

// SearchDocument is the input to SearchDocumentContent.
type SearchDocument struct {
	Package Package
	Content string
	// Href overrides the default "/<package>" link.
	Href string
	// Title overrides the document's first H1.
	Title string
}

var (
	sectionHeadingRe = regexp.MustCompile(`^#{2,3}\s+(.+)$`)

	snippetFenceRe  = regexp.MustCompile("```[\\s\\S]*?```")
	snippetInlineRe = regexp.MustCompile("`([^`]+)`")
	snippetBoldRe   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	snippetItalicRe = regexp.MustCompile(`\*([^*]+)\*`)
	snippetHeadRe   = regexp.MustCompile(`#{1,6}\s*`)
	snippetLinkRe   = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

type section struct {
	title     string
	anchor    string
	startLine int
}

// SearchDocumentContent scans one document for query and returns its
// result, or nil when no displayable match survives cleanup.
func SearchDocumentContent(doc SearchDocument, query string, opts SearchOptions) *SearchResult {
	if QueryTooShort(query) {
		return nil
	}
	opts = opts.withDefaults()

	lowerQuery := strings.ToLower(query)
	if !strings.Contains(strings.ToLower(doc.Content), lowerQuery) {
		return nil
	}

	lines := strings.Split(doc.Content, "\n")
	sections := scanSections(lines)

	var matches []*SearchMatch
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), lowerQuery) {
			continue
		}

		current := sectionAt(sections, i)

		start := max(0, i-opts.ContextLines)
		end := min(len(lines)-1, i+opts.ContextLines)
		text := CleanSnippet(strings.Join(lines[start:end+1], " "), opts.SnippetLength)

		if text == "" || utf8.RuneCountInString(text) < opts.MinSnippetLength || text == CodeMarker {
			continue
		}
		// The query may only have appeared inside stripped markup.
		if !strings.Contains(strings.ToLower(text), lowerQuery) {
			continue
		}
		if isDuplicateMatch(matches, current, text, opts.DedupPrefix) {
			continue
		}

		m := &SearchMatch{Text: text}
		if current != nil {
			if current.title != "" {
				m.Section = &current.title
			}
			if current.anchor != "" {
				m.Anchor = &current.anchor
			}
		}
		matches = append(matches, m)

		if len(matches) >= opts.MaxMatches {
			break
		}
	}

	if len(matches) == 0 {
		return nil
	}

	title := doc.Title
	if title == "" {
		if t, ok := DocumentTitle(doc.Content); ok {
			title = t
		} else {
			title = string(doc.Package)
		}
	}
	href := doc.Href
	if href == "" {
		href = "/" + string(doc.Package)
	}

	return &SearchResult{
		Title:   title,
		Source:  doc.Package,
		Href:    href,
		Matches: matches,
	}
}

// scanSections records every H2/H3 heading with its starting line.
func scanSections(lines []string) []section {
	var sections []section
	for i, line := range lines {
		m := sectionHeadingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := HeadingText(m[1])
		sections = append(sections, section{
			title:     title,
			anchor:    Slugify(title),
			startLine: i,
		})
	}
	return sections
}

// sectionAt returns the last section starting at or before line.
func sectionAt(sections []section, line int) *section {
	var current *section
	for i := range sections {
		if sections[i].startLine > line {
			break
		}
		current = &sections[i]
	}
	return current
}

func isDuplicateMatch(matches []*SearchMatch, current *section, text string, prefix int) bool {
	p := runePrefix(text, prefix)
	for _, m := range matches {
		if m.Anchor != nil && current != nil && *m.Anchor == current.anchor {
			return true
		}
		if runePrefix(m.Text, prefix) == p {
			return true
		}
	}
	return false
}

// CleanSnippet strips markdown decoration from context text and truncates
// it to limit characters.
func CleanSnippet(context string, limit int) string {
	s := strings.TrimSpace(context)
	s = snippetFenceRe.ReplaceAllString(s, CodeMarker)
	s = snippetInlineRe.ReplaceAllString(s, "$1")
	s = snippetBoldRe.ReplaceAllString(s, "$1")
	s = snippetItalicRe.ReplaceAllString(s, "$1")
	s = snippetHeadRe.ReplaceAllString(s, "")
	s = snippetLinkRe.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	return runePrefix(s, limit)
}

func runePrefix(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

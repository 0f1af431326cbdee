package infradocs

import (
	"regexp"
	"strings"
)

var (
	schemeRe         = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)
	leadingHeadingRe = regexp.MustCompile(`^#[ \t]+[^\n]+(?:\r?\n)*`)
	titleRe          = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// RewriteLink turns a relative document link into an application route.
// Absolute paths, links with a scheme and in-page anchors are returned
// unchanged. When p is empty the route is left relative.
func RewriteLink(href string, p Package) string {
	return rewriteLink(href, DefaultDocsPath, p)
}

// RewriteLink is like the package-level RewriteLink but strips the source's
// own docs directory.
func (s Source) RewriteLink(href string) string {
	return rewriteLink(href, s.DocsPath, s.Package)
}

func rewriteLink(href, docsRoot string, p Package) string {
	if href == "" || strings.HasPrefix(href, "/") || strings.HasPrefix(href, "#") || schemeRe.MatchString(href) {
		return href
	}

	path, fragment, hasFragment := strings.Cut(href, "#")
	path = strings.TrimPrefix(path, "./")
	if docsRoot != "" {
		path = strings.TrimPrefix(path, strings.TrimSuffix(docsRoot, "/")+"/")
	}
	path = strings.TrimSuffix(path, MarkdownExt)

	if p != "" {
		path = "/" + string(p) + "/" + path
	}
	if hasFragment {
		path += "#" + fragment
	}
	return path
}

// StripLeadingHeading removes a level-1 heading at the very start of the
// document along with the blank lines that follow it. Page headers already
// display the title.
func StripLeadingHeading(markdown string) string {
	return leadingHeadingRe.ReplaceAllString(markdown, "")
}

// DocumentTitle returns the text of the first level-1 heading.
func DocumentTitle(markdown string) (string, bool) {
	m := titleRe.FindStringSubmatch(markdown)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

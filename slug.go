package infradocs

import (
	"regexp"
	"strings"
)

// MarkdownExt is the extension of documents included in trees and search.
const MarkdownExt = ".md"

var (
	slugStripRe  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe  = regexp.MustCompile(`\s+`)
	slugHyphenRe = regexp.MustCompile(`-+`)
	wordStartRe  = regexp.MustCompile(`\b\w`)
)

// Slugify converts heading text to a URL-safe anchor.
//
// The same function produces table-of-contents ids, rendered heading ids
// and search result anchors, so all three always agree.
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugSpaceRe.ReplaceAllString(s, "-")
	s = slugHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsMarkdown reports whether a file name has the markdown extension.
func IsMarkdown(name string) bool {
	return strings.HasSuffix(name, MarkdownExt)
}

// SlugFromPath derives a document slug from its repository path by removing
// the docs root prefix and the markdown extension.
func SlugFromPath(docsRoot, path string) string {
	if docsRoot != "" {
		path = strings.TrimPrefix(path, strings.TrimSuffix(docsRoot, "/")+"/")
	}
	path = strings.TrimSuffix(path, MarkdownExt)
	return strings.ToLower(strings.Trim(path, "/"))
}

// TitleFromName derives a display title from a file or directory name:
// "getting-started.md" becomes "Getting Started".
func TitleFromName(name string) string {
	s := strings.TrimSuffix(name, MarkdownExt)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return wordStartRe.ReplaceAllStringFunc(s, strings.ToUpper)
}

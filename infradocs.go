// Package infradocs serves the documentation site for the nfrax
// infrastructure frameworks. It fetches README and docs/ markdown from
// GitHub, caches it, builds navigable trees per package, and answers
// free-text searches with section-aware snippets.
//
// This package contains domain types, interfaces and pure text transforms
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., http/,
// goldmark/, prometheus/).
package infradocs

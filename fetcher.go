package infradocs

import "context"

// EntryKind distinguishes files from directories in a listing.
type EntryKind string

// Listing entry kinds, matching the GitHub contents API "type" field.
const (
	KindFile EntryKind = "file"
	KindDir  EntryKind = "dir"
)

// Entry is one immediate child in a remote directory listing.
type Entry struct {
	Name string    `json:"name"`
	Path string    `json:"path"`
	Kind EntryKind `json:"type"`
}

// Fetcher retrieves raw documents and directory listings from a source.
// It is the single point of outbound I/O.
type Fetcher interface {
	// FetchFile returns the raw text of a file in the source repository.
	// Returns ENOTFOUND if the file does not exist.
	FetchFile(ctx context.Context, src Source, path string) (string, error)

	// ListDirectory returns the immediate children of a directory.
	// A directory that does not exist yields an empty listing, not an error.
	ListDirectory(ctx context.Context, src Source, path string) ([]Entry, error)
}

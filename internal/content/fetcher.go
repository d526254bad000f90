// Package content resolves chapter and annotation bodies for a given
// key and locale. Resolution walks the locale fallback chain over a
// static file hierarchy, parses the markdown through goldmark, and
// caches the result for the life of the process.
package content

import (
	"errors"
	"io/fs"
	"path"
)

// Collections within a library.
const (
	CollectionChapters    = "chapters"
	CollectionAnnotations = "annotations"
)

// ErrNotFound reports that a store path has no content. It is the only
// miss signal the resolver's fallback chain reacts to; any other fetch
// error is a transport failure.
var ErrNotFound = errors.New("content: not found")

// Fetcher is the content store contract: fetch raw text by path.
// The abstraction keeps the resolver testable against map-backed
// stores and lets the embedded and on-disk libraries share one code
// path.
type Fetcher interface {
	Fetch(path string) ([]byte, error)
}

// FSFetcher serves a library rooted in any fs.FS (embedded or os.DirFS).
type FSFetcher struct {
	fsys fs.FS
}

// NewFSFetcher wraps fsys as a content store.
func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{fsys: fsys}
}

// Fetch reads one file. A missing file maps to ErrNotFound; other
// errors pass through as transport failures.
func (f *FSFetcher) Fetch(p string) ([]byte, error) {
	b, err := fs.ReadFile(f.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// storePath addresses {collection}/{locale-subpath?}/{key}.md.
func storePath(collection, key string, loc Locale) string {
	if sub := loc.Subpath(); sub != "" {
		return path.Join(collection, sub, key+".md")
	}
	return path.Join(collection, key+".md")
}

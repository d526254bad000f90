package content

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed library
var libraryFS embed.FS

// EmbeddedLibrary returns the sample book compiled into the binary, so
// tome runs without any external content directory.
func EmbeddedLibrary() fs.FS {
	sub, err := fs.Sub(libraryFS, "library")
	if err != nil {
		// The subdirectory is part of the build; this cannot fail at
		// runtime for a well-formed binary.
		panic(err)
	}
	return sub
}

// ManifestPath is the library's table of contents file.
const ManifestPath = "book.yaml"

// ChapterRef is one entry in the reading order. Title is the listing
// label shown before the chapter has been resolved in any locale.
type ChapterRef struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
}

// Manifest describes a library: the book title and its chapter order.
type Manifest struct {
	Title    string       `yaml:"title"`
	Chapters []ChapterRef `yaml:"chapters"`
}

// LoadManifest fetches and parses book.yaml from a library.
func LoadManifest(f Fetcher) (*Manifest, error) {
	raw, err := f.Fetch(ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", ManifestPath, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestPath, err)
	}
	if len(m.Chapters) == 0 {
		return nil, fmt.Errorf("%s lists no chapters", ManifestPath)
	}
	return &m, nil
}

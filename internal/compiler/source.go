package compiler

import (
	"fmt"
	"os"

	"github.com/specialistvlad/bnbgo/internal/fsutil"
)

// Extension is the file extension of DSL documents.
const Extension = ".bnb"

// ReadSources loads the documents named by paths. Directories are searched
// recursively for files with Extension.
func ReadSources(paths ...string) ([]Source, error) {
	files, err := fsutil.ExpandPaths(Extension, paths...)
	if err != nil {
		return nil, err
	}
	sources := make([]Source, 0, len(files))
	for _, f := range files {
		text, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read source: %w", err)
		}
		sources = append(sources, Source{Name: f, Text: text})
	}
	return sources, nil
}

// SourceMap indexes source texts by name, as needed for rendering
// diagnostics with snippets.
func SourceMap(sources []Source) map[string][]byte {
	m := make(map[string][]byte, len(sources))
	for _, s := range sources {
		m[s.Name] = s.Text
	}
	return m
}

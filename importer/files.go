package importer

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadFiles reads an arbitrary list of text files, one Source per file
// titled by its base name. Missing or unreadable files become error
// entries; the rest of the list still loads.
func LoadFiles(paths []string) (sources []Source, readErrors []string) {
	for _, p := range paths {
		title := filepath.Base(p)
		data, err := os.ReadFile(p)
		if err != nil {
			readErrors = append(readErrors, fmt.Sprintf("%s: %v", title, err))
			continue
		}
		sources = append(sources, Source{
			Title:    title,
			Messages: []Message{{Role: "user", Text: string(data)}},
		})
	}
	return sources, readErrors
}

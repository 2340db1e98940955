package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Directories that hold vault machinery rather than notes.
var noiseDirs = map[string]bool{
	".obsidian":    true,
	".git":         true,
	".trash":       true,
	"node_modules": true,
}

var noteExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
}

// DiscoverNotes walks a vault directory and returns note file paths in
// sorted order, so repeated imports see the same sequence. Hidden
// entries and vault-internal directories are skipped; unreadable
// entries are skipped rather than aborting the walk. The walk uses an
// explicit stack so arbitrarily deep vaults cannot exhaust the call
// stack.
func DiscoverNotes(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("vault not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	var paths []string
	stack := []string{dir}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, readErr := os.ReadDir(cur)
		if readErr != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			p := filepath.Join(cur, name)
			if e.IsDir() {
				if !noiseDirs[name] {
					stack = append(stack, p)
				}
				continue
			}
			if noteExts[strings.ToLower(filepath.Ext(name))] {
				paths = append(paths, p)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadVault reads every note in a vault as one Source titled by its
// vault-relative path. Unreadable files become error entries rather
// than aborting the load, so one bad note never blocks the rest.
func LoadVault(dir string) (sources []Source, readErrors []string, err error) {
	paths, err := DiscoverNotes(dir)
	if err != nil {
		return nil, nil, err
	}

	for _, p := range paths {
		title := p
		if rel, relErr := filepath.Rel(dir, p); relErr == nil {
			title = rel
		}

		data, readErr := os.ReadFile(p)
		if readErr != nil {
			readErrors = append(readErrors, fmt.Sprintf("%s: %v", title, readErr))
			continue
		}
		sources = append(sources, Source{
			Title:    title,
			Messages: []Message{{Role: "user", Text: string(data)}},
		})
	}
	return sources, readErrors, nil
}

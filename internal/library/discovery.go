// discovery.go - Category folder and topic file discovery
package library

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// DefaultSkipDirs are tooling directories that never hold a category.
var DefaultSkipDirs = []string{".git", ".githooks", "__pycache__", "node_modules"}

// DefaultTopicExtensions lists the extensions treated as topic files.
var DefaultTopicExtensions = []string{".html"}

// DiscoverCategoryDirs returns the immediate subdirectories of root that hold an
// index file, skipping hidden and tooling directories. Names are sorted
// case-insensitively.
func DiscoverCategoryDirs(fs afero.Fs, root, indexFile string, skip []string) ([]string, error) {
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, err
	}
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || isHiddenFile(e.Name()) || skipSet[e.Name()] {
			continue
		}
		info, err := fs.Stat(filepath.Join(root, e.Name(), indexFile))
		if err != nil || info.IsDir() {
			continue
		}
		dirs = append(dirs, e.Name())
	}
	sortFold(dirs)
	return dirs, nil
}

// DiscoverTopics lists the topic files directly inside dir, excluding the index
// file itself. Nested directories are not scanned.
func DiscoverTopics(fs afero.Fs, dir, indexFile string, exts []string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || isHiddenFile(e.Name()) {
			continue
		}
		if strings.EqualFold(e.Name(), indexFile) {
			continue
		}
		if classifyFile(e.Name(), exts) == "topic" {
			files = append(files, e.Name())
		}
	}
	sortFold(files)
	return files, nil
}

// isHiddenFile reports whether a file or directory name is a dotfile
func isHiddenFile(name string) bool {
	return strings.HasPrefix(name, ".")
}

// classifyFile determines if a file is a topic, a markdown draft, or something else
func classifyFile(name string, exts []string) string {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return "topic"
		}
	}
	switch ext {
	case ".md", ".markdown":
		return "draft"
	default:
		return "other"
	}
}

// sortFold sorts names case-insensitively, falling back to byte order on ties.
func sortFold(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

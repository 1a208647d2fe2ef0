// title.go - Human-readable titles derived from topic filenames
package library

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromFilename turns "diabetes-management.html" into "Diabetes Management".
func TitleFromFilename(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	// Convert kebab-case or snake_case to readable title
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	words := strings.Fields(stem)
	if len(words) == 0 {
		return ""
	}
	// A Caser keeps state between calls, so each title gets its own.
	caser := cases.Title(language.Und)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

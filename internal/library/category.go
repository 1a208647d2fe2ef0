// category.go - Category names and their folder/display forms
package library

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCategory is returned when a category list cannot be laid out on disk.
var ErrInvalidCategory = errors.New("invalid category")

// Category is one top-level subject folder in the reference library.
type Category struct {
	Name string
}

// DefaultCategories returns the built-in category list in display order.
func DefaultCategories() []Category {
	names := []string{
		"Neurology",
		"Cancer",
		"Eyes-ophthalmology",
		"Infectious-disease",
		"Paeds",
		"Mental-health",
		"Cardio-respiratory",
		"General",
		"Women's-Health",
		"Men's-Health",
		"Endocrine-metabolic",
		"GI-Gastroenterology-hepatology",
		"Skin-and-Nail",
		"ENT-and-Oral-health",
		"MSK-and-Rheumatology",
		"Pregnancy",
		"Renal-Urology",
		"Haematology",
		"Allergy",
		"Palliative",
		"Geriatrics",
	}
	return CategoriesFromNames(names)
}

// CategoriesFromNames wraps plain names, trimming surrounding whitespace.
func CategoriesFromNames(names []string) []Category {
	out := make([]Category, 0, len(names))
	for _, n := range names {
		out = append(out, Category{Name: strings.TrimSpace(n)})
	}
	return out
}

// FolderName is the on-disk directory name: spaces become hyphens and "&" becomes "and".
func (c Category) FolderName() string {
	s := strings.Join(strings.Fields(c.Name), "-")
	s = strings.ReplaceAll(s, "&", "and")
	return s
}

// DisplayName is the presentation form of the name.
//
//	Category{"Skin-and-Nail"}.DisplayName() // "Skin & Nail"
//
// Only the standalone word "and" is replaced, so "Endocrine" stays intact.
func (c Category) DisplayName() string {
	words := strings.Fields(strings.ReplaceAll(c.Name, "-", " "))
	for i, w := range words {
		if w == "and" {
			words[i] = "&"
		}
	}
	return strings.Join(words, " ")
}

// SearchKey is the lower-cased display name used by the root index filter.
func (c Category) SearchKey() string {
	return strings.ToLower(c.DisplayName())
}

// ValidateCategories checks that every category maps to a distinct, safe folder name.
func ValidateCategories(cats []Category) error {
	if len(cats) == 0 {
		return fmt.Errorf("%w: category list is empty", ErrInvalidCategory)
	}
	seen := make(map[string]string, len(cats))
	for _, c := range cats {
		folder := c.FolderName()
		switch {
		case folder == "":
			return fmt.Errorf("%w: empty name", ErrInvalidCategory)
		case folder == "." || folder == ".." || strings.HasPrefix(folder, "."):
			return fmt.Errorf("%w: %q would be a hidden or relative folder", ErrInvalidCategory, c.Name)
		case strings.ContainsAny(folder, `/\`):
			return fmt.Errorf("%w: %q contains a path separator", ErrInvalidCategory, c.Name)
		}
		key := strings.ToLower(folder)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q and %q share folder %q", ErrInvalidCategory, prev, c.Name, folder)
		}
		seen[key] = c.Name
	}
	return nil
}

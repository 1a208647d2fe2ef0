// scaffold.go - One-time creation of the library folder structure
package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ErrSetupDeclined is returned when the user refuses to overwrite an existing root index.
var ErrSetupDeclined = errors.New("setup cancelled")

// DefaultIndexFile is the index name used for the root and every category.
const DefaultIndexFile = "index.html"

// DefaultLibraryTitle heads the root index and the README.
const DefaultLibraryTitle = "Medical Reference Library"

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) (bool, error)

func (f ConfirmFunc) Confirm(prompt string) (bool, error) { return f(prompt) }

// Scaffolder creates category folders, their index files, the root index and the README.
type Scaffolder struct {
	fs         afero.Fs
	root       string
	indexFile  string
	title      string
	categories []Category
	confirm    Confirmer
	log        *zap.Logger
}

// ScaffoldOption configures a Scaffolder.
type ScaffoldOption func(*Scaffolder)

// WithCategories replaces the default category list.
func WithCategories(cats []Category) ScaffoldOption {
	return func(s *Scaffolder) { s.categories = cats }
}

// WithConfirmer sets who is asked before an existing root index is overwritten.
func WithConfirmer(c Confirmer) ScaffoldOption {
	return func(s *Scaffolder) { s.confirm = c }
}

// WithScaffoldLogger sets the logger.
func WithScaffoldLogger(l *zap.Logger) ScaffoldOption {
	return func(s *Scaffolder) { s.log = l }
}

// WithScaffoldIndexFile changes the index file name.
func WithScaffoldIndexFile(name string) ScaffoldOption {
	return func(s *Scaffolder) { s.indexFile = name }
}

// WithTitle changes the library title shown on the root index and README.
func WithTitle(title string) ScaffoldOption {
	return func(s *Scaffolder) { s.title = title }
}

// NewScaffolder creates a scaffolder rooted at root. Without a Confirmer an
// existing root index is overwritten.
func NewScaffolder(fs afero.Fs, root string, opts ...ScaffoldOption) *Scaffolder {
	s := &Scaffolder{
		fs:         fs,
		root:       root,
		indexFile:  DefaultIndexFile,
		title:      DefaultLibraryTitle,
		categories: DefaultCategories(),
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run lays out the whole library. It returns ErrSetupDeclined, having written
// nothing, when the overwrite confirmation is refused.
func (s *Scaffolder) Run(ctx context.Context) error {
	if err := ValidateCategories(s.categories); err != nil {
		return err
	}

	rootIndex := filepath.Join(s.root, s.indexFile)
	exists, err := afero.Exists(s.fs, rootIndex)
	if err != nil {
		return fmt.Errorf("error checking %s: %w", rootIndex, err)
	}
	if exists && s.confirm != nil {
		ok, err := s.confirm.Confirm(fmt.Sprintf("%s already exists. Overwrite? (y/n): ", s.indexFile))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return ErrSetupDeclined
		}
	}

	if err := s.CreateFolders(); err != nil {
		return err
	}
	for _, c := range s.categories {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.WriteCategoryIndex(c); err != nil {
			return err
		}
	}
	if err := s.WriteRootIndex(); err != nil {
		return err
	}
	return s.WriteReadme()
}

// CreateFolders makes one directory per category. Existing folders are left alone.
func (s *Scaffolder) CreateFolders() error {
	for _, c := range s.categories {
		dir := filepath.Join(s.root, c.FolderName())
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create folder '%s': %w", dir, err)
		}
		s.log.Info("[Setup] created folder", zap.String("folder", c.FolderName()+"/"))
	}
	return nil
}

// WriteCategoryIndex overwrites a category's index with an empty topics array.
func (s *Scaffolder) WriteCategoryIndex(c Category) error {
	page, err := renderCategoryIndex(c, s.indexFile)
	if err != nil {
		return fmt.Errorf("failed to render index for '%s': %w", c.Name, err)
	}
	path := filepath.Join(s.root, c.FolderName(), s.indexFile)
	if err := afero.WriteFile(s.fs, path, page, 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	s.log.Info("[Setup] wrote category index", zap.String("path", filepath.Join(c.FolderName(), s.indexFile)))
	return nil
}

// WriteRootIndex overwrites the root index with one searchable card per category.
func (s *Scaffolder) WriteRootIndex() error {
	page, err := renderRootIndex(s.title, s.indexFile, s.categories)
	if err != nil {
		return fmt.Errorf("failed to render root index: %w", err)
	}
	path := filepath.Join(s.root, s.indexFile)
	if err := afero.WriteFile(s.fs, path, page, 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	s.log.Info("[Setup] wrote root index", zap.String("path", s.indexFile), zap.Int("categories", len(s.categories)))
	return nil
}

// WriteReadme overwrites README.md with usage instructions.
func (s *Scaffolder) WriteReadme() error {
	doc, err := renderReadme(s.title, s.indexFile, s.categories)
	if err != nil {
		return fmt.Errorf("failed to render README: %w", err)
	}
	path := filepath.Join(s.root, "README.md")
	if err := afero.WriteFile(s.fs, path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", path, err)
	}
	s.log.Info("[Setup] wrote README", zap.String("path", "README.md"))
	return nil
}

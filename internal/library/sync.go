// sync.go - Keeps each category index in step with the files beside it
package library

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrStale is returned by a check-only run when an index would change.
var ErrStale = errors.New("index files are out of date")

// Synchronizer rewrites the topics array of every category index.
type Synchronizer struct {
	fs         afero.Fs
	root       string
	indexFile  string
	skipDirs   []string
	exts       []string
	jobs       int
	checkOnly  bool
	sizeWarnKB int64
	drafts     *DraftRenderer
	log        *zap.Logger
}

// SyncOption configures a Synchronizer.
type SyncOption func(*Synchronizer)

// WithIndexFile changes the index file name looked for in each folder.
func WithIndexFile(name string) SyncOption {
	return func(s *Synchronizer) { s.indexFile = name }
}

// WithSkipDirs replaces the list of tooling directories that are never scanned.
func WithSkipDirs(dirs []string) SyncOption {
	return func(s *Synchronizer) { s.skipDirs = dirs }
}

// WithTopicExtensions replaces the set of extensions counted as topics.
func WithTopicExtensions(exts []string) SyncOption {
	return func(s *Synchronizer) { s.exts = exts }
}

// WithJobs sets how many folders are processed at once. Values below 1 mean 1.
func WithJobs(n int) SyncOption {
	return func(s *Synchronizer) { s.jobs = n }
}

// WithCheckOnly computes the new indexes without writing anything.
func WithCheckOnly(check bool) SyncOption {
	return func(s *Synchronizer) { s.checkOnly = check }
}

// WithSizeWarnKB sets the compressed topic size that triggers a warning. 0 disables it.
func WithSizeWarnKB(kb int64) SyncOption {
	return func(s *Synchronizer) { s.sizeWarnKB = kb }
}

// WithDrafts renders Markdown drafts into topic pages before indexing.
func WithDrafts(enabled bool) SyncOption {
	return func(s *Synchronizer) {
		if enabled {
			s.drafts = NewDraftRenderer(s.fs, s.indexFile)
		} else {
			s.drafts = nil
		}
	}
}

// WithSyncLogger sets the logger.
func WithSyncLogger(l *zap.Logger) SyncOption {
	return func(s *Synchronizer) { s.log = l }
}

// NewSynchronizer creates a synchronizer for the library rooted at root.
func NewSynchronizer(fs afero.Fs, root string, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		fs:         fs,
		root:       root,
		indexFile:  DefaultIndexFile,
		skipDirs:   DefaultSkipDirs,
		exts:       DefaultTopicExtensions,
		jobs:       1,
		sizeWarnKB: DefaultSizeWarnKB,
		log:        zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.drafts != nil {
		// the index name may have been set after WithDrafts
		s.drafts.indexFile = s.indexFile
	}
	if s.jobs < 1 {
		s.jobs = 1
	}
	return s
}

// FolderResult describes what happened to one category folder.
type FolderResult struct {
	Folder   string
	Topics   []Topic
	Updated  bool
	Skipped  bool
	Rendered []string
	Warnings []string
	Sizes    []SizeReport
	// Added and Removed list the topic files a check-only run found missing
	// from, or stale in, the index.
	Added   []string
	Removed []string
}

// Report summarises a synchronizer run.
type Report struct {
	Checked   int
	Updated   int
	Skipped   int
	Rendered  int
	Warnings  []string
	Oversized []SizeReport
	Folders   []FolderResult
}

func (r *Report) String() string {
	return fmt.Sprintf("Checked %d folders. Updated %d index files.", r.Checked, r.Updated)
}

// Run processes every category folder under the root. A missing topics array
// only produces a warning; any filesystem error aborts the run.
func (s *Synchronizer) Run(ctx context.Context) (*Report, error) {
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("error checking library root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("library root is not a directory: %s", s.root)
	}

	dirs, err := DiscoverCategoryDirs(s.fs, s.root, s.indexFile, s.skipDirs)
	if err != nil {
		return nil, fmt.Errorf("error reading library root: %w", err)
	}
	s.log.Debug("[Update] discovered folders", zap.Int("count", len(dirs)))

	results := make([]FolderResult, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.jobs)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.SyncFolder(dir)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Folders: results}
	for _, res := range results {
		report.Checked++
		if res.Updated {
			report.Updated++
		}
		if res.Skipped {
			report.Skipped++
		}
		report.Rendered += len(res.Rendered)
		report.Warnings = append(report.Warnings, res.Warnings...)
		for _, sz := range res.Sizes {
			if sz.Over() {
				report.Oversized = append(report.Oversized, sz)
			}
		}
	}
	if s.checkOnly && report.Updated > 0 {
		return report, fmt.Errorf("%w: %d of %d", ErrStale, report.Updated, report.Checked)
	}
	return report, nil
}

// SyncFolder recomputes the topics array of one category folder, named relative
// to the root. The index is written only when its text changes.
func (s *Synchronizer) SyncFolder(folder string) (FolderResult, error) {
	res := FolderResult{Folder: folder}
	dir := filepath.Join(s.root, folder)
	indexPath := filepath.Join(dir, s.indexFile)

	if s.drafts != nil && !s.checkOnly {
		rendered, kept, err := s.drafts.RenderDir(dir)
		if err != nil {
			return res, err
		}
		for _, r := range rendered {
			s.log.Info("[Update] rendered draft", zap.String("topic", filepath.Join(folder, r)))
		}
		for _, k := range kept {
			msg := fmt.Sprintf("draft not rendered: %s exists and was not generated by medref", filepath.Join(folder, k))
			s.log.Warn("[Update] "+msg, zap.String("folder", folder))
			res.Warnings = append(res.Warnings, msg)
		}
		res.Rendered = rendered
	}

	files, err := DiscoverTopics(s.fs, dir, s.indexFile, s.exts)
	if err != nil {
		return res, fmt.Errorf("error listing '%s': %w", dir, err)
	}
	res.Topics = TopicsFromFiles(files)

	raw, err := afero.ReadFile(s.fs, indexPath)
	if err != nil {
		return res, fmt.Errorf("failed to read '%s': %w", indexPath, err)
	}
	text := string(raw)
	updated, err := ReplaceTopicsBlock(text, res.Topics)
	if errors.Is(err, ErrMarkerNotFound) {
		msg := fmt.Sprintf("topics array not found in %s", filepath.Join(folder, s.indexFile))
		s.log.Warn("[Update] "+msg, zap.String("folder", folder))
		res.Skipped = true
		res.Warnings = append(res.Warnings, msg)
		return res, nil
	}

	if s.sizeWarnKB > 0 {
		for _, f := range files {
			sz, err := CheckGzipSize(s.fs, filepath.Join(dir, f), s.sizeWarnKB*1024)
			if err != nil {
				return res, err
			}
			sz.Path = filepath.Join(folder, f)
			if sz.Over() {
				s.log.Warn("[Size] "+sz.String(), zap.String("topic", sz.Path))
			}
			res.Sizes = append(res.Sizes, sz)
		}
	}

	if updated == text {
		s.log.Debug("[Update] index unchanged", zap.String("folder", folder), zap.Int("topics", len(res.Topics)))
		return res, nil
	}
	res.Updated = true
	if s.checkOnly {
		if current, err := ParseTopicsBlock(text); err == nil {
			res.Added, res.Removed = diffTopics(current, res.Topics)
		}
		s.log.Info("[Check] index is stale", zap.String("folder", folder),
			zap.Int("topics", len(res.Topics)), zap.Strings("added", res.Added), zap.Strings("removed", res.Removed))
		return res, nil
	}
	if err := afero.WriteFile(s.fs, indexPath, []byte(updated), 0644); err != nil {
		return res, fmt.Errorf("failed to write '%s': %w", indexPath, err)
	}
	s.log.Info("[Update] rewrote index", zap.String("folder", folder), zap.Int("topics", len(res.Topics)))
	return res, nil
}

// diffTopics returns the files present in want but not in have, and the reverse.
func diffTopics(have, want []Topic) (added, removed []string) {
	inHave := make(map[string]bool, len(have))
	for _, t := range have {
		inHave[t.File] = true
	}
	inWant := make(map[string]bool, len(want))
	for _, t := range want {
		inWant[t.File] = true
		if !inHave[t.File] {
			added = append(added, t.File)
		}
	}
	for _, t := range have {
		if !inWant[t.File] {
			removed = append(removed, t.File)
		}
	}
	return added, removed
}

package library

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func TestDiscoverCategoryDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"lib/index.html":             "root",
		"lib/neurology/index.html":   "n",
		"lib/Cancer/index.html":      "c",
		"lib/allergy/index.html":     "a",
		"lib/.git/index.html":        "hidden",
		"lib/.githooks/index.html":   "hidden",
		"lib/__pycache__/index.html": "tooling",
		"lib/drafts/notes.html":      "no index",
		"lib/readme.html":            "a file",
	})
	require.NoError(t, fs.MkdirAll("lib/odd/index.html", 0755))

	dirs, err := DiscoverCategoryDirs(fs, "lib", "index.html", DefaultSkipDirs)
	require.NoError(t, err)
	require.Equal(t, []string{"allergy", "Cancer", "neurology"}, dirs)
}

func TestDiscoverCategoryDirs_MissingRoot(t *testing.T) {
	_, err := DiscoverCategoryDirs(afero.NewMemMapFs(), "nope", "index.html", nil)
	require.Error(t, err)
}

func TestDiscoverTopics(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"cat/index.html":       "idx",
		"cat/b-topic.html":     "b",
		"cat/A-topic.html":     "a",
		"cat/Upper.HTML":       "u",
		"cat/notes.md":         "draft",
		"cat/image.png":        "png",
		"cat/.hidden.html":     "hidden",
		"cat/nested/deep.html": "nested",
		"cat/c-topic.htm":      "htm",
	})

	files, err := DiscoverTopics(fs, "cat", "index.html", DefaultTopicExtensions)
	require.NoError(t, err)
	require.Equal(t, []string{"A-topic.html", "b-topic.html", "Upper.HTML"}, files)

	files, err = DiscoverTopics(fs, "cat", "index.html", []string{".html", ".htm"})
	require.NoError(t, err)
	require.Equal(t, []string{"A-topic.html", "b-topic.html", "c-topic.htm", "Upper.HTML"}, files)
}

func TestSortFold_Ties(t *testing.T) {
	names := []string{"b.html", "a.html", "A.html"}
	sortFold(names)
	require.Equal(t, []string{"A.html", "a.html", "b.html"}, names)
}

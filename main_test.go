package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CiaranMcAleer/medref/internal/library"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile, verbose = "", false
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSetupThenUpdate(t *testing.T) {
	root := t.TempDir()

	out, err := execute(t, "setup", "--root", root, "--yes")
	require.NoError(t, err)
	require.Contains(t, out, "Setup complete!")
	for _, c := range library.DefaultCategories() {
		require.FileExists(t, filepath.Join(root, c.FolderName(), "index.html"))
	}
	require.FileExists(t, filepath.Join(root, "README.md"))

	require.NoError(t, os.WriteFile(filepath.Join(root, "Neurology", "migraine_acute.html"), []byte("<p>m</p>"), 0644))

	out, err = execute(t, "update", "--root", root)
	require.NoError(t, err)
	require.Contains(t, out, "Checked 21 folders.")

	data, err := os.ReadFile(filepath.Join(root, "Neurology", "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), `{ file: "migraine_acute.html", title: "Migraine Acute" },`)

	out, err = execute(t, "update", "--root", root)
	require.NoError(t, err)
	require.Equal(t, "Checked 21 folders. Updated 0 index files.", strings.TrimSpace(out))
}

func TestUpdateCheckFailsWhenStale(t *testing.T) {
	root := t.TempDir()
	_, err := execute(t, "setup", "--root", root, "--yes")
	require.NoError(t, err)
	_, err = execute(t, "update", "--root", root)
	require.NoError(t, err)

	_, err = execute(t, "update", "--root", root, "--check")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "Paeds", "croup.html"), []byte("c"), 0644))
	before, err := os.ReadFile(filepath.Join(root, "Paeds", "index.html"))
	require.NoError(t, err)

	out, err := execute(t, "update", "--root", root, "--check")
	require.ErrorIs(t, err, library.ErrStale)
	require.Contains(t, out, "Updated 1 index files.")

	after, err := os.ReadFile(filepath.Join(root, "Paeds", "index.html"))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestSetupWithConfigFile(t *testing.T) {
	root := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "medref.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("title: Ward Handbook\ncategories: [Renal Urology, Skin & Nail]\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "setup", "--root", root, "--yes")
	require.NoError(t, err)
	require.DirExists(t, filepath.Join(root, "Renal-Urology"))
	require.DirExists(t, filepath.Join(root, "Skin-and-Nail"))

	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Ward Handbook")
}

func TestUpdateMissingRoot(t *testing.T) {
	_, err := execute(t, "update", "--root", filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}

func TestUpdateCheckAndWatchExclusive(t *testing.T) {
	_, err := execute(t, "update", "--root", t.TempDir(), "--check", "--watch")
	require.Error(t, err)
}

package library

import (
	"math/rand"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// randomText returns n bytes of printable noise that gzip cannot shrink much.
func randomText(n int) string {
	r := rand.New(rand.NewSource(42))
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789+/"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func TestCheckGzipSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"small.html":      "<p>hello</p>",
		"repetitive.html": string(make([]byte, 64*1024)),
		"noisy.html":      randomText(8 * 1024),
	})

	t.Run("under threshold", func(t *testing.T) {
		r, err := CheckGzipSize(fs, "small.html", 1024)
		require.NoError(t, err)
		require.False(t, r.Over())
		require.Greater(t, r.Compressed, int64(0))
		require.NotContains(t, r.String(), "(>")
	})

	t.Run("compresses well", func(t *testing.T) {
		r, err := CheckGzipSize(fs, "repetitive.html", 1024)
		require.NoError(t, err)
		require.False(t, r.Over(), "64KB of zeros should gzip below 1KB, got %d", r.Compressed)
	})

	t.Run("over threshold", func(t *testing.T) {
		r, err := CheckGzipSize(fs, "noisy.html", 1024)
		require.NoError(t, err)
		require.True(t, r.Over())
		require.Contains(t, r.String(), "(> 1.0KB)")
	})

	t.Run("zero threshold never warns", func(t *testing.T) {
		r, err := CheckGzipSize(fs, "noisy.html", 0)
		require.NoError(t, err)
		require.False(t, r.Over())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := CheckGzipSize(fs, "nope.html", 1024)
		require.Error(t, err)
	})
}

package library

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
)

// DefaultSizeWarnKB is the compressed size above which a topic is reported.
const DefaultSizeWarnKB = 1024

// SizeReport is the gzip-compressed size of one topic file.
type SizeReport struct {
	Path       string
	Compressed int64
	Threshold  int64
}

// Over reports whether the compressed size exceeds the threshold.
func (r SizeReport) Over() bool {
	return r.Threshold > 0 && r.Compressed > r.Threshold
}

func (r SizeReport) String() string {
	msg := fmt.Sprintf("%s: compressed size is %.1fKB", r.Path, float64(r.Compressed)/1024)
	if r.Over() {
		msg += fmt.Sprintf(" (> %.1fKB)", float64(r.Threshold)/1024)
	}
	return msg
}

// CheckGzipSize measures how large path is once gzipped, the way it is served.
func CheckGzipSize(fs afero.Fs, path string, threshold int64) (SizeReport, error) {
	f, err := fs.Open(path)
	if err != nil {
		return SizeReport{}, err
	}
	defer f.Close()

	cw := &countingWriter{}
	gz := gzip.NewWriter(cw)
	if _, err := io.Copy(gz, f); err != nil {
		gz.Close()
		return SizeReport{}, fmt.Errorf("failed to compress '%s': %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return SizeReport{}, fmt.Errorf("failed to compress '%s': %w", path, err)
	}
	return SizeReport{Path: path, Compressed: cw.n, Threshold: threshold}, nil
}

type countingWriter struct{ n int64 }

func (w *countingWriter) Write(p []byte) (int, error) {
	w.n += int64(len(p))
	return len(p), nil
}

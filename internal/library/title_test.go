package library

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTitleFromFilename(t *testing.T) {
	tests := map[string]string{
		"diabetes-management.html":      "Diabetes Management",
		"copd_review.html":              "Copd Review",
		"A-topic.html":                  "A Topic",
		"b-topic.html":                  "B Topic",
		"heart--failure__acute.html":    "Heart Failure Acute",
		"-leading-and-trailing-.html":   "Leading And Trailing",
		"ASTHMA_in_ADULTS.html":         "Asthma In Adults",
		"stroke.htm":                    "Stroke",
		"no-extension":                  "No Extension",
		"women's-health-screening.html": "Women's Health Screening",
		".html":                         "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, TitleFromFilename(in))
		})
	}
}

func TestTitleFromFilename_Shape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		stem := rapid.StringMatching(`[a-zA-Z0-9_ -]{0,40}`).Draw(t, "stem")
		title := TitleFromFilename(stem + ".html")
		if strings.ContainsAny(title, "-_") {
			t.Fatalf("title %q still contains a separator", title)
		}
		if title != strings.TrimSpace(title) || strings.Contains(title, "  ") {
			t.Fatalf("title %q has stray whitespace", title)
		}
		if got := len(strings.Fields(title)); got != len(strings.Fields(strings.NewReplacer("-", " ", "_", " ").Replace(stem))) {
			t.Fatalf("title %q has %d words, stem %q differs", title, got, stem)
		}
	})
}

// block.go - The topics array embedded in each category index
package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// StartMarker opens the topics array inside a category index.
const StartMarker = "const topics = ["

// ErrMarkerNotFound means an index has no topics array to rewrite.
var ErrMarkerNotFound = errors.New("topics array not found")

// The end marker is the first "];" that starts its own line after the start marker.
var (
	topicsBlockRE = regexp.MustCompile(`(?s)(` + regexp.QuoteMeta(StartMarker) + `)(.*?)(\n\s*\];)`)
	topicEntryRE  = regexp.MustCompile(`\{\s*file:\s*("(?:[^"\\]|\\.)*")\s*,\s*title:\s*("(?:[^"\\]|\\.)*")\s*\}`)
)

// Topic is a single entry of the topics array.
type Topic struct {
	File  string
	Title string
}

// TopicsFromFiles pairs each filename with its derived title, keeping order.
func TopicsFromFiles(files []string) []Topic {
	topics := make([]Topic, 0, len(files))
	for _, f := range files {
		topics = append(topics, Topic{File: f, Title: TitleFromFilename(f)})
	}
	return topics
}

// RenderEntries renders one array element per line, without a trailing newline.
func RenderEntries(topics []Topic) string {
	lines := make([]string, 0, len(topics))
	for _, t := range topics {
		lines = append(lines, fmt.Sprintf("    { file: %s, title: %s },", jsString(t.File), jsString(t.Title)))
	}
	return strings.Join(lines, "\n")
}

// jsString quotes s as a JavaScript string literal. JSON escapes are a subset
// of JavaScript's, and "<" is escaped so a title cannot close the script element.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ReplaceTopicsBlock rewrites the interior of the first topics array in text.
// Everything outside the array is returned unchanged.
func ReplaceTopicsBlock(text string, topics []Topic) (string, error) {
	loc := topicsBlockRE.FindStringSubmatchIndex(text)
	if loc == nil {
		return text, ErrMarkerNotFound
	}
	// loc[3] ends the start marker, loc[6] begins the end marker.
	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:loc[3]])
	if entries := RenderEntries(topics); entries != "" {
		b.WriteString("\n")
		b.WriteString(entries)
	}
	b.WriteString(text[loc[6]:])
	return b.String(), nil
}

// ParseTopicsBlock reads back the entries currently stored in the first topics array.
func ParseTopicsBlock(text string) ([]Topic, error) {
	m := topicsBlockRE.FindStringSubmatch(text)
	if m == nil {
		return nil, ErrMarkerNotFound
	}
	var body strings.Builder
	for _, line := range strings.Split(m[2], "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	var topics []Topic
	for _, e := range topicEntryRE.FindAllStringSubmatch(body.String(), -1) {
		file, err := strconv.Unquote(e[1])
		if err != nil {
			return nil, fmt.Errorf("bad file literal %s: %w", e[1], err)
		}
		title, err := strconv.Unquote(e[2])
		if err != nil {
			return nil, fmt.Errorf("bad title literal %s: %w", e[2], err)
		}
		topics = append(topics, Topic{File: file, Title: title})
	}
	return topics, nil
}

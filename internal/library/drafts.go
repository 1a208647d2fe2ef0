// drafts.go - Markdown topic drafts rendered into topic pages
package library

import (
	"bytes"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"
	mermaid "go.abhg.dev/goldmark/mermaid"
)

var mdLinkRE = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*\.(?:md|markdown))\)`)

// generatorMark is stamped into every rendered page. A page without it was
// written by hand and is never overwritten.
const generatorMark = `<meta name="generator" content="medref">`

// ErrHandWritten means a draft's target page exists and was not rendered by medref.
var ErrHandWritten = errors.New("page was not generated from a draft")

// DraftRenderer converts Markdown drafts in a category folder into sibling HTML topics.
type DraftRenderer struct {
	fs        afero.Fs
	md        goldmark.Markdown
	indexFile string
}

// NewDraftRenderer creates a renderer with GFM, mermaid diagrams and frontmatter support.
func NewDraftRenderer(fs afero.Fs, indexFile string) *DraftRenderer {
	return &DraftRenderer{
		fs: fs,
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				&mermaid.Extender{},
				&frontmatter.Extender{
					Mode: frontmatter.SetMetadata,
				},
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
		indexFile: indexFile,
	}
}

// RenderDir renders every draft directly inside dir. It returns the HTML files
// whose content changed on disk and the hand-written pages left untouched.
func (dr *DraftRenderer) RenderDir(dir string) (written, kept []string, err error) {
	entries, err := afero.ReadDir(dr.fs, dir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		if e.IsDir() || isHiddenFile(e.Name()) || classifyFile(e.Name(), nil) != "draft" {
			continue
		}
		dst := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())) + ".html"
		if strings.EqualFold(dst, dr.indexFile) {
			continue
		}
		changed, err := dr.RenderFile(filepath.Join(dir, e.Name()), filepath.Join(dir, dst))
		if errors.Is(err, ErrHandWritten) {
			kept = append(kept, dst)
			continue
		}
		if err != nil {
			return written, kept, err
		}
		if changed {
			written = append(written, dst)
		}
	}
	return written, kept, nil
}

// RenderFile converts one draft and writes dst only when its bytes differ. An
// existing dst without the generator mark is left alone and ErrHandWritten is
// returned.
func (dr *DraftRenderer) RenderFile(src, dst string) (bool, error) {
	old, err := afero.ReadFile(dr.fs, dst)
	exists := err == nil
	if exists && !bytes.Contains(old, []byte(generatorMark)) {
		return false, fmt.Errorf("%s: %w", dst, ErrHandWritten)
	}

	content, err := afero.ReadFile(dr.fs, src)
	if err != nil {
		return false, fmt.Errorf("failed to read markdown file '%s': %w", src, err)
	}
	page, err := dr.Render(filepath.Base(src), content)
	if err != nil {
		return false, fmt.Errorf("failed to render markdown '%s': %w", src, err)
	}
	if exists && bytes.Equal(old, page) {
		return false, nil
	}
	if err := afero.WriteFile(dr.fs, dst, page, 0644); err != nil {
		return false, fmt.Errorf("failed to write HTML file '%s': %w", dst, err)
	}
	return true, nil
}

// Render produces the full topic page for a draft named name.
func (dr *DraftRenderer) Render(name string, content []byte) ([]byte, error) {
	content = replaceMdLinks(content)

	parserCtx := parser.NewContext()
	root := dr.md.Parser().Parse(text.NewReader(content), parser.WithContext(parserCtx))

	var metaData map[string]interface{}
	if metaDoc, ok := root.(interface{ Meta() map[string]interface{} }); ok {
		metaData = metaDoc.Meta()
	}
	if metaData == nil {
		metaData = map[string]interface{}{}
	}

	var buf bytes.Buffer
	if err := dr.md.Renderer().Render(&buf, content, root); err != nil {
		return nil, err
	}

	title := TitleFromFilename(name)
	if t, ok := metaData["title"].(string); ok && strings.TrimSpace(t) != "" {
		title = strings.TrimSpace(t)
	}
	return renderTopicPage(topicPage{
		Title:     title,
		IndexFile: dr.indexFile,
		Meta:      metaData,
		Content:   htmltemplate.HTML(buf.String()),
	})
}

// replaceMdLinks points links at sibling drafts to their rendered .html pages.
func replaceMdLinks(content []byte) []byte {
	return mdLinkRE.ReplaceAllFunc(content, func(match []byte) []byte {
		s := string(match)
		s = strings.Replace(s, ".markdown)", ".html)", 1)
		s = strings.Replace(s, ".md)", ".html)", 1)
		return []byte(s)
	})
}

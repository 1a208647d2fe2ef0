// templates.go - Embedded page templates
package library

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"text/template"
)

//go:embed templates/*.html templates/*.md
var embeddedFiles embed.FS

// The index pages carry inline JavaScript with no template actions, so they
// are rendered as text and escape their few values with the "html" builtin.
var (
	categoryTmpl = template.Must(template.ParseFS(embeddedFiles, "templates/category.html"))
	rootTmpl     = template.Must(template.ParseFS(embeddedFiles, "templates/root.html"))
	readmeTmpl   = template.Must(template.ParseFS(embeddedFiles, "templates/readme.md"))
	topicTmpl    = htmltemplate.Must(htmltemplate.ParseFS(embeddedFiles, "templates/topic.html"))
)

type categoryPage struct {
	DisplayName string
	RootIndex   string
}

type rootPage struct {
	Title      string
	IndexFile  string
	Categories []Category
}

type topicPage struct {
	Title     string
	IndexFile string
	Meta      map[string]interface{}
	Content   htmltemplate.HTML
}

func renderCategoryIndex(c Category, rootIndex string) ([]byte, error) {
	var buf bytes.Buffer
	err := categoryTmpl.Execute(&buf, categoryPage{DisplayName: c.DisplayName(), RootIndex: rootIndex})
	return buf.Bytes(), err
}

func renderRootIndex(title, indexFile string, cats []Category) ([]byte, error) {
	var buf bytes.Buffer
	err := rootTmpl.Execute(&buf, rootPage{Title: title, IndexFile: indexFile, Categories: cats})
	return buf.Bytes(), err
}

func renderReadme(title, indexFile string, cats []Category) ([]byte, error) {
	var buf bytes.Buffer
	err := readmeTmpl.Execute(&buf, rootPage{Title: title, IndexFile: indexFile, Categories: cats})
	return buf.Bytes(), err
}

func renderTopicPage(p topicPage) ([]byte, error) {
	var buf bytes.Buffer
	err := topicTmpl.Execute(&buf, p)
	return buf.Bytes(), err
}

// Package reportfile persists markdown reports on disk.
package reportfile

import (
	"os"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

type Writer struct {
	Path string
}

// Reset truncates the report file, creating it if needed.
func (w Writer) Reset() error {
	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (w Writer) Append(contents string) error {
	f, err := os.OpenFile(w.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(contents)
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (w Writer) Contents() (string, error) {
	contents, err := os.ReadFile(w.Path)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

// RenderHTML turns a markdown report into a standalone html page.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: "Grade Calculation",
	})
	return markdown.Render(doc, renderer)
}

func WriteHTML(path, md string) error {
	return os.WriteFile(path, RenderHTML(md), 0644)
}

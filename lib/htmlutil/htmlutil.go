package htmlutil

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("gradecalc.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) || unicode.IsSpace(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText drops non-printable characters, trims the ends and collapses
// runs of inner whitespace into a single space. It is meant for display,
// cell data should stay as close to the page as possible.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}

// TableRows returns the trimmed text of the `td` cells of every `tr` in sel,
// rows and cells in document order. Cells of nested tables count towards
// every enclosing row. Header cells (`th`) are not included, rows without
// any `td` come back empty.
func TableRows(ctx context.Context, sel *goquery.Selection) [][]string {
	_, span := tracer.Start(ctx, "TableRows")
	defer span.End()

	rows := [][]string{}
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := []string{}
		for _, n := range tr.Find("td").Nodes {
			cells = append(cells, strings.TrimSpace(GetText(n)))
		}
		rows = append(rows, cells)
	})

	span.AddEvent("table", trace.WithAttributes(
		attribute.Int("rows", len(rows)),
	))
	return rows
}

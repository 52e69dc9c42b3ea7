// Package markdown recovers table structure from Markdown documents.
//
// Documents are rendered to HTML with goldmark (GFM tables, raw HTML passed
// through, since the upstream READMEs mix pipe tables with inline <table>
// markup) and the rendered tree is walked with goquery. Only table body rows
// are kept; everything else in the document is ignored.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Hyperlink is an anchor found inside a cell.
type Hyperlink struct {
	Href string
	Text string
}

// Cell is one table data cell.
type Cell struct {
	Text  string
	Links []Hyperlink
}

// Href returns the first hyperlink target in the cell, or "".
func (c Cell) Href() string {
	if len(c.Links) == 0 {
		return ""
	}
	return c.Links[0].Href
}

// Row is one body row of a table.
type Row []Cell

// Cell returns the cell at index i, or an empty Cell when the row is short.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// Table is the body rows of one table, in document order.
type Table []Row

// Rows flattens tables into a single row stream, preserving order.
func Rows(tables []Table) []Row {
	var out []Row
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// Extractor converts Markdown into tables. It is stateless and safe for
// concurrent use.
type Extractor struct {
	engine goldmark.Markdown
}

// NewExtractor builds an Extractor with GFM enabled and raw HTML preserved.
func NewExtractor() *Extractor {
	return &Extractor{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ExtractTables returns every table in the document, in document order.
// Malformed table syntax never fails: rows that do not form cells are simply
// absent. An error is returned only if rendering itself breaks down.
func (e *Extractor) ExtractTables(md string) ([]Table, error) {
	var buf bytes.Buffer
	if err := e.engine.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return nil, fmt.Errorf("parsing rendered markdown: %w", err)
	}

	var tables []Table
	doc.Find("table").Each(func(_ int, t *goquery.Selection) {
		var table Table
		// ChildrenFiltered keeps rows of nested tables out of the parent.
		t.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, tr *goquery.Selection) {
			row := parseRow(tr)
			if len(row) > 0 {
				table = append(table, row)
			}
		})
		tables = append(tables, table)
	})
	return tables, nil
}

func parseRow(tr *goquery.Selection) Row {
	var row Row
	tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
		cell := Cell{Text: cleanText(td.Text())}
		td.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			cell.Links = append(cell.Links, Hyperlink{
				Href: strings.TrimSpace(href),
				Text: cleanText(a.Text()),
			})
		})
		row = append(row, cell)
	})
	return row
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(s)
}

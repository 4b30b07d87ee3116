package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML writes a document with a table of daily readings to w. values holds NaN
// for days without reading; their rows get class "missing". If start is not
// zero, a column with calendar dates is included.
func HTML(w io.Writer, title string, values []float64, start time.Time) error {
	table := element(atom.Table)
	head := element(atom.Tr)
	head.AppendChild(cell(atom.Th, "Day"))
	if !start.IsZero() {
		head.AppendChild(cell(atom.Th, "Date"))
	}
	head.AppendChild(cell(atom.Th, "Reading"))
	thead := element(atom.Thead)
	thead.AppendChild(head)
	table.AppendChild(thead)
	tbody := element(atom.Tbody)
	for day, v := range values {
		row := element(atom.Tr)
		row.AppendChild(cell(atom.Td, fmt.Sprintf("%d", day)))
		if !start.IsZero() {
			row.AppendChild(cell(atom.Td, start.AddDate(0, 0, day).Format("2006-01-02")))
		}
		if math.IsNaN(v) {
			row.Attr = append(row.Attr, html.Attribute{Key: "class", Val: "missing"})
			row.AppendChild(cell(atom.Td, ""))
		} else {
			row.AppendChild(cell(atom.Td, fmt.Sprintf("%.1f", v)))
		}
		tbody.AppendChild(row)
	}
	table.AppendChild(tbody)
	//
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html)
	hd := element(atom.Head)
	hd.AppendChild(cell(atom.Title, title))
	root.AppendChild(hd)
	body := element(atom.Body)
	body.AppendChild(cell(atom.H1, title))
	body.AppendChild(table)
	root.AppendChild(body)
	doc.AppendChild(root)
	tracer().Debugf("rendering HTML table of %d days", len(values))
	return html.Render(w, doc)
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

// cell creates an element containing just text.
func cell(a atom.Atom, text string) *html.Node {
	n := element(a)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return n
}

package export

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/seating/pkg/seating/assign"
)

// HTMLOptions controls the printable seating chart
type HTMLOptions struct {
	Title        string
	MaxTableSize int // when > 0, a note is added if any table is short
}

// HTML writes a standalone seating chart page: one section per table
// listing every attendee with their description.
func HTML(w io.Writer, tables []assign.Table, opts HTMLOptions) error {
	if opts.Title == "" {
		opts.Title = "Table Assignments"
	}

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "")
	doc.AppendChild(root)

	head := element(atom.Head, "")
	meta := element(atom.Meta, "")
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	head.AppendChild(withText(element(atom.Title, ""), opts.Title))
	root.AppendChild(head)

	body := element(atom.Body, "")
	root.AppendChild(body)

	body.AppendChild(withText(element(atom.H1, ""), opts.Title))
	body.AppendChild(withText(element(atom.P, "stats"),
		fmt.Sprintf("%d people, %d tables", countMembers(tables), len(tables))))

	short := false
	for _, table := range tables {
		if opts.MaxTableSize > 0 && len(table.Members) < opts.MaxTableSize {
			short = true
		}
		body.AppendChild(tableSection(table))
	}

	if short {
		body.AppendChild(withText(element(atom.P, "note"),
			fmt.Sprintf("Some tables have fewer than %d people. Table sizes are balanced while optimizing for diversity.", opts.MaxTableSize)))
	}

	return html.Render(w, doc)
}

func tableSection(table assign.Table) *html.Node {
	section := element(atom.Section, "table")
	section.Attr = append(section.Attr, html.Attribute{Key: "id", Val: fmt.Sprintf("table-%d", table.ID)})

	section.AppendChild(withText(element(atom.H2, ""), fmt.Sprintf("Table %d", table.ID)))
	section.AppendChild(withText(element(atom.Span, "badge"), fmt.Sprintf("%d people", len(table.Members))))

	list := element(atom.Ul, "attendees")
	for _, person := range table.Members {
		item := element(atom.Li, "")
		item.AppendChild(withText(element(atom.Strong, "name"), person.Name))
		item.AppendChild(withText(element(atom.Span, "description"), person.Description))
		list.AppendChild(item)
	}
	section.AppendChild(list)

	return section
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

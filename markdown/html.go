package markdown

import (
	"html"
	"strings"

	"github.com/npillmayer/mdxjsx"
)

// RenderHTML renders a document tree as HTML. Tags and expressions produce
// no output. Text of flow constructs in trailing-text mode is rendered as a
// paragraph.
func RenderHTML(doc *Node) string {
	var b strings.Builder
	render(&b, doc.Children)
	return b.String()
}

func render(b *strings.Builder, nodes []*Node) {
	first := true
	sep := func() {
		if !first {
			b.WriteByte('\n')
		}
		first = false
	}
	for _, n := range nodes {
		switch n.Kind {
		case BlockQuote:
			sep()
			b.WriteString("<blockquote>\n")
			var inner strings.Builder
			render(&inner, n.Children)
			if inner.Len() > 0 {
				b.WriteString(inner.String())
				b.WriteByte('\n')
			}
			b.WriteString("</blockquote>")
		case Paragraph:
			sep()
			b.WriteString("<p>")
			b.WriteString(n.inline())
			b.WriteString("</p>")
		case Flow:
			if text := n.inline(); strings.TrimSpace(text) != "" {
				sep()
				b.WriteString("<p>")
				b.WriteString(strings.TrimSpace(text))
				b.WriteString("</p>")
			}
		}
	}
}

// inline renders the text of a paragraph or flow node. Everything within
// JSX tokens and expressions is skipped.
func (n *Node) inline() string {
	var b strings.Builder
	depth := 0
	for _, e := range n.Events {
		typ := e.Token.Type
		if typ.IsJSX() || typ == mdxjsx.FlowExpression {
			if e.Enter {
				depth++
			} else {
				depth--
			}
			continue
		}
		if !e.Enter || depth > 0 {
			continue
		}
		switch typ {
		case mdxjsx.Data, mdxjsx.ChunkText:
			b.WriteString(html.EscapeString(n.Text(e.Token)))
		case mdxjsx.LineEnding:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

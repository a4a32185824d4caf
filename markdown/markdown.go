/*
Package markdown is a small document parser hosting the MDX JSX constructs.

It knows just enough markdown to drive the constructs the way a full
markdown parser would: paragraphs, block quotes with lazy continuation
lines, and construct tables for flow and text position.

	ext, _ := syntax.New()
	p := markdown.NewParser(ext, markdown.WithFlowExpressions(nil, false))
	html, err := p.Render("a <b/> c.")  // <p>a  c.</p>

Flow constructs are tried at the start of every line which is indented by
less than four columns. Paragraphs collect all other lines, and are
tokenized with the text constructs. JSX and expressions are not rendered.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/syntax"
	"github.com/npillmayer/mdxjsx/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.markdown'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.markdown")
}

// Kind is the kind of a document node.
type Kind int

// Kinds of document nodes.
const (
	Document Kind = iota
	BlockQuote
	Paragraph
	Flow // a flow construct
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "document"
	case BlockQuote:
		return "blockquote"
	case Paragraph:
		return "paragraph"
	case Flow:
		return "flow"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Node is a node of the document tree. Paragraphs and flow nodes hold the
// events of their tokenizer.
type Node struct {
	Kind      Kind
	Construct string // name of the construct of a flow node
	Children  []*Node
	Events    []tokenizer.Event
	tok       *tokenizer.Tokenizer
}

// Text returns the source text of a token of the node.
func (n *Node) Text(tok *tokenizer.Token) string {
	if n.tok == nil {
		return ""
	}
	return n.tok.Text(tok)
}

// Span returns the byte offsets covered by the tokens of a node and its
// children. It is the zero span for a node without tokens.
func (n *Node) Span() mdxjsx.Span {
	var span mdxjsx.Span
	extend := func(other mdxjsx.Span) {
		if span.IsNull() {
			span = other
		} else if !other.IsNull() {
			span = span.Extend(other)
		}
	}
	for _, e := range n.Events {
		if e.Enter {
			extend(e.Token.Span())
		}
	}
	for _, child := range n.Children {
		extend(child.Span())
	}
	return span
}

// Parser parses documents.
type Parser struct {
	host *tokenizer.Host
}

// Option configures a parser.
type Option func(p *Parser)

// WithFlowExpressions registers the construct for expressions in flow
// position. bridge may be nil.
func WithFlowExpressions(bridge *expression.Bridge, attach bool) Option {
	return func(p *Parser) {
		p.register(true, expression.FlowConstruct(bridge, attach))
	}
}

// WithConstructs registers additional constructs. Flow constructs are
// tried in order of registration, before those of the extension.
func WithConstructs(flow, text []*tokenizer.Construct) Option {
	return func(p *Parser) {
		for _, c := range flow {
			p.register(true, c)
		}
		for _, c := range text {
			p.register(false, c)
		}
	}
}

// NewParser creates a parser using the constructs of an extension.
func NewParser(ext *syntax.Extension, opts ...Option) *Parser {
	p := &Parser{host: &tokenizer.Host{
		Flow: make(map[mdxjsx.Code][]*tokenizer.Construct),
		Text: make(map[mdxjsx.Code][]*tokenizer.Construct),
	}}
	for _, opt := range opts {
		opt(p)
	}
	if ext != nil {
		for _, c := range ext.Flow {
			p.register(true, c)
		}
		for _, c := range ext.Text {
			p.register(false, c)
		}
	}
	return p
}

func (p *Parser) register(flow bool, c *tokenizer.Construct) {
	if flow {
		p.host.Flow[c.Trigger] = append(p.host.Flow[c.Trigger], c)
	} else {
		p.host.Text[c.Trigger] = append(p.host.Text[c.Trigger], c)
	}
}

// Parse parses a document. The first grammar error of any construct stops
// parsing and is returned.
func (p *Parser) Parse(src string) (*Node, error) {
	codes, points := mdxjsx.PreprocessString(src)
	doc := &Node{Kind: Document}
	lines := splitLines(codes, points)
	if len(lines) == 1 && len(lines[0].codes) == 0 {
		return doc, nil
	}
	children, _, err := p.blocks(lines)
	if err != nil {
		return nil, err
	}
	doc.Children = children
	return doc, nil
}

// Render parses a document and renders it as HTML.
func (p *Parser) Render(src string) (string, error) {
	doc, err := p.Parse(src)
	if err != nil {
		return "", err
	}
	return RenderHTML(doc), nil
}

// --- Blocks ----------------------------------------------------------------

// blocks parses the lines of a (sub-)document. It stops at the first lazy
// line which does not continue a paragraph and returns the number of lines
// consumed.
func (p *Parser) blocks(lines []line) ([]*Node, int, error) {
	var nodes []*Node
	var para []line
	closePara := func() error {
		if len(para) == 0 {
			return nil
		}
		n, err := p.paragraph(para)
		para = nil
		if err != nil {
			return err
		}
		nodes = append(nodes, n)
		return nil
	}
	i := 0
	for i < len(lines) {
		ln := lines[i]
		if ln.lazy && len(para) == 0 {
			break
		}
		if ln.isBlank() {
			if err := closePara(); err != nil {
				return nil, i, err
			}
			i++
			continue
		}
		if !ln.lazy && ln.quotePrefix() > 0 {
			if err := closePara(); err != nil {
				return nil, i, err
			}
			quote, n, err := p.blockQuote(lines[i:])
			if err != nil {
				return nil, i, err
			}
			nodes = append(nodes, quote)
			i += n
			continue
		}
		if _, width := ln.indent(); width < 4 {
			if ln.lazy {
				if p.startsFlow(lines[i:]) {
					break // not a continuation but a new block of the parent
				}
			} else {
				flow, n, err := p.flow(lines[i:])
				if err != nil {
					return nil, i, err
				}
				if flow != nil {
					if err := closePara(); err != nil {
						return nil, i, err
					}
					nodes = append(nodes, flow)
					i += n
					continue
				}
			}
		}
		para = append(para, ln)
		i++
	}
	if err := closePara(); err != nil {
		return nil, i, err
	}
	return nodes, i, nil
}

// blockQuote collects the lines of a block quote starting at lines[0]:
// lines with a quote marker and lines lazily continuing it, up to a blank
// line.
func (p *Parser) blockQuote(lines []line) (*Node, int, error) {
	var sub []line
	for j := 0; j < len(lines) && !lines[j].isBlank(); j++ {
		ln := lines[j]
		if k := ln.quotePrefix(); k > 0 && !ln.lazy {
			sub = append(sub, ln.from(k))
		} else {
			ln.lazy = true
			sub = append(sub, ln)
		}
	}
	children, n, err := p.blocks(sub)
	if err != nil {
		return nil, 0, err
	}
	tracer().Debugf("block quote of %d lines at line %d", n, lines[0].number)
	return &Node{Kind: BlockQuote, Children: children}, n, nil
}

// flowStream is the input of flow constructs starting at lines[0], after
// the indentation of the first line.
func flowStream(lines []line) (*stream, mdxjsx.Code) {
	k, _ := lines[0].indent()
	in := make([]line, len(lines))
	copy(in, lines)
	in[0] = lines[0].from(k)
	return join(in), lines[0].first()
}

// flow tries the flow constructs at the start of lines[0]. It returns a nil
// node if none matches.
func (p *Parser) flow(lines []line) (*Node, int, error) {
	s, first := flowStream(lines)
	for _, construct := range p.host.Flow[first] {
		t := tokenizer.New(s.codes, s.points, p.hostFor(s))
		err := t.Attempt(func() error { return construct.Tokenize(t) })
		if errors.Is(err, tokenizer.ErrNoMatch) {
			continue
		} else if err != nil {
			return nil, 0, err
		}
		n := s.lineOf(t.Index()) + 1
		tracer().Debugf("%s at line %d, %d lines", construct.Name, lines[0].number, n)
		return &Node{Kind: Flow, Construct: construct.Name, Events: t.Events(), tok: t}, n, nil
	}
	return nil, 0, nil
}

// startsFlow checks if a flow construct matches at the start of lines[0].
func (p *Parser) startsFlow(lines []line) bool {
	s, first := flowStream(lines)
	for _, construct := range p.host.Flow[first] {
		t := tokenizer.New(s.codes, s.points, p.hostFor(s))
		if t.Check(func() error { return construct.Tokenize(t) }) {
			return true
		}
	}
	return false
}

// hostFor returns the host for tokenizing a stream, knowing about its lazy
// lines.
func (p *Parser) hostFor(s *stream) *tokenizer.Host {
	return &tokenizer.Host{Flow: p.host.Flow, Text: p.host.Text, Lazy: s.lazy}
}

// --- Inlines ---------------------------------------------------------------

// paragraph tokenizes the lines of a paragraph with the text constructs.
// The indentation of lines is a line prefix, trailing white space of the
// last line is dropped.
func (p *Parser) paragraph(lines []line) (*Node, error) {
	in := make([]line, len(lines))
	prefix := make([]int, len(lines))
	for i, ln := range lines {
		if i == len(lines)-1 {
			ln = ln.trimEnd()
		}
		in[i] = ln
		prefix[i], _ = ln.indent()
	}
	s := join(in)
	t := tokenizer.New(s.codes, s.points, p.hostFor(s))
	for !t.AtEOF() {
		if ln := s.lineOf(t.Index()); t.Index() == s.starts[ln] && prefix[ln] > 0 {
			t.Enter(mdxjsx.LinePrefix)
			for i := 0; i < prefix[ln]; i++ {
				t.Consume()
			}
			t.Exit(mdxjsx.LinePrefix)
			continue
		}
		c := t.Current()
		if mdxjsx.IsLineEnding(c) {
			t.Enter(mdxjsx.LineEnding)
			t.Consume()
			t.Exit(mdxjsx.LineEnding)
			continue
		}
		matched, err := p.text(t, c)
		if err != nil {
			return nil, err
		}
		if matched {
			continue
		}
		t.Enter(mdxjsx.Data)
		t.Consume()
		for c := t.Current(); c != mdxjsx.EOF && !mdxjsx.IsLineEnding(c) && len(p.host.Text[c]) == 0; c = t.Current() {
			t.Consume()
		}
		t.Exit(mdxjsx.Data)
	}
	return &Node{Kind: Paragraph, Events: t.Events(), tok: t}, nil
}

// text tries the text constructs triggered by c.
func (p *Parser) text(t *tokenizer.Tokenizer, c mdxjsx.Code) (bool, error) {
	for _, construct := range p.host.Text[c] {
		err := t.Attempt(func() error { return construct.Tokenize(t) })
		if err == nil {
			return true, nil
		} else if !errors.Is(err, tokenizer.ErrNoMatch) {
			return false, err
		}
	}
	return false, nil
}

package expression

import (
	"errors"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// Factory tokenizes an expression in braces, starting at `{`.
//
// Without a parser, braces are counted and the expression ends at the `}`
// which balances the opening one. With a parser, every `}` is tried as the
// end of the expression: if the text up to there does not parse, the `}`
// is taken as part of the expression and scanning goes on. This makes
// braces in strings and comments work (`{"}"}`).
type Factory struct {
	Bridge     *Bridge // nil if no parser is attached
	Attach     bool    // attach parse results to the expression token
	Context    mdxjsx.Context
	Kind       mdxjsx.TokType // whole expression
	MarkerKind mdxjsx.TokType // `{` and `}`
	ValueKind  mdxjsx.TokType // chunks of the body
	Mode       Mode
	AllowEmpty bool
	AllowLazy  bool // lines may lazily continue a container
}

// Tokenize is a construct tokenizer for expressions.
func (f *Factory) Tokenize(t *tokenizer.Tokenizer) error {
	if t.Current() != '{' {
		return tokenizer.ErrNoMatch
	}
	tok := t.EnterIn(f.Kind, f.Context)
	f.marker(t)
	startLine := t.Now().Line
	var value valueBuilder
	var lastErr error
	size := 0
	for {
		c := t.Current()
		switch {
		case c == mdxjsx.EOF:
			if lastErr != nil {
				return lastErr
			}
			return t.Errorf(errSource, tokenizer.RuleUnexpectedEOF,
				"Unexpected end of file in expression, expected a corresponding closing brace for `{`")
		case mdxjsx.IsLineEnding(c):
			t.Enter(mdxjsx.LineEnding)
			value.add(c, t.Now())
			t.Consume()
			t.Exit(mdxjsx.LineEnding)
			if now := t.Now(); now.Line != startLine && !f.AllowLazy && t.IsLazy(now.Line) {
				return t.Errorf(errSource, tokenizer.RuleUnexpectedLazy,
					"Unexpected lazy line in expression in container, expected line to be prefixed with `>` when in a block quote, whitespace when in a list, etc")
			}
		case c == '}' && size == 0:
			src := value.source(t.Now())
			prog, err := f.parse(src)
			if err == nil {
				f.marker(t)
				t.Exit(f.Kind)
				if f.Attach && prog != nil {
					tok.Estree = prog
				}
				return nil
			}
			var gerr *tokenizer.GrammarError
			if !errors.As(err, &gerr) || gerr.RuleID != tokenizer.RuleCouldNotParse {
				return err
			}
			lastErr = err
			t.EnterIn(f.ValueKind, f.Context)
			value.add(c, t.Now())
			t.Consume()
			f.chunk(t, &value, &size)
		default:
			t.EnterIn(f.ValueKind, f.Context)
			f.chunk(t, &value, &size)
		}
	}
}

// chunk consumes the body of a line, up to a line ending, EOF or a closing
// brace, and exits the value token.
func (f *Factory) chunk(t *tokenizer.Tokenizer, value *valueBuilder, size *int) {
	for {
		c := t.Current()
		if c == mdxjsx.EOF || mdxjsx.IsLineEnding(c) || (c == '}' && *size == 0) {
			break
		}
		if f.Bridge == nil {
			if c == '{' {
				*size++
			} else if c == '}' {
				*size--
			}
		}
		value.add(c, t.Now())
		t.Consume()
	}
	t.Exit(f.ValueKind)
}

func (f *Factory) marker(t *tokenizer.Tokenizer) {
	t.EnterIn(f.MarkerKind, f.Context)
	t.Consume()
	t.Exit(f.MarkerKind)
}

func (f *Factory) parse(src Source) (*estree.Program, error) {
	if f.Bridge == nil || f.Bridge.Parser == nil {
		return nil, nil
	}
	return f.Bridge.Parse(src, f.Mode, f.AllowEmpty)
}

// --- Collecting the value --------------------------------------------------

// valueBuilder collects the text of an expression together with the points
// its bytes come from. Virtual spaces have no text and are skipped.
type valueBuilder struct {
	text   []byte
	points []mdxjsx.Point
}

func (vb *valueBuilder) add(c mdxjsx.Code, p mdxjsx.Point) {
	s := c.Text()
	for i := 0; i < len(s); i++ {
		vb.text = append(vb.text, s[i])
		vb.points = append(vb.points, p)
		if c == mdxjsx.CRLF && i == 0 {
			p.Offset++
			p.Column++
		}
	}
}

// source returns the value collected so far, ending at point end.
func (vb *valueBuilder) source(end mdxjsx.Point) Source {
	points := make([]mdxjsx.Point, len(vb.points), len(vb.points)+1)
	copy(points, vb.points)
	return Source{Value: string(vb.text), Points: append(points, end)}
}

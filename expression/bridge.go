package expression

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// source of grammar errors reported by this package
const errSource = "mdx-expression"

// Mode tells which shape of expression is expected.
type Mode int

// Modes of expressions.
const (
	Single Mode = iota // exactly one expression, e.g. an attribute value
	Spread             // exactly one spread, e.g. `{...props}` in a tag
)

func (m Mode) String() string {
	if m == Spread {
		return "spread"
	}
	return "single"
}

// Source is the text between braces, together with the document point of
// every byte. Points has one entry more than Value has bytes; the last one
// is the point of the closing brace.
type Source struct {
	Value  string
	Points []mdxjsx.Point
}

// MakeSource creates a source for a value which starts at a document point
// and does not span lines.
func MakeSource(value string, start mdxjsx.Point) Source {
	points := make([]mdxjsx.Point, 0, len(value)+1)
	p := start
	for _, r := range value {
		n := utf8.RuneLen(r)
		for i := 0; i < n; i++ {
			points = append(points, p)
		}
		p.Column++
		p.Offset += n
	}
	return Source{Value: value, Points: append(points, p)}
}

// Position maps an offset within the value to a document position.
func (src Source) Position(offset int) estree.Position {
	p := src.point(offset)
	return estree.Position{Line: p.Line, Column: p.Column - 1, Offset: p.Offset}
}

func (src Source) point(offset int) mdxjsx.Point {
	if len(src.Points) == 0 {
		return mdxjsx.Point{Line: 1, Column: 1}
	}
	if offset < 0 {
		offset = 0
	} else if offset >= len(src.Points) {
		offset = len(src.Points) - 1
	}
	return src.Points[offset]
}

func (src Source) errorf(offset int, rule string, format string, args ...interface{}) *tokenizer.GrammarError {
	return &tokenizer.GrammarError{
		Point:   src.point(offset),
		Message: fmt.Sprintf(format, args...),
		Source:  errSource,
		RuleID:  rule,
	}
}

// remap replaces every offset of a tree, which is relative to the value, by
// the corresponding document position.
func (src Source) remap(prog *estree.Program) {
	estree.Walk(prog, func(n estree.Node) bool {
		loc := n.Location()
		loc.Start = src.Position(loc.Start.Offset)
		loc.End = src.Position(loc.End.Offset)
		return true
	})
}

// --- Bridge ----------------------------------------------------------------

// Bridge hands expressions to a parser and checks the results.
type Bridge struct {
	Parser  Parser
	Options Options
}

// Parse parses the value of src in a given mode. An empty value is accepted
// only if allowEmpty is set; the resulting program then has no body.
//
// Errors are of type *tokenizer.GrammarError. Syntax errors reported by
// the parser have rule id tokenizer.RuleCouldNotParse; they may vanish if
// more input is added to the value. All other errors are final.
func (b *Bridge) Parse(src Source, mode Mode, allowEmpty bool) (*estree.Program, error) {
	opts := b.Options.Merge(DefaultOptions)
	var prog *estree.Program
	var err error
	if mode == Spread {
		prog, err = b.parseSpread(src, opts)
	} else {
		prog, err = b.parseSingle(src, opts, allowEmpty)
	}
	if err != nil {
		tracer().Debugf("expression %q: %v", src.Value, err)
		return nil, err
	}
	src.remap(prog)
	return prog, nil
}

func (b *Bridge) parseSingle(src Source, opts Options, allowEmpty bool) (*estree.Program, error) {
	prog, err := b.Parser.ParseProgram(src.Value, opts)
	if err != nil {
		return nil, couldNotParse(src, err, 0)
	}
	switch len(prog.Body) {
	case 0:
		if allowEmpty {
			return prog, nil
		}
		return nil, src.errorf(0, tokenizer.RuleUnexpectedEmpty,
			"Unexpected empty expression, expected a value between braces")
	case 1:
		if _, ok := prog.Body[0].(*estree.ExpressionStatement); ok {
			return prog, nil
		}
		return nil, src.errorf(0, tokenizer.RuleUnexpectedShape,
			"Unexpected `%s` in code: expected an expression", prog.Body[0].Type())
	}
	return nil, src.errorf(prog.Body[1].Location().Start.Offset, tokenizer.RuleUnexpectedShape,
		"Unexpected extra content in expression, expected a single expression")
}

func (b *Bridge) parseSpread(src Source, opts Options) (*estree.Program, error) {
	value := src.Value
	start := skipTrivia(value, 0)
	if start == len(value) {
		return nil, src.errorf(0, tokenizer.RuleUnexpectedEmpty,
			"Unexpected empty expression, expected an object spread (`{...spread}`)")
	}
	if !strings.HasPrefix(value[start:], "...") {
		node, err := b.Parser.ParseExpressionAt(value, start, opts)
		if err != nil {
			return nil, couldNotParse(src, err, start)
		}
		return nil, src.errorf(start, tokenizer.RuleUnexpectedShape,
			"Unexpected `%s` in code: expected an object spread (`{...spread}`)", node.Type())
	}
	arg, err := b.Parser.ParseExpressionAt(value, start+3, opts)
	if err != nil {
		return nil, couldNotParse(src, err, start+3)
	}
	end := arg.Location().End.Offset
	if rest := skipTrivia(value, end); rest < len(value) {
		if value[rest] == ',' {
			return nil, src.errorf(rest, tokenizer.RuleUnexpectedShape,
				"Unexpected extra content in spread: only a single spread is supported")
		}
		return nil, src.errorf(rest, tokenizer.RuleCouldNotParse,
			"Could not parse expression: Unexpected content after expression")
	}
	spread := &estree.SpreadElement{Argument: arg}
	setRange(spread, start, end)
	obj := &estree.ObjectExpression{Properties: []estree.Node{spread}}
	setRange(obj, 0, len(value))
	stmt := &estree.ExpressionStatement{Expression: obj}
	setRange(stmt, 0, len(value))
	prog := &estree.Program{Body: []estree.Node{stmt}, SourceType: opts.SourceType}
	setRange(prog, 0, len(value))
	return prog, nil
}

func couldNotParse(src Source, err error, offset int) *tokenizer.GrammarError {
	var perr *ParseError
	if errors.As(err, &perr) {
		return src.errorf(perr.Offset, tokenizer.RuleCouldNotParse,
			"Could not parse expression: %s", perr.Message)
	}
	return src.errorf(offset, tokenizer.RuleCouldNotParse, "Could not parse expression: %s", err.Error())
}

func setRange(n estree.Node, from, to int) {
	loc := n.Location()
	loc.Start.Offset = from
	loc.End.Offset = to
}

// skipTrivia returns the offset of the first character at or after i which
// is neither white space nor part of a comment. An unterminated block
// comment is not trivia.
func skipTrivia(s string, i int) int {
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r) || r == '\uFEFF':
			i += size
		case strings.HasPrefix(s[i:], "//"):
			j := strings.IndexAny(s[i:], "\n\r\u2028\u2029")
			if j < 0 {
				return len(s)
			}
			i += j
		case strings.HasPrefix(s[i:], "/*"):
			j := strings.Index(s[i+2:], "*/")
			if j < 0 {
				return i
			}
			i += j + 4
		default:
			return i
		}
	}
	return i
}

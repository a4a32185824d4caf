/*
Package ecma parses a subset of ECMAScript expressions.

It is small on purpose: it parses what MDX documents typically put between
braces, i.e. literals, identifiers, arrays, objects, member access, calls
and operator expressions. Functions, classes, regular expressions, JSX and
template substitutions are not supported, and identifiers are restricted to
ASCII.

Parser implements expression.Parser:

    ext, err := syntax.New(syntax.WithExpressionParser(ecma.New()))

Tokens are scanned by a lexmachine DFA, expressions are parsed by
precedence climbing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ecma

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.ecma'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.ecma")
}

// Parser is an expression parser. It is stateless and may be shared.
type Parser struct{}

var _ expression.Parser = (*Parser)(nil)

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// ParseProgram parses a sequence of expression statements, separated by
// semicolons or line breaks.
func (p *Parser) ParseProgram(src string, opts expression.Options) (*estree.Program, error) {
	ps, err := newParser(src, 0)
	if err != nil {
		return nil, err
	}
	prog := &estree.Program{SourceType: opts.SourceType}
	for ps.tok.typ != tokEOF {
		if ps.is(";") {
			if err = ps.next(); err != nil {
				return nil, err
			}
			continue
		}
		start := ps.tok.start
		x, err := ps.expression()
		if err != nil {
			return nil, err
		}
		end := ps.prev.end
		if ps.is(";") {
			end = ps.tok.end
			if err = ps.next(); err != nil {
				return nil, err
			}
		} else if ps.tok.typ != tokEOF && !ps.newlineBefore() {
			return nil, ps.unexpected()
		}
		prog.Body = append(prog.Body, span(&estree.ExpressionStatement{Expression: x}, start, end))
	}
	span(prog, 0, len(src))
	ps.locate(prog)
	return prog, nil
}

// ParseExpressionAt parses a single expression, starting at byte offset
// offset of src. Parsing stops after the expression; commas are not
// consumed, i.e. sequence expressions are not recognized at top level.
func (p *Parser) ParseExpressionAt(src string, offset int, opts expression.Options) (estree.Node, error) {
	ps, err := newParser(src, offset)
	if err != nil {
		return nil, err
	}
	x, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	ps.locate(x)
	return x, nil
}

// --- Parser ----------------------------------------------------------------

type parser struct {
	src  string
	scan *scanner
	tok  token // current token
	prev token // last consumed token
}

func newParser(src string, offset int) (*parser, error) {
	scan, err := newScanner(src, offset)
	if err != nil {
		return nil, err
	}
	ps := &parser{src: src, scan: scan}
	ps.prev = token{start: offset, end: offset}
	if ps.tok, err = scan.next(); err != nil {
		return nil, err
	}
	return ps, nil
}

func (ps *parser) next() (err error) {
	ps.prev = ps.tok
	ps.tok, err = ps.scan.next()
	return
}

func (ps *parser) is(punct string) bool {
	return ps.tok.typ == tokPunct && ps.tok.lit == punct
}

func (ps *parser) isKeyword(kw string) bool {
	return ps.tok.typ == tokKeyword && ps.tok.lit == kw
}

func (ps *parser) expect(punct string) error {
	if !ps.is(punct) {
		return ps.unexpected()
	}
	return ps.next()
}

func (ps *parser) unexpected() error {
	tracer().Debugf("unexpected token %v", ps.tok)
	if ps.tok.typ == tokEOF {
		return &expression.ParseError{Message: "Unexpected end of input", Offset: ps.tok.start}
	}
	return &expression.ParseError{Message: "Unexpected token", Offset: ps.tok.start}
}

// newlineBefore is true if there is a line break between the previous and
// the current token.
func (ps *parser) newlineBefore() bool {
	between := ps.src[ps.prev.end:ps.tok.start]
	return strings.ContainsAny(between, "\n\r")
}

func span(n estree.Node, start, end int) estree.Node {
	loc := n.Location()
	loc.Start.Offset = start
	loc.End.Offset = end
	return n
}

func startOf(n estree.Node) int {
	return n.Location().Start.Offset
}

// --- Expressions -----------------------------------------------------------

// expression := assignment { ',' assignment }
func (ps *parser) expression() (estree.Node, error) {
	x, err := ps.assignment()
	if err != nil || !ps.is(",") {
		return x, err
	}
	seq := &estree.SequenceExpression{Expressions: []estree.Node{x}}
	for ps.is(",") {
		if err = ps.next(); err != nil {
			return nil, err
		}
		if x, err = ps.assignment(); err != nil {
			return nil, err
		}
		seq.Expressions = append(seq.Expressions, x)
	}
	return span(seq, startOf(seq.Expressions[0]), ps.prev.end), nil
}

var assignmentOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"**=": true, "??=": true, "||=": true, "&&=": true,
}

// assignment := conditional [ assignOp assignment ]
func (ps *parser) assignment() (estree.Node, error) {
	start := ps.tok.start
	left, err := ps.conditional()
	if err != nil {
		return nil, err
	}
	if ps.tok.typ != tokPunct || !assignmentOps[ps.tok.lit] {
		return left, nil
	}
	switch left.(type) {
	case *estree.Identifier, *estree.MemberExpression:
	default:
		return nil, &expression.ParseError{Message: "Assigning to rvalue", Offset: start}
	}
	op := ps.tok.lit
	if err = ps.next(); err != nil {
		return nil, err
	}
	right, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	x := &estree.AssignmentExpression{Operator: op, Left: left, Right: right}
	return span(x, start, ps.prev.end), nil
}

// conditional := binary [ '?' assignment ':' assignment ]
func (ps *parser) conditional() (estree.Node, error) {
	start := ps.tok.start
	test, err := ps.binary(0)
	if err != nil || !ps.is("?") {
		return test, err
	}
	if err = ps.next(); err != nil {
		return nil, err
	}
	cons, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	if err = ps.expect(":"); err != nil {
		return nil, err
	}
	alt, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	x := &estree.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}
	return span(x, start, ps.prev.end), nil
}

var binaryPrecedence = map[string]int{
	"??": 1, "||": 2, "&&": 3, "|": 4, "^": 5, "&": 6,
	"==": 7, "!=": 7, "===": 7, "!==": 7,
	"<": 8, ">": 8, "<=": 8, ">=": 8, "in": 8, "instanceof": 8,
	"<<": 9, ">>": 9, ">>>": 9,
	"+": 10, "-": 10,
	"*": 11, "/": 11, "%": 11,
	"**": 12,
}

func (ps *parser) precedence() int {
	if ps.tok.typ != tokPunct && ps.tok.typ != tokKeyword {
		return 0
	}
	return binaryPrecedence[ps.tok.lit]
}

// binary parses operators binding tighter than minPrec by precedence
// climbing. `**` is right-associative, all others are left-associative.
func (ps *parser) binary(minPrec int) (estree.Node, error) {
	start := ps.tok.start
	left, err := ps.unary()
	if err != nil {
		return nil, err
	}
	for {
		prec := ps.precedence()
		if prec <= minPrec {
			return left, nil
		}
		op := ps.tok.lit
		if err = ps.next(); err != nil {
			return nil, err
		}
		next := prec
		if op == "**" {
			next = prec - 1
		}
		right, err := ps.binary(next)
		if err != nil {
			return nil, err
		}
		switch op {
		case "&&", "||", "??":
			left = span(&estree.LogicalExpression{Operator: op, Left: left, Right: right}, start, ps.prev.end)
		default:
			left = span(&estree.BinaryExpression{Operator: op, Left: left, Right: right}, start, ps.prev.end)
		}
	}
}

// unary := ( '!' | '~' | '+' | '-' | typeof | void | delete ) unary | postfix
func (ps *parser) unary() (estree.Node, error) {
	isUnary := false
	switch ps.tok.typ {
	case tokPunct:
		isUnary = strings.Contains("!~+-", ps.tok.lit) && len(ps.tok.lit) == 1
	case tokKeyword:
		isUnary = ps.tok.lit == "typeof" || ps.tok.lit == "void" || ps.tok.lit == "delete"
	}
	if !isUnary {
		return ps.postfix()
	}
	start, op := ps.tok.start, ps.tok.lit
	if err := ps.next(); err != nil {
		return nil, err
	}
	arg, err := ps.unary()
	if err != nil {
		return nil, err
	}
	x := &estree.UnaryExpression{Operator: op, Prefix: true, Argument: arg}
	return span(x, start, ps.prev.end), nil
}

// postfix := primary { '.' name | '?.' name | '?.' '[' … ']' | '?.' '(' … ')' | '[' … ']' | '(' … ')' }
func (ps *parser) postfix() (estree.Node, error) {
	start := ps.tok.start
	x, err := ps.primary()
	if err != nil {
		return nil, err
	}
	for {
		optional := false
		switch {
		case ps.is("?."):
			optional = true
			if err = ps.next(); err != nil {
				return nil, err
			}
			if !ps.is("[") && !ps.is("(") {
				if x, err = ps.member(x, start, optional); err != nil {
					return nil, err
				}
				continue
			}
		case ps.is("."):
			if err = ps.next(); err != nil {
				return nil, err
			}
			if x, err = ps.member(x, start, false); err != nil {
				return nil, err
			}
			continue
		}
		switch {
		case ps.is("["):
			if err = ps.next(); err != nil {
				return nil, err
			}
			prop, err := ps.expression()
			if err != nil {
				return nil, err
			}
			if err = ps.expect("]"); err != nil {
				return nil, err
			}
			x = span(&estree.MemberExpression{Object: x, Property: prop, Computed: true, Optional: optional},
				start, ps.prev.end)
		case ps.is("("):
			args, err := ps.arguments(")")
			if err != nil {
				return nil, err
			}
			x = span(&estree.CallExpression{Callee: x, Arguments: args, Optional: optional}, start, ps.prev.end)
		default:
			return x, nil
		}
	}
}

// member parses the property name after `.` or `?.`. Keywords are valid
// property names.
func (ps *parser) member(object estree.Node, start int, optional bool) (estree.Node, error) {
	if ps.tok.typ != tokIdent && ps.tok.typ != tokKeyword {
		return nil, ps.unexpected()
	}
	prop := span(&estree.Identifier{Name: ps.tok.lit}, ps.tok.start, ps.tok.end)
	if err := ps.next(); err != nil {
		return nil, err
	}
	x := &estree.MemberExpression{Object: object, Property: prop, Optional: optional}
	return span(x, start, ps.prev.end), nil
}

// arguments parses a list of expressions and spreads up to a closing
// punctuator, starting at the opening one. A trailing comma is allowed.
func (ps *parser) arguments(closing string) ([]estree.Node, error) {
	if err := ps.next(); err != nil {
		return nil, err
	}
	args := []estree.Node{}
	for !ps.is(closing) {
		x, err := ps.spreadOrAssignment()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if !ps.is(closing) {
			if err = ps.expect(","); err != nil {
				return nil, err
			}
		}
	}
	return args, ps.next()
}

func (ps *parser) spreadOrAssignment() (estree.Node, error) {
	if !ps.is("...") {
		return ps.assignment()
	}
	start := ps.tok.start
	if err := ps.next(); err != nil {
		return nil, err
	}
	arg, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	return span(&estree.SpreadElement{Argument: arg}, start, ps.prev.end), nil
}

// --- Primary expressions ---------------------------------------------------

func (ps *parser) primary() (estree.Node, error) {
	tok := ps.tok
	var x estree.Node
	switch tok.typ {
	case tokIdent:
		x = &estree.Identifier{Name: tok.lit}
	case tokKeyword:
		switch tok.lit {
		case "true", "false":
			x = &estree.Literal{Value: tok.lit == "true", Raw: tok.lit}
		case "null":
			x = &estree.Literal{Value: nil, Raw: tok.lit}
		case "this":
			x = &estree.ThisExpression{}
		default:
			return nil, ps.unexpected()
		}
	case tokNumber:
		v, err := numberValue(tok.lit)
		if err != nil {
			return nil, &expression.ParseError{Message: "Invalid number", Offset: tok.start}
		}
		x = &estree.Literal{Value: v, Raw: tok.lit}
	case tokString:
		x = &estree.Literal{Value: cook(tok.lit[1 : len(tok.lit)-1]), Raw: tok.lit}
	case tokTemplate:
		return ps.template()
	case tokPunct:
		switch tok.lit {
		case "(":
			return ps.parenthesized()
		case "[":
			return ps.array()
		case "{":
			return ps.object()
		}
		return nil, ps.unexpected()
	default:
		return nil, ps.unexpected()
	}
	if err := ps.next(); err != nil {
		return nil, err
	}
	return span(x, tok.start, tok.end), nil
}

func (ps *parser) parenthesized() (estree.Node, error) {
	if err := ps.next(); err != nil {
		return nil, err
	}
	x, err := ps.expression()
	if err != nil {
		return nil, err
	}
	return x, ps.expect(")")
}

func (ps *parser) template() (estree.Node, error) {
	tok := ps.tok
	raw := tok.lit[1 : len(tok.lit)-1]
	if i := strings.Index(raw, "${"); i >= 0 {
		return nil, &expression.ParseError{Message: "Unsupported template substitution", Offset: tok.start + 1 + i}
	}
	if err := ps.next(); err != nil {
		return nil, err
	}
	normalized := strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\r", "\n")
	quasi := &estree.TemplateElement{Raw: normalized, Cooked: cook(normalized), Tail: true}
	span(quasi, tok.start+1, tok.end-1)
	x := &estree.TemplateLiteral{Quasis: []*estree.TemplateElement{quasi}, Expressions: []estree.Node{}}
	return span(x, tok.start, tok.end), nil
}

func (ps *parser) array() (estree.Node, error) {
	start := ps.tok.start
	if err := ps.next(); err != nil {
		return nil, err
	}
	arr := &estree.ArrayExpression{Elements: []estree.Node{}}
	for !ps.is("]") {
		if ps.is(",") {
			arr.Elements = append(arr.Elements, nil)
			if err := ps.next(); err != nil {
				return nil, err
			}
			continue
		}
		x, err := ps.spreadOrAssignment()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, x)
		if !ps.is("]") {
			if err = ps.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if err := ps.next(); err != nil {
		return nil, err
	}
	return span(arr, start, ps.prev.end), nil
}

func (ps *parser) object() (estree.Node, error) {
	start := ps.tok.start
	if err := ps.next(); err != nil {
		return nil, err
	}
	obj := &estree.ObjectExpression{Properties: []estree.Node{}}
	for !ps.is("}") {
		var prop estree.Node
		var err error
		if ps.is("...") {
			prop, err = ps.spreadOrAssignment()
		} else {
			prop, err = ps.property()
		}
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, prop)
		if !ps.is("}") {
			if err = ps.expect(","); err != nil {
				return nil, err
			}
		}
	}
	if err := ps.next(); err != nil {
		return nil, err
	}
	return span(obj, start, ps.prev.end), nil
}

// property := key ':' assignment | ident
// key := ident | keyword | string | number | '[' assignment ']'
func (ps *parser) property() (estree.Node, error) {
	start := ps.tok.start
	tok := ps.tok
	prop := &estree.Property{Kind: "init"}
	switch tok.typ {
	case tokIdent, tokKeyword:
		prop.Key = span(&estree.Identifier{Name: tok.lit}, tok.start, tok.end)
	case tokString, tokNumber:
		key, err := ps.primary()
		if err != nil {
			return nil, err
		}
		prop.Key = key
	default:
		if !ps.is("[") {
			return nil, ps.unexpected()
		}
		if err := ps.next(); err != nil {
			return nil, err
		}
		key, err := ps.assignment()
		if err != nil {
			return nil, err
		}
		if !ps.is("]") {
			return nil, ps.unexpected()
		}
		prop.Key, prop.Computed = key, true
	}
	if tok.typ == tokIdent || tok.typ == tokKeyword || prop.Computed {
		if err := ps.next(); err != nil {
			return nil, err
		}
	}
	if tok.typ == tokIdent && (ps.is(",") || ps.is("}")) {
		prop.Shorthand = true
		prop.Value = span(&estree.Identifier{Name: tok.lit}, tok.start, tok.end)
		return span(prop, start, ps.prev.end), nil
	}
	if err := ps.expect(":"); err != nil {
		return nil, err
	}
	value, err := ps.assignment()
	if err != nil {
		return nil, err
	}
	prop.Value = value
	return span(prop, start, ps.prev.end), nil
}

// --- Values ----------------------------------------------------------------

func numberValue(lit string) (float64, error) {
	if len(lit) > 2 && (lit[1] == 'x' || lit[1] == 'X') {
		n, err := strconv.ParseUint(lit[2:], 16, 64)
		return float64(n), err
	}
	return strconv.ParseFloat(lit, 64)
}

// cook resolves escape sequences of string and template literals.
func cook(raw string) string {
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if n, err := strconv.ParseUint(safeSlice(raw, i+1, i+3), 16, 8); err == nil {
				b.WriteRune(rune(n))
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			digits := safeSlice(raw, i+1, i+5)
			width := 4
			if strings.HasPrefix(raw[i+1:], "{") {
				if end := strings.IndexByte(raw[i+1:], '}'); end > 0 {
					digits, width = raw[i+2:i+1+end], end+1
				}
			}
			if n, err := strconv.ParseUint(digits, 16, 32); err == nil && utf8.ValidRune(rune(n)) {
				b.WriteRune(rune(n))
				i += width
			} else {
				b.WriteByte('u')
			}
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

func safeSlice(s string, from, to int) string {
	if to > len(s) {
		to = len(s)
	}
	if from > to {
		return ""
	}
	return s[from:to]
}

// --- Locations -------------------------------------------------------------

// locate sets line and column of all nodes of a tree from their offsets.
func (ps *parser) locate(root estree.Node) {
	starts := []int{0}
	for i := 0; i < len(ps.src); i++ {
		switch ps.src[i] {
		case '\r':
			if i+1 < len(ps.src) && ps.src[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case '\n':
			starts = append(starts, i+1)
		}
	}
	position := func(offset int) estree.Position {
		line := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
		col := utf8.RuneCountInString(ps.src[starts[line-1]:offset])
		return estree.Position{Line: line, Column: col, Offset: offset}
	}
	estree.Walk(root, func(n estree.Node) bool {
		loc := n.Location()
		loc.Start = position(loc.Start.Offset)
		loc.End = position(loc.End.Offset)
		return true
	})
}

/*
Package tag implements the grammar of JSX tags in MDX.

The grammar is the same in flow and in text position, the differences are
captured by a Dialect: the names of the tokens produced and whether lines
may lazily continue a container.

	<a.b c:d="e" {...f} g={h} />

Tokenize consumes exactly one tag, starting at `<`. It either succeeds,
leaving the cursor behind `>`, or fails. Input which is obviously not meant
to be a tag (`a < b`) fails with tokenizer.ErrNoMatch, everything else fails
with a *tokenizer.GrammarError naming the offending character and what
would have been allowed instead.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tag

import (
	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/ident"
	"github.com/npillmayer/mdxjsx/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.tag'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.tag")
}

// Dialect parametrizes the tag grammar for a position.
type Dialect struct {
	Context   mdxjsx.Context // context of produced tokens
	AllowLazy bool           // lazy lines may continue a tag
}

// Dialects for flow and text position.
var (
	Flow = Dialect{Context: mdxjsx.Flow}
	Text = Dialect{Context: mdxjsx.Text, AllowLazy: true}
)

// Expressions configures how expressions in tags are handled.
type Expressions struct {
	Bridge *expression.Bridge // nil if expressions are not parsed
	Attach bool               // attach parse results to tokens
}

// Tokenize consumes one tag, starting at `<`.
func Tokenize(t *tokenizer.Tokenizer, d Dialect, x Expressions) error {
	if t.Current() != '<' {
		return tokenizer.ErrNoMatch
	}
	e := &engine{t: t, d: d, x: x}
	tracer().Debugf("%s tag at %s", d.Context, t.Now())
	return e.tag()
}

type engine struct {
	t       *tokenizer.Tokenizer
	d       Dialect
	x       Expressions
	closing bool // closing tag
}

// --- Token helpers ---------------------------------------------------------

func (e *engine) enter(typ mdxjsx.TokType) {
	e.t.EnterIn(typ, e.d.Context)
}

func (e *engine) exit(typ mdxjsx.TokType) {
	e.t.Exit(typ)
}

// mark consumes the current code as a token of its own.
func (e *engine) mark(typ mdxjsx.TokType) {
	e.enter(typ)
	e.t.Consume()
	e.exit(typ)
}

// consumeName consumes name continuation codes.
func (e *engine) consumeName() mdxjsx.Code {
	for ident.IsNameContinue(e.t.Current()) {
		e.t.Consume()
	}
	return e.t.Current()
}

func isWhitespace(c mdxjsx.Code) bool {
	return mdxjsx.IsLineEndingOrSpace(c) || mdxjsx.IsUnicodeWhitespace(c)
}

// whitespace consumes ECMAScript white space and line endings. Lines
// following a line ending must not be lazy unless the dialect allows it.
func (e *engine) whitespace() error {
	t := e.t
	for {
		c := t.Current()
		switch {
		case mdxjsx.IsLineEnding(c):
			t.Enter(mdxjsx.LineEnding)
			t.Consume()
			t.Exit(mdxjsx.LineEnding)
			if !e.d.AllowLazy && t.IsLazy(t.Now().Line) {
				return t.Errorf(errSource, tokenizer.RuleUnexpectedLazy, msgLazy)
			}
		case isWhitespace(c):
			t.Enter(mdxjsx.EsWhitespace)
			for c := t.Current(); isWhitespace(c) && !mdxjsx.IsLineEnding(c); c = t.Current() {
				t.Consume()
			}
			t.Exit(mdxjsx.EsWhitespace)
		default:
			return nil
		}
	}
}

// --- Tag -------------------------------------------------------------------

func (e *engine) tag() error {
	t := e.t
	e.enter(mdxjsx.Tag)
	e.mark(mdxjsx.TagMarker)
	// Unlike JSX, no white space is allowed after `<`, so that `a < b` is text.
	if isWhitespace(t.Current()) {
		return tokenizer.ErrNoMatch
	}
	if err := e.whitespace(); err != nil {
		return err
	}
	if t.Current() == '/' {
		e.closing = true
		e.mark(mdxjsx.TagClosingMarker)
		if err := e.whitespace(); err != nil {
			return err
		}
	}
	c := t.Current()
	if c == '>' { // fragment
		return e.end()
	}
	if !ident.IsNameStart(c) {
		hint := ""
		if !e.closing && c == '!' {
			hint = hintComment
		} else if e.closing && (c == '*' || c == '/') {
			hint = hintJSComment
		}
		return e.crash("before name", expectNameStart+hint)
	}
	if err := e.name(); err != nil {
		return err
	}
	return e.attributes()
}

// name consumes a primary name, optionally followed by either a chain of
// member names or a local name. Trailing white space is consumed.
func (e *engine) name() error {
	t := e.t
	e.enter(mdxjsx.TagName)
	e.enter(mdxjsx.TagNamePrimary)
	t.Consume()
	if c := e.consumeName(); !endsName(c, true, true) {
		return e.crash("in name", expectNameContinue+hintIfLink(c == '@'))
	}
	e.exit(mdxjsx.TagNamePrimary)
	if err := e.whitespace(); err != nil {
		return err
	}
	switch t.Current() {
	case '.':
		for t.Current() == '.' {
			e.mark(mdxjsx.TagNameMemberMarker)
			if err := e.whitespace(); err != nil {
				return err
			}
			if !ident.IsNameStart(t.Current()) {
				return e.crash("before member name", expectAttributeNameStartOrEnd)
			}
			e.enter(mdxjsx.TagNameMember)
			t.Consume()
			if c := e.consumeName(); !endsName(c, true, false) {
				return e.crash("in member name", expectNameContinue+hintIfLink(c == '@'))
			}
			e.exit(mdxjsx.TagNameMember)
			if err := e.whitespace(); err != nil {
				return err
			}
		}
		if !startsAttributes(t.Current()) {
			return e.crash("after member name", expectAttributeNameStartOrEnd)
		}
	case ':':
		e.mark(mdxjsx.TagNamePrefixMarker)
		if err := e.whitespace(); err != nil {
			return err
		}
		if c := t.Current(); !ident.IsNameStart(c) {
			urlLike := c == '+' || (c > '.' && c < ':') // `/` up to `9`
			return e.crash("before local name", expectNameStart+hintIfLink(urlLike))
		}
		e.enter(mdxjsx.TagNameLocal)
		t.Consume()
		if c := e.consumeName(); !endsName(c, false, false) {
			return e.crash("in local name", expectNameContinue)
		}
		e.exit(mdxjsx.TagNameLocal)
		if err := e.whitespace(); err != nil {
			return err
		}
		if !startsAttributes(t.Current()) {
			return e.crash("after local name", expectAttributeNameStartOrEnd)
		}
	default:
		if !startsAttributes(t.Current()) {
			return e.crash("after name", expectAttributeNameStartOrEnd)
		}
	}
	e.exit(mdxjsx.TagName)
	return nil
}

// endsName is true for codes which may directly follow a name.
func endsName(c mdxjsx.Code, member, local bool) bool {
	switch {
	case c == '/', c == '>', c == '{', isWhitespace(c):
		return true
	case c == '.':
		return member
	case c == ':':
		return local
	}
	return false
}

// startsAttributes is true for codes which may follow a tag name.
func startsAttributes(c mdxjsx.Code) bool {
	return c == '/' || c == '>' || c == '{' || ident.IsNameStart(c)
}

// --- Attributes ------------------------------------------------------------

func (e *engine) attributes() error {
	t := e.t
	for {
		c := t.Current()
		switch {
		case c == '/':
			if e.closing {
				return t.Errorf(errSource, tokenizer.RuleUnexpectedCharacter, msgSelfClosingInClosingTag)
			}
			e.mark(mdxjsx.TagSelfClosingMarker)
			if err := e.whitespace(); err != nil {
				return err
			}
			if c := t.Current(); c != '>' {
				return e.crash("after self-closing slash", expectTagEnd+hintIf(c == '*' || c == '/', hintJSComment))
			}
			return e.end()
		case c == '>':
			return e.end()
		case c == '{':
			if err := e.expression(expression.Spread); err != nil {
				return err
			}
			if err := e.whitespace(); err != nil {
				return err
			}
		case ident.IsNameStart(c):
			if err := e.attribute(); err != nil {
				return err
			}
		default:
			return e.crash("before attribute name", expectAttributeNameStartOrEnd)
		}
	}
}

// attribute consumes a named attribute, with an optional value, and
// trailing white space.
func (e *engine) attribute() error {
	t := e.t
	e.enter(mdxjsx.TagAttribute)
	e.enter(mdxjsx.TagAttributeName)
	e.enter(mdxjsx.TagAttributeNamePrimary)
	t.Consume()
	if c := e.consumeName(); !(endsName(c, false, true) || c == '=') {
		return e.crash("in attribute name", expectAttributeNameContinue)
	}
	e.exit(mdxjsx.TagAttributeNamePrimary)
	if err := e.whitespace(); err != nil {
		return err
	}
	after := "after attribute name"
	if t.Current() == ':' {
		e.mark(mdxjsx.TagAttributeNamePrefixMarker)
		if err := e.whitespace(); err != nil {
			return err
		}
		if !ident.IsNameStart(t.Current()) {
			return e.crash("before local attribute name", expectAttributeNameStartOrInit)
		}
		e.enter(mdxjsx.TagAttributeNameLocal)
		t.Consume()
		if c := e.consumeName(); !(endsName(c, false, false) || c == '=') {
			return e.crash("in local attribute name", expectAttributeNameContinue)
		}
		e.exit(mdxjsx.TagAttributeNameLocal)
		if err := e.whitespace(); err != nil {
			return err
		}
		after = "after local attribute name"
	}
	e.exit(mdxjsx.TagAttributeName)
	if t.Current() != '=' {
		if !startsAttributes(t.Current()) {
			return e.crash(after, expectAttributeNameStartOrInit)
		}
		e.exit(mdxjsx.TagAttribute)
		return nil
	}
	e.mark(mdxjsx.TagAttributeInitializerMarker)
	if err := e.whitespace(); err != nil {
		return err
	}
	switch c := t.Current(); c {
	case '"', '\'':
		if err := e.literal(c); err != nil {
			return err
		}
	case '{':
		if err := e.expression(expression.Single); err != nil {
			return err
		}
	default:
		return e.crash("before attribute value", expectAttributeValue+hintIf(c == '<', hintElementValue))
	}
	e.exit(mdxjsx.TagAttribute)
	return e.whitespace()
}

// literal consumes a quoted attribute value. Line endings may occur in the
// value, white space at the start of continuation lines is not part of it.
func (e *engine) literal(quote mdxjsx.Code) error {
	t := e.t
	e.enter(mdxjsx.TagAttributeValueLiteral)
	e.mark(mdxjsx.TagAttributeValueLiteralMarker)
	for {
		c := t.Current()
		switch {
		case c == mdxjsx.EOF:
			return e.crash("in attribute value", "a corresponding closing quote `"+quote.Text()+"`")
		case c == quote:
			e.mark(mdxjsx.TagAttributeValueLiteralMarker)
			e.exit(mdxjsx.TagAttributeValueLiteral)
			return nil
		case mdxjsx.IsLineEnding(c):
			if err := e.whitespace(); err != nil {
				return err
			}
		default:
			e.enter(mdxjsx.TagAttributeValueLiteralValue)
			for c := t.Current(); c != mdxjsx.EOF && c != quote && !mdxjsx.IsLineEnding(c); c = t.Current() {
				t.Consume()
			}
			e.exit(mdxjsx.TagAttributeValueLiteralValue)
		}
	}
}

// expression consumes an attribute expression (spread) or an attribute
// value expression (single).
func (e *engine) expression(mode expression.Mode) error {
	f := expression.Factory{
		Bridge:    e.x.Bridge,
		Attach:    e.x.Attach,
		Context:   e.d.Context,
		Mode:      mode,
		AllowLazy: e.d.AllowLazy,
	}
	if mode == expression.Spread {
		f.Kind = mdxjsx.TagExpressionAttribute
		f.MarkerKind = mdxjsx.TagExpressionAttributeMarker
		f.ValueKind = mdxjsx.TagExpressionAttributeValue
	} else {
		f.Kind = mdxjsx.TagAttributeValueExpression
		f.MarkerKind = mdxjsx.TagAttributeValueExpressionMarker
		f.ValueKind = mdxjsx.TagAttributeValueExpressionValue
	}
	return f.Tokenize(e.t)
}

func (e *engine) end() error {
	e.mark(mdxjsx.TagMarker)
	e.exit(mdxjsx.Tag)
	return nil
}

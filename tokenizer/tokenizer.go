/*
Package tokenizer provides the effects constructs use to consume input.

A Tokenizer holds the complete input as a slice of codes. Constructs look
at the current code, consume it, and open and close tokens around what they
consumed. Every opened token is recorded as an enter event, every closed
one as an exit event. Tokens nest, and exits have to match the innermost
open token.

Constructs may parse speculatively. Attempt runs a sub-parse and rolls back
all of its effects if it fails, Check always rolls back and reports just
whether the sub-parse would have succeeded.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.tokenizer'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.tokenizer")
}

// --- Tokens and events -----------------------------------------------------

// Token is a named run of input codes.
type Token struct {
	Type    mdxjsx.TokType
	Context mdxjsx.Context
	Start   mdxjsx.Point
	End     mdxjsx.Point
	Estree  *estree.Program // attached expression tree, if any
	from    int             // index of first code
	to      int             // index behind last code
}

var _ mdxjsx.Token = (*Token)(nil)

// TokType is part of interface mdxjsx.Token.
func (tok *Token) TokType() mdxjsx.TokType {
	return tok.Type
}

// Span is part of interface mdxjsx.Token. It spans byte offsets.
func (tok *Token) Span() mdxjsx.Span {
	return mdxjsx.Span{uint64(tok.Start.Offset), uint64(tok.End.Offset)}
}

// Name returns the conventional name of the token, depending on its context.
func (tok *Token) Name() string {
	return tok.Type.Name(tok.Context)
}

func (tok *Token) String() string {
	return fmt.Sprintf("%s[%s-%s]", tok.Name(), tok.Start, tok.End)
}

// Event is either the start (enter) or end (exit) of a token.
type Event struct {
	Enter bool
	Token *Token
}

func (e Event) String() string {
	if e.Enter {
		return "enter:" + e.Token.Name()
	}
	return "exit:" + e.Token.Name()
}

// --- Constructs ------------------------------------------------------------

// Construct is a grammar rule, triggered by a code.
//
// Tokenize starts with the trigger code being the current code. It returns
// nil on success, ErrNoMatch if the input does not form the construct, or a
// grammar error.
type Construct struct {
	Name     string
	Trigger  mdxjsx.Code
	Tokenize func(t *Tokenizer) error
}

// Host is what a tokenizer knows about the document parser driving it.
type Host struct {
	Flow map[mdxjsx.Code][]*Construct // constructs in flow position
	Text map[mdxjsx.Code][]*Construct // constructs in text position
	Lazy map[int]bool                 // lines which continue a container lazily
}

// FlowConstruct returns the flow construct for a trigger with a given name,
// or nil.
func (h *Host) FlowConstruct(trigger mdxjsx.Code, name string) *Construct {
	if h == nil {
		return nil
	}
	for _, c := range h.Flow[trigger] {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// --- Tokenizer -------------------------------------------------------------

// Tokenizer holds the input and the events produced so far.
type Tokenizer struct {
	Host   *Host
	codes  []mdxjsx.Code
	points []mdxjsx.Point // one more than codes
	index  int            // of current code
	events []Event
	open   *arraystack.Stack // of *Token
}

// New creates a tokenizer for a sequence of codes. points must have one
// more entry than codes, as produced by mdxjsx.Preprocess.
func New(codes []mdxjsx.Code, points []mdxjsx.Point, host *Host) *Tokenizer {
	if len(points) != len(codes)+1 {
		panic(fmt.Sprintf("tokenizer needs %d points for %d codes, has %d",
			len(codes)+1, len(codes), len(points)))
	}
	return &Tokenizer{
		Host:   host,
		codes:  codes,
		points: points,
		open:   arraystack.New(),
	}
}

// FromString creates a tokenizer for a string, without a host.
func FromString(s string) *Tokenizer {
	codes, points := mdxjsx.PreprocessString(s)
	return New(codes, points, nil)
}

// Current returns the current code, or EOF at the end of input.
func (t *Tokenizer) Current() mdxjsx.Code {
	if t.index >= len(t.codes) {
		return mdxjsx.EOF
	}
	return t.codes[t.index]
}

// Peek returns the code n positions ahead of the current one.
func (t *Tokenizer) Peek(n int) mdxjsx.Code {
	if t.index+n >= len(t.codes) || t.index+n < 0 {
		return mdxjsx.EOF
	}
	return t.codes[t.index+n]
}

// Now returns the point of the current code.
func (t *Tokenizer) Now() mdxjsx.Point {
	return t.points[t.index]
}

// Index returns the index of the current code.
func (t *Tokenizer) Index() int {
	return t.index
}

// AtEOF is true if all input has been consumed.
func (t *Tokenizer) AtEOF() bool {
	return t.index >= len(t.codes)
}

// Consume moves past the current code. Consuming at EOF is a programming
// error, as is consuming outside of any token.
func (t *Tokenizer) Consume() {
	if t.index >= len(t.codes) {
		panic("tokenizer cannot consume EOF")
	}
	if t.open.Empty() {
		panic(fmt.Sprintf("tokenizer cannot consume %v outside of a token", t.codes[t.index]))
	}
	t.index++
}

// Enter opens a token of a generic kind.
func (t *Tokenizer) Enter(typ mdxjsx.TokType) *Token {
	return t.EnterIn(typ, mdxjsx.NoContext)
}

// EnterIn opens a token of a kind within a context.
func (t *Tokenizer) EnterIn(typ mdxjsx.TokType, ctx mdxjsx.Context) *Token {
	tok := &Token{
		Type:    typ,
		Context: ctx,
		Start:   t.Now(),
		from:    t.index,
	}
	t.events = append(t.events, Event{Enter: true, Token: tok})
	t.open.Push(tok)
	return tok
}

// Exit closes the innermost open token, which has to be of kind typ.
func (t *Tokenizer) Exit(typ mdxjsx.TokType) *Token {
	top, ok := t.open.Pop()
	if !ok {
		panic(fmt.Sprintf("tokenizer cannot exit %v: no open token", typ))
	}
	tok := top.(*Token)
	if tok.Type != typ {
		panic(fmt.Sprintf("tokenizer cannot exit %v: open token is %v", typ, tok.Type))
	}
	tok.End = t.Now()
	tok.to = t.index
	t.events = append(t.events, Event{Enter: false, Token: tok})
	return tok
}

// Events returns the events produced so far.
func (t *Tokenizer) Events() []Event {
	return t.events
}

// Depth returns the number of open tokens.
func (t *Tokenizer) Depth() int {
	return t.open.Size()
}

// Text returns the source text of a token.
func (t *Tokenizer) Text(tok *Token) string {
	return t.Slice(tok.from, tok.to)
}

// Slice returns the source text of the codes from index from up to to.
func (t *Tokenizer) Slice(from, to int) string {
	var b strings.Builder
	for _, c := range t.codes[from:to] {
		b.WriteString(c.Text())
	}
	return b.String()
}

// IsLazy is true if a line continues a container lazily.
func (t *Tokenizer) IsLazy(line int) bool {
	return t.Host != nil && t.Host.Lazy[line]
}

// --- Speculative parsing ---------------------------------------------------

type checkpoint struct {
	index  int
	events int
	open   []Token // copies of the open tokens, innermost first
	tokens []*Token
}

func (t *Tokenizer) checkpoint() checkpoint {
	cp := checkpoint{index: t.index, events: len(t.events)}
	for _, v := range t.open.Values() {
		tok := v.(*Token)
		cp.tokens = append(cp.tokens, tok)
		cp.open = append(cp.open, *tok)
	}
	return cp
}

// restore resets the cursor, drops the events after the checkpoint and
// rebuilds the stack of open tokens, including tokens the sub-parse closed.
func (t *Tokenizer) restore(cp checkpoint) {
	t.index = cp.index
	t.events = t.events[:cp.events]
	t.open.Clear()
	for i := len(cp.tokens) - 1; i >= 0; i-- {
		*cp.tokens[i] = cp.open[i]
		t.open.Push(cp.tokens[i])
	}
}

// Attempt runs a sub-parse. If it fails, the tokenizer is restored to the
// state before the call and the error is returned. On success, all effects of
// the sub-parse are kept.
//
// A sub-parse must leave the number of open tokens unchanged when it
// succeeds.
func (t *Tokenizer) Attempt(parse func() error) error {
	cp := t.checkpoint()
	err := parse()
	if err != nil {
		tracer().Debugf("attempt at %s failed: %v", t.points[cp.index], err)
		t.restore(cp)
		return err
	}
	if t.open.Size() != len(cp.tokens) {
		panic(fmt.Sprintf("tokenizer attempt left %d tokens open", t.open.Size()-len(cp.tokens)))
	}
	return nil
}

// Check runs a sub-parse and restores the tokenizer afterwards in any case.
// It reports whether the sub-parse succeeded. Grammar errors during the
// sub-parse are not reported.
func (t *Tokenizer) Check(parse func() error) bool {
	cp := t.checkpoint()
	err := parse()
	t.restore(cp)
	if err != nil && !errors.Is(err, ErrNoMatch) {
		tracer().Debugf("check at %s swallowed error: %v", t.points[cp.index], err)
	}
	return err == nil
}

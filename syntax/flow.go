package syntax

import (
	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/tag"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// flowConstruct creates the construct for tags in flow position.
//
// A flow construct is one or more tags on a line, optionally followed by an
// expression, and nothing else:
//
//	<Note>
//	<Note kind="tip"> {props.text}
//	</Note>
//
// In trailing-text mode, text may follow the tags, and the construct goes on
// over the following lines up to a blank line.
func flowConstruct(x tag.Expressions, preferInline bool) *tokenizer.Construct {
	construct := &tokenizer.Construct{
		Name:    FlowConstructName,
		Trigger: '<',
	}
	construct.Tokenize = func(t *tokenizer.Tokenizer) error {
		f := &flow{t: t, x: x}
		if preferInline {
			return f.trailingText()
		}
		return f.tags()
	}
	return construct
}

type flow struct {
	t *tokenizer.Tokenizer
	x tag.Expressions
}

func (f *flow) tag() error {
	if err := tag.Tokenize(f.t, tag.Flow, f.x); err != nil {
		return err
	}
	f.space(mdxjsx.Whitespace)
	return nil
}

// space consumes spaces and tabs as a token of a given kind.
func (f *flow) space(kind mdxjsx.TokType) {
	if !mdxjsx.IsSpace(f.t.Current()) {
		return
	}
	f.t.Enter(kind)
	for mdxjsx.IsSpace(f.t.Current()) {
		f.t.Consume()
	}
	f.t.Exit(kind)
}

// tags recognizes tags up to the end of the line. A flow expression may
// follow the last tag, if the host knows about flow expressions.
func (f *flow) tags() error {
	t := f.t
	if err := f.tag(); err != nil {
		return err
	}
	for {
		c := t.Current()
		switch {
		case c == mdxjsx.EOF || mdxjsx.IsLineEnding(c):
			return nil
		case c == '<':
			if err := f.tag(); err != nil {
				return err
			}
		case c == '{':
			x := t.Host.FlowConstruct('{', expression.FlowConstructName)
			if x == nil {
				return tokenizer.ErrNoMatch
			}
			if err := t.Attempt(func() error { return x.Tokenize(t) }); err != nil {
				return err
			}
		default:
			return tokenizer.ErrNoMatch
		}
	}
}

// trailingText recognizes tags followed by text, over several lines, up to
// a blank line or the end of the document. A `<` in the text starts a tag if
// a valid tag follows, otherwise it is text.
func (f *flow) trailingText() error {
	t := f.t
	if err := f.tag(); err != nil {
		return err
	}
	for {
		c := t.Current()
		switch {
		case c == mdxjsx.EOF:
			return nil
		case mdxjsx.IsLineEnding(c):
			f.lineEnding()
			f.space(mdxjsx.LinePrefix)
			if c := t.Current(); c == mdxjsx.EOF || mdxjsx.IsLineEnding(c) {
				return nil // blank line ends the construct
			}
		case c == '<' && f.startsTag():
			if err := f.tag(); err != nil {
				return err
			}
		default:
			atTag, err := f.text()
			if err != nil {
				return err
			}
			if atTag {
				if err := f.tag(); err != nil {
					return err
				}
			}
		}
	}
}

// text consumes text up to the end of the line or a `<` starting a tag.
// atTag is true if it stopped in front of a tag. Text running into the end of
// the document makes the construct invalid.
func (f *flow) text() (atTag bool, err error) {
	t := f.t
	t.Enter(mdxjsx.ChunkText)
	for {
		c := t.Current()
		switch {
		case c == mdxjsx.EOF:
			return false, tokenizer.ErrNoMatch
		case mdxjsx.IsLineEnding(c):
			t.Exit(mdxjsx.ChunkText)
			f.lineEnding()
			f.space(mdxjsx.LinePrefix)
			if c := t.Current(); mdxjsx.IsLineEnding(c) {
				return false, tokenizer.ErrNoMatch // blank line inside text
			}
			return false, nil
		case c == '<' && f.startsTag():
			t.Exit(mdxjsx.ChunkText)
			return true, nil
		}
		t.Consume()
	}
}

func (f *flow) lineEnding() {
	f.t.Enter(mdxjsx.LineEnding)
	f.t.Consume()
	f.t.Exit(mdxjsx.LineEnding)
}

// startsTag checks if a valid tag starts at the current `<`. The check does
// not look beyond the tag.
func (f *flow) startsTag() bool {
	return f.t.Check(func() error {
		return tag.Tokenize(f.t, tag.Flow, f.x)
	})
}

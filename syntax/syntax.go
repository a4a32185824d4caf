/*
Package syntax provides the MDX JSX constructs, configured for use by a
host document parser.

	ext, err := syntax.New(
		syntax.WithExpressionParser(ecma.New()),
		syntax.AttachExpressionResults(true),
	)

The returned extension holds one construct for flow position and one for
text position, both triggered by `<`. Hosts register them in their
construct tables.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/tag"
	"github.com/npillmayer/mdxjsx/tokenizer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.syntax")
}

// ErrInvalidConfig is wrapped by all configuration errors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Names of the constructs.
const (
	FlowConstructName = "mdxJsxFlowTag"
	TextConstructName = "mdxJsxTextTag"
)

// Extension holds the constructs for JSX in MDX, keyed by their trigger.
type Extension struct {
	Flow map[mdxjsx.Code]*tokenizer.Construct
	Text map[mdxjsx.Code]*tokenizer.Construct
}

// --- Options ---------------------------------------------------------------

type config struct {
	parser       expression.Parser
	parserSet    bool
	options      expression.Options
	optionsSet   bool
	attach       bool
	preferInline bool
}

// Option configures the extension.
type Option func(c *config)

// WithExpressionParser sets a parser for expressions in tags. Without one,
// expressions are recognized by balancing braces only.
func WithExpressionParser(p expression.Parser) Option {
	return func(c *config) {
		c.parser = p
		c.parserSet = true
	}
}

// WithExpressionParserOptions sets options which are passed to the
// expression parser. Zero fields are replaced by defaults.
func WithExpressionParserOptions(opts expression.Options) Option {
	return func(c *config) {
		c.options = opts
		c.optionsSet = true
	}
}

// AttachExpressionResults sets or clears attaching expression trees to the
// tokens of expressions.
func AttachExpressionResults(b bool) Option {
	return func(c *config) {
		c.attach = b
	}
}

// PreferInline sets or clears trailing-text mode for flow tags: text after a
// tag on its line continues the construct, up to the next blank line.
func PreferInline(b bool) Option {
	return func(c *config) {
		c.preferInline = b
	}
}

// New creates the extension. It returns an error wrapping ErrInvalidConfig
// if expression options are set without a parser, or if the parser is a
// nil value.
func New(opts ...Option) (*Extension, error) {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if !c.parserSet || c.parser == nil {
		if c.optionsSet || c.attach {
			return nil, fmt.Errorf("%w: Expected an expression parser passed in as `WithExpressionParser`",
				ErrInvalidConfig)
		}
		if c.parserSet {
			return nil, fmt.Errorf("%w: Expected a proper expression parser passed in as `WithExpressionParser`",
				ErrInvalidConfig)
		}
	} else if isNil(c.parser) {
		return nil, fmt.Errorf("%w: Expected a proper expression parser passed in as `WithExpressionParser`",
			ErrInvalidConfig)
	}
	x := tag.Expressions{Attach: c.attach}
	if c.parser != nil {
		x.Bridge = &expression.Bridge{
			Parser:  c.parser,
			Options: c.options.Merge(expression.DefaultOptions),
		}
	}
	tracer().Debugf("MDX JSX extension: parser=%v, attach=%v, prefer inline=%v",
		c.parser != nil, c.attach, c.preferInline)
	ext := &Extension{
		Flow: map[mdxjsx.Code]*tokenizer.Construct{'<': flowConstruct(x, c.preferInline)},
		Text: map[mdxjsx.Code]*tokenizer.Construct{'<': textConstruct(x)},
	}
	return ext, nil
}

// isNil is true for interface values holding a nil pointer.
func isNil(p expression.Parser) bool {
	v := reflect.ValueOf(p)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

/*
Package expression connects `{…}` regions in MDX to an expression parser.

MDX does not parse JavaScript itself. Clients attach a Parser, and package
expression hands the text between braces to it, validates the shape of the
result (a single expression, or a single spread in attribute position) and
maps every position the parser reports back into the document. Positions
have to be mapped as the text between braces may span several lines, which
in the document are prefixed by container markers (e.g. `>` of block
quotes) which are not part of the expression.

Sub-package ecma holds a small parser for ECMAScript expressions, which
implements interface Parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expression

import (
	"fmt"

	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.expression'.
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.expression")
}

// Parser is the capability an expression parser has to provide.
//
// ParseProgram parses a complete program. ParseExpressionAt parses a single
// expression, starting at a byte offset of src, and stops after it; the end
// offset of the returned node tells where it stopped.
//
// Node positions are relative to src. Parsers should report syntax errors as
// *ParseError, so that the error position can be mapped to the document.
type Parser interface {
	ParseProgram(src string, opts Options) (*estree.Program, error)
	ParseExpressionAt(src string, offset int, opts Options) (estree.Node, error)
}

// Options are handed to a parser verbatim.
type Options struct {
	EcmaVersion int    // grammar level, e.g. 2020
	SourceType  string // "module" or "script"
	Locations   bool   // produce line/column locations
	Ranges      bool   // produce offset ranges
}

// DefaultOptions are used if clients do not provide options.
var DefaultOptions = Options{
	EcmaVersion: 2020,
	SourceType:  "module",
	Locations:   true,
}

// Merge returns o with zero fields replaced by those of defaults.
// Locations are always switched on.
func (o Options) Merge(defaults Options) Options {
	if o.EcmaVersion == 0 {
		o.EcmaVersion = defaults.EcmaVersion
	}
	if o.SourceType == "" {
		o.SourceType = defaults.SourceType
	}
	o.Ranges = o.Ranges || defaults.Ranges
	o.Locations = true
	return o
}

// ParseError is a syntax error reported by a parser. Offset is relative to
// the source text handed to the parser.
type ParseError struct {
	Message string
	Offset  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Message, e.Offset)
}

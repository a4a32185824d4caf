/*
Package mdxrepl/main provides an interactive command line tool (MDX.REPL)
for MDX documents with JSX tags. Every line entered is parsed as a document
of its own, with `\n` standing for a line break:

	mdx> > a <b c={1}\n> /> d.

MDX.REPL prints the blocks and tokens of the document as a tree, followed
by its HTML rendering, or the grammar error which stopped parsing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'mdxjsx.repl'
func tracer() tracing.Trace {
	return tracing.Select("mdxjsx.repl")
}

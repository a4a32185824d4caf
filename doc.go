/*
Package mdxjsx recognizes JSX tags embedded in a line-oriented markup
format (MDX).

Tags may appear at block level ("flow", a tag on a line of its own) and
inline ("text", a tag within a paragraph). Recognition is done by a
hand-written state machine operating on one code point at a time. It
produces a stream of enter/exit events describing tag boundaries, names,
attributes and embedded expressions. Package structure is as follows:

■ ident: Package ident classifies code points which may start or continue
a JSX name.

■ tokenizer: Package tokenizer holds the effects a construct uses to
consume input, together with speculative parsing (attempt and check with
rollback) and grammar errors.

■ tag: Package tag implements the tag grammar, shared by flow and text.

■ expression: Package expression bridges `{…}` regions to an external
expression parser and maps its positions back to the document. A small
reference parser lives in sub-package ecma, the parsed trees are of
package estree.

■ syntax: Package syntax configures the extension and provides the flow
and text constructs, both triggered by `<`.

■ markdown: Package markdown is a minimal host document parser, used to
drive the constructs in realistic settings. Its sub-package mdxrepl is an
interactive tool for trying out documents on a terminal.

The base package contains data types which are used throughout all the
other packages: codes, points, spans and token kinds.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package mdxjsx

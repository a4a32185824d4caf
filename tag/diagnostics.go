package tag

import (
	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// source of grammar errors reported by this package
const errSource = "mdx-jsx"

// --- Expectations ----------------------------------------------------------

const (
	expectNameStart                = "a character that can start a name, such as a letter, `$`, or `_`"
	expectNameContinue             = "a name character such as letters, digits, `$`, or `_`; whitespace before attributes; or the end of the tag"
	expectAttributeNameStartOrEnd  = "a character that can start an attribute name, such as a letter, `$`, or `_`; whitespace before attributes; or the end of the tag"
	expectAttributeNameContinue    = "an attribute name character such as letters, digits, `$`, or `_`; `=` to initialize a value; whitespace before attributes; or the end of the tag"
	expectAttributeNameStartOrInit = "a character that can start an attribute name, such as a letter, `$`, or `_`; `=` to initialize a value; or the end of the tag"
	expectAttributeValue           = "a character that can start an attribute value, such as `\"`, `'`, or `{`"
	expectTagEnd                   = "`>` to end the tag"
)

// --- Hints -----------------------------------------------------------------

const (
	hintComment      = " (note: to create a comment in MDX, use `{/* text */}`)"
	hintJSComment    = " (note: JS comments in JSX tags are not supported in MDX)"
	hintLink         = " (note: to create a link in MDX, use `[text](url)`)"
	hintElementValue = " (note: to use an element or fragment as a prop value in MDX, use `{<element />}`)"
)

func hintIf(cond bool, hint string) string {
	if cond {
		return hint
	}
	return ""
}

func hintIfLink(cond bool) string {
	return hintIf(cond, hintLink)
}

// --- Messages --------------------------------------------------------------

const (
	msgLazy                    = "Unexpected lazy line in container, expected line to be prefixed with `>` when in a block quote, whitespace when in a list, etc"
	msgSelfClosingInClosingTag = "Unexpected self-closing slash `/` in closing tag, expected the end of the tag"
)

// crash creates a grammar error for the current code, which is unexpected
// at a place ("before name") where something else was expected.
//
//     Unexpected character `!` (U+0021) before name, expected …
//
func (e *engine) crash(at, expect string) error {
	c := e.t.Current()
	rule := tokenizer.RuleUnexpectedCharacter
	if c == mdxjsx.EOF {
		rule = tokenizer.RuleUnexpectedEOF
	}
	err := e.t.Errorf(errSource, rule, "Unexpected %s %s, expected %s", tokenizer.Describe(c), at, expect)
	tracer().Debugf("%v", err)
	return err
}

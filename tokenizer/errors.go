package tokenizer

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mdxjsx"
)

// ErrNoMatch is returned by constructs if the input does not form the
// construct. It is not an error in the document: hosts try a different
// interpretation, typically literal text.
var ErrNoMatch = errors.New("input does not match construct")

// Rule ids of grammar errors.
const (
	RuleUnexpectedCharacter = "unexpected-character"
	RuleUnexpectedEOF       = "unexpected-eof"
	RuleUnexpectedLazy      = "unexpected-lazy"
	RuleCouldNotParse       = "could-not-parse"
	RuleUnexpectedShape     = "unexpected-shape"
	RuleUnexpectedEmpty     = "unexpected-empty"
)

// GrammarError is an error in the document, located at a point.
type GrammarError struct {
	Point   mdxjsx.Point
	Message string
	Source  string // extension reporting the error, e.g. "mdx-jsx"
	RuleID  string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("%s: %s", e.Point, e.Message)
}

// Errorf creates a grammar error at the current point.
func (t *Tokenizer) Errorf(source, rule string, format string, args ...interface{}) *GrammarError {
	return &GrammarError{
		Point:   t.Now(),
		Message: fmt.Sprintf(format, args...),
		Source:  source,
		RuleID:  rule,
	}
}

// IsGrammarError is true if err is or wraps a grammar error.
func IsGrammarError(err error) bool {
	var gerr *GrammarError
	return errors.As(err, &gerr)
}

// Describe names a code for use in diagnostics: "end of file" or
// "character `x` (U+0078)".
func Describe(c mdxjsx.Code) string {
	switch {
	case c == mdxjsx.EOF:
		return "end of file"
	case c == '`':
		return "character `` ` `` (" + c.Format() + ")"
	case c == mdxjsx.CRLF:
		return "character `\\r\\n` (" + mdxjsx.Code('\r').Format() + ")"
	case c == mdxjsx.VirtualSpace:
		return "character ` ` (" + mdxjsx.Code(' ').Format() + ")"
	}
	return "character `" + c.Text() + "` (" + c.Format() + ")"
}

package mdxjsx

import (
	"fmt"
	"unicode"
)

// --- Codes -----------------------------------------------------------------

// Code is a single unit of input. It is either a Unicode scalar value or one
// of the sentinel values below. Sentinels are negative and therefore never
// collide with a rune.
type Code rune

// Sentinel codes.
const (
	EOF          Code = -1 // end of input
	CRLF         Code = -2 // a carriage return followed by a line feed
	VirtualSpace Code = -3 // column filler, following a tab up to the next tab stop
)

// TabSize is the width of a tab stop.
const TabSize = 4

// IsLineEnding is true for line feed, carriage return and CRLF.
func IsLineEnding(c Code) bool {
	return c == '\n' || c == '\r' || c == CRLF
}

// IsSpace is true for space, tab and virtual spaces.
func IsSpace(c Code) bool {
	return c == ' ' || c == '\t' || c == VirtualSpace
}

// IsLineEndingOrSpace combines IsLineEnding and IsSpace.
func IsLineEndingOrSpace(c Code) bool {
	return IsLineEnding(c) || IsSpace(c)
}

// IsUnicodeWhitespace is true for any code the Unicode standard considers
// white space. This includes line endings and spaces.
func IsUnicodeWhitespace(c Code) bool {
	if c < 0 {
		return c == CRLF || c == VirtualSpace
	}
	return unicode.IsSpace(rune(c))
}

// Text returns the source text a code stands for. Virtual spaces and EOF
// have no text.
func (c Code) Text() string {
	switch {
	case c == CRLF:
		return "\r\n"
	case c < 0:
		return ""
	}
	return string(rune(c))
}

// Format returns the code point notation of a code, e.g. "U+0021".
func (c Code) Format() string {
	if c < 0 {
		return "U+FFFD"
	}
	return fmt.Sprintf("U+%04X", int32(c))
}

func (c Code) String() string {
	switch c {
	case EOF:
		return "EOF"
	case CRLF:
		return "CRLF"
	case VirtualSpace:
		return "VS"
	}
	return fmt.Sprintf("%q", rune(c))
}

// --- Points ----------------------------------------------------------------

// Point is a place in the source document.
// Line and Column are 1-based, Offset is a 0-based byte offset. Columns
// count tab stops, i.e. a tab may advance the column by more than one while
// advancing the offset by one.
type Point struct {
	Line   int
	Column int
	Offset int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// --- Spans -----------------------------------------------------------------

// Span is a small type for capturing a run of input bytes. A span denotes a
// start offset and the offset just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Token kinds -----------------------------------------------------------

// Token is implemented by the tokens a tokenizer produces.
type Token interface {
	TokType() TokType
	Span() Span
}

// Context tells whether a token has been produced in flow or text position.
// The same kind of token is named differently depending on its context.
type Context uint8

// Contexts for tokens.
const (
	NoContext Context = iota
	Flow
	Text
)

func (c Context) String() string {
	switch c {
	case Flow:
		return "flow"
	case Text:
		return "text"
	}
	return "none"
}

// TokType is a category type for a token.
type TokType int

// Generic token kinds, which are the same in every context.
const (
	Data TokType = iota + 1
	Whitespace
	EsWhitespace
	LineEnding
	LinePrefix
	ChunkText
	// kinds of the flow expression construct
	FlowExpression
	FlowExpressionMarker
	FlowExpressionChunk
)

// JSX token kinds. Their names are prefixed by the context.
const (
	Tag TokType = iota + 100
	TagMarker
	TagClosingMarker
	TagSelfClosingMarker
	TagName
	TagNamePrimary
	TagNameMemberMarker
	TagNameMember
	TagNamePrefixMarker
	TagNameLocal
	TagExpressionAttribute
	TagExpressionAttributeMarker
	TagExpressionAttributeValue
	TagAttribute
	TagAttributeName
	TagAttributeNamePrimary
	TagAttributeNamePrefixMarker
	TagAttributeNameLocal
	TagAttributeInitializerMarker
	TagAttributeValueLiteral
	TagAttributeValueLiteralMarker
	TagAttributeValueLiteralValue
	TagAttributeValueExpression
	TagAttributeValueExpressionMarker
	TagAttributeValueExpressionValue
)

var tokTypeNames = map[TokType]string{
	Data:                 "data",
	Whitespace:           "whitespace",
	EsWhitespace:         "esWhitespace",
	LineEnding:           "lineEnding",
	LinePrefix:           "linePrefix",
	ChunkText:            "chunkText",
	FlowExpression:       "mdxFlowExpression",
	FlowExpressionMarker: "mdxFlowExpressionMarker",
	FlowExpressionChunk:  "mdxFlowExpressionChunk",
	//
	Tag:                               "Tag",
	TagMarker:                         "TagMarker",
	TagClosingMarker:                  "TagClosingMarker",
	TagSelfClosingMarker:              "TagSelfClosingMarker",
	TagName:                           "TagName",
	TagNamePrimary:                    "TagNamePrimary",
	TagNameMemberMarker:               "TagNameMemberMarker",
	TagNameMember:                     "TagNameMember",
	TagNamePrefixMarker:               "TagNamePrefixMarker",
	TagNameLocal:                      "TagNameLocal",
	TagExpressionAttribute:            "TagExpressionAttribute",
	TagExpressionAttributeMarker:      "TagExpressionAttributeMarker",
	TagExpressionAttributeValue:       "TagExpressionAttributeValue",
	TagAttribute:                      "TagAttribute",
	TagAttributeName:                  "TagAttributeName",
	TagAttributeNamePrimary:           "TagAttributeNamePrimary",
	TagAttributeNamePrefixMarker:      "TagAttributeNamePrefixMarker",
	TagAttributeNameLocal:             "TagAttributeNameLocal",
	TagAttributeInitializerMarker:     "TagAttributeInitializerMarker",
	TagAttributeValueLiteral:          "TagAttributeValueLiteral",
	TagAttributeValueLiteralMarker:    "TagAttributeValueLiteralMarker",
	TagAttributeValueLiteralValue:     "TagAttributeValueLiteralValue",
	TagAttributeValueExpression:       "TagAttributeValueExpression",
	TagAttributeValueExpressionMarker: "TagAttributeValueExpressionMarker",
	TagAttributeValueExpressionValue:  "TagAttributeValueExpressionValue",
}

// IsJSX is true for token kinds which belong to a tag.
func (tt TokType) IsJSX() bool {
	return tt >= Tag && tt <= TagAttributeValueExpressionValue
}

func (tt TokType) String() string {
	if name, ok := tokTypeNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("TokType(%d)", int(tt))
}

// Name returns the conventional name of a token kind in a given context,
// e.g. "mdxJsxFlowTagName" for TagName in flow position.
func (tt TokType) Name(ctx Context) string {
	if !tt.IsJSX() {
		return tt.String()
	}
	switch ctx {
	case Flow:
		return "mdxJsxFlow" + tt.String()
	case Text:
		return "mdxJsxText" + tt.String()
	}
	return "mdxJsx" + tt.String()
}

package expression

import (
	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// FlowConstructName is the name of the construct returned by FlowConstruct.
const FlowConstructName = "mdxFlowExpression"

// FlowConstruct returns a construct for expressions in flow position, i.e.
// an expression followed by nothing but white space on its last line:
//
//    {props.title}
//
// An empty expression (`{}` or `{/* comment */}`) is allowed. bridge may be
// nil, in which case expressions are not parsed.
func FlowConstruct(bridge *Bridge, attach bool) *tokenizer.Construct {
	construct := &tokenizer.Construct{
		Name:    FlowConstructName,
		Trigger: '{',
	}
	construct.Tokenize = func(t *tokenizer.Tokenizer) error {
		f := Factory{
			Bridge:     bridge,
			Attach:     attach,
			Kind:       mdxjsx.FlowExpression,
			MarkerKind: mdxjsx.FlowExpressionMarker,
			ValueKind:  mdxjsx.FlowExpressionChunk,
			Mode:       Single,
			AllowEmpty: true,
		}
		if err := f.Tokenize(t); err != nil {
			return err
		}
		if mdxjsx.IsSpace(t.Current()) {
			t.Enter(mdxjsx.Whitespace)
			for mdxjsx.IsSpace(t.Current()) {
				t.Consume()
			}
			t.Exit(mdxjsx.Whitespace)
		}
		if c := t.Current(); c == mdxjsx.EOF || mdxjsx.IsLineEnding(c) {
			return nil
		}
		return tokenizer.ErrNoMatch
	}
	return construct
}

package syntax

import (
	"github.com/npillmayer/mdxjsx/tag"
	"github.com/npillmayer/mdxjsx/tokenizer"
)

// textConstruct creates the construct for tags in text position. It ends
// right after the tag; what follows is left to the host.
func textConstruct(x tag.Expressions) *tokenizer.Construct {
	return &tokenizer.Construct{
		Name:    TextConstructName,
		Trigger: '<',
		Tokenize: func(t *tokenizer.Tokenizer) error {
			return tag.Tokenize(t, tag.Text, x)
		},
	}
}

package syntax_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/mdxjsx/expression/ecma"
	"github.com/npillmayer/mdxjsx/syntax"
	"github.com/npillmayer/mdxjsx/tokenizer"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func extension(t *testing.T, opts ...syntax.Option) *syntax.Extension {
	ext, err := syntax.New(opts...)
	if err != nil {
		t.Fatalf("cannot create extension: %v", err)
	}
	return ext
}

// attempt runs a construct on input, within a host that knows about flow
// expressions if withExpressions is set.
func attempt(x *tokenizer.Construct, input string, withExpressions bool) (*tokenizer.Tokenizer, error) {
	codes, points := mdxjsx.PreprocessString(input)
	host := &tokenizer.Host{}
	if withExpressions {
		host.Flow = map[mdxjsx.Code][]*tokenizer.Construct{
			'{': {expression.FlowConstruct(nil, false)},
		}
	}
	t := tokenizer.New(codes, points, host)
	return t, t.Attempt(func() error { return x.Tokenize(t) })
}

func TestConfiguration(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	for i, x := range []struct {
		opts []syntax.Option
		msg  string // empty if valid
	}{
		{nil, ""},
		{[]syntax.Option{syntax.WithExpressionParser(ecma.New())}, ""},
		{[]syntax.Option{syntax.WithExpressionParser(ecma.New()), syntax.AttachExpressionResults(true)}, ""},
		{[]syntax.Option{syntax.AttachExpressionResults(true)}, "Expected an expression parser"},
		{[]syntax.Option{syntax.WithExpressionParserOptions(expression.Options{SourceType: "script"})},
			"Expected an expression parser"},
		{[]syntax.Option{syntax.WithExpressionParser(nil)}, "Expected a proper expression parser"},
		{[]syntax.Option{syntax.WithExpressionParser((*ecma.Parser)(nil))}, "Expected a proper expression parser"},
	} {
		ext, err := syntax.New(x.opts...)
		if x.msg == "" {
			if err != nil || ext == nil {
				t.Errorf("test %d: expected valid configuration, have %v", i, err)
			}
			continue
		}
		if !errors.Is(err, syntax.ErrInvalidConfig) {
			t.Errorf("test %d: expected configuration error, have %v", i, err)
			continue
		}
		if !strings.Contains(err.Error(), x.msg) {
			t.Errorf("test %d: expected error to contain %q, is %q", i, x.msg, err.Error())
		}
	}
}

func TestConstructs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	ext := extension(t)
	flow, text := ext.Flow['<'], ext.Text['<']
	if flow == nil || text == nil {
		t.Fatalf("expected constructs to be triggered by '<'")
	}
	if flow.Name != syntax.FlowConstructName {
		t.Errorf("expected flow construct %s, is %s", syntax.FlowConstructName, flow.Name)
	}
	if text.Name != syntax.TextConstructName {
		t.Errorf("expected text construct %s, is %s", syntax.TextConstructName, text.Name)
	}
	if inline := extension(t, syntax.PreferInline(true)).Flow['<']; inline == flow || inline.Name != syntax.FlowConstructName {
		t.Errorf("expected a separate flow construct in trailing-text mode")
	}
}

func TestFlowTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	flow := extension(t).Flow['<']
	for i, x := range []struct {
		input string
		exprs bool
		err   error
		stop  int // index of the cursor after success
	}{
		{"<a/>", false, nil, 4},
		{"<a/>  ", false, nil, 6},
		{"<a/> <b/>", false, nil, 9},
		{"<a>\nb", false, nil, 3},
		{"<a/> x", false, tokenizer.ErrNoMatch, 0},
		{"<a/> {b}", false, tokenizer.ErrNoMatch, 0},
		{"<a/> {b}", true, nil, 8},
		{"<a/> {b} c", true, tokenizer.ErrNoMatch, 0},
		{"< a/>", false, tokenizer.ErrNoMatch, 0},
	} {
		tok, err := attempt(flow, x.input, x.exprs)
		if err != x.err {
			t.Errorf("test %d: expected %v for %q, have %v", i, x.err, x.input, err)
			continue
		}
		if tok.Index() != x.stop {
			t.Errorf("test %d: expected construct to stop at %d, stops at %d", i, x.stop, tok.Index())
		}
	}
}

func TestFlowTagsInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	flow := extension(t).Flow['<']
	_, err := attempt(flow, "<a/> <b!>", false)
	var gerr *tokenizer.GrammarError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected grammar error for second tag, have %v", err)
	}
	if gerr.Point.String() != "1:8" {
		t.Errorf("expected error at 1:8, is at %s", gerr.Point)
	}
	tok, _ := attempt(flow, "<a/>", false)
	if name := tok.Events()[0].Token.Name(); name != "mdxJsxFlowTag" {
		t.Errorf("expected first token to be mdxJsxFlowTag, is %s", name)
	}
}

func TestTrailingText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	flow := extension(t, syntax.PreferInline(true)).Flow['<']
	for i, x := range []struct {
		input string
		err   error
		stop  int
	}{
		{"<a/>", nil, 4},
		{"<a/> b\n", nil, 7},
		{"<a/> b <c/>\nd\n", nil, 14},
		{"<a/>\n\nb", nil, 5},
		{"<a/> b < c\n", nil, 11},
		{"<a/> b", tokenizer.ErrNoMatch, 0},
	} {
		tok, err := attempt(flow, x.input, false)
		if err != x.err {
			t.Errorf("test %d: expected %v for %q, have %v", i, x.err, x.input, err)
			continue
		}
		if tok.Index() != x.stop {
			t.Errorf("test %d: expected construct to stop at %d, stops at %d", i, x.stop, tok.Index())
		}
	}
	tok, _ := attempt(flow, "<a/> b <c/>\nd\n", false)
	tags := 0
	for _, e := range tok.Events() {
		if e.Enter && e.Token.Type == mdxjsx.Tag {
			tags++
		}
	}
	if tags != 2 {
		t.Errorf("expected 2 tags in trailing text, have %d", tags)
	}
}

func TestTrailingTextManyTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	flow := extension(t, syntax.PreferInline(true)).Flow['<']
	input := "<a/>" + strings.Repeat("x<b/>", 50) + "\n" + strings.Repeat("y <c/>", 50) + "\n"
	done := make(chan struct{})
	var tok *tokenizer.Tokenizer
	var err error
	go func() {
		tok, err = attempt(flow, input, false)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected trailing text with many tags to be recognized in time")
	}
	if err != nil {
		t.Fatalf("expected trailing text with many tags to be recognized, failed with %v", err)
	}
	if tok.Index() != len(input) {
		t.Errorf("expected construct to stop at %d, stops at %d", len(input), tok.Index())
	}
	tags := 0
	for _, e := range tok.Events() {
		if e.Enter && e.Token.Type == mdxjsx.Tag {
			tags++
		}
	}
	if tags != 101 {
		t.Errorf("expected 101 tags in trailing text, have %d", tags)
	}
}

func TestTextConstruct(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.syntax")
	defer teardown()
	//
	text := extension(t, syntax.WithExpressionParser(ecma.New()), syntax.AttachExpressionResults(true)).Text['<']
	tok, err := attempt(text, "<a b={1}/> c", false)
	if err != nil {
		t.Fatalf("expected text tag to be recognized, failed with %v", err)
	}
	if tok.Index() != 10 {
		t.Errorf("expected construct to end right after the tag, ends at %d", tok.Index())
	}
	attached := false
	for _, e := range tok.Events() {
		if e.Enter && e.Token.Type == mdxjsx.TagAttributeValueExpression {
			attached = e.Token.Estree != nil
		}
	}
	if !attached {
		t.Errorf("expected expression tree to be attached")
	}
	if _, err := attempt(text, "<a b={1 +}/>", false); !tokenizer.IsGrammarError(err) {
		t.Errorf("expected grammar error for broken expression, have %v", err)
	}
}

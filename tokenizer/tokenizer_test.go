package tokenizer

import (
	"errors"
	"testing"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// word consumes letters as a Data token.
func word(t *Tokenizer) error {
	if c := t.Current(); c < 'a' || c > 'z' {
		return ErrNoMatch
	}
	t.Enter(mdxjsx.Data)
	for c := t.Current(); c >= 'a' && c <= 'z'; c = t.Current() {
		t.Consume()
	}
	t.Exit(mdxjsx.Data)
	return nil
}

func TestConsumeAndEvents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("ab cd")
	if err := word(tok); err != nil {
		t.Fatalf("expected word to match, failed with %v", err)
	}
	if tok.Current() != ' ' || tok.Peek(1) != 'c' || tok.Peek(10) != mdxjsx.EOF {
		t.Errorf("expected cursor on space, is on %v", tok.Current())
	}
	events := tok.Events()
	if len(events) != 2 || !events[0].Enter || events[1].Enter {
		t.Fatalf("expected enter and exit event, have %v", events)
	}
	token := events[0].Token
	if text := tok.Text(token); text != "ab" {
		t.Errorf("expected token text 'ab', is %q", text)
	}
	if token.Span() != (mdxjsx.Span{0, 2}) {
		t.Errorf("expected span (0…2), is %s", token.Span())
	}
	if token.End != (mdxjsx.Point{Line: 1, Column: 3, Offset: 2}) {
		t.Errorf("expected token to end at 1:3, is %s", token.End)
	}
	if s := tok.Slice(0, 5); s != "ab cd" {
		t.Errorf("expected slice 'ab cd', is %q", s)
	}
}

func TestAttemptRollsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("ab!")
	failure := errors.New("no bang")
	err := tok.Attempt(func() error {
		tok.Enter(mdxjsx.Tag)
		if err := word(tok); err != nil {
			return err
		}
		return failure // leaves Tag open
	})
	if err != failure {
		t.Errorf("expected attempt to return the error of the sub-parse, is %v", err)
	}
	if tok.Index() != 0 || len(tok.Events()) != 0 || tok.Depth() != 0 {
		t.Errorf("expected tokenizer to be restored, index=%d events=%d depth=%d",
			tok.Index(), len(tok.Events()), tok.Depth())
	}
	if err := tok.Attempt(func() error { return word(tok) }); err != nil {
		t.Errorf("expected second attempt to succeed, is %v", err)
	}
	if tok.Index() != 2 || len(tok.Events()) != 2 {
		t.Errorf("expected effects of successful attempt to be kept")
	}
}

func TestCheckSwallowsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("ab")
	if !tok.Check(func() error { return word(tok) }) {
		t.Errorf("expected check to succeed")
	}
	if tok.Index() != 0 || len(tok.Events()) != 0 {
		t.Errorf("expected check to restore the tokenizer after success")
	}
	ok := tok.Check(func() error {
		return tok.Errorf("test", RuleUnexpectedCharacter, "Unexpected %s", Describe(tok.Current()))
	})
	if ok {
		t.Errorf("expected check to fail for grammar error")
	}
}

func TestExitMismatchPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("a")
	tok.Enter(mdxjsx.Data)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected exit of wrong kind to panic")
		}
	}()
	tok.Exit(mdxjsx.Tag)
}

func TestConsumeOutsideTokenPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("a")
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected consume outside of a token to panic")
		}
	}()
	tok.Consume()
}

func TestGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("a\n!")
	tok.Enter(mdxjsx.Data)
	tok.Consume()
	tok.Consume()
	err := tok.Errorf("mdx-jsx", RuleUnexpectedCharacter, "Unexpected %s", Describe(tok.Current()))
	if err.Error() != "2:1: Unexpected character `!` (U+0021)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !IsGrammarError(err) || IsGrammarError(ErrNoMatch) {
		t.Errorf("IsGrammarError does not recognize grammar errors")
	}
	for i, x := range []struct {
		c    mdxjsx.Code
		desc string
	}{
		{mdxjsx.EOF, "end of file"},
		{'`', "character `` ` `` (U+0060)"},
		{'@', "character `@` (U+0040)"},
	} {
		if desc := Describe(x.c); desc != x.desc {
			t.Errorf("test %d: expected description %q, is %q", i, x.desc, desc)
		}
	}
}

func TestHostLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	var nohost *Host
	if nohost.FlowConstruct('{', "x") != nil {
		t.Errorf("expected nil host to have no constructs")
	}
	x := &Construct{Name: "x", Trigger: '{', Tokenize: word}
	host := &Host{
		Flow: map[mdxjsx.Code][]*Construct{'{': {x}},
		Lazy: map[int]bool{2: true},
	}
	if host.FlowConstruct('{', "x") != x || host.FlowConstruct('{', "y") != nil {
		t.Errorf("expected host to find construct by name")
	}
	codes, points := mdxjsx.PreprocessString("a\nb")
	tok := New(codes, points, host)
	if tok.IsLazy(1) || !tok.IsLazy(2) {
		t.Errorf("expected line 2 to be lazy")
	}
}

func TestAttemptRestoresClosedTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.tokenizer")
	defer teardown()
	//
	tok := FromString("abc")
	outer := tok.Enter(mdxjsx.Data)
	tok.Consume()
	err := tok.Attempt(func() error {
		tok.Consume()
		tok.Exit(mdxjsx.Data) // closes a token opened before the attempt
		return ErrNoMatch
	})
	if err != ErrNoMatch {
		t.Errorf("expected attempt to fail with no match, is %v", err)
	}
	if tok.Depth() != 1 || tok.Index() != 1 || len(tok.Events()) != 1 {
		t.Fatalf("expected outer token to be open again, depth=%d index=%d events=%d",
			tok.Depth(), tok.Index(), len(tok.Events()))
	}
	if outer.End != (mdxjsx.Point{}) {
		t.Errorf("expected end of outer token to be reset, is %s", outer.End)
	}
	tok.Consume()
	if closed := tok.Exit(mdxjsx.Data); closed != outer || tok.Text(closed) != "ab" {
		t.Errorf("expected outer token to close over 'ab', is %q", tok.Text(closed))
	}
	ok := tok.Check(func() error {
		tok.Enter(mdxjsx.Data)
		tok.Consume()
		tok.Exit(mdxjsx.Data)
		return nil
	})
	if !ok || tok.Index() != 2 || len(tok.Events()) != 2 {
		t.Errorf("expected check to roll back a successful sub-parse")
	}
}

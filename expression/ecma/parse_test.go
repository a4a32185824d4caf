package ecma

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/mdxjsx/estree"
	"github.com/npillmayer/mdxjsx/expression"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var ignoreLocations = cmpopts.IgnoreTypes(estree.Base{})

func parseOne(t *testing.T, src string) estree.Node {
	prog, err := New().ParseProgram(src, expression.DefaultOptions)
	if err != nil {
		t.Fatalf("expected %q to parse, failed with %v", src, err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected %q to have a single statement, has %d", src, len(prog.Body))
	}
	return prog.Body[0].(*estree.ExpressionStatement).Expression
}

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	s, err := newScanner(`a.b?.["x"] /* c */ 0x1F // d`, 0)
	if err != nil {
		t.Fatalf("cannot create scanner: %v", err)
	}
	var types []int
	for {
		tok, err := s.next()
		if err != nil {
			t.Fatalf("unexpected scanner error: %v", err)
		}
		if tok.typ == tokEOF {
			break
		}
		types = append(types, tok.typ)
	}
	expected := []int{tokIdent, tokPunct, tokIdent, tokPunct, tokPunct, tokString, tokPunct, tokNumber}
	if diff := cmp.Diff(expected, types); diff != "" {
		t.Errorf("token types differ (-expected +is):\n%s", diff)
	}
}

func TestPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	x := parseOne(t, "a + b * c ?? d ** e ** f")
	expected := &estree.LogicalExpression{
		Operator: "??",
		Left: &estree.BinaryExpression{
			Operator: "+",
			Left:     &estree.Identifier{Name: "a"},
			Right: &estree.BinaryExpression{
				Operator: "*",
				Left:     &estree.Identifier{Name: "b"},
				Right:    &estree.Identifier{Name: "c"},
			},
		},
		Right: &estree.BinaryExpression{
			Operator: "**",
			Left:     &estree.Identifier{Name: "d"},
			Right: &estree.BinaryExpression{
				Operator: "**",
				Left:     &estree.Identifier{Name: "e"},
				Right:    &estree.Identifier{Name: "f"},
			},
		},
	}
	if diff := cmp.Diff(estree.Node(expected), x, ignoreLocations); diff != "" {
		t.Errorf("trees differ (-expected +is):\n%s", diff)
	}
}

func TestObjectsAndMembers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	x := parseOne(t, `{a, "b": [1, , ...c], [d]: e.f(g)}`)
	expected := &estree.ObjectExpression{Properties: []estree.Node{
		&estree.Property{
			Key:       &estree.Identifier{Name: "a"},
			Value:     &estree.Identifier{Name: "a"},
			Kind:      "init",
			Shorthand: true,
		},
		&estree.Property{
			Key: &estree.Literal{Value: "b", Raw: `"b"`},
			Value: &estree.ArrayExpression{Elements: []estree.Node{
				&estree.Literal{Value: 1.0, Raw: "1"},
				nil,
				&estree.SpreadElement{Argument: &estree.Identifier{Name: "c"}},
			}},
			Kind: "init",
		},
		&estree.Property{
			Key: &estree.Identifier{Name: "d"},
			Value: &estree.CallExpression{
				Callee: &estree.MemberExpression{
					Object:   &estree.Identifier{Name: "e"},
					Property: &estree.Identifier{Name: "f"},
				},
				Arguments: []estree.Node{&estree.Identifier{Name: "g"}},
			},
			Kind:     "init",
			Computed: true,
		},
	}}
	if diff := cmp.Diff(estree.Node(expected), x, ignoreLocations); diff != "" {
		t.Errorf("trees differ (-expected +is):\n%s", diff)
	}
}

func TestLiterals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	for i, x := range []struct {
		src   string
		value interface{}
	}{
		{`"a\nb"`, "a\nb"},
		{`'é\x41'`, "éA"},
		{`0x10`, 16.0},
		{`.5e1`, 5.0},
		{`true`, true},
		{`null`, nil},
	} {
		lit, ok := parseOne(t, x.src).(*estree.Literal)
		if !ok {
			t.Errorf("test %d: expected a literal for %s", i, x.src)
			continue
		}
		if lit.Value != x.value || lit.Raw != x.src {
			t.Errorf("test %d: expected value %v, is %v (raw %s)", i, x.value, lit.Value, lit.Raw)
		}
	}
}

func TestTemplateLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	tl, ok := parseOne(t, "`a\r\n\\tb`").(*estree.TemplateLiteral)
	if !ok {
		t.Fatalf("expected a template literal")
	}
	q := tl.Quasis[0]
	if q.Raw != "a\n\\tb" || q.Cooked != "a\n\tb" || !q.Tail {
		t.Errorf("unexpected template element raw=%q cooked=%q", q.Raw, q.Cooked)
	}
}

func TestStatements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	for i, x := range []struct {
		src   string
		count int
	}{
		{"", 0},
		{"/* comment */", 0},
		{"a; b", 2},
		{"a\nb", 2},
		{"a, b", 1},
		{"a = b = c", 1},
	} {
		prog, err := New().ParseProgram(x.src, expression.DefaultOptions)
		if err != nil {
			t.Errorf("test %d: expected %q to parse, failed with %v", i, x.src, err)
			continue
		}
		if len(prog.Body) != x.count {
			t.Errorf("test %d: expected %d statements, have %d", i, x.count, len(prog.Body))
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	for i, x := range []struct {
		src    string
		msg    string
		offset int
	}{
		{`a b`, "Unexpected token", 2},
		{`(a`, "Unexpected end of input", 2},
		{`"}`, "Unexpected character '\"'", 0},
		{`1 = 2`, "Assigning to rvalue", 0},
		{"`${a}`", "Unsupported template substitution", 1},
		{`a #`, "Unexpected character '#'", 2},
	} {
		_, err := New().ParseProgram(x.src, expression.DefaultOptions)
		var perr *expression.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("test %d: expected parse error for %q, have %v", i, x.src, err)
			continue
		}
		if perr.Message != x.msg || perr.Offset != x.offset {
			t.Errorf("test %d: expected %q at %d, is %q at %d", i, x.msg, x.offset, perr.Message, perr.Offset)
		}
	}
}

func TestParseExpressionAt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	src := "...props, rest"
	x, err := New().ParseExpressionAt(src, 3, expression.DefaultOptions)
	if err != nil {
		t.Fatalf("expected expression to parse, failed with %v", err)
	}
	id, ok := x.(*estree.Identifier)
	if !ok || id.Name != "props" {
		t.Fatalf("expected identifier 'props', is %v", x)
	}
	if loc := id.Location(); loc.Start.Offset != 3 || loc.End.Offset != 8 {
		t.Errorf("expected identifier to span 3…8, spans %d…%d", loc.Start.Offset, loc.End.Offset)
	}
	if _, err := New().ParseExpressionAt(src, 99, expression.DefaultOptions); err == nil {
		t.Errorf("expected offset out of range to fail")
	}
}

func TestLocations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ecma")
	defer teardown()
	//
	x := parseOne(t, "a +\n  \"é\" + b")
	b := x.(*estree.BinaryExpression).Right.(*estree.Identifier)
	if pos := b.Location().Start; pos.Line != 2 || pos.Column != 8 || pos.Offset != 13 {
		t.Errorf("expected b at 2:8 (13), is %s (%d)", pos, pos.Offset)
	}
}

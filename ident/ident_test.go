package ident

import (
	"testing"

	"github.com/npillmayer/mdxjsx"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNameStart(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ident")
	defer teardown()
	//
	for i, x := range []struct {
		c  mdxjsx.Code
		ok bool
	}{
		{'a', true}, {'Z', true}, {'$', true}, {'_', true}, {'π', true},
		{'ñ', true}, {'ℹ', true}, {'Ⅻ', true}, {'℘', true},
		{'1', false}, {'-', false}, {'!', false}, {'©', false}, {'¬', false},
		{' ', false}, {'@', false}, {0x200C, false}, {0x0301, false},
		{mdxjsx.EOF, false}, {mdxjsx.CRLF, false}, {mdxjsx.VirtualSpace, false},
	} {
		if ok := IsNameStart(x.c); ok != x.ok {
			t.Errorf("test %d: expected IsNameStart(%v) to be %v, is %v", i, x.c, x.ok, ok)
		}
	}
}

func TestNameContinue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mdxjsx.ident")
	defer teardown()
	//
	for i, x := range []struct {
		c  mdxjsx.Code
		ok bool
	}{
		{'a', true}, {'$', true}, {'_', true}, {'-', true}, {'1', true},
		{'٣', true}, {0x0301, true}, {'‿', true}, {0x200C, true}, {0x200D, true},
		{'·', true}, {'.', false}, {':', false}, {'@', false}, {'¬', false},
		{'\t', false}, {'\n', false}, {'>', false},
		{mdxjsx.EOF, false}, {mdxjsx.CRLF, false}, {mdxjsx.VirtualSpace, false},
	} {
		if ok := IsNameContinue(x.c); ok != x.ok {
			t.Errorf("test %d: expected IsNameContinue(%v) to be %v, is %v", i, x.c, x.ok, ok)
		}
	}
}

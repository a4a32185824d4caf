/*
Package ident classifies code points of JSX names.

JSX names follow ECMAScript identifiers, with the addition of dashes
inside names (`<my-element>`). Classification is based on the Unicode
properties ID_Start and ID_Continue, derived from the tables of package
unicode.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ident

import (
	"unicode"

	"github.com/npillmayer/mdxjsx"
)

// Zero width non-joiner and zero width joiner, allowed inside ECMAScript
// identifiers.
const (
	zwnj = 0x200C
	zwj  = 0x200D
)

// IsNameStart is true if c may start a name: a letter, `$` or `_`.
func IsNameStart(c mdxjsx.Code) bool {
	if c < 0 {
		return false
	}
	r := rune(c)
	if r == '$' || r == '_' {
		return true
	}
	return isIDStart(r)
}

// IsNameContinue is true if c may continue a name: everything which may
// start a name, plus digits, combining marks, connector punctuation,
// joiners and `-`.
func IsNameContinue(c mdxjsx.Code) bool {
	if c < 0 {
		return false
	}
	r := rune(c)
	switch r {
	case '$', '_', '-', zwnj, zwj:
		return true
	}
	return isIDContinue(r)
}

func isIDStart(r rune) bool {
	if r < 0x80 {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
	}
	if isPattern(r) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start)
}

func isIDContinue(r rune) bool {
	if r < 0x80 {
		return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9'
	}
	if isPattern(r) {
		return false
	}
	return unicode.In(r, unicode.L, unicode.Nl, unicode.Other_ID_Start,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}

func isPattern(r rune) bool {
	return unicode.In(r, unicode.Pattern_Syntax, unicode.Pattern_White_Space)
}

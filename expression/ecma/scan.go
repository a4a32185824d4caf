package ecma

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/mdxjsx/expression"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token categories
const (
	tokEOF = iota
	tokIdent
	tokKeyword
	tokNumber
	tokString
	tokTemplate
	tokPunct
)

var tokenNames = []string{"EOF", "IDENT", "KEYWORD", "NUM", "STRING", "TEMPLATE", "PUNCT"}

// The punctuators, i.e. operators and delimiters.
var punctuators = []string{
	"...", "===", "!==", "**=", "??=", "||=", "&&=", ">>>",
	"=>", "==", "!=", "<=", ">=", "&&", "||", "??", "?.", "**", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=",
	"+", "-", "*", "/", "%", "<", ">", "!", "~", "=", "&", "|", "^",
	"(", ")", "[", "]", "{", "}", ",", ":", "?", ".", ";",
}

// The keywords we recognize. Other reserved words are identifiers for us.
var keywords = map[string]bool{
	"true": true, "false": true, "null": true, "this": true,
	"typeof": true, "void": true, "delete": true,
	"in": true, "instanceof": true,
}

var lexerOnce sync.Once // monitors one-time creation of the lexer
var lexer *lexmachine.Lexer
var lexerErr error

// makeLexer creates the lexmachine lexer, compiling its DFA once.
func makeLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`( |\t|\n|\r)+`), skip)
		lx.Add([]byte(`//[^\n]*`), skip)
		lx.Add([]byte(`/\*([^*]|\*+[^*/])*\*+/`), skip)
		lx.Add([]byte(`[a-zA-Z_$][a-zA-Z0-9_$]*`), identOrKeyword)
		lx.Add([]byte(`0[xX][0-9a-fA-F]+`), makeToken(tokNumber))
		lx.Add([]byte(`[0-9]+(\.[0-9]*)?([eE][\+\-]?[0-9]+)?`), makeToken(tokNumber))
		lx.Add([]byte(`\.[0-9]+([eE][\+\-]?[0-9]+)?`), makeToken(tokNumber))
		lx.Add([]byte(`"([^"\\\n]|\\[^\n])*"`), makeToken(tokString))
		lx.Add([]byte(`'([^'\\\n]|\\[^\n])*'`), makeToken(tokString))
		lx.Add([]byte("`"+`([^`+"`"+`\\]|\\[^\n])*`+"`"), makeToken(tokTemplate))
		for _, p := range punctuators {
			r := "\\" + strings.Join(strings.Split(p, ""), "\\")
			lx.Add([]byte(r), makeToken(tokPunct))
		}
		if err := lx.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

// skip is an action which ignores the scanned match.
func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// makeToken is an action which wraps a scanned match into a token.
func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

func identOrKeyword(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	if keywords[string(m.Bytes)] {
		return s.Token(tokKeyword, string(m.Bytes), m), nil
	}
	return s.Token(tokIdent, string(m.Bytes), m), nil
}

// --- Scanner ---------------------------------------------------------------

type token struct {
	typ        int
	lit        string
	start, end int // byte offsets into the complete source
}

func (t token) String() string {
	return fmt.Sprintf("%s(%q)@%d", tokenNames[t.typ], t.lit, t.start)
}

// scanner produces tokens from a source, starting at an offset.
type scanner struct {
	src  string
	base int
	lms  *lexmachine.Scanner
}

func newScanner(src string, offset int) (*scanner, error) {
	if offset < 0 || offset > len(src) {
		return nil, fmt.Errorf("offset %d out of range for source of length %d", offset, len(src))
	}
	lx, err := makeLexer()
	if err != nil {
		return nil, err
	}
	lms, err := lx.Scanner([]byte(src[offset:]))
	if err != nil {
		return nil, err
	}
	return &scanner{src: src, base: offset, lms: lms}, nil
}

func (s *scanner) next() (token, error) {
	tok, err, eos := s.lms.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			at := s.base + ui.StartTC
			if at > len(s.src) {
				at = len(s.src)
			}
			r, _ := utf8.DecodeRuneInString(s.src[at:])
			return token{}, &expression.ParseError{
				Message: fmt.Sprintf("Unexpected character '%c'", r),
				Offset:  at,
			}
		}
		return token{}, err
	}
	if eos {
		return token{typ: tokEOF, start: len(s.src), end: len(s.src)}, nil
	}
	lt := tok.(*lexmachine.Token)
	start := s.base + lt.TC
	t := token{typ: lt.Type, lit: string(lt.Lexeme), start: start, end: start + len(lt.Lexeme)}
	tracer().Debugf("token %v", t)
	return t, nil
}

package mdxjsx

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Preprocess reads a document and splits it into codes. Line endings are
// normalized to a single code each (CRLF for "\r\n"), tabs are followed by
// virtual spaces up to the next tab stop.
//
// The returned points have one entry more than the codes: points[i] is the
// place of codes[i], the last point is the end of the document.
func Preprocess(r io.RuneReader) ([]Code, []Point, error) {
	rd := codeReader{reader: r}
	pos := Point{Line: 1, Column: 1}
	var codes []Code
	var points []Point
	for {
		ch, err := rd.lookahead()
		if err == io.EOF {
			break
		} else if err != nil {
			return codes, points, fmt.Errorf("cannot preprocess input: %w", err)
		}
		size := rd.match()
		switch ch {
		case '\r':
			if next, err := rd.lookahead(); err == nil && next == '\n' {
				rd.match()
				codes, points = append(codes, CRLF), append(points, pos)
				pos = Point{Line: pos.Line + 1, Column: 1, Offset: pos.Offset + 2}
				continue
			}
			fallthrough
		case '\n':
			codes, points = append(codes, Code(ch)), append(points, pos)
			pos = Point{Line: pos.Line + 1, Column: 1, Offset: pos.Offset + 1}
		case '\t':
			codes, points = append(codes, Code(ch)), append(points, pos)
			n := TabSize - (pos.Column-1)%TabSize
			pos.Column++
			pos.Offset++
			for ; n > 1; n-- {
				codes, points = append(codes, VirtualSpace), append(points, pos)
				pos.Column++
			}
		default:
			codes, points = append(codes, Code(ch)), append(points, pos)
			pos.Column++
			pos.Offset += size
		}
	}
	points = append(points, pos)
	return codes, points, nil
}

// PreprocessString is a convenience variant of Preprocess for strings.
func PreprocessString(s string) ([]Code, []Point) {
	codes, points, _ := Preprocess(strings.NewReader(s)) // strings.Reader never fails
	return codes, points
}

// --- Rune reader with one rune of lookahead --------------------------------

type codeReader struct {
	reader  io.RuneReader
	next    rune
	size    int
	hasNext bool
	err     error
}

func (rd *codeReader) lookahead() (rune, error) {
	if rd.hasNext {
		return rd.next, nil
	}
	if rd.err != nil {
		return utf8.RuneError, rd.err
	}
	r, sz, err := rd.reader.ReadRune()
	if err != nil {
		rd.err = err
		return utf8.RuneError, err
	}
	rd.next, rd.size, rd.hasNext = r, sz, true
	return r, nil
}

// match consumes the lookahead rune and returns its length in bytes.
func (rd *codeReader) match() int {
	rd.hasNext = false
	return rd.size
}

package markdown

import (
	"sort"

	"github.com/npillmayer/mdxjsx"
)

// line is a line of a (sub-)document, without its line ending. Container
// prefixes of enclosing block quotes have been removed.
type line struct {
	codes  []mdxjsx.Code
	points []mdxjsx.Point // one more than codes, the last is the point of the line ending
	eol    mdxjsx.Code    // line ending, EOF for the last line of the document
	number int            // line number in the document
	lazy   bool           // lacks the prefix of the container it belongs to
}

// splitLines splits preprocessed codes into lines. A final line ending does
// not start an additional empty line.
func splitLines(codes []mdxjsx.Code, points []mdxjsx.Point) []line {
	var lines []line
	start := 0
	for i := 0; i <= len(codes); i++ {
		if i < len(codes) && !mdxjsx.IsLineEnding(codes[i]) {
			continue
		}
		eol := mdxjsx.EOF
		if i < len(codes) {
			eol = codes[i]
		}
		lines = append(lines, line{
			codes:  codes[start:i],
			points: points[start : i+1],
			eol:    eol,
			number: points[start].Line,
		})
		start = i + 1
	}
	if n := len(lines); n > 1 && len(lines[n-1].codes) == 0 {
		lines = lines[:n-1]
	}
	return lines
}

func (ln line) isBlank() bool {
	for _, c := range ln.codes {
		if !mdxjsx.IsSpace(c) {
			return false
		}
	}
	return true
}

// indent returns the number of leading space codes and the width in
// columns they occupy.
func (ln line) indent() (n int, width int) {
	for n < len(ln.codes) && mdxjsx.IsSpace(ln.codes[n]) {
		n++
	}
	return n, ln.points[n].Column - ln.points[0].Column
}

// first returns the first code after indentation, or EOF.
func (ln line) first() mdxjsx.Code {
	n, _ := ln.indent()
	if n == len(ln.codes) {
		return mdxjsx.EOF
	}
	return ln.codes[n]
}

// from returns the line starting with code number k.
func (ln line) from(k int) line {
	ln.codes = ln.codes[k:]
	ln.points = ln.points[k:]
	return ln
}

// quotePrefix returns the number of codes of a block quote prefix: up to
// three spaces, `>`, and an optional space or tab. It returns 0 if the line
// does not start with a block quote marker.
func (ln line) quotePrefix() int {
	k := 0
	for k < 3 && k < len(ln.codes) && ln.codes[k] == ' ' {
		k++
	}
	if k == len(ln.codes) || ln.codes[k] != '>' {
		return 0
	}
	k++
	if k < len(ln.codes) && (ln.codes[k] == ' ' || ln.codes[k] == '\t') {
		k++
	}
	return k
}

// trimEnd removes trailing spaces.
func (ln line) trimEnd() line {
	n := len(ln.codes)
	for n > 0 && mdxjsx.IsSpace(ln.codes[n-1]) {
		n--
	}
	ln.codes = ln.codes[:n]
	ln.points = ln.points[:n+1]
	return ln
}

// --- Streams ---------------------------------------------------------------

// stream is the concatenation of lines, separated by their line endings,
// as input for a tokenizer.
type stream struct {
	codes  []mdxjsx.Code
	points []mdxjsx.Point
	starts []int // index of the first code of every line
	lazy   map[int]bool
}

// join concatenates lines. The line ending of the last line is not
// included.
func join(lines []line) *stream {
	s := &stream{lazy: make(map[int]bool)}
	for i, ln := range lines {
		s.starts = append(s.starts, len(s.codes))
		s.codes = append(s.codes, ln.codes...)
		s.points = append(s.points, ln.points[:len(ln.codes)]...)
		if ln.lazy {
			s.lazy[ln.number] = true
		}
		if i < len(lines)-1 {
			s.codes = append(s.codes, ln.eol)
			s.points = append(s.points, ln.points[len(ln.codes)])
		}
	}
	if n := len(lines); n > 0 {
		last := lines[n-1]
		s.points = append(s.points, last.points[len(last.codes)])
	} else {
		s.points = append(s.points, mdxjsx.Point{Line: 1, Column: 1})
	}
	return s
}

// lineOf returns the number of the line (within the stream) holding code
// index i. The line ending of a line belongs to it.
func (s *stream) lineOf(i int) int {
	return sort.Search(len(s.starts), func(j int) bool { return s.starts[j] > i }) - 1
}

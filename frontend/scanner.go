package frontend

import (
	"unicode/utf8"

	"github.com/pasc-lang/pasc/source"
)

// Scanner structs hold the state of a scanner instance which consumes source
// code runes one at a time. Since source code documents can be Unicode, the
// scanner must keep track of each rune's byte offset. The scanner also records
// line and column data which it emits along with each rune.
//
// The first character in each line is considered to be in column 1. Once the
// document is exhausted the Done method reports true and any further Peek or
// Next calls return the zero rune with the position after the last rune
type Scanner struct {
	File     *source.File
	nextByte int // initialized to 0
	nextLine int // ...  ...  ...  1
	nextCol  int // ...  ...  ...  1
}

// NewScanner is a basic constructor function for Scanners which populates
// private fields with the appropriate starting values
func NewScanner(file *source.File) *Scanner {
	return &Scanner{
		File:     file,
		nextByte: 0,
		nextLine: 1,
		nextCol:  1,
	}
}

// Done returns true once every rune in the document has been consumed
func (s *Scanner) Done() bool {
	return s.nextByte >= len(s.File.Contents)
}

// Peek returns the next rune and its position without advancing the Scanner
func (s *Scanner) Peek() (r rune, pos source.Pos) {
	pos.Line = s.nextLine
	pos.Col = s.nextCol

	if s.Done() {
		return 0, pos
	}

	runeValue, _ := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])
	return runeValue, pos
}

// Next returns the next rune and the rune's position and advances the Scanner
// permanently, tracking line breaks as it goes
func (s *Scanner) Next() (r rune, pos source.Pos) {
	pos.Line = s.nextLine
	pos.Col = s.nextCol

	if s.Done() {
		return 0, pos
	}

	runeValue, runeWidth := utf8.DecodeRuneInString(s.File.Contents[s.nextByte:])

	if runeValue == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}

	s.nextByte += runeWidth
	return runeValue, pos
}

package frontend

import (
	"fmt"
	"strings"

	"github.com/pasc-lang/pasc/feedback"
	"github.com/pasc-lang/pasc/source"
)

// maxIdentLength bounds identifier length. Anything longer is diagnosed and
// dropped from the token stream
const maxIdentLength = 256

// Lexer structs maintain state during the lexical analysis of a chunk of
// source code, generating a sequence of Tokens. Lexical errors don't stop the
// scan: every error is collected and the scan continues with the next rune so
// a single run can report every bad lexeme in the document
type Lexer struct {
	Scanner *Scanner
	Grammar *Grammar
	toks    []Token
	msgs    []feedback.Message
}

// NewLexer is a constructor function that takes a source file and returns a
// reference to a newly minted Lexer struct using the dialect's grammar
func NewLexer(file *source.File) *Lexer {
	return &Lexer{
		Scanner: NewScanner(file),
		Grammar: newGrammar(),
	}
}

// Scan converts a source file into a token vector terminated by a single
// end-of-stream token. Every lexical error found during the scan is collected
// and returned alongside the tokens
func Scan(file *source.File) (toks []Token, msgs []feedback.Message) {
	lexer := NewLexer(file)
	return lexer.Scan()
}

// Scan drives the Lexer over the whole document and returns the accumulated
// tokens and diagnostics
func (l *Lexer) Scan() (toks []Token, msgs []feedback.Message) {
	for !l.Scanner.Done() {
		r, pos := l.Scanner.Peek()

		switch {
		case l.Grammar.isWhitespace(r) || r == '\n':
			l.Scanner.Next()
		case r == '{':
			l.skipBlockComment()
		case l.Grammar.isAlphabetical(r):
			l.lexWord()
		case l.Grammar.isNumeric(r):
			l.lexNumber()
		case r == '\'':
			l.lexQuoted()
		case r == '/':
			l.lexSlash()
		default:
			l.lexOperator(r, pos)
		}
	}

	_, pos := l.Scanner.Peek()
	l.emit(Token{
		Kind: EOFSymbol,
		Span: source.Span{Start: pos, End: pos},
	})

	return l.toks, l.msgs
}

func (l *Lexer) emit(tok Token) {
	l.toks = append(l.toks, tok)
}

func (l *Lexer) report(line int, format string, args ...interface{}) {
	l.msgs = append(l.msgs, feedback.Error{
		Classification: feedback.LexError,
		Line:           line,
		Description:    fmt.Sprintf(format, args...),
	})
}

// skipBlockComment consumes a `{ ... }` comment which may span lines. An
// unterminated comment silently ends at EOF
func (l *Lexer) skipBlockComment() {
	l.Scanner.Next()

	for !l.Scanner.Done() {
		if r, _ := l.Scanner.Next(); r == '}' {
			return
		}
	}
}

// lexWord consumes an identifier, keyword or word operator. Words are matched
// case-insensitively and emitted in canonical lowercase
func (l *Lexer) lexWord() {
	var sb strings.Builder
	_, start := l.Scanner.Peek()
	end := start

	for !l.Scanner.Done() {
		r, _ := l.Scanner.Peek()

		if l.Grammar.isIdentRune(r) == false {
			break
		}

		sb.WriteRune(r)
		_, end = l.Scanner.Next()
	}

	word := strings.ToLower(sb.String())

	if len(word) > maxIdentLength {
		l.report(start.Line, "Identifier '%s...' is too long.", word[:10])
		return
	}

	kind, isKeyword := l.Grammar.keywordKind(word)

	if isKeyword == false {
		kind = IdentSymbol
	}

	l.emit(Token{
		Kind:   kind,
		Lexeme: word,
		Span:   source.Span{Start: start, End: end},
	})
}

// lexNumber consumes a numeric literal: digits, an optional fraction and an
// optional exponent. The full lexeme is carried as text so the real/integer
// decision belongs to the semantic pass. A dot or exponent marker that isn't
// followed by a digit backs off to the integer already consumed, which is how
// `1..5` lexes as NUMBER DOTDOT NUMBER
func (l *Lexer) lexNumber() {
	var sb strings.Builder
	_, start := l.Scanner.Peek()
	end := l.lexDigits(&sb)

	if r, dotPos := l.Scanner.Peek(); r == '.' {
		l.Scanner.Next()

		if r, _ := l.Scanner.Peek(); l.Grammar.isNumeric(r) {
			sb.WriteRune('.')
			end = l.lexDigits(&sb)
		} else if r == '.' {
			// the consumed dot was the start of a range operator
			_, ddEnd := l.Scanner.Next()
			l.emit(Token{
				Kind:   NumberSymbol,
				Lexeme: sb.String(),
				Span:   source.Span{Start: start, End: end},
			})
			l.emit(Token{
				Kind:   DotDotSymbol,
				Lexeme: "..",
				Span:   source.Span{Start: dotPos, End: ddEnd},
			})
			return
		} else {
			l.emit(Token{
				Kind:   NumberSymbol,
				Lexeme: sb.String(),
				Span:   source.Span{Start: start, End: end},
			})
			l.emit(Token{
				Kind:   DotSymbol,
				Lexeme: ".",
				Span:   source.Span{Start: dotPos, End: dotPos},
			})
			return
		}
	}

	if r, ePos := l.Scanner.Peek(); r == 'e' || r == 'E' {
		marker := r
		l.Scanner.Next()

		sign := rune(0)
		signPos := ePos
		if r, pos := l.Scanner.Peek(); r == '+' || r == '-' {
			sign = r
			signPos = pos
			l.Scanner.Next()
		}

		if r, _ := l.Scanner.Peek(); l.Grammar.isNumeric(r) {
			sb.WriteRune(marker)
			if sign != 0 {
				sb.WriteRune(sign)
			}
			end = l.lexDigits(&sb)
		} else {
			// not an exponent after all, re-emit the consumed runes
			l.emit(Token{
				Kind:   NumberSymbol,
				Lexeme: sb.String(),
				Span:   source.Span{Start: start, End: end},
			})
			l.emit(Token{
				Kind:   IdentSymbol,
				Lexeme: strings.ToLower(string(marker)),
				Span:   source.Span{Start: ePos, End: ePos},
			})
			if sign == '+' {
				l.emit(Token{Kind: PlusSymbol, Lexeme: "+", Span: source.Span{Start: signPos, End: signPos}})
			} else if sign == '-' {
				l.emit(Token{Kind: MinusSymbol, Lexeme: "-", Span: source.Span{Start: signPos, End: signPos}})
			}
			return
		}
	}

	l.emit(Token{
		Kind:   NumberSymbol,
		Lexeme: sb.String(),
		Span:   source.Span{Start: start, End: end},
	})
}

func (l *Lexer) lexDigits(sb *strings.Builder) (end source.Pos) {
	for !l.Scanner.Done() {
		r, _ := l.Scanner.Peek()

		if l.Grammar.isNumeric(r) == false {
			break
		}

		sb.WriteRune(r)
		_, end = l.Scanner.Next()
	}

	return end
}

// lexQuoted consumes a single-quoted literal. Exactly one quoted character is
// a char literal whose lexeme keeps its quotes; two or more characters form a
// string literal whose lexeme drops them. Quotes never span lines
func (l *Lexer) lexQuoted() {
	var sb strings.Builder
	_, start := l.Scanner.Next()
	end := start

	for {
		if l.Scanner.Done() {
			l.reportUnclosed(start.Line, sb.String())
			return
		}

		r, _ := l.Scanner.Peek()

		if r == '\n' {
			l.reportUnclosed(start.Line, sb.String())
			return
		}

		_, end = l.Scanner.Next()

		if r == '\'' {
			break
		}

		sb.WriteRune(r)
	}

	body := sb.String()
	span := source.Span{Start: start, End: end}

	switch len([]rune(body)) {
	case 0:
		l.report(start.Line, `There should be a char between a pair of "'".`)
	case 1:
		l.emit(Token{Kind: CharLiteralSymbol, Lexeme: "'" + body + "'", Span: span})
	default:
		l.emit(Token{Kind: StringLiteralSymbol, Lexeme: body, Span: span})
	}
}

func (l *Lexer) reportUnclosed(line int, body string) {
	if len([]rune(body)) <= 1 {
		l.report(line, "Unclosed char literal '%s.", body)
	} else {
		l.report(line, "Unclosed string '%s.", body)
	}
}

// lexSlash distinguishes the division operator from a `//` line comment
func (l *Lexer) lexSlash() {
	_, pos := l.Scanner.Next()

	if r, _ := l.Scanner.Peek(); r == '/' {
		for !l.Scanner.Done() {
			if r, _ := l.Scanner.Peek(); r == '\n' {
				return
			}
			l.Scanner.Next()
		}
		return
	}

	l.emit(Token{Kind: RDivSymbol, Lexeme: "/", Span: source.Span{Start: pos, End: pos}})
}

// lexOperator consumes punctuation and operator lexemes. Two-rune lexemes
// take precedence over their one-rune prefixes
func (l *Lexer) lexOperator(r rune, pos source.Pos) {
	l.Scanner.Next()

	emitPair := func(kind TokenKind, lexeme string, end source.Pos) {
		l.emit(Token{Kind: kind, Lexeme: lexeme, Span: source.Span{Start: pos, End: end}})
	}

	switch r {
	case ':':
		if r, _ := l.Scanner.Peek(); r == '=' {
			_, end := l.Scanner.Next()
			emitPair(AssignSymbol, ":=", end)
		} else {
			emitPair(ColonSymbol, ":", pos)
		}
	case '.':
		if r, _ := l.Scanner.Peek(); r == '.' {
			_, end := l.Scanner.Next()
			emitPair(DotDotSymbol, "..", end)
		} else {
			emitPair(DotSymbol, ".", pos)
		}
	case '<':
		if r, _ := l.Scanner.Peek(); r == '=' {
			_, end := l.Scanner.Next()
			emitPair(LESymbol, "<=", end)
		} else if r == '>' {
			_, end := l.Scanner.Next()
			emitPair(NESymbol, "<>", end)
		} else {
			emitPair(LTSymbol, "<", pos)
		}
	case '>':
		if r, _ := l.Scanner.Peek(); r == '=' {
			_, end := l.Scanner.Next()
			emitPair(GESymbol, ">=", end)
		} else {
			emitPair(GTSymbol, ">", pos)
		}
	default:
		if kind, ok := l.Grammar.Punctuation[r]; ok {
			emitPair(kind, string(r), pos)
		} else {
			l.report(pos.Line, "Unknown char '%c'.", r)
		}
	}
}

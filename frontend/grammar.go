package frontend

// Grammar holds the lexical tables of the language: keyword spellings, word
// operators and single-rune punctuation, plus helper methods for classifying
// runes. Keywords and identifiers are matched case-insensitively so every
// table stores the canonical lowercase spelling
type Grammar struct {
	Keywords      map[string]TokenKind
	WordOperators map[string]TokenKind
	Punctuation   map[rune]TokenKind
}

func (g *Grammar) isWhitespace(r rune) (matches bool) {
	return r == ' ' || r == '\t' || r == '\r'
}

func (g *Grammar) isAlphabetical(r rune) (matches bool) {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func (g *Grammar) isNumeric(r rune) (matches bool) {
	return r >= '0' && r <= '9'
}

// isIdentRune returns true if a given rune may appear after the first rune of
// an identifier or keyword
func (g *Grammar) isIdentRune(r rune) (matches bool) {
	return g.isAlphabetical(r) || g.isNumeric(r) || r == '_'
}

// keywordKind looks up a lowercased word in the word operator table first and
// the keyword table second. "div mod and or not" lex as operators even though
// they are spelled like keywords
func (g *Grammar) keywordKind(word string) (kind TokenKind, matches bool) {
	if kind, ok := g.WordOperators[word]; ok {
		return kind, true
	}

	if kind, ok := g.Keywords[word]; ok {
		return kind, true
	}

	return IdentSymbol, false
}

// newGrammar builds the lexical tables for the Pascal dialect
func newGrammar() *Grammar {
	return &Grammar{
		Keywords: map[string]TokenKind{
			"program":   ProgramKeyword,
			"const":     ConstKeyword,
			"var":       VarKeyword,
			"procedure": ProcedureKeyword,
			"function":  FunctionKeyword,
			"begin":     BeginKeyword,
			"end":       EndKeyword,
			"array":     ArrayKeyword,
			"of":        OfKeyword,
			"integer":   IntegerKeyword,
			"real":      RealKeyword,
			"boolean":   BooleanKeyword,
			"char":      CharKeyword,
			"if":        IfKeyword,
			"then":      ThenKeyword,
			"else":      ElseKeyword,
			"for":       ForKeyword,
			"to":        ToKeyword,
			"do":        DoKeyword,
			"while":     WhileKeyword,
			"read":      ReadKeyword,
			"write":     WriteKeyword,
			"true":      TrueKeyword,
			"false":     FalseKeyword,
			"break":     BreakKeyword,
		},
		WordOperators: map[string]TokenKind{
			"div": DivSymbol,
			"mod": ModSymbol,
			"and": AndSymbol,
			"or":  OrSymbol,
			"not": NotSymbol,
		},
		Punctuation: map[rune]TokenKind{
			'(': LParenSymbol,
			')': RParenSymbol,
			',': CommaSymbol,
			';': SemicolonSymbol,
			'[': LBracketSymbol,
			']': RBracketSymbol,
			'+': PlusSymbol,
			'-': MinusSymbol,
			'*': TimesSymbol,
			'=': EqualSymbol,
		},
	}
}

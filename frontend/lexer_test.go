package frontend

import (
	"strings"
	"testing"

	"github.com/pasc-lang/pasc/feedback"
	"github.com/pasc-lang/pasc/source"
)

func scanSource(t *testing.T, contents string) ([]Token, []feedback.Message) {
	t.Helper()
	return Scan(source.FromString("test.pas", contents))
}

func scanClean(t *testing.T, contents string) []Token {
	t.Helper()
	toks, msgs := scanSource(t, contents)

	for _, msg := range msgs {
		t.Errorf("unexpected diagnostic: %s", msg.Make(false))
	}

	return toks
}

func TestScanBareProgram(t *testing.T) {
	toks := scanClean(t, "program hello;\nbegin end.")

	got := StringifyTokens(toks)
	want := strings.Join([]string{
		"1 PROGRAM program",
		"1 IDENTIFIER hello",
		"1 SEMICOLON ;",
		"2 BEGIN begin",
		"2 END end",
		"2 DOT .",
		"2 END_OF_FILE ",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("token dump mismatch\ngot:\n%swant:\n%s", got, want)
	}
}

func TestScanCaseFolding(t *testing.T) {
	toks := scanClean(t, "PROGRAM Hello; VAR Xy: INTEGER;")

	want := []struct {
		kind   TokenKind
		lexeme string
	}{
		{ProgramKeyword, "program"},
		{IdentSymbol, "hello"},
		{SemicolonSymbol, ";"},
		{VarKeyword, "var"},
		{IdentSymbol, "xy"},
		{ColonSymbol, ":"},
		{IntegerKeyword, "integer"},
		{SemicolonSymbol, ";"},
		{EOFSymbol, ""},
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, expected := range want {
		if toks[i].Kind != expected.kind || toks[i].Lexeme != expected.lexeme {
			t.Errorf("token %d: expected %s %q, got %s %q",
				i, expected.kind, expected.lexeme, toks[i].Kind, toks[i].Lexeme)
		}
	}
}

func TestScanWordOperators(t *testing.T) {
	toks := scanClean(t, "div mod and or not")

	want := []TokenKind{DivSymbol, ModSymbol, AndSymbol, OrSymbol, NotSymbol, EOFSymbol}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected %s, got %s", i, kind, toks[i].Kind)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	toks := scanClean(t, "1..5 1.5 2e3 2e+10 7.x 3e")

	got := StringifyTokens(toks)
	want := strings.Join([]string{
		"1 NUMBER 1",
		"1 DOTDOT ..",
		"1 NUMBER 5",
		"1 NUMBER 1.5",
		"1 NUMBER 2e3",
		"1 NUMBER 2e+10",
		"1 NUMBER 7",
		"1 DOT .",
		"1 IDENTIFIER x",
		"1 NUMBER 3",
		"1 IDENTIFIER e",
		"1 END_OF_FILE ",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("token dump mismatch\ngot:\n%swant:\n%s", got, want)
	}
}

func TestScanQuotedLiterals(t *testing.T) {
	toks := scanClean(t, "'x' 'ab'")

	got := StringifyTokens(toks)
	want := strings.Join([]string{
		"1 CHAR_LITERAL 'x'",
		"1 STRING_LITERAL ab",
		"1 END_OF_FILE ",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("token dump mismatch\ngot:\n%swant:\n%s", got, want)
	}
}

func TestScanComments(t *testing.T) {
	toks := scanClean(t, "// line comment\n{ block\ncomment } begin")

	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(toks))
	}

	if toks[0].Kind != BeginKeyword || toks[0].Line() != 3 {
		t.Errorf("expected BEGIN on line 3, got %s on line %d", toks[0].Kind, toks[0].Line())
	}
}

func TestScanOperatorPairs(t *testing.T) {
	toks := scanClean(t, ":= <= >= <> < > = + - * /")

	want := []TokenKind{
		AssignSymbol, LESymbol, GESymbol, NESymbol, LTSymbol, GTSymbol,
		EqualSymbol, PlusSymbol, MinusSymbol, TimesSymbol, RDivSymbol, EOFSymbol,
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}

	for i, kind := range want {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected %s, got %s", i, kind, toks[i].Kind)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"'a", "lexer error: at line 1: Unclosed char literal 'a."},
		{"'abc", "lexer error: at line 1: Unclosed string 'abc."},
		{"''", `lexer error: at line 1: There should be a char between a pair of "'".`},
		{"@", "lexer error: at line 1: Unknown char '@'."},
	}

	for _, test := range tests {
		toks, msgs := scanSource(t, test.source)

		if len(msgs) != 1 {
			t.Errorf("%q: expected 1 diagnostic, got %d", test.source, len(msgs))
			continue
		}

		if got := msgs[0].Make(false); got != test.want {
			t.Errorf("%q: expected %q, got %q", test.source, test.want, got)
		}

		// even a failed scan terminates the stream
		if last := toks[len(toks)-1]; last.Kind != EOFSymbol {
			t.Errorf("%q: expected trailing END_OF_FILE, got %s", test.source, last.Kind)
		}
	}
}

func TestScanErrorAccumulation(t *testing.T) {
	_, msgs := scanSource(t, "@ 'a\n''")

	if len(msgs) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(msgs))
	}
}

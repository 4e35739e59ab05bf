package feedback

import "testing"

func TestErrorMake(t *testing.T) {
	err := Error{
		Classification: SemanticError,
		Kind:           TypeMismatch,
		Line:           4,
		Description:    "If condition must be of boolean type, but got 'integer'",
	}

	want := "semantic error: at line 4: If condition must be of boolean type, but got 'integer'"
	if got := err.Make(false); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestErrorMakeWithColor(t *testing.T) {
	err := Error{Classification: LexError, Line: 1, Description: "Unknown char '@'."}

	got := err.Make(true)
	want := "\x1b[31;1mlexer error\x1b[0m: at line 1: Unknown char '@'."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWarningMake(t *testing.T) {
	warn := Warning{
		Classification: SyntaxError,
		Line:           2,
		Description:    "something looks off",
	}

	want := "parser warning: at line 2: something looks off"
	if got := warn.Make(false); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestHasErrors(t *testing.T) {
	warn := Warning{Classification: LexError, Line: 1, Description: "w"}
	err := Error{Classification: LexError, Line: 1, Description: "e"}

	if HasErrors(nil) {
		t.Error("expected no errors in an empty batch")
	}

	if HasErrors([]Message{warn}) {
		t.Error("expected a warning-only batch to report no errors")
	}

	if !HasErrors([]Message{warn, err}) {
		t.Error("expected a mixed batch to report errors")
	}
}

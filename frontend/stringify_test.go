package frontend

import (
	"strings"
	"testing"

	"github.com/pasc-lang/pasc/source"
)

func treeDump(t *testing.T, contents string) string {
	t.Helper()
	prog, msgs := Parse(source.FromString("test.pas", contents))

	for _, msg := range msgs {
		t.Fatalf("unexpected diagnostic: %s", msg.Make(false))
	}

	return StringifyTree(prog, false)
}

func TestStringifyTreeSimpleProgram(t *testing.T) {
	got := treeDump(t, `program p;
var i: integer;
begin
  i := 1
end.`)

	want := strings.Join([]string{
		"Program: p",
		"├─ Var Declarations",
		"│  ├─ i",
		"│  │  ├─ Type: int",
		"├─ Body",
		"├─ Compound {",
		"│  ├─ Assignment",
		"│  │  ├─ Left",
		"│  │  │  ├─ Variable: i",
		"│  │  ├─ Right",
		"│  │  │  ├─ Expression",
		"│  │  │  │  ├─ Left",
		"│  │  │  │  │  ├─ SimpleExpression",
		"│  │  │  │  │  │  ├─ Term",
		"│  │  │  │  │  │  │  ├─ Factor: Number (1)",
		"│  │  │  │  │  │  │  │  ├─ Value: 1",
		"├─ }",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("tree dump mismatch\ngot:\n%swant:\n%s", got, want)
	}
}

func TestStringifyTreeHeadings(t *testing.T) {
	got := treeDump(t, `program p(input, output);
const max = 10;
var a: array[1..5] of integer; ok: boolean;
procedure q(var x: integer);
begin end;
function f: real;
begin f := 1.0 end;
begin
  q(a[1]);
  ok := (max + 1) * 2 <= 10
end.`)

	wants := []string{
		"├─ Parameters: input, output",
		"├─ Const Declarations",
		"│  ├─ max = 10",
		"├─ Var Declarations",
		"│  ├─ a",
		"│  │  ├─ int Array",
		"│  │  │  ├─ Range: 1..5",
		"├─ Subprograms",
		"│  ├─ Subprogram: q",
		"│  │  ├─ Parameters",
		"│  │  │  ├─ var x: int",
		"│  │  ├─ Return Type: None (procedure)",
		"│  ├─ Subprogram: f",
		"│  │  ├─ Return Type: float",
		"├─ Call: q",
		"Variable: a [array]",
		"├─ Indices",
		"Expression [<=]",
		"├─ Op: *",
		"├─ Op: +",
		"Factor: Expression",
	}

	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("tree dump is missing %q\ndump:\n%s", want, got)
		}
	}
}

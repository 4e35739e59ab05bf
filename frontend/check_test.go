package frontend

import (
	"testing"

	"github.com/pasc-lang/pasc/feedback"
	"github.com/pasc-lang/pasc/source"
)

func analyze(t *testing.T, contents string) (*Analysis, []feedback.Message) {
	t.Helper()
	prog, msgs := Parse(source.FromString("test.pas", contents))

	if len(msgs) > 0 {
		t.Fatalf("unexpected parse diagnostic: %s", msgs[0].Make(false))
	}

	return Check(prog)
}

func analyzeClean(t *testing.T, contents string) *Analysis {
	t.Helper()
	analysis, msgs := analyze(t, contents)

	for _, msg := range msgs {
		t.Errorf("unexpected diagnostic: %s", msg.Make(false))
	}

	return analysis
}

func semanticErrors(t *testing.T, contents string) []feedback.Error {
	t.Helper()
	_, msgs := analyze(t, contents)

	var errs []feedback.Error
	for _, msg := range msgs {
		if err, ok := msg.(feedback.Error); ok {
			errs = append(errs, err)
		}
	}

	return errs
}

func TestCheckCleanProgram(t *testing.T) {
	analyzeClean(t, `program p;
var i, n: integer; r: real; a: array[1..10] of integer;
begin
  read(n);
  for i := 1 to n do a[i] := i;
  r := n / 2;
  while n > 0 do n := n - 1;
  write(r)
end.`)
}

func TestCheckScopeEntries(t *testing.T) {
	analysis := analyzeClean(t, `program p;
const max = 10;
var x: integer;
procedure q(a: integer);
begin end;
begin x := max end.`)

	entries := analysis.Global.Entries()
	want := []string{"max", "x", "q"}

	if len(entries) != len(want) {
		t.Fatalf("expected %d global entries, got %d", len(want), len(entries))
	}

	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, entries[i].Name)
		}
	}

	if !entries[0].IsConstant || entries[0].ConstValue != "10" {
		t.Error("expected max to be recorded as constant 10")
	}

	callable, ok := entries[2].Type.(*CallableType)
	if !ok {
		t.Fatalf("expected callable type for q, got %T", entries[2].Type)
	}
	if callable.IsFunction || len(callable.Params) != 1 {
		t.Error("expected procedure q with one parameter")
	}
}

func TestCheckVarParamRecording(t *testing.T) {
	analysis := analyzeClean(t, `program p;
var a: integer;
procedure inc(var x: integer);
begin x := x + 1 end;
begin a := 0; inc(a) end.`)

	if got := analysis.ParamNames["inc"]; len(got) != 1 || got[0] != "x" {
		t.Errorf("expected param names [x], got %v", got)
	}

	if got := analysis.VarParams["inc"]; len(got) != 1 || !got[0] {
		t.Errorf("expected var flags [true], got %v", got)
	}
}

func TestCheckFunctionReturnAnnotation(t *testing.T) {
	analysis := analyzeClean(t, `program p;
function f: integer;
begin f := 7 end;
begin end.`)

	assign := findAssign(t, analysis)
	if !analysis.IsFunctionReturn[assign] {
		t.Error("expected f := 7 to be marked as a function-return assignment")
	}
}

func findAssign(t *testing.T, analysis *Analysis) *AssignStatement {
	t.Helper()
	for assign := range analysis.IsFunctionReturn {
		return assign
	}
	t.Fatal("no assignment was annotated")
	return nil
}

func TestCheckReadWriteFormats(t *testing.T) {
	prog, _ := Parse(source.FromString("test.pas", `program p;
const greeting = 'hello there';
var i: integer; r: real; c: char; b: boolean;
begin
  read(i, r);
  write(i, r, c);
  write(greeting, b)
end.`))

	analysis, msgs := Check(prog)
	for _, msg := range msgs {
		t.Fatalf("unexpected diagnostic: %s", msg.Make(false))
	}

	readStmt := prog.Body.Statements[0].(*ReadStatement)
	if got := analysis.ReadFormats[readStmt]; got != "%d %f" {
		t.Errorf("expected read format %q, got %q", "%d %f", got)
	}

	writeStmt := prog.Body.Statements[1].(*WriteStatement)
	if got := analysis.WriteFormats[writeStmt]; got != "%d%f%c" {
		t.Errorf("expected write format %q, got %q", "%d%f%c", got)
	}

	stringWrite := prog.Body.Statements[2].(*WriteStatement)
	if got := analysis.WriteFormats[stringWrite]; got != "%s%d" {
		t.Errorf("expected write format %q, got %q", "%s%d", got)
	}
}

func TestCheckBitwiseNotAnnotation(t *testing.T) {
	prog, _ := Parse(source.FromString("test.pas", `program p;
var i: integer; b: boolean;
begin
  i := not 5;
  b := not true
end.`))

	analysis, msgs := Check(prog)
	for _, msg := range msgs {
		t.Fatalf("unexpected diagnostic: %s", msg.Make(false))
	}

	bitwise := 0
	logical := 0
	for _, flag := range analysis.BitwiseNots {
		if flag {
			bitwise++
		} else {
			logical++
		}
	}

	if bitwise != 1 || logical != 1 {
		t.Errorf("expected one bitwise and one logical not, got %d and %d", bitwise, logical)
	}
}

func TestCheckErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		kind   feedback.Kind
		want   string
	}{
		{
			"redefined constant",
			"program p;\nconst c = 1; c = 2;\nbegin end.",
			feedback.DuplicateDefinition,
			"identifier 'c' is already defined in the current scope",
		},
		{
			"undeclared variable",
			"program p;\nbegin x := 1 end.",
			feedback.UndefinedSymbol,
			"Use undeclared variables 'x'",
		},
		{
			"assign type mismatch",
			"program p;\nvar i: integer;\nbegin i := true end.",
			feedback.TypeMismatch,
			"Cannot assign value of type 'boolean' to variable 'i' of type 'integer'",
		},
		{
			"assign to constant",
			"program p;\nconst c = 1;\nbegin c := 2 end.",
			feedback.AssignToConstant,
			"cannot to constants 'c' assign values",
		},
		{
			"undeclared procedure",
			"program p;\nbegin run(1) end.",
			feedback.UndefinedSymbol,
			"Invoke an undeclared procedure 'run'",
		},
		{
			"argument count mismatch",
			"program p;\nprocedure q(a: integer);\nbegin end;\nbegin q(1, 2) end.",
			feedback.TypeMismatch,
			"Procedure/function 'q' requires 1 parameters, but 2 were given",
		},
		{
			"var parameter needs variable",
			"program p;\nprocedure q(var a: integer);\nbegin end;\nbegin q(1 + 2) end.",
			feedback.VarParamMisuse,
			"Parameter 1 of 'q' requires a variable reference (VAR parameter)",
		},
		{
			"if condition type",
			"program p;\nbegin if 1 then ; end.",
			feedback.TypeMismatch,
			"If condition must be of boolean type, but got 'integer'",
		},
		{
			"while condition type",
			"program p;\nvar c: char;\nbegin while c do ; end.",
			feedback.TypeMismatch,
			"While condition must be of boolean type, but got 'char'",
		},
		{
			"for variable type",
			"program p;\nvar r: real;\nbegin for r := 1 to 10 do ; end.",
			feedback.TypeMismatch,
			"For loop variable 'r' must be of integer type, but got 'real'",
		},
		{
			"array index out of range",
			"program p;\nvar a: array[3..5] of integer;\nbegin a[6] := 0 end.",
			feedback.IndexOutOfBounds,
			"Array index 6 is out of range [3..5] for array 'a' at dimension 1",
		},
		{
			"index on scalar",
			"program p;\nvar i: integer;\nbegin i[1] := 0 end.",
			feedback.TypeMismatch,
			"Variable 'i' is not an array type but used with indices",
		},
		{
			"dimension count mismatch",
			"program p;\nvar a: array[1..5] of integer;\nbegin a[1, 2] := 0 end.",
			feedback.OtherViolation,
			"Array 'a' has 1 dimensions, but accessed with 2 indices",
		},
		{
			"read into constant",
			"program p;\nconst c = 1;\nbegin read(c) end.",
			feedback.AssignToConstant,
			"Cannot read into constant 'c'",
		},
		{
			"read into whole array",
			"program p;\nvar a: array[1..5] of integer;\nbegin read(a) end.",
			feedback.TypeMismatch,
			"Cannot read into an entire array 'a', must specify array element",
		},
		{
			"and wants boolean or integer pair",
			"program p;\nvar b: boolean; r: real;\nbegin b := b and r end.",
			feedback.TypeMismatch,
			"Operator 'AND' requires boolean operands, but got 'boolean' and 'real'",
		},
		{
			"div wants integers",
			"program p;\nvar i: integer; r: real;\nbegin i := i div r end.",
			feedback.TypeMismatch,
			"Operator 'DIV' requires integer operands, but got 'integer' and 'real'",
		},
		{
			"relational mismatch",
			"program p;\nvar b: boolean; i: integer;\nbegin b := b < i end.",
			feedback.TypeMismatch,
			"Operator '<' requires compatible operands, but got 'boolean' and 'integer'",
		},
	}

	for _, test := range tests {
		errs := semanticErrors(t, test.source)

		if len(errs) == 0 {
			t.Errorf("%s: expected a diagnostic, got none", test.name)
			continue
		}

		err := errs[0]
		if err.Description != test.want {
			t.Errorf("%s:\nexpected %q\ngot      %q", test.name, test.want, err.Description)
		}
		if err.Kind != test.kind {
			t.Errorf("%s: expected kind %d, got %d", test.name, test.kind, err.Kind)
		}
		if err.Classification != feedback.SemanticError {
			t.Errorf("%s: expected semantic classification, got %s", test.name, err.Classification)
		}
	}
}

func TestCheckAccumulatesErrors(t *testing.T) {
	errs := semanticErrors(t, `program p;
begin
  x := 1;
  y := 2
end.`)

	if len(errs) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(errs))
	}

	if errs[0].Line != 3 || errs[1].Line != 4 {
		t.Errorf("expected diagnostics on lines 3 and 4, got %d and %d", errs[0].Line, errs[1].Line)
	}
}

func TestCheckIntegerWidensToReal(t *testing.T) {
	analyzeClean(t, `program p;
var r: real; i: integer;
begin
  r := i + 1;
  r := i / 2
end.`)
}

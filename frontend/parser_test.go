package frontend

import (
	"testing"

	"github.com/pasc-lang/pasc/source"
)

func parseSource(t *testing.T, contents string) *ProgramNode {
	t.Helper()
	prog, msgs := Parse(source.FromString("test.pas", contents))

	for _, msg := range msgs {
		t.Fatalf("unexpected diagnostic: %s", msg.Make(false))
	}

	return prog
}

func parseError(t *testing.T, contents string) string {
	t.Helper()
	_, msgs := Parse(source.FromString("test.pas", contents))

	if len(msgs) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d", len(msgs))
	}

	return msgs[0].Make(false)
}

func TestParseBareProgram(t *testing.T) {
	prog := parseSource(t, "program hello;\nbegin end.")

	if prog.Name != "hello" {
		t.Errorf("expected program name 'hello', got %q", prog.Name)
	}

	if len(prog.Params) != 0 || len(prog.Consts) != 0 || len(prog.Vars) != 0 || len(prog.Subprograms) != 0 {
		t.Error("expected empty declaration sections")
	}

	if len(prog.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body.Statements))
	}

	if _, ok := prog.Body.Statements[0].(*NullStatement); !ok {
		t.Errorf("expected NullStatement, got %T", prog.Body.Statements[0])
	}
}

func TestParseProgramParameters(t *testing.T) {
	prog := parseSource(t, "program io(input, output);\nbegin end.")

	if len(prog.Params) != 2 || prog.Params[0] != "input" || prog.Params[1] != "output" {
		t.Errorf("expected parameters [input output], got %v", prog.Params)
	}
}

func TestParseDeclarations(t *testing.T) {
	prog := parseSource(t, `program p;
const max = 100; pi = 3.14; letter = 'q'; minus = -5;
var a: array[1..5, 0..9] of integer;
    x, y: real;
begin end.`)

	if len(prog.Consts) != 4 {
		t.Fatalf("expected 4 constants, got %d", len(prog.Consts))
	}

	wantConsts := [][2]string{
		{"max", "100"},
		{"pi", "3.14"},
		{"letter", "'q'"},
		{"minus", "-5"},
	}

	for i, want := range wantConsts {
		if prog.Consts[i].Name != want[0] || prog.Consts[i].Value != want[1] {
			t.Errorf("constant %d: expected %s = %s, got %s = %s",
				i, want[0], want[1], prog.Consts[i].Name, prog.Consts[i].Value)
		}
	}

	if len(prog.Vars) != 2 {
		t.Fatalf("expected 2 variable groups, got %d", len(prog.Vars))
	}

	arr := prog.Vars[0]
	if len(arr.Names) != 1 || arr.Names[0] != "a" {
		t.Errorf("expected array group [a], got %v", arr.Names)
	}
	if arr.Type.Basic != Integer || len(arr.Type.Ranges) != 2 {
		t.Fatalf("expected 2-dimensional integer array")
	}
	if arr.Type.Ranges[0] != (IndexRange{"1", "5"}) || arr.Type.Ranges[1] != (IndexRange{"0", "9"}) {
		t.Errorf("unexpected ranges %v", arr.Type.Ranges)
	}

	scalars := prog.Vars[1]
	if len(scalars.Names) != 2 || scalars.Type.Basic != Real || len(scalars.Type.Ranges) != 0 {
		t.Errorf("expected scalar group x, y: real")
	}
}

func TestParseSubprograms(t *testing.T) {
	prog := parseSource(t, `program p;
procedure swap(var a, b: integer);
var t: integer;
begin t := a; a := b; b := t end;
function gcd(a, b: integer): integer;
begin gcd := a end;
begin end.`)

	if len(prog.Subprograms) != 2 {
		t.Fatalf("expected 2 subprograms, got %d", len(prog.Subprograms))
	}

	swap := prog.Subprograms[0]
	if swap.Name != "swap" || swap.IsFunction {
		t.Errorf("expected procedure swap, got %q function=%v", swap.Name, swap.IsFunction)
	}
	if len(swap.Params) != 1 || !swap.Params[0].IsVar || len(swap.Params[0].Names) != 2 {
		t.Errorf("expected one var parameter group with 2 names")
	}

	gcd := prog.Subprograms[1]
	if gcd.Name != "gcd" || !gcd.IsFunction || gcd.ReturnType != Integer {
		t.Errorf("expected integer function gcd")
	}
}

func TestParseDanglingElse(t *testing.T) {
	prog := parseSource(t, `program p;
var a, b: boolean; x: integer;
begin
  if a then if b then x := 1 else x := 2
end.`)

	outer, ok := prog.Body.Statements[0].(*IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", prog.Body.Statements[0])
	}

	if outer.Else != nil {
		t.Error("expected else branch to bind to the inner if")
	}

	inner, ok := outer.Then.(*IfStatement)
	if !ok {
		t.Fatalf("expected nested IfStatement, got %T", outer.Then)
	}

	if inner.Else == nil {
		t.Error("expected inner if to carry the else branch")
	}
}

func TestParseStatementVariety(t *testing.T) {
	prog := parseSource(t, `program p;
var i, n: integer; a: array[1..10] of integer;
begin
  read(n);
  for i := 1 to n do
    begin
      a[i] := i * i;
      if a[i] > 50 then break
    end;
  while n > 0 do n := n - 1;
  write(n, a[1])
end.`)

	stmts := prog.Body.Statements
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}

	if _, ok := stmts[0].(*ReadStatement); !ok {
		t.Errorf("statement 0: expected ReadStatement, got %T", stmts[0])
	}

	forStmt, ok := stmts[1].(*ForStatement)
	if !ok {
		t.Fatalf("statement 1: expected ForStatement, got %T", stmts[1])
	}
	if forStmt.Name != "i" {
		t.Errorf("expected loop variable 'i', got %q", forStmt.Name)
	}

	body, ok := forStmt.Body.(*CompoundStatement)
	if !ok {
		t.Fatalf("expected compound loop body, got %T", forStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected 2 loop body statements, got %d", len(body.Statements))
	}

	ifStmt, ok := body.Statements[1].(*IfStatement)
	if !ok {
		t.Fatalf("expected IfStatement, got %T", body.Statements[1])
	}
	if _, ok := ifStmt.Then.(*BreakStatement); !ok {
		t.Errorf("expected BreakStatement, got %T", ifStmt.Then)
	}

	if _, ok := stmts[2].(*WhileStatement); !ok {
		t.Errorf("statement 2: expected WhileStatement, got %T", stmts[2])
	}

	writeStmt, ok := stmts[3].(*WriteStatement)
	if !ok {
		t.Fatalf("statement 3: expected WriteStatement, got %T", stmts[3])
	}
	if len(writeStmt.Exprs) != 2 {
		t.Errorf("expected 2 write expressions, got %d", len(writeStmt.Exprs))
	}
}

func TestParseStraySemicolons(t *testing.T) {
	prog := parseSource(t, "program p;\nbegin ;; end.")

	if len(prog.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Body.Statements))
	}

	for i, stmt := range prog.Body.Statements {
		if _, ok := stmt.(*NullStatement); !ok {
			t.Errorf("statement %d: expected NullStatement, got %T", i, stmt)
		}
	}
}

func TestParseExpressionShape(t *testing.T) {
	prog := parseSource(t, `program p;
var x: integer; ok: boolean;
begin
  ok := (x + 1) * 2 <= 10
end.`)

	assign := prog.Body.Statements[0].(*AssignStatement)
	expr := assign.Right

	if expr.Op != LESymbol || expr.Right == nil {
		t.Fatalf("expected relational expression with <=")
	}

	term := expr.Left.First
	if len(term.Rest) != 1 || term.Rest[0].Op != TimesSymbol {
		t.Fatalf("expected one multiplication in the left term")
	}

	if term.First.Kind != ExprFactor {
		t.Errorf("expected parenthesized first factor, got %s", term.First.Kind)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{
			"begin end.",
			"parser error: at line 1: Expected 'program' keyword at the beginning of the program declaration.",
		},
		{
			"program p; begin end",
			"parser error: at line 1: Expected '.' at the end of the program.",
		},
		{
			"program p;\nbegin\n  for i = 1 to 10 do ;\nend.",
			"parser error: at line 3: Expected ':=' for loop control variable initialization.",
		},
		{
			"program p;\nbegin\n  if true x := 1\nend.",
			"parser error: at line 3: Expected 'then' keyword after if condition.",
		},
		{
			"program p;\nvar a: array[1..n] of integer;\nbegin end.",
			"parser error: at line 2: Expected numeric value for array upper bound.",
		},
		{
			"program p;\nvar a: array[1.5..2] of integer;\nbegin end.",
			"parser error: at line 2: Expected a integral value for array lower bound",
		},
		{
			"program p",
			"parser error: at line 1: Expected ';' after program header.",
		},
	}

	for _, test := range tests {
		if got := parseError(t, test.source); got != test.want {
			t.Errorf("%q:\nexpected %q\ngot      %q", test.source, test.want, got)
		}
	}
}

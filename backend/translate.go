package backend

import (
	"strconv"
	"strings"

	"github.com/pasc-lang/pasc/frontend"
)

// Translate lowers an annotated tree to C source text. The caller is
// responsible for gating on semantic errors, a tree that reached this
// function is assumed well formed and fully annotated
func Translate(prog *frontend.ProgramNode, analysis *frontend.Analysis) string {
	t := &translator{
		analysis: analysis,
		bias:     make(map[string][]int),
	}

	t.program(prog)
	return t.buf.String()
}

// translator holds the emission state for one lowering pass. inExpr counts
// how deeply nested in expression context the walk currently is so that
// function calls inside expressions skip the indentation and trailing
// semicolon that statement-position calls get. bias remembers the declared
// lower bound of every array dimension so index expressions can be rebased
// to zero
type translator struct {
	buf        strings.Builder
	level      int
	analysis   *frontend.Analysis
	inExpr     int
	subprogram string
	mainBody   *frontend.CompoundStatement
	bias       map[string][]int
}

func (t *translator) indent() {
	for i := 0; i < t.level; i++ {
		t.buf.WriteString("  ")
	}
}

// cTypeName maps a basic type onto the C type it lowers to
func cTypeName(basic frontend.Basic) string {
	switch basic {
	case frontend.Integer:
		return "int"
	case frontend.Real:
		return "float"
	case frontend.Boolean:
		return "bool"
	case frontend.Char:
		return "char"
	}

	return "int"
}

func relOpName(kind frontend.TokenKind) string {
	switch kind {
	case frontend.EqualSymbol:
		return "=="
	case frontend.NESymbol:
		return "!="
	case frontend.LTSymbol:
		return "<"
	case frontend.LESymbol:
		return "<="
	case frontend.GTSymbol:
		return ">"
	case frontend.GESymbol:
		return ">="
	}

	return "?"
}

func addOpName(kind frontend.TokenKind) string {
	switch kind {
	case frontend.PlusSymbol:
		return "+"
	case frontend.MinusSymbol:
		return "-"
	case frontend.OrSymbol:
		return "||"
	}

	return "?"
}

func mulOpName(kind frontend.TokenKind) string {
	switch kind {
	case frontend.TimesSymbol:
		return "*"
	case frontend.RDivSymbol, frontend.DivSymbol:
		return "/"
	case frontend.ModSymbol:
		return "%"
	case frontend.AndSymbol:
		return "&&"
	}

	return "?"
}

// isVarParam reports whether name is a pass-by-reference formal of the
// subprogram currently being emitted
func (t *translator) isVarParam(name string) bool {
	names, ok := t.analysis.ParamNames[t.subprogram]
	if !ok {
		return false
	}

	for i, param := range names {
		if param == name {
			return t.analysis.VarParams[t.subprogram][i]
		}
	}

	return false
}

func (t *translator) program(prog *frontend.ProgramNode) {
	t.buf.WriteString("#include <stdio.h>\n")
	t.buf.WriteString("#include <stdlib.h>\n")
	t.buf.WriteString("#include <stdbool.h>\n")

	for _, decl := range prog.Consts {
		t.constDecl(decl)
	}

	for _, decl := range prog.Vars {
		t.varDecl(decl)
	}

	for _, decl := range prog.Subprograms {
		t.subprogramDecl(decl)
	}

	t.buf.WriteString("int main()\n")
	t.mainBody = prog.Body
	t.subprogram = "main"
	t.compound(prog.Body)
}

func (t *translator) constDecl(decl *frontend.ConstDecl) {
	t.indent()

	value := decl.Value
	switch {
	case strings.HasPrefix(value, "'"):
		t.buf.WriteString("const char ")
	case strings.HasPrefix(value, `"`):
		t.buf.WriteString("const char* ")
	case strings.Contains(value, "."):
		t.buf.WriteString("const float ")
	default:
		t.buf.WriteString("const int ")
	}

	t.buf.WriteString(decl.Name + " = " + value + ";\n")
}

func (t *translator) varDecl(decl *frontend.VarDecl) {
	t.indent()
	t.buf.WriteString(cTypeName(decl.Type.Basic) + " ")

	for i, name := range decl.Names {
		t.buf.WriteString(name)

		if len(decl.Type.Ranges) > 0 {
			var lows []int
			for _, rng := range decl.Type.Ranges {
				low, _ := strconv.Atoi(rng.Low)
				high, _ := strconv.Atoi(rng.High)
				t.buf.WriteString("[" + strconv.Itoa(high-low+1) + "]")
				lows = append(lows, low)
			}
			t.bias[name] = lows
		}

		if i+1 < len(decl.Names) {
			t.buf.WriteString(", ")
		}
	}

	t.buf.WriteString(";\n")
}

func (t *translator) subprogramDecl(decl *frontend.SubprogramDecl) {
	t.indent()
	if decl.IsFunction {
		t.buf.WriteString(cTypeName(decl.ReturnType) + " ")
	} else {
		t.buf.WriteString("void ")
	}

	t.buf.WriteString(decl.Name + "(")
	first := true
	for _, param := range decl.Params {
		ptr := ""
		if param.IsVar {
			ptr = "*"
		}

		for _, name := range param.Names {
			if !first {
				t.buf.WriteString(", ")
			}
			first = false
			t.buf.WriteString(cTypeName(param.Type) + ptr + " " + name)
		}
	}
	t.buf.WriteString(") {\n")

	t.level++
	for _, constDecl := range decl.Consts {
		t.constDecl(constDecl)
	}
	for _, varDecl := range decl.Vars {
		t.varDecl(varDecl)
	}

	if decl.IsFunction {
		t.indent()
		t.buf.WriteString(cTypeName(decl.ReturnType) + " " + decl.Name + "_return;\n")
	}

	t.subprogram = decl.Name
	t.compound(decl.Body)

	if decl.IsFunction {
		t.indent()
		t.buf.WriteString("return " + decl.Name + "_return;\n")
	}
	t.level--

	t.indent()
	t.buf.WriteString("}\n")
}

func (t *translator) variable(variable *frontend.VariableExpr) {
	if t.subprogram != "main" && len(variable.Indexes) == 0 && t.isVarParam(variable.Name) {
		t.buf.WriteString("*")
	}

	t.buf.WriteString(variable.Name)

	if len(variable.Indexes) == 0 {
		return
	}

	lows := t.bias[variable.Name]
	for i, index := range variable.Indexes {
		t.buf.WriteString("[")
		t.expression(index)
		if i < len(lows) && lows[i] != 0 {
			t.buf.WriteString(" - " + strconv.Itoa(lows[i]))
		}
		t.buf.WriteString("]")
	}
}

func (t *translator) statement(generic frontend.Stmt) {
	switch stmt := generic.(type) {
	case *frontend.NullStatement:
		t.indent()
		t.buf.WriteString(";\n")
	case *frontend.AssignStatement:
		t.assign(stmt)
	case *frontend.CallStatement:
		t.call(stmt)
	case *frontend.CompoundStatement:
		t.compound(stmt)
	case *frontend.IfStatement:
		t.ifStatement(stmt)
	case *frontend.ForStatement:
		t.forStatement(stmt)
	case *frontend.WhileStatement:
		t.whileStatement(stmt)
	case *frontend.ReadStatement:
		t.readStatement(stmt)
	case *frontend.WriteStatement:
		t.writeStatement(stmt)
	case *frontend.BreakStatement:
		t.indent()
		t.buf.WriteString("break;\n")
	}
}

func (t *translator) assign(stmt *frontend.AssignStatement) {
	t.indent()
	t.variable(stmt.Left)

	if t.analysis.IsFunctionReturn[stmt] {
		t.buf.WriteString("_return = ")
	} else {
		t.buf.WriteString(" = ")
	}

	t.expression(stmt.Right)
	t.buf.WriteString(";\n")
}

func (t *translator) call(stmt *frontend.CallStatement) {
	if t.inExpr <= 0 {
		t.indent()
	}

	t.buf.WriteString(stmt.Name + "(")
	varParams := t.analysis.VarParams[stmt.Name]
	for i, arg := range stmt.Args {
		if i < len(varParams) && varParams[i] {
			t.buf.WriteString("&")
		}
		t.expression(arg)
		if i+1 < len(stmt.Args) {
			t.buf.WriteString(", ")
		}
	}
	t.buf.WriteString(")")

	if t.inExpr <= 0 {
		t.buf.WriteString(";\n")
	}
}

func (t *translator) compound(stmt *frontend.CompoundStatement) {
	t.indent()
	t.buf.WriteString("{\n")
	t.level++

	for _, inner := range stmt.Statements {
		// Stray semicolons contribute nothing inside a block. A null
		// statement only matters as the lone body of a control structure,
		// where it still must produce a statement
		if _, isNull := inner.(*frontend.NullStatement); isNull {
			continue
		}

		t.statement(inner)
	}

	if stmt == t.mainBody {
		t.indent()
		t.buf.WriteString("return 0;\n")
	}

	t.level--
	t.indent()
	t.buf.WriteString("}\n")
}

// branch emits a control-structure body. A compound body brings its own
// braces; anything else gets one extra level of indentation instead
func (t *translator) branch(body frontend.Stmt) {
	if _, isCompound := body.(*frontend.CompoundStatement); isCompound {
		t.statement(body)
		return
	}

	t.level++
	t.statement(body)
	t.level--
}

func (t *translator) ifStatement(stmt *frontend.IfStatement) {
	t.indent()
	t.buf.WriteString("if (")
	t.expression(stmt.Condition)
	t.buf.WriteString(")\n")
	t.branch(stmt.Then)

	if stmt.Else != nil {
		t.indent()
		t.buf.WriteString("else\n")
		t.branch(stmt.Else)
	}
}

func (t *translator) forStatement(stmt *frontend.ForStatement) {
	t.indent()
	t.buf.WriteString("for (" + stmt.Name + " = ")
	t.expression(stmt.From)
	t.buf.WriteString("; " + stmt.Name + " <= ")
	t.expression(stmt.To)
	t.buf.WriteString("; " + stmt.Name + "++)\n")
	t.branch(stmt.Body)
}

func (t *translator) whileStatement(stmt *frontend.WhileStatement) {
	t.indent()
	t.buf.WriteString("while (")
	t.expression(stmt.Condition)
	t.buf.WriteString(")\n")
	t.branch(stmt.Body)
}

func (t *translator) readStatement(stmt *frontend.ReadStatement) {
	t.indent()
	t.buf.WriteString(`scanf("` + t.analysis.ReadFormats[stmt] + `", `)

	for i, target := range stmt.Targets {
		t.buf.WriteString("&")
		t.variable(target)
		if len(target.Indexes) == 0 && target.Name == t.subprogram {
			t.buf.WriteString("_return")
		}
		if i+1 < len(stmt.Targets) {
			t.buf.WriteString(", ")
		}
	}

	t.buf.WriteString(");\n")
}

func (t *translator) writeStatement(stmt *frontend.WriteStatement) {
	t.indent()
	t.buf.WriteString(`printf("` + t.analysis.WriteFormats[stmt] + `", `)

	for i, expr := range stmt.Exprs {
		t.expression(expr)
		if i+1 < len(stmt.Exprs) {
			t.buf.WriteString(", ")
		}
	}

	t.buf.WriteString(");\n")
}

func (t *translator) factor(factor *frontend.Factor) {
	switch factor.Kind {
	case frontend.NumberFactor, frontend.BooleanFactor:
		t.buf.WriteString(factor.Text)
	case frontend.VariableFactor:
		t.variable(factor.Variable)
	case frontend.CallFactor:
		t.call(factor.Call)
	case frontend.ExprFactor:
		t.buf.WriteString("(")
		t.expression(factor.Expr)
		t.buf.WriteString(")")
	case frontend.NotFactor:
		if t.analysis.BitwiseNots[factor] {
			t.buf.WriteString("~")
		} else {
			t.buf.WriteString("!")
		}
		t.factor(factor.Operand)
	case frontend.NegateFactor:
		t.buf.WriteString("- ")
		t.factor(factor.Operand)
	case frontend.PosateFactor:
		t.buf.WriteString("+")
		t.factor(factor.Operand)
	case frontend.UnknownFactor:
		if t.analysis.CallFactors[factor] {
			t.buf.WriteString(factor.Text + "()")
			return
		}
		if t.subprogram != "main" && t.isVarParam(factor.Text) {
			t.buf.WriteString("*")
		}
		t.buf.WriteString(factor.Text)
	}
}

func (t *translator) term(term *frontend.Term) {
	t.factor(term.First)

	for _, pair := range term.Rest {
		t.buf.WriteString(" " + mulOpName(pair.Op) + " ")
		t.factor(pair.Factor)
	}
}

func (t *translator) simpleExpression(simple *frontend.SimpleExpression) {
	t.term(simple.First)

	for _, pair := range simple.Rest {
		t.buf.WriteString(" " + addOpName(pair.Op) + " ")
		t.term(pair.Term)
	}
}

func (t *translator) expression(expr *frontend.Expression) {
	t.inExpr++
	t.simpleExpression(expr.Left)

	if expr.Right != nil {
		t.buf.WriteString(" " + relOpName(expr.Op) + " ")
		t.simpleExpression(expr.Right)
	}

	t.inExpr--
}

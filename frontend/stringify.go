package frontend

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// StringifyTokens renders a token stream one token per line in the form
// `<line> <kind> <lexeme>`
func StringifyTokens(toks []Token) string {
	var buf strings.Builder

	for _, tok := range toks {
		fmt.Fprintf(&buf, "%d %s %s\n", tok.Line(), tok.Kind, tok.Lexeme)
	}

	return buf.String()
}

// StringifyTree renders an AST as an indented tree using box-drawing guides,
// one node or attribute per line. Node headings come out bold blue, attribute
// names green and attribute values yellow when colors are enabled
func StringifyTree(prog *ProgramNode, withColor bool) string {
	color.NoColor = !withColor
	printer := &treePrinter{
		node: color.New(color.FgBlue, color.Bold).SprintFunc(),
		attr: color.New(color.FgGreen).SprintFunc(),
		val:  color.New(color.FgYellow).SprintFunc(),
	}

	printer.program(prog)
	return printer.buf.String()
}

type treePrinter struct {
	buf   strings.Builder
	level int
	node  func(a ...interface{}) string
	attr  func(a ...interface{}) string
	val   func(a ...interface{}) string
}

func (p *treePrinter) guides() string {
	var indentation string

	for i := 0; i < p.level; i++ {
		if i == p.level-1 {
			indentation += "├─ "
		} else {
			indentation += "│  "
		}
	}

	return indentation
}

// heading emits one node line at the current depth
func (p *treePrinter) heading(text string) {
	p.buf.WriteString(p.guides() + p.node(text) + "\n")
}

// attribute emits one `name: value` line at the current depth
func (p *treePrinter) attribute(name string, value string) {
	p.buf.WriteString(p.guides() + p.attr(name) + ": " + p.val(value) + "\n")
}

// cBasicName names a basic type the way the emitted C names it
func cBasicName(basic Basic) string {
	switch basic {
	case Integer:
		return "int"
	case Real:
		return "float"
	case Boolean:
		return "bool"
	case Char:
		return "char"
	}

	return "unknown"
}

func cRelOpSymbol(kind TokenKind) string {
	switch kind {
	case EqualSymbol:
		return "=="
	case NESymbol:
		return "!="
	case LTSymbol:
		return "<"
	case LESymbol:
		return "<="
	case GTSymbol:
		return ">"
	case GESymbol:
		return ">="
	}

	return "?"
}

func cAddOpSymbol(kind TokenKind) string {
	switch kind {
	case PlusSymbol:
		return "+"
	case MinusSymbol:
		return "-"
	case OrSymbol:
		return "||"
	}

	return "?"
}

func cMulOpSymbol(kind TokenKind) string {
	switch kind {
	case TimesSymbol:
		return "*"
	case RDivSymbol, DivSymbol:
		return "/"
	case ModSymbol:
		return "%"
	case AndSymbol:
		return "&&"
	}

	return "?"
}

func (p *treePrinter) program(prog *ProgramNode) {
	p.level = 0
	p.heading("Program: " + prog.Name)
	p.level++

	if len(prog.Params) > 0 {
		p.attribute("Parameters", strings.Join(prog.Params, ", "))
	}

	if len(prog.Consts) > 0 {
		p.heading("Const Declarations")
		p.level++
		for _, decl := range prog.Consts {
			p.constDecl(decl)
		}
		p.level--
	}

	if len(prog.Vars) > 0 {
		p.heading("Var Declarations")
		p.level++
		for _, decl := range prog.Vars {
			p.varDecl(decl)
		}
		p.level--
	}

	if len(prog.Subprograms) > 0 {
		p.heading("Subprograms")
		p.level++
		for _, decl := range prog.Subprograms {
			p.subprogram(decl)
		}
		p.level--
	}

	p.heading("Body")
	p.compound(prog.Body)
	p.level--
}

func (p *treePrinter) subprogram(decl *SubprogramDecl) {
	p.heading("Subprogram: " + decl.Name)
	p.level++

	if len(decl.Params) > 0 {
		p.heading("Parameters")
		p.level++
		for _, param := range decl.Params {
			p.parameter(param)
		}
		p.level--
	}

	returnType := "None (procedure)"
	if decl.IsFunction {
		returnType = cBasicName(decl.ReturnType)
	}
	p.attribute("Return Type", returnType)

	if len(decl.Consts) > 0 {
		p.heading("Const Declarations")
		p.level++
		for _, constDecl := range decl.Consts {
			p.constDecl(constDecl)
		}
		p.level--
	}

	if len(decl.Vars) > 0 {
		p.heading("Var Declarations")
		p.level++
		for _, varDecl := range decl.Vars {
			p.varDecl(varDecl)
		}
		p.level--
	}

	p.heading("Body")
	p.compound(decl.Body)
	p.level--
}

func (p *treePrinter) parameter(param *ParameterDecl) {
	prefix := ""
	if param.IsVar {
		prefix = "var "
	}

	p.heading(prefix + strings.Join(param.Names, ", ") + ": " + cBasicName(param.Type))
}

func (p *treePrinter) constDecl(decl *ConstDecl) {
	p.heading(decl.Name + " = " + decl.Value)
}

func (p *treePrinter) varDecl(decl *VarDecl) {
	p.heading(strings.Join(decl.Names, ", "))
	p.level++
	p.typeNotation(decl.Type)
	p.level--
}

func (p *treePrinter) typeNotation(notation *TypeNotation) {
	if len(notation.Ranges) == 0 {
		p.attribute("Type", cBasicName(notation.Basic))
		return
	}

	p.heading(cBasicName(notation.Basic) + " Array")
	p.level++
	for _, rng := range notation.Ranges {
		p.heading("Range: " + rng.Low + ".." + rng.High)
	}
	p.level--
}

func (p *treePrinter) variable(variable *VariableExpr) {
	text := "Variable: " + variable.Name
	if len(variable.Indexes) > 0 {
		text += " [array]"
	}
	p.heading(text)

	if len(variable.Indexes) > 0 {
		p.level++
		p.heading("Indices")
		p.level++
		for _, index := range variable.Indexes {
			p.expression(index)
		}
		p.level--
		p.level--
	}
}

func (p *treePrinter) statement(generic Stmt) {
	switch stmt := generic.(type) {
	case *NullStatement:
		p.heading("NullStatement")
	case *AssignStatement:
		p.assign(stmt)
	case *CallStatement:
		p.call(stmt)
	case *CompoundStatement:
		p.compound(stmt)
	case *IfStatement:
		p.ifStatement(stmt)
	case *ForStatement:
		p.forStatement(stmt)
	case *WhileStatement:
		p.whileStatement(stmt)
	case *ReadStatement:
		p.readStatement(stmt)
	case *WriteStatement:
		p.writeStatement(stmt)
	case *BreakStatement:
		p.heading("Break")
	}
}

func (p *treePrinter) assign(stmt *AssignStatement) {
	p.heading("Assignment")
	p.level++

	p.heading("Left")
	p.level++
	p.variable(stmt.Left)
	p.level--

	p.heading("Right")
	p.level++
	p.expression(stmt.Right)
	p.level--

	p.level--
}

func (p *treePrinter) call(stmt *CallStatement) {
	text := "Call: " + stmt.Name
	if len(stmt.Args) == 0 {
		text += " (no params)"
	}
	p.heading(text)

	if len(stmt.Args) > 0 {
		p.level++
		p.heading("Parameters")
		p.level++
		for _, arg := range stmt.Args {
			p.expression(arg)
		}
		p.level--
		p.level--
	}
}

func (p *treePrinter) compound(stmt *CompoundStatement) {
	p.heading("Compound {")
	p.level++
	for _, inner := range stmt.Statements {
		p.statement(inner)
	}
	p.level--
	p.heading("}")
}

func (p *treePrinter) ifStatement(stmt *IfStatement) {
	p.heading("If")
	p.level++

	p.heading("Condition")
	p.level++
	p.expression(stmt.Condition)
	p.level--

	p.heading("Then")
	p.level++
	p.statement(stmt.Then)
	p.level--

	if stmt.Else != nil {
		p.heading("Else")
		p.level++
		p.statement(stmt.Else)
		p.level--
	}

	p.level--
}

func (p *treePrinter) forStatement(stmt *ForStatement) {
	p.heading("For: " + stmt.Name)
	p.level++

	p.heading("From")
	p.level++
	p.expression(stmt.From)
	p.level--

	p.heading("To")
	p.level++
	p.expression(stmt.To)
	p.level--

	p.heading("Do")
	p.level++
	p.statement(stmt.Body)
	p.level--

	p.level--
}

func (p *treePrinter) whileStatement(stmt *WhileStatement) {
	p.heading("While")
	p.level++

	p.heading("Condition")
	p.level++
	p.expression(stmt.Condition)
	p.level--

	p.heading("Do")
	p.level++
	p.statement(stmt.Body)
	p.level--

	p.level--
}

func (p *treePrinter) readStatement(stmt *ReadStatement) {
	p.heading("Read")
	p.level++
	for _, target := range stmt.Targets {
		p.variable(target)
	}
	p.level--
}

func (p *treePrinter) writeStatement(stmt *WriteStatement) {
	p.heading("Write")
	p.level++
	for _, expr := range stmt.Exprs {
		p.expression(expr)
	}
	p.level--
}

func (p *treePrinter) factor(factor *Factor) {
	text := "Factor: " + factor.Kind.String()
	if factor.Kind == NumberFactor {
		text += " (" + factor.Text + ")"
	}
	p.heading(text)

	p.level++
	switch factor.Kind {
	case NumberFactor, BooleanFactor, UnknownFactor:
		p.attribute("Value", factor.Text)
	case VariableFactor:
		p.heading("Value")
		p.level++
		p.variable(factor.Variable)
		p.level--
	case CallFactor:
		p.heading("Value")
		p.level++
		p.call(factor.Call)
		p.level--
	case ExprFactor:
		p.heading("Value")
		p.level++
		p.expression(factor.Expr)
		p.level--
	case NotFactor, NegateFactor, PosateFactor:
		p.heading("Value")
		p.level++
		p.factor(factor.Operand)
		p.level--
	}
	p.level--
}

func (p *treePrinter) term(term *Term) {
	p.heading("Term")
	p.level++

	p.factor(term.First)

	for _, pair := range term.Rest {
		p.heading("Op: " + cMulOpSymbol(pair.Op))
		p.level++
		p.factor(pair.Factor)
		p.level--
	}

	p.level--
}

func (p *treePrinter) simpleExpression(simple *SimpleExpression) {
	p.heading("SimpleExpression")
	p.level++

	p.term(simple.First)

	for _, pair := range simple.Rest {
		p.heading("Op: " + cAddOpSymbol(pair.Op))
		p.level++
		p.term(pair.Term)
		p.level--
	}

	p.level--
}

func (p *treePrinter) expression(expr *Expression) {
	text := "Expression"
	if expr.Right != nil {
		text += " [" + cRelOpSymbol(expr.Op) + "]"
	}
	p.heading(text)

	p.level++
	p.heading("Left")
	p.level++
	p.simpleExpression(expr.Left)
	p.level--

	if expr.Right != nil {
		p.heading("Right")
		p.level++
		p.simpleExpression(expr.Right)
		p.level--
	}
	p.level--
}

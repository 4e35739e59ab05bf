package frontend

import (
	"github.com/pasc-lang/pasc/source"
)

// Node is a generic node in the abstract syntax tree (AST)
type Node interface {
	Pos() source.Pos
	End() source.Pos
}

// Stmt represents a Node that can appear in statement position inside a
// compound statement or as the body of a control structure
type Stmt interface {
	Node
	stmtNode()
}

// Basic enumerates the four basic types of the dialect
type Basic int

// The basic types, in keyword order
const (
	Integer Basic = iota
	Real
	Boolean
	Char
)

func (b Basic) String() string {
	switch b {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	}

	return "unknown"
}

// ProgramNode is the root node for an AST
type ProgramNode struct {
	Name        string
	Params      []string
	Consts      []*ConstDecl
	Vars        []*VarDecl
	Subprograms []*SubprogramDecl
	Body        *CompoundStatement
	span        source.Span
}

// Pos returns the starting source code position of this node
func (p *ProgramNode) Pos() source.Pos { return p.span.Start }

// End returns the terminal source code position of this node
func (p *ProgramNode) End() source.Pos { return p.span.End }

// SubprogramDecl represents a procedure or function declaration. Functions
// carry a return basic type, procedures don't
type SubprogramDecl struct {
	Name       string
	IsFunction bool
	Params     []*ParameterDecl
	ReturnType Basic
	Consts     []*ConstDecl
	Vars       []*VarDecl
	Body       *CompoundStatement
	span       source.Span
}

func (s *SubprogramDecl) Pos() source.Pos { return s.span.Start }
func (s *SubprogramDecl) End() source.Pos { return s.span.End }

// ParameterDecl represents one formal parameter group: one or more names
// sharing a basic type and a pass-by-reference flag
type ParameterDecl struct {
	IsVar bool
	Names []string
	Type  Basic
	span  source.Span
}

func (p *ParameterDecl) Pos() source.Pos { return p.span.Start }
func (p *ParameterDecl) End() source.Pos { return p.span.End }

// ConstDecl represents a single constant declaration. The value is kept as
// literal text: sign+digits, a float, a char literal including its quotes, or
// a double-quoted string
type ConstDecl struct {
	Name  string
	Value string
	span  source.Span
}

func (c *ConstDecl) Pos() source.Pos { return c.span.Start }
func (c *ConstDecl) End() source.Pos { return c.span.End }

// VarDecl represents one variable declaration group: one or more names
// sharing a type notation
type VarDecl struct {
	Names []string
	Type  *TypeNotation
	span  source.Span
}

func (v *VarDecl) Pos() source.Pos { return v.span.Start }
func (v *VarDecl) End() source.Pos { return v.span.End }

// IndexRange is one `lower..upper` dimension of an array type. Bounds are
// carried as the literal integer text
type IndexRange struct {
	Low  string
	High string
}

// TypeNotation represents the type in a variable declaration: a basic type
// plus zero or more index ranges. A non-empty range list means an array
type TypeNotation struct {
	Basic  Basic
	Ranges []IndexRange
	span   source.Span
}

func (t *TypeNotation) Pos() source.Pos { return t.span.Start }
func (t *TypeNotation) End() source.Pos { return t.span.End }

// VariableExpr represents a reference to a named variable with an optional
// list of index expressions. An empty index list is a scalar reference or a
// whole-array reference, which one being a semantic question
type VariableExpr struct {
	Name    string
	Indexes []*Expression
	span    source.Span
}

func (v *VariableExpr) Pos() source.Pos { return v.span.Start }
func (v *VariableExpr) End() source.Pos { return v.span.End }

// NullStatement represents the empty statement produced by stray semicolons
// and empty control-structure bodies
type NullStatement struct {
	span source.Span
}

func (n *NullStatement) Pos() source.Pos { return n.span.Start }
func (n *NullStatement) End() source.Pos { return n.span.End }
func (n *NullStatement) stmtNode()       {}

// AssignStatement represents `variable := expression`
type AssignStatement struct {
	Left  *VariableExpr
	Right *Expression
	span  source.Span
}

func (a *AssignStatement) Pos() source.Pos { return a.span.Start }
func (a *AssignStatement) End() source.Pos { return a.span.End }
func (a *AssignStatement) stmtNode()       {}

// CallStatement represents a procedure call in statement position and doubles
// as the payload of a function-call factor
type CallStatement struct {
	Name string
	Args []*Expression
	span source.Span
}

func (c *CallStatement) Pos() source.Pos { return c.span.Start }
func (c *CallStatement) End() source.Pos { return c.span.End }
func (c *CallStatement) stmtNode()       {}

// CompoundStatement represents a `begin ... end` block holding at least one
// statement, possibly a NullStatement
type CompoundStatement struct {
	Statements []Stmt
	span       source.Span
}

func (c *CompoundStatement) Pos() source.Pos { return c.span.Start }
func (c *CompoundStatement) End() source.Pos { return c.span.End }
func (c *CompoundStatement) stmtNode()       {}

// IfStatement represents a conditional with an optional else branch. A
// dangling else binds to the nearest if
type IfStatement struct {
	Condition *Expression
	Then      Stmt
	Else      Stmt
	span      source.Span
}

func (i *IfStatement) Pos() source.Pos { return i.span.Start }
func (i *IfStatement) End() source.Pos { return i.span.End }
func (i *IfStatement) stmtNode()       {}

// ForStatement represents `for id := from to limit do body` with an inclusive
// upper bound
type ForStatement struct {
	Name string
	From *Expression
	To   *Expression
	Body Stmt
	span source.Span
}

func (f *ForStatement) Pos() source.Pos { return f.span.Start }
func (f *ForStatement) End() source.Pos { return f.span.End }
func (f *ForStatement) stmtNode()       {}

// WhileStatement represents `while condition do body`
type WhileStatement struct {
	Condition *Expression
	Body      Stmt
	span      source.Span
}

func (w *WhileStatement) Pos() source.Pos { return w.span.Start }
func (w *WhileStatement) End() source.Pos { return w.span.End }
func (w *WhileStatement) stmtNode()       {}

// ReadStatement represents `read(v1, v2, ...)` with a non-empty target list
type ReadStatement struct {
	Targets []*VariableExpr
	span    source.Span
}

func (r *ReadStatement) Pos() source.Pos { return r.span.Start }
func (r *ReadStatement) End() source.Pos { return r.span.End }
func (r *ReadStatement) stmtNode()       {}

// WriteStatement represents `write(e1, e2, ...)` with a non-empty list
type WriteStatement struct {
	Exprs []*Expression
	span  source.Span
}

func (w *WriteStatement) Pos() source.Pos { return w.span.Start }
func (w *WriteStatement) End() source.Pos { return w.span.End }
func (w *WriteStatement) stmtNode()       {}

// BreakStatement represents `break`
type BreakStatement struct {
	span source.Span
}

func (b *BreakStatement) Pos() source.Pos { return b.span.Start }
func (b *BreakStatement) End() source.Pos { return b.span.End }
func (b *BreakStatement) stmtNode()       {}

// Expression represents `simple [relop simple]`. Op holds the relational
// operator token kind when Right is present
type Expression struct {
	Left  *SimpleExpression
	Op    TokenKind
	Right *SimpleExpression
	span  source.Span
}

func (e *Expression) Pos() source.Pos { return e.span.Start }
func (e *Expression) End() source.Pos { return e.span.End }

// OpTerm pairs an additive operator with its right-hand term
type OpTerm struct {
	Op   TokenKind
	Term *Term
}

// SimpleExpression represents a first term followed by zero or more
// `(+|-|or) term` pairs, associating left
type SimpleExpression struct {
	First *Term
	Rest  []OpTerm
	span  source.Span
}

func (s *SimpleExpression) Pos() source.Pos { return s.span.Start }
func (s *SimpleExpression) End() source.Pos { return s.span.End }

// OpFactor pairs a multiplicative operator with its right-hand factor
type OpFactor struct {
	Op     TokenKind
	Factor *Factor
}

// Term represents a first factor followed by zero or more
// `(*|/|div|mod|and) factor` pairs, associating left
type Term struct {
	First *Factor
	Rest  []OpFactor
	span  source.Span
}

func (t *Term) Pos() source.Pos { return t.span.Start }
func (t *Term) End() source.Pos { return t.span.End }

// FactorKind discriminates the payload of a Factor
type FactorKind int

// The factor variants. UnknownFactor is the escape hatch for a bare
// identifier that may be a parameterless function call or a variable
// reference; the semantic pass decides which
const (
	NumberFactor FactorKind = iota
	BooleanFactor
	VariableFactor
	CallFactor
	ExprFactor
	NotFactor
	NegateFactor
	PosateFactor
	UnknownFactor
)

func (k FactorKind) String() string {
	switch k {
	case NumberFactor:
		return "Number"
	case BooleanFactor:
		return "Boolean"
	case VariableFactor:
		return "Variable"
	case CallFactor:
		return "Function"
	case ExprFactor:
		return "Expression"
	case NotFactor:
		return "With Not"
	case NegateFactor:
		return "With Uminus"
	case PosateFactor:
		return "With Plus"
	case UnknownFactor:
		return "Unknown"
	}

	return "unknown"
}

// Factor is the leaf level of the expression grammar. Exactly one payload
// field is set, selected by Kind:
//
//	NumberFactor, BooleanFactor, UnknownFactor -> Text
//	VariableFactor                             -> Variable
//	CallFactor                                 -> Call
//	ExprFactor                                 -> Expr
//	NotFactor, NegateFactor, PosateFactor      -> Operand
type Factor struct {
	Kind     FactorKind
	Text     string
	Variable *VariableExpr
	Call     *CallStatement
	Expr     *Expression
	Operand  *Factor
	span     source.Span
}

func (f *Factor) Pos() source.Pos { return f.span.Start }
func (f *Factor) End() source.Pos { return f.span.End }

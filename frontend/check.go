package frontend

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pasc-lang/pasc/feedback"
)

// Analysis carries everything the semantic pass learned that the translator
// needs: the scope tree plus annotation maps keyed by node identity. The maps
// are populated during Check and never mutated afterwards
type Analysis struct {
	Global *Scope

	// IsFunctionReturn marks assignments whose left side names the enclosing
	// function, Pascal's implicit result assignment
	IsFunctionReturn map[*AssignStatement]bool

	// ReadFormats and WriteFormats hold the scanf/printf format string
	// inferred for each I/O statement
	ReadFormats  map[*ReadStatement]string
	WriteFormats map[*WriteStatement]string

	// CallFactors marks bare-identifier factors that resolved to callables
	// and therefore lower to parameterless function calls
	CallFactors map[*Factor]bool

	// BitwiseNots marks `not` factors with an integer operand, which lower
	// to `~` instead of `!`
	BitwiseNots map[*Factor]bool

	// VarParams and ParamNames record, per subprogram name, the declaration
	// order of formal parameters: one flag and one name per parameter id
	VarParams  map[string][]bool
	ParamNames map[string][]string
}

// checker holds the walk state of one semantic pass: the currently open
// scope, the diagnostics accumulated so far and the analysis being built.
// Unlike the parser the checker never aborts, every violation is recorded and
// the walk continues
type checker struct {
	scope    *Scope
	msgs     []feedback.Message
	analysis *Analysis
}

// Check walks the tree, builds the scope structure, type-checks every
// statement and expression, and populates the annotation maps. All detected
// violations are returned together
func Check(prog *ProgramNode) (analysis *Analysis, msgs []feedback.Message) {
	c := &checker{
		scope: newGlobalScope(),
		analysis: &Analysis{
			IsFunctionReturn: make(map[*AssignStatement]bool),
			ReadFormats:      make(map[*ReadStatement]string),
			WriteFormats:     make(map[*WriteStatement]string),
			CallFactors:      make(map[*Factor]bool),
			BitwiseNots:      make(map[*Factor]bool),
			VarParams:        make(map[string][]bool),
			ParamNames:       make(map[string][]string),
		},
	}

	c.analysis.Global = c.scope
	c.checkProgram(prog)

	return c.analysis, c.msgs
}

func (c *checker) report(kind feedback.Kind, line int, format string, args ...interface{}) {
	c.msgs = append(c.msgs, feedback.Error{
		Classification: feedback.SemanticError,
		Kind:           kind,
		Line:           line,
		Description:    fmt.Sprintf(format, args...),
	})
}

// declare inserts an entry into the current scope, diagnosing a name that is
// already taken at this nesting level
func (c *checker) declare(entry *Entry) {
	if c.scope.insert(entry) == false {
		c.report(feedback.DuplicateDefinition, entry.Line,
			"identifier '%s' is already defined in the current scope", entry.Name)
	}
}

func (c *checker) checkProgram(prog *ProgramNode) {
	for _, decl := range prog.Consts {
		c.declareConst(decl)
	}

	for _, decl := range prog.Vars {
		c.declareVars(decl)
	}

	for _, sub := range prog.Subprograms {
		c.checkSubprogram(sub)
	}

	c.checkStatement(prog.Body)
}

// declareConst infers a constant's type from the shape of its literal text: a
// signed digit run is an integer, a 3-rune quoted literal is a char, a
// fraction marks a real, and a double-quoted string stands in as a char whose
// value is recognized later for %s emission
func (c *checker) declareConst(decl *ConstDecl) {
	isIntegral := func(s string) bool {
		for _, r := range s {
			if (r >= '0' && r <= '9') == false && r != '+' && r != '-' {
				return false
			}
		}
		return true
	}

	var kind Basic

	switch {
	case isIntegral(decl.Value):
		kind = Integer
	case len([]rune(decl.Value)) == 3 && decl.Value[0] == '\'' && decl.Value[len(decl.Value)-1] == '\'':
		kind = Char
	case strings.Contains(decl.Value, "."):
		kind = Real
	case len(decl.Value) >= 2 && decl.Value[0] == '"' && decl.Value[len(decl.Value)-1] == '"':
		kind = Char
	default:
		c.report(feedback.TypeMismatch, decl.Pos().Line,
			"Unknown constant type for '%s'", decl.Name)
		return
	}

	c.declare(&Entry{
		Name:       decl.Name,
		Type:       &BasicType{Kind: kind},
		IsConstant: true,
		ConstValue: decl.Value,
		Line:       decl.Pos().Line,
	})
}

func (c *checker) declareVars(decl *VarDecl) {
	typ := c.resolveType(decl.Type)

	if typ == nil {
		return
	}

	for _, name := range decl.Names {
		c.declare(&Entry{
			Name: name,
			Type: typ,
			Line: decl.Pos().Line,
		})
	}
}

// resolveType lowers a type notation to a symbol type, folding every array
// bound to an integer and diagnosing inverted ranges
func (c *checker) resolveType(notation *TypeNotation) Type {
	elem := &BasicType{Kind: notation.Basic}

	if len(notation.Ranges) == 0 {
		return elem
	}

	arr := &ArrayType{Elem: elem}

	for _, rng := range notation.Ranges {
		low, lowErr := strconv.Atoi(rng.Low)
		high, highErr := strconv.Atoi(rng.High)

		if lowErr != nil || highErr != nil {
			c.report(feedback.OtherViolation, notation.Pos().Line,
				"Illegal array boundary: %s..%s", rng.Low, rng.High)
			return nil
		}

		if low > high {
			c.report(feedback.OtherViolation, notation.Pos().Line,
				"Invalid array bounds: %s..%s", rng.Low, rng.High)
		}

		arr.Dims = append(arr.Dims, [2]int{low, high})
	}

	return arr
}

// checkSubprogram builds a subprogram's scope and entry. The parameters are
// inserted into a fresh scope first so the callable type can point at their
// entries, then the callable itself is declared one level up where calls can
// resolve it, and finally the subprogram's own declarations and body are
// checked inside its scope
func (c *checker) checkSubprogram(sub *SubprogramDecl) {
	locals := c.scope.subScope()
	c.scope = locals

	var params []*Entry
	for _, group := range sub.Params {
		for _, name := range group.Names {
			entry := &Entry{
				Name:  name,
				Type:  &BasicType{Kind: group.Type},
				IsRef: group.IsVar,
				Line:  group.Pos().Line,
			}
			c.declare(entry)
			params = append(params, entry)
		}
	}

	callable := &CallableType{
		IsFunction: sub.IsFunction,
		Params:     params,
		Locals:     locals,
	}

	if sub.IsFunction {
		callable.Return = &BasicType{Kind: sub.ReturnType}
	}

	c.scope = c.scope.Parent
	c.declare(&Entry{
		Name: sub.Name,
		Type: callable,
		Line: sub.Pos().Line,
	})
	c.scope = locals

	c.analysis.VarParams[sub.Name] = []bool{}
	c.analysis.ParamNames[sub.Name] = []string{}
	for _, group := range sub.Params {
		for _, name := range group.Names {
			c.analysis.VarParams[sub.Name] = append(c.analysis.VarParams[sub.Name], group.IsVar)
			c.analysis.ParamNames[sub.Name] = append(c.analysis.ParamNames[sub.Name], name)
		}
	}

	for _, decl := range sub.Consts {
		c.declareConst(decl)
	}

	for _, decl := range sub.Vars {
		c.declareVars(decl)
	}

	c.checkStatement(sub.Body)
	c.scope = c.scope.Parent
}

func (c *checker) checkStatement(stmt Stmt) {
	switch stmt := stmt.(type) {
	case *NullStatement:
	case *CompoundStatement:
		for _, child := range stmt.Statements {
			c.checkStatement(child)
		}
	case *AssignStatement:
		c.checkAssign(stmt)
	case *CallStatement:
		c.checkCall(stmt)
	case *IfStatement:
		c.checkIf(stmt)
	case *ForStatement:
		c.checkFor(stmt)
	case *WhileStatement:
		c.checkWhile(stmt)
	case *ReadStatement:
		c.checkRead(stmt)
	case *WriteStatement:
		c.checkWrite(stmt)
	case *BreakStatement:
	}
}

// checkVariable resolves a variable reference and validates any array access
// against the declared dimensions. Indexes that are integer literals are
// bounds-checked at compile time
func (c *checker) checkVariable(v *VariableExpr) {
	entry := c.scope.resolve(v.Name)

	if entry == nil {
		c.report(feedback.UndefinedSymbol, v.Pos().Line,
			"Use undeclared variables '%s'", v.Name)
		return
	}

	if entry.Level > c.scope.Level {
		c.report(feedback.ScopeViolation, v.Pos().Line,
			"variable '%s' Out of its scope", v.Name)
		return
	}

	if len(v.Indexes) == 0 {
		return
	}

	arr, isArray := entry.Type.(*ArrayType)

	if isArray == false {
		c.report(feedback.TypeMismatch, v.Pos().Line,
			"Variable '%s' is not an array type but used with indices", v.Name)
		return
	}

	if len(v.Indexes) != len(arr.Dims) {
		c.report(feedback.OtherViolation, v.Pos().Line,
			"Array '%s' has %d dimensions, but accessed with %d indices",
			v.Name, len(arr.Dims), len(v.Indexes))
		return
	}

	for i, index := range v.Indexes {
		c.checkExpression(index)

		if value, ok := constantIndex(index); ok {
			low, high := arr.Dims[i][0], arr.Dims[i][1]

			if value < low || value > high {
				c.report(feedback.IndexOutOfBounds, index.Pos().Line,
					"Array index %d is out of range [%d..%d] for array '%s' at dimension %d",
					value, low, high, v.Name, i+1)
			}
		}
	}
}

// constantIndex extracts a compile-time integer from an expression when the
// expression is nothing but a single integer literal factor
func constantIndex(expr *Expression) (value int, ok bool) {
	if expr.Op != "" || len(expr.Left.Rest) > 0 || len(expr.Left.First.Rest) > 0 {
		return 0, false
	}

	factor := expr.Left.First.First

	if factor.Kind != NumberFactor {
		return 0, false
	}

	value, err := strconv.Atoi(factor.Text)
	return value, err == nil
}

func (c *checker) checkAssign(stmt *AssignStatement) {
	c.checkVariable(stmt.Left)
	c.checkExpression(stmt.Right)

	entry := c.scope.resolve(stmt.Left.Name)

	if entry == nil {
		return
	}

	if entry.IsConstant {
		c.report(feedback.AssignToConstant, stmt.Pos().Line,
			"cannot to constants '%s' assign values", stmt.Left.Name)
		return
	}

	right := c.typeOfExpression(stmt.Right)

	if right == nil {
		c.analysis.IsFunctionReturn[stmt] = false
		return
	}

	left := entry.Type

	if arr, ok := left.(*ArrayType); ok && len(stmt.Left.Indexes) > 0 {
		left = arr.Elem
	}

	switch left := left.(type) {
	case *BasicType:
		c.analysis.IsFunctionReturn[stmt] = false

		if typesCompatible(left, right) == false {
			c.report(feedback.TypeMismatch, stmt.Pos().Line,
				"Cannot assign value of type '%s' to variable '%s' of type '%s'",
				typeName(right), stmt.Left.Name, typeName(left))
		}
	case *CallableType:
		if left.IsFunction && left.Locals == c.scope && typesCompatible(left.Return, right) {
			c.analysis.IsFunctionReturn[stmt] = true
		} else {
			c.report(feedback.TypeMismatch, stmt.Pos().Line,
				"Cannot assign value of type '%s' to variable '%s' of type '%s'",
				typeName(right), stmt.Left.Name, typeName(left))
		}
	default:
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"Cannot assign value of type '%s' to variable '%s' of type '%s'",
			typeName(right), stmt.Left.Name, typeName(left))
	}
}

func (c *checker) checkCall(stmt *CallStatement) {
	entry := c.scope.resolve(stmt.Name)

	if entry == nil {
		c.report(feedback.UndefinedSymbol, stmt.Pos().Line,
			"Invoke an undeclared procedure '%s'", stmt.Name)
		return
	}

	callable, isCallable := entry.Type.(*CallableType)

	if isCallable == false {
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"'%s' Not a procedure or a function", stmt.Name)
		return
	}

	if len(callable.Params) != len(stmt.Args) {
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"Procedure/function '%s' requires %d parameters, but %d were given",
			stmt.Name, len(callable.Params), len(stmt.Args))
		return
	}

	for i, arg := range stmt.Args {
		c.checkExpression(arg)

		argType := c.typeOfExpression(arg)

		if argType == nil {
			continue
		}

		formal := callable.Params[i]

		if typesCompatible(formal.Type, argType) == false {
			c.report(feedback.TypeMismatch, arg.Pos().Line,
				"Parameter %d of call to '%s' has incompatible type: expected '%s', got '%s'",
				i+1, stmt.Name, typeName(formal.Type), typeName(argType))
		}

		if formal.IsRef {
			c.checkVarArgument(stmt.Name, i, arg)
		}
	}
}

// checkVarArgument demands a modifiable l-value for an actual passed to a VAR
// formal: a bare variable or an indexed array element, never a function call
// or a composite expression
func (c *checker) checkVarArgument(name string, i int, arg *Expression) {
	isLValue := false

	if arg.Op == "" && len(arg.Left.Rest) == 0 && len(arg.Left.First.Rest) == 0 {
		factor := arg.Left.First.First

		switch factor.Kind {
		case VariableFactor:
			isLValue = true
		case UnknownFactor:
			if entry := c.scope.resolve(factor.Text); entry != nil {
				_, isCallable := entry.Type.(*CallableType)
				isLValue = isCallable == false && entry.IsConstant == false
			} else {
				c.report(feedback.UndefinedSymbol, arg.Pos().Line,
					"Use undeclared variables '%s'", factor.Text)
			}
		}
	}

	if isLValue == false {
		c.report(feedback.VarParamMisuse, arg.Pos().Line,
			"Parameter %d of '%s' requires a variable reference (VAR parameter)", i+1, name)
	}
}

func (c *checker) checkIf(stmt *IfStatement) {
	c.checkExpression(stmt.Condition)
	c.checkStatement(stmt.Then)

	if stmt.Else != nil {
		c.checkStatement(stmt.Else)
	}

	condition := c.typeOfExpression(stmt.Condition)

	if condition == nil {
		return
	}

	if isBooleanType(condition) == false {
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"If condition must be of boolean type, but got '%s'", typeName(condition))
	}
}

func (c *checker) checkFor(stmt *ForStatement) {
	entry := c.scope.resolve(stmt.Name)

	if entry == nil {
		c.report(feedback.UndefinedSymbol, stmt.Pos().Line,
			"Use undeclared loop variables '%s'", stmt.Name)
		return
	}

	c.checkExpression(stmt.From)
	c.checkExpression(stmt.To)
	c.checkStatement(stmt.Body)

	if isIntegerType(entry.Type) == false {
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"For loop variable '%s' must be of integer type, but got '%s'",
			stmt.Name, typeName(entry.Type))
	}

	if from := c.typeOfExpression(stmt.From); from != nil && isIntegerType(from) == false {
		c.report(feedback.TypeMismatch, stmt.From.Pos().Line,
			"For loop lower bound must be of integer type, but got '%s'", typeName(from))
	}

	if to := c.typeOfExpression(stmt.To); to != nil && isIntegerType(to) == false {
		c.report(feedback.TypeMismatch, stmt.To.Pos().Line,
			"For loop upper bound must be of integer type, but got '%s'", typeName(to))
	}
}

func (c *checker) checkWhile(stmt *WhileStatement) {
	c.checkExpression(stmt.Condition)
	c.checkStatement(stmt.Body)

	condition := c.typeOfExpression(stmt.Condition)

	if condition == nil {
		return
	}

	if isBooleanType(condition) == false {
		c.report(feedback.TypeMismatch, stmt.Pos().Line,
			"While condition must be of boolean type, but got '%s'", typeName(condition))
	}
}

// checkRead validates every read target and builds the statement's scanf
// format string, one specifier per target separated by spaces
func (c *checker) checkRead(stmt *ReadStatement) {
	var parts []string

	for _, target := range stmt.Targets {
		c.checkVariable(target)

		entry := c.scope.resolve(target.Name)

		if entry == nil {
			continue
		}

		if entry.IsConstant {
			c.report(feedback.AssignToConstant, target.Pos().Line,
				"Cannot read into constant '%s'", target.Name)
			continue
		}

		switch typ := entry.Type.(type) {
		case *BasicType:
			parts = append(parts, ioSpecifier(typ.Kind))
		case *ArrayType:
			if len(target.Indexes) == 0 {
				c.report(feedback.TypeMismatch, target.Pos().Line,
					"Cannot read into an entire array '%s', must specify array element", target.Name)
			}
			parts = append(parts, ioSpecifier(typ.Elem.Kind))
		case *CallableType:
			if typ.IsFunction {
				parts = append(parts, ioSpecifier(typ.Return.Kind))
			} else {
				c.report(feedback.TypeMismatch, target.Pos().Line,
					"Cannot read into variable '%s' of type '%s'", target.Name, typeName(typ))
			}
		}
	}

	c.analysis.ReadFormats[stmt] = strings.Join(parts, " ")
}

// ioSpecifier maps a basic type to its scanf/printf conversion. Booleans
// travel as integers
func ioSpecifier(kind Basic) string {
	switch kind {
	case Real:
		return "%f"
	case Char:
		return "%c"
	}

	return "%d"
}

// checkWrite validates every written expression and builds the statement's
// printf format string. A direct reference to a double-quoted string constant
// is the single path that produces %s, everything else goes by type
func (c *checker) checkWrite(stmt *WriteStatement) {
	var sb strings.Builder

	for _, expr := range stmt.Exprs {
		if c.isStringConstant(expr) {
			sb.WriteString("%s")
			continue
		}

		c.checkExpression(expr)

		exprType := c.typeOfExpression(expr)

		if exprType == nil {
			continue
		}

		if basic, ok := exprType.(*BasicType); ok {
			sb.WriteString(ioSpecifier(basic.Kind))
		} else {
			c.report(feedback.TypeMismatch, expr.Pos().Line,
				"Cannot write variable of type '%s'", typeName(exprType))
		}
	}

	c.analysis.WriteFormats[stmt] = sb.String()
}

// isStringConstant recognizes an expression whose leading factor is a bare
// identifier naming a double-quoted string constant
func (c *checker) isStringConstant(expr *Expression) bool {
	factor := expr.Left.First.First

	if factor.Kind != UnknownFactor {
		return false
	}

	entry := c.scope.resolve(factor.Text)

	if entry == nil || entry.IsConstant == false || len(entry.ConstValue) < 2 {
		return false
	}

	return entry.ConstValue[0] == '"' && entry.ConstValue[len(entry.ConstValue)-1] == '"'
}

func (c *checker) checkExpression(expr *Expression) {
	c.checkSimpleExpression(expr.Left)

	if expr.Right == nil {
		return
	}

	c.checkSimpleExpression(expr.Right)

	left := c.typeOfSimpleExpression(expr.Left)
	right := c.typeOfSimpleExpression(expr.Right)

	if left == nil || right == nil {
		return
	}

	areNumeric := isNumericType(left) && isNumericType(right)
	areSame := typesCompatible(left, right) || typesCompatible(right, left)

	switch expr.Op {
	case LTSymbol, LESymbol, GTSymbol, GESymbol:
		if areNumeric == false && areSame == false {
			c.report(feedback.TypeMismatch, expr.Pos().Line,
				"Operator '%s' requires compatible operands, but got '%s' and '%s'",
				relOpName(expr.Op), typeName(left), typeName(right))
		}
	case EqualSymbol, NESymbol:
		areBoolean := isBooleanType(left) && isBooleanType(right)

		if areNumeric == false && areSame == false && areBoolean == false {
			c.report(feedback.TypeMismatch, expr.Pos().Line,
				"Operator '%s' requires compatible operands, but got '%s' and '%s'",
				relOpName(expr.Op), typeName(left), typeName(right))
		}
	}
}

func relOpName(kind TokenKind) string {
	switch kind {
	case EqualSymbol:
		return "="
	case NESymbol:
		return "<>"
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

func (c *checker) checkSimpleExpression(simple *SimpleExpression) {
	c.checkTerm(simple.First)

	left := c.typeOfTerm(simple.First)

	for _, pair := range simple.Rest {
		c.checkTerm(pair.Term)

		right := c.typeOfTerm(pair.Term)

		if left == nil || right == nil {
			left = right
			continue
		}

		switch pair.Op {
		case PlusSymbol, MinusSymbol:
			if isNumericType(left) == false || isNumericType(right) == false {
				c.report(feedback.TypeMismatch, simple.Pos().Line,
					"Operator '%s' requires numeric operands, but got '%s' and '%s'",
					addOpName(pair.Op), typeName(left), typeName(right))
			}
			left = numericResult(left, right)
		case OrSymbol:
			bothBoolean := isBooleanType(left) && isBooleanType(right)
			leftOk := isBooleanType(left) || isIntegerType(left)
			rightOk := isBooleanType(right) || isIntegerType(right)

			if leftOk == false || rightOk == false {
				c.report(feedback.TypeMismatch, simple.Pos().Line,
					"Operator 'OR' requires boolean operands, but got '%s' and '%s'",
					typeName(left), typeName(right))
			}
			if bothBoolean {
				left = &BasicType{Kind: Boolean}
			} else {
				left = &BasicType{Kind: Integer}
			}
		}
	}
}

func addOpName(kind TokenKind) string {
	if kind == PlusSymbol {
		return "+"
	}

	return "-"
}

func (c *checker) checkTerm(term *Term) {
	c.checkFactor(term.First)

	left := c.typeOfFactor(term.First)

	for _, pair := range term.Rest {
		c.checkFactor(pair.Factor)

		right := c.typeOfFactor(pair.Factor)

		if left == nil || right == nil {
			left = right
			continue
		}

		switch pair.Op {
		case TimesSymbol, RDivSymbol:
			if isNumericType(left) == false || isNumericType(right) == false {
				c.report(feedback.TypeMismatch, term.Pos().Line,
					"Operator '%s' requires numeric operands, but got '%s' and '%s'",
					mulOpName(pair.Op), typeName(left), typeName(right))
			}
			left = numericResult(left, right)
		case DivSymbol, ModSymbol:
			if isIntegerType(left) == false || isIntegerType(right) == false {
				c.report(feedback.TypeMismatch, term.Pos().Line,
					"Operator '%s' requires integer operands, but got '%s' and '%s'",
					mulOpName(pair.Op), typeName(left), typeName(right))
			}
			left = &BasicType{Kind: Integer}
		case AndSymbol:
			bothBoolean := isBooleanType(left) && isBooleanType(right)
			leftOk := isBooleanType(left) || isIntegerType(left)
			rightOk := isBooleanType(right) || isIntegerType(right)

			if leftOk == false || rightOk == false {
				c.report(feedback.TypeMismatch, term.Pos().Line,
					"Operator 'AND' requires boolean operands, but got '%s' and '%s'",
					typeName(left), typeName(right))
			}
			if bothBoolean {
				left = &BasicType{Kind: Boolean}
			} else {
				left = &BasicType{Kind: Integer}
			}
		}
	}
}

func mulOpName(kind TokenKind) string {
	switch kind {
	case TimesSymbol:
		return "*"
	case RDivSymbol:
		return "/"
	case DivSymbol:
		return "DIV"
	}

	return "MOD"
}

func (c *checker) checkFactor(factor *Factor) {
	switch factor.Kind {
	case NumberFactor, BooleanFactor:
	case VariableFactor:
		c.checkVariable(factor.Variable)
	case CallFactor:
		c.checkCall(factor.Call)

		if entry := c.scope.resolve(factor.Call.Name); entry != nil {
			if callable, ok := entry.Type.(*CallableType); ok && callable.IsFunction == false {
				c.report(feedback.TypeMismatch, factor.Pos().Line,
					"Procedure '%s' does not return a value", factor.Call.Name)
			}
		}
	case ExprFactor:
		c.checkExpression(factor.Expr)
	case NegateFactor, PosateFactor:
		operand := c.typeOfFactor(factor.Operand)

		if operand != nil && isNumericType(operand) == false {
			c.report(feedback.TypeMismatch, factor.Pos().Line,
				"Unary minus operator requires numeric operand")
			return
		}

		c.checkFactor(factor.Operand)
	case NotFactor:
		operand := c.typeOfFactor(factor.Operand)

		if operand != nil && isBooleanType(operand) == false && isIntegerType(operand) == false {
			c.report(feedback.TypeMismatch, factor.Pos().Line,
				"NOT operator requires boolean operand")
			return
		}

		c.analysis.BitwiseNots[factor] = isIntegerType(operand)
		c.checkFactor(factor.Operand)
	case UnknownFactor:
		entry := c.scope.resolve(factor.Text)

		if entry == nil {
			c.report(feedback.UndefinedSymbol, factor.Pos().Line,
				"Use undeclared variable or function '%s'", factor.Text)
			return
		}

		callable, isCallable := entry.Type.(*CallableType)
		c.analysis.CallFactors[factor] = isCallable

		if isCallable && callable.IsFunction == false {
			c.report(feedback.TypeMismatch, factor.Pos().Line,
				"Procedure '%s' does not return a value", factor.Text)
		}
	}
}

// typeOfExpression computes an expression's type without reporting. A
// relational comparison yields boolean, otherwise the type flows up from the
// simple expression
func (c *checker) typeOfExpression(expr *Expression) Type {
	if expr.Right == nil {
		return c.typeOfSimpleExpression(expr.Left)
	}

	return &BasicType{Kind: Boolean}
}

func (c *checker) typeOfSimpleExpression(simple *SimpleExpression) Type {
	typ := c.typeOfTerm(simple.First)

	for _, pair := range simple.Rest {
		termType := c.typeOfTerm(pair.Term)

		if typ == nil || termType == nil {
			return nil
		}

		if pair.Op == OrSymbol {
			if isBooleanType(typ) && isBooleanType(termType) {
				typ = &BasicType{Kind: Boolean}
			} else {
				typ = &BasicType{Kind: Integer}
			}
		} else {
			typ = numericResult(typ, termType)
		}
	}

	return typ
}

func (c *checker) typeOfTerm(term *Term) Type {
	typ := c.typeOfFactor(term.First)

	for _, pair := range term.Rest {
		factorType := c.typeOfFactor(pair.Factor)

		if typ == nil || factorType == nil {
			return nil
		}

		switch pair.Op {
		case TimesSymbol, RDivSymbol:
			typ = numericResult(typ, factorType)
		case DivSymbol, ModSymbol:
			typ = &BasicType{Kind: Integer}
		case AndSymbol:
			if isBooleanType(typ) && isBooleanType(factorType) {
				typ = &BasicType{Kind: Boolean}
			} else {
				typ = &BasicType{Kind: Integer}
			}
		}
	}

	return typ
}

// typeOfFactor computes a factor's type without reporting. Callers that
// receive nil skip their own checks since the cause has been or will be
// diagnosed where the factor itself is checked
func (c *checker) typeOfFactor(factor *Factor) Type {
	switch factor.Kind {
	case NumberFactor:
		if strings.Contains(factor.Text, ".") {
			return &BasicType{Kind: Real}
		}
		return &BasicType{Kind: Integer}
	case BooleanFactor:
		return &BasicType{Kind: Boolean}
	case VariableFactor:
		entry := c.scope.resolve(factor.Variable.Name)

		if entry == nil {
			return nil
		}

		if arr, ok := entry.Type.(*ArrayType); ok && len(factor.Variable.Indexes) > 0 {
			return arr.Elem
		}

		return entry.Type
	case ExprFactor:
		return c.typeOfExpression(factor.Expr)
	case CallFactor:
		entry := c.scope.resolve(factor.Call.Name)

		if entry == nil {
			return nil
		}

		if callable, ok := entry.Type.(*CallableType); ok && callable.IsFunction {
			return callable.Return
		}

		return nil
	case NegateFactor, PosateFactor:
		operand := c.typeOfFactor(factor.Operand)

		if isNumericType(operand) == false {
			return nil
		}

		return operand
	case NotFactor:
		operand := c.typeOfFactor(factor.Operand)

		if isIntegerType(operand) {
			return &BasicType{Kind: Integer}
		}

		if isBooleanType(operand) {
			return &BasicType{Kind: Boolean}
		}

		return nil
	case UnknownFactor:
		entry := c.scope.resolve(factor.Text)

		if entry == nil {
			return nil
		}

		if callable, ok := entry.Type.(*CallableType); ok {
			if callable.IsFunction {
				return callable.Return
			}
			return nil
		}

		return entry.Type
	}

	return nil
}

package frontend

import (
	"fmt"
	"strings"

	"github.com/pasc-lang/pasc/feedback"
	"github.com/pasc-lang/pasc/source"
)

// Parse scans a file and builds its abstract syntax tree. Lexical errors stop
// the pipeline before parsing begins so the parser only ever sees a clean
// token vector. Syntax analysis is fail-fast: the first syntax error aborts
// the parse and is returned alone
func Parse(file *source.File) (prog *ProgramNode, msgs []feedback.Message) {
	toks, msgs := Scan(file)

	if len(msgs) > 0 {
		return nil, msgs
	}

	prog, msg := NewParser(toks).Parse()

	if msg != nil {
		msgs = append(msgs, msg)
	}

	return prog, msgs
}

// Parser structs maintain state during syntax analysis of a token vector. The
// parser reads one token at a time with a single token of lookahead, which is
// all the grammar needs to stay deterministic
type Parser struct {
	toks    []Token
	current int
}

// NewParser is a constructor function that takes a token vector and returns a
// reference to a newly minted Parser struct
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// token returns the token under the cursor. The vector always ends with an
// end-of-stream token so the cursor can never run past the end
func (p *Parser) token() Token {
	if p.current >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}

	return p.toks[p.current]
}

func (p *Parser) isEnd() bool {
	return p.token().Kind == EOFSymbol
}

// check returns true if the token under the cursor has the given kind
func (p *Parser) check(kind TokenKind) bool {
	return p.token().Kind == kind
}

// checkNext returns true if the token after the cursor has the given kind
func (p *Parser) checkNext(kind TokenKind) bool {
	if p.current+1 >= len(p.toks) {
		return false
	}

	return p.toks[p.current+1].Kind == kind
}

// match consumes and returns the token under the cursor if it has the given
// kind, otherwise the cursor stays put
func (p *Parser) match(kind TokenKind) (tok Token, ok bool) {
	if p.check(kind) {
		return p.advance(), true
	}

	return p.token(), false
}

func (p *Parser) advance() Token {
	tok := p.token()

	if p.isEnd() == false {
		p.current++
	}

	return tok
}

// consume demands a token of the given kind and produces a syntax error built
// from the description if the demand isn't met
func (p *Parser) consume(kind TokenKind, desc string) (tok Token, msg feedback.Message) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return p.token(), p.syntaxError(desc)
}

func (p *Parser) syntaxError(desc string) feedback.Message {
	return feedback.Error{
		Classification: feedback.SyntaxError,
		Line:           p.token().Line(),
		Description:    desc,
	}
}

// prevEnd returns the end position of the most recently consumed token
func (p *Parser) prevEnd() source.Pos {
	if p.current == 0 {
		return p.token().Span.Start
	}

	return p.toks[p.current-1].Span.End
}

func (p *Parser) spanFrom(start source.Pos) source.Span {
	return source.Span{Start: start, End: p.prevEnd()}
}

// Parse consumes the whole token vector and returns the program's root node.
// The grammar demands the program header, then optional const and var
// sections, then any number of subprogram declarations, then the main body
// closed by a period
func (p *Parser) Parse() (prog *ProgramNode, msg feedback.Message) {
	_, start := p.token(), p.token().Span.Start

	if _, msg = p.consume(ProgramKeyword, "Expected 'program' keyword at the beginning of the program declaration."); msg != nil {
		return nil, msg
	}

	name, msg := p.consume(IdentSymbol, "Expected program identifier after 'program' keyword.")
	if msg != nil {
		return nil, msg
	}

	prog = &ProgramNode{Name: name.Lexeme}

	if _, ok := p.match(LParenSymbol); ok {
		for {
			param, msg := p.consume(IdentSymbol, "Expected identifier for program parameter.")
			if msg != nil {
				return nil, msg
			}

			prog.Params = append(prog.Params, param.Lexeme)

			if _, ok := p.match(CommaSymbol); ok == false {
				break
			}
		}

		if _, msg = p.consume(RParenSymbol, "Expected ')' to close program parameter list."); msg != nil {
			return nil, msg
		}
	}

	if _, msg = p.consume(SemicolonSymbol, "Expected ';' after program header."); msg != nil {
		return nil, msg
	}

	if prog.Consts, msg = p.constSection("Expected ';' after constant declaration."); msg != nil {
		return nil, msg
	}

	if prog.Vars, msg = p.varSection("Expected ';' after variable declaration."); msg != nil {
		return nil, msg
	}

	for p.check(ProcedureKeyword) || p.check(FunctionKeyword) {
		sub, msg := p.subprogram()
		if msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(SemicolonSymbol, "Expected ';' after subprogram declaration."); msg != nil {
			return nil, msg
		}

		prog.Subprograms = append(prog.Subprograms, sub)
	}

	if prog.Body, msg = p.compoundStatement(); msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(DotSymbol, "Expected '.' at the end of the program."); msg != nil {
		return nil, msg
	}

	prog.span = p.spanFrom(start)
	return prog, nil
}

// constSection parses an optional `const` section. Each declaration keeps its
// value as literal text: an optionally signed number, a char literal with its
// quotes, or a string re-wrapped in double quotes
func (p *Parser) constSection(semiDesc string) (consts []*ConstDecl, msg feedback.Message) {
	if _, ok := p.match(ConstKeyword); ok == false {
		return nil, nil
	}

	for p.check(IdentSymbol) {
		start := p.token().Span.Start
		name := p.advance()

		if _, msg = p.consume(EqualSymbol, "Expected '=' after constant identifier."); msg != nil {
			return nil, msg
		}

		value, msg := p.constValue()
		if msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(SemicolonSymbol, semiDesc); msg != nil {
			return nil, msg
		}

		consts = append(consts, &ConstDecl{
			Name:  name.Lexeme,
			Value: value,
			span:  p.spanFrom(start),
		})
	}

	return consts, nil
}

// constValue parses the right side of a constant declaration. A sign is only
// legal in front of a number and is folded into the literal text
func (p *Parser) constValue() (value string, msg feedback.Message) {
	switch {
	case p.check(PlusSymbol) || p.check(MinusSymbol):
		sign := p.advance()
		num, msg := p.consume(NumberSymbol, "Expected numeric value for constant.")
		if msg != nil {
			return "", msg
		}
		return sign.Lexeme + num.Lexeme, nil
	case p.check(NumberSymbol):
		return p.advance().Lexeme, nil
	case p.check(CharLiteralSymbol):
		return p.advance().Lexeme, nil
	case p.check(StringLiteralSymbol):
		return `"` + p.advance().Lexeme + `"`, nil
	default:
		return "", p.syntaxError("Expected numeric value for constant.")
	}
}

// varSection parses an optional `var` section of declaration groups, each a
// comma-separated identifier list, a colon and a type notation
func (p *Parser) varSection(semiDesc string) (vars []*VarDecl, msg feedback.Message) {
	if _, ok := p.match(VarKeyword); ok == false {
		return nil, nil
	}

	for p.check(IdentSymbol) {
		start := p.token().Span.Start
		decl := &VarDecl{}

		for {
			name, msg := p.consume(IdentSymbol, "Expected identifier in variable declaration.")
			if msg != nil {
				return nil, msg
			}

			decl.Names = append(decl.Names, name.Lexeme)

			if _, ok := p.match(CommaSymbol); ok == false {
				break
			}
		}

		if _, msg = p.consume(ColonSymbol, "Expected ':' after variable identifiers."); msg != nil {
			return nil, msg
		}

		if decl.Type, msg = p.typeNotation(); msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(SemicolonSymbol, semiDesc); msg != nil {
			return nil, msg
		}

		decl.span = p.spanFrom(start)
		vars = append(vars, decl)
	}

	return vars, nil
}

// basicType consumes one of the four basic type keywords
func (p *Parser) basicType() (basic Basic, msg feedback.Message) {
	switch p.token().Kind {
	case IntegerKeyword:
		p.advance()
		return Integer, nil
	case RealKeyword:
		p.advance()
		return Real, nil
	case BooleanKeyword:
		p.advance()
		return Boolean, nil
	case CharKeyword:
		p.advance()
		return Char, nil
	default:
		return Integer, p.syntaxError("Expected basic type")
	}
}

// isIntegralText reports whether a number lexeme carries no fraction and no
// exponent, which is the parser's view of what counts as an integer
func isIntegralText(text string) bool {
	return strings.ContainsAny(text, ".eE") == false
}

// typeNotation parses either a bare basic type or an array type with one or
// more `lower..upper` dimensions. Bounds must be integral literals, a check
// the parser can make from the lexeme text alone
func (p *Parser) typeNotation() (typ *TypeNotation, msg feedback.Message) {
	start := p.token().Span.Start
	typ = &TypeNotation{}

	if _, ok := p.match(ArrayKeyword); ok {
		if _, msg = p.consume(LBracketSymbol, "Expected '[' after 'array' keyword."); msg != nil {
			return nil, msg
		}

		for {
			low, msg := p.arrayBound("lower")
			if msg != nil {
				return nil, msg
			}

			if _, msg = p.consume(DotDotSymbol, "Expected '..' between array bounds."); msg != nil {
				return nil, msg
			}

			high, msg := p.arrayBound("upper")
			if msg != nil {
				return nil, msg
			}

			typ.Ranges = append(typ.Ranges, IndexRange{Low: low, High: high})

			if _, ok := p.match(CommaSymbol); ok == false {
				break
			}
		}

		if _, msg = p.consume(RBracketSymbol, "Expected ']' to close array bounds."); msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(OfKeyword, "Expected 'of' keyword before array element type."); msg != nil {
			return nil, msg
		}

		if typ.Basic, msg = p.basicType(); msg != nil {
			return nil, p.syntaxError("Expected basic type after 'of' in array declaration")
		}

		typ.span = p.spanFrom(start)
		return typ, nil
	}

	if typ.Basic, msg = p.basicType(); msg != nil {
		return nil, msg
	}

	typ.span = p.spanFrom(start)
	return typ, nil
}

// arrayBound consumes one optionally signed integral bound and returns it as
// literal text with the sign folded in
func (p *Parser) arrayBound(which string) (text string, msg feedback.Message) {
	sign := ""

	if tok, ok := p.match(MinusSymbol); ok {
		sign = tok.Lexeme
	} else if tok, ok := p.match(PlusSymbol); ok {
		_ = tok
	}

	num, msg := p.consume(NumberSymbol, fmt.Sprintf("Expected numeric value for array %s bound.", which))
	if msg != nil {
		return "", msg
	}

	if isIntegralText(num.Lexeme) == false {
		return "", feedback.Error{
			Classification: feedback.SyntaxError,
			Line:           num.Line(),
			Description:    fmt.Sprintf("Expected a integral value for array %s bound", which),
		}
	}

	return sign + num.Lexeme, nil
}

// subprogram parses a procedure or function declaration including its own
// const and var sections and its body
func (p *Parser) subprogram() (sub *SubprogramDecl, msg feedback.Message) {
	start := p.token().Span.Start
	sub = &SubprogramDecl{}

	switch p.token().Kind {
	case ProcedureKeyword:
		p.advance()

		name, msg := p.consume(IdentSymbol, "Expected procedure identifier after 'procedure' keyword.")
		if msg != nil {
			return nil, msg
		}

		sub.Name = name.Lexeme

		if sub.Params, msg = p.parameterList("Expected ')' to close procedure parameter list."); msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(SemicolonSymbol, "Expected ';' after procedure header."); msg != nil {
			return nil, msg
		}
	case FunctionKeyword:
		p.advance()
		sub.IsFunction = true

		name, msg := p.consume(IdentSymbol, "Expected function identifier after 'function' keyword.")
		if msg != nil {
			return nil, msg
		}

		sub.Name = name.Lexeme

		if sub.Params, msg = p.parameterList("Expected ')' to close function parameter list."); msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(ColonSymbol, "Expected ':' before function return type."); msg != nil {
			return nil, msg
		}

		if sub.ReturnType, msg = p.basicType(); msg != nil {
			return nil, p.syntaxError("Expected return type")
		}

		if _, msg = p.consume(SemicolonSymbol, "Expected ';' after function header."); msg != nil {
			return nil, msg
		}
	default:
		return nil, p.syntaxError("Expected 'procedure' or 'function'")
	}

	if sub.Consts, msg = p.constSection("Expected ';' after constant declaration in subprogram."); msg != nil {
		return nil, msg
	}

	if sub.Vars, msg = p.varSection("Expected ';' after variable declaration in subprogram."); msg != nil {
		return nil, msg
	}

	if sub.Body, msg = p.compoundStatement(); msg != nil {
		return nil, msg
	}

	sub.span = p.spanFrom(start)
	return sub, nil
}

// parameterList parses an optional parenthesized list of parameter groups
// separated by semicolons. Absent parentheses mean no parameters
func (p *Parser) parameterList(closeDesc string) (params []*ParameterDecl, msg feedback.Message) {
	if _, ok := p.match(LParenSymbol); ok == false {
		return nil, nil
	}

	for {
		param, msg := p.parameter()
		if msg != nil {
			return nil, msg
		}

		params = append(params, param)

		if _, ok := p.match(SemicolonSymbol); ok == false {
			break
		}
	}

	if _, msg = p.consume(RParenSymbol, closeDesc); msg != nil {
		return nil, msg
	}

	return params, nil
}

// parameter parses one parameter group: an optional `var` marker, one or more
// identifiers, a colon and a basic type. Array parameters aren't part of the
// grammar
func (p *Parser) parameter() (param *ParameterDecl, msg feedback.Message) {
	start := p.token().Span.Start
	param = &ParameterDecl{}

	if _, ok := p.match(VarKeyword); ok {
		param.IsVar = true
	}

	for {
		name, msg := p.consume(IdentSymbol, "Expected identifier in parameter declaration.")
		if msg != nil {
			return nil, msg
		}

		param.Names = append(param.Names, name.Lexeme)

		if _, ok := p.match(CommaSymbol); ok == false {
			break
		}
	}

	if _, msg = p.consume(ColonSymbol, "Expected ':' after parameter identifiers."); msg != nil {
		return nil, msg
	}

	if param.Type, msg = p.basicType(); msg != nil {
		return nil, msg
	}

	param.span = p.spanFrom(start)
	return param, nil
}

// canStartStatement reports whether a token kind may open a statement. The
// set drives both the empty-statement insertion inside compound statements
// and the null bodies of control structures
func canStartStatement(kind TokenKind) bool {
	switch kind {
	case IdentSymbol, BeginKeyword, IfKeyword, ForKeyword, WhileKeyword,
		ReadKeyword, WriteKeyword, BreakKeyword:
		return true
	}

	return false
}

// statementOrNull parses a statement when one can start here and otherwise
// produces an empty statement, which is how `if c then else ...` and a `do`
// followed by a semicolon get their bodies
func (p *Parser) statementOrNull() (stmt Stmt, msg feedback.Message) {
	if canStartStatement(p.token().Kind) {
		return p.statement()
	}

	pos := p.token().Span.Start
	return &NullStatement{span: source.Span{Start: pos, End: pos}}, nil
}

// statement dispatches on the token under the cursor. A statement that opens
// with an identifier needs one token of lookahead: `:=` or `[` means an
// assignment, anything else is a procedure call
func (p *Parser) statement() (stmt Stmt, msg feedback.Message) {
	switch p.token().Kind {
	case IdentSymbol:
		if p.checkNext(AssignSymbol) || p.checkNext(LBracketSymbol) {
			return p.assign()
		}
		return p.procedureCall()
	case BeginKeyword:
		return p.compoundStatement()
	case IfKeyword:
		return p.ifStatement()
	case ForKeyword:
		return p.forStatement()
	case WhileKeyword:
		return p.whileStatement()
	case ReadKeyword:
		return p.readStatement()
	case WriteKeyword:
		return p.writeStatement()
	case BreakKeyword:
		start := p.advance().Span.Start
		return &BreakStatement{span: p.spanFrom(start)}, nil
	default:
		return nil, p.syntaxError("Expected statement.")
	}
}

func (p *Parser) assign() (stmt *AssignStatement, msg feedback.Message) {
	start := p.token().Span.Start

	left, msg := p.variable()
	if msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(AssignSymbol, "Expected ':=' for assignment."); msg != nil {
		return nil, msg
	}

	right, msg := p.expression()
	if msg != nil {
		return nil, msg
	}

	return &AssignStatement{
		Left:  left,
		Right: right,
		span:  p.spanFrom(start),
	}, nil
}

// procedureCall parses an identifier with an optional parenthesized argument
// list. Empty parentheses and absent parentheses both mean zero arguments
func (p *Parser) procedureCall() (stmt *CallStatement, msg feedback.Message) {
	start := p.token().Span.Start

	name, msg := p.consume(IdentSymbol, "Expected procedure identifier.")
	if msg != nil {
		return nil, msg
	}

	stmt = &CallStatement{Name: name.Lexeme}

	if _, ok := p.match(LParenSymbol); ok {
		if _, ok := p.match(RParenSymbol); ok {
			stmt.span = p.spanFrom(start)
			return stmt, nil
		}

		for {
			arg, msg := p.expression()
			if msg != nil {
				return nil, msg
			}

			stmt.Args = append(stmt.Args, arg)

			if _, ok := p.match(CommaSymbol); ok == false {
				break
			}
		}

		if _, msg = p.consume(RParenSymbol, "Expected ')' to close argument list."); msg != nil {
			return nil, msg
		}
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

// compoundStatement parses `begin ... end` with statements separated by
// semicolons. A semicolon with no statement after it inserts an empty
// statement, so `begin end` and `begin x := 1; end` each hold one more
// statement than meets the eye
func (p *Parser) compoundStatement() (stmt *CompoundStatement, msg feedback.Message) {
	start := p.token().Span.Start

	if _, msg = p.consume(BeginKeyword, "Expected 'begin' keyword."); msg != nil {
		return nil, msg
	}

	stmt = &CompoundStatement{}

	first, msg := p.statementOrNull()
	if msg != nil {
		return nil, msg
	}

	stmt.Statements = append(stmt.Statements, first)

	for {
		if _, ok := p.match(SemicolonSymbol); ok == false {
			break
		}

		next, msg := p.statementOrNull()
		if msg != nil {
			return nil, msg
		}

		stmt.Statements = append(stmt.Statements, next)
	}

	if _, msg = p.consume(EndKeyword, "Expected 'end' keyword to close compound statement."); msg != nil {
		return nil, msg
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

// ifStatement parses a conditional. A dangling else binds to the nearest if,
// which falls out of the recursion with no extra work
func (p *Parser) ifStatement() (stmt *IfStatement, msg feedback.Message) {
	start := p.advance().Span.Start
	stmt = &IfStatement{}

	if stmt.Condition, msg = p.expression(); msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(ThenKeyword, "Expected 'then' keyword after if condition."); msg != nil {
		return nil, msg
	}

	if stmt.Then, msg = p.statementOrNull(); msg != nil {
		return nil, msg
	}

	if _, ok := p.match(ElseKeyword); ok {
		if stmt.Else, msg = p.statementOrNull(); msg != nil {
			return nil, msg
		}
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) forStatement() (stmt *ForStatement, msg feedback.Message) {
	start := p.advance().Span.Start
	stmt = &ForStatement{}

	name, msg := p.consume(IdentSymbol, "Expected loop control variable after 'for' keyword.")
	if msg != nil {
		return nil, msg
	}

	stmt.Name = name.Lexeme

	if _, msg = p.consume(AssignSymbol, "Expected ':=' for loop control variable initialization."); msg != nil {
		return nil, msg
	}

	if stmt.From, msg = p.expression(); msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(ToKeyword, "Expected 'to' keyword for for loop range."); msg != nil {
		return nil, msg
	}

	if stmt.To, msg = p.expression(); msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(DoKeyword, "Expected 'do' keyword before for loop body."); msg != nil {
		return nil, msg
	}

	if stmt.Body, msg = p.statementOrNull(); msg != nil {
		return nil, msg
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) whileStatement() (stmt *WhileStatement, msg feedback.Message) {
	start := p.advance().Span.Start
	stmt = &WhileStatement{}

	if stmt.Condition, msg = p.expression(); msg != nil {
		return nil, msg
	}

	if _, msg = p.consume(DoKeyword, "Expected 'do' keyword before while loop body."); msg != nil {
		return nil, msg
	}

	if stmt.Body, msg = p.statementOrNull(); msg != nil {
		return nil, msg
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) readStatement() (stmt *ReadStatement, msg feedback.Message) {
	start := p.advance().Span.Start
	stmt = &ReadStatement{}

	if _, msg = p.consume(LParenSymbol, "Expected '(' after 'read' keyword."); msg != nil {
		return nil, msg
	}

	for {
		target, msg := p.variable()
		if msg != nil {
			return nil, msg
		}

		stmt.Targets = append(stmt.Targets, target)

		if _, ok := p.match(CommaSymbol); ok == false {
			break
		}
	}

	if _, msg = p.consume(RParenSymbol, "Expected ')' to close read statement."); msg != nil {
		return nil, msg
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

func (p *Parser) writeStatement() (stmt *WriteStatement, msg feedback.Message) {
	start := p.advance().Span.Start
	stmt = &WriteStatement{}

	if _, msg = p.consume(LParenSymbol, "Expected '(' after 'write' keyword."); msg != nil {
		return nil, msg
	}

	for {
		expr, msg := p.expression()
		if msg != nil {
			return nil, msg
		}

		stmt.Exprs = append(stmt.Exprs, expr)

		if _, ok := p.match(CommaSymbol); ok == false {
			break
		}
	}

	if _, msg = p.consume(RParenSymbol, "Expected ')' to close write statement."); msg != nil {
		return nil, msg
	}

	stmt.span = p.spanFrom(start)
	return stmt, nil
}

// variable parses an identifier with an optional bracketed index list
func (p *Parser) variable() (v *VariableExpr, msg feedback.Message) {
	start := p.token().Span.Start

	name, msg := p.consume(IdentSymbol, "Expected variable identifier.")
	if msg != nil {
		return nil, msg
	}

	v = &VariableExpr{Name: name.Lexeme}

	if _, ok := p.match(LBracketSymbol); ok {
		for {
			index, msg := p.expression()
			if msg != nil {
				return nil, msg
			}

			v.Indexes = append(v.Indexes, index)

			if _, ok := p.match(CommaSymbol); ok == false {
				break
			}
		}

		if _, msg = p.consume(RBracketSymbol, "Expected ']' to close array index."); msg != nil {
			return nil, msg
		}
	}

	v.span = p.spanFrom(start)
	return v, nil
}

func isRelational(kind TokenKind) bool {
	switch kind {
	case EqualSymbol, NESymbol, LTSymbol, LESymbol, GTSymbol, GESymbol:
		return true
	}

	return false
}

// expression parses `simple [relop simple]`. The grammar allows at most one
// relational operator per expression so `a < b < c` is a syntax error at the
// second `<`
func (p *Parser) expression() (expr *Expression, msg feedback.Message) {
	start := p.token().Span.Start
	expr = &Expression{}

	if expr.Left, msg = p.simpleExpression(); msg != nil {
		return nil, msg
	}

	if isRelational(p.token().Kind) {
		expr.Op = p.advance().Kind

		if expr.Right, msg = p.simpleExpression(); msg != nil {
			return nil, msg
		}
	}

	expr.span = p.spanFrom(start)
	return expr, nil
}

// simpleExpression parses a term followed by zero or more `(+|-|or) term`
// pairs, associating left
func (p *Parser) simpleExpression() (simple *SimpleExpression, msg feedback.Message) {
	start := p.token().Span.Start
	simple = &SimpleExpression{}

	if simple.First, msg = p.term(); msg != nil {
		return nil, msg
	}

	for p.check(PlusSymbol) || p.check(MinusSymbol) || p.check(OrSymbol) {
		op := p.advance().Kind

		term, msg := p.term()
		if msg != nil {
			return nil, msg
		}

		simple.Rest = append(simple.Rest, OpTerm{Op: op, Term: term})
	}

	simple.span = p.spanFrom(start)
	return simple, nil
}

// term parses a factor followed by zero or more `(*|/|div|mod|and) factor`
// pairs, associating left
func (p *Parser) term() (term *Term, msg feedback.Message) {
	start := p.token().Span.Start
	term = &Term{}

	if term.First, msg = p.factor(); msg != nil {
		return nil, msg
	}

	for p.check(TimesSymbol) || p.check(RDivSymbol) || p.check(DivSymbol) ||
		p.check(ModSymbol) || p.check(AndSymbol) {
		op := p.advance().Kind

		factor, msg := p.factor()
		if msg != nil {
			return nil, msg
		}

		term.Rest = append(term.Rest, OpFactor{Op: op, Factor: factor})
	}

	term.span = p.spanFrom(start)
	return term, nil
}

// factor parses the leaf level of the expression grammar. A bare identifier
// can't be classified here since it may name a variable or a parameterless
// function, so it becomes an unknown factor for the semantic pass to settle
func (p *Parser) factor() (f *Factor, msg feedback.Message) {
	start := p.token().Span.Start

	switch p.token().Kind {
	case IdentSymbol:
		if p.checkNext(LParenSymbol) {
			call, msg := p.procedureCall()
			if msg != nil {
				return nil, msg
			}
			return &Factor{Kind: CallFactor, Call: call, span: p.spanFrom(start)}, nil
		}

		if p.checkNext(LBracketSymbol) {
			v, msg := p.variable()
			if msg != nil {
				return nil, msg
			}
			return &Factor{Kind: VariableFactor, Variable: v, span: p.spanFrom(start)}, nil
		}

		name := p.advance()
		return &Factor{Kind: UnknownFactor, Text: name.Lexeme, span: p.spanFrom(start)}, nil
	case NumberSymbol:
		num := p.advance()
		return &Factor{Kind: NumberFactor, Text: num.Lexeme, span: p.spanFrom(start)}, nil
	case TrueKeyword, FalseKeyword:
		lit := p.advance()
		return &Factor{Kind: BooleanFactor, Text: lit.Lexeme, span: p.spanFrom(start)}, nil
	case LParenSymbol:
		p.advance()

		expr, msg := p.expression()
		if msg != nil {
			return nil, msg
		}

		if _, msg = p.consume(RParenSymbol, "Expected ')' to close parenthesized expression."); msg != nil {
			return nil, msg
		}

		return &Factor{Kind: ExprFactor, Expr: expr, span: p.spanFrom(start)}, nil
	case NotSymbol:
		p.advance()

		operand, msg := p.factor()
		if msg != nil {
			return nil, msg
		}

		return &Factor{Kind: NotFactor, Operand: operand, span: p.spanFrom(start)}, nil
	case MinusSymbol:
		p.advance()

		operand, msg := p.factor()
		if msg != nil {
			return nil, msg
		}

		return &Factor{Kind: NegateFactor, Operand: operand, span: p.spanFrom(start)}, nil
	case PlusSymbol:
		p.advance()

		operand, msg := p.factor()
		if msg != nil {
			return nil, msg
		}

		return &Factor{Kind: PosateFactor, Operand: operand, span: p.spanFrom(start)}, nil
	default:
		return nil, p.syntaxError("Expected factor")
	}
}

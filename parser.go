package sprout

import "fmt"

// ParseError is a structural fault found while building the tree.
type ParseError struct {
	Expected string
	Found    string
	Line     int
	AtEOF    bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: expected %s but found %s", e.Line, e.Expected, e.Found)
}

func (e *ParseError) diagnostic() *Diagnostic {
	kind := UnexpectedToken
	if e.AtEOF {
		kind = UnexpectedEndOfFile
	}
	d := newDiagnostic(kind, e.Line, "expected %s but found %s", e.Expected, e.Found)
	d.Expected = e.Expected
	d.Found = e.Found
	return d
}

// Parser builds a Program from tokens. It declares variables into its symbol
// table as it meets them, so every variable reference is bound to the
// declaration visible at that point.
type Parser struct {
	s           *tokenStream
	symbols     *SymbolTable
	blockScopes bool
	nesting     int // enclosing if/while/function bodies
	errors      []*ParseError
}

// NewParser creates a parser over tokens that declares into symbols. With
// blockScopes, if/while bodies get a scope of their own.
func NewParser(tokens []Token, symbols *SymbolTable, blockScopes bool) *Parser {
	return &Parser{
		s:           newTokenStream(tokens),
		symbols:     symbols,
		blockScopes: blockScopes,
	}
}

// Parse runs a parser over tokens and returns the tree together with one
// diagnostic per structural fault. It always consumes the whole input.
func Parse(tokens []Token, symbols *SymbolTable, blockScopes bool) (*Program, Diagnostics) {
	p := NewParser(tokens, symbols, blockScopes)
	program := p.ParseProgram()
	var diags Diagnostics
	for _, err := range p.Errors() {
		diags = append(diags, err.diagnostic())
	}
	return program, diags
}

// ParseExpression parses tokens as a single expression that must run to EOF.
// Variable references bind against symbols.
func ParseExpression(tokens []Token, symbols *SymbolTable) (*Logical, error) {
	p := NewParser(tokens, symbols, true)
	l, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	if !p.s.atEOF() {
		return nil, p.unexpected("end of file")
	}
	return l, nil
}

// Errors returns the faults recorded so far, in source order.
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

// ParseProgram parses statements until EOF.
func (p *Parser) ParseProgram() *Program {
	program := &Program{}
	for !p.s.atEOF() {
		if stmt := p.parseRecovering(); stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// parseRecovering parses one statement. On failure it records the error,
// skips to the next statement boundary and returns nil.
func (p *Parser) parseRecovering() *Statement {
	start := p.s.pos
	stmt, err := p.parseStatement()
	if err == nil {
		return stmt
	}
	p.errors = append(p.errors, err)
	if p.s.pos == start {
		p.s.advance()
	}
	p.synchronize()
	return nil
}

// synchronize skips tokens until one that can begin or end a statement.
func (p *Parser) synchronize() {
	for !p.atBoundary() {
		p.s.advance()
	}
}

// atBoundary reports whether the current token can begin or end a statement.
func (p *Parser) atBoundary() bool {
	tok := p.s.current()
	switch tok.Type {
	case EOF, PRINT, IF, WHILE, FUNCTION, RETURN, ELSE, END_IF, END_WHILE, END_FUNCTION:
		return true
	case TYPE:
		// Types inside a signature do not start a declaration.
		switch p.s.previous().Type {
		case LPAREN, COMMA, RETURNS:
			return false
		}
		return true
	case IDENT:
		next := p.s.peek(1).Type
		return tok.Line > p.s.previous().Line && (next == LE || next == LPAREN)
	}
	return false
}

// skipHeader records err for a malformed if, while or function header and
// skips the rest of the header. The opener (then, do or ':') is consumed if
// present. It reports whether a body may follow, which is false only at EOF.
func (p *Parser) skipHeader(err *ParseError, opener TokenType) bool {
	p.errors = append(p.errors, err)
	for !p.s.atEOF() {
		tok := p.s.current()
		switch {
		case tok.Type == opener:
			p.s.advance()
			return true
		case tok.Type == TYPE && tok.Line == p.s.previous().Line:
			// Still part of the header, such as a return type missing its
			// 'returns'.
		case p.atBoundary():
			return true
		}
		p.s.advance()
	}
	return false
}

func (p *Parser) unexpected(expected string) *ParseError {
	tok := p.s.current()
	return &ParseError{
		Expected: expected,
		Found:    tok.describe(),
		Line:     tok.Line,
		AtEOF:    tok.Type == EOF,
	}
}

// expect consumes a token of type tt or fails without consuming anything.
func (p *Parser) expect(tt TokenType, expected string) (Token, *ParseError) {
	if p.s.current().Type != tt {
		return Token{}, p.unexpected(expected)
	}
	return p.s.advance(), nil
}

func (p *Parser) parseStatement() (*Statement, *ParseError) {
	tok := p.s.current()
	switch tok.Type {
	case TYPE:
		return p.parseVariableDeclaration()
	case IDENT:
		switch p.s.peek(1).Type {
		case LPAREN:
			call, err := p.parseCall()
			if err != nil {
				return nil, err
			}
			return &Statement{Kind: StmtCall, Line: tok.Line, Name: call.Text, Call: call}, nil
		case LE:
			return p.parseAssignment()
		}
		p.s.advance()
		return nil, p.unexpected("'<=' or '('")
	case PRINT:
		p.s.advance()
		value, err := p.parseLogical()
		if err != nil {
			return nil, err
		}
		return &Statement{Kind: StmtPrint, Line: tok.Line, Value: value}, nil
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FUNCTION:
		if p.nesting > 0 {
			// Consume the whole nested declaration so its body does not
			// leak into the enclosing block, then reject it.
			if _, err := p.parseFunction(); err != nil {
				return nil, err
			}
			return nil, &ParseError{Expected: "statement", Found: "nested function declaration", Line: tok.Line}
		}
		return p.parseFunction()
	case RETURN:
		return p.parseReturn()
	default:
		return nil, p.unexpected("statement")
	}
}

func (p *Parser) parseVariableDeclaration() (*Statement, *ParseError) {
	typeTok := p.s.current()
	typ, ok := ParseDataType(typeTok.Literal)
	if !ok || typ == TypeVoid {
		return nil, p.unexpected("variable type")
	}
	p.s.advance()

	name, err := p.expect(IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "':'"); err != nil {
		return nil, err
	}
	value, err := p.parseLogical()
	if err != nil {
		return nil, err
	}

	// Declared after the initializer, so `Number x : x` does not see itself.
	// A clash is reported by the type checker.
	p.symbols.Declare(name.Literal, typ, typeTok.Line)

	return &Statement{
		Kind:         StmtVariableDeclaration,
		Line:         typeTok.Line,
		Name:         name.Literal,
		DeclaredType: typ,
		Value:        value,
	}, nil
}

func (p *Parser) parseAssignment() (*Statement, *ParseError) {
	name := p.s.advance()
	p.s.advance() // <=
	value, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	return &Statement{Kind: StmtVariableAssignment, Line: name.Line, Name: name.Literal, Value: value}, nil
}

// parseBody parses statements up to (not including) one of the terminators.
func (p *Parser) parseBody(terminators ...TokenType) []*Statement {
	var body []*Statement
	for !p.s.atEOF() && !p.at(terminators...) {
		if stmt := p.parseRecovering(); stmt != nil {
			body = append(body, stmt)
		}
	}
	return body
}

func (p *Parser) at(types ...TokenType) bool {
	cur := p.s.current().Type
	for _, tt := range types {
		if cur == tt {
			return true
		}
	}
	return false
}

// parseBlock parses a nested if/while body in its own scope when block scopes
// are enabled.
func (p *Parser) parseBlock(terminators ...TokenType) []*Statement {
	p.nesting++
	defer func() { p.nesting-- }()
	if !p.blockScopes {
		return p.parseBody(terminators...)
	}
	p.symbols.PushBlock()
	defer p.symbols.Pop()
	return p.parseBody(terminators...)
}

// parseIf parses an if statement. When the header is malformed the body is
// still parsed, in its own scope, up to the matching endIf; the statement is
// kept only if its condition was read.
func (p *Parser) parseIf() (*Statement, *ParseError) {
	line := p.s.advance().Line
	cond, err := p.parseLogical()
	if err == nil {
		_, err = p.expect(THEN, "'then'")
	}
	if err != nil && !p.skipHeader(err, THEN) {
		return nil, nil
	}

	stmt := &Statement{Kind: StmtIf, Line: line, Value: cond}
	stmt.Body = p.parseBlock(ELSE, END_IF)
	if p.s.current().Type == ELSE {
		p.s.advance()
		stmt.HasElse = true
		stmt.Else = p.parseBlock(END_IF)
	}
	if _, err := p.expect(END_IF, "'endIf'"); err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, nil
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*Statement, *ParseError) {
	line := p.s.advance().Line
	cond, err := p.parseLogical()
	if err == nil {
		_, err = p.expect(DO, "'do'")
	}
	if err != nil && !p.skipHeader(err, DO) {
		return nil, nil
	}

	stmt := &Statement{Kind: StmtWhile, Line: line, Value: cond}
	stmt.Body = p.parseBlock(END_WHILE)
	if _, err := p.expect(END_WHILE, "'endWhile'"); err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, nil
	}
	return stmt, nil
}

// parseFunction parses a function declaration. A malformed signature is
// reported and its body is parsed in a function scope holding the parameters
// read so far, then dropped.
func (p *Parser) parseFunction() (*Statement, *ParseError) {
	stmt := &Statement{Kind: StmtFunctionDeclaration, Line: p.s.advance().Line}
	headerErr := p.parseSignature(stmt)
	if headerErr != nil && !p.skipHeader(headerErr, COLON) {
		return nil, nil
	}

	p.nesting++
	p.symbols.PushFunction(stmt.Name)
	for _, param := range stmt.Params {
		p.symbols.Declare(param.Name, param.Type, stmt.Line)
	}
	stmt.Body = p.parseBody(END_FUNCTION)
	p.symbols.Pop()
	p.nesting--

	if _, err := p.expect(END_FUNCTION, "'endFunction'"); err != nil {
		return nil, err
	}
	if headerErr != nil {
		return nil, nil
	}
	return stmt, nil
}

// parseSignature parses `NAME ( params ) returns TYPE :` into stmt. On
// failure stmt keeps what was read before the fault.
func (p *Parser) parseSignature(stmt *Statement) *ParseError {
	name, err := p.expect(IDENT, "function name")
	if err != nil {
		return err
	}
	stmt.Name = name.Literal
	if _, err := p.expect(LPAREN, "'('"); err != nil {
		return err
	}
	params, err := p.parseParameters()
	stmt.Params = params
	if err != nil {
		return err
	}
	if _, err := p.expect(RETURNS, "'returns'"); err != nil {
		return err
	}
	retTok, err := p.expect(TYPE, "return type")
	if err != nil {
		return err
	}
	stmt.DeclaredType, _ = ParseDataType(retTok.Literal)
	_, err = p.expect(COLON, "':'")
	return err
}

// parseParameters parses `[TYPE IDENT {, TYPE IDENT}] )`; the opening
// parenthesis is already consumed.
func (p *Parser) parseParameters() ([]Parameter, *ParseError) {
	var params []Parameter
	if p.s.current().Type == RPAREN {
		p.s.advance()
		return params, nil
	}
	for {
		typeTok := p.s.current()
		typ, ok := ParseDataType(typeTok.Literal)
		if typeTok.Type != TYPE || !ok || typ == TypeVoid {
			return params, p.unexpected("parameter type")
		}
		p.s.advance()
		name, err := p.expect(IDENT, "parameter name")
		if err != nil {
			return params, err
		}
		params = append(params, Parameter{Name: name.Literal, Type: typ})

		switch p.s.current().Type {
		case COMMA:
			p.s.advance()
		case RPAREN:
			p.s.advance()
			return params, nil
		default:
			return params, p.unexpected("',' or ')'")
		}
	}
}

// canStartExpression reports whether tt may begin a Logical.
func canStartExpression(tt TokenType) bool {
	switch tt {
	case NUMBER, STRING, BOOLEAN, IDENT, PLUS, MINUS, BANG:
		return true
	}
	return false
}

func (p *Parser) parseReturn() (*Statement, *ParseError) {
	tok := p.s.advance()
	stmt := &Statement{Kind: StmtReturn, Line: tok.Line}
	next := p.s.current()
	if !canStartExpression(next.Type) || next.Line != tok.Line {
		return stmt, nil
	}
	value, err := p.parseLogical()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

func (p *Parser) parseLogical() (*Logical, *ParseError) {
	l := &Logical{IsValid: true}
	for {
		negated := false
		if p.s.current().Type == BANG {
			p.s.advance()
			negated = true
		}
		c, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		l.Children = append(l.Children, c)
		l.Negated = append(l.Negated, negated)

		switch p.s.current().Type {
		case AND:
			l.Ops = append(l.Ops, OpAnd)
		case OR:
			l.Ops = append(l.Ops, OpOr)
		default:
			return l, nil
		}
		p.s.advance()
	}
}

var comparisonOps = map[TokenType]Operator{
	EQ:     OpEq,
	NOT_EQ: OpNotEq,
	LT:     OpLess,
	LE:     OpLessEq,
	GT:     OpGreater,
	GE:     OpGreaterEq,
}

func (p *Parser) parseComparison() (*Comparison, *ParseError) {
	c := &Comparison{}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, e)

		op, ok := comparisonOps[p.s.current().Type]
		if !ok {
			return c, nil
		}
		p.s.advance()
		c.Ops = append(c.Ops, op)
	}
}

func (p *Parser) parseExpression() (*Expression, *ParseError) {
	e := &Expression{}
	for {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, t)

		switch p.s.current().Type {
		case PLUS:
			e.Ops = append(e.Ops, OpAdd)
		case MINUS:
			e.Ops = append(e.Ops, OpSub)
		default:
			return e, nil
		}
		p.s.advance()
	}
}

func (p *Parser) parseTerm() (*Term, *ParseError) {
	t := &Term{}
	for {
		u, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		t.Children = append(t.Children, u)

		switch p.s.current().Type {
		case ASTERISK:
			t.Ops = append(t.Ops, OpMul)
		case SLASH:
			t.Ops = append(t.Ops, OpDiv)
		default:
			return t, nil
		}
		p.s.advance()
	}
}

func (p *Parser) parseUnary() (*Unary, *ParseError) {
	u := &Unary{}
	switch p.s.current().Type {
	case PLUS:
		u.Op = OpAdd
		p.s.advance()
	case MINUS:
		u.Op = OpSub
		p.s.advance()
	}
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	u.Value = v
	return u, nil
}

func (p *Parser) parseValue() (*Value, *ParseError) {
	tok := p.s.current()
	switch tok.Type {
	case NUMBER:
		p.s.advance()
		return &Value{Kind: ValueNumber, Text: tok.Literal, Line: tok.Line}, nil
	case STRING:
		p.s.advance()
		return &Value{Kind: ValueString, Text: tok.Literal, Line: tok.Line}, nil
	case BOOLEAN:
		p.s.advance()
		return &Value{Kind: ValueBoolean, Text: tok.Literal, Line: tok.Line}, nil
	case IDENT:
		if p.s.peek(1).Type == LPAREN {
			return p.parseCall()
		}
		p.s.advance()
		return &Value{
			Kind:   ValueVariable,
			Text:   tok.Literal,
			Line:   tok.Line,
			Symbol: p.symbols.Lookup(tok.Literal),
		}, nil
	default:
		return nil, p.unexpected("value")
	}
}

// parseCall parses `IDENT ( [Logical {, Logical}] )`.
func (p *Parser) parseCall() (*Value, *ParseError) {
	name := p.s.advance()
	p.s.advance() // (
	call := &Value{Kind: ValueCall, Text: name.Literal, Line: name.Line, Args: []*Logical{}}
	if p.s.current().Type == RPAREN {
		p.s.advance()
		return call, nil
	}
	for {
		arg, err := p.parseLogical()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		switch p.s.current().Type {
		case COMMA:
			p.s.advance()
		case RPAREN:
			p.s.advance()
			return call, nil
		default:
			return nil, p.unexpected("',' or ')'")
		}
	}
}

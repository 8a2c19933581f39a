package sprout

import "strconv"

// Check cross-references the resolved types of program against their context
// and returns every fault it finds. It walks with its own symbol table, which
// must be fresh, and mirrors the parser's scope policy. Function symbols get
// their ProperlyReturns flag set as their bodies are checked.
func Check(program *Program, symbols *SymbolTable, functions *FunctionTable, blockScopes bool) Diagnostics {
	c := &checker{symbols: symbols, functions: functions, blockScopes: blockScopes}
	c.statements(program.Statements)
	return c.diags
}

type checker struct {
	symbols     *SymbolTable
	functions   *FunctionTable
	blockScopes bool

	fn    *Statement // enclosing function declaration, nil at top level
	diags Diagnostics
}

func (c *checker) report(d *Diagnostic) {
	c.diags = append(c.diags, d)
}

func (c *checker) statements(stmts []*Statement) {
	for _, stmt := range stmts {
		c.statement(stmt)
	}
}

func (c *checker) statement(stmt *Statement) {
	switch stmt.Kind {
	case StmtVariableDeclaration:
		c.declaration(stmt)
	case StmtVariableAssignment:
		c.assignment(stmt)
	case StmtFunctionDeclaration:
		c.function(stmt)
	case StmtReturn:
		c.ret(stmt)
	case StmtPrint:
		if c.references(stmt.Value) {
			c.conflict(stmt.Value, "print argument")
		}
	case StmtIf:
		if c.references(stmt.Value) {
			c.conflict(stmt.Value, "if condition")
		}
		c.block(stmt.Body)
		if stmt.HasElse {
			c.block(stmt.Else)
		}
	case StmtWhile:
		if c.references(stmt.Value) {
			c.conflict(stmt.Value, "while condition")
		}
		c.block(stmt.Body)
	case StmtCall:
		c.call(stmt.Call)
	}
}

func (c *checker) declaration(stmt *Statement) {
	// An initializer naming something undeclared has already been reported;
	// the variable is still declared so later uses do not repeat it.
	ok := c.references(stmt.Value)
	found := stmt.Value.Type
	if ok && found != TypeUnknown && found != stmt.DeclaredType {
		c.report(named(typeMismatch(stmt.Line, stmt.DeclaredType, found, "declaration of '"+stmt.Name+"'"), stmt.Name))
		return
	}
	if _, err := c.symbols.Declare(stmt.Name, stmt.DeclaredType, stmt.Line); err != nil {
		c.report(redeclaration(VariableAlreadyDeclared, err.(*RedeclarationError)))
	}
}

func (c *checker) assignment(stmt *Statement) {
	ok := c.references(stmt.Value)
	sym := c.symbols.Lookup(stmt.Name)
	if sym == nil {
		c.report(notDeclared(stmt.Name, stmt.Line))
		return
	}
	found := stmt.Value.Type
	if ok && found != TypeUnknown && found != sym.Type {
		c.report(named(typeMismatch(stmt.Line, sym.Type, found, "assignment to '"+stmt.Name+"'"), stmt.Name))
	}
}

func (c *checker) function(stmt *Statement) {
	outer := c.fn
	c.fn = stmt
	defer func() { c.fn = outer }()

	c.symbols.PushFunction(stmt.Name)
	for _, param := range stmt.Params {
		if _, err := c.symbols.Declare(param.Name, param.Type, stmt.Line); err != nil {
			c.report(redeclaration(VariableAlreadyDeclared, err.(*RedeclarationError)))
		}
	}
	c.statements(stmt.Body)
	c.symbols.Pop()

	returns := stmt.DeclaredType == TypeVoid ||
		(len(stmt.Body) > 0 && stmt.Body[len(stmt.Body)-1].Kind == StmtReturn)
	if !returns {
		d := newDiagnostic(ReturnMissing, stmt.Line, "function '%s' must end with a return of %s", stmt.Name, stmt.DeclaredType)
		d.Name = stmt.Name
		c.report(d)
	}
	// With redeclaration allowed the table may hold another declaration.
	if fn := c.functions.Lookup(stmt.Name); fn != nil && fn.Line == stmt.Line {
		fn.ProperlyReturns = returns
	}
}

func (c *checker) ret(stmt *Statement) {
	ok := true
	if stmt.Value != nil {
		ok = c.references(stmt.Value)
	}
	if c.fn == nil {
		c.report(newDiagnostic(ReturnOutsideFunction, stmt.Line, "return outside of a function"))
		return
	}
	found := TypeVoid
	if stmt.Value != nil {
		found = stmt.Value.Type
	}
	if ok && found != TypeUnknown && found != c.fn.DeclaredType {
		c.report(named(typeMismatch(stmt.Line, c.fn.DeclaredType, found, "return from '"+c.fn.Name+"'"), c.fn.Name))
	}
}

// block checks an if/while body, in its own scope when block scopes are on.
func (c *checker) block(body []*Statement) {
	if !c.blockScopes {
		c.statements(body)
		return
	}
	c.symbols.PushBlock()
	c.statements(body)
	c.symbols.Pop()
}

// conflict reports an expression whose operand types disagree where no
// declared type exists to compare against.
func (c *checker) conflict(l *Logical, context string) {
	if l.Type != TypeInvalid {
		return
	}
	d := newDiagnostic(TypeConflict, l.line(), "%s mixes operands of different types", context)
	d.Found = l.Type.String()
	c.report(d)
}

// call checks one call site: its arguments, that the function exists, the
// argument count and each argument's type. It reports whether every name
// involved was declared.
func (c *checker) call(v *Value) bool {
	ok := true
	declared := make([]bool, len(v.Args))
	for i, arg := range v.Args {
		declared[i] = c.references(arg)
		if !declared[i] {
			ok = false
		}
	}
	fn := c.functions.Lookup(v.Text)
	if fn == nil {
		d := newDiagnostic(FunctionNotDeclared, v.Line, "function '%s' is not declared", v.Text)
		d.Name = v.Text
		c.report(d)
		return false
	}
	if len(v.Args) != len(fn.Params) {
		d := newDiagnostic(IncorrectParameters, v.Line, "function '%s' takes %d argument(s) but %d were provided", fn.Name, len(fn.Params), len(v.Args))
		d.Name = fn.Name
		d.ExpectedCount = len(fn.Params)
		d.ProvidedCount = len(v.Args)
		c.report(d)
		return ok
	}
	for i, arg := range v.Args {
		// An argument naming something undeclared was reported above.
		want := fn.Params[i].Type
		if !declared[i] || want == TypeInvalid || arg.Type == TypeUnknown || arg.Type == want {
			continue
		}
		context := "argument " + strconv.Itoa(i+1) + " of '" + fn.Name + "'"
		c.report(named(typeMismatch(v.Line, want, arg.Type, context), fn.Name))
	}
	return ok
}

// references checks every variable reference and call inside l. It reports
// false when some name was not declared, in which case type comparisons on
// l would only repeat that fault.
func (c *checker) references(l *Logical) bool {
	ok := true
	for _, comp := range l.Children {
		for _, e := range comp.Children {
			for _, t := range e.Children {
				for _, u := range t.Children {
					if !c.value(u.Value) {
						ok = false
					}
				}
			}
		}
	}
	return ok
}

func (c *checker) value(v *Value) bool {
	switch v.Kind {
	case ValueVariable:
		if c.symbols.Lookup(v.Text) == nil {
			c.report(notDeclared(v.Text, v.Line))
			return false
		}
	case ValueCall:
		return c.call(v)
	}
	return true
}

func notDeclared(name string, line int) *Diagnostic {
	d := newDiagnostic(VariableNotDeclared, line, "variable '%s' is not declared", name)
	d.Name = name
	return d
}

func named(d *Diagnostic, name string) *Diagnostic {
	d.Name = name
	return d
}

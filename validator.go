package sprout

// Validate enforces the operator/operand compatibility matrix over a resolved
// program. Each statement's own expressions form one subtree and report at
// most their first violation; nested bodies are validated separately.
//
// Only resolved Number/String/Boolean types are judged. Unknown and Invalid
// operands are left to the type checker.
func Validate(program *Program) Diagnostics {
	var diags Diagnostics
	validateStatements(program.Statements, &diags)
	return diags
}

func validateStatements(stmts []*Statement, diags *Diagnostics) {
	for _, stmt := range stmts {
		var d *Diagnostic
		if stmt.Value != nil {
			d = validateLogical(stmt.Value)
		}
		if d == nil && stmt.Call != nil {
			d = validateValue(stmt.Call)
		}
		if d != nil {
			*diags = append(*diags, d)
		}
		validateStatements(stmt.Body, diags)
		validateStatements(stmt.Else, diags)
	}
}

// ValidateLogical returns the first violation in one expression tree, or nil.
func ValidateLogical(l *Logical) *Diagnostic {
	return validateLogical(l)
}

func validateLogical(l *Logical) *Diagnostic {
	for _, c := range l.Children {
		if d := validateComparison(c); d != nil {
			return d
		}
	}
	for i, c := range l.Children {
		if l.Negated[i] && c.Type.isConcrete() && c.Type != TypeBoolean {
			return operandError(InvalidUnaryOperand, c.line(), OpNot, c.Type)
		}
	}
	for i, op := range l.Ops {
		for _, c := range l.Children[i : i+2] {
			if c.Type.isConcrete() && c.Type != TypeBoolean {
				return operandError(InvalidLogicalOperands, c.line(), op, c.Type)
			}
		}
	}
	return nil
}

func validateComparison(c *Comparison) *Diagnostic {
	for _, e := range c.Children {
		if d := validateExpression(e); d != nil {
			return d
		}
	}
	if c.Type != TypeString && c.Type != TypeBoolean {
		return nil
	}
	for _, op := range c.Ops {
		if op.isOrdering() {
			return operandError(InvalidComparisonOperands, c.line(), op, c.Type)
		}
	}
	return nil
}

func validateExpression(e *Expression) *Diagnostic {
	for _, t := range e.Children {
		if d := validateTerm(t); d != nil {
			return d
		}
	}
	if len(e.Ops) > 0 && (e.Type == TypeString || e.Type == TypeBoolean) {
		return operandError(InvalidArithmeticOperands, e.line(), e.Ops[0], e.Type)
	}
	return nil
}

func validateTerm(t *Term) *Diagnostic {
	for _, u := range t.Children {
		if d := validateUnary(u); d != nil {
			return d
		}
	}
	if len(t.Ops) > 0 && (t.Type == TypeString || t.Type == TypeBoolean) {
		return operandError(InvalidArithmeticOperands, t.line(), t.Ops[0], t.Type)
	}
	return nil
}

func validateUnary(u *Unary) *Diagnostic {
	if d := validateValue(u.Value); d != nil {
		return d
	}
	if u.Op != OpNone && u.Type.isConcrete() && u.Type != TypeNumber {
		return operandError(InvalidUnaryOperand, u.Value.Line, u.Op, u.Type)
	}
	return nil
}

func validateValue(v *Value) *Diagnostic {
	for _, arg := range v.Args {
		if d := validateLogical(arg); d != nil {
			return d
		}
	}
	return nil
}

func operandError(kind DiagnosticKind, line int, op Operator, found DataType) *Diagnostic {
	d := newDiagnostic(kind, line, "operator '%s' cannot be applied to %s", op, found)
	d.Found = found.String()
	return d
}

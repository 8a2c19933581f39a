package sprout

// Resolve annotates every expression node in program with its DataType,
// bottom-up and in place. It never reports anything: unknown names resolve
// to TypeUnknown and are left for the type checker. Running it again over an
// annotated tree changes nothing.
func Resolve(program *Program, functions *FunctionTable) {
	r := &resolver{functions: functions}
	r.statements(program.Statements)
}

// ResolveLogical annotates a single expression tree.
func ResolveLogical(l *Logical, functions *FunctionTable) DataType {
	r := &resolver{functions: functions}
	return r.logical(l)
}

type resolver struct {
	functions *FunctionTable
}

func (r *resolver) statements(stmts []*Statement) {
	for _, stmt := range stmts {
		if stmt.Value != nil {
			r.logical(stmt.Value)
		}
		if stmt.Call != nil {
			r.value(stmt.Call)
		}
		r.statements(stmt.Body)
		r.statements(stmt.Else)
	}
}

// aggregate applies the uniform-type rule shared by every level: the first
// child's type is the candidate and the first child that disagrees makes the
// whole node Invalid.
func aggregate[T any](children []T, typeOf func(T) DataType) DataType {
	if len(children) == 0 {
		return TypeUnknown
	}
	candidate := typeOf(children[0])
	for _, child := range children[1:] {
		if typeOf(child) != candidate {
			return TypeInvalid
		}
	}
	return candidate
}

func (r *resolver) logical(l *Logical) DataType {
	l.IsValid = true
	for _, c := range l.Children {
		if r.comparison(c) == TypeInvalid {
			l.IsValid = false
		}
	}
	l.Type = aggregate(l.Children, func(c *Comparison) DataType { return c.Type })
	return l.Type
}

func (r *resolver) comparison(c *Comparison) DataType {
	for _, e := range c.Children {
		r.expression(e)
	}
	c.Type = aggregate(c.Children, func(e *Expression) DataType { return e.Type })
	return c.Type
}

func (r *resolver) expression(e *Expression) DataType {
	for _, t := range e.Children {
		r.term(t)
	}
	e.Type = aggregate(e.Children, func(t *Term) DataType { return t.Type })
	return e.Type
}

func (r *resolver) term(t *Term) DataType {
	for _, u := range t.Children {
		u.Type = r.value(u.Value)
	}
	t.Type = aggregate(t.Children, func(u *Unary) DataType { return u.Type })
	return t.Type
}

func (r *resolver) value(v *Value) DataType {
	switch v.Kind {
	case ValueNumber:
		v.Type = TypeNumber
	case ValueString:
		v.Type = TypeString
	case ValueBoolean:
		v.Type = TypeBoolean
	case ValueVariable:
		v.Type = TypeUnknown
		if v.Symbol != nil {
			v.Type = v.Symbol.Type
		}
	case ValueCall:
		for _, arg := range v.Args {
			r.logical(arg)
		}
		v.Type = TypeUnknown
		if fn := r.functions.Lookup(v.Text); fn != nil {
			v.Type = fn.ReturnType
		}
	default:
		v.Type = TypeInvalid
	}
	return v.Type
}

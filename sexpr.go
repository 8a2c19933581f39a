package sprout

import "strings"

// ToSExpr renders program as an s-expression, one form per statement inside
// a (program ...) form. Expression levels with a single child collapse into
// that child.
func ToSExpr(p *Program) string {
	w := &sexprWriter{}
	w.program(p)
	return w.String()
}

// ToTypedSExpr is ToSExpr with every n-ary expression node and every value
// carrying its resolved type right after its head.
func ToTypedSExpr(p *Program) string {
	w := &sexprWriter{typed: true}
	w.program(p)
	return w.String()
}

// ExprToSExpr renders a single expression tree.
func ExprToSExpr(l *Logical, typed bool) string {
	w := &sexprWriter{typed: typed}
	w.logical(l)
	return w.String()
}

type sexprWriter struct {
	strings.Builder
	typed bool
}

func (w *sexprWriter) open(head string, typ DataType) {
	w.WriteString("(" + head)
	if w.typed {
		w.WriteString(" " + typ.String())
	}
}

func (w *sexprWriter) quoted(s string) {
	w.WriteString(" \"" + s + "\"")
}

func (w *sexprWriter) program(p *Program) {
	w.WriteString("(program")
	for _, stmt := range p.Statements {
		w.WriteByte(' ')
		w.statement(stmt)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) block(head string, stmts []*Statement) {
	w.WriteString(" (" + head)
	for _, stmt := range stmts {
		w.WriteByte(' ')
		w.statement(stmt)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) statement(stmt *Statement) {
	switch stmt.Kind {
	case StmtVariableDeclaration:
		w.WriteString("(declare " + stmt.DeclaredType.String())
		w.quoted(stmt.Name)
		w.WriteByte(' ')
		w.logical(stmt.Value)
	case StmtVariableAssignment:
		w.WriteString("(assign")
		w.quoted(stmt.Name)
		w.WriteByte(' ')
		w.logical(stmt.Value)
	case StmtFunctionDeclaration:
		w.WriteString("(function")
		w.quoted(stmt.Name)
		w.WriteString(" (")
		for i, param := range stmt.Params {
			if i > 0 {
				w.WriteByte(' ')
			}
			w.WriteString("(" + param.Type.String())
			w.quoted(param.Name)
			w.WriteByte(')')
		}
		w.WriteString(") " + stmt.DeclaredType.String())
		w.block("body", stmt.Body)
	case StmtReturn:
		w.WriteString("(return")
		if stmt.Value != nil {
			w.WriteByte(' ')
			w.logical(stmt.Value)
		}
	case StmtPrint:
		w.WriteString("(print ")
		w.logical(stmt.Value)
	case StmtIf:
		w.WriteString("(if ")
		w.logical(stmt.Value)
		w.block("then", stmt.Body)
		if stmt.HasElse {
			w.block("else", stmt.Else)
		}
	case StmtWhile:
		w.WriteString("(while ")
		w.logical(stmt.Value)
		w.block("do", stmt.Body)
	case StmtCall:
		w.value(stmt.Call)
		return
	}
	w.WriteByte(')')
}

func (w *sexprWriter) logical(l *Logical) {
	if len(l.Children) == 1 {
		w.negatable(l, 0)
		return
	}
	w.open("logical", l.Type)
	for i := range l.Children {
		if i > 0 {
			w.quoted(string(l.Ops[i-1]))
		}
		w.WriteByte(' ')
		w.negatable(l, i)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) negatable(l *Logical, i int) {
	if !l.Negated[i] {
		w.comparison(l.Children[i])
		return
	}
	w.WriteString("(not ")
	w.comparison(l.Children[i])
	w.WriteByte(')')
}

func (w *sexprWriter) comparison(c *Comparison) {
	if len(c.Children) == 1 {
		w.expression(c.Children[0])
		return
	}
	w.open("compare", c.Type)
	for i, e := range c.Children {
		if i > 0 {
			w.quoted(string(c.Ops[i-1]))
		}
		w.WriteByte(' ')
		w.expression(e)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) expression(e *Expression) {
	if len(e.Children) == 1 {
		w.term(e.Children[0])
		return
	}
	w.open("expr", e.Type)
	for i, t := range e.Children {
		if i > 0 {
			w.quoted(string(e.Ops[i-1]))
		}
		w.WriteByte(' ')
		w.term(t)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) term(t *Term) {
	if len(t.Children) == 1 {
		w.unary(t.Children[0])
		return
	}
	w.open("term", t.Type)
	for i, u := range t.Children {
		if i > 0 {
			w.quoted(string(t.Ops[i-1]))
		}
		w.WriteByte(' ')
		w.unary(u)
	}
	w.WriteByte(')')
}

func (w *sexprWriter) unary(u *Unary) {
	switch u.Op {
	case OpSub:
		w.WriteString("(neg ")
	case OpAdd:
		w.WriteString("(pos ")
	default:
		w.value(u.Value)
		return
	}
	w.value(u.Value)
	w.WriteByte(')')
}

func (w *sexprWriter) value(v *Value) {
	switch v.Kind {
	case ValueNumber:
		w.open("number", v.Type)
		w.quoted(v.Text)
	case ValueString:
		w.open("string", v.Type)
		w.quoted(v.Text)
	case ValueBoolean:
		w.open("boolean", v.Type)
		w.WriteString(" " + v.Text)
	case ValueVariable:
		w.open("var", v.Type)
		w.quoted(v.Text)
	case ValueCall:
		w.open("call", v.Type)
		w.quoted(v.Text)
		for _, arg := range v.Args {
			w.WriteByte(' ')
			w.logical(arg)
		}
	default:
		w.open("invalid", v.Type)
	}
	w.WriteByte(')')
}

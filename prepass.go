package sprout

// Prepass scans tokens once and registers every function signature in ft,
// so bodies parsed later can call functions declared further down. Only
// signatures are interpreted; every other token is skipped. A malformed
// signature still produces a symbol, with TypeInvalid in place of whatever
// could not be read. The scan always reaches EOF.
//
// Functions are declared only at top level, so a signature inside an if,
// while or function body is skipped. Duplicate names keep the first
// signature and are reported, unless allowRedeclaration selects
// last-writer-wins.
func Prepass(tokens []Token, ft *FunctionTable, allowRedeclaration bool) Diagnostics {
	var diags Diagnostics
	s := newTokenStream(tokens)
	depth := 0 // open if, while and function bodies

	for !s.atEOF() {
		switch s.current().Type {
		case IF, WHILE:
			depth++
		case END_IF, END_WHILE, END_FUNCTION:
			if depth > 0 {
				depth--
			}
		}
		if s.current().Type != FUNCTION {
			s.advance()
			continue
		}
		nested := depth > 0
		depth++
		fn := scanSignature(s)
		if fn == nil || nested {
			continue
		}
		if allowRedeclaration {
			ft.Replace(fn)
			continue
		}
		if err := ft.Insert(fn); err != nil {
			diags = append(diags, redeclaration(FunctionAlreadyDeclared, err.(*RedeclarationError)))
		}
	}
	return diags
}

// scanSignature reads `function NAME ( [TYPE NAME {, TYPE NAME}] ) returns
// TYPE` starting at the FUNCTION token. It returns nil when no name follows.
func scanSignature(s *tokenStream) *FunctionSymbol {
	line := s.advance().Line // function
	if s.current().Type != IDENT {
		return nil
	}
	fn := &FunctionSymbol{Name: s.advance().Literal, Line: line, ReturnType: TypeInvalid}

	if s.current().Type != LPAREN {
		return fn
	}
	s.advance()

	for !s.atEOF() && s.current().Type != RPAREN {
		param := Parameter{Type: TypeInvalid}
		if s.current().Type == TYPE {
			if typ, ok := ParseDataType(s.advance().Literal); ok && typ != TypeVoid {
				param.Type = typ
			}
		}
		if s.current().Type == IDENT {
			param.Name = s.advance().Literal
		}
		fn.Params = append(fn.Params, param)

		if s.current().Type == COMMA {
			s.advance()
			continue
		}
		if s.current().Type != RPAREN {
			// Give up on the parameter list; the parser reports the fault.
			return fn
		}
	}
	if s.current().Type != RPAREN {
		return fn
	}
	s.advance()

	if s.current().Type != RETURNS {
		return fn
	}
	s.advance()
	if s.current().Type == TYPE {
		if typ, ok := ParseDataType(s.current().Literal); ok {
			fn.ReturnType = typ
		}
		s.advance()
	}
	return fn
}

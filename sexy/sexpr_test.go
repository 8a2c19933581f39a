package sexy

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseAssertionForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		typ      NodeType
		expected string
	}{
		{"empty diagnostics", "(diagnostics)", NodeList, "(diagnostics)"},
		{"diagnostic entries", "(diagnostics (1 type-mismatch) (12 variable-not-declared))", NodeList, "(diagnostics (1 type-mismatch) (12 variable-not-declared))"},
		{"plain tree", `(program (print (number "1")))`, NodeList, `(program (print (number "1")))`},
		{"typed tree", `(compare Number (expr Number ...) "<=" (number Number "3"))`, NodeList, `(compare Number (expr Number ...) "<=" (number Number "3"))`},
		{"layout ignored", "(program\n\t(print  (var \"x\"))\n)", NodeList, `(program (print (var "x")))`},
		{"comment", "; tree for x\n(var \"x\") ; trailing", NodeList, `(var "x")`},
		{"bare kind", "unexpected-end-of-file", NodeSymbol, "unexpected-end-of-file"},
		{"line number", "42", NodeInteger, "42"},
		{"negative integer", "-7", NodeInteger, "-7"},
		{"ellipsis", "...", NodeEllipsis, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse(tt.input)
			be.Err(t, err, nil)
			be.Equal(t, node.Type, tt.typ)
			be.Equal(t, node.String(), tt.expected)
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	node, err := Parse(`(string "say \"hi\" \\ done")`)
	be.Err(t, err, nil)

	s := node.Items[1]
	be.Equal(t, s.Type, NodeString)
	be.Equal(t, s.Text, `say "hi" \ done`)
	be.Equal(t, s.String(), `"say \"hi\" \\ done"`)
}

func TestParseRejectsMalformedAssertions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`(print "open`, "unterminated string"},
		{`"\q"`, `invalid escape sequence: \q`},
		{"(diagnostics (1 type-mismatch)", "expected ')' but got EOF"},
		{")", "unexpected token: ')'"},
		{"(program) (program)", "expected EOF but got '('"},
		{"(a . b)", "unexpected character '.'"},
	}

	for _, tt := range tests {
		node, err := Parse(tt.input)
		if err == nil {
			t.Fatalf("Input: %q: expected error %q", tt.input, tt.expected)
		}
		be.Equal(t, err.Error(), tt.expected)
		be.True(t, node == nil)
	}
}

func TestNodeHead(t *testing.T) {
	tree := NewList(NewSymbol("declare"), NewSymbol("Number"), NewString("x"))
	be.True(t, !tree.IsAtom())
	be.Equal(t, tree.Head(), "declare")
	be.Equal(t, tree.String(), `(declare Number "x")`)

	be.True(t, NewInteger("3").IsAtom())
	be.True(t, NewEllipsis().IsAtom())
	be.Equal(t, NewList().Head(), "")
	be.Equal(t, NewList(NewString("x")).Head(), "")
	be.Equal(t, NewSymbol("x").Head(), "")
}

package sprout

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestAggregate(t *testing.T) {
	id := func(d DataType) DataType { return d }

	tests := []struct {
		children []DataType
		expected DataType
	}{
		{nil, TypeUnknown},
		{[]DataType{TypeNumber}, TypeNumber},
		{[]DataType{TypeString, TypeString, TypeString}, TypeString},
		{[]DataType{TypeNumber, TypeString}, TypeInvalid},
		{[]DataType{TypeNumber, TypeNumber, TypeBoolean}, TypeInvalid},
		{[]DataType{TypeUnknown, TypeUnknown}, TypeUnknown},
		{[]DataType{TypeUnknown, TypeNumber}, TypeInvalid},
		{[]DataType{TypeInvalid}, TypeInvalid},
	}

	for _, test := range tests {
		be.Equal(t, aggregate(test.children, id), test.expected)
	}
}

func TestResolveLeaves(t *testing.T) {
	st := NewSymbolTable()
	st.Declare("flag", TypeBoolean, 1)
	ft := NewFunctionTable()
	ft.Insert(&FunctionSymbol{Name: "now", ReturnType: TypeNumber, Line: 1})

	tests := []struct {
		input    string
		expected DataType
	}{
		{"3", TypeNumber},
		{`"s"`, TypeString},
		{"false", TypeBoolean},
		{"flag", TypeBoolean},
		{"ghost", TypeUnknown},
		{"now()", TypeNumber},
		{"later()", TypeUnknown},
		{"-3", TypeNumber},
		{"-flag", TypeBoolean},
	}

	for _, test := range tests {
		l := parseExpr(t, test.input, st)
		be.Equal(t, ResolveLogical(l, ft), test.expected)
	}
}

func TestResolveEveryLevel(t *testing.T) {
	l := parseExpr(t, "1 * 2 + 3 == 4", nil)
	ResolveLogical(l, NewFunctionTable())

	c := l.Children[0]
	e := c.Children[0]
	term := e.Children[0]
	be.Equal(t, term.Children[0].Type, TypeNumber)
	be.Equal(t, term.Type, TypeNumber)
	be.Equal(t, e.Type, TypeNumber)
	be.Equal(t, c.Type, TypeNumber)
	be.Equal(t, l.Type, TypeNumber)
	be.True(t, l.IsValid)
}

func TestResolveCallArguments(t *testing.T) {
	l := parseExpr(t, `f(1 + "a", true)`, nil)
	ResolveLogical(l, NewFunctionTable())

	call := l.Children[0].Children[0].Children[0].Children[0].Value
	be.Equal(t, call.Type, TypeUnknown)
	be.Equal(t, call.Args[0].Type, TypeInvalid)
	be.True(t, !call.Args[0].IsValid)
	be.Equal(t, call.Args[1].Type, TypeBoolean)
}

func TestResolveIsValid(t *testing.T) {
	tests := []struct {
		input   string
		typ     DataType
		isValid bool
	}{
		{"true && false", TypeBoolean, true},
		{`1 == "a"`, TypeInvalid, false},
		{`true || 1 + "a"`, TypeInvalid, false},
		// Each comparison resolves on its own; only the Logical disagrees.
		{"true && 1", TypeInvalid, true},
	}

	for _, test := range tests {
		l := parseExpr(t, test.input, nil)
		ResolveLogical(l, NewFunctionTable())
		be.Equal(t, l.Type, test.typ)
		be.Equal(t, l.IsValid, test.isValid)
	}
}

func TestResolveProgramBodies(t *testing.T) {
	source := `function f(String s) returns String :
  if true then
    while false do
      print s + "!"
    endWhile
  else
    print 1
  endIf
  return s
endFunction
f("x")`

	program := parseProgram(t, source)
	ft := NewFunctionTable()
	Prepass(Tokenize([]byte(source)), ft, false)
	Resolve(program, ft)

	fn := program.Statements[0]
	loop := fn.Body[0].Body[0]
	be.Equal(t, loop.Value.Type, TypeBoolean)
	be.Equal(t, loop.Body[0].Value.Type, TypeString)
	be.Equal(t, fn.Body[0].Else[0].Value.Type, TypeNumber)
	be.Equal(t, fn.Body[1].Value.Type, TypeString)
	be.Equal(t, program.Statements[1].Call.Type, TypeString)
}

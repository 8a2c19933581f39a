package sprout

import (
	"testing"

	"github.com/nalgeon/be"
)

func validateExpr(t *testing.T, input string) *Diagnostic {
	t.Helper()
	l := parseExpr(t, input, nil)
	ResolveLogical(l, NewFunctionTable())
	return ValidateLogical(l)
}

func TestValidatorAcceptsLegalOperands(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3 - 4 / 5",
		"-1",
		"+2",
		"1 < 2",
		"1 <= 2",
		"3 > 2",
		"3 >= 2",
		"1 == 2",
		`"a" == "b"`,
		`"a" != "b"`,
		"true == false",
		"true && false || true",
		"!true",
		"!false && !true",
		`"a"`,
		`f("a" == "a")`,
	}

	for _, input := range inputs {
		if d := validateExpr(t, input); d != nil {
			t.Errorf("Input: %q\nunexpected diagnostic: %v", input, d)
		}
	}
}

func TestValidatorRejectsIllegalOperands(t *testing.T) {
	tests := []struct {
		input string
		kind  DiagnosticKind
		found string
	}{
		{`"a" + "b"`, InvalidArithmeticOperands, "String"},
		{`"a" * "b"`, InvalidArithmeticOperands, "String"},
		{"true - false", InvalidArithmeticOperands, "Boolean"},
		{"true / true", InvalidArithmeticOperands, "Boolean"},
		{`"a" < "b"`, InvalidComparisonOperands, "String"},
		{"true >= false", InvalidComparisonOperands, "Boolean"},
		{"1 && 2", InvalidLogicalOperands, "Number"},
		{`"a" || "b"`, InvalidLogicalOperands, "String"},
		{"true && 1", InvalidLogicalOperands, "Number"},
		{"!1", InvalidUnaryOperand, "Number"},
		{`!"a"`, InvalidUnaryOperand, "String"},
		{"-true", InvalidUnaryOperand, "Boolean"},
		{`+"a"`, InvalidUnaryOperand, "String"},
		{`f("a" + "b")`, InvalidArithmeticOperands, "String"},
	}

	for _, test := range tests {
		d := validateExpr(t, test.input)
		if d == nil {
			t.Errorf("Input: %q: expected %s", test.input, test.kind)
			continue
		}
		be.Equal(t, d.Kind, test.kind)
		be.Equal(t, d.Found, test.found)
	}
}

func TestValidatorLeavesMixedTypesToChecker(t *testing.T) {
	// Mixed operands resolve to Invalid and Unknown names carry no type;
	// neither is judged here.
	inputs := []string{
		`1 + "a"`,
		`1 < "a"`,
		`x + "a"`,
		"-x",
		"!x",
		"x && y",
	}

	for _, input := range inputs {
		be.True(t, validateExpr(t, input) == nil)
	}
}

func TestValidatorMessage(t *testing.T) {
	d := validateExpr(t, `"a" - "b"`)
	be.Equal(t, d.Message, "operator '-' cannot be applied to String")
	be.Equal(t, d.Line, 1)
}

func TestValidatorFirstViolationPerStatement(t *testing.T) {
	source := `print "a" - "b" == "c" - "d"
print true * false
if 1 && 2 then
  print "x" < "y"
endIf`

	program := parseProgram(t, source)
	Resolve(program, NewFunctionTable())
	diags := Validate(program)

	be.Equal(t, kinds(diags), []string{
		"invalid-arithmetic-operands",
		"invalid-arithmetic-operands",
		"invalid-logical-operands",
		"invalid-comparison-operands",
	})
	be.Equal(t, diags[0].Line, 1)
	be.Equal(t, diags[1].Line, 2)
	be.Equal(t, diags[2].Line, 3)
	be.Equal(t, diags[3].Line, 4)
}

func TestValidatorCallStatement(t *testing.T) {
	program := parseProgram(t, `log(true + true)`)
	Resolve(program, NewFunctionTable())
	diags := Validate(program)

	be.Equal(t, len(diags), 1)
	be.Equal(t, diags[0].Kind, InvalidArithmeticOperands)
}

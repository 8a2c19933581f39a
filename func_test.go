package sprout

import (
	"testing"

	"github.com/nalgeon/be"
)

// Test function declaration parsing
func TestFunctionDeclarationParsing(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "Void function no parameters",
			source:   "function test() returns Void :\nendFunction",
			expected: `(program (function "test" () Void (body)))`,
		},
		{
			name:     "function with Number return type",
			source:   "function answer() returns Number :\n  return 42\nendFunction",
			expected: `(program (function "answer" () Number (body (return (number "42")))))`,
		},
		{
			name:     "function with parameters",
			source:   "function greet(String who, Boolean loud) returns String :\n  return who\nendFunction",
			expected: `(program (function "greet" ((String "who") (Boolean "loud")) String (body (return (var "who")))))`,
		},
		{
			name:     "function with control flow",
			source:   "function abs(Number n) returns Number :\n  if n < 0 then\n    return -n\n  endIf\n  return n\nendFunction",
			expected: `(program (function "abs" ((Number "n")) Number (body (if (compare (var "n") "<" (number "0")) (then (return (neg (var "n"))))) (return (var "n")))))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := parseProgram(t, tt.source)
			be.Equal(t, ToSExpr(program), tt.expected)
		})
	}
}

// Calls may precede the declaration they refer to.
func TestCallBeforeDeclaration(t *testing.T) {
	source := `Number r : add(1, 2)
function add(Number a, Number b) returns Number :
  return a + b
endFunction`

	res := check(source)
	be.True(t, res.OK())
	be.Equal(t, res.Program.Statements[0].Value.Type, TypeNumber)
}

func TestFunctionParametersBound(t *testing.T) {
	source := `function twice(Number n) returns Number :
  return n * 2
endFunction`

	res := check(source)
	be.True(t, res.OK())

	fn := res.Program.Statements[0]
	ret := fn.Body[0]
	n := ret.Value.Children[0].Children[0].Children[0].Children[0].Value
	be.Equal(t, n.Symbol.Name, "n")
	be.Equal(t, n.Type, TypeNumber)
	be.Equal(t, ret.Value.Type, TypeNumber)
}

func TestProperlyReturns(t *testing.T) {
	source := `function good() returns Number :
  return 1
endFunction
function bad() returns Number :
  Number x : 1
endFunction
function empty() returns String :
endFunction
function nothing() returns Void :
endFunction`

	res := check(source)
	be.Equal(t, kinds(res.Diagnostics), []string{"return-missing", "return-missing"})
	be.Equal(t, res.Diagnostics[0].Name, "bad")
	be.Equal(t, res.Diagnostics[1].Name, "empty")

	be.True(t, res.Functions.Lookup("good").ProperlyReturns)
	be.True(t, !res.Functions.Lookup("bad").ProperlyReturns)
	be.True(t, !res.Functions.Lookup("empty").ProperlyReturns)
	be.True(t, res.Functions.Lookup("nothing").ProperlyReturns)
}

func TestReturnMustBeLastStatement(t *testing.T) {
	// A return nested in an if does not end the body.
	source := `function f(Boolean b) returns Number :
  if b then
    return 1
  endIf
endFunction`

	res := check(source)
	be.Equal(t, kinds(res.Diagnostics), []string{"return-missing"})
	be.Equal(t, res.Diagnostics[0].Line, 1)
}

func TestVoidFunctionCallStatement(t *testing.T) {
	source := `function log(String msg) returns Void :
  print msg
endFunction
log("hello")`

	res := check(source)
	be.True(t, res.OK())
	stmt := res.Program.Statements[1]
	be.Equal(t, stmt.Kind, StmtCall)
	be.Equal(t, stmt.Call.Type, TypeVoid)
}

func TestNestedFunctionCalls(t *testing.T) {
	source := `function inc(Number n) returns Number :
  return n + 1
endFunction
Number x : inc(inc(inc(0)))
print inc(x) * 2`

	res := check(source)
	be.True(t, res.OK())
	be.Equal(t, ToTypedSExpr(res.Program), `(program `+
		`(function "inc" ((Number "n")) Number (body (return (expr Number (var Number "n") "+" (number Number "1"))))) `+
		`(declare Number "x" (call Number "inc" (call Number "inc" (call Number "inc" (number Number "0"))))) `+
		`(print (term Number (call Number "inc" (var Number "x")) "*" (number Number "2"))))`)
}

func TestRecursiveFunction(t *testing.T) {
	source := `function fact(Number n) returns Number :
  if n <= 1 then
    return 1
  endIf
  return n * fact(n - 1)
endFunction
print fact(5)`

	res := check(source)
	be.True(t, res.OK())
}

func TestFunctionRedeclaration(t *testing.T) {
	source := `function f() returns Number :
  return 1
endFunction
function f() returns String :
  return "one"
endFunction
Number n : f()`

	t.Run("rejected by default", func(t *testing.T) {
		res := AnalyzeSource([]byte(source), DefaultOptions())
		be.Equal(t, kinds(res.Diagnostics), []string{"function-already-declared"})

		d := res.Diagnostics[0]
		be.Equal(t, d.FirstLine, 1)
		be.Equal(t, d.RedeclaredLine, 4)
		be.Equal(t, res.Functions.Lookup("f").ReturnType, TypeNumber)
	})

	t.Run("last declaration wins", func(t *testing.T) {
		opts := DefaultOptions()
		opts.AllowFunctionRedeclaration = true
		res := AnalyzeSource([]byte(source), opts)
		be.Equal(t, kinds(res.Diagnostics), []string{"type-mismatch"})
		be.Equal(t, res.Diagnostics[0].Line, 7)
		be.Equal(t, res.Functions.Lookup("f").ReturnType, TypeString)
		be.True(t, res.Functions.Lookup("f").ProperlyReturns)
	})
}

func TestNestedFunctionIsNotCallable(t *testing.T) {
	source := `if true then
  function g() returns Void :
  endFunction
endIf
g()`

	res := check(source)
	be.Equal(t, kinds(res.Diagnostics), []string{"unexpected-token", "function-not-declared"})
	be.Equal(t, res.Diagnostics[1].Line, 5)
	be.True(t, res.Functions.Lookup("g") == nil)
}

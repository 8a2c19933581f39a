package sprout

import (
	"fmt"
	"sort"
	"strings"
)

// DiagnosticKind identifies one entry of the diagnostic catalog.
type DiagnosticKind struct {
	Code string
	Name string
}

func (k DiagnosticKind) String() string {
	return k.Code + " " + k.Name
}

// =============================================================================
// PARSE ERRORS (E1xxx)
// =============================================================================
var (
	UnexpectedToken     = DiagnosticKind{"E1001", "unexpected-token"}
	UnexpectedEndOfFile = DiagnosticKind{"E1002", "unexpected-end-of-file"}
)

// =============================================================================
// DECLARATION ERRORS (E2xxx) - reported by the prepass
// =============================================================================
var (
	FunctionAlreadyDeclared = DiagnosticKind{"E2001", "function-already-declared"}
)

// =============================================================================
// OPERATOR ERRORS (E3xxx) - reported by the validator
// =============================================================================
var (
	InvalidArithmeticOperands = DiagnosticKind{"E3001", "invalid-arithmetic-operands"}
	InvalidComparisonOperands = DiagnosticKind{"E3002", "invalid-comparison-operands"}
	InvalidLogicalOperands    = DiagnosticKind{"E3003", "invalid-logical-operands"}
	InvalidUnaryOperand       = DiagnosticKind{"E3004", "invalid-unary-operand"}
)

// =============================================================================
// TYPE AND SCOPE ERRORS (E4xxx) - reported by the type checker
// =============================================================================
var (
	TypeMismatch            = DiagnosticKind{"E4001", "type-mismatch"}
	VariableAlreadyDeclared = DiagnosticKind{"E4002", "variable-already-declared"}
	VariableNotDeclared     = DiagnosticKind{"E4003", "variable-not-declared"}
	FunctionNotDeclared     = DiagnosticKind{"E4004", "function-not-declared"}
	IncorrectParameters     = DiagnosticKind{"E4005", "incorrect-parameters"}
	ReturnMissing           = DiagnosticKind{"E4006", "return-missing"}
	ReturnOutsideFunction   = DiagnosticKind{"E4007", "return-outside-function"}
	TypeConflict            = DiagnosticKind{"E4008", "type-conflict"}
)

// Diagnostic is one reported fault. Only the fields relevant to Kind are set.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Message string

	Name     string // variable or function involved
	Expected string // expected token or type
	Found    string // found token or type

	FirstLine      int // redeclarations
	RedeclaredLine int

	ExpectedCount int // IncorrectParameters
	ProvidedCount int
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("line %d: %s: %s", d.Line, d.Kind.Name, d.Message)
}

func newDiagnostic(kind DiagnosticKind, line int, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

func redeclaration(kind DiagnosticKind, err *RedeclarationError) *Diagnostic {
	what := "variable"
	if kind == FunctionAlreadyDeclared {
		what = "function"
	}
	d := newDiagnostic(kind, err.RedeclaredLine, "%s '%s' already declared on line %d", what, err.Name, err.FirstLine)
	d.Name = err.Name
	d.FirstLine = err.FirstLine
	d.RedeclaredLine = err.RedeclaredLine
	return d
}

func typeMismatch(line int, expected, found DataType, context string) *Diagnostic {
	d := newDiagnostic(TypeMismatch, line, "%s: expected %s but found %s", context, expected, found)
	d.Expected = expected.String()
	d.Found = found.String()
	return d
}

// Diagnostics is an ordered list of diagnostics from one run.
type Diagnostics []*Diagnostic

// HasErrors reports whether the list is non-empty.
func (ds Diagnostics) HasErrors() bool {
	return len(ds) > 0
}

// String renders one diagnostic per line.
func (ds Diagnostics) String() string {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Error())
	}
	return b.String()
}

// Sorted returns a copy ordered by line; diagnostics on the same line keep
// their phase order.
func (ds Diagnostics) Sorted() Diagnostics {
	sorted := make(Diagnostics, len(ds))
	copy(sorted, ds)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Line < sorted[j].Line
	})
	return sorted
}

// OfKind returns the diagnostics whose kind is kind.
func (ds Diagnostics) OfKind(kind DiagnosticKind) Diagnostics {
	var result Diagnostics
	for _, d := range ds {
		if d.Kind == kind {
			result = append(result, d)
		}
	}
	return result
}

package sprout

// DataType is the closed set of Sprout types. The zero value is TypeUnknown,
// so every freshly built node starts out unresolved.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeNumber
	TypeString
	TypeBoolean
	TypeVoid
	TypeInvalid
)

func (t DataType) String() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeBoolean:
		return "Boolean"
	case TypeVoid:
		return "Void"
	case TypeInvalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// ParseDataType maps a type keyword to its DataType.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "Number":
		return TypeNumber, true
	case "String":
		return TypeString, true
	case "Boolean":
		return TypeBoolean, true
	case "Void":
		return TypeVoid, true
	default:
		return TypeInvalid, false
	}
}

// isConcrete reports whether t is an accepted final type rather than a
// sentinel.
func (t DataType) isConcrete() bool {
	return t != TypeUnknown && t != TypeInvalid
}

// Operator is the spelling of a binary or prefix operator.
type Operator string

const (
	OpNone      Operator = ""
	OpAdd       Operator = "+"
	OpSub       Operator = "-"
	OpMul       Operator = "*"
	OpDiv       Operator = "/"
	OpEq        Operator = "=="
	OpNotEq     Operator = "!="
	OpLess      Operator = "<"
	OpLessEq    Operator = "<="
	OpGreater   Operator = ">"
	OpGreaterEq Operator = ">="
	OpAnd       Operator = "&&"
	OpOr        Operator = "||"
	OpNot       Operator = "!"
)

// isOrdering reports whether op compares magnitudes (Number only).
func (op Operator) isOrdering() bool {
	switch op {
	case OpLess, OpLessEq, OpGreater, OpGreaterEq:
		return true
	}
	return false
}

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueInvalid ValueKind = iota
	ValueNumber
	ValueString
	ValueBoolean
	ValueVariable
	ValueCall
)

// Value is the leaf of the expression grammar: a literal, a variable
// reference or a function call.
type Value struct {
	Kind ValueKind
	Text string
	Type DataType
	Line int
	// ValueCall only. Each argument is a full expression tree.
	Args []*Logical
	// ValueVariable only: the declaration visible where the reference was
	// parsed, nil if there was none.
	Symbol *VariableSymbol
}

// Unary is an optional sign applied to a Value.
type Unary struct {
	Op    Operator // OpNone, OpAdd or OpSub
	Value *Value
	Type  DataType
}

// Term is Unary ( ('*'|'/') Unary )*.
type Term struct {
	Children []*Unary
	Ops      []Operator
	Type     DataType
}

// Expression is Term ( ('+'|'-') Term )*.
type Expression struct {
	Children []*Term
	Ops      []Operator
	Type     DataType
}

// Comparison is Expression ( CompOp Expression )*.
type Comparison struct {
	Children []*Expression
	Ops      []Operator
	Type     DataType
}

// Logical is ['!'] Comparison ( LogicalOp ['!'] Comparison )*, the root of
// every expression tree. Negated[i] records a '!' before Children[i].
type Logical struct {
	Children []*Comparison
	Negated  []bool
	Ops      []Operator
	Type     DataType
	IsValid  bool
}

// StatementKind tags the variant held by a Statement.
type StatementKind int

const (
	StmtVariableDeclaration StatementKind = iota
	StmtVariableAssignment
	StmtFunctionDeclaration
	StmtReturn
	StmtPrint
	StmtIf
	StmtWhile
	StmtCall
)

func (k StatementKind) String() string {
	switch k {
	case StmtVariableDeclaration:
		return "VariableDeclaration"
	case StmtVariableAssignment:
		return "VariableAssignment"
	case StmtFunctionDeclaration:
		return "FunctionDeclaration"
	case StmtReturn:
		return "Return"
	case StmtPrint:
		return "Print"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtCall:
		return "Call"
	default:
		return "Unknown"
	}
}

// Statement is a node of the statement tree. Which fields are meaningful
// depends on Kind:
//
//	VariableDeclaration  Name, DeclaredType, Value
//	VariableAssignment   Name, Value
//	FunctionDeclaration  Name, Params, DeclaredType (return type), Body
//	Return               Value (nil for a bare return)
//	Print                Value
//	If                   Value (condition), Body, Else, HasElse
//	While                Value (condition), Body
//	Call                 Call
type Statement struct {
	Kind         StatementKind
	Line         int
	Name         string
	DeclaredType DataType
	Value        *Logical
	Params       []Parameter
	Body         []*Statement
	Else         []*Statement
	HasElse      bool
	Call         *Value
}

// line reports the source line of an expression's first leaf.
func (l *Logical) line() int    { return l.Children[0].line() }
func (c *Comparison) line() int { return c.Children[0].line() }
func (e *Expression) line() int { return e.Children[0].line() }
func (t *Term) line() int       { return t.Children[0].Value.Line }

// Program is the root of a parsed compilation unit.
type Program struct {
	Statements []*Statement
}

// newLogicalFromValue wraps a single Value into a full expression tree.
func newLogicalFromValue(v *Value) *Logical {
	return &Logical{
		Children: []*Comparison{{
			Children: []*Expression{{
				Children: []*Term{{
					Children: []*Unary{{Value: v}},
				}},
			}},
		}},
		Negated: []bool{false},
		IsValid: true,
	}
}

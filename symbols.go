package sprout

import (
	"errors"
	"fmt"
)

// ErrGlobalScopePop is returned when Pop would remove the Global scope.
var ErrGlobalScopePop = errors.New("cannot pop the global scope")

// VariableSymbol represents a declared variable.
type VariableSymbol struct {
	Name string
	Type DataType
	Line int
}

// Parameter is one typed function parameter.
type Parameter struct {
	Name string
	Type DataType
}

// FunctionSymbol is a function signature registered by the prepass.
type FunctionSymbol struct {
	Name       string
	Params     []Parameter
	ReturnType DataType
	Line       int
	// ProperlyReturns is set by the type checker once it has seen the body.
	ProperlyReturns bool
}

// RedeclarationError reports a name declared twice in the same namespace.
type RedeclarationError struct {
	Name           string
	FirstLine      int
	RedeclaredLine int
}

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("'%s' already declared on line %d (redeclared on line %d)", e.Name, e.FirstLine, e.RedeclaredLine)
}

// ScopeKind distinguishes the three kinds of scope.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeFunction
	ScopeBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	default:
		return "block"
	}
}

// Scope is one level of variable visibility.
type Scope struct {
	Kind ScopeKind
	Name string // function name for ScopeFunction
	vars map[string]*VariableSymbol
}

func newScope(kind ScopeKind, name string) *Scope {
	return &Scope{Kind: kind, Name: name, vars: make(map[string]*VariableSymbol)}
}

// Get looks up name in this scope only.
func (s *Scope) Get(name string) *VariableSymbol {
	return s.vars[name]
}

// Len returns the number of variables declared in this scope.
func (s *Scope) Len() int {
	return len(s.vars)
}

// SymbolTable is a stack of scopes. Index 0 is the Global scope and is never
// popped.
type SymbolTable struct {
	scopes []*Scope
}

// NewSymbolTable creates a symbol table holding only the Global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []*Scope{newScope(ScopeGlobal, "")}}
}

// Declare adds a variable to the innermost scope. It fails with a
// *RedeclarationError only when the innermost scope already holds name;
// shadowing an outer scope is allowed.
func (st *SymbolTable) Declare(name string, typ DataType, line int) (*VariableSymbol, error) {
	scope := st.Current()
	if existing, ok := scope.vars[name]; ok {
		return existing, &RedeclarationError{Name: name, FirstLine: existing.Line, RedeclaredLine: line}
	}
	sym := &VariableSymbol{Name: name, Type: typ, Line: line}
	scope.vars[name] = sym
	return sym, nil
}

// Lookup searches from the innermost scope outwards. It returns nil when the
// name is not visible.
func (st *SymbolTable) Lookup(name string) *VariableSymbol {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym, ok := st.scopes[i].vars[name]; ok {
			return sym
		}
	}
	return nil
}

// PushFunction enters the body scope of the named function.
func (st *SymbolTable) PushFunction(name string) *Scope {
	scope := newScope(ScopeFunction, name)
	st.scopes = append(st.scopes, scope)
	return scope
}

// PushBlock enters an if/while body scope.
func (st *SymbolTable) PushBlock() *Scope {
	scope := newScope(ScopeBlock, "")
	st.scopes = append(st.scopes, scope)
	return scope
}

// Pop leaves the innermost scope.
func (st *SymbolTable) Pop() error {
	if len(st.scopes) == 1 {
		return ErrGlobalScopePop
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Current returns the innermost scope.
func (st *SymbolTable) Current() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// Global returns the outermost scope.
func (st *SymbolTable) Global() *Scope {
	return st.scopes[0]
}

// Depth returns the number of scopes on the stack (at least 1).
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// EnclosingFunction returns the name of the innermost function scope, or
// false at top level.
func (st *SymbolTable) EnclosingFunction() (string, bool) {
	for i := len(st.scopes) - 1; i > 0; i-- {
		if st.scopes[i].Kind == ScopeFunction {
			return st.scopes[i].Name, true
		}
	}
	return "", false
}

// FunctionTable is the flat, global registry of function signatures.
type FunctionTable struct {
	functions map[string]*FunctionSymbol
	order     []string
}

// NewFunctionTable creates an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{functions: make(map[string]*FunctionSymbol)}
}

// Insert registers fn. A name that is already present is left untouched and
// a *RedeclarationError is returned.
func (ft *FunctionTable) Insert(fn *FunctionSymbol) error {
	if existing, ok := ft.functions[fn.Name]; ok {
		return &RedeclarationError{Name: fn.Name, FirstLine: existing.Line, RedeclaredLine: fn.Line}
	}
	ft.functions[fn.Name] = fn
	ft.order = append(ft.order, fn.Name)
	return nil
}

// Replace registers fn, overwriting any previous signature with that name.
func (ft *FunctionTable) Replace(fn *FunctionSymbol) {
	if _, ok := ft.functions[fn.Name]; !ok {
		ft.order = append(ft.order, fn.Name)
	}
	ft.functions[fn.Name] = fn
}

// Lookup returns the signature registered under name, or nil.
func (ft *FunctionTable) Lookup(name string) *FunctionSymbol {
	return ft.functions[name]
}

// Functions returns the registered signatures in first-declaration order.
func (ft *FunctionTable) Functions() []*FunctionSymbol {
	result := make([]*FunctionSymbol, 0, len(ft.order))
	for _, name := range ft.order {
		result = append(result, ft.functions[name])
	}
	return result
}

// Len returns the number of registered functions.
func (ft *FunctionTable) Len() int {
	return len(ft.functions)
}

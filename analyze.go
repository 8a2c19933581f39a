package sprout

import "log/slog"

// Options selects the analysis policies.
type Options struct {
	// BlockScopes gives if/while bodies their own scope. When false,
	// declarations inside them land in the enclosing scope.
	BlockScopes bool
	// AllowFunctionRedeclaration lets a later function declaration replace an
	// earlier one with the same name instead of being reported.
	AllowFunctionRedeclaration bool
	Logger                     *slog.Logger
}

// DefaultOptions returns block scopes on, function redeclaration rejected
// and logging discarded.
func DefaultOptions() Options {
	return Options{BlockScopes: true}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Result is the outcome of analyzing one compilation unit.
type Result struct {
	Program   *Program
	Functions *FunctionTable
	// Symbols holds the variables the type checker accepted at top level.
	Symbols     *SymbolTable
	Diagnostics Diagnostics
}

// OK reports whether the unit is free of diagnostics.
func (r *Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// AnalyzeSource tokenizes src and analyzes it.
func AnalyzeSource(src []byte, opts Options) *Result {
	return Analyze(Tokenize(src), opts)
}

// Analyze runs prepass, parser, resolver, validator and type checker over
// tokens, each to completion before the next. Diagnostics are ordered by
// phase.
func Analyze(tokens []Token, opts Options) *Result {
	log := opts.logger()
	res := &Result{Functions: NewFunctionTable()}

	diags := Prepass(tokens, res.Functions, opts.AllowFunctionRedeclaration)
	log.Debug("prepass done", "functions", res.Functions.Len(), "diagnostics", len(diags))
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Program, diags = Parse(tokens, NewSymbolTable(), opts.BlockScopes)
	log.Debug("parse done", "statements", len(res.Program.Statements), "diagnostics", len(diags))
	res.Diagnostics = append(res.Diagnostics, diags...)

	Resolve(res.Program, res.Functions)
	log.Debug("resolve done")

	diags = Validate(res.Program)
	log.Debug("validate done", "diagnostics", len(diags))
	res.Diagnostics = append(res.Diagnostics, diags...)

	res.Symbols = NewSymbolTable()
	diags = Check(res.Program, res.Symbols, res.Functions, opts.BlockScopes)
	log.Debug("check done", "diagnostics", len(diags))
	res.Diagnostics = append(res.Diagnostics, diags...)

	return res
}

package sema

import (
	"fmt"

	"vega/internal/ast"
	"vega/internal/diag"
	"vega/internal/source"
	"vega/internal/symbols"
	"vega/internal/types"
)

// Config is the analyzer configuration consumed at creation time.
// TestMode relaxes the strict-mode annotation requirements but keeps
// warnings enabled so tests still exercise warning paths.
type Config struct {
	StrictMode     bool
	AllowUnsafe    bool
	CheckOwnership bool
	ValidateFFI    bool
	EnableWarnings bool
	TestMode       bool
	MaxErrors      int
}

// DefaultConfig mirrors the compiler driver's defaults.
func DefaultConfig() Config {
	return Config{
		StrictMode:     true,
		AllowUnsafe:    false,
		CheckOwnership: true,
		ValidateFFI:    true,
		EnableWarnings: true,
		MaxErrors:      diag.DefaultMax,
	}
}

// fnContext tracks the function whose body is being analyzed.
type fnContext struct {
	name             string
	returnType       types.TypeID
	nonDeterministic bool
	sawReturn        bool
}

// Analyzer is the semantic-analysis context for one compilation unit.
// A single analysis walk is single-threaded; thread safety of the symbol
// tables and statistics exists for drivers running several analyzers in
// parallel against shared read-mostly state.
type Analyzer struct {
	cfg      Config
	types    *types.Interner
	bag      *diag.Bag
	reporter diag.Reporter

	global  *symbols.Table
	current *symbols.Table
	aliases *symbols.AliasTable

	builtinTypes map[string]types.TypeID

	stats      Stats
	exprTypes  map[*ast.Expr]types.TypeID
	constState map[*symbols.Entry]uint8

	currentFn *fnContext
	loopDepth int
	inUnsafe  bool

	// expected-type context for literal inference; innermost last
	expected []types.TypeID
}

// Option tweaks analyzer construction.
type Option func(*Analyzer)

// WithAliases shares a module-alias table between analyzer instances.
// Sharing is explicit: without this option every analyzer owns its own.
func WithAliases(aliases *symbols.AliasTable) Option {
	return func(a *Analyzer) { a.aliases = aliases }
}

// WithInterner shares a type interner between analyzer instances.
func WithInterner(in *types.Interner) Option {
	return func(a *Analyzer) { a.types = in }
}

// New creates an analyzer with a fresh global scope holding the builtin
// types and predeclared functions.
func New(cfg Config, opts ...Option) *Analyzer {
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = diag.DefaultMax
	}
	a := &Analyzer{
		cfg:        cfg,
		bag:        diag.NewBag(cfg.MaxErrors),
		exprTypes:  make(map[*ast.Expr]types.TypeID),
		constState: make(map[*symbols.Entry]uint8),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.types == nil {
		a.types = types.NewInterner()
	}
	if a.aliases == nil {
		a.aliases = symbols.NewAliasTable()
	}
	a.reporter = diag.BagReporter{Bag: a.bag}
	a.global = symbols.NewTable(64, nil)
	a.current = a.global
	a.installBuiltins()
	return a
}

// Reset clears errors, statistics and scopes but keeps builtins, so the
// analyzer can be reused for an independent analysis.
func (a *Analyzer) Reset() {
	a.bag = diag.NewBag(a.cfg.MaxErrors)
	a.reporter = diag.BagReporter{Bag: a.bag}
	a.stats.Reset()
	a.exprTypes = make(map[*ast.Expr]types.TypeID)
	a.constState = make(map[*symbols.Entry]uint8)
	a.currentFn = nil
	a.loopDepth = 0
	a.inUnsafe = false
	a.expected = a.expected[:0]
	a.global = symbols.NewTable(64, nil)
	a.current = a.global
	a.aliases.Clear()
	a.installBuiltins()
}

// Types exposes the interner for consumers (codegen, tests).
func (a *Analyzer) Types() *types.Interner { return a.types }

// Diagnostics exposes the accumulated bag.
func (a *Analyzer) Diagnostics() *diag.Bag { return a.bag }

// Stats exposes the telemetry counters.
func (a *Analyzer) Stats() *Stats { return &a.stats }

// GlobalScope exposes the root table: codegen reads symbol types from it.
func (a *Analyzer) GlobalScope() *symbols.Table { return a.global }

// Aliases exposes the module-alias table.
func (a *Analyzer) Aliases() *symbols.AliasTable { return a.aliases }

// ErrorCount is accurate even past the diagnostic retention cap.
func (a *Analyzer) ErrorCount() int { return a.bag.ErrorCount() }

// SetExpressionType attaches a resolved type to an expression node,
// keyed by node identity; the AST itself is not rewritten.
func (a *Analyzer) SetExpressionType(expr *ast.Expr, id types.TypeID) {
	if expr == nil {
		return
	}
	a.exprTypes[expr] = id
	a.stats.TypesChecked.Add(1)
}

// ExpressionType retrieves the type attached to an expression node.
func (a *Analyzer) ExpressionType(expr *ast.Expr) types.TypeID {
	if expr == nil {
		return types.NoTypeID
	}
	return a.exprTypes[expr]
}

// report emits an error diagnostic and bumps the counters.
func (a *Analyzer) report(code diag.Code, span source.Span, format string, args ...any) {
	a.errorAt(code, span, format, args...).Emit()
}

// errorAt starts an error report; call sites chain notes and fixes onto
// the builder and finish with Emit.
func (a *Analyzer) errorAt(code diag.Code, span source.Span, format string, args ...any) *diag.ReportBuilder {
	a.stats.ErrorsFound.Add(1)
	return diag.ReportError(a.reporter, code, span, fmt.Sprintf(format, args...))
}

// warn emits a warning when warnings are enabled; warnings never fail
// the unit.
func (a *Analyzer) warn(code diag.Code, span source.Span, format string, args ...any) {
	a.warnAt(code, span, format, args...).Emit()
}

// warnAt is errorAt for warnings. With warnings disabled the builder is
// bound to a discarding reporter so call sites stay unconditional.
func (a *Analyzer) warnAt(code diag.Code, span source.Span, format string, args ...any) *diag.ReportBuilder {
	if !a.cfg.EnableWarnings {
		return diag.ReportWarning(diag.NopReporter{}, code, span, fmt.Sprintf(format, args...))
	}
	a.stats.WarningsIssued.Add(1)
	return diag.ReportWarning(a.reporter, code, span, fmt.Sprintf(format, args...))
}

// pushScope enters a child scope; popScope must be paired with it.
func (a *Analyzer) pushScope() {
	a.current = symbols.NewTable(8, a.current)
	a.stats.enterScope()
}

func (a *Analyzer) popScope() {
	if a.current.Parent == nil {
		return // never pop the global scope
	}
	a.current = a.current.Parent
	a.stats.leaveScope()
}

// resolve walks the scope chain and records the resolution in statistics.
func (a *Analyzer) resolve(name string) *symbols.Entry {
	e := a.current.Resolve(source.NormalizeIdent(name))
	if e != nil {
		a.stats.SymbolsResolved.Add(1)
	}
	return e
}

// declare binds a symbol in the current scope.
func (a *Analyzer) declare(name string, entry *symbols.Entry) bool {
	return a.current.Insert(source.NormalizeIdent(name), entry)
}

// withUnsafe runs body with the unsafe-context flag set, restoring the
// previous value even on early return. Nested unsafe blocks are idempotent.
func (a *Analyzer) withUnsafe(body func() bool) bool {
	prev := a.inUnsafe
	a.inUnsafe = true
	defer func() { a.inUnsafe = prev }()
	return body()
}

// pushExpected installs an expected-type context for literal inference.
func (a *Analyzer) pushExpected(id types.TypeID) {
	a.expected = append(a.expected, id)
}

func (a *Analyzer) popExpected() {
	if len(a.expected) > 0 {
		a.expected = a.expected[:len(a.expected)-1]
	}
}

// expectedType returns the innermost expected type, NoTypeID when absent.
func (a *Analyzer) expectedType() types.TypeID {
	if len(a.expected) == 0 {
		return types.NoTypeID
	}
	return a.expected[len(a.expected)-1]
}

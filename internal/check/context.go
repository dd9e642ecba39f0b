// Package check implements type resolution and typechecking: converting
// the syntactic ast.TypeRef of field, parameter, return, and local types
// into a semantic Type with resolved handles, eagerly resolving each
// referenced struct and detecting recursive value types along the way.
// It populates the parallel typed context the code generator consumes.
package check

import (
	"sync"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/source"
)

// GenericBound is a struct- or function-level generic parameter together
// with its resolved trait bounds.
type GenericBound struct {
	Name   string
	Bounds []module.TraitId
}

// Field is one resolved member of a TypedStruct.
type Field struct {
	Name string
	Type Type
}

// StructState tracks where a TypedStruct sits in the resolution pipeline.
// This is the explicit state enum the design notes call for, replacing
// the original implementation's double-sentinel (DUMMY_LOCATION compared
// with opposite senses against both the typed and untyped tables).
type StructState uint8

const (
	// StructEmpty is a freshly allocated slot: resolution has not started.
	StructEmpty StructState = iota
	// StructInProgress marks a slot whose resolution is underway; a
	// second resolution attempt observing this state is how a recursive
	// value type is detected.
	StructInProgress
	// StructResolved is a fully populated, committed slot.
	StructResolved
	// StructFailed is a slot whose resolution was abandoned because one
	// of its fields transitively cycled back to it by value. It is
	// terminal: later lookups see "not recursive, nothing usable" rather
	// than re-running (and re-erroring on) the same cycle.
	StructFailed
)

// TypedStruct is the resolved counterpart of module.Struct.
type TypedStruct struct {
	State       StructState
	Name        string
	Elements    []Field
	Loc         source.Location
	GlobalImpl  map[string]module.FunctionId
	TraitImpl   map[module.TraitId][]module.FunctionId
	Annotations []string
	ModuleId    module.ModuleId
	Id          module.StructId
	Generics    []GenericBound
}

// TypedTrait is the resolved counterpart of module.Trait: just method
// signatures, since a trait never has a body to typecheck.
type TypedTrait struct {
	Name     string
	Methods  []TypecheckedFunctionContract
	Loc      source.Location
	ModuleId module.ModuleId
	Id       module.TraitId
}

// TypecheckedFunctionContract is the resolved counterpart of
// ast.FunctionContract: parameter and return types carry handles, not
// syntax.
type TypecheckedFunctionContract struct {
	Name       string // empty for anonymous functions
	Parameters []Field
	ReturnType Type
	Generics   []GenericBound
	ModuleId   module.ModuleId
	Loc        source.Location
}

// TypecheckedFunction pairs a resolved contract with its still-opaque
// body. Expression-level typechecking is out of this module's scope
// (ast.Expression is never interpreted here); the code generator is
// expected to walk Body itself once it has the resolved contract.
type TypecheckedFunction struct {
	Contract TypecheckedFunctionContract
	Body     []ast.Statement
}

// TypedStatic is the resolved counterpart of module.Static.
type TypedStatic struct {
	Name        string
	Type        Type
	Initializer ast.Expression
	ModuleId    module.ModuleId
	Loc         source.Location
}

// TypecheckedModule is the resolved counterpart of module.UntypedModule.
// Its scope starts as a copy of the untyped scope and is then widened in
// place by ResolveImports, which flattens every import directly into it
// (so TypedResolveImport never needs to chase an imports table).
type TypecheckedModule struct {
	Scope   map[string]module.ModuleScopeValue
	Exports map[string]string
	Path    string
	Root    string
}

// LangItems tracks a fixed, small set of struct/function slots the code
// generator needs by convention rather than by name lookup. Populated
// best-effort after resolution; both fields are zero-valued (Has* false)
// when absent.
type LangItems struct {
	Main    module.FunctionId
	HasMain bool

	StrSlice    module.StructId
	HasStrSlice bool
}

// Context is the typed world the code generator reads from: one table
// per item kind, each behind its own RWMutex so later phases (code gen,
// IR display) can read concurrently while resolution is still writing.
// Every table is pre-sized to its untyped counterpart's length at
// construction and never resized afterward (handle stability, invariant
// 1); narrow accessor methods take their table's lock internally so a
// caller never holds a lock across a recursive call into resolveStruct
// (§5's deadlock-avoidance rule).
type Context struct {
	modMu   sync.RWMutex
	modules []*TypecheckedModule

	structMu sync.RWMutex
	structs  []*TypedStruct

	traitMu sync.RWMutex
	traits  []*TypedTrait

	fnMu      sync.RWMutex
	functions []*TypecheckedFunction

	extFnMu           sync.RWMutex
	externalFunctions []*TypecheckedFunction

	staticMu sync.RWMutex
	statics  []*TypedStatic

	langMu    sync.RWMutex
	langItems LangItems

	warnMu   sync.RWMutex
	warnings []Diagnostic

	errMu sync.Mutex
	errs  []error

	logger *source.Logger
}

// NewContext allocates a Context whose tables exactly mirror mc's in
// length, one typed module per untyped module. This loops over every
// module in mc, fixing the original implementation's bug of seeding only
// a single module (§9). A nil logger disables logging at zero cost rather
// than requiring every call site to nil-check it.
func NewContext(mc *module.Context, logger *source.Logger) *Context {
	if logger == nil {
		logger = &source.Logger{}
	}
	c := &Context{
		structs:           make([]*TypedStruct, len(mc.Structs)),
		traits:            make([]*TypedTrait, len(mc.Traits)),
		functions:         make([]*TypecheckedFunction, len(mc.Functions)),
		externalFunctions: make([]*TypecheckedFunction, len(mc.ExternalFunctions)),
		statics:           make([]*TypedStatic, len(mc.Statics)),
		modules:           make([]*TypecheckedModule, len(mc.Modules)),
		logger:            logger,
	}
	for i, s := range mc.Structs {
		c.structs[i] = &TypedStruct{State: StructEmpty, Id: module.StructId(i), ModuleId: s.ModuleId}
	}
	for i, t := range mc.Traits {
		c.traits[i] = &TypedTrait{Id: module.TraitId(i), ModuleId: t.ModuleId}
	}
	for i, f := range mc.Functions {
		c.functions[i] = &TypecheckedFunction{Contract: TypecheckedFunctionContract{ModuleId: f.ModuleId, Loc: source.Dummy}}
	}
	for i, f := range mc.ExternalFunctions {
		c.externalFunctions[i] = &TypecheckedFunction{Contract: TypecheckedFunctionContract{ModuleId: f.ModuleId, Loc: source.Dummy}}
	}
	for i, s := range mc.Statics {
		c.statics[i] = &TypedStatic{ModuleId: s.ModuleId, Loc: source.Dummy}
	}
	for i, m := range mc.Modules {
		scope := make(map[string]module.ModuleScopeValue, len(m.Scope))
		for k, v := range m.Scope {
			scope[k] = v
		}
		exports := make(map[string]string, len(m.Exports))
		for k, v := range m.Exports {
			exports[k] = v
		}
		c.modules[i] = &TypecheckedModule{Scope: scope, Exports: exports, Path: m.Path, Root: m.Root}
	}
	return c
}

// Struct returns a snapshot copy of the typed struct at id. Safe for
// concurrent use; callers that need to observe State transitions during
// resolution should use the package-internal locking helpers instead.
func (c *Context) Struct(id module.StructId) TypedStruct {
	c.structMu.RLock()
	defer c.structMu.RUnlock()
	return *c.structs[id]
}

// Function returns the typed function contract+body at id.
func (c *Context) Function(id module.FunctionId) TypecheckedFunction {
	c.fnMu.RLock()
	defer c.fnMu.RUnlock()
	return *c.functions[id]
}

// ExternalFunction returns the typed external function contract at id.
func (c *Context) ExternalFunction(id module.FunctionId) TypecheckedFunction {
	c.extFnMu.RLock()
	defer c.extFnMu.RUnlock()
	return *c.externalFunctions[id]
}

// Trait returns the typed trait at id.
func (c *Context) Trait(id module.TraitId) TypedTrait {
	c.traitMu.RLock()
	defer c.traitMu.RUnlock()
	return *c.traits[id]
}

// Static returns the typed static at id.
func (c *Context) Static(id module.StaticId) TypedStatic {
	c.staticMu.RLock()
	defer c.staticMu.RUnlock()
	return *c.statics[id]
}

// Module returns the typed module at id.
func (c *Context) Module(id module.ModuleId) TypecheckedModule {
	c.modMu.RLock()
	defer c.modMu.RUnlock()
	return *c.modules[id]
}

// LangItems returns the populated lang-item table.
func (c *Context) LangItems() LangItems {
	c.langMu.RLock()
	defer c.langMu.RUnlock()
	return c.langItems
}

func (c *Context) setLangItems(l LangItems) {
	c.langMu.Lock()
	defer c.langMu.Unlock()
	c.langItems = l
}

// Warnings returns the non-fatal diagnostics accumulated during
// resolution (see diagnostic.go).
func (c *Context) Warnings() []Diagnostic {
	c.warnMu.RLock()
	defer c.warnMu.RUnlock()
	out := make([]Diagnostic, len(c.warnings))
	copy(out, c.warnings)
	return out
}

func (c *Context) warn(d Diagnostic) {
	c.warnMu.Lock()
	defer c.warnMu.Unlock()
	c.warnings = append(c.warnings, d)
}

// ModuleExports implements resolve.ScopeSource against the typed world.
func (c *Context) ModuleExports(mid module.ModuleId) map[string]string {
	c.modMu.RLock()
	defer c.modMu.RUnlock()
	return c.modules[mid].Exports
}

// ModuleScope implements resolve.ScopeSource against the typed world.
func (c *Context) ModuleScope(mid module.ModuleId) map[string]module.ModuleScopeValue {
	c.modMu.RLock()
	defer c.modMu.RUnlock()
	return c.modules[mid].Scope
}

// StructGlobalImpl implements resolve.ScopeSource against the typed
// world.
func (c *Context) StructGlobalImpl(id module.StructId) map[string]module.FunctionId {
	c.structMu.RLock()
	defer c.structMu.RUnlock()
	return c.structs[id].GlobalImpl
}

// pushErr records an error raised during struct resolution in the
// Context-wide accumulator. Struct resolution recurses (a field's type
// may force a dependency struct to resolve first, §4.4), so errors
// raised deep in that recursion are recorded centrally rather than
// threaded back up through every intermediate return value.
func (c *Context) pushErr(err error) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	c.errs = append(c.errs, err)
}

// errLen returns the current accumulator length, for callers that want
// only the errors raised during their own call (errsSince).
func (c *Context) errLen() int {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return len(c.errs)
}

// errsSince returns a copy of every error accumulated after index from.
func (c *Context) errsSince(from int) []error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	if from >= len(c.errs) {
		return nil
	}
	out := make([]error, len(c.errs)-from)
	copy(out, c.errs[from:])
	return out
}

// DrainErrors returns every error accumulated across every struct
// resolution performed so far and clears the accumulator.
func (c *Context) DrainErrors() []error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	out := c.errs
	c.errs = nil
	return out
}

func (c *Context) setModuleScope(mid module.ModuleId, name string, v module.ModuleScopeValue) {
	c.modMu.Lock()
	defer c.modMu.Unlock()
	c.modules[mid].Scope[name] = v
}

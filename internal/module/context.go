package module

import (
	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/source"
)

// Import records one `import <path> from <module>` declaration: the
// location it was declared at, the module it reaches into, and the path
// to resolve inside that module.
type Import struct {
	Loc    source.Location
	Module ModuleId
	Path   []string
}

// UntypedModule is the per-file table the parser hands us: a flat
// namespace of locally-bound names, an export map, and a set of imports.
type UntypedModule struct {
	Scope   map[string]ModuleScopeValue
	Exports map[string]string // exported name -> locally bound name
	Imports map[string]Import
	Path    string
	Root    string
}

// NewUntypedModule returns an empty, ready-to-assemble module.
func NewUntypedModule(path, root string) *UntypedModule {
	return &UntypedModule{
		Scope:   make(map[string]ModuleScopeValue),
		Exports: make(map[string]string),
		Imports: make(map[string]Import),
		Path:    path,
		Root:    root,
	}
}

// IsDefined reports whether name is already bound in this module's flat
// namespace of imports/functions/structs/statics/external-functions
// (invariant 2).
func (m *UntypedModule) IsDefined(name string) bool {
	if _, ok := m.Imports[name]; ok {
		return true
	}
	_, ok := m.Scope[name]
	return ok
}

// Struct is the untyped, parsed representation of a struct declaration,
// with its member functions already baked into the function registry.
type Struct struct {
	Loc         source.Location
	Name        string
	Fields      []ast.Field
	GlobalImpl  map[string]FunctionId
	TraitImpls  []TraitImplRef
	Annotations []string
	Generics    []ast.GenericParam
	ModuleId    ModuleId
}

// TraitImplRef is a struct's `impl Trait for Self` block, with its member
// functions already baked into the function registry.
type TraitImplRef struct {
	Trait     ast.Path
	Functions map[string]FunctionId
}

// Trait is the untyped, parsed representation of a trait declaration.
type Trait struct {
	Loc      source.Location
	Name     string
	Methods  []ast.FunctionContract
	ModuleId ModuleId
}

// Function is the untyped, parsed representation of a function (free
// function, struct method, or trait-impl method).
type Function struct {
	Loc      source.Location
	Name     string
	Contract ast.FunctionContract
	Body     []ast.Statement
	ModuleId ModuleId
}

// Static is the untyped, parsed representation of a global value.
type Static struct {
	Loc         source.Location
	Name        string
	Type        ast.TypeRef
	Initializer ast.Expression
	ModuleId    ModuleId
}

// Context owns every untyped item across every module, addressed by the
// dense handles minted during assembly. Tables only ever grow; handles are
// never invalidated or reused.
type Context struct {
	Modules           []*UntypedModule
	Structs           []*Struct
	Traits            []*Trait
	Functions         []*Function
	ExternalFunctions []*Function
	Statics           []*Static
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// AddModule registers a new, empty module and returns its handle.
func (c *Context) AddModule(path, root string) ModuleId {
	c.Modules = append(c.Modules, NewUntypedModule(path, root))
	return ModuleId(len(c.Modules) - 1)
}

func (c *Context) pushFunction(fn *Function) FunctionId {
	c.Functions = append(c.Functions, fn)
	return FunctionId(len(c.Functions) - 1)
}

func (c *Context) pushExternalFunction(fn *Function) FunctionId {
	c.ExternalFunctions = append(c.ExternalFunctions, fn)
	return FunctionId(len(c.ExternalFunctions) - 1)
}

func (c *Context) pushStruct(s *Struct) StructId {
	c.Structs = append(c.Structs, s)
	return StructId(len(c.Structs) - 1)
}

func (c *Context) pushTrait(t *Trait) TraitId {
	c.Traits = append(c.Traits, t)
	return TraitId(len(c.Traits) - 1)
}

func (c *Context) pushStatic(s *Static) StaticId {
	c.Statics = append(c.Statics, s)
	return StaticId(len(c.Statics) - 1)
}

// GetFunction returns the function registry entry for id. Used by the
// resolver when a ModuleScopeValue resolves to a Function handle.
func (c *Context) GetFunction(id FunctionId) *Function { return c.Functions[id] }

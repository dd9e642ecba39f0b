// Package module holds the untyped, post-parse world: per-module tables of
// top-level items addressed by dense integer handles, and the assembly
// algorithm that turns a parser's statement stream into those tables.
package module

// ModuleId, StructId, TraitId, FunctionId, and StaticId are dense handles
// into their respective ModuleContext table. They are plain integers:
// equality and hashing are identity-based, and every handle minted in the
// untyped world has an identical handle in the typed world (invariant 1).
type (
	ModuleId   int
	StructId   int
	TraitId    int
	FunctionId int
	StaticId   int
)

// ScopeKind tags the variant held by a ModuleScopeValue.
type ScopeKind uint8

const (
	ScopeModule ScopeKind = iota
	ScopeStruct
	ScopeTrait
	ScopeFunction
	ScopeExternalFunction
	ScopeStatic
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeStruct:
		return "struct"
	case ScopeTrait:
		return "trait"
	case ScopeFunction:
		return "function"
	case ScopeExternalFunction:
		return "external function"
	case ScopeStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ModuleScopeValue is a tagged reference to any named top-level item,
// across any module: the thing a dotted path resolves to.
type ModuleScopeValue struct {
	Kind ScopeKind
	id   int
}

func ModuleValue(id ModuleId) ModuleScopeValue           { return ModuleScopeValue{ScopeModule, int(id)} }
func StructValue(id StructId) ModuleScopeValue           { return ModuleScopeValue{ScopeStruct, int(id)} }
func TraitValue(id TraitId) ModuleScopeValue             { return ModuleScopeValue{ScopeTrait, int(id)} }
func FunctionValue(id FunctionId) ModuleScopeValue       { return ModuleScopeValue{ScopeFunction, int(id)} }
func ExternalFunctionValue(id FunctionId) ModuleScopeValue {
	return ModuleScopeValue{ScopeExternalFunction, int(id)}
}
func StaticValue(id StaticId) ModuleScopeValue { return ModuleScopeValue{ScopeStatic, int(id)} }

func (v ModuleScopeValue) AsModuleId() ModuleId     { return ModuleId(v.id) }
func (v ModuleScopeValue) AsStructId() StructId     { return StructId(v.id) }
func (v ModuleScopeValue) AsTraitId() TraitId       { return TraitId(v.id) }
func (v ModuleScopeValue) AsFunctionId() FunctionId { return FunctionId(v.id) }
func (v ModuleScopeValue) AsStaticId() StaticId     { return StaticId(v.id) }

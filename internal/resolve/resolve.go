// Package resolve implements cross-module name resolution: walking a
// dotted path, chasing imports, and translating it into a
// module.ModuleScopeValue.
package resolve

import (
	"github.com/mira-lang/mira/internal/diag"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/source"
)

// ScopeSource is the minimal capability both the untyped and typed worlds
// provide: a way to read a module's exports and scope, and a struct's
// baked-in methods (global_impl). Parameterizing resolution over this
// interface is what lets ResolveImport and TypedResolveImport share one
// algorithm while reading from different tables.
type ScopeSource interface {
	ModuleExports(mid module.ModuleId) map[string]string
	ModuleScope(mid module.ModuleId) map[string]module.ModuleScopeValue
	StructGlobalImpl(id module.StructId) map[string]module.FunctionId
}

// ImportChaser additionally knows how to look up a module's import
// declarations, so an import can be followed transitively by recursing
// into the module it references. Only the untyped resolver needs this: by
// the time the typed resolver runs, check.Context.ResolveImports has already flattened
// every import directly into the typed module's scope.
type ImportChaser interface {
	ScopeSource
	ModuleImport(mid module.ModuleId, name string) (module.Import, bool)
}

// VisitedKey is one entry of the cycle-detection trail: a (module, first
// segment) pair.
type VisitedKey struct {
	Module module.ModuleId
	Name   string
}

var zero module.ModuleScopeValue

// ResolveImport walks path starting from home, chasing imports
// transitively and detecting import cycles via visited. visited must be a
// non-nil pointer to a caller-owned slice that starts empty (a nil slice
// is fine); it is reused across recursive calls of the same top-level
// resolution.
func ResolveImport(ctx ImportChaser, home module.ModuleId, path []string, loc source.Location, visited *[]VisitedKey) (module.ModuleScopeValue, error) {
	return resolveImport(ctx, ctx, home, path, loc, visited)
}

// TypedResolveImport has the same contract as ResolveImport but consults
// only the typed module table and never chases an imports map (there is
// none left to chase).
func TypedResolveImport(ctx ScopeSource, home module.ModuleId, path []string, loc source.Location, visited *[]VisitedKey) (module.ModuleScopeValue, error) {
	return resolveImport(nil, ctx, home, path, loc, visited)
}

func resolveImport(chaser ImportChaser, ctx ScopeSource, home module.ModuleId, path []string, loc source.Location, visited *[]VisitedKey) (module.ModuleScopeValue, error) {
	if len(path) < 1 {
		return module.ModuleValue(home), nil
	}

	key := VisitedKey{Module: home, Name: path[0]}
	for _, v := range *visited {
		if v == key {
			return zero, &diag.Error{Kind: diag.CyclicDependency, Loc: loc}
		}
	}
	*visited = append(*visited, key)

	ident := path[0]
	if exported, ok := ctx.ModuleExports(home)[path[0]]; ok {
		ident = exported
	} else if len(*visited) >= 2 {
		// We have crossed at least one module boundary (this is not the
		// module the walk started in): the name must be exported.
		return zero, &diag.Error{Kind: diag.ExportNotFound, Loc: loc, Name: path[0]}
	}

	if chaser != nil {
		if imp, ok := chaser.ModuleImport(home, ident); ok {
			value, err := resolveImport(chaser, ctx, imp.Module, imp.Path, imp.Loc, visited)
			if err != nil {
				return zero, err
			}
			if len(path) < 2 {
				return value, nil
			}
			return continueWith(chaser, ctx, value, path, loc, visited)
		}
	}

	// A miss here (ident not in the home module's own scope either) is
	// still reported as ExportNotFound rather than UnboundIdent: by the
	// time we get here ident has already been through the exported-name
	// substitution above, so from the caller's perspective the failure is
	// "nothing answers to this name," whether the lookup crossed a module
	// boundary or not.
	if value, ok := ctx.ModuleScope(home)[ident]; ok {
		if len(path) < 2 {
			return value, nil
		}
		return continueWith(chaser, ctx, value, path, loc, visited)
	}

	return zero, &diag.Error{Kind: diag.ExportNotFound, Loc: loc, Name: path[0]}
}

// continueWith dispatches on the shape of an already-resolved value when
// there are more path segments left to walk.
func continueWith(chaser ImportChaser, ctx ScopeSource, value module.ModuleScopeValue, path []string, loc source.Location, visited *[]VisitedKey) (module.ModuleScopeValue, error) {
	switch value.Kind {
	case module.ScopeModule:
		return resolveImport(chaser, ctx, value.AsModuleId(), path[1:], loc, visited)
	case module.ScopeStruct:
		id := value.AsStructId()
		fnID, ok := ctx.StructGlobalImpl(id)[path[1]]
		if !ok {
			return zero, &diag.Error{Kind: diag.ExportNotFound, Loc: loc, Name: path[1]}
		}
		if len(path) >= 3 {
			return zero, &diag.Error{Kind: diag.ExportNotFound, Loc: loc, Name: path[2]}
		}
		return module.FunctionValue(fnID), nil
	default:
		// Function, ExternalFunction, Trait, Static: no further segments
		// are allowed past a terminal value.
		return zero, &diag.Error{Kind: diag.ExportNotFound, Loc: loc, Name: path[1]}
	}
}

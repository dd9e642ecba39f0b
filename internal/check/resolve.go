package check

import (
	"log/slog"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/diag"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/resolve"
	"github.com/mira-lang/mira/internal/source"
)

// resolveGenericBounds resolves the bounds of a struct's or a function
// contract's generic parameters against mc, shared by resolveStruct and
// resolveContract since both apply the identical rule (§4.4 step 4): each
// bound path must name a trait, and a trait with no methods is worth a
// warning but not an error.
func (c *Context) resolveGenericBounds(mc *module.Context, moduleID module.ModuleId, astGenerics []ast.GenericParam, loc source.Location) ([]GenericBound, []error) {
	var errs []error
	generics := make([]GenericBound, 0, len(astGenerics))
	for _, g := range astGenerics {
		bound := GenericBound{Name: g.Name}
		for _, p := range g.Bounds {
			path := make([]string, len(p.Segments))
			for i, seg := range p.Segments {
				path[i] = seg.Name
			}
			var visited []resolve.VisitedKey
			v, err := resolve.TypedResolveImport(c, moduleID, path, loc, &visited)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if v.Kind != module.ScopeTrait {
				errs = append(errs, &diag.Error{Kind: diag.UnboundIdent, Loc: loc, Name: path[len(path)-1]})
				continue
			}
			traitID := v.AsTraitId()
			if len(mc.Traits[traitID].Methods) == 0 {
				c.warn(Diagnostic{
					Severity: SeverityWarning,
					Code:     "empty-trait-bound",
					Message:  "generic bound " + mc.Traits[traitID].Name + " has no methods",
					Loc:      loc,
				})
			}
			bound.Bounds = append(bound.Bounds, traitID)
		}
		generics = append(generics, bound)
	}
	return generics, errs
}

// genericScope derives the in-scope-name set and the bounds-by-name index
// a promote closure needs from a resolved generics list.
func genericScope(generics []GenericBound) (inScope map[string]bool, boundsByName map[string][]module.TraitId) {
	inScope = make(map[string]bool, len(generics))
	boundsByName = make(map[string][]module.TraitId, len(generics))
	for _, g := range generics {
		inScope[g.Name] = true
		boundsByName[g.Name] = g.Bounds
	}
	return inScope, boundsByName
}

// promoteGeneric upgrades a resolved Generic to a Trait when its matching
// parameter carries bounds, the same promotion resolveStruct and
// resolveContract both apply to a just-resolved field/parameter/return
// type.
func promoteGeneric(typ Type, boundsByName map[string][]module.TraitId) Type {
	if g, ok := typ.(*Generic); ok {
		if bounds := boundsByName[g.Name]; len(bounds) > 0 {
			return &Trait{TraitRefs: bounds, NumReferences: g.NumReferences, RealName: g.Name}
		}
	}
	return typ
}

// ResolveImports flattens every import declaration of every module in mc
// directly into this Context's typed module scopes, so TypedResolveImport
// never needs to chase an imports table afterward. Each import is
// resolved independently; failures are collected and the pass continues
// (§7's accumulate-and-continue policy).
func (c *Context) ResolveImports(mc *module.Context) []error {
	var errs []error
	for i, um := range mc.Modules {
		mid := module.ModuleId(i)
		for name, imp := range um.Imports {
			c.logger.Trace("resolving import", slog.Int("module", int(mid)), slog.String("name", name))
			var visited []resolve.VisitedKey
			v, err := resolve.ResolveImport(mc, imp.Module, imp.Path, imp.Loc, &visited)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			c.setModuleScope(mid, name, v)
		}
	}
	return errs
}

// ResolveType converts typ into a semantic Type, resolving any nominal
// struct reference it names along the way (§4.3). genericsInScope is the
// set of type-parameter names valid at this point (a struct's own
// generics while resolving its fields, a function's while resolving its
// contract). Errors raised while eagerly resolving a dependency struct
// are recorded on the Context's accumulator (see resolveStruct) in
// addition to being surfaced as the RecursiveTypeDetected return value
// when that dependency cycles back here.
func (c *Context) ResolveType(mc *module.Context, moduleID module.ModuleId, typ ast.TypeRef, genericsInScope map[string]bool) (Type, error) {
	if prim, ok := resolvePrimitiveType(typ); ok {
		return prim, nil
	}

	switch t := typ.(type) {
	case *ast.DynReference:
		return nil, &ErrUnsupportedDynReference{Loc: t.Loc}

	case *ast.Reference:
		if len(t.TypeName.Segments) == 1 && len(t.TypeName.Segments[0].Generics) == 0 {
			name := t.TypeName.Segments[0].Name
			if genericsInScope[name] {
				return &Generic{Name: name, NumReferences: t.NumReferences}, nil
			}
		}

		for _, seg := range t.TypeName.Segments {
			if len(seg.Generics) > 0 {
				return nil, &diag.Error{Kind: diag.UnexpectedGenerics, Loc: t.Loc}
			}
		}

		path := make([]string, len(t.TypeName.Segments))
		for i, seg := range t.TypeName.Segments {
			path[i] = seg.Name
		}

		var visited []resolve.VisitedKey
		value, err := resolve.TypedResolveImport(c, moduleID, path, t.Loc, &visited)
		if err != nil {
			return nil, err
		}
		if value.Kind != module.ScopeStruct {
			return nil, &diag.Error{Kind: diag.MismatchingScopeType, Loc: t.Loc, Expected: "struct", Found: value.Kind.String()}
		}
		structID := value.AsStructId()
		name := mc.Structs[structID].Name

		// Invariant 4: a struct field behind >=1 reference does not need
		// the referenced struct's layout, only its identity, so we never
		// force its resolution here — doing so is exactly what would
		// turn a legal reference cycle into a false RecursiveTypeDetected.
		if t.NumReferences == 0 {
			if recursive := c.resolveStruct(mc, structID); recursive {
				return nil, &diag.Error{Kind: diag.RecursiveTypeDetected, Loc: t.Loc}
			}
		}
		return &Struct{StructID: structID, Name: name, NumReferences: t.NumReferences}, nil

	case *ast.UnsizedArray:
		elem, err := c.ResolveType(mc, moduleID, t.Child, genericsInScope)
		if err != nil {
			return nil, err
		}
		return &UnsizedArray{Elem: elem, NumReferences: t.NumReferences}, nil

	case *ast.SizedArray:
		elem, err := c.ResolveType(mc, moduleID, t.Child, genericsInScope)
		if err != nil {
			return nil, err
		}
		return &SizedArray{Elem: elem, NumReferences: t.NumReferences, NumberElements: t.NumberElements}, nil

	default:
		return nil, &diag.Error{Kind: diag.MismatchingScopeType, Loc: typ.Location(), Expected: "type", Found: "unknown"}
	}
}

// resolveStruct resolves the struct at id in place, returning true if a
// recursive value type was detected while resolving one of its fields
// (§4.4). A struct already StructResolved returns false immediately; one
// already StructInProgress (the in-progress marker, invariant 5) returns
// true immediately without touching its fields again — this is the
// signal a caller further up the recursion uses to raise
// RecursiveTypeDetected. A struct that has already failed once
// (StructFailed) is terminal: it returns false with no further errors so
// unrelated callers are not repeatedly re-punished for a cycle this
// struct is not itself part of. Every error generated here is recorded
// on the Context's accumulator (c.pushErr); exported callers read it
// back via errsSince/DrainErrors.
func (c *Context) resolveStruct(mc *module.Context, id module.StructId) bool {
	switch c.beginStructResolution(id) {
	case StructResolved, StructFailed:
		return false
	case StructInProgress:
		return true
	}

	untyped := mc.Structs[id]
	c.logger.Trace("resolving struct", slog.Int("id", int(id)), slog.String("name", untyped.Name))

	generics, genErrs := c.resolveGenericBounds(mc, untyped.ModuleId, untyped.Generics, untyped.Loc)
	for _, err := range genErrs {
		c.pushErr(err)
	}

	inScope, boundsByName := genericScope(generics)

	elements := make([]Field, 0, len(untyped.Fields))
	recursiveSelf := false
	for _, field := range untyped.Fields {
		c.logger.Trace("resolving field", slog.String("struct", untyped.Name), slog.String("field", field.Name))
		typ, err := c.ResolveType(mc, untyped.ModuleId, field.Type, inScope)
		if err != nil {
			c.pushErr(err)
			if de, ok := err.(*diag.Error); ok && de.Kind == diag.RecursiveTypeDetected {
				recursiveSelf = true
			}
			continue
		}
		typ = promoteGeneric(typ, boundsByName)
		elements = append(elements, Field{Name: field.Name, Type: typ})
	}

	if recursiveSelf {
		c.abandonStruct(id)
		return true
	}

	globalImpl := make(map[string]module.FunctionId, len(untyped.GlobalImpl))
	for k, v := range untyped.GlobalImpl {
		globalImpl[k] = v
	}
	traitImpl := make(map[module.TraitId][]module.FunctionId, len(untyped.TraitImpls))
	for _, impl := range untyped.TraitImpls {
		path := make([]string, len(impl.Trait.Segments))
		for i, seg := range impl.Trait.Segments {
			path[i] = seg.Name
		}
		var visited []resolve.VisitedKey
		v, err := resolve.TypedResolveImport(c, untyped.ModuleId, path, untyped.Loc, &visited)
		if err != nil {
			c.pushErr(err)
			continue
		}
		if v.Kind != module.ScopeTrait {
			c.pushErr(&diag.Error{Kind: diag.UnboundIdent, Loc: untyped.Loc, Name: path[len(path)-1]})
			continue
		}
		fns := make([]module.FunctionId, 0, len(impl.Functions))
		for _, fn := range impl.Functions {
			fns = append(fns, fn)
		}
		traitImpl[v.AsTraitId()] = fns
	}

	c.commitStruct(id, &TypedStruct{
		State:       StructResolved,
		Name:        untyped.Name,
		Elements:    elements,
		Loc:         untyped.Loc,
		GlobalImpl:  globalImpl,
		TraitImpl:   traitImpl,
		Annotations: append([]string(nil), untyped.Annotations...),
		ModuleId:    untyped.ModuleId,
		Id:          id,
		Generics:    generics,
	})
	return false
}

// ResolveStruct is the exported entry point for resolving a single
// struct, returning every error raised while doing so (including ones
// raised resolving its dependencies). Callers outside this package (the
// overall driver) use it to force resolution of structs that no
// value-typed field ever reaches.
func (c *Context) ResolveStruct(mc *module.Context, id module.StructId) []error {
	from := c.errLen()
	c.resolveStruct(mc, id)
	return c.errsSince(from)
}

// ResolveAllStructs resolves every struct in mc that field resolution
// has not already reached, so that a struct reached only through
// references (or not referenced from any field at all) still ends up
// with a committed TypedStruct for the code generator.
func (c *Context) ResolveAllStructs(mc *module.Context) []error {
	from := c.errLen()
	for i := range mc.Structs {
		c.resolveStruct(mc, module.StructId(i))
	}
	return c.errsSince(from)
}

func (c *Context) beginStructResolution(id module.StructId) StructState {
	c.structMu.Lock()
	defer c.structMu.Unlock()
	s := c.structs[id]
	state := s.State
	if state == StructEmpty {
		s.State = StructInProgress
	}
	return state
}

func (c *Context) commitStruct(id module.StructId, s *TypedStruct) {
	c.structMu.Lock()
	defer c.structMu.Unlock()
	c.structs[id] = s
}

func (c *Context) abandonStruct(id module.StructId) {
	c.structMu.Lock()
	defer c.structMu.Unlock()
	c.structs[id].State = StructFailed
}

package check

import (
	"log/slog"

	"github.com/mira-lang/mira/internal/module"
)

// resolveContract resolves a function's ast.FunctionContract into a
// TypecheckedFunctionContract, first resolving the contract's own
// generic parameters' bounds the same way resolveStruct resolves a
// struct's (via the shared resolveGenericBounds/genericScope/
// promoteGeneric helpers in resolve.go).
func (c *Context) resolveContract(mc *module.Context, moduleID module.ModuleId, fn *module.Function) (TypecheckedFunctionContract, []error) {
	contract := fn.Contract
	c.logger.Trace("resolving function contract", slog.String("name", contract.Name))

	generics, errs := c.resolveGenericBounds(mc, moduleID, contract.Generics, fn.Loc)
	inScope, boundsByName := genericScope(generics)

	params := make([]Field, 0, len(contract.Parameters))
	for _, p := range contract.Parameters {
		c.logger.Trace("resolving parameter", slog.String("function", contract.Name), slog.String("param", p.Name))
		typ, err := c.ResolveType(mc, moduleID, p.Type, inScope)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		params = append(params, Field{Name: p.Name, Type: promoteGeneric(typ, boundsByName)})
	}

	var ret Type
	if contract.ReturnType != nil {
		typ, err := c.ResolveType(mc, moduleID, contract.ReturnType, inScope)
		if err != nil {
			errs = append(errs, err)
			ret = &Primitive{Kind: PrimitiveVoid}
		} else {
			ret = promoteGeneric(typ, boundsByName)
		}
	} else {
		ret = &Primitive{Kind: PrimitiveVoid}
	}

	return TypecheckedFunctionContract{
		Name:       contract.Name,
		Parameters: params,
		ReturnType: ret,
		Generics:   generics,
		ModuleId:   moduleID,
		Loc:        fn.Loc,
	}, errs
}

// ResolveFunction resolves the contract of the free/method function at
// id, committing it and leaving the body untouched (expression
// typechecking is out of scope, §1).
func (c *Context) ResolveFunction(mc *module.Context, id module.FunctionId) []error {
	fn := mc.GetFunction(id)
	contract, errs := c.resolveContract(mc, fn.ModuleId, fn)
	c.fnMu.Lock()
	c.functions[id] = &TypecheckedFunction{Contract: contract, Body: fn.Body}
	c.fnMu.Unlock()
	return errs
}

// ResolveExternalFunction resolves the contract of the external function
// at id. External functions have no body to carry forward.
func (c *Context) ResolveExternalFunction(mc *module.Context, id module.FunctionId) []error {
	fn := mc.ExternalFunctions[id]
	contract, errs := c.resolveContract(mc, fn.ModuleId, fn)
	c.extFnMu.Lock()
	c.externalFunctions[id] = &TypecheckedFunction{Contract: contract}
	c.extFnMu.Unlock()
	return errs
}

// ResolveStatic resolves the declared type of the static at id.
func (c *Context) ResolveStatic(mc *module.Context, id module.StaticId) []error {
	s := mc.Statics[id]
	typ, err := c.ResolveType(mc, s.ModuleId, s.Type, nil)
	var errs []error
	if err != nil {
		errs = append(errs, err)
		typ = &Primitive{Kind: PrimitiveVoid}
	}
	c.staticMu.Lock()
	c.statics[id] = &TypedStatic{Name: s.Name, Type: typ, Initializer: s.Initializer, ModuleId: s.ModuleId, Loc: s.Loc}
	c.staticMu.Unlock()
	return errs
}

// ResolveTrait resolves the method signatures of the trait at id.
func (c *Context) ResolveTrait(mc *module.Context, id module.TraitId) []error {
	t := mc.Traits[id]
	var errs []error
	methods := make([]TypecheckedFunctionContract, 0, len(t.Methods))
	for _, m := range t.Methods {
		params := make([]Field, 0, len(m.Parameters))
		for _, p := range m.Parameters {
			typ, err := c.ResolveType(mc, t.ModuleId, p.Type, nil)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			params = append(params, Field{Name: p.Name, Type: typ})
		}
		var ret Type = &Primitive{Kind: PrimitiveVoid}
		if m.ReturnType != nil {
			typ, err := c.ResolveType(mc, t.ModuleId, m.ReturnType, nil)
			if err != nil {
				errs = append(errs, err)
			} else {
				ret = typ
			}
		}
		methods = append(methods, TypecheckedFunctionContract{Name: m.Name, Parameters: params, ReturnType: ret, ModuleId: t.ModuleId, Loc: m.Loc})
	}
	c.traitMu.Lock()
	c.traits[id] = &TypedTrait{Name: t.Name, Methods: methods, Loc: t.Loc, ModuleId: t.ModuleId, Id: id}
	c.traitMu.Unlock()
	return errs
}

// ResolveAll runs every resolution phase against mc in the order the
// pipeline requires: imports first (so nominal type lookups can cross
// module boundaries), then traits (struct generics bind against trait
// ids), then every struct, then function/external-function contracts and
// static types, finally best-effort lang-item discovery against the
// given root module. Every phase's errors are accumulated; later phases
// still run even if an earlier one reported errors (§7).
func (c *Context) ResolveAll(mc *module.Context, root module.ModuleId) []error {
	var errs []error
	errs = append(errs, c.ResolveImports(mc)...)
	for i := range mc.Traits {
		errs = append(errs, c.ResolveTrait(mc, module.TraitId(i))...)
	}
	errs = append(errs, c.ResolveAllStructs(mc)...)
	for i := range mc.Functions {
		errs = append(errs, c.ResolveFunction(mc, module.FunctionId(i))...)
	}
	for i := range mc.ExternalFunctions {
		errs = append(errs, c.ResolveExternalFunction(mc, module.FunctionId(i))...)
	}
	for i := range mc.Statics {
		errs = append(errs, c.ResolveStatic(mc, module.StaticId(i))...)
	}
	PopulateLangItems(mc, c, root)
	return errs
}

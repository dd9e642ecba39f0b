package module

import "github.com/mira-lang/mira/internal/ast"

// PushAll assembles every statement in stmts into module mid, accumulating
// every error across the whole batch rather than stopping at the first.
// The module is left in a well-formed state only if the returned error
// list is empty; a partially-applied batch is observable on failure and is
// the caller's responsibility to discard.
func (c *Context) PushAll(mid ModuleId, stmts []ast.Statement) []error {
	var errs []error
	for _, stmt := range stmts {
		if err := c.PushStatement(mid, stmt); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// PushStatement assembles a single top-level statement into module mid,
// returning on the first error.
func (c *Context) PushStatement(mid ModuleId, stmt ast.Statement) error {
	m := c.Modules[mid]
	switch s := stmt.(type) {
	case *ast.FunctionStatement:
		return c.pushFunctionStatement(mid, m, s)
	case *ast.StructStatement:
		return c.pushStructStatement(mid, m, s)
	case *ast.TraitStatement:
		return c.pushTraitStatement(mid, m, s)
	case *ast.VariableStatement:
		return c.pushVariableStatement(mid, m, s)
	case *ast.ExternalFunctionStatement:
		return c.pushExternalFunctionStatement(mid, m, s)
	case *ast.ExportStatement:
		return c.pushExportStatement(m, s)
	default:
		return &Error{Kind: NoCodeOutsideOfFunctions, Loc: stmt.Location()}
	}
}

func (c *Context) pushFunctionStatement(mid ModuleId, m *UntypedModule, s *ast.FunctionStatement) error {
	if s.IsAnonymous || s.Name == "" {
		return &Error{Kind: AnonymousFunctionAtGlobalLevel, Loc: s.Loc}
	}
	if m.IsDefined(s.Name) {
		return &Error{Kind: IdentAlreadyDefined, Loc: s.Loc, Name: s.Name}
	}
	id := c.pushFunction(&Function{Loc: s.Loc, Name: s.Name, Contract: s.Contract, Body: s.Body, ModuleId: mid})
	m.Scope[s.Name] = FunctionValue(id)
	return nil
}

func (c *Context) pushStructStatement(mid ModuleId, m *UntypedModule, s *ast.StructStatement) error {
	if m.IsDefined(s.Name) {
		return &Error{Kind: IdentAlreadyDefined, Loc: s.Loc, Name: s.Name}
	}
	globalImpl := make(map[string]FunctionId, len(s.GlobalImpl))
	for name, fn := range s.GlobalImpl {
		globalImpl[name] = c.pushFunction(&Function{Loc: fn.Loc, Name: name, Contract: fn.Contract, Body: fn.Body, ModuleId: mid})
	}
	traitImpls := make([]TraitImplRef, 0, len(s.TraitImpls))
	for _, impl := range s.TraitImpls {
		fns := make(map[string]FunctionId, len(impl.Functions))
		for name, fn := range impl.Functions {
			fns[name] = c.pushFunction(&Function{Loc: fn.Loc, Name: name, Contract: fn.Contract, Body: fn.Body, ModuleId: mid})
		}
		traitImpls = append(traitImpls, TraitImplRef{Trait: impl.Trait, Functions: fns})
	}
	id := c.pushStruct(&Struct{
		Loc:         s.Loc,
		Name:        s.Name,
		Fields:      s.Fields,
		GlobalImpl:  globalImpl,
		TraitImpls:  traitImpls,
		Annotations: s.Annotations,
		Generics:    s.Generics,
		ModuleId:    mid,
	})
	m.Scope[s.Name] = StructValue(id)
	return nil
}

func (c *Context) pushTraitStatement(mid ModuleId, m *UntypedModule, s *ast.TraitStatement) error {
	if m.IsDefined(s.Name) {
		return &Error{Kind: IdentAlreadyDefined, Loc: s.Loc, Name: s.Name}
	}
	id := c.pushTrait(&Trait{Loc: s.Loc, Name: s.Name, Methods: s.Methods, ModuleId: mid})
	m.Scope[s.Name] = TraitValue(id)
	return nil
}

func (c *Context) pushVariableStatement(mid ModuleId, m *UntypedModule, s *ast.VariableStatement) error {
	if s.Type == nil {
		return &Error{Kind: GlobalValueNoType, Loc: s.Loc}
	}
	if !s.IsLiteral {
		return &Error{Kind: GlobalValueNoLiteral, Loc: s.Loc}
	}
	if m.IsDefined(s.Name) {
		return &Error{Kind: IdentAlreadyDefined, Loc: s.Loc, Name: s.Name}
	}
	id := c.pushStatic(&Static{Loc: s.Loc, Name: s.Name, Type: s.Type, Initializer: s.Initializer, ModuleId: mid})
	m.Scope[s.Name] = StaticValue(id)
	return nil
}

func (c *Context) pushExternalFunctionStatement(mid ModuleId, m *UntypedModule, s *ast.ExternalFunctionStatement) error {
	if s.Name == "" {
		return &Error{Kind: AnonymousFunctionAtGlobalLevel, Loc: s.Loc}
	}
	if m.IsDefined(s.Name) {
		return &Error{Kind: IdentAlreadyDefined, Loc: s.Loc, Name: s.Name}
	}
	id := c.pushExternalFunction(&Function{Loc: s.Loc, Name: s.Name, Contract: s.Contract, ModuleId: mid})
	m.Scope[s.Name] = ExternalFunctionValue(id)
	return nil
}

func (c *Context) pushExportStatement(m *UntypedModule, s *ast.ExportStatement) error {
	if !m.IsDefined(s.Key) {
		return &Error{Kind: IdentNotDefined, Loc: s.Loc, Name: s.Key}
	}
	// Multiple exports of the same key under different exposed names are
	// fine; a duplicate exposed name simply overwrites the earlier one.
	m.Exports[s.ExportedKey] = s.Key
	return nil
}

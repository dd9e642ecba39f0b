package module

// ModuleExports implements resolve.ScopeSource against the untyped world.
func (c *Context) ModuleExports(mid ModuleId) map[string]string { return c.Modules[mid].Exports }

// ModuleScope implements resolve.ScopeSource against the untyped world.
func (c *Context) ModuleScope(mid ModuleId) map[string]ModuleScopeValue { return c.Modules[mid].Scope }

// StructGlobalImpl implements resolve.ScopeSource against the untyped
// world.
func (c *Context) StructGlobalImpl(id StructId) map[string]FunctionId {
	return c.Structs[id].GlobalImpl
}

// ModuleImport implements resolve.ImportChaser against the untyped world.
func (c *Context) ModuleImport(mid ModuleId, name string) (Import, bool) {
	imp, ok := c.Modules[mid].Imports[name]
	return imp, ok
}

package check

import "github.com/mira-lang/mira/internal/module"

// PopulateLangItems scans the root module's exports for the well-known
// entry-point function and every module's structs for the well-known
// string-slice struct, filling in whatever Context.LangItems()
// subsequently returns. Both slots are best-effort: absence is not an
// error, since not every compiled unit is a freestanding executable (a
// library module has no `main`).
//
// Main is the zero-parameter, non-generic function the root module
// exports under the name "main", whatever its local name. StrSlice is the
// first struct, in any module, literally named "str" the code generator
// hangs string-slice methods off of, should the
// language grow method-call sugar for built-in types later; nothing
// currently consumes it beyond exposing it here.
func PopulateLangItems(mc *module.Context, tc *Context, root module.ModuleId) LangItems {
	var items LangItems

	rootModule := tc.Module(root)
	if exported, ok := rootModule.Exports["main"]; ok {
		if v, ok := rootModule.Scope[exported]; ok && v.Kind == module.ScopeFunction {
			fn := mc.GetFunction(v.AsFunctionId())
			if len(fn.Contract.Parameters) == 0 && len(fn.Contract.Generics) == 0 {
				items.Main = v.AsFunctionId()
				items.HasMain = true
			}
		}
	}

	for i, s := range mc.Structs {
		if s.Name == "str" {
			items.StrSlice = module.StructId(i)
			items.HasStrSlice = true
			break
		}
	}

	tc.setLangItems(items)
	return items
}

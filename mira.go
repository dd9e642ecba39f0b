// Package mira is the facade a driver calls: [NewProgram] configures a set
// of parsed module sources, [Program.Assemble] turns them into the untyped
// module context, and [Program.Resolve] runs name resolution and
// typechecking over it. Internal packages hold the machinery; this is the
// only package an external driver needs to import.
package mira

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mira-lang/mira/internal/ast"
	"github.com/mira-lang/mira/internal/check"
	"github.com/mira-lang/mira/internal/module"
	"github.com/mira-lang/mira/internal/source"
)

// ErrNoSources is returned by Assemble when the Program was configured
// with no sources.
var ErrNoSources = errors.New("mira: no module sources provided")

// ErrUnknownRoot is returned by Assemble when WithRoot names a module
// path no Source was given for.
var ErrUnknownRoot = errors.New("mira: root module path not found among sources")

// ErrUnknownImportTarget is returned by Assemble when a Source.Imports
// entry names a module path no Source was given for.
var ErrUnknownImportTarget = errors.New("mira: import target module not found among sources")

// ErrNotAssembled is returned by Resolve when called before Assemble.
var ErrNotAssembled = errors.New("mira: Resolve called before Assemble")

// Source is one parsed module's path, top-level statements, and import
// declarations, already reduced from concrete syntax by whatever front
// end is feeding this package (lexing/parsing is out of scope here, §1).
// Imports are not an ast.Statement shape in this module's syntax tree —
// the front end resolves `import x from y` directly into a name/target
// pair Assemble copies onto the module's Imports map.
type Source struct {
	// Path is this module's own dotted import path.
	Path string
	// Root is the root-module path this source was parsed underneath.
	Root string
	// Statements is the module's top-level statement list.
	Statements []ast.Statement
	// Imports maps a locally-bound name to the module path and exported
	// path segments it resolves to.
	Imports map[string]SourceImport
}

// SourceImport is one `import <path> from <module path>` declaration
// before the target module path has been translated into a ModuleId.
type SourceImport struct {
	Loc        source.Location
	ModulePath string
	Path       []string
}

// ProgramOption configures NewProgram.
type ProgramOption func(*Program)

// WithLogger sets the logger used for debug/trace output during assembly
// and resolution. If not set, no logging occurs.
func WithLogger(logger *slog.Logger) ProgramOption {
	return func(p *Program) { p.logger = &source.Logger{L: logger} }
}

// WithSource appends one or more parsed modules to the program.
func WithSource(src ...Source) ProgramOption {
	return func(p *Program) { p.sources = append(p.sources, src...) }
}

// WithRoot selects which source's Path is the root module lang items are
// populated against (see [Program.LangItems]). Omit to use the first
// source passed to WithSource.
func WithRoot(path string) ProgramOption {
	return func(p *Program) { p.rootPath = path; p.hasRoot = true }
}

// Program is a module compilation in progress: configured by NewProgram,
// assembled by Assemble, and typechecked by Resolve. A driver reads
// Untyped/Typed/Errors once Resolve returns.
type Program struct {
	Untyped *module.Context
	Typed   *check.Context
	Root    module.ModuleId

	// Errors is every error accumulated across assembly, import
	// resolution, and typechecking. A non-empty Errors does not mean
	// Typed is unusable — resolution accumulates and continues past
	// individual failures (§7) — but the caller should surface them.
	Errors []error

	logger       *source.Logger
	sources      []Source
	rootPath     string
	hasRoot      bool
	pathToModule map[string]module.ModuleId
}

// NewProgram configures a Program from the given sources without doing
// any work yet; call Assemble, then Resolve.
func NewProgram(opts ...ProgramOption) *Program {
	p := &Program{logger: &source.Logger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LangItems is a convenience accessor for p.Typed.LangItems().
func (p *Program) LangItems() check.LangItems { return p.Typed.LangItems() }

// Warnings is a convenience accessor for p.Typed.Warnings().
func (p *Program) Warnings() []check.Diagnostic { return p.Typed.Warnings() }

// Assemble pushes every configured source's statements into a fresh
// module.Context and flattens import declarations, producing p.Untyped
// and p.Root. It must be called before Resolve. Assembly errors are
// appended to p.Errors and do not themselves cause Assemble to fail —
// only ErrNoSources and ErrUnknownRoot, which leave the Program
// unusable, are returned.
func (p *Program) Assemble() error {
	if len(p.sources) == 0 {
		return ErrNoSources
	}

	mc := module.NewContext()
	pathToModule := make(map[string]module.ModuleId, len(p.sources))
	for _, src := range p.sources {
		pathToModule[src.Path] = mc.AddModule(src.Path, src.Root)
	}

	var errs []error
	for _, src := range p.sources {
		mid := pathToModule[src.Path]
		p.logger.Trace("assembling module", slog.String("path", src.Path), slog.Int("id", int(mid)))
		errs = append(errs, mc.PushAll(mid, src.Statements)...)
	}
	for _, src := range p.sources {
		mid := pathToModule[src.Path]
		for name, imp := range src.Imports {
			target, ok := pathToModule[imp.ModulePath]
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %q (imported by %q)", ErrUnknownImportTarget, imp.ModulePath, src.Path))
				continue
			}
			mc.Modules[mid].Imports[name] = module.Import{Loc: imp.Loc, Module: target, Path: imp.Path}
		}
	}

	rootPath := p.rootPath
	if !p.hasRoot {
		rootPath = p.sources[0].Path
	}
	root, ok := pathToModule[rootPath]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoot, rootPath)
	}

	p.Untyped = mc
	p.Root = root
	p.pathToModule = pathToModule
	p.Errors = append(p.Errors, errs...)
	return nil
}

// Resolve runs cross-module import resolution and typechecks every
// trait, struct, function, external function, and static declaration in
// p.Untyped, in that order, populating p.Typed and appending to p.Errors.
func (p *Program) Resolve() error {
	if p.Untyped == nil {
		return ErrNotAssembled
	}
	tc := check.NewContext(p.Untyped, p.logger)
	errs := tc.ResolveAll(p.Untyped, p.Root)
	errs = append(errs, tc.DrainErrors()...)
	p.Typed = tc
	p.Errors = append(p.Errors, errs...)
	return nil
}

// Compile is a convenience wrapper running NewProgram, Assemble, and
// Resolve in sequence for callers that do not need the two phases split
// apart.
//
// Example:
//
//	prog, err := mira.Compile(
//	    mira.WithSource(sources...),
//	    mira.WithRoot("main"),
//	)
func Compile(opts ...ProgramOption) (*Program, error) {
	p := NewProgram(opts...)
	if err := p.Assemble(); err != nil {
		return nil, err
	}
	if err := p.Resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

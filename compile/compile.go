package compile

import (
	"bytes"
	"fmt"
	"path/filepath"

	. "github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/parse"
	"github.com/chtyim/fastcode/source"
	"github.com/chtyim/fastcode/tree"
	"github.com/chtyim/fastcode/typetoken"
)

// CompilationUnit collects hierarchy manifests, following their imports, and
// compiles them into one Universe.
type CompilationUnit struct {
	finder  files.Finder
	Files   map[string]*source.FileDef
	imports map[string][]string
}

func NewCompilationUnit() *CompilationUnit {
	return NewCompilationUnitWithFinder(files.NewFinder())
}

func NewCompilationUnitWithFinder(finder files.Finder) *CompilationUnit {
	return &CompilationUnit{
		finder:  finder,
		Files:   map[string]*source.FileDef{},
		imports: map[string][]string{},
	}
}

func (u *CompilationUnit) AddFile(path string) error {
	_, err := Try(func() int {
		u.loadPath(filepath.Clean(path))
		return 0
	})
	return err
}

// AddSource adds a manifest held in memory. Its imports are resolved
// relative to path.
func (u *CompilationUnit) AddSource(path string, src []byte) error {
	_, err := Try(func() int {
		file, err := parse.ReadManifest(path, bytes.NewReader(src))
		if err != nil {
			panic(err)
		}
		u.LoadFile(file)
		return 0
	})
	return err
}

func (u *CompilationUnit) loadPath(path string) {
	if _, ok := u.Files[path]; ok {
		return
	}
	file, err := parse.ReadManifestFile(path)
	if err != nil {
		panic(err)
	}
	u.LoadFile(file)
}

func (u *CompilationUnit) LoadFile(file *source.FileDef) {
	path := filepath.Clean(file.Path)
	if _, ok := u.Files[path]; ok {
		return
	}
	CompilePrintf("loading file %v\n", path)
	u.Files[path] = file

	for _, imp := range file.Imports {
		resolved, err := u.finder.FindImport(path, imp)
		if err != nil {
			panic(err)
		}
		u.imports[path] = append(u.imports[path], resolved)
		u.loadPath(resolved)
	}
}

func (u *CompilationUnit) Compile() (*source.Universe, error) {
	return Try(u.compile)
}

func (u *CompilationUnit) compile() *source.Universe {
	sorted, err := source.TopologicalSort(u.Files, func(file *source.FileDef) []string {
		return u.imports[filepath.Clean(file.Path)]
	})
	if err != nil {
		panic(fmt.Errorf("import %w", err))
	}

	universe := source.NewUniverse()
	specs := map[*tree.TypeDecl]*source.TypeSpec{}
	var decls []*tree.TypeDecl

	for _, file := range sorted {
		CompilePrintf("=== Declaring (%v) ===\n", file.Path)
		for _, spec := range file.Types {
			decl := tree.NewTypeDecl(spec.Name, spec.Params...)
			if err := universe.Def(decl); err != nil {
				panic(fmt.Errorf("%v: %w", file.Path, err))
			}
			specs[decl] = spec
			decls = append(decls, decl)
		}
	}

	for _, decl := range decls {
		DefineTypeDecl(universe, decl, specs[decl])
	}

	if err := universe.CheckAcyclic(); err != nil {
		panic(err)
	}

	for _, decl := range universe.Types() {
		CheckArity(universe, decl)
	}

	CompilePrintf("compiled %d types from %d files\n", universe.Len(), len(sorted))
	return universe
}

// DefineTypeDecl fills decl's supertypes and methods from spec.
func DefineTypeDecl(universe *source.Universe, decl *tree.TypeDecl, spec *source.TypeSpec) {
	scope := universe.Scope(decl)

	if spec.Extends != "" {
		decl.Extends(parseSupertype(decl, spec.Extends, scope))
	}
	for _, src := range spec.Implements {
		decl.Implements(parseSupertype(decl, src, scope))
	}

	for _, m := range spec.Methods {
		var result tree.Type
		if m.Returns != "" {
			result = parseType(decl, m.Returns, scope)
		}
		decl.DefineMethod(m.Name, result, parseTypes(decl, m.Params, scope), parseTypes(decl, m.Throws, scope))
	}
	CompilePrintf("defined %v: extends %v implements %v\n", decl.Name(), decl.GenericSuperclass(), decl.GenericInterfaces())
}

func parseSupertype(decl *tree.TypeDecl, src string, scope parse.Scope) tree.Type {
	ty := parseType(decl, src, scope)
	if _, ok := ty.(*tree.ConcreteType); !ok {
		panic(fmt.Errorf("%v: supertype %q is not a concrete type", decl.Name(), src))
	}
	return ty
}

func parseType(decl *tree.TypeDecl, src string, scope parse.Scope) tree.Type {
	ty, err := parse.ParseType(src, scope)
	if err != nil {
		panic(fmt.Errorf("%v: %w", decl.Name(), err))
	}
	return ty
}

func parseTypes(decl *tree.TypeDecl, srcs []string, scope parse.Scope) []tree.Type {
	types := make([]tree.Type, 0, len(srcs))
	for _, src := range srcs {
		types = append(types, parseType(decl, src, scope))
	}
	return types
}

// CheckArity verifies that every parameterized expression in decl applies
// exactly as many arguments as its identity declares.
func CheckArity(universe *source.Universe, decl *tree.TypeDecl) {
	var exprs []tree.Type
	if super := decl.GenericSuperclass(); super != nil {
		exprs = append(exprs, super)
	}
	exprs = append(exprs, decl.GenericInterfaces()...)
	for _, m := range decl.Methods() {
		exprs = append(exprs, m.GenericReturnType())
		exprs = append(exprs, m.GenericParameterTypes()...)
		exprs = append(exprs, m.GenericExceptionTypes()...)
	}
	for _, expr := range exprs {
		checkArity(universe, decl, expr)
	}
}

func checkArity(universe *source.Universe, decl *tree.TypeDecl, ty tree.Type) {
	concrete, ok := ty.(*tree.ConcreteType)
	if !ok || !concrete.IsParameterized() {
		return
	}
	params := concrete.Identity.TypeParams()
	if len(params) != len(concrete.Args) {
		name := concrete.Identity.Name()
		if universe.IsImplicit(name.String()) {
			panic(fmt.Errorf("%v: %w: %v is not declared in any manifest and takes no type parameters, %v applies %d",
				decl.Name(), typetoken.ErrArityMismatch, name, concrete, len(concrete.Args)))
		}
		panic(fmt.Errorf("%v: %w: %v declares %d type parameters, %v applies %d",
			decl.Name(), typetoken.ErrArityMismatch, concrete.Identity.Name(), len(params), concrete, len(concrete.Args)))
	}
	for _, arg := range concrete.Args {
		checkArity(universe, decl, arg)
	}
}

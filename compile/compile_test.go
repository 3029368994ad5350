package compile

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/tree"
	"github.com/chtyim/fastcode/typetoken"
)

const collections = `
types:
  - name: Map
    params: [K, V]
    methods:
      - name: get
        returns: V
        params: [Object]
  - name: Set
    params: [E]
`

const wrapper = `
imports: [collections.yaml]
types:
  - name: Pair
    params: [U, V]
    methods:
      - name: getU
        returns: U
      - name: setUV
        params:
          - U
          - V
          - Set[V]
  - name: Wrapper
    params: [X]
    extends: Pair[Map[String, X], X]
`

func writeManifests(t *testing.T, manifests map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range manifests {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	return dir
}

func TestCompileFollowsImports(t *testing.T) {
	dir := writeManifests(t, map[string]string{
		"collections.yaml": collections,
		"wrapper.yaml":     wrapper,
	})

	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	if err := unit.AddFile(filepath.Join(dir, "wrapper.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unit.Files) != 2 {
		t.Fatalf("expected the import to be loaded, got %d files", len(unit.Files))
	}

	universe, err := unit.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w, ok := universe.Lookup("Wrapper")
	if !ok {
		t.Fatalf("expected Wrapper to be declared")
	}
	if w.GenericSuperclass().String() != "Pair<Map<String,X>,X>" {
		t.Fatalf("unexpected superclass %v", w.GenericSuperclass())
	}
	if !universe.IsImplicit("String") || universe.IsImplicit("Map") {
		t.Fatalf("unexpected implicit declarations")
	}

	tok, err := RootToken(universe, "Wrapper[Integer]")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, err := universe.Method("Pair.setUV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig, err := tok.ResolveSignature(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Returns.RawIdentity() != tree.Void {
		t.Fatalf("expected void, got %v", sig.Returns)
	}
	var params []string
	for _, p := range sig.Parameters {
		params = append(params, p.String())
	}
	if strings.Join(params, " ") != "Map<String,Integer> Integer Set<Integer>" {
		t.Fatalf("unexpected params %v", params)
	}
}

func TestAddSource(t *testing.T) {
	dir := writeManifests(t, map[string]string{"collections.yaml": collections})

	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	if err := unit.AddSource(filepath.Join(dir, "wrapper.yaml"), []byte(wrapper)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	universe, err := unit.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := universe.Lookup("Set"); !ok {
		t.Fatalf("expected Set from the imported manifest")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		message  string
		kind     error
	}{
		{
			name: "cycle",
			manifest: `
types:
  - name: A
    extends: B
  - name: B
    extends: A
`,
			message: "inheritance cycle",
		},
		{
			name: "arity",
			manifest: `
types:
  - name: Pair
    params: [U, V]
  - name: Bad
    extends: Pair[String]
`,
			kind: typetoken.ErrArityMismatch,
		},
		{
			name: "implicit arity",
			manifest: `
types:
  - name: Bad
    methods:
      - name: get
        returns: List[String]
`,
			message: "List is not declared in any manifest",
			kind:    typetoken.ErrArityMismatch,
		},
		{
			name: "variable supertype",
			manifest: `
types:
  - name: Bad
    params: [T]
    extends: T
`,
			message: "not a concrete type",
		},
		{
			name: "unsupported",
			manifest: `
types:
  - name: Bad
    extends: "[]String"
`,
			kind: typetoken.ErrUnsupportedTypeExpression,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
			err := unit.AddSource(test.name+".yaml", []byte(test.manifest))
			if err == nil {
				_, err = unit.Compile()
			}
			if err == nil {
				t.Fatalf("expected an error")
			}
			if test.message != "" && !strings.Contains(err.Error(), test.message) {
				t.Fatalf("expected %q in %q", test.message, err)
			}
			if test.kind != nil && !errors.Is(err, test.kind) {
				t.Fatalf("expected %v, got %v", test.kind, err)
			}
		})
	}
}

func TestRedeclarationAcrossFiles(t *testing.T) {
	dir := writeManifests(t, map[string]string{
		"a.yaml": "imports: [b.yaml]\ntypes:\n  - name: Box\n",
		"b.yaml": "types:\n  - name: Box\n",
	})
	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	if err := unit.AddFile(filepath.Join(dir, "a.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := unit.Compile(); err == nil {
		t.Fatalf("expected a redeclaration error")
	}
}

func TestImportCycleBetweenFiles(t *testing.T) {
	dir := writeManifests(t, map[string]string{
		"a.yaml": "imports: [b.yaml]\n",
		"b.yaml": "imports: [a.yaml]\n",
	})
	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	if err := unit.AddFile(filepath.Join(dir, "a.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := unit.Compile(); err == nil {
		t.Fatalf("expected an import cycle")
	}
}

func TestCaptureToken(t *testing.T) {
	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	err := unit.AddSource("capture.yaml", []byte(`
types:
  - name: GenuineType
    params: [T]
  - name: GType
    params: [T]
    extends: GenuineType[T]
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	universe, err := unit.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok, err := CaptureToken(universe, "GType[java.util.List]", "GenuineType")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.String() != "java.util.List" {
		t.Fatalf("unexpected token %v", tok)
	}

	_, err = CaptureToken(universe, "GType[String]", "Missing")
	if !errors.Is(err, typetoken.ErrConstruction) {
		t.Fatalf("expected a construction error, got %v", err)
	}
}

func TestScenarioManifestsCompile(t *testing.T) {
	entries, err := os.ReadDir("../tests")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".yaml" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
			if err := unit.AddFile(filepath.Join("../tests", name)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err := unit.Compile()
			switch {
			case strings.HasPrefix(name, "pass_") && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case name == "fail_cycle.yaml" || name == "fail_arity.yaml":
				if err == nil {
					t.Fatalf("expected a compile error")
				}
			}
		})
	}
}

func TestSandboxedImports(t *testing.T) {
	lib := writeManifests(t, map[string]string{"collections.yaml": collections})
	outside := writeManifests(t, map[string]string{"secret.yaml": "types:\n  - name: Secret\n"})

	unit := NewCompilationUnitWithFinder(files.NewSandboxFinder(lib))
	if err := unit.AddSource("playground.yaml", []byte("imports: [collections.yaml]\n")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	universe, err := unit.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := universe.Lookup("Map"); !ok {
		t.Fatalf("expected Map from the sandboxed import")
	}

	for _, imp := range []string{
		filepath.Join(outside, "secret.yaml"),
		filepath.Join("..", filepath.Base(outside), "secret.yaml"),
	} {
		unit := NewCompilationUnitWithFinder(files.NewSandboxFinder(lib))
		err := unit.AddSource("playground.yaml", []byte("imports: ["+strconv.Quote(imp)+"]\n"))
		if err == nil {
			t.Fatalf("%s: expected the import to be refused", imp)
		}
		if strings.Contains(err.Error(), "Secret") {
			t.Fatalf("%s: error leaks the imported file: %v", imp, err)
		}
	}
}

func TestCompileReadsBothArgumentForms(t *testing.T) {
	unit := NewCompilationUnitWithFinder(files.NewFinderWithPath())
	err := unit.AddSource("forms.yaml", []byte(`
types:
  - name: Map
    params: [K, V]
  - name: ThrowerContent
    params: [E, F, T]
  - name: Content3
    params: [T, E]
    implements:
      - ThrowerContent[E, java.io.IOException, T]
  - name: Simple
    params: [X]
    implements:
      - Content3<Map<String,X>,InterruptedException>
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	universe, err := unit.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	simple, _ := universe.Lookup("Simple")
	content3, _ := universe.Lookup("Content3")
	if got := simple.GenericInterfaces()[0].String(); got != "Content3<Map<String,X>,InterruptedException>" {
		t.Fatalf("unexpected interface %v", got)
	}
	if got := content3.GenericInterfaces()[0].String(); got != "ThrowerContent<E,java.io.IOException,T>" {
		t.Fatalf("unexpected interface %v", got)
	}
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	. "github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/compile"
	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/source"
	"github.com/chtyim/fastcode/typetoken"
)

var testsPath = flag.String("tests", "tests", "directory of pass_*/fail_* scenarios")

var errorKinds = map[string]error{
	"construction":                typetoken.ErrConstruction,
	"declaring_class_mismatch":    typetoken.ErrDeclaringClassMismatch,
	"not_declared_here":           typetoken.ErrNotDeclaredHere,
	"unresolved_type_variable":    typetoken.ErrUnresolvedTypeVariable,
	"unsupported_type_expression": typetoken.ErrUnsupportedTypeExpression,
	"arity_mismatch":              typetoken.ErrArityMismatch,
}

type scenario struct {
	CompileError string  `yaml:"compile_error"`
	Queries      []query `yaml:"queries"`
}

type query struct {
	Root    string    `yaml:"root"`
	Capture string    `yaml:"capture"`
	Base    string    `yaml:"base"`
	Token   string    `yaml:"token"`
	Method  string    `yaml:"method"`
	Returns string    `yaml:"returns"`
	Params  *[]string `yaml:"params"`
	Throws  *[]string `yaml:"throws"`
	Error   string    `yaml:"error"`
}

func main() {
	flag.Parse()

	names, err := scenarioFiles(*testsPath)
	if err != nil {
		fmt.Printf("FAIL: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, name := range names {
		if err := checkFile(*testsPath, name); err != nil {
			fmt.Printf("FAIL %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("PASS %s\n", name)
	}
	if failed > 0 {
		fmt.Printf("FAIL %d of %d scenarios\n", failed, len(names))
		os.Exit(1)
	}
	fmt.Printf("ok %d scenarios\n", len(names))
}

// scenarioFiles lists the YAML scenarios directly inside dir. Finding none
// is an error.
func scenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (filepath.Ext(name) != ".yaml" && filepath.Ext(name) != ".yml") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", dir)
	}
	return names, nil
}

func checkFile(parent, name string) error {
	path := filepath.Join(parent, name)

	sc, err := readScenario(path)
	if err != nil {
		return err
	}

	failures, err, stack := TryStack(func() []error {
		return runScenario(path, sc)
	})

	switch {
	case strings.HasPrefix(name, "fail_"):
		switch {
		case err != nil && sc.CompileError != "" && !strings.Contains(err.Error(), sc.CompileError):
			return fmt.Errorf("expected compile error containing %q, got: %w", sc.CompileError, err)
		case err != nil:
			return nil
		case len(failures) > 0:
			return queryFailures(failures)
		case !expectsOnlyErrors(sc):
			return fmt.Errorf("expected error")
		}
		return nil
	case strings.HasPrefix(name, "pass_"):
		if err != nil {
			return fmt.Errorf("unexpected error: %w\n%s", err, dropStacks(stack, 3))
		}
		if len(failures) > 0 {
			return queryFailures(failures)
		}
		return nil
	default:
		return fmt.Errorf("scenario names start with pass_ or fail_")
	}
}

func readScenario(path string) (*scenario, error) {
	content, err := files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc scenario
	if err := yaml.Unmarshal(content, &sc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

// expectsOnlyErrors reports whether every query of a fail_ scenario expects
// an error, so that a fully matching run counts as the expected failure.
func expectsOnlyErrors(sc *scenario) bool {
	if len(sc.Queries) == 0 {
		return false
	}
	for _, q := range sc.Queries {
		if q.Error == "" {
			return false
		}
	}
	return true
}

// runScenario panics when the manifest does not compile and returns one
// error per query whose outcome differs from its expectation.
func runScenario(path string, sc *scenario) []error {
	unit := compile.NewCompilationUnit()
	if err := unit.AddFile(path); err != nil {
		panic(err)
	}
	universe, err := unit.Compile()
	if err != nil {
		panic(err)
	}

	var failures []error
	for i, q := range sc.Queries {
		if err := runQuery(universe, q); err != nil {
			failures = append(failures, fmt.Errorf("query %d (%s): %w", i, q.Method, err))
		}
	}
	return failures
}

func runQuery(universe *source.Universe, q query) error {
	var expected error
	if q.Error != "" {
		kind, ok := errorKinds[q.Error]
		if !ok {
			return fmt.Errorf("unknown error kind %q", q.Error)
		}
		expected = kind
	}

	err := checkQuery(universe, q)
	switch {
	case expected == nil:
		return err
	case err == nil:
		return fmt.Errorf("expected %v, got no error", q.Error)
	case !errors.Is(err, expected):
		return fmt.Errorf("expected %v, got: %w", q.Error, err)
	default:
		return nil
	}
}

func checkQuery(universe *source.Universe, q query) error {
	var tok *typetoken.Token
	var err error
	switch {
	case q.Capture != "":
		tok, err = compile.CaptureToken(universe, q.Capture, q.Base)
	default:
		tok, err = compile.RootToken(universe, q.Root)
	}
	if err != nil {
		return err
	}
	if q.Token != "" && tok.String() != q.Token {
		return mismatch("token", q.Token, tok.String())
	}
	if q.Method == "" {
		return nil
	}

	m, err := universe.Method(q.Method)
	if err != nil {
		return err
	}
	sig, err := tok.ResolveSignature(m)
	if err != nil {
		return err
	}

	if q.Returns != "" && sig.Returns.String() != q.Returns {
		return mismatch("returns", q.Returns, sig.Returns.String())
	}
	if q.Params != nil {
		if got := tokenStrings(sig.Parameters); !slices.Equal(got, *q.Params) {
			return mismatch("params", fmt.Sprint(*q.Params), fmt.Sprint(got))
		}
	}
	if q.Throws != nil {
		if got := tokenStrings(sig.Exceptions); !slices.Equal(got, *q.Throws) {
			return mismatch("throws", fmt.Sprint(*q.Throws), fmt.Sprint(got))
		}
	}
	return nil
}

func tokenStrings(toks []*typetoken.Token) []string {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.String())
	}
	return out
}

func mismatch(what, expected, got string) error {
	return fmt.Errorf("%s: expected %s, got %s", what, expected, got)
}

func queryFailures(failures []error) error {
	var b strings.Builder
	for _, err := range failures {
		fmt.Fprintf(&b, "\n  %v", err)
	}
	return fmt.Errorf("%d queries failed:%s", len(failures), b.String())
}

func dropStacks(stack string, n int) string {
	lines := strings.Split(stack, "\n")
	if len(lines) <= 1+n*2 {
		return stack
	}
	return strings.Join(lines[1+n*2:], "\n")
}

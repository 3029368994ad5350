package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/chtyim/fastcode/compile"
	"github.com/chtyim/fastcode/reader"
	"github.com/chtyim/fastcode/source"
	"github.com/chtyim/fastcode/tree"
	"github.com/chtyim/fastcode/typetoken"
)

var (
	short   = flag.Bool("short", false, "print simple names instead of qualified names")
	root    = flag.String("root", "", "root type expression, e.g. Pair[String, Integer]")
	capture = flag.String("capture", "", "supertype expression of an anonymous subclass to capture from")
	base    = flag.String("base", "", "single-parameter base type the capture reaches")
	data    = flag.String("data", "", "YAML file holding a sequence of root-typed elements")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] manifest.yaml... Type.method...\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	unit := compile.NewCompilationUnit()
	var refs []string
	for _, arg := range args {
		switch filepath.Ext(arg) {
		case ".yaml", ".yml":
			if err := unit.AddFile(arg); err != nil {
				return err
			}
		default:
			refs = append(refs, arg)
		}
	}

	universe, err := unit.Compile()
	if err != nil {
		return err
	}

	tok, err := rootToken(universe)
	if err != nil {
		return err
	}
	fmt.Printf("token %s\n", render(tok))

	for _, ref := range refs {
		m, err := universe.Method(ref)
		if err != nil {
			return err
		}
		sig, err := tok.ResolveSignature(m)
		if err != nil {
			return fmt.Errorf("%v: %w", ref, err)
		}
		fmt.Printf("%s\n", formatSignature(ref, sig))
	}

	if *data != "" {
		return dumpData(tok, *data)
	}
	return nil
}

func rootToken(universe *source.Universe) (*typetoken.Token, error) {
	switch {
	case *root != "" && *capture != "":
		return nil, fmt.Errorf("-root and -capture are exclusive")
	case *capture != "":
		if *base == "" {
			return nil, fmt.Errorf("-capture needs -base")
		}
		return compile.CaptureToken(universe, *capture, *base)
	case *root != "":
		return compile.RootToken(universe, *root)
	default:
		return nil, fmt.Errorf("one of -root or -capture is required")
	}
}

func render(tok *typetoken.Token) string {
	if !*short {
		return tok.String()
	}
	return tree.Format(tok.Type(), func(id tree.Identity) string {
		return id.Name().SimpleName()
	})
}

func renderList(toks []*typetoken.Token) string {
	parts := make([]string, 0, len(toks))
	for _, tok := range toks {
		parts = append(parts, render(tok))
	}
	return strings.Join(parts, ", ")
}

func formatSignature(ref string, sig *typetoken.Signature) string {
	s := fmt.Sprintf("%s(%s) %s", ref, renderList(sig.Parameters), render(sig.Returns))
	if len(sig.Exceptions) > 0 {
		s += " throws " + renderList(sig.Exceptions)
	}
	return s
}

func dumpData(tok *typetoken.Token, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	factory := reader.NewYAMLFactory()
	factory.Fallback = reflect.TypeFor[any]()
	it, err := factory.Create(tok, f)
	if err != nil {
		f.Close()
		return err
	}
	defer it.Close()

	fmt.Printf("%d elements of %s\n", it.Count(), render(tok))
	for it.Next() {
		spew.Dump(it.Value())
	}
	return it.Err()
}

package typetoken

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/chtyim/fastcode/tree"
)

// arrayType is a shape the resolver does not model.
type arrayType struct {
	tree.TypeBase
	Elem tree.Type
}

func (t *arrayType) String() string {
	return t.Elem.String() + "[]"
}

// hierarchy is a small host universe shared by the tests in this package.
type hierarchy struct {
	String, Integer, Long       *tree.TypeDecl
	IOException, Interrupted    *tree.TypeDecl
	Map, Set                    *tree.TypeDecl
	GenuineType, GType          *tree.TypeDecl
	Box, Pair, Wrapper          *tree.TypeDecl
	Thrower, Impl               *tree.TypeDecl
	Unrelated                   *tree.TypeDecl
	BoxGet, PairGetU, PairSetUV *tree.MethodDecl
	ThrowerRun, UnrelatedPing   *tree.MethodDecl
}

func newHierarchy() *hierarchy {
	h := &hierarchy{}
	h.String = tree.NewTypeDecl("String")
	h.Integer = tree.NewTypeDecl("Integer")
	h.Long = tree.NewTypeDecl("Long")
	h.IOException = tree.NewTypeDecl("java.io.IOException")
	h.Interrupted = tree.NewTypeDecl("InterruptedException")
	h.Map = tree.NewTypeDecl("Map", "K", "V")
	h.Set = tree.NewTypeDecl("Set", "E")

	h.GenuineType = tree.NewTypeDecl("GenuineType", "T")
	h.GType = tree.NewTypeDecl("GType", "T")
	h.GType.Extends(h.GenuineType.Type(h.GType.Param("T")))

	h.Box = tree.NewTypeDecl("Box", "T")
	h.BoxGet = h.Box.DefineMethod("get", h.Box.Param("T"), nil, nil)

	h.Pair = tree.NewTypeDecl("Pair", "U", "V")
	h.PairGetU = h.Pair.DefineMethod("getU", h.Pair.Param("U"), nil, nil)
	h.PairSetUV = h.Pair.DefineMethod("setUV", nil,
		[]tree.Type{h.Pair.Param("U"), h.Pair.Param("V"), h.Set.Type(h.Pair.Param("V"))}, nil)

	h.Wrapper = tree.NewTypeDecl("Wrapper", "X")
	h.Wrapper.Extends(h.Pair.Type(h.Map.Type(h.String.Type(), h.Wrapper.Param("X")), h.Wrapper.Param("X")))

	h.Thrower = tree.NewTypeDecl("Thrower", "E", "F")
	h.ThrowerRun = h.Thrower.DefineMethod("run", nil, nil,
		[]tree.Type{h.Thrower.Param("E"), h.Thrower.Param("F")})
	h.Impl = tree.NewTypeDecl("Impl")
	h.Impl.Extends(h.Thrower.Type(h.IOException.Type(), h.Interrupted.Type()))

	h.Unrelated = tree.NewTypeDecl("Unrelated", "T")
	h.UnrelatedPing = h.Unrelated.DefineMethod("ping", h.Unrelated.Param("T"), nil, nil)
	return h
}

func mustNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func mustFailWith(t *testing.T, err error, kind error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got no error", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

func tokenStrings(toks []*Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.String()
	}
	return out
}

func assertStrings(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries %v, got %s", len(want), want, spew.Sdump(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %q, got %q (all: %v)", i, want[i], got[i], got)
		}
	}
}

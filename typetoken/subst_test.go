package typetoken

import (
	"testing"

	"github.com/chtyim/fastcode/tree"
)

func TestApplySubstLeavesPlainTypesAlone(t *testing.T) {
	h := newHierarchy()
	ty := h.String.Type()
	got, err := ApplySubst(ty, Subst{})
	mustNoError(t, err)
	if got != ty {
		t.Fatalf("expected the same expression back, got %v", got)
	}
}

func TestApplySubstReplacesVariables(t *testing.T) {
	h := newHierarchy()
	subst := Subst{
		h.Pair.Param("U").Key(): h.Integer.Type(),
		h.Pair.Param("V").Key(): h.Set.Type(h.String.Type()),
	}
	ty := h.Map.Type(h.Pair.Param("U"), h.Map.Type(h.Pair.Param("V"), h.Long.Type()))
	got, err := ApplySubst(ty, subst)
	mustNoError(t, err)
	if got.String() != "Map<Integer,Map<Set<String>,Long>>" {
		t.Fatalf("unexpected result %v", got)
	}
	if ty.String() != "Map<U,Map<V,Long>>" {
		t.Fatalf("input was modified: %v", ty)
	}
}

func TestApplySubstScopesVariablesByOwner(t *testing.T) {
	h := newHierarchy()
	subst := Subst{h.Box.Param("T").Key(): h.String.Type()}

	_, err := ApplySubst(h.Unrelated.Param("T"), subst)
	mustFailWith(t, err, ErrUnresolvedTypeVariable)

	got, err := ApplySubst(h.Box.Param("T"), subst)
	mustNoError(t, err)
	if !tree.Identical(got, h.String.Type()) {
		t.Fatalf("expected String, got %v", got)
	}
}

func TestApplySubstRejectsUnsupportedShapes(t *testing.T) {
	h := newHierarchy()
	_, err := ApplySubst(h.Set.Type(&arrayType{Elem: h.String.Type()}), Subst{})
	mustFailWith(t, err, ErrUnsupportedTypeExpression)
}

func TestFormatSubstIsSorted(t *testing.T) {
	h := newHierarchy()
	subst := Subst{
		h.Pair.Param("V").Key(): h.Long.Type(),
		h.Pair.Param("U").Key(): h.Integer.Type(),
	}
	if got := FormatSubst(subst); got != "{{ Pair.U -> Integer ; Pair.V -> Long }}" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

package typetoken

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
)

// Subst binds type variables, keyed by owner and name, to resolved types.
// One Subst lives for one resolution call.
type Subst = common.Map[tree.VarKey, tree.Type]

func FormatSubst(s Subst) string {
	parts := make([]string, 0, len(s))
	for k, v := range s {
		parts = append(parts, fmt.Sprintf("%v -> %v", k, v))
	}
	sort.Strings(parts)
	return fmt.Sprintf("{{ %v }}", strings.Join(parts, " ; "))
}

// ApplySubst replaces every variable in ty with its binding in subst.
func ApplySubst(ty tree.Type, subst Subst) (tree.Type, error) {
	return common.Try(func() tree.Type {
		return applySubst(ty, subst)
	})
}

func applySubst(ty tree.Type, subst Subst) tree.Type {
	switch ty := ty.(type) {
	case *tree.ConcreteType:
		if !ty.IsParameterized() {
			return ty
		}
		args := make([]tree.Type, len(ty.Args))
		for i, arg := range ty.Args {
			args[i] = applySubst(arg, subst)
		}
		return &tree.ConcreteType{Identity: ty.Identity, Args: args}
	case *tree.TypeVar:
		if substTy, ok := subst.Lookup(ty.Key()); ok {
			return substTy
		}
		panic(errorf(ErrUnresolvedTypeVariable, "%v in %v", ty.Key(), FormatSubst(subst)))
	default:
		DebugDump(ty)
		panic(errorf(ErrUnsupportedTypeExpression, "%T", ty))
	}
}

func applySubstList(types []tree.Type, subst Subst) []tree.Type {
	out := make([]tree.Type, len(types))
	for i, ty := range types {
		out[i] = applySubst(ty, subst)
	}
	return out
}

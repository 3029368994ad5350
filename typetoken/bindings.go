package typetoken

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
)

// CollectBindings walks the supertype graph depth first from start until it
// reaches target, binding the type parameters of every parameterized
// expression it pops. The superclass subtree is explored before the
// interfaces, which follow in declaration order. A later binding of the same
// variable overwrites an earlier one. The supertypes of an identity are pushed
// once, so cyclic hierarchies end in ErrDeclaringClassMismatch.
func CollectBindings(start tree.Type, target tree.Identity) (Subst, error) {
	return common.Try(func() Subst {
		return collectBindings(start, target)
	})
}

func collectBindings(start tree.Type, target tree.Identity) Subst {
	subst := Subst{}
	expanded := set.New[tree.Identity](8)
	stack := []tree.Type{start}
	for len(stack) > 0 {
		var ty tree.Type
		ty, stack = common.PopBack(stack)

		concrete := asConcrete(ty)
		id := concrete.Identity
		bindArgs(concrete, subst)
		BindingsPrintf("bindings: visit %v %v\n", concrete, FormatSubst(subst))

		if id == target {
			return subst
		}
		if !expanded.Insert(id) {
			BindingsPrintf("bindings: %v already expanded\n", id.Name())
			continue
		}

		// Last pushed is first popped: the superclass goes on top, and the
		// interfaces under it in reverse so they pop in declaration order.
		for _, iface := range common.Reversed(id.GenericInterfaces()) {
			stack = append(stack, iface)
		}
		if super := id.GenericSuperclass(); super != nil {
			stack = append(stack, super)
		}
	}
	panic(errorf(ErrDeclaringClassMismatch, "%v is not a supertype of %v", target.Name(), start))
}

// bindArgs records ty's arguments, resolved through subst, under the type
// parameters of ty's identity. Raw and non-generic uses bind nothing.
func bindArgs(ty *tree.ConcreteType, subst Subst) {
	if !ty.IsParameterized() {
		return
	}
	id := ty.Identity
	params := id.TypeParams()
	if len(params) != len(ty.Args) {
		panic(errorf(ErrArityMismatch, "%v declares %d type parameters, got %v", id.Name(), len(params), ty))
	}
	for i, param := range params {
		subst.Add(tree.VarKey{Owner: id, Name: param}, applySubst(ty.Args[i], subst))
	}
}

func asConcrete(ty tree.Type) *tree.ConcreteType {
	concrete, ok := ty.(*tree.ConcreteType)
	if !ok {
		DebugDump(ty)
		panic(errorf(ErrUnsupportedTypeExpression, "expected a concrete type, got %T", ty))
	}
	return concrete
}

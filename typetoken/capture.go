package typetoken

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-set/v3"

	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
)

// Capture builds the token for the type argument that sub binds to base's
// single type parameter. Only superclass edges are followed: each step binds
// the next identity's parameters from the current identity's generic
// superclass, until base is reached.
func Capture(sub, base tree.Identity) (*Token, error) {
	tok, err := common.Try(func() *Token {
		return capture(sub, base)
	})
	if err != nil {
		if !errors.Is(err, ErrConstruction) {
			err = fmt.Errorf("%w: %w", ErrConstruction, err)
		}
		return nil, err
	}
	return tok, nil
}

func capture(sub, base tree.Identity) *Token {
	params := base.TypeParams()
	if len(params) != 1 {
		panic(errorf(ErrConstruction, "%v must declare exactly one type parameter, has %d", base.Name(), len(params)))
	}

	subst := Subst{}
	seen := set.New[tree.Identity](8)
	cur := sub
	for cur != base {
		if !seen.Insert(cur) {
			panic(errorf(ErrConstruction, "%v never reaches %v: %v is its own superclass", sub.Name(), base.Name(), cur.Name()))
		}
		super := cur.GenericSuperclass()
		if super == nil {
			panic(errorf(ErrConstruction, "%v never reaches %v", sub.Name(), base.Name()))
		}
		concrete := asConcrete(super)
		next := concrete.Identity
		if len(next.TypeParams()) > 0 && !concrete.IsParameterized() {
			panic(errorf(ErrConstruction, "%v extends raw %v", cur.Name(), next.Name()))
		}
		bindArgs(concrete, subst)
		CapturePrintf("capture: %v extends %v %v\n", cur.Name(), concrete, FormatSubst(subst))
		cur = next
	}

	root, ok := subst.Lookup(tree.VarKey{Owner: base, Name: params[0]})
	if !ok {
		panic(errorf(ErrConstruction, "%v does not bind %v.%v", sub.Name(), base.Name(), params[0]))
	}
	tok, err := Of(root)
	if err != nil {
		panic(err)
	}
	return tok
}

var anonymousCount atomic.Int64

// Subclass declares an anonymous concrete identity extending super and
// captures the argument it binds to base, e.g.
//
//	Subclass(GType.Type(Simple.Type(...)), GenuineType)
func Subclass(super *tree.ConcreteType, base tree.Identity) (*Token, error) {
	if super == nil || super.Identity == nil {
		return nil, errorf(ErrConstruction, "no superclass given")
	}
	name := fmt.Sprintf("%v$%d", super.Identity.Name(), anonymousCount.Add(1))
	anon := tree.NewTypeDecl(name).Extends(super)
	return Capture(anon, base)
}

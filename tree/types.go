package tree

import (
	"fmt"
	"strings"

	. "github.com/chtyim/fastcode/common"
)

// Type is a type expression. The core understands *ConcreteType and
// *TypeVar; any other shape is reported as unsupported.
type Type interface {
	_Type()
	String() string
}

type TypeBase struct{}

func (*TypeBase) _Type() {}

// ConcreteType names an identity, applied to Args when the identity is
// generic. Args is empty for non-generic or raw uses.
type ConcreteType struct {
	TypeBase
	Identity Identity
	Args     []Type
}

func NewConcreteType(id Identity, args ...Type) *ConcreteType {
	return &ConcreteType{Identity: id, Args: args}
}

func (t *ConcreteType) IsParameterized() bool {
	return len(t.Args) > 0
}

func (t *ConcreteType) String() string {
	return Format(t, identityName)
}

// TypeVar is a type parameter placeholder scoped to the identity that
// declares it.
type TypeVar struct {
	TypeBase
	Name  Identifier
	Owner Identity
}

func (t *TypeVar) Key() VarKey {
	return VarKey{Owner: t.Owner, Name: t.Name}
}

func (t *TypeVar) String() string {
	return t.Name.Value
}

type VarKey struct {
	Owner Identity
	Name  Identifier
}

func (k VarKey) String() string {
	if k.Owner == nil {
		return k.Name.Value
	}
	return fmt.Sprintf("%v.%v", k.Owner.Name(), k.Name)
}

func identityName(id Identity) string {
	return id.Name().String()
}

// Format renders ty as Name<Arg0,Arg1,...>, naming identities with name.
func Format(ty Type, name func(Identity) string) string {
	switch ty := ty.(type) {
	case *ConcreteType:
		if ty == nil {
			return "<nil>"
		}
		if !ty.IsParameterized() {
			return name(ty.Identity)
		}
		parts := make([]string, 0, len(ty.Args))
		for _, arg := range ty.Args {
			parts = append(parts, Format(arg, name))
		}
		return fmt.Sprintf("%s<%s>", name(ty.Identity), strings.Join(parts, ","))
	case *TypeVar:
		return ty.Name.Value
	case nil:
		return "<nil>"
	default:
		return ty.String()
	}
}

// Identical reports structural equality.
func Identical(ty1, ty2 Type) bool {
	switch ty1 := ty1.(type) {
	case *ConcreteType:
		ty2, ok := ty2.(*ConcreteType)
		if !ok {
			return false
		}
		if ty1.Identity != ty2.Identity || len(ty1.Args) != len(ty2.Args) {
			return false
		}
		for i, arg := range ty1.Args {
			if !Identical(arg, ty2.Args[i]) {
				return false
			}
		}
		return true
	case *TypeVar:
		if ty2, ok := ty2.(*TypeVar); ok {
			return ty1.Key() == ty2.Key()
		}
		return false
	default:
		return false
	}
}

// FreeTypeVars lists the variables reachable from ty, left to right.
func FreeTypeVars(ty Type) []*TypeVar {
	var vars []*TypeVar
	var walk func(Type)
	walk = func(ty Type) {
		switch ty := ty.(type) {
		case *TypeVar:
			vars = append(vars, ty)
		case *ConcreteType:
			if ty == nil {
				return
			}
			for _, arg := range ty.Args {
				walk(arg)
			}
		}
	}
	walk(ty)
	return vars
}

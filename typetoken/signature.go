package typetoken

import (
	"github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
)

// ReturnType resolves m's declared return type as seen from t.
func (t *Token) ReturnType(m tree.Method) (*Token, error) {
	return common.Try(func() *Token {
		subst := t.bindingsFor(m)
		return t.wrap(applySubst(m.GenericReturnType(), subst))
	})
}

// ParameterTypes resolves m's declared parameter types, in declaration order.
func (t *Token) ParameterTypes(m tree.Method) ([]*Token, error) {
	return common.Try(func() []*Token {
		subst := t.bindingsFor(m)
		return t.wrapList(applySubstList(m.GenericParameterTypes(), subst))
	})
}

// ExceptionTypes resolves m's declared exception types, in declaration order.
func (t *Token) ExceptionTypes(m tree.Method) ([]*Token, error) {
	return common.Try(func() []*Token {
		subst := t.bindingsFor(m)
		return t.wrapList(applySubstList(m.GenericExceptionTypes(), subst))
	})
}

// Signature is a method signature resolved against a token.
type Signature struct {
	Method     tree.Method
	Returns    *Token
	Parameters []*Token
	Exceptions []*Token
}

// ResolveSignature resolves all three parts of m with a single binding walk.
func (t *Token) ResolveSignature(m tree.Method) (*Signature, error) {
	return common.Try(func() *Signature {
		subst := t.bindingsFor(m)
		return &Signature{
			Method:     m,
			Returns:    t.wrap(applySubst(m.GenericReturnType(), subst)),
			Parameters: t.wrapList(applySubstList(m.GenericParameterTypes(), subst)),
			Exceptions: t.wrapList(applySubstList(m.GenericExceptionTypes(), subst)),
		}
	})
}

func (t *Token) bindingsFor(m tree.Method) Subst {
	declaring := m.DeclaringIdentity()
	if declaring == nil || !declaring.IsAssignableFrom(t.RawIdentity()) {
		panic(errorf(ErrNotDeclaredHere, "method %v is not declared in %v or its supertypes", m.Name(), t.RawIdentity().Name()))
	}
	return collectBindings(t.root, declaring)
}

func (t *Token) wrap(ty tree.Type) *Token {
	tok, err := Of(ty)
	if err != nil {
		// applySubst leaves no variables behind; reaching here is a bug.
		panic(err)
	}
	return tok
}

func (t *Token) wrapList(types []tree.Type) []*Token {
	out := make([]*Token, len(types))
	for i, ty := range types {
		out[i] = t.wrap(ty)
	}
	return out
}

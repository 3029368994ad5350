package compile

import (
	"fmt"

	"github.com/chtyim/fastcode/parse"
	"github.com/chtyim/fastcode/source"
	"github.com/chtyim/fastcode/tree"
	"github.com/chtyim/fastcode/typetoken"
)

// RootToken parses expr against universe and wraps it as a token.
func RootToken(universe *source.Universe, expr string) (*typetoken.Token, error) {
	ty, err := parse.ParseType(expr, universe)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", typetoken.ErrConstruction, err)
	}
	return typetoken.Of(ty)
}

// CaptureToken declares an anonymous subclass of expr and captures the type
// argument it binds to the single type parameter of base.
func CaptureToken(universe *source.Universe, expr string, base string) (*typetoken.Token, error) {
	baseDecl, ok := universe.Lookup(base)
	if !ok {
		return nil, fmt.Errorf("%w: type %v not declared", typetoken.ErrConstruction, base)
	}
	ty, err := parse.ParseType(expr, universe)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", typetoken.ErrConstruction, err)
	}
	super, ok := ty.(*tree.ConcreteType)
	if !ok {
		return nil, fmt.Errorf("%w: cannot subclass %v", typetoken.ErrConstruction, ty)
	}
	return typetoken.Subclass(super, baseDecl)
}

package typetoken

import (
	"fmt"
	"strings"

	"github.com/chtyim/fastcode/tree"
)

// Token is an immutable, fully concrete type: no type variable is reachable
// from its root. Tokens are safe to share between goroutines.
type Token struct {
	root *tree.ConcreteType
}

// Of wraps ty, which must be a concrete type without type variables.
func Of(ty tree.Type) (*Token, error) {
	root, ok := ty.(*tree.ConcreteType)
	switch {
	case ok && root == nil:
		return nil, errorf(ErrConstruction, "nil root")
	case !ok:
		return nil, errorf(ErrConstruction, "root %v (%T) is not a concrete type", ty, ty)
	}
	if vars := tree.FreeTypeVars(root); len(vars) > 0 {
		keys := make([]string, len(vars))
		for i, tv := range vars {
			keys[i] = tv.Key().String()
		}
		return nil, errorf(ErrConstruction, "%v has unresolved type variables %s", root, strings.Join(keys, ", "))
	}
	if err := checkGround(root); err != nil {
		return nil, err
	}
	return &Token{root: root}, nil
}

func MustOf(ty tree.Type) *Token {
	tok, err := Of(ty)
	if err != nil {
		panic(err)
	}
	return tok
}

func checkGround(ty tree.Type) error {
	switch ty := ty.(type) {
	case *tree.ConcreteType:
		if ty == nil || ty.Identity == nil {
			return errorf(ErrConstruction, "concrete type without identity")
		}
		for _, arg := range ty.Args {
			if err := checkGround(arg); err != nil {
				return err
			}
		}
		return nil
	case *tree.TypeVar:
		return errorf(ErrConstruction, "type variable %v is not resolved", ty.Key())
	default:
		DebugDump(ty)
		return fmt.Errorf("%w: %w", ErrConstruction, errorf(ErrUnsupportedTypeExpression, "%T", ty))
	}
}

// Type returns the root expression.
func (t *Token) Type() *tree.ConcreteType {
	return t.root
}

func (t *Token) RawIdentity() tree.Identity {
	return t.root.Identity
}

func (t *Token) Equal(other *Token) bool {
	return other != nil && tree.Identical(t.root, other.root)
}

// String renders the canonical form, e.g. Map<String,Integer>.
func (t *Token) String() string {
	return t.root.String()
}

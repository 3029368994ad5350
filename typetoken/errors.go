package typetoken

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction: a token root was not fully concrete, or a capture
	// chain could not be resolved down to its base.
	ErrConstruction = errors.New("cannot construct type token")

	ErrDeclaringClassMismatch = errors.New("declaring identity is not reachable")

	ErrNotDeclaredHere = errors.New("method is not declared in the token's hierarchy")

	ErrUnresolvedTypeVariable = errors.New("unresolved type variable")

	ErrUnsupportedTypeExpression = errors.New("unsupported type expression")

	// ErrArityMismatch: a parameterized expression whose argument count
	// differs from the declared type parameters of its identity.
	ErrArityMismatch = errors.New("type argument count mismatch")
)

func errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

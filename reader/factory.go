package reader

import (
	"fmt"
	"io"

	"github.com/chtyim/fastcode/typetoken"
)

// Factory creates iterators for the element type named by a token.
type Factory interface {
	Create(tok *typetoken.Token, src io.Reader) (DataIterator[any], error)
}

// Open creates an iterator through f and narrows its values to T. Elements
// that are not a T stop the iteration with an error.
func Open[T any](f Factory, tok *typetoken.Token, src io.Reader) (DataIterator[T], error) {
	it, err := f.Create(tok, src)
	if err != nil {
		return nil, err
	}
	return &typedIterator[T]{inner: it, tok: tok}, nil
}

type typedIterator[T any] struct {
	inner DataIterator[any]
	tok   *typetoken.Token
	value T
	err   error
}

func (it *typedIterator[T]) Next() bool {
	if it.err != nil || !it.inner.Next() {
		return false
	}
	value, ok := it.inner.Value().(T)
	if !ok {
		it.err = fmt.Errorf("element for %v is %T, not %T", it.tok, it.inner.Value(), value)
		return false
	}
	it.value = value
	return true
}

func (it *typedIterator[T]) Value() T {
	return it.value
}

func (it *typedIterator[T]) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Err()
}

func (it *typedIterator[T]) Count() int {
	return it.inner.Count()
}

func (it *typedIterator[T]) Close() error {
	return it.inner.Close()
}

package reader

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/chtyim/fastcode/files"
	"github.com/chtyim/fastcode/typetoken"
)

// YAMLFactory reads a YAML sequence, decoding each element into the Go type
// registered for the token.
type YAMLFactory struct {
	types map[string]reflect.Type
	// Fallback is used for tokens with no registration. Nil means such
	// tokens are rejected.
	Fallback reflect.Type
}

func NewYAMLFactory() *YAMLFactory {
	return &YAMLFactory{types: map[string]reflect.Type{}}
}

// Register maps name, a canonical token string such as "Pair<String,Integer>"
// or a bare identity name such as "Pair", to T.
func Register[T any](f *YAMLFactory, name string) {
	f.types[name] = reflect.TypeFor[T]()
}

// lookup tries the canonical form first, then the raw identity.
func (f *YAMLFactory) lookup(tok *typetoken.Token) (reflect.Type, error) {
	if ty, ok := f.types[tok.String()]; ok {
		return ty, nil
	}
	if ty, ok := f.types[tok.RawIdentity().Name().String()]; ok {
		return ty, nil
	}
	if f.Fallback != nil {
		return f.Fallback, nil
	}
	return nil, fmt.Errorf("no Go type registered for %v", tok)
}

func (f *YAMLFactory) Create(tok *typetoken.Token, src io.Reader) (DataIterator[any], error) {
	ty, err := f.lookup(tok)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.NewDecoder(files.NewTextReader(src)).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %v data: %w", tok, err)
	}

	var elems []*yaml.Node
	if len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("%v data: line %d: expected a sequence", tok, root.Line)
		}
		elems = root.Content
	}

	return &yamlIterator{src: src, ty: ty, elems: elems}, nil
}

type yamlIterator struct {
	src   io.Reader
	ty    reflect.Type
	elems []*yaml.Node
	pos   int
	value any
	err   error
}

func (it *yamlIterator) Next() bool {
	if it.err != nil || it.pos >= len(it.elems) {
		return false
	}
	elem := it.elems[it.pos]
	it.pos++

	ptr := reflect.New(it.ty)
	if err := elem.Decode(ptr.Interface()); err != nil {
		it.err = fmt.Errorf("line %d: %w", elem.Line, err)
		return false
	}
	it.value = ptr.Elem().Interface()
	return true
}

func (it *yamlIterator) Value() any {
	return it.value
}

func (it *yamlIterator) Err() error {
	return it.err
}

func (it *yamlIterator) Count() int {
	return len(it.elems)
}

func (it *yamlIterator) Close() error {
	it.pos = len(it.elems)
	if c, ok := it.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

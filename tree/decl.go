package tree

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"

	. "github.com/chtyim/fastcode/common"
)

// Identity is a handle to a type definition, supplied by the host.
// Implementations must answer every query the same way each time.
type Identity interface {
	Name() QualifiedName
	TypeParams() []Identifier
	// GenericSuperclass returns nil at the root of a hierarchy.
	GenericSuperclass() Type
	GenericInterfaces() []Type
	// IsAssignableFrom reports whether other is this identity or one of its
	// subtypes.
	IsAssignableFrom(other Identity) bool
}

// Method is a method declared on an identity, with its signature written in
// terms of that identity's type parameters.
type Method interface {
	Name() Identifier
	DeclaringIdentity() Identity
	// GenericReturnType is never nil; methods without a result return Void.
	GenericReturnType() Type
	GenericParameterTypes() []Type
	GenericExceptionTypes() []Type
}

// Void is the return type of methods without a result.
var Void = NewTypeDecl("void")

// TypeDecl is an in-memory Identity. Build it completely with the builder
// methods before resolving against it; it is read-only afterwards.
type TypeDecl struct {
	name       QualifiedName
	params     []Identifier
	super      Type
	interfaces []Type
	methods    []*MethodDecl
	byName     Map[Identifier, *MethodDecl]
}

func NewTypeDecl(name string, params ...string) *TypeDecl {
	return &TypeDecl{
		name:   QualifiedName(name),
		params: NewIdentifiers(params...),
		byName: NewMap[Identifier, *MethodDecl](),
	}
}

func (d *TypeDecl) Name() QualifiedName {
	return d.name
}

func (d *TypeDecl) TypeParams() []Identifier {
	return d.params
}

func (d *TypeDecl) GenericSuperclass() Type {
	return d.super
}

func (d *TypeDecl) GenericInterfaces() []Type {
	return d.interfaces
}

func (d *TypeDecl) IsAssignableFrom(other Identity) bool {
	if other == nil {
		return false
	}
	return Supertypes(other).Contains(d)
}

func (d *TypeDecl) String() string {
	return fmt.Sprintf("decl %v", d.name)
}

// Param returns the variable for one of d's declared type parameters.
func (d *TypeDecl) Param(name string) *TypeVar {
	id := NewIdentifier(name)
	for _, p := range d.params {
		if p == id {
			return &TypeVar{Name: id, Owner: d}
		}
	}
	panic(fmt.Errorf("%v does not declare type parameter %v", d.name, name))
}

// LookupParam is Param without the panic.
func (d *TypeDecl) LookupParam(name Identifier) (*TypeVar, bool) {
	for _, p := range d.params {
		if p == name {
			return &TypeVar{Name: name, Owner: d}, true
		}
	}
	return nil, false
}

// Type applies d to args. With no args it is the raw (or non-generic) use.
func (d *TypeDecl) Type(args ...Type) *ConcreteType {
	return NewConcreteType(d, args...)
}

func (d *TypeDecl) Extends(super Type) *TypeDecl {
	d.super = super
	return d
}

func (d *TypeDecl) Implements(interfaces ...Type) *TypeDecl {
	d.interfaces = append(d.interfaces, interfaces...)
	return d
}

// DefineMethod declares a method on d. A nil result means void.
func (d *TypeDecl) DefineMethod(name string, result Type, params []Type, throws []Type) *MethodDecl {
	id := NewIdentifier(name)
	if d.byName.Contains(id) {
		panic(fmt.Errorf("%v: method %v redefined", d.name, name))
	}
	if result == nil {
		result = Void.Type()
	}
	m := &MethodDecl{
		name:      id,
		declaring: d,
		result:    result,
		params:    params,
		throws:    throws,
	}
	d.methods = append(d.methods, m)
	d.byName.Add(id, m)
	return m
}

func (d *TypeDecl) Method(name string) (*MethodDecl, bool) {
	return d.byName.Lookup(NewIdentifier(name))
}

// Methods lists d's own methods in declaration order.
func (d *TypeDecl) Methods() []*MethodDecl {
	return d.methods
}

// Supertypes returns id and every identity reachable through its superclass
// and interface edges.
func Supertypes(id Identity) *set.Set[Identity] {
	seen := set.New[Identity](8)
	stack := []Identity{id}
	for len(stack) > 0 {
		var cur Identity
		cur, stack = PopBack(stack)
		if !seen.Insert(cur) {
			continue
		}
		for _, super := range DirectSupertypes(cur) {
			stack = append(stack, super)
		}
	}
	return seen
}

// DirectSupertypes lists the identities named by id's superclass and
// interface expressions.
func DirectSupertypes(id Identity) []Identity {
	var out []Identity
	if super, ok := id.GenericSuperclass().(*ConcreteType); ok {
		out = append(out, super.Identity)
	}
	for _, iface := range id.GenericInterfaces() {
		if iface, ok := iface.(*ConcreteType); ok {
			out = append(out, iface.Identity)
		}
	}
	return out
}

type MethodDecl struct {
	name      Identifier
	declaring *TypeDecl
	result    Type
	params    []Type
	throws    []Type
}

func (m *MethodDecl) Name() Identifier {
	return m.name
}

func (m *MethodDecl) DeclaringIdentity() Identity {
	return m.declaring
}

func (m *MethodDecl) GenericReturnType() Type {
	return m.result
}

func (m *MethodDecl) GenericParameterTypes() []Type {
	return m.params
}

func (m *MethodDecl) GenericExceptionTypes() []Type {
	return m.throws
}

func (m *MethodDecl) String() string {
	s := fmt.Sprintf("%v.%v(%v) %v", m.declaring.name, m.name, joinTypes(m.params), m.result)
	if len(m.throws) > 0 {
		s += " throws " + joinTypes(m.throws)
	}
	return s
}

func joinTypes(types []Type) string {
	parts := make([]string, 0, len(types))
	for _, ty := range types {
		parts = append(parts, ty.String())
	}
	return strings.Join(parts, ", ")
}

package source

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/chtyim/fastcode/algos"
	. "github.com/chtyim/fastcode/common"
	"github.com/chtyim/fastcode/tree"
)

// Universe holds the type declarations of a compiled set of manifests.
type Universe struct {
	decls    Map[QualifiedName, *tree.TypeDecl]
	implicit *set.Set[QualifiedName]
}

func NewUniverse() *Universe {
	return &Universe{
		decls:    NewMap[QualifiedName, *tree.TypeDecl](),
		implicit: set.New[QualifiedName](0),
	}
}

func (u *Universe) Def(decl *tree.TypeDecl) error {
	if u.decls.Contains(decl.Name()) {
		return fmt.Errorf("type %v redeclared", decl.Name())
	}
	u.decls.Add(decl.Name(), decl)
	return nil
}

func (u *Universe) Lookup(name string) (*tree.TypeDecl, bool) {
	return u.decls.Lookup(QualifiedName(name))
}

// LookupOrDeclare returns the named declaration, declaring an implicit leaf
// type (no params, no supertypes) the first time an unknown name is used.
func (u *Universe) LookupOrDeclare(name QualifiedName) *tree.TypeDecl {
	if decl, ok := u.decls.Lookup(name); ok {
		return decl
	}
	decl := tree.NewTypeDecl(name.String())
	u.decls.Add(name, decl)
	u.implicit.Insert(name)
	return decl
}

func (u *Universe) IsImplicit(name string) bool {
	return u.implicit.Contains(QualifiedName(name))
}

func (u *Universe) Len() int {
	return len(u.decls)
}

// Types lists every declaration with supertypes before their subtypes.
func (u *Universe) Types() []*tree.TypeDecl {
	sorted, err := algos.TopologicalSort(u.decls, func(decl *tree.TypeDecl) *set.Set[QualifiedName] {
		return SupertypeNames(decl)
	})
	if err != nil {
		panic(fmt.Errorf("inheritance cycle in universe: %w", err))
	}
	return sorted
}

// Method finds a method by "Type.method", where Type may be qualified.
func (u *Universe) Method(ref string) (*tree.MethodDecl, error) {
	i := strings.LastIndexByte(ref, '.')
	if i <= 0 || i == len(ref)-1 {
		return nil, fmt.Errorf("method reference %q is not of the form Type.method", ref)
	}
	decl, ok := u.Lookup(ref[:i])
	if !ok {
		return nil, fmt.Errorf("type %v not declared", ref[:i])
	}
	m, ok := decl.Method(ref[i+1:])
	if !ok {
		return nil, fmt.Errorf("type %v has no method %v", ref[:i], ref[i+1:])
	}
	return m, nil
}

// SupertypeNames lists the names of decl's direct supertypes.
func SupertypeNames(decl tree.Identity) *set.Set[QualifiedName] {
	names := set.New[QualifiedName](2)
	for _, super := range tree.DirectSupertypes(decl) {
		names.Insert(super.Name())
	}
	return names
}

// LookupTypeVar: no type variables are in scope at the top level.
func (u *Universe) LookupTypeVar(name Identifier) (*tree.TypeVar, bool) {
	return nil, false
}

func (u *Universe) LookupIdentity(name QualifiedName) tree.Identity {
	return u.LookupOrDeclare(name)
}

// Scope returns the scope inside decl: its type parameters, then u.
func (u *Universe) Scope(decl *tree.TypeDecl) *DeclScope {
	return &DeclScope{Universe: u, Decl: decl}
}

type DeclScope struct {
	*Universe
	Decl *tree.TypeDecl
}

func (s *DeclScope) LookupTypeVar(name Identifier) (*tree.TypeVar, bool) {
	return s.Decl.LookupParam(name)
}

// CheckAcyclic fails when a type is its own supertype.
func (u *Universe) CheckAcyclic() error {
	cycle := algos.FindCycle(u.decls, func(decl *tree.TypeDecl) *set.Set[QualifiedName] {
		return SupertypeNames(decl)
	})
	if cycle != nil {
		parts := make([]string, 0, len(cycle)+1)
		for _, name := range cycle {
			parts = append(parts, name.String())
		}
		parts = append(parts, cycle[0].String())
		return fmt.Errorf("inheritance cycle: %s", strings.Join(parts, " -> "))
	}
	return nil
}

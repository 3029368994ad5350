package common

import "go/token"

type Identifier struct {
	Value string
}

func (i Identifier) String() string {
	return i.Value
}

func (i Identifier) IsValid() bool {
	return token.IsIdentifier(i.Value)
}

func NewIdentifier(name string) Identifier {
	return Identifier{name}
}

func NewIdentifiers(names ...string) []Identifier {
	ids := make([]Identifier, len(names))
	for i, name := range names {
		ids[i] = NewIdentifier(name)
	}
	return ids
}

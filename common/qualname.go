package common

import (
	"strings"
)

// QualifiedName is a dotted type name such as "java.io.IOException".
type QualifiedName string

func (n QualifiedName) SimpleName() string {
	parts := strings.Split(n.String(), ".")
	return parts[len(parts)-1]
}

func (n QualifiedName) IsValid() bool {
	if n == "" {
		return false
	}
	for _, part := range strings.Split(n.String(), ".") {
		if !NewIdentifier(part).IsValid() {
			return false
		}
	}
	return true
}

func (n QualifiedName) String() string {
	return string(n)
}

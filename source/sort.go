package source

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/chtyim/fastcode/algos"
)

// TopologicalSort orders files so that each file comes after the files it
// imports. Files are keyed by their resolved paths; imports must already be
// resolved to the same keys.
func TopologicalSort(files map[string]*FileDef, imports func(*FileDef) []string) ([]*FileDef, error) {
	return algos.TopologicalSort(files, func(file *FileDef) *set.Set[string] {
		return set.From(imports(file))
	})
}

package algos

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// TopologicalSort orders nodes so that every node comes after the nodes its
// edges point to. Edges to keys outside nodes are ignored. Ties are broken
// by key order, so the result is deterministic.
func TopologicalSort[T any, K cmp.Ordered](nodes map[K]T, edges func(T) *set.Set[K]) ([]T, error) {
	keys := slices.Sorted(maps.Keys(nodes))

	inDegree := map[K]int{}
	for _, k := range keys {
		inDegree[k] = 0
	}
	for _, k := range keys {
		for dep := range edges(nodes[k]).Items() {
			if _, ok := nodes[dep]; ok {
				inDegree[dep]++
			}
		}
	}

	var queue []K
	for _, k := range keys {
		if inDegree[k] == 0 {
			queue = append(queue, k)
		}
	}

	var sorted []T
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		sorted = append(sorted, nodes[k])
		for _, dep := range slices.Sorted(edges(nodes[k]).Items()) {
			if _, ok := nodes[dep]; !ok {
				continue
			}
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if len(sorted) != len(nodes) {
		return nil, fmt.Errorf("cycle among %d nodes", len(nodes)-len(sorted))
	}

	slices.Reverse(sorted)

	return sorted, nil
}

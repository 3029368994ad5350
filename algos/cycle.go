package algos

import (
	"cmp"
	"maps"
	"slices"

	"github.com/hashicorp/go-set/v3"
)

// FindCycle returns the keys of one cycle reachable through edges, in path
// order, or nil when there is none.
func FindCycle[T any, K cmp.Ordered](nodes map[K]T, edges func(T) *set.Set[K]) (cycle []K) {
	visited := map[K]bool{}
	recStack := map[K]bool{}
	var path []K

	var dfs func(K) bool
	dfs = func(k K) bool {
		if recStack[k] {
			start := slices.Index(path, k)
			cycle = slices.Clone(path[start:])
			return true
		}
		if visited[k] {
			return false
		}

		visited[k] = true
		recStack[k] = true
		path = append(path, k)

		for _, dep := range slices.Sorted(edges(nodes[k]).Items()) {
			if _, ok := nodes[dep]; !ok {
				continue
			}
			if dfs(dep) {
				return true
			}
		}

		path = path[:len(path)-1]
		recStack[k] = false
		return false
	}

	for _, k := range slices.Sorted(maps.Keys(nodes)) {
		if dfs(k) {
			return cycle
		}
	}

	return nil
}

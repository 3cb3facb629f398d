// Package schedule orders a set of needed skills and distributes them
// across teaching sessions.
package schedule

import (
	"sort"

	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// subset is a membership view over a slice of skill ids.
type subset struct {
	ids []string
	in  map[string]bool
}

func newSubset(g *skillgraph.Graph, ids []string) subset {
	s := subset{in: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if s.in[id] || !g.Has(id) {
			continue
		}
		s.in[id] = true
		s.ids = append(s.ids, id)
	}
	return s
}

// dependents returns the dependents of id that lie inside the subset.
func (s subset) dependents(g *skillgraph.Graph, id string) []string {
	var out []string
	for _, d := range g.Dependents(id) {
		if s.in[d] {
			out = append(out, d)
		}
	}
	return out
}

// TopologicalSort orders ids with Kahn's algorithm over the prerequisite
// edges whose endpoints both lie in ids. The ready queue is kept sorted by
// ascending Bloom ordinal: it is seeded sorted, and re-sorted (stably) every
// time a node is released, so the lowest-level ready skill is always taken
// next and ties keep insertion order.
//
// Skills that never reach in-degree zero (cycles) are returned in leftover,
// in input order sorted stably by Bloom ordinal.
func TopologicalSort(g *skillgraph.Graph, ids []string) (order, leftover []string) {
	sub := newSubset(g, ids)

	inDegree := make(map[string]int, len(sub.ids))
	for _, id := range sub.ids {
		for _, d := range sub.dependents(g, id) {
			inDegree[d]++
		}
	}

	byBloom := func(q []string) {
		sort.SliceStable(q, func(i, j int) bool {
			return g.Bloom(q[i]).Ordinal() < g.Bloom(q[j]).Ordinal()
		})
	}

	var queue []string
	for _, id := range sub.ids {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	byBloom(queue)

	placed := make(map[string]bool, len(sub.ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		placed[id] = true

		for _, d := range sub.dependents(g, id) {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
				byBloom(queue)
			}
		}
	}

	for _, id := range sub.ids {
		if !placed[id] {
			leftover = append(leftover, id)
		}
	}
	byBloom(leftover)
	return order, leftover
}

// CriticalPathLength returns the number of skills on the longest
// prerequisite chain inside ids. It uses a memoized depth-first search; a
// node met again while still on the DFS stack counts as length 1, which
// stops recursion on cyclic input without claiming a meaningful answer for
// it.
func CriticalPathLength(g *skillgraph.Graph, ids []string) int {
	sub := newSubset(g, ids)
	memo := make(map[string]int, len(sub.ids))
	visiting := make(map[string]bool)

	var depth func(id string) int
	depth = func(id string) int {
		if v, ok := memo[id]; ok {
			return v
		}
		if visiting[id] {
			return 1
		}
		visiting[id] = true
		best := 0
		for _, d := range sub.dependents(g, id) {
			if l := depth(d); l > best {
				best = l
			}
		}
		visiting[id] = false
		memo[id] = best + 1
		return best + 1
	}

	longest := 0
	for _, id := range sub.ids {
		if l := depth(id); l > longest {
			longest = l
		}
	}
	return longest
}

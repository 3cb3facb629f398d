// Package frontier computes the teaching frontier: the minimal set of
// skills a group still needs before it can reach a set of targets.
package frontier

import (
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// Resolve walks backward from every target over prerequisite edges. A skill
// the group has mastered (coverage >= threshold) is a satisfied boundary:
// it is not needed and the walk does not expand past it. Every other
// skill reached is needed. The result is in graph declaration order.
func Resolve(g *skillgraph.Graph, targets []string, profile group.Profile, threshold float64) []string {
	needed := make(map[string]bool)

	for _, target := range targets {
		if !g.Has(target) {
			continue
		}
		visited := map[string]bool{target: true}
		queue := []string{target}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]

			if profile.Mastered(id, threshold) {
				continue
			}
			needed[id] = true

			for _, p := range g.Prerequisites(id) {
				if visited[p] {
					continue
				}
				visited[p] = true
				queue = append(queue, p)
			}
		}
	}

	out := make([]string, 0, len(needed))
	for _, id := range g.IDs() {
		if needed[id] {
			out = append(out, id)
		}
	}
	return out
}

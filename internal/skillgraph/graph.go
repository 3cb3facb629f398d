package skillgraph

import (
	"fmt"
	"slices"
	"sort"
)

// Graph holds the skills and edges of one subject domain with precomputed
// indices. It is read-only after New returns and safe for concurrent reads.
type Graph struct {
	domain     string
	skills     []Skill
	edges      []Edge
	byID       map[string]int
	prereqs    map[string][]string
	dependents map[string][]string
}

// New builds a graph for domain from skills and edges. Edges whose
// endpoints are missing are kept in Edges() but excluded from the
// prerequisite indices. Duplicate prerequisite edges are collapsed.
func New(domain string, skills []Skill, edges []Edge) *Graph {
	g := &Graph{
		domain:     domain,
		skills:     slices.Clone(skills),
		edges:      slices.Clone(edges),
		byID:       make(map[string]int, len(skills)),
		prereqs:    make(map[string][]string),
		dependents: make(map[string][]string),
	}

	for i := range g.skills {
		if _, dup := g.byID[g.skills[i].ID]; dup {
			continue
		}
		g.byID[g.skills[i].ID] = i
	}

	seen := make(map[[2]string]bool, len(edges))
	for _, e := range g.edges {
		if !e.IsPrerequisite() {
			continue
		}
		if !g.Has(e.Source) || !g.Has(e.Target) {
			continue
		}
		key := [2]string{e.Source, e.Target}
		if seen[key] {
			continue
		}
		seen[key] = true
		g.prereqs[e.Target] = append(g.prereqs[e.Target], e.Source)
		g.dependents[e.Source] = append(g.dependents[e.Source], e.Target)
	}

	return g
}

// Domain returns the domain name.
func (g *Graph) Domain() string {
	return g.domain
}

// Len returns the number of distinct skills.
func (g *Graph) Len() int {
	return len(g.byID)
}

// Has reports whether id is a skill in the graph.
func (g *Graph) Has(id string) bool {
	_, ok := g.byID[id]
	return ok
}

// Skill returns the skill with the given id.
func (g *Graph) Skill(id string) (Skill, bool) {
	i, ok := g.byID[id]
	if !ok {
		return Skill{}, false
	}
	return g.skills[i], true
}

// GetSkill returns a skill by ID, or error if not found.
func (g *Graph) GetSkill(id string) (Skill, error) {
	s, ok := g.Skill(id)
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return s, nil
}

// Bloom returns the Bloom level of id, or knowledge when id is unknown.
func (g *Graph) Bloom(id string) BloomLevel {
	s, ok := g.Skill(id)
	if !ok {
		return BloomKnowledge
	}
	return s.Bloom
}

// Label returns the label of id, falling back to the id itself.
func (g *Graph) Label(id string) string {
	s, ok := g.Skill(id)
	if !ok || s.Label == "" {
		return id
	}
	return s.Label
}

// Skills returns all skills in declaration order.
func (g *Graph) Skills() []Skill {
	out := make([]Skill, 0, len(g.byID))
	for i, s := range g.skills {
		if g.byID[s.ID] == i {
			out = append(out, s)
		}
	}
	return out
}

// IDs returns all skill ids in declaration order.
func (g *Graph) IDs() []string {
	skills := g.Skills()
	ids := make([]string, len(skills))
	for i, s := range skills {
		ids[i] = s.ID
	}
	return ids
}

// Position returns the declaration index of id, or -1.
func (g *Graph) Position(id string) int {
	i, ok := g.byID[id]
	if !ok {
		return -1
	}
	return i
}

// Edges returns every edge, including non-prerequisite and dangling ones.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Prerequisites returns the ids of the direct prerequisites of id.
func (g *Graph) Prerequisites(id string) []string {
	return slices.Clone(g.prereqs[id])
}

// Dependents returns the ids of skills that directly require id.
func (g *Graph) Dependents(id string) []string {
	return slices.Clone(g.dependents[id])
}

// HasPrerequisites reports whether id has at least one prerequisite edge.
func (g *Graph) HasPrerequisites(id string) bool {
	return len(g.prereqs[id]) > 0
}

// Roots returns all skills with no prerequisites.
func (g *Graph) Roots() []Skill {
	var roots []Skill
	for _, s := range g.Skills() {
		if !g.HasPrerequisites(s.ID) {
			roots = append(roots, s)
		}
	}
	return roots
}

// PrerequisiteClosure returns every skill reachable backward from ids over
// prerequisite edges, excluding ids themselves, in discovery order.
func (g *Graph) PrerequisiteClosure(ids []string) []string {
	start := make(map[string]bool, len(ids))
	for _, id := range ids {
		start[id] = true
	}
	visited := make(map[string]bool)
	var out []string

	queue := slices.Clone(ids)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, p := range g.prereqs[id] {
			if visited[p] {
				continue
			}
			visited[p] = true
			queue = append(queue, p)
			if !start[p] {
				out = append(out, p)
			}
		}
	}
	return out
}

// DownstreamOf returns the members of within that are reachable forward
// from id over prerequisite edges, in the order they appear in within.
func (g *Graph) DownstreamOf(id string, within []string) []string {
	reached := make(map[string]bool)
	queue := []string{id}
	visited := map[string]bool{id: true}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range g.dependents[cur] {
			if visited[d] {
				continue
			}
			visited[d] = true
			reached[d] = true
			queue = append(queue, d)
		}
	}

	var out []string
	for _, w := range within {
		if reached[w] && !slices.Contains(out, w) {
			out = append(out, w)
		}
	}
	return out
}

// TopologicalOrder returns all skills in a dependency-respecting order.
// Among skills whose prerequisites are all placed, the one declared first
// goes next. Skills on or behind a cycle follow in declaration order.
func (g *Graph) TopologicalOrder() []Skill {
	inDegree := make(map[string]int, g.Len())
	var ready []string
	for _, id := range g.IDs() {
		inDegree[id] = len(g.prereqs[id])
		if inDegree[id] == 0 {
			ready = append(ready, id)
		}
	}

	placed := make(map[string]bool, g.Len())
	order := make([]Skill, 0, g.Len())
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		s, _ := g.Skill(id)
		order = append(order, s)
		placed[id] = true

		released := false
		for _, d := range g.dependents[id] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
				released = true
			}
		}
		if released {
			sort.SliceStable(ready, func(i, j int) bool {
				return g.Position(ready[i]) < g.Position(ready[j])
			})
		}
	}

	for _, s := range g.Skills() {
		if !placed[s.ID] {
			order = append(order, s)
		}
	}
	return order
}

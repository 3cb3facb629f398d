package skillgraph

import (
	"fmt"
	"strings"
)

// Validate checks the graph for structural issues: duplicate ids, unknown
// Bloom levels, dangling edge endpoints, out-of-range confidences and
// prerequisite cycles. Returns a combined error describing all problems
// found, or nil if valid.
//
// A non-nil result does not make the graph unusable; traversals guard
// against cycles and skip dangling edges.
func (g *Graph) Validate() error {
	var errs []string

	seen := make(map[string]bool, len(g.skills))
	for _, s := range g.skills {
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate skill ID: %q", s.ID))
		}
		seen[s.ID] = true
		if !s.Bloom.Valid() {
			errs = append(errs, fmt.Sprintf("skill %q has unknown bloom level %q", s.ID, s.Bloom))
		}
	}

	for _, e := range g.edges {
		if !g.Has(e.Source) {
			errs = append(errs, fmt.Sprintf("edge %q -> %q references nonexistent source", e.Source, e.Target))
		}
		if !g.Has(e.Target) {
			errs = append(errs, fmt.Sprintf("edge %q -> %q references nonexistent target", e.Source, e.Target))
		}
		if e.Confidence < 0 || e.Confidence > 1 {
			errs = append(errs, fmt.Sprintf("edge %q -> %q: confidence must be in [0, 1], got %f", e.Source, e.Target, e.Confidence))
		}
	}

	if cyc := g.Cycles(); len(cyc) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving skills: %s", strings.Join(cyc, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("skill graph %q validation failed:\n  %s", g.domain, strings.Join(errs, "\n  "))
	}
	return nil
}

// Cycles returns the ids of skills that cannot be placed by Kahn's
// algorithm because they sit on or behind a prerequisite cycle, in
// declaration order. Returns nil for a DAG.
func (g *Graph) Cycles() []string {
	inDegree := make(map[string]int, g.Len())
	var queue []string
	for _, id := range g.IDs() {
		inDegree[id] = len(g.prereqs[id])
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, depID := range g.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	if visited == g.Len() {
		return nil
	}
	var cycleNodes []string
	for _, id := range g.IDs() {
		if inDegree[id] > 0 {
			cycleNodes = append(cycleNodes, id)
		}
	}
	return cycleNodes
}

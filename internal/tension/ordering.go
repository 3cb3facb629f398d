package tension

import "fmt"

// DependencyOrdering flags skills placed before one of their prerequisites
// in the intended sequence. Prerequisites absent from the sequence are not
// flagged here; the prerequisite gap check covers them.
type DependencyOrdering struct{}

func (DependencyOrdering) Name() string { return string(TypeDependencyOrdering) }

func (DependencyOrdering) Check(ctx *Context) ([]Tension, error) {
	pos := firstPositions(ctx.Targets)

	var out []Tension
	for i, id := range ctx.Targets {
		if pos[id] != i {
			continue
		}
		for _, prereq := range ctx.Graph.Prerequisites(id) {
			j, ok := pos[prereq]
			if !ok || j <= i {
				continue
			}
			ev := OrderingEvidence{
				Skill:                id,
				SkillPosition:        i + 1,
				Prerequisite:         prereq,
				PrerequisitePosition: j + 1,
			}
			out = append(out, newTension(SeverityCritical,
				fmt.Sprintf("%s is taught before its prerequisite", ctx.Graph.Label(id)),
				fmt.Sprintf("%q (position %d) depends on %q, which is not taught until position %d.",
					id, i+1, prereq, j+1),
				fmt.Sprintf("Move %q ahead of %q in the sequence.", prereq, id),
				ev,
			))
		}
	}
	return out, nil
}

// firstPositions maps each id to the index of its first occurrence.
func firstPositions(seq []string) map[string]int {
	pos := make(map[string]int, len(seq))
	for i, id := range seq {
		if _, ok := pos[id]; !ok {
			pos[id] = i
		}
	}
	return pos
}

// uniqueTargets returns seq without repeats, keeping first occurrences.
func uniqueTargets(seq []string) []string {
	seen := make(map[string]bool, len(seq))
	out := make([]string, 0, len(seq))
	for _, id := range seq {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

package schedule

import "math"

// Plan is an ordered, session-distributed curriculum over a set of needed
// skills.
type Plan struct {
	// Order is the dependency order of the needed skills.
	Order []string
	// Unordered holds skills Kahn's algorithm could not place because of a
	// cycle. They are still scheduled, after Order.
	Unordered              []string
	CriticalPathLength     int
	SkillsPerSession       int
	MinSessionsRecommended int
	Sessions               []Session
}

// Build orders needed, measures its critical path and distributes it across
// d.Sessions sessions. taught seeds the readiness accumulator.
func Build(d Distribution, needed []string, taught map[string]bool) Plan {
	order, leftover := TopologicalSort(d.Graph, needed)
	scheduled := make([]string, 0, len(order)+len(leftover))
	scheduled = append(scheduled, order...)
	scheduled = append(scheduled, leftover...)

	p := Plan{
		Order:              order,
		Unordered:          leftover,
		CriticalPathLength: CriticalPathLength(d.Graph, needed),
		SkillsPerSession:   SkillsPerSession(d.DurationMinutes, d.Config),
	}
	p.MinSessionsRecommended = MinSessions(len(scheduled), p.SkillsPerSession, p.CriticalPathLength)
	p.Sessions = Distribute(d, scheduled, taught)
	return p
}

// MinSessions is the larger of the capacity bound and the critical path:
// a chain of n prerequisites cannot be taught in fewer than n sessions when
// each step needs the previous one consolidated.
func MinSessions(skills, perSession, criticalPath int) int {
	if skills == 0 {
		return 0
	}
	if perSession < 1 {
		perSession = 1
	}
	n := int(math.Ceil(float64(skills) / float64(perSession)))
	if criticalPath > n {
		n = criticalPath
	}
	return n
}

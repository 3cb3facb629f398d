package tension

import (
	"fmt"
	"math"
	"strings"
)

// PrerequisiteGap flags upstream skills, outside the target set, that too
// many learners are missing or weak on.
type PrerequisiteGap struct{}

func (PrerequisiteGap) Name() string { return string(TypePrerequisiteGap) }

func (PrerequisiteGap) Check(ctx *Context) ([]Tension, error) {
	n := len(ctx.Learners)
	if n == 0 {
		return nil, nil
	}
	targets := uniqueTargets(ctx.Targets)
	cfg := ctx.Config

	var out []Tension
	for _, prereq := range ctx.Graph.PrerequisiteClosure(targets) {
		var missing, weak int
		for _, l := range ctx.Learners {
			c, ok := l.Confidence(prereq)
			switch {
			case !ok:
				missing++
			case c < cfg.LearnerGrasp:
				weak++
			}
		}

		frac := float64(missing+weak) / float64(n)
		if frac < cfg.GapWarningRatio {
			continue
		}
		sev := SeverityWarning
		if frac >= cfg.GapCriticalRatio {
			sev = SeverityCritical
		}

		downstream := ctx.Graph.DownstreamOf(prereq, targets)
		ev := GapEvidence{
			Prerequisite:     prereq,
			MissingLearners:  missing,
			WeakLearners:     weak,
			TotalLearners:    n,
			AtRiskPercentage: int(math.Round(frac * 100)),
			DependentTargets: downstream,
		}
		label := ctx.Graph.Label(prereq)
		out = append(out, newTension(sev,
			fmt.Sprintf("Prerequisite gap: %s", label),
			fmt.Sprintf("%d%% of learners (%d with no record, %d below %.0f%% confidence) are not ready on %q, which %s depends on.",
				ev.AtRiskPercentage, missing, weak, cfg.LearnerGrasp*100, prereq, strings.Join(downstream, ", ")),
			fmt.Sprintf("Open with a short review or diagnostic of %s before the dependent skills.", label),
			ev,
		))
	}
	return out, nil
}

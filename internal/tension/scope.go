package tension

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/abhisek/lessonlens/internal/group"
)

// ScopeTime compares the estimated instruction time of the targets against
// the available duration.
type ScopeTime struct{}

func (ScopeTime) Name() string { return string(TypeScopeTimeMismatch) }

func (ScopeTime) Check(ctx *Context) ([]Tension, error) {
	available := ctx.DurationMinutes
	if available <= 0 {
		return nil, nil
	}

	estimates := EstimateMinutes(ctx)
	total := ctx.Config.OverheadMinutes
	for _, e := range estimates {
		total += e.Minutes
	}
	if total <= available {
		return nil, nil
	}

	overage := total - available
	sev := SeverityWarning
	if overage > available*ctx.Config.CriticalOverageRatio {
		sev = SeverityCritical
	}

	deferred := deferCandidates(ctx, estimates, overage)
	ev := ScopeEvidence{
		EstimatedMinutes: round1(total),
		AvailableMinutes: available,
		OverageMinutes:   round1(overage),
		OveragePercent:   round1(overage / available * 100),
		Estimates:        estimates,
		DeferCandidates:  deferred,
	}

	if len(estimates) == 0 {
		return []Tension{newTension(sev,
			"Lesson scope exceeds available time",
			fmt.Sprintf("Setup and wrap-up alone need about %.0f minutes; %.0f minutes are available (%.0f%% over).",
				total, available, ev.OveragePercent),
			"Lengthen the session or fold it into a neighboring one.",
			ev,
		)}, nil
	}

	labels := make([]string, len(deferred))
	for i, id := range deferred {
		labels[i] = ctx.Graph.Label(id)
	}
	return []Tension{newTension(sev,
		"Lesson scope exceeds available time",
		fmt.Sprintf("%d skills need about %.0f minutes including %.0f minutes of setup and wrap-up; %.0f minutes are available (%.0f%% over).",
			len(estimates), total, ctx.Config.OverheadMinutes, available, ev.OveragePercent),
		fmt.Sprintf("Defer the most advanced skills to a later session: %s.", strings.Join(labels, ", ")),
		ev,
	)}, nil
}

// EstimateMinutes returns a per-target estimate, in sequence order, for every
// distinct target present in the graph.
func EstimateMinutes(ctx *Context) []SkillEstimate {
	out := []SkillEstimate{}
	for _, id := range uniqueTargets(ctx.Targets) {
		s, ok := ctx.Graph.Skill(id)
		if !ok {
			continue
		}
		readiness := group.MeanConfidence(ctx.Learners, id)
		base := ctx.Config.BaseMinutes(s.Bloom)
		out = append(out, SkillEstimate{
			SkillID:   id,
			Bloom:     string(s.Bloom),
			Readiness: math.Round(readiness*100) / 100,
			Minutes:   base * (1 + (1-readiness)*ctx.Config.ReadinessPenalty),
		})
	}
	return out
}

// deferCandidates picks skills, most advanced first, until their combined
// estimate covers the overage.
func deferCandidates(ctx *Context, estimates []SkillEstimate, overage float64) []string {
	sorted := make([]SkillEstimate, len(estimates))
	copy(sorted, estimates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ctx.Graph.Bloom(sorted[i].SkillID).Ordinal() > ctx.Graph.Bloom(sorted[j].SkillID).Ordinal()
	})

	out := []string{}
	var covered float64
	for _, e := range sorted {
		if covered >= overage {
			break
		}
		out = append(out, e.SkillID)
		covered += e.Minutes
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package tension

import (
	"fmt"
	"math"

	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// BloomMismatch flags advanced targets far above the highest Bloom level
// the group has demonstrated.
type BloomMismatch struct{}

func (BloomMismatch) Name() string { return string(TypeBloomLevelMismatch) }

func (BloomMismatch) Check(ctx *Context) ([]Tension, error) {
	n := len(ctx.Learners)
	if n == 0 {
		return nil, nil
	}
	cfg := ctx.Config
	advanced := cfg.AdvancedBloom.Ordinal()

	maxLevels := make([]int, n)
	var sum float64
	for i, l := range ctx.Learners {
		best := 0
		for skillID, c := range l.Skills {
			if c < cfg.BloomEvidence {
				continue
			}
			s, ok := ctx.Graph.Skill(skillID)
			if !ok {
				continue
			}
			if o := s.Bloom.Ordinal(); o > best {
				best = o
			}
		}
		maxLevels[i] = best
		sum += float64(best)
	}
	avg := sum / float64(n)

	var out []Tension
	for _, id := range uniqueTargets(ctx.Targets) {
		s, ok := ctx.Graph.Skill(id)
		if !ok {
			continue
		}
		ord := s.Bloom.Ordinal()
		if ord < advanced {
			continue
		}
		gap := float64(ord) - avg
		if gap < cfg.BloomGapWarning {
			continue
		}
		sev := SeverityWarning
		if gap >= cfg.BloomGapCritical {
			sev = SeverityCritical
		}

		below := 0
		for _, m := range maxLevels {
			if m < ord-1 {
				below++
			}
		}
		ev := BloomEvidence{
			Skill:              id,
			TargetLevel:        string(s.Bloom),
			TargetOrdinal:      ord,
			GroupAverage:       math.Round(avg*100) / 100,
			Gap:                math.Round(gap*100) / 100,
			PercentBelowTarget: int(math.Round(float64(below) / float64(n) * 100)),
		}
		out = append(out, newTension(sev,
			fmt.Sprintf("%s asks for %s-level work", s.Label, s.Bloom),
			fmt.Sprintf("The group's demonstrated level averages %.1f on a 0-5 scale against %d for %q; %d%% of learners have not yet shown work within one level of it.",
				avg, ord, id, ev.PercentBelowTarget),
			fmt.Sprintf("Scaffold with a %s-level activity first, or pair learners so the %s task is supported.",
				skillgraph.BloomFromOrdinal(ord-1), s.Bloom),
			ev,
		))
	}
	return out, nil
}

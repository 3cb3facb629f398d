package group

import "sort"

// LearnerSkillMap is one learner's per-skill confidence, in [0, 1].
type LearnerSkillMap struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Skills map[string]float64 `json:"skills"`
}

// NewLearnerSkillMap merges assessed and inferred confidences by taking the
// maximum per skill. Values are clamped to [0, 1]. Neither input is mutated.
func NewLearnerSkillMap(id, name string, assessed, inferred map[string]float64) LearnerSkillMap {
	skills := make(map[string]float64, len(assessed)+len(inferred))
	for _, src := range []map[string]float64{assessed, inferred} {
		for skillID, c := range src {
			c = clamp01(c)
			if prev, ok := skills[skillID]; !ok || c > prev {
				skills[skillID] = c
			}
		}
	}
	return LearnerSkillMap{ID: id, Name: name, Skills: skills}
}

// Confidence returns the learner's confidence for skillID and whether one
// was recorded.
func (m LearnerSkillMap) Confidence(skillID string) (float64, bool) {
	c, ok := m.Skills[skillID]
	return c, ok
}

// SkillIDs returns the recorded skill ids in sorted order.
func (m LearnerSkillMap) SkillIDs() []string {
	ids := make([]string, 0, len(m.Skills))
	for id := range m.Skills {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

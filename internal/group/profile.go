package group

import "sort"

// SkillCoverage is the group-level view of a single skill.
type SkillCoverage struct {
	SkillID string `json:"skillId"`
	// Count is the number of learners whose confidence meets the grasp threshold.
	Count int `json:"count"`
	// Fraction is Count divided by the group size.
	Fraction float64 `json:"fraction"`
	// AvgConfidence is averaged over the qualifying learners only.
	AvgConfidence float64 `json:"avgConfidence"`
}

// Profile aggregates a group's skill coverage. The zero value is an empty
// profile over zero learners.
type Profile struct {
	Learners int
	skills   map[string]SkillCoverage
}

// Aggregate builds a Profile from learners. A learner "has" a skill when
// their confidence is at least grasp. Every skill id seen on any learner
// gets an entry, including skills nobody qualifies for.
func Aggregate(learners []LearnerSkillMap, grasp float64) Profile {
	p := Profile{
		Learners: len(learners),
		skills:   make(map[string]SkillCoverage),
	}

	sums := make(map[string]float64)
	for _, l := range learners {
		for skillID, c := range l.Skills {
			cov := p.skills[skillID]
			cov.SkillID = skillID
			if c >= grasp {
				cov.Count++
				sums[skillID] += c
			}
			p.skills[skillID] = cov
		}
	}

	for skillID, cov := range p.skills {
		if p.Learners > 0 {
			cov.Fraction = float64(cov.Count) / float64(p.Learners)
		}
		if cov.Count > 0 {
			cov.AvgConfidence = sums[skillID] / float64(cov.Count)
		}
		p.skills[skillID] = cov
	}
	return p
}

// Coverage returns the coverage of skillID. Unknown skills report zero
// coverage.
func (p Profile) Coverage(skillID string) SkillCoverage {
	if cov, ok := p.skills[skillID]; ok {
		return cov
	}
	return SkillCoverage{SkillID: skillID}
}

// Fraction returns the fraction of the group that has skillID.
func (p Profile) Fraction(skillID string) float64 {
	return p.Coverage(skillID).Fraction
}

// Mastered reports whether the group collectively has skillID, i.e. its
// coverage fraction is at least threshold.
func (p Profile) Mastered(skillID string, threshold float64) bool {
	if p.Learners == 0 {
		return false
	}
	return p.Fraction(skillID) >= threshold
}

// MasteredSet returns every skill whose coverage meets threshold.
func (p Profile) MasteredSet(threshold float64) map[string]bool {
	out := make(map[string]bool)
	for id := range p.skills {
		if p.Mastered(id, threshold) {
			out[id] = true
		}
	}
	return out
}

// All returns every coverage entry sorted by skill id.
func (p Profile) All() []SkillCoverage {
	out := make([]SkillCoverage, 0, len(p.skills))
	for _, cov := range p.skills {
		out = append(out, cov)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out
}

// MeanConfidence returns the mean confidence for skillID across every
// learner in the group, counting learners with no record as 0. Returns 0
// for an empty group.
func MeanConfidence(learners []LearnerSkillMap, skillID string) float64 {
	if len(learners) == 0 {
		return 0
	}
	var sum float64
	for _, l := range learners {
		sum += l.Skills[skillID]
	}
	return sum / float64(len(learners))
}

package schedule

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/pacing"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// Readiness says whether a scheduled skill's prerequisites are in place.
type Readiness string

const (
	ReadinessReady   Readiness = "ready"
	ReadinessPartial Readiness = "partial"
	ReadinessBlocked Readiness = "blocked"
)

// ScheduledSkill is a skill placed in a session.
type ScheduledSkill struct {
	ID        string                `json:"id"`
	Label     string                `json:"label"`
	Bloom     skillgraph.BloomLevel `json:"bloomLevel"`
	Readiness Readiness             `json:"readiness"`
}

// Session is one teaching session of a curriculum. Index is 1-based.
type Session struct {
	Index int `json:"index"`
	// Focus is the most frequent Bloom level among Skills; empty when the
	// session has no new skills.
	Focus     skillgraph.BloomLevel `json:"bloomFocus,omitempty"`
	Skills    []ScheduledSkill      `json:"skills"`
	Review    []string              `json:"reviewSkills"`
	Milestone string                `json:"milestone"`
}

// SkillIDs returns the ids of the session's new skills in order.
func (s Session) SkillIDs() []string {
	ids := make([]string, len(s.Skills))
	for i, sk := range s.Skills {
		ids[i] = sk.ID
	}
	return ids
}

// SkillsPerSession is the session capacity: the share of the session left
// after overhead divided by the per-skill pacing, never less than one.
func SkillsPerSession(durationMinutes float64, cfg pacing.Config) int {
	effective := durationMinutes * cfg.SessionUtilization
	n := int(math.Floor(effective/cfg.MinutesPerSkill + 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// Distribution holds what Distribute needs besides the ordered skills.
type Distribution struct {
	Graph           *skillgraph.Graph
	Profile         group.Profile
	Sessions        int
	DurationMinutes float64
	Config          pacing.Config
}

// Distribute fills sessions greedily in order. Every session but the last
// takes at most SkillsPerSession skills; the last takes whatever remains.
// Sessions after the first review up to MaxReviewSkills skills copied from
// the previous session. Sessions left with nothing new review the first
// PaddingReviewSkills skills of the previous session.
//
// taught is the set of skills considered taught before the first session,
// normally the group-mastered set. It is not modified; each session sees
// the skills scheduled in earlier sessions added to it.
func Distribute(d Distribution, order []string, taught map[string]bool) []Session {
	n := d.Sessions
	if n < 1 {
		n = 1
	}
	per := SkillsPerSession(d.DurationMinutes, d.Config)

	acc := make(map[string]bool, len(taught)+len(order))
	for id, ok := range taught {
		if ok {
			acc[id] = true
		}
	}

	sessions := make([]Session, 0, n)
	next := 0
	for i := 0; i < n; i++ {
		var chunk []string
		if next < len(order) {
			end := next + per
			if i == n-1 || end > len(order) {
				end = len(order)
			}
			chunk = order[next:end]
			next = end
		}

		var review []string
		if i > 0 {
			prev := sessions[i-1].SkillIDs()
			limit := d.Config.MaxReviewSkills
			if len(chunk) == 0 {
				limit = d.Config.PaddingReviewSkills
			}
			review = firstN(prev, limit)
		}

		var s Session
		s, acc = buildSession(d, i+1, chunk, review, acc)
		sessions = append(sessions, s)
	}
	return sessions
}

// buildSession classifies chunk against taught and returns the session along
// with taught extended by chunk.
func buildSession(d Distribution, index int, chunk, review []string, taught map[string]bool) (Session, map[string]bool) {
	s := Session{
		Index:  index,
		Skills: make([]ScheduledSkill, 0, len(chunk)),
		Review: review,
	}
	if s.Review == nil {
		s.Review = []string{}
	}
	for _, id := range chunk {
		s.Skills = append(s.Skills, ScheduledSkill{
			ID:        id,
			Label:     d.Graph.Label(id),
			Bloom:     d.Graph.Bloom(id),
			Readiness: Classify(d.Graph, id, d.Profile, d.Config.GroupMastery, taught),
		})
	}
	s.Focus = dominantBloom(s.Skills)
	s.Milestone = milestone(d.Graph, s)

	next := make(map[string]bool, len(taught)+len(chunk))
	for id := range taught {
		next[id] = true
	}
	for _, id := range chunk {
		next[id] = true
	}
	return s, next
}

// Classify rates a skill's readiness. A skill without prerequisite edges is
// ready. Otherwise each prerequisite is satisfied when the group has mastered
// it or it is in taught: all satisfied is ready, some is partial, none is
// blocked.
func Classify(g *skillgraph.Graph, id string, profile group.Profile, mastery float64, taught map[string]bool) Readiness {
	prereqs := g.Prerequisites(id)
	if len(prereqs) == 0 {
		return ReadinessReady
	}
	satisfied := 0
	for _, p := range prereqs {
		if profile.Fraction(p) >= mastery || taught[p] {
			satisfied++
		}
	}
	switch satisfied {
	case len(prereqs):
		return ReadinessReady
	case 0:
		return ReadinessBlocked
	default:
		return ReadinessPartial
	}
}

// dominantBloom returns the most frequent level; ties go to the lower level.
func dominantBloom(skills []ScheduledSkill) skillgraph.BloomLevel {
	if len(skills) == 0 {
		return ""
	}
	counts := make(map[skillgraph.BloomLevel]int)
	for _, s := range skills {
		counts[s.Bloom]++
	}
	var best skillgraph.BloomLevel
	bestCount := 0
	for _, l := range skillgraph.AllBloomLevels() {
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best
}

func milestone(g *skillgraph.Graph, s Session) string {
	if len(s.Skills) == 0 {
		if len(s.Review) == 0 {
			return "Open practice and catch-up."
		}
		return fmt.Sprintf("Review and consolidate: %s.", joinLabels(g, s.Review))
	}
	return fmt.Sprintf("Learners can %s %s.", s.Focus.Verb(), strings.ToLower(joinLabels(g, s.SkillIDs())))
}

func joinLabels(g *skillgraph.Graph, ids []string) string {
	const shown = 3
	labels := make([]string, 0, shown)
	for i, id := range ids {
		if i == shown {
			break
		}
		labels = append(labels, g.Label(id))
	}
	out := strings.Join(labels, ", ")
	if extra := len(ids) - shown; extra > 0 {
		out += fmt.Sprintf(" and %d more", extra)
	}
	return out
}

func firstN(ids []string, n int) []string {
	if n > len(ids) {
		n = len(ids)
	}
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	copy(out, ids[:n])
	return out
}

package engine

import (
	"context"
	"time"

	"github.com/abhisek/lessonlens/internal/frontier"
	"github.com/abhisek/lessonlens/internal/schedule"
)

// CurriculumRequest asks for a plan of Sessions sessions reaching Targets.
// An empty Targets means every skill in the domain.
type CurriculumRequest struct {
	Domain         string   `json:"domain" validate:"required"`
	Group          string   `json:"group" validate:"required"`
	Sessions       int      `json:"numberOfSessions"`
	SessionMinutes float64  `json:"sessionDurationMinutes" validate:"gt=0"`
	Targets        []string `json:"targetSkills,omitempty"`
}

// Curriculum is the result of ComposeCurriculum.
type Curriculum struct {
	RequestID              string             `json:"requestId"`
	Domain                 string             `json:"domain"`
	NeededSkills           []string           `json:"neededSkills"`
	CriticalPathLength     int                `json:"criticalPathLength"`
	MinSessionsRecommended int                `json:"minSessionsRecommended"`
	SkillsPerSession       int                `json:"skillsPerSession"`
	Sessions               []schedule.Session `json:"sessions"`
	// Unordered lists needed skills caught in a prerequisite cycle. They are
	// scheduled after the ordered ones.
	Unordered        []string `json:"unordered,omitempty"`
	ExcludedLearners []string `json:"excludedLearners"`
}

// ComposeCurriculum resolves the teaching frontier for the targets, orders
// it and distributes it across the requested sessions. Skills the group has
// already mastered count as taught from the first session.
func (s *Service) ComposeCurriculum(ctx context.Context, req CurriculumRequest) (*Curriculum, error) {
	start := time.Now()
	log, id := s.requestLogger(ctx, "compose_curriculum")

	snap, err := s.load(ctx, log, req.Domain, req.Group)
	if err != nil {
		log.Info("request failed", "error", err)
		return nil, err
	}
	if err := checkTargets(snap.graph, req.Targets); err != nil {
		log.Info("request failed", "error", err)
		return nil, err
	}

	targets := req.Targets
	if len(targets) == 0 {
		targets = snap.graph.IDs()
	}
	sessions := req.Sessions
	if sessions < 1 {
		log.Warn("session count below one, using one", "requested", req.Sessions)
		sessions = 1
	}

	needed := frontier.Resolve(snap.graph, targets, snap.profile, s.Config.GroupMastery)
	plan := schedule.Build(schedule.Distribution{
		Graph:           snap.graph,
		Profile:         snap.profile,
		Sessions:        sessions,
		DurationMinutes: req.SessionMinutes,
		Config:          s.Config,
	}, needed, snap.profile.MasteredSet(s.Config.GroupMastery))

	if len(plan.Unordered) > 0 {
		log.Warn("needed skills on a prerequisite cycle", "skills", plan.Unordered)
	}

	c := &Curriculum{
		RequestID:              id,
		Domain:                 req.Domain,
		NeededSkills:           nonNil(needed),
		CriticalPathLength:     plan.CriticalPathLength,
		MinSessionsRecommended: plan.MinSessionsRecommended,
		SkillsPerSession:       plan.SkillsPerSession,
		Sessions:               plan.Sessions,
		Unordered:              plan.Unordered,
		ExcludedLearners:       nonNil(snap.excluded),
	}
	log.Info("request complete",
		"domain", req.Domain,
		"group", req.Group,
		"needed", len(needed),
		"sessions", len(plan.Sessions),
		"min_sessions", plan.MinSessionsRecommended,
		"duration", time.Since(start),
	)
	return c, nil
}

package engine

import (
	"context"
	"time"

	"github.com/abhisek/lessonlens/internal/tension"
)

// TensionRequest asks for the tensions of teaching Targets, in that order,
// to a group.
type TensionRequest struct {
	Domain  string   `json:"domain" validate:"required"`
	Group   string   `json:"group" validate:"required"`
	Targets []string `json:"targetSkills"`
	// DurationMinutes <= 0 skips the scope/time check.
	DurationMinutes float64             `json:"durationMinutes,omitempty"`
	Constraints     tension.Constraints `json:"constraints"`
}

// TensionReport is the result of DetectTensions.
type TensionReport struct {
	RequestID        string            `json:"requestId"`
	Tensions         []tension.Tension `json:"tensions"`
	Counts           tension.Counts    `json:"countsBySeverity"`
	Summary          string            `json:"narrativeSummary"`
	LearnerCount     int               `json:"learnerCount"`
	ExcludedLearners []string          `json:"excludedLearners"`
}

// DetectTensions loads the domain and group, checks the targets and runs
// every tension check. A failing check is logged and left out; the report
// is still returned.
func (s *Service) DetectTensions(ctx context.Context, req TensionRequest) (*TensionReport, error) {
	start := time.Now()
	log, id := s.requestLogger(ctx, "detect_tensions")

	snap, err := s.load(ctx, log, req.Domain, req.Group)
	if err != nil {
		log.Info("request failed", "error", err)
		return nil, err
	}
	if err := checkTargets(snap.graph, req.Targets); err != nil {
		log.Info("request failed", "error", err)
		return nil, err
	}

	tctx := &tension.Context{
		Graph:           snap.graph,
		Targets:         req.Targets,
		Learners:        snap.learners,
		Profile:         snap.profile,
		DurationMinutes: req.DurationMinutes,
		Constraints:     req.Constraints,
		Config:          s.Config,
	}
	tensions, failures := s.Detector.Detect(tctx)
	for _, f := range failures {
		log.Warn("tension check failed", "check", f.Check, "error", f.Err)
	}
	if tensions == nil {
		tensions = []tension.Tension{}
	}

	report := &TensionReport{
		RequestID:        id,
		Tensions:         tensions,
		Counts:           tension.Count(tensions),
		Summary:          tension.Narrative(tensions),
		LearnerCount:     len(snap.learners),
		ExcludedLearners: nonNil(snap.excluded),
	}
	log.Info("request complete",
		"domain", req.Domain,
		"group", req.Group,
		"targets", len(req.Targets),
		"tensions", report.Counts.Total(),
		"critical", report.Counts.Critical,
		"duration", time.Since(start),
	)
	return report, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

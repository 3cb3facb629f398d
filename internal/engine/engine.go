// Package engine exposes the two top-level operations, tension detection
// and curriculum composition, over a catalog of domains and groups.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/logging"
	"github.com/abhisek/lessonlens/internal/pacing"
	"github.com/abhisek/lessonlens/internal/skillgraph"
	"github.com/abhisek/lessonlens/internal/tension"
)

// Service runs requests against a catalog. It keeps no per-request state
// and is safe for concurrent use.
type Service struct {
	Catalog  catalog.Catalog
	Config   pacing.Config
	Logger   *slog.Logger
	Detector *tension.Detector
}

// New returns a Service with the default checks. A nil logger discards.
func New(cat catalog.Catalog, cfg pacing.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		Catalog:  cat,
		Config:   cfg,
		Logger:   logger,
		Detector: tension.NewDetector(),
	}
}

// snapshot is everything loaded for one request.
type snapshot struct {
	graph    *skillgraph.Graph
	learners []group.LearnerSkillMap
	excluded []string
	profile  group.Profile
}

// load fetches the domain and group concurrently and aggregates the
// group's clean learners.
func (s *Service) load(ctx context.Context, log *slog.Logger, domain, groupName string) (*snapshot, error) {
	var (
		g   *skillgraph.Graph
		grp catalog.Group
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		g, err = s.Catalog.Domain(egCtx, domain)
		if errors.Is(err, catalog.ErrNotFound) {
			return &NotFoundError{Kind: "domain", Name: domain}
		}
		if err != nil {
			return fmt.Errorf("load domain %q: %w", domain, err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		grp, err = s.Catalog.Group(egCtx, groupName)
		if errors.Is(err, catalog.ErrNotFound) {
			return &NotFoundError{Kind: "group", Name: groupName}
		}
		if err != nil {
			return fmt.Errorf("load group %q: %w", groupName, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		log.Warn("domain graph has structural problems", "domain", domain, "error", err)
	}
	if cyc := g.Cycles(); len(cyc) > 0 {
		log.Warn("prerequisite cycle tolerated", "domain", domain, "skills", cyc)
	}

	for _, r := range grp.Records {
		if r.Err != nil {
			log.Warn("excluding learner record", "group", groupName, "learner", r.ID, "error", r.Err)
		}
	}
	learners, excluded := grp.Learners()

	return &snapshot{
		graph:    g,
		learners: learners,
		excluded: excluded,
		profile:  group.Aggregate(learners, s.Config.LearnerGrasp),
	}, nil
}

// checkTargets returns an InvalidReferenceError when any target is not in g.
func checkTargets(g *skillgraph.Graph, targets []string) error {
	var invalid []string
	for _, t := range targets {
		if !g.Has(t) && !slices.Contains(invalid, t) {
			invalid = append(invalid, t)
		}
	}
	if len(invalid) == 0 {
		return nil
	}
	return &InvalidReferenceError{Domain: g.Domain(), Invalid: invalid, Valid: g.IDs()}
}

type requestIDKey struct{}

// WithRequestID attaches a caller-chosen request id to ctx. Requests
// without one get a fresh UUID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func (s *Service) requestLogger(ctx context.Context, op string) (*slog.Logger, string) {
	id, _ := ctx.Value(requestIDKey{}).(string)
	if id == "" {
		id = uuid.NewString()
	}
	return s.Logger.With("request_id", id, "op", op), id
}

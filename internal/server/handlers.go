package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/engine"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Version: s.version})
}

// handleTensions handles POST /v1/tensions.
//
//	200 OK: engine.TensionReport
//	400 Bad Request: malformed or incomplete body
//	404 Not Found: unknown domain or group
//	422 Unprocessable Entity: unknown target skill ids
func (s *Server) handleTensions(c *gin.Context) {
	const op = "detect_tensions"
	start := time.Now()

	var req engine.TensionRequest
	if !s.bind(c, &req) {
		s.metrics.observe(op, "bad_request", time.Since(start).Seconds())
		return
	}

	report, err := s.svc.DetectTensions(c.Request.Context(), req)
	if err != nil {
		s.metrics.observe(op, s.writeError(c, err), time.Since(start).Seconds())
		return
	}
	s.metrics.countTensions(report.Tensions)
	s.metrics.observe(op, "ok", time.Since(start).Seconds())
	c.JSON(http.StatusOK, report)
}

// handleCurriculum handles POST /v1/curriculum.
//
//	200 OK: engine.Curriculum
//	400 Bad Request: malformed or incomplete body
//	404 Not Found: unknown domain or group
//	422 Unprocessable Entity: unknown target skill ids
func (s *Server) handleCurriculum(c *gin.Context) {
	const op = "compose_curriculum"
	start := time.Now()

	var req engine.CurriculumRequest
	if !s.bind(c, &req) {
		s.metrics.observe(op, "bad_request", time.Since(start).Seconds())
		return
	}

	cur, err := s.svc.ComposeCurriculum(c.Request.Context(), req)
	if err != nil {
		s.metrics.observe(op, s.writeError(c, err), time.Since(start).Seconds())
		return
	}
	s.metrics.observe(op, "ok", time.Since(start).Seconds())
	c.JSON(http.StatusOK, cur)
}

// handleDomains handles GET /v1/domains.
func (s *Server) handleDomains(c *gin.Context) {
	names, err := s.svc.Catalog.Domains(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, DomainsResponse{Domains: names})
}

// handleSkills handles GET /v1/domains/:domain/skills.
func (s *Server) handleSkills(c *gin.Context) {
	name := c.Param("domain")
	g, err := s.svc.Catalog.Domain(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			err = &engine.NotFoundError{Kind: "domain", Name: name}
		}
		s.writeError(c, err)
		return
	}

	resp := SkillsResponse{Domain: g.Domain(), Skills: make([]SkillSummary, 0, g.Len())}
	for _, sk := range g.Skills() {
		prereqs := g.Prerequisites(sk.ID)
		if prereqs == nil {
			prereqs = []string{}
		}
		resp.Skills = append(resp.Skills, SkillSummary{Skill: sk, Prerequisites: prereqs})
	}
	c.JSON(http.StatusOK, resp)
}

// bind decodes and validates the JSON body, writing a 400 on failure.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.log.Warn("invalid request body", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return false
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_REQUEST"})
		return false
	}
	return true
}

// writeError maps engine errors to status codes and returns the outcome
// label used for metrics.
func (s *Server) writeError(c *gin.Context, err error) string {
	var inv *engine.InvalidReferenceError
	switch {
	case errors.As(err, &inv):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Code:    "INVALID_REFERENCE",
			Invalid: inv.Invalid,
			Valid:   inv.Valid,
		})
		return "invalid_reference"
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})
		return "not_found"
	default:
		s.log.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: "INTERNAL"})
		return "error"
	}
}

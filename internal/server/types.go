package server

import "github.com/abhisek/lessonlens/internal/skillgraph"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	// Invalid and Valid are set for unknown skill ids.
	Invalid []string `json:"invalid,omitempty"`
	Valid   []string `json:"valid,omitempty"`
}

// DomainsResponse is the body of GET /v1/domains.
type DomainsResponse struct {
	Domains []string `json:"domains"`
}

// SkillSummary is one entry of the skill listing.
type SkillSummary struct {
	skillgraph.Skill
	Prerequisites []string `json:"prerequisites"`
}

// SkillsResponse is the body of GET /v1/domains/:domain/skills.
type SkillsResponse struct {
	Domain string         `json:"domain"`
	Skills []SkillSummary `json:"skills"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

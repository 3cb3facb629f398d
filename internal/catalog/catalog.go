// Package catalog defines where domain graphs and learner groups come from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// ErrNotFound is returned when a domain or group does not exist.
var ErrNotFound = errors.New("not found")

// Record is one learner entry of a group. Err is set when the learner's data
// could not be read; Learner is then the zero value.
type Record struct {
	ID      string
	Learner group.LearnerSkillMap
	Err     error
}

// Group is a named set of learner records.
type Group struct {
	Name    string
	Records []Record
}

// Learners returns the records that loaded cleanly, plus the ids of those
// that did not.
func (g Group) Learners() (ok []group.LearnerSkillMap, failed []string) {
	for _, r := range g.Records {
		if r.Err != nil {
			failed = append(failed, r.ID)
			continue
		}
		ok = append(ok, r.Learner)
	}
	return ok, failed
}

// Catalog supplies domain graphs and learner groups by name. Implementations
// wrap ErrNotFound when a name is unknown.
type Catalog interface {
	Domain(ctx context.Context, name string) (*skillgraph.Graph, error)
	Group(ctx context.Context, name string) (Group, error)
	// Domains lists the known domain names, sorted.
	Domains(ctx context.Context) ([]string, error)
}

// Memory is an in-process Catalog. The zero value is empty and ready to use.
type Memory struct {
	mu      sync.RWMutex
	domains map[string]*skillgraph.Graph
	groups  map[string]Group
}

// NewMemory returns a Memory catalog holding the built-in demo domain and
// demo group.
func NewMemory() *Memory {
	m := &Memory{}
	m.PutDomain(skillgraph.Seed())
	m.PutGroup(DemoGroup())
	return m
}

// PutDomain adds or replaces g under its domain name.
func (m *Memory) PutDomain(g *skillgraph.Graph) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.domains == nil {
		m.domains = make(map[string]*skillgraph.Graph)
	}
	m.domains[g.Domain()] = g
}

// PutGroup adds or replaces grp.
func (m *Memory) PutGroup(grp Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.groups == nil {
		m.groups = make(map[string]Group)
	}
	m.groups[grp.Name] = grp
}

func (m *Memory) Domain(ctx context.Context, name string) (*skillgraph.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.domains[name]
	if !ok {
		return nil, fmt.Errorf("domain %q: %w", name, ErrNotFound)
	}
	return g, nil
}

func (m *Memory) Group(ctx context.Context, name string) (Group, error) {
	if err := ctx.Err(); err != nil {
		return Group{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	grp, ok := m.groups[name]
	if !ok {
		return Group{}, fmt.Errorf("group %q: %w", name, ErrNotFound)
	}
	return grp, nil
}

func (m *Memory) Domains(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.domains))
	for n := range m.domains {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

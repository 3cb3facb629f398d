package tension

import (
	"fmt"
	"sort"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/pacing"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// Constraints are free-form facts about where and how a lesson runs.
type Constraints struct {
	Connectivity string   `json:"connectivity,omitempty"`
	Setting      string   `json:"setting,omitempty"`
	Tools        []string `json:"tools,omitempty"`
}

// Context is the read-only input shared by every check.
type Context struct {
	Graph *skillgraph.Graph
	// Targets is the intended teaching sequence, in order.
	Targets  []string
	Learners []group.LearnerSkillMap
	Profile  group.Profile
	// DurationMinutes is the time available; <= 0 means unknown.
	DurationMinutes float64
	Constraints     Constraints
	Config          pacing.Config
}

// Check is a single independent rule over a Context.
type Check interface {
	Name() string
	Check(ctx *Context) ([]Tension, error)
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	CheckName string
	Fn        func(ctx *Context) ([]Tension, error)
}

func (f CheckFunc) Name() string                          { return f.CheckName }
func (f CheckFunc) Check(ctx *Context) ([]Tension, error) { return f.Fn(ctx) }

// DefaultChecks returns the five standard checks in evaluation order.
func DefaultChecks() []Check {
	return []Check{
		DependencyOrdering{},
		ScopeTime{},
		PrerequisiteGap{},
		BloomMismatch{},
		ConstraintRules{},
	}
}

// RuleFailure records a check that errored or panicked.
type RuleFailure struct {
	Check string
	Err   error
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("check %s failed: %v", f.Check, f.Err)
}

func (f RuleFailure) Unwrap() error { return f.Err }

// Detector runs a list of checks with isolate-and-continue semantics.
type Detector struct {
	Checks []Check
	// OnFailure, if set, is called for each failed check.
	OnFailure func(RuleFailure)
}

// NewDetector returns a Detector over the default checks.
func NewDetector() *Detector {
	return &Detector{Checks: DefaultChecks()}
}

// Detect runs every check, drops the output of any that fail, and returns
// the combined tensions sorted by severity. Within a severity, tensions
// keep check order and then emission order.
func (d *Detector) Detect(ctx *Context) ([]Tension, []RuleFailure) {
	var all []Tension
	var failures []RuleFailure
	for _, c := range d.Checks {
		out, err := runIsolated(c, ctx)
		if err != nil {
			f := RuleFailure{Check: c.Name(), Err: err}
			failures = append(failures, f)
			if d.OnFailure != nil {
				d.OnFailure(f)
			}
			continue
		}
		all = append(all, out...)
	}
	SortBySeverity(all)
	return all, failures
}

func runIsolated(c Check, ctx *Context) (out []Tension, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Check(ctx)
}

// SortBySeverity stably orders tensions critical, warning, info.
func SortBySeverity(ts []Tension) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Severity.Rank() < ts[j].Severity.Rank()
	})
}

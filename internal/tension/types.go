package tension

// Type names the category of a tension.
type Type string

const (
	TypeDependencyOrdering  Type = "dependency_ordering"
	TypeScopeTimeMismatch   Type = "scope_time_mismatch"
	TypePrerequisiteGap     Type = "prerequisite_gap"
	TypeBloomLevelMismatch  Type = "bloom_level_mismatch"
	TypeConstraintViolation Type = "constraint_violation"
)

// Severity ranks how urgently a tension should be addressed.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Rank orders severities: critical first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// Tension is a conflict between teaching intent and evidence from the skill
// graph, learner data or stated constraints. Evidence is one of the typed
// payloads below and always agrees with Type.
type Tension struct {
	Type       Type     `json:"type"`
	Severity   Severity `json:"severity"`
	Title      string   `json:"title"`
	Detail     string   `json:"detail"`
	Evidence   Evidence `json:"evidence"`
	Suggestion string   `json:"suggestion"`
}

// Evidence is the category-specific payload of a Tension.
type Evidence interface {
	tensionType() Type
}

func newTension(sev Severity, title, detail, suggestion string, ev Evidence) Tension {
	return Tension{
		Type:       ev.tensionType(),
		Severity:   sev,
		Title:      title,
		Detail:     detail,
		Evidence:   ev,
		Suggestion: suggestion,
	}
}

// OrderingEvidence reports a skill taught before one of its prerequisites.
// Positions are 1-based indices into the intended sequence.
type OrderingEvidence struct {
	Skill                string `json:"skill"`
	SkillPosition        int    `json:"skillPosition"`
	Prerequisite         string `json:"prerequisite"`
	PrerequisitePosition int    `json:"prerequisitePosition"`
}

func (OrderingEvidence) tensionType() Type { return TypeDependencyOrdering }

// SkillEstimate is the time estimate for a single target skill.
type SkillEstimate struct {
	SkillID   string  `json:"skillId"`
	Bloom     string  `json:"bloomLevel"`
	Readiness float64 `json:"readiness"`
	Minutes   float64 `json:"minutes"`
}

// ScopeEvidence reports a lesson whose estimated time exceeds the time
// available.
type ScopeEvidence struct {
	EstimatedMinutes float64         `json:"estimatedMinutes"`
	AvailableMinutes float64         `json:"availableMinutes"`
	OverageMinutes   float64         `json:"overageMinutes"`
	OveragePercent   float64         `json:"overagePercent"`
	Estimates        []SkillEstimate `json:"estimates"`
	// DeferCandidates is ordered most advanced first.
	DeferCandidates []string `json:"deferCandidates"`
}

func (ScopeEvidence) tensionType() Type { return TypeScopeTimeMismatch }

// GapEvidence reports a prerequisite that too much of the group lacks.
type GapEvidence struct {
	Prerequisite     string   `json:"prerequisite"`
	MissingLearners  int      `json:"missingLearners"`
	WeakLearners     int      `json:"weakLearners"`
	TotalLearners    int      `json:"totalLearners"`
	AtRiskPercentage int      `json:"atRiskPercentage"`
	DependentTargets []string `json:"dependentTargets"`
}

func (GapEvidence) tensionType() Type { return TypePrerequisiteGap }

// BloomEvidence reports an advanced target above the group's demonstrated
// cognitive level.
type BloomEvidence struct {
	Skill              string  `json:"skill"`
	TargetLevel        string  `json:"targetLevel"`
	TargetOrdinal      int     `json:"targetOrdinal"`
	GroupAverage       float64 `json:"groupAverageOrdinal"`
	Gap                float64 `json:"gap"`
	PercentBelowTarget int     `json:"percentBelowTarget"`
}

func (BloomEvidence) tensionType() Type { return TypeBloomLevelMismatch }

// ConstraintRule identifies which constraint rule fired.
type ConstraintRule string

const (
	RuleOfflineInstall ConstraintRule = "offline_install"
	RuleMissingJupyter ConstraintRule = "missing_jupyter"
	RuleAccountNeeded  ConstraintRule = "account_dependency"
	RuleOutdoorTech    ConstraintRule = "outdoor_tech"
)

// ConstraintEvidence reports skills that conflict with the stated setting.
type ConstraintEvidence struct {
	Rule       ConstraintRule `json:"rule"`
	Skills     []string       `json:"skills"`
	Constraint string         `json:"constraint"`
}

func (ConstraintEvidence) tensionType() Type { return TypeConstraintViolation }

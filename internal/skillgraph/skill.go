package skillgraph

import "fmt"

// BloomLevel is a cognitive-complexity level from Bloom's taxonomy.
type BloomLevel string

const (
	BloomKnowledge     BloomLevel = "knowledge"
	BloomComprehension BloomLevel = "comprehension"
	BloomApplication   BloomLevel = "application"
	BloomAnalysis      BloomLevel = "analysis"
	BloomSynthesis     BloomLevel = "synthesis"
	BloomEvaluation    BloomLevel = "evaluation"
)

// AllBloomLevels returns every level in ascending ordinal order.
func AllBloomLevels() []BloomLevel {
	return []BloomLevel{
		BloomKnowledge,
		BloomComprehension,
		BloomApplication,
		BloomAnalysis,
		BloomSynthesis,
		BloomEvaluation,
	}
}

// Ordinal returns the 0-indexed position of the level on the six-level
// scale. Unknown levels map to 0.
func (b BloomLevel) Ordinal() int {
	switch b {
	case BloomKnowledge:
		return 0
	case BloomComprehension:
		return 1
	case BloomApplication:
		return 2
	case BloomAnalysis:
		return 3
	case BloomSynthesis:
		return 4
	case BloomEvaluation:
		return 5
	default:
		return 0
	}
}

// Valid reports whether b is one of the six known levels.
func (b BloomLevel) Valid() bool {
	for _, l := range AllBloomLevels() {
		if l == b {
			return true
		}
	}
	return false
}

// BloomFromOrdinal returns the level at ordinal i, clamped to the scale.
func BloomFromOrdinal(i int) BloomLevel {
	levels := AllBloomLevels()
	if i < 0 {
		i = 0
	}
	if i >= len(levels) {
		i = len(levels) - 1
	}
	return levels[i]
}

// ParseBloomLevel parses a level name.
func ParseBloomLevel(s string) (BloomLevel, error) {
	b := BloomLevel(s)
	if !b.Valid() {
		return "", fmt.Errorf("unknown bloom level: %q", s)
	}
	return b, nil
}

// Verb returns the action verb used in milestone descriptions.
func (b BloomLevel) Verb() string {
	switch b {
	case BloomKnowledge:
		return "recall"
	case BloomComprehension:
		return "explain"
	case BloomApplication:
		return "apply"
	case BloomAnalysis:
		return "analyze"
	case BloomSynthesis:
		return "create with"
	case BloomEvaluation:
		return "evaluate"
	default:
		return "practice"
	}
}

// EdgeType classifies a relation between two skills.
type EdgeType string

const (
	// EdgePrerequisite means the source should be mastered before the target.
	// It is the only type that participates in ordering.
	EdgePrerequisite EdgeType = "prerequisite"
	EdgeRelated      EdgeType = "related"
	EdgeExtends      EdgeType = "extends"
)

// Skill is a single teachable node in a domain graph.
type Skill struct {
	ID         string     `json:"id" yaml:"id"`
	Label      string     `json:"label" yaml:"label"`
	Bloom      BloomLevel `json:"bloomLevel" yaml:"bloom"`
	Assessable bool       `json:"assessable" yaml:"assessable"`
}

// Edge is a directed relation from Source to Target.
type Edge struct {
	Source     string   `json:"source" yaml:"source"`
	Target     string   `json:"target" yaml:"target"`
	Type       EdgeType `json:"type" yaml:"type"`
	Confidence float64  `json:"confidence" yaml:"confidence"`
}

// IsPrerequisite reports whether the edge participates in ordering logic.
func (e Edge) IsPrerequisite() bool {
	return e.Type == EdgePrerequisite
}

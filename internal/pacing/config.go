// Package pacing holds the tunable constants that drive time estimation,
// mastery thresholds and session distribution.
package pacing

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// Config holds every pacing and threshold constant.
type Config struct {
	// BloomMinutes is the base instruction time per skill by Bloom level.
	BloomMinutes map[skillgraph.BloomLevel]float64 `yaml:"bloom_minutes" validate:"required"`

	// OverheadMinutes is added once per lesson for setup and wrap-up.
	OverheadMinutes float64 `yaml:"overhead_minutes" validate:"gte=0"`

	// ReadinessPenalty scales the extra time for low-readiness groups:
	// minutes = base * (1 + (1 - readiness) * ReadinessPenalty).
	ReadinessPenalty float64 `yaml:"readiness_penalty" validate:"gte=0"`

	// CriticalOverageRatio marks a scope overage as critical when it
	// exceeds this fraction of the available time.
	CriticalOverageRatio float64 `yaml:"critical_overage_ratio" validate:"gte=0"`

	// MinutesPerSkill is the pacing heuristic used to size sessions.
	MinutesPerSkill float64 `yaml:"minutes_per_skill" validate:"gt=0"`

	// SessionUtilization is the share of a session available for new
	// content once overhead is removed.
	SessionUtilization float64 `yaml:"session_utilization" validate:"gt=0,lte=1"`

	// LearnerGrasp is the per-learner confidence at which a learner "has"
	// a skill.
	LearnerGrasp float64 `yaml:"learner_grasp" validate:"gt=0,lte=1"`

	// GroupMastery is the coverage fraction at which the group can skip
	// re-teaching a skill.
	GroupMastery float64 `yaml:"group_mastery" validate:"gt=0,lte=1"`

	// BloomEvidence is the confidence a learner needs on a skill for it to
	// count toward their demonstrated Bloom level.
	BloomEvidence float64 `yaml:"bloom_evidence" validate:"gt=0,lte=1"`

	GapWarningRatio  float64 `yaml:"gap_warning_ratio" validate:"gt=0,lte=1"`
	GapCriticalRatio float64 `yaml:"gap_critical_ratio" validate:"gtefield=GapWarningRatio,lte=1"`

	BloomGapWarning  float64 `yaml:"bloom_gap_warning" validate:"gt=0"`
	BloomGapCritical float64 `yaml:"bloom_gap_critical" validate:"gtefield=BloomGapWarning"`

	// AdvancedBloom is the lowest level checked for Bloom mismatch.
	AdvancedBloom skillgraph.BloomLevel `yaml:"advanced_bloom" validate:"required"`

	MaxReviewSkills     int `yaml:"max_review_skills" validate:"gte=0"`
	PaddingReviewSkills int `yaml:"padding_review_skills" validate:"gte=0"`
}

// Default returns the standard constants.
func Default() Config {
	return Config{
		BloomMinutes: map[skillgraph.BloomLevel]float64{
			skillgraph.BloomKnowledge:     5,
			skillgraph.BloomComprehension: 10,
			skillgraph.BloomApplication:   15,
			skillgraph.BloomAnalysis:      20,
			skillgraph.BloomSynthesis:     30,
			skillgraph.BloomEvaluation:    25,
		},
		OverheadMinutes:      15,
		ReadinessPenalty:     0.5,
		CriticalOverageRatio: 0.3,
		MinutesPerSkill:      18,
		SessionUtilization:   0.65,
		LearnerGrasp:         0.5,
		GroupMastery:         0.7,
		BloomEvidence:        0.6,
		GapWarningRatio:      0.4,
		GapCriticalRatio:     0.6,
		BloomGapWarning:      2,
		BloomGapCritical:     3,
		AdvancedBloom:        skillgraph.BloomSynthesis,
		MaxReviewSkills:      2,
		PaddingReviewSkills:  3,
	}
}

// BaseMinutes returns the base minutes for a Bloom level.
func (c Config) BaseMinutes(b skillgraph.BloomLevel) float64 {
	return c.BloomMinutes[b]
}

var validate = validator.New()

// Validate checks field ranges and that every Bloom level has a positive
// base time.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid pacing config: %w", err)
	}
	if !c.AdvancedBloom.Valid() {
		return fmt.Errorf("invalid pacing config: unknown advanced_bloom %q", c.AdvancedBloom)
	}
	var errs []error
	for _, l := range skillgraph.AllBloomLevels() {
		if c.BloomMinutes[l] <= 0 {
			errs = append(errs, fmt.Errorf("bloom_minutes.%s must be > 0", l))
		}
	}
	for l := range c.BloomMinutes {
		if !l.Valid() {
			errs = append(errs, fmt.Errorf("bloom_minutes has unknown level %q", l))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid pacing config: %w", errors.Join(errs...))
	}
	return nil
}

// Load builds a Config from defaults, then the YAML file at path (if
// non-empty), then environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read pacing config: %w", err)
		}
		if err := decodeInto(&cfg, data); err != nil {
			return Config{}, fmt.Errorf("parse pacing config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeInto overlays YAML onto cfg. Bloom minutes are merged per level so a
// file may override a single level.
func decodeInto(cfg *Config, data []byte) error {
	base := cfg.BloomMinutes
	cfg.BloomMinutes = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg.BloomMinutes = base
		return err
	}
	merged := make(map[skillgraph.BloomLevel]float64, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range cfg.BloomMinutes {
		merged[k] = v
	}
	cfg.BloomMinutes = merged
	return nil
}

// applyEnv overrides the most commonly tuned values from the environment.
func applyEnv(cfg *Config) error {
	overrides := []struct {
		key string
		dst *float64
	}{
		{"LESSONLENS_MINUTES_PER_SKILL", &cfg.MinutesPerSkill},
		{"LESSONLENS_SESSION_UTILIZATION", &cfg.SessionUtilization},
		{"LESSONLENS_OVERHEAD_MINUTES", &cfg.OverheadMinutes},
		{"LESSONLENS_GROUP_MASTERY", &cfg.GroupMastery},
	}
	for _, o := range overrides {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid number %q: %w", o.key, v, err)
		}
		*o.dst = f
	}
	if v := os.Getenv("LESSONLENS_ADVANCED_BLOOM"); v != "" {
		level, err := skillgraph.ParseBloomLevel(v)
		if err != nil {
			return fmt.Errorf("LESSONLENS_ADVANCED_BLOOM: %w", err)
		}
		cfg.AdvancedBloom = level
	}
	return nil
}

package tension

import (
	"testing"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

func TestPrerequisiteGap_FourOfFiveMissing(t *testing.T) {
	g := skillgraph.New("d", []skillgraph.Skill{
		{ID: "select-filter-data", Bloom: skillgraph.BloomApplication},
		{ID: "pandas-groupby", Bloom: skillgraph.BloomAnalysis},
	}, []skillgraph.Edge{prereq("select-filter-data", "pandas-groupby")})

	learners := []group.LearnerSkillMap{
		learner("1", map[string]float64{"pandas-groupby": 0.2}),
		learner("2", nil),
		learner("3", nil),
		learner("4", nil),
		learner("5", map[string]float64{"select-filter-data": 0.8}),
	}
	got, err := PrerequisiteGap{}.Check(newContext(g, []string{"pandas-groupby"}, learners))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tensions, want 1", len(got))
	}
	if got[0].Type != TypePrerequisiteGap || got[0].Severity != SeverityCritical {
		t.Errorf("got %s/%s, want prerequisite_gap/critical", got[0].Type, got[0].Severity)
	}
	ev := got[0].Evidence.(GapEvidence)
	if ev.AtRiskPercentage != 80 {
		t.Errorf("AtRiskPercentage = %d, want 80", ev.AtRiskPercentage)
	}
	if ev.MissingLearners != 4 || ev.WeakLearners != 0 {
		t.Errorf("missing/weak = %d/%d, want 4/0", ev.MissingLearners, ev.WeakLearners)
	}
	if len(ev.DependentTargets) != 1 || ev.DependentTargets[0] != "pandas-groupby" {
		t.Errorf("DependentTargets = %v, want [pandas-groupby]", ev.DependentTargets)
	}
}

func TestPrerequisiteGap_Thresholds(t *testing.T) {
	g := skillgraph.New("d", []skillgraph.Skill{{ID: "p"}, {ID: "t"}}, []skillgraph.Edge{prereq("p", "t")})

	tests := []struct {
		name   string
		atRisk int
		want   Severity
	}{
		{"below warning", 3, ""},
		{"warning at 40%", 4, SeverityWarning},
		{"warning at 50%", 5, SeverityWarning},
		{"critical at 60%", 6, SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var learners []group.LearnerSkillMap
			for i := 0; i < 10; i++ {
				conf := 0.9
				if i < tt.atRisk {
					conf = 0.3 // weak
				}
				learners = append(learners, learner("l", map[string]float64{"p": conf}))
			}
			got, _ := PrerequisiteGap{}.Check(newContext(g, []string{"t"}, learners))
			if tt.want == "" {
				if len(got) != 0 {
					t.Errorf("got %d tensions, want none", len(got))
				}
				return
			}
			if len(got) != 1 || got[0].Severity != tt.want {
				t.Fatalf("got %v, want one %s", got, tt.want)
			}
			if ev := got[0].Evidence.(GapEvidence); ev.WeakLearners != tt.atRisk {
				t.Errorf("WeakLearners = %d, want %d", ev.WeakLearners, tt.atRisk)
			}
		})
	}
}

func TestPrerequisiteGap_ExcludesTargetsAndNoLearners(t *testing.T) {
	g := skillgraph.New("d", []skillgraph.Skill{{ID: "p"}, {ID: "t"}}, []skillgraph.Edge{prereq("p", "t")})

	// p is itself a target, so it is not a gap.
	got, _ := PrerequisiteGap{}.Check(newContext(g, []string{"p", "t"}, []group.LearnerSkillMap{learner("1", nil)}))
	if len(got) != 0 {
		t.Errorf("targets must not be reported as gaps, got %d", len(got))
	}

	got, _ = PrerequisiteGap{}.Check(newContext(g, []string{"t"}, nil))
	if len(got) != 0 {
		t.Errorf("no learners means no evidence, got %d", len(got))
	}
}

func TestPrerequisiteGap_Transitive(t *testing.T) {
	g := skillgraph.Seed()
	learners := []group.LearnerSkillMap{learner("1", nil), learner("2", nil)}
	got, _ := PrerequisiteGap{}.Check(newContext(g, []string{"pandas-groupby"}, learners))

	want := map[string]bool{
		"select-filter-data":  true,
		"dataframe-structure": true,
		"import-pandas":       true,
		"python-basics":       true,
		"install-packages":    true,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d gaps, want %d", len(got), len(want))
	}
	for _, ten := range got {
		ev := ten.Evidence.(GapEvidence)
		if !want[ev.Prerequisite] {
			t.Errorf("unexpected gap %q", ev.Prerequisite)
		}
		if ev.AtRiskPercentage != 100 {
			t.Errorf("%s: AtRiskPercentage = %d, want 100", ev.Prerequisite, ev.AtRiskPercentage)
		}
	}
}

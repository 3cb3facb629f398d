package tension

import (
	"testing"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

func bloomGraph() *skillgraph.Graph {
	return skillgraph.New("d", []skillgraph.Skill{
		{ID: "k", Bloom: skillgraph.BloomKnowledge},
		{ID: "a", Bloom: skillgraph.BloomApplication},
		{ID: "n", Bloom: skillgraph.BloomAnalysis},
		{ID: "s", Bloom: skillgraph.BloomSynthesis},
		{ID: "e", Bloom: skillgraph.BloomEvaluation},
	}, nil)
}

func TestBloomMismatch_Critical(t *testing.T) {
	learners := []group.LearnerSkillMap{
		learner("1", map[string]float64{"k": 0.9}),
		learner("2", map[string]float64{"k": 0.7, "a": 0.55}),
		learner("3", nil),
	}
	got, err := BloomMismatch{}.Check(newContext(bloomGraph(), []string{"s"}, learners))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d tensions, want 1", len(got))
	}
	if got[0].Severity != SeverityCritical {
		t.Errorf("severity = %s, want critical", got[0].Severity)
	}
	ev := got[0].Evidence.(BloomEvidence)
	if ev.GroupAverage != 0 || ev.Gap != 4 {
		t.Errorf("average/gap = %v/%v, want 0/4", ev.GroupAverage, ev.Gap)
	}
	if ev.PercentBelowTarget != 100 {
		t.Errorf("PercentBelowTarget = %d, want 100", ev.PercentBelowTarget)
	}
}

func TestBloomMismatch_WarningAndSkipsLowerTargets(t *testing.T) {
	learners := []group.LearnerSkillMap{
		learner("1", map[string]float64{"a": 0.8}),
		learner("2", map[string]float64{"a": 0.6}),
	}
	// Average demonstrated level is application (2).
	got, _ := BloomMismatch{}.Check(newContext(bloomGraph(), []string{"k", "n", "s", "e"}, learners))
	if len(got) != 2 {
		t.Fatalf("got %d tensions, want 2", len(got))
	}
	if ev := got[0].Evidence.(BloomEvidence); ev.Skill != "s" || got[0].Severity != SeverityWarning {
		t.Errorf("first tension = %s/%s, want s/warning", ev.Skill, got[0].Severity)
	}
	if ev := got[1].Evidence.(BloomEvidence); ev.Skill != "e" || got[1].Severity != SeverityCritical {
		t.Errorf("second tension = %s/%s, want e/critical", ev.Skill, got[1].Severity)
	}
	// For synthesis (4), learners at application (2) are below 4-1.
	if ev := got[0].Evidence.(BloomEvidence); ev.PercentBelowTarget != 100 {
		t.Errorf("PercentBelowTarget = %d, want 100", ev.PercentBelowTarget)
	}
}

func TestBloomMismatch_NoGap(t *testing.T) {
	learners := []group.LearnerSkillMap{learner("1", map[string]float64{"s": 0.9})}
	got, _ := BloomMismatch{}.Check(newContext(bloomGraph(), []string{"s", "e"}, learners))
	if len(got) != 0 {
		t.Errorf("got %d tensions, want none", len(got))
	}
}

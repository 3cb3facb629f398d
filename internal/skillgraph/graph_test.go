package skillgraph

import (
	"testing"
)

func TestGetSkill_Exists(t *testing.T) {
	g := Seed()
	s, err := g.GetSkill("pandas-groupby")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Label != "Aggregate with pandas groupby" {
		t.Errorf("got label %q, want %q", s.Label, "Aggregate with pandas groupby")
	}
	if s.Bloom != BloomAnalysis {
		t.Errorf("got bloom %q, want %q", s.Bloom, BloomAnalysis)
	}
}

func TestGetSkill_NotFound(t *testing.T) {
	_, err := Seed().GetSkill("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent skill, got nil")
	}
}

func TestSeed_Count(t *testing.T) {
	g := Seed()
	if g.Len() != 15 {
		t.Errorf("got %d skills, want 15", g.Len())
	}
	if g.Domain() != SeedDomain {
		t.Errorf("got domain %q, want %q", g.Domain(), SeedDomain)
	}
}

func TestBloomOrdinal(t *testing.T) {
	for i, l := range AllBloomLevels() {
		if l.Ordinal() != i {
			t.Errorf("%s.Ordinal() = %d, want %d", l, l.Ordinal(), i)
		}
		if BloomFromOrdinal(i) != l {
			t.Errorf("BloomFromOrdinal(%d) = %s, want %s", i, BloomFromOrdinal(i), l)
		}
	}
	if BloomFromOrdinal(99) != BloomEvaluation {
		t.Error("BloomFromOrdinal should clamp high values")
	}
	if _, err := ParseBloomLevel("creation"); err == nil {
		t.Error("expected error for unknown bloom level")
	}
}

func TestPrerequisites(t *testing.T) {
	g := Seed()

	prereqs := g.Prerequisites("pandas-groupby")
	if len(prereqs) != 1 || prereqs[0] != "select-filter-data" {
		t.Errorf("pandas-groupby prereqs: got %v, want [select-filter-data]", prereqs)
	}

	// The related edge from sort-data must not count.
	for _, p := range prereqs {
		if p == "sort-data" {
			t.Error("related edge should not be a prerequisite")
		}
	}

	prereqs = g.Prerequisites("import-pandas")
	if len(prereqs) != 2 {
		t.Fatalf("import-pandas: got %d prereqs, want 2", len(prereqs))
	}

	if g.HasPrerequisites("python-basics") {
		t.Error("python-basics should be a root")
	}
}

func TestDependents(t *testing.T) {
	deps := Seed().Dependents("dataframe-structure")
	want := map[string]bool{"select-filter-data": true, "sort-data": true, "handle-missing-values": true}
	if len(deps) != len(want) {
		t.Fatalf("got %v, want %d dependents", deps, len(want))
	}
	for _, d := range deps {
		if !want[d] {
			t.Errorf("unexpected dependent %q", d)
		}
	}
}

func TestNew_IgnoresDanglingAndDuplicateEdges(t *testing.T) {
	g := New("t", []Skill{{ID: "a"}, {ID: "b"}}, []Edge{
		{Source: "a", Target: "b", Type: EdgePrerequisite},
		{Source: "a", Target: "b", Type: EdgePrerequisite},
		{Source: "ghost", Target: "b", Type: EdgePrerequisite},
	})
	if got := g.Prerequisites("b"); len(got) != 1 {
		t.Errorf("got prereqs %v, want [a]", got)
	}
	if len(g.Edges()) != 3 {
		t.Errorf("Edges() should keep the raw edge list, got %d", len(g.Edges()))
	}
}

func TestPrerequisiteClosure(t *testing.T) {
	g := Seed()
	closure := g.PrerequisiteClosure([]string{"pandas-groupby", "select-filter-data"})
	want := map[string]bool{
		"dataframe-structure": true,
		"import-pandas":       true,
		"python-basics":       true,
		"install-packages":    true,
	}
	if len(closure) != len(want) {
		t.Fatalf("got closure %v, want %d skills", closure, len(want))
	}
	for _, id := range closure {
		if !want[id] {
			t.Errorf("unexpected closure member %q", id)
		}
	}
}

func TestPrerequisiteClosure_Cycle(t *testing.T) {
	g := New("t", []Skill{{ID: "a"}, {ID: "b"}}, []Edge{
		{Source: "a", Target: "b", Type: EdgePrerequisite},
		{Source: "b", Target: "a", Type: EdgePrerequisite},
	})
	closure := g.PrerequisiteClosure([]string{"a"})
	if len(closure) != 1 || closure[0] != "b" {
		t.Errorf("got %v, want [b]", closure)
	}
}

func TestDownstreamOf(t *testing.T) {
	g := Seed()
	targets := []string{"evaluate-data-claims", "pandas-groupby", "basic-plotting"}
	got := g.DownstreamOf("select-filter-data", targets)
	if len(got) != 2 || got[0] != "evaluate-data-claims" || got[1] != "pandas-groupby" {
		t.Errorf("got %v, want [evaluate-data-claims pandas-groupby]", got)
	}
}

func TestRoots(t *testing.T) {
	roots := Seed().Roots()
	if len(roots) != 1 || roots[0].ID != "python-basics" {
		t.Errorf("got roots %v, want [python-basics]", roots)
	}
}

func TestTopologicalOrder(t *testing.T) {
	g := Seed()
	topo := g.TopologicalOrder()
	if len(topo) != g.Len() {
		t.Fatalf("got %d skills in topo order, want %d", len(topo), g.Len())
	}

	// Verify topological property: every skill appears after all its prerequisites
	posMap := make(map[string]int, len(topo))
	for i, s := range topo {
		posMap[s.ID] = i
	}
	for _, s := range topo {
		for _, prereqID := range g.Prerequisites(s.ID) {
			if posMap[prereqID] >= posMap[s.ID] {
				t.Errorf("skill %q (pos %d) appears before prerequisite %q (pos %d)",
					s.ID, posMap[s.ID], prereqID, posMap[prereqID])
			}
		}
	}
}

func TestTopologicalOrder_DeclarationTieBreak(t *testing.T) {
	g := New("d", []Skill{
		{ID: "z", Bloom: BloomKnowledge},
		{ID: "a", Bloom: BloomKnowledge},
		{ID: "b", Bloom: BloomKnowledge},
	}, []Edge{
		{Source: "z", Target: "a", Type: EdgePrerequisite},
		{Source: "b", Target: "a", Type: EdgeRelated},
	})

	var got []string
	for _, s := range g.TopologicalOrder() {
		got = append(got, s.ID)
	}
	// a is released after b is already waiting but is declared earlier.
	want := []string{"z", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestTopologicalOrder_CycleAppended(t *testing.T) {
	g := New("d", []Skill{
		{ID: "x", Bloom: BloomKnowledge},
		{ID: "p", Bloom: BloomKnowledge},
		{ID: "q", Bloom: BloomKnowledge},
	}, []Edge{
		{Source: "p", Target: "q", Type: EdgePrerequisite},
		{Source: "q", Target: "p", Type: EdgePrerequisite},
	})
	topo := g.TopologicalOrder()
	if len(topo) != 3 || topo[0].ID != "x" || topo[1].ID != "p" || topo[2].ID != "q" {
		t.Errorf("got %v, want [x p q]", topo)
	}
}

func TestSkills_ReturnsCopy(t *testing.T) {
	g := Seed()
	a := g.Skills()
	a[0].Label = "MUTATED"
	if g.Skills()[0].Label == "MUTATED" {
		t.Error("Skills did not return a defensive copy")
	}
}

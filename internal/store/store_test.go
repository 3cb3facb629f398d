package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDBUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, name := range []string{tableDomains, tableSkills, tableEdges, tableGroups, tableLearners} {
		var got string
		err := s.DB().QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&got)
		if err != nil {
			t.Errorf("table %s: %v", name, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.ImportDomain(ctx, skillgraph.Seed()); err != nil {
		t.Fatalf("ImportDomain: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	g, err := s.Domain(ctx, skillgraph.SeedDomain)
	if err != nil {
		t.Fatalf("Domain after reopen: %v", err)
	}
	if g.Len() != skillgraph.Seed().Len() {
		t.Errorf("Len = %d, want %d", g.Len(), skillgraph.Seed().Len())
	}
}

func TestImportDomainRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seed := skillgraph.Seed()

	if err := s.ImportDomain(ctx, seed); err != nil {
		t.Fatalf("ImportDomain: %v", err)
	}

	g, err := s.Domain(ctx, skillgraph.SeedDomain)
	if err != nil {
		t.Fatalf("Domain: %v", err)
	}
	if g.Len() != seed.Len() {
		t.Fatalf("Len = %d, want %d", g.Len(), seed.Len())
	}
	for i, id := range seed.IDs() {
		if g.IDs()[i] != id {
			t.Errorf("IDs[%d] = %q, want %q", i, g.IDs()[i], id)
		}
	}
	if len(g.Edges()) != len(seed.Edges()) {
		t.Errorf("edges = %d, want %d", len(g.Edges()), len(seed.Edges()))
	}
	jup, _ := g.Skill("jupyter-notebooks")
	if jup.Assessable {
		t.Error("jupyter-notebooks should not be assessable")
	}
	if got := g.Bloom("evaluate-data-claims"); got != skillgraph.BloomEvaluation {
		t.Errorf("Bloom = %q", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("round-tripped graph invalid: %v", err)
	}
}

func TestImportDomainReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := skillgraph.New("d", []skillgraph.Skill{
		{ID: "a", Bloom: skillgraph.BloomKnowledge},
		{ID: "b", Bloom: skillgraph.BloomKnowledge},
	}, nil)
	second := skillgraph.New("d", []skillgraph.Skill{
		{ID: "c", Bloom: skillgraph.BloomAnalysis},
	}, nil)

	if err := s.ImportDomain(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.ImportDomain(ctx, second); err != nil {
		t.Fatal(err)
	}
	g, err := s.Domain(ctx, "d")
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 || !g.Has("c") {
		t.Errorf("expected only skill c, got %v", g.IDs())
	}

	names, err := s.Domains(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "d" {
		t.Errorf("Domains = %v", names)
	}
}

func TestDomainNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Domain(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = s.Group(context.Background(), "missing")
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestImportGroupRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	grp := catalog.Group{Name: "g1", Records: []catalog.Record{
		{ID: "ana", Learner: group.NewLearnerSkillMap("ana", "Ana", map[string]float64{"x": 0.8}, nil)},
		{ID: "bad", Err: errors.New("schema")},
		{ID: "ben", Learner: group.NewLearnerSkillMap("ben", "Ben", nil, map[string]float64{"y": 0.4})},
	}}
	skipped, err := s.ImportGroup(ctx, grp)
	if err != nil {
		t.Fatalf("ImportGroup: %v", err)
	}
	if len(skipped) != 1 || skipped[0] != "bad" {
		t.Errorf("skipped = %v, want [bad]", skipped)
	}

	got, err := s.Group(ctx, "g1")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(got.Records))
	}
	if got.Records[0].ID != "ana" || got.Records[1].ID != "ben" {
		t.Errorf("record order = %s, %s", got.Records[0].ID, got.Records[1].ID)
	}
	if c, _ := got.Records[0].Learner.Confidence("x"); c != 0.8 {
		t.Errorf("ana x = %v, want 0.8", c)
	}
}

func TestGroupCorruptLearnerBecomesRecordError(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.ImportGroup(ctx, catalog.Group{Name: "g2"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.DB().Exec(
		"INSERT INTO learners (group_name, position, learner_id, data) VALUES (?, ?, ?, ?)",
		"g2", 0, "broken", "{not json")
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Group(ctx, "g2")
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].Err == nil {
		t.Fatalf("expected one errored record, got %+v", got.Records)
	}
	ok, failed := got.Learners()
	if len(ok) != 0 || len(failed) != 1 {
		t.Errorf("Learners() = %d ok, %v failed", len(ok), failed)
	}
}

func TestDefaultDBPathEnv(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "x.db")
	t.Setenv("LESSONLENS_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LESSONLENS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "lessonlens", "lessonlens.db"); got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes the root command with args. Flag values persist across
// calls on the shared command tree, so every test sets what it relies on.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "lessonlens ") {
		t.Errorf("version output = %q", out)
	}
}

func TestTensionsJSON(t *testing.T) {
	out, err := run(t, "tensions", "--demo", "--json=true",
		"--target", "pandas-groupby,select-filter-data")
	if err != nil {
		t.Fatal(err)
	}
	var loose struct {
		Tensions []map[string]any `json:"tensions"`
		Summary  string           `json:"narrativeSummary"`
	}
	if err := json.Unmarshal([]byte(out), &loose); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, out)
	}
	if len(loose.Tensions) == 0 || loose.Summary == "" {
		t.Errorf("unexpected report: %s", out)
	}
	if loose.Tensions[0]["severity"] != "critical" {
		t.Errorf("first tension should be critical, got %v", loose.Tensions[0]["severity"])
	}
}

func TestCurriculumStyled(t *testing.T) {
	out, err := run(t, "curriculum", "--demo", "--json=false",
		"--sessions", "2", "--minutes", "90", "--target", "pandas-groupby")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Curriculum: python-data-analysis", "Session 1", "Session 2", "Critical path:       5", "review: install-packages, import-pandas"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSkillListDemo(t *testing.T) {
	out, err := run(t, "skill", "list", "--demo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "15 skills") || !strings.Contains(out, "Entry points: python-basics") {
		t.Errorf("unexpected skill list:\n%s", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 3 || !strings.HasPrefix(lines[2], "python-basics ") {
		t.Errorf("first row should be python-basics:\n%s", out)
	}
	if strings.Index(out, "select-filter-data") > strings.Index(out, "pandas-groupby") {
		t.Errorf("pandas-groupby listed before its prerequisite:\n%s", out)
	}
}

func TestSkillShowDemo(t *testing.T) {
	out, err := run(t, "skill", "show", "--demo", "--domain", "python-data-analysis", "select-filter-data")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Select and filter data (select-filter-data)", "Prerequisites: dataframe-structure", "Unlocks:       pandas-groupby, merge-datasets"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	_, err = run(t, "skill", "show", "--demo", "--domain", "python-data-analysis", "nope")
	if err == nil || !strings.Contains(err.Error(), "skill not found") {
		t.Errorf("expected skill not found, got %v", err)
	}
}

func TestImportThenList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ll.db")
	domain := filepath.Join(dir, "domain.yaml")
	if err := os.WriteFile(domain, []byte(`
domain: tiny
skills:
  - {id: a, label: First, bloom: knowledge, assessable: true}
  - {id: b, label: Second, bloom: application}
edges:
  - {source: a, target: b, confidence: 0.9}
`), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "import", "domain", domain, "--db", db, "--demo=false")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `Imported domain "tiny" (2 skills, 1 edges)`) {
		t.Errorf("import output = %q", out)
	}

	out, err = run(t, "skill", "list", "--domain", "tiny", "--db", db, "--demo=false")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Second") || !strings.Contains(out, "2 skills") {
		t.Errorf("unexpected list:\n%s", out)
	}

	out, err = run(t, "skill", "domains", "--db", db, "--demo=false")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "tiny" {
		t.Errorf("domains output = %q, want tiny", out)
	}

	_, err = run(t, "skill", "list", "--domain", "missing", "--db", db, "--demo=false")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found, got %v", err)
	}
}

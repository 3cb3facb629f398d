package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/lessonlens/internal/engine"
	"github.com/abhisek/lessonlens/internal/ui/theme"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describeError adds the list of valid ids to an invalid-reference error.
func describeError(err error) error {
	var inv *engine.InvalidReferenceError
	if errors.As(err, &inv) {
		return fmt.Errorf("%w\nvalid skill ids:\n  %s", err, strings.Join(inv.Valid, "\n  "))
	}
	return err
}

func renderTensions(w io.Writer, r *engine.TensionReport) {
	fmt.Fprintln(w, theme.Title.Render("Tensions"))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	for i, t := range r.Tensions {
		badge := theme.Severity(t.Severity).Render(fmt.Sprintf("%-8s", strings.ToUpper(string(t.Severity))))
		fmt.Fprintf(w, "%2d. %s %s\n", i+1, badge, t.Title)
		fmt.Fprintf(w, "    %s\n", t.Detail)
		if t.Suggestion != "" {
			fmt.Fprintf(w, "    %s\n", theme.Hint.Render("→ "+t.Suggestion))
		}
	}
	if len(r.Tensions) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, r.Summary)
	fmt.Fprintf(w, "%d learners", r.LearnerCount)
	if n := len(r.ExcludedLearners); n > 0 {
		fmt.Fprintf(w, " (%d excluded: %s)", n, strings.Join(r.ExcludedLearners, ", "))
	}
	fmt.Fprintln(w)
}

func renderCurriculum(w io.Writer, c *engine.Curriculum) {
	fmt.Fprintln(w, theme.Title.Render("Curriculum: "+c.Domain))
	fmt.Fprintln(w, strings.Repeat("─", 60))
	fmt.Fprintf(w, "Needed skills:       %d\n", len(c.NeededSkills))
	fmt.Fprintf(w, "Critical path:       %d\n", c.CriticalPathLength)
	fmt.Fprintf(w, "Skills per session:  %d\n", c.SkillsPerSession)
	fmt.Fprintf(w, "Recommended minimum: %d sessions\n", c.MinSessionsRecommended)
	if len(c.Unordered) > 0 {
		fmt.Fprintf(w, "Unordered (cycle):   %s\n", strings.Join(c.Unordered, ", "))
	}
	if len(c.ExcludedLearners) > 0 {
		fmt.Fprintf(w, "Excluded learners:   %s\n", strings.Join(c.ExcludedLearners, ", "))
	}

	for _, s := range c.Sessions {
		fmt.Fprintln(w)
		focus := string(s.Focus)
		if focus == "" {
			focus = "review"
		}
		fmt.Fprintln(w, theme.Heading.Render(fmt.Sprintf("Session %d · %s", s.Index, focus)))
		for _, sk := range s.Skills {
			tag := theme.Readiness(sk.Readiness).Render(fmt.Sprintf("[%s]", sk.Readiness))
			fmt.Fprintf(w, "  %-36s %-13s %s\n", sk.Label, sk.Bloom, tag)
		}
		if len(s.Review) > 0 {
			fmt.Fprintf(w, "  %s\n", theme.Hint.Render("review: "+strings.Join(s.Review, ", ")))
		}
		fmt.Fprintf(w, "  %s\n", s.Milestone)
	}
}

package theme

import (
	"strings"
	"testing"

	"github.com/abhisek/lessonlens/internal/schedule"
	"github.com/abhisek/lessonlens/internal/tension"
)

func TestSeverityStyles(t *testing.T) {
	tests := []struct {
		sev  tension.Severity
		want string
	}{
		{tension.SeverityCritical, Critical.Render("x")},
		{tension.SeverityWarning, Warn.Render("x")},
		{tension.SeverityInfo, Info.Render("x")},
		{"unknown", Info.Render("x")},
	}
	for _, tt := range tests {
		if got := Severity(tt.sev).Render("x"); got != tt.want {
			t.Errorf("Severity(%q) rendered %q, want %q", tt.sev, got, tt.want)
		}
	}
}

func TestReadinessStylesKeepText(t *testing.T) {
	for _, r := range []schedule.Readiness{schedule.ReadinessReady, schedule.ReadinessPartial, schedule.ReadinessBlocked} {
		if out := Readiness(r).Render(string(r)); !strings.Contains(out, string(r)) {
			t.Errorf("Readiness(%q) lost its text: %q", r, out)
		}
	}
}

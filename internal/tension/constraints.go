package tension

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	offlinePattern = regexp.MustCompile(`(?i)\boffline\b|no[\s-]*internet|no[\s-]*wifi|\bnone\b|air[\s-]*gapped`)
	installPattern = regexp.MustCompile(`(?i)install|import|\bpip\b|setup|download`)
	jupyterPattern = regexp.MustCompile(`(?i)jupyter|notebook`)
	accountPattern = regexp.MustCompile(`(?i)\b(api|apis|cloud)\b`)
	outdoorPattern = regexp.MustCompile(`(?i)outdoor|\bpark\b|outside|field[\s-]*trip`)
	techPattern    = regexp.MustCompile(`(?i)jupyter|pandas|plot|matplotlib|python`)
)

// ConstraintRules applies pattern rules over connectivity, setting and tools.
type ConstraintRules struct{}

func (ConstraintRules) Name() string { return string(TypeConstraintViolation) }

func (ConstraintRules) Check(ctx *Context) ([]Tension, error) {
	c := ctx.Constraints
	offline := c.Connectivity != "" && offlinePattern.MatchString(c.Connectivity)
	outdoor := c.Setting != "" && outdoorPattern.MatchString(c.Setting)
	hasJupyter := false
	for _, tool := range c.Tools {
		if strings.Contains(strings.ToLower(tool), "jupyter") {
			hasJupyter = true
			break
		}
	}

	var out []Tension
	var techSkills []string
	for _, id := range uniqueTargets(ctx.Targets) {
		s, ok := ctx.Graph.Skill(id)
		if !ok {
			continue
		}
		text := s.ID + " " + s.Label

		if offline && installPattern.MatchString(text) {
			out = append(out, newTension(SeverityCritical,
				fmt.Sprintf("%s needs a network connection", s.Label),
				fmt.Sprintf("%q involves installing or importing packages, but connectivity is %q.", id, c.Connectivity),
				"Pre-install packages on every machine, or swap in an offline alternative.",
				ConstraintEvidence{Rule: RuleOfflineInstall, Skills: []string{id}, Constraint: c.Connectivity},
			))
		}

		if len(c.Tools) > 0 && !hasJupyter && jupyterPattern.MatchString(text) {
			out = append(out, newTension(SeverityWarning,
				fmt.Sprintf("%s expects Jupyter", s.Label),
				fmt.Sprintf("%q relies on notebooks, but the available tools are %s.", id, strings.Join(c.Tools, ", ")),
				"Confirm Jupyter is available or adapt the activity to a plain script or REPL.",
				ConstraintEvidence{Rule: RuleMissingJupyter, Skills: []string{id}, Constraint: strings.Join(c.Tools, ",")},
			))
		}

		if accountPattern.MatchString(s.Label) {
			out = append(out, newTension(SeverityInfo,
				fmt.Sprintf("%s may need an account", s.Label),
				fmt.Sprintf("%q mentions an API or cloud service, which can require sign-up, keys or paid access.", id),
				"Check account requirements ahead of time or prepare a cached dataset.",
				ConstraintEvidence{Rule: RuleAccountNeeded, Skills: []string{id}},
			))
		}

		if outdoor && techPattern.MatchString(text) {
			techSkills = append(techSkills, id)
		}
	}

	if len(techSkills) > 0 {
		out = append(out, newTension(SeverityWarning,
			"Technical skills planned for an outdoor setting",
			fmt.Sprintf("The setting is %q but %d skills need a computer: %s.", c.Setting, len(techSkills), strings.Join(techSkills, ", ")),
			"Move the computer-based skills indoors or replace them with unplugged activities.",
			ConstraintEvidence{Rule: RuleOutdoorTech, Skills: techSkills, Constraint: c.Setting},
		))
	}
	return out, nil
}

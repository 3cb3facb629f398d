package tension

import (
	"fmt"
	"strings"
)

// Counts tallies tensions by severity.
type Counts struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
}

// Total returns the number of tensions counted.
func (c Counts) Total() int {
	return c.Critical + c.Warning + c.Info
}

// Count tallies ts by severity.
func Count(ts []Tension) Counts {
	var c Counts
	for _, t := range ts {
		switch t.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warning++
		default:
			c.Info++
		}
	}
	return c
}

// Narrative returns a short plain-language summary of sorted tensions.
func Narrative(ts []Tension) string {
	c := Count(ts)
	if c.Total() == 0 {
		return "No tensions detected. The plan is consistent with the skill graph, the group's records and the stated constraints."
	}

	var b strings.Builder
	noun := "tensions"
	if c.Total() == 1 {
		noun = "tension"
	}
	fmt.Fprintf(&b, "Found %d %s (%d critical, %d warning, %d info).", c.Total(), noun, c.Critical, c.Warning, c.Info)
	fmt.Fprintf(&b, " Most pressing: %s.", ts[0].Title)

	kinds := make([]string, 0, 5)
	seen := make(map[Type]bool)
	for _, t := range ts {
		if !seen[t.Type] {
			seen[t.Type] = true
			kinds = append(kinds, strings.ReplaceAll(string(t.Type), "_", " "))
		}
	}
	fmt.Fprintf(&b, " Categories: %s.", strings.Join(kinds, ", "))
	if c.Critical > 0 {
		b.WriteString(" Resolve the critical items before teaching this plan.")
	}
	return b.String()
}

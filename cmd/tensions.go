package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/engine"
	"github.com/abhisek/lessonlens/internal/skillgraph"
	"github.com/abhisek/lessonlens/internal/tension"
)

var tensionsCmd = &cobra.Command{
	Use:   "tensions",
	Short: "Detect tensions between a teaching sequence and the evidence",
	Long: "Checks the target skills, taught in the given order, against the skill graph,\n" +
		"the group's learner records and the stated constraints.",
	Example: "  lessonlens tensions --demo --target pandas-groupby,select-filter-data --duration 45",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		domain, _ := f.GetString("domain")
		grp, _ := f.GetString("group")
		targets, _ := f.GetStringSlice("target")
		duration, _ := f.GetFloat64("duration")
		connectivity, _ := f.GetString("connectivity")
		setting, _ := f.GetString("setting")
		tools, _ := f.GetStringSlice("tool")
		asJSON, _ := f.GetBool("json")

		svc, closeFn, err := newService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		report, err := svc.DetectTensions(context.Background(), engine.TensionRequest{
			Domain:          domain,
			Group:           grp,
			Targets:         targets,
			DurationMinutes: duration,
			Constraints: tension.Constraints{
				Connectivity: connectivity,
				Setting:      setting,
				Tools:        tools,
			},
		})
		if err != nil {
			return describeError(err)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		renderTensions(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	f := tensionsCmd.Flags()
	f.String("domain", skillgraph.SeedDomain, "Domain name")
	f.String("group", catalog.DemoGroupName, "Learner group name")
	f.StringSlice("target", nil, "Target skill ids in teaching order (comma separated or repeated)")
	f.Float64("duration", 0, "Available minutes (0 skips the scope check)")
	f.String("connectivity", "", "Connectivity, e.g. offline")
	f.String("setting", "", "Setting, e.g. outdoor")
	f.StringSlice("tool", nil, "Available tool (repeatable)")
	f.Bool("json", false, "Print the report as JSON")
}

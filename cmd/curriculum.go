package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/engine"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

var curriculumCmd = &cobra.Command{
	Use:     "curriculum",
	Short:   "Compose a multi-session curriculum for a group",
	Example: "  lessonlens curriculum --demo --sessions 3 --minutes 90 --target pandas-groupby",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		domain, _ := f.GetString("domain")
		grp, _ := f.GetString("group")
		sessions, _ := f.GetInt("sessions")
		minutes, _ := f.GetFloat64("minutes")
		targets, _ := f.GetStringSlice("target")
		asJSON, _ := f.GetBool("json")

		svc, closeFn, err := newService(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		c, err := svc.ComposeCurriculum(context.Background(), engine.CurriculumRequest{
			Domain:         domain,
			Group:          grp,
			Sessions:       sessions,
			SessionMinutes: minutes,
			Targets:        targets,
		})
		if err != nil {
			return describeError(err)
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), c)
		}
		renderCurriculum(cmd.OutOrStdout(), c)
		return nil
	},
}

func init() {
	f := curriculumCmd.Flags()
	f.String("domain", skillgraph.SeedDomain, "Domain name")
	f.String("group", catalog.DemoGroupName, "Learner group name")
	f.Int("sessions", 3, "Number of sessions")
	f.Float64("minutes", 90, "Minutes per session")
	f.StringSlice("target", nil, "Target skill ids (default: every skill in the domain)")
	f.Bool("json", false, "Print the curriculum as JSON")
}

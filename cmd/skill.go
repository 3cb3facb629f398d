package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Browse a domain's skill graph",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills of a domain in teaching order",
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")

		g, closeFn, err := loadDomain(cmd, domain)
		if err != nil {
			return err
		}
		defer closeFn()

		out := cmd.OutOrStdout()
		// Header.
		fmt.Fprintf(out, "%-26s  %-36s  %-13s  %6s  %s\n",
			"ID", "Label", "Bloom", "Prereq", "Assessable")
		fmt.Fprintln(out, strings.Repeat("─", 98))

		for _, s := range g.TopologicalOrder() {
			label := s.Label
			if len(label) > 36 {
				label = label[:33] + "..."
			}
			assess := "yes"
			if !s.Assessable {
				assess = "no"
			}
			fmt.Fprintf(out, "%-26s  %-36s  %-13s  %6d  %s\n",
				s.ID, label, s.Bloom, len(g.Prerequisites(s.ID)), assess)
		}

		var roots []string
		for _, s := range g.Roots() {
			roots = append(roots, s.ID)
		}
		fmt.Fprintf(out, "\n%d skills\n", g.Len())
		fmt.Fprintf(out, "Entry points: %s\n", strings.Join(roots, ", "))
		if cyc := g.Cycles(); len(cyc) > 0 {
			fmt.Fprintf(out, "warning: prerequisite cycle among %s\n", strings.Join(cyc, ", "))
		}
		return nil
	},
}

var skillShowCmd = &cobra.Command{
	Use:   "show SKILL",
	Short: "Show one skill with its prerequisites and dependents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")

		g, closeFn, err := loadDomain(cmd, domain)
		if err != nil {
			return err
		}
		defer closeFn()

		s, err := g.GetSkill(args[0])
		if err != nil {
			return fmt.Errorf("%w in domain %q", err, domain)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", s.Label, s.ID)
		fmt.Fprintf(out, "  Bloom:         %s\n", s.Bloom)
		fmt.Fprintf(out, "  Assessable:    %t\n", s.Assessable)
		fmt.Fprintf(out, "  Prerequisites: %s\n", listOrNone(g.Prerequisites(s.ID)))
		fmt.Fprintf(out, "  Unlocks:       %s\n", listOrNone(g.Dependents(s.ID)))
		return nil
	},
}

var skillDomainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the available domains",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, closeFn, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		names, err := cat.Domains(context.Background())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(names) == 0 {
			fmt.Fprintln(out, "No domains imported (try `lessonlens import --seed`)")
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}

// loadDomain opens the catalog and fetches one domain graph.
func loadDomain(cmd *cobra.Command, domain string) (*skillgraph.Graph, func(), error) {
	cat, closeFn, err := openCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}
	g, err := cat.Domain(context.Background(), domain)
	if errors.Is(err, catalog.ErrNotFound) {
		closeFn()
		return nil, nil, fmt.Errorf("domain %q not found (try `lessonlens import --seed`)", domain)
	}
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return g, closeFn, nil
}

func listOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func init() {
	skillListCmd.Flags().String("domain", skillgraph.SeedDomain, "Domain name")
	skillShowCmd.Flags().String("domain", skillgraph.SeedDomain, "Domain name")

	skillCmd.AddCommand(skillListCmd)
	skillCmd.AddCommand(skillShowCmd)
	skillCmd.AddCommand(skillDomainsCmd)
}

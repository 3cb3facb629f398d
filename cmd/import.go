package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/bundle"
	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/skillgraph"
	"github.com/abhisek/lessonlens/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import domains and groups into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetBool("seed")
		if !seed {
			return cmd.Help()
		}
		return withStore(cmd, func(s *store.Store) error {
			ctx := context.Background()
			if err := s.ImportDomain(ctx, skillgraph.Seed()); err != nil {
				return err
			}
			if _, err := s.ImportGroup(ctx, catalog.DemoGroup()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported domain %q and group %q\n", skillgraph.SeedDomain, catalog.DemoGroupName)
			return nil
		})
	},
}

var importDomainCmd = &cobra.Command{
	Use:   "domain <file.yaml>",
	Short: "Import a domain bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := bundle.LoadDomain(args[0])
		if err != nil {
			return err
		}
		g := f.Graph()
		if err := g.Validate(); err != nil {
			newLogger(cmd).Warn("importing domain with structural problems", "domain", g.Domain(), "error", err)
		}
		return withStore(cmd, func(s *store.Store) error {
			if err := s.ImportDomain(context.Background(), g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported domain %q (%d skills, %d edges)\n", g.Domain(), g.Len(), len(g.Edges()))
			return nil
		})
	},
}

var importGroupCmd = &cobra.Command{
	Use:   "group <file.yaml>",
	Short: "Import a learner group bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		grp, err := bundle.LoadGroup(args[0])
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *store.Store) error {
			skipped, err := s.ImportGroup(context.Background(), grp)
			if err != nil {
				return err
			}
			log := newLogger(cmd)
			for _, r := range grp.Records {
				if r.Err != nil {
					log.Warn("skipped learner", "group", grp.Name, "learner", r.ID, "error", r.Err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported group %q (%d learners, %d skipped)\n",
				grp.Name, len(grp.Records)-len(skipped), len(skipped))
			return nil
		})
	},
}

func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s)
}

func init() {
	importCmd.Flags().Bool("seed", false, "Import the built-in demo domain and group")

	importCmd.AddCommand(importDomainCmd)
	importCmd.AddCommand(importGroupCmd)
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/engine"
	"github.com/abhisek/lessonlens/internal/logging"
	"github.com/abhisek/lessonlens/internal/pacing"
	"github.com/abhisek/lessonlens/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lessonlens",
	Short: "Critique lesson plans and compose curricula over a skill graph",
	Long: "lessonlens checks a teaching plan against a prerequisite skill graph and a group's\n" +
		"learner records, and sequences the skills a group still needs across sessions.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides LESSONLENS_DB env var)")
	pf.Bool("demo", false, "Use the built-in demo domain and group instead of the database")
	pf.String("config", "", "Path to a pacing config YAML file")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(tensionsCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LESSONLENS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	return logging.New(logging.Config{Level: level, Format: format, Writer: cmd.ErrOrStderr()})
}

func loadConfig(cmd *cobra.Command) (pacing.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := pacing.Load(path)
	if err != nil {
		return pacing.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openCatalog returns the demo catalog with --demo, else the SQLite store.
// The returned func releases it.
func openCatalog(cmd *cobra.Command) (catalog.Catalog, func(), error) {
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		return catalog.NewMemory(), func() {}, nil
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return s, func() { s.Close() }, nil
}

func newService(cmd *cobra.Command) (*engine.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cat, closeFn, err := openCatalog(cmd)
	if err != nil {
		return nil, nil, err
	}
	return engine.New(cat, cfg, newLogger(cmd)), closeFn, nil
}

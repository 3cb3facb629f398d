package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableDomains  = "domains"
	tableSkills   = "skills"
	tableEdges    = "edges"
	tableGroups   = "learner_groups"
	tableLearners = "learners"
)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func text(name string) *schema.Column {
	return &schema.Column{Name: name, Type: field.TypeString}
}

func importedAt() *schema.Column {
	return &schema.Column{Name: "imported_at", Type: field.TypeTime, Default: schema.Expr("CURRENT_TIMESTAMP")}
}

func position() *schema.Column {
	return &schema.Column{Name: "position", Type: field.TypeInt}
}

// tables returns fresh table definitions; the migrator mutates them.
func tables() []*schema.Table {
	return []*schema.Table{
		schema.NewTable(tableDomains).
			AddPrimary(text("name")).
			AddColumn(importedAt()),
		schema.NewTable(tableSkills).
			AddPrimary(text("domain")).
			AddPrimary(text("id")).
			AddColumn(&schema.Column{Name: "label", Type: field.TypeString, Default: ""}).
			AddColumn(text("bloom")).
			AddColumn(&schema.Column{Name: "assessable", Type: field.TypeBool, Default: false}).
			AddColumn(position()),
		schema.NewTable(tableEdges).
			AddPrimary(text("domain")).
			AddPrimary(position()).
			AddColumn(text("source")).
			AddColumn(text("target")).
			AddColumn(text("type")).
			AddColumn(&schema.Column{Name: "confidence", Type: field.TypeFloat64, Default: 0}),
		schema.NewTable(tableGroups).
			AddPrimary(text("name")).
			AddColumn(importedAt()),
		schema.NewTable(tableLearners).
			AddPrimary(text("group_name")).
			AddPrimary(position()).
			AddColumn(text("learner_id")).
			// JSON-encoded group.LearnerSkillMap.
			AddColumn(text("data")),
	}
}

// migrate creates missing tables with ent's schema migrator.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, tables()...)
}

// execer is satisfied by both the driver and a transaction.
type execer interface {
	Exec(ctx context.Context, query string, args, v any) error
}

func (s *Store) exec(ctx context.Context, ex execer, q entsql.Querier) error {
	query, args := q.Query()
	if err := ex.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("exec %q: %w", query, err)
	}
	return nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

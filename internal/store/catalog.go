package store

import (
	"context"
	"encoding/json"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

var _ catalog.Catalog = (*Store)(nil)

// ImportDomain stores g, replacing any domain with the same name.
func (s *Store) ImportDomain(ctx context.Context, g *skillgraph.Graph) error {
	name := g.Domain()
	b := builder()
	return s.inTx(ctx, func(tx dialect.Tx) error {
		steps := []entsql.Querier{
			b.Insert(tableDomains).Columns("name").Values(name).
				OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()),
			b.Delete(tableSkills).Where(entsql.EQ("domain", name)),
			b.Delete(tableEdges).Where(entsql.EQ("domain", name)),
		}
		for i, sk := range g.Skills() {
			steps = append(steps, b.Insert(tableSkills).
				Columns("domain", "id", "label", "bloom", "assessable", "position").
				Values(name, sk.ID, sk.Label, string(sk.Bloom), sk.Assessable, i))
		}
		for i, e := range g.Edges() {
			steps = append(steps, b.Insert(tableEdges).
				Columns("domain", "position", "source", "target", "type", "confidence").
				Values(name, i, e.Source, e.Target, string(e.Type), e.Confidence))
		}
		for _, q := range steps {
			if err := s.exec(ctx, tx, q); err != nil {
				return fmt.Errorf("import domain %q: %w", name, err)
			}
		}
		return nil
	})
}

// ImportGroup stores the clean learners of grp, replacing any group with the
// same name. Records carrying an error are skipped; their ids are returned.
func (s *Store) ImportGroup(ctx context.Context, grp catalog.Group) (skipped []string, err error) {
	b := builder()
	err = s.inTx(ctx, func(tx dialect.Tx) error {
		steps := []entsql.Querier{
			b.Insert(tableGroups).Columns("name").Values(grp.Name).
				OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()),
			b.Delete(tableLearners).Where(entsql.EQ("group_name", grp.Name)),
		}
		for i, r := range grp.Records {
			if r.Err != nil {
				skipped = append(skipped, r.ID)
				continue
			}
			data, err := json.Marshal(r.Learner)
			if err != nil {
				return fmt.Errorf("marshal learner %s: %w", r.ID, err)
			}
			steps = append(steps, b.Insert(tableLearners).
				Columns("group_name", "position", "learner_id", "data").
				Values(grp.Name, i, r.ID, string(data)))
		}
		for _, q := range steps {
			if err := s.exec(ctx, tx, q); err != nil {
				return fmt.Errorf("import group %q: %w", grp.Name, err)
			}
		}
		return nil
	})
	return skipped, err
}

// Domain loads a stored domain graph.
func (s *Store) Domain(ctx context.Context, name string) (*skillgraph.Graph, error) {
	b := builder()
	ok, err := s.exists(ctx, b.Select("name").From(entsql.Table(tableDomains)).Where(entsql.EQ("name", name)))
	if err != nil {
		return nil, fmt.Errorf("query domain %q: %w", name, err)
	}
	if !ok {
		return nil, fmt.Errorf("domain %q: %w", name, catalog.ErrNotFound)
	}

	var skills []skillgraph.Skill
	err = s.query(ctx, b.Select("id", "label", "bloom", "assessable").
		From(entsql.Table(tableSkills)).
		Where(entsql.EQ("domain", name)).
		OrderBy("position"),
		func(rows *entsql.Rows) error {
			var sk skillgraph.Skill
			var bloom string
			if err := rows.Scan(&sk.ID, &sk.Label, &bloom, &sk.Assessable); err != nil {
				return err
			}
			sk.Bloom = skillgraph.BloomLevel(bloom)
			skills = append(skills, sk)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query skills of %q: %w", name, err)
	}

	var edges []skillgraph.Edge
	err = s.query(ctx, b.Select("source", "target", "type", "confidence").
		From(entsql.Table(tableEdges)).
		Where(entsql.EQ("domain", name)).
		OrderBy("position"),
		func(rows *entsql.Rows) error {
			var e skillgraph.Edge
			var typ string
			if err := rows.Scan(&e.Source, &e.Target, &typ, &e.Confidence); err != nil {
				return err
			}
			e.Type = skillgraph.EdgeType(typ)
			edges = append(edges, e)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query edges of %q: %w", name, err)
	}

	return skillgraph.New(name, skills, edges), nil
}

// Group loads a stored group. A learner row whose data cannot be decoded
// becomes a record carrying the error.
func (s *Store) Group(ctx context.Context, name string) (catalog.Group, error) {
	b := builder()
	ok, err := s.exists(ctx, b.Select("name").From(entsql.Table(tableGroups)).Where(entsql.EQ("name", name)))
	if err != nil {
		return catalog.Group{}, fmt.Errorf("query group %q: %w", name, err)
	}
	if !ok {
		return catalog.Group{}, fmt.Errorf("group %q: %w", name, catalog.ErrNotFound)
	}

	grp := catalog.Group{Name: name}
	err = s.query(ctx, b.Select("learner_id", "data").
		From(entsql.Table(tableLearners)).
		Where(entsql.EQ("group_name", name)).
		OrderBy("position"),
		func(rows *entsql.Rows) error {
			var id, data string
			if err := rows.Scan(&id, &data); err != nil {
				return err
			}
			rec := catalog.Record{ID: id}
			var l group.LearnerSkillMap
			if err := json.Unmarshal([]byte(data), &l); err != nil {
				rec.Err = fmt.Errorf("decode learner %s: %w", id, err)
			} else {
				rec.Learner = l
			}
			grp.Records = append(grp.Records, rec)
			return nil
		})
	if err != nil {
		return catalog.Group{}, fmt.Errorf("query learners of %q: %w", name, err)
	}
	return grp, nil
}

// Domains lists the stored domain names, sorted.
func (s *Store) Domains(ctx context.Context) ([]string, error) {
	var names []string
	err := s.query(ctx, builder().Select("name").From(entsql.Table(tableDomains)).OrderBy("name"),
		func(rows *entsql.Rows) error {
			var n string
			if err := rows.Scan(&n); err != nil {
				return err
			}
			names = append(names, n)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return names, nil
}

func (s *Store) exists(ctx context.Context, q entsql.Querier) (bool, error) {
	found := false
	err := s.query(ctx, q, func(*entsql.Rows) error {
		found = true
		return nil
	})
	return found, err
}

// query runs q and calls scan for each row.
func (s *Store) query(ctx context.Context, q entsql.Querier, scan func(*entsql.Rows) error) error {
	query, args := q.Query()
	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

func TestMemory_Seeded(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	g, err := m.Domain(ctx, skillgraph.SeedDomain)
	require.NoError(t, err)
	assert.Equal(t, 15, g.Len())

	grp, err := m.Group(ctx, DemoGroupName)
	require.NoError(t, err)
	assert.Len(t, grp.Records, 5)

	names, err := m.Domains(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{skillgraph.SeedDomain}, names)
}

func TestMemory_NotFound(t *testing.T) {
	var m Memory
	ctx := context.Background()

	_, err := m.Domain(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = m.Group(ctx, "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemory_CanceledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Domain(ctx, skillgraph.SeedDomain)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroup_LearnersSplitsFailures(t *testing.T) {
	grp := Group{Name: "g", Records: []Record{
		{ID: "a", Learner: group.LearnerSkillMap{ID: "a"}},
		{ID: "b", Err: errors.New("bad json")},
		{ID: "c", Learner: group.LearnerSkillMap{ID: "c"}},
	}}
	ok, failed := grp.Learners()
	require.Len(t, ok, 2)
	assert.Equal(t, "a", ok[0].ID)
	assert.Equal(t, []string{"b"}, failed)
}

package tension

import (
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/pacing"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

func prereq(src, dst string) skillgraph.Edge {
	return skillgraph.Edge{Source: src, Target: dst, Type: skillgraph.EdgePrerequisite, Confidence: 1}
}

func newContext(g *skillgraph.Graph, targets []string, learners []group.LearnerSkillMap) *Context {
	cfg := pacing.Default()
	return &Context{
		Graph:    g,
		Targets:  targets,
		Learners: learners,
		Profile:  group.Aggregate(learners, cfg.LearnerGrasp),
		Config:   cfg,
	}
}

func learner(id string, skills map[string]float64) group.LearnerSkillMap {
	return group.NewLearnerSkillMap(id, id, skills, nil)
}

package catalog

import "github.com/abhisek/lessonlens/internal/group"

// DemoGroupName names the built-in group of learners for the seed domain.
const DemoGroupName = "demo-cohort"

// DemoGroup returns five learners of mixed background for the seed domain.
func DemoGroup() Group {
	learners := []group.LearnerSkillMap{
		group.NewLearnerSkillMap("ana", "Ana", map[string]float64{
			"python-basics": 0.9, "install-packages": 0.8, "import-pandas": 0.7,
			"dataframe-structure": 0.6, "select-filter-data": 0.5,
		}, map[string]float64{"jupyter-notebooks": 0.7}),
		group.NewLearnerSkillMap("ben", "Ben", map[string]float64{
			"python-basics": 0.8, "import-pandas": 0.4,
		}, nil),
		group.NewLearnerSkillMap("chen", "Chen", map[string]float64{
			"python-basics": 0.95, "install-packages": 0.9, "import-pandas": 0.9,
			"dataframe-structure": 0.85, "select-filter-data": 0.8, "pandas-groupby": 0.7,
		}, map[string]float64{"sort-data": 0.75}),
		group.NewLearnerSkillMap("dee", "Dee", map[string]float64{
			"python-basics": 0.6,
		}, map[string]float64{"install-packages": 0.3}),
		group.NewLearnerSkillMap("eli", "Eli", map[string]float64{
			"python-basics": 0.7, "install-packages": 0.6, "basic-plotting": 0.5,
		}, nil),
	}

	records := make([]Record, len(learners))
	for i, l := range learners {
		records[i] = Record{ID: l.ID, Learner: l}
	}
	return Group{Name: DemoGroupName, Records: records}
}

package skillgraph

// SeedDomain is the name of the built-in demo domain.
const SeedDomain = "python-data-analysis"

var seedSkills = []Skill{
	{ID: "python-basics", Label: "Python syntax basics", Bloom: BloomKnowledge, Assessable: true},
	{ID: "install-packages", Label: "Install Python packages with pip", Bloom: BloomApplication, Assessable: true},
	{ID: "jupyter-notebooks", Label: "Work in Jupyter notebooks", Bloom: BloomApplication, Assessable: false},
	{ID: "import-pandas", Label: "Import pandas and load a CSV", Bloom: BloomKnowledge, Assessable: true},
	{ID: "dataframe-structure", Label: "Understand DataFrame structure", Bloom: BloomComprehension, Assessable: true},
	{ID: "select-filter-data", Label: "Select and filter data", Bloom: BloomApplication, Assessable: true},
	{ID: "sort-data", Label: "Sort rows by column", Bloom: BloomApplication, Assessable: true},
	{ID: "handle-missing-values", Label: "Handle missing values", Bloom: BloomApplication, Assessable: true},
	{ID: "pandas-groupby", Label: "Aggregate with pandas groupby", Bloom: BloomAnalysis, Assessable: true},
	{ID: "merge-datasets", Label: "Merge datasets", Bloom: BloomAnalysis, Assessable: true},
	{ID: "basic-plotting", Label: "Basic plotting with matplotlib", Bloom: BloomApplication, Assessable: true},
	{ID: "interpret-charts", Label: "Interpret charts", Bloom: BloomAnalysis, Assessable: true},
	{ID: "fetch-api-data", Label: "Fetch data from a web API", Bloom: BloomApplication, Assessable: true},
	{ID: "design-analysis-pipeline", Label: "Design an analysis pipeline", Bloom: BloomSynthesis, Assessable: false},
	{ID: "evaluate-data-claims", Label: "Evaluate claims made with data", Bloom: BloomEvaluation, Assessable: false},
}

var seedEdges = []Edge{
	{Source: "python-basics", Target: "install-packages", Type: EdgePrerequisite, Confidence: 0.9},
	{Source: "python-basics", Target: "jupyter-notebooks", Type: EdgePrerequisite, Confidence: 0.7},
	{Source: "python-basics", Target: "import-pandas", Type: EdgePrerequisite, Confidence: 0.95},
	{Source: "install-packages", Target: "import-pandas", Type: EdgePrerequisite, Confidence: 0.8},
	{Source: "import-pandas", Target: "dataframe-structure", Type: EdgePrerequisite, Confidence: 0.9},
	{Source: "dataframe-structure", Target: "select-filter-data", Type: EdgePrerequisite, Confidence: 0.9},
	{Source: "dataframe-structure", Target: "sort-data", Type: EdgePrerequisite, Confidence: 0.85},
	{Source: "dataframe-structure", Target: "handle-missing-values", Type: EdgePrerequisite, Confidence: 0.8},
	{Source: "select-filter-data", Target: "pandas-groupby", Type: EdgePrerequisite, Confidence: 0.9},
	{Source: "select-filter-data", Target: "merge-datasets", Type: EdgePrerequisite, Confidence: 0.75},
	{Source: "import-pandas", Target: "basic-plotting", Type: EdgePrerequisite, Confidence: 0.7},
	{Source: "basic-plotting", Target: "interpret-charts", Type: EdgePrerequisite, Confidence: 0.8},
	{Source: "python-basics", Target: "fetch-api-data", Type: EdgePrerequisite, Confidence: 0.6},
	{Source: "pandas-groupby", Target: "design-analysis-pipeline", Type: EdgePrerequisite, Confidence: 0.85},
	{Source: "merge-datasets", Target: "design-analysis-pipeline", Type: EdgePrerequisite, Confidence: 0.8},
	{Source: "handle-missing-values", Target: "design-analysis-pipeline", Type: EdgePrerequisite, Confidence: 0.75},
	{Source: "interpret-charts", Target: "evaluate-data-claims", Type: EdgePrerequisite, Confidence: 0.8},
	{Source: "design-analysis-pipeline", Target: "evaluate-data-claims", Type: EdgePrerequisite, Confidence: 0.7},
	{Source: "sort-data", Target: "pandas-groupby", Type: EdgeRelated, Confidence: 0.4},
}

// Seed returns the built-in demo graph.
func Seed() *Graph {
	return New(SeedDomain, seedSkills, seedEdges)
}

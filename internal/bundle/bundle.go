// Package bundle reads domain graphs and learner groups from YAML files.
//
// Domain file:
//
//	domain: python-data-analysis
//	skills:
//	  - {id: python-basics, label: Python syntax basics, bloom: knowledge, assessable: true}
//	edges:
//	  - {source: python-basics, target: import-pandas, type: prerequisite, confidence: 0.9}
//
// Group file:
//
//	name: spring-cohort
//	learners:
//	  - id: ana
//	    name: Ana
//	    assessed: {python-basics: 0.9}
//	    inferred: {jupyter-notebooks: 0.6}
package bundle

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessonlens/internal/catalog"
	"github.com/abhisek/lessonlens/internal/group"
	"github.com/abhisek/lessonlens/internal/skillgraph"
)

// InvalidError reports a bundle that failed schema validation.
type InvalidError struct {
	Kind string // "domain" or "group"
	Err  error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid %s bundle: %v", e.Kind, e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// DomainFile is the decoded form of a domain bundle.
type DomainFile struct {
	Domain string             `yaml:"domain" json:"domain"`
	Skills []skillgraph.Skill `yaml:"skills" json:"skills"`
	Edges  []skillgraph.Edge  `yaml:"edges" json:"edges"`
}

// Graph builds the skill graph. Edges without a type are prerequisites.
func (f DomainFile) Graph() *skillgraph.Graph {
	edges := make([]skillgraph.Edge, len(f.Edges))
	for i, e := range f.Edges {
		if e.Type == "" {
			e.Type = skillgraph.EdgePrerequisite
		}
		edges[i] = e
	}
	return skillgraph.New(f.Domain, f.Skills, edges)
}

// LearnerEntry is one learner in a group bundle.
type LearnerEntry struct {
	ID       string             `yaml:"id" json:"id"`
	Name     string             `yaml:"name" json:"name"`
	Assessed map[string]float64 `yaml:"assessed" json:"assessed,omitempty"`
	Inferred map[string]float64 `yaml:"inferred" json:"inferred,omitempty"`
}

// GroupFile is the decoded form of a group bundle.
type GroupFile struct {
	Name     string         `yaml:"name" json:"name"`
	Learners []LearnerEntry `yaml:"learners" json:"learners"`
}

// ParseDomain validates and decodes a domain bundle.
func ParseDomain(data []byte) (DomainFile, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return DomainFile{}, fmt.Errorf("parse domain yaml: %w", err)
	}
	doc, err := toJSONValue(raw)
	if err != nil {
		return DomainFile{}, &InvalidError{Kind: "domain", Err: err}
	}
	if err := validate("domain", domainSchema, doc); err != nil {
		return DomainFile{}, &InvalidError{Kind: "domain", Err: err}
	}

	var f DomainFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return DomainFile{}, fmt.Errorf("decode domain yaml: %w", err)
	}
	return f, nil
}

// ParseGroup validates and decodes a group bundle. The envelope must be
// valid; a learner entry that fails validation is returned as a record
// carrying the error instead of failing the whole group.
func ParseGroup(data []byte) (catalog.Group, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return catalog.Group{}, fmt.Errorf("parse group yaml: %w", err)
	}
	env, learners, err := splitGroup(&root)
	if err != nil {
		return catalog.Group{}, &InvalidError{Kind: "group", Err: err}
	}
	if err := validate("group", groupSchema, env); err != nil {
		return catalog.Group{}, &InvalidError{Kind: "group", Err: err}
	}

	name, _ := env["name"].(string)
	grp := catalog.Group{Name: name}
	for i, node := range learners {
		grp.Records = append(grp.Records, decodeLearner(i, node))
	}
	return grp, nil
}

// splitGroup converts the top-level mapping to JSON values, leaving one
// null placeholder per learner. The learner nodes are returned untouched.
func splitGroup(root *yaml.Node) (map[string]any, []*yaml.Node, error) {
	doc := root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 1 {
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return nil, nil, errors.New("group bundle must be a mapping")
	}

	env := make(map[string]any, len(doc.Content)/2)
	var learners []*yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i].Value, doc.Content[i+1]
		if key == "learners" && val.Kind == yaml.SequenceNode {
			learners = val.Content
			env[key] = make([]any, len(learners))
			continue
		}
		v, err := nodeValue(val)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", key, err)
		}
		env[key] = v
	}
	return env, learners, nil
}

func decodeLearner(i int, node *yaml.Node) catalog.Record {
	id := learnerID(node)
	if id == "" {
		id = fmt.Sprintf("#%d", i+1)
	}
	fail := func(err error) catalog.Record {
		return catalog.Record{ID: id, Err: fmt.Errorf("learner %s: %w", id, err)}
	}

	doc, err := nodeValue(node)
	if err != nil {
		return fail(err)
	}
	if err := validate("learner", learnerSchema, doc); err != nil {
		return fail(err)
	}
	var e LearnerEntry
	if err := node.Decode(&e); err != nil {
		return fail(err)
	}
	return catalog.Record{
		ID:      e.ID,
		Learner: group.NewLearnerSkillMap(e.ID, e.Name, e.Assessed, e.Inferred),
	}
}

// learnerID returns the scalar id of a learner mapping, or "".
func learnerID(node *yaml.Node) string {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return ""
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		if k.Value == "id" && v.Kind == yaml.ScalarNode {
			return v.Value
		}
	}
	return ""
}

// nodeValue decodes node into plain JSON types for the validator.
func nodeValue(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return toJSONValue(v)
}

// LoadDomain reads and parses a domain bundle file.
func LoadDomain(path string) (DomainFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DomainFile{}, fmt.Errorf("read domain bundle: %w", err)
	}
	return ParseDomain(data)
}

// LoadGroup reads and parses a group bundle file.
func LoadGroup(path string) (catalog.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return catalog.Group{}, fmt.Errorf("read group bundle: %w", err)
	}
	return ParseGroup(data)
}

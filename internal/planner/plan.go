// Package planner converts natural-language prompts into structured file
// generation plans.
package planner

import (
	"sort"

	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

// Generator tags name the content generator responsible for a planned file.
// The orchestrator's dispatch table recognizes exactly this closed set.
const (
	GenFrontend    = "frontend_agent"
	GenBackend     = "backend_agent"
	GenDatabase    = "database_agent"
	GenIntegration = "integration_agent"
	GenRefiner     = "refiner_agent"
)

// KnownGenerators is the closed set of generator tags the plan builder may
// emit.
var KnownGenerators = map[string]struct{}{
	GenFrontend:    {},
	GenBackend:     {},
	GenDatabase:    {},
	GenIntegration: {},
	GenRefiner:     {},
}

// FileSpec describes one file to be generated: where it goes, who generates
// it, and in what order relative to its siblings.
type FileSpec struct {
	Path         string           `yaml:"path"`
	Agent        string           `yaml:"agent"`
	Dependencies []string         `yaml:"dependencies,omitempty"`
	Description  string           `yaml:"description"`
	Priority     int              `yaml:"priority"`
	Tech         vocab.Technology `yaml:"tech_stack,omitempty"`
}

// Plan is the complete, ordered description of all files to produce for one
// request. Plans are pure values: built once, never mutated afterwards.
type Plan struct {
	ProjectName         string                           `yaml:"project_name"`
	Description         string                           `yaml:"description"`
	TechStack           map[vocab.Layer]vocab.Technology `yaml:"tech_stack"`
	Files               []FileSpec                       `yaml:"files"`
	Dependencies        []string                         `yaml:"dependencies,omitempty"`
	Integrations        []string                         `yaml:"integrations,omitempty"`
	EstimatedComplexity int                              `yaml:"estimated_complexity"`
}

// SortedFiles returns a copy of the plan's files ordered by ascending
// priority. The sort is stable, so files sharing a priority keep their
// authoring order. This is the authoritative generation order.
func (p *Plan) SortedFiles() []FileSpec {
	files := make([]FileSpec, len(p.Files))
	copy(files, p.Files)
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Priority < files[j].Priority
	})
	return files
}

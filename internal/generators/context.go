// Package generators defines the contract shared by all content generators.
// Each area generator lives in its own subpackage and renders file content
// from a plan entry plus the project-wide context.
package generators

import (
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

// Context carries the project-wide facts a generator may need beyond the
// single file it is rendering. Built once per project from the plan and
// passed by value.
type Context struct {
	ProjectName  string
	ProjectType  string
	Description  string
	TechStack    map[vocab.Layer]vocab.Technology
	Features     []string
	Integrations []string
	Dependencies []string
}

// NewContext derives a generation context from a plan and its analysis.
func NewContext(plan *planner.Plan, analysis planner.Analysis) Context {
	return Context{
		ProjectName:  plan.ProjectName,
		ProjectType:  analysis.ProjectType,
		Description:  plan.Description,
		TechStack:    plan.TechStack,
		Features:     analysis.Features,
		Integrations: plan.Integrations,
		Dependencies: plan.Dependencies,
	}
}

// HasFeature reports whether the project context includes a feature tag.
func (c Context) HasFeature(tag string) bool {
	for _, f := range c.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// HasIntegration reports whether the project context includes an integration
// category.
func (c Context) HasIntegration(category string) bool {
	for _, i := range c.Integrations {
		if i == category {
			return true
		}
	}
	return false
}

// Tech returns the technology resolved for a layer, or the layer default if
// the context carries no stack.
func (c Context) Tech(layer vocab.Layer) vocab.Technology {
	if t, ok := c.TechStack[layer]; ok {
		return t
	}
	return vocab.DefaultFor(layer)
}

// Generator renders the content of one planned file. Implementations must be
// pure: same spec and context, same output.
type Generator interface {
	Generate(spec planner.FileSpec, ctx Context) (string, error)
}

// Package integration generates glue modules for third-party services.
package integration

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/bowerbird-suite/bowerbird/internal/generator"
	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Generator renders payment and OAuth integration modules.
type Generator struct {
	renderer *generator.Renderer
}

// NewGenerator creates an integration generator.
func NewGenerator() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

type templateData struct {
	ProjectName string
	Module      string
}

// Generate renders the integration module named by spec.
func (g *Generator) Generate(spec planner.FileSpec, ctx generators.Context) (string, error) {
	data := templateData{ProjectName: ctx.ProjectName}

	var tmpl string
	switch path.Base(spec.Path) {
	case "payment.py":
		tmpl = "payment.py.tmpl"
	case "oauth.py":
		tmpl = "oauth.py.tmpl"
	default:
		tmpl = "integration.py.tmpl"
		base := path.Base(spec.Path)
		data.Module = strings.TrimSuffix(base, path.Ext(base))
	}

	out, err := g.renderer.RenderFS(templates, "templates/"+tmpl, data)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", spec.Path, err)
	}
	return string(out), nil
}

package refiner

import (
	"embed"
	"fmt"
	"path"
	"sort"

	"github.com/bowerbird-suite/bowerbird/internal/generator"
	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Generator renders the documentation files assigned to the refiner: the
// project README and the API reference.
type Generator struct {
	renderer *generator.Renderer
}

// NewGenerator creates a documentation generator.
func NewGenerator() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

type templateData struct {
	ProjectName  string
	ProjectType  string
	Description  string
	Frontend     string
	Backend      string
	Database     string
	Features     []string
	Integrations []string
	HasAuth      bool
}

func newTemplateData(ctx generators.Context) templateData {
	features := append([]string(nil), ctx.Features...)
	sort.Strings(features)
	return templateData{
		ProjectName:  ctx.ProjectName,
		ProjectType:  ctx.ProjectType,
		Description:  ctx.Description,
		Frontend:     string(ctx.Tech(vocab.LayerFrontend)),
		Backend:      string(ctx.Tech(vocab.LayerBackend)),
		Database:     string(ctx.Tech(vocab.LayerDatabase)),
		Features:     features,
		Integrations: ctx.Integrations,
		HasAuth:      ctx.HasFeature(vocab.FeatureAuthentication),
	}
}

// Generate renders the documentation file named by spec.
func (g *Generator) Generate(spec planner.FileSpec, ctx generators.Context) (string, error) {
	var tmpl string
	switch path.Base(spec.Path) {
	case "README.md":
		tmpl = "readme.md.tmpl"
	default:
		tmpl = "api.md.tmpl"
	}

	out, err := g.renderer.RenderFS(templates, "templates/"+tmpl, newTemplateData(ctx))
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", spec.Path, err)
	}
	return string(out), nil
}

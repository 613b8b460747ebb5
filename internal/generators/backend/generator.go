// Package backend generates FastAPI application files.
package backend

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/bowerbird-suite/bowerbird/internal/generator"
	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Generator renders the FastAPI application, its routers and models, and the
// Python requirements manifest.
type Generator struct {
	renderer *generator.Renderer
}

// NewGenerator creates a backend generator.
func NewGenerator() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

type templateData struct {
	ProjectName string
	Module      string
	Database    string
	UsesSQL     bool
	HasAuth     bool
	HasRealTime bool
	HasUpload   bool
	HasPayment  bool
}

func newTemplateData(ctx generators.Context) templateData {
	db := ctx.Tech(vocab.LayerDatabase)
	return templateData{
		ProjectName: ctx.ProjectName,
		Database:    string(db),
		UsesSQL:     db != vocab.MongoDB,
		HasAuth:     ctx.HasFeature(vocab.FeatureAuthentication),
		HasRealTime: ctx.HasFeature(vocab.FeatureRealTime),
		HasUpload:   ctx.HasFeature(vocab.FeatureFileUpload),
		HasPayment:  ctx.HasIntegration(vocab.IntegrationPayment),
	}
}

// Generate renders the file named by spec. Unknown Python filenames become a
// stub module named after the file.
func (g *Generator) Generate(spec planner.FileSpec, ctx generators.Context) (string, error) {
	data := newTemplateData(ctx)

	var tmpl string
	switch path.Base(spec.Path) {
	case "main.py":
		tmpl = "main.py.tmpl"
	case "auth.py":
		tmpl = "auth.py.tmpl"
	case "user.py":
		tmpl = "user.py.tmpl"
	case "requirements.txt":
		tmpl = "requirements.txt.tmpl"
	case "docker-compose.yml":
		tmpl = "docker-compose.yml.tmpl"
	case ".env.example":
		tmpl = "env.example.tmpl"
	case ".gitignore":
		tmpl = "gitignore.tmpl"
	default:
		tmpl = "module.py.tmpl"
		data.Module = moduleName(spec.Path)
	}

	out, err := g.renderer.RenderFS(templates, "templates/"+tmpl, data)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", spec.Path, err)
	}
	return string(out), nil
}

// moduleName derives a Python module name from a file path, e.g.
// "backend/routers/items.py" -> "items".
func moduleName(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}

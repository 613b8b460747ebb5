// Package frontend generates React application files.
package frontend

import (
	"embed"
	"fmt"
	"path"

	"github.com/bowerbird-suite/bowerbird/internal/generator"
	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Generator renders React components and the frontend package manifest.
type Generator struct {
	renderer *generator.Renderer
}

// NewGenerator creates a frontend generator.
func NewGenerator() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

// templateData is the view passed to every frontend template.
type templateData struct {
	ProjectName string
	Component   string
	HasAuth     bool
	HasTasks    bool
	HasRealTime bool
	HasUpload   bool
}

func newTemplateData(ctx generators.Context) templateData {
	return templateData{
		ProjectName: ctx.ProjectName,
		HasAuth:     ctx.HasFeature(vocab.FeatureAuthentication),
		HasTasks:    ctx.HasFeature(vocab.FeatureTaskManagement),
		HasRealTime: ctx.HasFeature(vocab.FeatureRealTime),
		HasUpload:   ctx.HasFeature(vocab.FeatureFileUpload),
	}
}

// Generate renders the file named by spec. Known filenames get dedicated
// templates; anything else becomes a stub component named after the file.
func (g *Generator) Generate(spec planner.FileSpec, ctx generators.Context) (string, error) {
	data := newTemplateData(ctx)

	var tmpl string
	switch path.Base(spec.Path) {
	case "App.jsx":
		tmpl = "app.jsx.tmpl"
	case "Header.jsx":
		tmpl = "header.jsx.tmpl"
	case "Home.jsx":
		tmpl = "home.jsx.tmpl"
	case "Login.jsx":
		tmpl = "login.jsx.tmpl"
	case "Register.jsx":
		tmpl = "register.jsx.tmpl"
	case "package.json":
		tmpl = "package.json.tmpl"
	default:
		tmpl = "component.jsx.tmpl"
		data.Component = componentName(spec.Path)
	}

	out, err := g.renderer.RenderFS(templates, "templates/"+tmpl, data)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", spec.Path, err)
	}
	return string(out), nil
}

// componentName derives a React component name from a file path, e.g.
// "frontend/src/pages/Profile.jsx" -> "Profile".
func componentName(p string) string {
	base := path.Base(p)
	ext := path.Ext(base)
	name := base[:len(base)-len(ext)]
	if name == "" {
		return "Component"
	}
	return name
}

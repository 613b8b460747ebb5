// Package database generates schema and migration files for the resolved
// database technology.
package database

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

// Generator renders database schemas. Each supported engine gets its own
// template; the table set inside a schema follows the project's features.
type Generator struct {
	renderer *generator.Renderer
}

// NewGenerator creates a database generator.
func NewGenerator() *Generator {
	return &Generator{renderer: generator.NewRenderer()}
}

type templateData struct {
	ProjectName  string
	HasAuth      bool
	HasTasks     bool
	HasECommerce bool
	HasUpload    bool
}

func newTemplateData(ctx generators.Context) templateData {
	return templateData{
		ProjectName:  ctx.ProjectName,
		HasAuth:      ctx.HasFeature(vocab.FeatureAuthentication),
		HasTasks:     ctx.HasFeature(vocab.FeatureTaskManagement),
		HasECommerce: ctx.HasFeature(vocab.FeatureECommerce),
		HasUpload:    ctx.HasFeature(vocab.FeatureFileUpload),
	}
}

// Generate renders the schema or migration named by spec.
func (g *Generator) Generate(spec planner.FileSpec, ctx generators.Context) (string, error) {
	data := newTemplateData(ctx)

	var tmpl string
	if path.Base(spec.Path) == "schema.sql" {
		tmpl = schemaTemplate(ctx.Tech(vocab.LayerDatabase))
	} else {
		tmpl = "migration.sql.tmpl"
	}

	out, err := g.renderer.RenderFS(templates, "templates/"+tmpl, data)
	if err != nil {
		return "", fmt.Errorf("generating %s: %w", spec.Path, err)
	}
	return string(out), nil
}

func schemaTemplate(tech vocab.Technology) string {
	switch tech {
	case vocab.MySQL:
		return "schema_mysql.sql.tmpl"
	case vocab.SQLite:
		return "schema_sqlite.sql.tmpl"
	case vocab.MongoDB:
		return "schema_mongodb.js.tmpl"
	default:
		return "schema_postgresql.sql.tmpl"
	}
}

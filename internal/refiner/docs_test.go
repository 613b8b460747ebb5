package refiner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

func docsContext() generators.Context {
	return generators.Context{
		ProjectName: "recipe_sharing",
		ProjectType: "web_application",
		Description: "Generated web_application application",
		TechStack: map[vocab.Layer]vocab.Technology{
			vocab.LayerFrontend: vocab.React,
			vocab.LayerBackend:  vocab.FastAPI,
			vocab.LayerDatabase: vocab.PostgreSQL,
		},
		Features:     []string{vocab.FeatureAuthentication, "user_management"},
		Integrations: []string{vocab.IntegrationPayment},
	}
}

func TestGenerateReadme(t *testing.T) {
	out, err := NewGenerator().Generate(planner.FileSpec{Path: "README.md"}, docsContext())
	require.NoError(t, err)

	assert.Contains(t, out, "# Recipe Sharing")
	assert.Contains(t, out, "Frontend: react")
	assert.Contains(t, out, "Database: postgresql")
	assert.Contains(t, out, "- Authentication")
	assert.Contains(t, out, "docker-compose up")
}

func TestGenerateAPIDoc(t *testing.T) {
	out, err := NewGenerator().Generate(planner.FileSpec{Path: "docs/api.md"}, docsContext())
	require.NoError(t, err)

	assert.Contains(t, out, "GET /health")
	assert.Contains(t, out, "POST /api/auth/login")
}

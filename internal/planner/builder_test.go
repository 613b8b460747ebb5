package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaultPlan(t *testing.T) {
	plan := CreatePlan("")

	require.NotEmpty(t, plan.Files)
	assert.Equal(t, "generated_project", plan.ProjectName)
	assert.Equal(t, "Generated web_application application", plan.Description)
	assert.Equal(t, 3, plan.EstimatedComplexity)

	paths := planPaths(plan)
	assert.Contains(t, paths, "frontend/src/App.jsx")
	assert.Contains(t, paths, "backend/main.py")
	assert.Contains(t, paths, "database/schema.sql")
	assert.Contains(t, paths, "README.md")
	assert.Contains(t, paths, ".gitignore")
}

func TestBuildKnownAgentsAndPriorities(t *testing.T) {
	plan := CreatePlan("Create an online shop app with user login, Stripe and Google auth")

	for _, f := range plan.Files {
		assert.Contains(t, KnownGenerators, f.Agent, "file %s has unknown agent %q", f.Path, f.Agent)
		assert.GreaterOrEqual(t, f.Priority, 1, "file %s priority", f.Path)
		assert.NotEmpty(t, f.Path)
	}
}

func TestBuildAuthFiles(t *testing.T) {
	withAuth := CreatePlan("Create a notes app with user login")
	assert.Contains(t, planPaths(withAuth), "frontend/src/pages/Login.jsx")
	assert.Contains(t, planPaths(withAuth), "frontend/src/pages/Register.jsx")

	noAuth := CreatePlan("Create a weather dashboard platform")
	assert.NotContains(t, planPaths(noAuth), "frontend/src/pages/Login.jsx")
}

func TestBuildIntegrationFiles(t *testing.T) {
	plan := CreatePlan("Create a shop app with Stripe payments and OAuth")

	paths := planPaths(plan)
	assert.Contains(t, paths, "backend/integrations/payment.py")
	assert.Contains(t, paths, "backend/integrations/oauth.py")
}

func TestBuildDependencies(t *testing.T) {
	plan := CreatePlan("Create a gallery app with image upload and user login")

	assert.Contains(t, plan.Dependencies, "react")
	assert.Contains(t, plan.Dependencies, "fastapi")
	assert.Contains(t, plan.Dependencies, "psycopg2-binary")
	assert.Contains(t, plan.Dependencies, "passlib")
	assert.Contains(t, plan.Dependencies, "pillow")
}

func TestBuildDeterministic(t *testing.T) {
	prompt := "Create a task management app with chat, file upload and Stripe"

	first := CreatePlan(prompt)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, CreatePlan(prompt))
	}
}

func TestSortedFiles(t *testing.T) {
	plan := CreatePlan("Create a shop app with Stripe and user login")

	sorted := plan.SortedFiles()
	require.Len(t, sorted, len(plan.Files))
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, sorted[i-1].Priority, sorted[i].Priority)
	}

	// Sorting returns a copy, the plan itself stays untouched.
	assert.Equal(t, 1, plan.Files[0].Priority)
}

func planPaths(p *Plan) []string {
	paths := make([]string, 0, len(p.Files))
	for _, f := range p.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

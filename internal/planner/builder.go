package planner

import (
	"fmt"

	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

// Builder assembles generation plans from prompt analyses. Building never
// fails and is fully deterministic: equal analyses produce structurally
// equal plans.
type Builder struct{}

// NewBuilder creates a plan builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// CreatePlan is a convenience that analyzes a prompt and builds its plan in
// one step.
func CreatePlan(prompt string) *Plan {
	analysis := NewAnalyzer().Analyze(prompt)
	return NewBuilder().Build(analysis)
}

// Build produces the complete generation plan for an analysis. Files are
// appended in fixed area order (frontend, backend, database, integration,
// config, documentation); consumers sort by priority when they need a
// generation order.
func (b *Builder) Build(analysis Analysis) *Plan {
	var files []FileSpec
	files = append(files, b.frontendFiles(analysis)...)
	files = append(files, b.backendFiles(analysis)...)
	files = append(files, b.databaseFiles(analysis)...)
	files = append(files, b.integrationFiles(analysis)...)
	files = append(files, b.configFiles(analysis)...)
	files = append(files, b.documentationFiles(analysis)...)

	return &Plan{
		ProjectName:         analysis.ProjectName,
		Description:         fmt.Sprintf("Generated %s application", analysis.ProjectType),
		TechStack:           analysis.TechStack,
		Files:               files,
		Dependencies:        b.dependencies(analysis),
		Integrations:        analysis.Integrations,
		EstimatedComplexity: analysis.Complexity,
	}
}

// frontendFiles emits the frontend skeleton. Only the React branch is
// enumerated; other frontend technologies rely on the downstream generator's
// own fallback.
func (b *Builder) frontendFiles(analysis Analysis) []FileSpec {
	tech := analysis.TechStack[vocab.LayerFrontend]
	var files []FileSpec

	if tech == vocab.React {
		files = append(files,
			FileSpec{
				Path:        "frontend/src/App.jsx",
				Agent:       GenFrontend,
				Description: "Main React application component",
				Priority:    1,
				Tech:        tech,
			},
			FileSpec{
				Path:         "frontend/src/components/Header.jsx",
				Agent:        GenFrontend,
				Dependencies: []string{"App.jsx"},
				Description:  "Header component",
				Priority:     2,
				Tech:         tech,
			},
			FileSpec{
				Path:         "frontend/src/pages/Home.jsx",
				Agent:        GenFrontend,
				Dependencies: []string{"App.jsx"},
				Description:  "Home page component",
				Priority:     2,
				Tech:         tech,
			},
			FileSpec{
				Path:        "frontend/package.json",
				Agent:       GenFrontend,
				Description: "Frontend package configuration",
				Priority:    1,
				Tech:        tech,
			},
		)
	}

	if analysis.HasFeature(vocab.FeatureAuthentication) {
		files = append(files,
			FileSpec{
				Path:         "frontend/src/pages/Login.jsx",
				Agent:        GenFrontend,
				Dependencies: []string{"App.jsx"},
				Description:  "Login page component",
				Priority:     2,
				Tech:         tech,
			},
			FileSpec{
				Path:         "frontend/src/pages/Register.jsx",
				Agent:        GenFrontend,
				Dependencies: []string{"App.jsx"},
				Description:  "Registration page component",
				Priority:     2,
				Tech:         tech,
			},
		)
	}

	return files
}

// backendFiles emits the backend skeleton. Only the FastAPI branch is
// enumerated.
func (b *Builder) backendFiles(analysis Analysis) []FileSpec {
	tech := analysis.TechStack[vocab.LayerBackend]
	if tech != vocab.FastAPI {
		return nil
	}

	return []FileSpec{
		{
			Path:        "backend/main.py",
			Agent:       GenBackend,
			Description: "FastAPI main application",
			Priority:    1,
			Tech:        tech,
		},
		{
			Path:         "backend/routers/auth.py",
			Agent:        GenBackend,
			Dependencies: []string{"main.py"},
			Description:  "Authentication routes",
			Priority:     2,
			Tech:         tech,
		},
		{
			Path:         "backend/models/user.py",
			Agent:        GenBackend,
			Dependencies: []string{"main.py"},
			Description:  "User model",
			Priority:     2,
			Tech:         tech,
		},
		{
			Path:        "backend/requirements.txt",
			Agent:       GenBackend,
			Description: "Backend dependencies",
			Priority:    1,
			Tech:        tech,
		},
	}
}

// databaseFiles always emits a schema file and one initial migration, tagged
// with whatever database technology was resolved.
func (b *Builder) databaseFiles(analysis Analysis) []FileSpec {
	tech := analysis.TechStack[vocab.LayerDatabase]

	return []FileSpec{
		{
			Path:        "database/schema.sql",
			Agent:       GenDatabase,
			Description: "Database schema definition",
			Priority:    1,
			Tech:        tech,
		},
		{
			Path:         "database/migrations/001_initial.sql",
			Agent:        GenDatabase,
			Dependencies: []string{"schema.sql"},
			Description:  "Initial database migration",
			Priority:     2,
			Tech:         tech,
		},
	}
}

// integrationFiles emits one file per distinct integration category that has
// a skeleton defined. Categories without one flow through the plan's
// aggregate integrations list only.
func (b *Builder) integrationFiles(analysis Analysis) []FileSpec {
	var files []FileSpec

	for _, integration := range analysis.Integrations {
		switch integration {
		case vocab.IntegrationPayment:
			files = append(files, FileSpec{
				Path:         "backend/integrations/payment.py",
				Agent:        GenIntegration,
				Dependencies: []string{"main.py"},
				Description:  "Payment integration (Stripe/PayPal)",
				Priority:     3,
			})
		case vocab.IntegrationAuthentication:
			files = append(files, FileSpec{
				Path:         "backend/integrations/oauth.py",
				Agent:        GenIntegration,
				Dependencies: []string{"main.py"},
				Description:  "OAuth integration",
				Priority:     3,
			})
		}
	}

	return files
}

func (b *Builder) configFiles(analysis Analysis) []FileSpec {
	return []FileSpec{
		{
			Path:        "docker-compose.yml",
			Agent:       GenBackend,
			Description: "Docker Compose configuration",
			Priority:    3,
		},
		{
			Path:        ".env.example",
			Agent:       GenBackend,
			Description: "Environment variables example",
			Priority:    2,
		},
		{
			Path:        ".gitignore",
			Agent:       GenBackend,
			Description: "Git ignore file",
			Priority:    3,
		},
	}
}

func (b *Builder) documentationFiles(analysis Analysis) []FileSpec {
	return []FileSpec{
		{
			Path:        "README.md",
			Agent:       GenRefiner,
			Description: "Project documentation",
			Priority:    2,
		},
		{
			Path:         "docs/api.md",
			Agent:        GenRefiner,
			Dependencies: []string{"main.py"},
			Description:  "API documentation",
			Priority:     3,
		},
	}
}

// dependencies derives the flat package dependency list from the resolved
// stack and features. Concatenated without dedup, informational only.
func (b *Builder) dependencies(analysis Analysis) []string {
	var deps []string

	if analysis.TechStack[vocab.LayerFrontend] == vocab.React {
		deps = append(deps, "react", "react-dom", "react-router-dom")
	}
	if analysis.TechStack[vocab.LayerBackend] == vocab.FastAPI {
		deps = append(deps, "fastapi", "uvicorn", "pydantic")
	}
	if analysis.TechStack[vocab.LayerDatabase] == vocab.PostgreSQL {
		deps = append(deps, "psycopg2-binary", "sqlalchemy")
	}
	if analysis.HasFeature(vocab.FeatureAuthentication) {
		deps = append(deps, "python-jose", "passlib", "bcrypt")
	}
	if analysis.HasFeature(vocab.FeatureFileUpload) {
		deps = append(deps, "python-multipart", "pillow")
	}

	return deps
}

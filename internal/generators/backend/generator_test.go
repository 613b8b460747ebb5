package backend

import (
	"strings"
	"testing"

	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

func testContext(db vocab.Technology, features ...string) generators.Context {
	return generators.Context{
		ProjectName: "recipe_sharing",
		TechStack: map[vocab.Layer]vocab.Technology{
			vocab.LayerFrontend: vocab.React,
			vocab.LayerBackend:  vocab.FastAPI,
			vocab.LayerDatabase: db,
		},
		Features: features,
	}
}

func TestGenerateMain(t *testing.T) {
	g := NewGenerator()

	out, err := g.Generate(planner.FileSpec{Path: "backend/main.py"}, testContext(vocab.PostgreSQL))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "FastAPI(") {
		t.Error("main.py missing FastAPI app")
	}
	if strings.Contains(out, "include_router") {
		t.Error("main.py should not include routers without authentication")
	}

	out, err = g.Generate(planner.FileSpec{Path: "backend/main.py"},
		testContext(vocab.PostgreSQL, vocab.FeatureAuthentication))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "app.include_router(auth.router") {
		t.Error("main.py missing auth router with authentication feature")
	}
}

func TestGenerateRequirements(t *testing.T) {
	g := NewGenerator()

	out, err := g.Generate(planner.FileSpec{Path: "backend/requirements.txt"},
		testContext(vocab.PostgreSQL, vocab.FeatureAuthentication))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, want := range []string{"fastapi", "psycopg2-binary", "sqlalchemy", "passlib"} {
		if !strings.Contains(out, want) {
			t.Errorf("requirements.txt missing %q", want)
		}
	}

	out, err = g.Generate(planner.FileSpec{Path: "backend/requirements.txt"},
		testContext(vocab.MongoDB))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "motor") {
		t.Error("requirements.txt missing motor for mongodb")
	}
	if strings.Contains(out, "sqlalchemy") {
		t.Error("requirements.txt should not include sqlalchemy for mongodb")
	}
}

func TestGenerateUserModel(t *testing.T) {
	g := NewGenerator()

	out, err := g.Generate(planner.FileSpec{Path: "backend/models/user.py"},
		testContext(vocab.PostgreSQL))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "declarative_base") {
		t.Error("user.py should use SQLAlchemy for SQL databases")
	}

	out, err = g.Generate(planner.FileSpec{Path: "backend/models/user.py"},
		testContext(vocab.MongoDB))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(out, "sqlalchemy") {
		t.Error("user.py should not use SQLAlchemy for mongodb")
	}
}

func TestGenerateConfigFiles(t *testing.T) {
	g := NewGenerator()
	ctx := testContext(vocab.PostgreSQL, vocab.FeatureAuthentication)

	out, err := g.Generate(planner.FileSpec{Path: "docker-compose.yml"}, ctx)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "postgres:16-alpine") {
		t.Error("docker-compose.yml missing postgres service")
	}

	out, err = g.Generate(planner.FileSpec{Path: ".env.example"}, ctx)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "DATABASE_URL=postgresql://") {
		t.Error(".env.example missing postgres DATABASE_URL")
	}
	if !strings.Contains(out, "SECRET_KEY=") {
		t.Error(".env.example missing SECRET_KEY with authentication")
	}

	out, err = g.Generate(planner.FileSpec{Path: ".gitignore"}, ctx)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "__pycache__/") {
		t.Error(".gitignore missing python entries")
	}
}

func TestGenerateFallbackModule(t *testing.T) {
	out, err := NewGenerator().Generate(
		planner.FileSpec{Path: "backend/routers/items.py"}, testContext(vocab.PostgreSQL))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "async def list_items()") {
		t.Errorf("fallback module not named after the file:\n%s", out)
	}
}

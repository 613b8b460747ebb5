package frontend

import (
	"strings"
	"testing"

	"github.com/bowerbird-suite/bowerbird/internal/generators"
	"github.com/bowerbird-suite/bowerbird/internal/planner"
	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

func testContext(features ...string) generators.Context {
	return generators.Context{
		ProjectName: "recipe_sharing",
		ProjectType: "web_application",
		TechStack: map[vocab.Layer]vocab.Technology{
			vocab.LayerFrontend: vocab.React,
			vocab.LayerBackend:  vocab.FastAPI,
			vocab.LayerDatabase: vocab.PostgreSQL,
		},
		Features: features,
	}
}

func TestGenerateApp(t *testing.T) {
	g := NewGenerator()

	out, err := g.Generate(planner.FileSpec{Path: "frontend/src/App.jsx"}, testContext())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "BrowserRouter") {
		t.Error("App.jsx missing router import")
	}
	if strings.Contains(out, "Login") {
		t.Error("App.jsx should not reference Login without the authentication feature")
	}

	out, err = g.Generate(planner.FileSpec{Path: "frontend/src/App.jsx"},
		testContext(vocab.FeatureAuthentication))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, `path="/login"`) {
		t.Error("App.jsx missing login route with authentication feature")
	}
}

func TestGenerateHeader(t *testing.T) {
	out, err := NewGenerator().Generate(
		planner.FileSpec{Path: "frontend/src/components/Header.jsx"}, testContext())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "Recipe Sharing") {
		t.Errorf("Header missing title-cased project name:\n%s", out)
	}
}

func TestGeneratePackageJSON(t *testing.T) {
	out, err := NewGenerator().Generate(
		planner.FileSpec{Path: "frontend/package.json"},
		testContext(vocab.FeatureRealTime, vocab.FeatureAuthentication))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, want := range []string{`"react"`, "socket.io-client", "jwt-decode", "recipe_sharing-frontend"} {
		if !strings.Contains(out, want) {
			t.Errorf("package.json missing %q", want)
		}
	}
	if strings.Contains(out, "axios") {
		t.Error("package.json should not include axios without file_upload")
	}
}

func TestGenerateFallbackComponent(t *testing.T) {
	out, err := NewGenerator().Generate(
		planner.FileSpec{Path: "frontend/src/pages/Profile.jsx"}, testContext())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(out, "function Profile()") {
		t.Errorf("fallback component not named after the file:\n%s", out)
	}
}

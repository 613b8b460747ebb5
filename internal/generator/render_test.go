package generator

import (
	"testing"
	"testing/fstest"
)

func TestRenderString(t *testing.T) {
	r := NewRenderer()

	out, err := r.RenderString("Hello {{.Name}}!", map[string]string{"Name": "World"})
	if err != nil {
		t.Fatalf("RenderString failed: %v", err)
	}
	if string(out) != "Hello World!" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/greet.tmpl": {Data: []byte("Hi {{.Name}}")},
	}

	r := NewRenderer()
	for i := 0; i < 2; i++ {
		out, err := r.RenderFS(fsys, "templates/greet.tmpl", map[string]string{"Name": "Ada"})
		if err != nil {
			t.Fatalf("RenderFS failed: %v", err)
		}
		if string(out) != "Hi Ada" {
			t.Errorf("output = %q", out)
		}
	}
}

func TestTemplateFuncs(t *testing.T) {
	r := NewRenderer()

	tests := []struct {
		tmpl string
		want string
	}{
		{`{{title "recipe_sharing"}}`, "Recipe Sharing"},
		{`{{snake "My Project"}}`, "my_project"},
		{`{{upper "api"}}`, "API"},
		{`{{join .Items ", "}}`, "a, b"},
	}

	for _, tt := range tests {
		out, err := r.RenderString(tt.tmpl, map[string][]string{"Items": {"a", "b"}})
		if err != nil {
			t.Fatalf("%s: %v", tt.tmpl, err)
		}
		if string(out) != tt.want {
			t.Errorf("%s = %q, want %q", tt.tmpl, out, tt.want)
		}
	}
}

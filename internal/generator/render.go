// Package generator provides the file operation engine: template rendering,
// validated file operations, and batch execution with per-file error
// recovery.
package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"text/template"
)

// Renderer renders templates with caching. Safe for concurrent use.
type Renderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
}

// NewRenderer creates a renderer with an empty cache.
func NewRenderer() *Renderer {
	return &Renderer{
		cache: make(map[string]*template.Template),
	}
}

// funcMap returns the helper functions available to all templates.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"title": titleCase,
		"pascal": func(s string) string {
			return strings.ReplaceAll(titleCase(s), " ", "")
		},
		"snake": snakeCase,
		"join":  strings.Join,
	}
}

// titleCase converts "recipe_sharing" or "recipe sharing" to
// "Recipe Sharing".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// snakeCase converts spaces and dashes to underscores and lowercases.
func snakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// RenderFS renders a template from a filesystem (usually embed.FS), caching
// the parsed template under its path.
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[path]
	r.mu.RUnlock()

	if !ok {
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", path, err)
		}

		tmpl, err = template.New(path).Funcs(funcMap()).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}

		r.mu.Lock()
		r.cache[path] = tmpl
		r.mu.Unlock()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", path, err)
	}

	return buf.Bytes(), nil
}

// RenderString renders an inline template without caching.
func (r *Renderer) RenderString(tmplStr string, data any) ([]byte, error) {
	tmpl, err := template.New("inline").Funcs(funcMap()).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

// Package refiner post-processes generated file content. Passes are chosen
// by file extension and every pass is idempotent: refining already refined
// content is a no-op.
package refiner

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Refiner applies cleanup passes to generated content.
type Refiner struct{}

// NewRefiner creates a refiner.
func NewRefiner() *Refiner {
	return &Refiner{}
}

// Refine cleans content according to the file's extension. Python files get
// their imports organized, SQL files get keywords uppercased, and every file
// gets trailing whitespace stripped and a single final newline.
func (r *Refiner) Refine(filePath, content string) string {
	switch path.Ext(filePath) {
	case ".py":
		content = organizePythonImports(content)
	case ".sql":
		content = uppercaseSQLKeywords(content)
	}
	return normalizeWhitespace(content)
}

var excessBlankLines = regexp.MustCompile(`\n{4,}`)

// normalizeWhitespace strips trailing spaces and tabs from every line, caps
// blank-line runs at two (PEP 8 spacing survives), and ensures the content
// ends with exactly one newline.
func normalizeWhitespace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	out := strings.Join(lines, "\n")
	out = excessBlankLines.ReplaceAllString(out, "\n\n\n")
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

var sqlKeywords = regexp.MustCompile(`(?i)\b(select|from|where|insert|update|delete|create|drop|alter|table|index|primary|key|foreign|references|not|null|default|unique|check|constraint|and|or|order|by|group|having|inner|left|right|full|outer|join|on|as|distinct|count|sum|avg|min|max)\b`)

// uppercaseSQLKeywords normalizes SQL keywords to upper case. Matching is on
// word boundaries, so identifiers that merely contain a keyword are left
// alone.
func uppercaseSQLKeywords(content string) string {
	return sqlKeywords.ReplaceAllStringFunc(content, strings.ToUpper)
}

// organizePythonImports hoists top-level import statements into a sorted
// block below the module docstring: plain imports first, from-imports after,
// each group sorted and deduplicated.
func organizePythonImports(content string) string {
	lines := strings.Split(content, "\n")

	docstring, rest := splitDocstring(lines)

	var plainImports, fromImports, body []string
	seen := make(map[string]struct{})
	for _, line := range rest {
		trimmed := strings.TrimSpace(line)
		isImport := line == trimmed &&
			(strings.HasPrefix(trimmed, "import ") ||
				(strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import ")))
		if !isImport {
			body = append(body, line)
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		if strings.HasPrefix(trimmed, "import ") {
			plainImports = append(plainImports, trimmed)
		} else {
			fromImports = append(fromImports, trimmed)
		}
	}

	if len(plainImports) == 0 && len(fromImports) == 0 {
		return content
	}
	sort.Strings(plainImports)
	sort.Strings(fromImports)

	var out []string
	if len(docstring) > 0 {
		out = append(out, docstring...)
		out = append(out, "")
	}
	out = append(out, plainImports...)
	out = append(out, fromImports...)

	// Drop blank lines the hoisted imports left behind at the top of the
	// body.
	start := 0
	for start < len(body) && strings.TrimSpace(body[start]) == "" {
		start++
	}
	if start < len(body) {
		out = append(out, "")
		out = append(out, body[start:]...)
	}

	return strings.Join(out, "\n")
}

// splitDocstring separates a leading module docstring from the rest of the
// file. Returns nil and the original lines when there is none.
func splitDocstring(lines []string) (docstring, rest []string) {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start >= len(lines) {
		return nil, lines
	}

	first := strings.TrimSpace(lines[start])
	if !strings.HasPrefix(first, `"""`) && !strings.HasPrefix(first, "'''") {
		return nil, lines
	}
	quote := first[:3]

	// Single-line docstring.
	if len(first) >= 6 && strings.HasSuffix(first, quote) {
		return lines[start : start+1], lines[start+1:]
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], quote) {
			return lines[start : i+1], lines[i+1:]
		}
	}
	return nil, lines
}

package planner

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/bowerbird-suite/bowerbird/internal/vocab"
)

// Analysis is the structured result of analyzing a free-text prompt. It is
// produced once per request and consumed immediately by the plan builder.
type Analysis struct {
	ProjectName  string
	ProjectType  string
	TechStack    map[vocab.Layer]vocab.Technology
	Integrations []string
	Features     []string
	Complexity   int
}

// HasFeature reports whether the analysis extracted the given feature tag.
func (a Analysis) HasFeature(tag string) bool {
	for _, f := range a.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// HasIntegration reports whether the analysis extracted the given
// integration category.
func (a Analysis) HasIntegration(category string) bool {
	for _, i := range a.Integrations {
		if i == category {
			return true
		}
	}
	return false
}

// Analyzer extracts requirements from natural-language prompts. It never
// fails: absent matches always fall through to defaults, so arbitrary text
// yields a usable analysis.
type Analyzer struct{}

// NewAnalyzer creates a prompt analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// namePatterns are tried in order; the first match wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`create\s+a\s+([a-zA-Z\s]+)\s+(?:app|system|platform|website)`),
	regexp.MustCompile(`build\s+a\s+([a-zA-Z\s]+)\s+(?:app|system|platform|website)`),
	regexp.MustCompile(`develop\s+a\s+([a-zA-Z\s]+)\s+(?:app|system|platform|website)`),
}

var (
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// fallbackProjectName is used when no naming pattern matches the prompt.
const fallbackProjectName = "generated_project"

// Analyze extracts the tech stack, integrations, features, project type,
// project name, and a complexity estimate from a prompt.
func (a *Analyzer) Analyze(prompt string) Analysis {
	lower := strings.ToLower(prompt)

	analysis := Analysis{
		ProjectName:  extractProjectName(prompt),
		ProjectType:  determineProjectType(lower),
		TechStack:    resolveTechStack(lower),
		Integrations: matchIntegrations(lower),
		Features:     matchFeatures(lower),
	}
	analysis.Complexity = estimateComplexity(len(analysis.Features), len(analysis.Integrations))

	return analysis
}

// techCandidate tracks the best keyword match seen so far for one layer.
type techCandidate struct {
	tech    vocab.Technology
	index   int
	keyword string
}

// resolveTechStack picks one technology per layer. When several keywords for
// the same layer appear, the one occurring earliest in the prompt wins; at
// equal offsets the longer keyword wins ("postgresql" beats "postgres").
// Layers the prompt never names get their fixed defaults, so the returned
// map always contains all three layer keys.
func resolveTechStack(lower string) map[vocab.Layer]vocab.Technology {
	best := make(map[vocab.Layer]techCandidate)

	for keyword, tech := range vocab.TechKeywords {
		idx := strings.Index(lower, keyword)
		if idx < 0 {
			continue
		}
		layer, ok := vocab.LayerOf(tech)
		if !ok {
			continue
		}
		cand, seen := best[layer]
		if !seen || betterMatch(idx, keyword, cand) {
			best[layer] = techCandidate{tech: tech, index: idx, keyword: keyword}
		}
	}

	stack := make(map[vocab.Layer]vocab.Technology, len(vocab.Layers))
	for _, layer := range vocab.Layers {
		if cand, ok := best[layer]; ok {
			stack[layer] = cand.tech
		} else {
			stack[layer] = vocab.DefaultFor(layer)
		}
	}
	return stack
}

// betterMatch implements the deterministic tie-break: earliest prompt offset
// first, then longest keyword, then lexicographic keyword order.
func betterMatch(idx int, keyword string, cand techCandidate) bool {
	if idx != cand.index {
		return idx < cand.index
	}
	if len(keyword) != len(cand.keyword) {
		return len(keyword) > len(cand.keyword)
	}
	return keyword < cand.keyword
}

// matchIntegrations collects every integration category whose keyword appears
// in the prompt. Duplicates collapse; the result is sorted for determinism.
func matchIntegrations(lower string) []string {
	seen := make(map[string]struct{})
	for keyword, category := range vocab.IntegrationKeywords {
		if strings.Contains(lower, keyword) {
			seen[category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// matchFeatures unions the feature tags implied by every matching keyword.
func matchFeatures(lower string) []string {
	seen := make(map[string]struct{})
	for keyword, tags := range vocab.FeatureKeywords {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, tag := range tags {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// determineProjectType tests the fixed keyword groups in priority order; the
// first group with any match wins.
func determineProjectType(lower string) string {
	for _, group := range vocab.ProjectTypeGroups {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				return group.Type
			}
		}
	}
	return vocab.DefaultProjectType
}

// extractProjectName pulls a name out of phrases like "create a task
// management app" and normalizes it to snake_case. Falls back to a fixed
// placeholder when no pattern matches.
func extractProjectName(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, pattern := range namePatterns {
		m := pattern.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		name = nonAlnum.ReplaceAllString(name, "")
		name = whitespace.ReplaceAllString(name, "_")
		if name != "" {
			return name
		}
	}
	return fallbackProjectName
}

// estimateComplexity scores a project on a 1-10 scale: base 3, +0.5 per
// feature, +1.5 per integration, truncated and capped at 10.
func estimateComplexity(features, integrations int) int {
	total := 3.0 + 0.5*float64(features) + 1.5*float64(integrations)
	return min(int(math.Floor(total)), 10)
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

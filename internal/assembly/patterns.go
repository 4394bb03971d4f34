package assembly

import (
	"strings"

	"github.com/casefolio/backend/internal/casestudy"
)

// EnrichWithPatterns tags a case study with recognized design-practice labels
// inferred from its answers. Purely heuristic keyword matching. The labels
// feed editor surfaces (suggestion chips next to the draft); generation
// prompts do not consume them.
func EnrichWithPatterns(inputs casestudy.Answers, templateID string) []string {
	var patterns []string

	switch templateID {
	case "ui":
		if containsItem(inputs.Items("issues"), "low contrast") {
			patterns = append(patterns, "Accessibility")
		}
		if containsItem(inputs.Items("issues"), "confusing hierarchy") {
			patterns = append(patterns, "Information Architecture")
		}
		if anyContains(inputs.Items("moves"), "cta") {
			patterns = append(patterns, "Conversion Optimization")
		}
	case "ux":
		if containsItem(inputs.Items("sources"), "usability tests") {
			patterns = append(patterns, "User Testing")
		}
		if anyContains(inputs.Items("changes"), "flow") {
			patterns = append(patterns, "User Flow Optimization")
		}
		if anyContains(inputs.Items("insights"), "friction") {
			patterns = append(patterns, "Friction Reduction")
		}
	case "social":
		if containsItem(inputs.Items("channels"), "instagram") {
			patterns = append(patterns, "Visual Storytelling")
		}
		if anyContains(inputs.Items("pillars"), "education") {
			patterns = append(patterns, "Educational Content")
		}
	}

	return patterns
}

func containsItem(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}

func anyContains(items []string, substr string) bool {
	for _, item := range items {
		if strings.Contains(strings.ToLower(item), substr) {
			return true
		}
	}
	return false
}

package agent

import (
	"context"
	"regexp"
	"strings"
)

// ChatClient is the minimal model surface the agents depend on. Implemented
// by pkg/ai's Groq client; tests substitute a canned fake.
type ChatClient interface {
	ChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// extractJSON strips markdown code-fence wrapping from model output
// (responses are often wrapped in ```json ... ``` despite instructions).
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

var (
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	jsonArray           = regexp.MustCompile(`(?s)\[.*\]`)
)

// repairJSON removes trailing commas and, when explanatory text surrounds the
// payload, extracts the first bracket-delimited array substring.
func repairJSON(content string) string {
	content = strings.TrimSpace(content)
	content = trailingCommaArray.ReplaceAllString(content, "]")
	content = trailingCommaObject.ReplaceAllString(content, "}")

	if m := jsonArray.FindString(content); m != "" {
		return strings.TrimSpace(m)
	}
	return content
}

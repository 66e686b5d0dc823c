package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

const projectSystemPrompt = `You are an expert business analyst producing a global project summary for executive leadership.

Your goal: synthesize ALL meetings in the project and produce a clear, CEO-level report.

STRICT OUTPUT FORMAT:
1. Project Name: <big font style section>
2. Participants: name1, name2, ...  (bold)
3. Summary: (big font)

For each meeting:

Meeting <number>: <Meeting Name> <Meeting Date & Time>
summary:
- bullet 1
- bullet 2
- bullet 3

After all meetings:

Overall Progress:
- 3-5 bullet points summarizing accomplishments, momentum, and major updates

Roadblocks:
- 2-4 bullet points (only if present)

Action Items:
- 2-4 bullets across participants (optional but encouraged)

STYLE RULES:
- Use concise professional language.
- Avoid unnecessary filler.
- Do NOT invent details not present.
- Combine recurring themes across meetings.`

// ProjectAgent synthesizes the cross-meeting executive narrative from the
// accumulated project history. The no-invented-facts guarantee is a
// prompt-level contract of the model, not something this code can verify.
type ProjectAgent struct {
	client ChatClient
}

// NewProjectAgent creates a new ProjectAgent
func NewProjectAgent(client ChatClient) *ProjectAgent {
	return &ProjectAgent{client: client}
}

// GenerateProjectSummary returns the narrative for the full project history.
func (a *ProjectAgent) GenerateProjectSummary(ctx context.Context, history *entities.ProjectHistory) (string, error) {
	text, err := a.client.ChatCompletion(ctx, projectSystemPrompt, FormatHistory(history))
	if err != nil {
		return "", fmt.Errorf("project summary completion failed: %w", err)
	}
	return text, nil
}

// FormatHistory renders the merged project history into the fixed section
// order the model prompt expects: project name, unique participant roster,
// numbered meeting summaries, then per-participant insights.
func FormatHistory(history *entities.ProjectHistory) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("PROJECT: %s", history.ProjectName), "")

	roster := make(map[string]struct{})
	for _, m := range history.Meetings {
		for _, p := range m.Participants {
			roster[p] = struct{}{}
		}
	}
	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)

	lines = append(lines, "PARTICIPANTS:")
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("- %s", name))
	}

	lines = append(lines, "", "MEETINGS:")
	for i, m := range history.Meetings {
		meetingTime := m.MeetingTime
		if meetingTime == "" {
			meetingTime = "Unknown Time"
		}
		lines = append(lines, "", fmt.Sprintf("%d. %s (%s)", i+1, m.MeetingName, meetingTime), "  summary:")
		for _, sp := range m.SummaryPoints {
			lines = append(lines, fmt.Sprintf("   - %s", sp))
		}
	}

	lines = append(lines, "", "PARTICIPANT INSIGHTS:")
	for _, entry := range history.UserAnalysis {
		for _, ps := range entry.ParticipantSummaries {
			lines = append(lines, fmt.Sprintf("- %s (from %s):", ps.ParticipantName, entry.MeetingName))
			for _, ku := range ps.KeyUpdates {
				lines = append(lines, fmt.Sprintf("    key_update: %s", ku))
			}
			for _, rb := range ps.Roadblocks {
				lines = append(lines, fmt.Sprintf("    roadblock: %s", rb))
			}
			for _, ac := range ps.Actionable {
				lines = append(lines, fmt.Sprintf("    actionable: %s", ac))
			}
		}
	}

	return strings.Join(lines, "\n")
}

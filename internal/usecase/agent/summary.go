package agent

import (
	"context"
	"encoding/json"
	"fmt"
)

const summarySystemPrompt = `You are a Meeting Analysis expert Agent for Leadership management.

Your task: Read the meeting transcript exactly as given and produce a concise factual summary.

GUIDELINES:
1. Base every summary point only on information that explicitly appears in the transcript.
2. When something is unclear or incomplete in the transcript, describe it as unclear.
3. Keep all points factual, concise, and directly taken from what participants said.
4. Preserve meaning without adding interpretations, assumptions, or conclusions.
5. Each summary point should be in 120-150 characters.
6. Use the speaker's exact content as the only source for the summary.

OUTPUT FORMAT:
Return a valid JSON list of 8-10 bullet points (strings).
Example structure:

[
  "Speaker A shared progress on the project timeline",
  "Speaker B mentioned a blocker related to staging access",
  "The team aligned on the next steps"
]

If the transcript includes fewer than 8 meaningful points, return only the available points.
If the transcript includes more than 10 meaningful points, select the most important ones.`

// SummaryAgent produces a bounded list of factual bullet points from a
// transcript. The response must parse as a flat list of strings; a parse
// failure is a hard error with no repair attempt at this layer.
type SummaryAgent struct {
	client ChatClient
}

// NewSummaryAgent creates a new SummaryAgent
func NewSummaryAgent(client ChatClient) *SummaryAgent {
	return &SummaryAgent{client: client}
}

// GenerateSummary returns the bullet points for a transcript.
func (a *SummaryAgent) GenerateSummary(ctx context.Context, transcript string) ([]string, error) {
	raw, err := a.client.ChatCompletion(ctx, summarySystemPrompt, transcript)
	if err != nil {
		return nil, fmt.Errorf("summary completion failed: %w", err)
	}

	cleaned := extractJSON(raw)

	var points []string
	if err := json.Unmarshal([]byte(cleaned), &points); err != nil {
		return nil, fmt.Errorf("summary response is not a JSON string list: %w", err)
	}
	return points, nil
}

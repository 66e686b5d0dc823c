package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

const participantSystemPrompt = `You are a professional Meeting Analysis expert Agent for Leadership of the organization.

Your ONLY job:
Return participant-wise analysis in STRICT JSON format very effective and concise tone.

RULES:
1. Output ONLY a JSON array. Nothing else.
2. Do NOT include markdown (no ` + "```json" + `).
3. No explanations.
4. JSON schema:

[
  {
    "participant_name": "John Doe",
    "key_updates": ["u1", "u2"],
    "roadblocks": ["b1"],
    "actionable": ["a1"]
  }
]`

// ParticipantAgent produces a per-participant breakdown of updates,
// roadblocks and action items. Model output is frequently wrapped in
// formatting noise or carries trailing commas, so parsing goes: strip code
// fences, parse; on failure repair (drop trailing commas, extract the array
// substring) and re-parse; if both fail the error carries all three texts for
// diagnosis.
type ParticipantAgent struct {
	client ChatClient
}

// NewParticipantAgent creates a new ParticipantAgent
func NewParticipantAgent(client ChatClient) *ParticipantAgent {
	return &ParticipantAgent{client: client}
}

type participantRecord struct {
	ParticipantName string   `json:"participant_name"`
	KeyUpdates      []string `json:"key_updates"`
	Roadblocks      []string `json:"roadblocks"`
	Actionable      []string `json:"actionable"`
}

// AnalyzeParticipants returns one record per participant. Each record's lists
// are capped at 5 items by the entity constructor regardless of model output.
func (a *ParticipantAgent) AnalyzeParticipants(ctx context.Context, transcript string) ([]entities.ParticipantSummary, error) {
	raw, err := a.client.ChatCompletion(ctx, participantSystemPrompt, transcript)
	if err != nil {
		return nil, fmt.Errorf("participant completion failed: %w", err)
	}

	cleaned := extractJSON(raw)

	records, parseErr := parseParticipantList(cleaned)
	if parseErr != nil {
		repaired := repairJSON(cleaned)
		records, err = parseParticipantList(repaired)
		if err != nil {
			return nil, fmt.Errorf(
				"model returned invalid JSON even after cleanup: %w\nOriginal:\n%s\n\nCleaned:\n%s\n\nRepaired:\n%s",
				err, raw, cleaned, repaired,
			)
		}
	}

	summaries := make([]entities.ParticipantSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, entities.NewParticipantSummary(
			r.ParticipantName, r.KeyUpdates, r.Roadblocks, r.Actionable,
		))
	}
	return summaries, nil
}

func parseParticipantList(text string) ([]participantRecord, error) {
	var records []participantRecord
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		return nil, err
	}
	return records, nil
}

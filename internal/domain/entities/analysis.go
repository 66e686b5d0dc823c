package entities

// maxItemsPerCategory bounds each participant list. Model output beyond the
// bound is truncated, never rejected.
const maxItemsPerCategory = 5

// ParticipantSummary is one participant's breakdown for a single meeting.
type ParticipantSummary struct {
	ParticipantName string   `bson:"participant_name" json:"participant_name"`
	KeyUpdates      []string `bson:"key_updates" json:"key_updates"`
	Roadblocks      []string `bson:"roadblocks" json:"roadblocks"`
	Actionable      []string `bson:"actionable" json:"actionable"`
}

// NewParticipantSummary builds a participant record, enforcing the per-category
// cap at the data-model level regardless of how much the agent returned.
func NewParticipantSummary(name string, keyUpdates, roadblocks, actionable []string) ParticipantSummary {
	return ParticipantSummary{
		ParticipantName: name,
		KeyUpdates:      capItems(keyUpdates),
		Roadblocks:      capItems(roadblocks),
		Actionable:      capItems(actionable),
	}
}

func capItems(items []string) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > maxItemsPerCategory {
		return items[:maxItemsPerCategory]
	}
	return items
}

// ParticipantAnalysisEntry is the stored per-meeting analysis.
type ParticipantAnalysisEntry struct {
	MeetingName          string               `bson:"meeting_name" json:"meeting_name"`
	ParticipantSummaries []ParticipantSummary `bson:"participant_summaries" json:"participant_summaries"`
}

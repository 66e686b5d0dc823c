package entities

import "time"

// ProjectSummary is the rolling executive narrative for a project. It is
// replaced on every pipeline run and always reflects the full history.
type ProjectSummary struct {
	ProjectKey    string    `bson:"project_key" json:"project_key"`
	ProjectName   string    `bson:"project_name" json:"project_name"`
	GlobalSummary string    `bson:"global_summary" json:"global_summary"`
	LastUpdated   time.Time `bson:"last_updated" json:"last_updated"`
}

// ProjectHistory is the merged view of everything stored for a project:
// all meeting summaries plus all participant analyses.
type ProjectHistory struct {
	ProjectKey   string                     `json:"project_key"`
	ProjectName  string                     `json:"project_name"`
	Meetings     []MeetingSummaryEntry      `json:"meetings"`
	UserAnalysis []ParticipantAnalysisEntry `json:"user_analysis"`
}

// SentLogEntry records a delivered notification so a retried pipeline run
// does not email the same recipient twice for the same meeting.
type SentLogEntry struct {
	ProjectKey  string    `bson:"project_key" json:"project_key"`
	MeetingName string    `bson:"meeting_name" json:"meeting_name"`
	Recipient   string    `bson:"recipient" json:"recipient"`
	SentAt      time.Time `bson:"sent_at" json:"sent_at"`
}

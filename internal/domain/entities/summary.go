package entities

// MeetingSummaryEntry is the stored summary for a single meeting.
type MeetingSummaryEntry struct {
	MeetingName   string   `bson:"meeting_name" json:"meeting_name"`
	MeetingTime   string   `bson:"meeting_time,omitempty" json:"meeting_time,omitempty"`
	Participants  []string `bson:"participants" json:"participants"`
	SummaryPoints []string `bson:"summary_points" json:"summary_points"`
}

// MeetingSummary is the Summary Agent output for one meeting, addressed by
// (project key, meeting name). At most one summary is ever stored per pair.
type MeetingSummary struct {
	ProjectKey    string   `json:"project_key"`
	ProjectName   string   `json:"project_name"`
	MeetingName   string   `json:"meeting_name"`
	MeetingTime   string   `json:"meeting_time,omitempty"`
	Participants  []string `json:"participants"`
	SummaryPoints []string `json:"summary_points"`
}

// NewMeetingSummary builds the summary record for a pipeline run.
func NewMeetingSummary(projectKey, projectName, meetingName, meetingTime string, participants, points []string) *MeetingSummary {
	return &MeetingSummary{
		ProjectKey:    projectKey,
		ProjectName:   projectName,
		MeetingName:   meetingName,
		MeetingTime:   meetingTime,
		Participants:  participants,
		SummaryPoints: points,
	}
}

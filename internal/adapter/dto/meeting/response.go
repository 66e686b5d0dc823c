package meeting

import (
	"time"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

// IngestResponse represents the result of uploading one transcript file
type IngestResponse struct {
	DocumentID    string   `json:"document_id"`
	ProjectKey    string   `json:"project_key"`
	ProjectName   string   `json:"project_name"`
	MeetingName   string   `json:"meeting_name"`
	MeetingTime   string   `json:"meeting_time,omitempty"`
	Duration      string   `json:"duration,omitempty"`
	Participants  []string `json:"participants"`
	ArchiveObject string   `json:"archive_object,omitempty"`
}

// MeetingResponse represents one meeting inside a project document
type MeetingResponse struct {
	MeetingName  string   `json:"meeting_name"`
	MeetingTime  string   `json:"meeting_time,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Participants []string `json:"participants"`
	Processed    bool     `json:"processed"`
}

// RecordResponse represents a full project document without transcript bodies
type RecordResponse struct {
	DocumentID  string            `json:"document_id"`
	ProjectKey  string            `json:"project_key"`
	ProjectName string            `json:"project_name"`
	Meetings    []MeetingResponse `json:"meetings"`
}

// ProjectResponse aggregates everything derived for one project
type ProjectResponse struct {
	ProjectKey    string                              `json:"project_key"`
	ProjectName   string                              `json:"project_name"`
	Meetings      []entities.MeetingSummaryEntry      `json:"meetings"`
	UserAnalysis  []entities.ParticipantAnalysisEntry `json:"user_analysis"`
	GlobalSummary string                              `json:"global_summary,omitempty"`
	LastUpdated   *time.Time                          `json:"last_updated,omitempty"`
}

// ChatResponse represents the answer to a project question
type ChatResponse struct {
	ProjectKey string `json:"project_key"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}

// SchedulerRunResponse reports one manual catch-up pass
type SchedulerRunResponse struct {
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// NewRecordResponse maps a stored project document to its API shape
func NewRecordResponse(doc *entities.ProjectDocument) *RecordResponse {
	meetings := make([]MeetingResponse, 0, len(doc.Meetings))
	for _, m := range doc.Meetings {
		meetings = append(meetings, MeetingResponse{
			MeetingName:  m.MeetingName,
			MeetingTime:  m.MeetingTime,
			Duration:     m.Duration,
			Participants: m.Participants,
			Processed:    m.Processed,
		})
	}
	return &RecordResponse{
		DocumentID:  doc.ID.Hex(),
		ProjectKey:  doc.ProjectKey,
		ProjectName: doc.ProjectName,
		Meetings:    meetings,
	}
}

package pipeline

import "github.com/orbitmeetai/orbitmeet/internal/domain/entities"

// State is the token threaded through pipeline stages. Each stage receives
// the current state by value and returns a new one with its fields added;
// fields written by earlier stages are never mutated in place. A State is
// created once per MeetingRecord and discarded after the run.
type State struct {
	DocumentID   string
	Transcript   string
	ProjectKey   string
	ProjectName  string
	MeetingName  string
	MeetingTime  string
	Participants []string

	SummaryPoints      []string
	Summary            *entities.MeetingSummary
	ParticipantRecords []entities.ParticipantSummary

	History       *entities.ProjectHistory
	GlobalSummary string
}

// NewState builds the initial state for one meeting record.
func NewState(documentID string, doc *entities.ProjectDocument, meeting entities.MeetingRecord) State {
	return State{
		DocumentID:   documentID,
		Transcript:   meeting.Transcript,
		ProjectKey:   doc.ProjectKey,
		ProjectName:  doc.ProjectName,
		MeetingName:  meeting.MeetingName,
		MeetingTime:  meeting.MeetingTime,
		Participants: meeting.Participants,
	}
}

func (s State) withSummaryPoints(points []string) State {
	s.SummaryPoints = points
	return s
}

func (s State) withSummary(summary *entities.MeetingSummary) State {
	s.Summary = summary
	return s
}

func (s State) withParticipantRecords(records []entities.ParticipantSummary) State {
	s.ParticipantRecords = records
	return s
}

func (s State) withHistory(history *entities.ProjectHistory) State {
	s.History = history
	return s
}

func (s State) withGlobalSummary(text string) State {
	s.GlobalSummary = text
	return s
}

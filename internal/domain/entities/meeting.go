package entities

import "go.mongodb.org/mongo-driver/bson/primitive"

// MeetingRecord is one ingested transcript inside a project document.
// The pipeline flips Processed to true after a successful run; nothing
// else ever mutates a stored meeting.
type MeetingRecord struct {
	MeetingName   string   `bson:"meeting_name" json:"meeting_name"`
	MeetingTime   string   `bson:"meeting_time" json:"meeting_time"`
	Duration      string   `bson:"duration" json:"duration"`
	Participants  []string `bson:"participants" json:"participants"`
	Transcript    string   `bson:"transcript" json:"transcript"`
	Processed     bool     `bson:"processed" json:"processed"`
	ArchiveObject string   `bson:"archive_object,omitempty" json:"archive_object,omitempty"`
}

// ProjectDocument groups all meetings that share a project key.
// Meetings are append-only; insertion order is chronological.
type ProjectDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectKey  string             `bson:"project_key" json:"project_key"`
	ProjectName string             `bson:"project_name" json:"project_name"`
	Meetings    []MeetingRecord    `bson:"meetings" json:"meetings"`
}

// FirstUnprocessed returns the first meeting that has not completed the
// pipeline yet. A missing processed flag counts as unprocessed.
func (d *ProjectDocument) FirstUnprocessed() (MeetingRecord, bool) {
	for _, m := range d.Meetings {
		if !m.Processed {
			return m, true
		}
	}
	return MeetingRecord{}, false
}

// HasMeeting reports whether a meeting with the given name already exists.
func (d *ProjectDocument) HasMeeting(name string) bool {
	for _, m := range d.Meetings {
		if m.MeetingName == name {
			return true
		}
	}
	return false
}

package repositories

import (
	"context"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

// TranscriptRepository manages raw transcript project documents.
type TranscriptRepository interface {
	// UpsertProject creates the project container if absent and appends the
	// meeting. Key and name use set-on-insert semantics; an existing
	// container's first-write fields are never overwritten.
	UpsertProject(ctx context.Context, key, name string, meeting entities.MeetingRecord) (string, error)

	// GetByKey returns the project document for a key, or
	// entities.ErrProjectNotFound.
	GetByKey(ctx context.Context, key string) (*entities.ProjectDocument, error)

	// GetByID returns the project document for a raw record id, or
	// entities.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*entities.ProjectDocument, error)

	// ListAll returns every project document.
	ListAll(ctx context.Context) ([]entities.ProjectDocument, error)

	// MarkProcessed flips the processed flag of the named meeting inside the
	// document, matched by meeting name rather than array index. Returns
	// false when no meeting matched.
	MarkProcessed(ctx context.Context, documentID, meetingName string) (bool, error)
}

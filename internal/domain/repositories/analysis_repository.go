package repositories

import (
	"context"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

// AnalysisRepository persists per-meeting agent output and serves the merged
// project history. Saves are idempotent by (project key, meeting name): a
// duplicate save is reported as skipped, never as an error, so a retried
// pipeline run tolerates re-delivery.
type AnalysisRepository interface {
	// SaveMeetingSummary stores the summary unless one already exists for the
	// (key, meeting) pair. Returns true when the save was skipped.
	SaveMeetingSummary(ctx context.Context, summary *entities.MeetingSummary) (skipped bool, err error)

	// SaveParticipantAnalysis stores the per-participant records unless an
	// analysis already exists for the pair. Returns true when skipped.
	SaveParticipantAnalysis(ctx context.Context, key, name, meeting string, records []entities.ParticipantSummary) (skipped bool, err error)

	// FetchProject returns the merged history for a key, or
	// entities.ErrProjectNotFound.
	FetchProject(ctx context.Context, key string) (*entities.ProjectHistory, error)
}

// ProjectSummaryRepository holds the rolling per-project narrative.
type ProjectSummaryRepository interface {
	// Save replaces the project summary unconditionally.
	Save(ctx context.Context, summary *entities.ProjectSummary) error

	// Get returns the current summary, or entities.ErrProjectNotFound.
	Get(ctx context.Context, key string) (*entities.ProjectSummary, error)
}

// SentLogRepository guards notification dispatch against duplicate sends
// when a run is retried after a partial failure.
type SentLogRepository interface {
	WasSent(ctx context.Context, key, meeting, recipient string) (bool, error)
	MarkSent(ctx context.Context, key, meeting, recipient string) error
}

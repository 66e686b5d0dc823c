package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	repo "github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
)

const (
	meetingSummariesCollection    = "meeting_summaries"
	participantAnalysesCollection = "participant_analyses"
)

type analysisRepository struct {
	summaries *mongo.Collection
	analyses  *mongo.Collection
}

// NewAnalysisRepository creates a Mongo-backed repository for meeting
// summaries and participant analyses.
func NewAnalysisRepository(db *mongo.Database) repo.AnalysisRepository {
	return &analysisRepository{
		summaries: db.Collection(meetingSummariesCollection),
		analyses:  db.Collection(participantAnalysesCollection),
	}
}

// hasMeetingEntry reports whether the collection already holds an entry for
// the (project key, meeting name) pair.
func hasMeetingEntry(ctx context.Context, col *mongo.Collection, key, meeting string) (bool, error) {
	res := col.FindOne(ctx,
		bson.M{"project_key": key, "meetings.meeting_name": meeting},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// pushMeetingEntry appends the entry to the project's meetings array, creating
// the container with set-on-insert key/name on first write.
func pushMeetingEntry(ctx context.Context, col *mongo.Collection, key, name string, entry interface{}) error {
	_, err := col.UpdateOne(ctx,
		bson.M{"project_key": key},
		bson.M{
			"$setOnInsert": bson.M{
				"project_key":  key,
				"project_name": name,
			},
			"$push": bson.M{"meetings": entry},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *analysisRepository) SaveMeetingSummary(ctx context.Context, summary *entities.MeetingSummary) (bool, error) {
	exists, err := hasMeetingEntry(ctx, r.summaries, summary.ProjectKey, summary.MeetingName)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing summary: %w", err)
	}
	if exists {
		return true, nil
	}

	entry := entities.MeetingSummaryEntry{
		MeetingName:   summary.MeetingName,
		MeetingTime:   summary.MeetingTime,
		Participants:  summary.Participants,
		SummaryPoints: summary.SummaryPoints,
	}
	if err := pushMeetingEntry(ctx, r.summaries, summary.ProjectKey, summary.ProjectName, entry); err != nil {
		return false, fmt.Errorf("failed to save meeting summary: %w", err)
	}
	return false, nil
}

func (r *analysisRepository) SaveParticipantAnalysis(ctx context.Context, key, name, meeting string, records []entities.ParticipantSummary) (bool, error) {
	exists, err := hasMeetingEntry(ctx, r.analyses, key, meeting)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing analysis: %w", err)
	}
	if exists {
		return true, nil
	}

	entry := entities.ParticipantAnalysisEntry{
		MeetingName:          meeting,
		ParticipantSummaries: records,
	}
	if err := pushMeetingEntry(ctx, r.analyses, key, name, entry); err != nil {
		return false, fmt.Errorf("failed to save participant analysis: %w", err)
	}
	return false, nil
}

// summaryDoc / analysisDoc mirror the stored container shapes.
type summaryDoc struct {
	ProjectKey  string                         `bson:"project_key"`
	ProjectName string                         `bson:"project_name"`
	Meetings    []entities.MeetingSummaryEntry `bson:"meetings"`
}

type analysisDoc struct {
	ProjectKey string                              `bson:"project_key"`
	Meetings   []entities.ParticipantAnalysisEntry `bson:"meetings"`
}

func (r *analysisRepository) FetchProject(ctx context.Context, key string) (*entities.ProjectHistory, error) {
	var sd summaryDoc
	err := r.summaries.FindOne(ctx, bson.M{"project_key": key}).Decode(&sd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting summaries: %w", err)
	}

	// Participant analyses may lag behind summaries; absence is not an error.
	var ad analysisDoc
	err = r.analyses.FindOne(ctx, bson.M{"project_key": key}).Decode(&ad)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to fetch participant analyses: %w", err)
	}

	history := &entities.ProjectHistory{
		ProjectKey:   sd.ProjectKey,
		ProjectName:  sd.ProjectName,
		Meetings:     sd.Meetings,
		UserAnalysis: ad.Meetings,
	}
	if history.UserAnalysis == nil {
		history.UserAnalysis = []entities.ParticipantAnalysisEntry{}
	}
	return history, nil
}

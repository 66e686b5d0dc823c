package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	repo "github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
)

const rawTranscriptsCollection = "raw_transcripts"

type transcriptRepository struct {
	col *mongo.Collection
}

// NewTranscriptRepository creates a Mongo-backed raw transcript repository
func NewTranscriptRepository(db *mongo.Database) repo.TranscriptRepository {
	return &transcriptRepository{col: db.Collection(rawTranscriptsCollection)}
}

func (r *transcriptRepository) UpsertProject(ctx context.Context, key, name string, meeting entities.MeetingRecord) (string, error) {
	// Duplicate meeting names within a project are rejected before the push;
	// the meetings array is append-only afterwards.
	existing := r.col.FindOne(ctx,
		bson.M{"project_key": key, "meetings.meeting_name": meeting.MeetingName},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	)
	if err := existing.Err(); err == nil {
		return "", entities.ErrMeetingExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("failed to check for existing meeting: %w", err)
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"project_key": key},
		bson.M{
			"$setOnInsert": bson.M{
				"project_key":  key,
				"project_name": name,
			},
			"$push": bson.M{"meetings": meeting},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to upsert project: %w", err)
	}

	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}

	// Meeting was appended to an existing container; look its id up.
	doc, err := r.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *transcriptRepository) GetByKey(ctx context.Context, key string) (*entities.ProjectDocument, error) {
	var doc entities.ProjectDocument
	err := r.col.FindOne(ctx, bson.M{"project_key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project by key: %w", err)
	}
	return &doc, nil
}

func (r *transcriptRepository) GetByID(ctx context.Context, id string) (*entities.ProjectDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", id, err)
	}

	var doc entities.ProjectDocument
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch record by id: %w", err)
	}
	return &doc, nil
}

func (r *transcriptRepository) ListAll(ctx context.Context) ([]entities.ProjectDocument, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list raw transcripts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []entities.ProjectDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode raw transcripts: %w", err)
	}
	return docs, nil
}

func (r *transcriptRepository) MarkProcessed(ctx context.Context, documentID, meetingName string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return false, fmt.Errorf("invalid record id %q: %w", documentID, err)
	}

	// Name-keyed arrayFilters update: positional index updates race with
	// concurrent appends to the meetings array.
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"meetings.$[m].processed": true}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"m.meeting_name": meetingName}},
		}),
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark meeting processed: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

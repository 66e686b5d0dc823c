package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	repo "github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
)

const sentLogCollection = "sent_log"

type sentLogRepository struct {
	col *mongo.Collection
}

// NewSentLogRepository creates the notification dispatch log. Entries are
// keyed by (project key, meeting name, recipient) so a retried run only mails
// recipients that were never reached.
func NewSentLogRepository(db *mongo.Database) repo.SentLogRepository {
	return &sentLogRepository{col: db.Collection(sentLogCollection)}
}

func (r *sentLogRepository) WasSent(ctx context.Context, key, meeting, recipient string) (bool, error) {
	res := r.col.FindOne(ctx,
		bson.M{"project_key": key, "meeting_name": meeting, "recipient": recipient},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	)
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check sent log: %w", err)
	}
	return true, nil
}

func (r *sentLogRepository) MarkSent(ctx context.Context, key, meeting, recipient string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"project_key": key, "meeting_name": meeting, "recipient": recipient},
		bson.M{"$set": bson.M{
			"project_key":  key,
			"meeting_name": meeting,
			"recipient":    recipient,
			"sent_at":      time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record sent notification: %w", err)
	}
	return nil
}

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

const projectSummariesCollection = "project_summaries"

type projectSummaryRepository struct {
	col *mongo.Collection
}

// NewProjectSummaryRepository creates a Mongo-backed project summary repository
func NewProjectSummaryRepository(db *mongo.Database) repo.ProjectSummaryRepository {
	return &projectSummaryRepository{col: db.Collection(projectSummariesCollection)}
}

func (r *projectSummaryRepository) Save(ctx context.Context, summary *entities.ProjectSummary) error {
	// Unconditional upsert-replace: the narrative always reflects the full
	// history as of the most recent run.
	_, err := r.col.UpdateOne(ctx,
		bson.M{"project_key": summary.ProjectKey},
		bson.M{"$set": bson.M{
			"project_key":    summary.ProjectKey,
			"project_name":   summary.ProjectName,
			"global_summary": summary.GlobalSummary,
			"last_updated":   summary.LastUpdated,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to save project summary: %w", err)
	}
	return nil
}

func (r *projectSummaryRepository) Get(ctx context.Context, key string) (*entities.ProjectSummary, error) {
	var summary entities.ProjectSummary
	err := r.col.FindOne(ctx, bson.M{"project_key": key}).Decode(&summary)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entities.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project summary: %w", err)
	}
	return &summary, nil
}

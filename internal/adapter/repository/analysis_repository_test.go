package repository

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

func testSummary() *entities.MeetingSummary {
	return entities.NewMeetingSummary(
		"Apollo - Alice Johnson, Bob Smith",
		"Apollo",
		"Kickoff",
		"2025-11-30 09:30:00",
		[]string{"Alice Johnson", "Bob Smith"},
		[]string{"Scope agreed"},
	)
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, ev := range mt.GetAllStartedEvents() {
		names = append(names, ev.CommandName)
	}
	return names
}

func TestSaveMeetingSummary_FirstSavePushes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("first save", func(mt *mtest.T) {
		repo := NewAnalysisRepository(mt.DB)
		ns := mt.DB.Name() + "." + meetingSummariesCollection

		// Existence check finds nothing, then the upsert-push succeeds.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
		)

		skipped, err := repo.SaveMeetingSummary(context.Background(), testSummary())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if skipped {
			mt.Fatal("first save must not be skipped")
		}

		names := commandNames(mt)
		if len(names) != 2 || names[0] != "find" || names[1] != "update" {
			mt.Fatalf("unexpected command sequence: %v", names)
		}
	})
}

func TestSaveMeetingSummary_DuplicateSignalsSkipped(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate save", func(mt *mtest.T) {
		repo := NewAnalysisRepository(mt.DB)
		ns := mt.DB.Name() + "." + meetingSummariesCollection

		// Existence check hits an entry for the (key, meeting) pair. No update
		// response is queued: a push here would fail the test.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
		)

		skipped, err := repo.SaveMeetingSummary(context.Background(), testSummary())
		if err != nil {
			mt.Fatalf("duplicate save must not error: %v", err)
		}
		if !skipped {
			mt.Fatal("duplicate save must signal skipped")
		}

		for _, name := range commandNames(mt) {
			if name == "update" {
				mt.Fatal("duplicate save issued an update")
			}
		}
	})
}

func TestSaveParticipantAnalysis_DuplicateSignalsSkipped(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate analysis", func(mt *mtest.T) {
		repo := NewAnalysisRepository(mt.DB)
		ns := mt.DB.Name() + "." + participantAnalysesCollection

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}}),
		)

		records := []entities.ParticipantSummary{
			{ParticipantName: "Alice Johnson", KeyUpdates: []string{"u1"}, Roadblocks: []string{}, Actionable: []string{}},
		}
		skipped, err := repo.SaveParticipantAnalysis(
			context.Background(), "Apollo - Alice Johnson, Bob Smith", "Apollo", "Kickoff", records,
		)
		if err != nil {
			mt.Fatalf("duplicate save must not error: %v", err)
		}
		if !skipped {
			mt.Fatal("duplicate save must signal skipped")
		}

		for _, name := range commandNames(mt) {
			if name == "update" {
				mt.Fatal("duplicate save issued an update")
			}
		}
	})
}

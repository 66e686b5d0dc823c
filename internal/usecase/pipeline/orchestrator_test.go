package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/notify"
)

type fakeSummaryAgent struct {
	points []string
	err    error
	calls  int
}

func (f *fakeSummaryAgent) GenerateSummary(context.Context, string) ([]string, error) {
	f.calls++
	return f.points, f.err
}

type fakeParticipantAgent struct {
	records []entities.ParticipantSummary
	err     error
	calls   int
}

func (f *fakeParticipantAgent) AnalyzeParticipants(context.Context, string) ([]entities.ParticipantSummary, error) {
	f.calls++
	return f.records, f.err
}

type fakeProjectAgent struct {
	narrative string
	err       error
	calls     int
}

func (f *fakeProjectAgent) GenerateProjectSummary(context.Context, *entities.ProjectHistory) (string, error) {
	f.calls++
	return f.narrative, f.err
}

type fakeAnalysisRepo struct {
	savedSummary   *entities.MeetingSummary
	savedRecords   []entities.ParticipantSummary
	summarySkipped bool
	history        *entities.ProjectHistory
	saveErr        error
}

func (f *fakeAnalysisRepo) SaveMeetingSummary(_ context.Context, s *entities.MeetingSummary) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	f.savedSummary = s
	return f.summarySkipped, nil
}

func (f *fakeAnalysisRepo) SaveParticipantAnalysis(_ context.Context, _, _, _ string, records []entities.ParticipantSummary) (bool, error) {
	f.savedRecords = records
	return false, nil
}

func (f *fakeAnalysisRepo) FetchProject(context.Context, string) (*entities.ProjectHistory, error) {
	return f.history, nil
}

type fakeProjectRepo struct {
	saved *entities.ProjectSummary
}

func (f *fakeProjectRepo) Save(_ context.Context, s *entities.ProjectSummary) error {
	f.saved = s
	return nil
}

func (f *fakeProjectRepo) Get(context.Context, string) (*entities.ProjectSummary, error) {
	return f.saved, nil
}

type fakeNotifier struct {
	sent  []notify.Notification
	err   error
	calls int
}

func (f *fakeNotifier) Send(_ context.Context, n notify.Notification) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func testState() State {
	doc := &entities.ProjectDocument{
		ID:          primitive.NewObjectID(),
		ProjectKey:  "Apollo - Alice Johnson, Bob Smith",
		ProjectName: "Apollo",
	}
	meeting := entities.MeetingRecord{
		MeetingName:  "Kickoff",
		MeetingTime:  "2025-11-30 09:30:00",
		Participants: []string{"Alice Johnson", "Bob Smith"},
		Transcript:   "the transcript",
	}
	return NewState(doc.ID.Hex(), doc, meeting)
}

func TestRun_FullPipeline(t *testing.T) {
	summaryAgent := &fakeSummaryAgent{points: []string{"p1", "p2"}}
	participantAgent := &fakeParticipantAgent{records: []entities.ParticipantSummary{
		{ParticipantName: "Alice Johnson", KeyUpdates: []string{"u1"}, Roadblocks: []string{}, Actionable: []string{}},
	}}
	projectAgent := &fakeProjectAgent{narrative: "Global narrative"}
	analysisRepo := &fakeAnalysisRepo{history: &entities.ProjectHistory{
		ProjectKey:  "Apollo - Alice Johnson, Bob Smith",
		ProjectName: "Apollo",
	}}
	projectRepo := &fakeProjectRepo{}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(summaryAgent, participantAgent, projectAgent, analysisRepo, projectRepo, notifier, zap.NewNop())

	final, err := o.Run(context.Background(), testState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysisRepo.savedSummary == nil {
		t.Fatal("meeting summary was not persisted")
	}
	if analysisRepo.savedSummary.MeetingName != "Kickoff" {
		t.Fatalf("unexpected meeting name: %q", analysisRepo.savedSummary.MeetingName)
	}
	if analysisRepo.savedSummary.MeetingTime != "2025-11-30 09:30:00" {
		t.Fatalf("meeting time not carried through: %q", analysisRepo.savedSummary.MeetingTime)
	}
	if len(analysisRepo.savedRecords) != 1 {
		t.Fatalf("participant records not persisted: %v", analysisRepo.savedRecords)
	}
	if projectRepo.saved == nil || projectRepo.saved.GlobalSummary != "Global narrative" {
		t.Fatalf("project summary not persisted: %+v", projectRepo.saved)
	}
	if projectRepo.saved.LastUpdated.IsZero() {
		t.Fatal("project summary missing update timestamp")
	}
	if notifier.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", notifier.calls)
	}
	sent := notifier.sent[0]
	if sent.GlobalSummary != "Global narrative" || sent.MeetingName != "Kickoff" {
		t.Fatalf("unexpected notification: %+v", sent)
	}
	if final.GlobalSummary != "Global narrative" {
		t.Fatalf("final state missing global summary: %+v", final)
	}
}

func TestRun_NilParticipantRecordsBecomeEmpty(t *testing.T) {
	summaryAgent := &fakeSummaryAgent{points: []string{"p1"}}
	participantAgent := &fakeParticipantAgent{records: nil}
	projectAgent := &fakeProjectAgent{narrative: "n"}
	analysisRepo := &fakeAnalysisRepo{history: &entities.ProjectHistory{}}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(summaryAgent, participantAgent, projectAgent, analysisRepo, &fakeProjectRepo{}, notifier, zap.NewNop())

	final, err := o.Run(context.Background(), testState())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if final.ParticipantRecords == nil {
		t.Fatal("expected empty participant records, got nil")
	}
	if analysisRepo.savedRecords == nil {
		t.Fatal("expected empty records persisted, got nil")
	}
}

func TestRun_StageFailureStopsPipeline(t *testing.T) {
	wantErr := errors.New("model down")
	summaryAgent := &fakeSummaryAgent{err: wantErr}
	participantAgent := &fakeParticipantAgent{}
	projectAgent := &fakeProjectAgent{}
	analysisRepo := &fakeAnalysisRepo{}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(summaryAgent, participantAgent, projectAgent, analysisRepo, &fakeProjectRepo{}, notifier, zap.NewNop())

	_, err := o.Run(context.Background(), testState())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped stage error, got %v", err)
	}
	if participantAgent.calls != 0 || projectAgent.calls != 0 || notifier.calls != 0 {
		t.Fatal("later stages ran after a failure")
	}
	if analysisRepo.savedSummary != nil {
		t.Fatal("summary persisted despite failure")
	}
}

func TestRun_PersistFailureSkipsNotify(t *testing.T) {
	wantErr := errors.New("store down")
	summaryAgent := &fakeSummaryAgent{points: []string{"p1"}}
	participantAgent := &fakeParticipantAgent{}
	projectAgent := &fakeProjectAgent{narrative: "n"}
	analysisRepo := &fakeAnalysisRepo{saveErr: wantErr}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(summaryAgent, participantAgent, projectAgent, analysisRepo, &fakeProjectRepo{}, notifier, zap.NewNop())

	_, err := o.Run(context.Background(), testState())
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if notifier.calls != 0 {
		t.Fatal("notification sent despite persistence failure")
	}
}

func TestRun_DuplicateSaveIsNotAnError(t *testing.T) {
	summaryAgent := &fakeSummaryAgent{points: []string{"p1"}}
	analysisRepo := &fakeAnalysisRepo{summarySkipped: true, history: &entities.ProjectHistory{}}
	notifier := &fakeNotifier{}

	o := NewOrchestrator(summaryAgent, &fakeParticipantAgent{}, &fakeProjectAgent{narrative: "n"}, analysisRepo, &fakeProjectRepo{}, notifier, zap.NewNop())

	if _, err := o.Run(context.Background(), testState()); err != nil {
		t.Fatalf("skipped save must not fail the run: %v", err)
	}
	if notifier.calls != 1 {
		t.Fatal("notification not sent after skipped save")
	}
}

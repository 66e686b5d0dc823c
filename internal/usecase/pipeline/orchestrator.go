package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	"github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/notify"
)

// Agent collaborators. Defined here so tests can substitute canned fakes for
// the model-backed implementations in usecase/agent.

type SummaryAgent interface {
	GenerateSummary(ctx context.Context, transcript string) ([]string, error)
}

type ParticipantAgent interface {
	AnalyzeParticipants(ctx context.Context, transcript string) ([]entities.ParticipantSummary, error)
}

type ProjectAgent interface {
	GenerateProjectSummary(ctx context.Context, history *entities.ProjectHistory) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, notification notify.Notification) error
}

// Orchestrator drives one MeetingRecord through the fixed stage order:
// summarize, build summary record, analyze participants, build participant
// records, persist summary, persist participants, fetch history, synthesize
// project summary, persist project summary, notify. Control always flows
// forward; the first unrecovered failure aborts the run and the whole record
// is retried on the next scheduler pass, relying on the persistence layer's
// idempotent saves to tolerate re-delivery.
type Orchestrator struct {
	summaryAgent     SummaryAgent
	participantAgent ParticipantAgent
	projectAgent     ProjectAgent
	analysisRepo     repositories.AnalysisRepository
	projectRepo      repositories.ProjectSummaryRepository
	notifier         Notifier
	logger           *zap.Logger
}

// NewOrchestrator constructs the pipeline with explicit dependencies.
func NewOrchestrator(
	summaryAgent SummaryAgent,
	participantAgent ParticipantAgent,
	projectAgent ProjectAgent,
	analysisRepo repositories.AnalysisRepository,
	projectRepo repositories.ProjectSummaryRepository,
	notifier Notifier,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		summaryAgent:     summaryAgent,
		participantAgent: participantAgent,
		projectAgent:     projectAgent,
		analysisRepo:     analysisRepo,
		projectRepo:      projectRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

type stage struct {
	name string
	run  func(ctx context.Context, st State) (State, error)
}

func (o *Orchestrator) stages() []stage {
	return []stage{
		{"summarize", o.summarize},
		{"build_summary_record", o.buildSummaryRecord},
		{"analyze_participants", o.analyzeParticipants},
		{"build_participant_records", o.buildParticipantRecords},
		{"persist_summary", o.persistSummary},
		{"persist_participants", o.persistParticipants},
		{"fetch_history", o.fetchHistory},
		{"synthesize_project_summary", o.synthesizeProjectSummary},
		{"persist_project_summary", o.persistProjectSummary},
		{"notify", o.notify},
	}
}

// Run executes every stage in order and returns the final state. On error the
// returned state is the last successful one; the caller must leave the record
// unprocessed so the next scheduler pass retries it wholesale.
func (o *Orchestrator) Run(ctx context.Context, st State) (State, error) {
	for i, s := range o.stages() {
		o.logger.Info("pipeline stage starting",
			zap.Int("step", i+1),
			zap.String("stage", s.name),
			zap.String("meeting", st.MeetingName),
		)

		next, err := s.run(ctx, st)
		if err != nil {
			o.logger.Error("pipeline stage failed",
				zap.String("stage", s.name),
				zap.String("meeting", st.MeetingName),
				zap.Error(err),
			)
			return st, fmt.Errorf("stage %s: %w", s.name, err)
		}
		st = next
	}

	o.logger.Info("pipeline completed", zap.String("meeting", st.MeetingName))
	return st, nil
}

func (o *Orchestrator) summarize(ctx context.Context, st State) (State, error) {
	points, err := o.summaryAgent.GenerateSummary(ctx, st.Transcript)
	if err != nil {
		return st, err
	}
	return st.withSummaryPoints(points), nil
}

func (o *Orchestrator) buildSummaryRecord(_ context.Context, st State) (State, error) {
	summary := entities.NewMeetingSummary(
		st.ProjectKey, st.ProjectName, st.MeetingName, st.MeetingTime, st.Participants, st.SummaryPoints,
	)
	return st.withSummary(summary), nil
}

func (o *Orchestrator) analyzeParticipants(ctx context.Context, st State) (State, error) {
	records, err := o.participantAgent.AnalyzeParticipants(ctx, st.Transcript)
	if err != nil {
		return st, err
	}
	return st.withParticipantRecords(records), nil
}

func (o *Orchestrator) buildParticipantRecords(_ context.Context, st State) (State, error) {
	if st.ParticipantRecords == nil {
		return st.withParticipantRecords([]entities.ParticipantSummary{}), nil
	}
	return st, nil
}

func (o *Orchestrator) persistSummary(ctx context.Context, st State) (State, error) {
	skipped, err := o.analysisRepo.SaveMeetingSummary(ctx, st.Summary)
	if err != nil {
		return st, err
	}
	if skipped {
		o.logger.Info("meeting summary already stored, skipping insert",
			zap.String("project_key", st.ProjectKey),
			zap.String("meeting", st.MeetingName),
		)
	}
	return st, nil
}

func (o *Orchestrator) persistParticipants(ctx context.Context, st State) (State, error) {
	skipped, err := o.analysisRepo.SaveParticipantAnalysis(
		ctx, st.ProjectKey, st.ProjectName, st.MeetingName, st.ParticipantRecords,
	)
	if err != nil {
		return st, err
	}
	if skipped {
		o.logger.Info("participant analysis already stored, skipping insert",
			zap.String("project_key", st.ProjectKey),
			zap.String("meeting", st.MeetingName),
		)
	}
	return st, nil
}

func (o *Orchestrator) fetchHistory(ctx context.Context, st State) (State, error) {
	history, err := o.analysisRepo.FetchProject(ctx, st.ProjectKey)
	if err != nil {
		return st, err
	}
	return st.withHistory(history), nil
}

func (o *Orchestrator) synthesizeProjectSummary(ctx context.Context, st State) (State, error) {
	text, err := o.projectAgent.GenerateProjectSummary(ctx, st.History)
	if err != nil {
		return st, err
	}
	return st.withGlobalSummary(text), nil
}

func (o *Orchestrator) persistProjectSummary(ctx context.Context, st State) (State, error) {
	summary := &entities.ProjectSummary{
		ProjectKey:    st.ProjectKey,
		ProjectName:   st.ProjectName,
		GlobalSummary: st.GlobalSummary,
		LastUpdated:   time.Now().UTC(),
	}
	if err := o.projectRepo.Save(ctx, summary); err != nil {
		return st, err
	}
	return st, nil
}

func (o *Orchestrator) notify(ctx context.Context, st State) (State, error) {
	err := o.notifier.Send(ctx, notify.Notification{
		ProjectKey:         st.ProjectKey,
		ProjectName:        st.ProjectName,
		MeetingName:        st.MeetingName,
		Participants:       st.Participants,
		SummaryPoints:      st.SummaryPoints,
		ParticipantRecords: st.ParticipantRecords,
		GlobalSummary:      st.GlobalSummary,
	})
	if err != nil {
		return st, err
	}
	return st, nil
}

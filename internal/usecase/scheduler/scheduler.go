package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	"github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/pipeline"
)

// PipelineRunner drives one meeting record end to end. Satisfied by
// pipeline.Orchestrator.
type PipelineRunner interface {
	Run(ctx context.Context, st pipeline.State) (pipeline.State, error)
}

// Scheduler discovers not-yet-processed meetings on a fixed period and drives
// them through the pipeline one at a time. A single meeting's failure never
// aborts its siblings or other projects; failures are tallied and logged.
type Scheduler struct {
	transcripts  repositories.TranscriptRepository
	orchestrator PipelineRunner
	logger       *zap.Logger
	spec         string
	cron         *cron.Cron
}

// NewScheduler creates a new Scheduler. spec is a cron expression such as
// "@hourly".
func NewScheduler(
	transcripts repositories.TranscriptRepository,
	orchestrator PipelineRunner,
	spec string,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		transcripts:  transcripts,
		orchestrator: orchestrator,
		logger:       logger,
		spec:         spec,
	}
}

// Start registers the periodic catch-up job and starts the cron runner.
func (s *Scheduler) Start() error {
	if s.cron != nil {
		s.logger.Warn("scheduler already running")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.spec, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	c.Start()
	s.cron = c

	s.logger.Info("scheduler started", zap.String("spec", s.spec))
	return nil
}

// Stop halts the cron runner and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.logger.Info("scheduler stopped")
}

// RunOnce performs one full scan-and-drive pass. The manual HTTP trigger and
// the cron tick both land here.
func (s *Scheduler) RunOnce(ctx context.Context) (successes, failures int) {
	s.logger.Info("scheduler pass starting")

	docs, err := s.transcripts.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list raw transcripts", zap.Error(err))
		return 0, 0
	}

	for _, doc := range docs {
		ok, fail := s.processDocument(ctx, doc.ID.Hex())
		successes += ok
		failures += fail
	}

	s.logger.Info("scheduler pass finished",
		zap.Int("success", successes),
		zap.Int("fail", failures),
	)
	return successes, failures
}

// processDocument drains one document's unprocessed meetings sequentially.
// The document is re-read fresh after every meeting so records appended
// externally during a long run are neither missed nor processed from stale
// in-memory state. Meetings that cannot run are remembered in an in-pass skip
// set; the stored processed flag flips only after a successful pipeline run.
func (s *Scheduler) processDocument(ctx context.Context, documentID string) (successes, failures int) {
	skipped := make(map[string]struct{})
	for {
		doc, err := s.transcripts.GetByID(ctx, documentID)
		if err != nil {
			s.logger.Error("failed to load document",
				zap.String("document_id", documentID),
				zap.Error(err),
			)
			return successes, failures
		}

		meeting, found := nextRunnable(doc, skipped)
		if !found {
			return successes, failures
		}

		s.logger.Info("processing meeting",
			zap.String("project_key", doc.ProjectKey),
			zap.String("meeting", meeting.MeetingName),
		)

		if meeting.Transcript == "" {
			s.logger.Warn("meeting has no transcript text, skipping",
				zap.String("meeting", meeting.MeetingName),
			)
			failures++
			// Left unprocessed in the store; the skip set keeps this pass
			// moving past it.
			skipped[meeting.MeetingName] = struct{}{}
			continue
		}

		st := pipeline.NewState(documentID, doc, meeting)
		if _, err := s.orchestrator.Run(ctx, st); err != nil {
			s.logger.Error("pipeline failed for meeting",
				zap.String("meeting", meeting.MeetingName),
				zap.Error(err),
			)
			failures++
			// The record stays unprocessed; retry happens on the next pass.
			// Returning here keeps this pass from re-running the same broken
			// meeting in a tight loop.
			return successes, failures
		}

		// The processed flag flips only after notify completed, so a crash
		// mid-pipeline retries the whole record next pass.
		updated, err := s.transcripts.MarkProcessed(ctx, documentID, meeting.MeetingName)
		if err != nil || !updated {
			s.logger.Error("failed to update processed flag",
				zap.String("meeting", meeting.MeetingName),
				zap.Bool("matched", updated),
				zap.Error(err),
			)
			failures++
			return successes, failures
		}

		s.logger.Info("meeting processed",
			zap.String("project_key", doc.ProjectKey),
			zap.String("meeting", meeting.MeetingName),
		)
		successes++
	}
}

// nextRunnable returns the first unprocessed meeting not already skipped in
// this pass. A missing processed flag counts as unprocessed.
func nextRunnable(doc *entities.ProjectDocument, skipped map[string]struct{}) (entities.MeetingRecord, bool) {
	for _, m := range doc.Meetings {
		if m.Processed {
			continue
		}
		if _, ok := skipped[m.MeetingName]; ok {
			continue
		}
		return m, true
	}
	return entities.MeetingRecord{}, false
}

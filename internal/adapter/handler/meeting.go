package handler

import (
	"context"
	stdErrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/orbitmeetai/orbitmeet/errors"
	"github.com/orbitmeetai/orbitmeet/internal/adapter/dto/meeting"
	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
	"github.com/orbitmeetai/orbitmeet/internal/domain/repositories"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/transcript"
)

// ChatService answers free-form questions grounded in a project's history
type ChatService interface {
	Ask(ctx context.Context, history *entities.ProjectHistory, question string) (string, error)
}

// SchedulerService runs one catch-up pass over unprocessed meetings
type SchedulerService interface {
	RunOnce(ctx context.Context) (successes, failures int)
}

// Archiver stores the raw uploaded file before normalization
type Archiver interface {
	ArchiveTranscript(ctx context.Context, recordID, filename string, data []byte, contentType string) (string, error)
}

// Meeting handles transcript ingestion and project query endpoints
type Meeting struct {
	normalizer  *transcript.Normalizer
	transcripts repositories.TranscriptRepository
	analyses    repositories.AnalysisRepository
	projects    repositories.ProjectSummaryRepository
	chat        ChatService
	scheduler   SchedulerService
	archive     Archiver
	logger      *zap.Logger
}

// NewMeeting creates a new meeting handler. archive and scheduler may be nil
// when the corresponding subsystem is disabled.
func NewMeeting(
	normalizer *transcript.Normalizer,
	transcripts repositories.TranscriptRepository,
	analyses repositories.AnalysisRepository,
	projects repositories.ProjectSummaryRepository,
	chat ChatService,
	scheduler SchedulerService,
	archive Archiver,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		normalizer:  normalizer,
		transcripts: transcripts,
		analyses:    analyses,
		projects:    projects,
		chat:        chat,
		scheduler:   scheduler,
		archive:     archive,
		logger:      logger,
	}
}

// Ingest accepts one transcript file upload
// @Summary      Ingest a meeting transcript
// @Description  Normalizes an uploaded transcript file, extracts meeting metadata and appends the record to its project document
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Transcript file (.txt, .docx, .pdf, .srt, .vtt)"
// @Success      200  {object}  meeting.IngestResponse
// @Failure      400  {object}  map[string]interface{}  "Unsupported format or empty transcript"
// @Failure      409  {object}  map[string]interface{}  "Meeting already ingested"
// @Router       /meetings [post]
func (h *Meeting) Ingest(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.normalizer.SupportedExtension(fileHeader.Filename) {
		return HandleError(h.logger, c, errors.ErrUnsupportedFormat(ext))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	// The normalizer works on files, so the upload lands in a temp file first.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if err := tmp.Close(); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	text, err := h.normalizer.NormalizeFile(tmp.Name())
	if err != nil {
		if stdErrors.Is(err, entities.ErrUnsupportedFormat) {
			return HandleError(h.logger, c, errors.ErrUnsupportedFormat(ext))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if text == "" {
		return HandleError(h.logger, c, errors.ErrEmptyTranscript())
	}

	md := transcript.ExtractMetadata(text)

	record := entities.MeetingRecord{
		MeetingName:  md.MeetingName,
		MeetingTime:  md.DateTime,
		Duration:     md.Duration,
		Participants: md.Participants,
		Transcript:   text,
	}

	if h.archive != nil {
		object, err := h.archive.ArchiveTranscript(
			c.Request().Context(), uuid.NewString(), fileHeader.Filename, raw,
			fileHeader.Header.Get("Content-Type"),
		)
		if err != nil {
			// Archival is best effort; the normalized text is already in hand.
			h.logger.Warn("failed to archive raw transcript",
				zap.String("filename", fileHeader.Filename),
				zap.Error(err),
			)
		} else {
			record.ArchiveObject = object
		}
	}

	documentID, err := h.transcripts.UpsertProject(c.Request().Context(), md.ProjectKey, md.ProjectName, record)
	if err != nil {
		if stdErrors.Is(err, entities.ErrMeetingExists) {
			return HandleError(h.logger, c, errors.ErrDuplicateMeeting(md.ProjectKey, md.MeetingName))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, meeting.IngestResponse{
		DocumentID:    documentID,
		ProjectKey:    md.ProjectKey,
		ProjectName:   md.ProjectName,
		MeetingName:   md.MeetingName,
		MeetingTime:   md.DateTime,
		Duration:      md.Duration,
		Participants:  md.Participants,
		ArchiveObject: record.ArchiveObject,
	})
}

// GetProject returns everything derived for one project
// @Summary      Get project analysis
// @Description  Returns meeting summaries, participant analyses and the current global summary for a project
// @Tags         Projects
// @Produce      json
// @Param        key  path      string  true  "Project key"
// @Success      200  {object}  meeting.ProjectResponse
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /projects/{key} [get]
func (h *Meeting) GetProject(c echo.Context) error {
	key := c.Param("key")
	ctx := c.Request().Context()

	history, err := h.analyses.FetchProject(ctx, key)
	if err != nil {
		if stdErrors.Is(err, entities.ErrProjectNotFound) {
			return HandleError(h.logger, c, errors.ErrProjectNotFound(key))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	resp := meeting.ProjectResponse{
		ProjectKey:   history.ProjectKey,
		ProjectName:  history.ProjectName,
		Meetings:     history.Meetings,
		UserAnalysis: history.UserAnalysis,
	}

	// The global summary lags ingestion until the next pipeline run; its
	// absence is not an error.
	summary, err := h.projects.Get(ctx, key)
	if err != nil && !stdErrors.Is(err, entities.ErrProjectNotFound) {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	if summary != nil {
		resp.GlobalSummary = summary.GlobalSummary
		resp.LastUpdated = &summary.LastUpdated
	}

	return HandleSuccess(h.logger, c, resp)
}

// GetRecord returns one raw project document without transcript bodies
// @Summary      Get raw transcript record
// @Description  Returns a stored project document with per-meeting metadata and processing flags
// @Tags         Records
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  meeting.RecordResponse
// @Failure      400  {object}  map[string]interface{}  "Invalid document ID"
// @Failure      404  {object}  map[string]interface{}  "Record not found"
// @Router       /records/{id} [get]
func (h *Meeting) GetRecord(c echo.Context) error {
	id := c.Param("id")
	if !primitive.IsValidObjectID(id) {
		return HandleError(h.logger, c, errors.ErrInvalidRecordID(id))
	}

	doc, err := h.transcripts.GetByID(c.Request().Context(), id)
	if err != nil {
		if stdErrors.Is(err, entities.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrRecordNotFound(id))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, meeting.NewRecordResponse(doc))
}

// Chat answers a question about a project's meeting history
// @Summary      Ask about a project
// @Description  Answers a free-form question grounded in the project's stored summaries and participant analyses
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Param        key      path      string               true  "Project key"
// @Param        request  body      meeting.ChatRequest  true  "Question"
// @Success      200  {object}  meeting.ChatResponse
// @Failure      404  {object}  map[string]interface{}  "Project not found"
// @Router       /projects/{key}/chat [post]
func (h *Meeting) Chat(c echo.Context) error {
	key := c.Param("key")

	var req meeting.ChatRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("question is required"))
	}

	ctx := c.Request().Context()
	history, err := h.analyses.FetchProject(ctx, key)
	if err != nil {
		if stdErrors.Is(err, entities.ErrProjectNotFound) {
			return HandleError(h.logger, c, errors.ErrProjectNotFound(key))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	answer, err := h.chat.Ask(ctx, history, req.Question)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrChatFailed(err))
	}

	return HandleSuccess(h.logger, c, meeting.ChatResponse{
		ProjectKey: key,
		Question:   req.Question,
		Answer:     answer,
	})
}

// RunScheduler triggers one catch-up pass
// @Summary      Run the catch-up pass now
// @Description  Scans stored documents for unprocessed meetings and drives each through the pipeline
// @Tags         Scheduler
// @Produce      json
// @Success      200  {object}  meeting.SchedulerRunResponse
// @Failure      503  {object}  map[string]interface{}  "Scheduler disabled"
// @Router       /scheduler/run [post]
func (h *Meeting) RunScheduler(c echo.Context) error {
	if h.scheduler == nil {
		return HandleError(h.logger, c, errors.ErrPipelineUnavailable())
	}

	successes, failures := h.scheduler.RunOnce(c.Request().Context())
	return HandleSuccess(h.logger, c, meeting.SchedulerRunResponse{
		Processed: successes,
		Failed:    failures,
	})
}

package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies an application error category in responses and logs.
type ErrorCode int

const ErrorCode_HTTP_OK ErrorCode = 0

// General codes
const (
	ErrorCode_INTERNAL ErrorCode = iota + 1000
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS
	ErrorCode_UNAVAILABLE
)

// Domain codes
const (
	ErrorCode_INGEST_UNSUPPORTED_FORMAT ErrorCode = iota + 2000
	ErrorCode_INGEST_EMPTY_TRANSCRIPT
	ErrorCode_INGEST_DUPLICATE_MEETING
	ErrorCode_PIPELINE_FAILED
	ErrorCode_CHAT_FAILED
)

func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_UNAVAILABLE:
		return "UNAVAILABLE"
	case ErrorCode_INGEST_UNSUPPORTED_FORMAT:
		return "INGEST_UNSUPPORTED_FORMAT"
	case ErrorCode_INGEST_EMPTY_TRANSCRIPT:
		return "INGEST_EMPTY_TRANSCRIPT"
	case ErrorCode_INGEST_DUPLICATE_MEETING:
		return "INGEST_DUPLICATE_MEETING"
	case ErrorCode_PIPELINE_FAILED:
		return "PIPELINE_FAILED"
	case ErrorCode_CHAT_FAILED:
		return "CHAT_FAILED"
	default:
		return fmt.Sprintf("ERROR_CODE_%d", int(c))
	}
}

// AppError is the custom error type for the application.
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors

func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  message,
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// Ingest Errors

func ErrUnsupportedFormat(ext string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INGEST_UNSUPPORTED_FORMAT,
		Message:  "Unsupported transcript format",
	}.WithDetail("extension", ext)
}

func ErrEmptyTranscript() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INGEST_EMPTY_TRANSCRIPT,
		Message:  "Transcript contains no text",
	}
}

func ErrDuplicateMeeting(projectKey, meetingName string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCode_INGEST_DUPLICATE_MEETING,
		Message:  "Meeting already ingested for this project",
	}.WithDetail("project_key", projectKey).
		WithDetail("meeting_name", meetingName)
}

// Pipeline Errors

func ErrProjectNotFound(key string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Project not found",
	}.WithDetail("project_key", key)
}

func ErrRecordNotFound(id string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  "Record not found",
	}.WithDetail("record_id", id)
}

func ErrInvalidRecordID(id string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  "Invalid record identifier",
	}.WithDetail("record_id", id)
}

func ErrPipelineUnavailable() AppError {
	return AppError{
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_UNAVAILABLE,
		Message:  "Pipeline is not initialized",
	}
}

func ErrPipelineFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_PIPELINE_FAILED,
		Message:  "Pipeline stage failed",
	}
}

func ErrChatFailed(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_CHAT_FAILED,
		Message:  "Chat completion failed",
	}
}

func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_ARGUMENT,
		Message:  "Invalid request payload",
	}
}

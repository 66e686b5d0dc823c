package entities

import "errors"

// Domain errors
var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrRecordNotFound    = errors.New("record not found")
	ErrMeetingExists     = errors.New("meeting already exists for project")
	ErrUnsupportedFormat = errors.New("unsupported transcript format")
	ErrEmptyTranscript   = errors.New("transcript is empty")
)

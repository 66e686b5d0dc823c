package meeting

// ChatRequest represents a free-form question about a project's history
type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

// RunSchedulerRequest is the (empty) body of a manual scheduler trigger.
// Kept as a struct so future knobs bind without an API break.
type RunSchedulerRequest struct{}

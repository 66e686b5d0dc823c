package agent

import (
	"context"
	"fmt"

	"github.com/orbitmeetai/orbitmeet/internal/domain/entities"
)

const chatSystemPrompt = `You are an assistant answering questions about a project's meeting history.

RULES:
1. Answer only from the project history provided in the user message.
2. If the history does not contain the answer, say so plainly.
3. Keep answers concise and factual.`

// ChatAgent answers ad-hoc questions against a project's accumulated history.
type ChatAgent struct {
	client ChatClient
}

// NewChatAgent creates a new ChatAgent
func NewChatAgent(client ChatClient) *ChatAgent {
	return &ChatAgent{client: client}
}

// Ask answers a question grounded in the project's merged history.
func (a *ChatAgent) Ask(ctx context.Context, history *entities.ProjectHistory, question string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nQUESTION: %s", FormatHistory(history), question)

	answer, err := a.client.ChatCompletion(ctx, chatSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	return answer, nil
}

package ai

import (
	"context"

	"github.com/openai/openai-go"
)

var _ Completions = (*MockService)(nil)

// MockService returns canned replies, for tests and offline development.
type MockService struct {
	Reply string
	Err   error

	// LastMessages records the messages from the most recent call.
	LastMessages []openai.ChatCompletionMessageParamUnion
	LastModel    string
}

func (m *MockService) Completions(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, model string) (openai.ChatCompletionMessage, error) {
	m.LastMessages = messages
	m.LastModel = model
	if m.Err != nil {
		return openai.ChatCompletionMessage{}, m.Err
	}
	return openai.ChatCompletionMessage{Content: m.Reply, Role: "assistant"}, nil
}

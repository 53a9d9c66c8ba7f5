package ai

import (
	"context"

	"github.com/openai/openai-go"
)

type Completions interface {
	Completions(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion, model string) (openai.ChatCompletionMessage, error)
}

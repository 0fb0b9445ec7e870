package model

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// OpenAIBackend targets the OpenAI-compatible API that local servers
// (ollama, llama.cpp, vLLM) expose, so the same contract covers all of
// them. The key is a placeholder; local servers ignore it.
type OpenAIBackend struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIBackend(endpoint string, modelName string) *OpenAIBackend {
	return &OpenAIBackend{
		client: openai.NewClient(
			option.WithBaseURL(strings.TrimRight(endpoint, "/")+"/v1"),
			option.WithAPIKey("local"),
		),
		model:   modelName,
		timeout: config.GenerateTimeout,
	}
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s", b.timeout)
		}
		logger.Error("completion call failed", "model", b.model, "error", err)
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: errors.New("no choices returned")}
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: errors.New("empty model output")}
	}
	return out, nil
}

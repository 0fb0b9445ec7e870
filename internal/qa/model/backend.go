package model

import (
	"context"
	"fmt"

	"github.com/nmehta6/finqa/pkg/logx"
)

// Backend invokes a locally hosted language model with an assembled
// prompt. Every implementation enforces a bounded wait and reports
// failure as docModel.GenerationUnavailableError, so the caller can
// always tell success from failure and fall back gracefully.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

var logger = logx.NewLogger("model")

const systemInstruction = "You are a financial document assistant. " +
	"Answer ONLY from the provided CONTEXT. If the requested information " +
	"is not contained in the context, say that you cannot find it."

// BuildPrompt renders the deterministic prompt template: instruction,
// context, question.
func BuildPrompt(contextText string, question string) string {
	return systemInstruction +
		"\n\nCONTEXT:\n" + contextText +
		"\n\nQUESTION:\n" + question +
		"\n\nAnswer succinctly and include numeric values when present."
}

// For selects the configured backend implementation. The three kinds
// are interchangeable behind the Backend contract.
func For(kind string, modelName string, endpoint string) (Backend, error) {
	switch kind {
	case "exec":
		return NewExecBackend(modelName), nil
	case "httpapi":
		return NewHTTPBackend(endpoint, modelName), nil
	case "openai":
		return NewOpenAIBackend(endpoint, modelName), nil
	default:
		return nil, fmt.Errorf("unknown model backend: %q (want exec, httpapi or openai)", kind)
	}
}

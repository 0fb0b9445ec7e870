package model

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// ExecBackend shells out to the local ollama CLI and feeds the prompt
// on stdin. The context deadline kills a hung model process.
type ExecBackend struct {
	binary  string
	model   string
	timeout time.Duration
}

func NewExecBackend(modelName string) *ExecBackend {
	return &ExecBackend{
		binary:  config.OllamaBinary,
		model:   modelName,
		timeout: config.GenerateTimeout,
	}
}

func (b *ExecBackend) Name() string { return "exec" }

func (b *ExecBackend) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.binary, "run", b.model)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		logger.Error("model process timed out", "model", b.model, "timeout", b.timeout)
		return "", &docModel.GenerationUnavailableError{
			Backend: b.Name(),
			Cause:   fmt.Errorf("timed out after %s", b.timeout),
		}
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", &docModel.GenerationUnavailableError{
				Backend: b.Name(),
				Cause:   fmt.Errorf("%s not found, install it and pull %q: %w", b.binary, b.model, err),
			}
		}
		logger.Error("model process failed", "model", b.model, "stderr", firstLine(stderr.String()))
		return "", &docModel.GenerationUnavailableError{
			Backend: b.Name(),
			Cause:   fmt.Errorf("%w: %s", err, firstLine(stderr.String())),
		}
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", &docModel.GenerationUnavailableError{
			Backend: b.Name(),
			Cause:   errors.New("empty model output"),
		}
	}
	return out, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

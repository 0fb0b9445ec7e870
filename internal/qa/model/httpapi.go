package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nmehta6/finqa/internal/config"
	"github.com/nmehta6/finqa/internal/customHttpClient"
	"github.com/nmehta6/finqa/internal/domain/docModel"
)

// HTTPBackend talks to an ollama-style local endpoint:
// POST /api/generate {model, prompt} -> {response}.
type HTTPBackend struct {
	endpoint string
	model    string
	client   *http.Client
	timeout  time.Duration
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func NewHTTPBackend(endpoint string, modelName string) *HTTPBackend {
	return &HTTPBackend{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    modelName,
		client:   customHttpClient.New(config.GenerateTimeout),
		timeout:  config.GenerateTimeout,
	}
}

func (b *HTTPBackend) Name() string { return "httpapi" }

func (b *HTTPBackend) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Model: b.model, Prompt: prompt})
	if err != nil {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s", b.timeout)
		}
		logger.Error("model endpoint unreachable", "endpoint", b.endpoint, "error", err)
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: err}
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &docModel.GenerationUnavailableError{
			Backend: b.Name(),
			Cause:   fmt.Errorf("malformed response (status %d): %w", resp.StatusCode, err),
		}
	}
	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &docModel.GenerationUnavailableError{
			Backend: b.Name(),
			Cause:   fmt.Errorf("status %d: %s", resp.StatusCode, msg),
		}
	}

	out := strings.TrimSpace(parsed.Response)
	if out == "" {
		return "", &docModel.GenerationUnavailableError{Backend: b.Name(), Cause: errors.New("empty model output")}
	}
	return out, nil
}

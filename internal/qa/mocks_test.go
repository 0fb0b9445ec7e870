package qa

import (
	"context"
)

// mockBackend lets each test script the model call without a real
// model process.
type mockBackend struct {
	NameFunc     func() string
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	prompts []string
}

func (m *mockBackend) Name() string {
	if m.NameFunc != nil {
		return m.NameFunc()
	}
	return "mock"
}

func (m *mockBackend) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "mock answer", nil
}

package generation

import (
	"context"

	"github.com/artem13815/llm-gateway/pkg/llm"
)

// GenerateUseCase describes prompt-to-text generation.
type GenerateUseCase interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type service struct {
	newClient llm.Factory
}

// NewService returns the default implementation of GenerateUseCase. Each call
// constructs its own client from the factory, so concurrent requests share
// nothing but the immutable configuration baked into it.
func NewService(newClient llm.Factory) GenerateUseCase {
	return &service{newClient: newClient}
}

func (s *service) Generate(ctx context.Context, prompt string) (string, error) {
	client := s.newClient()
	if err := client.Open(); err != nil {
		return "", err
	}
	// Release the scoped connection on every exit path.
	defer client.Close()

	return client.Generate(ctx, prompt)
}

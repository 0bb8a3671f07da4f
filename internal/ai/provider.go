package ai

import (
	"context"
	"errors"

	"github.com/phravins/gptflow/internal/config"
)

// ErrGenerationFailed wraps every transport, status or decode failure of a
// generator. Callers show one fixed message and log the rest.
var ErrGenerationFailed = errors.New("generation failed")

// Reply is the generator's answer. Prompt is not part of the wire payload.
type Reply struct {
	Description string   `json:"description" yaml:"description"`
	Code        string   `json:"code" yaml:"code"`
	References  []string `json:"references" yaml:"references"`
}

type Generator interface {
	Name() string

	Configure(cfg *config.Config) error

	Generate(ctx context.Context, prompt string) (Reply, error)
}

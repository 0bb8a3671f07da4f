package providers

import (
	"fmt"
	"strings"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
)

// GetGenerator returns a generator based on the configuration
func GetGenerator(cfg *config.Config) (ai.Generator, error) {
	backend := strings.TrimSpace(strings.ToLower(cfg.GeneratorBackend))
	if backend == "" {
		backend = "remote"
	}

	var g ai.Generator

	switch backend {
	case "remote", "inngest":
		g = &RemoteGenerator{}
	case "offline", "examples":
		g = &OfflineGenerator{}
	default:
		return nil, fmt.Errorf("unknown generator backend %q", cfg.GeneratorBackend)
	}

	if err := g.Configure(cfg); err != nil {
		return nil, fmt.Errorf("failed to configure generator %s: %w", backend, err)
	}

	return g, nil
}

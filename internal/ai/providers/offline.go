package providers

import (
	"context"
	"fmt"

	"github.com/sahilm/fuzzy"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/examples"
)

// OfflineGenerator answers from the built-in examples, for demos with no
// network. The best fuzzy match over titles, tags and prompts wins.
type OfflineGenerator struct{}

func (p *OfflineGenerator) Name() string {
	return "Offline examples"
}

func (p *OfflineGenerator) Configure(cfg *config.Config) error {
	return nil
}

func (p *OfflineGenerator) Generate(ctx context.Context, prompt string) (ai.Reply, error) {
	if err := ctx.Err(); err != nil {
		return ai.Reply{}, fmt.Errorf("%w: %v", ai.ErrGenerationFailed, err)
	}

	all := examples.All()
	var candidates []string
	var owners []int
	for i, e := range all {
		candidates = append(candidates, e.Title, e.Prompt)
		owners = append(owners, i, i)
		for _, tag := range e.Tags {
			candidates = append(candidates, tag)
			owners = append(owners, i)
		}
	}

	matches := fuzzy.Find(prompt, candidates)
	if prompt == "" || len(matches) == 0 {
		return ai.Reply{}, fmt.Errorf("%w: no offline example matches %q", ai.ErrGenerationFailed, prompt)
	}

	// fuzzy.Find sorts by score, best first
	return all[owners[matches[0].Index]].Reply, nil
}

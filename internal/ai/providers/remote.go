package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
)

// RemoteGenerator posts the prompt to the hosted workflow bot.
type RemoteGenerator struct {
	EndpointURL string
	httpClient  *http.Client
}

func (p *RemoteGenerator) Name() string {
	return "Inngest GPT"
}

func (p *RemoteGenerator) Configure(cfg *config.Config) error {
	p.EndpointURL = config.DefaultEndpointURL
	if cfg.EndpointURL != "" {
		p.EndpointURL = cfg.EndpointURL
	}

	timeout := 60 * time.Second
	if cfg.RequestTimeout > 0 {
		timeout = cfg.RequestTimeout
	}
	p.httpClient = &http.Client{
		Timeout: timeout,
	}

	return nil
}

type generateRequest struct {
	Message string `json:"message"`
}

// Generate sends the prompt verbatim, empty or not.
func (p *RemoteGenerator) Generate(ctx context.Context, prompt string) (ai.Reply, error) {
	jsonData, err := json.Marshal(generateRequest{Message: prompt})
	if err != nil {
		return ai.Reply{}, fmt.Errorf("%w: encode request: %v", ai.ErrGenerationFailed, err)
	}

	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: 60 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.EndpointURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return ai.Reply{}, fmt.Errorf("%w: build request: %v", ai.ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ai.Reply{}, fmt.Errorf("%w: request to %s: %v", ai.ErrGenerationFailed, p.EndpointURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return ai.Reply{}, fmt.Errorf("%w: status %d: %s", ai.ErrGenerationFailed, resp.StatusCode, string(body))
	}

	var reply ai.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return ai.Reply{}, fmt.Errorf("%w: decode response: %v", ai.ErrGenerationFailed, err)
	}
	if reply.References == nil {
		reply.References = []string{}
	}

	return reply, nil
}

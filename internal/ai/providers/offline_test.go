package providers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
)

func TestOfflineGenerator_Match(t *testing.T) {
	p := &OfflineGenerator{}
	reply, err := p.Generate(context.Background(), "Weekly reminders")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(reply.Code, "Send weekly email") {
		t.Errorf("Expected the weekly reminders example, got %q", reply.Code[:40])
	}
}

func TestOfflineGenerator_NoMatch(t *testing.T) {
	p := &OfflineGenerator{}
	for _, prompt := range []string{"", "zzzzqqqqxxxx"} {
		if _, err := p.Generate(context.Background(), prompt); !errors.Is(err, ai.ErrGenerationFailed) {
			t.Errorf("Generate(%q) error = %v, want ErrGenerationFailed", prompt, err)
		}
	}
}

func TestGetGenerator(t *testing.T) {
	tests := []struct {
		backend string
		want    string
		wantErr bool
	}{
		{"", "Inngest GPT", false},
		{"remote", "Inngest GPT", false},
		{"Offline", "Offline examples", false},
		{"carrier-pigeon", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			g, err := GetGenerator(&config.Config{GeneratorBackend: tt.backend})
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("GetGenerator failed: %v", err)
			}
			if g.Name() != tt.want {
				t.Errorf("Name = %q, want %q", g.Name(), tt.want)
			}
		})
	}
}

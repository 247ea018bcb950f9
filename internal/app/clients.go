package app

import (
	"fmt"

	"github.com/skillpath/roadmap-backend/internal/clients/openai"
	"github.com/skillpath/roadmap-backend/internal/pkg/logger"
)

type Clients struct {
	// OpenAI is nil when OPENAI_API_KEY is unset; the assistant degrades to
	// fixed responses.
	OpenAI openai.Client
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	openaiClient, err := openai.NewFromEnv(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	if openaiClient == nil {
		log.Warn("OPENAI_API_KEY not set; assistant features disabled")
	}
	return Clients{OpenAI: openaiClient}, nil
}

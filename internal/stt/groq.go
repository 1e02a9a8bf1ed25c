package stt

import (
	"fmt"
)

// groqBaseURL is Groq's OpenAI-compatible API root.
const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqConfig holds configuration for the Groq Whisper API engine.
type GroqConfig struct {
	APIKey string
	Model  string // Defaults to "whisper-large-v3"
}

// GroqEngine transcribes audio through Groq's Whisper endpoint. Groq speaks
// the OpenAI audio API, so it reuses the OpenAI engine with a different base
// URL and model set.
type GroqEngine struct {
	*OpenAIEngine
}

// NewGroqEngine creates a Groq Whisper engine.
func NewGroqEngine(cfg GroqConfig) (*GroqEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-large-v3"
	}

	inner, err := NewOpenAIEngine(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: groqBaseURL,
		Model:   cfg.Model,
	})
	if err != nil {
		return nil, err
	}
	inner.name = "groq"

	return &GroqEngine{OpenAIEngine: inner}, nil
}

package stt

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig holds configuration for the OpenAI Whisper API engine.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // Override for OpenAI-compatible endpoints; empty uses api.openai.com
	Model   string // Defaults to "whisper-1"
}

// OpenAIEngine transcribes audio through OpenAI's hosted Whisper API.
type OpenAIEngine struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIEngine creates an OpenAI Whisper engine.
func NewOpenAIEngine(cfg OpenAIConfig) (*OpenAIEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenAIEngine{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		name:   "openai",
	}, nil
}

// Transcribe uploads the audio file and returns the transcription. The
// verbose JSON response format is requested so the API reports the detected
// language alongside the text.
func (o *OpenAIEngine) Transcribe(audioPath string) (*Result, error) {
	startTime := time.Now()

	resp, err := o.client.CreateTranscription(context.Background(), openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("%s transcription: %w", o.name, err)
	}

	log.Printf("[%s] Transcription complete: language=%s, length=%d, took=%v",
		o.name, resp.Language, len(resp.Text), time.Since(startTime))

	return &Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: resp.Duration,
	}, nil
}

// Name returns the engine name.
func (o *OpenAIEngine) Name() string {
	return o.name
}

// Close releases any resources (none for the HTTP client).
func (o *OpenAIEngine) Close() error {
	return nil
}

package stt

import (
	"fmt"
	"log"
	"strings"
)

// Config selects and configures the inference engine.
type Config struct {
	Engine     string           // "whispercpp", "openai", "groq"
	WhisperCpp WhisperCppConfig // Local whisper.cpp inference
	OpenAI     OpenAIConfig     // OpenAI Whisper API
	Groq       GroqConfig       // Groq Whisper API (OpenAI-compatible)
}

// CreateEngine creates an STT engine based on configuration. It is called
// once at process startup; the returned engine is shared by all requests.
func CreateEngine(cfg Config) (Engine, error) {
	engineName := strings.ToLower(cfg.Engine)

	// Default to local whisper.cpp if not specified
	if engineName == "" {
		engineName = "whispercpp"
		log.Printf("[STT Factory] STT_ENGINE not set, defaulting to 'whispercpp'")
	}

	switch engineName {
	case "whispercpp":
		log.Printf("[STT Factory] Creating whisper.cpp engine (model: %s)", cfg.WhisperCpp.Model)
		return NewWhisperCppEngine(cfg.WhisperCpp)
	case "openai":
		log.Printf("[STT Factory] Creating OpenAI Whisper engine")
		return NewOpenAIEngine(cfg.OpenAI)
	case "groq":
		log.Printf("[STT Factory] Creating Groq Whisper engine")
		return NewGroqEngine(cfg.Groq)
	default:
		return nil, fmt.Errorf("unsupported STT engine: %s. Supported: whispercpp, openai, groq", engineName)
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"whisperapi/internal/stt"
)

type Config struct {
	Port string
	STT  stt.Config
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	threads, err := strconv.ParseUint(getEnv("WHISPER_THREADS", "0"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("WHISPER_THREADS must be a non-negative integer: %w", err)
	}

	cfg := &Config{
		Port: getEnv("PORT", "5000"),
		STT: stt.Config{
			Engine: getEnv("STT_ENGINE", "whispercpp"),
			WhisperCpp: stt.WhisperCppConfig{
				ModelsDir: getEnv("WHISPER_MODELS_DIR", "models"),
				Model:     getEnv("WHISPER_MODEL", "base"),
				Language:  getEnv("WHISPER_LANGUAGE", "auto"),
				Threads:   uint(threads),
			},
			OpenAI: stt.OpenAIConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  getEnv("OPENAI_STT_MODEL", "whisper-1"),
			},
			Groq: stt.GroqConfig{
				APIKey: os.Getenv("GROQ_API_KEY"),
				Model:  getEnv("GROQ_STT_MODEL", "whisper-large-v3"),
			},
		},
	}

	// API-backed engines need their key before serving starts; failing at
	// load time names the missing variable instead of failing per request.
	switch strings.ToLower(cfg.STT.Engine) {
	case "openai":
		if cfg.STT.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when STT_ENGINE=openai. Set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"\n  Windows PowerShell: $env:OPENAI_API_KEY=\"your_key\"")
		}
	case "groq":
		if cfg.STT.Groq.APIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required when STT_ENGINE=groq. Set it as environment variable:\n  Linux/Mac: export GROQ_API_KEY=\"your_key\"\n  Windows PowerShell: $env:GROQ_API_KEY=\"your_key\"")
		}
	}

	return cfg, nil
}

// ModelLabel returns the model identifier reported by the health endpoint,
// e.g. "whisper-base" for the default local deployment.
func (c *Config) ModelLabel() string {
	switch strings.ToLower(c.STT.Engine) {
	case "openai":
		return c.STT.OpenAI.Model
	case "groq":
		return c.STT.Groq.Model
	default:
		return "whisper-" + c.STT.WhisperCpp.Model
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

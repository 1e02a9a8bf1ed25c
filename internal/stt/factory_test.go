package stt

import (
	"strings"
	"testing"
)

func TestCreateEngineUnsupported(t *testing.T) {
	_, err := CreateEngine(Config{Engine: "vosk"})
	if err == nil {
		t.Fatal("expected error for unsupported engine")
	}
	if !strings.Contains(err.Error(), "unsupported STT engine") {
		t.Errorf("error = %v, want mention of unsupported engine", err)
	}
	if !strings.Contains(err.Error(), "whispercpp, openai, groq") {
		t.Errorf("error = %v, want list of supported engines", err)
	}
}

func TestCreateEngineNameIsCaseInsensitive(t *testing.T) {
	engine, err := CreateEngine(Config{
		Engine: "OpenAI",
		OpenAI: OpenAIConfig{APIKey: "test-key"},
	})
	if err != nil {
		t.Fatalf("CreateEngine: %v", err)
	}
	defer engine.Close()

	if engine.Name() != "openai" {
		t.Errorf("Name() = %q, want %q", engine.Name(), "openai")
	}
}

func TestCreateEngineOpenAIRequiresKey(t *testing.T) {
	_, err := CreateEngine(Config{Engine: "openai"})
	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error = %v, want mention of OPENAI_API_KEY", err)
	}
}

func TestCreateEngineGroq(t *testing.T) {
	_, err := CreateEngine(Config{Engine: "groq"})
	if err == nil || !strings.Contains(err.Error(), "GROQ_API_KEY") {
		t.Fatalf("error = %v, want mention of GROQ_API_KEY", err)
	}

	engine, err := CreateEngine(Config{
		Engine: "groq",
		Groq:   GroqConfig{APIKey: "test-key"},
	})
	if err != nil {
		t.Fatalf("CreateEngine: %v", err)
	}
	defer engine.Close()

	if engine.Name() != "groq" {
		t.Errorf("Name() = %q, want %q", engine.Name(), "groq")
	}
}

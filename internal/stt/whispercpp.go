package stt

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperCppConfig holds configuration for local whisper.cpp inference.
type WhisperCppConfig struct {
	ModelsDir string // Directory holding (and receiving downloaded) ggml models
	Model     string // Short model name from the catalog, e.g. "base"
	Language  string // Language code ("en", ...) or "auto" for detection
	Threads   uint   // Inference threads (0 = library default)
}

// WhisperCppEngine runs Whisper inference in-process via whisper.cpp.
// The loaded model is immutable after construction; whisper.cpp creates a
// fresh context per Transcribe call, so concurrent requests share only
// read-only weights.
type WhisperCppEngine struct {
	model  whisper.Model
	config WhisperCppConfig
}

// NewWhisperCppEngine loads the configured ggml model, downloading it first
// if it is not on disk. Loading blocks for a non-trivial time and a failure
// here is fatal to process start.
func NewWhisperCppEngine(cfg WhisperCppConfig) (*WhisperCppEngine, error) {
	if cfg.Model == "" {
		cfg.Model = "base"
	}
	if cfg.ModelsDir == "" {
		cfg.ModelsDir = "models"
	}

	modelPath, err := EnsureModel(cfg.ModelsDir, cfg.Model)
	if err != nil {
		return nil, err
	}

	log.Printf("[WhisperCpp] Loading model %s", modelPath)

	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load whisper model: %w", err)
	}

	log.Printf("[WhisperCpp] Model loaded (multilingual: %v)", model.IsMultilingual())

	return &WhisperCppEngine{
		model:  model,
		config: cfg,
	}, nil
}

// Transcribe converts an audio file to text using the loaded model.
func (w *WhisperCppEngine) Transcribe(audioPath string) (*Result, error) {
	startTime := time.Now()

	samples, err := ConvertToFloat32(audioPath)
	if err != nil {
		return nil, fmt.Errorf("convert audio: %w", err)
	}

	audioSeconds := float64(len(samples)) / float64(whisperSampleRate)
	log.Printf("[WhisperCpp] Transcribing %s (%.1fs of audio)", audioPath, audioSeconds)

	ctx, err := w.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("create whisper context: %w", err)
	}

	language := w.config.Language
	if language == "" {
		language = "auto"
	}
	if err := ctx.SetLanguage(language); err != nil {
		log.Printf("[WhisperCpp] Failed to set language %q: %v", language, err)
	}

	if w.config.Threads > 0 {
		ctx.SetThreads(w.config.Threads)
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("whisper process: %w", err)
	}

	var text strings.Builder
	for {
		segment, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read segment: %w", err)
		}
		text.WriteString(segment.Text)
	}

	detected := language
	if language == "auto" {
		if lang := ctx.DetectedLanguage(); lang != "" {
			detected = lang
		}
	}

	log.Printf("[WhisperCpp] Transcription complete: language=%s, length=%d, took=%v",
		detected, text.Len(), time.Since(startTime))

	return &Result{
		Text:     strings.TrimSpace(text.String()),
		Language: detected,
		Duration: audioSeconds,
	}, nil
}

// Name returns the engine name.
func (w *WhisperCppEngine) Name() string {
	return "whispercpp"
}

// Close releases the whisper model.
func (w *WhisperCppEngine) Close() error {
	return w.model.Close()
}

// Package stt provides the speech-to-text inference engines behind the
// transcription API.
package stt

// Engine defines the interface for speech-to-text inference backends
type Engine interface {
	// Transcribe transcribes an audio file and returns the result.
	// The call blocks for the full duration of inference.
	Transcribe(audioPath string) (*Result, error)

	// Name returns the name of the engine (e.g., "whispercpp", "openai")
	Name() string

	// Close releases any resources held by the engine
	Close() error
}

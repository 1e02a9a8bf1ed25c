package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Text     string  // The transcribed text
	Language string  // Detected (or configured) language code, e.g. "en"
	Duration float64 // Audio duration in seconds, 0 if the engine does not report it
}

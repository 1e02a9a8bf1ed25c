package stt

import (
	"os"
	"path/filepath"
)

// WhisperModel describes one entry of the whisper.cpp model catalog.
type WhisperModel struct {
	Name      string // Short name used in configuration: "base", "small.en"
	File      string // ggml filename on disk: "ggml-base.bin"
	Size      string // Human readable: "142 MB"
	SizeBytes int64  // Used for download progress when Content-Length is missing
	URL       string // Download URL
}

// WhisperModels is the catalog of supported whisper.cpp models, mirroring
// the upstream releases at https://huggingface.co/ggerganov/whisper.cpp
var WhisperModels = []WhisperModel{
	{
		Name:      "tiny.en",
		File:      "ggml-tiny.en.bin",
		Size:      "39 MB",
		SizeBytes: 39_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.en.bin",
	},
	{
		Name:      "tiny",
		File:      "ggml-tiny.bin",
		Size:      "39 MB",
		SizeBytes: 39_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
	},
	{
		Name:      "base.en",
		File:      "ggml-base.en.bin",
		Size:      "142 MB",
		SizeBytes: 142_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.en.bin",
	},
	{
		Name:      "base",
		File:      "ggml-base.bin",
		Size:      "142 MB",
		SizeBytes: 142_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
	},
	{
		Name:      "small.en",
		File:      "ggml-small.en.bin",
		Size:      "466 MB",
		SizeBytes: 466_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.en.bin",
	},
	{
		Name:      "small",
		File:      "ggml-small.bin",
		Size:      "466 MB",
		SizeBytes: 466_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
	},
	{
		Name:      "medium",
		File:      "ggml-medium.bin",
		Size:      "1.5 GB",
		SizeBytes: 1_500_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
	},
	{
		Name:      "large-v3",
		File:      "ggml-large-v3.bin",
		Size:      "3.0 GB",
		SizeBytes: 3_000_000_000,
		URL:       "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
	},
}

// LookupModel returns the catalog entry with the given short name, or nil
// if the name is unknown.
func LookupModel(name string) *WhisperModel {
	for i := range WhisperModels {
		if WhisperModels[i].Name == name {
			return &WhisperModels[i]
		}
	}
	return nil
}

// ModelNames returns the short names of all catalog entries.
func ModelNames() []string {
	names := make([]string, 0, len(WhisperModels))
	for i := range WhisperModels {
		names = append(names, WhisperModels[i].Name)
	}
	return names
}

// IsModelDownloaded checks whether a model file exists in the given directory.
func IsModelDownloaded(modelsDir, file string) bool {
	if modelsDir == "" || file == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(modelsDir, file))
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

package stt

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnsureModel resolves a short model name to a file on disk, downloading the
// model into modelsDir when it is not present yet. Mirrors the behavior of
// whisper's load_model: the first start of a fresh deployment fetches the
// weights, subsequent starts reuse them.
func EnsureModel(modelsDir, name string) (string, error) {
	model := LookupModel(name)
	if model == nil {
		return "", fmt.Errorf("unknown whisper model %q. Available: %s", name, strings.Join(ModelNames(), ", "))
	}

	path := filepath.Join(modelsDir, model.File)
	if IsModelDownloaded(modelsDir, model.File) {
		return path, nil
	}

	if err := DownloadModel(model, modelsDir); err != nil {
		return "", err
	}
	return path, nil
}

// DownloadModel downloads a whisper model into destDir. The file is written
// under a temporary name and renamed once complete, so a partial download
// never passes IsModelDownloaded.
func DownloadModel(model *WhisperModel, destDir string) error {
	if model == nil {
		return fmt.Errorf("model is nil")
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return fmt.Errorf("create models directory: %w", err)
	}

	destPath := filepath.Join(destDir, model.File)
	tempPath := destPath + ".download"

	log.Printf("[Download] Fetching model %s (%s) from %s", model.Name, model.Size, model.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", model.URL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	totalSize := resp.ContentLength
	if totalSize <= 0 {
		totalSize = model.SizeBytes
	}

	tempFile, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	var downloaded int64
	lastLog := time.Now()
	buf := make([]byte, 1024*1024)

	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := tempFile.Write(buf[:n]); writeErr != nil {
				tempFile.Close()
				os.Remove(tempPath)
				return fmt.Errorf("write model file: %w", writeErr)
			}
			downloaded += int64(n)

			if time.Since(lastLog) > 2*time.Second {
				percent := int(float64(downloaded) / float64(totalSize) * 100)
				log.Printf("[Download] %s: %d%% (%d/%d MB)", model.Name, percent,
					downloaded/(1024*1024), totalSize/(1024*1024))
				lastLog = time.Now()
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return fmt.Errorf("read download: %w", err)
		}
	}

	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close model file: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("rename model file: %w", err)
	}

	log.Printf("[Download] Model %s ready at %s", model.Name, destPath)
	return nil
}

package stt

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pion/opus"
	"github.com/pion/opus/pkg/oggreader"
	"github.com/zeozeozeo/gomplerate"
)

const (
	whisperSampleRate = 16000 // whisper.cpp requires 16kHz mono input
	maxOpusFrameSize  = 5760  // Max Opus frame size (120ms at 48kHz)
)

// ConvertToFloat32 converts an audio file to 16kHz mono float32 samples, the
// input format whisper.cpp expects. ffmpeg handles every format on the
// allow-list; without ffmpeg, pure Go fallbacks cover 16-bit PCM WAV and
// OGG/Opus.
func ConvertToFloat32(audioPath string) ([]float32, error) {
	if ffmpegAvailable() {
		return convertWithFFmpeg(audioPath)
	}

	switch strings.ToLower(filepath.Ext(audioPath)) {
	case ".wav":
		return convertWAV(audioPath)
	case ".ogg", ".opus", ".oga":
		return convertOggOpus(audioPath)
	default:
		return nil, fmt.Errorf("cannot decode %s without ffmpeg (install ffmpeg for full format support)", filepath.Ext(audioPath))
	}
}

// convertWAV decodes a 16-bit PCM WAV file and resamples it to 16kHz mono.
func convertWAV(audioPath string) ([]float32, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}

	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		pcm           []byte
	)

	// Walk the RIFF chunks for "fmt " and "data"
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, fmt.Errorf("malformed fmt chunk")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 { // PCM
				return nil, fmt.Errorf("unsupported WAV encoding %d (only PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+chunkSize]
		}

		// Chunks are word-aligned
		offset = body + chunkSize + chunkSize%2
	}

	if sampleRate == 0 || channels == 0 {
		return nil, fmt.Errorf("missing fmt chunk")
	}
	if bitsPerSample != 16 {
		return nil, fmt.Errorf("unsupported WAV bit depth %d (only 16-bit PCM)", bitsPerSample)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("missing data chunk")
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}

	return finishConversion(samples, sampleRate, channels), nil
}

// convertOggOpus decodes an OGG/Opus file to 16kHz mono float32 using the
// pure Go decoder. The decoder panics on some files, so recover and report.
func convertOggOpus(audioPath string) (samples []float32, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Audio] Opus decoder panicked, recovered: %v", r)
			samples = nil
			err = fmt.Errorf("opus decoder panic: %v", r)
		}
	}()

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	ogg, header, err := oggreader.NewWith(file)
	if err != nil {
		return nil, fmt.Errorf("parse OGG container: %w", err)
	}

	sampleRate := int(header.SampleRate)
	channels := int(header.Channels)

	decoder := opus.NewDecoder()
	outBuf := make([]byte, maxOpusFrameSize*channels*2)

	var pcm []int16
	for {
		segments, _, err := ogg.ParseNextPage()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse OGG page: %w", err)
		}

		// Each segment is one Opus packet
		for _, segment := range segments {
			if len(segment) == 0 {
				continue
			}

			if _, _, err := decoder.Decode(segment, outBuf); err != nil {
				// Skip undecodable packets rather than failing the file
				continue
			}

			pcm = append(pcm, pcmBufferToInt16(outBuf)...)
		}
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", audioPath)
	}

	return finishConversion(pcm, sampleRate, channels), nil
}

// finishConversion takes raw interleaved int16 PCM and produces the 16kHz
// mono float32 buffer whisper.cpp consumes.
func finishConversion(samples []int16, sampleRate, channels int) []float32 {
	if channels > 1 {
		samples = mixToMono(samples, channels)
	}
	if sampleRate != whisperSampleRate {
		samples = resamplePCM(samples, sampleRate, whisperSampleRate)
	}
	return int16ToFloat32(samples)
}

// pcmBufferToInt16 converts a little-endian PCM byte buffer to int16
// samples, stopping at trailing unused (all-zero) buffer space.
func pcmBufferToInt16(buf []byte) []int16 {
	samples := make([]int16, 0, len(buf)/2)

	for i := 0; i+1 < len(buf); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(buf[i : i+2]))
		if sample == 0 && i > 0 {
			allZero := true
			for j := i; j+1 < len(buf); j += 2 {
				if binary.LittleEndian.Uint16(buf[j:j+2]) != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				break
			}
		}
		samples = append(samples, sample)
	}

	return samples
}

// mixToMono downmixes interleaved multi-channel audio by averaging channels.
func mixToMono(samples []int16, channels int) []int16 {
	if channels <= 1 {
		return samples
	}

	mono := make([]int16, len(samples)/channels)
	for i := 0; i < len(mono); i++ {
		var sum int32
		for ch := 0; ch < channels; ch++ {
			sum += int32(samples[i*channels+ch])
		}
		mono[i] = int16(sum / int32(channels))
	}
	return mono
}

// resamplePCM converts mono audio between sample rates using gomplerate.
func resamplePCM(samples []int16, fromRate, toRate int) []int16 {
	if fromRate == toRate {
		return samples
	}

	resampler, err := gomplerate.NewResampler(1, fromRate, toRate)
	if err != nil {
		log.Printf("[Audio] Resampler creation failed (%v), passing samples through", err)
		return samples
	}
	return resampler.ResampleInt16(samples)
}

// int16ToFloat32 converts int16 samples to float32 normalized to [-1, 1].
func int16ToFloat32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}

// ffmpegAvailable checks if ffmpeg is installed.
func ffmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// convertWithFFmpeg shells out to ffmpeg to produce raw 16kHz mono PCM.
func convertWithFFmpeg(inputPath string) ([]float32, error) {
	tmpFile, err := os.CreateTemp("", "stt-*.raw")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	cmd := exec.Command("ffmpeg",
		"-i", inputPath,
		"-ar", fmt.Sprintf("%d", whisperSampleRate),
		"-ac", "1",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-y",
		tmpPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("[Audio] ffmpeg output: %s", string(output))
		return nil, fmt.Errorf("ffmpeg conversion failed: %w", err)
	}

	rawData, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read converted audio: %w", err)
	}

	samples := make([]int16, len(rawData)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(rawData[i*2 : i*2+2]))
	}
	return int16ToFloat32(samples), nil
}

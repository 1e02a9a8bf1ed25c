package stt

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV builds a minimal 16-bit PCM RIFF/WAVE file.
func writeWAV(t *testing.T, path string, sampleRate, channels int, samples []int16) {
	t.Helper()

	var pcm bytes.Buffer
	for _, s := range samples {
		binary.Write(&pcm, binary.LittleEndian, s)
	}

	var body bytes.Buffer
	body.WriteString("WAVE")
	body.WriteString("fmt ")
	binary.Write(&body, binary.LittleEndian, uint32(16))
	binary.Write(&body, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&body, binary.LittleEndian, uint16(channels))
	binary.Write(&body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&body, binary.LittleEndian, uint32(sampleRate*channels*2)) // byte rate
	binary.Write(&body, binary.LittleEndian, uint16(channels*2))            // block align
	binary.Write(&body, binary.LittleEndian, uint16(16))                    // bits per sample
	body.WriteString("data")
	binary.Write(&body, binary.LittleEndian, uint32(pcm.Len()))
	body.Write(pcm.Bytes())

	var file bytes.Buffer
	file.WriteString("RIFF")
	binary.Write(&file, binary.LittleEndian, uint32(body.Len()))
	file.Write(body.Bytes())

	if err := os.WriteFile(path, file.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestConvertWAVMono16k(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	samples := []int16{0, 16384, -16384, 32767}
	writeWAV(t, path, whisperSampleRate, 1, samples)

	got, err := convertWAV(path)
	if err != nil {
		t.Fatalf("convertWAV: %v", err)
	}
	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestConvertWAVStereoDownmix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	// Interleaved L/R pairs averaging to 100, 200
	writeWAV(t, path, whisperSampleRate, 2, []int16{50, 150, 100, 300})

	got, err := convertWAV(path)
	if err != nil {
		t.Fatalf("convertWAV: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d samples, want 2", len(got))
	}

	want := []float32{100.0 / 32768.0, 200.0 / 32768.0}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestConvertWAVResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hi-rate.wav")
	samples := make([]int16, 4800) // 100ms at 48kHz
	writeWAV(t, path, 48000, 1, samples)

	got, err := convertWAV(path)
	if err != nil {
		t.Fatalf("convertWAV: %v", err)
	}
	// 100ms at 16kHz is 1600 samples; allow resampler edge slack
	if len(got) < 1500 || len(got) > 1700 {
		t.Errorf("got %d samples after resample, want ~1600", len(got))
	}
}

func TestConvertWAVRejectsNonWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.wav")
	if err := os.WriteFile(path, []byte("definitely not audio data"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := convertWAV(path); err == nil {
		t.Error("expected error for non-RIFF input")
	}
}

func TestMixToMono(t *testing.T) {
	got := mixToMono([]int16{10, 20, 30, 50, -10, 10}, 2)
	want := []int16{15, 40, 0}

	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestResamplePCMSameRate(t *testing.T) {
	in := []int16{1, 2, 3}
	got := resamplePCM(in, whisperSampleRate, whisperSampleRate)
	if len(got) != len(in) {
		t.Errorf("same-rate resample changed length: %d -> %d", len(in), len(got))
	}
}

func TestInt16ToFloat32(t *testing.T) {
	got := int16ToFloat32([]int16{-32768, 0, 16384})
	want := []float32{-1, 0, 0.5}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestPCMBufferToInt16(t *testing.T) {
	// Two real samples followed by unused zeroed buffer space
	buf := []byte{0x01, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}

	got := pcmBufferToInt16(buf)
	if len(got) != 2 {
		t.Fatalf("got %d samples, want 2", len(got))
	}
	if got[0] != 1 || got[1] != -1 {
		t.Errorf("samples = %v, want [1 -1]", got)
	}
}

package media

import (
	"encoding/base64"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEncodeWAVHeader(t *testing.T) {
	pcm := make([]byte, 3200) // 100ms at 16kHz mono 16-bit
	wav := EncodeWAV(pcm, 0, 0)

	if len(wav) != 44+len(pcm) {
		t.Fatalf("len = %d, want %d", len(wav), 44+len(pcm))
	}
	if !IsWAV(wav) {
		t.Fatal("EncodeWAV output not recognized as WAV")
	}
	if got := binary.LittleEndian.Uint32(wav[24:28]); got != 16000 {
		t.Errorf("sample rate = %d, want 16000", got)
	}
	if got := binary.LittleEndian.Uint16(wav[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(wav[40:44]); got != uint32(len(pcm)) {
		t.Errorf("data size = %d, want %d", got, len(pcm))
	}
	if got := binary.LittleEndian.Uint32(wav[28:32]); got != 32000 {
		t.Errorf("byte rate = %d, want 32000", got)
	}
}

func TestIsWAVRejectsRawPCM(t *testing.T) {
	if IsWAV([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}) {
		t.Fatal("raw bytes misidentified as WAV")
	}
}

func TestRecorderWithoutBinary(t *testing.T) {
	r := NewRecorder("", nil)
	if err := r.Start(); err != ErrNoRecorder {
		t.Fatalf("Start with empty command = %v, want ErrNoRecorder", err)
	}
	if _, err := r.Stop(); err != ErrNotRecording {
		t.Fatalf("Stop while idle = %v, want ErrNotRecording", err)
	}
	r.Abort() // no-op when idle
	if r.Recording() {
		t.Fatal("Recording reported true while idle")
	}
}

func TestRecorderMissingBinary(t *testing.T) {
	r := NewRecorder("definitely-not-a-recorder-binary", nil)
	err := r.Start()
	if err == nil {
		t.Fatal("Start with missing binary succeeded")
	}
	if r.Recording() {
		t.Fatal("Recording reported true after failed start")
	}
}

func TestPlayerWithoutBinary(t *testing.T) {
	p := NewPlayer("", nil)
	err := p.PlayBase64(base64.StdEncoding.EncodeToString([]byte("x")), "mp3")
	if err != ErrNoPlayer {
		t.Fatalf("PlayBase64 with empty command = %v, want ErrNoPlayer", err)
	}
}

func TestReadImageValidatesMagicBytes(t *testing.T) {
	dir := t.TempDir()

	jpeg := filepath.Join(dir, "rx.jpg")
	if err := os.WriteFile(jpeg, append([]byte{0xFF, 0xD8, 0xFF}, make([]byte, 64)...), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImage(jpeg); err != nil {
		t.Fatalf("ReadImage(jpeg) = %v", err)
	}

	text := filepath.Join(dir, "notes.jpg")
	if err := os.WriteFile(text, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImage(text); err == nil {
		t.Fatal("ReadImage accepted non-image content")
	}
}

func TestIsImagePath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"rx.jpg", true},
		{"RX.JPEG", true},
		{"scan.png", true},
		{"doc.pdf", false},
		{"audio.wav", false},
	}
	for _, tt := range tests {
		if got := IsImagePath(tt.path); got != tt.want {
			t.Errorf("IsImagePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

package media

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNoRecorder is returned when no recorder binary is configured or found.
var ErrNoRecorder = errors.New("no audio recorder available")

// ErrNotRecording is returned by Stop when no capture is in progress.
var ErrNotRecording = errors.New("not recording")

// Recorder captures microphone audio by running an external command and
// collecting its stdout. One capture at a time per Recorder.
type Recorder struct {
	command string
	logger  *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	buf    *bytes.Buffer
	doneCh chan error
}

// NewRecorder returns a Recorder that shells out to command. An empty command
// disables recording: Start reports ErrNoRecorder.
func NewRecorder(command string, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{command: command, logger: logger}
}

// recorderArgs maps known recorder binaries to flags producing raw 16 kHz
// mono 16-bit little-endian PCM on stdout.
func recorderArgs(command string) []string {
	switch command {
	case "arecord":
		return []string{"-q", "-f", "S16_LE", "-r", "16000", "-c", "1", "-t", "raw"}
	case "sox", "rec":
		return []string{"-q", "-d", "-t", "raw", "-b", "16", "-e", "signed", "-r", "16000", "-c", "1", "-"}
	default:
		return nil
	}
}

// Recording reports whether a capture is in progress.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}

// Start begins capturing. Calling Start while already recording is an error.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.command == "" {
		return ErrNoRecorder
	}
	if r.cmd != nil {
		return errors.New("already recording")
	}
	if _, err := exec.LookPath(r.command); err != nil {
		return fmt.Errorf("%w: %s not found", ErrNoRecorder, r.command)
	}

	buf := &bytes.Buffer{}
	cmd := exec.Command(r.command, recorderArgs(r.command)...)
	cmd.Stdout = buf

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start recorder: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	r.cmd = cmd
	r.buf = buf
	r.doneCh = done
	r.logger.Debug("recording started", zap.String("command", r.command))
	return nil
}

// Stop ends the capture and returns the audio as a WAV file ready for upload.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil, ErrNotRecording
	}
	cmd, buf, done := r.cmd, r.buf, r.doneCh
	r.cmd, r.buf, r.doneCh = nil, nil, nil

	// Recorders flush and exit cleanly on SIGINT; fall back to SIGKILL.
	_ = cmd.Process.Signal(interruptSignal)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		<-done
	}

	pcm := buf.Bytes()
	r.logger.Debug("recording stopped", zap.Int("pcm_bytes", len(pcm)))
	if len(pcm) == 0 {
		return nil, errors.New("recorder produced no audio")
	}
	if IsWAV(pcm) {
		return pcm, nil
	}
	return EncodeWAV(pcm, SampleRate, Channels), nil
}

// Abort discards an in-progress capture. Safe to call when not recording.
func (r *Recorder) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return
	}
	cmd, done := r.cmd, r.doneCh
	r.cmd, r.buf, r.doneCh = nil, nil, nil

	_ = cmd.Process.Kill()
	<-done
}

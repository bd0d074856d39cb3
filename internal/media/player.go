package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// ErrNoPlayer is returned when no player binary is configured or found.
var ErrNoPlayer = errors.New("no audio player available")

// Player plays bot voice replies through an external command. Playback runs
// in the calling goroutine; callers wanting async playback wrap it themselves.
type Player struct {
	command string
	logger  *zap.Logger
}

// NewPlayer returns a Player that shells out to command. An empty command
// disables playback: Play reports ErrNoPlayer.
func NewPlayer(command string, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{command: command, logger: logger}
}

// PlayBase64 decodes a base64 audio blob, writes it to a temp file with the
// extension audioType implies, and plays it. The temp file is removed after.
func (p *Player) PlayBase64(encoded, audioType string) error {
	if p.command == "" {
		return ErrNoPlayer
	}
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("%w: %s not found", ErrNoPlayer, p.command)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decode audio: %w", err)
	}

	f, err := os.CreateTemp("", "icare-voice-*"+extensionFor(audioType))
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp audio file: %w", err)
	}

	p.logger.Debug("playing voice reply",
		zap.String("command", p.command),
		zap.String("type", audioType),
		zap.Int("bytes", len(data)))

	if out, err := exec.Command(p.command, path).CombinedOutput(); err != nil {
		return fmt.Errorf("play audio: %w: %s", err, out)
	}
	return nil
}

// extensionFor maps the envelope's audio_type to a file extension the player
// can sniff. The backend sends MP3 today; WAV is kept for older servers.
func extensionFor(audioType string) string {
	switch audioType {
	case "wav", "audio/wav":
		return ".wav"
	default:
		return ".mp3"
	}
}

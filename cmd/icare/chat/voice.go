// Package chat — voice.go implements the press-to-talk flow: capture via the
// configured recorder, upload for transcription, swap the placeholder for the
// recognized text, and optionally play the spoken reply.
package chat

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"icare/internal/media"
	"icare/internal/transcript"
)

// toggleVoice starts a capture, or stops the running one and submits it.
func (m Model) toggleVoice() (tea.Model, tea.Cmd) {
	if !m.requireLogin() {
		return m, nil
	}
	if m.recorder == nil {
		m.alert = "음성 입력을 사용할 수 없습니다. 녹음 프로그램을 설정해주세요."
		return m, nil
	}
	if m.isRecording {
		return m.finishVoice()
	}
	return m.startVoice()
}

func (m Model) startVoice() (tea.Model, tea.Cmd) {
	if err := m.recorder.Start(); err != nil {
		if errors.Is(err, media.ErrNoRecorder) {
			m.alert = "녹음 프로그램을 찾을 수 없습니다. 설정을 확인해주세요."
		} else {
			m.alert = "녹음을 시작할 수 없습니다."
		}
		return m, nil
	}

	m.isRecording = true
	m.transcript.Append(transcript.UserText(recordingPlaceholder))
	m.refreshViewport()
	return m, m.spinner.Tick
}

// finishVoice stops the capture and sends the WAV to the speech endpoint. The
// recording placeholder becomes the transcription placeholder; the response
// handler swaps in the recognized text.
func (m Model) finishVoice() (tea.Model, tea.Cmd) {
	m.isRecording = false

	wav, err := m.recorder.Stop()
	if err != nil {
		_ = m.transcript.ReplaceLast(transcript.UserText("🎤 (녹음 실패)"))
		m.alert = "녹음을 중지할 수 없습니다."
		m.refreshViewport()
		return m, nil
	}

	_ = m.transcript.ReplaceLast(transcript.UserText(transcribingPlaceholder))
	m.refreshViewport()
	m.isLoading = true
	m.loadingLabel = labelTranscribing

	client, sessionID := m.client, m.sessionID
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		env, err := client.VoiceChat(context.Background(), wav, sessionID)
		if err != nil {
			return chatErrorMsg{err: err, voice: true}
		}
		return chatResponseMsg{env: env, voice: true}
	})
}

// playReply plays the base64 voice reply off the update loop. Failures are
// reported as playbackDoneMsg and logged, never shown as chat errors.
func (m Model) playReply(audio, audioType string) tea.Cmd {
	player := m.player
	return func() tea.Msg {
		return playbackDoneMsg{err: player.PlayBase64(audio, audioType)}
	}
}

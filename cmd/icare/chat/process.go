// Package chat — process.go sends chat turns to the backend and folds the
// responses into the transcript.
package chat

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"icare/internal/api"
	"icare/internal/media"
	"icare/internal/transcript"
)

// Error texts mirror the bot's tone; they are appended as regular bot turns.
const (
	errTextTimeout = "죄송합니다. 응답 시간이 길어지고 있습니다.\n잠시 후 다시 시도해주세요."
	errTextGeneral = "죄송합니다. 답변을 생성하는 중 오류가 발생했습니다.\n다시 시도해주세요."
	errTextVoice   = "음성 인식 중 오류가 발생했습니다. 다시 시도해주세요."
	errTextExpired = "로그인이 만료되었습니다. 다시 로그인해주세요."
)

// sendChat appends the user turn and fires the request. The input field stays
// disabled until a chatResponseMsg or chatErrorMsg arrives.
func (m Model) sendChat(message, label string) (tea.Model, tea.Cmd) {
	if !m.requireLogin() {
		return m, nil
	}

	m.transcript.Append(transcript.UserText(message))
	m.refreshViewport()
	m.isLoading = true
	m.loadingLabel = label

	client, sessionID := m.client, m.sessionID
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		env, err := client.Chat(context.Background(), message, sessionID)
		if err != nil {
			return chatErrorMsg{err: err}
		}
		return chatResponseMsg{env: env}
	})
}

// handleResponse folds a bot reply into the transcript. Voice turns first
// replace the pending placeholder with the recognized text, then queue the
// spoken reply if one came back.
func (m Model) handleResponse(msg chatResponseMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	m.loadingLabel = ""

	if msg.voice && msg.env.InputText != "" {
		if err := m.transcript.ReplaceLast(transcript.UserText(msg.env.InputText)); err != nil {
			m.logger.Warn("voice placeholder replacement failed", zap.Error(err))
		}
	}

	for _, entry := range transcript.Dispatch(msg.env) {
		m.transcript.Append(entry)
	}
	m.refreshViewport()

	if msg.env.SessionID != "" {
		m.sessionID = msg.env.SessionID
	}

	var cmd tea.Cmd
	if msg.voice && msg.env.Audio != "" && m.speaker && m.player != nil {
		cmd = m.playReply(msg.env.Audio, msg.env.AudioType)
	}
	return m, cmd
}

// handleError turns a request failure into an apologetic bot turn.
func (m Model) handleError(msg chatErrorMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	m.loadingLabel = ""

	var text string
	switch {
	case msg.voice:
		text = errTextVoice
	case api.IsTimeout(msg.err):
		text = errTextTimeout
	case api.IsAuthExpired(msg.err):
		m.loggedIn = false
		text = errTextExpired
	default:
		text = errTextGeneral
	}

	m.logger.Warn("chat request failed", zap.Error(msg.err))
	m.transcript.Append(transcript.BotText(text))
	m.refreshViewport()
	return m, nil
}

// startUpload reads the picked prescription photo and sends it for OCR.
func (m Model) startUpload(path string) (tea.Model, tea.Cmd) {
	if !m.requireLogin() {
		return m, nil
	}

	image, err := media.ReadImage(path)
	if err != nil {
		m.alert = fmt.Sprintf("이미지를 불러올 수 없습니다: %v", err)
		return m, nil
	}

	m.transcript.Append(transcript.UserText("📷 처방전 사진을 등록할게요."))
	m.refreshViewport()
	m.isLoading = true
	m.loadingLabel = labelUploading

	client, childName := m.client, m.childName
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		result, err := client.UploadPrescription(context.Background(), image, path, childName)
		return uploadDoneMsg{result: result, err: err}
	})
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.isLoading = false
	m.loadingLabel = ""

	if msg.err != nil {
		m.logger.Warn("prescription upload failed", zap.Error(msg.err))
		if api.IsAuthExpired(msg.err) {
			m.loggedIn = false
			m.transcript.Append(transcript.BotText(errTextExpired))
		} else {
			m.transcript.Append(transcript.BotText("처방전 등록 중 오류가 발생했습니다. 다시 시도해주세요."))
		}
		m.refreshViewport()
		return m, nil
	}

	text := "처방전이 등록되었습니다! 🎉"
	if msg.result.Data.PrescriptionNumber != "" {
		text = fmt.Sprintf("처방전이 등록되었습니다! 🎉\n처방전 번호: %s", msg.result.Data.PrescriptionNumber)
	}
	m.transcript.Append(transcript.BotText(text))
	m.refreshViewport()
	return m, nil
}

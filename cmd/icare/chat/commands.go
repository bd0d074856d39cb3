// Package chat — commands.go handles /command inputs from the user.
package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"icare/internal/transcript"
)

// handleCommand processes all /command inputs. Quick actions reuse the exact
// phrasing the bot is trained on, so /pharmacy behaves like typing the
// request by hand.
func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	m.textinput.Reset()

	switch cmd {
	case "/quit", "/exit", "/q":
		m.abortRecording()
		return m, tea.Quit

	case "/clear":
		m.transcript = transcript.New(transcript.BotText(greeting))
		m.refreshViewport()
		return m, nil

	case "/pharmacy":
		return m.sendChat(pharmacyPrompt, labelPharmacy)

	case "/hospital":
		return m.sendChat(hospitalPrompt, labelHospital)

	case "/voice":
		return m.toggleVoice()

	case "/prescription":
		if !m.requireLogin() {
			return m, nil
		}
		m.viewMode = FilePickerView
		return m, m.filepicker.Init()

	case "/help":
		m.transcript.Append(transcript.BotText(helpText))
		m.refreshViewport()
		return m, nil

	default:
		m.alert = "알 수 없는 명령어입니다. /help 를 입력해보세요."
		return m, nil
	}
}

const helpText = `사용할 수 있는 명령어입니다:

- /pharmacy — 근처 약국 찾기
- /hospital — 근처 병원 찾기
- /voice — 음성 메시지 녹음 시작/종료
- /prescription — 처방전 사진 등록
- /clear — 대화 내용 지우기
- /quit — 종료

명령어 없이 입력하면 아이케어봇과 대화할 수 있어요.`

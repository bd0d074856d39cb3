// Package chat — view.go renders the TUI: transcript, place cards, header,
// input area, footer.
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"icare/internal/api"
	"icare/internal/transcript"
)

func (m Model) renderTranscript() string {
	var sb strings.Builder

	for _, entry := range m.transcript.Entries() {
		switch entry.Kind {
		case transcript.KindUserText:
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("나") + "\n")
			sb.WriteString(m.styles.UserBubble.Render(entry.Text))
			sb.WriteString("\n")

		case transcript.KindBotText:
			botStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Accent).
				MarginTop(1)
			sb.WriteString(botStyle.Render("아이케어봇") + "\n")
			sb.WriteString(m.safeRenderMarkdown(entry.Text))
			sb.WriteString("\n")

		case transcript.KindHospitalList:
			for _, h := range entry.Hospitals {
				sb.WriteString(m.renderHospitalCard(h))
				sb.WriteString("\n")
			}

		case transcript.KindPharmacyList:
			for _, p := range entry.Pharmacies {
				sb.WriteString(m.renderPharmacyCard(p))
				sb.WriteString("\n")
			}
		}
	}

	if m.isLoading {
		label := m.loadingLabel
		if label == "" {
			label = labelThinking
		}
		sb.WriteString("\n" + m.spinner.View() + " " + m.styles.Subtitle.Render(label) + "\n")
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery
func (m Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m Model) renderHospitalCard(h api.HospitalRecord) string {
	var lines []string

	title := h.Name
	if h.Category != "" {
		title += "  " + m.styles.Badge.Render(h.Category)
	}
	lines = append(lines, m.styles.CardTitle.Render(title))

	if h.Address != "" {
		lines = append(lines, m.styles.CardDetail.Render("📍 "+h.Address))
	}
	if hours := h.HoursRange(); hours != "" {
		lines = append(lines, m.styles.CardDetail.Render("🕐 "+hours))
	}
	if h.Phone != "" {
		lines = append(lines, m.styles.CardDetail.Render("📞 "+h.Phone))
	}
	if h.Distance != "" {
		lines = append(lines, m.styles.CardDetail.Render("🚶 "+h.Distance))
	}
	if h.State != "" {
		lines = append(lines, m.renderState(h.State))
	}

	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderPharmacyCard(p api.PharmacyRecord) string {
	var lines []string
	lines = append(lines, m.styles.CardTitle.Render(p.Name))

	if p.Address != "" {
		lines = append(lines, m.styles.CardDetail.Render("📍 "+p.Address))
	}
	switch {
	case p.Hours != "":
		lines = append(lines, m.styles.CardDetail.Render("🕐 "+p.Hours))
	case p.OpeningTime > 0 || p.ClosingTime > 0:
		lines = append(lines, m.styles.CardDetail.Render(
			"🕐 "+api.FormatClock(p.OpeningTime)+" ~ "+api.FormatClock(p.ClosingTime)))
	}
	if p.Phone != "" {
		lines = append(lines, m.styles.CardDetail.Render("📞 "+p.Phone))
	}
	if p.Distance != "" {
		lines = append(lines, m.styles.CardDetail.Render("🚶 "+p.Distance))
	}
	if p.State != "" {
		lines = append(lines, m.renderState(p.State))
	}

	return m.styles.Card.Render(strings.Join(lines, "\n"))
}

func (m Model) renderState(state string) string {
	if strings.Contains(state, "영업중") || strings.Contains(state, "영업 중") {
		return m.styles.OpenState.Render("● " + state)
	}
	return m.styles.ClosedState.Render("● " + state)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.viewMode == FilePickerView {
		title := m.styles.Header.Render(" 처방전 사진 선택 ")
		hint := m.styles.Muted.Render("  Enter: 선택   Esc: 취소")
		content := m.styles.Content.Render(m.filepicker.View())
		return lipgloss.JoinVertical(lipgloss.Left, title, hint, content)
	}

	header := m.renderHeader()
	chatView := m.styles.Content.Render(m.viewport.View())

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)

	var inputArea string
	if m.isRecording {
		inputArea = inputStyle.Render(m.spinner.View() + " " + m.styles.VoiceMarker.Render("음성 입력 중... (/voice 로 종료)"))
	} else {
		inputArea = inputStyle.Render(m.textinput.View())
	}

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		footer,
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(" 아이케어봇 ")

	var status string
	switch {
	case m.isRecording:
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Badge.Render("녹음 중"))
	case m.isLoading:
		label := m.loadingLabel
		if label == "" {
			label = labelThinking
		}
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Badge.Render(label))
	case m.loggedIn:
		status = m.styles.Success.Render("Ready")
	default:
		status = m.styles.Warning.Render("로그인 필요")
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", status)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.RenderDivider(m.width),
	)
}

func (m Model) renderFooter() string {
	var alert string
	if m.alert != "" {
		alert = m.styles.Warning.Render(m.alert) + "  "
	}
	help := m.styles.Muted.Render("/pharmacy  /hospital  /voice  /prescription  /help  /quit")
	return lipgloss.NewStyle().MarginTop(1).Render(fmt.Sprintf("%s%s", alert, help))
}

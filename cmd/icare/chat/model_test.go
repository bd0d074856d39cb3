// Package chat provides tests for the Update loop and message routing.
package chat

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"icare/cmd/icare/ui"
	"icare/internal/api"
	"icare/internal/transcript"
)

func newTestModel(loggedIn bool) Model {
	m := New(Options{
		Theme:    ui.LightTheme(),
		LoggedIn: loggedIn,
	})
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return sized.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateWindowSize(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	result := newModel.(Model)

	if result.width != 120 || result.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", result.width, result.height)
	}
	if !result.ready {
		t.Error("model not ready after window size")
	}
}

func TestUpdateWindowSizeZero(t *testing.T) {
	t.Parallel()
	m := New(Options{Theme: ui.LightTheme()})

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("panic on zero window size: %v", r)
		}
	}()
	_, _ = m.Update(tea.WindowSizeMsg{Width: 0, Height: 0})
}

func TestGreetingSeedsTranscript(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)

	entries := m.transcript.Entries()
	if len(entries) != 1 || entries[0].Kind != transcript.KindBotText {
		t.Fatalf("transcript = %+v, want single greeting", entries)
	}
	if entries[0].Text != greeting {
		t.Errorf("greeting = %q", entries[0].Text)
	}
}

func TestSubmitWhileLoadingIsIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.isLoading = true
	m.textinput.SetValue("아이가 열이 나요")

	before := m.transcript.Len()
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if cmd != nil {
		t.Error("loading submit produced a command")
	}
	if result.transcript.Len() != before {
		t.Error("loading submit modified transcript")
	}
}

func TestSubmitEmptyInputIsIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.textinput.SetValue("   ")

	before := m.transcript.Len()
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if cmd != nil || result.transcript.Len() != before {
		t.Error("blank submit should be a no-op")
	}
}

func TestQuickActionRequiresLogin(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)
	m.textinput.SetValue("/pharmacy")

	before := m.transcript.Len()
	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if cmd != nil {
		t.Error("unauthenticated quick action fired a request")
	}
	if result.transcript.Len() != before {
		t.Error("unauthenticated quick action modified transcript")
	}
	if result.alert == "" {
		t.Error("no alert raised for missing login")
	}
	if result.isLoading {
		t.Error("model stuck in loading state")
	}
}

func TestQuickActionAppendsCanonicalPrompt(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.textinput.SetValue("/hospital")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if cmd == nil {
		t.Fatal("quick action produced no command")
	}
	last, ok := result.transcript.Last()
	if !ok || last.Kind != transcript.KindUserText || last.Text != hospitalPrompt {
		t.Fatalf("last entry = %+v, want user %q", last, hospitalPrompt)
	}
	if !result.isLoading {
		t.Error("quick action did not enter loading state")
	}
	if result.loadingLabel != labelHospital {
		t.Errorf("loading label = %q, want %q", result.loadingLabel, labelHospital)
	}
}

func TestResponseAppendsDispatchedEntries(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.isLoading = true

	env := api.Envelope{
		Type: api.TypeMulti,
		Responses: []api.Envelope{
			{Type: api.TypeChat, StartMessage: "네!", EndMessage: "검색할게요."},
			{
				Type:         api.TypePharmacyList,
				StartMessage: "현재 영업 중인 약국들입니다:",
				Data:         []map[string]any{{"약국명": "A약국"}},
			},
		},
		SessionID: "session_from_server",
	}

	before := m.transcript.Len()
	newModel, _ := m.Update(chatResponseMsg{env: env})
	result := newModel.(Model)

	// Guarded chat contributes nothing: start message + list = 2 entries.
	if got := result.transcript.Len() - before; got != 2 {
		t.Fatalf("appended %d entries, want 2", got)
	}
	if result.isLoading {
		t.Error("still loading after response")
	}
	if result.sessionID != "session_from_server" {
		t.Errorf("sessionID = %q, server value not adopted", result.sessionID)
	}
}

func TestErrorAppendsApology(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", &api.Error{Kind: api.KindTimeout}, errTextTimeout},
		{"server", &api.Error{Kind: api.KindServer}, errTextGeneral},
		{"network", &api.Error{Kind: api.KindNetwork}, errTextGeneral},
		{"plain", errors.New("boom"), errTextGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(true)
			m.isLoading = true

			newModel, _ := m.Update(chatErrorMsg{err: tt.err})
			result := newModel.(Model)

			last, ok := result.transcript.Last()
			if !ok || last.Text != tt.want {
				t.Fatalf("last entry = %+v, want bot %q", last, tt.want)
			}
			if result.isLoading {
				t.Error("still loading after error")
			}
		})
	}
}

func TestAuthExpiredErrorDropsLogin(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.isLoading = true

	newModel, _ := m.Update(chatErrorMsg{err: &api.Error{Kind: api.KindAuthExpired}})
	result := newModel.(Model)

	if result.loggedIn {
		t.Error("loggedIn still true after auth expiry")
	}
	last, _ := result.transcript.Last()
	if last.Text != errTextExpired {
		t.Errorf("last entry = %q, want expiry notice", last.Text)
	}
}

func TestVoiceResponseReplacesPlaceholder(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.transcript.Append(transcript.UserText(transcribingPlaceholder))
	m.isLoading = true

	env := api.Envelope{
		Type:         api.TypeChat,
		InputText:    "근처 병원 찾아줘",
		StartMessage: "검색해볼게요.",
	}

	before := m.transcript.Len()
	newModel, _ := m.Update(chatResponseMsg{env: env, voice: true})
	result := newModel.(Model)

	entries := result.transcript.Entries()
	if entries[before-1].Text != "근처 병원 찾아줘" {
		t.Errorf("placeholder = %q, not replaced in place", entries[before-1].Text)
	}
	last, _ := result.transcript.Last()
	if last.Kind != transcript.KindBotText || last.Text != "검색해볼게요." {
		t.Errorf("last entry = %+v, want bot reply", last)
	}
}

func TestVoiceErrorUsesVoiceApology(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.isLoading = true

	newModel, _ := m.Update(chatErrorMsg{err: errors.New("decode"), voice: true})
	result := newModel.(Model)

	last, _ := result.transcript.Last()
	if last.Text != errTextVoice {
		t.Errorf("last entry = %q, want voice apology", last.Text)
	}
}

func TestHelpCommandAppendsHelp(t *testing.T) {
	t.Parallel()
	m := newTestModel(false) // help works logged out
	m.textinput.SetValue("/help")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	last, ok := result.transcript.Last()
	if !ok || last.Text != helpText {
		t.Fatalf("last entry = %+v, want help text", last)
	}
}

func TestUnknownCommandRaisesAlert(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.textinput.SetValue("/teleport")

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if result.alert == "" {
		t.Error("unknown command raised no alert")
	}
}

func TestTypingWhileRecordingIsBlocked(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.isRecording = true

	newModel, _ := m.Update(keyMsg("a"))
	result := newModel.(Model)

	if result.textinput.Value() != "" {
		t.Errorf("input = %q, typing not blocked while recording", result.textinput.Value())
	}
}

func TestPrescriptionPickerListsFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "rx.jpg"), []byte{0xff, 0xd8, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}

	m := newTestModel(true)
	m.filepicker.CurrentDirectory = dir
	m.textinput.SetValue("/prescription")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)
	if result.viewMode != FilePickerView {
		t.Fatal("/prescription did not switch to the picker")
	}
	if cmd == nil {
		t.Fatal("picker produced no init command")
	}

	// The init command reads the directory. Its result is not a key press,
	// but it still must reach the picker or the listing stays empty.
	listed, _ := result.Update(cmd())
	result = listed.(Model)

	if view := result.View(); !strings.Contains(view, "rx.jpg") {
		t.Errorf("picker view does not list rx.jpg:\n%s", view)
	}
}

func TestPickerRequiresLogin(t *testing.T) {
	t.Parallel()
	m := newTestModel(false)
	m.textinput.SetValue("/prescription")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	result := newModel.(Model)

	if result.viewMode != ChatView || cmd != nil {
		t.Error("unauthenticated /prescription opened the picker")
	}
	if result.alert == "" {
		t.Error("no alert raised for missing login")
	}
}

func TestPickerEscReturnsToChat(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.viewMode = FilePickerView

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	result := newModel.(Model)

	if result.viewMode != ChatView {
		t.Error("Esc did not close the picker")
	}
	if cmd != nil {
		t.Error("closing the picker must not quit the program")
	}
}

func TestViewRendersPlaceCards(t *testing.T) {
	t.Parallel()
	m := newTestModel(true)
	m.transcript.Append(transcript.PharmacyList([]api.PharmacyRecord{{
		Name:    "온누리약국",
		Address: "서울시 강북구",
		Hours:   "09:00 ~ 21:00",
		State:   "영업중",
	}}))
	m.refreshViewport()

	out := m.renderTranscript()
	for _, want := range []string{"온누리약국", "서울시 강북구", "09:00 ~ 21:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered transcript missing %q", want)
		}
	}
}

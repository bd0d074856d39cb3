// Package chat provides the interactive TUI for talking to the iCare bot.
// The functionality is split across multiple files:
//   - model.go: Types, Init, Update loop (this file)
//   - commands.go: /command handling
//   - process.go: Message sending and response handling
//   - voice.go: Voice capture, transcription flow, reply playback
//   - view.go: Rendering functions
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"icare/cmd/icare/ui"
	"icare/internal/api"
	"icare/internal/media"
	"icare/internal/transcript"
)

// ViewMode determines which component is focused/active
type ViewMode int

const (
	ChatView ViewMode = iota
	FilePickerView
)

const (
	greeting = "안녕하세요! 저는 아이케어봇이에요. 😊\n아이의 건강과 관련된 정보를 도와드릴게요."

	pharmacyPrompt = "근처 약국 찾아줘"
	hospitalPrompt = "근처 병원 찾아줘"

	recordingPlaceholder    = "🎤 음성 메시지 녹음 중..."
	transcribingPlaceholder = "음성 메시지 변환 중..."
)

// Loading labels shown next to the spinner while a request is in flight.
const (
	labelThinking     = "답변을 생성하고 있어요"
	labelPharmacy     = "근처 약국을 찾고 있어요"
	labelHospital     = "근처 병원을 찾고 있어요"
	labelTranscribing = "음성을 인식하고 있어요"
	labelUploading    = "처방전을 분석하고 있어요"
)

// Messages for tea updates
type (
	// chatResponseMsg carries the bot's reply. replacePlaceholder is set for
	// voice turns whose pending entry must be swapped for the recognized text.
	chatResponseMsg struct {
		env   api.Envelope
		voice bool
	}

	chatErrorMsg struct {
		err   error
		voice bool
	}

	uploadDoneMsg struct {
		result api.PrescriptionUploadResult
		err    error
	}

	playbackDoneMsg struct{ err error }
)

// Model is the main model for the interactive chat interface
type Model struct {
	// UI components
	textinput  textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	filepicker filepicker.Model
	styles     ui.Styles
	renderer   *glamour.TermRenderer

	viewMode ViewMode

	// State
	transcript   *transcript.Transcript
	isLoading    bool
	loadingLabel string
	isRecording  bool
	alert        string
	width        int
	height       int
	ready        bool

	// Session state
	sessionID string
	loggedIn  bool
	childName string

	// Input history
	inputHistory []string
	historyIndex int

	// Backend
	client   *api.Client
	recorder *media.Recorder
	player   *media.Player
	speaker  bool
	logger   *zap.Logger
}

// Options configures the chat model.
type Options struct {
	Client    *api.Client
	Recorder  *media.Recorder
	Player    *media.Player
	Speaker   bool
	Theme     ui.Theme
	LoggedIn  bool
	ChildName string
	Logger    *zap.Logger
}

// New builds the chat model. The transcript is seeded with the bot greeting.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "메시지를 입력하세요..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png"}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	styles := ui.NewStyles(opts.Theme)
	sp.Style = styles.Spinner

	return Model{
		textinput:  ti,
		spinner:    sp,
		filepicker: fp,
		styles:     styles,
		transcript: transcript.New(transcript.BotText(greeting)),
		sessionID:  fmt.Sprintf("session_%s", uuid.NewString()),
		client:     opts.Client,
		recorder:   opts.Recorder,
		player:     opts.Player,
		speaker:    opts.Speaker,
		loggedIn:   opts.LoggedIn,
		childName:  opts.ChildName,
		logger:     logger,
	}
}

// Init initializes the interactive chat model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			m.abortRecording()
			return m, tea.Quit
		case tea.KeyEsc:
			if m.viewMode == FilePickerView {
				m.viewMode = ChatView
				return m, nil
			}
			m.abortRecording()
			return m, tea.Quit
		}
	}

	// The picker runs its own message loop: directory listings arrive as
	// internal messages, not key presses, so every message goes through it
	// while it is on screen.
	if m.viewMode == FilePickerView {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.resize(size)
		}
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.viewMode = ChatView
			return m.startUpload(path)
		}
		if didSelect, path := m.filepicker.DidSelectDisabledFile(msg); didSelect {
			m.alert = fmt.Sprintf("%s 파일은 선택할 수 없습니다.", path)
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			if !m.isLoading && !m.isRecording {
				return m.handleSubmit()
			}

		case tea.KeyUp:
			if m.historyIndex > 0 {
				m.historyIndex--
				m.textinput.SetValue(m.inputHistory[m.historyIndex])
				m.textinput.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.historyIndex < len(m.inputHistory) {
				m.historyIndex++
				if m.historyIndex == len(m.inputHistory) {
					m.textinput.SetValue("")
				} else {
					m.textinput.SetValue(m.inputHistory[m.historyIndex])
					m.textinput.CursorEnd()
				}
			}
			return m, nil
		}

		if !m.isLoading && !m.isRecording {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.resize(msg)

	case spinner.TickMsg:
		if m.isLoading || m.isRecording {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case chatResponseMsg:
		return m.handleResponse(msg)

	case chatErrorMsg:
		return m.handleError(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case playbackDoneMsg:
		if msg.err != nil {
			// Playback trouble never interrupts the conversation.
			m.logger.Warn("voice playback failed", zap.Error(msg.err))
		}
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit routes the entered text: slash commands or a chat turn.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}

	m.inputHistory = append(m.inputHistory, input)
	m.historyIndex = len(m.inputHistory)
	m.alert = ""

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.textinput.Reset()
	return m.sendChat(input, labelThinking)
}

// requireLogin appends nothing and raises an alert when no token is present.
func (m *Model) requireLogin() bool {
	if m.loggedIn {
		return true
	}
	m.alert = "로그인이 필요한 서비스입니다."
	return false
}

func (m *Model) abortRecording() {
	if m.recorder != nil && m.isRecording {
		m.recorder.Abort()
		m.isRecording = false
	}
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height

	headerHeight := 3
	footerHeight := 2
	inputHeight := 3

	chatWidth := msg.Width - 4
	if chatWidth < 1 {
		chatWidth = 1
	}
	calcHeight := msg.Height - headerHeight - footerHeight - inputHeight
	if calcHeight < 1 {
		calcHeight = 1
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, calcHeight)
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = calcHeight
	}
	m.textinput.Width = chatWidth - 6
	m.filepicker.Height = calcHeight

	m.renderer, _ = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-4),
	)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) refreshViewport() {
	if m.ready {
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
	}
}

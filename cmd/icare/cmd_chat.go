package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"icare/cmd/icare/chat"
	"icare/cmd/icare/ui"
	"icare/internal/api"
	"icare/internal/media"
)

// runInteractiveChat starts the interactive chat interface
func runInteractiveChat() error {
	_, loggedIn := tokens.Token()

	var childName string
	var profile api.Profile
	if ok, err := tokens.Profile(&profile); err == nil && ok {
		childName = profile.Username
	}

	model := chat.New(chat.Options{
		Client:    client,
		Recorder:  media.NewRecorder(cfg.Audio.Recorder, logger),
		Player:    media.NewPlayer(cfg.Audio.Player, logger),
		Speaker:   cfg.Audio.Speaker,
		Theme:     ui.ThemeByName(cfg.UI.Theme),
		LoggedIn:  loggedIn,
		ChildName: childName,
		Logger:    logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui is the interactive terminal frontend. It owns cursor and
// viewport state only; every table mutation goes through the store, and
// the preview pane is recomputed from store state on each frame.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabletools/tablepad/config"
	"github.com/tabletools/tablepad/log"
	"github.com/tabletools/tablepad/table"
)

type mode int

const (
	modeNormal mode = iota
	modeEditCell
	modeAddColumn
	modeRenameColumn
)

type statusKind int

const (
	statusIdle statusKind = iota
	statusSuccess
	statusError
)

const statusRevertDelay = 2 * time.Second

// statusExpireMsg reverts a flash message. Each flash bumps the
// sequence number, so an expiry carrying an older sequence is stale
// and ignored; at most one live revert exists at a time.
type statusExpireMsg struct {
	seq int
}

type clipboardResultMsg struct {
	err error
}

type Model struct {
	store  *table.Store
	logger log.Logger

	keys  keyMap
	help  help.Model
	input textinput.Model

	mode    mode
	cursorX int
	cursorY int

	fenced bool

	status     string
	statusKind statusKind
	statusSeq  int

	width  int
	height int
	ready  bool
}

func NewModel(store *table.Store, cfg config.Config, fenced bool) Model {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40

	return Model{
		store:  store,
		logger: cfg.Logger(),
		keys:   newKeyMap(cfg.SupportedOperations()),
		help:   help.New(),
		input:  input,
		fenced: fenced,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// flashStatus swaps the status line for a transient message and
// schedules its revert.
func (m *Model) flashStatus(kind statusKind, text string) tea.Cmd {
	m.statusKind = kind
	m.status = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusRevertDelay, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

// copyToClipboard writes off the update goroutine; the result comes
// back as a message.
func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{err: clipboard.WriteAll(text)}
	}
}

package tui

import (
	"sync"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	confirmMsg        struct{ prompt string }
	hideConfirmMsg    struct{}
	confirmEnabledMsg struct{ enabled bool }
	loadingMsg        struct{ kind models.ListKind }
	tableMsg          struct{ table render.Table }
	listErrorMsg      struct {
		kind    models.ListKind
		message string
	}
	statsMsg struct{ stats models.Stats }
	flagMsg  struct {
		name    string
		enabled bool
	}
	noticeMsg struct {
		level   dashboard.Level
		message string
	}
)

// Bridge implements dashboard.View and dashboard.Notifier by turning every
// call into a message for the running program. It must only be called from
// commands, never from inside Update, because sending blocks until the event
// loop receives the message.
type Bridge struct {
	mu    sync.Mutex
	send  func(tea.Msg)
	flags map[string]bool
}

func NewBridge() *Bridge {
	return &Bridge{flags: map[string]bool{}}
}

// Attach sets where messages go, normally (*tea.Program).Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

func (b *Bridge) emit(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) ShowConfirm(prompt string)        { b.emit(confirmMsg{prompt}) }
func (b *Bridge) HideConfirm()                     { b.emit(hideConfirmMsg{}) }
func (b *Bridge) SetConfirmEnabled(enabled bool)   { b.emit(confirmEnabledMsg{enabled}) }
func (b *Bridge) ShowLoading(kind models.ListKind) { b.emit(loadingMsg{kind}) }
func (b *Bridge) ShowTable(t render.Table)         { b.emit(tableMsg{t}) }
func (b *Bridge) SetStats(stats models.Stats)      { b.emit(statsMsg{stats}) }

func (b *Bridge) ShowListError(kind models.ListKind, message string) {
	b.emit(listErrorMsg{kind, message})
}

func (b *Bridge) Notify(level dashboard.Level, message string) {
	b.emit(noticeMsg{level, message})
}

// FlagEnabled answers from the bridge's own copy so the controller can read
// the displayed state without a round trip through the event loop.
func (b *Bridge) FlagEnabled(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flags[name]
}

func (b *Bridge) SetFlag(name string, enabled bool) {
	b.mu.Lock()
	b.flags[name] = enabled
	b.mu.Unlock()
	b.emit(flagMsg{name, enabled})
}

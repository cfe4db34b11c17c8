package services

import (
	"sync"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

// Notice is a message shown at the top of a page.
type Notice struct {
	Level   string
	Message string
}

// PageView collects what the controller displays while a request is handled,
// then feeds the page templates.
type PageView struct {
	mu sync.Mutex

	ConfirmVisible bool
	ConfirmEnabled bool
	Prompt         string

	List      models.ListKind
	Table     *render.Table
	ListError string

	Stats       models.Stats
	StatsLoaded bool

	Flags   map[string]bool
	Notices []Notice
}

func NewPageView() *PageView {
	return &PageView{
		ConfirmEnabled: true,
		List:           models.ListUsers,
		Flags:          map[string]bool{},
	}
}

func (v *PageView) ShowConfirm(prompt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ConfirmVisible = true
	v.Prompt = prompt
}

func (v *PageView) HideConfirm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ConfirmVisible = false
}

func (v *PageView) SetConfirmEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ConfirmEnabled = enabled
}

func (v *PageView) ShowLoading(kind models.ListKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.List = kind
	v.Table = nil
	v.ListError = ""
}

func (v *PageView) ShowTable(t render.Table) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.List = t.Kind
	v.Table = &t
	v.ListError = ""
}

func (v *PageView) ShowListError(kind models.ListKind, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.List = kind
	v.Table = nil
	v.ListError = message
}

func (v *PageView) SetStats(stats models.Stats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Stats = stats
	v.StatsLoaded = true
}

func (v *PageView) FlagEnabled(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Flags[name]
}

func (v *PageView) SetFlag(name string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Flags[name] = enabled
}

func (v *PageView) Notify(level dashboard.Level, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Notices = append(v.Notices, Notice{Level: level.String(), Message: message})
}

// lastNotice returns the most recent notice, if any.
func (v *PageView) lastNotice() (Notice, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.Notices) == 0 {
		return Notice{}, false
	}
	return v.Notices[len(v.Notices)-1], true
}

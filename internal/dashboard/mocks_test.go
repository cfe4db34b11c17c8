package dashboard

import (
	"context"
	"sync"

	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/stretchr/testify/mock"
)

type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *MockFetcher) FetchGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	groups, _ := args.Get(0).([]models.Group)
	return groups, args.Error(1)
}

func (m *MockFetcher) FetchProjects(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	projects, _ := args.Get(0).([]models.Project)
	return projects, args.Error(1)
}

func (m *MockFetcher) SubmitAction(ctx context.Context, endpoint string) (*models.ActionResult, error) {
	args := m.Called(ctx, endpoint)
	result, _ := args.Get(0).(*models.ActionResult)
	return result, args.Error(1)
}

func (m *MockFetcher) GetSettings(ctx context.Context) (models.Settings, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).(models.Settings)
	return settings, args.Error(1)
}

func (m *MockFetcher) UpdateSetting(ctx context.Context, name string, value bool) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, event models.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeView records what the controller displayed.
type fakeView struct {
	mu sync.Mutex

	confirmVisible bool
	confirmEnabled bool
	prompt         string
	enabledHistory []bool

	loading []models.ListKind
	tables  []render.Table
	errors  map[models.ListKind]string

	stats    models.Stats
	statsSet int

	flags map[string]bool
}

func newFakeView() *fakeView {
	return &fakeView{
		confirmEnabled: true,
		errors:         map[models.ListKind]string{},
		flags:          map[string]bool{},
	}
}

func (v *fakeView) ShowConfirm(prompt string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmVisible = true
	v.prompt = prompt
}

func (v *fakeView) HideConfirm() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmVisible = false
}

func (v *fakeView) SetConfirmEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.confirmEnabled = enabled
	v.enabledHistory = append(v.enabledHistory, enabled)
}

func (v *fakeView) ShowLoading(kind models.ListKind) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = append(v.loading, kind)
}

func (v *fakeView) ShowTable(t render.Table) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tables = append(v.tables, t)
}

func (v *fakeView) ShowListError(kind models.ListKind, message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors[kind] = message
}

func (v *fakeView) SetStats(stats models.Stats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stats = stats
	v.statsSet++
}

func (v *fakeView) FlagEnabled(name string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.flags[name]
}

func (v *fakeView) SetFlag(name string, enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flags[name] = enabled
}

func (v *fakeView) isConfirmEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.confirmEnabled
}

type notification struct {
	Level   Level
	Message string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *fakeNotifier) Notify(level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{level, message})
}

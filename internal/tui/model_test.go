package tui

import (
	"context"
	"testing"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dispatched struct{ tag, id string }

type fakeController struct {
	started    int
	loaded     []models.ListKind
	stats      int
	dispatched []dispatched
	cancels    int
	confirms   int
	toggled    []string
}

func (f *fakeController) Start(context.Context)                         { f.started++ }
func (f *fakeController) LoadList(_ context.Context, k models.ListKind) { f.loaded = append(f.loaded, k) }
func (f *fakeController) LoadStats(context.Context)                     { f.stats++ }
func (f *fakeController) Cancel()                                       { f.cancels++ }
func (f *fakeController) Flags() []string                               { return []string{models.TeacherOnlyComment} }

func (f *fakeController) Dispatch(tag, id string) bool {
	f.dispatched = append(f.dispatched, dispatched{tag, id})
	return true
}

func (f *fakeController) Confirm(context.Context) error {
	f.confirms++
	return nil
}

func (f *fakeController) Toggle(_ context.Context, flag string) bool {
	f.toggled = append(f.toggled, flag)
	return true
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// exec runs a command synchronously, as the program would in a goroutine.
func exec(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
}

func usersTable() render.Table {
	r := render.NewRenderer(render.DefaultMaxDescription)
	return r.Users([]models.User{
		{ID: "u1", Name: "alice", Email: "alice@example.com", IsAdmin: true},
		{ID: "u2", Name: "bob", Email: "bob@example.com"},
	})
}

func TestModel_TableMessage(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	assert.Contains(t, m.View(), "Loading users")

	m, _ = update(t, m, tableMsg{usersTable()})

	view := m.View()
	assert.Contains(t, view, "User management")
	assert.Contains(t, view, "Username")
	assert.Contains(t, view, "alice")
	assert.Contains(t, view, "bob@example.com")
	assert.Len(t, m.rows, 2)
}

func TestModel_IgnoresOtherLists(t *testing.T) {
	m := New(context.Background(), &fakeController{})
	r := render.NewRenderer(0)

	m, _ = update(t, m, tableMsg{r.Groups(nil)})
	assert.True(t, m.loading)
	assert.Empty(t, m.rows)
}

func TestModel_Placeholder(t *testing.T) {
	m := New(context.Background(), &fakeController{})
	r := render.NewRenderer(0)

	m, _ = update(t, m, tableMsg{r.Users(nil)})
	assert.Contains(t, m.View(), "No users")
}

func TestModel_ListError(t *testing.T) {
	m := New(context.Background(), &fakeController{})

	m, _ = update(t, m, listErrorMsg{models.ListUsers, "Load failed: request failed 502"})
	assert.Contains(t, m.View(), "Load failed: request failed 502")
	assert.False(t, m.loading)
}

func TestModel_SwitchList(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	m, _ = update(t, m, tableMsg{usersTable()})

	m, cmd := update(t, m, runes("3"))
	exec(t, cmd)

	assert.Equal(t, models.ListProjects, m.active)
	assert.Equal(t, []models.ListKind{models.ListProjects}, ctrl.loaded)
	assert.Empty(t, m.rows)
}

func TestModel_DeleteSelectedRow(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	m, _ = update(t, m, tableMsg{usersTable()})

	m, cmd := update(t, m, runes("d"))
	exec(t, cmd)
	assert.Equal(t, []dispatched{{"del_user", "u1"}}, ctrl.dispatched)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = update(t, m, runes("p"))
	exec(t, cmd)
	assert.Equal(t, dispatched{"reset_password", "u2"}, ctrl.dispatched[1])
}

func TestModel_ResetPasswordOnlyForUsers(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	m, _ = update(t, m, runes("2"))

	r := render.NewRenderer(0)
	m, _ = update(t, m, tableMsg{r.Groups([]models.Group{{ID: "7", Name: "staff"}})})

	_, cmd := update(t, m, runes("p"))
	assert.Nil(t, cmd)

	_, cmd = update(t, m, runes("d"))
	exec(t, cmd)
	assert.Equal(t, []dispatched{{"del_group", "7"}}, ctrl.dispatched)
}

func TestModel_NoDispatchWhileLoading(t *testing.T) {
	m := New(context.Background(), &fakeController{})

	_, cmd := update(t, m, runes("d"))
	assert.Nil(t, cmd)
}

func TestModel_ConfirmModal(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	m, _ = update(t, m, tableMsg{usersTable()})

	m, _ = update(t, m, confirmMsg{"Delete this user? This cannot be undone!"})
	assert.Contains(t, m.View(), "Delete this user?")
	assert.Contains(t, m.View(), "[y] confirm")

	// List keys are swallowed while the prompt is open.
	_, cmd := update(t, m, runes("2"))
	assert.Nil(t, cmd)

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	exec(t, cmd)
	assert.Equal(t, 1, ctrl.confirms)

	m, _ = update(t, m, confirmEnabledMsg{false})
	assert.Contains(t, m.View(), "working...")
	_, cmd = update(t, m, runes("y"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, ctrl.confirms)

	m, _ = update(t, m, confirmEnabledMsg{true})
	_, cmd = update(t, m, runes("n"))
	exec(t, cmd)
	assert.Equal(t, 1, ctrl.cancels)

	m, _ = update(t, m, hideConfirmMsg{})
	assert.NotContains(t, m.View(), "Delete this user?")
}

func TestModel_Toggle(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)
	assert.Contains(t, m.View(), "teacher_only_comment: ")

	_, cmd := update(t, m, runes("t"))
	exec(t, cmd)
	assert.Equal(t, []string{models.TeacherOnlyComment}, ctrl.toggled)

	m, _ = update(t, m, flagMsg{models.TeacherOnlyComment, true})
	assert.True(t, m.flags[models.TeacherOnlyComment])
}

func TestModel_Stats(t *testing.T) {
	m := New(context.Background(), &fakeController{})
	assert.Contains(t, m.View(), "Users - | Groups - | Projects -")

	m, _ = update(t, m, statsMsg{models.Stats{Users: 3, Groups: 2, Projects: 5}})
	assert.Contains(t, m.View(), "Users 3 | Groups 2 | Projects 5")
}

func TestModel_NoticeExpires(t *testing.T) {
	m := New(context.Background(), &fakeController{})

	m, cmd := update(t, m, noticeMsg{dashboard.LevelSuccess, "Operation succeeded"})
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Operation succeeded")

	m, _ = update(t, m, noticeMsg{dashboard.LevelDanger, "Operation failed: boom"})

	// The first notice's timer must not clear the second.
	m, _ = update(t, m, clearNoticeMsg{seq: 1})
	assert.Contains(t, m.View(), "Operation failed: boom")

	m, _ = update(t, m, clearNoticeMsg{seq: 2})
	assert.NotContains(t, m.View(), "Operation failed")
}

func TestModel_Refresh(t *testing.T) {
	ctrl := &fakeController{}
	m := New(context.Background(), ctrl)

	_, cmd := update(t, m, runes("r"))
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		exec(t, c)
	}
	assert.Equal(t, []models.ListKind{models.ListUsers}, ctrl.loaded)
	assert.Equal(t, 1, ctrl.stats)
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), &fakeController{})

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestBridge(t *testing.T) {
	b := NewBridge()

	// Calls before Attach are dropped.
	b.ShowConfirm("ignored")

	var got []tea.Msg
	b.Attach(func(msg tea.Msg) { got = append(got, msg) })

	b.ShowConfirm("sure?")
	b.SetConfirmEnabled(false)
	b.HideConfirm()
	b.ShowLoading(models.ListGroups)
	b.ShowListError(models.ListGroups, "Load failed: x")
	b.SetStats(models.Stats{Users: 1})
	b.Notify(dashboard.LevelDanger, "nope")
	b.SetFlag("f", true)

	assert.Equal(t, []tea.Msg{
		confirmMsg{"sure?"},
		confirmEnabledMsg{false},
		hideConfirmMsg{},
		loadingMsg{models.ListGroups},
		listErrorMsg{models.ListGroups, "Load failed: x"},
		statsMsg{models.Stats{Users: 1}},
		noticeMsg{dashboard.LevelDanger, "nope"},
		flagMsg{"f", true},
	}, got)

	assert.True(t, b.FlagEnabled("f"))
	assert.False(t, b.FlagEnabled("g"))
}

func TestBridge_SatisfiesController(t *testing.T) {
	b := NewBridge()
	var _ dashboard.View = b
	var _ dashboard.Notifier = b
	var _ Controller = dashboard.NewController(nil, b, b, dashboard.Options{})
}

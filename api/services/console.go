package services

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var listLabels = map[models.ListKind]string{
	models.ListUsers:    "Users",
	models.ListGroups:   "Groups",
	models.ListProjects: "Projects",
}

type tab struct {
	Kind   models.ListKind
	Label  string
	Active bool
}

type flagState struct {
	Name    string
	Enabled bool
}

type pageData struct {
	BasePath    string
	Stats       models.Stats
	StatsLoaded bool
	Notices     []Notice

	// dashboard
	List      models.ListKind
	Tabs      []tab
	Flags     []flagState
	Table     template.HTML
	ListError string

	// confirm
	Prompt         string
	Action         string
	ID             string
	ConfirmEnabled bool
}

// DashboardService renders the list page. The list, the stats counters and
// the settings flags load concurrently.
func (s *ConsoleService) DashboardService(w http.ResponseWriter, r *http.Request) {
	view := NewPageView()
	ctrl := s.controller(r, view)

	if flash := r.URL.Query().Get("flash"); flash != "" {
		level := dashboard.LevelSuccess
		if r.URL.Query().Get("level") == dashboard.LevelDanger.String() {
			level = dashboard.LevelDanger
		}
		view.Notify(level, flash)
	}

	kind := parseList(r.URL.Query().Get("list"))
	var g errgroup.Group
	g.Go(func() error {
		ctrl.Start(r.Context())
		return nil
	})
	g.Go(func() error {
		ctrl.LoadList(r.Context(), kind)
		return nil
	})
	_ = g.Wait()

	s.writeDashboard(w, r, ctrl, view, http.StatusOK)
}

// ConfirmService asks for confirmation of the action named in the query.
// Unrecognised actions go back to the dashboard.
func (s *ConsoleService) ConfirmService(w http.ResponseWriter, r *http.Request) {
	view := NewPageView()
	ctrl := s.controller(r, view)

	if !ctrl.Dispatch(r.URL.Query().Get("action"), r.URL.Query().Get("id")) {
		http.Redirect(w, r, s.BasePath+"/", http.StatusSeeOther)
		return
	}
	ctrl.LoadStats(r.Context())

	s.writeConfirm(w, r, ctrl, view, http.StatusOK)
}

// SubmitActionService carries out a confirmed action. On success the
// refreshed list is shown; on failure the confirmation is shown again with
// the error so the action can be retried.
func (s *ConsoleService) SubmitActionService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.Error().Err(err).Msg("Invalid form payload")
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	view := NewPageView()
	ctrl := s.controller(r, view)

	if !ctrl.Dispatch(r.PostForm.Get("action"), r.PostForm.Get("id")) {
		http.Redirect(w, r, s.BasePath+"/", http.StatusSeeOther)
		return
	}

	if err := ctrl.Confirm(r.Context()); err != nil {
		if errors.Is(err, dashboard.ErrNothingPending) {
			http.Redirect(w, r, s.BasePath+"/", http.StatusSeeOther)
			return
		}
		s.writeConfirm(w, r, ctrl, view, http.StatusOK)
		return
	}

	ctrl.LoadSettings(r.Context())
	s.writeDashboard(w, r, ctrl, view, http.StatusOK)
}

// ToggleSettingService flips a settings flag and redirects back to the list
// with the outcome as a flash message.
func (s *ConsoleService) ToggleSettingService(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	if err := r.ParseForm(); err != nil {
		logger.Error().Err(err).Msg("Invalid form payload")
		http.Error(w, "Invalid form payload", http.StatusBadRequest)
		return
	}

	view := NewPageView()
	ctrl := s.controller(r, view)

	flag := mux.Vars(r)["flag"]
	if !ctrl.Manages(flag) {
		http.Error(w, "unknown setting", http.StatusNotFound)
		return
	}

	// The form carries the state the page was showing.
	current, _ := strconv.ParseBool(r.PostForm.Get("current"))
	view.SetFlag(flag, current)
	ctrl.Toggle(r.Context(), flag)

	q := url.Values{}
	q.Set("list", string(parseList(r.PostForm.Get("list"))))
	if notice, ok := view.lastNotice(); ok {
		q.Set("flash", notice.Message)
		q.Set("level", notice.Level)
	}
	http.Redirect(w, r, s.BasePath+"/?"+q.Encode(), http.StatusSeeOther)
}

// StatsService returns the record counts as JSON.
func (s *ConsoleService) StatsService(w http.ResponseWriter, r *http.Request) {
	stats, err := dashboard.CountRecords(r.Context(), s.Fetcher)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to count records")
		HandleErrResponse(w, http.StatusBadGateway, err)
		return
	}
	WriteResponse(w, http.StatusOK, stats)
}

// maxAuditLimit caps the ?limit= of a single audit request.
const maxAuditLimit = 500

// AuditService returns the most recent audit events as JSON. A missing or
// non-positive limit leaves the default to the store.
func (s *ConsoleService) AuditService(w http.ResponseWriter, r *http.Request) {
	if s.Audit == nil {
		HandleErrResponse(w, http.StatusNotFound, errors.New("audit trail is not stored"))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	limit = min(limit, maxAuditLimit)
	events, err := s.Audit.ListRecent(r.Context(), limit)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to list audit events")
		HandleErrResponse(w, http.StatusInternalServerError, err)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}
	WriteResponse(w, http.StatusOK, events)
}

func (s *ConsoleService) writeDashboard(w http.ResponseWriter, r *http.Request, ctrl *dashboard.Controller, view *PageView, status int) {
	data := s.basePage(view)
	data.List = view.List
	data.ListError = view.ListError

	for _, kind := range models.ListKinds() {
		data.Tabs = append(data.Tabs, tab{Kind: kind, Label: listLabels[kind], Active: kind == view.List})
	}
	for _, name := range ctrl.Flags() {
		data.Flags = append(data.Flags, flagState{Name: name, Enabled: view.Flags[name]})
	}

	if view.Table != nil {
		var buf bytes.Buffer
		err := render.HTML(&buf, *view.Table, render.HTMLOptions{ConfirmPath: s.BasePath + "/confirm"})
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to render table")
			http.Error(w, "Failed to render table", http.StatusInternalServerError)
			return
		}
		data.Table = template.HTML(buf.String())
	}

	s.execute(w, r, "dashboard", data, status)
}

func (s *ConsoleService) writeConfirm(w http.ResponseWriter, r *http.Request, ctrl *dashboard.Controller, view *PageView, status int) {
	data := s.basePage(view)
	data.Prompt = view.Prompt
	data.ConfirmEnabled = view.ConfirmEnabled

	if pending, ok := ctrl.Pending(); ok {
		data.Action = pending.Kind.Tag()
		data.ID = pending.ID
		data.List = pending.Refresh
	}

	s.execute(w, r, "confirm", data, status)
}

func (s *ConsoleService) basePage(view *PageView) pageData {
	return pageData{
		BasePath:    s.BasePath,
		Stats:       view.Stats,
		StatsLoaded: view.StatsLoaded,
		Notices:     view.Notices,
	}
}

func (s *ConsoleService) execute(w http.ResponseWriter, r *http.Request, name string, data pageData, status int) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func parseList(s string) models.ListKind {
	for _, kind := range models.ListKinds() {
		if string(kind) == s {
			return kind
		}
	}
	return models.ListUsers
}

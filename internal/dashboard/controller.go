// Package dashboard holds the admin console controller shared by every
// front-end: the confirmation workflow, the settings toggle, list loading and
// the stats counters.
package dashboard

import (
	"context"
	"sync"

	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/internal/appconfig"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the backend the controller reads from and mutates.
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchGroups(ctx context.Context) ([]models.Group, error)
	FetchProjects(ctx context.Context) ([]models.Project, error)
	SubmitAction(ctx context.Context, endpoint string) (*models.ActionResult, error)
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSetting(ctx context.Context, name string, value bool) error
}

// View is whatever displays the dashboard. Implementations must be safe to
// call from the goroutines the controller starts for concurrent refreshes.
type View interface {
	ShowConfirm(prompt string)
	HideConfirm()
	SetConfirmEnabled(enabled bool)

	ShowLoading(kind models.ListKind)
	ShowTable(t render.Table)
	ShowListError(kind models.ListKind, message string)

	SetStats(stats models.Stats)

	// FlagEnabled returns the displayed state of a settings flag.
	FlagEnabled(name string) bool
	SetFlag(name string, enabled bool)
}

// Level is the severity of a notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelDanger
)

func (l Level) String() string {
	if l == LevelDanger {
		return "danger"
	}
	return "success"
}

// Notifier shows transient messages.
type Notifier interface {
	Notify(level Level, message string)
}

// Recorder keeps an audit trail of confirmed actions.
type Recorder interface {
	Record(ctx context.Context, event models.AuditEvent) error
}

// Options are the optional collaborators of a Controller.
type Options struct {
	Dispatcher *actions.Dispatcher
	Renderer   *render.Renderer
	Recorder   Recorder
	// Flags are the settings flags shown by the view.
	Flags []string
	// Actor names who is driving the controller in audit events.
	Actor string
}

// Controller coordinates the fetcher and the view. A single controller is
// reused for the lifetime of a front-end.
type Controller struct {
	fetcher    Fetcher
	view       View
	notifier   Notifier
	recorder   Recorder
	dispatcher *actions.Dispatcher
	renderer   *render.Renderer
	flags      []string
	actor      string
	log        zerolog.Logger

	mu      sync.Mutex
	state   State
	pending *actions.Resolution
}

// NewController wires a controller. Zero Options fall back to the default
// endpoints, renderer and flags; the recorder may be nil.
func NewController(fetcher Fetcher, view View, notifier Notifier, opts Options) *Controller {
	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = actions.NewDispatcher(appconfig.Default().Endpoints)
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = render.NewRenderer(render.DefaultMaxDescription)
	}
	flags := opts.Flags
	if flags == nil {
		flags = []string{models.TeacherOnlyComment}
	}

	return &Controller{
		fetcher:    fetcher,
		view:       view,
		notifier:   notifier,
		recorder:   opts.Recorder,
		dispatcher: dispatcher,
		renderer:   renderer,
		flags:      flags,
		actor:      opts.Actor,
		log:        log.With().Str("component", "dashboard").Logger(),
	}
}

// Flags returns the settings flags this controller manages.
func (c *Controller) Flags() []string {
	return c.flags
}

// Start loads the stats counters and the settings flags concurrently. Both
// loaders only log their failures, so Start never fails.
func (c *Controller) Start(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		c.LoadStats(ctx)
		return nil
	})
	g.Go(func() error {
		c.LoadSettings(ctx)
		return nil
	})
	_ = g.Wait()
}

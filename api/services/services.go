package services

import (
	"context"
	"net/http"

	"github.com/EO-DataHub/eodhp-admin-console/api/middleware"
	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/internal/dashboard"
	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

// AuditLister reads back recorded admin actions.
type AuditLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

// ConsoleService contains all shared dependencies for the console handlers.
type ConsoleService struct {
	Fetcher    dashboard.Fetcher
	Dispatcher *actions.Dispatcher
	Renderer   *render.Renderer
	Recorder   dashboard.Recorder
	Audit      AuditLister
	Flags      []string
	BasePath   string
}

// controller builds a controller bound to a single page render. The actor is
// taken from the request's claims when present.
func (s *ConsoleService) controller(r *http.Request, view *PageView) *dashboard.Controller {
	var actor string
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		actor = claims.Actor()
	}

	return dashboard.NewController(s.Fetcher, view, view, dashboard.Options{
		Dispatcher: s.Dispatcher,
		Renderer:   s.Renderer,
		Recorder:   s.Recorder,
		Flags:      s.Flags,
		Actor:      actor,
	})
}

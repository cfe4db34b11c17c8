package dashboard

import (
	"context"
	"fmt"

	"github.com/EO-DataHub/eodhp-admin-console/internal/render"
	"github.com/EO-DataHub/eodhp-admin-console/models"
)

const msgLoadFailed = "Load failed: "

// FetchTable fetches one list and renders it.
func FetchTable(ctx context.Context, f Fetcher, r *render.Renderer, kind models.ListKind) (render.Table, error) {
	switch kind {
	case models.ListUsers:
		users, err := f.FetchUsers(ctx)
		if err != nil {
			return render.Table{}, err
		}
		return r.Users(users), nil
	case models.ListGroups:
		groups, err := f.FetchGroups(ctx)
		if err != nil {
			return render.Table{}, err
		}
		return r.Groups(groups), nil
	case models.ListProjects:
		projects, err := f.FetchProjects(ctx)
		if err != nil {
			return render.Table{}, err
		}
		return r.Projects(projects), nil
	}
	return render.Table{}, fmt.Errorf("unknown list %q", kind)
}

// LoadList shows a loading indicator, then either the rendered list or an
// error panel in its place.
func (c *Controller) LoadList(ctx context.Context, kind models.ListKind) {
	c.view.ShowLoading(kind)

	t, err := FetchTable(ctx, c.fetcher, c.renderer, kind)
	if err != nil {
		c.log.Error().Err(err).Str("list", string(kind)).Msg("failed to load list")
		c.view.ShowListError(kind, msgLoadFailed+err.Error())
		return
	}
	c.view.ShowTable(t)
}

package dashboard

import (
	"context"

	"github.com/EO-DataHub/eodhp-admin-console/models"
	"golang.org/x/sync/errgroup"
)

// CountRecords fetches the three lists concurrently and returns their sizes.
func CountRecords(ctx context.Context, f Fetcher) (models.Stats, error) {
	var stats models.Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := f.FetchUsers(ctx)
		stats.Users = len(users)
		return err
	})
	g.Go(func() error {
		groups, err := f.FetchGroups(ctx)
		stats.Groups = len(groups)
		return err
	})
	g.Go(func() error {
		projects, err := f.FetchProjects(ctx)
		stats.Projects = len(projects)
		return err
	})

	if err := g.Wait(); err != nil {
		return models.Stats{}, err
	}
	return stats, nil
}

// LoadStats updates the counters. A failed fetch is logged and the counters
// keep their previous values.
func (c *Controller) LoadStats(ctx context.Context) {
	stats, err := CountRecords(ctx, c.fetcher)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load stats")
		return
	}
	c.view.SetStats(stats)
}

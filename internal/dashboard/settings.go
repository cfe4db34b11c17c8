package dashboard

import (
	"context"
	"slices"
)

const (
	msgSettingsUpdated = "Settings updated"
	msgSettingsFailed  = "Failed to update settings: "
)

// Toggle flips a settings flag. The view is updated first and reverted if
// the backend rejects the change. It returns the state the view ends up in.
func (c *Controller) Toggle(ctx context.Context, flag string) bool {
	current := c.view.FlagEnabled(flag)
	target := !current

	c.view.SetFlag(flag, target)

	if err := c.fetcher.UpdateSetting(ctx, flag, target); err != nil {
		c.log.Error().Err(err).Str("flag", flag).Bool("value", target).Msg("failed to update setting")
		c.view.SetFlag(flag, current)
		c.notifier.Notify(LevelDanger, msgSettingsFailed+err.Error())
		return current
	}

	c.log.Info().Str("flag", flag).Bool("value", target).Msg("setting updated")
	c.notifier.Notify(LevelSuccess, msgSettingsUpdated)
	return target
}

// LoadSettings shows the backend's values of the managed flags. Failures are
// logged and leave the view as it was.
func (c *Controller) LoadSettings(ctx context.Context) {
	settings, err := c.fetcher.GetSettings(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load settings")
		return
	}

	for _, flag := range c.flags {
		c.view.SetFlag(flag, settings.Enabled(flag))
	}
}

// Manages reports whether flag is one of the controller's settings flags.
func (c *Controller) Manages(flag string) bool {
	return slices.Contains(c.flags, flag)
}

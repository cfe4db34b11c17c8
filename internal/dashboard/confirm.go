package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/EO-DataHub/eodhp-admin-console/internal/actions"
	"github.com/EO-DataHub/eodhp-admin-console/models"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgActionSucceeded = "Operation succeeded"
	msgActionFailed    = "Operation failed: "
)

// ErrNothingPending is returned by Confirm when no action is awaiting
// confirmation. The controller state is left untouched.
var ErrNothingPending = errors.New("no action awaiting confirmation")

// State is a step of the confirmation workflow.
type State int

const (
	Idle State = iota
	AwaitingConfirmation
	Executing
)

func (s State) String() string {
	switch s {
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	case Executing:
		return "executing"
	}
	return "idle"
}

// State returns the current workflow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pending returns the action awaiting confirmation, if any.
func (c *Controller) Pending() (actions.Resolution, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return actions.Resolution{}, false
	}
	return *c.pending, true
}

// Dispatch resolves an action tag and record id and asks for confirmation.
// Unknown or incomplete pairs are ignored, as are dispatches while an action
// is executing. A dispatch while awaiting confirmation replaces the pending
// action.
func (c *Controller) Dispatch(tag, id string) bool {
	res, ok := c.dispatcher.Resolve(tag, id)
	if !ok {
		c.log.Debug().Str("action", tag).Str("id", id).Msg("ignoring unrecognised action")
		return false
	}

	c.mu.Lock()
	if c.state == Executing {
		c.mu.Unlock()
		c.log.Debug().Str("action", tag).Msg("ignoring dispatch while executing")
		return false
	}
	c.state = AwaitingConfirmation
	c.pending = &res
	c.mu.Unlock()

	c.view.ShowConfirm(res.Prompt)
	return true
}

// Cancel discards the pending action and hides the prompt.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state != AwaitingConfirmation {
		c.mu.Unlock()
		return
	}
	c.state = Idle
	c.pending = nil
	c.mu.Unlock()

	c.view.HideConfirm()
}

// Confirm carries out the pending action. The confirm control stays disabled
// until the action and the follow-up refreshes have settled.
//
// On failure the prompt stays open with the action still pending, so the user
// can retry or cancel. The error is returned after it has been shown.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.state != AwaitingConfirmation || c.pending == nil {
		c.mu.Unlock()
		return ErrNothingPending
	}
	res := *c.pending
	c.state = Executing
	c.mu.Unlock()

	c.view.SetConfirmEnabled(false)

	logger := c.log.With().Str("action", res.Kind.Tag()).Str("id", res.ID).Str("endpoint", res.Endpoint).Logger()
	_, err := c.fetcher.SubmitAction(ctx, res.Endpoint)
	c.record(ctx, res, err)

	if err != nil {
		logger.Error().Err(err).Msg("action failed")
		c.notifier.Notify(LevelDanger, msgActionFailed+err.Error())

		c.mu.Lock()
		c.state = AwaitingConfirmation
		c.mu.Unlock()
		c.view.SetConfirmEnabled(true)
		return err
	}

	logger.Info().Msg("action completed")
	c.view.HideConfirm()
	c.mu.Lock()
	c.pending = nil
	c.mu.Unlock()
	c.notifier.Notify(LevelSuccess, msgActionSucceeded)

	c.refresh(ctx, res.Refresh)

	c.mu.Lock()
	c.state = Idle
	c.mu.Unlock()
	c.view.SetConfirmEnabled(true)
	return nil
}

// refresh reloads the affected list and the stats counters concurrently and
// waits for both.
func (c *Controller) refresh(ctx context.Context, kind models.ListKind) {
	var g errgroup.Group
	g.Go(func() error {
		c.LoadList(ctx, kind)
		return nil
	})
	g.Go(func() error {
		c.LoadStats(ctx)
		return nil
	})
	_ = g.Wait()
}

func (c *Controller) record(ctx context.Context, res actions.Resolution, actionErr error) {
	if c.recorder == nil {
		return
	}

	event := models.AuditEvent{
		ID:        uuid.New(),
		Action:    res.Kind.Tag(),
		RecordID:  res.ID,
		Endpoint:  res.Endpoint,
		Outcome:   models.OutcomeSuccess,
		Actor:     c.actor,
		CreatedAt: time.Now().UTC(),
	}
	if actionErr != nil {
		event.Outcome = models.OutcomeFailure
		event.Message = actionErr.Error()
	}

	if err := c.recorder.Record(ctx, event); err != nil {
		c.log.Warn().Err(err).Str("event_id", event.ID.String()).Msg("failed to record audit event")
	}
}

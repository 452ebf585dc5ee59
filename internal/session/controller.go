// Package session holds the timer state machine and its persistence.
package session

import (
	"time"

	"github.com/piepero/rusty-pom/internal/journal"
	"github.com/piepero/rusty-pom/pkg/errclass"
	"github.com/piepero/rusty-pom/pkg/logging"
	"github.com/piepero/rusty-pom/pkg/model"
)

// Appender receives one journal entry per decision. Satisfied by
// journal.FileAppender; nil disables journaling.
type Appender interface {
	Append(entry journal.Entry) error
}

// Input is everything one invocation feeds into the state machine. Now is
// injected so tests can place the clock exactly on window boundaries.
type Input struct {
	Now     time.Time
	Restart bool

	// DurationMinutes is only meaningful when DurationSet is true.
	DurationMinutes int
	DurationSet     bool

	// Note is recorded in the journal, never in the timer record.
	Note string
}

// Controller decides, per invocation, whether the persisted session is
// resumed or replaced.
type Controller struct {
	store    Store
	appender Appender
	logger   *logging.Logger
}

// NewController creates a controller. appender may be nil.
func NewController(store Store, appender Appender) *Controller {
	return &Controller{
		store:    store,
		appender: appender,
		logger:   logging.Global().WithFields(map[string]any{"component": "session"}),
	}
}

// Apply runs the transition rules (first match wins):
//
//  1. restart flag set        -> new record, status started
//  2. no valid prior record   -> new record, status started
//  3. prior record expired    -> new record, status expired_then_started
//  4. prior record active     -> record kept unchanged, status resumed
//
// An explicit duration is only consulted when a new record is created; while
// a session is active it is advisory and ignored.
//
// A non-positive supplied duration aborts with ErrDurationInvalid before any
// state is touched. A failed save still returns the decided status, with
// Persisted false and an error wrapping ErrStateWrite.
func (c *Controller) Apply(in Input) (*model.Status, error) {
	if in.DurationSet && in.DurationMinutes <= 0 {
		return nil, errclass.ErrDurationInvalid.WithMessagef(
			"duration must be a positive number of minutes, got %d", in.DurationMinutes)
	}

	requested := model.DefaultDurationMinutes
	if in.DurationSet {
		requested = in.DurationMinutes
	}
	requestedSeconds := int64(requested) * 60

	prior, err := c.store.Load()
	if err != nil {
		// Load contract coerces failures to absence; kept for fakes that
		// surface errors anyway.
		c.logger.Debug("load failed, treating as absent", map[string]any{"error": err.Error()})
		prior = nil
	}

	status := c.decide(in, prior, requestedSeconds)

	if err := c.store.Save(&status.Record); err != nil {
		status.Persisted = false
		c.journal(in, status)
		return status, errclass.ErrStateWrite.WithMessagef("save session: %v", err)
	}
	status.Persisted = true

	c.journal(in, status)
	return status, nil
}

func (c *Controller) decide(in Input, prior *model.TimerRecord, requestedSeconds int64) *model.Status {
	switch {
	case in.Restart, prior == nil:
		rec := model.NewTimerRecord(in.Now, requestedSeconds)
		return &model.Status{
			Kind:             model.StatusStarted,
			Record:           *rec,
			RemainingSeconds: requestedSeconds,
		}

	case prior.Expired(in.Now):
		rec := model.NewTimerRecord(in.Now, requestedSeconds)
		return &model.Status{
			Kind:             model.StatusExpiredThenStarted,
			Record:           *rec,
			RemainingSeconds: requestedSeconds,
		}

	default:
		return &model.Status{
			Kind:             model.StatusResumed,
			Record:           *prior,
			RemainingSeconds: int64(prior.Remaining(in.Now) / time.Second),
		}
	}
}

func (c *Controller) journal(in Input, status *model.Status) {
	if c.appender == nil {
		return
	}
	note := in.Note
	if status.Kind == model.StatusResumed {
		// Notes label new sessions; a resume keeps the one it was started with.
		note = ""
	}
	if err := c.appender.Append(journal.ForStatus(in.Now, status, note)); err != nil {
		c.logger.Warn("journal append failed", map[string]any{"error": err.Error()})
	}
}

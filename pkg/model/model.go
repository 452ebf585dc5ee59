// Package model defines the persisted timer record and controller status types.
package model

import "time"

// DefaultDurationMinutes is used when no duration is supplied for a new session.
const DefaultDurationMinutes = 25

// TimerRecord is the single persisted session. StartedAt is stored in UTC
// (RFC3339 via the standard time.Time JSON encoding); DurationSeconds is
// fixed for the lifetime of the session.
type TimerRecord struct {
	StartedAt       time.Time `json:"started_at"`
	DurationSeconds int64     `json:"duration_seconds"`
}

// NewTimerRecord creates a record starting at now for the given duration.
func NewTimerRecord(now time.Time, durationSeconds int64) *TimerRecord {
	return &TimerRecord{
		StartedAt:       now.UTC(),
		DurationSeconds: durationSeconds,
	}
}

// Valid reports whether the record is well-formed. Records failing this
// check are treated as absent by the store.
func (r *TimerRecord) Valid() bool {
	return r != nil && !r.StartedAt.IsZero() && r.DurationSeconds > 0
}

// EndsAt returns the instant the session expires.
func (r *TimerRecord) EndsAt() time.Time {
	return r.StartedAt.Add(time.Duration(r.DurationSeconds) * time.Second)
}

// Remaining returns the time left at now, negative once expired.
func (r *TimerRecord) Remaining(now time.Time) time.Duration {
	return r.EndsAt().Sub(now)
}

// Expired reports whether the session has run its full duration at now.
// The boundary instant counts as expired.
func (r *TimerRecord) Expired(now time.Time) bool {
	return !now.Before(r.EndsAt())
}

// StatusKind enumerates the controller's per-invocation outcomes.
type StatusKind string

const (
	StatusStarted            StatusKind = "started"
	StatusResumed            StatusKind = "resumed"
	StatusExpiredThenStarted StatusKind = "expired_then_started"
)

// Status is what the controller reports to the display layer after one
// invocation. Record is the session now in effect.
type Status struct {
	Kind             StatusKind  `json:"kind"`
	Record           TimerRecord `json:"record"`
	RemainingSeconds int64       `json:"remaining_seconds"`
	Persisted        bool        `json:"persisted"`
}

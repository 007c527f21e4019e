package timer

import (
	"context"
	"time"

	"timedesk/internal/domain"
)

// EventSink receives timer lifecycle events after they are committed.
type EventSink interface {
	TimerStarted(userID int64, entry *TimeEntry)
	TimerStopped(userID int64, entry *TimeEntry)
}

// Options tune a single toggle call.
type Options struct {
	// Source is a free-form tag recorded as start_type or end_type,
	// e.g. "API" or "manual". Empty means DefaultSource.
	Source string
	// At overrides "now" to backfill or correct an entry.
	At *time.Time
}

// Service is the toggle engine: one call either opens a new entry or
// closes the currently open one, with at most one open entry per user.
type Service struct {
	repo Repository
	sink EventSink
	now  func() time.Time
}

func NewService(repo Repository, sink EventSink) *Service {
	return &Service{repo: repo, sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// Toggle opens a new entry when the principal has none open, otherwise
// closes the open one. Exactly one store write per call; either the
// whole transaction commits or nothing does.
func (s *Service) Toggle(ctx context.Context, principal domain.Principal, opts Options) (*TimeEntry, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}

	source := opts.Source
	if source == "" {
		source = DefaultSource
	}
	at := s.now()
	if opts.At != nil {
		at = opts.At.UTC()
	}

	var entry *TimeEntry
	var started bool

	err := s.repo.InTx(ctx, func(r Repository) error {
		open, err := r.FindOpen(ctx, principal.ID)
		if err != nil {
			return err
		}

		if open == nil {
			e := &TimeEntry{
				UserID:    principal.ID,
				StartAt:   at,
				StartType: source,
			}
			if err := r.Create(ctx, e); err != nil {
				return err
			}
			entry, started = e, true
			return nil
		}

		if at.Before(open.StartAt) {
			return ErrInvalidTimeRange
		}
		seconds := int64(at.Sub(open.StartAt) / time.Second)

		closed, err := r.CloseOpen(ctx, open.ID, at, source, seconds)
		if err != nil {
			return err
		}
		if !closed {
			return ErrToggleConflict
		}

		open.EndAt = &at
		open.EndType = &source
		open.Seconds = seconds
		entry = open
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.sink != nil {
		if started {
			s.sink.TimerStarted(principal.ID, entry)
		} else {
			s.sink.TimerStopped(principal.ID, entry)
		}
	}

	return entry, nil
}

// Current returns the principal's open entry.
func (s *Service) Current(ctx context.Context, principal domain.Principal) (*TimeEntry, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	open, err := s.repo.FindOpen(ctx, principal.ID)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, ErrNoOpenEntry
	}
	return open, nil
}

// List returns the principal's entries, optionally bounded by start
// time. Zero bounds mean unbounded.
func (s *Service) List(ctx context.Context, principal domain.Principal, from, to time.Time) ([]*TimeEntry, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	return s.repo.ListForUser(ctx, principal.ID, from, to)
}

// SetNotes annotates one of the principal's own entries.
func (s *Service) SetNotes(ctx context.Context, principal domain.Principal, entryID int64, notes string) (*TimeEntry, error) {
	if !principal.Authenticated() {
		return nil, ErrUnauthenticated
	}
	updated, err := s.repo.UpdateNotes(ctx, principal.ID, entryID, notes)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrEntryNotFound
	}
	return s.repo.GetForUser(ctx, principal.ID, entryID)
}

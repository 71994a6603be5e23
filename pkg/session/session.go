package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/validation"
	"github.com/goliatone/go-formbuilder/pkg/wire"
)

// Store is the remote side of a session. *remote.Client implements it.
type Store interface {
	Fetch(ctx context.Context) ([]wire.Group, error)
	Push(ctx context.Context, groups []wire.Group) error
}

// Option customises a Session.
type Option func(*Session)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBuilderOptions forwards options to every state the session creates.
func WithBuilderOptions(opts ...builder.Option) Option {
	return func(s *Session) {
		s.builderOpts = append(s.builderOpts, opts...)
	}
}

// Status summarises the session for display.
type Status struct {
	Saving  bool
	LoadErr error
	SaveErr error
}

// Session owns the editing state for one form.
type Session struct {
	store       Store
	logger      *slog.Logger
	builderOpts []builder.Option

	mu      sync.Mutex
	state   builder.State
	saving  bool
	loadErr error
	saveErr error

	subMu sync.Mutex
	subs  map[*subscriber]struct{}
}

// New constructs a session with an empty state. Call Load to populate it.
func New(store Store, opts ...Option) *Session {
	s := &Session{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		subs:   make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.state = builder.New(s.builderOpts...)
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() builder.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status reports the save flag and the last load and save errors.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{Saving: s.saving, LoadErr: s.loadErr, SaveErr: s.saveErr}
}

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool {
	return s.Status().Saving
}

// LoadErr returns the error of the last load, if any.
func (s *Session) LoadErr() error {
	return s.Status().LoadErr
}

// SaveErr returns the error of the last save, if any.
func (s *Session) SaveErr() error {
	return s.Status().SaveErr
}

// Load fetches the remote schema and replaces the state with it. On failure
// the state is emptied and the error is kept for LoadErr.
func (s *Session) Load(ctx context.Context) error {
	if s.store == nil {
		return ErrNoStore
	}
	groups, err := s.store.Fetch(ctx)

	s.mu.Lock()
	if err != nil {
		s.state = builder.New(s.builderOpts...)
		s.loadErr = fmt.Errorf("session: load: %w", err)
		err = s.loadErr
	} else {
		s.state = builder.FromGroups(wire.FromWire(groups), s.builderOpts...)
		s.loadErr = nil
	}
	snap := s.state
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("form load failed", "error", err)
	} else {
		s.logger.Info("form loaded", "fieldsets", snap.Len())
	}
	s.publish(Event{Type: EventLoaded, State: snap, Err: err})
	return err
}

// Reload is Load under another name, used to retry after a failed load.
func (s *Session) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Apply runs a mutation against the current state and publishes the result.
func (s *Session) Apply(fn func(builder.State) builder.State) builder.State {
	next, _ := s.Update(func(state builder.State) (builder.State, error) {
		return fn(state), nil
	})
	return next
}

// Update runs a mutation that may fail. On error the state is left as it
// was and no event is published.
func (s *Session) Update(fn func(builder.State) (builder.State, error)) (builder.State, error) {
	s.mu.Lock()
	next, err := fn(s.state)
	if err != nil {
		current := s.state
		s.mu.Unlock()
		return current, err
	}
	s.state = next
	s.mu.Unlock()

	s.publish(Event{Type: EventChanged, State: next})
	return next, nil
}

// Save pushes the state as it is at call time. Only one save may be in
// flight; overlapping calls fail with ErrSaveInProgress. A failed push leaves
// the state untouched. Edits made while the push is pending are included in
// the next save only.
func (s *Session) Save(ctx context.Context, kind SaveKind) error {
	if s.store == nil {
		return ErrNoStore
	}
	if kind == "" {
		kind = SaveFinal
	}

	s.mu.Lock()
	if s.saving {
		s.mu.Unlock()
		return ErrSaveInProgress
	}
	s.saving = true
	snap := s.state
	s.mu.Unlock()

	s.publish(Event{Type: EventSaving, State: snap, Kind: kind})

	groups := snap.Groups()
	if result := validation.Lint(groups); !result.Valid {
		for _, issue := range result.Issues {
			s.logger.Warn("form lint", "code", issue.Code, "path", issue.Path, "message", issue.Message)
		}
	}

	err := s.store.Push(ctx, wire.ToWire(groups))
	if err != nil {
		err = fmt.Errorf("session: save %s: %w", kind, err)
	}

	s.mu.Lock()
	s.saving = false
	s.saveErr = err
	current := s.state
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("form save failed", "kind", kind, "error", err)
		s.publish(Event{Type: EventSaveFailed, State: current, Kind: kind, Err: err})
		return err
	}
	s.logger.Info("form saved", "kind", kind, "fieldsets", len(groups))
	s.publish(Event{Type: EventSaved, State: current, Kind: kind})
	return nil
}

// Subscribe returns a channel of session events and a function that ends the
// subscription and closes the channel. Slow subscribers miss events rather
// than block the session.
func (s *Session) Subscribe() (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}

	s.subMu.Lock()
	s.subs[sub] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, sub)
			s.subMu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (s *Session) publish(event Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for sub := range s.subs {
		select {
		case sub.ch <- event:
		default:
			s.logger.Debug("dropped session event", "type", event.Type)
		}
	}
}

package shortname

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/shortname/pkg/logger"
)

// Assigner keeps one binding's short names unique within a store.
type Assigner struct {
	store   Store
	binding Binding
	engine  *Engine
	locker  Locker
	logger  *slog.Logger
}

// Option configures an Assigner.
type Option func(*Assigner)

// WithLogger sets the logger for the Assigner.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assigner) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithLocker replaces the in-process locker, e.g. with a distributed one when
// several processes assign short names against the same store.
func WithLocker(l Locker) Option {
	return func(a *Assigner) {
		if l != nil {
			a.locker = l
		}
	}
}

// New creates an Assigner for binding over store.
// Panics when source and target name the same field.
func New(store Store, binding Binding, opts ...Option) *Assigner {
	binding = binding.withDefaults()
	if binding.Source == binding.Target {
		panic(fmt.Sprintf("shortname: source and target are both %q", binding.Source))
	}

	a := &Assigner{
		store:   store,
		binding: binding,
		engine:  NewEngine(binding.Rules),
		locker:  NewLocalLocker(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Binding returns the binding the Assigner was built with.
func (a *Assigner) Binding() Binding { return a.binding }

// Candidates returns the candidate list for e. Entities excluded by the
// binding predicate get a single candidate: their current short name when
// set, their full name otherwise.
func (a *Assigner) Candidates(e Entity) []string {
	if !a.binding.Only(e) {
		if existing := e.Get(a.binding.Target); strings.TrimSpace(existing) != "" {
			return []string{existing}
		}
		return []string{e.Get(a.binding.Source)}
	}
	return a.engine.Candidates(e.Get(a.binding.Source))
}

// ShouldAssign reports whether a save of e needs a fresh short name: a new
// record without one, or a persisted record whose full name changed without
// an explicit short name in the same change.
func (a *Assigner) ShouldAssign(e Entity) bool {
	if e.IsNew() {
		return strings.TrimSpace(e.Get(a.binding.Target)) == ""
	}
	return e.Changed(a.binding.Source) && !e.Changed(a.binding.Target)
}

// Assign picks the first candidate not held by another record within scope
// and sets it on e. Records assigned earlier are never moved; use AdjustAll
// for that. When every candidate is taken the full name is used, leaving an
// accepted duplicate.
//
// Assign does not persist e, and the lock is released before it returns, so
// another record may take the same value before e is saved. Use Save when
// the check and the write must be atomic; Assign suits previews and callers
// that persist e under their own lock.
func (a *Assigner) Assign(ctx context.Context, e Entity, scope Scope) (string, error) {
	if e == nil {
		return "", ErrNilEntity
	}

	unlock, err := a.locker.Lock(ctx, lockKey(a.binding.Target, scope))
	if err != nil {
		return "", err
	}
	defer a.release(ctx, unlock)

	return a.assignLocked(ctx, e, scope)
}

func (a *Assigner) assignLocked(ctx context.Context, e Entity, scope Scope) (string, error) {
	candidates := a.Candidates(e)
	value := candidates[len(candidates)-1]

	for _, c := range candidates {
		holder, err := a.store.FindOther(ctx, scope, a.binding.Target, c, e.ID())
		if err != nil {
			return "", errors.Join(ErrStoreFailure, err)
		}
		if holder == nil {
			value = c
			break
		}
	}

	e.Set(a.binding.Target, value)
	a.logger.LogAttrs(ctx, slog.LevelDebug, "short name assigned",
		logger.EntityID(e.ID()),
		logger.Binding(a.binding.Source, a.binding.Target),
		logger.ShortName(value),
	)
	return value, nil
}

// Save assigns a short name to e when ShouldAssign says so, persists e, and
// re-levels the scope afterwards when the binding has AutoAdjust enabled.
// The availability check and the write happen under the same lock.
func (a *Assigner) Save(ctx context.Context, e Entity, scope Scope) error {
	return NewGroup(a).Save(ctx, e, scope)
}

// AdjustAll recomputes short names for every record in scope and writes the
// ones that changed. It returns the number of records updated.
func (a *Assigner) AdjustAll(ctx context.Context, scope Scope) (int, error) {
	unlock, err := a.locker.Lock(ctx, lockKey(a.binding.Target, scope))
	if err != nil {
		return 0, err
	}
	defer a.release(ctx, unlock)

	return a.adjustLocked(ctx, scope)
}

func (a *Assigner) adjustLocked(ctx context.Context, scope Scope) (int, error) {
	entities, err := a.store.All(ctx, scope)
	if err != nil {
		return 0, errors.Join(ErrStoreFailure, err)
	}

	entries := make([]Entry, len(entities))
	for i, e := range entities {
		entries[i] = Entry{ID: e.ID(), Candidates: a.Candidates(e)}
	}

	resolved, rounds, err := ResolveRounds(entries)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, e := range entities {
		value := resolved[e.ID()]
		if e.Get(a.binding.Target) == value {
			continue
		}
		if err := a.store.Update(ctx, e, a.binding.Target, value); err != nil {
			return updated, errors.Join(ErrStoreFailure, err)
		}
		updated++
	}

	a.logger.LogAttrs(ctx, slog.LevelInfo, "short names adjusted",
		logger.Binding(a.binding.Source, a.binding.Target),
		logger.Count("records", len(entities)),
		logger.Count("updated", updated),
		logger.Count("rounds", rounds),
	)
	return updated, nil
}

func (a *Assigner) release(ctx context.Context, unlock Unlock) {
	if err := unlock(context.WithoutCancel(ctx)); err != nil {
		a.logger.LogAttrs(ctx, slog.LevelWarn, "failed to release short name lock",
			logger.Binding(a.binding.Source, a.binding.Target),
			logger.Error(err),
		)
	}
}

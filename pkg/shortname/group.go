package shortname

import (
	"context"
	"errors"
)

// Group holds every binding attached to one entity type. The assigners must
// share a store; each binding is resolved as if the others did not exist.
type Group struct {
	assigners []*Assigner
}

// NewGroup creates a Group. Panics when no assigner is given.
func NewGroup(assigners ...*Assigner) *Group {
	if len(assigners) == 0 {
		panic("shortname: group needs at least one assigner")
	}
	return &Group{assigners: assigners}
}

// Assigners returns the group's assigners in registration order.
func (g *Group) Assigners() []*Assigner {
	out := make([]*Assigner, len(g.assigners))
	copy(out, g.assigners)
	return out
}

// Save runs the lifecycle for e: every binding whose ShouldAssign holds gets
// a short name, e is persisted once, and bindings with AutoAdjust re-level
// the scope. Locks for all bindings are held from the first availability
// check until e is persisted.
func (g *Group) Save(ctx context.Context, e Entity, scope Scope) error {
	if e == nil {
		return ErrNilEntity
	}

	pending := make([]*Assigner, 0, len(g.assigners))
	for _, a := range g.assigners {
		if a.ShouldAssign(e) {
			pending = append(pending, a)
		}
	}

	if err := g.assignAndSave(ctx, e, scope, pending); err != nil {
		return err
	}

	for _, a := range g.assigners {
		if !a.binding.AutoAdjust {
			continue
		}
		if _, err := a.AdjustAll(ctx, scope); err != nil {
			return err
		}
	}
	return nil
}

func (g *Group) assignAndSave(ctx context.Context, e Entity, scope Scope, pending []*Assigner) error {
	held := make(map[string]struct{}, len(pending))
	for _, a := range pending {
		key := lockKey(a.binding.Target, scope)
		if _, ok := held[key]; ok {
			continue
		}
		unlock, err := a.locker.Lock(ctx, key)
		if err != nil {
			return err
		}
		held[key] = struct{}{}
		defer a.release(ctx, unlock)
	}

	for _, a := range pending {
		if _, err := a.assignLocked(ctx, e, scope); err != nil {
			return err
		}
	}

	if err := g.assigners[0].store.Save(ctx, e); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// AdjustAll re-levels every binding over scope and returns the total number
// of updated records.
func (g *Group) AdjustAll(ctx context.Context, scope Scope) (int, error) {
	total := 0
	for _, a := range g.assigners {
		n, err := a.AdjustAll(ctx, scope)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
)

type opKind int

const (
	opAdd opKind = iota
	opSave
	opDelete
	// opReplace upserts unconditionally: used when a unit of work deletes
	// and re-adds the same identity.
	opReplace
)

type stagedOp[T any] struct {
	kind  opKind
	value T
}

// table implements storage.Repository[T] for one entity kind. Reads observe
// the committed collection overlaid with this unit of work's staged ops.
type table[T entity[T]] struct {
	uow    *UnitOfWork
	kind   string
	coll   *collection[T]
	staged map[uuid.UUID]stagedOp[T]
}

func newTable[T entity[T]](uow *UnitOfWork, kind string, coll *collection[T]) *table[T] {
	t := &table[T]{
		uow:    uow,
		kind:   kind,
		coll:   coll,
		staged: make(map[uuid.UUID]stagedOp[T]),
	}
	uow.tables = append(uow.tables, t)
	return t
}

// GetAll returns value snapshots of every stored instance of the kind,
// with staged changes overlaid.
func (t *table[T]) GetAll(ctx context.Context) ([]T, error) {
	t.uow.store.mu.RLock()
	defer t.uow.store.mu.RUnlock()

	out := make([]T, 0, len(t.coll.items))
	for id, v := range t.coll.items {
		if op, ok := t.staged[id]; ok {
			if op.kind == opDelete {
				continue
			}
			out = append(out, op.value.Clone())
			continue
		}
		out = append(out, v.Clone())
	}
	for id, op := range t.staged {
		if op.kind != opDelete {
			if _, committed := t.coll.items[id]; !committed {
				out = append(out, op.value.Clone())
			}
		}
	}
	return out, nil
}

// Find is the non-throwing lookup.
func (t *table[T]) Find(ctx context.Context, id uuid.UUID) (T, bool, error) {
	t.uow.store.mu.RLock()
	defer t.uow.store.mu.RUnlock()

	var zero T
	if op, ok := t.staged[id]; ok {
		if op.kind == opDelete {
			return zero, false, nil
		}
		return op.value.Clone(), true, nil
	}
	if v, ok := t.coll.items[id]; ok {
		return v.Clone(), true, nil
	}
	return zero, false, nil
}

// Get resolves a required entity or fails with a kind-scoped not-found error.
func (t *table[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	v, ok, err := t.Find(ctx, id)
	if err != nil {
		return v, err
	}
	if !ok {
		var zero T
		return zero, shared.NewNotFound(t.kind, id)
	}
	return v, nil
}

// Add stages an insert.
func (t *table[T]) Add(v T) {
	id := v.EntityID()
	if op, ok := t.staged[id]; ok && op.kind == opDelete {
		t.staged[id] = stagedOp[T]{kind: opReplace, value: v.Clone()}
		return
	}
	t.staged[id] = stagedOp[T]{kind: opAdd, value: v.Clone()}
}

// Save stages a replacement by identity.
func (t *table[T]) Save(v T) {
	id := v.EntityID()
	if op, ok := t.staged[id]; ok && (op.kind == opAdd || op.kind == opReplace) {
		// saving an entity added in this unit of work keeps the insert
		t.staged[id] = stagedOp[T]{kind: op.kind, value: v.Clone()}
		return
	}
	t.staged[id] = stagedOp[T]{kind: opSave, value: v.Clone()}
}

// Delete stages a removal by identity.
func (t *table[T]) Delete(id uuid.UUID) {
	if op, ok := t.staged[id]; ok && op.kind == opAdd {
		// the entity never existed outside this unit of work
		delete(t.staged, id)
		return
	}
	t.staged[id] = stagedOp[T]{kind: opDelete}
}

// validate checks all staged ops against the committed state. Called with
// the store write lock held.
func (t *table[T]) validate() error {
	for id, op := range t.staged {
		switch op.kind {
		case opAdd:
			if _, exists := t.coll.items[id]; exists {
				return shared.NewConflict(t.kind, id)
			}
		case opSave:
			if _, exists := t.coll.items[id]; !exists {
				return shared.NewNotFound(t.kind, id)
			}
		}
	}
	return nil
}

// apply writes all staged ops into the committed state. Called with the
// store write lock held, after every table validated.
func (t *table[T]) apply() {
	for id, op := range t.staged {
		switch op.kind {
		case opAdd, opSave, opReplace:
			t.coll.items[id] = op.value
		case opDelete:
			delete(t.coll.items, id)
		}
	}
}

func (t *table[T]) reset() {
	t.staged = make(map[uuid.UUID]stagedOp[T])
}

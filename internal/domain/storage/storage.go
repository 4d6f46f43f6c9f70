// Package storage defines the persistence contracts for the entity graph:
// a type-scoped Repository per entity kind and a UnitOfWork that aggregates
// them over one coherent store with an atomic commit boundary.
//
// Services follow a load, transform, save pattern: they read value snapshots
// from repositories, produce new values, stage them with Save, and call
// Commit exactly once per logical operation. No repository operation
// performs authorization; that is layered above in the service package.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// Entity is the capability every persisted object carries: a globally unique
// identifier assigned at construction. Identity equality defines entity
// equality.
type Entity interface {
	EntityID() uuid.UUID
}

// Repository is type-scoped collection access for one entity kind.
//
// Reads observe the committed state overlaid with the unit of work's own
// staged changes. Writes are staged, not durable, until the owning unit of
// work commits.
type Repository[T any] interface {
	// GetAll returns all stored instances of the kind, in no particular
	// order. Callers wanting a deterministic order sort or page the result.
	GetAll(ctx context.Context) ([]T, error)

	// Find is the non-throwing lookup and existence probe.
	Find(ctx context.Context, id uuid.UUID) (T, bool, error)

	// Get resolves a required entity, failing with a not-found error
	// parameterized by the entity kind. This is the dominant access pattern
	// in services: "not found" is a client error, not a crash.
	Get(ctx context.Context, id uuid.UUID) (T, error)

	// Add stages an insert. A duplicate identifier is a caller defect and
	// surfaces as a conflict error on Commit.
	Add(v T)

	// Save stages a replacement of the stored value by identity.
	Save(v T)

	// Delete stages a removal by identity. Deleting an absent id is a no-op.
	Delete(id uuid.UUID)
}

// UnitOfWork aggregates one repository per entity kind, all lazily bound to
// the same underlying store, and owns the atomicity contract: Commit applies
// every staged mutation or none of them.
//
// A unit of work is created per request and used synchronously within it;
// it is not safe for concurrent use.
type UnitOfWork interface {
	Users() Repository[user.User]
	Events() Repository[event.Event]
	Posts() Repository[post.Post]
	Comments() Repository[post.Comment]
	Reactions() Repository[post.Reaction]
	Reports() Repository[report.Report]

	// Commit atomically applies all staged changes since the last commit
	// and makes them visible to subsequent reads. Concurrent commits
	// against the same store are serialized; no partially applied set of
	// writes is ever observable.
	Commit(ctx context.Context) error

	// Discard drops all staged changes without applying them.
	Discard()
}

// Store hands out fresh units of work over one shared entity store.
type Store interface {
	NewUnitOfWork() UnitOfWork
}

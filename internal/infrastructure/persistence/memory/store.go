// Package memory implements the storage contracts over in-process maps.
// It is the zero-configuration default backend and the backend unit tests
// run against.
//
// One homogeneous collection is kept per concrete entity kind. A store-wide
// lock serializes commits: it is held only across the staged-write
// application step, never across a whole request.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// entity constrains a domain type to identity plus value-snapshot cloning.
type entity[T any] interface {
	storage.Entity
	Clone() T
}

type collection[T entity[T]] struct {
	items map[uuid.UUID]T
}

func newCollection[T entity[T]]() *collection[T] {
	return &collection[T]{items: make(map[uuid.UUID]T)}
}

// Store is the shared in-memory entity store.
type Store struct {
	mu sync.RWMutex

	users     *collection[user.User]
	events    *collection[event.Event]
	posts     *collection[post.Post]
	comments  *collection[post.Comment]
	reactions *collection[post.Reaction]
	reports   *collection[report.Report]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     newCollection[user.User](),
		events:    newCollection[event.Event](),
		posts:     newCollection[post.Post](),
		comments:  newCollection[post.Comment](),
		reactions: newCollection[post.Reaction](),
		reports:   newCollection[report.Report](),
	}
}

// NewUnitOfWork returns a fresh unit of work over this store.
func (s *Store) NewUnitOfWork() storage.UnitOfWork {
	return &UnitOfWork{store: s}
}

// Seed loads a mixed batch of entities in one commit. Intended for tests
// and development fixtures.
func (s *Store) Seed(ctx context.Context, entities ...any) error {
	uow := s.NewUnitOfWork()
	for _, e := range entities {
		switch v := e.(type) {
		case user.User:
			uow.Users().Add(v)
		case event.Event:
			uow.Events().Add(v)
		case post.Post:
			uow.Posts().Add(v)
		case post.Comment:
			uow.Comments().Add(v)
		case post.Reaction:
			uow.Reactions().Add(v)
		case report.Report:
			uow.Reports().Add(v)
		default:
			return fmt.Errorf("memory: cannot seed %T", e)
		}
	}
	return uow.Commit(ctx)
}

// UnitOfWork stages mutations against the store and applies them atomically
// on Commit. Not safe for concurrent use; each request gets its own.
type UnitOfWork struct {
	store *Store

	users     *table[user.User]
	events    *table[event.Event]
	posts     *table[post.Post]
	comments  *table[post.Comment]
	reactions *table[post.Reaction]
	reports   *table[report.Report]

	// tables tracks lazily created tables in creation order for commit.
	tables []flusher
}

// Users returns the user repository.
func (u *UnitOfWork) Users() storage.Repository[user.User] {
	if u.users == nil {
		u.users = newTable(u, "user", u.store.users)
	}
	return u.users
}

// Events returns the event repository.
func (u *UnitOfWork) Events() storage.Repository[event.Event] {
	if u.events == nil {
		u.events = newTable(u, "event", u.store.events)
	}
	return u.events
}

// Posts returns the post repository.
func (u *UnitOfWork) Posts() storage.Repository[post.Post] {
	if u.posts == nil {
		u.posts = newTable(u, "post", u.store.posts)
	}
	return u.posts
}

// Comments returns the comment repository.
func (u *UnitOfWork) Comments() storage.Repository[post.Comment] {
	if u.comments == nil {
		u.comments = newTable(u, "comment", u.store.comments)
	}
	return u.comments
}

// Reactions returns the reaction repository.
func (u *UnitOfWork) Reactions() storage.Repository[post.Reaction] {
	if u.reactions == nil {
		u.reactions = newTable(u, "reaction", u.store.reactions)
	}
	return u.reactions
}

// Reports returns the report repository.
func (u *UnitOfWork) Reports() storage.Repository[report.Report] {
	if u.reports == nil {
		u.reports = newTable(u, "report", u.store.reports)
	}
	return u.reports
}

// Commit validates and applies all staged mutations under the store-wide
// write lock. Either every staged change is applied or none is.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	_ = ctx // no I/O; kept for contract symmetry with other backends

	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, t := range u.tables {
		if err := t.validate(); err != nil {
			return err
		}
	}
	for _, t := range u.tables {
		t.apply()
	}
	for _, t := range u.tables {
		t.reset()
	}
	return nil
}

// Discard drops all staged changes without applying them.
func (u *UnitOfWork) Discard() {
	for _, t := range u.tables {
		t.reset()
	}
}

// flusher is the untyped view of a table used by Commit.
type flusher interface {
	validate() error
	apply()
	reset()
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE
// ══════════════════════════════════════════════════════════════════════════════

// Store is the PostgreSQL-backed entity store. Every entity kind lives in
// its own table as a JSONB document keyed by id; a unit of work stages
// changes in memory and flushes them through one transaction on Commit.
type Store struct {
	conn *Connection
}

// NewStore creates a store over an established connection. The schema must
// already be migrated.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// NewUnitOfWork starts an independent unit of work.
func (s *Store) NewUnitOfWork() storage.UnitOfWork {
	return &UnitOfWork{store: s}
}

// entity constrains repository element types to cloneable identified values.
type entity[T any] interface {
	storage.Entity
	Clone() T
}

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// ══════════════════════════════════════════════════════════════════════════════

// UnitOfWork collects staged changes across all entity tables and applies
// them atomically in one database transaction.
type UnitOfWork struct {
	store *Store

	users     *docTable[user.User]
	events    *docTable[event.Event]
	posts     *docTable[post.Post]
	comments  *docTable[post.Comment]
	reactions *docTable[post.Reaction]
	reports   *docTable[report.Report]

	// tables tracks lazily created tables in creation order for the flush.
	tables []flusher
}

// Users returns the user repository of this unit of work.
func (u *UnitOfWork) Users() storage.Repository[user.User] {
	if u.users == nil {
		u.users = newDocTable[user.User](u, "users", "user")
	}
	return u.users
}

// Events returns the event repository of this unit of work.
func (u *UnitOfWork) Events() storage.Repository[event.Event] {
	if u.events == nil {
		u.events = newDocTable[event.Event](u, "events", "event")
	}
	return u.events
}

// Posts returns the post repository of this unit of work.
func (u *UnitOfWork) Posts() storage.Repository[post.Post] {
	if u.posts == nil {
		u.posts = newDocTable[post.Post](u, "posts", "post")
	}
	return u.posts
}

// Comments returns the comment repository of this unit of work.
func (u *UnitOfWork) Comments() storage.Repository[post.Comment] {
	if u.comments == nil {
		u.comments = newDocTable[post.Comment](u, "comments", "comment")
	}
	return u.comments
}

// Reactions returns the reaction repository of this unit of work.
func (u *UnitOfWork) Reactions() storage.Repository[post.Reaction] {
	if u.reactions == nil {
		u.reactions = newDocTable[post.Reaction](u, "reactions", "reaction")
	}
	return u.reactions
}

// Reports returns the report repository of this unit of work.
func (u *UnitOfWork) Reports() storage.Repository[report.Report] {
	if u.reports == nil {
		u.reports = newDocTable[report.Report](u, "reports", "report")
	}
	return u.reports
}

// Commit flushes every staged change in one transaction. On any failure the
// transaction rolls back and the staged changes stay pending.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	dirty := false
	for _, t := range u.tables {
		if t.dirty() {
			dirty = true
			break
		}
	}
	if !dirty {
		return nil
	}

	err := u.store.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		for _, t := range u.tables {
			if err := t.flush(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, t := range u.tables {
		t.reset()
	}
	return nil
}

// Discard drops every staged change without touching the database.
func (u *UnitOfWork) Discard() {
	for _, t := range u.tables {
		t.reset()
	}
}

// flusher is the type-erased view of a docTable used by Commit.
type flusher interface {
	dirty() bool
	flush(ctx context.Context, tx pgx.Tx) error
	reset()
}

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT TABLE
// ══════════════════════════════════════════════════════════════════════════════

type opKind int

const (
	// opAdd inserts and fails when the id is already stored.
	opAdd opKind = iota

	// opSave updates and fails when the id is not stored.
	opSave

	// opReplace upserts unconditionally; produced by delete-then-add.
	opReplace

	// opDelete removes; removing an absent id is a no-op.
	opDelete
)

type stagedOp[T any] struct {
	kind  opKind
	value T
}

// docTable is a generic repository over one JSONB document table. Reads see
// the staged changes overlaid on the committed rows (read your writes);
// writes stage in memory until the unit of work commits.
type docTable[T entity[T]] struct {
	uow    *UnitOfWork
	table  string
	kind   string
	staged map[uuid.UUID]stagedOp[T]
}

func newDocTable[T entity[T]](uow *UnitOfWork, table, kind string) *docTable[T] {
	t := &docTable[T]{
		uow:    uow,
		table:  table,
		kind:   kind,
		staged: make(map[uuid.UUID]stagedOp[T]),
	}
	uow.tables = append(uow.tables, t)
	return t
}

// GetAll returns every entity visible to this unit of work.
func (t *docTable[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := t.uow.store.conn.Query(ctx, fmt.Sprintf("SELECT id, doc FROM %s", t.table))
	if err != nil {
		return nil, fmt.Errorf("postgres: query %s: %w", t.table, err)
	}
	defer rows.Close()

	var out []T
	seen := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("postgres: scan %s: %w", t.table, err)
		}
		seen[id] = true

		if op, ok := t.staged[id]; ok {
			if op.kind == opDelete {
				continue
			}
			out = append(out, op.value.Clone())
			continue
		}

		v, err := t.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate %s: %w", t.table, err)
	}

	for id, op := range t.staged {
		if !seen[id] && op.kind != opDelete {
			out = append(out, op.value.Clone())
		}
	}
	return out, nil
}

// Find returns the entity and whether it exists.
func (t *docTable[T]) Find(ctx context.Context, id uuid.UUID) (T, bool, error) {
	var zero T

	if op, ok := t.staged[id]; ok {
		if op.kind == opDelete {
			return zero, false, nil
		}
		return op.value.Clone(), true, nil
	}

	var doc []byte
	query := fmt.Sprintf("SELECT doc FROM %s WHERE id = $1", t.table)
	err := t.uow.store.conn.QueryRow(ctx, query, id).Scan(&doc)
	if IsNoRows(err) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("postgres: query %s: %w", t.table, err)
	}

	v, err := t.decode(doc)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Get returns the entity or a not-found error.
func (t *docTable[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	v, found, err := t.Find(ctx, id)
	if err != nil {
		return v, err
	}
	if !found {
		return v, shared.NewNotFound(t.kind, id)
	}
	return v, nil
}

// Add stages an insert. Adding over a staged delete becomes an upsert.
func (t *docTable[T]) Add(v T) {
	id := v.EntityID()
	if op, ok := t.staged[id]; ok && op.kind == opDelete {
		t.staged[id] = stagedOp[T]{kind: opReplace, value: v.Clone()}
		return
	}
	t.staged[id] = stagedOp[T]{kind: opAdd, value: v.Clone()}
}

// Save stages an update. Saving over a staged insert keeps the insert.
func (t *docTable[T]) Save(v T) {
	id := v.EntityID()
	if op, ok := t.staged[id]; ok && (op.kind == opAdd || op.kind == opReplace) {
		t.staged[id] = stagedOp[T]{kind: op.kind, value: v.Clone()}
		return
	}
	t.staged[id] = stagedOp[T]{kind: opSave, value: v.Clone()}
}

// Delete stages a removal. Deleting a staged insert cancels it.
func (t *docTable[T]) Delete(id uuid.UUID) {
	if op, ok := t.staged[id]; ok && op.kind == opAdd {
		delete(t.staged, id)
		return
	}
	t.staged[id] = stagedOp[T]{kind: opDelete}
}

func (t *docTable[T]) dirty() bool {
	return len(t.staged) > 0
}

func (t *docTable[T]) flush(ctx context.Context, tx pgx.Tx) error {
	for id, op := range t.staged {
		switch op.kind {
		case opAdd:
			doc, err := t.encode(op.value)
			if err != nil {
				return err
			}
			query := fmt.Sprintf("INSERT INTO %s (id, doc) VALUES ($1, $2)", t.table)
			if _, err := tx.Exec(ctx, query, id, doc); err != nil {
				if IsUniqueViolation(err) {
					return shared.NewConflict(t.kind, id)
				}
				return fmt.Errorf("postgres: insert %s: %w", t.table, err)
			}

		case opReplace:
			doc, err := t.encode(op.value)
			if err != nil {
				return err
			}
			query := fmt.Sprintf(
				"INSERT INTO %s (id, doc) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()",
				t.table,
			)
			if _, err := tx.Exec(ctx, query, id, doc); err != nil {
				return fmt.Errorf("postgres: upsert %s: %w", t.table, err)
			}

		case opSave:
			doc, err := t.encode(op.value)
			if err != nil {
				return err
			}
			query := fmt.Sprintf("UPDATE %s SET doc = $2, updated_at = NOW() WHERE id = $1", t.table)
			tag, err := tx.Exec(ctx, query, id, doc)
			if err != nil {
				return fmt.Errorf("postgres: update %s: %w", t.table, err)
			}
			if tag.RowsAffected() == 0 {
				return shared.NewNotFound(t.kind, id)
			}

		case opDelete:
			query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.table)
			if _, err := tx.Exec(ctx, query, id); err != nil {
				return fmt.Errorf("postgres: delete %s: %w", t.table, err)
			}
		}
	}
	return nil
}

func (t *docTable[T]) reset() {
	t.staged = make(map[uuid.UUID]stagedOp[T])
}

func (t *docTable[T]) encode(v T) ([]byte, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode %s document: %w", t.kind, err)
	}
	return doc, nil
}

func (t *docTable[T]) decode(doc []byte) (T, error) {
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return v, fmt.Errorf("postgres: decode %s document: %w", t.kind, err)
	}
	return v, nil
}

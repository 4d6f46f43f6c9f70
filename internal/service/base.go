// Package service contains the domain services: events, posts, reports and
// users. Every service composes the same base: an acting-user context bound
// once per request and a set of permission primitives consulted before any
// repository access.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// Actor is the identity context a service operation is authorized against:
// either a concrete user or anonymous.
type Actor struct {
	// User is nil for an anonymous context.
	User *user.User
}

// IsAnonymous reports whether no concrete user is bound.
func (a Actor) IsAnonymous() bool {
	return a.User == nil
}

// IsAdmin reports whether a concrete admin user is bound.
func (a Actor) IsAdmin() bool {
	return a.User != nil && a.User.IsAdmin
}

// ID returns the bound user's id, or nil for anonymous.
func (a Actor) ID() *uuid.UUID {
	if a.User == nil {
		return nil
	}
	id := a.User.ID
	return &id
}

// base carries the per-request state every domain service shares. A service
// starts unbound; bindActor resolves the acting user exactly once and the
// bound copy is used for the rest of the request. Rebinding is not a
// supported flow.
type base struct {
	uow   storage.UnitOfWork
	actor Actor
	bound bool
}

// bindActor resolves the acting-user id against the user repository.
// A nil id binds an anonymous context; an unknown id is a not-found error.
func bindActor(ctx context.Context, uow storage.UnitOfWork, id *uuid.UUID) (Actor, error) {
	if id == nil {
		return Actor{}, nil
	}
	u, err := uow.Users().Get(ctx, *id)
	if err != nil {
		return Actor{}, err
	}
	return Actor{User: &u}, nil
}

// requireBound rejects operations on a service that never went through
// AsUser. Every guard consults it first.
func (b *base) requireBound() error {
	if !b.bound {
		return shared.NewUnauthorized("requireBound", "service is not bound to an acting user")
	}
	return nil
}

// AllowAllUsers succeeds for any bound context, concrete or anonymous.
func (b *base) AllowAllUsers() error {
	return b.requireBound()
}

// AllowOnlyAdmins fails unless the bound user exists and has the admin role.
func (b *base) AllowOnlyAdmins() error {
	if err := b.requireBound(); err != nil {
		return err
	}
	if !b.actor.IsAdmin() {
		return shared.NewUnauthorized("AllowOnlyAdmins", "admin role required")
	}
	return nil
}

// AllowOnlyUser fails unless the bound user equals the owner by identity or
// has the admin role. Admins bypass ownership checks uniformly across all
// services. A nil owner (removed account) leaves only the admin path.
func (b *base) AllowOnlyUser(ownerID *uuid.UUID) error {
	if err := b.requireBound(); err != nil {
		return err
	}
	if b.actor.IsAdmin() {
		return nil
	}
	if b.actor.User != nil && ownerID != nil && b.actor.User.ID == *ownerID {
		return nil
	}
	return shared.NewUnauthorized("AllowOnlyUser", "not the owner")
}

// requireSignedIn fails for anonymous contexts. Used by operations open to
// any concrete user.
func (b *base) requireSignedIn() error {
	if err := b.requireBound(); err != nil {
		return err
	}
	if b.actor.IsAnonymous() {
		return shared.NewUnauthorized("requireSignedIn", "sign-in required")
	}
	return nil
}

// Actor exposes the bound acting-user context, e.g. for DTO rendering.
func (b *base) Actor() Actor {
	return b.actor
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/user"
	"github.com/campushub/campus-events-hub/internal/infrastructure/persistence/memory"
)

// fixture is the seeded cast shared by the service tests: an administrator,
// an organizer, and two regular members.
type fixture struct {
	store     *memory.Store
	admin     user.User
	organizer user.User
	member    user.User
	other     user.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{store: memory.NewStore()}

	f.admin = user.New("Ada", "Admin", "ada@hub.test", "hash", time.Now())
	f.admin.IsAdmin = true
	f.organizer = user.New("Oskar", "Organizer", "oskar@hub.test", "hash", time.Now())
	f.organizer.IsOrganizer = true
	f.member = user.New("Mia", "Member", "mia@hub.test", "hash", time.Now())
	f.other = user.New("Omar", "Other", "omar@hub.test", "hash", time.Now())

	err := f.store.Seed(context.Background(), f.admin, f.organizer, f.member, f.other)
	require.NoError(t, err)
	return f
}

// Bound service constructors. A nil id binds an anonymous context.

func (f fixture) usersSvc(t *testing.T, id *uuid.UUID) *Users {
	t.Helper()
	svc, err := NewUsers(f.store.NewUnitOfWork()).AsUser(context.Background(), id)
	require.NoError(t, err)
	return svc
}

func (f fixture) eventsSvc(t *testing.T, id *uuid.UUID) *Events {
	t.Helper()
	svc, err := NewEvents(f.store.NewUnitOfWork(), nil).AsUser(context.Background(), id)
	require.NoError(t, err)
	return svc
}

func (f fixture) postsSvc(t *testing.T, id *uuid.UUID) *Posts {
	t.Helper()
	svc, err := NewPosts(f.store.NewUnitOfWork()).AsUser(context.Background(), id)
	require.NoError(t, err)
	return svc
}

func (f fixture) reportsSvc(t *testing.T, id *uuid.UUID) *Reports {
	t.Helper()
	svc, err := NewReports(f.store.NewUnitOfWork()).AsUser(context.Background(), id)
	require.NoError(t, err)
	return svc
}

func TestBindActor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uow := f.store.NewUnitOfWork()

	actor, err := bindActor(ctx, uow, nil)
	require.NoError(t, err)
	assert.True(t, actor.IsAnonymous())
	assert.Nil(t, actor.ID())

	actor, err = bindActor(ctx, uow, &f.member.ID)
	require.NoError(t, err)
	assert.False(t, actor.IsAnonymous())
	assert.Equal(t, f.member.ID, *actor.ID())

	unknown := uuid.New()
	_, err = bindActor(ctx, uow, &unknown)
	assert.True(t, shared.IsNotFound(err))
}

func TestGuards(t *testing.T) {
	f := newFixture(t)

	anonymous := base{actor: Actor{}, bound: true}
	asMember := base{actor: Actor{User: &f.member}, bound: true}
	asAdmin := base{actor: Actor{User: &f.admin}, bound: true}

	assert.NoError(t, anonymous.AllowAllUsers())
	assert.NoError(t, asMember.AllowAllUsers())

	assert.True(t, shared.IsUnauthorized(anonymous.AllowOnlyAdmins()))
	assert.True(t, shared.IsUnauthorized(asMember.AllowOnlyAdmins()))
	assert.NoError(t, asAdmin.AllowOnlyAdmins())

	assert.True(t, shared.IsUnauthorized(anonymous.requireSignedIn()))
	assert.NoError(t, asMember.requireSignedIn())
}

func TestGuards_RejectUnboundService(t *testing.T) {
	f := newFixture(t)
	owner := f.member.ID

	// a service that never went through AsUser fails every guard,
	// admin identity included
	unbound := base{actor: Actor{User: &f.admin}}

	assert.True(t, shared.IsUnauthorized(unbound.AllowAllUsers()))
	assert.True(t, shared.IsUnauthorized(unbound.AllowOnlyAdmins()))
	assert.True(t, shared.IsUnauthorized(unbound.AllowOnlyUser(&owner)))
	assert.True(t, shared.IsUnauthorized(unbound.requireSignedIn()))

	svc := NewEvents(f.store.NewUnitOfWork(), nil)
	_, err := svc.GetAll(context.Background())
	assert.True(t, shared.IsUnauthorized(err))
}

func TestAllowOnlyUser(t *testing.T) {
	f := newFixture(t)

	anonymous := base{actor: Actor{}, bound: true}
	asOwner := base{actor: Actor{User: &f.member}, bound: true}
	asOther := base{actor: Actor{User: &f.other}, bound: true}
	asAdmin := base{actor: Actor{User: &f.admin}, bound: true}

	owner := f.member.ID

	assert.NoError(t, asOwner.AllowOnlyUser(&owner))
	assert.True(t, shared.IsUnauthorized(asOther.AllowOnlyUser(&owner)))
	assert.True(t, shared.IsUnauthorized(anonymous.AllowOnlyUser(&owner)))

	// admins bypass ownership uniformly
	assert.NoError(t, asAdmin.AllowOnlyUser(&owner))

	// a removed owner leaves only the admin path
	assert.True(t, shared.IsUnauthorized(asOwner.AllowOnlyUser(nil)))
	assert.NoError(t, asAdmin.AllowOnlyUser(nil))
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

func newUser(email string) user.User {
	return user.New("Test", "User", email, "hash", time.Now())
}

func TestAddIsInvisibleUntilCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")

	uow := store.NewUnitOfWork()
	uow.Users().Add(u)

	// staged writes are visible inside the same unit of work
	_, found, err := uow.Users().Find(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found)

	// but not outside it
	other := store.NewUnitOfWork()
	_, found, err = other.Users().Find(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, uow.Commit(ctx))

	_, found, err = other.Users().Find(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestCommitIsAtomic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	existing := newUser("a@hub.test")
	require.NoError(t, store.Seed(ctx, existing))

	fresh := newUser("b@hub.test")
	uow := store.NewUnitOfWork()
	uow.Users().Add(fresh)
	uow.Users().Add(existing) // collides with the committed row

	err := uow.Commit(ctx)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// the valid staged add must not have been applied
	check := store.NewUnitOfWork()
	_, found, err := check.Users().Find(ctx, fresh.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveMissingEntityFailsCommit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uow := store.NewUnitOfWork()
	uow.Users().Save(newUser("ghost@hub.test"))

	assert.ErrorIs(t, uow.Commit(ctx), shared.ErrNotFound)
}

func TestDeleteThenAddUpserts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")
	require.NoError(t, store.Seed(ctx, u))

	replacement := u
	replacement.FirstName = "Replaced"

	uow := store.NewUnitOfWork()
	uow.Users().Delete(u.ID)
	uow.Users().Add(replacement)
	require.NoError(t, uow.Commit(ctx))

	got, err := store.NewUnitOfWork().Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Replaced", got.FirstName)
}

func TestAddThenDeleteCancelsOut(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")

	uow := store.NewUnitOfWork()
	uow.Users().Add(u)
	uow.Users().Delete(u.ID)
	require.NoError(t, uow.Commit(ctx))

	_, found, err := store.NewUnitOfWork().Users().Find(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveAfterAddKeepsInsert(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")

	uow := store.NewUnitOfWork()
	uow.Users().Add(u)
	u.FirstName = "Edited"
	uow.Users().Save(u)
	require.NoError(t, uow.Commit(ctx))

	got, err := store.NewUnitOfWork().Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.FirstName)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	uow := store.NewUnitOfWork()
	uow.Users().Delete(uuid.New())
	assert.NoError(t, uow.Commit(ctx))
}

func TestDiscardDropsStagedChanges(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")

	uow := store.NewUnitOfWork()
	uow.Users().Add(u)
	uow.Discard()
	require.NoError(t, uow.Commit(ctx))

	_, found, err := store.NewUnitOfWork().Users().Find(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetAllOverlaysStagedState(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	kept := newUser("kept@hub.test")
	doomed := newUser("doomed@hub.test")
	require.NoError(t, store.Seed(ctx, kept, doomed))

	uow := store.NewUnitOfWork()
	uow.Users().Delete(doomed.ID)
	edited := kept
	edited.FirstName = "Edited"
	uow.Users().Save(edited)
	fresh := newUser("fresh@hub.test")
	uow.Users().Add(fresh)

	all, err := uow.Users().GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[uuid.UUID]user.User{}
	for _, u := range all {
		byID[u.ID] = u
	}
	assert.Equal(t, "Edited", byID[kept.ID].FirstName)
	assert.Contains(t, byID, fresh.ID)
	assert.NotContains(t, byID, doomed.ID)
}

func TestReadsReturnSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	u := newUser("a@hub.test")
	require.NoError(t, store.Seed(ctx, u))

	uow := store.NewUnitOfWork()
	got, err := uow.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	got.FirstName = "Mutated"

	again, err := uow.Users().Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test", again.FirstName)
}

func TestGetMissingEntity(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.NewUnitOfWork().Users().Get(ctx, uuid.New())
	assert.True(t, shared.IsNotFound(err))
}

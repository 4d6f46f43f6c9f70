package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
)

func (f fixture) seedPost(t *testing.T, e event.Event) post.Post {
	t.Helper()
	p := post.New(f.organizer.ID, e.ID, "announcement", time.Now())
	require.NoError(t, f.store.Seed(context.Background(), p))
	return p
}

func TestCreatePost_OrganizerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)

	_, err := f.postsSvc(t, &f.member.ID).Create(ctx, e.ID, "hi")
	assert.True(t, shared.IsUnauthorized(err))

	_, err = f.postsSvc(t, nil).Create(ctx, e.ID, "hi")
	assert.True(t, shared.IsUnauthorized(err))

	p, err := f.postsSvc(t, &f.organizer.ID).Create(ctx, e.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, e.ID, p.EventID)

	// admin bypasses ownership
	_, err = f.postsSvc(t, &f.admin.ID).Create(ctx, e.ID, "hi")
	assert.NoError(t, err)
}

func TestCreatePost_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.postsSvc(t, &f.organizer.ID).Create(ctx, uuid.New(), "hi")
	assert.True(t, shared.IsNotFound(err))
}

func TestGetForEvent_NewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	older := post.New(f.organizer.ID, e.ID, "old", time.Now().Add(-time.Hour))
	newer := post.New(f.organizer.ID, e.ID, "new", time.Now())
	unrelated := post.New(f.organizer.ID, uuid.New(), "other event", time.Now())
	require.NoError(t, f.store.Seed(ctx, older, newer, unrelated))

	page, err := f.postsSvc(t, &f.member.ID).GetForEvent(ctx, e.ID, shared.Paging{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "new", page.Items[0].Content)
	assert.Equal(t, "old", page.Items[1].Content)
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	joined := f.seedEvent(t, func(e *event.Event) { e.AddParticipant(f.member.ID) })
	interesting := f.seedEvent(t, func(e *event.Event) { e.AddInterested(f.member.ID) })
	ignored := f.seedEvent(t, nil)
	f.seedPost(t, joined)
	f.seedPost(t, interesting)
	f.seedPost(t, ignored)

	page, err := f.postsSvc(t, &f.member.ID).Feed(ctx, false, shared.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	page, err = f.postsSvc(t, &f.member.ID).Feed(ctx, true, shared.Paging{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalCount)
}

func TestDeletePost_Cascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)
	c := post.NewComment(f.member.ID, p.ID, "nice", nil, time.Now())
	onPost := post.NewReaction(f.member.ID, p.ID, post.ReactionLike, time.Now())
	onComment := post.NewReaction(f.other.ID, c.ID, post.ReactionLove, time.Now())
	require.NoError(t, f.store.Seed(ctx, c, onPost, onComment))

	err := f.postsSvc(t, &f.member.ID).Delete(ctx, p.ID)
	assert.True(t, shared.IsUnauthorized(err))

	require.NoError(t, f.postsSvc(t, &f.organizer.ID).Delete(ctx, p.ID))

	uow := f.store.NewUnitOfWork()
	_, found, err := uow.Comments().Find(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, found)
	reactions, err := uow.Reactions().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)

	c, err := f.postsSvc(t, &f.member.ID).CreateComment(ctx, p.ID, "top level", nil)
	require.NoError(t, err)
	assert.Nil(t, c.InResponseToID)

	reply, err := f.postsSvc(t, &f.other.ID).CreateComment(ctx, p.ID, "reply", &c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, *reply.InResponseToID)
}

func TestCreateComment_ParentOnAnotherPost(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p1 := f.seedPost(t, e)
	p2 := f.seedPost(t, e)
	parent := post.NewComment(f.member.ID, p1.ID, "on p1", nil, time.Now())
	require.NoError(t, f.store.Seed(ctx, parent))

	_, err := f.postsSvc(t, &f.member.ID).CreateComment(ctx, p2.ID, "reply", &parent.ID)
	assert.True(t, shared.IsInvalidArgument(err))
}

func TestGetComments_OldestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)
	second := post.NewComment(f.member.ID, p.ID, "second", nil, time.Now())
	first := post.NewComment(f.other.ID, p.ID, "first", nil, time.Now().Add(-time.Hour))
	require.NoError(t, f.store.Seed(ctx, second, first))

	comments, err := f.postsSvc(t, &f.member.ID).GetComments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)
	c := post.NewComment(f.member.ID, p.ID, "mine", nil, time.Now())
	r := post.NewReaction(f.other.ID, c.ID, post.ReactionLaugh, time.Now())
	require.NoError(t, f.store.Seed(ctx, c, r))

	err := f.postsSvc(t, &f.other.ID).DeleteComment(ctx, c.ID)
	assert.True(t, shared.IsUnauthorized(err))

	require.NoError(t, f.postsSvc(t, &f.member.ID).DeleteComment(ctx, c.ID))

	uow := f.store.NewUnitOfWork()
	_, found, err := uow.Reactions().Find(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetReaction_UpsertAndClear(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)

	require.NoError(t, f.postsSvc(t, &f.member.ID).SetReaction(ctx, p.ID, post.ReactionLike))

	// a second reaction from the same user replaces the first
	require.NoError(t, f.postsSvc(t, &f.member.ID).SetReaction(ctx, p.ID, post.ReactionLove))

	reactions, err := f.postsSvc(t, &f.member.ID).GetReactions(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, post.ReactionLove, reactions[0].Type)

	// none withdraws it
	require.NoError(t, f.postsSvc(t, &f.member.ID).SetReaction(ctx, p.ID, post.ReactionNone))
	reactions, err = f.postsSvc(t, &f.member.ID).GetReactions(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, reactions)

	// withdrawing a non-existent reaction is a no-op
	assert.NoError(t, f.postsSvc(t, &f.member.ID).SetReaction(ctx, p.ID, post.ReactionNone))
}

func TestSetReaction_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)

	err := f.postsSvc(t, &f.member.ID).SetReaction(ctx, p.ID, "meh")
	assert.True(t, shared.IsInvalidArgument(err))

	err = f.postsSvc(t, &f.member.ID).SetReaction(ctx, uuid.New(), post.ReactionLike)
	assert.True(t, shared.IsNotFound(err))
}

func TestSetReaction_OnComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	e := f.seedEvent(t, nil)
	p := f.seedPost(t, e)
	c := post.NewComment(f.member.ID, p.ID, "hot take", nil, time.Now())
	require.NoError(t, f.store.Seed(ctx, c))

	require.NoError(t, f.postsSvc(t, &f.other.ID).SetReaction(ctx, c.ID, post.ReactionAngry))

	reactions, err := f.postsSvc(t, &f.other.ID).GetReactions(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, reactions, 1)
	assert.Equal(t, post.ReactionAngry, reactions[0].Type)
}

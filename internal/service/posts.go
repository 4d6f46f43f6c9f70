package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
)

// Posts is the domain service for event posts, their comment threads and
// reactions.
type Posts struct {
	base
}

// NewPosts creates an unbound post service over the unit of work.
func NewPosts(uow storage.UnitOfWork) *Posts {
	return &Posts{base: base{uow: uow}}
}

// AsUser resolves the acting user and returns a bound copy of the service.
// A nil id binds an anonymous context.
func (s *Posts) AsUser(ctx context.Context, id *uuid.UUID) (*Posts, error) {
	actor, err := bindActor(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	return &Posts{base: base{uow: s.uow, actor: actor, bound: true}}, nil
}

// Create publishes a post under an event. Only the event's organizer or an
// admin may post.
func (s *Posts) Create(ctx context.Context, eventID uuid.UUID, content string) (post.Post, error) {
	if err := s.requireSignedIn(); err != nil {
		return post.Post{}, err
	}
	e, err := s.uow.Events().Get(ctx, eventID)
	if err != nil {
		return post.Post{}, err
	}
	if err := s.AllowOnlyUser(e.OrganizerID); err != nil {
		return post.Post{}, err
	}

	p := post.New(s.actor.User.ID, eventID, content, time.Now())
	s.uow.Posts().Add(p)
	if err := s.uow.Commit(ctx); err != nil {
		return post.Post{}, err
	}
	return p, nil
}

// Get returns one post. Signed-in users only.
func (s *Posts) Get(ctx context.Context, id uuid.UUID) (post.Post, error) {
	if err := s.requireSignedIn(); err != nil {
		return post.Post{}, err
	}
	return s.uow.Posts().Get(ctx, id)
}

// GetForEvent returns one page of an event's posts, newest first. Signed-in
// users only.
func (s *Posts) GetForEvent(ctx context.Context, eventID uuid.UUID, p shared.Paging) (shared.Page[post.Post], error) {
	if err := s.requireSignedIn(); err != nil {
		return shared.Page[post.Post]{}, err
	}
	if _, err := s.uow.Events().Get(ctx, eventID); err != nil {
		return shared.Page[post.Post]{}, err
	}

	all, err := s.uow.Posts().GetAll(ctx)
	if err != nil {
		return shared.Page[post.Post]{}, err
	}
	mine := make([]post.Post, 0, len(all))
	for _, it := range all {
		if it.EventID == eventID {
			mine = append(mine, it)
		}
	}
	return shared.PageFrom(mine, post.CreationDateLess, p), nil
}

// Feed returns one page of posts from the events the acting user joined,
// newest first. With alsoInterested set, events the user only marked as
// interesting contribute too.
func (s *Posts) Feed(ctx context.Context, alsoInterested bool, p shared.Paging) (shared.Page[post.Post], error) {
	if err := s.requireSignedIn(); err != nil {
		return shared.Page[post.Post]{}, err
	}

	events, err := s.uow.Events().GetAll(ctx)
	if err != nil {
		return shared.Page[post.Post]{}, err
	}
	mine := make(map[uuid.UUID]bool)
	userID := s.actor.User.ID
	for _, e := range events {
		if e.IsParticipant(userID) || (alsoInterested && e.IsInterested(userID)) {
			mine[e.ID] = true
		}
	}

	all, err := s.uow.Posts().GetAll(ctx)
	if err != nil {
		return shared.Page[post.Post]{}, err
	}
	feed := make([]post.Post, 0, len(all))
	for _, it := range all {
		if mine[it.EventID] {
			feed = append(feed, it)
		}
	}
	return shared.PageFrom(feed, post.CreationDateLess, p), nil
}

// Delete removes the post together with its comments and every reaction on
// the post or its comments, in one commit. Author or admin only.
func (s *Posts) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.uow.Posts().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.AllowOnlyUser(p.AuthorID); err != nil {
		return err
	}

	comments, err := s.uow.Comments().GetAll(ctx)
	if err != nil {
		return err
	}
	reactions, err := s.uow.Reactions().GetAll(ctx)
	if err != nil {
		return err
	}

	removed := map[uuid.UUID]bool{id: true}
	for _, c := range comments {
		if c.PostID == id {
			removed[c.ID] = true
			s.uow.Comments().Delete(c.ID)
		}
	}
	for _, r := range reactions {
		if removed[r.TargetID] {
			s.uow.Reactions().Delete(r.ID)
		}
	}

	s.uow.Posts().Delete(id)
	return s.uow.Commit(ctx)
}

// CreateComment adds a comment under a post, optionally in response to an
// existing comment of the same post.
func (s *Posts) CreateComment(ctx context.Context, postID uuid.UUID, content string,
	inResponseTo *uuid.UUID) (post.Comment, error) {
	if err := s.requireSignedIn(); err != nil {
		return post.Comment{}, err
	}
	if _, err := s.uow.Posts().Get(ctx, postID); err != nil {
		return post.Comment{}, err
	}
	if inResponseTo != nil {
		parent, err := s.uow.Comments().Get(ctx, *inResponseTo)
		if err != nil {
			return post.Comment{}, err
		}
		if parent.PostID != postID {
			return post.Comment{}, shared.NewInvalidArgument("CreateComment", "parent comment belongs to another post")
		}
	}

	c := post.NewComment(s.actor.User.ID, postID, content, inResponseTo, time.Now())
	s.uow.Comments().Add(c)
	if err := s.uow.Commit(ctx); err != nil {
		return post.Comment{}, err
	}
	return c, nil
}

// GetComments returns a post's comments, oldest first. Signed-in users only.
func (s *Posts) GetComments(ctx context.Context, postID uuid.UUID) ([]post.Comment, error) {
	if err := s.requireSignedIn(); err != nil {
		return nil, err
	}
	if _, err := s.uow.Posts().Get(ctx, postID); err != nil {
		return nil, err
	}

	all, err := s.uow.Comments().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]post.Comment, 0, len(all))
	for _, c := range all {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return post.CommentCreationDateLess(out[i], out[j]) })
	return out, nil
}

// DeleteComment removes one comment and every reaction on it. Author or
// admin only. Replies to the comment stay, pointing at the removed parent.
func (s *Posts) DeleteComment(ctx context.Context, id uuid.UUID) error {
	c, err := s.uow.Comments().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.AllowOnlyUser(c.AuthorID); err != nil {
		return err
	}

	reactions, err := s.uow.Reactions().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range reactions {
		if r.TargetID == id {
			s.uow.Reactions().Delete(r.ID)
		}
	}

	s.uow.Comments().Delete(id)
	return s.uow.Commit(ctx)
}

// SetReaction records the acting user's reaction on a post or comment,
// replacing any earlier one; a user holds at most one reaction per target.
// ReactionNone withdraws the reaction.
func (s *Posts) SetReaction(ctx context.Context, targetID uuid.UUID, t post.ReactionType) error {
	if err := s.requireSignedIn(); err != nil {
		return err
	}
	if t != post.ReactionNone && !t.IsValid() {
		return shared.NewInvalidArgument("SetReaction", "unknown reaction type: "+string(t))
	}
	if err := s.resolveReactionTarget(ctx, targetID); err != nil {
		return err
	}

	existing, found, err := s.findReaction(ctx, targetID)
	if err != nil {
		return err
	}

	switch {
	case t == post.ReactionNone && !found:
		return nil
	case t == post.ReactionNone:
		s.uow.Reactions().Delete(existing.ID)
	case found:
		existing.Type = t
		s.uow.Reactions().Save(existing)
	default:
		s.uow.Reactions().Add(post.NewReaction(s.actor.User.ID, targetID, t, time.Now()))
	}
	return s.uow.Commit(ctx)
}

// GetReactions returns every reaction on a post or comment.
func (s *Posts) GetReactions(ctx context.Context, targetID uuid.UUID) ([]post.Reaction, error) {
	if err := s.requireSignedIn(); err != nil {
		return nil, err
	}
	if err := s.resolveReactionTarget(ctx, targetID); err != nil {
		return nil, err
	}

	all, err := s.uow.Reactions().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]post.Reaction, 0, len(all))
	for _, r := range all {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Posts) resolveReactionTarget(ctx context.Context, targetID uuid.UUID) error {
	if _, found, err := s.uow.Posts().Find(ctx, targetID); err != nil {
		return err
	} else if found {
		return nil
	}
	if _, found, err := s.uow.Comments().Find(ctx, targetID); err != nil {
		return err
	} else if found {
		return nil
	}
	return shared.NewNotFound("reaction target", targetID)
}

func (s *Posts) findReaction(ctx context.Context, targetID uuid.UUID) (post.Reaction, bool, error) {
	all, err := s.uow.Reactions().GetAll(ctx)
	if err != nil {
		return post.Reaction{}, false, err
	}
	userID := s.actor.User.ID
	for _, r := range all {
		if r.TargetID == targetID && r.AuthorID == userID {
			return r, true, nil
		}
	}
	return post.Reaction{}, false, nil
}

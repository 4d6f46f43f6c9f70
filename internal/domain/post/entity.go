// Package post contains the domain model for event posts, their comment
// threads, and reactions.
package post

import (
	"time"

	"github.com/google/uuid"
)

// Post - an announcement published under exactly one event.
type Post struct {
	// ID - unique identifier, assigned at construction and immutable.
	ID uuid.UUID `json:"id"`

	// EventID is the owning event.
	EventID uuid.UUID `json:"event_id"`

	// AuthorID is nil when the author account was removed.
	AuthorID *uuid.UUID `json:"author_id"`

	Content string `json:"content"`

	// Pictures are ordered by an explicit index.
	Pictures []Picture `json:"pictures"`

	CreatedAt time.Time `json:"created_at"`
}

// Picture is a stored picture reference, ordered by an explicit index.
type Picture struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// New creates a Post with a fresh identifier.
func New(authorID, eventID uuid.UUID, content string, now time.Time) Post {
	author := authorID
	return Post{
		ID:        uuid.New(),
		EventID:   eventID,
		AuthorID:  &author,
		Content:   content,
		CreatedAt: now,
	}
}

// EntityID returns the unique identifier.
func (p Post) EntityID() uuid.UUID {
	return p.ID
}

// Clone returns an independent copy of the post.
func (p Post) Clone() Post {
	c := p
	if p.AuthorID != nil {
		author := *p.AuthorID
		c.AuthorID = &author
	}
	c.Pictures = append([]Picture(nil), p.Pictures...)
	return c
}

// CreationDateLess orders posts newest first, then by id for determinism.
// Used as the listing comparator for post feeds.
func CreationDateLess(a, b Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// Comment - a reply under a post, optionally in response to another comment.
type Comment struct {
	ID     uuid.UUID `json:"id"`
	PostID uuid.UUID `json:"post_id"`

	// AuthorID is nil when the author account was removed.
	AuthorID *uuid.UUID `json:"author_id"`

	Content string `json:"content"`

	// InResponseToID links a reply to its parent comment; nil for top-level
	// comments.
	InResponseToID *uuid.UUID `json:"in_response_to_id"`

	CreatedAt time.Time `json:"created_at"`
}

// NewComment creates a Comment with a fresh identifier.
func NewComment(authorID, postID uuid.UUID, content string, inResponseTo *uuid.UUID, now time.Time) Comment {
	author := authorID
	return Comment{
		ID:             uuid.New(),
		PostID:         postID,
		AuthorID:       &author,
		Content:        content,
		InResponseToID: inResponseTo,
		CreatedAt:      now,
	}
}

// EntityID returns the unique identifier.
func (c Comment) EntityID() uuid.UUID {
	return c.ID
}

// Clone returns an independent copy of the comment.
func (c Comment) Clone() Comment {
	out := c
	if c.AuthorID != nil {
		author := *c.AuthorID
		out.AuthorID = &author
	}
	if c.InResponseToID != nil {
		parent := *c.InResponseToID
		out.InResponseToID = &parent
	}
	return out
}

// CommentCreationDateLess orders comments oldest first, then by id.
func CommentCreationDateLess(a, b Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// ReactionType is a user's stance on a post or comment.
type ReactionType string

const (
	// ReactionNone clears an existing reaction.
	ReactionNone ReactionType = "none"

	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionLove    ReactionType = "love"
	ReactionLaugh   ReactionType = "laugh"
	ReactionAngry   ReactionType = "angry"
)

// IsValid checks that the reaction type is a recognized value.
func (t ReactionType) IsValid() bool {
	switch t {
	case ReactionNone, ReactionLike, ReactionDislike, ReactionLove, ReactionLaugh, ReactionAngry:
		return true
	default:
		return false
	}
}

// Reaction - one user's reaction to one post or comment. At most one
// reaction exists per (author, target) pair; setting a new one replaces it.
type Reaction struct {
	ID uuid.UUID `json:"id"`

	AuthorID uuid.UUID `json:"author_id"`

	// TargetID references a Post or a Comment.
	TargetID uuid.UUID `json:"target_id"`

	Type ReactionType `json:"type"`

	CreatedAt time.Time `json:"created_at"`
}

// NewReaction creates a Reaction with a fresh identifier.
func NewReaction(authorID, targetID uuid.UUID, t ReactionType, now time.Time) Reaction {
	return Reaction{
		ID:        uuid.New(),
		AuthorID:  authorID,
		TargetID:  targetID,
		Type:      t,
		CreatedAt: now,
	}
}

// EntityID returns the unique identifier.
func (r Reaction) EntityID() uuid.UUID {
	return r.ID
}

// Clone returns an independent copy of the reaction.
func (r Reaction) Clone() Reaction {
	return r
}

// Package report contains the domain model for abuse reports.
//
// The source of a report is always one of a closed set of targets: an event,
// a post, or a comment. Instead of a type hierarchy there is one Report
// structure carrying a Kind tag; the typed constructors below are the only
// way to produce a report, so a report's kind always matches the runtime
// type of the entity it was constructed against.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// Kind discriminates the closed set of report variants.
type Kind string

const (
	// KindAny matches every variant in lookups; never stored on a report.
	KindAny Kind = ""

	KindEvent   Kind = "event"
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// IsValid checks that the kind is a recognized, storable value.
func (k Kind) IsValid() bool {
	return k == KindEvent || k == KindPost || k == KindComment
}

// EntityName returns the entity kind name used in not-found errors.
func (k Kind) EntityName() string {
	if k == KindAny {
		return "report"
	}
	return string(k) + " report"
}

// State is the report lifecycle state. Open reports await a response;
// Success and Failure are terminal outcomes.
type State string

const (
	StateOpen    State = "open"
	StateSuccess State = "success"
	StateFailure State = "failure"
)

// IsValid checks that the state is a recognized value.
func (s State) IsValid() bool {
	return s == StateOpen || s == StateSuccess || s == StateFailure
}

// IsOpen reports whether the state still accepts updates.
func (s State) IsOpen() bool {
	return s == StateOpen
}

// Category classifies what the report complains about.
type Category string

const (
	CategoryUnknown   Category = "unknown"
	CategoryBehaviour Category = "behaviour"
	CategoryBug       Category = "bug"
)

// IsValid checks that the category is a recognized value.
func (c Category) IsValid() bool {
	return c == CategoryUnknown || c == CategoryBehaviour || c == CategoryBug
}

// Report - a user's complaint about one target entity.
type Report struct {
	// ID - unique identifier, assigned at construction and immutable.
	ID uuid.UUID `json:"id"`

	// Kind matches the runtime type of the target entity.
	Kind Kind `json:"kind"`

	// AuthorID is nil when the author account was removed.
	AuthorID *uuid.UUID `json:"author_id"`

	// ResponderID is the administrator who handled the report; nil while
	// the report is open.
	ResponderID *uuid.UUID `json:"responder_id"`

	// TargetID references the reported entity of the Kind's type.
	TargetID uuid.UUID `json:"target_id"`

	Title    string   `json:"title"`
	Details  string   `json:"details"`
	Category Category `json:"category"`

	// Feedback is the responder's text, written on update.
	Feedback string `json:"feedback"`

	State State `json:"state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEventReport creates a report against an event.
func NewEventReport(target event.Event, author user.User, title, details string, category Category, now time.Time) Report {
	return newReport(KindEvent, target.ID, author.ID, title, details, category, now)
}

// NewPostReport creates a report against a post.
func NewPostReport(target post.Post, author user.User, title, details string, category Category, now time.Time) Report {
	return newReport(KindPost, target.ID, author.ID, title, details, category, now)
}

// NewCommentReport creates a report against a comment.
func NewCommentReport(target post.Comment, author user.User, title, details string, category Category, now time.Time) Report {
	return newReport(KindComment, target.ID, author.ID, title, details, category, now)
}

func newReport(kind Kind, targetID, authorID uuid.UUID, title, details string, category Category, now time.Time) Report {
	author := authorID
	return Report{
		ID:        uuid.New(),
		Kind:      kind,
		AuthorID:  &author,
		TargetID:  targetID,
		Title:     title,
		Details:   details,
		Category:  category,
		State:     StateOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityID returns the unique identifier.
func (r Report) EntityID() uuid.UUID {
	return r.ID
}

// Clone returns an independent copy of the report.
func (r Report) Clone() Report {
	c := r
	if r.AuthorID != nil {
		author := *r.AuthorID
		c.AuthorID = &author
	}
	if r.ResponderID != nil {
		responder := *r.ResponderID
		c.ResponderID = &responder
	}
	return c
}

// Matches reports whether the report belongs to the requested variant.
func (r Report) Matches(kind Kind) bool {
	return kind == KindAny || r.Kind == kind
}

// CreationDateLess orders reports newest first, then by id for determinism.
func CreationDateLess(a, b Report) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

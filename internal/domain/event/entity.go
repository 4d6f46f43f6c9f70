// Package event contains the domain model for events: the central entity of
// the hub. An event is owned by an organizing user and tracks two unordered
// member sets, participants and interested.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies an event.
type Category string

const (
	CategoryUncategorized Category = "uncategorized"
	CategoryCulture       Category = "culture"
	CategorySports        Category = "sports"
	CategoryScience       Category = "science"
	CategoryParty         Category = "party"
	CategoryWorkshop      Category = "workshop"
)

// IsValid checks that the category is a recognized value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryUncategorized, CategoryCulture, CategorySports,
		CategoryScience, CategoryParty, CategoryWorkshop:
		return true
	default:
		return false
	}
}

// Feedback is a single participant rating of an event.
type Feedback struct {
	AuthorID uuid.UUID `json:"author_id"`
	Rating   int       `json:"rating"`
}

// Picture is a stored picture reference, ordered by an explicit index.
type Picture struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// Event - an organized happening with membership, schedule and optional
// capacity and fee.
type Event struct {
	// ID - unique identifier, assigned at construction and immutable.
	ID uuid.UUID `json:"id"`

	// OrganizerID is nil when the organizer account was removed.
	OrganizerID *uuid.UUID `json:"organizer_id"`

	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	PublicationDate time.Time `json:"publication_date"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`

	Location string `json:"location"`

	// Capacity limits the participant set when set; nil means unlimited.
	Capacity *int `json:"capacity"`

	// Fee is the entry fee; nil or zero means free.
	Fee *float64 `json:"fee"`

	// Participants and Interested are unordered member sets. A user may be
	// in one of them or in neither; membership is checked, not enforced, by
	// the entity methods below.
	Participants []uuid.UUID `json:"participants"`
	Interested   []uuid.UUID `json:"interested"`

	Feedback []Feedback `json:"feedback"`
	Pictures []Picture  `json:"pictures"`

	CreatedAt time.Time `json:"created_at"`
}

// New creates an Event with a fresh identifier, organized by the given user.
func New(organizerID uuid.UUID, title, description string, category Category,
	publication, start, end time.Time, location string, capacity *int, fee *float64) Event {
	org := organizerID
	return Event{
		ID:              uuid.New(),
		OrganizerID:     &org,
		Title:           title,
		Description:     description,
		Category:        category,
		PublicationDate: publication,
		StartDate:       start,
		EndDate:         end,
		Location:        location,
		Capacity:        capacity,
		Fee:             fee,
		CreatedAt:       time.Now(),
	}
}

// EntityID returns the unique identifier.
func (e Event) EntityID() uuid.UUID {
	return e.ID
}

// Clone returns an independent copy, including the member sets.
func (e Event) Clone() Event {
	c := e
	if e.OrganizerID != nil {
		org := *e.OrganizerID
		c.OrganizerID = &org
	}
	if e.Capacity != nil {
		v := *e.Capacity
		c.Capacity = &v
	}
	if e.Fee != nil {
		v := *e.Fee
		c.Fee = &v
	}
	c.Participants = append([]uuid.UUID(nil), e.Participants...)
	c.Interested = append([]uuid.UUID(nil), e.Interested...)
	c.Feedback = append([]Feedback(nil), e.Feedback...)
	c.Pictures = append([]Picture(nil), e.Pictures...)
	return c
}

// IsParticipant reports whether the user is in the participant set.
func (e Event) IsParticipant(userID uuid.UUID) bool {
	return containsID(e.Participants, userID)
}

// IsInterested reports whether the user is in the interested set.
func (e Event) IsInterested(userID uuid.UUID) bool {
	return containsID(e.Interested, userID)
}

// HasAvailablePlace reports whether another participant fits. Events without
// a capacity always have a place.
func (e Event) HasAvailablePlace() bool {
	return e.Capacity == nil || *e.Capacity-len(e.Participants) > 0
}

// AddParticipant adds the user to the participant set. Returns false when the
// user is already a participant or the event is full.
func (e *Event) AddParticipant(userID uuid.UUID) bool {
	if e.IsParticipant(userID) || !e.HasAvailablePlace() {
		return false
	}
	e.Participants = append(e.Participants, userID)
	return true
}

// RemoveParticipant removes the user from the participant set. Returns false
// when the user was not a participant.
func (e *Event) RemoveParticipant(userID uuid.UUID) bool {
	removed := removeID(e.Participants, userID)
	if removed == nil {
		return false
	}
	e.Participants = removed
	return true
}

// AddInterested adds the user to the interested set. Returns false when the
// user is already interested.
func (e *Event) AddInterested(userID uuid.UUID) bool {
	if e.IsInterested(userID) {
		return false
	}
	e.Interested = append(e.Interested, userID)
	return true
}

// RemoveInterested removes the user from the interested set. Returns false
// when the user was not interested.
func (e *Event) RemoveInterested(userID uuid.UUID) bool {
	removed := removeID(e.Interested, userID)
	if removed == nil {
		return false
	}
	e.Interested = removed
	return true
}

// SetFeedback records the author's rating, replacing any earlier one.
func (e *Event) SetFeedback(authorID uuid.UUID, rating int) Feedback {
	fb := Feedback{AuthorID: authorID, Rating: rating}
	for i, existing := range e.Feedback {
		if existing.AuthorID == authorID {
			e.Feedback[i] = fb
			return fb
		}
	}
	e.Feedback = append(e.Feedback, fb)
	return fb
}

// StartDateLess orders events by start date, then by id for determinism.
// Used as the default listing comparator.
func StartDateLess(a, b Event) bool {
	if !a.StartDate.Equal(b.StartDate) {
		return a.StartDate.Before(b.StartDate)
	}
	return a.ID.String() < b.ID.String()
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// removeID returns a new slice without id, or nil when id was absent.
func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			out := make([]uuid.UUID, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...)
		}
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// ViewTracker counts event page views. The redis-backed implementation lives
// in the infrastructure layer; a nil tracker disables counting.
type ViewTracker interface {
	// Touch records one view and returns the new total.
	Touch(ctx context.Context, eventID uuid.UUID) (int64, error)

	// Count returns the current total without recording a view.
	Count(ctx context.Context, eventID uuid.UUID) (int64, error)
}

// Events is the domain service for events and their membership sets.
type Events struct {
	base
	views ViewTracker
}

// NewEvents creates an unbound event service. views may be nil.
func NewEvents(uow storage.UnitOfWork, views ViewTracker) *Events {
	return &Events{base: base{uow: uow}, views: views}
}

// AsUser resolves the acting user and returns a bound copy of the service.
// A nil id binds an anonymous context.
func (s *Events) AsUser(ctx context.Context, id *uuid.UUID) (*Events, error) {
	actor, err := bindActor(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	return &Events{base: base{uow: s.uow, actor: actor, bound: true}, views: s.views}, nil
}

// GetAll returns every event. Open to anonymous users.
func (s *Events) GetAll(ctx context.Context) ([]event.Event, error) {
	if err := s.AllowAllUsers(); err != nil {
		return nil, err
	}
	return s.uow.Events().GetAll(ctx)
}

// Get returns one event and records a page view. Open to anonymous users.
// View tracking is best effort; a tracker failure does not fail the read.
func (s *Events) Get(ctx context.Context, id uuid.UUID) (event.Event, error) {
	if err := s.AllowAllUsers(); err != nil {
		return event.Event{}, err
	}
	e, err := s.uow.Events().Get(ctx, id)
	if err != nil {
		return event.Event{}, err
	}
	if s.views != nil {
		_, _ = s.views.Touch(ctx, id)
	}
	return e, nil
}

// Views returns the recorded view total for the event; zero when no tracker
// is configured.
func (s *Events) Views(ctx context.Context, id uuid.UUID) (int64, error) {
	if s.views == nil {
		return 0, nil
	}
	return s.views.Count(ctx, id)
}

// List applies the filters, resolving organizers through the user
// repository, and returns one stable page ordered by start date.
func (s *Events) List(ctx context.Context, f event.Filter, p shared.Paging) (shared.Page[event.Event], error) {
	if err := s.AllowAllUsers(); err != nil {
		return shared.Page[event.Event]{}, err
	}

	all, err := s.uow.Events().GetAll(ctx)
	if err != nil {
		return shared.Page[event.Event]{}, err
	}

	filtered, err := f.Apply(all, s.organizerResolver(ctx))
	if err != nil {
		return shared.Page[event.Event]{}, err
	}
	return shared.PageFrom(filtered, event.StartDateLess, p), nil
}

func (s *Events) organizerResolver(ctx context.Context) event.OrganizerResolver {
	return func(id uuid.UUID) (u user.User, ok bool) {
		u, found, err := s.uow.Users().Find(ctx, id)
		return u, found && err == nil
	}
}

// Create publishes a new event organized by the acting user. Organizers and
// admins only.
func (s *Events) Create(ctx context.Context, title, description string, category event.Category,
	start, end time.Time, location string, capacity *int, fee *float64) (event.Event, error) {
	if err := s.requireSignedIn(); err != nil {
		return event.Event{}, err
	}
	if !s.actor.User.IsOrganizer && !s.actor.IsAdmin() {
		return event.Event{}, shared.NewUnauthorized("CreateEvent", "organizer role required")
	}
	if !category.IsValid() {
		return event.Event{}, shared.NewInvalidArgument("CreateEvent", "unknown category: "+string(category))
	}
	if end.Before(start) {
		return event.Event{}, shared.NewInvalidArgument("CreateEvent", "event ends before it starts")
	}
	if capacity != nil && *capacity <= 0 {
		return event.Event{}, shared.NewInvalidArgument("CreateEvent", "capacity must be positive")
	}
	if fee != nil && *fee < 0 {
		return event.Event{}, shared.NewInvalidArgument("CreateEvent", "fee must not be negative")
	}

	now := time.Now()
	e := event.New(s.actor.User.ID, title, description, category, now, start, end, location, capacity, fee)

	s.uow.Events().Add(e)
	if err := s.uow.Commit(ctx); err != nil {
		return event.Event{}, err
	}
	return e, nil
}

// Delete removes the event together with its posts, their comments and every
// reaction on either, in one commit. Organizer or admin only.
func (s *Events) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.uow.Events().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.AllowOnlyUser(e.OrganizerID); err != nil {
		return err
	}

	posts, err := s.uow.Posts().GetAll(ctx)
	if err != nil {
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

	removed := make(map[uuid.UUID]bool)
	for _, p := range posts {
		if p.EventID != id {
			continue
		}
		removed[p.ID] = true
		s.uow.Posts().Delete(p.ID)
	}
	for _, c := range comments {
		if removed[c.PostID] {
			removed[c.ID] = true
			s.uow.Comments().Delete(c.ID)
		}
	}
	for _, r := range reactions {
		if removed[r.TargetID] {
			s.uow.Reactions().Delete(r.ID)
		}
	}

	s.uow.Events().Delete(id)
	return s.uow.Commit(ctx)
}

// TryAddParticipant adds the acting user to the participant set. Returns
// false without error when the event is full or the user already joined.
func (s *Events) TryAddParticipant(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return s.changeMembership(ctx, eventID, func(e *event.Event, userID uuid.UUID) bool {
		if !e.AddParticipant(userID) {
			return false
		}
		// joining supersedes a standing interest mark
		e.RemoveInterested(userID)
		return true
	})
}

// RemoveParticipant removes the acting user from the participant set.
// Returns false without error when the user was not a participant.
func (s *Events) RemoveParticipant(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return s.changeMembership(ctx, eventID, func(e *event.Event, userID uuid.UUID) bool {
		return e.RemoveParticipant(userID)
	})
}

// TryAddInterested marks the acting user as interested. Returns false
// without error when the mark was already set.
func (s *Events) TryAddInterested(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return s.changeMembership(ctx, eventID, func(e *event.Event, userID uuid.UUID) bool {
		return e.AddInterested(userID)
	})
}

// RemoveInterested clears the acting user's interest mark. Returns false
// without error when no mark was set.
func (s *Events) RemoveInterested(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return s.changeMembership(ctx, eventID, func(e *event.Event, userID uuid.UUID) bool {
		return e.RemoveInterested(userID)
	})
}

func (s *Events) changeMembership(ctx context.Context, eventID uuid.UUID,
	change func(e *event.Event, userID uuid.UUID) bool) (bool, error) {
	if err := s.requireSignedIn(); err != nil {
		return false, err
	}
	e, err := s.uow.Events().Get(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !change(&e, s.actor.User.ID) {
		return false, nil
	}
	s.uow.Events().Save(e)
	if err := s.uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// AddFeedback records the acting user's rating for the event, replacing any
// earlier rating by the same user. Participants only.
func (s *Events) AddFeedback(ctx context.Context, eventID uuid.UUID, rating int) (event.Feedback, error) {
	if err := s.requireSignedIn(); err != nil {
		return event.Feedback{}, err
	}
	if rating < 1 || rating > 5 {
		return event.Feedback{}, shared.NewInvalidArgument("AddFeedback", "rating must be between 1 and 5")
	}

	e, err := s.uow.Events().Get(ctx, eventID)
	if err != nil {
		return event.Feedback{}, err
	}
	if !e.IsParticipant(s.actor.User.ID) {
		return event.Feedback{}, shared.NewUnauthorized("AddFeedback", "participants only")
	}

	fb := e.SetFeedback(s.actor.User.ID, rating)
	s.uow.Events().Save(e)
	if err := s.uow.Commit(ctx); err != nil {
		return event.Feedback{}, err
	}
	return fb, nil
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// Users is the domain service for accounts and profiles.
type Users struct {
	base
}

// NewUsers creates an unbound user service over the unit of work.
func NewUsers(uow storage.UnitOfWork) *Users {
	return &Users{base: base{uow: uow}}
}

// AsUser resolves the acting user and returns a bound copy of the service.
// A nil id binds an anonymous context.
func (s *Users) AsUser(ctx context.Context, id *uuid.UUID) (*Users, error) {
	actor, err := bindActor(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	return &Users{base: base{uow: s.uow, actor: actor, bound: true}}, nil
}

// Register creates an account with a bcrypt-hashed password. The email must
// not be taken. Open to anonymous users.
func (s *Users) Register(ctx context.Context, firstName, lastName, email, password string) (user.User, error) {
	if err := s.AllowAllUsers(); err != nil {
		return user.User{}, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, shared.NewInvalidArgument("Register", "malformed email")
	}
	if len(password) < 8 {
		return user.User{}, shared.NewInvalidArgument("Register", "password must be at least 8 characters")
	}

	all, err := s.uow.Users().GetAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return user.User{}, &shared.ConflictError{Kind: "user", ID: u.ID}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}

	u := user.New(firstName, lastName, email, string(hash), time.Now())
	s.uow.Users().Add(u)
	if err := s.uow.Commit(ctx); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Authenticate checks the credentials and returns the matching account.
// A missing account and a wrong password are indistinguishable to the
// caller.
func (s *Users) Authenticate(ctx context.Context, email, password string) (user.User, error) {
	email = strings.TrimSpace(email)

	all, err := s.uow.Users().GetAll(ctx)
	if err != nil {
		return user.User{}, err
	}
	for _, u := range all {
		if !strings.EqualFold(u.Email, email) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		return u, nil
	}
	return user.User{}, shared.NewUnauthorized("Authenticate", "invalid credentials")
}

// Get returns one account. Admin only.
func (s *Users) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	if err := s.AllowOnlyAdmins(); err != nil {
		return user.User{}, err
	}
	return s.uow.Users().Get(ctx, id)
}

// GetAll returns every account. Admin only.
func (s *Users) GetAll(ctx context.Context) ([]user.User, error) {
	if err := s.AllowOnlyAdmins(); err != nil {
		return nil, err
	}
	return s.uow.Users().GetAll(ctx)
}

// Profile is the set of fields a user may edit on their own account.
type Profile struct {
	FirstName         string
	LastName          string
	Description       string
	DateOfBirth       time.Time
	EmailNotification bool
}

// UpdateProfile rewrites the editable profile fields. Account owner or
// admin only.
func (s *Users) UpdateProfile(ctx context.Context, id uuid.UUID, p Profile) (user.User, error) {
	if err := s.AllowOnlyUser(&id); err != nil {
		return user.User{}, err
	}

	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Description = p.Description
	u.DateOfBirth = p.DateOfBirth
	u.EmailNotification = p.EmailNotification

	s.uow.Users().Save(u)
	if err := s.uow.Commit(ctx); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// SetOrganizer grants or revokes the organizer role. Admin only.
func (s *Users) SetOrganizer(ctx context.Context, id uuid.UUID, organizer bool) (user.User, error) {
	if err := s.AllowOnlyAdmins(); err != nil {
		return user.User{}, err
	}

	u, err := s.uow.Users().Get(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	u.IsOrganizer = organizer

	s.uow.Users().Save(u)
	if err := s.uow.Commit(ctx); err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Delete removes the account. Authored events, posts and reports stay with
// a detached author; the user's memberships and reactions are withdrawn.
// Account owner or admin only.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.AllowOnlyUser(&id); err != nil {
		return err
	}
	if _, err := s.uow.Users().Get(ctx, id); err != nil {
		return err
	}

	events, err := s.uow.Events().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, e := range events {
		changed := false
		if e.OrganizerID != nil && *e.OrganizerID == id {
			e.OrganizerID = nil
			changed = true
		}
		if e.RemoveParticipant(id) {
			changed = true
		}
		if e.RemoveInterested(id) {
			changed = true
		}
		if changed {
			s.uow.Events().Save(e)
		}
	}

	posts, err := s.uow.Posts().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		if p.AuthorID != nil && *p.AuthorID == id {
			p.AuthorID = nil
			s.uow.Posts().Save(p)
		}
	}

	comments, err := s.uow.Comments().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, c := range comments {
		if c.AuthorID != nil && *c.AuthorID == id {
			c.AuthorID = nil
			s.uow.Comments().Save(c)
		}
	}

	reactions, err := s.uow.Reactions().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range reactions {
		if r.AuthorID == id {
			s.uow.Reactions().Delete(r.ID)
		}
	}

	reports, err := s.uow.Reports().GetAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range reports {
		changed := false
		if r.AuthorID != nil && *r.AuthorID == id {
			r.AuthorID = nil
			changed = true
		}
		if r.ResponderID != nil && *r.ResponderID == id {
			r.ResponderID = nil
			changed = true
		}
		if changed {
			s.uow.Reports().Save(r)
		}
	}

	s.uow.Users().Delete(id)
	return s.uow.Commit(ctx)
}

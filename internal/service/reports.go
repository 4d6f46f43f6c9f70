package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/storage"
)

// Reports is the domain service for abuse reports.
type Reports struct {
	base
}

// NewReports creates an unbound report service over the unit of work.
func NewReports(uow storage.UnitOfWork) *Reports {
	return &Reports{base: base{uow: uow}}
}

// AsUser resolves the acting user and returns a bound copy of the service.
// A nil id binds an anonymous context.
func (s *Reports) AsUser(ctx context.Context, id *uuid.UUID) (*Reports, error) {
	actor, err := bindActor(ctx, s.uow, id)
	if err != nil {
		return nil, err
	}
	return &Reports{base: base{uow: s.uow, actor: actor, bound: true}}, nil
}

// GetAll returns all reports of the requested variant; report.KindAny
// returns every report. Admin only.
func (s *Reports) GetAll(ctx context.Context, kind report.Kind) ([]report.Report, error) {
	if err := s.AllowOnlyAdmins(); err != nil {
		return nil, err
	}

	all, err := s.uow.Reports().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]report.Report, 0, len(all))
	for _, r := range all {
		if r.Matches(kind) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns one report of the requested variant. A report stored under a
// different variant is not found. Only the report's author or an admin may
// see it.
func (s *Reports) Get(ctx context.Context, kind report.Kind, id uuid.UUID) (report.Report, error) {
	r, err := s.uow.Reports().Get(ctx, id)
	if err != nil || !r.Matches(kind) {
		return report.Report{}, &shared.NotFoundError{Kind: kind.EntityName(), ID: id}
	}

	if err := s.AllowOnlyUser(r.AuthorID); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

// Create resolves the target entity through the repository matching kind,
// constructs the matching report variant authored by the acting user, and
// commits. Any signed-in user may call. An unrecognized kind is a caller
// defect.
func (s *Reports) Create(ctx context.Context, targetID uuid.UUID, title, details string,
	category report.Category, kind report.Kind) (report.Report, error) {
	if err := s.requireSignedIn(); err != nil {
		return report.Report{}, err
	}
	if !category.IsValid() {
		return report.Report{}, shared.NewInvalidArgument("CreateReport", "unknown category: "+string(category))
	}

	author := *s.actor.User
	now := time.Now()

	var rep report.Report
	switch kind {
	case report.KindEvent:
		target, err := s.uow.Events().Get(ctx, targetID)
		if err != nil {
			return report.Report{}, err
		}
		rep = report.NewEventReport(target, author, title, details, category, now)
	case report.KindPost:
		target, err := s.uow.Posts().Get(ctx, targetID)
		if err != nil {
			return report.Report{}, err
		}
		rep = report.NewPostReport(target, author, title, details, category, now)
	case report.KindComment:
		target, err := s.uow.Comments().Get(ctx, targetID)
		if err != nil {
			return report.Report{}, err
		}
		rep = report.NewCommentReport(target, author, title, details, category, now)
	default:
		return report.Report{}, shared.NewInvalidArgument("CreateReport", "unknown report kind: "+string(kind))
	}

	s.uow.Reports().Add(rep)
	if err := s.uow.Commit(ctx); err != nil {
		return report.Report{}, err
	}
	return rep, nil
}

// Update applies an admin's response: responder, feedback and state. Closed
// reports are terminal and cannot be reopened through this path.
func (s *Reports) Update(ctx context.Context, edited report.Report) (report.Report, error) {
	if err := s.AllowOnlyAdmins(); err != nil {
		return report.Report{}, err
	}
	if !edited.State.IsValid() {
		return report.Report{}, shared.NewInvalidArgument("UpdateReport", "unknown state: "+string(edited.State))
	}

	r, err := s.uow.Reports().Get(ctx, edited.ID)
	if err != nil {
		return report.Report{}, err
	}
	if !r.State.IsOpen() {
		return report.Report{}, shared.NewInvalidState("UpdateReport", "report is closed")
	}

	r.ResponderID = s.actor.ID()
	r.Feedback = edited.Feedback
	r.State = edited.State
	r.UpdatedAt = time.Now()

	s.uow.Reports().Save(r)
	if err := s.uow.Commit(ctx); err != nil {
		return report.Report{}, err
	}
	return r, nil
}

// Delete removes the report. Author or admin only.
func (s *Reports) Delete(ctx context.Context, id uuid.UUID) error {
	r, err := s.uow.Reports().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.AllowOnlyUser(r.AuthorID); err != nil {
		return err
	}

	s.uow.Reports().Delete(id)
	return s.uow.Commit(ctx)
}

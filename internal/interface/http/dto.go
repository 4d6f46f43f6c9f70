package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// UserDTO is the public account representation. The password hash never
// leaves the service layer.
type UserDTO struct {
	ID                uuid.UUID `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Description       string    `json:"description"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	IsAdmin           bool      `json:"is_admin"`
	IsOrganizer       bool      `json:"is_organizer"`
	EmailNotification bool      `json:"email_notification"`
	CreatedAt         time.Time `json:"created_at"`
}

func toUserDTO(u user.User) UserDTO {
	return UserDTO{
		ID:                u.ID,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Description:       u.Description,
		DateOfBirth:       u.DateOfBirth,
		IsAdmin:           u.IsAdmin,
		IsOrganizer:       u.IsOrganizer,
		EmailNotification: u.EmailNotification,
		CreatedAt:         u.CreatedAt,
	}
}

// EventDTO is the event representation with derived membership counts.
type EventDTO struct {
	ID               uuid.UUID        `json:"id"`
	OrganizerID      *uuid.UUID       `json:"organizer_id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Category         event.Category   `json:"category"`
	PublicationDate  time.Time        `json:"publication_date"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	Location         string           `json:"location"`
	Capacity         *int             `json:"capacity"`
	Fee              *float64         `json:"fee"`
	ParticipantCount int              `json:"participant_count"`
	InterestedCount  int              `json:"interested_count"`
	AverageRating    float64          `json:"average_rating"`
	Pictures         []event.Picture  `json:"pictures"`
	Feedback         []event.Feedback `json:"feedback"`
}

func toEventDTO(e event.Event) EventDTO {
	var rating float64
	if len(e.Feedback) > 0 {
		sum := 0
		for _, fb := range e.Feedback {
			sum += fb.Rating
		}
		rating = float64(sum) / float64(len(e.Feedback))
	}

	return EventDTO{
		ID:               e.ID,
		OrganizerID:      e.OrganizerID,
		Title:            e.Title,
		Description:      e.Description,
		Category:         e.Category,
		PublicationDate:  e.PublicationDate,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		Location:         e.Location,
		Capacity:         e.Capacity,
		Fee:              e.Fee,
		ParticipantCount: len(e.Participants),
		InterestedCount:  len(e.Interested),
		AverageRating:    rating,
		Pictures:         e.Pictures,
		Feedback:         e.Feedback,
	}
}

func toEventDTOs(events []event.Event) []EventDTO {
	out := make([]EventDTO, len(events))
	for i, e := range events {
		out[i] = toEventDTO(e)
	}
	return out
}

// PostDTO is the post representation.
type PostDTO struct {
	ID        uuid.UUID      `json:"id"`
	EventID   uuid.UUID      `json:"event_id"`
	AuthorID  *uuid.UUID     `json:"author_id"`
	Content   string         `json:"content"`
	Pictures  []post.Picture `json:"pictures"`
	CreatedAt time.Time      `json:"created_at"`
}

func toPostDTO(p post.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		EventID:   p.EventID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		Pictures:  p.Pictures,
		CreatedAt: p.CreatedAt,
	}
}

func toPostDTOs(posts []post.Post) []PostDTO {
	out := make([]PostDTO, len(posts))
	for i, p := range posts {
		out[i] = toPostDTO(p)
	}
	return out
}

// CommentDTO is the comment representation.
type CommentDTO struct {
	ID             uuid.UUID  `json:"id"`
	PostID         uuid.UUID  `json:"post_id"`
	AuthorID       *uuid.UUID `json:"author_id"`
	Content        string     `json:"content"`
	InResponseToID *uuid.UUID `json:"in_response_to_id"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toCommentDTO(c post.Comment) CommentDTO {
	return CommentDTO{
		ID:             c.ID,
		PostID:         c.PostID,
		AuthorID:       c.AuthorID,
		Content:        c.Content,
		InResponseToID: c.InResponseToID,
		CreatedAt:      c.CreatedAt,
	}
}

// ReactionDTO is the reaction representation.
type ReactionDTO struct {
	ID        uuid.UUID         `json:"id"`
	AuthorID  uuid.UUID         `json:"author_id"`
	TargetID  uuid.UUID         `json:"target_id"`
	Type      post.ReactionType `json:"type"`
	CreatedAt time.Time         `json:"created_at"`
}

func toReactionDTO(r post.Reaction) ReactionDTO {
	return ReactionDTO{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		TargetID:  r.TargetID,
		Type:      r.Type,
		CreatedAt: r.CreatedAt,
	}
}

// ReportDTO is the report representation.
type ReportDTO struct {
	ID          uuid.UUID       `json:"id"`
	Kind        report.Kind     `json:"kind"`
	AuthorID    *uuid.UUID      `json:"author_id"`
	ResponderID *uuid.UUID      `json:"responder_id"`
	TargetID    uuid.UUID       `json:"target_id"`
	Title       string          `json:"title"`
	Details     string          `json:"details"`
	Category    report.Category `json:"category"`
	Feedback    string          `json:"feedback"`
	State       report.State    `json:"state"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toReportDTO(r report.Report) ReportDTO {
	return ReportDTO{
		ID:          r.ID,
		Kind:        r.Kind,
		AuthorID:    r.AuthorID,
		ResponderID: r.ResponderID,
		TargetID:    r.TargetID,
		Title:       r.Title,
		Details:     r.Details,
		Category:    r.Category,
		Feedback:    r.Feedback,
		State:       r.State,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toReportDTOs(reports []report.Report) []ReportDTO {
	out := make([]ReportDTO, len(reports))
	for i, r := range reports {
		out[i] = toReportDTO(r)
	}
	return out
}

// pageMeta converts page bookkeeping into response metadata.
func pageMeta[T any](p shared.Page[T]) *ResponseMeta {
	return &ResponseMeta{
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Page:       p.PageIndex,
		PageSize:   p.PageSize,
		IsLast:     p.IsLast,
	}
}

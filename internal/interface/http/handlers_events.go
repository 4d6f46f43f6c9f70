package http

import (
	"net/http"
	"time"

	"github.com/campushub/campus-events-hub/internal/domain/event"
	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/service"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) events(r *http.Request) (*service.Events, error) {
	uow := s.deps.Store.NewUnitOfWork()
	return service.NewEvents(uow, s.deps.Views).AsUser(r.Context(), actorID(r.Context()))
}

// parsePaging reads page and page_size query parameters.
func parsePaging(r *http.Request) shared.Paging {
	return shared.Paging{
		PageIndex: getQueryParamInt(r, "page", 0),
		PageSize:  getQueryParamInt(r, "page_size", 0),
	}
}

// parseEventFilter reads the listing filters from query parameters. The
// bucket dimensions accept repeated parameters, e.g. ?time=past&time=future.
func parseEventFilter(r *http.Request) event.Filter {
	q := r.URL.Query()

	f := event.Filter{
		Name:          q.Get("name"),
		OrganizerName: q.Get("organizer"),
		OnlyAvailable: getQueryParamBool(r, "only_available"),
	}
	for _, v := range q["time"] {
		f.Time = append(f.Time, event.TimeBucket(v))
	}
	for _, v := range q["participants"] {
		f.Participants = append(f.Participants, event.ParticipantsBucket(v))
	}
	for _, v := range q["price"] {
		f.Price = append(f.Price, event.PriceBucket(v))
	}
	return f
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	page, err := svc.List(r.Context(), parseEventFilter(r), parsePaging(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSONWithMeta(w, r, http.StatusOK, toEventDTOs(page.Items), pageMeta(page))
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	e, err := svc.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	views, err := svc.Views(r.Context(), id)
	if err != nil {
		views = 0
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"event": toEventDTO(e),
		"views": views,
	})
}

type createEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    string    `json:"location"`
	Capacity    *int      `json:"capacity"`
	Fee         *float64  `json:"fee"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	e, err := svc.Create(r.Context(), req.Title, req.Description, event.Category(req.Category),
		req.StartDate, req.EndDate, req.Location, req.Capacity, req.Fee)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(e))
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := svc.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// membership groups the four membership toggles behind one response shape.
func (s *Server) handleMembership(w http.ResponseWriter, r *http.Request,
	change func(svc *service.Events) (bool, error)) {
	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	changed, err := change(svc)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"changed": changed})
}

func (s *Server) handleJoinEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.handleMembership(w, r, func(svc *service.Events) (bool, error) {
		return svc.TryAddParticipant(r.Context(), id)
	})
}

func (s *Server) handleLeaveEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.handleMembership(w, r, func(svc *service.Events) (bool, error) {
		return svc.RemoveParticipant(r.Context(), id)
	})
}

func (s *Server) handleMarkInterested(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.handleMembership(w, r, func(svc *service.Events) (bool, error) {
		return svc.TryAddInterested(r.Context(), id)
	})
}

func (s *Server) handleUnmarkInterested(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	s.handleMembership(w, r, func(svc *service.Events) (bool, error) {
		return svc.RemoveInterested(r.Context(), id)
	})
}

type addFeedbackRequest struct {
	Rating int `json:"rating"`
}

func (s *Server) handleAddFeedback(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req addFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.events(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	fb, err := svc.AddFeedback(r.Context(), id, req.Rating)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, fb)
}

package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/report"
	"github.com/campushub/campus-events-hub/internal/service"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPORT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) reports(r *http.Request) (*service.Reports, error) {
	uow := s.deps.Store.NewUnitOfWork()
	return service.NewReports(uow).AsUser(r.Context(), actorID(r.Context()))
}

// handleGetReports lists reports, optionally narrowed with ?kind=event.
func (s *Server) handleGetReports(w http.ResponseWriter, r *http.Request) {
	svc, err := s.reports(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	all, err := svc.GetAll(r.Context(), report.Kind(getQueryParam(r, "kind", "")))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTOs(all))
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.reports(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	rep, err := svc.Get(r.Context(), report.Kind(getQueryParam(r, "kind", "")), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

type createReportRequest struct {
	TargetID uuid.UUID       `json:"target_id"`
	Kind     report.Kind     `json:"kind"`
	Title    string          `json:"title"`
	Details  string          `json:"details"`
	Category report.Category `json:"category"`
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var req createReportRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category == "" {
		req.Category = report.CategoryUnknown
	}

	svc, err := s.reports(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	rep, err := svc.Create(r.Context(), req.TargetID, req.Title, req.Details, req.Category, req.Kind)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReportDTO(rep))
}

type updateReportRequest struct {
	Feedback string       `json:"feedback"`
	State    report.State `json:"state"`
}

func (s *Server) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateReportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.reports(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	rep, err := svc.Update(r.Context(), report.Report{
		ID:       id,
		Feedback: req.Feedback,
		State:    req.State,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.reports(r)
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

package http

import (
	"net/http"
	"time"

	"github.com/campushub/campus-events-hub/internal/service"
)

// ══════════════════════════════════════════════════════════════════════════════
// ACCOUNT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) users(r *http.Request) (*service.Users, error) {
	uow := s.deps.Store.NewUnitOfWork()
	return service.NewUsers(uow).AsUser(r.Context(), actorID(r.Context()))
}

type registerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// handleRegister creates an account and signs the first token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.users(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	u, err := svc.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	token, err := s.deps.Tokens.Issue(u)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":  toUserDTO(u),
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.users(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	token, err := s.deps.Tokens.Issue(u)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user":  toUserDTO(u),
		"token": token,
	})
}

func (s *Server) handleGetUsers(w http.ResponseWriter, r *http.Request) {
	svc, err := s.users(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	all, err := svc.GetAll(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]UserDTO, len(all))
	for i, u := range all {
		out[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.users(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	u, err := svc.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

type updateProfileRequest struct {
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Description       string    `json:"description"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	EmailNotification bool      `json:"email_notification"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.users(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	u, err := svc.UpdateProfile(r.Context(), id, service.Profile{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Description:       req.Description,
		DateOfBirth:       req.DateOfBirth,
		EmailNotification: req.EmailNotification,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.users(r)
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

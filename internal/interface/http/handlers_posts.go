package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/post"
	"github.com/campushub/campus-events-hub/internal/service"
)

// ══════════════════════════════════════════════════════════════════════════════
// POST, COMMENT AND REACTION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) posts(r *http.Request) (*service.Posts, error) {
	uow := s.deps.Store.NewUnitOfWork()
	return service.NewPosts(uow).AsUser(r.Context(), actorID(r.Context()))
}

type createPostRequest struct {
	EventID uuid.UUID `json:"event_id"`
	Content string    `json:"content"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	p, err := svc.Create(r.Context(), req.EventID, req.Content)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPostDTO(p))
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	p, err := svc.Get(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPostDTO(p))
}

func (s *Server) handleGetEventPosts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	page, err := svc.GetForEvent(r.Context(), id, parsePaging(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSONWithMeta(w, r, http.StatusOK, toPostDTOs(page.Items), pageMeta(page))
}

// handleGetFeed returns posts from the events the acting user joined;
// ?interested=true widens it to events they marked as interesting.
func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	page, err := svc.Feed(r.Context(), getQueryParamBool(r, "interested"), parsePaging(r))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSONWithMeta(w, r, http.StatusOK, toPostDTOs(page.Items), pageMeta(page))
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.posts(r)
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

type createCommentRequest struct {
	Content        string     `json:"content"`
	InResponseToID *uuid.UUID `json:"in_response_to_id"`
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	c, err := svc.CreateComment(r.Context(), postID, req.Content, req.InResponseToID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCommentDTO(c))
}

func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	comments, err := svc.GetComments(r.Context(), postID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]CommentDTO, len(comments))
	for i, c := range comments {
		out[i] = toCommentDTO(c)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := svc.DeleteComment(r.Context(), id); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type setReactionRequest struct {
	Type post.ReactionType `json:"type"`
}

func (s *Server) handleSetReaction(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "targetId")
	if !ok {
		return
	}
	var req setReactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := svc.SetReaction(r.Context(), targetID, req.Type); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetReactions(w http.ResponseWriter, r *http.Request) {
	targetID, ok := pathID(w, r, "targetId")
	if !ok {
		return
	}

	svc, err := s.posts(r)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	reactions, err := svc.GetReactions(r.Context(), targetID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	out := make([]ReactionDTO, len(reactions))
	for i, re := range reactions {
		out[i] = toReactionDTO(re)
	}
	writeJSON(w, http.StatusOK, out)
}

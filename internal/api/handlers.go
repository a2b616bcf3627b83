// ABOUTME: HTTP handlers for the post API endpoints.
// ABOUTME: Decodes requests, calls the PostStore, and maps errors onto JSON responses.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/storage"
)

// handleListPosts returns every post, optionally sorted.
// Method: GET
// Query: sort (title|content), direction (asc|desc)
// Errors: 400 for an unknown sort field or direction
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := s.store.ListPosts(storage.ListPostsOptions{
		Sort:      q.Get("sort"),
		Direction: q.Get("direction"),
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleCreatePost validates and appends a new post.
// Method: POST
// Request: {"title": ..., "content": ...}
// Response (201): the created post
// Errors: 400 {"error"} for a missing body, 400 {"errors"} for missing fields
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	if fieldErrs := models.ValidateNewPost(req.Title, req.Content); fieldErrs != nil {
		s.writeStoreError(w, r, &storage.ValidationError{Fields: fieldErrs})
		return
	}

	post, err := s.store.CreatePost(req.Title, req.Content)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.refreshPostsGauge()
	writeJSON(w, http.StatusCreated, post)
}

// handleUpdatePost replaces the supplied fields of an existing post.
// Method: PUT
// Request: {"title"?: ..., "content"?: ...}
// Errors: 404 when the post does not exist, 400 for a missing body
func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if _, err := s.store.GetPost(id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	var req updatePostRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	post, err := s.store.UpdatePost(id, req.patch())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// handleDeletePost removes a post.
// Method: DELETE
// Errors: 404 when the post does not exist
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if err := s.store.DeletePost(id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.refreshPostsGauge()
	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Post with id %d has been deleted successfully.", id),
	})
}

// handleSearchPosts filters posts by case-insensitive title and content substrings.
// Method: GET
// Query: title, content (both optional)
func (s *Server) handleSearchPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := s.store.SearchPosts(storage.SearchOptions{
		Title:   q.Get("title"),
		Content: q.Get("content"),
	})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleHealthz is a liveness endpoint reporting the collection size.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(storage.ListPostsOptions{})
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Posts:  len(posts),
		Time:   TimeNow().UTC().Format(time.RFC3339),
	})
}

// pathID parses the {id} wildcard. Anything but a non-negative integer
// cannot name a post and is reported as not found.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, &storage.NotFoundError{ID: raw}
	}
	return int(id), nil
}

// decodeBody unmarshals a JSON object body into v. An empty body, JSON null,
// an empty object, or anything that does not decode into v is a BadRequest.
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return storage.NoInputError()
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return storage.NoInputError()
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return storage.NoInputError()
	}
	if err := json.Unmarshal(data, v); err != nil {
		return storage.NoInputError()
	}
	return nil
}

// writeStoreError maps the storage error taxonomy onto status codes and payloads.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *storage.ValidationError
		nerr *storage.NotFoundError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Fields})
	case errors.As(err, &nerr):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: nerr.Error()})
	case errors.Is(err, storage.ErrInvalidArgument), errors.Is(err, storage.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("api: request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

// ABOUTME: Request and response payload types for the post API.
// ABOUTME: Also holds the TimeNow seam used by health and logging.
package api

import (
	"time"

	"github.com/2389-research/postboard/internal/models"
)

// Request and response bodies for the post API. Posts themselves are
// serialized as models.Post.

// createPostRequest is the POST /api/posts body. JSON null and "" both count as missing.
type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updatePostRequest is the PUT /api/posts/{id} body. Omitted fields are kept.
type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (r updatePostRequest) patch() models.PostPatch {
	return models.PostPatch{Title: r.Title, Content: r.Content}
}

// ErrorResponse is the single-message error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is the per-field error payload for create.
type ValidationErrorResponse struct {
	Errors models.FieldErrors `json:"errors"`
}

// MessageResponse is the delete confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the GET /healthz payload.
type HealthResponse struct {
	Status string `json:"status"`
	Posts  int    `json:"posts"`
	Time   string `json:"time"`
}

// TimeNow abstracts time for tests.
var TimeNow = func() time.Time { return time.Now() }

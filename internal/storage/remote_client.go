// ABOUTME: HTTP client for a running postboard API, usable wherever a PostStore is.
// ABOUTME: Translates JSON error payloads back into the storage error taxonomy.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/2389-research/postboard/internal/models"
)

// RemoteClient talks to the postboard HTTP API.
type RemoteClient struct {
	apiURL string
	client *http.Client
}

// NewRemoteClient creates a remote client for the service at apiURL.
// A trailing slash or /api suffix is tolerated.
func NewRemoteClient(apiURL string) *RemoteClient {
	apiURL = strings.TrimRight(apiURL, "/")
	apiURL = strings.TrimSuffix(apiURL, "/api")
	return &RemoteClient{
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// remoteErrorResponse covers both error payload shapes the API emits.
type remoteErrorResponse struct {
	Error  string            `json:"error"`
	Errors map[string]string `json:"errors"`
}

// remoteMessageResponse is the DELETE success payload.
type remoteMessageResponse struct {
	Message string `json:"message"`
}

// createPostPayload is the JSON body sent on create.
type createPostPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListPosts fetches GET /api/posts.
func (r *RemoteClient) ListPosts(opts ListPostsOptions) ([]models.Post, error) {
	q := url.Values{}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Direction != "" {
		q.Set("direction", opts.Direction)
	}

	var posts []models.Post
	if err := r.do(http.MethodGet, "/api/posts", q, nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost sends POST /api/posts.
func (r *RemoteClient) CreatePost(title, content string) (models.Post, error) {
	var post models.Post
	payload := createPostPayload{Title: title, Content: content}
	if err := r.do(http.MethodPost, "/api/posts", nil, payload, http.StatusCreated, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// GetPost scans the list for id; the API has no single-post read.
func (r *RemoteClient) GetPost(id int) (models.Post, error) {
	posts, err := r.ListPosts(ListPostsOptions{})
	if err != nil {
		return models.Post{}, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, NewNotFoundError(id)
}

// UpdatePost sends PUT /api/posts/{id} with only the supplied fields.
func (r *RemoteClient) UpdatePost(id int, patch models.PostPatch) (models.Post, error) {
	var post models.Post
	path := "/api/posts/" + strconv.Itoa(id)
	if err := r.do(http.MethodPut, path, nil, patch, http.StatusOK, &post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost sends DELETE /api/posts/{id}.
func (r *RemoteClient) DeletePost(id int) error {
	var msg remoteMessageResponse
	path := "/api/posts/" + strconv.Itoa(id)
	return r.do(http.MethodDelete, path, nil, nil, http.StatusOK, &msg)
}

// SearchPosts fetches GET /api/posts/search.
func (r *RemoteClient) SearchPosts(opts SearchOptions) ([]models.Post, error) {
	q := url.Values{}
	if opts.Title != "" {
		q.Set("title", opts.Title)
	}
	if opts.Content != "" {
		q.Set("content", opts.Content)
	}

	var posts []models.Post
	if err := r.do(http.MethodGet, "/api/posts/search", q, nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Close releases idle connections.
func (r *RemoteClient) Close() error {
	r.client.CloseIdleConnections()
	return nil
}

func (r *RemoteClient) do(method, path string, query url.Values, payload any, want int, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := r.apiURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		return decodeRemoteError(resp.StatusCode, respBody)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeRemoteError maps an API error response onto the storage error types.
func decodeRemoteError(status int, body []byte) error {
	var payload remoteErrorResponse
	_ = json.Unmarshal(body, &payload)

	switch {
	case status == http.StatusNotFound && payload.Error != "":
		return &NotFoundError{ID: notFoundID(payload.Error)}
	case status == http.StatusBadRequest && len(payload.Errors) > 0:
		return &ValidationError{Fields: payload.Errors}
	case status == http.StatusBadRequest && payload.Error == NoInputError().Message:
		return NoInputError()
	case status == http.StatusBadRequest && payload.Error != "":
		return &InvalidArgumentError{Message: payload.Error}
	}
	return fmt.Errorf("remote API returned %d: %s", status, strings.TrimSpace(string(body)))
}

// notFoundID extracts the id from "Post with id N not found.".
func notFoundID(msg string) string {
	id := strings.TrimPrefix(msg, "Post with id ")
	return strings.TrimSuffix(id, " not found.")
}

// ABOUTME: Tests for the remote postboard API client using httptest servers.
// ABOUTME: Covers request shapes, query params, and error payload translation.
package storage

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389-research/postboard/internal/models"
)

func TestRemoteClientListPostsQuery(t *testing.T) {
	var receivedPath, receivedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.RawQuery
		if r.Method != "GET" {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.SeedPosts())
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	posts, err := client.ListPosts(ListPostsOptions{Sort: "title", Direction: "desc"})
	if err != nil {
		t.Fatalf("ListPosts error: %v", err)
	}

	if receivedPath != "/api/posts" {
		t.Errorf("expected path /api/posts, got %s", receivedPath)
	}
	for _, expected := range []string{"sort=title", "direction=desc"} {
		if !strings.Contains(receivedQuery, expected) {
			t.Errorf("expected query to contain %q, got %q", expected, receivedQuery)
		}
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
}

func TestRemoteClientCreatePost(t *testing.T) {
	var receivedBody []byte
	var receivedContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/posts" || r.Method != "POST" {
			t.Errorf("expected POST /api/posts, got %s %s", r.Method, r.URL.Path)
		}
		receivedContentType = r.Header.Get("Content-Type")
		receivedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"title":"T","content":"C"}`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	post, err := client.CreatePost("T", "C")
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	if receivedContentType != "application/json" {
		t.Errorf("expected 'application/json', got %q", receivedContentType)
	}
	var payload createPostPayload
	if err := json.Unmarshal(receivedBody, &payload); err != nil {
		t.Fatalf("failed to unmarshal request body: %v", err)
	}
	if payload.Title != "T" || payload.Content != "C" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if post.ID != 3 {
		t.Errorf("expected id 3, got %d", post.ID)
	}
}

func TestRemoteClientCreatePostValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":{"title":"Title is required.","content":"Content is required."}}`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.CreatePost("", "")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Fields["title"] != "Title is required." {
		t.Errorf("unexpected title message: %q", verr.Fields["title"])
	}
	if verr.Fields["content"] != "Content is required." {
		t.Errorf("unexpected content message: %q", verr.Fields["content"])
	}
}

func TestRemoteClientUpdateSendsOnlySuppliedFields(t *testing.T) {
	var receivedBody []byte
	var receivedPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		if r.Method != "PUT" {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		receivedBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"id":1,"title":"New","content":"This is the first post."}`))
	}))
	defer server.Close()

	title := "New"
	client := NewRemoteClient(server.URL)
	post, err := client.UpdatePost(1, models.PostPatch{Title: &title})
	if err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}

	if receivedPath != "/api/posts/1" {
		t.Errorf("expected /api/posts/1, got %s", receivedPath)
	}
	if string(receivedBody) != `{"title":"New"}` {
		t.Errorf("expected only title in body, got %s", receivedBody)
	}
	if post.Title != "New" {
		t.Errorf("expected updated title, got %q", post.Title)
	}
}

func TestRemoteClientDeleteNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Post with id 9 not found."}`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	err := client.DeletePost(9)
	if !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
	if err.Error() != "Post with id 9 not found." {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestRemoteClientInvalidArgument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid sort field 'id'. Must be one of: title, content."}`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.ListPosts(ListPostsOptions{Sort: "id"})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestRemoteClientSearchQuery(t *testing.T) {
	var receivedPath, receivedQuery string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL + "/api/")
	posts, err := client.SearchPosts(SearchOptions{Title: "first", Content: "post"})
	if err != nil {
		t.Fatalf("SearchPosts error: %v", err)
	}

	if receivedPath != "/api/posts/search" {
		t.Errorf("expected /api/posts/search (api suffix stripped), got %s", receivedPath)
	}
	for _, expected := range []string{"title=first", "content=post"} {
		if !strings.Contains(receivedQuery, expected) {
			t.Errorf("expected query to contain %q, got %q", expected, receivedQuery)
		}
	}
	if len(posts) != 0 {
		t.Errorf("expected no posts, got %d", len(posts))
	}
}

func TestRemoteClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("internal error"))
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	_, err := client.ListPosts(ListPostsOptions{})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("expected error to mention status code, got: %v", err)
	}
}

func TestRemoteClientGetPostScansList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.SeedPosts())
	}))
	defer server.Close()

	client := NewRemoteClient(server.URL)
	post, err := client.GetPost(2)
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if post.Title != "Second post" {
		t.Errorf("expected 'Second post', got %q", post.Title)
	}

	if _, err := client.GetPost(5); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got %v", err)
	}
}

func TestRemoteClientConnectionError(t *testing.T) {
	client := NewRemoteClient("http://localhost:1")
	_, err := client.ListPosts(ListPostsOptions{})
	if err == nil {
		t.Fatal("expected error for connection failure")
	}
}

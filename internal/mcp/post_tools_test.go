// ABOUTME: Tests for post MCP tool handlers.
// ABOUTME: Calls handlers directly with synthetic requests against a seeded memory store.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/storage"
)

func makePostServer(t *testing.T) (*Server, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewSeededMemoryStore()
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	return server, store
}

// callTool builds a request and dispatches to the handler by tool name.
func callTool(t *testing.T, s *Server, name string, args interface{}) *gomcp.CallToolResult {
	t.Helper()
	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal args: %v", err)
	}

	req := &gomcp.CallToolRequest{
		Params: &gomcp.CallToolParamsRaw{
			Name:      name,
			Arguments: argsJSON,
		},
	}
	ctx := context.Background()

	handlers := map[string]func(context.Context, *gomcp.CallToolRequest) (*gomcp.CallToolResult, error){
		"list_posts":   s.handleListPosts,
		"create_post":  s.handleCreatePost,
		"update_post":  s.handleUpdatePost,
		"delete_post":  s.handleDeletePost,
		"search_posts": s.handleSearchPosts,
	}
	handler, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := handler(ctx, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return result
}

func getTextContent(result *gomcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*gomcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestNewServerRequiresStore(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("expected error when post store is nil")
	}
}

func TestListPostsTool(t *testing.T) {
	s, _ := makePostServer(t)

	result := callTool(t, s, "list_posts", map[string]string{})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	text := getTextContent(result)
	if !strings.Contains(text, "#1 First post") || !strings.Contains(text, "#2 Second post") {
		t.Errorf("expected both seed posts, got: %s", text)
	}
}

func TestListPostsToolSortedDesc(t *testing.T) {
	s, _ := makePostServer(t)

	result := callTool(t, s, "list_posts", map[string]string{"sort": "title", "direction": "desc"})
	text := getTextContent(result)
	if strings.Index(text, "Second post") > strings.Index(text, "First post") {
		t.Errorf("expected Second post before First post, got: %s", text)
	}
}

func TestListPostsToolInvalidSort(t *testing.T) {
	s, _ := makePostServer(t)

	result := callTool(t, s, "list_posts", map[string]string{"sort": "id"})
	if !result.IsError {
		t.Fatal("expected error for invalid sort field")
	}
	if !strings.Contains(getTextContent(result), "Invalid sort field") {
		t.Errorf("unexpected error text: %s", getTextContent(result))
	}
}

func TestCreatePostTool(t *testing.T) {
	s, store := makePostServer(t)

	result := callTool(t, s, "create_post", map[string]string{"title": "T", "content": "C"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if !strings.Contains(getTextContent(result), "ID: 3") {
		t.Errorf("expected new id 3, got: %s", getTextContent(result))
	}
	if store.Len() != 3 {
		t.Errorf("expected 3 posts, got %d", store.Len())
	}
}

func TestCreatePostToolRequiresFields(t *testing.T) {
	s, store := makePostServer(t)

	result := callTool(t, s, "create_post", map[string]string{})
	if !result.IsError {
		t.Fatal("expected error when title and content are missing")
	}
	text := getTextContent(result)
	if !strings.Contains(text, "Title is required.") || !strings.Contains(text, "Content is required.") {
		t.Errorf("expected both field messages, got: %s", text)
	}
	if store.Len() != 2 {
		t.Errorf("expected collection unchanged, got %d posts", store.Len())
	}
}

func TestUpdatePostTool(t *testing.T) {
	s, store := makePostServer(t)

	result := callTool(t, s, "update_post", map[string]interface{}{"id": 2, "content": "changed"})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}

	post, err := store.GetPost(2)
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if post.Title != "Second post" || post.Content != "changed" {
		t.Errorf("unexpected post after update: %+v", post)
	}
}

func TestUpdatePostToolErrors(t *testing.T) {
	s, _ := makePostServer(t)

	if result := callTool(t, s, "update_post", map[string]interface{}{"title": "x"}); !result.IsError {
		t.Error("expected error when id is missing")
	}
	if result := callTool(t, s, "update_post", map[string]interface{}{"id": 1}); !result.IsError {
		t.Error("expected error when no fields are supplied")
	}

	result := callTool(t, s, "update_post", map[string]interface{}{"id": 77, "title": "x"})
	if !result.IsError {
		t.Fatal("expected error for unknown id")
	}
	if getTextContent(result) != "Post with id 77 not found." {
		t.Errorf("unexpected error text: %s", getTextContent(result))
	}
}

func TestDeletePostTool(t *testing.T) {
	s, store := makePostServer(t)

	result := callTool(t, s, "delete_post", map[string]interface{}{"id": 1})
	if result.IsError {
		t.Fatalf("expected success, got error: %s", getTextContent(result))
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 post left, got %d", store.Len())
	}

	result = callTool(t, s, "delete_post", map[string]interface{}{"id": 1})
	if !result.IsError {
		t.Error("expected error deleting an already deleted post")
	}
}

func TestSearchPostsTool(t *testing.T) {
	s, _ := makePostServer(t)

	result := callTool(t, s, "search_posts", map[string]string{"title": "FIRST"})
	text := getTextContent(result)
	if !strings.Contains(text, "First post") || strings.Contains(text, "Second post") {
		t.Errorf("expected only the first post, got: %s", text)
	}

	result = callTool(t, s, "search_posts", map[string]string{"content": "missing"})
	if getTextContent(result) != "No posts found." {
		t.Errorf("expected no posts, got: %s", getTextContent(result))
	}
}

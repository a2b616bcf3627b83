// ABOUTME: MCP tool implementations for post operations.
// ABOUTME: Registers list_posts, create_post, update_post, delete_post, and search_posts.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/postboard/internal/models"
	"github.com/2389-research/postboard/internal/storage"
)

func (s *Server) registerPostTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_posts",
		Description: "List all posts, optionally sorted by title or content.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"sort": {"type": "string", "enum": ["title", "content"], "description": "Field to sort by (case-insensitive)"},
				"direction": {"type": "string", "enum": ["asc", "desc"], "description": "Sort direction (default asc)"}
			}
		}`),
	}, s.handleListPosts)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_post",
		Description: "Create a new post. Both title and content are required.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Post title", "minLength": 1},
				"content": {"type": "string", "description": "Post body", "minLength": 1}
			},
			"required": ["title", "content"]
		}`),
	}, s.handleCreatePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_post",
		Description: "Replace the title and/or content of an existing post.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "ID of the post to update"},
				"title": {"type": "string", "description": "New title (omit to keep)"},
				"content": {"type": "string", "description": "New content (omit to keep)"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdatePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_post",
		Description: "Delete a post by ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer", "description": "ID of the post to delete"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeletePost)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_posts",
		Description: "Find posts whose title and content contain the given substrings (case-insensitive).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Substring to match in the title"},
				"content": {"type": "string", "description": "Substring to match in the content"}
			}
		}`),
	}, s.handleSearchPosts)
}

func (s *Server) handleListPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Sort      string `json:"sort"`
		Direction string `json:"direction"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	posts, err := s.posts.ListPosts(storage.ListPostsOptions{Sort: args.Sort, Direction: args.Direction})
	if err != nil {
		return storeError(err), nil
	}
	return postsResult(posts), nil
}

func (s *Server) handleCreatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if fieldErrs := models.ValidateNewPost(args.Title, args.Content); fieldErrs != nil {
		return storeError(&storage.ValidationError{Fields: fieldErrs}), nil
	}

	post, err := s.posts.CreatePost(args.Title, args.Content)
	if err != nil {
		return storeError(err), nil
	}
	return textResult("Post created (ID: %d)", post.ID), nil
}

func (s *Server) handleUpdatePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID      *int    `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == nil {
		return toolError("id is required"), nil
	}

	patch := models.PostPatch{Title: args.Title, Content: args.Content}
	if patch.Empty() {
		return storeError(storage.NoInputError()), nil
	}

	post, err := s.posts.UpdatePost(*args.ID, patch)
	if err != nil {
		return storeError(err), nil
	}
	return postsResult([]models.Post{post}), nil
}

func (s *Server) handleDeletePost(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID *int `json:"id"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.ID == nil {
		return toolError("id is required"), nil
	}

	if err := s.posts.DeletePost(*args.ID); err != nil {
		return storeError(err), nil
	}
	return textResult("Post with id %d has been deleted successfully.", *args.ID), nil
}

func (s *Server) handleSearchPosts(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := unmarshalArgs(req, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	posts, err := s.posts.SearchPosts(storage.SearchOptions{Title: args.Title, Content: args.Content})
	if err != nil {
		return storeError(err), nil
	}
	return postsResult(posts), nil
}

// unmarshalArgs decodes tool arguments; absent arguments decode as an empty object.
func unmarshalArgs(req *gomcp.CallToolRequest, v any) error {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func postsResult(posts []models.Post) *gomcp.CallToolResult {
	if len(posts) == 0 {
		return textResult("No posts found.")
	}

	var sb strings.Builder
	for _, post := range posts {
		sb.WriteString(fmt.Sprintf("---\n#%d %s\n%s\n", post.ID, post.Title, post.Content))
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}
}

func textResult(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

func storeError(err error) *gomcp.CallToolResult {
	var verr *storage.ValidationError
	if errors.As(err, &verr) {
		return toolError("validation failed: %s", verr.Error())
	}
	return toolError("%s", err.Error())
}

func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

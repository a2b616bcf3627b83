// ABOUTME: Interface definition for post storage.
// ABOUTME: Defines the contract for listing, creating, updating, deleting, and searching posts.
package storage

import (
	"github.com/2389-research/postboard/internal/models"
)

// ListPostsOptions configures ordering for listing posts.
// Values are raw caller input; stores reject unknown ones with InvalidArgumentError.
type ListPostsOptions struct {
	Sort      string // "title", "content", or empty for collection order
	Direction string // "asc", "desc", or empty for ascending
}

// SearchOptions holds case-insensitive substring queries. Empty matches all.
type SearchOptions struct {
	Title   string
	Content string
}

// PostStore defines operations over the post collection.
type PostStore interface {
	// ListPosts returns all posts, optionally sorted.
	ListPosts(opts ListPostsOptions) ([]models.Post, error)

	// CreatePost assigns the next id and appends a new post.
	CreatePost(title, content string) (models.Post, error)

	// GetPost returns the post with the given id.
	GetPost(id int) (models.Post, error)

	// UpdatePost applies the supplied fields of patch to the post with the given id.
	UpdatePost(id int, patch models.PostPatch) (models.Post, error)

	// DeletePost removes the post with the given id.
	DeletePost(id int) error

	// SearchPosts returns posts whose title and content contain the queries.
	SearchPosts(opts SearchOptions) ([]models.Post, error)

	// Close releases any resources held by the store.
	Close() error
}

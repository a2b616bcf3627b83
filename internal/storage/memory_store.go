// ABOUTME: In-memory post store guarded by a single mutex.
// ABOUTME: Holds posts in insertion order for the lifetime of the process.
package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/2389-research/postboard/internal/models"
)

// MemoryStore keeps posts in a slice. All methods are safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	posts []models.Post
}

// NewMemoryStore creates a store holding a copy of the given posts.
func NewMemoryStore(posts []models.Post) *MemoryStore {
	s := &MemoryStore{}
	s.posts = append(s.posts, posts...)
	return s
}

// NewSeededMemoryStore creates a store holding the startup seed posts.
func NewSeededMemoryStore() *MemoryStore {
	return NewMemoryStore(models.SeedPosts())
}

// Len returns the number of stored posts.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

// ListPosts returns a copy of the collection, sorted when opts.Sort is set.
func (s *MemoryStore) ListPosts(opts ListPostsOptions) ([]models.Post, error) {
	field, ok := models.ParseSortField(opts.Sort)
	if !ok {
		return nil, &InvalidArgumentError{
			Message: "Invalid sort field '" + opts.Sort + "'. Must be one of: title, content.",
		}
	}
	direction, ok := models.ParseDirection(opts.Direction)
	if !ok {
		return nil, &InvalidArgumentError{
			Message: "Invalid direction '" + opts.Direction + "'. Must be 'asc' or 'desc'.",
		}
	}

	s.mu.Lock()
	posts := s.snapshot()
	s.mu.Unlock()

	if field == models.SortNone {
		return posts, nil
	}

	keys := make([]string, len(posts))
	for i, p := range posts {
		keys[i] = strings.ToLower(p.FieldValue(field))
	}
	sort.Stable(byKey{posts: posts, keys: keys, desc: direction == models.Descending})
	return posts, nil
}

// CreatePost appends a post with id max(existing)+1.
// The id is recomputed every time, so deleting the highest id frees it for reuse.
func (s *MemoryStore) CreatePost(title, content string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := models.Post{
		ID:      s.maxID() + 1,
		Title:   title,
		Content: content,
	}
	s.posts = append(s.posts, post)
	return post, nil
}

// GetPost returns the first post with the given id.
func (s *MemoryStore) GetPost(id int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Post{}, NewNotFoundError(id)
	}
	return s.posts[idx], nil
}

// UpdatePost replaces the supplied fields in place. Empty values are accepted.
func (s *MemoryStore) UpdatePost(id int, patch models.PostPatch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Post{}, NewNotFoundError(id)
	}
	if patch.Title != nil {
		s.posts[idx].Title = *patch.Title
	}
	if patch.Content != nil {
		s.posts[idx].Content = *patch.Content
	}
	return s.posts[idx], nil
}

// DeletePost removes the first post with the given id.
func (s *MemoryStore) DeletePost(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return NewNotFoundError(id)
	}
	s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	return nil
}

// SearchPosts filters by case-insensitive substring on title AND content.
func (s *MemoryStore) SearchPosts(opts SearchOptions) ([]models.Post, error) {
	titleQuery := strings.ToLower(opts.Title)
	contentQuery := strings.ToLower(opts.Content)

	s.mu.Lock()
	defer s.mu.Unlock()

	matches := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if !strings.Contains(strings.ToLower(p.Title), titleQuery) {
			continue
		}
		if !strings.Contains(strings.ToLower(p.Content), contentQuery) {
			continue
		}
		matches = append(matches, p)
	}
	return matches, nil
}

// Close releases any resources held by the store.
func (s *MemoryStore) Close() error {
	return nil
}

// snapshot copies the collection. Caller holds mu.
func (s *MemoryStore) snapshot() []models.Post {
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// maxID returns the largest stored id, or 0 when empty. Caller holds mu.
func (s *MemoryStore) maxID() int {
	highest := 0
	for _, p := range s.posts {
		if p.ID > highest {
			highest = p.ID
		}
	}
	return highest
}

// indexOf returns the index of the first post with id, or -1. Caller holds mu.
func (s *MemoryStore) indexOf(id int) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// byKey sorts posts by precomputed lowercase keys.
type byKey struct {
	posts []models.Post
	keys  []string
	desc  bool
}

func (b byKey) Len() int { return len(b.posts) }

func (b byKey) Less(i, j int) bool {
	if b.desc {
		return b.keys[i] > b.keys[j]
	}
	return b.keys[i] < b.keys[j]
}

func (b byKey) Swap(i, j int) {
	b.posts[i], b.posts[j] = b.posts[j], b.posts[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}

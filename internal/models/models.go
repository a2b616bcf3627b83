// ABOUTME: Core data model for posts plus seed data and create-time validation.
// ABOUTME: Also defines the sort field and direction vocabulary for list reads.
package models

// Post is a short text record served by postboard.
type Post struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PostPatch carries optional replacements for a post's title and content.
// A nil field means "keep the stored value".
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// Empty returns true if the patch supplies neither field.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// SeedPosts returns the posts present when the service starts.
func SeedPosts() []Post {
	return []Post{
		{ID: 1, Title: "First post", Content: "This is the first post."},
		{ID: 2, Title: "Second post", Content: "This is the second post."},
	}
}

// FieldErrors maps a field name to a human-readable validation message.
type FieldErrors map[string]string

// ValidateNewPost checks the fields required to create a post.
// Returns nil when both title and content are non-empty.
func ValidateNewPost(title, content string) FieldErrors {
	errs := FieldErrors{}
	if title == "" {
		errs["title"] = "Title is required."
	}
	if content == "" {
		errs["content"] = "Content is required."
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SortField names a post field that list reads can order by.
type SortField string

const (
	SortNone    SortField = ""
	SortTitle   SortField = "title"
	SortContent SortField = "content"
)

// Direction is the ordering applied with a SortField.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseSortField validates a raw sort query value. Empty means no sort.
func ParseSortField(raw string) (SortField, bool) {
	switch SortField(raw) {
	case SortNone, SortTitle, SortContent:
		return SortField(raw), true
	}
	return SortNone, false
}

// ParseDirection validates a raw direction query value. Empty means ascending.
func ParseDirection(raw string) (Direction, bool) {
	switch Direction(raw) {
	case "":
		return Ascending, true
	case Ascending, Descending:
		return Direction(raw), true
	}
	return Ascending, false
}

// FieldValue returns the text of the named field.
func (p Post) FieldValue(field SortField) string {
	if field == SortContent {
		return p.Content
	}
	return p.Title
}

package domain

import "time"

// Comment is a message posted against one day page.
// AuthorID is a weak reference: the user row may be gone by read time.
type Comment struct {
	ID        int64
	Day       int
	Text      string
	AuthorID  int64
	CreatedAt time.Time
}

// CommentWithAuthor is a comment with its author resolved for rendering.
// Author is nil when the referenced user no longer exists.
type CommentWithAuthor struct {
	Comment
	Author *User
}

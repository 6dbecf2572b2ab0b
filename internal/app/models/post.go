package models

import "time"

// Post is a Squad Hub feed entry.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	FileURL   *string   `json:"fileUrl,omitempty" db:"file_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author     *User     `json:"author,omitempty"`
	Tags       []Tag     `json:"tags,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
	LikesCount int       `json:"likesCount"`
}

// Comment is a reply to a post.
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	PostID    int64     `json:"postId" db:"post_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author     *User `json:"author,omitempty"`
	LikesCount int   `json:"likesCount"`
}

package models

// Tag is a subject or skill label shared by studios, lessons and posts.
// Tags are created lazily (get-or-create) and never deleted.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

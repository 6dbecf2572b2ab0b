package dto

import "time"

// CreateLessonRequest represents lesson creation data. For markdown lessons
// Content carries the markdown text; for video lessons the video URL; file
// lessons carry their payload as an uploaded file in the multipart form, as
// does the optional cover image.
type CreateLessonRequest struct {
	Title       string   `form:"title" binding:"required,max=200"`
	Description string   `form:"description"`
	LessonType  string   `form:"lessonType" binding:"required,oneof=markdown file video"`
	Content     string   `form:"content"`
	Tags        []string `form:"tags"`
}

// UpdateLessonRequest represents a partial lesson update. A non-nil Tags list
// replaces the attached tags; nil leaves them untouched. Position moves the
// lesson within the studio's curriculum order. The lesson type is fixed at
// creation.
type UpdateLessonRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Position    *int      `json:"position"`
	Tags        *[]string `json:"tags"`
}

// LessonCard is the reduced lesson view used in lists and search results.
type LessonCard struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	StudioID      int64         `json:"studioId"`
	StudioName    string        `json:"studioName"`
	CoverImageURL *string       `json:"coverImageUrl,omitempty"`
	LessonType    string        `json:"lessonType"`
	Tags          []TagResponse `json:"tags"`
}

// LessonDetailResponse is the full lesson view.
type LessonDetailResponse struct {
	ID            int64         `json:"id"`
	StudioID      int64         `json:"studioId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	CoverImageURL *string       `json:"coverImageUrl,omitempty"`
	LessonType    string        `json:"lessonType"`
	Content       string        `json:"content"`
	Position      int           `json:"position"`
	Tags          []TagResponse `json:"tags"`
	CreatedAt     time.Time     `json:"createdAt"`
}

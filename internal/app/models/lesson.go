package models

import "time"

// LessonType discriminates the content payload of a lesson.
type LessonType string

const (
	LessonTypeMarkdown LessonType = "markdown"
	LessonTypeFile     LessonType = "file"
	LessonTypeVideo    LessonType = "video"
)

// Valid reports whether t is a known lesson type.
func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeMarkdown, LessonTypeFile, LessonTypeVideo:
		return true
	}
	return false
}

// Lesson is one unit of course content inside a studio. The content column
// holds exactly one payload whose meaning depends on LessonType: markdown
// text, a stored file path, or a video URL. A lesson can never carry two
// payloads or none.
type Lesson struct {
	ID            int64      `json:"id" db:"id"`
	StudioID      int64      `json:"studioId" db:"studio_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	LessonType    LessonType `json:"lessonType" db:"lesson_type"`
	Content       string     `json:"content" db:"content"`
	Position      int        `json:"position" db:"position"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`

	// Related entities
	Tags []Tag `json:"tags,omitempty"`
}

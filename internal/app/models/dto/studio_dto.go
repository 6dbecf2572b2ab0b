package dto

import "time"

// CreateStudioRequest represents studio creation data. The cover image
// travels in the multipart form alongside these fields.
type CreateStudioRequest struct {
	Name        string   `form:"name" binding:"required,max=200"`
	JobTitle    string   `form:"jobTitle" binding:"max=200"`
	Description string   `form:"description" binding:"required"`
	Tags        []string `form:"tags"`
}

// UpdateStudioRequest represents a partial studio update. A non-nil Tags list
// replaces the attached tags entirely; nil leaves them untouched.
type UpdateStudioRequest struct {
	Name        *string   `json:"name"`
	JobTitle    *string   `json:"jobTitle"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
}

// RateStudioRequest carries a 1-5 star rating.
type RateStudioRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// TagResponse is the tag view.
type TagResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StudioCard is the reduced view used in lists and search results.
type StudioCard struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	JobTitle         string        `json:"jobTitle,omitempty"`
	Description      string        `json:"description"`
	CoverImageURL    *string       `json:"coverImageUrl,omitempty"`
	Owner            *UserResponse `json:"owner,omitempty"`
	Tags             []TagResponse `json:"tags"`
	SubscribersCount int           `json:"subscribersCount"`
}

// StudioDetailResponse is the full public studio view.
type StudioDetailResponse struct {
	StudioCard
	AverageRating float64      `json:"averageRating"`
	IsSubscribed  bool         `json:"isSubscribed"`
	Lessons       []LessonCard `json:"lessons"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// StudioDashboardResponse is the owner-only aggregate view.
type StudioDashboardResponse struct {
	SubscriberCount int          `json:"subscriberCount"`
	AverageRating   float64      `json:"averageRating"`
	LessonCount     int          `json:"lessonCount"`
	RecentLessons   []LessonCard `json:"recentLessons"`
}

// SubscriberResponse is one entry of the owner's subscriber listing.
type SubscriberResponse struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// TeacherCard is the explore view of a user who owns a studio.
type TeacherCard struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Headline   string `json:"headline"`
	StudioID   int64  `json:"studioId"`
	StudioName string `json:"studioName"`
}

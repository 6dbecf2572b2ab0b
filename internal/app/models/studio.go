package models

import "time"

// Studio is a teacher's storefront. Each user owns at most one studio,
// enforced by a unique constraint on owner_id.
type Studio struct {
	ID            int64     `json:"id" db:"id"`
	OwnerID       int64     `json:"ownerId" db:"owner_id"`
	Name          string    `json:"name" db:"name"`
	JobTitle      string    `json:"jobTitle" db:"job_title"`
	Description   string    `json:"description" db:"description"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner *User `json:"owner,omitempty"`
	Tags  []Tag `json:"tags,omitempty"`
}

// StudioRating is a subscriber's 1-5 star rating of a studio. One row per
// (studio, user) pair; re-rating overwrites the value.
type StudioRating struct {
	ID        int64     `json:"id" db:"id"`
	StudioID  int64     `json:"studioId" db:"studio_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package dto

import "time"

// UpdateProfileRequest represents a partial profile update. Nil pointers mean
// "leave untouched". Degrees arrives as a JSON-encoded string list; the
// profile picture travels in the multipart form alongside these fields.
type UpdateProfileRequest struct {
	Headline     *string `form:"headline" json:"headline"`
	ContactEmail *string `form:"contactEmail" json:"contactEmail"`
	Degrees      *string `form:"degrees" json:"degrees"`
	Username     *string `form:"username" json:"username"`
}

// ProfileResponse is the profile detail view.
type ProfileResponse struct {
	Headline            string     `json:"headline"`
	ContactEmail        string     `json:"contactEmail"`
	ProfilePictureURL   *string    `json:"profilePictureUrl,omitempty"`
	CVFileURL           *string    `json:"cvFileUrl,omitempty"`
	Degrees             []string   `json:"degrees"`
	UsernameLastChanged *time.Time `json:"usernameLastChanged,omitempty"`
}

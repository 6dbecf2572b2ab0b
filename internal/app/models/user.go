package models

import (
	"time"
)

// RoleType is the permission tier of a user. TEACHER is granted when the user
// creates a studio and revoked when the studio is deleted.
type RoleType string

const (
	RoleMember  RoleType = "MEMBER"
	RoleTeacher RoleType = "TEACHER"
)

// User defines the user model based on the 'users' table.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // hashed, excluded from JSON
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Role      RoleType  `json:"role" db:"role"`
	IsActive  bool      `json:"isActive" db:"is_active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Profile *Profile `json:"profile,omitempty"`
}

// Profile defines per-user extended data based on the 'profiles' table.
// One row is created per user at registration.
type Profile struct {
	ID                  int64      `json:"id" db:"id"`
	UserID              int64      `json:"userId" db:"user_id"`
	Headline            string     `json:"headline" db:"headline"`
	ContactEmail        string     `json:"contactEmail" db:"contact_email"`
	ProfilePictureURL   *string    `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	CVFileURL           *string    `json:"cvFileUrl,omitempty" db:"cv_file_url"`
	Degrees             []string   `json:"degrees" db:"degrees"`
	UsernameLastChanged *time.Time `json:"usernameLastChanged,omitempty" db:"username_last_changed"`
	CreatedAt           time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time  `json:"updatedAt" db:"updated_at"`
}

// RefreshToken is a server-side record of an issued refresh token.
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Expired reports whether the token is revoked or past its expiry.
func (t *RefreshToken) Expired() bool {
	return t.Revoked || time.Now().After(t.ExpiresAt)
}

package models

import "time"

// Meeting is a scheduled video session hosted by a user. The room identifier
// maps to an external video-meeting room.
type Meeting struct {
	ID          int64     `json:"id" db:"id"`
	HostID      int64     `json:"hostId" db:"host_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	RoomID      string    `json:"roomId" db:"room_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Host *User `json:"host,omitempty"`
}

// InvitationStatus is the lifecycle state of a meeting invitation.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Valid reports whether s is a known invitation status.
func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined:
		return true
	}
	return false
}

// Invitation addresses one user for one meeting.
type Invitation struct {
	ID        int64            `json:"id" db:"id"`
	MeetingID int64            `json:"meetingId" db:"meeting_id"`
	InviteeID int64            `json:"inviteeId" db:"invitee_id"`
	Status    InvitationStatus `json:"status" db:"status"`
	IsRead    bool             `json:"isRead" db:"is_read"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`

	// Related entities
	Meeting *Meeting `json:"meeting,omitempty"`
}

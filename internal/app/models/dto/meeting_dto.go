package dto

import "time"

// CreateMeetingRequest represents meeting creation data. When RoomID is empty
// a fresh room identifier is generated. InviteeIDs receive pending
// invitations.
type CreateMeetingRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	RoomID      string  `json:"roomId" binding:"max=100"`
	InviteeIDs  []int64 `json:"inviteeIds"`
}

// UpdateInvitationRequest transitions an invitation's status.
type UpdateInvitationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending accepted declined"`
}

// MeetingResponse is the meeting view.
type MeetingResponse struct {
	ID          int64         `json:"id"`
	Host        *UserResponse `json:"host,omitempty"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	RoomID      string        `json:"roomId"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// InvitationResponse is one entry of the caller's invitation listing.
type InvitationResponse struct {
	ID        int64            `json:"id"`
	Meeting   *MeetingResponse `json:"meeting"`
	Status    string           `json:"status"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}

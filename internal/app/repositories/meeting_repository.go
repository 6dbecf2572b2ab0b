package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// MeetingRepository handles database operations for meetings and invitations.
type MeetingRepository struct {
	db Querier
}

// NewMeetingRepository creates a new MeetingRepository.
func NewMeetingRepository(db Querier) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *MeetingRepository) WithTx(tx pgx.Tx) *MeetingRepository {
	return &MeetingRepository{db: tx}
}

// CreateMeeting inserts a new meeting and returns its ID.
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *models.Meeting) (int64, error) {
	query := `
		INSERT INTO meetings (host_id, title, description, room_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		meeting.HostID, meeting.Title, meeting.Description, meeting.RoomID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating meeting: %w", err)
	}
	return id, nil
}

// GetMeetingByID retrieves a meeting with its host.
func (r *MeetingRepository) GetMeetingByID(ctx context.Context, id int64) (*models.Meeting, error) {
	query := `
		SELECT m.id, m.host_id, m.title, m.description, m.room_id, m.created_at,
		       u.username, u.first_name, u.last_name
		FROM meetings m
		JOIN users u ON u.id = m.host_id
		WHERE m.id = $1
	`

	var m models.Meeting
	var host models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.HostID, &m.Title, &m.Description, &m.RoomID, &m.CreatedAt,
		&host.Username, &host.FirstName, &host.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("error getting meeting: %w", err)
	}
	host.ID = m.HostID
	m.Host = &host
	return &m, nil
}

// CreateInvitations addresses a meeting's invitees, one pending invitation
// per user. Duplicate invitees collapse into one row.
func (r *MeetingRepository) CreateInvitations(ctx context.Context, meetingID int64, inviteeIDs []int64) error {
	for _, inviteeID := range inviteeIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO invitations (meeting_id, invitee_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			meetingID, inviteeID)
		if err != nil {
			return fmt.Errorf("error creating invitation: %w", err)
		}
	}
	return nil
}

// GetInvitationByID retrieves an invitation.
func (r *MeetingRepository) GetInvitationByID(ctx context.Context, id int64) (*models.Invitation, error) {
	query := `
		SELECT id, meeting_id, invitee_id, status, is_read, created_at, updated_at
		FROM invitations
		WHERE id = $1
	`

	var inv models.Invitation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.MeetingID, &inv.InviteeID, &inv.Status, &inv.IsRead,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("error getting invitation: %w", err)
	}
	return &inv, nil
}

// ListPendingByInvitee returns a user's pending invitations joined with
// their meetings and hosts, newest first.
func (r *MeetingRepository) ListPendingByInvitee(ctx context.Context, inviteeID int64) ([]models.Invitation, error) {
	query := `
		SELECT i.id, i.meeting_id, i.invitee_id, i.status, i.is_read, i.created_at, i.updated_at,
		       m.host_id, m.title, m.description, m.room_id, m.created_at,
		       u.username, u.first_name, u.last_name
		FROM invitations i
		JOIN meetings m ON m.id = i.meeting_id
		JOIN users u ON u.id = m.host_id
		WHERE i.invitee_id = $1 AND i.status = 'pending'
		ORDER BY i.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, inviteeID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	invitations := []models.Invitation{}
	for rows.Next() {
		var inv models.Invitation
		var m models.Meeting
		var host models.User
		err := rows.Scan(&inv.ID, &inv.MeetingID, &inv.InviteeID, &inv.Status, &inv.IsRead,
			&inv.CreatedAt, &inv.UpdatedAt,
			&m.HostID, &m.Title, &m.Description, &m.RoomID, &m.CreatedAt,
			&host.Username, &host.FirstName, &host.LastName)
		if err != nil {
			return nil, fmt.Errorf("error scanning invitation row: %w", err)
		}
		m.ID = inv.MeetingID
		host.ID = m.HostID
		m.Host = &host
		inv.Meeting = &m
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}

// UpdateInvitationStatus sets an invitation's status and marks it read.
func (r *MeetingRepository) UpdateInvitationStatus(ctx context.Context, id int64, status models.InvitationStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE invitations SET status = $1, is_read = TRUE, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("error updating invitation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrInvitationNotFound
	}
	return nil
}

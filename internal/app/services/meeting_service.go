package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/db"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// MeetingService handles meetings and their invitations.
type MeetingService interface {
	CreateMeeting(ctx context.Context, hostID int64, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error)
	GetMeeting(ctx context.Context, meetingID int64) (*dto.MeetingResponse, error)
	ListInvitations(ctx context.Context, userID int64) ([]dto.InvitationResponse, error)
	RespondToInvitation(ctx context.Context, invitationID, userID int64, status string) (*dto.InvitationResponse, error)
}

// meetingServiceImpl implements MeetingService
type meetingServiceImpl struct {
	db          *db.PostgresDB
	meetingRepo *repositories.MeetingRepository
	userRepo    *repositories.UserRepository
	logger      zerolog.Logger
}

// NewMeetingService creates a new MeetingService.
func NewMeetingService(
	database *db.PostgresDB,
	meetingRepo *repositories.MeetingRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) MeetingService {
	return &meetingServiceImpl{
		db:          database,
		meetingRepo: meetingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateMeeting schedules a meeting and sends pending invitations to the
// invitees. The meeting and its invitations are created atomically.
func (s *meetingServiceImpl) CreateMeeting(ctx context.Context, hostID int64, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	roomID := strings.TrimSpace(req.RoomID)
	if roomID == "" {
		roomID = uuid.New().String()
	}

	meeting := &models.Meeting{
		HostID:      hostID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		RoomID:      roomID,
	}

	// The host never invites themselves.
	inviteeIDs := make([]int64, 0, len(req.InviteeIDs))
	for _, id := range req.InviteeIDs {
		if id != hostID {
			inviteeIDs = append(inviteeIDs, id)
		}
	}

	err := db.WithTransaction(ctx, s.db.Pool, func(tx pgx.Tx) error {
		repo := s.meetingRepo.WithTx(tx)

		meetingID, err := repo.CreateMeeting(ctx, meeting)
		if err != nil {
			return err
		}
		meeting.ID = meetingID

		return repo.CreateInvitations(ctx, meetingID, inviteeIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("meetingID", meeting.ID).Int64("hostID", hostID).
		Int("invitees", len(inviteeIDs)).Msg("Meeting created")

	return s.GetMeeting(ctx, meeting.ID)
}

// GetMeeting returns a meeting with its host.
func (s *meetingServiceImpl) GetMeeting(ctx context.Context, meetingID int64) (*dto.MeetingResponse, error) {
	meeting, err := s.meetingRepo.GetMeetingByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return buildMeetingResponse(meeting), nil
}

// ListInvitations returns the caller's pending invitations, newest first.
func (s *meetingServiceImpl) ListInvitations(ctx context.Context, userID int64) ([]dto.InvitationResponse, error) {
	invitations, err := s.meetingRepo.ListPendingByInvitee(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, *buildInvitationResponse(&invitations[i]))
	}
	return out, nil
}

// RespondToInvitation transitions an invitation's status. Only the invitee
// may respond; responding also marks the invitation read.
func (s *meetingServiceImpl) RespondToInvitation(ctx context.Context, invitationID, userID int64, status string) (*dto.InvitationResponse, error) {
	newStatus := models.InvitationStatus(status)
	if !newStatus.Valid() {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidInvitationState, "Unknown invitation status").
			WithField("status")
	}

	invitation, err := s.meetingRepo.GetInvitationByID(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if invitation.InviteeID != userID {
		return nil, apperrors.NewForbiddenError("Only the invitee can respond to an invitation")
	}

	if err := s.meetingRepo.UpdateInvitationStatus(ctx, invitationID, newStatus); err != nil {
		return nil, err
	}
	invitation.Status = newStatus
	invitation.IsRead = true

	meeting, err := s.meetingRepo.GetMeetingByID(ctx, invitation.MeetingID)
	if err != nil {
		return nil, err
	}
	invitation.Meeting = meeting

	return buildInvitationResponse(invitation), nil
}

func buildMeetingResponse(meeting *models.Meeting) *dto.MeetingResponse {
	return &dto.MeetingResponse{
		ID:          meeting.ID,
		Host:        buildUserResponse(meeting.Host),
		Title:       meeting.Title,
		Description: meeting.Description,
		RoomID:      meeting.RoomID,
		CreatedAt:   meeting.CreatedAt,
	}
}

func buildInvitationResponse(invitation *models.Invitation) *dto.InvitationResponse {
	resp := &dto.InvitationResponse{
		ID:        invitation.ID,
		Status:    string(invitation.Status),
		IsRead:    invitation.IsRead,
		CreatedAt: invitation.CreatedAt,
	}
	if invitation.Meeting != nil {
		resp.Meeting = buildMeetingResponse(invitation.Meeting)
	}
	return resp
}

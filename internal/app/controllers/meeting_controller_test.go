package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

type stubMeetingService struct {
	services.MeetingService
	createFn  func(ctx context.Context, hostID int64, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error)
	respondFn func(ctx context.Context, invitationID, userID int64, status string) (*dto.InvitationResponse, error)
}

func (s *stubMeetingService) CreateMeeting(ctx context.Context, hostID int64, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
	return s.createFn(ctx, hostID, req)
}

func (s *stubMeetingService) RespondToInvitation(ctx context.Context, invitationID, userID int64, status string) (*dto.InvitationResponse, error) {
	return s.respondFn(ctx, invitationID, userID, status)
}

func newMeetingRouter(stub *stubMeetingService) *gin.Engine {
	router := newTestRouter()
	controller := NewMeetingController(stub)
	router.POST("/meetings/create", controller.CreateMeeting)
	router.PUT("/invitations/:id", controller.RespondToInvitation)
	return router
}

func TestCreateMeeting_Created(t *testing.T) {
	stub := &stubMeetingService{
		createFn: func(_ context.Context, hostID int64, req *dto.CreateMeetingRequest) (*dto.MeetingResponse, error) {
			assert.Equal(t, testUserID, hostID)
			assert.Equal(t, []int64{5, 6}, req.InviteeIDs)
			return &dto.MeetingResponse{ID: 1, Title: req.Title, RoomID: "room-xyz"}, nil
		},
	}
	router := newMeetingRouter(stub)

	body := jsonBody(t, dto.CreateMeetingRequest{Title: "Mixing workshop", InviteeIDs: []int64{5, 6}})
	recorder := performRequest(t, router, http.MethodPost, "/meetings/create", body)

	require.Equal(t, http.StatusCreated, recorder.Code)
	var meeting dto.MeetingResponse
	decodeResponse(t, recorder, &meeting)
	assert.Equal(t, "Mixing workshop", meeting.Title)
	assert.Equal(t, "room-xyz", meeting.RoomID)
}

func TestRespondToInvitation_Accepted(t *testing.T) {
	stub := &stubMeetingService{
		respondFn: func(_ context.Context, invitationID, userID int64, status string) (*dto.InvitationResponse, error) {
			assert.Equal(t, int64(4), invitationID)
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, "accepted", status)
			return &dto.InvitationResponse{ID: invitationID, Status: status, IsRead: true}, nil
		},
	}
	router := newMeetingRouter(stub)

	body := jsonBody(t, dto.UpdateInvitationRequest{Status: "accepted"})
	recorder := performRequest(t, router, http.MethodPut, "/invitations/4", body)

	require.Equal(t, http.StatusOK, recorder.Code)
	var invitation dto.InvitationResponse
	decodeResponse(t, recorder, &invitation)
	assert.Equal(t, "accepted", invitation.Status)
	assert.True(t, invitation.IsRead)
}

func TestRespondToInvitation_UnknownStatus(t *testing.T) {
	router := newMeetingRouter(&stubMeetingService{})

	body := jsonBody(t, dto.UpdateInvitationRequest{Status: "maybe"})
	recorder := performRequest(t, router, http.MethodPut, "/invitations/4", body)

	requireErrorCode(t, recorder, http.StatusBadRequest, dto.ErrorCodeValidationFailed)
}

func TestRespondToInvitation_NotInvitee(t *testing.T) {
	stub := &stubMeetingService{
		respondFn: func(_ context.Context, _, _ int64, _ string) (*dto.InvitationResponse, error) {
			return nil, apperrors.NewForbiddenError("Only the invitee can respond to an invitation")
		},
	}
	router := newMeetingRouter(stub)

	body := jsonBody(t, dto.UpdateInvitationRequest{Status: "declined"})
	recorder := performRequest(t, router, http.MethodPut, "/invitations/4", body)

	envelope := requireErrorCode(t, recorder, http.StatusForbidden, dto.ErrorCodeForbidden)
	assert.Equal(t, "Only the invitee can respond to an invitation", envelope.Error.Message)
}

func TestRespondToInvitation_NotFound(t *testing.T) {
	stub := &stubMeetingService{
		respondFn: func(_ context.Context, _, _ int64, _ string) (*dto.InvitationResponse, error) {
			return nil, apperrors.ErrInvitationNotFound
		},
	}
	router := newMeetingRouter(stub)

	body := jsonBody(t, dto.UpdateInvitationRequest{Status: "accepted"})
	recorder := performRequest(t, router, http.MethodPut, "/invitations/404", body)

	requireErrorCode(t, recorder, http.StatusNotFound, dto.ErrorCodeResourceNotFound)
}

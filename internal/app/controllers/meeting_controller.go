package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// MeetingController handles meeting and invitation endpoints.
type MeetingController struct {
	meetingService services.MeetingService
}

// NewMeetingController creates a new MeetingController.
func NewMeetingController(meetingService services.MeetingService) *MeetingController {
	return &MeetingController{meetingService: meetingService}
}

// CreateMeeting handles meeting creation
// @Summary Create a meeting
// @Description Schedules a meeting and sends pending invitations to the invitees. A room identifier is generated when none is given.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateMeetingRequest true "Meeting data"
// @Success 201 {object} dto.APIResponse{data=dto.MeetingResponse} "Meeting created"
// @Router /meetings/create [post]
func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateMeetingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	meeting, err := c.meetingService.CreateMeeting(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(meeting))
}

// GetMeeting handles the meeting detail view
// @Summary Get meeting by ID
// @Description Returns a meeting with its host.
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Meeting ID"
// @Success 200 {object} dto.APIResponse{data=dto.MeetingResponse} "Meeting"
// @Failure 404 {object} dto.APIResponse "Meeting not found"
// @Router /meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	meetingID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	meeting, err := c.meetingService.GetMeeting(ctx, meetingID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(meeting))
}

// ListInvitations handles the caller's invitation listing
// @Summary List invitations
// @Description Returns the caller's pending invitations, newest first.
// @Tags meetings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.InvitationResponse} "Invitations"
// @Router /invitations [get]
func (c *MeetingController) ListInvitations(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	invitations, err := c.meetingService.ListInvitations(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invitations))
}

// RespondToInvitation handles invitation status transitions
// @Summary Respond to an invitation
// @Description Accepts or declines an invitation. Only the invitee may respond; responding marks the invitation read.
// @Tags meetings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param request body dto.UpdateInvitationRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=dto.InvitationResponse} "Updated invitation"
// @Failure 403 {object} dto.APIResponse "Caller is not the invitee"
// @Failure 404 {object} dto.APIResponse "Invitation not found"
// @Router /invitations/{id} [put]
func (c *MeetingController) RespondToInvitation(ctx *gin.Context) {
	invitationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	invitation, err := c.meetingService.RespondToInvitation(ctx, invitationID, userID, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(invitation))
}

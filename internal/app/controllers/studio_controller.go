package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// StudioController handles studio endpoints.
type StudioController struct {
	studioService services.StudioService
}

// NewStudioController creates a new StudioController.
func NewStudioController(studioService services.StudioService) *StudioController {
	return &StudioController{studioService: studioService}
}

// CreateStudio handles studio creation
// @Summary Create a studio
// @Description Opens a studio for the caller and promotes them to TEACHER. Each user owns at most one studio.
// @Tags studios
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Studio name"
// @Param jobTitle formData string false "Owner job title"
// @Param description formData string true "Description"
// @Param tags formData []string false "Tags"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.StudioCard} "Studio created"
// @Failure 400 {object} dto.APIResponse "Caller already owns a studio"
// @Router /studios/create [post]
func (c *StudioController) CreateStudio(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateStudioRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	cover, err := ctx.FormFile("coverImage")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		cover = nil
	}

	studio, err := c.studioService.CreateStudio(ctx, userID, &req, cover)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(studio))
}

// GetStudio handles the public studio view
// @Summary Get studio by ID
// @Description Returns the public studio view with lessons, rating and the caller's subscription state.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Studio ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudioDetailResponse} "Studio"
// @Failure 404 {object} dto.APIResponse "Studio not found"
// @Router /studios/{id} [get]
func (c *StudioController) GetStudio(ctx *gin.Context) {
	studioID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	studio, err := c.studioService.GetStudio(ctx, studioID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(studio))
}

// GetOwnStudio handles the owner's studio view
// @Summary Get own studio
// @Description Returns the caller's studio.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudioDetailResponse} "Studio"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio [get]
func (c *StudioController) GetOwnStudio(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	studio, err := c.studioService.GetOwnStudio(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(studio))
}

// UpdateStudio handles partial studio updates
// @Summary Update own studio
// @Description Applies a partial update to the caller's studio. A tag list replaces the attached tags entirely.
// @Tags studios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudioRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudioCard} "Updated studio"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/update [put]
func (c *StudioController) UpdateStudio(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateStudioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	studio, err := c.studioService.UpdateStudio(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(studio))
}

// UpdateCover handles cover image replacement
// @Summary Update studio cover
// @Description Replaces the caller's studio cover image.
// @Tags studios
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} dto.APIResponse{data=dto.StudioCard} "Updated studio"
// @Router /studio/cover/update [put]
func (c *StudioController) UpdateCover(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	cover, err := ctx.FormFile("coverImage")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Cover image is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	studio, err := c.studioService.UpdateCover(ctx, userID, cover)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(studio))
}

// DeleteStudio handles studio deletion
// @Summary Delete own studio
// @Description Closes the caller's studio, deleting its lessons, and demotes the caller to MEMBER.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Studio deleted"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/delete [delete]
func (c *StudioController) DeleteStudio(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.studioService.DeleteStudio(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Studio deleted successfully"))
}

// GetDashboard handles the owner-only dashboard
// @Summary Get studio dashboard
// @Description Returns subscriber count, average rating, lesson count and recent lessons of the caller's studio.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudioDashboardResponse} "Dashboard"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/dashboard [get]
func (c *StudioController) GetDashboard(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	dashboard, err := c.studioService.GetDashboard(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// Subscribe handles subscribing to a studio
// @Summary Subscribe to a studio
// @Description Adds the caller to the studio's subscriber set. Subscribing twice is a no-op.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Studio ID"
// @Success 200 {object} dto.APIResponse "Subscribed"
// @Failure 404 {object} dto.APIResponse "Studio not found"
// @Router /studios/{id}/subscribe [post]
func (c *StudioController) Subscribe(ctx *gin.Context) {
	studioID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.studioService.Subscribe(ctx, studioID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Subscribed successfully"))
}

// Unsubscribe handles unsubscribing from a studio
// @Summary Unsubscribe from a studio
// @Description Removes the caller from the studio's subscriber set.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Studio ID"
// @Success 200 {object} dto.APIResponse "Unsubscribed"
// @Router /studios/{id}/unsubscribe [post]
func (c *StudioController) Unsubscribe(ctx *gin.Context) {
	studioID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.studioService.Unsubscribe(ctx, studioID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Unsubscribed successfully"))
}

// RateStudio handles rating a studio
// @Summary Rate a studio
// @Description Records a 1-5 star rating. Re-rating overwrites the previous value.
// @Tags studios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Studio ID"
// @Param request body dto.RateStudioRequest true "Rating"
// @Success 200 {object} dto.APIResponse "Rating recorded with new average"
// @Failure 400 {object} dto.APIResponse "Rating out of range"
// @Router /studios/{id}/rate [post]
func (c *StudioController) RateStudio(ctx *gin.Context) {
	studioID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	var req dto.RateStudioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	average, err := c.studioService.RateStudio(ctx, studioID, userID, req.Rating)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"averageRating": average}))
}

// ListSubscribers handles the owner's subscriber listing
// @Summary List subscribers
// @Description Lists the caller's studio subscribers, optionally filtered by name or username.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name or username substring"
// @Success 200 {object} dto.APIResponse{data=[]dto.SubscriberResponse} "Subscribers"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/subscribers [get]
func (c *StudioController) ListSubscribers(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	subscribers, err := c.studioService.ListSubscribers(ctx, userID, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(subscribers))
}

// RemoveSubscriber handles evicting a subscriber
// @Summary Remove a subscriber
// @Description Removes a subscriber from the caller's studio.
// @Tags studios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Subscriber user ID"
// @Success 200 {object} dto.APIResponse "Subscriber removed"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/subscribers/{id}/block [delete]
func (c *StudioController) RemoveSubscriber(ctx *gin.Context) {
	subscriberID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.studioService.RemoveSubscriber(ctx, userID, subscriberID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Subscriber removed successfully"))
}

// parseIDParam reads a numeric path parameter, responding with a validation
// error when it is not a valid number.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter").
			WithDetails("Must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}

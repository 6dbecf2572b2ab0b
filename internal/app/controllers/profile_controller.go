package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// ProfileController handles profile endpoints.
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController.
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile handles reading the caller's profile
// @Summary Get own profile
// @Description Returns the authenticated user's profile.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Router /profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	profile, err := c.profileService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UpdateProfile handles partial profile updates
// @Summary Update profile
// @Description Applies a partial update. Degrees arrives as a JSON-encoded string list; the profile picture is an optional multipart file. A username change is subject to a 30-day cooldown.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param headline formData string false "Headline"
// @Param contactEmail formData string false "Contact email"
// @Param degrees formData string false "JSON array of degrees"
// @Param username formData string false "New username"
// @Param profilePicture formData file false "Profile picture"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Router /profile/update [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	picture, err := ctx.FormFile("profilePicture")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		picture = nil
	}

	profile, err := c.profileService.UpdateProfile(ctx, userID, &req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// UploadCV handles CV uploads
// @Summary Upload CV
// @Description Stores a CV file on the profile, replacing any previous one.
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param cv formData file true "CV file"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.APIResponse "Missing file"
// @Router /profile/upload-cv [post]
func (c *ProfileController) UploadCV(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	file, err := ctx.FormFile("cv")
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "CV file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	profile, err := c.profileService.UploadCV(ctx, userID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// DeleteCV handles CV removal
// @Summary Delete CV
// @Description Removes the stored CV from the profile.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "CV deleted"
// @Router /profile/upload-cv [delete]
func (c *ProfileController) DeleteCV(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.profileService.DeleteCV(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("CV deleted successfully"))
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// ExploreController handles the public discovery search.
type ExploreController struct {
	exploreService services.ExploreService
}

// NewExploreController creates a new ExploreController.
func NewExploreController(exploreService services.ExploreService) *ExploreController {
	return &ExploreController{exploreService: exploreService}
}

// Search handles the explore search
// @Summary Explore studios, courses and teachers
// @Description Searches by name or title substring and tags. The result shape depends on the requested type.
// @Tags explore
// @Produce json
// @Param type query string false "Result type: studio, course or teacher" default(studio)
// @Param q query string false "Search term"
// @Param tags query []string false "Tag filter; any match qualifies"
// @Success 200 {object} dto.APIResponse "Search results"
// @Failure 400 {object} dto.APIResponse "Unknown search type"
// @Router /explore [get]
func (c *ExploreController) Search(ctx *gin.Context) {
	var req dto.ExploreRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	results, err := c.exploreService.Search(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results))
}

// SearchUsers handles user lookup for meeting invitations
// @Summary Search users
// @Description Finds users by name or username substring.
// @Tags explore
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term"
// @Param limit query int false "Maximum results" default(20)
// @Success 200 {object} dto.APIResponse{data=[]dto.UserResponse} "Users"
// @Router /users/search [get]
func (c *ExploreController) SearchUsers(ctx *gin.Context) {
	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	users, err := c.exploreService.SearchUsers(ctx, ctx.Query("q"), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

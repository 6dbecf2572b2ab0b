package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
)

// LessonController handles course content endpoints.
type LessonController struct {
	lessonService services.LessonService
}

// NewLessonController creates a new LessonController.
func NewLessonController(lessonService services.LessonService) *LessonController {
	return &LessonController{lessonService: lessonService}
}

// CreateLesson handles lesson creation
// @Summary Create a lesson
// @Description Adds a lesson to the caller's studio. Markdown text or a video URL arrive in the content field; file lessons carry their payload as the "file" upload.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param lessonType formData string true "Lesson type: markdown, file or video"
// @Param content formData string false "Markdown text or video URL"
// @Param tags formData []string false "Tags"
// @Param file formData file false "Payload for file lessons"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.APIResponse{data=dto.LessonDetailResponse} "Lesson created"
// @Failure 400 {object} dto.APIResponse "Missing or invalid content"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/courses/create [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateLessonRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	payload, err := ctx.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		payload = nil
	}
	cover, err := ctx.FormFile("coverImage")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		cover = nil
	}

	lesson, err := c.lessonService.CreateLesson(ctx, userID, &req, payload, cover)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lesson))
}

// GetLesson handles the lesson detail view
// @Summary Get lesson by ID
// @Description Returns the full lesson view including its content payload.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse{data=dto.LessonDetailResponse} "Lesson"
// @Failure 404 {object} dto.APIResponse "Lesson not found"
// @Router /studio/courses/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx, lessonID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// UpdateLesson handles partial lesson updates
// @Summary Update a lesson
// @Description Applies a partial update to an owned lesson. The lesson type is fixed at creation.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.LessonDetailResponse} "Updated lesson"
// @Failure 403 {object} dto.APIResponse "Lesson missing or not owned by caller"
// @Router /studio/courses/{id}/update [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx, userID, lessonID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lesson))
}

// DeleteLesson handles lesson deletion
// @Summary Delete a lesson
// @Description Removes an owned lesson and its stored files.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {object} dto.APIResponse "Lesson deleted"
// @Failure 403 {object} dto.APIResponse "Lesson missing or not owned by caller"
// @Router /studio/courses/{id}/delete [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	lessonID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.lessonService.DeleteLesson(ctx, userID, lessonID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Lesson deleted successfully"))
}

// ListOwnLessons handles the owner's course listing
// @Summary List own lessons
// @Description Returns the caller's studio lessons in curriculum order.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.LessonCard} "Lessons"
// @Failure 403 {object} dto.APIResponse "Caller owns no studio"
// @Router /studio/my-courses [get]
func (c *LessonController) ListOwnLessons(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	lessons, err := c.lessonService.ListOwnLessons(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lessons))
}

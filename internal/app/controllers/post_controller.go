package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/services"
	"github.com/ekremsevim/studiohub/internal/middleware"
	"github.com/ekremsevim/studiohub/internal/pkg/helpers"
)

// PostController handles Squad Hub endpoints.
type PostController struct {
	postService services.PostService
}

// NewPostController creates a new PostController.
func NewPostController(postService services.PostService) *PostController {
	return &PostController{postService: postService}
}

// CreatePost handles post creation
// @Summary Create a post
// @Description Publishes a post with optional tags and attachment.
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string false "Title"
// @Param content formData string true "Content"
// @Param tags formData []string false "Tags"
// @Param file formData file false "Attachment"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Post created"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	attachment, err := ctx.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		attachment = nil
	}

	post, err := c.postService.CreatePost(ctx, userID, &req, attachment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// ListPosts handles the feed listing
// @Summary List posts
// @Description Returns the newest-first feed page. Like state is computed relative to the caller.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts"
// @Router /posts [get]
func (c *PostController) ListPosts(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	posts, err := c.postService.ListPosts(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// ListOwnPosts handles the caller's post listing
// @Summary List own posts
// @Description Returns the caller's posts, newest first.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=dto.PostListResponse} "Posts"
// @Router /posts/mine [get]
func (c *PostController) ListOwnPosts(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, size := helpers.ParsePaginationParams(ctx)

	posts, err := c.postService.ListOwnPosts(ctx, userID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// GetPost handles the post detail view
// @Summary Get post by ID
// @Description Returns a post with its comments.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	post, err := c.postService.GetPost(ctx, postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost handles post deletion
// @Summary Delete a post
// @Description Removes the caller's own post with its comments and likes.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted"
// @Failure 403 {object} dto.APIResponse "Post missing or not owned by caller"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.postService.DeletePost(ctx, postID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Post deleted successfully"))
}

// TogglePostLike handles post like toggling
// @Summary Toggle post like
// @Description Flips the caller's like on a post and reports the new state.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeToggleResponse} "New like state"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *PostController) TogglePostLike(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	result, err := c.postService.TogglePostLike(ctx, postID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// CreateComment handles comment creation
// @Summary Comment on a post
// @Description Replies to a post.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Comment created"
// @Failure 404 {object} dto.APIResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (c *PostController) CreateComment(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.postService.CreateComment(ctx, postID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// DeleteComment handles comment deletion
// @Summary Delete a comment
// @Description Removes the caller's own comment.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 403 {object} dto.APIResponse "Comment missing or not owned by caller"
// @Router /comments/{id} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	if err := c.postService.DeleteComment(ctx, commentID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Comment deleted successfully"))
}

// ToggleCommentLike handles comment like toggling
// @Summary Toggle comment like
// @Description Flips the caller's like on a comment and reports the new state.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeToggleResponse} "New like state"
// @Failure 404 {object} dto.APIResponse "Comment not found"
// @Router /comments/{id}/like [post]
func (c *PostController) ToggleCommentLike(ctx *gin.Context) {
	commentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	userID := middleware.GetUserID(ctx)

	result, err := c.postService.ToggleCommentLike(ctx, commentID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

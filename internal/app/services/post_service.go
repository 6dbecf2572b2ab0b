package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/app/models/dto"
	"github.com/ekremsevim/studiohub/internal/app/repositories"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
	"github.com/ekremsevim/studiohub/internal/pkg/filestorage"
	"github.com/ekremsevim/studiohub/internal/pkg/helpers"
)

// PostService handles the Squad Hub feed: posts, comments and likes.
type PostService interface {
	CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, attachment *multipart.FileHeader) (*dto.PostResponse, error)
	GetPost(ctx context.Context, postID, viewerID int64) (*dto.PostResponse, error)
	ListPosts(ctx context.Context, viewerID int64, page, size int) (*dto.PostListResponse, error)
	ListOwnPosts(ctx context.Context, authorID int64, page, size int) (*dto.PostListResponse, error)
	DeletePost(ctx context.Context, postID, authorID int64) error
	TogglePostLike(ctx context.Context, postID, userID int64) (*dto.LikeToggleResponse, error)
	CreateComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID, authorID int64) error
	ToggleCommentLike(ctx context.Context, commentID, userID int64) (*dto.LikeToggleResponse, error)
}

// postServiceImpl implements PostService
type postServiceImpl struct {
	postRepo    *repositories.PostRepository
	tagRepo     *repositories.TagRepository
	userRepo    *repositories.UserRepository
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo *repositories.PostRepository,
	tagRepo *repositories.TagRepository,
	userRepo *repositories.UserRepository,
	fileStorage filestorage.FileStorage,
	logger zerolog.Logger,
) PostService {
	return &postServiceImpl{
		postRepo:    postRepo,
		tagRepo:     tagRepo,
		userRepo:    userRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// CreatePost publishes a post with optional tags and attachment.
func (s *postServiceImpl) CreatePost(ctx context.Context, authorID int64, req *dto.CreatePostRequest, attachment *multipart.FileHeader) (*dto.PostResponse, error) {
	post := &models.Post{
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  strings.TrimSpace(req.Content),
	}
	if post.Content == "" {
		return nil, apperrors.NewValidationError("content", "Content cannot be empty")
	}

	if attachment != nil {
		url, err := s.fileStorage.SaveFileWithPath(attachment, filestorage.PostFilesDir)
		if err != nil {
			return nil, err
		}
		post.FileURL = &url
	}

	postID, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	if len(req.Tags) > 0 {
		tags, err := s.tagRepo.GetOrCreateAll(ctx, normalizeTagNames(req.Tags))
		if err != nil {
			return nil, err
		}
		tagIDs := make([]int64, 0, len(tags))
		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
		if err := s.postRepo.AttachTags(ctx, postID, tagIDs); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Int64("postID", postID).Int64("authorID", authorID).Msg("Post created")

	return s.GetPost(ctx, postID, authorID)
}

// GetPost returns a post with its comments, like state relative to viewerID.
func (s *postServiceImpl) GetPost(ctx context.Context, postID, viewerID int64) (*dto.PostResponse, error) {
	row, err := s.postRepo.GetPostByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	comments, err := s.postRepo.ListCommentsByPost(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}

	resp := buildPostResponse(row)
	resp.Comments = make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp.Comments = append(resp.Comments, buildCommentResponse(&comments[i]))
	}
	return resp, nil
}

// ListPosts returns the newest-first feed page.
func (s *postServiceImpl) ListPosts(ctx context.Context, viewerID int64, page, size int) (*dto.PostListResponse, error) {
	return s.listPosts(ctx, 0, viewerID, page, size)
}

// ListOwnPosts returns the caller's posts, newest first.
func (s *postServiceImpl) ListOwnPosts(ctx context.Context, authorID int64, page, size int) (*dto.PostListResponse, error) {
	return s.listPosts(ctx, authorID, authorID, page, size)
}

func (s *postServiceImpl) listPosts(ctx context.Context, authorID, viewerID int64, page, size int) (*dto.PostListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	var rows []repositories.PostRow
	var err error
	if authorID != 0 {
		rows, err = s.postRepo.ListPostsByAuthor(ctx, authorID, viewerID, int(offset), limit)
	} else {
		rows, err = s.postRepo.ListPosts(ctx, viewerID, int(offset), limit)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountPosts(ctx, authorID)
	if err != nil {
		return nil, err
	}

	posts := make([]dto.PostResponse, 0, len(rows))
	for i := range rows {
		posts = append(posts, *buildPostResponse(&rows[i]))
	}

	return &dto.PostListResponse{
		Posts:          posts,
		PaginationInfo: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// DeletePost removes the caller's own post and its attachment. A missing
// post and someone else's post both come back as a permission error.
func (s *postServiceImpl) DeletePost(ctx context.Context, postID, authorID int64) error {
	fileURL, err := s.postRepo.DeletePostOwned(ctx, postID, authorID)
	if err != nil {
		return err
	}

	if fileURL != nil {
		if err := s.fileStorage.DeleteFile(*fileURL); err != nil {
			s.logger.Warn().Err(err).Str("file", *fileURL).Msg("Failed to delete post attachment")
		}
	}
	return nil
}

// TogglePostLike flips the caller's like on a post.
func (s *postServiceImpl) TogglePostLike(ctx context.Context, postID, userID int64) (*dto.LikeToggleResponse, error) {
	exists, err := s.postRepo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}

	liked, count, err := s.postRepo.TogglePostLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeToggleResponse{Liked: liked, LikesCount: count}, nil
}

// CreateComment replies to a post.
func (s *postServiceImpl) CreateComment(ctx context.Context, postID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	exists, err := s.postRepo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrPostNotFound
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  strings.TrimSpace(req.Content),
	}
	if comment.Content == "" {
		return nil, apperrors.NewValidationError("content", "Content cannot be empty")
	}

	commentID, err := s.postRepo.CreateComment(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = commentID

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:      commentID,
		Author:  buildUserResponse(author),
		Content: comment.Content,
	}, nil
}

// DeleteComment removes the caller's own comment.
func (s *postServiceImpl) DeleteComment(ctx context.Context, commentID, authorID int64) error {
	return s.postRepo.DeleteCommentOwned(ctx, commentID, authorID)
}

// ToggleCommentLike flips the caller's like on a comment.
func (s *postServiceImpl) ToggleCommentLike(ctx context.Context, commentID, userID int64) (*dto.LikeToggleResponse, error) {
	exists, err := s.postRepo.CommentExists(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrCommentNotFound
	}

	liked, count, err := s.postRepo.ToggleCommentLike(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeToggleResponse{Liked: liked, LikesCount: count}, nil
}

func buildPostResponse(row *repositories.PostRow) *dto.PostResponse {
	return &dto.PostResponse{
		ID:            row.Post.ID,
		Author:        buildUserResponse(&row.Author),
		Title:         row.Post.Title,
		Content:       row.Post.Content,
		FileURL:       row.Post.FileURL,
		Tags:          buildTagResponses(row.Post.Tags),
		LikesCount:    row.Post.LikesCount,
		IsLiked:       row.IsLiked,
		CommentsCount: row.CommentsCount,
		CreatedAt:     row.Post.CreatedAt,
	}
}

func buildCommentResponse(row *repositories.CommentRow) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         row.Comment.ID,
		Author:     buildUserResponse(&row.Author),
		Content:    row.Comment.Content,
		LikesCount: row.Comment.LikesCount,
		IsLiked:    row.IsLiked,
		CreatedAt:  row.Comment.CreatedAt,
	}
}

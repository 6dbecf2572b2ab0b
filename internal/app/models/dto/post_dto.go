package dto

import "time"

// CreatePostRequest represents Squad Hub post creation data. The optional
// attachment travels in the multipart form.
type CreatePostRequest struct {
	Title   string   `form:"title" binding:"max=200"`
	Content string   `form:"content" binding:"required"`
	Tags    []string `form:"tags"`
}

// CreateCommentRequest represents comment creation data.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the comment view nested under a post.
type CommentResponse struct {
	ID         int64         `json:"id"`
	Author     *UserResponse `json:"author"`
	Content    string        `json:"content"`
	LikesCount int           `json:"likesCount"`
	IsLiked    bool          `json:"isLiked"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// PostResponse is the post view. IsLiked and LikesCount are computed per
// request relative to the caller.
type PostResponse struct {
	ID            int64             `json:"id"`
	Author        *UserResponse     `json:"author"`
	Title         string            `json:"title,omitempty"`
	Content       string            `json:"content"`
	FileURL       *string           `json:"fileUrl,omitempty"`
	Tags          []TagResponse     `json:"tags"`
	LikesCount    int               `json:"likesCount"`
	IsLiked       bool              `json:"isLiked"`
	CommentsCount int               `json:"commentsCount"`
	Comments      []CommentResponse `json:"comments,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// PostListResponse is a paginated list of posts.
type PostListResponse struct {
	Posts []PostResponse `json:"posts"`
	PaginationInfo
}

// LikeToggleResponse reports the state after a like toggle.
type LikeToggleResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}

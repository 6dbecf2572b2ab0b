package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ekremsevim/studiohub/internal/app/models"
	"github.com/ekremsevim/studiohub/internal/pkg/apperrors"
)

// PostRepository handles database operations for Squad Hub posts, comments
// and likes.
type PostRepository struct {
	db Querier
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db Querier) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction.
func (r *PostRepository) WithTx(tx pgx.Tx) *PostRepository {
	return &PostRepository{db: tx}
}

// PostRow is a post joined with its author and the viewer-dependent like
// state.
type PostRow struct {
	Post          models.Post
	Author        models.User
	IsLiked       bool
	CommentsCount int
}

const postRowQuery = `
	SELECT p.id, p.author_id, p.title, p.content, p.file_url, p.created_at,
	       u.username, u.first_name, u.last_name,
	       (SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS likes_count,
	       EXISTS(SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS is_liked,
	       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
`

func scanPostRow(row pgx.Row) (*PostRow, error) {
	var pr PostRow
	err := row.Scan(
		&pr.Post.ID,
		&pr.Post.AuthorID,
		&pr.Post.Title,
		&pr.Post.Content,
		&pr.Post.FileURL,
		&pr.Post.CreatedAt,
		&pr.Author.Username,
		&pr.Author.FirstName,
		&pr.Author.LastName,
		&pr.Post.LikesCount,
		&pr.IsLiked,
		&pr.CommentsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error scanning post: %w", err)
	}
	pr.Author.ID = pr.Post.AuthorID
	return &pr, nil
}

// CreatePost inserts a new post and returns its ID.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (author_id, title, content, file_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		post.AuthorID, post.Title, post.Content, post.FileURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return id, nil
}

// GetPostByID retrieves a post with author, tags and like state for viewerID.
func (r *PostRepository) GetPostByID(ctx context.Context, postID, viewerID int64) (*PostRow, error) {
	query := postRowQuery + ` WHERE p.id = $2`
	pr, err := scanPostRow(r.db.QueryRow(ctx, query, viewerID, postID))
	if err != nil {
		return nil, err
	}

	tags, err := r.tagsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	pr.Post.Tags = tags

	return pr, nil
}

// ListPosts returns the newest-first feed page for viewerID.
func (r *PostRepository) ListPosts(ctx context.Context, viewerID int64, offset, limit int) ([]PostRow, error) {
	query := postRowQuery + ` ORDER BY p.created_at DESC OFFSET $2 LIMIT $3`
	return r.queryPostRows(ctx, query, viewerID, offset, limit)
}

// ListPostsByAuthor returns authorID's posts, newest first, for viewerID.
func (r *PostRepository) ListPostsByAuthor(ctx context.Context, authorID, viewerID int64, offset, limit int) ([]PostRow, error) {
	query := postRowQuery + ` WHERE p.author_id = $2 ORDER BY p.created_at DESC OFFSET $3 LIMIT $4`
	return r.queryPostRows(ctx, query, viewerID, authorID, offset, limit)
}

// CountPosts returns the total number of posts, optionally scoped to one
// author when authorID is non-zero.
func (r *PostRepository) CountPosts(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	var err error
	if authorID != 0 {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("error counting posts: %w", err)
	}
	return count, nil
}

// DeletePostOwned deletes a post only when authorID wrote it. A missing post
// and someone else's post are indistinguishable to the caller.
func (r *PostRepository) DeletePostOwned(ctx context.Context, postID, authorID int64) (*string, error) {
	var fileURL *string
	err := r.db.QueryRow(ctx,
		`DELETE FROM posts WHERE id = $1 AND author_id = $2 RETURNING file_url`,
		postID, authorID).Scan(&fileURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, fmt.Errorf("error deleting post: %w", err)
	}
	return fileURL, nil
}

// AttachTags attaches the given tags to a post.
func (r *PostRepository) AttachTags(ctx context.Context, postID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, tagID)
		if err != nil {
			return fmt.Errorf("error attaching post tag: %w", err)
		}
	}
	return nil
}

// TogglePostLike flips userID's like on a post and reports the new state
// plus the resulting like count.
func (r *PostRepository) TogglePostLike(ctx context.Context, postID, userID int64) (bool, int, error) {
	result, err := r.db.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("error liking post: %w", err)
	}

	liked := result.RowsAffected() > 0
	if !liked {
		// Already liked: the toggle removes it.
		_, err = r.db.Exec(ctx,
			`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("error unliking post: %w", err)
		}
	}

	var count int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("error counting post likes: %w", err)
	}
	return liked, count, nil
}

// PostExists checks whether a post exists.
func (r *PostRepository) PostExists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, postID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking post: %w", err)
	}
	return exists, nil
}

// --- Comments ---

// CommentRow is a comment joined with its author and the viewer-dependent
// like state.
type CommentRow struct {
	Comment models.Comment
	Author  models.User
	IsLiked bool
}

// CreateComment inserts a new comment and returns its ID.
func (r *PostRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		comment.PostID, comment.AuthorID, comment.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}
	return id, nil
}

// ListCommentsByPost returns a post's comments, oldest first, for viewerID.
func (r *PostRepository) ListCommentsByPost(ctx context.Context, postID, viewerID int64) ([]CommentRow, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.content, c.created_at,
		       u.username, u.first_name, u.last_name,
		       (SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id) AS likes_count,
		       EXISTS(SELECT 1 FROM comment_likes cl WHERE cl.comment_id = c.id AND cl.user_id = $1) AS is_liked
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $2
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, viewerID, postID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	comments := []CommentRow{}
	for rows.Next() {
		var cr CommentRow
		err := rows.Scan(&cr.Comment.ID, &cr.Comment.PostID, &cr.Comment.AuthorID,
			&cr.Comment.Content, &cr.Comment.CreatedAt,
			&cr.Author.Username, &cr.Author.FirstName, &cr.Author.LastName,
			&cr.Comment.LikesCount, &cr.IsLiked)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		cr.Author.ID = cr.Comment.AuthorID
		comments = append(comments, cr)
	}
	return comments, rows.Err()
}

// DeleteCommentOwned deletes a comment only when authorID wrote it.
func (r *PostRepository) DeleteCommentOwned(ctx context.Context, commentID, authorID int64) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND author_id = $2`, commentID, authorID)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// CommentExists checks whether a comment exists.
func (r *PostRepository) CommentExists(ctx context.Context, commentID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`
	if err := r.db.QueryRow(ctx, query, commentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking comment: %w", err)
	}
	return exists, nil
}

// ToggleCommentLike flips userID's like on a comment and reports the new
// state plus the resulting like count.
func (r *PostRepository) ToggleCommentLike(ctx context.Context, commentID, userID int64) (bool, int, error) {
	result, err := r.db.Exec(ctx,
		`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		commentID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("error liking comment: %w", err)
	}

	liked := result.RowsAffected() > 0
	if !liked {
		_, err = r.db.Exec(ctx,
			`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, commentID, userID)
		if err != nil {
			return false, 0, fmt.Errorf("error unliking comment: %w", err)
		}
	}

	var count int
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID).Scan(&count)
	if err != nil {
		return false, 0, fmt.Errorf("error counting comment likes: %w", err)
	}
	return liked, count, nil
}

func (r *PostRepository) queryPostRows(ctx context.Context, query string, args ...any) ([]PostRow, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	posts := []PostRow{}
	for rows.Next() {
		var pr PostRow
		err := rows.Scan(&pr.Post.ID, &pr.Post.AuthorID, &pr.Post.Title, &pr.Post.Content,
			&pr.Post.FileURL, &pr.Post.CreatedAt,
			&pr.Author.Username, &pr.Author.FirstName, &pr.Author.LastName,
			&pr.Post.LikesCount, &pr.IsLiked, &pr.CommentsCount)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		pr.Author.ID = pr.Post.AuthorID
		posts = append(posts, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		tags, err := r.tagsForPost(ctx, posts[i].Post.ID)
		if err != nil {
			return nil, err
		}
		posts[i].Post.Tags = tags
	}

	return posts, nil
}

func (r *PostRepository) tagsForPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error loading post tags: %w", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("error scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pulsehub/pulsehub/internal/model"
)

// ErrPostNotFound indicates the post does not exist.
var ErrPostNotFound = errors.New("post not found")

// PostUpdate carries the optional fields of a partial post update.
// Nil fields are left untouched.
type PostUpdate struct {
	Content  *string
	Likes    *int
	Dislikes *int
}

// IsEmpty reports whether the update carries no fields.
func (u PostUpdate) IsEmpty() bool {
	return u.Content == nil && u.Likes == nil && u.Dislikes == nil
}

// CreatePost inserts a new post and fills in its generated id.
func (r *Repository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (content, likes, dislikes)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		post.Content,
		post.Likes,
		post.Dislikes,
	).Scan(&post.ID, &post.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// ListPosts retrieves all posts in insertion order.
func (r *Repository) ListPosts(ctx context.Context) ([]*model.Post, error) {
	query := `
		SELECT id, content, likes, dislikes, created_at
		FROM posts
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(&post.ID, &post.Content, &post.Likes, &post.Dislikes, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// UpdatePost applies a partial update and returns the updated post.
func (r *Repository) UpdatePost(ctx context.Context, id int64, update PostUpdate) (*model.Post, error) {
	query := `
		UPDATE posts
		SET content = COALESCE($2, content),
		    likes = COALESCE($3, likes),
		    dislikes = COALESCE($4, dislikes)
		WHERE id = $1
		RETURNING id, content, likes, dislikes, created_at
	`

	var post model.Post
	err := r.pool.QueryRow(ctx, query,
		id,
		update.Content,
		update.Likes,
		update.Dislikes,
	).Scan(&post.ID, &post.Content, &post.Likes, &post.Dislikes, &post.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &post, nil
}

// DeletePost removes a post.
func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPostNotFound
	}

	return nil
}

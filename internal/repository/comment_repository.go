package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aukdevgh/project-backend/internal/domain"
)

// CommentRepository defines the interface for product review data access.
// Listing methods take a limit/offset window; a limit below 1 means
// unbounded. The returned total counts all matches before the window.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, error)
	ListHighRated(ctx context.Context, minRating, limit, offset int) ([]domain.Comment, int, error)
}

type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *sql.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment using parameterized queries
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	query := `
		INSERT INTO comments (id, product_id, user_id, text, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.ProductID,
		comment.UserID,
		comment.Text,
		comment.Rating,
		comment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByProduct retrieves comments for a product, newest first, joined with
// the author's name and email
func (r *commentRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, error) {
	countQuery := `SELECT COUNT(*) FROM comments WHERE product_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, productID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT c.id, c.product_id, c.user_id, u.name, u.email, c.text, c.rating, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.product_id = $1
		ORDER BY c.created_at DESC
	`
	args := []interface{}{productID}
	if limit >= 1 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	comments, err := r.scanComments(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// ListHighRated retrieves comments at or above the rating threshold across
// all products, newest first
func (r *commentRepository) ListHighRated(ctx context.Context, minRating, limit, offset int) ([]domain.Comment, int, error) {
	countQuery := `SELECT COUNT(*) FROM comments WHERE rating >= $1`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, minRating).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	query := `
		SELECT c.id, c.product_id, c.user_id, u.name, u.email, c.text, c.rating, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.rating >= $1
		ORDER BY c.created_at DESC
	`
	args := []interface{}{minRating}
	if limit >= 1 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	comments, err := r.scanComments(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) scanComments(ctx context.Context, query string, args ...interface{}) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		comment := domain.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.ProductID,
			&comment.UserID,
			&comment.UserName,
			&comment.UserEmail,
			&comment.Text,
			&comment.Rating,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

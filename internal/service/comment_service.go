package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/repository"

	"github.com/google/uuid"
)

// HighRatingThreshold is the minimum rating for the storefront review feed.
const HighRatingThreshold = 4

var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ReviewPage is a paginated slice of comments with the pagination metadata
// the storefront infinite scroll needs.
type ReviewPage struct {
	Reviews []domain.Comment `json:"reviews"`
	Total   int              `json:"total"`
	HasMore bool             `json:"hasMore"`
}

// CommentService defines the interface for product review business logic
type CommentService interface {
	Create(ctx context.Context, userID uuid.UUID, productID, text string, rating int) (*domain.Comment, error)
	ListByProduct(ctx context.Context, productID string, page, limit int) (*ReviewPage, error)
	ListHighRated(ctx context.Context, page, limit int) (*ReviewPage, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService creates a new instance of CommentService
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// Create stores a review for a product after bounds-checking the rating
func (s *commentService) Create(ctx context.Context, userID uuid.UUID, productID, text string, rating int) (*domain.Comment, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}

	comment := &domain.Comment{
		ID:        uuid.New(),
		ProductID: productID,
		UserID:    userID,
		Text:      text,
		Rating:    rating,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

// ListByProduct returns one page of a product's reviews, newest first. A
// missing page defaults to 1; a missing limit returns all reviews. No
// reviews yields an empty page, not an error.
func (s *commentService) ListByProduct(ctx context.Context, productID string, page, limit int) (*ReviewPage, error) {
	limit, offset := pageWindow(page, limit)
	comments, total, err := s.commentRepo.ListByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return &ReviewPage{
		Reviews: comments,
		Total:   total,
		HasMore: limit >= 1 && offset+limit < total,
	}, nil
}

// ListHighRated returns one page of the cross-product high-rating feed
func (s *commentService) ListHighRated(ctx context.Context, page, limit int) (*ReviewPage, error) {
	limit, offset := pageWindow(page, limit)
	comments, total, err := s.commentRepo.ListHighRated(ctx, HighRatingThreshold, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list high-rated comments: %w", err)
	}
	return &ReviewPage{
		Reviews: comments,
		Total:   total,
		HasMore: limit >= 1 && offset+limit < total,
	}, nil
}

// pageWindow converts page/limit query values into a limit/offset window.
// Page below 1 becomes 1; limit below 1 means unbounded.
func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		return 0, 0
	}
	return limit, (page - 1) * limit
}

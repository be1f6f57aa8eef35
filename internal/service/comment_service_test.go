package service

import (
	"context"
	"testing"
	"time"

	"github.com/aukdevgh/project-backend/internal/domain"

	"github.com/google/uuid"
)

type mockCommentRepository struct {
	comments []domain.Comment

	lastMinRating int
	lastLimit     int
	lastOffset    int
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	m.comments = append(m.comments, *comment)
	return nil
}

func (m *mockCommentRepository) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]domain.Comment, int, error) {
	m.lastLimit, m.lastOffset = limit, offset

	matched := []domain.Comment{}
	for _, c := range m.comments {
		if c.ProductID == productID {
			matched = append(matched, c)
		}
	}
	return window(matched, limit, offset), len(matched), nil
}

func (m *mockCommentRepository) ListHighRated(ctx context.Context, minRating, limit, offset int) ([]domain.Comment, int, error) {
	m.lastMinRating, m.lastLimit, m.lastOffset = minRating, limit, offset

	matched := []domain.Comment{}
	for _, c := range m.comments {
		if c.Rating >= minRating {
			matched = append(matched, c)
		}
	}
	return window(matched, limit, offset), len(matched), nil
}

func window(comments []domain.Comment, limit, offset int) []domain.Comment {
	if limit < 1 {
		return comments
	}
	if offset > len(comments) {
		offset = len(comments)
	}
	end := offset + limit
	if end > len(comments) {
		end = len(comments)
	}
	return comments[offset:end]
}

func seededCommentRepo(productID string, ratings ...int) *mockCommentRepository {
	repo := &mockCommentRepository{}
	for i, rating := range ratings {
		repo.comments = append(repo.comments, domain.Comment{
			ID:        uuid.New(),
			ProductID: productID,
			UserID:    uuid.New(),
			Text:      "review",
			Rating:    rating,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	return repo
}

func TestCommentCreateValidatesRating(t *testing.T) {
	repo := &mockCommentRepository{}
	service := NewCommentService(repo)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		if _, err := service.Create(ctx, uuid.New(), "1", "bad", rating); err != ErrInvalidRating {
			t.Errorf("rating %d returned %v, want ErrInvalidRating", rating, err)
		}
	}

	comment, err := service.Create(ctx, uuid.New(), "1", "great shoes", 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if comment.Rating != 5 || comment.ProductID != "1" {
		t.Errorf("comment = %+v", comment)
	}
	if len(repo.comments) != 1 {
		t.Errorf("stored %d comments, want 1", len(repo.comments))
	}
}

func TestCommentListByProductPagination(t *testing.T) {
	repo := seededCommentRepo("p1", 5, 4, 3, 2, 1)
	service := NewCommentService(repo)
	ctx := context.Background()

	tests := []struct {
		name       string
		page       int
		limit      int
		count      int
		hasMore    bool
		wantLimit  int
		wantOffset int
	}{
		{"first page of two", 1, 2, 2, true, 2, 0},
		{"second page of two", 2, 2, 2, true, 2, 2},
		{"last page of two", 3, 2, 1, false, 2, 4},
		{"missing page defaults to first", 0, 2, 2, true, 2, 0},
		{"missing limit is unbounded", 2, 0, 5, false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.ListByProduct(ctx, "p1", tt.page, tt.limit)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if len(result.Reviews) != tt.count {
				t.Errorf("got %d reviews, want %d", len(result.Reviews), tt.count)
			}
			if result.Total != 5 {
				t.Errorf("total = %d, want 5", result.Total)
			}
			if result.HasMore != tt.hasMore {
				t.Errorf("hasMore = %v, want %v", result.HasMore, tt.hasMore)
			}
			if repo.lastLimit != tt.wantLimit || repo.lastOffset != tt.wantOffset {
				t.Errorf("window = (%d, %d), want (%d, %d)",
					repo.lastLimit, repo.lastOffset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func TestCommentListByProductEmpty(t *testing.T) {
	service := NewCommentService(&mockCommentRepository{})

	// A product with no reviews gets an empty page, not an error
	result, err := service.ListByProduct(context.Background(), "unknown", 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result.Reviews) != 0 || result.Total != 0 || result.HasMore {
		t.Errorf("empty page = %+v", result)
	}
}

func TestCommentListHighRated(t *testing.T) {
	repo := seededCommentRepo("p1", 5, 4, 3, 2)
	repo.comments = append(repo.comments, domain.Comment{
		ID: uuid.New(), ProductID: "p2", UserID: uuid.New(), Rating: 5, CreatedAt: time.Now(),
	})
	service := NewCommentService(repo)

	result, err := service.ListHighRated(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if repo.lastMinRating != HighRatingThreshold {
		t.Errorf("threshold passed to repository = %d, want %d", repo.lastMinRating, HighRatingThreshold)
	}
	if result.Total != 3 {
		t.Errorf("total = %d, want 3 (ratings 4 and up across all products)", result.Total)
	}
	for _, review := range result.Reviews {
		if review.Rating < HighRatingThreshold {
			t.Errorf("feed served a low rating: %+v", review)
		}
	}
}

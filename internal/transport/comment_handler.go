package transport

import (
	"net/http"

	"github.com/aukdevgh/project-backend/internal/middleware"
	"github.com/aukdevgh/project-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CommentRequest represents the review creation payload
type CommentRequest struct {
	Text   string `json:"text" validate:"required,min=1,max=500"`
	Rating int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// CommentHandler handles HTTP requests for product reviews
type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{commentService: commentService, logger: logger}
}

// RegisterRoutes registers all review routes. Reading reviews is public,
// writing them requires the auth gate.
func (h *CommentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/reviews", func(r chi.Router) {
		r.Get("/", h.ListHighRated)
		r.Get("/{productID}", h.ListByProduct)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/{productID}", h.Create)
		})
	})
}

// ListHighRated returns one page of the storefront review feed
func (h *CommentHandler) ListHighRated(w http.ResponseWriter, r *http.Request) {
	page := parseIntParam(r.URL.Query().Get("page"))
	limit := parseIntParam(r.URL.Query().Get("limit"))

	reviews, err := h.commentService.ListHighRated(r.Context(), page, limit)
	if err != nil {
		h.logger.Error("Failed to list review feed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// ListByProduct returns one page of a product's reviews. A product with no
// reviews gets an empty page with metadata, not a 404.
func (h *CommentHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	page := parseIntParam(r.URL.Query().Get("page"))
	limit := parseIntParam(r.URL.Query().Get("limit"))

	reviews, err := h.commentService.ListByProduct(r.Context(), productID, page, limit)
	if err != nil {
		h.logger.Error("Failed to list product reviews", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, reviews)
}

// Create stores a review with a rating for a product
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	productID := chi.URLParam(r, "productID")

	var req CommentRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), userID, productID, req.Text, req.Rating)
	if err != nil {
		if err == service.ErrInvalidRating {
			middleware.RespondWithError(w, http.StatusBadRequest, "Rating must be between 1 and 5")
			return
		}

		h.logger.Error("Failed to create review", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, comment)
}

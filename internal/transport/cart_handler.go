package transport

import (
	"net/http"

	"github.com/aukdevgh/project-backend/internal/middleware"
	"github.com/aukdevgh/project-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartItemRequest addresses a product variant in the cart
type CartItemRequest struct {
	ID       string `json:"id" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// CartVariantRequest addresses a variant without a quantity (for removal)
type CartVariantRequest struct {
	ID    string `json:"id" validate:"required"`
	Size  string `json:"size" validate:"required"`
	Color string `json:"color" validate:"required"`
}

// CartHandler handles HTTP requests for the shopping cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// RegisterRoutes registers all cart routes behind the auth gate
func (h *CartHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Post("/", h.Add)
		r.Patch("/", h.UpdateQuantity)
		r.Delete("/", h.Remove)
		r.Delete("/clear", h.Clear)
	})
}

// Get returns the authenticated user's cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	items, err := h.cartService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to fetch cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, items)
}

// Add puts a product variant into the cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.Add(r.Context(), userID, req.ID, req.Size, req.Color, req.Quantity); err != nil {
		if err == service.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
			return
		}

		h.logger.Error("Failed to add to cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusCreated, "product added successfully")
}

// UpdateQuantity sets the quantity of a cart variant
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CartItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.UpdateQuantity(r.Context(), userID, req.ID, req.Size, req.Color, req.Quantity); err != nil {
		if err == service.ErrCartItemMissing {
			middleware.RespondWithError(w, http.StatusNotFound, "Item not found")
			return
		}

		h.logger.Error("Failed to update cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "product updated successfully")
}

// Remove deletes one cart variant
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CartVariantRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.cartService.Remove(r.Context(), userID, req.ID, req.Size, req.Color); err != nil {
		if err == service.ErrCartItemMissing {
			middleware.RespondWithError(w, http.StatusNotFound, "Item not found")
			return
		}

		h.logger.Error("Failed to remove cart item", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "product removed successfully")
}

// Clear empties the cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	if err := h.cartService.Clear(r.Context(), userID); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithMessage(w, http.StatusOK, "Cart cleared")
}

// authenticatedUserID pulls the gate-resolved user id off the context. A
// missing or malformed id means the gate did not run; treat as unauthorized.
func authenticatedUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	return userID, true
}

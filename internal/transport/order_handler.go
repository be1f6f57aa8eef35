package transport

import (
	"net/http"

	"github.com/aukdevgh/project-backend/internal/domain"
	"github.com/aukdevgh/project-backend/internal/middleware"
	"github.com/aukdevgh/project-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	CartItems       []CheckoutItem `json:"cartItems" validate:"required,min=1,dive"`
	TotalPrice      float64        `json:"totalPrice" validate:"gte=0"`
	PaymentMethod   string         `json:"paymentMethod" validate:"required,oneof=visa master-card pay-pal apple-pay google-pay"`
	ShippingAddress string         `json:"shippingAddress" validate:"required"`
}

// CheckoutItem is one ordered product variant
type CheckoutItem struct {
	ID       string `json:"id" validate:"required"`
	Size     string `json:"size" validate:"required"`
	Color    string `json:"color" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
}

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers all order routes behind the auth gate
func (h *OrderHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/checkout", h.Checkout)
		r.Get("/", h.List)
	})
}

// Checkout places a pending order from the submitted cart items
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]domain.OrderItem, len(req.CartItems))
	for i, item := range req.CartItems {
		items[i] = domain.OrderItem{
			ProductID: item.ID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		}
	}

	_, err := h.orderService.Checkout(r.Context(), userID, service.CheckoutInput{
		Items:           items,
		TotalPrice:      req.TotalPrice,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		if err == service.ErrEmptyCart {
			middleware.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
			return
		}

		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.logger.Info("Order placed", zap.String("user_id", userID.String()))
	middleware.RespondWithMessage(w, http.StatusCreated, "Order created successfully")
}

// List returns the authenticated user's order history, newest first
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

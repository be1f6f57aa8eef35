package transport

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/aukdevgh/project-backend/internal/catalog"
	"github.com/aukdevgh/project-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the read-only product catalog
type ProductHandler struct {
	store  *catalog.Store
	logger *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(store *catalog.Store, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{store: store, logger: logger}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/search", h.Search)
		r.Get("/category-list", h.CategoryList)
		r.Get("/colors", h.Colors)
		r.Get("/sizes", h.Sizes)
		r.Get("/price-limits", h.PriceLimits)
		r.Get("/{id}", h.GetByID)
	})
}

// List runs the catalog query pipeline over the current snapshot
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	spec := parseQuerySpec(r)

	result, err := catalog.Query(h.store.Products(), spec)
	if err != nil {
		var validationErr *catalog.ValidationError
		if errors.As(err, &validationErr) {
			h.logger.Error("Catalog query failed on inconsistent record", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		h.logger.Error("Catalog query failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// Search filters products by name substring
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	fields := splitParam(r.URL.Query().Get("select"))

	products := catalog.Search(h.store.Products(), q, fields)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]any{"products": products})
}

// CategoryList returns the distinct categories, optionally prefix-filtered
func (h *ProductHandler) CategoryList(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("category")
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Categories(prefix))
}

// Colors returns the distinct color names in the catalog
func (h *ProductHandler) Colors(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Colors())
}

// Sizes returns the distinct size tags in the catalog
func (h *ProductHandler) Sizes(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.store.Sizes())
}

// PriceLimits returns the rounded price range of the catalog
func (h *ProductHandler) PriceLimits(w http.ResponseWriter, r *http.Request) {
	min, max := h.store.PriceLimits()
	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"min": min, "max": max})
}

// GetByID returns one product or 404
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, ok := h.store.Find(id)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// parseQuerySpec maps the query string onto a catalog QuerySpec. Numeric
// parameters that fail to parse are treated as absent rather than silently
// coerced.
func parseQuerySpec(r *http.Request) catalog.QuerySpec {
	q := r.URL.Query()

	return catalog.QuerySpec{
		Category: q.Get("category"),
		Colors:   splitParam(q.Get("colors")),
		Sizes:    splitParam(q.Get("sizes")),
		MinPrice: parseFloatParam(q.Get("minPrice")),
		MaxPrice: parseFloatParam(q.Get("maxPrice")),
		SortBy:   q.Get("sortBy"),
		Order:    q.Get("order"),
		Select:   splitParam(q.Get("select")),
		Page:     parseIntParam(q.Get("page")),
		Limit:    parseIntParam(q.Get("limit")),
	}
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, ",")
}

// parseIntParam returns 0 for missing or unparseable values; callers treat
// 0 as "not provided".
func parseIntParam(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// parseFloatParam returns nil for missing or unparseable values.
func parseFloatParam(value string) *float64 {
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

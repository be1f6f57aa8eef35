package catalog

import (
	"strings"
	"time"
)

// Product is one record of the file-backed catalog. The JSON tags mirror the
// catalog file shape, which is also the wire shape of the products API.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage"`
	Category           string   `json:"category"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Colors             []string `json:"colors"`
	Sizes              []string `json:"sizes"`
	Images             []string `json:"images"`
	Meta               Meta     `json:"meta"`
}

// Meta carries record bookkeeping timestamps from the catalog file.
type Meta struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiscountedPrice returns the effective price after applying the discount
// percentage. It fails when the record breaks the catalog invariants
// (price >= 0, discount within [0,100]).
func (p Product) DiscountedPrice() (float64, error) {
	if p.Price < 0 || p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return 0, &ValidationError{Message: "invalid price or discount percentage", ProductID: p.ID}
	}
	return p.Price - p.Price*p.DiscountPercentage/100, nil
}

// ImageForColor returns the first image reference containing the color token,
// or an empty string when none matches.
func (p Product) ImageForColor(color string) string {
	for _, image := range p.Images {
		if color != "" && strings.Contains(image, color) {
			return image
		}
	}
	return ""
}

// asMap exposes the record as a field-name keyed map for projection. Keys
// match the JSON tags above.
func (p Product) asMap() map[string]any {
	return map[string]any{
		"id":                 p.ID,
		"name":               p.Name,
		"description":        p.Description,
		"price":              p.Price,
		"discountPercentage": p.DiscountPercentage,
		"category":           p.Category,
		"rating":             p.Rating,
		"stock":              p.Stock,
		"colors":             p.Colors,
		"sizes":              p.Sizes,
		"images":             p.Images,
		"meta":               p.Meta,
	}
}

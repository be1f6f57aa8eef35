package catalog

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Sort keys accepted by Query. Any other value leaves the order untouched.
const (
	SortByRating  = "rating"
	SortBySale    = "sale"
	SortByPopular = "popular"
	SortByPrice   = "price"
	SortByNew     = "new"
)

// Sort directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ValidationError reports a catalog record whose pricing fields break the
// price/discount invariants during a price sort. It aborts the whole query.
type ValidationError struct {
	Message   string
	ProductID string
}

func (e *ValidationError) Error() string {
	if e.ProductID != "" {
		return fmt.Sprintf("%s (product %s)", e.Message, e.ProductID)
	}
	return e.Message
}

// QuerySpec is the per-request query specification parsed from the
// products list query string. Nil price bounds are unconstrained. A Page or
// Limit below 1 means the parameter was missing or unparseable: Page
// defaults to 1, Limit to unbounded.
type QuerySpec struct {
	Category string
	Colors   []string
	Sizes    []string
	MinPrice *float64
	MaxPrice *float64
	SortBy   string
	Order    string
	Select   []string
	Page     int
	Limit    int
}

// QueryResult is the JSON-serializable outcome of a catalog query. Products
// holds field-name keyed records so that field projection can drop keys.
// Total counts matches before pagination.
type QueryResult struct {
	Products []map[string]any `json:"products"`
	Total    int              `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

// Query filters, sorts, projects, and paginates the product list. It is a
// pure function: the input slice is never reordered or modified, and the
// same inputs always produce the same result. Each stage operates on the
// survivors of the previous one.
func Query(products []Product, spec QuerySpec) (*QueryResult, error) {
	filtered := make([]Product, 0, len(products))
	filtered = append(filtered, products...)

	if spec.Category != "" {
		filtered = filterProducts(filtered, func(p Product) bool {
			return strings.HasPrefix(strings.ToLower(p.Category), strings.ToLower(spec.Category))
		})
	}

	if len(spec.Colors) > 0 {
		filtered = filterProducts(filtered, func(p Product) bool {
			for _, color := range p.Colors {
				for _, selected := range spec.Colors {
					if strings.Contains(color, selected) {
						return true
					}
				}
			}
			return false
		})
	}

	if len(spec.Sizes) > 0 {
		filtered = filterProducts(filtered, func(p Product) bool {
			for _, size := range p.Sizes {
				for _, selected := range spec.Sizes {
					if size == selected {
						return true
					}
				}
			}
			return false
		})
	}

	if spec.MinPrice != nil || spec.MaxPrice != nil {
		min, max := 0.0, math.Inf(1)
		if spec.MinPrice != nil {
			min = *spec.MinPrice
		}
		if spec.MaxPrice != nil {
			max = *spec.MaxPrice
		}
		filtered = filterProducts(filtered, func(p Product) bool {
			return p.Price >= min && p.Price <= max
		})
	}

	if err := sortProducts(filtered, spec.SortBy, spec.Order); err != nil {
		return nil, err
	}

	records := project(filtered, spec.Select)

	total := len(records)
	page := spec.Page
	if page < 1 {
		page = 1
	}

	var paged []map[string]any
	if spec.Limit < 1 {
		// Unbounded: no limit was requested
		paged = records
	} else {
		offset := (page - 1) * spec.Limit
		if offset > total {
			offset = total
		}
		end := offset + spec.Limit
		if end > total {
			end = total
		}
		paged = records[offset:end]
	}

	return &QueryResult{
		Products: paged,
		Total:    total,
		HasMore:  spec.Limit >= 1 && total > page*spec.Limit,
	}, nil
}

// Search returns the products whose name contains the query string,
// case-insensitively, projected to the selected fields. No pagination.
func Search(products []Product, q string, fields []string) []map[string]any {
	matched := make([]Product, 0, len(products))
	matched = append(matched, products...)
	if q != "" {
		matched = filterProducts(matched, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q))
		})
	}
	return project(matched, fields)
}

func filterProducts(products []Product, keep func(Product) bool) []Product {
	filtered := products[:0]
	for _, p := range products {
		if keep(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// sortProducts orders the slice in place per the sort key. The sort is
// stable so that ties preserve catalog order.
func sortProducts(products []Product, sortBy, order string) error {
	switch sortBy {
	case SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			if order == OrderDesc {
				return products[i].Rating > products[j].Rating
			}
			return products[i].Rating < products[j].Rating
		})
	case SortBySale:
		sort.SliceStable(products, func(i, j int) bool {
			if order == OrderDesc {
				return products[i].DiscountPercentage > products[j].DiscountPercentage
			}
			return products[i].DiscountPercentage < products[j].DiscountPercentage
		})
	case SortByPopular:
		// Popularity is rating weighted by stock, best first. No direction
		// override.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating*float64(products[i].Stock) > products[j].Rating*float64(products[j].Stock)
		})
	case SortByPrice:
		// Validate pricing up front: a single inconsistent record aborts the
		// whole query.
		prices := make([]float64, len(products))
		for i, p := range products {
			price, err := p.DiscountedPrice()
			if err != nil {
				return err
			}
			prices[i] = price
		}
		indexed := make([]int, len(products))
		for i := range indexed {
			indexed[i] = i
		}
		sort.SliceStable(indexed, func(i, j int) bool {
			if order == OrderDesc {
				return prices[indexed[i]] > prices[indexed[j]]
			}
			return prices[indexed[i]] < prices[indexed[j]]
		})
		reordered := make([]Product, len(products))
		for i, idx := range indexed {
			reordered[i] = products[idx]
		}
		copy(products, reordered)
	case SortByNew:
		// Newest first unless an ascending order is requested.
		sort.SliceStable(products, func(i, j int) bool {
			if order == OrderAsc {
				return products[i].Meta.CreatedAt.Before(products[j].Meta.CreatedAt)
			}
			return products[i].Meta.CreatedAt.After(products[j].Meta.CreatedAt)
		})
	}
	return nil
}

// project reduces each record to the named fields. Unknown field names are
// dropped silently. An empty field list keeps the full record.
func project(products []Product, fields []string) []map[string]any {
	records := make([]map[string]any, len(products))
	for i, p := range products {
		full := p.asMap()
		if len(fields) == 0 {
			records[i] = full
			continue
		}
		selected := make(map[string]any, len(fields))
		for _, field := range fields {
			if value, ok := full[field]; ok {
				selected[field] = value
			}
		}
		records[i] = selected
	}
	return records
}

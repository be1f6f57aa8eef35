package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store owns an in-memory snapshot of the JSON catalog file. The snapshot is
// loaded once at startup and refreshed on an interval instead of re-reading
// the file on every request. Reads are safe for concurrent use.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	products []Product
}

// NewStore creates a catalog store over the given JSON file. Call Load
// before serving.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads and parses the catalog file, replacing the current snapshot.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return fmt.Errorf("failed to parse catalog file: %w", err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.logger.Info("Catalog snapshot loaded",
		zap.String("path", s.path),
		zap.Int("products", len(products)),
	)
	return nil
}

// StartRefresh reloads the snapshot on the given interval until the context
// is canceled. A failed reload keeps the previous snapshot.
func (s *Store) StartRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Load(); err != nil {
					s.logger.Warn("Catalog refresh failed, keeping previous snapshot", zap.Error(err))
				}
			}
		}
	}()
}

// Products returns the current snapshot. Callers must not modify the
// returned slice; Query already copies before reordering.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Find returns the product with the given id.
func (s *Store) Find(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Categories returns the distinct categories, optionally narrowed to a
// prefix, in first-seen catalog order.
func (s *Store) Categories(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range s.products {
		if prefix != "" && !strings.HasPrefix(p.Category, prefix) {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// Colors returns the distinct color names across the catalog. Color tags are
// stored as "<group>-<name>"; the bare name is returned when the tag has a
// group prefix.
func (s *Store) Colors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	colors := []string{}
	for _, p := range s.products {
		for _, tag := range p.Colors {
			name := tag
			if _, suffix, ok := strings.Cut(tag, "-"); ok && suffix != "" {
				name = suffix
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			colors = append(colors, name)
		}
	}
	return colors
}

// Sizes returns the distinct size tags across the catalog.
func (s *Store) Sizes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	sizes := []string{}
	for _, p := range s.products {
		for _, size := range p.Sizes {
			if _, ok := seen[size]; ok {
				continue
			}
			seen[size] = struct{}{}
			sizes = append(sizes, size)
		}
	}
	return sizes
}

// PriceLimits returns the floor of the cheapest and the ceiling of the most
// expensive product price. Both are zero for an empty catalog.
func (s *Store) PriceLimits() (min, max int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.products) == 0 {
		return 0, 0
	}
	prices := make([]float64, len(s.products))
	for i, p := range s.products {
		prices[i] = p.Price
	}
	sort.Float64s(prices)
	return int(math.Floor(prices[0])), int(math.Ceil(prices[len(prices)-1]))
}

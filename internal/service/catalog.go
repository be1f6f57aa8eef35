package service

import "github.com/aukdevgh/project-backend/internal/catalog"

// Catalog is the read-only product lookup the cart and order services need.
// *catalog.Store satisfies it; tests use an in-memory fake.
type Catalog interface {
	Products() []catalog.Product
	Find(id string) (catalog.Product, bool)
}

// Package catalog loads the laptop catalog, normalizes it onto a fixed schema, and holds
// the immutable snapshot that every recommendation query reads.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hyperjump/pakar/internal/models"
)

// Catalog is an immutable, ordered snapshot of normalized products.
type Catalog struct {
	id       string
	source   string
	loadedAt time.Time
	products []models.Product
}

// New builds a snapshot from products. The slice is copied.
func New(products []models.Product, source string) *Catalog {
	return &Catalog{
		id:       uuid.NewString(),
		source:   source,
		loadedAt: time.Now(),
		products: append([]models.Product(nil), products...),
	}
}

// ID identifies this snapshot; a reload always produces a new ID.
func (c *Catalog) ID() string { return c.id }

// Source is the path the snapshot was loaded from.
func (c *Catalog) Source() string { return c.source }

// LoadedAt is when the snapshot was built.
func (c *Catalog) LoadedAt() time.Time { return c.loadedAt }

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns a copy of all products in catalog order.
func (c *Catalog) Products() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// ProductID returns a stable identifier for p. The same name and links always yield the same ID.
func ProductID(p models.Product) string {
	h := sha256.New()
	h.Write([]byte(p.Name))
	h.Write([]byte{0})
	h.Write([]byte(p.DetailURL))
	h.Write([]byte{0})
	h.Write([]byte(p.BuyURL))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Store holds the current snapshot. Replacing it swaps the reference; a query that already
// took a snapshot keeps reading that one.
type Store struct {
	current atomic.Pointer[Catalog]
}

// NewStore returns an empty store; Ready reports false until the first Swap.
func NewStore() *Store {
	return &Store{}
}

// Load returns the current snapshot, or nil when none has been loaded.
func (s *Store) Load() *Catalog {
	return s.current.Load()
}

// Swap installs c and returns the previous snapshot.
func (s *Store) Swap(c *Catalog) *Catalog {
	return s.current.Swap(c)
}

// Ready reports whether a snapshot is installed.
func (s *Store) Ready() bool {
	return s.current.Load() != nil
}

// internal/domain/compare/compare.go
package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Product is the snapshot kept for side-by-side comparison. Unlike the
// other collections it never touches the remote store: the list lives on
// local disk only and survives sign-out.
type Product struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	ImageURL       string `json:"image_url"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	InventoryCount int    `json:"inventory_count"`
	StoreID        uint   `json:"store_id"`
}

// List is a bounded, insertion-ordered comparison list mirrored to a
// JSON file on every change.
type List struct {
	path string
	max  int
	log  *logrus.Entry

	mu    sync.Mutex
	items []Product
}

// Load reads the persisted list for a user, treating a corrupt file as
// empty and deleting it.
func Load(dir string, userID uint, max int, log *logrus.Logger) *List {
	l := &List{
		path: filepath.Join(dir, fmt.Sprintf("compare_%d.json", userID)),
		max:  max,
		log:  log.WithField("component", "compare"),
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return l
	}

	var items []Product
	if err := json.Unmarshal(data, &items); err != nil {
		l.log.WithError(err).Warn("discarding corrupt comparison list")
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			l.log.WithError(err).Warn("failed to remove corrupt comparison list")
		}
		return l
	}

	if len(items) > max {
		items = items[:max]
	}
	l.items = items
	return l
}

// Add appends a product. It is a no-op (returning false) when the
// product is already present or the list is full.
func (l *List) Add(p Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.items) >= l.max {
		return false
	}
	for i := range l.items {
		if l.items[i].ID == p.ID {
			return false
		}
	}

	l.items = append(l.items, p)
	l.persist()
	return true
}

// Remove drops the product with the given id, if present
func (l *List) Remove(productID uint) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.items[:0]
	for _, item := range l.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	l.items = kept
	l.persist()
}

// Clear empties the list
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.persist()
}

// IsIn reports membership
func (l *List) IsIn(productID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].ID == productID {
			return true
		}
	}
	return false
}

// CanAddMore reports whether the list has room for another product
func (l *List) CanAddMore() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items) < l.max
}

// Items returns a copy of the list in insertion order
func (l *List) Items() []Product {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]Product, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of products in the list
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// persist mirrors the list to disk. Callers hold l.mu. A write failure
// only costs persistence across restarts, so it is logged and dropped.
func (l *List) persist() {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.log.WithError(err).Warn("failed to create comparison list directory")
		return
	}

	data, err := json.Marshal(l.items)
	if err != nil {
		l.log.WithError(err).Warn("failed to encode comparison list")
		return
	}

	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		l.log.WithError(err).Warn("failed to write comparison list")
	}
}

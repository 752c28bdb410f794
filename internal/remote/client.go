// internal/remote/client.go
package remote

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Client bundles everything the state layer consumes from the backend:
// per-collection row stores, the named procedures and the change feed.
type Client struct {
	Cart     *CartStore
	Wishlist *WishlistStore
	Saved    *SavedStore
	Orders   *OrderStore
	Reviews  *ReviewStore
	Procs    *Procedures
	Feed     *Feed
}

// NewClient creates the remote data client
func NewClient(db *gorm.DB, rdb *redis.Client, log *logrus.Logger) *Client {
	feed := NewFeed(rdb, log)

	return &Client{
		Cart:     &CartStore{db: db, feed: feed},
		Wishlist: &WishlistStore{db: db, feed: feed},
		Saved:    &SavedStore{db: db, feed: feed},
		Orders:   &OrderStore{db: db},
		Reviews:  &ReviewStore{db: db, feed: feed},
		Procs:    &Procedures{db: db},
		Feed:     feed,
	}
}

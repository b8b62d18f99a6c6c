package port

import "context"

// Store groups the repositories of one backend. Repositories returned by the
// Store passed to WithinTx share a single transaction: either every write made
// through them is kept or none is.
type Store interface {
	Carts() CartRepository
	Orders() OrderRepository
	Products() ProductRepository
	Wishlist() WishlistRepository
	Designs() DesignRepository

	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

package model

import "context"

// Entry names one independently persisted piece of store state.
type Entry string

const (
	EntryUser       Entry = "user"
	EntryRole       Entry = "role"
	EntryCart       Entry = "cart"
	EntryWishlist   Entry = "wishlist"
	EntryOrders     Entry = "orders"
	EntryAllOrders  Entry = "allOrders"
	EntryCategories Entry = "categories"
	EntryProducts   Entry = "products"
	EntrySettings   Entry = "settings"
	EntryCoupons    Entry = "coupons"
)

// AllEntries lists every persisted entry.
var AllEntries = []Entry{
	EntryUser, EntryRole, EntryCart, EntryWishlist, EntryOrders,
	EntryAllOrders, EntryCategories, EntryProducts, EntrySettings, EntryCoupons,
}

// IsSession reports whether the entry belongs to the buyer session and
// may expire.
func (e Entry) IsSession() bool {
	switch e {
	case EntryUser, EntryRole, EntryCart, EntryWishlist:
		return true
	}
	return false
}

type StateRepository interface {
	// Load decodes the entry into dst. It reports false when nothing is stored.
	Load(ctx context.Context, entry Entry, dst any) (bool, error)

	// Save encodes and stores one entry.
	Save(ctx context.Context, entry Entry, value any) error

	// SaveAll stores several entries at once; either all are written or none.
	SaveAll(ctx context.Context, values map[Entry]any) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

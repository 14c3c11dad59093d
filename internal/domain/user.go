package domain

import "time"

// User is the unit of persistence: cart and order history live inside
// the user document and every mutation replaces them wholesale, guarded
// by Version.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Version      int64      `json:"-"`
	Cart         []CartLine `json:"cart"`
	Orders       []Order    `json:"orders"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CartLine holds one product's presence in the active cart. The product
// snapshot is frozen at add time and never refreshed. Qty is always >= 1;
// a line decremented to zero is removed, not kept.
type CartLine struct {
	Product Product `json:"product"`
	Qty     int     `json:"qty"`
}

// Order is an immutable snapshot of the cart taken at checkout.
type Order struct {
	Lines    []CartLine `json:"lines"`
	PlacedAt time.Time  `json:"placedAt"`
}

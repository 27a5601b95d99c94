package domain

import "time"

// DefaultTax is applied to new items that do not specify one.
const DefaultTax = 13.0

// Item is a priced record owned by at most one user.
type Item struct {
	ID          int64
	Name        string
	Description *string
	Price       float64
	Tax         float64
	OwnerID     *int64
	Owner       *User
	Slug        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemPatch lists the item fields an update may touch. Description is the
// only nullable one.
type ItemPatch struct {
	Name        *string
	Description Optional[string]
	Price       *float64
	Tax         *float64
}

package model

import "time"

// Category mirrors the `categories` table. Names are unique across the whole
// table (case-sensitive exact match), enforced both by a pre-insert check and
// a UNIQUE index.
type Category struct {
	ID        uint64    // categories.id
	Name      string    // categories.name
	CreatedAt time.Time // categories.created_at
	UpdatedAt time.Time // categories.updated_at
}

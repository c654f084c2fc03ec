package domain

import "time"

// Warung is the shop every other record is scoped to.
type Warung struct {
	ID        string
	Name      string
	Address   *string
	Phone     *string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

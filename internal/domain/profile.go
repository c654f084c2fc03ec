package domain

import "time"

type Profile struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	PasswordHash string
	Role         string
	WarungID     *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

func (p Profile) IsOwner() bool {
	return p.Role == RoleOwner
}

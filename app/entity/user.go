package entity

import "time"

const RoleUser = "ROLE_USER"

type User struct {
	ID             uint64
	Nick           string
	Email          string
	CanonicalEmail string
	PasswordHash   string
	Enabled        bool
	Role           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

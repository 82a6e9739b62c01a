package entity

import "time"

type Note struct {
	ID        uint64
	BookID    uint64
	UserID    uint64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

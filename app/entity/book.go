package entity

import (
	"database/sql"
	"time"
)

const (
	BookStatusWaiting = "WAITING"
	BookStatusReading = "READING"
	BookStatusRead    = "READ"
)

func ValidBookStatus(status string) bool {
	switch status {
	case BookStatusWaiting, BookStatusReading, BookStatusRead:
		return true
	}
	return false
}

type Book struct {
	ID          uint64
	UserID      uint64
	Title       string
	Author      string
	Status      string
	LinkToCover sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package model

import "time"

// Account represents a player account stored in the database.
type Account struct {
	Login        string
	PasswordHash string
	CreatedAt    time.Time
	LastActive   time.Time
}

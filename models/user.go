package models

import (
	"time"
)

// User represents a player account with a custodial balance.
// Available is spendable; Frozen is escrowed against an active wager.
type User struct {
	UserID     int64     `db:"user_id" json:"user_id"`
	Username   string    `db:"username" json:"username"`
	Available  int64     `db:"available" json:"available"`
	Frozen     int64     `db:"frozen" json:"frozen"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	LastActive time.Time `db:"last_active" json:"last_active"`
}

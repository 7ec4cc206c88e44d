package models

import (
	"time"
)

// EntryKind represents the type of a ledger entry
type EntryKind string

const (
	EntryKindCredit   EntryKind = "CREDIT"
	EntryKindDebit    EntryKind = "DEBIT"
	EntryKindFreeze   EntryKind = "FREEZE"
	EntryKindUnfreeze EntryKind = "UNFREEZE"
)

// LedgerEntry is an immutable record of a single balance-affecting event.
// The journal is the source of truth; user balances are a derived cache.
//
// Replay semantics per entry kind:
//
//	CREDIT    available += amount
//	DEBIT     frozen    -= amount
//	FREEZE    available -= amount, frozen += amount
//	UNFREEZE  available += amount, frozen -= amount
type LedgerEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Kind      EntryKind `db:"kind" json:"kind"`
	Amount    int64     `db:"amount" json:"amount"`
	Ref       string    `db:"ref" json:"ref"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

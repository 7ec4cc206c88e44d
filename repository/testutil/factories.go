package testutil

import (
	"strings"
	"time"

	"clickduel/models"

	"github.com/google/uuid"
)

// CreateTestRoom creates an OPEN room with default values
func CreateTestRoom(hostID int64, hostUsername string, betAmount int64) *models.Room {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return &models.Room{
		ID:           hex[:12],
		InviteToken:  hex,
		HostID:       hostID,
		HostUsername: hostUsername,
		BetAmount:    betAmount,
		Status:       models.RoomStatusOpen,
		ExpiresAt:    time.Now().UTC().Add(5 * time.Minute),
	}
}

// CreateExpiredTestRoom creates an OPEN room whose expiry window has passed
func CreateExpiredTestRoom(hostID int64, hostUsername string, betAmount int64) *models.Room {
	room := CreateTestRoom(hostID, hostUsername, betAmount)
	room.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	return room
}

// CreateTestLedgerEntry creates a journal entry with default values
func CreateTestLedgerEntry(userID int64, kind models.EntryKind, amount int64, ref string) *models.LedgerEntry {
	return &models.LedgerEntry{
		UserID: userID,
		Kind:   kind,
		Amount: amount,
		Ref:    ref,
	}
}

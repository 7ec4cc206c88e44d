package models

import (
	"time"
)

// RoomStatus represents the lifecycle state of a room
type RoomStatus string

const (
	RoomStatusOpen      RoomStatus = "OPEN"
	RoomStatusFull      RoomStatus = "FULL"
	RoomStatusPlaying   RoomStatus = "PLAYING"
	RoomStatusFinished  RoomStatus = "FINISHED"
	RoomStatusCancelled RoomStatus = "CANCELLED"
)

// Room represents a two-player click duel with a fixed stake per side
type Room struct {
	ID            string     `db:"id" json:"room_id"`
	InviteToken   string     `db:"invite_token" json:"invite_token,omitempty"`
	ChannelID     *int64     `db:"channel_id" json:"channel_id,omitempty"`
	HostID        int64      `db:"host_id" json:"host_id"`
	HostUsername  string     `db:"host_username" json:"host_username"`
	GuestID       *int64     `db:"guest_id" json:"guest_id,omitempty"`
	GuestUsername *string    `db:"guest_username" json:"guest_username,omitempty"`
	BetAmount     int64      `db:"bet_amount" json:"bet_amount"`
	Status        RoomStatus `db:"status" json:"status"`
	HostReady     bool       `db:"host_ready" json:"host_ready"`
	GuestReady    bool       `db:"guest_ready" json:"guest_ready"`
	HostClicks    int        `db:"host_clicks" json:"host_clicks"`
	GuestClicks   int        `db:"guest_clicks" json:"guest_clicks"`
	WinnerID      *int64     `db:"winner_id" json:"winner_id,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	ExpiresAt     time.Time  `db:"expires_at" json:"expires_at"`
	GameStartedAt *time.Time `db:"game_started_at" json:"game_started_at,omitempty"`
	GameEndedAt   *time.Time `db:"game_ended_at" json:"game_ended_at,omitempty"`
}

// IsParticipant checks if a user is the host or the guest of the room
func (r *Room) IsParticipant(userID int64) bool {
	if r.HostID == userID {
		return true
	}
	return r.GuestID != nil && *r.GuestID == userID
}

// Opponent returns the other participant's ID, or 0 for a non-participant
// or a room without a guest
func (r *Room) Opponent(userID int64) int64 {
	if r.GuestID == nil {
		return 0
	}
	if r.HostID == userID {
		return *r.GuestID
	}
	if *r.GuestID == userID {
		return r.HostID
	}
	return 0
}

// BothReady reports whether both players have marked ready
func (r *Room) BothReady() bool {
	return r.HostReady && r.GuestReady
}

// ExpiredAt reports whether the room's expiry window has passed at the given time
func (r *Room) ExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// IsActive reports whether the room is in a non-terminal state
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusOpen || r.Status == RoomStatusFull || r.Status == RoomStatusPlaying
}

// RoomOutcome represents the result of settling a room.
// WinnerID is nil on a draw.
type RoomOutcome struct {
	Room        *Room
	WinnerID    *int64
	Draw        bool
	HostClicks  int
	GuestClicks int
	BetAmount   int64
}

package repository

import (
	"context"
	"fmt"

	"clickduel/database"
	"clickduel/models"
	"github.com/jackc/pgx/v5"
)

const roomColumns = `
	id, invite_token, channel_id, host_id, host_username, guest_id,
	guest_username, bet_amount, status, host_ready, guest_ready,
	host_clicks, guest_clicks, winner_id, created_at, expires_at,
	game_started_at, game_ended_at
`

// RoomRepository implements the service.RoomRepository interface
type RoomRepository struct {
	q queryable
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *database.DB) *RoomRepository {
	return &RoomRepository{q: db.Pool}
}

// newRoomRepositoryWithTx creates a new room repository with a transaction
func newRoomRepositoryWithTx(tx queryable) *RoomRepository {
	return &RoomRepository{q: tx}
}

// Create inserts a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (
			id, invite_token, channel_id, host_id, host_username,
			bet_amount, status, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		room.ID,
		room.InviteToken,
		room.ChannelID,
		room.HostID,
		room.HostUsername,
		room.BetAmount,
		room.Status,
		room.ExpiresAt,
	).Scan(&room.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create room %s: %w", room.ID, err)
	}

	return nil
}

// GetByID retrieves a room by its ID
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a room by ID with a row lock. Transitions on
// the same room serialize on this lock; different rooms proceed in parallel.
func (r *RoomRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

// GetByInviteTokenForUpdate retrieves a room by its invite token with a row lock
func (r *RoomRepository) GetByInviteTokenForUpdate(ctx context.Context, token string) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE invite_token = $1 FOR UPDATE`
	return r.getOne(ctx, query, token)
}

func (r *RoomRepository) getOne(ctx context.Context, query string, arg any) (*models.Room, error) {
	var room models.Room
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&room.ID,
		&room.InviteToken,
		&room.ChannelID,
		&room.HostID,
		&room.HostUsername,
		&room.GuestID,
		&room.GuestUsername,
		&room.BetAmount,
		&room.Status,
		&room.HostReady,
		&room.GuestReady,
		&room.HostClicks,
		&room.GuestClicks,
		&room.WinnerID,
		&room.CreatedAt,
		&room.ExpiresAt,
		&room.GameStartedAt,
		&room.GameEndedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return &room, nil
}

// Update persists a room's mutable fields
func (r *RoomRepository) Update(ctx context.Context, room *models.Room) error {
	query := `
		UPDATE rooms
		SET channel_id = $2, guest_id = $3, guest_username = $4, status = $5,
		    host_ready = $6, guest_ready = $7, host_clicks = $8,
		    guest_clicks = $9, winner_id = $10, expires_at = $11,
		    game_started_at = $12, game_ended_at = $13
		WHERE id = $1
	`

	result, err := r.q.Exec(ctx, query,
		room.ID,
		room.ChannelID,
		room.GuestID,
		room.GuestUsername,
		room.Status,
		room.HostReady,
		room.GuestReady,
		room.HostClicks,
		room.GuestClicks,
		room.WinnerID,
		room.ExpiresAt,
		room.GameStartedAt,
		room.GameEndedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update room %s: %w", room.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("room %s not found", room.ID)
	}

	return nil
}

// ListOpen returns joinable rooms (OPEN or FULL, not yet expired), newest first
func (r *RoomRepository) ListOpen(ctx context.Context, limit int) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE status IN ('OPEN', 'FULL') AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

// ListActiveByUser returns a user's non-terminal rooms, newest first
func (r *RoomRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE (host_id = $1 OR guest_id = $1)
		  AND status NOT IN ('FINISHED', 'CANCELLED')
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListExpired returns OPEN/FULL rooms whose expiry window has passed
func (r *RoomRepository) ListExpired(ctx context.Context) ([]*models.Room, error) {
	query := `
		SELECT ` + roomColumns + `
		FROM rooms
		WHERE status IN ('OPEN', 'FULL') AND expires_at < NOW()
	`
	return r.list(ctx, query)
}

func (r *RoomRepository) list(ctx context.Context, query string, args ...any) ([]*models.Room, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		var room models.Room
		err := rows.Scan(
			&room.ID,
			&room.InviteToken,
			&room.ChannelID,
			&room.HostID,
			&room.HostUsername,
			&room.GuestID,
			&room.GuestUsername,
			&room.BetAmount,
			&room.Status,
			&room.HostReady,
			&room.GuestReady,
			&room.HostClicks,
			&room.GuestClicks,
			&room.WinnerID,
			&room.CreatedAt,
			&room.ExpiresAt,
			&room.GameStartedAt,
			&room.GameEndedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rooms: %w", err)
	}

	return rooms, nil
}

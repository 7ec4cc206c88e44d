package service

import (
	"context"

	"clickduel/events"
	"clickduel/models"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	// GetByID retrieves a user by ID, returning (nil, nil) if absent
	GetByID(ctx context.Context, userID int64) (*models.User, error)

	// Create inserts a new user with the starting available balance,
	// returning (nil, nil) if the user already exists
	Create(ctx context.Context, userID int64, username string, startingBalance int64) (*models.User, error)

	// TouchProfile updates the display name and last-active marker
	TouchProfile(ctx context.Context, userID int64, username string) error

	// Freeze atomically moves amount from available to frozen, failing
	// with ErrInsufficientFunds if available is short
	Freeze(ctx context.Context, userID int64, amount int64) error

	// Unfreeze atomically moves amount from frozen back to available,
	// failing with ErrInsufficientFrozen if frozen is short
	Unfreeze(ctx context.Context, userID int64, amount int64) error

	// DebitFrozen atomically removes amount from the frozen balance,
	// failing with ErrInsufficientFrozen if frozen is short
	DebitFrozen(ctx context.Context, userID int64, amount int64) error

	// CreditAvailable atomically adds amount to the available balance
	CreditAvailable(ctx context.Context, userID int64, amount int64) error
}

// LedgerRepository defines the interface for the append-only journal
type LedgerRepository interface {
	// Record appends a journal entry, assigning its ID and timestamp
	Record(ctx context.Context, entry *models.LedgerEntry) error

	// GetByUser returns the newest journal entries for a user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)

	// ReplayBalances reconstructs (available, frozen) from the journal
	ReplayBalances(ctx context.Context, userID int64) (available int64, frozen int64, err error)
}

// RoomRepository defines the interface for room data access
type RoomRepository interface {
	// Create inserts a new room
	Create(ctx context.Context, room *models.Room) error

	// GetByID retrieves a room by ID, returning (nil, nil) if absent
	GetByID(ctx context.Context, id string) (*models.Room, error)

	// GetByIDForUpdate retrieves a room by ID with a row lock, serializing
	// concurrent transitions on the same room
	GetByIDForUpdate(ctx context.Context, id string) (*models.Room, error)

	// GetByInviteTokenForUpdate retrieves a room by invite token with a row lock
	GetByInviteTokenForUpdate(ctx context.Context, token string) (*models.Room, error)

	// Update persists a room's mutable fields
	Update(ctx context.Context, room *models.Room) error

	// ListOpen returns joinable rooms (OPEN or FULL, not yet expired),
	// newest first
	ListOpen(ctx context.Context, limit int) ([]*models.Room, error)

	// ListActiveByUser returns a user's non-terminal rooms, newest first
	ListActiveByUser(ctx context.Context, userID int64) ([]*models.Room, error)

	// ListExpired returns OPEN/FULL rooms whose expiry window has passed
	ListExpired(ctx context.Context) ([]*models.Room, error)
}

// LedgerService defines the interface for account and escrow operations
type LedgerService interface {
	// EnsureAccount creates the account with the starting grant if absent;
	// otherwise refreshes the display name and last-active marker
	EnsureAccount(ctx context.Context, userID int64, username string) (*models.User, error)

	// Freeze escrows amount from the user's available balance
	Freeze(ctx context.Context, userID int64, amount int64, ref string) error

	// Unfreeze returns amount from the user's frozen balance
	Unfreeze(ctx context.Context, userID int64, amount int64, ref string) error

	// SettleTransfer moves amount from the loser's frozen balance to the
	// winner's available balance as one atomic transaction
	SettleTransfer(ctx context.Context, loserID, winnerID int64, amount int64, ref string) error

	// GetBalance returns the account, failing with ErrNotFound if absent
	GetBalance(ctx context.Context, userID int64) (*models.User, error)

	// GetHistory returns the newest journal entries for a user
	GetHistory(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error)
}

// RoomService defines the interface for room lifecycle operations
type RoomService interface {
	// Create opens a room and escrows the host's stake
	Create(ctx context.Context, hostID int64, hostUsername string, betAmount int64, channelID *int64) (*models.Room, error)

	// JoinByID seats a guest in an OPEN room, escrowing their stake
	JoinByID(ctx context.Context, roomID string, guestID int64, guestUsername string) (*models.Room, error)

	// JoinByToken seats a guest via the room's invite token
	JoinByToken(ctx context.Context, token string, guestID int64, guestUsername string) (*models.Room, error)

	// MarkReady records a player's ready flag; when both are ready the
	// game starts. Re-marking ready is a no-op.
	MarkReady(ctx context.Context, roomID string, userID int64) (*models.Room, error)

	// RecordClick increments a player's click counter while the game runs
	RecordClick(ctx context.Context, roomID string, userID int64) (*models.Room, error)

	// Settle finishes a room whose game duration has elapsed, paying the
	// winner or refunding both stakes on a draw. Callable by any actor.
	Settle(ctx context.Context, roomID string) (*models.RoomOutcome, error)

	// Expire cancels a timed-out OPEN or FULL room, refunding stakes
	Expire(ctx context.Context, roomID string) error

	// Share announces the room's invite in a channel (host only)
	Share(ctx context.Context, roomID string, userID int64, channelID *int64) (*models.Room, error)

	// GetRoom retrieves a room snapshot
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// ListOpenRooms returns joinable rooms, newest first
	ListOpenRooms(ctx context.Context, limit int) ([]*models.Room, error)

	// ListUserRooms returns a user's non-terminal rooms
	ListUserRooms(ctx context.Context, userID int64) ([]*models.Room, error)

	// ListExpiredRooms returns rooms due for expiry (used by the sweeper)
	ListExpiredRooms(ctx context.Context) ([]*models.Room, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	LedgerRepository() LedgerRepository
	RoomRepository() RoomRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh, unstarted UnitOfWork
	Create() UnitOfWork
}

package repository

import (
	"context"
	"fmt"

	"clickduel/database"
	"clickduel/models"
	"clickduel/service"
	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	query := `
		SELECT user_id, username, available, frozen, created_at, last_active
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&user.UserID,
		&user.Username,
		&user.Available,
		&user.Frozen,
		&user.CreatedAt,
		&user.LastActive,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// Create inserts a new user with the starting available balance. When the
// user already exists the insert is a no-op returning (nil, nil), so two
// concurrent first contacts cannot both seed a balance.
func (r *UserRepository) Create(ctx context.Context, userID int64, username string, startingBalance int64) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, username, available, frozen)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING user_id, username, available, frozen, created_at, last_active
	`

	var user models.User
	err := r.q.QueryRow(ctx, query, userID, username, startingBalance).Scan(
		&user.UserID,
		&user.Username,
		&user.Available,
		&user.Frozen,
		&user.CreatedAt,
		&user.LastActive,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user %d: %w", userID, err)
	}

	return &user, nil
}

// TouchProfile updates the display name and last-active marker
func (r *UserRepository) TouchProfile(ctx context.Context, userID int64, username string) error {
	query := `
		UPDATE users
		SET username = $1, last_active = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, username, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, service.ErrNotFound)
	}

	return nil
}

// Freeze atomically moves amount from available to frozen. The guard lives
// in the WHERE clause so a short balance can never be clamped negative.
func (r *UserRepository) Freeze(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("freeze amount must be positive")
	}

	query := `
		UPDATE users
		SET available = available - $1, frozen = frozen + $1, last_active = NOW()
		WHERE user_id = $2 AND available >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to freeze %d for user %d: %w", amount, userID, err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyGuardFailure(ctx, userID, service.ErrInsufficientFunds)
	}

	return nil
}

// Unfreeze atomically moves amount from frozen back to available
func (r *UserRepository) Unfreeze(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("unfreeze amount must be positive")
	}

	query := `
		UPDATE users
		SET available = available + $1, frozen = frozen - $1, last_active = NOW()
		WHERE user_id = $2 AND frozen >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to unfreeze %d for user %d: %w", amount, userID, err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyGuardFailure(ctx, userID, service.ErrInsufficientFrozen)
	}

	return nil
}

// DebitFrozen atomically removes amount from the frozen balance
func (r *UserRepository) DebitFrozen(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("debit amount must be positive")
	}

	query := `
		UPDATE users
		SET frozen = frozen - $1, last_active = NOW()
		WHERE user_id = $2 AND frozen >= $1
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit frozen %d for user %d: %w", amount, userID, err)
	}

	if result.RowsAffected() == 0 {
		return r.classifyGuardFailure(ctx, userID, service.ErrInsufficientFrozen)
	}

	return nil
}

// CreditAvailable atomically adds amount to the available balance
func (r *UserRepository) CreditAvailable(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("credit amount must be positive")
	}

	query := `
		UPDATE users
		SET available = available + $1, last_active = NOW()
		WHERE user_id = $2
	`

	result, err := r.q.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to credit %d for user %d: %w", amount, userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", userID, service.ErrNotFound)
	}

	return nil
}

// classifyGuardFailure distinguishes a missing account from a balance guard
// failure after a zero-row update.
func (r *UserRepository) classifyGuardFailure(ctx context.Context, userID int64, guardErr error) error {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, service.ErrNotFound)
	}
	return fmt.Errorf("user %d has available %d, frozen %d: %w", userID, user.Available, user.Frozen, guardErr)
}

package repository

import (
	"context"
	"fmt"

	"clickduel/database"
	"clickduel/models"
	"github.com/google/uuid"
)

// LedgerRepository implements the service.LedgerRepository interface
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// newLedgerRepositoryWithTx creates a new ledger repository with a transaction
func newLedgerRepositoryWithTx(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Record appends a journal entry, assigning its ID and timestamp
func (r *LedgerRepository) Record(ctx context.Context, entry *models.LedgerEntry) error {
	if entry.Amount <= 0 {
		return fmt.Errorf("ledger amount must be positive")
	}

	entry.ID = uuid.NewString()

	query := `
		INSERT INTO ledger (id, user_id, kind, amount, ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Kind,
		entry.Amount,
		entry.Ref,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record ledger entry for user %d: %w", entry.UserID, err)
	}

	return nil
}

// GetByUser returns the newest journal entries for a user
func (r *LedgerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	query := `
		SELECT id, user_id, kind, amount, ref, created_at
		FROM ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		var entry models.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Kind,
			&entry.Amount,
			&entry.Ref,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// ReplayBalances reconstructs (available, frozen) for a user from the
// journal. CREDIT and UNFREEZE raise available, FREEZE lowers it; FREEZE
// raises frozen, UNFREEZE and DEBIT lower it.
func (r *LedgerRepository) ReplayBalances(ctx context.Context, userID int64) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE kind
				WHEN 'CREDIT' THEN amount
				WHEN 'UNFREEZE' THEN amount
				WHEN 'FREEZE' THEN -amount
				ELSE 0
			END), 0) AS available,
			COALESCE(SUM(CASE kind
				WHEN 'FREEZE' THEN amount
				WHEN 'UNFREEZE' THEN -amount
				WHEN 'DEBIT' THEN -amount
				ELSE 0
			END), 0) AS frozen
		FROM ledger
		WHERE user_id = $1
	`

	var available, frozen int64
	err := r.q.QueryRow(ctx, query, userID).Scan(&available, &frozen)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to replay balances for user %d: %w", userID, err)
	}

	return available, frozen, nil
}

package service

import (
	"context"
	"fmt"

	"clickduel/events"
	"clickduel/models"
)

// SignupRef is the journal reference for the starting grant
const SignupRef = "signup"

type ledgerService struct {
	uowFactory      UnitOfWorkFactory
	startingBalance int64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory UnitOfWorkFactory, startingBalance int64) LedgerService {
	return &ledgerService{
		uowFactory:      uowFactory,
		startingBalance: startingBalance,
	}
}

// EnsureAccount creates the account with the starting grant if absent;
// otherwise refreshes the display name and last-active marker.
func (s *ledgerService) EnsureAccount(ctx context.Context, userID int64, username string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := EnsureAccountFunds(ctx, uow, userID, username, s.startingBalance)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// Freeze escrows amount from the user's available balance
func (s *ledgerService) Freeze(ctx context.Context, userID int64, amount int64, ref string) error {
	return s.inTransaction(ctx, func(uow UnitOfWork) error {
		return FreezeFunds(ctx, uow, userID, amount, ref)
	})
}

// Unfreeze returns amount from the user's frozen balance
func (s *ledgerService) Unfreeze(ctx context.Context, userID int64, amount int64, ref string) error {
	return s.inTransaction(ctx, func(uow UnitOfWork) error {
		return UnfreezeFunds(ctx, uow, userID, amount, ref)
	})
}

// SettleTransfer moves amount from the loser's frozen balance to the
// winner's available balance as one atomic transaction.
func (s *ledgerService) SettleTransfer(ctx context.Context, loserID, winnerID int64, amount int64, ref string) error {
	return s.inTransaction(ctx, func(uow UnitOfWork) error {
		return TransferFrozen(ctx, uow, loserID, winnerID, amount, ref)
	})
}

// GetBalance returns the account, failing with ErrNotFound if absent
func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	return user, nil
}

// GetHistory returns the newest journal entries for a user
func (s *ledgerService) GetHistory(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.LedgerRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger history: %w", err)
	}

	return entries, nil
}

func (s *ledgerService) inTransaction(ctx context.Context, fn func(uow UnitOfWork) error) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// EnsureAccountFunds upserts an account within a caller-owned unit of work.
// A fresh account receives the starting grant, journaled as a CREDIT so the
// balance stays reconstructible from the journal alone. The grant lands
// exactly once even when two first contacts race.
func EnsureAccountFunds(ctx context.Context, uow UnitOfWork, userID int64, username string, startingBalance int64) (*models.User, error) {
	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if user != nil {
		if err := uow.UserRepository().TouchProfile(ctx, userID, username); err != nil {
			return nil, fmt.Errorf("failed to refresh profile: %w", err)
		}
		user.Username = username
		return user, nil
	}

	user, err = uow.UserRepository().Create(ctx, userID, username, startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if user == nil {
		// Another transaction inserted the account between our check and
		// insert; it owns the starting grant, we just refresh the profile.
		user, err = uow.UserRepository().GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload user: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user %d missing after create conflict", userID)
		}
		if err := uow.UserRepository().TouchProfile(ctx, userID, username); err != nil {
			return nil, fmt.Errorf("failed to refresh profile: %w", err)
		}
		user.Username = username
		return user, nil
	}

	entry := &models.LedgerEntry{
		UserID: userID,
		Kind:   models.EntryKindCredit,
		Amount: startingBalance,
		Ref:    SignupRef,
	}
	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to journal starting grant: %w", err)
	}

	uow.EventBus().Publish(events.AccountCreatedEvent{
		UserID:          userID,
		Username:        username,
		StartingBalance: startingBalance,
	})

	return user, nil
}

// FreezeFunds escrows amount within a caller-owned unit of work, pairing
// the balance move with its FREEZE journal entry.
func FreezeFunds(ctx context.Context, uow UnitOfWork, userID int64, amount int64, ref string) error {
	if err := uow.UserRepository().Freeze(ctx, userID, amount); err != nil {
		return err
	}
	return journal(ctx, uow, userID, models.EntryKindFreeze, amount, ref)
}

// UnfreezeFunds reverses an escrow within a caller-owned unit of work,
// pairing the balance move with its UNFREEZE journal entry.
func UnfreezeFunds(ctx context.Context, uow UnitOfWork, userID int64, amount int64, ref string) error {
	if err := uow.UserRepository().Unfreeze(ctx, userID, amount); err != nil {
		return err
	}
	return journal(ctx, uow, userID, models.EntryKindUnfreeze, amount, ref)
}

// TransferFrozen moves amount from the loser's frozen balance to the
// winner's available balance. This is the only operation that moves value
// between accounts; both legs share the caller's transaction so no reader
// can observe the debit without the credit.
func TransferFrozen(ctx context.Context, uow UnitOfWork, loserID, winnerID int64, amount int64, ref string) error {
	if err := uow.UserRepository().DebitFrozen(ctx, loserID, amount); err != nil {
		return fmt.Errorf("failed to debit loser: %w", err)
	}
	if err := journal(ctx, uow, loserID, models.EntryKindDebit, amount, ref); err != nil {
		return err
	}

	if err := uow.UserRepository().CreditAvailable(ctx, winnerID, amount); err != nil {
		return fmt.Errorf("failed to credit winner: %w", err)
	}
	return journal(ctx, uow, winnerID, models.EntryKindCredit, amount, ref)
}

// journal appends a ledger entry and publishes the matching event.
// This is the single entry point for balance-affecting writes.
func journal(ctx context.Context, uow UnitOfWork, userID int64, kind models.EntryKind, amount int64, ref string) error {
	entry := &models.LedgerEntry{
		UserID: userID,
		Kind:   kind,
		Amount: amount,
		Ref:    ref,
	}
	if err := uow.LedgerRepository().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to journal %s of %d for user %d: %w", kind, amount, userID, err)
	}

	uow.EventBus().Publish(events.BalanceChangedEvent{
		UserID: userID,
		Kind:   kind,
		Amount: amount,
		Ref:    ref,
	})

	return nil
}

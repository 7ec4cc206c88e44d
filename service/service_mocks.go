package service

import (
	"context"

	"clickduel/models"

	"github.com/stretchr/testify/mock"
)

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) EnsureAccount(ctx context.Context, userID int64, username string) (*models.User, error) {
	args := m.Called(ctx, userID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockLedgerService) Freeze(ctx context.Context, userID int64, amount int64, ref string) error {
	args := m.Called(ctx, userID, amount, ref)
	return args.Error(0)
}

func (m *MockLedgerService) Unfreeze(ctx context.Context, userID int64, amount int64, ref string) error {
	args := m.Called(ctx, userID, amount, ref)
	return args.Error(0)
}

func (m *MockLedgerService) SettleTransfer(ctx context.Context, loserID, winnerID int64, amount int64, ref string) error {
	args := m.Called(ctx, loserID, winnerID, amount, ref)
	return args.Error(0)
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockLedgerService) GetHistory(ctx context.Context, userID int64, limit int) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

// MockRoomService is a mock implementation of RoomService
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) Create(ctx context.Context, hostID int64, hostUsername string, betAmount int64, channelID *int64) (*models.Room, error) {
	args := m.Called(ctx, hostID, hostUsername, betAmount, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) JoinByID(ctx context.Context, roomID string, guestID int64, guestUsername string) (*models.Room, error) {
	args := m.Called(ctx, roomID, guestID, guestUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) JoinByToken(ctx context.Context, token string, guestID int64, guestUsername string) (*models.Room, error) {
	args := m.Called(ctx, token, guestID, guestUsername)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) MarkReady(ctx context.Context, roomID string, userID int64) (*models.Room, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) RecordClick(ctx context.Context, roomID string, userID int64) (*models.Room, error) {
	args := m.Called(ctx, roomID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) Settle(ctx context.Context, roomID string) (*models.RoomOutcome, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RoomOutcome), args.Error(1)
}

func (m *MockRoomService) Expire(ctx context.Context, roomID string) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockRoomService) Share(ctx context.Context, roomID string, userID int64, channelID *int64) (*models.Room, error) {
	args := m.Called(ctx, roomID, userID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomService) ListOpenRooms(ctx context.Context, limit int) ([]*models.Room, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomService) ListUserRooms(ctx context.Context, userID int64) ([]*models.Room, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

func (m *MockRoomService) ListExpiredRooms(ctx context.Context) ([]*models.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}

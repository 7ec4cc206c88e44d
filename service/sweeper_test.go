package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"clickduel/models"
)

func TestSweeper_SweepExpiresDueRooms(t *testing.T) {
	ctx := context.Background()
	mockRooms := new(MockRoomService)

	due := []*models.Room{
		{ID: "room00000001", Status: models.RoomStatusOpen},
		{ID: "room00000002", Status: models.RoomStatusFull},
	}
	mockRooms.On("ListExpiredRooms", ctx).Return(due, nil)
	mockRooms.On("Expire", ctx, "room00000001").Return(nil)
	mockRooms.On("Expire", ctx, "room00000002").Return(nil)

	sweeper := NewSweeper(mockRooms, time.Minute)
	sweeper.sweep(ctx)

	mockRooms.AssertExpectations(t)
}

func TestSweeper_SweepSkipsRacedRooms(t *testing.T) {
	ctx := context.Background()
	mockRooms := new(MockRoomService)

	due := []*models.Room{
		{ID: "room00000001", Status: models.RoomStatusOpen},
		{ID: "room00000002", Status: models.RoomStatusOpen},
	}
	mockRooms.On("ListExpiredRooms", ctx).Return(due, nil)
	// A guest joined the first room between the listing and the lock
	mockRooms.On("Expire", ctx, "room00000001").Return(fmt.Errorf("room is FULL: %w", ErrInvalidState))
	mockRooms.On("Expire", ctx, "room00000002").Return(nil)

	sweeper := NewSweeper(mockRooms, time.Minute)
	sweeper.sweep(ctx)

	// The race on one room must not block the rest of the batch
	mockRooms.AssertExpectations(t)
}

func TestSweeper_StartAndStop(t *testing.T) {
	ctx := context.Background()
	mockRooms := new(MockRoomService)
	mockRooms.On("ListExpiredRooms", ctx).Return([]*models.Room{}, nil)

	sweeper := NewSweeper(mockRooms, time.Hour)
	stop := sweeper.Start(ctx)
	stop()

	// The startup sweep ran before stop returned
	mockRooms.AssertCalled(t, "ListExpiredRooms", ctx)
}

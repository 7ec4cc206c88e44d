package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clickduel/events"
	"clickduel/models"
	"github.com/google/uuid"
)

// GameRules holds the tunable parameters of the duel lifecycle
type GameRules struct {
	MinBet           int64
	MaxBet           int64
	StartingBalance  int64
	OpenRoomTTL      time.Duration
	FullRoomTTL      time.Duration
	GameDuration     time.Duration
	DefaultChannelID int64
}

type roomService struct {
	uowFactory UnitOfWorkFactory
	rules      GameRules
}

// NewRoomService creates a new room service
func NewRoomService(uowFactory UnitOfWorkFactory, rules GameRules) RoomService {
	return &roomService{
		uowFactory: uowFactory,
		rules:      rules,
	}
}

// roomRef builds the journal reference tying an escrow to its room
func roomRef(roomID string) string {
	return "room:" + roomID
}

func newRoomID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func newInviteToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Create opens a room and escrows the host's stake in the same transaction,
// so a room never exists without its backing escrow.
func (s *roomService) Create(ctx context.Context, hostID int64, hostUsername string, betAmount int64, channelID *int64) (*models.Room, error) {
	if betAmount < s.rules.MinBet || betAmount > s.rules.MaxBet {
		return nil, fmt.Errorf("bet amount must be between %d and %d: %w", s.rules.MinBet, s.rules.MaxBet, ErrInvalidArgument)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := EnsureAccountFunds(ctx, uow, hostID, hostUsername, s.rules.StartingBalance); err != nil {
		return nil, err
	}

	room := &models.Room{
		ID:           newRoomID(),
		InviteToken:  newInviteToken(),
		ChannelID:    channelID,
		HostID:       hostID,
		HostUsername: hostUsername,
		BetAmount:    betAmount,
		Status:       models.RoomStatusOpen,
		ExpiresAt:    time.Now().UTC().Add(s.rules.OpenRoomTTL),
	}

	if err := FreezeFunds(ctx, uow, hostID, betAmount, roomRef(room.ID)); err != nil {
		return nil, err
	}

	if err := uow.RoomRepository().Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	uow.EventBus().Publish(events.RoomCreatedEvent{
		RoomID:    room.ID,
		HostID:    hostID,
		BetAmount: betAmount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// JoinByID seats a guest in an OPEN room, escrowing their stake
func (s *roomService) JoinByID(ctx context.Context, roomID string, guestID int64, guestUsername string) (*models.Room, error) {
	return s.join(ctx, guestID, guestUsername, func(ctx context.Context, uow UnitOfWork) (*models.Room, error) {
		return uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	})
}

// JoinByToken seats a guest via the room's invite token
func (s *roomService) JoinByToken(ctx context.Context, token string, guestID int64, guestUsername string) (*models.Room, error) {
	return s.join(ctx, guestID, guestUsername, func(ctx context.Context, uow UnitOfWork) (*models.Room, error) {
		return uow.RoomRepository().GetByInviteTokenForUpdate(ctx, token)
	})
}

// join runs the shared seat-taking transition. The room row is locked
// first, so two guests racing for the last seat serialize and the loser
// sees status FULL.
func (s *roomService) join(ctx context.Context, guestID int64, guestUsername string, lookup func(context.Context, UnitOfWork) (*models.Room, error)) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := lookup(ctx, uow)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room: %w", ErrNotFound)
	}

	now := time.Now().UTC()
	if room.Status != models.RoomStatusOpen {
		return nil, fmt.Errorf("room %s is %s, not OPEN: %w", room.ID, room.Status, ErrInvalidState)
	}
	if room.ExpiredAt(now) {
		return nil, fmt.Errorf("room %s: %w", room.ID, ErrAlreadyExpired)
	}
	if room.HostID == guestID {
		return nil, fmt.Errorf("host cannot join own room: %w", ErrForbidden)
	}

	if _, err := EnsureAccountFunds(ctx, uow, guestID, guestUsername, s.rules.StartingBalance); err != nil {
		return nil, err
	}

	// Guest stakes the same amount the host staked
	if err := FreezeFunds(ctx, uow, guestID, room.BetAmount, roomRef(room.ID)); err != nil {
		return nil, err
	}

	room.GuestID = &guestID
	room.GuestUsername = &guestUsername
	room.Status = models.RoomStatusFull
	room.ExpiresAt = now.Add(s.rules.FullRoomTTL)

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.RoomJoinedEvent{
		RoomID:    room.ID,
		HostID:    room.HostID,
		GuestID:   guestID,
		BetAmount: room.BetAmount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// MarkReady records a player's ready flag. When the second flag lands the
// room moves to PLAYING and the clock starts.
func (s *roomService) MarkReady(ctx context.Context, roomID string, userID int64) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.lockRoom(ctx, uow, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != models.RoomStatusFull {
		return nil, fmt.Errorf("room %s is %s, not FULL: %w", roomID, room.Status, ErrInvalidState)
	}
	if !room.IsParticipant(userID) {
		return nil, fmt.Errorf("user %d is not in room %s: %w", userID, roomID, ErrForbidden)
	}

	if room.HostID == userID {
		room.HostReady = true
	} else {
		room.GuestReady = true
	}

	if room.BothReady() {
		now := time.Now().UTC()
		room.Status = models.RoomStatusPlaying
		room.GameStartedAt = &now
	}

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	if room.Status == models.RoomStatusPlaying {
		uow.EventBus().Publish(events.GameStartedEvent{
			RoomID:  room.ID,
			HostID:  room.HostID,
			GuestID: *room.GuestID,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// RecordClick increments a player's click counter while the game runs
func (s *roomService) RecordClick(ctx context.Context, roomID string, userID int64) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.lockRoom(ctx, uow, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != models.RoomStatusPlaying {
		return nil, fmt.Errorf("room %s is %s, not PLAYING: %w", roomID, room.Status, ErrInvalidState)
	}
	if !room.IsParticipant(userID) {
		return nil, fmt.Errorf("user %d is not in room %s: %w", userID, roomID, ErrForbidden)
	}
	if room.GameStartedAt == nil || time.Now().UTC().Sub(*room.GameStartedAt) >= s.rules.GameDuration {
		return nil, fmt.Errorf("game time is over in room %s: %w", roomID, ErrAlreadyExpired)
	}

	if room.HostID == userID {
		room.HostClicks++
	} else {
		room.GuestClicks++
	}

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// Settle finishes a room whose game duration has elapsed. The row lock,
// both escrow moves and the FINISHED transition share one transaction, so
// the wager settles exactly once no matter how many callers race here.
func (s *roomService) Settle(ctx context.Context, roomID string) (*models.RoomOutcome, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.lockRoom(ctx, uow, roomID)
	if err != nil {
		return nil, err
	}

	if room.Status != models.RoomStatusPlaying {
		return nil, fmt.Errorf("room %s is %s, not PLAYING: %w", roomID, room.Status, ErrInvalidState)
	}
	if room.GuestID == nil || room.GameStartedAt == nil {
		return nil, fmt.Errorf("room %s has no running game: %w", roomID, ErrInvalidState)
	}

	now := time.Now().UTC()
	elapsed := now.Sub(*room.GameStartedAt)
	if elapsed < s.rules.GameDuration {
		remaining := (s.rules.GameDuration - elapsed).Round(time.Second)
		return nil, fmt.Errorf("game in room %s still has %s left: %w", roomID, remaining, ErrInvalidState)
	}

	guestID := *room.GuestID
	outcome := &models.RoomOutcome{
		Room:        room,
		HostClicks:  room.HostClicks,
		GuestClicks: room.GuestClicks,
		BetAmount:   room.BetAmount,
	}

	switch {
	case room.HostClicks == room.GuestClicks:
		// Draw: both escrows return untouched
		outcome.Draw = true
		ref := roomRef(roomID) + ":draw"
		if err := UnfreezeFunds(ctx, uow, room.HostID, room.BetAmount, ref); err != nil {
			return nil, err
		}
		if err := UnfreezeFunds(ctx, uow, guestID, room.BetAmount, ref); err != nil {
			return nil, err
		}

	default:
		winnerID, loserID := room.HostID, guestID
		if room.GuestClicks > room.HostClicks {
			winnerID, loserID = guestID, room.HostID
		}
		outcome.WinnerID = &winnerID

		// Winner's own stake comes back, then the loser's stake moves over
		ref := roomRef(roomID) + ":win"
		if err := UnfreezeFunds(ctx, uow, winnerID, room.BetAmount, ref); err != nil {
			return nil, err
		}
		if err := TransferFrozen(ctx, uow, loserID, winnerID, room.BetAmount, ref); err != nil {
			return nil, err
		}
	}

	room.Status = models.RoomStatusFinished
	room.WinnerID = outcome.WinnerID
	room.GameEndedAt = &now

	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.RoomSettledEvent{
		RoomID:         room.ID,
		ChannelID:      room.ChannelID,
		WinnerID:       outcome.WinnerID,
		WinnerUsername: s.winnerUsername(room, outcome.WinnerID),
		HostUsername:   room.HostUsername,
		GuestUsername:  derefString(room.GuestUsername),
		HostClicks:     room.HostClicks,
		GuestClicks:    room.GuestClicks,
		BetAmount:      room.BetAmount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return outcome, nil
}

// Expire cancels a timed-out OPEN or FULL room, refunding every escrowed
// stake. PLAYING rooms are never expired; they wait for Settle.
func (s *roomService) Expire(ctx context.Context, roomID string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.lockRoom(ctx, uow, roomID)
	if err != nil {
		return err
	}

	if room.Status != models.RoomStatusOpen && room.Status != models.RoomStatusFull {
		return fmt.Errorf("room %s is %s, not expirable: %w", roomID, room.Status, ErrInvalidState)
	}
	if !room.ExpiredAt(time.Now().UTC()) {
		return fmt.Errorf("room %s has not expired yet: %w", roomID, ErrInvalidState)
	}

	ref := roomRef(roomID) + ":expired"
	if err := UnfreezeFunds(ctx, uow, room.HostID, room.BetAmount, ref); err != nil {
		return err
	}
	if room.GuestID != nil {
		if err := UnfreezeFunds(ctx, uow, *room.GuestID, room.BetAmount, ref); err != nil {
			return err
		}
	}

	room.Status = models.RoomStatusCancelled
	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return err
	}

	uow.EventBus().Publish(events.RoomCancelledEvent{
		RoomID:    room.ID,
		HostID:    room.HostID,
		GuestID:   room.GuestID,
		BetAmount: room.BetAmount,
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Share announces the room's invite in a channel. Only the host may share,
// and only while the room still has an open seat.
func (s *roomService) Share(ctx context.Context, roomID string, userID int64, channelID *int64) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := s.lockRoom(ctx, uow, roomID)
	if err != nil {
		return nil, err
	}

	if room.HostID != userID {
		return nil, fmt.Errorf("only the host may share room %s: %w", roomID, ErrForbidden)
	}
	if room.Status != models.RoomStatusOpen {
		return nil, fmt.Errorf("room %s is %s, not OPEN: %w", roomID, room.Status, ErrInvalidState)
	}

	target := s.rules.DefaultChannelID
	if channelID != nil {
		target = *channelID
	} else if room.ChannelID != nil {
		target = *room.ChannelID
	}
	if target == 0 {
		return nil, fmt.Errorf("no channel to share room %s into: %w", roomID, ErrInvalidArgument)
	}

	room.ChannelID = &target
	if err := uow.RoomRepository().Update(ctx, room); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.RoomSharedEvent{
		RoomID:       room.ID,
		ChannelID:    target,
		HostUsername: room.HostUsername,
		BetAmount:    room.BetAmount,
		InviteToken:  room.InviteToken,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return room, nil
}

// GetRoom retrieves a room snapshot
func (s *roomService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	room, err := uow.RoomRepository().GetByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}

	return room, nil
}

// ListOpenRooms returns joinable rooms, newest first
func (s *roomService) ListOpenRooms(ctx context.Context, limit int) ([]*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.RoomRepository().ListOpen(ctx, limit)
}

// ListUserRooms returns a user's non-terminal rooms
func (s *roomService) ListUserRooms(ctx context.Context, userID int64) ([]*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.RoomRepository().ListActiveByUser(ctx, userID)
}

// ListExpiredRooms returns rooms due for expiry
func (s *roomService) ListExpiredRooms(ctx context.Context) ([]*models.Room, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.RoomRepository().ListExpired(ctx)
}

// lockRoom fetches a room under a row lock, mapping absence to ErrNotFound
func (s *roomService) lockRoom(ctx context.Context, uow UnitOfWork, roomID string) (*models.Room, error) {
	room, err := uow.RoomRepository().GetByIDForUpdate(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s: %w", roomID, ErrNotFound)
	}
	return room, nil
}

func (s *roomService) winnerUsername(room *models.Room, winnerID *int64) *string {
	if winnerID == nil {
		return nil
	}
	if *winnerID == room.HostID {
		name := room.HostUsername
		return &name
	}
	return room.GuestUsername
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"clickduel/events"
	"clickduel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRules = GameRules{
	MinBet:           1,
	MaxBet:           100000,
	StartingBalance:  1000,
	OpenRoomTTL:      5 * time.Minute,
	FullRoomTTL:      2 * time.Minute,
	GameDuration:     30 * time.Second,
	DefaultChannelID: 9000,
}

func createTestRoomService() (RoomService, *MockUnitOfWorkFactory, *MockUnitOfWork, *MockUserRepository, *MockLedgerRepository, *MockRoomRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockUserRepo := new(MockUserRepository)
	mockLedgerRepo := new(MockLedgerRepository)
	mockRoomRepo := new(MockRoomRepository)

	mockUoW.SetRepositories(mockUserRepo, mockLedgerRepo, mockRoomRepo)

	service := NewRoomService(mockFactory, testRules)
	return service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo
}

// recordingPublisher captures events for assertions
type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.published = append(p.published, e)
}

func testRoom(status models.RoomStatus) *models.Room {
	room := &models.Room{
		ID:           "abc123def456",
		InviteToken:  strings.Repeat("a", 32),
		HostID:       111,
		HostUsername: "alice",
		BetAmount:    100,
		Status:       status,
		ExpiresAt:    time.Now().UTC().Add(time.Minute),
		CreatedAt:    time.Now().UTC(),
	}
	if status != models.RoomStatusOpen {
		guestID := int64(222)
		guestName := "bob"
		room.GuestID = &guestID
		room.GuestUsername = &guestName
	}
	return room
}

func TestRoomService_Create_Success(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	host := &models.User{UserID: 111, Username: "alice", Available: 1000}
	mockUserRepo.On("GetByID", ctx, int64(111)).Return(host, nil)
	mockUserRepo.On("TouchProfile", ctx, int64(111), "alice").Return(nil)
	mockUserRepo.On("Freeze", ctx, int64(111), int64(100)).Return(nil)

	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 111 &&
			e.Kind == models.EntryKindFreeze &&
			e.Amount == 100 &&
			strings.HasPrefix(e.Ref, "room:")
	})).Return(nil)

	mockRoomRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return len(r.ID) == 12 &&
			len(r.InviteToken) == 32 &&
			r.HostID == 111 &&
			r.BetAmount == 100 &&
			r.Status == models.RoomStatusOpen
	})).Return(nil)

	room, err := service.Create(ctx, 111, "alice", 100, nil)

	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusOpen, room.Status)
	assert.Len(t, room.ID, 12)
	assert.Len(t, room.InviteToken, 32)
	// The open seat waits at most the configured TTL
	assert.WithinDuration(t, time.Now().UTC().Add(testRules.OpenRoomTTL), room.ExpiresAt, 5*time.Second)

	mockUserRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Create_BetOutOfBounds(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, _, _, _, _ := createTestRoomService()

	_, err := service.Create(ctx, 111, "alice", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = service.Create(ctx, 111, "alice", 100001, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Validation fails before any transaction starts
	mockFactory.AssertNotCalled(t, "Create")
}

func TestRoomService_JoinByID_Success(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	// Guest has no account yet, so joining also creates one
	guest := &models.User{UserID: 222, Username: "bob", Available: 1000}
	mockUserRepo.On("GetByID", ctx, int64(222)).Return(nil, nil)
	mockUserRepo.On("Create", ctx, int64(222), "bob", int64(1000)).Return(guest, nil)
	mockUserRepo.On("Freeze", ctx, int64(222), int64(100)).Return(nil)

	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Kind == models.EntryKindCredit && e.Ref == SignupRef
	})).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 222 && e.Kind == models.EntryKindFreeze && e.Ref == "room:"+room.ID
	})).Return(nil)

	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusFull &&
			r.GuestID != nil && *r.GuestID == 222 &&
			r.GuestUsername != nil && *r.GuestUsername == "bob"
	})).Return(nil)

	joined, err := service.JoinByID(ctx, room.ID, 222, "bob")

	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusFull, joined.Status)
	// Joining restarts the clock with the ready-up window
	assert.WithinDuration(t, time.Now().UTC().Add(testRules.FullRoomTTL), joined.ExpiresAt, 5*time.Second)

	mockUserRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_JoinByToken_NotFound(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockRoomRepo.On("GetByInviteTokenForUpdate", ctx, "deadbeef").Return(nil, nil)

	_, err := service.JoinByToken(ctx, "deadbeef", 222, "bob")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRoomService_Join_RoomNotOpen(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusFull)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.JoinByID(ctx, room.ID, 333, "carol")

	assert.ErrorIs(t, err, ErrInvalidState)
	mockUserRepo.AssertNotCalled(t, "Freeze", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_Join_ExpiredRoom(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusOpen)
	room.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.JoinByID(ctx, room.ID, 222, "bob")

	assert.ErrorIs(t, err, ErrAlreadyExpired)
}

func TestRoomService_Join_OwnRoom(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.JoinByID(ctx, room.ID, room.HostID, "alice")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRoomService_MarkReady_FirstPlayer(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusFull)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.HostReady && !r.GuestReady && r.Status == models.RoomStatusFull
	})).Return(nil)

	updated, err := service.MarkReady(ctx, room.ID, room.HostID)

	require.NoError(t, err)
	assert.True(t, updated.HostReady)
	assert.Equal(t, models.RoomStatusFull, updated.Status)
	assert.Nil(t, updated.GameStartedAt)
}

func TestRoomService_MarkReady_BothStartGame(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	rec := &recordingPublisher{}
	mockUoW.SetEventPublisher(rec)

	room := testRoom(models.RoomStatusFull)
	room.HostReady = true
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusPlaying && r.GameStartedAt != nil
	})).Return(nil)

	updated, err := service.MarkReady(ctx, room.ID, *room.GuestID)

	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusPlaying, updated.Status)
	require.NotNil(t, updated.GameStartedAt)

	require.Len(t, rec.published, 1)
	started, ok := rec.published[0].(events.GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, room.ID, started.RoomID)
}

func TestRoomService_MarkReady_NonParticipant(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusFull)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.MarkReady(ctx, room.ID, 999)

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRoomService_RecordClick_Success(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusPlaying)
	started := time.Now().UTC().Add(-5 * time.Second)
	room.GameStartedAt = &started
	room.HostClicks = 3

	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.HostClicks == 4 && r.GuestClicks == 0
	})).Return(nil)

	updated, err := service.RecordClick(ctx, room.ID, room.HostID)

	require.NoError(t, err)
	assert.Equal(t, 4, updated.HostClicks)
}

func TestRoomService_RecordClick_AfterTimeUp(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusPlaying)
	started := time.Now().UTC().Add(-31 * time.Second)
	room.GameStartedAt = &started

	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.RecordClick(ctx, room.ID, room.HostID)

	assert.ErrorIs(t, err, ErrAlreadyExpired)
	mockRoomRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRoomService_Settle_HostWins(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	rec := &recordingPublisher{}
	mockUoW.SetEventPublisher(rec)

	room := testRoom(models.RoomStatusPlaying)
	started := time.Now().UTC().Add(-35 * time.Second)
	room.GameStartedAt = &started
	room.HostClicks = 15
	room.GuestClicks = 10

	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	winRef := "room:" + room.ID + ":win"
	mockUserRepo.On("Unfreeze", ctx, int64(111), int64(100)).Return(nil)
	mockUserRepo.On("DebitFrozen", ctx, int64(222), int64(100)).Return(nil)
	mockUserRepo.On("CreditAvailable", ctx, int64(111), int64(100)).Return(nil)

	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 111 && e.Kind == models.EntryKindUnfreeze && e.Ref == winRef
	})).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 222 && e.Kind == models.EntryKindDebit && e.Ref == winRef
	})).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.UserID == 111 && e.Kind == models.EntryKindCredit && e.Ref == winRef
	})).Return(nil)

	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusFinished &&
			r.WinnerID != nil && *r.WinnerID == 111 &&
			r.GameEndedAt != nil
	})).Return(nil)

	outcome, err := service.Settle(ctx, room.ID)

	require.NoError(t, err)
	assert.False(t, outcome.Draw)
	require.NotNil(t, outcome.WinnerID)
	assert.Equal(t, int64(111), *outcome.WinnerID)
	assert.Equal(t, 15, outcome.HostClicks)
	assert.Equal(t, 10, outcome.GuestClicks)

	// The settled event carries everything the announcement needs
	var settled *events.RoomSettledEvent
	for _, e := range rec.published {
		if ev, ok := e.(events.RoomSettledEvent); ok {
			settled = &ev
		}
	}
	require.NotNil(t, settled)
	require.NotNil(t, settled.WinnerUsername)
	assert.Equal(t, "alice", *settled.WinnerUsername)

	mockUserRepo.AssertExpectations(t)
	mockLedgerRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Settle_Draw(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusPlaying)
	started := time.Now().UTC().Add(-35 * time.Second)
	room.GameStartedAt = &started
	room.HostClicks = 7
	room.GuestClicks = 7

	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	drawRef := "room:" + room.ID + ":draw"
	mockUserRepo.On("Unfreeze", ctx, int64(111), int64(100)).Return(nil)
	mockUserRepo.On("Unfreeze", ctx, int64(222), int64(100)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Kind == models.EntryKindUnfreeze && e.Ref == drawRef
	})).Return(nil).Twice()

	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusFinished && r.WinnerID == nil
	})).Return(nil)

	outcome, err := service.Settle(ctx, room.ID)

	require.NoError(t, err)
	assert.True(t, outcome.Draw)
	assert.Nil(t, outcome.WinnerID)

	// A draw returns stakes; nothing moves between accounts
	mockUserRepo.AssertNotCalled(t, "DebitFrozen", mock.Anything, mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "CreditAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_Settle_TooEarly(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusPlaying)
	started := time.Now().UTC().Add(-10 * time.Second)
	room.GameStartedAt = &started

	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.Settle(ctx, room.ID)

	assert.ErrorIs(t, err, ErrInvalidState)
	mockUserRepo.AssertNotCalled(t, "Unfreeze", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_Settle_NotPlaying(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusFinished)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.Settle(ctx, room.ID)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRoomService_Expire_FullRoomRefundsBoth(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusFull)
	room.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	expiredRef := "room:" + room.ID + ":expired"
	mockUserRepo.On("Unfreeze", ctx, int64(111), int64(100)).Return(nil)
	mockUserRepo.On("Unfreeze", ctx, int64(222), int64(100)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Kind == models.EntryKindUnfreeze && e.Ref == expiredRef
	})).Return(nil).Twice()

	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusCancelled
	})).Return(nil)

	err := service.Expire(ctx, room.ID)

	require.NoError(t, err)
	mockUserRepo.AssertExpectations(t)
	mockRoomRepo.AssertExpectations(t)
}

func TestRoomService_Expire_OpenRoomRefundsHostOnly(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, mockLedgerRepo, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusOpen)
	room.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	mockUserRepo.On("Unfreeze", ctx, int64(111), int64(100)).Return(nil)
	mockLedgerRepo.On("Record", ctx, mock.Anything).Return(nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.Status == models.RoomStatusCancelled
	})).Return(nil)

	err := service.Expire(ctx, room.ID)

	require.NoError(t, err)
	mockUserRepo.AssertNumberOfCalls(t, "Unfreeze", 1)
}

func TestRoomService_Expire_NotYetDue(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, mockUserRepo, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	err := service.Expire(ctx, room.ID)

	assert.ErrorIs(t, err, ErrInvalidState)
	mockUserRepo.AssertNotCalled(t, "Unfreeze", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoomService_Share_Success(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	rec := &recordingPublisher{}
	mockUoW.SetEventPublisher(rec)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.ChannelID != nil && *r.ChannelID == 4242
	})).Return(nil)

	channelID := int64(4242)
	shared, err := service.Share(ctx, room.ID, room.HostID, &channelID)

	require.NoError(t, err)
	require.NotNil(t, shared.ChannelID)
	assert.Equal(t, int64(4242), *shared.ChannelID)

	require.Len(t, rec.published, 1)
	ev, ok := rec.published[0].(events.RoomSharedEvent)
	require.True(t, ok)
	assert.Equal(t, room.InviteToken, ev.InviteToken)
	assert.Equal(t, int64(4242), ev.ChannelID)
}

func TestRoomService_Share_DefaultChannel(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	setupTransactionMocks(mockFactory, mockUoW, ctx)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)
	mockRoomRepo.On("Update", ctx, mock.MatchedBy(func(r *models.Room) bool {
		return r.ChannelID != nil && *r.ChannelID == testRules.DefaultChannelID
	})).Return(nil)

	shared, err := service.Share(ctx, room.ID, room.HostID, nil)

	require.NoError(t, err)
	assert.Equal(t, testRules.DefaultChannelID, *shared.ChannelID)
}

func TestRoomService_Share_NoChannelConfigured(t *testing.T) {
	ctx := context.Background()
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockRoomRepo := new(MockRoomRepository)
	mockUoW.SetRepositories(new(MockUserRepository), new(MockLedgerRepository), mockRoomRepo)

	rules := testRules
	rules.DefaultChannelID = 0
	service := NewRoomService(mockFactory, rules)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.Share(ctx, room.ID, room.HostID, nil)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	mockRoomRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRoomService_Share_NotHost(t *testing.T) {
	ctx := context.Background()
	service, mockFactory, mockUoW, _, _, mockRoomRepo := createTestRoomService()
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	room := testRoom(models.RoomStatusOpen)
	mockRoomRepo.On("GetByIDForUpdate", ctx, room.ID).Return(room, nil)

	_, err := service.Share(ctx, room.ID, 999, nil)

	assert.ErrorIs(t, err, ErrForbidden)
}

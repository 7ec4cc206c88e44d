package events

import (
	"context"
	"sync"

	"clickduel/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated EventType = "account_created"
	EventTypeBalanceChanged EventType = "balance_changed"
	EventTypeRoomCreated    EventType = "room_created"
	EventTypeRoomJoined     EventType = "room_joined"
	EventTypeRoomShared     EventType = "room_shared"
	EventTypeGameStarted    EventType = "game_started"
	EventTypeRoomSettled    EventType = "room_settled"
	EventTypeRoomCancelled  EventType = "room_cancelled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a new account creation with its starting grant
type AccountCreatedEvent struct {
	UserID          int64
	Username        string
	StartingBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// BalanceChangedEvent represents a journaled balance movement
type BalanceChangedEvent struct {
	UserID int64
	Kind   models.EntryKind
	Amount int64
	Ref    string
}

func (e BalanceChangedEvent) Type() EventType {
	return EventTypeBalanceChanged
}

// RoomCreatedEvent represents a newly opened room
type RoomCreatedEvent struct {
	RoomID    string
	HostID    int64
	BetAmount int64
}

func (e RoomCreatedEvent) Type() EventType {
	return EventTypeRoomCreated
}

// RoomJoinedEvent represents a guest taking the second seat
type RoomJoinedEvent struct {
	RoomID    string
	HostID    int64
	GuestID   int64
	BetAmount int64
}

func (e RoomJoinedEvent) Type() EventType {
	return EventTypeRoomJoined
}

// RoomSharedEvent requests an invite announcement in a channel
type RoomSharedEvent struct {
	RoomID       string
	ChannelID    int64
	HostUsername string
	BetAmount    int64
	InviteToken  string
}

func (e RoomSharedEvent) Type() EventType {
	return EventTypeRoomShared
}

// GameStartedEvent represents both players readying up
type GameStartedEvent struct {
	RoomID  string
	HostID  int64
	GuestID int64
}

func (e GameStartedEvent) Type() EventType {
	return EventTypeGameStarted
}

// RoomSettledEvent represents a finished duel. WinnerUsername is nil on a draw.
type RoomSettledEvent struct {
	RoomID         string
	ChannelID      *int64
	WinnerID       *int64
	WinnerUsername *string
	HostUsername   string
	GuestUsername  string
	HostClicks     int
	GuestClicks    int
	BetAmount      int64
}

func (e RoomSettledEvent) Type() EventType {
	return EventTypeRoomSettled
}

// RoomCancelledEvent represents a room swept to CANCELLED with stakes refunded
type RoomCancelledEvent struct {
	RoomID    string
	HostID    int64
	GuestID   *int64
	BetAmount int64
}

func (e RoomCancelledEvent) Type() EventType {
	return EventTypeRoomCancelled
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// emits them on the real bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful DB commit.
// Emission uses a background context since events outlive the request
// transaction that produced them.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

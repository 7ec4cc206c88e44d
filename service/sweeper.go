package service

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// Sweeper periodically cancels timed-out rooms and refunds their stakes
type Sweeper struct {
	rooms    RoomService
	interval time.Duration
}

// NewSweeper creates a new expiry sweeper
func NewSweeper(rooms RoomService, interval time.Duration) *Sweeper {
	return &Sweeper{
		rooms:    rooms,
		interval: interval,
	}
}

// Start launches the sweep loop and returns a stop function that halts the
// loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Start(ctx context.Context) func() {
	ticker := time.NewTicker(s.interval)
	stopChan := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		log.WithField("interval", s.interval).Info("Room expiry sweeper started")

		// Run once at startup to clear anything that expired while down
		s.sweep(ctx)

		for {
			select {
			case <-ctx.Done():
				log.Info("Room expiry sweeper stopping due to context cancellation")
				return
			case <-stopChan:
				log.Info("Room expiry sweeper stopped")
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()

	return func() {
		ticker.Stop()
		close(stopChan)
		<-done
	}
}

// sweep expires every due room individually. A failure on one room is
// logged and skipped so the rest of the batch still gets refunded.
func (s *Sweeper) sweep(ctx context.Context) {
	rooms, err := s.rooms.ListExpiredRooms(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list expired rooms")
		return
	}
	if len(rooms) == 0 {
		return
	}

	expired := 0
	for _, room := range rooms {
		if err := s.rooms.Expire(ctx, room.ID); err != nil {
			// Another actor may have joined or expired the room between
			// the listing and the lock; that is not a failure.
			if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrNotFound) {
				log.WithField("roomId", room.ID).WithError(err).Debug("Room no longer expirable, skipping")
				continue
			}
			log.WithField("roomId", room.ID).WithError(err).Error("Failed to expire room")
			continue
		}
		expired++
	}

	if expired > 0 {
		log.WithField("count", expired).Info("Expired timed-out rooms")
	}
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"clickduel/config"
	"clickduel/database"
	"clickduel/events"
	"clickduel/httpapi"
	"clickduel/notifier"
	"clickduel/repository"
	"clickduel/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting click duel backend...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	ledgerService := service.NewLedgerService(uowFactory, cfg.StartingBalance)
	roomService := service.NewRoomService(uowFactory, service.GameRules{
		MinBet:           cfg.MinBet,
		MaxBet:           cfg.MaxBet,
		StartingBalance:  cfg.StartingBalance,
		OpenRoomTTL:      cfg.OpenRoomTTL,
		FullRoomTTL:      cfg.FullRoomTTL,
		GameDuration:     cfg.GameDuration,
		DefaultChannelID: cfg.DefaultChannelID,
	})
	log.Println("Services initialized successfully")

	// Initialize Discord notifier if a token is configured
	var discordNotifier *notifier.Notifier
	if cfg.DiscordToken != "" {
		log.Println("Initializing Discord notifier...")
		discordNotifier, err = notifier.New(notifier.Config{
			Token:       cfg.DiscordToken,
			JoinBaseURL: cfg.JoinBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Discord notifier: %w", err)
		}
		discordNotifier.Subscribe(eventBus)
		log.Println("Discord notifier initialized successfully")
	} else {
		log.Println("No Discord token configured, announcements disabled")
	}

	// Start the expiry sweeper
	sweeper := service.NewSweeper(roomService, cfg.SweepInterval)
	stopSweeper := sweeper.Start(ctx)

	// Start the HTTP server
	handler := httpapi.New(roomService, ledgerService, cfg.InternalAPIKey)
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Routes(),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s (%s mode)", cfg.HTTPAddr, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal or server failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		stopSweeper()
		db.Close()
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	// Cleanup resources
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	// The sweeper stop waits for any in-flight sweep to finish
	stopSweeper()

	if discordNotifier != nil {
		if err := discordNotifier.Close(); err != nil {
			log.Printf("Error closing Discord notifier: %v", err)
		}
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

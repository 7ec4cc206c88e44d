package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Config holds all application configuration
type Config struct {
	// HTTP server configuration
	HTTPAddr string

	// Database configuration
	DatabaseURL string

	// Discord configuration
	DiscordToken     string
	DefaultChannelID int64 // channel used for announcements when a room has none

	// Internal API authentication
	InternalAPIKey string

	// Game configuration
	StartingBalance int64
	MinBet          int64
	MaxBet          int64
	OpenRoomTTL     time.Duration // how long an OPEN room waits for an opponent
	FullRoomTTL     time.Duration // how long a FULL room waits for both players to ready up
	GameDuration    time.Duration
	SweepInterval   time.Duration

	// Base URL the join button in invite messages points at
	JoinBaseURL string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		HTTPAddr:    os.Getenv("HTTP_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),

		// Game settings with defaults
		StartingBalance: 1000,
		MinBet:          1,
		MaxBet:          100000,
		OpenRoomTTL:     5 * time.Minute,
		FullRoomTTL:     2 * time.Minute,
		GameDuration:    30 * time.Second,
		SweepInterval:   30 * time.Second,

		JoinBaseURL: os.Getenv("JOIN_BASE_URL"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsed, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsed
		}
	}
	if minBet := os.Getenv("MIN_BET"); minBet != "" {
		if parsed, err := strconv.ParseInt(minBet, 10, 64); err == nil {
			config.MinBet = parsed
		}
	}
	if maxBet := os.Getenv("MAX_BET"); maxBet != "" {
		if parsed, err := strconv.ParseInt(maxBet, 10, 64); err == nil {
			config.MaxBet = parsed
		}
	}
	if channelID := os.Getenv("DEFAULT_CHANNEL_ID"); channelID != "" {
		if parsed, err := strconv.ParseInt(channelID, 10, 64); err == nil {
			config.DefaultChannelID = parsed
		}
	}
	if ttl := os.Getenv("OPEN_ROOM_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.OpenRoomTTL = parsed
		}
	}
	if ttl := os.Getenv("FULL_ROOM_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			config.FullRoomTTL = parsed
		}
	}
	if duration := os.Getenv("GAME_DURATION"); duration != "" {
		if parsed, err := time.ParseDuration(duration); err == nil {
			config.GameDuration = parsed
		}
	}
	if interval := os.Getenv("SWEEP_INTERVAL"); interval != "" {
		if parsed, err := time.ParseDuration(interval); err == nil {
			config.SweepInterval = parsed
		}
	}

	// Set default addresses if not specified
	if config.HTTPAddr == "" {
		config.HTTPAddr = ":8000"
	}
	if config.JoinBaseURL == "" {
		config.JoinBaseURL = "http://127.0.0.1:8000"
	}
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.InternalAPIKey == "" {
			return nil, fmt.Errorf("INTERNAL_API_KEY is required")
		}
	}

	return config, nil
}

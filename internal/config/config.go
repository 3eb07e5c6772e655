// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Registry backends
const (
	RegistryMemory = "memory"
	RegistryRedis  = "redis"
)

// Config is everything the bot reads from the environment
type Config struct {
	// Discord
	DiscordToken      string `env:"DISCORD_TOKEN"`
	ApplicationID     string `env:"APPLICATION_ID"`
	GuildID           string `env:"GUILD_ID"`
	AnnounceChannelID string `env:"ANNOUNCE_CHANNEL_ID"`
	DiscordChatHooks  bool   `env:"DISCORD_CHAT_HOOKS" envDefault:"false"`

	// Redis
	RedisAddr       string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RegistryBackend string `env:"REGISTRY_BACKEND" envDefault:"memory"`

	// GatewayAddr is where the platform bridge listens, empty disables it
	GatewayAddr string `env:"GATEWAY_ADDR" envDefault:":8085"`

	// Engine
	TickInterval        time.Duration `env:"TICK_INTERVAL"         envDefault:"50ms"`
	ZonePassTicks       int           `env:"ZONE_PASS_TICKS"       envDefault:"10"`
	TeamValidationTicks int           `env:"TEAM_VALIDATION_TICKS" envDefault:"60"`
	CelebrationTicks    int           `env:"CELEBRATION_TICKS"     envDefault:"10"`
	MaxTeams            int           `env:"MAX_TEAMS"             envDefault:"16"`
	MaxZoneRadius       int           `env:"MAX_ZONE_RADIUS"       envDefault:"50"`
	VoteSeconds         int           `env:"VOTE_SECONDS"          envDefault:"30"`
	PlacementLimit      int           `env:"PLACEMENT_LIMIT"       envDefault:"4"`

	// Tracing
	OTelEnabled  bool   `env:"OTEL_ENABLED"  envDefault:"false"`
	OTelEndpoint string `env:"OTEL_ENDPOINT" envDefault:"http://localhost:4318"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads an optional .env file and then parses the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		slog.Warn("no .env file found, using the process environment")
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	switch c.RegistryBackend {
	case RegistryMemory, RegistryRedis:
	default:
		return fmt.Errorf("unknown REGISTRY_BACKEND %q", c.RegistryBackend)
	}
	if c.TickInterval <= 0 {
		return errors.New("TICK_INTERVAL must be positive")
	}
	if c.ZonePassTicks < 1 || c.TeamValidationTicks < 1 {
		return errors.New("pass intervals must be at least one tick")
	}
	if c.PlacementLimit < 1 || c.PlacementLimit > 5 {
		return errors.New("PLACEMENT_LIMIT must be between 1 and 5")
	}
	return nil
}

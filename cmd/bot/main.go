package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/eventtools/internal/common/clock"
	"github.com/KirkDiggler/eventtools/internal/common/uuid"
	"github.com/KirkDiggler/eventtools/internal/config"
	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/handlers/discord"
	"github.com/KirkDiggler/eventtools/internal/handlers/gateway"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/repositories/participant"
	"github.com/KirkDiggler/eventtools/internal/repositories/results"
	"github.com/KirkDiggler/eventtools/internal/scheduler"
	"github.com/KirkDiggler/eventtools/internal/services/elimination"
	"github.com/KirkDiggler/eventtools/internal/services/event"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
	"github.com/KirkDiggler/eventtools/internal/services/minigame"
	"github.com/KirkDiggler/eventtools/internal/services/team"
	"github.com/KirkDiggler/eventtools/internal/services/vote"
	"github.com/KirkDiggler/eventtools/internal/services/zone"
	"github.com/KirkDiggler/eventtools/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// hookRelay hands gateway hooks to the event service, which needs the hub
// as its effects sink and so is built after it
type hookRelay struct {
	event.Service
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, &telemetry.Config{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: "eventtools",
	})
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Participant registry, and the result archive when Redis is available
	var (
		registry participant.Repository
		archive  event.ResultArchive
	)
	switch cfg.RegistryBackend {
	case config.RegistryRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()

		registry, err = participant.NewRedis(&participant.Config{RedisClient: redisClient})
		if err != nil {
			log.Fatalf("Failed to create participant registry: %v", err)
		}

		archive, err = results.NewRedis(&results.Config{RedisClient: redisClient})
		if err != nil {
			log.Fatalf("Failed to create result archive: %v", err)
		}
	default:
		registry = participant.NewMemory()
	}

	roller := dice.New(&dice.Config{})
	messages, err := messaging.NewService(&messaging.ServiceConfig{Roller: roller})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	sched := scheduler.New(&scheduler.Config{TickInterval: cfg.TickInterval})
	ticksPerSecond := sched.TicksPer(time.Second)

	// Platform bridge
	hooks := &hookRelay{}
	hub, err := gateway.New(&gateway.Config{
		Registry: registry,
		Hooks:    hooks,
	})
	if err != nil {
		log.Fatalf("Failed to create gateway: %v", err)
	}

	// Discord bot, announcing through its channel alongside the bridge
	bot, err := discord.New(&discord.Config{
		Token:             cfg.DiscordToken,
		ApplicationID:     cfg.ApplicationID,
		GuildID:           cfg.GuildID,
		AnnounceChannelID: cfg.AnnounceChannelID,
		ChatHooks:         cfg.DiscordChatHooks,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	announcer := platform.Fanout{hub}
	channel, err := bot.Announcer()
	if err != nil {
		log.Fatalf("Failed to create Discord announcer: %v", err)
	}
	if channel != nil {
		announcer = append(announcer, channel)
	}

	// Engine
	gate := lifecycle.NewGate()
	tracker := elimination.New()

	teams, err := team.New(&team.Config{
		Gate:         gate,
		Eliminations: tracker,
		Roster:       registry,
		Effects:      hub,
		Roller:       roller,
		MaxTeams:     cfg.MaxTeams,
	})
	if err != nil {
		log.Fatalf("Failed to create team coordinator: %v", err)
	}

	votes, err := vote.New(&vote.Config{
		Announcer:      announcer,
		Roster:         registry,
		Scheduler:      sched,
		Messaging:      messages,
		Seconds:        cfg.VoteSeconds,
		TicksPerSecond: ticksPerSecond,
	})
	if err != nil {
		log.Fatalf("Failed to create vote controller: %v", err)
	}

	minigames, err := minigame.New(&minigame.Config{
		Announcer:      announcer,
		Scheduler:      sched,
		Messaging:      messages,
		Roller:         roller,
		TicksPerSecond: ticksPerSecond,
	})
	if err != nil {
		log.Fatalf("Failed to create minigame controller: %v", err)
	}

	events, err := event.New(&event.Config{
		Gate:             gate,
		Tracker:          tracker,
		Teams:            teams,
		Votes:            votes,
		Minigames:        minigames,
		Roster:           registry,
		Effects:          hub,
		Announcer:        announcer,
		Messaging:        messages,
		Scheduler:        sched,
		Clock:            clock.New(),
		UUIDGenerator:    uuid.New(),
		Results:          archive,
		PlacementLimit:   cfg.PlacementLimit,
		CelebrationTicks: cfg.CelebrationTicks,
	})
	if err != nil {
		log.Fatalf("Failed to create event service: %v", err)
	}
	hooks.Service = events

	zones, err := zone.New(&zone.Config{
		Gate:         gate,
		Eliminations: tracker,
		Roster:       registry,
		Effects:      hub,
		Eliminator:   events,
		MaxRadius:    cfg.MaxZoneRadius,
	})
	if err != nil {
		log.Fatalf("Failed to create zone engine: %v", err)
	}

	sched.Every("zones", cfg.ZonePassTicks, zones.Evaluate)
	sched.Every("teams", cfg.TeamValidationTicks, teams.Validate)

	bot.AddCommand(discord.NewEventCommand(events, registry, cfg.PlacementLimit))
	bot.AddCommand(discord.NewTeamCommand(teams, events))
	bot.AddCommand(discord.NewZoneCommand(zones, registry))
	bot.AddCommand(discord.NewActivityCommand(votes, minigames))
	bot.SetChatHook(events)

	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sched.Run(gctx)
	})

	if cfg.GatewayAddr != "" {
		server := &http.Server{
			Addr:              cfg.GatewayAddr,
			Handler:           hub,
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			slog.Info("gateway listening", "addr", cfg.GatewayAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("stopped with error", "error", err)
	}

	// Wind down the engine before the outputs go away
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	events.Shutdown(shutdownCtx)
	zones.Shutdown(shutdownCtx)

	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Error flushing traces: %v", err)
	}

	log.Println("Bot has been shut down")
}

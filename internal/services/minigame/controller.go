// Package minigame runs the number-guess race and the countdown activity.
package minigame

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/scheduler"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
)

// DefaultTicksPerSecond matches the default scheduler tick
const DefaultTicksPerSecond = 20

// Config holds the dependencies of the controller
type Config struct {
	Announcer platform.Announcer
	Scheduler scheduler.TaskScheduler
	Messaging messaging.Service

	// Roller draws the secret number
	Roller dice.Roller

	// TicksPerSecond is the scheduler ticks in one second
	TicksPerSecond int
}

// Controller owns the guess round and the countdown
type Controller struct {
	announcer      platform.Announcer
	scheduler      scheduler.TaskScheduler
	messaging      messaging.Service
	roller         dice.Roller
	ticksPerSecond int

	guessActive atomic.Bool
	guessMu     sync.Mutex
	target      int
	winner      models.ParticipantID

	countdownActive atomic.Bool
	countdownMu     sync.Mutex
	countdownEpoch  uint64
	remaining       int
	stopCountdown   func()
}

// New creates a minigame controller
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Announcer == nil {
		return nil, ErrNilAnnouncer
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	ticks := cfg.TicksPerSecond
	if ticks <= 0 {
		ticks = DefaultTicksPerSecond
	}

	return &Controller{
		announcer:      cfg.Announcer,
		scheduler:      cfg.Scheduler,
		messaging:      cfg.Messaging,
		roller:         cfg.Roller,
		ticksPerSecond: ticks,
	}, nil
}

// StartGuess draws a number in [1, max] and opens a round
func (c *Controller) StartGuess(ctx context.Context, max int) error {
	if max < 1 {
		return ErrInvalidMax
	}

	c.guessMu.Lock()
	if c.guessActive.Load() {
		c.guessMu.Unlock()
		return ErrGuessActive
	}
	c.target = c.roller.Roll(max)
	c.winner = ""
	c.guessActive.Store(true)
	c.guessMu.Unlock()

	slog.InfoContext(ctx, "guess round started", "max", max)
	c.broadcast(ctx, c.messaging.GetGuessStartedMessage(max))
	return nil
}

// SubmitGuess compares a guess to the secret number. The first exact match
// wins and closes the round.
func (c *Controller) SubmitGuess(ctx context.Context, p *models.Participant, guess int) (bool, error) {
	c.guessMu.Lock()
	if !c.guessActive.Load() {
		c.guessMu.Unlock()
		return false, ErrNoGuessActive
	}
	if guess != c.target {
		c.guessMu.Unlock()
		return false, nil
	}
	c.winner = p.ID
	c.guessActive.Store(false)
	c.guessMu.Unlock()

	slog.InfoContext(ctx, "guess round won", "participant", p.ID, "number", guess)
	c.broadcast(ctx, c.messaging.GetGuessWinnerMessage(p.Name, guess))
	return true, nil
}

// InterpretChat treats integer messages as guesses while a round is open. Only
// the winning guess is consumed.
func (c *Controller) InterpretChat(ctx context.Context, p *models.Participant, message string) bool {
	if !c.guessActive.Load() {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSpace(message))
	if err != nil {
		return false
	}
	won, err := c.SubmitGuess(ctx, p, n)
	return err == nil && won
}

// GuessActive reports whether a round is open
func (c *Controller) GuessActive() bool {
	return c.guessActive.Load()
}

// Winner returns the winner of the last round
func (c *Controller) Winner() (models.ParticipantID, bool) {
	c.guessMu.Lock()
	defer c.guessMu.Unlock()
	return c.winner, c.winner != ""
}

// StartCountdown shows each remaining second as a title and "GO!" at zero
func (c *Controller) StartCountdown(ctx context.Context, seconds int) error {
	if seconds < 1 {
		return ErrInvalidSeconds
	}

	c.countdownMu.Lock()
	if c.countdownActive.Load() {
		c.countdownMu.Unlock()
		return ErrCountdownActive
	}
	c.countdownEpoch++
	epoch := c.countdownEpoch
	c.remaining = seconds
	c.countdownActive.Store(true)
	c.stopCountdown = c.scheduler.Repeat(c.ticksPerSecond, func(ctx context.Context) bool {
		return c.countdownStep(ctx, epoch)
	})
	c.countdownMu.Unlock()

	c.title(ctx, c.messaging.GetCountdownMessage(seconds))
	return nil
}

func (c *Controller) countdownStep(ctx context.Context, epoch uint64) bool {
	c.countdownMu.Lock()
	if !c.countdownActive.Load() || c.countdownEpoch != epoch {
		c.countdownMu.Unlock()
		return false
	}
	c.remaining--
	remaining := c.remaining
	if remaining <= 0 {
		c.countdownActive.Store(false)
		c.stopCountdown = nil
	}
	c.countdownMu.Unlock()

	c.title(ctx, c.messaging.GetCountdownMessage(remaining))
	return remaining > 0
}

// CountdownActive reports whether a countdown is running
func (c *Controller) CountdownActive() bool {
	return c.countdownActive.Load()
}

// Reset closes the guess round and cancels the countdown
func (c *Controller) Reset(ctx context.Context) {
	c.guessMu.Lock()
	c.guessActive.Store(false)
	c.target = 0
	c.winner = ""
	c.guessMu.Unlock()

	c.countdownMu.Lock()
	c.countdownEpoch++
	c.countdownActive.Store(false)
	stop := c.stopCountdown
	c.stopCountdown = nil
	c.countdownMu.Unlock()

	if stop != nil {
		stop()
	}
}

func (c *Controller) broadcast(ctx context.Context, message string) {
	if err := c.announcer.Broadcast(ctx, message); err != nil {
		slog.WarnContext(ctx, "failed to broadcast minigame message", "error", err)
	}
}

func (c *Controller) title(ctx context.Context, t *messaging.TitleOutput) {
	if err := c.announcer.Title(ctx, t.Title, t.Subtitle); err != nil {
		slog.WarnContext(ctx, "failed to show countdown title", "error", err)
	}
}

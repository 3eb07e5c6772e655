// Package vote runs a single timed yes/no vote at a time.
package vote

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/scheduler"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
)

const (
	// DefaultSeconds is the length of a vote
	DefaultSeconds = 30

	// DefaultTicksPerSecond matches the default scheduler tick
	DefaultTicksPerSecond = 20
)

// DefaultReminders are the seconds-remaining marks that trigger a reminder
var DefaultReminders = []int{15, 5}

// Config holds the dependencies of the controller
type Config struct {
	Announcer platform.Announcer
	Roster    platform.Roster
	Scheduler scheduler.TaskScheduler
	Messaging messaging.Service

	// Seconds is the vote length, DefaultSeconds when zero
	Seconds int

	// Reminders override DefaultReminders when set
	Reminders []int

	// TicksPerSecond is the scheduler ticks in one second
	TicksPerSecond int
}

// Controller owns the vote question, ballots and countdown. Every countdown
// step carries the epoch of the vote it was started for and exits once that
// vote is over.
type Controller struct {
	announcer      platform.Announcer
	roster         platform.Roster
	scheduler      scheduler.TaskScheduler
	messaging      messaging.Service
	seconds        int
	reminders      []int
	ticksPerSecond int

	inProgress atomic.Bool

	mu        sync.Mutex
	epoch     uint64
	question  string
	ballots   map[models.ParticipantID]bool
	remaining int
	stop      func()
}

// New creates a vote controller
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Announcer == nil {
		return nil, ErrNilAnnouncer
	}
	if cfg.Roster == nil {
		return nil, ErrNilRoster
	}
	if cfg.Scheduler == nil {
		return nil, ErrNilScheduler
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	c := &Controller{
		announcer:      cfg.Announcer,
		roster:         cfg.Roster,
		scheduler:      cfg.Scheduler,
		messaging:      cfg.Messaging,
		seconds:        cfg.Seconds,
		reminders:      cfg.Reminders,
		ticksPerSecond: cfg.TicksPerSecond,
		ballots:        make(map[models.ParticipantID]bool),
	}
	if c.seconds <= 0 {
		c.seconds = DefaultSeconds
	}
	if c.reminders == nil {
		c.reminders = DefaultReminders
	}
	if c.ticksPerSecond <= 0 {
		c.ticksPerSecond = DefaultTicksPerSecond
	}
	return c, nil
}

// Start opens a vote on question and starts its countdown
func (c *Controller) Start(ctx context.Context, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyQuestion
	}

	c.mu.Lock()
	if c.inProgress.Load() {
		c.mu.Unlock()
		return ErrVoteInProgress
	}

	c.epoch++
	epoch := c.epoch
	c.question = question
	clear(c.ballots)
	c.remaining = c.seconds
	c.inProgress.Store(true)
	c.stop = c.scheduler.Repeat(c.ticksPerSecond, func(ctx context.Context) bool {
		return c.countdownStep(ctx, epoch)
	})
	c.mu.Unlock()

	slog.InfoContext(ctx, "vote started", "question", question, "seconds", c.seconds)
	c.broadcast(ctx, c.messaging.GetVoteStartedMessage(question, c.seconds))
	return nil
}

// countdownStep advances the countdown by one second. It returns false once
// the vote it belongs to is over.
func (c *Controller) countdownStep(ctx context.Context, epoch uint64) bool {
	c.mu.Lock()
	if !c.inProgress.Load() || c.epoch != epoch {
		c.mu.Unlock()
		return false
	}
	c.remaining--
	remaining := c.remaining
	question := c.question
	c.mu.Unlock()

	if remaining <= 0 {
		if _, err := c.end(ctx, epoch); err != nil {
			slog.DebugContext(ctx, "vote already ended", "epoch", epoch)
		}
		return false
	}

	if slices.Contains(c.reminders, remaining) {
		c.broadcast(ctx, c.messaging.GetVoteReminderMessage(question, remaining))
	}
	return true
}

// End closes the running vote and announces the tally
func (c *Controller) End(ctx context.Context) (*models.VoteResult, error) {
	return c.end(ctx, 0)
}

// end closes the vote of the given epoch, any vote when epoch is zero
func (c *Controller) end(ctx context.Context, epoch uint64) (*models.VoteResult, error) {
	c.mu.Lock()
	if !c.inProgress.Load() || (epoch != 0 && epoch != c.epoch) {
		c.mu.Unlock()
		return nil, ErrNoVoteInProgress
	}

	c.inProgress.Store(false)
	question := c.question
	ballots := make(map[models.ParticipantID]bool, len(c.ballots))
	for id, yes := range c.ballots {
		ballots[id] = yes
	}
	c.question = ""
	clear(c.ballots)
	c.remaining = 0
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}

	connected := 0
	if online, err := c.roster.Online(ctx); err != nil {
		slog.WarnContext(ctx, "failed to count connected participants", "error", err)
	} else {
		connected = len(online)
	}

	result := models.NewVoteResult(question, ballots, connected)
	slog.InfoContext(ctx, "vote ended",
		"question", question, "yes", result.Yes, "no", result.No, "connected", connected)
	c.broadcast(ctx, c.messaging.GetVoteResultMessage(result))
	return result, nil
}

// Cast records a ballot; the last ballot of a participant wins
func (c *Controller) Cast(ctx context.Context, id models.ParticipantID, yes bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.inProgress.Load() {
		return ErrNoVoteInProgress
	}
	c.ballots[id] = yes
	return nil
}

// Status returns the current vote state
func (c *Controller) Status() models.VoteStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := models.VoteStatus{
		Question:         c.question,
		InProgress:       c.inProgress.Load(),
		SecondsRemaining: c.remaining,
	}
	for _, yes := range c.ballots {
		if yes {
			status.Yes++
		} else {
			status.No++
		}
	}
	return status
}

// InterpretChat treats yes/y/agree and no/n/disagree as ballots while a vote
// runs. It reports whether the message was consumed.
func (c *Controller) InterpretChat(ctx context.Context, id models.ParticipantID, message string) bool {
	if !c.inProgress.Load() {
		return false
	}

	var yes bool
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "yes", "y", "agree":
		yes = true
	case "no", "n", "disagree":
		yes = false
	default:
		return false
	}

	if err := c.Cast(ctx, id, yes); err != nil {
		return false
	}

	if err := c.announcer.Tell(ctx, id, c.messaging.GetBallotRecordedMessage(yes)); err != nil {
		slog.WarnContext(ctx, "failed to confirm ballot", "participant", id, "error", err)
	}
	return true
}

// Reset cancels any running vote without announcing a result
func (c *Controller) Reset(ctx context.Context) {
	c.mu.Lock()
	c.epoch++
	c.inProgress.Store(false)
	c.question = ""
	clear(c.ballots)
	c.remaining = 0
	stop := c.stop
	c.stop = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
}

func (c *Controller) broadcast(ctx context.Context, message string) {
	if err := c.announcer.Broadcast(ctx, message); err != nil {
		slog.WarnContext(ctx, "failed to broadcast vote message", "error", err)
	}
}

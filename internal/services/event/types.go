package event

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/common/clock"
	"github.com/KirkDiggler/eventtools/internal/common/uuid"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/scheduler"
	"github.com/KirkDiggler/eventtools/internal/services/elimination"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
	"github.com/KirkDiggler/eventtools/internal/services/minigame"
	"github.com/KirkDiggler/eventtools/internal/services/team"
	"github.com/KirkDiggler/eventtools/internal/services/vote"
)

const (
	// DefaultPlacementLimit is how many finishers are announced
	DefaultPlacementLimit = 4

	// DefaultCelebrationTicks is the spacing between firework bursts
	DefaultCelebrationTicks = 10

	// MaxFireworks caps the bursts of one celebration
	MaxFireworks = 15

	// FireworksPerTeamMember is the bursts each winning team member earns
	FireworksPerTeamMember = 5

	// DefaultTitle is used when an event is started without a title
	DefaultTitle = "Event"

	// ClearChatLines is how many blank lines push old chat off screen
	ClearChatLines = 100
)

// Target selects the participants of a group action: one participant by ID,
// or every connected, non-exempt participant matching Filter
type Target struct {
	ID     models.ParticipantID
	Filter models.ParticipantFilter
}

// FreezeOutput counts the participants a freeze toggle moved each way
type FreezeOutput struct {
	Frozen   int
	Unfrozen int
}

// ResultArchive stores finished events
type ResultArchive interface {
	SaveResult(ctx context.Context, result *models.EventResult) error
	GetRecent(ctx context.Context, limit int) ([]*models.EventResult, error)
}

// Config holds the dependencies of the event service
type Config struct {
	Gate      *lifecycle.Gate
	Tracker   *elimination.Tracker
	Teams     *team.Coordinator
	Votes     *vote.Controller
	Minigames *minigame.Controller

	Roster    platform.Roster
	Effects   platform.Effects
	Announcer platform.Announcer
	Messaging messaging.Service
	Scheduler scheduler.TaskScheduler

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Results archives finished events, optional
	Results ResultArchive

	// PlacementLimit is how many finishers are announced
	PlacementLimit int

	// CelebrationTicks is the spacing between firework bursts
	CelebrationTicks int
}

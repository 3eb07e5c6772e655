package team

import (
	"context"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/platform/mocks"
	"github.com/KirkDiggler/eventtools/internal/services/elimination"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CoordinatorTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockRoster  *mocks.MockRoster
	mockEffects *mocks.MockEffects
	gate        *lifecycle.Gate
	tracker     *elimination.Tracker
	coordinator *Coordinator
	ctx         context.Context

	online   []*models.Participant
	displays map[models.ParticipantID]*models.TeamDisplay
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockRoster = mocks.NewMockRoster(s.mockCtrl)
	s.mockEffects = mocks.NewMockEffects(s.mockCtrl)
	s.gate = lifecycle.NewGate()
	s.tracker = elimination.New()
	s.ctx = context.Background()

	s.online = nil
	for i := 0; i < 7; i++ {
		s.online = append(s.online, &models.Participant{
			ID:   models.ParticipantID(fmt.Sprintf("p%d", i)),
			Name: fmt.Sprintf("Player%d", i),
		})
	}
	s.online = append(s.online, &models.Participant{ID: "admin", Name: "Admin", Exempt: true})

	s.mockRoster.EXPECT().Online(gomock.Any()).DoAndReturn(func(context.Context) ([]*models.Participant, error) {
		return s.online, nil
	}).AnyTimes()
	s.mockRoster.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id models.ParticipantID) (*models.Participant, error) {
		for _, p := range s.online {
			if p.ID == id {
				return p, nil
			}
		}
		return nil, platform.ErrParticipantNotFound
	}).AnyTimes()
	s.displays = make(map[models.ParticipantID]*models.TeamDisplay)
	s.mockEffects.EXPECT().SetTeamDisplay(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id models.ParticipantID, display *models.TeamDisplay) error {
			s.displays[id] = display
			return nil
		}).AnyTimes()

	coordinator, err := New(&Config{
		Gate:         s.gate,
		Eliminations: s.tracker,
		Roster:       s.mockRoster,
		Effects:      s.mockEffects,
		Roller:       dice.New(&dice.Config{Seed: 99}),
		MaxTeams:     3,
	})
	s.Require().NoError(err)
	s.coordinator = coordinator
}

func (s *CoordinatorTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CoordinatorTestSuite) createTeams(teamNames ...string) {
	for _, name := range teamNames {
		_, err := s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: name, Color: models.TeamColorRed})
		s.Require().NoError(err)
	}
}

func (s *CoordinatorTestSuite) connect(id models.ParticipantID) {
	s.online = append(s.online, &models.Participant{ID: id, Name: string(id)})
}

func (s *CoordinatorTestSuite) disconnect(id models.ParticipantID) {
	s.online = slices.DeleteFunc(s.online, func(p *models.Participant) bool { return p.ID == id })
}

func (s *CoordinatorTestSuite) openEvent() {
	s.Require().True(s.gate.Open("test", time.Now(), "run"))
}

func (s *CoordinatorTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{Gate: s.gate})
	s.ErrorIs(err, ErrNilEliminations)
}

func (s *CoordinatorTestSuite) TestCreateTeamLimitsAndNames() {
	s.createTeams("Red", "Blue")

	_, err := s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: "rED"})
	s.ErrorIs(err, ErrTeamExists)

	_, err = s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: "two words"})
	s.ErrorIs(err, ErrInvalidTeamName)

	_, err = s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: "Gold", Color: "pink"})
	s.ErrorIs(err, ErrInvalidColor)

	green, err := s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: "Green"})
	s.Require().NoError(err)
	s.Equal(models.TeamColorWhite, green.Color)

	_, err = s.coordinator.CreateTeam(s.ctx, &CreateTeamInput{Name: "Yellow"})
	s.ErrorIs(err, ErrTeamLimit)
}

func (s *CoordinatorTestSuite) TestAssignMovesBetweenTeams() {
	s.createTeams("Red", "Blue")

	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "red"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "BLUE"))

	red, _ := s.coordinator.Team("Red")
	blue, _ := s.coordinator.Team("Blue")
	s.Empty(red.Members)
	s.Equal([]models.ParticipantID{"p1"}, blue.Members)

	t, ok := s.coordinator.TeamOf("p1")
	s.True(ok)
	s.Equal("Blue", t.Name)

	s.ErrorIs(s.coordinator.Assign(s.ctx, "p1", "Purple"), ErrTeamNotFound)
	s.ErrorIs(s.coordinator.Assign(s.ctx, "admin", "Red"), ErrParticipantExempt)
}

func (s *CoordinatorTestSuite) TestAssignRejectsUnknownParticipant() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p0", "Red"))

	s.ErrorIs(s.coordinator.Assign(s.ctx, "ghost", "Blue"), ErrParticipantNotFound)

	blue, _ := s.coordinator.Team("Blue")
	s.Empty(blue.Members)
	_, ok := s.coordinator.TeamOf("ghost")
	s.False(ok)
	s.Len(s.coordinator.ActiveTeams(), 1)
}

func (s *CoordinatorTestSuite) TestBalanceSpreadsEvenly() {
	s.createTeams("Red", "Blue", "Green")

	// an offline member must survive the rebalance
	s.connect("offline")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "offline", "Red"))
	s.disconnect("offline")

	s.Require().NoError(s.coordinator.Balance(s.ctx))

	teams := s.coordinator.Teams()
	s.Len(teams, 3)

	seen := make(map[models.ParticipantID]int)
	minSize, maxSize := 100, 0
	for _, t := range teams {
		minSize = min(minSize, t.Size())
		maxSize = max(maxSize, t.Size())
		for _, id := range t.Members {
			seen[id]++
		}
	}
	s.LessOrEqual(maxSize-minSize, 1)
	s.Len(seen, 8)
	for id, n := range seen {
		s.Equal(1, n, "participant %s on %d teams", id, n)
	}
	s.NotContains(seen, models.ParticipantID("admin"))
}

func (s *CoordinatorTestSuite) TestBalanceWithoutTeams() {
	s.ErrorIs(s.coordinator.Balance(s.ctx), ErrNoTeams)
}

func (s *CoordinatorTestSuite) TestDeleteDownToOneTeamDuringEvent() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Red"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p2", "Blue"))
	s.openEvent()

	output, err := s.coordinator.DeleteTeam(s.ctx, "red")
	s.Require().NoError(err)
	s.Equal([]string{"Red", "Blue"}, output.Deleted)
	s.False(s.coordinator.HasTeams())

	_, ok := s.coordinator.TeamOf("p2")
	s.False(ok)
}

func (s *CoordinatorTestSuite) TestDeleteRedistributesOrphansDuringEvent() {
	s.createTeams("Red", "Blue", "Green")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Red"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p2", "Blue"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p3", "Blue"))
	s.openEvent()

	output, err := s.coordinator.DeleteTeam(s.ctx, "Blue")
	s.Require().NoError(err)
	s.Equal([]string{"Blue"}, output.Deleted)
	s.Len(output.Reassigned, 2)

	red, _ := s.coordinator.Team("Red")
	green, _ := s.coordinator.Team("Green")
	s.Equal(3, red.Size()+green.Size())
	s.Equal("Green", output.Reassigned["p2"])
}

func (s *CoordinatorTestSuite) TestDeleteOutsideEvent() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Red"))

	output, err := s.coordinator.DeleteTeam(s.ctx, "Red")
	s.Require().NoError(err)
	s.Equal([]string{"Red"}, output.Deleted)
	s.True(s.coordinator.HasTeams())

	_, err = s.coordinator.DeleteTeam(s.ctx, "Red")
	s.ErrorIs(err, ErrTeamNotFound)
}

func (s *CoordinatorTestSuite) TestAutoAssignPicksSmallest() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Red"))

	// not during an event
	s.False(s.coordinator.AutoAssign(s.ctx, s.online[2]))

	s.openEvent()
	s.True(s.coordinator.AutoAssign(s.ctx, s.online[2]))
	t, _ := s.coordinator.TeamOf(s.online[2].ID)
	s.Equal("Blue", t.Name)

	// already assigned
	s.False(s.coordinator.AutoAssign(s.ctx, s.online[2]))

	s.tracker.Eliminate(s.online[3])
	s.False(s.coordinator.AutoAssign(s.ctx, s.online[3]))
	s.False(s.coordinator.AutoAssign(s.ctx, s.online[7]))
}

func (s *CoordinatorTestSuite) TestValidatePrunesAndFills() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p0", "Red"))
	s.connect("gone")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "gone", "Red"))
	s.disconnect("gone")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Blue"))
	s.openEvent()
	s.tracker.Eliminate(s.online[1])

	s.coordinator.Validate(s.ctx)

	_, ok := s.coordinator.TeamOf("gone")
	s.False(ok)
	_, ok = s.coordinator.TeamOf("p1")
	s.False(ok)
	_, ok = s.coordinator.TeamOf("admin")
	s.False(ok)

	total := 0
	for _, t := range s.coordinator.Teams() {
		total += t.Size()
	}
	// p0 plus p2..p6
	s.Equal(6, total)
}

func (s *CoordinatorTestSuite) TestValidateIdleIsNoop() {
	s.createTeams("Red")
	s.coordinator.Validate(s.ctx)
	t, _ := s.coordinator.Team("Red")
	s.Empty(t.Members)
}

func (s *CoordinatorTestSuite) TestStandingTeams() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p0", "Red"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p1", "Blue"))
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p2", "Blue"))

	standing, err := s.coordinator.StandingTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(standing, 2)

	s.tracker.Eliminate(s.online[0])
	s.tracker.Eliminate(s.online[1])

	standing, err = s.coordinator.StandingTeams(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standing, 1)
	s.Equal("Blue", standing[0].Name)
	s.Equal([]models.ParticipantID{"p2"}, standing[0].Members)
}

func (s *CoordinatorTestSuite) TestSetColorRefreshesDisplay() {
	s.createTeams("Red")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p0", "Red"))

	s.Require().NoError(s.coordinator.SetColor(s.ctx, "red", models.TeamColorGold))
	s.Equal(&models.TeamDisplay{TeamName: "Red", Color: models.TeamColorGold}, s.displays["p0"])
	s.ErrorIs(s.coordinator.SetColor(s.ctx, "red", "pink"), ErrInvalidColor)
	s.ErrorIs(s.coordinator.SetColor(s.ctx, "nope", models.TeamColorGold), ErrTeamNotFound)
}

func (s *CoordinatorTestSuite) TestTearDown() {
	s.createTeams("Red", "Blue")
	s.Require().NoError(s.coordinator.Assign(s.ctx, "p0", "Red"))

	s.coordinator.TearDown(s.ctx)

	s.Nil(s.displays["p0"])
	s.False(s.coordinator.HasTeams())
	s.Empty(s.coordinator.Teams())
	_, ok := s.coordinator.TeamOf("p0")
	s.False(ok)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

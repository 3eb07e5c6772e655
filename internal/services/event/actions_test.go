package event

import (
	"context"
	"errors"

	"github.com/KirkDiggler/eventtools/internal/models"
	"go.uber.org/mock/gomock"
)

type frozenCall struct {
	id     models.ParticipantID
	frozen bool
}

func (s *EventServiceTestSuite) TestHealTargetsGroup() {
	var healed []models.ParticipantID
	s.mockEffects.EXPECT().Heal(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id models.ParticipantID) error {
		if id == "d" {
			return errors.New("bridge gone")
		}
		healed = append(healed, id)
		return nil
	}).AnyTimes()

	s.Require().NoError(s.service.Start(s.ctx, "Spleef"))
	s.Require().NoError(s.service.Eliminate(s.ctx, "a"))

	n, err := s.service.Heal(s.ctx, Target{Filter: models.ParticipantFilterAlive})
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Equal([]models.ParticipantID{"b", "c"}, healed)
	s.Contains(s.tells["b"], "You have been healed!")
	s.Empty(s.tells["d"])

	healed = nil
	n, err = s.service.Heal(s.ctx, Target{Filter: models.ParticipantFilterEliminated})
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal([]models.ParticipantID{"a"}, healed)
}

func (s *EventServiceTestSuite) TestGroupActionTargets() {
	s.mockEffects.EXPECT().Heal(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := s.service.Heal(s.ctx, Target{})
	s.ErrorIs(err, ErrInvalidTarget)

	_, err = s.service.Heal(s.ctx, Target{Filter: "spectators"})
	s.ErrorIs(err, ErrInvalidTarget)

	_, err = s.service.Heal(s.ctx, Target{ID: "ghost"})
	s.ErrorIs(err, ErrParticipantNotFound)

	// groups skip exempt participants, a named one is still reachable
	n, err := s.service.Heal(s.ctx, Target{Filter: models.ParticipantFilterAll})
	s.Require().NoError(err)
	s.Equal(4, n)
	s.Empty(s.tells["x"])

	n, err = s.service.Heal(s.ctx, Target{ID: "x"})
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Contains(s.tells["x"], "You have been healed!")
}

func (s *EventServiceTestSuite) TestFreezeTogglesEachParticipant() {
	var calls []frozenCall
	s.mockEffects.EXPECT().SetFrozen(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id models.ParticipantID, frozen bool) error {
		calls = append(calls, frozenCall{id: id, frozen: frozen})
		return nil
	}).AnyTimes()

	output, err := s.service.Freeze(s.ctx, Target{Filter: models.ParticipantFilterAll})
	s.Require().NoError(err)
	s.Equal(&FreezeOutput{Frozen: 4}, output)
	s.Contains(s.tells["a"], "You have been frozen!")

	output, err = s.service.Freeze(s.ctx, Target{ID: "a"})
	s.Require().NoError(err)
	s.Equal(&FreezeOutput{Unfrozen: 1}, output)
	s.Equal(frozenCall{id: "a", frozen: false}, calls[len(calls)-1])

	// a mixed group is inverted
	output, err = s.service.Freeze(s.ctx, Target{Filter: models.ParticipantFilterAll})
	s.Require().NoError(err)
	s.Equal(&FreezeOutput{Frozen: 1, Unfrozen: 3}, output)
}

func (s *EventServiceTestSuite) TestTeardownForgetsFrozen() {
	s.mockEffects.EXPECT().SetFrozen(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	_, err := s.service.Freeze(s.ctx, Target{ID: "b"})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Start(s.ctx, "Spleef"))
	s.Require().NoError(s.service.Stop(s.ctx))
	s.Contains(s.restores, models.ParticipantID("b"))

	output, err := s.service.Freeze(s.ctx, Target{ID: "b"})
	s.Require().NoError(err)
	s.Equal(1, output.Frozen)
}

func (s *EventServiceTestSuite) TestBringTeleports() {
	destinations := make(map[models.ParticipantID]models.Location)
	s.mockEffects.EXPECT().Teleport(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, id models.ParticipantID, loc *models.Location) error {
		destinations[id] = *loc
		return nil
	}).AnyTimes()

	_, err := s.service.Bring(s.ctx, Target{Filter: models.ParticipantFilterAll}, nil)
	s.ErrorIs(err, ErrNoDestination)
	s.Empty(destinations)

	arena := &models.Location{World: "arena", X: 10, Y: 64}
	n, err := s.service.Bring(s.ctx, Target{ID: "c"}, arena)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal(*arena, destinations["c"])
	s.Contains(s.tells["c"], "You were brought to arena.")

	lobby := &models.Location{World: "lobby"}
	s.service.SetSpawn(lobby)
	n, err = s.service.Bring(s.ctx, Target{Filter: models.ParticipantFilterAll}, nil)
	s.Require().NoError(err)
	s.Equal(4, n)
	s.Equal(*lobby, destinations["a"])
	s.Equal(*lobby, destinations["c"])
	s.Contains(s.tells["a"], "You were brought to spawn.")
}

func (s *EventServiceTestSuite) TestTimedEffect() {
	var applied []models.Effect
	s.mockEffects.EXPECT().ApplyEffect(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ models.ParticipantID, effect models.Effect) error {
		applied = append(applied, effect)
		return nil
	}).AnyTimes()

	_, err := s.service.TimedEffect(s.ctx, Target{Filter: models.ParticipantFilterAll}, models.Effect{Type: "speed"})
	s.ErrorIs(err, ErrInvalidEffect)
	_, err = s.service.TimedEffect(s.ctx, Target{Filter: models.ParticipantFilterAll}, models.Effect{Seconds: 5})
	s.ErrorIs(err, ErrInvalidEffect)
	_, err = s.service.TimedEffect(s.ctx, Target{Filter: models.ParticipantFilterAll}, models.Effect{Type: "speed", Amplifier: -1, Seconds: 5})
	s.ErrorIs(err, ErrInvalidEffect)
	s.Empty(applied)

	s.Require().NoError(s.service.Start(s.ctx, "Spleef"))
	s.Require().NoError(s.service.Eliminate(s.ctx, "a"))

	speed := models.Effect{Type: "speed", Amplifier: 1, Seconds: 30}
	n, err := s.service.TimedEffect(s.ctx, Target{Filter: models.ParticipantFilterEliminated}, speed)
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal([]models.Effect{speed}, applied)
	s.Contains(s.tells["a"], "You received level 2 speed for 30 seconds!")
}

func (s *EventServiceTestSuite) TestClearChat() {
	s.service.ClearChat(s.ctx)

	s.Len(s.broadcasts, ClearChatLines+1)
	s.Empty(s.broadcasts[0])
	s.Equal("Chat has been cleared.", s.lastBroadcast())
}

package participant

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidatesConfig() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestUpsertAndGet() {
	err := s.repo.Upsert(s.ctx, &UpsertInput{
		Participant: &models.Participant{
			ID:       "steve",
			Name:     "Steve",
			Location: models.Location{World: "arena", X: 1, Y: 64, Z: -3},
		},
	})
	s.Require().NoError(err)

	p, err := s.repo.Get(s.ctx, "steve")
	s.Require().NoError(err)
	s.Equal("Steve", p.Name)
	s.Equal("arena", p.Location.World)
	s.Equal(-3.0, p.Location.Z)

	s.True(s.mr.Exists("participant:steve"))
	members, err := s.mr.Members("participants:online")
	s.Require().NoError(err)
	s.Equal([]string{"steve"}, members)
}

func (s *RedisRepositoryTestSuite) TestGetUnknown() {
	_, err := s.repo.Get(s.ctx, "nobody")
	s.ErrorIs(err, platform.ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestOnlineIsOrderedByID() {
	for _, id := range []models.ParticipantID{"c", "a", "b"} {
		s.Require().NoError(s.repo.Upsert(s.ctx, &UpsertInput{
			Participant: &models.Participant{ID: id, Name: "name-" + id.String()},
		}))
	}

	online, err := s.repo.Online(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(online, 3)
	s.Equal(models.ParticipantID("a"), online[0].ID)
	s.Equal(models.ParticipantID("b"), online[1].ID)
	s.Equal(models.ParticipantID("c"), online[2].ID)
}

func (s *RedisRepositoryTestSuite) TestOnlineSkipsDanglingMembers() {
	s.Require().NoError(s.repo.Upsert(s.ctx, &UpsertInput{
		Participant: &models.Participant{ID: "a", Name: "Alex"},
	}))
	_, err := s.mr.SAdd("participants:online", "ghost")
	s.Require().NoError(err)

	online, err := s.repo.Online(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(online, 1)
	s.Equal("Alex", online[0].Name)
}

func (s *RedisRepositoryTestSuite) TestRemove() {
	s.Require().NoError(s.repo.Upsert(s.ctx, &UpsertInput{
		Participant: &models.Participant{ID: "a", Name: "Alex"},
	}))
	s.Require().NoError(s.repo.Remove(s.ctx, &RemoveInput{ParticipantID: "a"}))

	_, err := s.repo.Get(s.ctx, "a")
	s.ErrorIs(err, platform.ErrParticipantNotFound)

	online, err := s.repo.Online(s.ctx)
	s.Require().NoError(err)
	s.Empty(online)
}

func (s *RedisRepositoryTestSuite) TestUpdateLocation() {
	s.Require().NoError(s.repo.Upsert(s.ctx, &UpsertInput{
		Participant: &models.Participant{ID: "a", Name: "Alex"},
	}))

	err := s.repo.UpdateLocation(s.ctx, &UpdateLocationInput{
		ParticipantID: "a",
		Location:      models.Location{World: "arena", X: 10},
	})
	s.Require().NoError(err)

	p, err := s.repo.Get(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(10.0, p.Location.X)

	err = s.repo.UpdateLocation(s.ctx, &UpdateLocationInput{ParticipantID: "zz"})
	s.ErrorIs(err, platform.ErrParticipantNotFound)
}

func (s *RedisRepositoryTestSuite) TestInvalidInput() {
	s.ErrorIs(s.repo.Upsert(s.ctx, nil), ErrNilInput)
	s.ErrorIs(s.repo.Upsert(s.ctx, &UpsertInput{Participant: &models.Participant{}}), ErrEmptyID)
	s.ErrorIs(s.repo.Remove(s.ctx, &RemoveInput{}), ErrEmptyID)
}

package participant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	require.NoError(t, repo.Upsert(ctx, &UpsertInput{Participant: &models.Participant{ID: "b", Name: "Bea"}}))
	require.NoError(t, repo.Upsert(ctx, &UpsertInput{Participant: &models.Participant{ID: "a", Name: "Alex", Exempt: true}}))

	online, err := repo.Online(ctx)
	require.NoError(t, err)
	require.Len(t, online, 2)
	assert.Equal(t, models.ParticipantID("a"), online[0].ID)
	assert.True(t, online[0].Exempt)

	// callers get copies
	online[1].Name = "changed"
	p, err := repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Bea", p.Name)

	require.NoError(t, repo.UpdateLocation(ctx, &UpdateLocationInput{
		ParticipantID: "b",
		Location:      models.Location{World: "arena", Y: 70},
	}))
	p, err = repo.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 70.0, p.Location.Y)

	require.NoError(t, repo.Remove(ctx, &RemoveInput{ParticipantID: "b"}))
	_, err = repo.Get(ctx, "b")
	assert.ErrorIs(t, err, platform.ErrParticipantNotFound)

	err = repo.UpdateLocation(ctx, &UpdateLocationInput{ParticipantID: "b"})
	assert.ErrorIs(t, err, platform.ErrParticipantNotFound)

	assert.ErrorIs(t, repo.Upsert(ctx, nil), ErrNilInput)
}

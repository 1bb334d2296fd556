package usecase

import (
	"context"
	"testing"

	"tournament-backend/domain/core/entities"
	"tournament-backend/domain/events"
	"tournament-backend/infrastructure/persistence/memory"
	pkgerrors "tournament-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTournament_Execute_Success(t *testing.T) {
	ctx := context.Background()
	tournaments := memory.NewTournamentRepository()
	publisher := memory.NewEventPublisher()
	uc := NewCreateTournament(tournaments, publisher)

	output, err := uc.Execute(ctx, CreateTournamentInput{
		Name:     "Spring Open",
		Format:   string(entities.FormatSingleElimination),
		Capacity: 8,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.TournamentID)
	assert.Equal(t, string(entities.StatusRegistration), output.Status)

	// Registration is open immediately after creation
	stored := tournaments.All()
	require.Len(t, stored, 1)
	assert.Equal(t, entities.StatusRegistration, stored[0].Status())

	published := publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypeTournamentCreated, published[0].GetEventType())
}

func TestCreateTournament_Execute_InvalidInput(t *testing.T) {
	uc := NewCreateTournament(memory.NewTournamentRepository(), memory.NewEventPublisher())

	tests := []struct {
		name  string
		input CreateTournamentInput
	}{
		{"empty name", CreateTournamentInput{Format: "single_elimination", Capacity: 4}},
		{"bad format", CreateTournamentInput{Name: "Open", Format: "ladder", Capacity: 4}},
		{"capacity too small", CreateTournamentInput{Name: "Open", Format: "round_robin", Capacity: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

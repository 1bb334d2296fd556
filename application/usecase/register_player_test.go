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

type registerFixture struct {
	tournaments *memory.TournamentRepository
	players     *memory.PlayerRepository
	matches     *memory.MatchRepository
	publisher   *memory.EventPublisher
	uc          *RegisterPlayer
}

func newRegisterFixture(t *testing.T) *registerFixture {
	t.Helper()
	fx := &registerFixture{
		tournaments: memory.NewTournamentRepository(),
		players:     memory.NewPlayerRepository(),
		matches:     memory.NewMatchRepository(),
		publisher:   memory.NewEventPublisher(),
	}
	uow := memory.NewUnitOfWork(fx.tournaments, fx.matches)
	fx.uc = NewRegisterPlayer(fx.tournaments, fx.players, uow, fx.publisher)
	return fx
}

func (fx *registerFixture) seedTournament(t *testing.T, capacity int) *entities.Tournament {
	t.Helper()
	tournament, err := entities.NewTournament("Open", entities.FormatSingleElimination, capacity)
	require.NoError(t, err)
	require.NoError(t, tournament.OpenRegistration())
	tournament.MarkEventsAsCommitted()
	require.NoError(t, fx.tournaments.Save(context.Background(), tournament))
	return tournament
}

func TestRegisterPlayer_Execute_NewPlayerByDisplayName(t *testing.T) {
	ctx := context.Background()
	fx := newRegisterFixture(t)
	tournament := fx.seedTournament(t, 4)

	output, err := fx.uc.Execute(ctx, RegisterPlayerInput{
		TournamentID: tournament.ID().String(),
		DisplayName:  "Alice",
	})
	require.NoError(t, err)

	assert.Equal(t, tournament.ID().String(), output.TournamentID)
	assert.NotEmpty(t, output.PlayerID)
	assert.Equal(t, 1, output.EntrantCount)

	// The entrant is committed to the store
	stored, err := fx.tournaments.GetByID(ctx, tournament.ID())
	require.NoError(t, err)
	assert.Len(t, stored.Entrants(), 1)

	published := fx.publisher.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventTypePlayerRegistered, published[0].GetEventType())
}

func TestRegisterPlayer_Execute_ExistingPlayerByID(t *testing.T) {
	ctx := context.Background()
	fx := newRegisterFixture(t)
	tournament := fx.seedTournament(t, 4)

	player, err := entities.NewPlayer("Bob")
	require.NoError(t, err)
	require.NoError(t, fx.players.Save(ctx, player))

	output, err := fx.uc.Execute(ctx, RegisterPlayerInput{
		TournamentID: tournament.ID().String(),
		PlayerID:     player.ID().String(),
	})
	require.NoError(t, err)
	assert.Equal(t, player.ID().String(), output.PlayerID)
}

func TestRegisterPlayer_Execute_DuplicateEntrant(t *testing.T) {
	ctx := context.Background()
	fx := newRegisterFixture(t)
	tournament := fx.seedTournament(t, 4)

	player, err := entities.NewPlayer("Bob")
	require.NoError(t, err)
	require.NoError(t, fx.players.Save(ctx, player))

	input := RegisterPlayerInput{
		TournamentID: tournament.ID().String(),
		PlayerID:     player.ID().String(),
	}

	_, err = fx.uc.Execute(ctx, input)
	require.NoError(t, err)

	_, err = fx.uc.Execute(ctx, input)
	assert.True(t, pkgerrors.IsConflict(err))
}

func TestRegisterPlayer_Execute_TournamentFull(t *testing.T) {
	ctx := context.Background()
	fx := newRegisterFixture(t)
	tournament := fx.seedTournament(t, 2)

	for _, name := range []string{"Alice", "Bob"} {
		_, err := fx.uc.Execute(ctx, RegisterPlayerInput{
			TournamentID: tournament.ID().String(),
			DisplayName:  name,
		})
		require.NoError(t, err)
	}

	_, err := fx.uc.Execute(ctx, RegisterPlayerInput{
		TournamentID: tournament.ID().String(),
		DisplayName:  "Carol",
	})
	assert.True(t, pkgerrors.IsConflict(err))

	// The failed registration must not leak into the store
	stored, err := fx.tournaments.GetByID(ctx, tournament.ID())
	require.NoError(t, err)
	assert.Len(t, stored.Entrants(), 2)
}

func TestRegisterPlayer_Execute_InvalidTournamentID(t *testing.T) {
	fx := newRegisterFixture(t)

	_, err := fx.uc.Execute(context.Background(), RegisterPlayerInput{
		TournamentID: "not-a-uuid",
		DisplayName:  "Alice",
	})
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestRegisterPlayer_Execute_UnknownTournament(t *testing.T) {
	fx := newRegisterFixture(t)

	tournament, err := entities.NewTournament("Open", entities.FormatSingleElimination, 4)
	require.NoError(t, err)

	_, err = fx.uc.Execute(context.Background(), RegisterPlayerInput{
		TournamentID: tournament.ID().String(),
		DisplayName:  "Alice",
	})
	assert.True(t, pkgerrors.IsNotFound(err))
}
